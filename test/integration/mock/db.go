package mock

import (
	"database/sql"
	"fmt"
	"sync"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/finance-tracker/ledger/internal/integration/persistence/model"
)

var once sync.Once
var db *Db

type Db struct {
	DbConn *gorm.DB
	models map[string]any
	tables []string
}

// NewDb returns the shared in-memory ledger database, migrating it on first use.
func NewDb() *Db {
	once.Do(func() {
		db = open()
	})
	return db
}

func open() *Db {
	dbSQL, err := sql.Open("sqlite", "file::memory:?cache=shared")
	if err != nil {
		panic(err)
	}

	dbSQL.SetMaxOpenConns(1)

	dbConn, err := gorm.Open(sqlite.Dialector{Conn: dbSQL}, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		panic("failed to connect to database. err: " + err.Error())
	}

	newDbMock := &Db{
		DbConn: dbConn,
		models: map[string]any{},
	}

	for _, m := range model.All() {
		stmt := &gorm.Statement{DB: dbConn}
		if err := stmt.Parse(m); err != nil {
			panic(err)
		}
		newDbMock.models[stmt.Schema.Table] = m
		newDbMock.tables = append(newDbMock.tables, stmt.Schema.Table)
	}

	if err := dbConn.AutoMigrate(model.All()...); err != nil {
		panic(fmt.Sprintf("failed to migrate database. err: %s", err.Error()))
	}

	return newDbMock
}

// ClearDB deletes every row, children first.
func (d *Db) ClearDB() error {
	for i := len(d.tables) - 1; i >= 0; i-- {
		table := d.tables[i]
		if err := d.DbConn.Exec("DELETE FROM " + table).Error; err != nil {
			return fmt.Errorf("failed to clear table %s: %w", table, err)
		}
	}
	return nil
}

func (d *Db) GetModel(table string) (any, bool) {
	model, ok := d.models[table]
	return model, ok
}

// Count returns the number of rows in table.
func (d *Db) Count(table string) (int64, error) {
	m, ok := d.models[table]
	if !ok {
		return 0, fmt.Errorf("unknown table %q", table)
	}
	var count int64
	err := d.DbConn.Model(m).Count(&count).Error
	return count, err
}
