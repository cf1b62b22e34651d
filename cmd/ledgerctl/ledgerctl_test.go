package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// resetFlags undoes the previous Execute; cobra keeps flag values and the
// Changed marks between runs of the same command tree.
func resetFlags(t *testing.T) {
	t.Helper()
	var walk func(c *cobra.Command)
	walk = func(c *cobra.Command) {
		for _, fs := range []*pflag.FlagSet{c.PersistentFlags(), c.LocalFlags()} {
			fs.VisitAll(func(f *pflag.Flag) {
				require.NoError(t, f.Value.Set(f.DefValue))
				f.Changed = false
			})
		}
		for _, sub := range c.Commands() {
			walk(sub)
		}
	}
	walk(rootCmd)
}

func run(t *testing.T, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	require.NoError(t, rootCmd.Execute(), out.String())
	return out.String()
}

func TestLedgerctl_SeedExportImportReport(t *testing.T) {
	dir := t.TempDir()
	dsn := filepath.Join(dir, "ledger.db")
	backupPath := filepath.Join(dir, "backup.json")
	csvPath := filepath.Join(dir, "tx.csv")

	out := run(t, "--driver", "sqlite", "--db", dsn, "seed", "--seed", "7", "--months", "3")
	assert.Contains(t, out, "Seeded")

	rootCmd.SetArgs([]string{"--driver", "sqlite", "--db", dsn, "seed"})
	assert.Error(t, rootCmd.Execute(), "seeding over existing data needs --force")

	run(t, "--driver", "sqlite", "--db", dsn, "export", "--format", "json", "--output", backupPath)
	raw, err := os.ReadFile(backupPath)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"version": 1`)

	run(t, "--driver", "sqlite", "--db", dsn, "export", "--format", "csv", "--output", csvPath)
	csv, err := os.ReadFile(csvPath)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(csv, []byte("date,amount,type,category,description")))

	restored := filepath.Join(dir, "restored.db")
	out = run(t, "--driver", "sqlite", "--db", restored, "import", backupPath)
	assert.Contains(t, out, "Restored")

	out = run(t, "--driver", "sqlite", "--db", restored, "report", "--as-of", "2024-03-15")
	assert.Contains(t, out, "Summary 2024-03")
	assert.Contains(t, out, "Forecast as of 2024-03-15")
	assert.Contains(t, out, "Insights")
}

func TestLedgerctl_ProfileSuppliesDatabase(t *testing.T) {
	resetFlags(t)
	dir := t.TempDir()
	dsn := filepath.Join(dir, "profile.db")
	profilePath := filepath.Join(dir, "config.toml")
	require.NoError(t, os.WriteFile(profilePath, []byte("[database]\ndriver = \"sqlite\"\nurl = \""+filepath.ToSlash(dsn)+"\"\n"), 0o600))

	out := run(t, "--config", profilePath, "seed", "--months", "2")
	assert.Contains(t, out, "Seeded")
	_, err := os.Stat(dsn)
	assert.NoError(t, err, "the profile database should have been created")

	resetFlags(t)
	out = run(t, "--config", profilePath, "config")
	assert.Contains(t, out, filepath.ToSlash(dsn))
}

func TestLedgerctl_FlagsOverrideProfile(t *testing.T) {
	resetFlags(t)
	dir := t.TempDir()
	profilePath := filepath.Join(dir, "config.toml")
	require.NoError(t, saveProfile(profilePath, profile{Database: profileDatabase{Driver: "sqlite", URL: "from-profile.db"}}))

	out := run(t, "--config", profilePath, "--db", "from-flag.db", "config")
	assert.Contains(t, out, "from-flag.db")
	assert.NotContains(t, out, "from-profile.db")
}

func TestLedgerctl_ConfigInitWritesProfile(t *testing.T) {
	resetFlags(t)
	dir := t.TempDir()
	profilePath := filepath.Join(dir, "nested", "config.toml")

	out := run(t, "--config", profilePath, "--driver", "sqlite", "--db", "written.db", "config", "init")
	assert.Contains(t, out, "Wrote")

	p, err := loadProfile(profilePath)
	require.NoError(t, err)
	assert.Equal(t, "sqlite", p.Database.Driver)
	assert.Equal(t, "written.db", p.Database.URL)
}

func TestLoadProfile_MissingFileIsEmpty(t *testing.T) {
	p, err := loadProfile(filepath.Join(t.TempDir(), "absent.toml"))
	require.NoError(t, err)
	assert.Equal(t, profile{}, p)
}
