package export

import (
	"bufio"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/finance-tracker/ledger/internal/application/adapter"
	"github.com/finance-tracker/ledger/internal/domain/entity"
)

// csvHeader lists the transaction export columns.
var csvHeader = []string{"date", "amount", "type", "category", "description"}

// CSVEncoder writes the transactions, newest first, with every field quoted.
type CSVEncoder struct{}

// NewCSVEncoder creates the CSV transaction exporter.
func NewCSVEncoder() *CSVEncoder { return &CSVEncoder{} }

// Format implements adapter.LedgerEncoder.
func (*CSVEncoder) Format() string { return "csv" }

// ContentType implements adapter.LedgerEncoder.
func (*CSVEncoder) ContentType() string { return "text/csv" }

// FileName implements adapter.LedgerEncoder.
func (*CSVEncoder) FileName(date time.Time) string {
	return "pf_transactions_" + date.Format(entity.DateLayout) + ".csv"
}

// Encode implements adapter.LedgerEncoder. Transactions whose category no
// longer exists get an empty category column.
func (*CSVEncoder) Encode(w io.Writer, _ adapter.BackupMeta, state *adapter.LedgerState) error {
	names := make(map[uuid.UUID]string, len(state.Categories))
	for _, c := range state.Categories {
		names[c.ID] = c.Name
	}

	txs := append([]*entity.Transaction(nil), state.Transactions...)
	sort.SliceStable(txs, func(i, j int) bool { return txs[i].Date.After(txs[j].Date) })

	bw := bufio.NewWriter(w)
	writeCSVRow(bw, csvHeader, false)
	for _, t := range txs {
		bw.WriteString("\n")
		writeCSVRow(bw, []string{
			t.Date.Format(entity.DateLayout),
			t.Amount.String(),
			string(t.Kind.Type()),
			names[t.CategoryID],
			t.Description,
		}, true)
	}
	return bw.Flush()
}

func writeCSVRow(w *bufio.Writer, fields []string, quote bool) {
	for i, f := range fields {
		if i > 0 {
			w.WriteByte(',')
		}
		if !quote {
			w.WriteString(f)
			continue
		}
		w.WriteByte('"')
		w.WriteString(strings.ReplaceAll(f, `"`, `""`))
		w.WriteByte('"')
	}
}
