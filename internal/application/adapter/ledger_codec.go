package adapter

import (
	"io"
	"time"
)

// BackupVersion is the only backup document version the ledger reads and writes.
const BackupVersion = 1

// BackupMeta describes an exported ledger document.
type BackupMeta struct {
	Version    int
	ExportedAt time.Time
	App        string
}

// LedgerEncoder writes a ledger state in one export format.
type LedgerEncoder interface {
	// Format is the value of the export format selector, e.g. "json".
	Format() string

	// ContentType is the MIME type of the encoded document.
	ContentType() string

	// FileName suggests a download name for a document exported on date.
	FileName(date time.Time) string

	// Encode writes state to w.
	Encode(w io.Writer, meta BackupMeta, state *LedgerState) error
}

// LedgerDecoder reads a full backup document.
type LedgerDecoder interface {
	Decode(r io.Reader) (BackupMeta, *LedgerState, error)
}
