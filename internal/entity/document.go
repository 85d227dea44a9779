package entity

import "time"

// RawDocument is one uploaded document: the payload bytes plus the
// metadata the caller declared at submission. Immutable once built.
type RawDocument struct {
	Data     []byte
	Format   string // constants.PDF | constants.IMAGE
	Name     string // original filename, used by the filename heuristics
	Size     int64
	Modified time.Time
}

// ScanResult is the pipeline output used to pre-populate the expense
// form. Every field is best-effort: nil means the heuristics found no
// textual evidence for it, which is a valid outcome, not an error.
type ScanResult struct {
	Amount        *float64
	Date          *time.Time
	Merchant      *string
	Address       *string
	AccountNumber *string
	RawText       string
	Confidence    float32 // OCR confidence in 0..1; 0 for native PDF text
}
