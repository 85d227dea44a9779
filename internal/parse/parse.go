// Package parse derives transaction fields from the full text of a
// scanned document. Every extractor is a best-effort heuristic: a
// miss is reported as an absent value, never an error, and the caller
// leaves the corresponding form field blank for manual entry.
package parse

import (
	"log/slog"
	"strings"
	"time"

	"github.com/joseph-ayodele/expense-scanner/internal/entity"
)

// Fields is the engine's output. Amount, date, and merchant carry
// provenance so the orchestrator can resolve overrides by priority.
type Fields struct {
	Amount        *entity.Guess[float64]
	Date          *entity.Guess[time.Time]
	Merchant      *entity.Guess[string]
	Address       *string
	AccountNumber *string
	IsStatement   bool
}

// Engine runs the field extraction heuristics against document text.
type Engine struct {
	vendors *VendorTable
	logger  *slog.Logger
}

func NewEngine(vendors *VendorTable, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{vendors: vendors, logger: logger}
}

// Extract runs every field heuristic over the text and returns the
// combined result. Extraction misses are absent fields, not errors.
func (e *Engine) Extract(text string) Fields {
	lines := strings.Split(text, "\n")
	isStatement := IsStatement(text)

	f := Fields{
		IsStatement:   isStatement,
		Amount:        e.extractAmount(text, lines, isStatement),
		Date:          e.extractDate(text, lines),
		Merchant:      e.extractMerchant(text, lines),
		Address:       extractAddress(lines),
		AccountNumber: extractAccountNumber(lines),
	}

	e.logger.Debug("field extraction done",
		"statement", isStatement,
		"amount", f.Amount != nil,
		"date", f.Date != nil,
		"merchant", f.Merchant != nil,
		"address", f.Address != nil,
		"account", f.AccountNumber != nil,
	)
	return f
}

// searchRadius applies extract to the line at idx, then up to back
// preceding lines (nearest first), then fwd following lines. This is
// the shared fallback shape for keyword-guided extraction: the value
// often sits on a neighboring line rather than the keyword line.
func searchRadius[T any](lines []string, idx, back, fwd int, extract func(string) (T, bool)) (T, bool) {
	if v, ok := extract(lines[idx]); ok {
		return v, true
	}
	for i := 1; i <= back; i++ {
		if idx-i < 0 {
			break
		}
		if v, ok := extract(lines[idx-i]); ok {
			return v, true
		}
	}
	for i := 1; i <= fwd; i++ {
		if idx+i >= len(lines) {
			break
		}
		if v, ok := extract(lines[idx+i]); ok {
			return v, true
		}
	}
	var zero T
	return zero, false
}

// findByKeywords walks a prioritized keyword list: for each keyword it
// locates the first matching line and runs a radius search around it.
// First success wins.
func findByKeywords[T any](
	lines []string,
	keywords []string,
	match func(line, keyword string) bool,
	back, fwd int,
	extract func(string) (T, bool),
) (T, bool) {
	for _, kw := range keywords {
		idx := -1
		for i, l := range lines {
			if match(l, kw) {
				idx = i
				break
			}
		}
		if idx < 0 {
			continue
		}
		if v, ok := searchRadius(lines, idx, back, fwd, extract); ok {
			return v, true
		}
	}
	var zero T
	return zero, false
}

// containsKeyword is the plain case-insensitive line matcher.
func containsKeyword(line, keyword string) bool {
	return strings.Contains(strings.ToLower(line), keyword)
}
