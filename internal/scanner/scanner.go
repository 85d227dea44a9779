// Package scanner orchestrates the scanning pipeline: filename
// heuristics, duplicate detection, text acquisition, field
// extraction, and identity resolution against stored history. Each
// stage is best-effort except text acquisition, which is the one
// stage a scan cannot proceed without.
package scanner

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/joseph-ayodele/expense-scanner/internal/common"
	"github.com/joseph-ayodele/expense-scanner/internal/entity"
	"github.com/joseph-ayodele/expense-scanner/internal/filename"
	"github.com/joseph-ayodele/expense-scanner/internal/identity"
	"github.com/joseph-ayodele/expense-scanner/internal/ocr"
	"github.com/joseph-ayodele/expense-scanner/internal/parse"
	"github.com/joseph-ayodele/expense-scanner/internal/repository"
)

// TextExtractor is the acquisition dependency. Satisfied by
// ocr.Extractor; faked in tests.
type TextExtractor interface {
	Extract(ctx context.Context, doc entity.RawDocument) (ocr.Result, error)
}

// History is the slice of the expense store the pipeline reads.
type History interface {
	HashExists(ctx context.Context, hashHex string) (bool, error)
	Merchants(ctx context.Context) ([]string, error)
	CategoriesForMerchant(ctx context.Context, merchant string) ([]string, error)
}

var _ History = (repository.ExpenseRepository)(nil)

// Outcome is everything one scan produced. Field guesses keep their
// provenance; Result flattens them for form pre-population.
type Outcome struct {
	Name      string
	FileHash  string
	Duplicate bool

	Method      string
	IsStatement bool

	Amount        *entity.Guess[float64]
	Date          *entity.Guess[time.Time]
	Merchant      *entity.Guess[string]
	Address       *string
	AccountNumber *string
	Category      *string

	RawText    string
	Confidence float32
}

// Result projects the outcome onto the plain form-prefill shape.
func (o *Outcome) Result() entity.ScanResult {
	res := entity.ScanResult{
		Address:       o.Address,
		AccountNumber: o.AccountNumber,
		RawText:       o.RawText,
		Confidence:    o.Confidence,
	}
	if o.Amount != nil {
		res.Amount = &o.Amount.Value
	}
	if o.Date != nil {
		res.Date = &o.Date.Value
	}
	if o.Merchant != nil {
		res.Merchant = &o.Merchant.Value
	}
	return res
}

// BatchItem pairs one document with its scan outcome or failure.
type BatchItem struct {
	Name    string
	Outcome *Outcome
	Err     error
}

type Scanner struct {
	history   History
	extractor TextExtractor
	engine    *parse.Engine
	matcher   *identity.Matcher
	logger    *slog.Logger
}

func NewScanner(history History, extractor TextExtractor, engine *parse.Engine, matcher *identity.Matcher, logger *slog.Logger) *Scanner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Scanner{
		history:   history,
		extractor: extractor,
		engine:    engine,
		matcher:   matcher,
		logger:    logger,
	}
}

// Scan runs the full pipeline for one document. History lookups
// degrade gracefully: a store error disables duplicate detection and
// category prediction for this scan but never fails it. Only text
// acquisition is fatal.
func (s *Scanner) Scan(ctx context.Context, doc entity.RawDocument) (*Outcome, error) {
	start := time.Now()
	fn := filename.Parse(doc.Name)

	out := &Outcome{Name: doc.Name}
	out.FileHash = s.hashDocument(doc)
	out.Duplicate = s.checkDuplicate(ctx, doc.Name, out.FileHash)

	acq, err := s.extractor.Extract(ctx, doc)
	if err != nil {
		s.logger.Error("text acquisition failed", "name", doc.Name, "error", err)
		return nil, fmt.Errorf("%w: %q: %w", common.ErrAcquisition, doc.Name, err)
	}
	out.Method = acq.Method
	out.RawText = acq.Text
	out.Confidence = acq.Confidence

	fields := s.engine.Extract(acq.Text)
	out.IsStatement = fields.IsStatement
	out.Amount = fields.Amount
	out.Address = fields.Address
	out.AccountNumber = fields.AccountNumber

	// A date embedded in the filename was put there deliberately and
	// outranks anything recovered from document text.
	if fn.Date != nil {
		out.Date = &entity.Guess[time.Time]{Value: *fn.Date, Source: entity.SourceFilename}
	} else {
		out.Date = fields.Date
	}

	out.Merchant = s.resolveMerchant(ctx, fn, fields, acq.Text)
	if out.Merchant != nil {
		out.Category = s.predictCategory(ctx, out.Merchant.Value)
	}

	s.logger.Info("scan complete",
		"name", doc.Name,
		"method", out.Method,
		"duplicate", out.Duplicate,
		"statement", out.IsStatement,
		"amount", out.Amount != nil,
		"date", out.Date != nil,
		"merchant", out.Merchant != nil,
		"duration", time.Since(start),
	)
	return out, nil
}

// ScanBatch processes documents strictly in order, one at a time. A
// failed document is recorded and the batch moves on; one bad upload
// never sinks the rest.
func (s *Scanner) ScanBatch(ctx context.Context, docs []entity.RawDocument) []BatchItem {
	items := make([]BatchItem, 0, len(docs))
	for _, doc := range docs {
		out, err := s.Scan(ctx, doc)
		items = append(items, BatchItem{Name: doc.Name, Outcome: out, Err: err})
	}
	return items
}

// hashDocument prefers the content digest; documents whose payload
// could not be read fall back to the metadata digest so duplicate
// detection stays enabled, just less precise.
func (s *Scanner) hashDocument(doc entity.RawDocument) string {
	if len(doc.Data) > 0 {
		return identity.HashBytes(doc.Data)
	}
	s.logger.Warn("empty document payload, using metadata hash", "name", doc.Name)
	return identity.FallbackHash(doc.Name, doc.Size, doc.Modified, doc.Format)
}

func (s *Scanner) checkDuplicate(ctx context.Context, name, hashHex string) bool {
	if s.history == nil {
		return false
	}
	dup, err := s.history.HashExists(ctx, hashHex)
	if err != nil {
		s.logger.Warn("duplicate lookup failed, continuing without it", "name", name, "error", err)
		return false
	}
	return dup
}

// resolveMerchant applies the merchant precedence order: a
// high-confidence filename guess, then the text extraction tiers, then
// any remaining filename guess, and only then a history scan over the
// raw text. The filename was named by the user; history matching is
// the noisiest source and runs last.
func (s *Scanner) resolveMerchant(ctx context.Context, fn filename.Result, fields parse.Fields, rawText string) *entity.Guess[string] {
	if fn.Merchant != "" && fn.Confidence >= filename.HighConfidence {
		return &entity.Guess[string]{Value: fn.Merchant, Source: entity.SourceFilename}
	}
	if fields.Merchant != nil {
		return fields.Merchant
	}
	if fn.Merchant != "" {
		return &entity.Guess[string]{Value: fn.Merchant, Source: entity.SourceFilename}
	}
	if s.history != nil && s.matcher != nil {
		merchants, err := s.history.Merchants(ctx)
		if err != nil {
			s.logger.Warn("merchant history lookup failed", "error", err)
		} else if name, ok := s.matcher.FindMerchantInText(rawText, merchants); ok {
			return &entity.Guess[string]{Value: name, Source: entity.SourceHistory}
		}
	}
	return nil
}

func (s *Scanner) predictCategory(ctx context.Context, merchant string) *string {
	if s.history == nil {
		return nil
	}
	categories, err := s.history.CategoriesForMerchant(ctx, merchant)
	if err != nil {
		s.logger.Warn("category history lookup failed", "merchant", merchant, "error", err)
		return nil
	}
	if mode, ok := identity.ModeCategory(categories); ok {
		return &mode
	}
	return nil
}
