// Package ocr is the text acquisition layer: it produces one text
// string for a document regardless of source format. PDFs go through
// structural text extraction first and fall back to rasterization
// plus OCR; images go straight to OCR. OCR runs on a bounded worker
// pool because engine startup is expensive and recognition is
// CPU-bound.
package ocr

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joseph-ayodele/expense-scanner/constants"
	"github.com/joseph-ayodele/expense-scanner/internal/entity"
)

type Config struct {
	Pdftoppm  string // binary name or absolute path; if empty -> "pdftoppm"
	Tesseract string // binary name or absolute path; if empty -> "tesseract"

	TesseractLang string // default "eng"
	TessdataDir   string

	// DPI for rasterizing scanned PDFs. Default 108, roughly 1.5x the
	// 72-dpi page size, enough for OCR without ballooning render time.
	DPI int

	// MaxWorkers bounds concurrent OCR. Default 2.
	MaxWorkers int

	// RecognizeTimeout bounds a single recognition call so a hung
	// engine cannot hold a pool slot forever. Default 2m.
	RecognizeTimeout time.Duration
}

// Methods recorded on extraction results.
const (
	MethodPDFText  = "pdf-text"
	MethodPDFOCR   = "pdf-ocr"
	MethodImageOCR = "image-ocr"
)

// Result is the acquisition outcome: the document's readable text and
// an OCR confidence when recognition ran (0 for native PDF text).
type Result struct {
	Text       string
	Method     string
	Language   string
	Duration   time.Duration
	Confidence float32
}

// Extractor unifies PDF text extraction and image OCR behind one
// entry point.
type Extractor struct {
	cfg    Config
	runner Runner
	pool   *Pool
	logger *slog.Logger
}

func NewExtractor(cfg Config, logger *slog.Logger) *Extractor {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.Pdftoppm == "" {
		cfg.Pdftoppm = "pdftoppm"
	}
	if cfg.Tesseract == "" {
		cfg.Tesseract = "tesseract"
	}
	if cfg.TesseractLang == "" {
		cfg.TesseractLang = "eng"
	}
	if cfg.DPI <= 0 {
		cfg.DPI = 108
	}
	if cfg.MaxWorkers <= 0 {
		cfg.MaxWorkers = 2
	}
	if cfg.RecognizeTimeout <= 0 {
		cfg.RecognizeTimeout = 2 * time.Minute
	}
	e := &Extractor{cfg: cfg, runner: execRunner{}, logger: logger}
	e.pool = NewPool(cfg.MaxWorkers, func() (*Worker, error) {
		return newWorker(cfg, e.runner, logger)
	})
	return e
}

// Extract picks a strategy based on the declared document format.
// Failures to decode, render, or recognize surface as errors; there
// is no silent empty-string path.
func (e *Extractor) Extract(ctx context.Context, doc entity.RawDocument) (Result, error) {
	start := time.Now()
	e.logger.Debug("starting text acquisition", "name", doc.Name, "format", doc.Format, "bytes", len(doc.Data))

	switch doc.Format {
	case constants.PDF:
		res, err := e.extractPDF(ctx, doc)
		res.Duration = time.Since(start)
		return res, err
	case constants.IMAGE:
		res, err := e.extractImage(ctx, doc)
		res.Duration = time.Since(start)
		return res, err
	default:
		e.logger.Error("unsupported document format", "format", doc.Format, "name", doc.Name)
		return Result{}, fmt.Errorf("unsupported format: %q", doc.Format)
	}
}

func (e *Extractor) extractPDF(ctx context.Context, doc entity.RawDocument) (Result, error) {
	text, err := extractPDFText(doc.Data)
	if err == nil && strings.TrimSpace(text) != "" {
		return Result{Text: text, Method: MethodPDFText}, nil
	}
	if err != nil {
		e.logger.Warn("structural pdf extraction failed, falling back to ocr", "name", doc.Name, "error", err)
	} else {
		e.logger.Debug("pdf has no usable text layer, falling back to ocr", "name", doc.Name)
	}

	imgPath, cleanup, rerr := e.rasterizeFirstPage(ctx, doc.Data)
	if rerr != nil {
		return Result{}, fmt.Errorf("rasterize pdf: %w", rerr)
	}
	defer cleanup()

	txt, conf, oerr := e.recognize(ctx, imgPath)
	if oerr != nil {
		return Result{}, oerr
	}
	return Result{Text: txt, Method: MethodPDFOCR, Language: e.cfg.TesseractLang, Confidence: conf}, nil
}

func (e *Extractor) extractImage(ctx context.Context, doc entity.RawDocument) (Result, error) {
	path, cleanup, err := writeTemp(doc.Data, filepath.Ext(doc.Name))
	if err != nil {
		return Result{}, err
	}
	defer cleanup()

	txt, conf, err := e.recognize(ctx, path)
	if err != nil {
		return Result{}, err
	}
	return Result{Text: txt, Method: MethodImageOCR, Language: e.cfg.TesseractLang, Confidence: conf}, nil
}

// recognize borrows a pooled worker and runs one bounded recognition
// call. Acquire respects ctx, so a caller queued behind a full pool
// can still back out.
func (e *Extractor) recognize(ctx context.Context, imgPath string) (string, float32, error) {
	w, err := e.pool.Acquire(ctx)
	if err != nil {
		return "", 0, fmt.Errorf("acquire ocr worker: %w", err)
	}
	defer e.pool.Release(w)

	rctx, cancel := context.WithTimeout(ctx, e.cfg.RecognizeTimeout)
	defer cancel()
	return w.Recognize(rctx, imgPath)
}

// writeTemp spills payload bytes to a temp file for the external
// tools, which only take paths.
func writeTemp(data []byte, ext string) (string, func(), error) {
	if ext == "" {
		ext = ".bin"
	}
	f, err := os.CreateTemp("", "es-doc-*"+ext)
	if err != nil {
		return "", nil, fmt.Errorf("temp file: %w", err)
	}
	cleanup := func() { _ = os.Remove(f.Name()) }
	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		cleanup()
		return "", nil, fmt.Errorf("write temp file: %w", err)
	}
	if err := f.Close(); err != nil {
		cleanup()
		return "", nil, fmt.Errorf("close temp file: %w", err)
	}
	return f.Name(), cleanup, nil
}
