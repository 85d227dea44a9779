package main

import (
	"context"
	"flag"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/joho/godotenv"

	"github.com/joseph-ayodele/expense-scanner/constants"
	"github.com/joseph-ayodele/expense-scanner/internal/common"
	"github.com/joseph-ayodele/expense-scanner/internal/entity"
	"github.com/joseph-ayodele/expense-scanner/internal/identity"
	"github.com/joseph-ayodele/expense-scanner/internal/ocr"
	"github.com/joseph-ayodele/expense-scanner/internal/parse"
	"github.com/joseph-ayodele/expense-scanner/internal/repository"
	"github.com/joseph-ayodele/expense-scanner/internal/scanner"
)

// printError prints an error message to stderr, falling back to stdout if stderr fails
func printError(format string, args ...interface{}) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		fmt.Printf(format, args...)
	}
}

func main() {
	var (
		dir     = flag.String("dir", "", "directory to scan documents from (required)")
		dbPath  = flag.String("db", "", "sqlite database path (overrides EXPENSES_DB_PATH)")
		save    = flag.Bool("save", false, "save fully-resolved, non-duplicate scans as expenses")
		verbose = flag.Bool("v", false, "debug logging")
	)
	flag.Parse()

	if *dir == "" {
		printError("Error: --dir is required\n")
		os.Exit(1)
	}

	// .env is optional; real env always wins.
	_ = godotenv.Load()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	cfg := common.LoadConfig()
	if *dbPath != "" {
		cfg.Database.Path = *dbPath
	}
	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()

	db, err := repository.Open(cfg.Database.Path, logger)
	if err != nil {
		logger.Error("failed to open history store", "error", err)
		os.Exit(1)
	}
	defer func() { _ = db.Close() }()
	expenses := repository.NewExpenseRepository(db, logger)

	vendors, err := parse.LoadVendorTable()
	if err != nil {
		logger.Error("failed to load vendor table", "error", err)
		os.Exit(1)
	}

	extractor := ocr.NewExtractor(ocr.Config{
		Pdftoppm:         cfg.OCR.Pdftoppm,
		Tesseract:        cfg.OCR.Tesseract,
		TesseractLang:    cfg.OCR.TesseractLang,
		TessdataDir:      cfg.OCR.TessdataDir,
		DPI:              cfg.OCR.DPI,
		MaxWorkers:       cfg.OCR.MaxWorkers,
		RecognizeTimeout: cfg.OCR.RecognizeTimeout,
	}, logger)

	engine := parse.NewEngine(vendors, logger)
	matcher := identity.NewMatcher(aliasRules(vendors))
	sc := scanner.NewScanner(expenses, extractor, engine, matcher, logger)

	docs, err := collectDocuments(*dir, logger)
	if err != nil {
		logger.Error("failed to read scan directory", "dir", *dir, "error", err)
		os.Exit(1)
	}
	if len(docs) == 0 {
		fmt.Println("No scannable documents found.")
		return
	}

	logger.Info("starting scan batch", "dir", *dir, "documents", len(docs))
	items := sc.ScanBatch(ctx, docs)

	scanned, failed, duplicates, saved := 0, 0, 0, 0
	for _, item := range items {
		if item.Err != nil {
			failed++
			printError("FAIL  %s: %v\n", item.Name, item.Err)
			continue
		}
		scanned++
		out := item.Outcome
		if out.Duplicate {
			duplicates++
		}
		printOutcome(out)

		if *save && !out.Duplicate && out.Amount != nil && out.Date != nil && out.Merchant != nil {
			e := &entity.Expense{
				Merchant: out.Merchant.Value,
				Amount:   out.Amount.Value,
				TxDate:   out.Date.Value,
				FileHash: out.FileHash,
			}
			if out.Category != nil {
				e.Category = *out.Category
			}
			if err := expenses.Insert(ctx, e); err != nil {
				logger.Error("failed to save expense", "name", out.Name, "error", err)
			} else {
				saved++
			}
		}
	}

	fmt.Printf("Scan complete!\n")
	fmt.Printf("- Documents scanned: %d\n", scanned)
	fmt.Printf("- Failures: %d\n", failed)
	fmt.Printf("- Duplicates flagged: %d\n", duplicates)
	if *save {
		fmt.Printf("- Expenses saved: %d\n", saved)
	}
}

// collectDocuments gathers the scannable files directly under dir,
// skipping hidden files and unsupported extensions, in name order.
func collectDocuments(dir string, logger *slog.Logger) ([]entity.RawDocument, error) {
	var docs []entity.RawDocument
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != dir && strings.HasPrefix(d.Name(), ".") {
				return fs.SkipDir
			}
			return nil
		}
		if strings.HasPrefix(d.Name(), ".") {
			return nil
		}
		format := constants.MapExtToFormat(filepath.Ext(path))
		if format == "" {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		data, err := os.ReadFile(path)
		if err != nil {
			// Metadata-only document; the pipeline falls back to the
			// metadata hash and acquisition will report the failure.
			logger.Warn("could not read file, continuing with metadata only", "path", path, "error", err)
			data = nil
		}
		docs = append(docs, entity.RawDocument{
			Data:     data,
			Format:   format,
			Name:     d.Name(),
			Size:     info.Size(),
			Modified: info.ModTime(),
		})
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(docs, func(i, j int) bool { return docs[i].Name < docs[j].Name })
	return docs, nil
}

func printOutcome(out *scanner.Outcome) {
	fmt.Printf("OK    %s", out.Name)
	if out.Duplicate {
		fmt.Print("  [duplicate]")
	}
	if out.IsStatement {
		fmt.Print("  [statement]")
	}
	fmt.Println()
	if out.Merchant != nil {
		fmt.Printf("      merchant: %s (%s)\n", out.Merchant.Value, out.Merchant.Source)
	}
	if out.Amount != nil {
		fmt.Printf("      amount:   %.2f (%s)\n", out.Amount.Value, out.Amount.Source)
	}
	if out.Date != nil {
		fmt.Printf("      date:     %s (%s)\n", out.Date.Value.Format("2006-01-02"), out.Date.Source)
	}
	if out.Category != nil {
		fmt.Printf("      category: %s\n", *out.Category)
	}
}

// aliasRules bridges the vendor config's alias entries to the
// identity matcher's rule type.
func aliasRules(t *parse.VendorTable) []identity.AliasRule {
	src := t.Aliases()
	rules := make([]identity.AliasRule, 0, len(src))
	for _, a := range src {
		rules = append(rules, identity.AliasRule{Contains: a.Contains, Canonical: a.Canonical})
	}
	return rules
}
