package ocr

import (
	"context"
	"fmt"
	"log/slog"
	"os/exec"
	"strconv"
	"strings"
)

// Worker is one OCR engine slot. Construction verifies the tesseract
// binary up front so a misconfigured path fails at pool fill time,
// not mid-batch.
type Worker struct {
	cfg    Config
	runner Runner
	logger *slog.Logger
}

func newWorker(cfg Config, runner Runner, logger *slog.Logger) (*Worker, error) {
	if _, err := exec.LookPath(cfg.Tesseract); err != nil {
		return nil, fmt.Errorf("tesseract not available: %w", err)
	}
	return &Worker{cfg: cfg, runner: runner, logger: logger}, nil
}

// Recognize runs OCR on one image and returns normalized text plus a
// mean word confidence in 0..1 (0 when TSV confidence is unavailable,
// in which case a content heuristic fills in).
func (w *Worker) Recognize(ctx context.Context, imgPath string) (string, float32, error) {
	args := []string{imgPath, "stdout", "-l", w.cfg.TesseractLang}
	if w.cfg.TessdataDir != "" {
		args = append(args, "--tessdata-dir", w.cfg.TessdataDir)
	}

	// tesseract <file> stdout -l <lang>
	out, errb, err := w.runner.Run(ctx, w.cfg.Tesseract, args...)
	if err != nil {
		return "", 0, fmt.Errorf("tesseract: %w (stderr: %s)", err, truncateOutput(string(errb), 2<<10))
	}

	txt := Normalize(reBoxNoise.ReplaceAllString(string(out), ""))

	conf, cerr := w.tsvConfidence(ctx, imgPath)
	if cerr != nil || conf == 0 {
		if cerr != nil {
			w.logger.Debug("tsv confidence unavailable", "error", cerr)
		}
		conf = heuristicConfidence(txt)
	}
	return txt, conf, nil
}

// tsvConfidence reruns tesseract in TSV mode and averages per-word
// confidence into 0..1.
func (w *Worker) tsvConfidence(ctx context.Context, imgPath string) (float32, error) {
	args := []string{imgPath, "stdout", "-l", w.cfg.TesseractLang}
	if w.cfg.TessdataDir != "" {
		args = append(args, "--tessdata-dir", w.cfg.TessdataDir)
	}
	args = append(args, "tsv")

	out, _, err := w.runner.Run(ctx, w.cfg.Tesseract, args...)
	if err != nil {
		return 0, fmt.Errorf("tesseract tsv: %w", err)
	}

	lines := strings.Split(string(out), "\n")
	// 12 columns; conf is the 11th, -1 marks non-word rows
	var sum, n float64
	for i, ln := range lines {
		if i == 0 || len(ln) == 0 {
			continue
		}
		cols := strings.Split(ln, "\t")
		if len(cols) < 12 {
			continue
		}
		confStr := cols[10]
		if confStr == "" || confStr == "-1" {
			continue
		}
		if v, err := strconv.ParseFloat(confStr, 64); err == nil {
			sum += v
			n++
		}
	}
	if n == 0 {
		return 0, nil
	}
	return float32(sum / n / 100.0), nil
}
