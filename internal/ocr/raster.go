package ocr

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

// rasterizeFirstPage renders page 1 of a PDF to a PNG via pdftoppm
// and returns the image path plus a cleanup func for the temp dir.
func (e *Extractor) rasterizeFirstPage(ctx context.Context, data []byte) (string, func(), error) {
	tmpDir, err := os.MkdirTemp("", "es-pp-*")
	if err != nil {
		return "", nil, err
	}
	cleanup := func() { _ = os.RemoveAll(tmpDir) }

	pdfPath := filepath.Join(tmpDir, "doc.pdf")
	if err := os.WriteFile(pdfPath, data, 0o600); err != nil {
		cleanup()
		return "", nil, fmt.Errorf("write temp pdf: %w", err)
	}

	prefix := filepath.Join(tmpDir, "page")
	// pdftoppm -f 1 -l 1 -r <dpi> -png <doc.pdf> <tmp/page>
	_, errb, err := e.runner.Run(ctx, e.cfg.Pdftoppm,
		"-f", "1", "-l", "1", "-r", fmt.Sprintf("%d", e.cfg.DPI), "-png", pdfPath, prefix)
	if err != nil {
		cleanup()
		return "", nil, fmt.Errorf("pdftoppm: %w (stderr: %s)", err, truncateOutput(string(errb), 2<<10))
	}

	matches, _ := filepath.Glob(prefix + "-*.png")
	sort.Strings(matches)
	if len(matches) == 0 {
		cleanup()
		return "", nil, fmt.Errorf("pdftoppm produced no images")
	}
	return matches[0], cleanup, nil
}
