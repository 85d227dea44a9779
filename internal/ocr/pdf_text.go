package ocr

import (
	"bytes"
	"fmt"
	"sort"
	"strings"

	"github.com/ledongthuc/pdf"
)

// Vertical displacement above this many units starts a new line;
// a horizontal gap above lineGapThreshold after the previous
// fragment's end gets a single space. Together these reconstruct
// reading order from positioned fragments without relying on any
// line-break markers in the source.
const (
	lineBreakThreshold = 5.0
	lineGapThreshold   = 1.0
)

// extractPDFText reads the first page's positioned text fragments and
// reconstructs reading order: sort by descending y (PDF y grows
// bottom-to-top) then ascending x, then rejoin with inferred breaks
// and spaces. The pdf library panics on some malformed inputs, so the
// whole pass is recover-guarded.
func extractPDFText(data []byte) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("pdf library crashed: %v", r)
		}
	}()

	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("open pdf: %w", err)
	}
	if r.NumPage() == 0 {
		return "", fmt.Errorf("pdf has no pages")
	}

	page := r.Page(1)
	if page.V.IsNull() {
		return "", fmt.Errorf("pdf first page is empty")
	}

	content := page.Content()
	frags := make([]pdf.Text, 0, len(content.Text))
	for _, t := range content.Text {
		if t.S != "" {
			frags = append(frags, t)
		}
	}
	return joinFragments(frags), nil
}

// joinFragments reconstructs reading order from positioned fragments:
// sort by descending y then ascending x, break lines on vertical
// displacement, and insert a space only on a real horizontal gap so
// "Due" + "Date" does not smash into "DueDate" but kerned glyph runs
// still join.
func joinFragments(frags []pdf.Text) string {
	if len(frags) == 0 {
		return ""
	}

	sort.SliceStable(frags, func(i, j int) bool {
		if d := frags[i].Y - frags[j].Y; d > lineBreakThreshold || d < -lineBreakThreshold {
			return frags[i].Y > frags[j].Y
		}
		return frags[i].X < frags[j].X
	})

	var b strings.Builder
	lastY, lastX, lastW := -1.0, -1.0, 0.0
	for _, f := range frags {
		if lastY >= 0 && abs(f.Y-lastY) > lineBreakThreshold {
			b.WriteByte('\n')
		} else if lastX >= 0 {
			if f.X-(lastX+lastW) > lineGapThreshold {
				b.WriteByte(' ')
			}
		}
		b.WriteString(f.S)
		lastY, lastX, lastW = f.Y, f.X, f.W
	}
	return b.String()
}

func abs(f float64) float64 {
	if f < 0 {
		return -f
	}
	return f
}
