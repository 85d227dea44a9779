package parse

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/joseph-ayodele/expense-scanner/internal/entity"
)

// companyIndicators are corporate-suffix tokens that mark a line as a
// business name.
var companyIndicators = []string{
	"LLC", "Inc.", "Inc", "Corp.", "Corp", "Company", "Co.", "Services", "Service",
}

const (
	// headerWindow bounds the vendor-pattern scan to the top of the
	// document, where the issuer name lives.
	headerWindow = 3000
	// headerLines bounds the corporate-suffix scan.
	headerLines = 15
	// maxMerchantLen truncates heuristic merchant lines.
	maxMerchantLen = 50
)

var (
	reAllDigits    = regexp.MustCompile(`^\d+$`)
	rePageMarker   = regexp.MustCompile(`(?i)^page\s*\d`)
	reLeadingDate  = regexp.MustCompile(`^\d{1,2}[/\-]\d{1,2}[/\-]\d{2,4}`)
	reInvoiceLabel = regexp.MustCompile(`(?i)^invoice`)
)

// extractMerchant resolves the merchant in three tiers: the ordered
// known-vendor table against the header window, then a corporate
// suffix scan of the first lines, then the first line that is not
// digits, a page marker, or a bare date.
func (e *Engine) extractMerchant(text string, lines []string) *entity.Guess[string] {
	header := text
	if len(header) > headerWindow {
		header = header[:headerWindow]
	}
	if name, ok := e.vendors.Match(header); ok {
		return &entity.Guess[string]{Value: name, Source: entity.SourceKnownVendor}
	}

	top := lines
	if len(top) > headerLines {
		top = top[:headerLines]
	}
	for _, line := range top {
		trimmed := strings.TrimSpace(line)
		if len(trimmed) >= 60 {
			continue
		}
		for _, ind := range companyIndicators {
			if strings.Contains(trimmed, ind) {
				return &entity.Guess[string]{Value: truncate(trimmed, maxMerchantLen), Source: entity.SourceKeyword}
			}
		}
	}

	for _, line := range lines {
		t := strings.TrimSpace(line)
		if len(t) < 3 ||
			reAllDigits.MatchString(t) ||
			rePageMarker.MatchString(t) ||
			reLeadingDate.MatchString(t) ||
			reInvoiceLabel.MatchString(t) {
			continue
		}
		return &entity.Guess[string]{Value: truncate(t, maxMerchantLen), Source: entity.SourceFirstLine}
	}
	return nil
}

// truncate cuts s to at most max bytes without splitting a rune; OCR
// output carries currency signs and accented characters.
func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	cut := max
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut]
}
