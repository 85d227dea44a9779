package parse

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/joseph-ayodele/expense-scanner/internal/entity"
)

// reMoney matches monetary tokens: optional $/£/€ prefix, then either
// a comma-grouped amount or a plain decimal with two fraction digits.
var reMoney = regexp.MustCompile(`[$£€]?\s?(\d{1,3}(,\d{3})*\.\d{2}|\d+\.\d{2})`)

// amountSkipPatterns reject lines whose numbers are known non-amounts:
// page markers, prior-payment lines, credits.
var amountSkipPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)page\s*\d+\s*of\s*\d+`),
	regexp.MustCompile(`(?i)number\s*of\s*pages`),
	regexp.MustCompile(`(?i)payment\s*received`),
	regexp.MustCompile(`(?i)thank\s*you\s*for\s*your\s*payment`),
	regexp.MustCompile(`(?i)credits?\s*[-−]`),
	regexp.MustCompile(`(?i)payments?\s*and\s*credits`),
}

// Statements name their total differently from receipts, and the
// relative priority of the phrases flips, so each class gets its own
// ordered keyword list.
var (
	statementAmountKeywords = []string{
		"new balance", "statement balance", "total balance",
		"minimum payment due", "total amount due", "amount due", "balance due",
	}
	receiptAmountKeywords = []string{
		"total amount due", "amount due", "total due", "balance due",
		"account balance", "total", "amount",
	}
)

const (
	// maxPlausibleAmount is the sanity ceiling for any extracted
	// amount. Anything at or above it is assumed to be an account
	// number or reference, not money.
	maxPlausibleAmount = 100000
	// minLineAmount filters out cents-only noise on keyword lines.
	minLineAmount = 1.00
)

var moneyStripper = strings.NewReplacer("$", "", "£", "", "€", "", ",", "", " ", "")

// moneyInLine extracts the largest plausible monetary value on a line,
// rejecting lines that match a skip pattern.
func moneyInLine(line string) (float64, bool) {
	for _, p := range amountSkipPatterns {
		if p.MatchString(line) {
			return 0, false
		}
	}
	best := 0.0
	found := false
	for _, m := range reMoney.FindAllString(line, -1) {
		v, err := strconv.ParseFloat(moneyStripper.Replace(m), 64)
		if err != nil || v <= minLineAmount || v >= maxPlausibleAmount {
			continue
		}
		if v > best {
			best = v
			found = true
		}
	}
	return best, found
}

// extractAmount finds the transaction total. Keyword-guided search
// first (keyword line, then up to 3 prior lines, then the next line);
// if every keyword misses, fall back to the largest monetary token in
// the whole document under the sanity ceiling — the assumption being
// that the biggest plausible figure on a receipt is the total. That
// fallback is a deliberate simplification and is tagged as such.
func (e *Engine) extractAmount(text string, lines []string, isStatement bool) *entity.Guess[float64] {
	keywords := receiptAmountKeywords
	if isStatement {
		keywords = statementAmountKeywords
	}

	if v, ok := findByKeywords(lines, keywords, containsKeyword, 3, 1, moneyInLine); ok {
		return &entity.Guess[float64]{Value: v, Source: entity.SourceKeyword}
	}

	best := 0.0
	found := false
	for _, m := range reMoney.FindAllString(text, -1) {
		v, err := strconv.ParseFloat(moneyStripper.Replace(m), 64)
		if err != nil || v >= maxPlausibleAmount {
			continue
		}
		if v > best {
			best = v
			found = true
		}
	}
	if !found || best <= 0 {
		return nil
	}
	return &entity.Guess[float64]{Value: best, Source: entity.SourceGlobalScan}
}
