package parse

import (
	"regexp"
	"strings"
)

// reAccount matches "Account Number: 1234-5678" and the usual
// abbreviations. The captured run may include spaces and dashes.
var reAccount = regexp.MustCompile(`(?i)(?:Account|Acct)\s*(?:Number|#|No\.?)\s*[:#]?\s*([0-9\s-]+)`)

var reSpaces = regexp.MustCompile(`\s+`)

// minAccountLen rejects short false positives like a lone "No. 1".
const minAccountLen = 3

// extractAccountNumber returns the first plausible account number:
// the captured run must contain a digit and be longer than three
// characters after whitespace normalization.
func extractAccountNumber(lines []string) *string {
	for _, line := range lines {
		m := reAccount.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		acc := strings.TrimSpace(reSpaces.ReplaceAllString(m[1], " "))
		if len(acc) > minAccountLen && strings.ContainsAny(acc, "0123456789") {
			return &acc
		}
	}
	return nil
}
