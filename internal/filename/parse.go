// Package filename guesses transaction fields from a document's name
// alone. It is the cheap first pass of the scanning pipeline: no file
// contents are touched, and the output is advisory unless both a date
// and a merchant were recovered.
package filename

import (
	"regexp"
	"strings"
	"time"
	"unicode"
)

// HighConfidence is the threshold at which a filename guess is allowed
// to pre-empt merchant candidates derived from document text.
const HighConfidence = 0.8

// Result is the outcome of parsing a single filename.
type Result struct {
	Date       *time.Time
	Merchant   string
	Confidence float32
}

var (
	reDate = regexp.MustCompile(`\d{4}-\d{2}-\d{2}`)
	reExt  = regexp.MustCompile(`\.[^/.]+$`)
	// Junk tokens commonly embedded in exported receipt filenames.
	// Order matters: "eReceipt" must go before "Receipt".
	junkPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)eReceipt`),
		regexp.MustCompile(`(?i)Receipt`),
		regexp.MustCompile(`(?i)DirectInvoice`),
		regexp.MustCompile(`(?i)Invoice`),
		regexp.MustCompile(`(?i)Statement`),
		regexp.MustCompile(`(?i)Bill`),
		regexp.MustCompile(`(?i)aspx`),
		regexp.MustCompile(`(?i)contract`),
		regexp.MustCompile(`(?i)Page \d+ Of \d+`),
		regexp.MustCompile(`(?i)data \d+`),
	}
	reNoise      = regexp.MustCompile(`^[()\d]+$`)
	reMultiSpace = regexp.MustCompile(`\s+`)
	reHasDigit   = regexp.MustCompile(`[0-9]`)
)

// minTokenLen is the shortest merchant token worth keeping.
const minTokenLen = 2

// idTokenLen: tokens longer than this that contain a digit are treated
// as opaque identifiers (upload IDs, temp names) and discarded.
const idTokenLen = 8

// Parse extracts an embedded date and a merchant guess from a filename.
// Each recovered field contributes 0.4 confidence; both present (0.8)
// is treated as high confidence by the orchestrator.
//
// Parse("2024-08-19_Starbucks_Receipt.pdf") yields date 2024-08-19,
// merchant "Starbucks", confidence 0.8.
func Parse(name string) Result {
	var res Result

	dateStr := reDate.FindString(name)
	if dateStr != "" {
		if d, err := time.Parse("2006-01-02", dateStr); err == nil {
			res.Date = &d
			res.Confidence += 0.4
		}
	}

	clean := reExt.ReplaceAllString(name, "")
	if dateStr != "" {
		clean = strings.Replace(clean, dateStr, "", 1)
	}
	for _, p := range junkPatterns {
		clean = p.ReplaceAllString(clean, "")
	}
	clean = strings.NewReplacer("_", " ", "-", " ").Replace(clean)
	clean = reMultiSpace.ReplaceAllString(clean, " ")

	var words []string
	for _, w := range strings.Fields(clean) {
		if isIDToken(w) || reNoise.MatchString(w) || len(w) <= minTokenLen {
			continue
		}
		words = append(words, w)
	}

	if len(words) > 0 {
		res.Merchant = titleCase(strings.Join(words, " "))
		res.Confidence += 0.4
	}
	return res
}

// isIDToken reports whether a token looks like an opaque identifier
// rather than part of a merchant name, e.g. "tmpcm1ygdvj" or "st2203".
func isIDToken(w string) bool {
	if len(w) > idTokenLen && reHasDigit.MatchString(w) {
		return true
	}
	if strings.HasPrefix(w, "st") && reHasDigit.MatchString(w) {
		return true
	}
	return strings.HasPrefix(w, "tmp")
}

// titleCase upper-cases the first letter of every word, leaving the
// rest of each word untouched.
func titleCase(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	atWordStart := true
	for _, r := range s {
		if atWordStart {
			r = unicode.ToUpper(r)
		}
		atWordStart = !unicode.IsLetter(r) && !unicode.IsDigit(r)
		b.WriteRune(r)
	}
	return b.String()
}
