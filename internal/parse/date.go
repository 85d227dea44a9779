package parse

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/joseph-ayodele/expense-scanner/internal/entity"
)

const monthAlt = `Jan|Feb|Mar|Apr|May|Jun|Jul|Aug|Sep|Oct|Nov|Dec|` +
	`January|February|March|April|June|July|August|September|October|November|December`

var (
	// reDateText covers the common numeric and named-month formats,
	// tolerating OCR-inserted spaces around separators and ordinal
	// day suffixes ("Aug 19th, 2024").
	reDateText = regexp.MustCompile(`(?i)` +
		`(\d{4}\s*[/\-.]\s*\d{1,2}\s*[/\-.]\s*\d{1,2})` +
		`|(\d{1,2}\s*[/\-.]\s*\d{1,2}\s*[/\-.]\s*\d{2,4})` +
		`|\b(?:(?:` + monthAlt + `)\s+\d{1,2}(?:st|nd|rd|th)?[,\s]*\d{4})\b` +
		`|\b(?:\d{1,2}(?:st|nd|rd|th)?\s+(?:` + monthAlt + `)[,\s]*\d{4})\b`)

	// reDateSquashed retries after stripping all whitespace, for OCR
	// output that scatters spaces through the digits.
	reDateSquashed = regexp.MustCompile(`(\d{4}[/\-.]\d{1,2}[/\-.]\d{1,2})|(\d{1,2}[/\-.]\d{1,2}[/\-.]\d{2,4})`)

	// reDigitSalvage is the last resort: three consecutive digit
	// groups forming a plausible month/day/4-digit-year triple, with
	// an optional stray 0/1 the OCR engine glued between groups.
	reDigitSalvage = regexp.MustCompile(`(\d{2})[01]?(\d{2})[01]?(20[2-9]\d)`)

	reOrdinal    = regexp.MustCompile(`(?i)(\d{1,2})(st|nd|rd|th)\b`)
	reSepSpacing = regexp.MustCompile(`\s*([/\-.])\s*`)
	reWhitespace = regexp.MustCompile(`\s+`)
	reNumericYMD = regexp.MustCompile(`^\d{1,4}[/\-.]\d{1,2}[/\-.]\d{1,4}$`)
	reNonDigit   = regexp.MustCompile(`[^0-9]`)
)

// Search priority for the transaction date. "amount due afer" covers
// a recurring tesseract misread of "after".
var dateKeywords = []string{
	"due date", "bill date", "statement date", "date",
	"service period", "due after", "amount due after", "amount due afer",
}

// billDateKeywords locate the issue date of a bill for the due-date
// sanity correction.
var billDateKeywords = []string{"bill date", "statement date", "date of bill", "invoice date"}

// maxDueShiftDays bounds the due-date correction: a month-shifted due
// date is only accepted when it lands within this many days after the
// bill date.
const maxDueShiftDays = 45

// dateInText runs the full cascade against one string: plain regex,
// squashed retry, then digit salvage.
func dateInText(str string) (time.Time, bool) {
	if m := reDateText.FindString(str); m != "" {
		if d, ok := parseDateString(m); ok {
			return d, true
		}
	}
	squashed := reWhitespace.ReplaceAllString(str, "")
	if m := reDateSquashed.FindString(squashed); m != "" {
		if d, ok := parseDateString(m); ok {
			return d, true
		}
	}
	digits := reNonDigit.ReplaceAllString(squashed, "")
	for _, g := range reDigitSalvage.FindAllStringSubmatch(digits, -1) {
		mo, _ := strconv.Atoi(g[1])
		da, _ := strconv.Atoi(g[2])
		yr, _ := strconv.Atoi(g[3])
		if mo >= 1 && mo <= 12 && da >= 1 && da <= 31 {
			return time.Date(yr, time.Month(mo), da, 0, 0, 0, 0, time.UTC), true
		}
	}
	return time.Time{}, false
}

// parseDateString turns a single matched date token into a time.Time.
func parseDateString(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	s = reOrdinal.ReplaceAllString(s, "$1")
	s = reSepSpacing.ReplaceAllString(s, "$1")

	if reNumericYMD.MatchString(s) {
		return parseNumericDate(s)
	}

	// Named-month forms: normalize commas and spacing, then try the
	// month-first and day-first layouts.
	s = strings.ReplaceAll(s, ",", " ")
	s = reWhitespace.ReplaceAllString(s, " ")
	for _, layout := range []string{"Jan 2 2006", "January 2 2006", "2 Jan 2006", "2 January 2006"} {
		if d, err := time.Parse(layout, s); err == nil {
			return d.UTC(), true
		}
	}
	return time.Time{}, false
}

func parseNumericDate(s string) (time.Time, bool) {
	parts := strings.FieldsFunc(s, func(r rune) bool {
		return r == '/' || r == '-' || r == '.'
	})
	if len(parts) != 3 {
		return time.Time{}, false
	}
	a, err1 := strconv.Atoi(parts[0])
	b, err2 := strconv.Atoi(parts[1])
	c, err3 := strconv.Atoi(parts[2])
	if err1 != nil || err2 != nil || err3 != nil {
		return time.Time{}, false
	}

	var year, month, day int
	switch {
	case len(parts[0]) == 4: // YYYY-MM-DD
		year, month, day = a, b, c
	case len(parts[2]) == 4: // MM/DD/YYYY, tolerating DD/MM
		year, month, day = c, a, b
		if month > 12 && day <= 12 {
			month, day = day, month
		}
	default: // MM/DD/YY
		year, month, day = 2000+c, a, b
		if month > 12 && day <= 12 {
			month, day = day, month
		}
	}
	if month < 1 || month > 12 || day < 1 || day > 31 {
		return time.Time{}, false
	}
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC), true
}

// dateKeywordMatch matches a keyword in a line either directly or
// with all whitespace removed from both sides, which tolerates
// inconsistent OCR spacing ("DueDate 01/17").
func dateKeywordMatch(line, keyword string) bool {
	l := strings.ToLower(line)
	if strings.Contains(l, keyword) {
		return true
	}
	return strings.Contains(reWhitespace.ReplaceAllString(l, ""), strings.ReplaceAll(keyword, " ", ""))
}

// extractDate finds the transaction date via keyword-guided radius
// search, applies the due-vs-bill sanity correction, and falls back
// to scanning the entire text.
func (e *Engine) extractDate(text string, lines []string) *entity.Guess[time.Time] {
	found, ok := findByKeywords(lines, dateKeywords, dateKeywordMatch, 3, 1, dateInText)
	if ok {
		found = e.correctDueDate(found, lines)
		return &entity.Guess[time.Time]{Value: found, Source: entity.SourceKeyword}
	}
	if d, ok := dateInText(text); ok {
		return &entity.Guess[time.Time]{Value: d, Source: entity.SourceGlobalScan}
	}
	return nil
}

// correctDueDate handles a recurring OCR failure mode where a due
// date loses its month digit and parses as earlier than the bill
// date. Shifting one month forward is accepted only when the result
// lands within 45 days after the bill date; otherwise the bill date
// itself is the better guess.
func (e *Engine) correctDueDate(due time.Time, lines []string) time.Time {
	bill, ok := findByKeywords(lines, billDateKeywords, dateKeywordMatch, 2, 1, dateInText)
	if !ok || !due.Before(bill) {
		return due
	}
	shifted := due.AddDate(0, 1, 0)
	if shifted.After(bill) && shifted.Sub(bill) <= maxDueShiftDays*24*time.Hour {
		e.logger.Debug("due date shifted one month forward", "due", due, "bill", bill)
		return shifted
	}
	return bill
}
