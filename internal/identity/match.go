package identity

import (
	"regexp"
	"sort"
	"strings"

	"github.com/agext/levenshtein"
)

// AliasRule resolves text fragments to a set of acceptable canonical
// merchant names, for cases the generic tiers systematically miss.
type AliasRule struct {
	Contains  []string
	Canonical []string
}

// Matcher resolves merchant identity against known historical names.
// The four tiers run in strict order and the first hit wins:
//
//  1. exact case-insensitive inclusion, longest names first
//  2. inclusion after squashing both sides to alphanumerics
//  3. fuzzy token matching with a length-adaptive edit threshold
//  4. the configured alias table
type Matcher struct {
	aliases []AliasRule
}

func NewMatcher(aliases []AliasRule) *Matcher {
	return &Matcher{aliases: aliases}
}

const (
	// fuzzyWindow bounds tier 3 to the document header, where OCR
	// noise is most likely to have mangled the merchant name.
	fuzzyWindow = 1000
	// minFuzzyMerchantLen: shorter names produce too many accidental
	// near-matches to be worth fuzzing.
	minFuzzyMerchantLen = 4
	// maxTokenLenDelta skips token/merchant pairs whose lengths are
	// too far apart to be OCR substitution errors.
	maxTokenLenDelta = 2
	// shortMerchantLen splits the edit threshold: 1 edit for names of
	// this length or shorter, 2 edits for longer names.
	shortMerchantLen = 6
)

var reNonAlnum = regexp.MustCompile(`[^a-z0-9]+`)

func squash(s string) string {
	return reNonAlnum.ReplaceAllString(strings.ToLower(s), "")
}

// FindMerchantInText scans raw document text for any of the known
// merchant names. Used when structured extraction produced no
// merchant. Returns the historical name verbatim so it lines up with
// the stored spelling.
func (m *Matcher) FindMerchantInText(rawText string, knownMerchants []string) (string, bool) {
	if rawText == "" || len(knownMerchants) == 0 {
		return "", false
	}

	lowerText := strings.ToLower(rawText)
	squashedText := squash(rawText)

	// Longer names first: a more specific name must beat a shorter
	// prefix or substring of it.
	sorted := make([]string, len(knownMerchants))
	copy(sorted, knownMerchants)
	sort.SliceStable(sorted, func(i, j int) bool {
		return len(sorted[i]) > len(sorted[j])
	})

	// Tier 1: exact inclusion.
	for _, merchant := range sorted {
		if len(merchant) >= 2 && strings.Contains(lowerText, strings.ToLower(merchant)) {
			return merchant, true
		}
	}

	// Tier 2: squashed inclusion ("888-DOTLOOP" contains "dotloop").
	for _, merchant := range sorted {
		sq := squash(merchant)
		if len(sq) < 3 {
			continue
		}
		if strings.Contains(squashedText, sq) {
			return merchant, true
		}
	}

	// Tier 3: fuzzy tokens, tolerating OCR character substitutions.
	header := rawText
	if len(header) > fuzzyWindow {
		header = header[:fuzzyWindow]
	}
	var tokens []string
	for _, t := range reNonAlnum.Split(strings.ToLower(header), -1) {
		if len(t) > 2 {
			tokens = append(tokens, t)
		}
	}
	for _, merchant := range sorted {
		if len(merchant) < minFuzzyMerchantLen {
			continue
		}
		sq := squash(merchant)
		threshold := 1
		if len(sq) > shortMerchantLen {
			threshold = 2
		}
		for _, token := range tokens {
			delta := len(token) - len(sq)
			if delta > maxTokenLenDelta || delta < -maxTokenLenDelta {
				continue
			}
			if levenshtein.Distance(token, sq, nil) <= threshold {
				return merchant, true
			}
		}
	}

	// Tier 4: alias table.
	for _, rule := range m.aliases {
		hit := false
		for _, frag := range rule.Contains {
			if strings.Contains(lowerText, frag) {
				hit = true
				break
			}
		}
		if !hit {
			continue
		}
		for _, canonical := range rule.Canonical {
			for _, merchant := range knownMerchants {
				if merchant == canonical {
					return merchant, true
				}
			}
		}
	}

	return "", false
}
