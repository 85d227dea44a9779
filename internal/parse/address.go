package parse

import (
	"regexp"
	"strings"
)

var (
	// reCityStateZip anchors an address candidate: "City, ST 12345"
	// with an optional ZIP+4.
	reCityStateZip = regexp.MustCompile(`[A-Za-z\s.]+,?\s+[A-Z]{2}\s+\d{5}(?:-\d{4})?`)
	// reStreetLine recognizes a street-number-prefixed line to prepend.
	reStreetLine = regexp.MustCompile(`^\d+\s+[A-Za-z]`)
	rePOBox      = regexp.MustCompile(`(?i)p\.?o\.?\s*box`)
)

// addressLookback is how many preceding lines are checked for the
// street portion of a city/state/zip match.
const addressLookback = 3

type addressCandidate struct {
	address string
	poBox   bool
}

// extractAddress finds "City, ST ZIP" lines, walks back for a street
// line to prepend, and prefers candidates with no PO box nearby —
// billing addresses are usually PO boxes, service addresses are not.
func extractAddress(lines []string) *string {
	var candidates []addressCandidate
	for i, line := range lines {
		m := reCityStateZip.FindString(line)
		if m == "" {
			continue
		}
		cityStateZip := strings.TrimSpace(m)
		full := cityStateZip
		poBox := rePOBox.MatchString(m)
		for j := 1; j <= addressLookback; j++ {
			if i-j < 0 {
				break
			}
			prev := strings.TrimSpace(lines[i-j])
			if rePOBox.MatchString(prev) {
				poBox = true
			}
			if prev != "" && reStreetLine.MatchString(prev) && !strings.Contains(full, "\n") {
				full = prev + "\n" + cityStateZip
				break
			}
		}
		candidates = append(candidates, addressCandidate{address: full, poBox: poBox})
	}

	for _, c := range candidates {
		if !c.poBox {
			return &c.address
		}
	}
	if len(candidates) > 0 {
		return &candidates[0].address
	}
	return nil
}
