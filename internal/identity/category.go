package identity

// ModeCategory returns the most frequently used category among the
// given historical assignments. Mode, not most-recent: the user's
// typical categorization beats their latest possibly-exceptional one.
// Ties resolve to the category seen first, keeping the result stable
// for a stable input order.
func ModeCategory(categories []string) (string, bool) {
	counts := make(map[string]int, len(categories))
	best := ""
	bestCount := 0
	for _, c := range categories {
		if c == "" {
			continue
		}
		counts[c]++
		if counts[c] > bestCount {
			bestCount = counts[c]
			best = c
		}
	}
	if bestCount == 0 {
		return "", false
	}
	return best, true
}
