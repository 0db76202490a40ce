package sentiment

import "strings"

// ScoreLabel maps classifier output to a ternary score by substring match,
// positive before neutral before negative; no match scores 0.
func ScoreLabel(label string) int {
	label = strings.ToLower(label)

	switch {
	case strings.Contains(label, "positive"):
		return 1
	case strings.Contains(label, "neutral"):
		return 0
	case strings.Contains(label, "negative"):
		return -1
	default:
		return 0
	}
}
