package detect

import (
	"strconv"
	"strings"
)

// ParseCount parses UI count strings like "18.5K", "166 K", "1,5M", "3B",
// "1,234" or "424" into an integer. Unparseable input yields 0: counts feed
// heuristics (filters, scroll budgets), so a bad read must never abort.
func ParseCount(text string) int {
	s := strings.TrimSpace(strings.ReplaceAll(text, " ", " "))
	if s == "" {
		return 0
	}

	multipliers := []struct {
		suffix string
		factor float64
	}{
		{"K", 1_000},
		{"M", 1_000_000},
		{"B", 1_000_000_000},
	}
	upper := strings.ToUpper(s)
	for _, m := range multipliers {
		var numPart string
		switch {
		case strings.HasSuffix(upper, " "+m.suffix):
			numPart = s[:len(s)-2]
		case strings.HasSuffix(upper, m.suffix):
			numPart = s[:len(s)-1]
		default:
			continue
		}
		// European decimal separator: "1,5K"
		numPart = strings.TrimSpace(strings.ReplaceAll(numPart, ",", "."))
		f, err := strconv.ParseFloat(numPart, 64)
		if err != nil {
			return 0
		}
		return int(f * m.factor)
	}

	// Plain number, possibly with thousands separators.
	plain := strings.ReplaceAll(strings.ReplaceAll(s, " ", ""), ",", "")
	if n, err := strconv.Atoi(plain); err == nil {
		return n
	}
	if f, err := strconv.ParseFloat(plain, 64); err == nil {
		return int(f)
	}
	return 0
}

// ParseFollowerTotal strips the "Followers"/"Follower" label before parsing,
// for texts like "267 Followers".
func ParseFollowerTotal(text string) int {
	cleaned := strings.ToLower(text)
	cleaned = strings.ReplaceAll(cleaned, "followers", "")
	cleaned = strings.ReplaceAll(cleaned, "follower", "")
	return ParseCount(strings.TrimSpace(cleaned))
}
