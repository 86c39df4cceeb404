package recovery

// ScrollBudget selects how many scroll attempts to spend hunting for unseen
// targets before declaring the list exhausted. A pure function of how much
// of the list has already been visited: near exhaustion, long scrolling only
// burns time; early on, giving up too soon strands most of the list.
//
// With a known total the budget follows the visited ratio; without one it
// falls back to absolute visited-count tiers.
func ScrollBudget(visited, total int) int {
	if total > 0 {
		ratio := float64(visited) / float64(total)
		switch {
		case ratio >= 0.9:
			return 5
		case ratio >= 0.7:
			return 10
		case ratio >= 0.5:
			return 15
		default:
			return 20
		}
	}

	switch {
	case visited < 50:
		return 15
	case visited < 100:
		return 10
	default:
		return 5
	}
}
