package recovery

import "testing"

func TestScrollBudget_KnownTotal(t *testing.T) {
	tests := []struct {
		name    string
		visited int
		total   int
		want    int
	}{
		{"near exhaustion", 95, 100, 5},
		{"ninety percent exactly", 90, 100, 5},
		{"seventy percent", 70, 100, 10},
		{"fifty percent", 50, 100, 15},
		{"under half", 10, 100, 20},
		{"nothing visited", 0, 100, 20},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ScrollBudget(tt.visited, tt.total); got != tt.want {
				t.Errorf("ScrollBudget(%d, %d) = %d, want %d", tt.visited, tt.total, got, tt.want)
			}
		})
	}
}

func TestScrollBudget_UnknownTotal(t *testing.T) {
	tests := []struct {
		visited int
		want    int
	}{
		{0, 15},
		{49, 15},
		{50, 10},
		{99, 10},
		{100, 5},
		{500, 5},
	}
	for _, tt := range tests {
		if got := ScrollBudget(tt.visited, 0); got != tt.want {
			t.Errorf("ScrollBudget(%d, 0) = %d, want %d", tt.visited, got, tt.want)
		}
	}
}
