package core

import "testing"

func TestNormalizeUsername(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"@Alice.Smith", "alice.smith"},
		{"  bob_99 ", "bob_99"},
		{"émile!", "mile"},
		{"UPPER", "upper"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := NormalizeUsername(tt.in); got != tt.want {
			t.Errorf("NormalizeUsername(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestValidUsername(t *testing.T) {
	tests := []struct {
		in    string
		valid bool
	}{
		{"alice.smith", true},
		{"bob_99", true},
		{"ab", true},
		{"a", false}, // too short
		{"this.username.is.way.too.long.x", false}, // over 24 chars
		{".leading", false},
		{"trailing.", false},
		{"double..dot", false},
		{"Upper", false}, // must be normalized first
		{"", false},
	}
	for _, tt := range tests {
		if got := ValidUsername(tt.in); got != tt.valid {
			t.Errorf("ValidUsername(%q) = %v, want %v", tt.in, got, tt.valid)
		}
	}
}
