package util

import "testing"

func TestNormalizeTagSlug(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"Machine Learning", "machine-learning"},
		{"c_plus_plus", "c-plus-plus"},
		{"  Dev   Ops ", "dev-ops"},
		{"RUST", "rust"},
		{"--web--", "web"},
		{"🚀 GoLang!", "golang"},
		{"!!!", ""},
	}

	for _, tt := range tests {
		if got := NormalizeTagSlug(tt.input); got != tt.want {
			t.Errorf("NormalizeTagSlug(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestValidUsername(t *testing.T) {
	valid := []string{"gopher", "dev-42", "a1"}
	for _, u := range valid {
		if !ValidUsername(u) {
			t.Errorf("ValidUsername(%q) = false, want true", u)
		}
	}

	invalid := []string{"", "x", "-lead", "Has Space", "UPPER", "way-too-long-username-here"}
	for _, u := range invalid {
		if ValidUsername(u) {
			t.Errorf("ValidUsername(%q) = true, want false", u)
		}
	}
}
