package utils

import "testing"

func TestIsBlank(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"", true},
		{"   ", true},
		{"\t\n", true},
		{"x", false},
		{" x ", false},
	}

	for _, tt := range tests {
		if got := IsBlank(tt.in); got != tt.want {
			t.Errorf("IsBlank(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestNormalizeWhitespace(t *testing.T) {
	if got := NormalizeWhitespace("  Area   25\tLilongwe "); got != "Area 25 Lilongwe" {
		t.Errorf("NormalizeWhitespace() = %q", got)
	}
}

func TestTruncateString(t *testing.T) {
	if got := TruncateString("abcdef", 3); got != "abc..." {
		t.Errorf("TruncateString() = %q, want abc...", got)
	}

	if got := TruncateString("abc", 10); got != "abc" {
		t.Errorf("TruncateString() = %q, want abc", got)
	}
}

func TestIsMissing(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"", true},
		{"  ", true},
		{"NaN", true},
		{" N/A ", true},
		{"NULL", true},
		{"none", false},
		{"0", false},
		{"Nancy", false},
	}

	for _, tt := range tests {
		if got := IsMissing(tt.in); got != tt.want {
			t.Errorf("IsMissing(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestFirstPresent(t *testing.T) {
	if got := FirstPresent("nan", "", "hospital"); got != "hospital" {
		t.Errorf("FirstPresent() = %q, want hospital", got)
	}
}
