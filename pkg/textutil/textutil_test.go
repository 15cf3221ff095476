package textutil

import "testing"

func TestCollapseWhitespace(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"Empty", "", ""},
		{"Already clean", "a b c", "a b c"},
		{"Tabs and newlines", "a\t\tb\n\nc", "a b c"},
		{"Leading and trailing", "  padded  ", "padded"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CollapseWhitespace(tt.input); got != tt.want {
				t.Errorf("CollapseWhitespace(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestTruncate(t *testing.T) {
	if got := Truncate("short", 10); got != "short" {
		t.Errorf("Truncate kept = %q, want %q", got, "short")
	}

	if got := Truncate("abcdefgh", 4); got != "abcd..." {
		t.Errorf("Truncate cut = %q, want %q", got, "abcd...")
	}

	// Rune-safe truncation for non-ASCII text
	if got := Truncate("разработчик", 6); got != "разраб..." {
		t.Errorf("Truncate cyrillic = %q, want %q", got, "разраб...")
	}

	if got := Truncate("anything", 0); got != "" {
		t.Errorf("Truncate zero length = %q, want empty", got)
	}
}
