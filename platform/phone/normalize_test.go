package phone

import "testing"

func TestNormalizeE164(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"local format", "0532 123 45 67", "+905321234567"},
		{"already e164", "+905321234567", "+905321234567"},
		{"international with spaces", "+90 532 123 45 67", "+905321234567"},
		{"garbage passes through", "not a number", "not a number"},
		{"empty", "", ""},
		{"whitespace only", "   ", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeE164(tt.input); got != tt.want {
				t.Errorf("NormalizeE164(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
