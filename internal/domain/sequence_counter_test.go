package domain

import "testing"

func TestFormatSequence(t *testing.T) {
	tests := []struct {
		prefix string
		number int64
		want   string
	}{
		{"ACC", 1, "ACC0000001"},
		{"CORP", 42, "CORP0000042"},
		{"TXN", 1234567, "TXN1234567"},
		{"TXN", 12345678, "TXN12345678"},
		{"", 7, "0000007"},
	}

	for _, tt := range tests {
		if got := FormatSequence(tt.prefix, tt.number); got != tt.want {
			t.Fatalf("FormatSequence(%q, %d) = %q, want %q", tt.prefix, tt.number, got, tt.want)
		}
	}
}
