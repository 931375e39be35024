package util

import (
	"testing"
	"time"
)

func TestSanitizeFileName(t *testing.T) {
	cases := []struct {
		name    string
		in      string
		want    string
		wantErr bool
	}{
		{"plain", "report.pdf", "report.pdf", false},
		{"spaces and unicode", "q3 report (final).pdf", "q3_report__final_.pdf", false},
		{"path separators", "a/b\\c.txt", "a_b_c.txt", false},
		{"traversal rejected", "../etc/passwd", "", true},
		{"empty rejected", "   ", "", true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := SanitizeFileName(tc.in)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("expected error, got %q", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tc.want {
				t.Fatalf("got %q, want %q", got, tc.want)
			}
		})
	}
}

func TestTimestampKeyRoundTrip(t *testing.T) {
	now := time.UnixMilli(1700000000000)
	key := TimestampKey("notes.txt", now)
	if key != "1700000000000-notes.txt" {
		t.Fatalf("unexpected key %q", key)
	}
	if got := StripTimestampPrefix(key); got != "notes.txt" {
		t.Fatalf("strip prefix got %q", got)
	}
}

func TestDisplayName(t *testing.T) {
	cases := map[string]string{
		"1700000000000-notes.txt": "notes.txt",
		"plain.txt":               "plain.txt",
		"dir/1700000000000-a.pdf": "a.pdf",
	}
	for in, want := range cases {
		if got := DisplayName(in); got != want {
			t.Fatalf("DisplayName(%q) = %q, want %q", in, got, want)
		}
	}
}
