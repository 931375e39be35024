package s3

import "testing"

func TestApplyPrefix(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		prefix string
		key    string
		want   string
	}{
		{name: "no prefix", prefix: "", key: "1700-report.txt", want: "1700-report.txt"},
		{name: "simple prefix", prefix: "docs", key: "1700-report.txt", want: "docs/1700-report.txt"},
		{name: "prefix trailing slash", prefix: "docs/", key: "1700-report.txt", want: "docs/1700-report.txt"},
		{name: "prefix and key slashes", prefix: "/docs/", key: "/1700-report.txt", want: "docs/1700-report.txt"},
		{name: "nested prefix", prefix: "docs/sub", key: "1700-report.txt", want: "docs/sub/1700-report.txt"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := applyPrefix(tt.prefix, tt.key); got != tt.want {
				t.Fatalf("applyPrefix(%q, %q) = %q, want %q", tt.prefix, tt.key, got, tt.want)
			}
		})
	}
}

func TestStripPrefixRoundTrip(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		prefix string
		key    string
	}{
		{name: "no prefix", prefix: "", key: "1700-report.txt"},
		{name: "simple prefix", prefix: "docs", key: "1700-report.txt"},
		{name: "nested prefix", prefix: "docs/sub", key: "1700-report.txt"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			full := applyPrefix(tt.prefix, tt.key)
			if got := stripPrefix(tt.prefix, full); got != tt.key {
				t.Fatalf("stripPrefix(%q, %q) = %q, want %q", tt.prefix, full, got, tt.key)
			}
		})
	}
}
