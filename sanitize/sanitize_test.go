package sanitize_test

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/rpupo63/student-showcase-backend/sanitize"
)

func TestText(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"trims whitespace", "  hello  ", "hello"},
		{"strips control characters", "he\x00llo\x1fwor\x7fld", "helloworld"},
		{"keeps newline-free text intact", "a plain sentence", "a plain sentence"},
		{"strips embedded newlines", "line1\nline2", "line1line2"},
		{"empty stays empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := sanitize.Text(tt.input); got != tt.want {
				t.Fatalf("Text(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestText_CapsLength(t *testing.T) {
	long := strings.Repeat("a", 20000)
	got := sanitize.Text(long)
	if len(got) != 10000 {
		t.Fatalf("expected text capped at 10000, got %d", len(got))
	}
}

func TestText_CapsOnRuneBoundary(t *testing.T) {
	// a multibyte rune straddling the cap must be dropped whole, never split
	long := strings.Repeat("a", 9999) + "éé"
	got := sanitize.Text(long)
	if !utf8.ValidString(got) {
		t.Fatalf("Text produced invalid UTF-8: last bytes %x", got[len(got)-3:])
	}
	if n := utf8.RuneCountInString(got); n != 10000 {
		t.Fatalf("expected 10000 runes, got %d", n)
	}
	if !strings.HasSuffix(got, "é") {
		t.Fatalf("expected the first é kept intact, got trailing %q", got[len(got)-3:])
	}
}

func TestEmail(t *testing.T) {
	if got := sanitize.Email("  USER@Example.COM "); got != "user@example.com" {
		t.Fatalf("Email = %q, want user@example.com", got)
	}
}

func TestID(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain id untouched", "recAbc123", "recAbc123"},
		{"strips punctuation", "rec-Abc_123!", "recAbc123"},
		{"strips quotes", `rec'Abc"123`, "recAbc123"},
		{"strips formula injection", "x')=1,RECORD_ID()='y", "x1RECORDIDy"},
		{"only junk becomes empty", "'\")(", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := sanitize.ID(tt.input); got != tt.want {
				t.Fatalf("ID(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestIDs_DropsEmpty(t *testing.T) {
	got := sanitize.IDs([]string{"recA", "''", "recB"})
	if len(got) != 2 || got[0] != "recA" || got[1] != "recB" {
		t.Fatalf("IDs = %v, want [recA recB]", got)
	}
}

func TestURL(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"http accepted", "http://example.com/page", "http://example.com/page"},
		{"https accepted", "https://example.com", "https://example.com"},
		{"javascript scheme rejected", "javascript:alert(1)", ""},
		{"data scheme rejected", "data:text/html,<script></script>", ""},
		{"scheme-less rejected", "example.com", ""},
		{"unparsable rejected", "http://exa mple.com/%zz", ""},
		{"empty stays empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := sanitize.URL(tt.input); got != tt.want {
				t.Fatalf("URL(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestEscapeFormula(t *testing.T) {
	if got := sanitize.EscapeFormula(`it's "quoted"`); got != `it\'s \"quoted\"` {
		t.Fatalf("EscapeFormula = %q", got)
	}
}
