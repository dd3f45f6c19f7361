package module

import "testing"

const sampleContent = `---
id: base-instructions
name: Base Instructions
priority: 10
active: true
---

# Base Instructions

Body text.
`

func TestParseFrontmatter(t *testing.T) {
	fm := ParseFrontmatter(sampleContent)
	if got := fm.String("id", ""); got != "base-instructions" {
		t.Fatalf("id = %q", got)
	}
	if got := fm.String("name", ""); got != "Base Instructions" {
		t.Fatalf("name = %q", got)
	}
	if got := fm.Int("priority", DefaultPriority); got != 10 {
		t.Fatalf("priority = %d", got)
	}
	if !fm.Bool("active", false) {
		t.Fatalf("active should parse as true")
	}
}

func TestParseFrontmatterWithoutHeader(t *testing.T) {
	fm := ParseFrontmatter("# Just a body\n\nNo header here.\n")
	if fm.Len() != 0 {
		t.Fatalf("expected empty frontmatter, got %d keys", fm.Len())
	}
	if fm.Has("active") {
		t.Fatalf("active must be absent")
	}
}

func TestParseFrontmatterBooleanTokens(t *testing.T) {
	cases := []struct {
		raw  string
		want bool
	}{
		{"true", true},
		{"True", true},
		{"YES", true},
		{"false", false},
		{"No", false},
	}
	for _, tc := range cases {
		fm := ParseFrontmatter("---\nactive: " + tc.raw + "\n---\nbody")
		v, ok := fm.Get("active")
		if !ok {
			t.Fatalf("%q: active missing", tc.raw)
		}
		b, ok := v.(bool)
		if !ok {
			t.Fatalf("%q: expected bool, got %T", tc.raw, v)
		}
		if b != tc.want {
			t.Fatalf("%q: got %v want %v", tc.raw, b, tc.want)
		}
	}
}

func TestParseFrontmatterNonBooleanStaysString(t *testing.T) {
	fm := ParseFrontmatter("---\nmode: focus\n---\nbody")
	v, ok := fm.Get("mode")
	if !ok {
		t.Fatalf("mode missing")
	}
	if s, ok := v.(string); !ok || s != "focus" {
		t.Fatalf("expected string \"focus\", got %T %v", v, v)
	}
}

func TestParseFrontmatterSplitsOnFirstColon(t *testing.T) {
	fm := ParseFrontmatter("---\nurl: https://example.com/path\n---\nbody")
	if got := fm.String("url", ""); got != "https://example.com/path" {
		t.Fatalf("url = %q", got)
	}
}

func TestParseFrontmatterIgnoresColonFreeLines(t *testing.T) {
	fm := ParseFrontmatter("---\njust a note\npriority: 7\n---\nbody")
	if fm.Len() != 1 {
		t.Fatalf("expected 1 key, got %d", fm.Len())
	}
	if got := fm.Int("priority", DefaultPriority); got != 7 {
		t.Fatalf("priority = %d", got)
	}
}

func TestParseFrontmatterPreservesKeyOrder(t *testing.T) {
	fm := ParseFrontmatter("---\nbeta: 1\nalpha: 2\ngamma: 3\n---\nbody")
	keys := fm.Keys()
	want := []string{"beta", "alpha", "gamma"}
	if len(keys) != len(want) {
		t.Fatalf("got %d keys", len(keys))
	}
	for i := range want {
		if keys[i] != want[i] {
			t.Fatalf("keys[%d] = %q, want %q", i, keys[i], want[i])
		}
	}
}

func TestIntFallsBackOnNonNumeric(t *testing.T) {
	fm := ParseFrontmatter("---\npriority: high\n---\nbody")
	if got := fm.Int("priority", DefaultPriority); got != DefaultPriority {
		t.Fatalf("priority = %d, want default %d", got, DefaultPriority)
	}
}

func TestStripHeader(t *testing.T) {
	body := StripHeader(sampleContent)
	want := "# Base Instructions\n\nBody text."
	if body != want {
		t.Fatalf("stripped body = %q, want %q", body, want)
	}
}

func TestStripHeaderIdempotent(t *testing.T) {
	once := StripHeader(sampleContent)
	twice := StripHeader(once)
	if once != twice {
		t.Fatalf("stripping a stripped body changed it: %q vs %q", once, twice)
	}
}

func TestStripHeaderWithoutHeaderIsVerbatim(t *testing.T) {
	content := "plain body\nwith lines\n"
	if got := StripHeader(content); got != content {
		t.Fatalf("headerless content changed: %q", got)
	}
}
