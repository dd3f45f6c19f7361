// internal/module/frontmatter.go
//
// Module files open with an optional metadata header fenced by `---` lines:
//
//	---
//	id: base-instructions
//	priority: 10
//	active: true
//	---
//
//	# Base Instructions
//	...
//
// The header is deliberately looser than YAML: each line is split on its
// first colon, lines without a colon are skipped, and only the literal
// true/yes/false/no tokens become booleans. Keys keep their order of
// appearance so listings can echo the file faithfully.

package module

import (
	"strconv"
	"strings"
)

// Delimiter is the line that opens and closes a module header block.
const Delimiter = "---"

// Frontmatter is the ordered key/value metadata parsed from a module header.
// Values are either string or bool.
type Frontmatter struct {
	keys   []string
	values map[string]any
}

// ParseFrontmatter extracts header metadata from module content. Content that
// does not start with the delimiter has no header and yields an empty
// Frontmatter; that is not an error.
func ParseFrontmatter(content string) Frontmatter {
	fm := Frontmatter{values: map[string]any{}}
	if !strings.HasPrefix(content, Delimiter) {
		return fm
	}
	lines := strings.Split(content, "\n")
	for _, line := range lines[1:] {
		if strings.TrimSpace(line) == Delimiter {
			break
		}
		key, value, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		fm.set(strings.TrimSpace(key), coerce(strings.TrimSpace(value)))
	}
	return fm
}

// coerce maps the boolean tokens to bool and leaves everything else a string.
func coerce(value string) any {
	switch strings.ToLower(value) {
	case "true", "yes":
		return true
	case "false", "no":
		return false
	}
	return value
}

func (f *Frontmatter) set(key string, value any) {
	if _, exists := f.values[key]; !exists {
		f.keys = append(f.keys, key)
	}
	f.values[key] = value
}

// Len reports the number of header keys.
func (f Frontmatter) Len() int { return len(f.keys) }

// Keys returns the header keys in order of first appearance.
func (f Frontmatter) Keys() []string {
	return append([]string{}, f.keys...)
}

// Get returns the raw value for key and whether the key is present.
func (f Frontmatter) Get(key string) (any, bool) {
	v, ok := f.values[key]
	return v, ok
}

// Has reports whether key appeared in the header.
func (f Frontmatter) Has(key string) bool {
	_, ok := f.values[key]
	return ok
}

// Bool returns the value for key as a boolean. A missing key yields fallback.
// String values follow truthiness: non-empty is true, empty is false.
func (f Frontmatter) Bool(key string, fallback bool) bool {
	v, ok := f.values[key]
	if !ok {
		return fallback
	}
	switch value := v.(type) {
	case bool:
		return value
	case string:
		return value != ""
	}
	return fallback
}

// Int returns the value for key as an integer. Missing or non-numeric values
// yield fallback.
func (f Frontmatter) Int(key string, fallback int) int {
	v, ok := f.values[key]
	if !ok {
		return fallback
	}
	s, ok := v.(string)
	if !ok {
		return fallback
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return fallback
	}
	return n
}

// String returns the value for key as a string. Missing keys yield fallback;
// boolean values render as "true"/"false".
func (f Frontmatter) String(key, fallback string) string {
	v, ok := f.values[key]
	if !ok {
		return fallback
	}
	switch value := v.(type) {
	case string:
		return value
	case bool:
		if value {
			return "true"
		}
		return "false"
	}
	return fallback
}

// StripHeader removes the fenced header block from module content, returning
// the body trimmed of surrounding whitespace. Content without a leading
// delimiter is returned verbatim, which makes stripping idempotent on
// already-stripped bodies.
func StripHeader(content string) string {
	if !strings.HasPrefix(content, Delimiter) {
		return content
	}
	parts := strings.SplitN(content, Delimiter, 3)
	if len(parts) < 3 {
		return content
	}
	return strings.TrimSpace(parts[2])
}
