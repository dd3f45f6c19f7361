package module

import (
	"path/filepath"
	"strings"
)

// Extension is the filename suffix of module files.
const Extension = ".md"

// DefaultPriority is assumed when a module header omits the priority key or
// carries a non-numeric value.
const DefaultPriority = 5

// Module is the in-memory form of a single module file. Category comes from
// the immediate parent directory, everything else from the header.
type Module struct {
	// Path is the on-disk location the module was read from.
	Path string

	// ID defaults to the filename stem when the header has no id key.
	ID string

	// Name is the display name; defaults to a humanized form of the stem.
	Name string

	// Category is the name of the directory containing the file.
	Category string

	// Priority orders modules in compiled output, higher first.
	Priority int

	// Active controls inclusion in compiled output. A header without an
	// active key counts as active.
	Active bool

	// Empty marks files whose content is blank or whitespace-only. Empty
	// modules stay visible in listings but never compile.
	Empty bool

	// Content is the raw file content including any header block.
	Content string

	// Meta is the parsed header.
	Meta Frontmatter
}

// New builds a Module from a file's path and raw content.
func New(path, content string) Module {
	meta := ParseFrontmatter(content)
	stem := Stem(path)
	return Module{
		Path:     path,
		ID:       meta.String("id", stem),
		Name:     meta.String("name", Humanize(stem)),
		Category: filepath.Base(filepath.Dir(path)),
		Priority: meta.Int("priority", DefaultPriority),
		Active:   meta.Bool("active", true),
		Empty:    strings.TrimSpace(content) == "",
		Content:  content,
		Meta:     meta,
	}
}

// Body returns the module content with the header block stripped.
func (m Module) Body() string {
	return StripHeader(m.Content)
}

// Stem returns the filename without directory or extension.
func Stem(path string) string {
	return strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
}

// Humanize turns a module stem like "todo-management" into "Todo Management".
func Humanize(stem string) string {
	replacer := strings.NewReplacer("-", " ", "_", " ")
	parts := strings.Fields(replacer.Replace(strings.TrimSpace(stem)))
	for i, part := range parts {
		lower := strings.ToLower(part)
		parts[i] = strings.ToUpper(lower[:1]) + lower[1:]
	}
	return strings.Join(parts, " ")
}
