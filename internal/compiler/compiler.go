// internal/compiler/compiler.go
//
// The compiler is the heart of cm: scan the store, keep the active modules,
// order them by priority, and write the merged CLAUDE.md. The output file is
// regenerated from scratch on every run; there is no merging with whatever
// was there before.

package compiler

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/mjbommar/quick-claude/internal/config"
	"github.com/mjbommar/quick-claude/internal/module"
	"github.com/mjbommar/quick-claude/internal/store"
)

// Compiler produces the merged output document from the module store.
type Compiler struct {
	cfg   *config.Config
	store *store.Store
	now   func() time.Time
}

// Option customizes a Compiler during construction.
type Option func(*Compiler)

// WithClock overrides the clock used for the generation timestamp.
func WithClock(clock func() time.Time) Option {
	return func(c *Compiler) {
		c.now = clock
	}
}

// New builds a compiler for the project described by cfg.
func New(cfg *config.Config, opts ...Option) *Compiler {
	c := &Compiler{
		cfg:   cfg,
		store: store.New(cfg.ModulesDir()),
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Result describes a completed compile.
type Result struct {
	// Path is where the output document was written.
	Path string

	// Modules are the documents included, in output order.
	Modules []module.Module

	// ProjectType is the detected project label, empty when none matched.
	ProjectType string
}

// Compile scans the store, selects the active non-empty modules, sorts them
// by priority (highest first, scan order on ties), renders the output
// document, and overwrites the output file.
func (c *Compiler) Compile() (Result, error) {
	mods, err := c.store.Modules()
	if err != nil {
		return Result{}, fmt.Errorf("compiler: %w", err)
	}

	included := make([]module.Module, 0, len(mods))
	for _, m := range mods {
		// Absence of the active key means included; only an explicit
		// falsy value excludes a module.
		if m.Empty || !m.Active {
			continue
		}
		included = append(included, m)
	}
	sort.SliceStable(included, func(i, j int) bool {
		return included[i].Priority > included[j].Priority
	})

	result := Result{
		Path:        c.cfg.OutputPath(),
		Modules:     included,
		ProjectType: DetectProjectType(c.cfg.ProjectDir),
	}
	rendered := c.render(result)
	if err := os.WriteFile(result.Path, []byte(rendered), 0o644); err != nil {
		return Result{}, fmt.Errorf("compiler: write %s: %w", result.Path, err)
	}
	return result, nil
}

func (c *Compiler) render(result Result) string {
	lines := []string{
		"# CLAUDE.md - Project Context",
		"Generated: " + c.now().Format(time.RFC3339),
		fmt.Sprintf("Modules: %d", len(result.Modules)),
		"",
	}
	if result.ProjectType != "" {
		lines = append(lines, "Project Type: "+result.ProjectType, "")
	}
	for _, m := range result.Modules {
		lines = append(lines, m.Body(), "", module.Delimiter, "")
	}
	return strings.Join(lines, "\n")
}

// projectMarkers map well-known manifest files to a project type label.
// Order matters: the first present marker wins.
var projectMarkers = []struct {
	file  string
	label string
}{
	{"package.json", "node"},
	{"pyproject.toml", "python"},
	{"requirements.txt", "python"},
	{"Cargo.toml", "rust"},
	{"go.mod", "go"},
}

// DetectProjectType inspects the project directory for well-known manifest
// files and returns a language label, or "" when nothing matches.
func DetectProjectType(dir string) string {
	for _, marker := range projectMarkers {
		if _, err := os.Stat(filepath.Join(dir, marker.file)); err == nil {
			return marker.label
		}
	}
	return ""
}
