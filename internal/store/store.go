// internal/store/store.go
//
// The store is the directory of module files under .claude/modules. There is
// no index and no cache: every operation walks the tree and re-reads the
// files, which keeps results fresh and is cheap at the scale of tens of
// modules.

package store

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"

	"github.com/mjbommar/quick-claude/internal/module"
)

// activeLinePattern locates the line rewritten by activation toggling. Only
// the matched span changes; every other byte of the file is preserved.
var activeLinePattern = regexp.MustCompile(`(?m)^active:\s*\w+`)

// Store reads and mutates module files rooted at a single directory.
type Store struct {
	root string
}

// New builds a store over the given modules directory.
func New(root string) *Store {
	return &Store{root: root}
}

// Root returns the modules directory the store walks.
func (s *Store) Root() string { return s.root }

// Modules walks the store and returns every module file found, in traversal
// order. A missing root directory is treated as an empty store.
func (s *Store) Modules() ([]module.Module, error) {
	var mods []module.Module
	err := filepath.WalkDir(s.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || filepath.Ext(d.Name()) != module.Extension {
			return nil
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		mods = append(mods, module.New(path, string(data)))
		return nil
	})
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("store: scan %s: %w", s.root, err)
	}
	return mods, nil
}

// ToggleResult reports the outcome of an activation sweep.
type ToggleResult struct {
	// Matched holds the stems of every module whose filename matched the
	// fragment, whether or not its content changed.
	Matched []string

	// Changed counts the files actually rewritten. A matched file without
	// an active: line is left byte-for-byte intact and not counted.
	Changed int
}

// Found reports whether any module matched the fragment.
func (r ToggleResult) Found() bool { return len(r.Matched) > 0 }

// Activate flips the active flag to true in every module whose filename
// contains fragment.
func (s *Store) Activate(fragment string) (ToggleResult, error) {
	return s.setActive(fragment, true)
}

// Deactivate flips the active flag to false in every module whose filename
// contains fragment.
func (s *Store) Deactivate(fragment string) (ToggleResult, error) {
	return s.setActive(fragment, false)
}

func (s *Store) setActive(fragment string, active bool) (ToggleResult, error) {
	pattern := "*" + fragment + "*" + module.Extension
	replacement := "active: false"
	if active {
		replacement = "active: true"
	}

	var result ToggleResult
	err := filepath.WalkDir(s.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		matched, matchErr := filepath.Match(pattern, d.Name())
		if matchErr != nil {
			return fmt.Errorf("store: bad fragment %q: %w", fragment, matchErr)
		}
		if !matched {
			return nil
		}
		result.Matched = append(result.Matched, module.Stem(path))

		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		content := string(data)
		loc := activeLinePattern.FindStringIndex(content)
		if loc == nil {
			// No active: line to rewrite; adding one is not our job.
			return nil
		}
		updated := content[:loc[0]] + replacement + content[loc[1]:]
		if updated == content {
			return nil
		}
		if err := os.WriteFile(path, []byte(updated), 0o644); err != nil {
			return err
		}
		result.Changed++
		return nil
	})
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return ToggleResult{}, nil
		}
		return ToggleResult{}, fmt.Errorf("store: toggle %q: %w", fragment, err)
	}
	return result, nil
}
