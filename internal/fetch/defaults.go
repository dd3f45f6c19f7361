// internal/fetch/defaults.go
//
// The local fabricator: deterministic default content for the well-known
// modules, and a generic template for everything else. This is the
// guaranteed backstop when the remote source is unreachable, so it has no
// failure mode beyond plain filesystem errors.

package fetch

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/mjbommar/quick-claude/internal/module"
)

const baseInstructionsContent = `---
id: base-instructions
name: Base Instructions
category: context
priority: 10
active: true
---

# Base Instructions

You are Claude, an AI assistant created by Anthropic.

## Core Principles
- Be helpful, harmless, and honest
- Follow user instructions precisely
- Maintain context awareness
- Use modern development practices
`

const projectStructureContent = `---
id: project-structure
name: Project Structure
category: context
priority: 8
active: true
---

# Project Organization

Maintain clean project structure:
- Use .claude/ for module system
- Keep CLAUDE.md updated
- Document decisions in log.md
- Track tasks in todo/
`

const flowStateContent = `---
id: flow-state
name: Flow State Mode
category: behavior
priority: 7
active: false
---

# Flow State Mode

When activated, prioritize uninterrupted progress.
Make reasonable assumptions and batch operations.
`

const pythonModernContent = `---
id: python-modern
name: Modern Python Development
category: tech
priority: 9
active: false
---

# Modern Python Development

## Package Management
- Use ` + "`uv add <package>`" + ` for dependencies
- Use ` + "`uvx <tool>`" + ` for development tools
- Never use pip or pip3

## Tools
- Type check: ` + "`uvx mypy <files>`" + `
- Format: ` + "`uvx ruff format <files>`" + `
- Lint: ` + "`uvx ruff check --fix <files>`" + `
`

var knownDefaults = map[string]string{
	"base-instructions": baseInstructionsContent,
	"project-structure": projectStructureContent,
	"flow-state":        flowStateContent,
	"python-modern":     pythonModernContent,
}

const genericTemplate = `---
id: %s
name: %s
category: %s
priority: 5
active: false
---

# %s

Module content here.
`

// DefaultContent returns the fabricated content for a module. Well-known
// names get their fixed prose; anything else gets the generic template.
func DefaultContent(name, category string) string {
	if content, ok := knownDefaults[name]; ok {
		return content
	}
	title := module.Humanize(name)
	return fmt.Sprintf(genericTemplate, name, title, category, title)
}

// WriteDefault fabricates the module at path, creating parent directories as
// needed.
func WriteDefault(path, name, category string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("fetch: create %s: %w", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, []byte(DefaultContent(name, category)), 0o644); err != nil {
		return fmt.Errorf("fetch: write default %s: %w", path, err)
	}
	return nil
}
