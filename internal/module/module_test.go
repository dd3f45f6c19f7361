package module

import (
	"path/filepath"
	"testing"
)

func TestNewDerivesDefaults(t *testing.T) {
	path := filepath.Join("store", "context", "project-structure.md")
	m := New(path, "# Project Structure\n\nKeep it tidy.\n")
	if m.ID != "project-structure" {
		t.Fatalf("ID = %q", m.ID)
	}
	if m.Name != "Project Structure" {
		t.Fatalf("Name = %q", m.Name)
	}
	if m.Category != "context" {
		t.Fatalf("Category = %q", m.Category)
	}
	if m.Priority != DefaultPriority {
		t.Fatalf("Priority = %d", m.Priority)
	}
	if !m.Active {
		t.Fatalf("module without active key must default to active")
	}
	if m.Empty {
		t.Fatalf("module with content must not be empty")
	}
}

func TestNewReadsHeader(t *testing.T) {
	content := "---\nid: custom\nname: Custom Name\npriority: 9\nactive: no\n---\n\nbody\n"
	m := New(filepath.Join("store", "tech", "thing.md"), content)
	if m.ID != "custom" {
		t.Fatalf("ID = %q", m.ID)
	}
	if m.Name != "Custom Name" {
		t.Fatalf("Name = %q", m.Name)
	}
	if m.Priority != 9 {
		t.Fatalf("Priority = %d", m.Priority)
	}
	if m.Active {
		t.Fatalf("active: no must deactivate")
	}
	if m.Body() != "body" {
		t.Fatalf("Body = %q", m.Body())
	}
}

func TestNewMarksWhitespaceOnlyEmpty(t *testing.T) {
	m := New(filepath.Join("store", "task", "blank.md"), "  \n\t\n")
	if !m.Empty {
		t.Fatalf("whitespace-only content must be empty")
	}
}

func TestHumanize(t *testing.T) {
	cases := map[string]string{
		"todo-management": "Todo Management",
		"flow_state":      "Flow State",
		"solo":            "Solo",
	}
	for in, want := range cases {
		if got := Humanize(in); got != want {
			t.Fatalf("Humanize(%q) = %q, want %q", in, got, want)
		}
	}
}
