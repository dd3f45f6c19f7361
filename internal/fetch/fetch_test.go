package fetch

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestFetchReturnsRemoteContent(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/context/base-instructions.md" {
			http.NotFound(w, r)
			return
		}
		w.Write([]byte("remote body"))
	}))
	defer server.Close()

	client := NewClient(WithBaseURL(server.URL))
	content, err := client.Fetch("context", "base-instructions")
	if err != nil {
		t.Fatalf("Fetch returned error: %v", err)
	}
	if content != "remote body" {
		t.Fatalf("content = %q", content)
	}
}

func TestFetchNonOKStatusIsError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer server.Close()

	if _, err := NewClient(WithBaseURL(server.URL)).Fetch("context", "missing"); err == nil {
		t.Fatalf("expected error for 404 response")
	}
}

func TestEnsureWritesRemoteContent(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("remote module"))
	}))
	defer server.Close()

	path := filepath.Join(t.TempDir(), "modules", "context", "base-instructions.md")
	source, err := NewClient(WithBaseURL(server.URL)).Ensure(path, "context", "base-instructions")
	if err != nil {
		t.Fatalf("Ensure returned error: %v", err)
	}
	if source != SourceRemote {
		t.Fatalf("source = %v, want remote", source)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "remote module" {
		t.Fatalf("file content = %q", data)
	}
}

func TestEnsureFallsBackToDefaultOnFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer server.Close()

	path := filepath.Join(t.TempDir(), "modules", "behavior", "flow-state.md")
	source, err := NewClient(WithBaseURL(server.URL)).Ensure(path, "behavior", "flow-state")
	if err != nil {
		t.Fatalf("Ensure returned error: %v", err)
	}
	if source != SourceDefault {
		t.Fatalf("source = %v, want default", source)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "# Flow State Mode") {
		t.Fatalf("expected fabricated flow-state content, got %q", data)
	}
}

func TestEnsureFallsBackWhenServerUnreachable(t *testing.T) {
	// A closed server guarantees a connection error.
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	path := filepath.Join(t.TempDir(), "modules", "task", "todo-management.md")
	source, err := NewClient(WithBaseURL(url)).Ensure(path, "task", "todo-management")
	if err != nil {
		t.Fatalf("Ensure returned error: %v", err)
	}
	if source != SourceDefault {
		t.Fatalf("source = %v, want default", source)
	}
}

func TestEnsureLeavesExistingFileAlone(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "base-instructions.md")
	if err := os.WriteFile(path, []byte("user edit"), 0o644); err != nil {
		t.Fatal(err)
	}
	source, err := NewClient().Ensure(path, "context", "base-instructions")
	if err != nil {
		t.Fatalf("Ensure returned error: %v", err)
	}
	if source != SourceExisting {
		t.Fatalf("source = %v, want existing", source)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "user edit" {
		t.Fatalf("existing file was rewritten: %q", data)
	}
}

func TestDefaultContentKnownModule(t *testing.T) {
	content := DefaultContent("base-instructions", "context")
	if !strings.Contains(content, "priority: 10") || !strings.Contains(content, "active: true") {
		t.Fatalf("base-instructions metadata wrong: %q", content)
	}
}

func TestDefaultContentGenericTemplate(t *testing.T) {
	content := DefaultContent("custom-thing", "task")
	for _, want := range []string{
		"id: custom-thing",
		"name: Custom Thing",
		"category: task",
		"priority: 5",
		"active: false",
		"# Custom Thing",
	} {
		if !strings.Contains(content, want) {
			t.Fatalf("generic template missing %q:\n%s", want, content)
		}
	}
}

func TestEnsureEssentialsFabricatesOffline(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	modulesDir := filepath.Join(t.TempDir(), "modules")
	reports := NewClient(WithBaseURL(url)).EnsureEssentials(modulesDir)
	if len(reports) != len(Essentials) {
		t.Fatalf("expected %d reports, got %d", len(Essentials), len(reports))
	}
	for _, report := range reports {
		if report.Err != nil {
			t.Fatalf("%s/%s: %v", report.Category, report.Name, report.Err)
		}
		if report.Source != SourceDefault {
			t.Fatalf("%s/%s: source = %v", report.Category, report.Name, report.Source)
		}
		path := filepath.Join(modulesDir, report.Category, report.Name+".md")
		if _, err := os.Stat(path); err != nil {
			t.Fatalf("essential module missing: %v", err)
		}
	}
}
