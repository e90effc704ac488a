package web

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestTemplates_Embedded(t *testing.T) {
	tmpl, err := Templates("")
	if err != nil {
		t.Fatalf("Templates() error = %v", err)
	}

	var buf bytes.Buffer
	err = tmpl.ExecuteTemplate(&buf, LoginTemplate, map[string]any{"Invalid": true})
	if err != nil {
		t.Fatalf("execute login: %v", err)
	}
	if !strings.Contains(buf.String(), `class="error"`) {
		t.Error("login page does not show the error message")
	}
}

func TestTemplates_ViewsOverride(t *testing.T) {
	dir := t.TempDir()
	files := map[string]string{
		IndexTemplate: "custom index",
		LoginTemplate: "custom login",
		AdminTemplate: "custom admin",
	}
	for name, body := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	tmpl, err := Templates(dir)
	if err != nil {
		t.Fatalf("Templates() error = %v", err)
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, IndexTemplate, nil); err != nil {
		t.Fatal(err)
	}
	if buf.String() != "custom index" {
		t.Errorf("index = %q, want override", buf.String())
	}
}

func TestTemplates_ViewsDirWithoutIndexFallsBack(t *testing.T) {
	tmpl, err := Templates(t.TempDir())
	if err != nil {
		t.Fatalf("Templates() error = %v", err)
	}
	if tmpl.Lookup(AdminTemplate) == nil {
		t.Error("embedded admin template missing")
	}
}

func TestTemplates_IncompleteOverride(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, IndexTemplate), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Templates(dir); err == nil {
		t.Error("Templates() error = nil, want missing template error")
	}
}
