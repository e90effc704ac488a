package storage

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestCleanName(t *testing.T) {
	tests := map[string]string{
		"a.png":            "a.png",
		"/a.png":           "a.png",
		"../../etc/passwd": "etc/passwd",
		"x/../y.png":       "y.png",
		`..\..\win.ini`:    "win.ini",
		"":                 "",
		"/":                "",
	}
	for in, want := range tests {
		if got := CleanName(in); got != want {
			t.Errorf("CleanName(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestLocalStore_PutGet(t *testing.T) {
	dir := t.TempDir()
	store, err := NewLocalStore(dir)
	if err != nil {
		t.Fatalf("NewLocalStore() error = %v", err)
	}
	ctx := context.Background()

	if err := store.Put(ctx, "pic.png", strings.NewReader("PNGDATA"), 7, "image/png"); err != nil {
		t.Fatalf("Put() error = %v", err)
	}

	obj, err := store.Get(ctx, "/pic.png")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	defer obj.Body.Close()

	body, _ := io.ReadAll(obj.Body)
	if string(body) != "PNGDATA" {
		t.Errorf("body = %q, want %q", body, "PNGDATA")
	}
	if obj.Size != 7 {
		t.Errorf("Size = %d, want 7", obj.Size)
	}
	if obj.ContentType != "image/png" {
		t.Errorf("ContentType = %q, want image/png", obj.ContentType)
	}
}

func TestLocalStore_GetMissingAndDirectories(t *testing.T) {
	dir := t.TempDir()
	if err := os.Mkdir(filepath.Join(dir, "sub"), 0o755); err != nil {
		t.Fatal(err)
	}
	store, err := NewLocalStore(dir)
	if err != nil {
		t.Fatal(err)
	}

	for _, name := range []string{"nope.png", "sub", "", "../outside"} {
		if _, err := store.Get(context.Background(), name); !errors.Is(err, ErrObjectNotFound) {
			t.Errorf("Get(%q) error = %v, want ErrObjectNotFound", name, err)
		}
	}
}

func TestLocalStore_StaysInsideDir(t *testing.T) {
	root := t.TempDir()
	dir := filepath.Join(root, "uploads")
	if err := os.WriteFile(filepath.Join(root, "secret.txt"), []byte("secret"), 0o600); err != nil {
		t.Fatal(err)
	}
	store, err := NewLocalStore(dir)
	if err != nil {
		t.Fatal(err)
	}

	if _, err := store.Get(context.Background(), "../secret.txt"); !errors.Is(err, ErrObjectNotFound) {
		t.Errorf("Get(../secret.txt) error = %v, want ErrObjectNotFound", err)
	}
}
