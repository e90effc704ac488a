package content

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"cobra/site/internal/models"
)

func TestFilename_KnownCollections(t *testing.T) {
	for _, c := range models.Collections {
		name, err := Filename(c)
		if err != nil {
			t.Fatalf("Filename(%q) error = %v", c, err)
		}
		if want := string(c) + ".json"; name != want {
			t.Errorf("Filename(%q) = %q, want %q", c, name, want)
		}
	}
}

func TestLookup_RejectsUnknownAndTraversal(t *testing.T) {
	for _, name := range []string{"", "usuarios", "../productos", "productos.json", "productos/../x"} {
		if _, ok := Lookup(name); ok {
			t.Errorf("Lookup(%q) = ok, want rejected", name)
		}
	}
	if c, ok := Lookup("comunidad"); !ok || c != models.CollectionCommunity {
		t.Errorf("Lookup(comunidad) = %q, %v", c, ok)
	}
}

func TestRead_ValidDocument(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "productos.json"), []byte("[\n  {\"id\": 1, \"name\": \"A\"}\n]\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	got, err := NewStore(dir).Read(context.Background(), models.CollectionProducts)
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	if want := `[{"id":1,"name":"A"}]`; string(got) != want {
		t.Errorf("Read() = %s, want %s", got, want)
	}
}

func TestRead_MissingFile(t *testing.T) {
	_, err := NewStore(t.TempDir()).Read(context.Background(), models.CollectionPrograms)
	if err == nil {
		t.Fatal("expected error for missing file")
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("error = %v, want wrapping os.ErrNotExist", err)
	}
}

func TestRead_MalformedDocument(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "promociones.json"), []byte(`{"a":`), 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := NewStore(dir).Read(context.Background(), models.CollectionPromotions)
	if !errors.Is(err, ErrMalformed) {
		t.Errorf("error = %v, want ErrMalformed", err)
	}
}

func TestRead_UnknownCollection(t *testing.T) {
	_, err := NewStore(t.TempDir()).Read(context.Background(), models.Collection("../etc/passwd"))
	if !errors.Is(err, ErrUnknownCollection) {
		t.Errorf("error = %v, want ErrUnknownCollection", err)
	}
}

func TestWrite_ReplacesDocument(t *testing.T) {
	dir := t.TempDir()
	store := NewStore(dir)
	ctx := context.Background()

	if err := store.Write(ctx, models.CollectionCommunity, []byte(`{"members":[]}`)); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	if err := store.Write(ctx, models.CollectionCommunity, []byte(`{"members":["x"]}`)); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	got, err := store.Read(ctx, models.CollectionCommunity)
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	if want := `{"members":["x"]}`; string(got) != want {
		t.Errorf("Read() = %s, want %s", got, want)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Errorf("data dir has %d entries, want 1 (no temp leftovers)", len(entries))
	}
}

func TestWrite_RejectsMalformed(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "productos.json")
	if err := os.WriteFile(path, []byte(`[1]`), 0o644); err != nil {
		t.Fatal(err)
	}

	err := NewStore(dir).Write(context.Background(), models.CollectionProducts, []byte(`[1,`))
	if !errors.Is(err, ErrMalformed) {
		t.Fatalf("error = %v, want ErrMalformed", err)
	}

	raw, _ := os.ReadFile(path)
	if string(raw) != `[1]` {
		t.Errorf("file = %s, want unchanged", raw)
	}
}
