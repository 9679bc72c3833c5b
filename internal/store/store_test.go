package store

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestOSCreateReadWrite(t *testing.T) {
	dir := t.TempDir()
	s := NewOS()
	path := filepath.Join(dir, "note.md")

	if err := s.CreateText(path, "hello"); err != nil {
		t.Fatalf("CreateText returned error: %v", err)
	}

	content, err := s.ReadText(path)
	if err != nil {
		t.Fatalf("ReadText returned error: %v", err)
	}
	if content != "hello" {
		t.Errorf("ReadText = %q, want %q", content, "hello")
	}

	if err := s.WriteText(path, "updated"); err != nil {
		t.Fatalf("WriteText returned error: %v", err)
	}
	content, _ = s.ReadText(path)
	if content != "updated" {
		t.Errorf("after WriteText content = %q, want %q", content, "updated")
	}
}

func TestOSCreateTextRejectsExisting(t *testing.T) {
	dir := t.TempDir()
	s := NewOS()
	path := filepath.Join(dir, "note.md")

	if err := s.CreateText(path, "first"); err != nil {
		t.Fatalf("CreateText returned error: %v", err)
	}

	err := s.CreateText(path, "second")
	if err == nil {
		t.Fatal("expected CreateText to fail for an existing file")
	}

	var storageErr *StorageError
	if !errors.As(err, &storageErr) {
		t.Fatalf("expected *StorageError, got %T", err)
	}

	content, _ := s.ReadText(path)
	if content != "first" {
		t.Errorf("existing content clobbered: %q", content)
	}
}

func TestOSResolve(t *testing.T) {
	dir := t.TempDir()
	s := NewOS()

	kind, err := s.Resolve(filepath.Join(dir, "missing"))
	if err != nil || kind != Absent {
		t.Errorf("Resolve(missing) = %v, %v; want Absent, nil", kind, err)
	}

	sub := filepath.Join(dir, "sub")
	if err := s.CreateDirectory(sub); err != nil {
		t.Fatalf("CreateDirectory returned error: %v", err)
	}
	if kind, _ := s.Resolve(sub); kind != Directory {
		t.Errorf("Resolve(sub) = %v, want Directory", kind)
	}

	file := filepath.Join(dir, "f.md")
	if err := os.WriteFile(file, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	if kind, _ := s.Resolve(file); kind != File {
		t.Errorf("Resolve(file) = %v, want File", kind)
	}
}

func TestOSEnumerateChildren(t *testing.T) {
	dir := t.TempDir()
	s := NewOS()

	if err := os.MkdirAll(filepath.Join(dir, "Jane Doe"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "stray.md"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	entries, err := s.EnumerateChildren(dir)
	if err != nil {
		t.Fatalf("EnumerateChildren returned error: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}

	found := map[string]bool{}
	for _, e := range entries {
		found[e.Name] = e.IsDir
	}
	if isDir, ok := found["Jane Doe"]; !ok || !isDir {
		t.Errorf("expected Jane Doe directory in entries: %v", found)
	}
	if isDir, ok := found["stray.md"]; !ok || isDir {
		t.Errorf("expected stray.md file in entries: %v", found)
	}
}
