// Package store abstracts the document store the organizer operates on.
//
// The interface mirrors the primitives a hosting editor exposes for its
// vault: enumerate, read, write, create, resolve, and modification time.
// The OS implementation backs those primitives with the local filesystem.
package store

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Kind classifies what a path resolves to.
type Kind int

const (
	Absent Kind = iota
	File
	Directory
)

// Entry describes one child of an enumerated directory.
type Entry struct {
	Name  string
	Path  string
	IsDir bool
}

// Store is the document-store surface consumed by the core components.
type Store interface {
	EnumerateChildren(path string) ([]Entry, error)
	ReadText(path string) (string, error)
	WriteText(path, content string) error
	CreateText(path, content string) error
	CreateDirectory(path string) error
	Resolve(path string) (Kind, error)
	ModTime(path string) (time.Time, error)
}

// StorageError reports a failed document-store operation. It is always
// caught at the boundary of the component that issued the operation.
type StorageError struct {
	Op   string
	Path string
	Err  error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("store: %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

func storageErr(op, path string, err error) error {
	return &StorageError{Op: op, Path: path, Err: err}
}

// OS is the filesystem-backed store.
type OS struct{}

// NewOS returns a store rooted in the local filesystem.
func NewOS() *OS {
	return &OS{}
}

func (s *OS) EnumerateChildren(path string) ([]Entry, error) {
	dirEntries, err := os.ReadDir(path)
	if err != nil {
		return nil, storageErr("enumerate", path, err)
	}

	entries := make([]Entry, 0, len(dirEntries))
	for _, de := range dirEntries {
		entries = append(entries, Entry{
			Name:  de.Name(),
			Path:  filepath.Join(path, de.Name()),
			IsDir: de.IsDir(),
		})
	}

	return entries, nil
}

func (s *OS) ReadText(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", storageErr("read", path, err)
	}
	return string(data), nil
}

func (s *OS) WriteText(path, content string) error {
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return storageErr("write", path, err)
	}
	return nil
}

func (s *OS) CreateText(path, content string) error {
	file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return storageErr("create", path, err)
	}

	if _, err := file.WriteString(content); err != nil {
		file.Close()
		os.Remove(path)
		return storageErr("create", path, err)
	}

	if err := file.Close(); err != nil {
		return storageErr("create", path, err)
	}

	return nil
}

func (s *OS) CreateDirectory(path string) error {
	if err := os.MkdirAll(path, 0o755); err != nil {
		return storageErr("mkdir", path, err)
	}
	return nil
}

func (s *OS) Resolve(path string) (Kind, error) {
	info, err := os.Stat(path)
	if err == nil {
		if info.IsDir() {
			return Directory, nil
		}
		return File, nil
	}

	if os.IsNotExist(err) {
		return Absent, nil
	}

	return Absent, storageErr("resolve", path, err)
}

func (s *OS) ModTime(path string) (time.Time, error) {
	info, err := os.Stat(path)
	if err != nil {
		return time.Time{}, storageErr("stat", path, err)
	}
	return info.ModTime(), nil
}
