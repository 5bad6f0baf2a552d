package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// File is a Store backed by a single JSON file. Every mutation rewrites the
// whole record through a temp file and rename, so a process killed
// mid-write leaves either the old record or the new one, never a torn file.
type File struct {
	mu   sync.Mutex
	path string
}

// NewFile creates a file-backed store at path. The file is created lazily
// on the first Set; a missing file reads as an empty record.
func NewFile(path string) (*File, error) {
	if path == "" {
		return nil, errors.New("store: file path required")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("store: create dir: %w", err)
	}
	return &File{path: path}, nil
}

// Set stores value under key, replacing any previous value.
func (f *File) Set(_ context.Context, key, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	record, err := f.load()
	if err != nil {
		return err
	}
	record[key] = value
	return f.save(record)
}

// Get returns the value stored under key, or ("", false, nil) when absent.
func (f *File) Get(_ context.Context, key string) (string, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	record, err := f.load()
	if err != nil {
		return "", false, err
	}
	v, ok := record[key]
	return v, ok, nil
}

// Remove deletes the listed keys. Missing keys are ignored.
func (f *File) Remove(_ context.Context, keys ...string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	record, err := f.load()
	if err != nil {
		return err
	}
	changed := false
	for _, k := range keys {
		if _, ok := record[k]; ok {
			delete(record, k)
			changed = true
		}
	}
	if !changed {
		return nil
	}
	return f.save(record)
}

func (f *File) load() (map[string]string, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("store: read %s: %w", f.path, err)
	}
	record := map[string]string{}
	if len(data) == 0 {
		return record, nil
	}
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, fmt.Errorf("store: decode %s: %w", f.path, err)
	}
	return record, nil
}

func (f *File) save(record map[string]string) error {
	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("store: encode: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(f.path), ".session-*")
	if err != nil {
		return fmt.Errorf("store: temp file: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("store: write: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("store: close: %w", err)
	}
	if err := os.Rename(tmpName, f.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("store: rename: %w", err)
	}
	return nil
}
