package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"NewsRelay/internal/domain"
	"NewsRelay/internal/ports"
)

// FileSeenStore keeps notified links in a JSON array on disk.
type FileSeenStore struct {
	path string
}

var _ ports.SeenStore = (*FileSeenStore)(nil)

// NewFileSeenStore wires the store to a file path.
func NewFileSeenStore(path string) *FileSeenStore {
	return &FileSeenStore{path: path}
}

// Load reads the stored links. A missing file yields an empty set.
func (s *FileSeenStore) Load(ctx context.Context) (domain.SeenSet, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	raw, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return domain.NewSeenSet(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("read seen file: %w", err)
	}

	var links []string
	if err := json.Unmarshal(raw, &links); err != nil {
		return nil, fmt.Errorf("decode seen file %s: %w", s.path, err)
	}

	return domain.NewSeenSet(links...), nil
}

// Save overwrites the file with the full set.
func (s *FileSeenStore) Save(ctx context.Context, seen domain.SeenSet) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	payload, err := encodeLinks(seen.Links())
	if err != nil {
		return fmt.Errorf("encode seen set: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create seen dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(payload); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("close temp file: %w", err)
	}

	if err := os.Rename(tmpName, s.path); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("replace seen file: %w", err)
	}

	return nil
}

// encodeLinks renders an indented JSON array without escaping HTML or non-ASCII text.
func encodeLinks(links []string) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(links); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
