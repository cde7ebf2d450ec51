package store

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/ohler55/ojg"
	"github.com/ohler55/ojg/oj"
	"github.com/spf13/afero"
	"github.com/rs/zerolog"
	"github.com/tidwall/jsonc"

	"github.com/billie-coop/confed/internal/logging"
)

// Store reads and writes whole JSON documents on a filesystem
type Store struct {
	fs  afero.Fs
	log zerolog.Logger
}

// New creates a store on the given filesystem
func New(fsys afero.Fs) *Store {
	return &Store{fs: fsys, log: logging.Component("store")}
}

// Fs returns the underlying filesystem
func (s *Store) Fs() afero.Fs {
	return s.fs
}

// Load reads and parses the document at path. A missing file, an empty file
// and a file holding only null all report found == false without an error.
// Comments and trailing commas are accepted.
func (s *Store) Load(path string) (value any, found bool, err error) {
	data, err := afero.ReadFile(s.fs, path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("Error occurred while reading %s: %w", path, err)
	}

	data = jsonc.ToJSON(data)
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, false, nil
	}

	value, err = oj.Parse(data)
	if err != nil {
		return nil, false, fmt.Errorf("The %s is corrupted: %w", path, err)
	}
	if value == nil {
		return nil, false, nil
	}
	return value, true, nil
}

// DefaultFileMode is the mode of documents created by Save
const DefaultFileMode fs.FileMode = 0o644

// mode returns the permission bits of the existing document at path
func (s *Store) mode(path string) fs.FileMode {
	info, err := s.fs.Stat(path)
	if err != nil || !info.Mode().IsRegular() {
		return DefaultFileMode
	}
	return info.Mode().Perm()
}

// Save writes value as indented JSON with sorted keys. The document is
// written to a temporary file next to path and renamed into place, so a
// failed write leaves the previous content intact. An existing document keeps
// its permission bits; a new one gets DefaultFileMode.
func (s *Store) Save(path string, value any) error {
	data := []byte(oj.JSON(value, &ojg.Options{Indent: 2, Sort: true}) + "\n")

	dir := filepath.Dir(path)
	if err := s.fs.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	tmp, err := afero.TempFile(s.fs, dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temporary file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = s.fs.Remove(tmpName)
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		_ = s.fs.Remove(tmpName)
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	// Temporary files are private; the document keeps its own mode.
	if err := s.fs.Chmod(tmpName, s.mode(path)); err != nil {
		_ = s.fs.Remove(tmpName)
		return fmt.Errorf("failed to set mode of %s: %w", path, err)
	}

	if err := s.fs.Rename(tmpName, path); err != nil {
		_ = s.fs.Remove(tmpName)
		return fmt.Errorf("failed to replace %s: %w", path, err)
	}
	s.log.Debug().Str("path", path).Int("bytes", len(data)).Msg("document saved")
	return nil
}
