package store

import (
	"errors"
	"fmt"

	"github.com/billie-coop/confed/internal/schema"
)

// ErrSchemaNotFound is returned when the schema description file is missing
var ErrSchemaNotFound = errors.New("schema file not found")

// InvalidConfigError wraps a validation failure of the configuration file
type InvalidConfigError struct {
	Path string
	Err  error
}

// Error implements the error interface
func (e *InvalidConfigError) Error() string {
	return fmt.Sprintf("Invalid config file: %v\nIf you delete the config file, a new correct one will be created", e.Err)
}

// Unwrap returns the validation error
func (e *InvalidConfigError) Unwrap() error {
	return e.Err
}

// LoadSchema reads and compiles the schema description at path
func (s *Store) LoadSchema(path string) (*schema.Node, error) {
	raw, found, err := s.Load(path)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, fmt.Errorf("%w: %s", ErrSchemaNotFound, path)
	}

	root, err := schema.Compile(raw)
	if err != nil {
		return nil, fmt.Errorf("failed to compile %s: %w", path, err)
	}

	s.log.Debug().Str("path", path).Str("root", root.Kind().String()).Msg("schema compiled")
	return root, nil
}

// LoadConfig reads the configuration at path and checks it against root.
// A missing or empty file is replaced by the schema defaults. The returned
// flag reports whether the defaults were used.
func (s *Store) LoadConfig(path string, root *schema.Node) (value any, defaulted bool, err error) {
	value, found, err := s.Load(path)
	if err != nil {
		return nil, false, err
	}
	if !found {
		value = schema.DefaultValue(root)
		defaulted = true
	}

	if err := schema.Validate(value, root, nil); err != nil {
		return nil, false, &InvalidConfigError{Path: path, Err: err}
	}

	s.log.Info().Str("path", path).Bool("defaulted", defaulted).Msg("configuration loaded")
	return value, defaulted, nil
}
