// Package formats provides parsers for the level data files: the restricted
// Wavefront OBJ geometry, the transparency key table, and material range
// expressions used by exclusion rules.
package formats

import (
	"errors"
	"fmt"
)

// Shared parse errors. Concrete failures wrap one of these in a ParseError or
// ConfigError so callers can test with errors.Is.
var (
	ErrInvalidNumber      = errors.New("invalid number")
	ErrInvalidRange       = errors.New("invalid material range")
	ErrInvalidRecord      = errors.New("invalid record")
	ErrBadIndex           = errors.New("face index must be a positive 1-based index")
	ErrFaceOutsideGroup   = errors.New("face before any material group")
	ErrIncompleteTriangle = errors.New("face group index count is not a multiple of 3")
	ErrMissingField       = errors.New("missing field")
)

// ParseError reports malformed geometry text.
type ParseError struct {
	Line int    // 1-based line number, 0 when the error is not tied to a line
	Text string // offending line or token
	Err  error
}

func (e *ParseError) Error() string {
	if e.Line == 0 {
		return fmt.Sprintf("parse: %s: %v", e.Text, e.Err)
	}
	return fmt.Sprintf("parse: line %d %q: %v", e.Line, e.Text, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// ConfigError reports a malformed configuration value: a range expression, a
// key table record, or a level definition.
type ConfigError struct {
	Source string // file name or rule owner, may be empty
	Line   int    // 1-based line number, 0 if not applicable
	Text   string
	Err    error
}

func (e *ConfigError) Error() string {
	switch {
	case e.Source != "" && e.Line > 0:
		return fmt.Sprintf("config: %s:%d %q: %v", e.Source, e.Line, e.Text, e.Err)
	case e.Source != "":
		return fmt.Sprintf("config: %s %q: %v", e.Source, e.Text, e.Err)
	default:
		return fmt.Sprintf("config: %q: %v", e.Text, e.Err)
	}
}

func (e *ConfigError) Unwrap() error { return e.Err }
