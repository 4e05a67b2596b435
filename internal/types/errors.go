package types

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinels for errors.Is. Every typed error below matches exactly one.
var (
	ErrValidation = errors.New("validation error")
	ErrFormat     = errors.New("format error")
	ErrSchema     = errors.New("schema error")
	ErrNotFound   = errors.New("format not found")
	ErrConfig     = errors.New("config error")
)

// ValidationError is returned when a Segment, BBox, Sequence or Annotation
// cannot be constructed from the values given.
type ValidationError struct {
	Field  string // offending field, empty when the problem spans fields
	Reason string
	Index  int // element index for vector construction, -1 otherwise
}

func (e *ValidationError) Error() string {
	var b strings.Builder
	b.WriteString("invalid")
	if e.Index >= 0 {
		fmt.Fprintf(&b, " element %d", e.Index)
	}
	if e.Field != "" {
		fmt.Fprintf(&b, " %s", e.Field)
	}
	b.WriteString(": ")
	b.WriteString(e.Reason)
	return b.String()
}

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

// FormatError is returned when a file has the wrong extension for a format
// or its content cannot be parsed.
type FormatError struct {
	Err    error
	Path   string
	Format string
	Reason string
	Line   int // 1-based line number, 0 if not applicable
}

func (e *FormatError) Error() string {
	var b strings.Builder
	b.WriteString(e.Path)
	if e.Line > 0 {
		fmt.Fprintf(&b, ":%d", e.Line)
	}
	if e.Format != "" {
		fmt.Fprintf(&b, ": %s", e.Format)
	}
	fmt.Fprintf(&b, ": %s", e.Reason)
	if e.Err != nil {
		fmt.Fprintf(&b, ": %v", e.Err)
	}
	return b.String()
}

func (e *FormatError) Unwrap() error { return e.Err }

func (e *FormatError) Is(target error) bool { return target == ErrFormat }

// SchemaError is returned when a generic tabular file is missing columns,
// has cells of the wrong type, or its groups are inconsistent.
type SchemaError struct {
	Err    error
	Path   string
	Column string
	Reason string
	Row    int // 1-based data row (header excluded), 0 if not applicable
	Group  int // annot group index, -1 if not applicable
}

func (e *SchemaError) Error() string {
	var b strings.Builder
	if e.Path != "" {
		b.WriteString(e.Path)
		b.WriteString(": ")
	}
	b.WriteString("schema")
	if e.Row > 0 {
		fmt.Fprintf(&b, ": row %d", e.Row)
	}
	if e.Group >= 0 {
		fmt.Fprintf(&b, ": annot group %d", e.Group)
	}
	if e.Column != "" {
		fmt.Fprintf(&b, ": column %q", e.Column)
	}
	fmt.Fprintf(&b, ": %s", e.Reason)
	if e.Err != nil {
		fmt.Fprintf(&b, ": %v", e.Err)
	}
	return b.String()
}

func (e *SchemaError) Unwrap() error { return e.Err }

func (e *SchemaError) Is(target error) bool { return target == ErrSchema }

// NotFoundError is returned when a format name is not registered.
type NotFoundError struct {
	Name  string
	Valid []string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("format %q not recognized; valid formats: %s", e.Name, strings.Join(e.Valid, ", "))
}

func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

// ConfigError is returned for registry conflicts and conflicting options.
type ConfigError struct {
	Name   string
	Reason string
}

func (e *ConfigError) Error() string {
	if e.Name != "" {
		return fmt.Sprintf("config: %s: %s", e.Name, e.Reason)
	}
	return fmt.Sprintf("config: %s", e.Reason)
}

func (e *ConfigError) Is(target error) bool { return target == ErrConfig }

// invalid builds a ValidationError not tied to a vector element.
func invalid(field, format string, args ...any) *ValidationError {
	return &ValidationError{Field: field, Index: -1, Reason: fmt.Sprintf(format, args...)}
}
