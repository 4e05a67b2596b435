package annotkit

import (
	"github.com/simonhull/annotkit/internal/types"
)

// ValidationError is returned when a Segment, Sequence, BBox or Annotation
// cannot be built from the values given.
type ValidationError = types.ValidationError

// FormatError is returned for a wrong file extension or unparseable content.
type FormatError = types.FormatError

// SchemaError is returned when a generic table has missing, unknown or
// mistyped columns, or inconsistent groups.
type SchemaError = types.SchemaError

// NotFoundError is returned when a format name is not registered.
type NotFoundError = types.NotFoundError

// ConfigError is returned for registry conflicts and conflicting options.
type ConfigError = types.ConfigError

// Sentinels for errors.Is.
var (
	ErrValidation = types.ErrValidation
	ErrFormat     = types.ErrFormat
	ErrSchema     = types.ErrSchema
	ErrNotFound   = types.ErrNotFound
	ErrConfig     = types.ErrConfig
)
