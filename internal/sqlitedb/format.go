package sqlitedb

import (
	"context"
	"errors"
	"os"

	"github.com/simonhull/annotkit/internal/generic"
	"github.com/simonhull/annotkit/internal/registry"
	"github.com/simonhull/annotkit/internal/types"
)

// FormatName is the registered name of the SQLite generic format.
const FormatName = "generic-seq-db"

func init() {
	registry.MustRegister(Format{})
}

// Format is the "generic-seq-db" plugin. Files hold the same table as
// "generic-seq", stored as SQLite rows.
type Format struct{}

// Name implements types.Format.
func (Format) Name() string { return FormatName }

// Ext implements types.Format.
func (Format) Ext() []string { return []string{".sqlite", ".db"} }

// FromFile loads and decodes the table stored at path.
func (f Format) FromFile(path string, opts ...types.Option) (types.SeqLike, error) {
	if err := types.ValidateExt(path, FormatName, f.Ext()); err != nil {
		return nil, err
	}
	o := types.NewOptions(opts...)
	annots, err := ReadFile(context.Background(), path)
	if err != nil {
		return nil, err
	}
	o.Logger.Debug("loaded generic table", "path", path, "format", FormatName, "annotations", len(annots))
	return &Annotations{Annotations: generic.New(annots)}, nil
}

// Annotations is a loaded SQLite generic table.
type Annotations struct {
	*generic.Annotations
}

// ToFile stores the annotations in the SQLite file at path, replacing its
// previous contents.
func (a *Annotations) ToFile(path string, opts ...types.Option) error {
	annots, err := a.ToAnnot()
	if err != nil {
		return err
	}
	return WriteFile(context.Background(), path, annots, opts...)
}

// ReadFile decodes the generic table stored at path. The database is opened
// read-only; a database without the generic table is a *types.SchemaError.
func ReadFile(ctx context.Context, path string) ([]types.Annotation, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, &types.FormatError{Path: path, Format: FormatName, Reason: "open database", Err: err}
	}
	s, err := OpenReadOnly(path)
	if errors.Is(err, types.ErrSchema) {
		return nil, err
	}
	if err != nil {
		return nil, &types.FormatError{Path: path, Format: FormatName, Reason: "open database", Err: err}
	}
	defer s.Close()

	t, err := s.Load(ctx)
	if err != nil {
		return nil, &types.FormatError{Path: path, Format: FormatName, Reason: "read table", Err: err}
	}
	return generic.FromTable(t, path)
}

// WriteFile encodes annots and stores them at path.
func WriteFile(ctx context.Context, path string, annots []types.Annotation, opts ...types.Option) error {
	t, err := generic.ToTable(annots, opts...)
	if err != nil {
		return err
	}
	s, err := Open(path)
	if err != nil {
		return err
	}
	if err := s.Save(ctx, t); err != nil {
		s.Close()
		return err
	}
	return s.Close()
}
