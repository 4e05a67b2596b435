package annotkit

import (
	"context"
	"io"

	"github.com/simonhull/annotkit/internal/generic"
	"github.com/simonhull/annotkit/internal/sqlitedb"
)

// Row is one row of the generic table.
type Row = generic.Row

// Table is the generic table: one Row per segment, grouped by annot and seq.
type Table = generic.Table

// Columns lists the generic table columns in write order.
var Columns = generic.Columns

// ToTable flattens sequence-like annotations into the generic table.
func ToTable(annots []Annotation, opts ...Option) (Table, error) {
	return generic.ToTable(annots, opts...)
}

// FromTable rebuilds annotations from the generic table. path is used in
// error messages only.
func FromTable(t Table, path string) ([]Annotation, error) {
	return generic.FromTable(t, path)
}

// ReadTable reads a generic CSV table from r.
func ReadTable(r io.Reader, path string) (Table, error) {
	return generic.ReadTable(r, path)
}

// ToCSV writes annots to path as one generic CSV table.
func ToCSV(path string, annots []Annotation, opts ...Option) error {
	return generic.WriteFile(path, annots, opts...)
}

// FromCSV reads the annotations of a generic CSV table.
func FromCSV(path string) ([]Annotation, error) {
	return generic.ReadFile(path)
}

// ToSQLite stores annots as a generic table in the SQLite file at path,
// replacing what it held before.
func ToSQLite(ctx context.Context, path string, annots []Annotation, opts ...Option) error {
	return sqlitedb.WriteFile(ctx, path, annots, opts...)
}

// FromSQLite reads the annotations stored in a SQLite file by ToSQLite.
func FromSQLite(ctx context.Context, path string) ([]Annotation, error) {
	return sqlitedb.ReadFile(ctx, path)
}
