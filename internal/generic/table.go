// Package generic implements the "generic-seq" format: a flat table with one
// row per segment that can hold any number of sequence-like annotations and
// be read back into exactly the same Annotations.
package generic

import (
	"database/sql"
	"fmt"
)

// Column names, in the order they are written.
const (
	ColOnsetS       = "onset_s"
	ColOffsetS      = "offset_s"
	ColOnsetSample  = "onset_sample"
	ColOffsetSample = "offset_sample"
	ColLabel        = "label"
	ColAnnotPath    = "annot_path"
	ColNotatedPath  = "notated_path"
	ColAnnot        = "annot"
	ColSeq          = "seq"
)

// Columns lists every column of the table in write order.
var Columns = []string{
	ColOnsetS, ColOffsetS, ColOnsetSample, ColOffsetSample,
	ColLabel, ColAnnotPath, ColNotatedPath, ColAnnot, ColSeq,
}

// Row is one segment of one sequence of one annotation.
//
// Timing cells are nullable; a row with all four timing cells null and an
// empty label stands for an empty Sequence. NotatedPath is empty when the
// annotated file is unknown.
type Row struct {
	OnsetS       sql.NullFloat64
	OffsetS      sql.NullFloat64
	OnsetSample  sql.NullInt64
	OffsetSample sql.NullInt64
	Label        string
	AnnotPath    string
	NotatedPath  string
	Annot        int
	Seq          int
}

// timeless reports whether no timing cell is set.
func (r Row) timeless() bool {
	return !r.OnsetS.Valid && !r.OffsetS.Valid && !r.OnsetSample.Valid && !r.OffsetSample.Valid
}

// sentinel reports whether r encodes an empty Sequence.
func (r Row) sentinel() bool {
	return r.timeless() && r.Label == ""
}

// Table is an ordered list of rows.
type Table []Row

// Annotations returns the number of distinct annot keys.
func (t Table) Annotations() int {
	seen := make(map[int]struct{})
	for _, r := range t {
		seen[r.Annot] = struct{}{}
	}
	return len(seen)
}

// Equal reports whether both tables hold the same rows in the same order.
func (t Table) Equal(other Table) bool {
	if len(t) != len(other) {
		return false
	}
	for i := range t {
		if t[i] != other[i] {
			return false
		}
	}
	return true
}

func (t Table) String() string {
	return fmt.Sprintf("<generic table with %d rows, %d annotations>", len(t), t.Annotations())
}
