package generic

import (
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/simonhull/annotkit/internal/parsing"
	"github.com/simonhull/annotkit/internal/textio"
	"github.com/simonhull/annotkit/internal/types"
)

// WriteCSV writes the header and every row in comma-separated form.
// Text cells holding a CRLF line break are rejected: CSV readers fold it to
// a bare newline, so the table would not read back unchanged.
func (t Table) WriteCSV(w io.Writer) error {
	if err := t.checkCRLF(); err != nil {
		return err
	}
	return textio.WriteCSV(w, Columns, t.records())
}

// checkCRLF reports the first text cell containing "\r\n", naming the
// annotation, sequence and segment it belongs to.
func (t Table) checkCRLF() error {
	seg := 0
	for n, r := range t {
		if n > 0 && (t[n-1].Annot != r.Annot || t[n-1].Seq != r.Seq) {
			seg = 0
		}
		for _, c := range []struct{ name, val string }{
			{ColLabel, r.Label},
			{ColAnnotPath, r.AnnotPath},
			{ColNotatedPath, r.NotatedPath},
		} {
			if strings.Contains(c.val, "\r\n") {
				return &types.FormatError{
					Path:   r.AnnotPath,
					Format: FormatName,
					Reason: fmt.Sprintf("annotation %d sequence %d segment %d: %s contains a CRLF line break, which CSV does not preserve",
						r.Annot, r.Seq, seg, c.name),
				}
			}
		}
		seg++
	}
	return nil
}

// ReadTable reads a generic CSV table. The header must name every column
// exactly once, in any order. An empty input is an empty table.
func ReadTable(r io.Reader, path string) (Table, error) {
	return readTable(textio.NewReader(r, path, FormatName))
}

func readTable(tr *textio.Reader) (Table, error) {
	path := tr.Path()
	header, records, err := tr.CSV()
	if err != nil {
		return nil, err
	}
	if header == nil {
		return nil, nil
	}
	index, err := columnIndex(header, path)
	if err != nil {
		return nil, err
	}

	t := make(Table, 0, len(records))
	for n, rec := range records {
		if len(rec.Fields) != len(Columns) {
			return nil, &types.SchemaError{
				Path:   path,
				Row:    n + 1,
				Group:  -1,
				Reason: fmt.Sprintf("line %d has %d fields, expected %d", rec.Line, len(rec.Fields), len(Columns)),
			}
		}
		row, err := parseRow(rec.Fields, index)
		if err != nil {
			err.Path = path
			err.Row = n + 1
			return nil, err
		}
		t = append(t, row)
	}
	return t, nil
}

// columnIndex maps each column name to its position in header.
func columnIndex(header []string, path string) (map[string]int, error) {
	index := make(map[string]int, len(header))
	for i, name := range header {
		if !slices.Contains(Columns, name) {
			return nil, &types.SchemaError{Path: path, Group: -1, Column: name, Reason: "unknown column"}
		}
		if _, dup := index[name]; dup {
			return nil, &types.SchemaError{Path: path, Group: -1, Column: name, Reason: "duplicate column"}
		}
		index[name] = i
	}
	for _, name := range Columns {
		if _, ok := index[name]; !ok {
			return nil, &types.SchemaError{Path: path, Group: -1, Column: name, Reason: "missing column"}
		}
	}
	return index, nil
}

// parseRow converts one record. The returned error lacks path and row.
func parseRow(fields []string, index map[string]int) (Row, *types.SchemaError) {
	cell := func(name string) string { return fields[index[name]] }
	bad := func(name string, err error) *types.SchemaError {
		return &types.SchemaError{Group: -1, Column: name, Reason: "invalid value", Err: err}
	}

	var (
		r   Row
		err error
	)
	if r.OnsetS, err = parsing.ParseNullFloat(cell(ColOnsetS)); err != nil {
		return Row{}, bad(ColOnsetS, err)
	}
	if r.OffsetS, err = parsing.ParseNullFloat(cell(ColOffsetS)); err != nil {
		return Row{}, bad(ColOffsetS, err)
	}
	if r.OnsetSample, err = parsing.ParseNullSample(cell(ColOnsetSample)); err != nil {
		return Row{}, bad(ColOnsetSample, err)
	}
	if r.OffsetSample, err = parsing.ParseNullSample(cell(ColOffsetSample)); err != nil {
		return Row{}, bad(ColOffsetSample, err)
	}
	if r.Annot, err = parsing.ParseIndex(cell(ColAnnot)); err != nil {
		return Row{}, bad(ColAnnot, err)
	}
	if r.Seq, err = parsing.ParseIndex(cell(ColSeq)); err != nil {
		return Row{}, bad(ColSeq, err)
	}
	r.Label = cell(ColLabel)
	r.AnnotPath = cell(ColAnnotPath)
	r.NotatedPath = cell(ColNotatedPath)
	if r.AnnotPath == "" {
		return Row{}, &types.SchemaError{Group: -1, Column: ColAnnotPath, Reason: "empty value"}
	}
	return r, nil
}

// ReadFile reads and decodes a generic CSV file.
func ReadFile(path string) ([]types.Annotation, error) {
	var t Table
	err := textio.ReadFile(path, FormatName, func(r *textio.Reader) error {
		var err error
		t, err = readTable(r)
		return err
	})
	if err != nil {
		return nil, err
	}
	return FromTable(t, path)
}

// WriteFile encodes annots and writes them to path as CSV.
func WriteFile(path string, annots []types.Annotation, opts ...types.Option) error {
	t, err := ToTable(annots, opts...)
	if err != nil {
		return err
	}
	if err := t.checkCRLF(); err != nil {
		return err
	}
	return textio.WriteFile(path, t.WriteCSV)
}
