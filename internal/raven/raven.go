// Package raven implements the "raven" format: selection tables exported by
// the Raven sound analysis software, read as bounding boxes.
package raven

import (
	"fmt"
	"io"
	"slices"

	"github.com/simonhull/annotkit/internal/parsing"
	"github.com/simonhull/annotkit/internal/registry"
	"github.com/simonhull/annotkit/internal/textio"
	"github.com/simonhull/annotkit/internal/types"
)

// FormatName is the registered name of the format.
const FormatName = "raven"

// Selection table column names.
const (
	ColBeginTime = "Begin Time (s)"
	ColEndTime   = "End Time (s)"
	ColLowFreq   = "Low Freq (Hz)"
	ColHighFreq  = "High Freq (Hz)"
)

var boxColumns = []string{ColBeginTime, ColEndTime, ColLowFreq, ColHighFreq}

func init() {
	registry.MustRegister(Format{})
}

// Format is the "raven" plugin.
type Format struct{}

// Name implements types.Format.
func (Format) Name() string { return FormatName }

// Ext implements types.Format.
func (Format) Ext() []string { return []string{".txt"} }

// FromFile reads a tab-separated selection table with a header row. The label
// is read from the column named by WithLabelColumn, "Annotation" by default.
// Other columns such as Selection, View and Channel are ignored.
func (f Format) FromFile(path string, opts ...types.Option) (types.BBoxLike, error) {
	if err := types.ValidateExt(path, FormatName, f.Ext()); err != nil {
		return nil, err
	}
	o := types.NewOptions(opts...)
	t := &Table{annotPath: path, notatedPath: o.NotatedPath, labelColumn: o.LabelColumn}
	err := textio.ReadFile(path, FormatName, func(r *textio.Reader) error {
		return t.read(r)
	})
	if err != nil {
		return nil, err
	}
	o.Logger.Debug("loaded annotation file", "format", FormatName, "path", path, "boxes", len(t.boxes))
	return t, nil
}

// Table is a loaded selection table.
type Table struct {
	boxes       []types.BBoxFields
	annotPath   string
	notatedPath string
	labelColumn string
}

// New builds a Table from boxes, for writing. labelColumn names the label
// column; empty means "Annotation".
func New(boxes []types.BBox, annotPath, notatedPath, labelColumn string) *Table {
	if labelColumn == "" {
		labelColumn = types.DefaultLabelColumn
	}
	t := &Table{annotPath: annotPath, notatedPath: notatedPath, labelColumn: labelColumn}
	for _, b := range boxes {
		t.boxes = append(t.boxes, b.Fields())
	}
	return t
}

func (t *Table) read(r *textio.Reader) error {
	records, err := r.Records(textio.Tab)
	if err != nil {
		return err
	}
	if len(records) < 2 {
		return r.Errorf(0, "no rows in selection table")
	}

	header := records[0]
	index := make(map[string]int, len(header.Fields))
	for i, name := range header.Fields {
		index[name] = i
	}
	for _, col := range append(slices.Clone(boxColumns), t.labelColumn) {
		if _, ok := index[col]; !ok {
			return r.Errorf(header.Line, "missing column %q", col)
		}
	}

	for _, rec := range records[1:] {
		if len(rec.Fields) != len(header.Fields) {
			return r.Errorf(rec.Line, "expected %d fields, got %d", len(header.Fields), len(rec.Fields))
		}
		var b types.BBoxFields
		targets := []*float64{&b.OnsetS, &b.OffsetS, &b.LowFreq, &b.HighFreq}
		for i, col := range boxColumns {
			v, err := parsing.ParseFloat(rec.Fields[index[col]])
			if err != nil {
				return r.Errorf(rec.Line, "%s: %v", col, err)
			}
			*targets[i] = v
		}
		b.Label = rec.Fields[index[t.labelColumn]]
		t.boxes = append(t.boxes, b)
	}
	return nil
}

// ToBBox validates and returns the selections in table order.
func (t *Table) ToBBox() ([]types.BBox, error) {
	out := make([]types.BBox, 0, len(t.boxes))
	for i, f := range t.boxes {
		b, err := types.NewBBox(f)
		if err != nil {
			return nil, &types.FormatError{
				Path:   t.annotPath,
				Format: FormatName,
				Reason: fmt.Sprintf("invalid selection %d", i+1),
				Err:    err,
			}
		}
		out = append(out, b)
	}
	return out, nil
}

// ToAnnot returns one Annotation for the table.
func (t *Table) ToAnnot() ([]types.Annotation, error) {
	boxes, err := t.ToBBox()
	if err != nil {
		return nil, err
	}
	a, err := types.NewBBoxAnnotation(t.annotPath, t.notatedPath, boxes)
	if err != nil {
		return nil, err
	}
	return []types.Annotation{a}, nil
}

// ToFile writes a selection table with a Selection number, the four box
// columns and the label column. Labels holding a tab or a line break are
// rejected.
func (t *Table) ToFile(path string, _ ...types.Option) error {
	if err := types.ValidateExt(path, FormatName, Format{}.Ext()); err != nil {
		return err
	}
	if err := textio.CheckCells(path, FormatName, "label column", []string{t.labelColumn}, textio.IsTab); err != nil {
		return err
	}
	labels := make([]string, len(t.boxes))
	for i, b := range t.boxes {
		labels[i] = b.Label
	}
	if err := textio.CheckCells(path, FormatName, "label", labels, textio.IsTab); err != nil {
		return err
	}
	return textio.WriteFile(path, func(w io.Writer) error {
		header := append([]string{"Selection"}, boxColumns...)
		rows := [][]string{append(header, t.labelColumn)}
		for i, b := range t.boxes {
			rows = append(rows, []string{
				fmt.Sprint(i + 1),
				parsing.FormatFloat(b.OnsetS),
				parsing.FormatFloat(b.OffsetS),
				parsing.FormatFloat(b.LowFreq),
				parsing.FormatFloat(b.HighFreq),
				b.Label,
			})
		}
		return textio.WriteLines(w, "\t", rows)
	})
}
