// Package simple implements the "simple-seq" format: a comma-separated table
// with onset and offset times in seconds and a label per segment, one file
// per annotated recording.
package simple

import (
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/simonhull/annotkit/internal/parsing"
	"github.com/simonhull/annotkit/internal/registry"
	"github.com/simonhull/annotkit/internal/textio"
	"github.com/simonhull/annotkit/internal/types"
)

// FormatName is the registered name of the format.
const FormatName = "simple-seq"

// Canonical column names.
const (
	ColOnsetS  = "onset_s"
	ColOffsetS = "offset_s"
	ColLabel   = "label"
)

var columns = []string{ColOnsetS, ColOffsetS, ColLabel}

func init() {
	registry.MustRegister(Format{})
}

// Format is the "simple-seq" plugin.
type Format struct{}

// Name implements types.Format.
func (Format) Name() string { return FormatName }

// Ext implements types.Format.
func (Format) Ext() []string { return []string{".csv", ".txt"} }

// FromFile reads a simple-seq file. Columns other than onset_s, offset_s and
// label are ignored. WithColumnsMap renames source columns before lookup, and
// a missing label column is filled with the default label.
func (f Format) FromFile(path string, opts ...types.Option) (types.SeqLike, error) {
	if err := types.ValidateExt(path, FormatName, f.Ext()); err != nil {
		return nil, err
	}
	o := types.NewOptions(opts...)
	if err := checkColumnsMap(o.ColumnsMap); err != nil {
		return nil, err
	}

	s := &SimpleSeq{annotPath: path, notatedPath: o.NotatedPath, round: o.Round, decimals: o.Decimals}
	err := textio.ReadFile(path, FormatName, func(r *textio.Reader) error {
		return s.read(r, o)
	})
	if err != nil {
		return nil, err
	}
	o.Logger.Debug("loaded annotation file", "format", FormatName, "path", path, "segments", len(s.labels))
	return s, nil
}

func checkColumnsMap(m map[string]string) error {
	for from, to := range m {
		if !slices.Contains(columns, to) {
			return &types.ConfigError{
				Name:   FormatName,
				Reason: fmt.Sprintf("columns map sends %q to %q, valid targets: %s", from, to, strings.Join(columns, ", ")),
			}
		}
	}
	return nil
}

// SimpleSeq is a loaded simple-seq file.
type SimpleSeq struct {
	onsetsS     []float64
	offsetsS    []float64
	labels      []string
	annotPath   string
	notatedPath string
	round       bool
	decimals    int
}

// New builds a SimpleSeq from a Sequence with times in seconds, for writing.
func New(seq types.Sequence, annotPath, notatedPath string) (*SimpleSeq, error) {
	if !seq.HasSeconds() {
		return nil, &types.FormatError{Path: annotPath, Format: FormatName, Reason: "every segment needs onset and offset in seconds"}
	}
	return &SimpleSeq{
		onsetsS:     seq.OnsetsS(),
		offsetsS:    seq.OffsetsS(),
		labels:      seq.Labels(),
		annotPath:   annotPath,
		notatedPath: notatedPath,
	}, nil
}

func (s *SimpleSeq) read(r *textio.Reader, o *types.Options) error {
	header, records, err := r.CSV()
	if err != nil {
		return err
	}
	if len(records) == 0 {
		return nil
	}

	index := make(map[string]int, len(header))
	for i, name := range header {
		if mapped, ok := o.ColumnsMap[name]; ok {
			name = mapped
		}
		index[name] = i
	}
	for _, col := range []string{ColOnsetS, ColOffsetS} {
		if _, ok := index[col]; !ok {
			return r.Errorf(1, "missing column %q in header %q; rename columns with a columns map", col, strings.Join(header, ","))
		}
	}
	labelCol, hasLabel := index[ColLabel]

	for _, rec := range records {
		if len(rec.Fields) != len(header) {
			return r.Errorf(rec.Line, "expected %d fields, got %d", len(header), len(rec.Fields))
		}
		on, err := parsing.ParseFloat(rec.Fields[index[ColOnsetS]])
		if err != nil {
			return r.Errorf(rec.Line, "%s: %v", ColOnsetS, err)
		}
		off, err := parsing.ParseFloat(rec.Fields[index[ColOffsetS]])
		if err != nil {
			return r.Errorf(rec.Line, "%s: %v", ColOffsetS, err)
		}
		label := o.DefaultLabel
		if hasLabel {
			label = rec.Fields[labelCol]
		}
		s.onsetsS = append(s.onsetsS, on)
		s.offsetsS = append(s.offsetsS, off)
		s.labels = append(s.labels, label)
	}
	return nil
}

// ToSeq returns the single Sequence of the file.
func (s *SimpleSeq) ToSeq() ([]types.Sequence, error) {
	on, off := s.onsetsS, s.offsetsS
	if s.round {
		on, off = parsing.RoundAll(on, s.decimals), parsing.RoundAll(off, s.decimals)
	}
	seq, err := types.FromKeyword(types.Keywords{
		Labels:   s.labels,
		OnsetsS:  on,
		OffsetsS: off,
	})
	if err != nil {
		return nil, &types.FormatError{Path: s.annotPath, Format: FormatName, Reason: "invalid segment", Err: err}
	}
	return []types.Sequence{seq}, nil
}

// ToAnnot returns one Annotation for the file.
func (s *SimpleSeq) ToAnnot() ([]types.Annotation, error) {
	seqs, err := s.ToSeq()
	if err != nil {
		return nil, err
	}
	a, err := types.NewSeqAnnotation(s.annotPath, s.notatedPath, seqs...)
	if err != nil {
		return nil, err
	}
	return []types.Annotation{a}, nil
}

// ToFile writes the annotations with the canonical header.
func (s *SimpleSeq) ToFile(path string, _ ...types.Option) error {
	if err := types.ValidateExt(path, FormatName, Format{}.Ext()); err != nil {
		return err
	}
	if i := slices.IndexFunc(s.labels, func(l string) bool { return strings.Contains(l, "\r\n") }); i >= 0 {
		return &types.FormatError{Path: path, Format: FormatName, Reason: fmt.Sprintf("label %d contains a CRLF line break, which CSV does not preserve", i)}
	}
	return textio.WriteFile(path, s.write)
}

func (s *SimpleSeq) write(w io.Writer) error {
	rows := make([][]string, len(s.labels))
	for i := range s.labels {
		rows[i] = []string{parsing.FormatFloat(s.onsetsS[i]), parsing.FormatFloat(s.offsetsS[i]), s.labels[i]}
	}
	return textio.WriteCSV(w, columns, rows)
}
