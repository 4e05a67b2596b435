package generic

import (
	"database/sql"
	"fmt"

	"github.com/simonhull/annotkit/internal/parsing"
	"github.com/simonhull/annotkit/internal/types"
)

// FormatName is the registered name of the generic tabular format.
const FormatName = "generic-seq"

// ToTable flattens sequence-like annotations into a Table. The index of each
// annotation becomes its annot key and the index of each of its sequences
// the seq key. WithAbsPath or WithBasename rewrite the stored paths.
func ToTable(annots []types.Annotation, opts ...types.Option) (Table, error) {
	o := types.NewOptions(opts...)
	if o.AbsPath && o.Basename {
		return nil, &types.ConfigError{Name: FormatName, Reason: "absolute paths and base names cannot both be requested"}
	}

	var t Table
	for i, a := range annots {
		if !a.IsSeqLike() {
			return nil, &types.FormatError{
				Path:   a.AnnotPath(),
				Format: FormatName,
				Reason: fmt.Sprintf("annotation %d is %s, only sequence-like annotations can be written", i, a.Kind()),
			}
		}
		annotPath, err := parsing.NormalizePath(a.AnnotPath(), o.AbsPath, o.Basename)
		if err != nil {
			return nil, fmt.Errorf("annotation %d: %w", i, err)
		}
		notatedPath, err := parsing.NormalizePath(a.NotatedPath(), o.AbsPath, o.Basename)
		if err != nil {
			return nil, fmt.Errorf("annotation %d: %w", i, err)
		}

		for j, seq := range a.Seqs() {
			if seq.Len() == 0 {
				t = append(t, Row{AnnotPath: annotPath, NotatedPath: notatedPath, Annot: i, Seq: j})
				continue
			}
			for _, seg := range seq.All() {
				r := Row{
					Label:       seg.Label(),
					AnnotPath:   annotPath,
					NotatedPath: notatedPath,
					Annot:       i,
					Seq:         j,
				}
				if on, ok := seg.OnsetS(); ok {
					off, _ := seg.OffsetS()
					r.OnsetS = sql.NullFloat64{Float64: on, Valid: true}
					r.OffsetS = sql.NullFloat64{Float64: off, Valid: true}
				}
				if on, ok := seg.OnsetSample(); ok {
					off, _ := seg.OffsetSample()
					r.OnsetSample = sql.NullInt64{Int64: on, Valid: true}
					r.OffsetSample = sql.NullInt64{Int64: off, Valid: true}
				}
				t = append(t, r)
			}
		}
	}
	o.Logger.Debug("encoded generic table", "annotations", len(annots), "rows", len(t))
	return t, nil
}

// records renders the table as CSV cells in column order.
func (t Table) records() [][]string {
	out := make([][]string, 0, len(t))
	for _, r := range t {
		out = append(out, []string{
			parsing.FormatNullFloat(r.OnsetS),
			parsing.FormatNullFloat(r.OffsetS),
			parsing.FormatNullInt(r.OnsetSample),
			parsing.FormatNullInt(r.OffsetSample),
			r.Label,
			r.AnnotPath,
			r.NotatedPath,
			fmt.Sprint(r.Annot),
			fmt.Sprint(r.Seq),
		})
	}
	return out
}
