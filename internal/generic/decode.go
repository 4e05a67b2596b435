package generic

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/simonhull/annotkit/internal/types"
)

// FromTable rebuilds Annotations from a table. Rows are grouped by annot and
// then seq, both ascending; within a sequence rows keep table order.
// path is used for error context only and may be empty.
func FromTable(t Table, path string) ([]types.Annotation, error) {
	type key struct{ annot, seq int }
	groups := make(map[key][]int)
	var keys []key
	for i, r := range t {
		k := key{r.Annot, r.Seq}
		if _, ok := groups[k]; !ok {
			keys = append(keys, k)
		}
		groups[k] = append(groups[k], i)
	}
	slices.SortFunc(keys, func(a, b key) int {
		return cmp.Or(cmp.Compare(a.annot, b.annot), cmp.Compare(a.seq, b.seq))
	})

	var annots []types.Annotation
	for start := 0; start < len(keys); {
		annot := keys[start].annot
		end := start
		for end < len(keys) && keys[end].annot == annot {
			end++
		}

		first := t[groups[keys[start]][0]]
		seqs := make([]types.Sequence, 0, end-start)
		for _, k := range keys[start:end] {
			rows := groups[k]
			for _, i := range rows {
				r := t[i]
				if r.AnnotPath != first.AnnotPath {
					return nil, groupError(path, annot, i, ColAnnotPath, r.AnnotPath, first.AnnotPath)
				}
				if r.NotatedPath != first.NotatedPath {
					return nil, groupError(path, annot, i, ColNotatedPath, r.NotatedPath, first.NotatedPath)
				}
			}
			seq, err := sequence(t, rows, path)
			if err != nil {
				return nil, err
			}
			seqs = append(seqs, seq)
		}

		a, err := types.NewSeqAnnotation(first.AnnotPath, first.NotatedPath, seqs...)
		if err != nil {
			return nil, &types.SchemaError{Path: path, Group: annot, Reason: "invalid annotation", Err: err}
		}
		annots = append(annots, a)
		start = end
	}
	return annots, nil
}

func groupError(path string, annot, row int, column, got, want string) error {
	return &types.SchemaError{
		Path:   path,
		Row:    row + 1,
		Group:  annot,
		Column: column,
		Reason: fmt.Sprintf("value %q differs from %q earlier in the group", got, want),
	}
}

// sequence builds one Sequence from the rows at indices rows.
func sequence(t Table, rows []int, path string) (types.Sequence, error) {
	if len(rows) == 1 && t[rows[0]].sentinel() {
		return types.FromSegments(nil), nil
	}
	segments := make([]types.Segment, 0, len(rows))
	for _, i := range rows {
		r := t[i]
		if r.timeless() {
			return types.Sequence{}, &types.SchemaError{
				Path:   path,
				Row:    i + 1,
				Group:  r.Annot,
				Reason: "row has neither seconds nor samples; only a lone row with an empty label stands for an empty sequence",
			}
		}
		f := types.SegmentFields{Label: r.Label}
		if r.OnsetS.Valid {
			f.OnsetS = types.Float(r.OnsetS.Float64)
		}
		if r.OffsetS.Valid {
			f.OffsetS = types.Float(r.OffsetS.Float64)
		}
		if r.OnsetSample.Valid {
			f.OnsetSample = types.Int(r.OnsetSample.Int64)
		}
		if r.OffsetSample.Valid {
			f.OffsetSample = types.Int(r.OffsetSample.Int64)
		}
		seg, err := types.NewSegment(f)
		if err != nil {
			return types.Sequence{}, &types.SchemaError{Path: path, Row: i + 1, Group: r.Annot, Reason: "invalid segment", Err: err}
		}
		segments = append(segments, seg)
	}
	return types.FromSegments(segments), nil
}
