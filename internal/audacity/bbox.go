package audacity

import (
	"io"

	"github.com/simonhull/annotkit/internal/parsing"
	"github.com/simonhull/annotkit/internal/textio"
	"github.com/simonhull/annotkit/internal/types"
)

// freqMarker starts the frequency line of an extended label.
const freqMarker = `\`

// BBoxFormat is the "aud-bbox" plugin.
type BBoxFormat struct{}

// Name implements types.Format.
func (BBoxFormat) Name() string { return BBoxFormatName }

// Ext implements types.Format.
func (BBoxFormat) Ext() []string { return exts }

// FromFile reads an extended label track. Every label takes two lines:
//
//	begin<TAB>end<TAB>label
//	\<TAB>low<TAB>high
//
// A file without labels is an error.
func (f BBoxFormat) FromFile(path string, opts ...types.Option) (types.BBoxLike, error) {
	if err := types.ValidateExt(path, BBoxFormatName, exts); err != nil {
		return nil, err
	}
	o := types.NewOptions(opts...)
	b := &AudBBox{annotPath: path, notatedPath: o.NotatedPath}
	err := textio.ReadFile(path, BBoxFormatName, func(r *textio.Reader) error {
		records, err := r.Records(textio.Tab)
		if err != nil {
			return err
		}
		if len(records) == 0 {
			return r.Errorf(0, "no labels in file")
		}
		if len(records)%2 != 0 {
			last := records[len(records)-1]
			return r.Errorf(last.Line, "label has no frequency line")
		}
		for i := 0; i < len(records); i += 2 {
			box, err := parseLabel(r, records[i], records[i+1])
			if err != nil {
				return err
			}
			b.boxes = append(b.boxes, box)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	o.Logger.Debug("loaded annotation file", "format", BBoxFormatName, "path", path, "boxes", len(b.boxes))
	return b, nil
}

func parseLabel(r *textio.Reader, timeLine, freqLine textio.Record) (types.BBoxFields, error) {
	var f types.BBoxFields
	if n := len(timeLine.Fields); n < 2 || n > 3 {
		return f, r.Errorf(timeLine.Line, "expected begin, end and label separated by tabs, got %d fields", n)
	}
	if len(freqLine.Fields) != 3 || freqLine.Fields[0] != freqMarker {
		return f, r.Errorf(freqLine.Line, `expected "\" followed by low and high frequency`)
	}

	var err error
	if f.OnsetS, err = parsing.ParseFloat(timeLine.Fields[0]); err != nil {
		return f, r.Errorf(timeLine.Line, "begin time: %v", err)
	}
	if f.OffsetS, err = parsing.ParseFloat(timeLine.Fields[1]); err != nil {
		return f, r.Errorf(timeLine.Line, "end time: %v", err)
	}
	if len(timeLine.Fields) == 3 {
		f.Label = timeLine.Fields[2]
	}
	if f.LowFreq, err = parsing.ParseFloat(freqLine.Fields[1]); err != nil {
		return f, r.Errorf(freqLine.Line, "low frequency: %v", err)
	}
	if f.HighFreq, err = parsing.ParseFloat(freqLine.Fields[2]); err != nil {
		return f, r.Errorf(freqLine.Line, "high frequency: %v", err)
	}
	return f, nil
}

// AudBBox is a loaded extended label track.
type AudBBox struct {
	boxes       []types.BBoxFields
	annotPath   string
	notatedPath string
}

// NewBBox builds an AudBBox from boxes, for writing.
func NewBBox(boxes []types.BBox, annotPath, notatedPath string) *AudBBox {
	b := &AudBBox{annotPath: annotPath, notatedPath: notatedPath}
	for _, box := range boxes {
		b.boxes = append(b.boxes, box.Fields())
	}
	return b
}

// ToBBox validates and returns the boxes in file order.
func (b *AudBBox) ToBBox() ([]types.BBox, error) {
	out := make([]types.BBox, 0, len(b.boxes))
	for i, f := range b.boxes {
		box, err := types.NewBBox(f)
		if err != nil {
			if ve, ok := err.(*types.ValidationError); ok {
				ve.Index = i
			}
			return nil, &types.FormatError{Path: b.annotPath, Format: BBoxFormatName, Reason: "invalid box", Err: err}
		}
		out = append(out, box)
	}
	return out, nil
}

// ToAnnot returns one Annotation for the label track.
func (b *AudBBox) ToAnnot() ([]types.Annotation, error) {
	boxes, err := b.ToBBox()
	if err != nil {
		return nil, err
	}
	a, err := types.NewBBoxAnnotation(b.annotPath, b.notatedPath, boxes)
	if err != nil {
		return nil, err
	}
	return []types.Annotation{a}, nil
}

// ToFile writes the boxes as an extended label track. Labels holding a tab
// or a line break are rejected.
func (b *AudBBox) ToFile(path string, _ ...types.Option) error {
	if err := types.ValidateExt(path, BBoxFormatName, exts); err != nil {
		return err
	}
	labels := make([]string, len(b.boxes))
	for i, f := range b.boxes {
		labels[i] = f.Label
	}
	if err := textio.CheckCells(path, BBoxFormatName, "label", labels, textio.IsTab); err != nil {
		return err
	}
	return textio.WriteFile(path, func(w io.Writer) error {
		rows := make([][]string, 0, 2*len(b.boxes))
		for _, f := range b.boxes {
			rows = append(rows,
				[]string{parsing.FormatFloat(f.OnsetS), parsing.FormatFloat(f.OffsetS), f.Label},
				[]string{freqMarker, parsing.FormatFloat(f.LowFreq), parsing.FormatFloat(f.HighFreq)},
			)
		}
		return textio.WriteLines(w, "\t", rows)
	})
}
