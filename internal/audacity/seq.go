package audacity

import (
	"io"

	"github.com/simonhull/annotkit/internal/parsing"
	"github.com/simonhull/annotkit/internal/textio"
	"github.com/simonhull/annotkit/internal/types"
)

// SeqFormat is the "aud-seq" plugin.
type SeqFormat struct{}

// Name implements types.Format.
func (SeqFormat) Name() string { return SeqFormatName }

// Ext implements types.Format.
func (SeqFormat) Ext() []string { return exts }

// FromFile reads a standard label track: start time, end time and label
// separated by tabs, no header. An empty file holds no labels.
func (f SeqFormat) FromFile(path string, opts ...types.Option) (types.SeqLike, error) {
	if err := types.ValidateExt(path, SeqFormatName, exts); err != nil {
		return nil, err
	}
	o := types.NewOptions(opts...)
	s := &AudSeq{annotPath: path, notatedPath: o.NotatedPath, round: o.Round, decimals: o.Decimals}
	err := textio.ReadFile(path, SeqFormatName, func(r *textio.Reader) error {
		records, err := r.Records(textio.Tab)
		if err != nil {
			return err
		}
		for _, rec := range records {
			if len(rec.Fields) < 2 || len(rec.Fields) > 3 {
				return r.Errorf(rec.Line, "expected start, end and label separated by tabs, got %d fields", len(rec.Fields))
			}
			start, err := parsing.ParseFloat(rec.Fields[0])
			if err != nil {
				return r.Errorf(rec.Line, "start time: %v", err)
			}
			end, err := parsing.ParseFloat(rec.Fields[1])
			if err != nil {
				return r.Errorf(rec.Line, "end time: %v", err)
			}
			var label string
			if len(rec.Fields) == 3 {
				label = rec.Fields[2]
			}
			s.startTimes = append(s.startTimes, start)
			s.endTimes = append(s.endTimes, end)
			s.labels = append(s.labels, label)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	o.Logger.Debug("loaded annotation file", "format", SeqFormatName, "path", path, "segments", len(s.labels))
	return s, nil
}

// AudSeq is a loaded standard label track.
type AudSeq struct {
	startTimes  []float64
	endTimes    []float64
	labels      []string
	annotPath   string
	notatedPath string
	round       bool
	decimals    int
}

// NewSeq builds an AudSeq from a Sequence with times in seconds, for writing.
func NewSeq(seq types.Sequence, annotPath, notatedPath string) (*AudSeq, error) {
	if !seq.HasSeconds() {
		return nil, &types.FormatError{Path: annotPath, Format: SeqFormatName, Reason: "every segment needs onset and offset in seconds"}
	}
	return &AudSeq{
		startTimes:  seq.OnsetsS(),
		endTimes:    seq.OffsetsS(),
		labels:      seq.Labels(),
		annotPath:   annotPath,
		notatedPath: notatedPath,
	}, nil
}

// ToSeq returns the single Sequence of the label track.
func (s *AudSeq) ToSeq() ([]types.Sequence, error) {
	on, off := s.startTimes, s.endTimes
	if s.round {
		on, off = parsing.RoundAll(on, s.decimals), parsing.RoundAll(off, s.decimals)
	}
	seq, err := types.FromKeyword(types.Keywords{Labels: s.labels, OnsetsS: on, OffsetsS: off})
	if err != nil {
		return nil, &types.FormatError{Path: s.annotPath, Format: SeqFormatName, Reason: "invalid segment", Err: err}
	}
	return []types.Sequence{seq}, nil
}

// ToAnnot returns one Annotation for the label track.
func (s *AudSeq) ToAnnot() ([]types.Annotation, error) {
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

// ToFile writes the label track in the standard format. Labels holding a tab
// or a line break are rejected.
func (s *AudSeq) ToFile(path string, _ ...types.Option) error {
	if err := types.ValidateExt(path, SeqFormatName, exts); err != nil {
		return err
	}
	if err := textio.CheckCells(path, SeqFormatName, "label", s.labels, textio.IsTab); err != nil {
		return err
	}
	return textio.WriteFile(path, func(w io.Writer) error {
		rows := make([][]string, len(s.labels))
		for i := range s.labels {
			rows[i] = []string{parsing.FormatFloat(s.startTimes[i]), parsing.FormatFloat(s.endTimes[i]), s.labels[i]}
		}
		return textio.WriteLines(w, "\t", rows)
	})
}
