// Package timit implements the "timit" format: TIMIT phonetic (.phn) and
// word (.wrd) transcriptions, one "begin end text" line per segment with
// times given as sample indices.
package timit

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"unicode"

	"github.com/go-audio/wav"

	"github.com/simonhull/annotkit/internal/parsing"
	"github.com/simonhull/annotkit/internal/registry"
	"github.com/simonhull/annotkit/internal/textio"
	"github.com/simonhull/annotkit/internal/types"
)

// FormatName is the registered name of the format.
const FormatName = "timit"

// Both spellings occur depending on the corpus distribution.
var exts = []string{".phn", ".PHN", ".wrd", ".WRD"}

func init() {
	registry.MustRegister(Format{})
}

// Format is the "timit" plugin.
type Format struct{}

// Name implements types.Format.
func (Format) Name() string { return FormatName }

// Ext implements types.Format.
func (Format) Ext() []string { return exts }

// FromFile reads a transcription. Without WithNotatedPath the annotated audio
// is the .wav or .WAV file next to path, when one exists. Times in seconds
// are derived when a sample rate is known, from WithSampleRate or else from
// the header of the annotated wav file.
func (f Format) FromFile(path string, opts ...types.Option) (types.SeqLike, error) {
	if err := types.ValidateExt(path, FormatName, exts); err != nil {
		return nil, err
	}
	o := types.NewOptions(opts...)
	t := &Transcript{
		annotPath:   path,
		notatedPath: o.NotatedPath,
		sampleRate:  o.SampleRate,
		round:       o.Round,
		decimals:    o.Decimals,
	}
	if t.notatedPath == "" {
		t.notatedPath = parsing.FindSibling(path, ".wav", ".WAV")
	}

	err := textio.ReadFile(path, FormatName, func(r *textio.Reader) error {
		records, err := r.Records(textio.Whitespace)
		if err != nil {
			return err
		}
		for _, rec := range records {
			if len(rec.Fields) != 3 {
				return r.Errorf(rec.Line, "expected begin sample, end sample and text, got %d fields", len(rec.Fields))
			}
			begin, err := parsing.ParseSample(rec.Fields[0])
			if err != nil {
				return r.Errorf(rec.Line, "begin sample: %v", err)
			}
			end, err := parsing.ParseSample(rec.Fields[1])
			if err != nil {
				return r.Errorf(rec.Line, "end sample: %v", err)
			}
			t.beginSamples = append(t.beginSamples, begin)
			t.endSamples = append(t.endSamples, end)
			t.text = append(t.text, rec.Fields[2])
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if t.sampleRate == 0 && isWav(t.notatedPath) {
		rate, err := SampleRate(t.notatedPath)
		if err != nil {
			return nil, &types.FormatError{Path: path, Format: FormatName, Reason: "read sample rate of annotated audio", Err: err}
		}
		t.sampleRate = rate
	}
	o.Logger.Debug("loaded annotation file",
		"format", FormatName, "path", path, "segments", len(t.text),
		"notated_path", t.notatedPath, "sample_rate", t.sampleRate)
	return t, nil
}

func isWav(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".wav")
}

// SampleRate reads the sampling rate from the header of a wav file.
func SampleRate(path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	d := wav.NewDecoder(f)
	if !d.IsValidFile() {
		return 0, fmt.Errorf("%s: not a valid wav file", path)
	}
	return int(d.SampleRate), nil
}

// Transcript is a loaded TIMIT transcription.
type Transcript struct {
	beginSamples []int64
	endSamples   []int64
	text         []string
	annotPath    string
	notatedPath  string
	sampleRate   int
	round        bool
	decimals     int
}

// New builds a Transcript from a Sequence with sample indices, for writing.
func New(seq types.Sequence, annotPath, notatedPath string) (*Transcript, error) {
	if !seq.HasSamples() {
		return nil, &types.FormatError{Path: annotPath, Format: FormatName, Reason: "every segment needs onset and offset sample indices"}
	}
	return &Transcript{
		beginSamples: seq.OnsetSamples(),
		endSamples:   seq.OffsetSamples(),
		text:         seq.Labels(),
		annotPath:    annotPath,
		notatedPath:  notatedPath,
	}, nil
}

// SampleRateHz returns the sampling rate used for seconds, 0 when unknown.
func (t *Transcript) SampleRateHz() int { return t.sampleRate }

// ToSeq returns the single Sequence of the transcription. Segments carry
// sample indices, plus seconds when the sample rate is known.
func (t *Transcript) ToSeq() ([]types.Sequence, error) {
	k := types.Keywords{
		Labels:        t.text,
		OnsetSamples:  t.beginSamples,
		OffsetSamples: t.endSamples,
	}
	if t.sampleRate > 0 {
		k.OnsetsS = t.seconds(t.beginSamples)
		k.OffsetsS = t.seconds(t.endSamples)
	}
	seq, err := types.FromKeyword(k)
	if err != nil {
		return nil, &types.FormatError{Path: t.annotPath, Format: FormatName, Reason: "invalid segment", Err: err}
	}
	return []types.Sequence{seq}, nil
}

func (t *Transcript) seconds(samples []int64) []float64 {
	out := make([]float64, len(samples))
	for i, s := range samples {
		out[i] = float64(s) / float64(t.sampleRate)
	}
	if t.round {
		return parsing.RoundAll(out, t.decimals)
	}
	return out
}

// ToAnnot returns one Annotation for the transcription.
func (t *Transcript) ToAnnot() ([]types.Annotation, error) {
	seqs, err := t.ToSeq()
	if err != nil {
		return nil, err
	}
	a, err := types.NewSeqAnnotation(t.annotPath, t.notatedPath, seqs...)
	if err != nil {
		return nil, err
	}
	return []types.Annotation{a}, nil
}

// ToFile writes the transcription with space-separated fields. Text that is
// empty or holds whitespace is rejected.
func (t *Transcript) ToFile(path string, _ ...types.Option) error {
	if err := types.ValidateExt(path, FormatName, exts); err != nil {
		return err
	}
	if i := slices.Index(t.text, ""); i >= 0 {
		return &types.FormatError{Path: path, Format: FormatName, Reason: fmt.Sprintf("text %d is empty", i)}
	}
	if err := textio.CheckCells(path, FormatName, "text", t.text, unicode.IsSpace); err != nil {
		return err
	}
	return textio.WriteFile(path, func(w io.Writer) error {
		rows := make([][]string, len(t.text))
		for i := range t.text {
			rows[i] = []string{fmt.Sprint(t.beginSamples[i]), fmt.Sprint(t.endSamples[i]), t.text[i]}
		}
		return textio.WriteLines(w, " ", rows)
	})
}
