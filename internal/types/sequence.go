package types

import (
	"fmt"
	"iter"
	"math"
	"slices"
	"unicode/utf8"
)

// Sequence is an ordered, immutable collection of Segments belonging to one
// annotated unit, e.g. one recording or one bout of song.
//
// Order is the temporal order of occurrence and is never changed. The vector
// accessors (Labels, OnsetsS, ...) are recomputed from the segments on every
// call. An empty Sequence is valid.
type Sequence struct {
	segments []Segment
}

// Keywords holds parallel per-segment vectors for FromKeyword.
// A nil slice is an absent vector.
type Keywords struct {
	Labels        []string
	OnsetsS       []float64
	OffsetsS      []float64
	OnsetSamples  []int64
	OffsetSamples []int64
}

// Sequence map keys used by FromDict and ToDict.
const (
	KeyLabels        = "labels"
	KeyOnsetsS       = "onsets_s"
	KeyOffsetsS      = "offsets_s"
	KeyOnsetSamples  = "onset_samples"
	KeyOffsetSamples = "offset_samples"
)

// FromSegments builds a Sequence from segments, preserving their order.
// The slice is copied.
func FromSegments(segments []Segment) Sequence {
	return Sequence{segments: slices.Clone(segments)}
}

// FromKeyword zips parallel vectors into Segments.
//
// Every present vector must have the same length as Labels. Onsets and
// offsets must come in pairs, and unless the sequence is empty at least one
// pair must be present. Element-level failures are reported with their index.
func FromKeyword(k Keywords) (Sequence, error) {
	n := len(k.Labels)

	if (k.OnsetsS == nil) != (k.OffsetsS == nil) {
		return Sequence{}, invalid("", "onsets_s and offsets_s must both be given or both be omitted")
	}
	if (k.OnsetSamples == nil) != (k.OffsetSamples == nil) {
		return Sequence{}, invalid("", "onset_samples and offset_samples must both be given or both be omitted")
	}
	if k.OnsetsS == nil && k.OnsetSamples == nil {
		if n == 0 {
			return Sequence{}, nil
		}
		return Sequence{}, invalid("", "must provide either onset_samples and offset_samples, or onsets_s and offsets_s")
	}

	lengths := []struct {
		name string
		n    int
		set  bool
	}{
		{KeyOnsetsS, len(k.OnsetsS), k.OnsetsS != nil},
		{KeyOffsetsS, len(k.OffsetsS), k.OffsetsS != nil},
		{KeyOnsetSamples, len(k.OnsetSamples), k.OnsetSamples != nil},
		{KeyOffsetSamples, len(k.OffsetSamples), k.OffsetSamples != nil},
	}
	for _, l := range lengths {
		if l.set && l.n != n {
			return Sequence{}, invalid(l.name, "length %d does not match %d labels", l.n, n)
		}
	}

	segments := make([]Segment, n)
	for i := range n {
		f := SegmentFields{Label: k.Labels[i]}
		if k.OnsetsS != nil {
			f.OnsetS, f.OffsetS = &k.OnsetsS[i], &k.OffsetsS[i]
		}
		if k.OnsetSamples != nil {
			f.OnsetSample, f.OffsetSample = &k.OnsetSamples[i], &k.OffsetSamples[i]
		}
		seg, err := NewSegment(f)
		if err != nil {
			if ve, ok := err.(*ValidationError); ok {
				ve.Index = i
			}
			return Sequence{}, err
		}
		segments[i] = seg
	}
	return Sequence{segments: segments}, nil
}

// FromDict is FromKeyword reading the vectors out of a mapping with the keys
// "labels", "onsets_s", "offsets_s", "onset_samples" and "offset_samples".
//
// Values may be slices of any element type or bare scalars. A bare scalar is
// a one-element vector, so a recording whose only label was stored as a
// single integer still yields a one-segment Sequence. A label string whose
// character count equals the number of segments is split into one label per
// character, the convention of single-character syllable labels.
func FromDict(m map[string]any) (Sequence, error) {
	for key := range m {
		switch key {
		case KeyLabels, KeyOnsetsS, KeyOffsetsS, KeyOnsetSamples, KeyOffsetSamples:
		default:
			return Sequence{}, invalid(key, "unknown sequence field")
		}
	}

	var k Keywords
	n := -1
	for _, key := range []string{KeyOnsetsS, KeyOffsetsS, KeyOnsetSamples, KeyOffsetSamples} {
		if m[key] == nil {
			continue
		}
		items := toItems(m[key])
		if n < 0 {
			n = len(items)
		}
		for i, item := range items {
			switch key {
			case KeyOnsetsS, KeyOffsetsS:
				v, err := coerceFloat(item)
				if err != nil {
					return Sequence{}, &ValidationError{Field: key, Index: i, Reason: err.Error()}
				}
				if key == KeyOnsetsS {
					k.OnsetsS = append(k.OnsetsS, v)
				} else {
					k.OffsetsS = append(k.OffsetsS, v)
				}
			default:
				v, err := coerceSample(item)
				if err != nil {
					return Sequence{}, &ValidationError{Field: key, Index: i, Reason: err.Error()}
				}
				if key == KeyOnsetSamples {
					k.OnsetSamples = append(k.OnsetSamples, v)
				} else {
					k.OffsetSamples = append(k.OffsetSamples, v)
				}
			}
		}
		// an empty but present vector must stay non-nil
		switch key {
		case KeyOnsetsS:
			k.OnsetsS = nonNil(k.OnsetsS)
		case KeyOffsetsS:
			k.OffsetsS = nonNil(k.OffsetsS)
		case KeyOnsetSamples:
			k.OnsetSamples = nonNil(k.OnsetSamples)
		case KeyOffsetSamples:
			k.OffsetSamples = nonNil(k.OffsetSamples)
		}
	}

	labels, err := dictLabels(m[KeyLabels], n)
	if err != nil {
		return Sequence{}, err
	}
	k.Labels = labels
	return FromKeyword(k)
}

// dictLabels normalizes the labels value of a sequence mapping. n is the
// number of segments implied by the timing vectors, or -1 if none was given.
func dictLabels(v any, n int) ([]string, error) {
	if v == nil {
		if n > 0 {
			return nil, invalid(KeyLabels, "missing labels for %d segments", n)
		}
		return []string{}, nil
	}
	if s, ok := v.(string); ok {
		switch {
		case n < 0 && s == "":
			return []string{}, nil
		case n == 1 || n < 0:
			return []string{s}, nil
		case utf8.RuneCountInString(s) == n:
			labels := make([]string, 0, n)
			for _, r := range s {
				labels = append(labels, string(r))
			}
			return labels, nil
		default:
			return nil, invalid(KeyLabels, "label string %q does not match %d segments", s, n)
		}
	}
	items := toItems(v)
	labels := make([]string, len(items))
	for i, item := range items {
		label, err := coerceLabel(item)
		if err != nil {
			return nil, &ValidationError{Field: KeyLabels, Index: i, Reason: err.Error()}
		}
		labels[i] = label
	}
	return labels, nil
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}

// Len returns the number of segments.
func (s Sequence) Len() int { return len(s.segments) }

// Segments returns a copy of the segments in stored order.
func (s Sequence) Segments() []Segment { return slices.Clone(s.segments) }

// At returns the i-th segment.
func (s Sequence) At(i int) Segment { return s.segments[i] }

// All iterates over the segments in stored order.
func (s Sequence) All() iter.Seq2[int, Segment] {
	return func(yield func(int, Segment) bool) {
		for i, seg := range s.segments {
			if !yield(i, seg) {
				return
			}
		}
	}
}

// Labels returns the label of each segment.
func (s Sequence) Labels() []string {
	out := make([]string, len(s.segments))
	for i, seg := range s.segments {
		out[i] = seg.label
	}
	return out
}

// OnsetsS returns each segment's onset in seconds, NaN where unknown.
func (s Sequence) OnsetsS() []float64 {
	return project(s.segments, func(seg Segment) float64 { return secondsOr(seg.onsetS, seg.hasSeconds) })
}

// OffsetsS returns each segment's offset in seconds, NaN where unknown.
func (s Sequence) OffsetsS() []float64 {
	return project(s.segments, func(seg Segment) float64 { return secondsOr(seg.offsetS, seg.hasSeconds) })
}

// OnsetSamples returns each segment's onset sample index, -1 where unknown.
func (s Sequence) OnsetSamples() []int64 {
	return project(s.segments, func(seg Segment) int64 { return sampleOr(seg.onsetSample, seg.hasSamples) })
}

// OffsetSamples returns each segment's offset sample index, -1 where unknown.
func (s Sequence) OffsetSamples() []int64 {
	return project(s.segments, func(seg Segment) int64 { return sampleOr(seg.offsetSample, seg.hasSamples) })
}

// HasSeconds reports whether every segment carries onset/offset in seconds.
func (s Sequence) HasSeconds() bool {
	return !slices.ContainsFunc(s.segments, func(seg Segment) bool { return !seg.hasSeconds })
}

// HasSamples reports whether every segment carries onset/offset sample indices.
func (s Sequence) HasSamples() bool {
	return !slices.ContainsFunc(s.segments, func(seg Segment) bool { return !seg.hasSamples })
}

// Equal reports whether both sequences hold equal segments in the same order.
func (s Sequence) Equal(other Sequence) bool {
	return slices.Equal(s.segments, other.segments)
}

// ToDict returns the sequence as a mapping, the inverse of FromDict.
// A timing pair is included only when every segment carries it.
func (s Sequence) ToDict() map[string]any {
	m := map[string]any{KeyLabels: s.Labels()}
	if s.HasSeconds() {
		m[KeyOnsetsS] = s.OnsetsS()
		m[KeyOffsetsS] = s.OffsetsS()
	}
	if s.HasSamples() {
		m[KeyOnsetSamples] = s.OnsetSamples()
		m[KeyOffsetSamples] = s.OffsetSamples()
	}
	return m
}

func (s Sequence) String() string {
	return fmt.Sprintf("<Sequence with %d segments>", len(s.segments))
}

func project[T any](segments []Segment, fn func(Segment) T) []T {
	out := make([]T, len(segments))
	for i, seg := range segments {
		out[i] = fn(seg)
	}
	return out
}

func secondsOr(v float64, ok bool) float64 {
	if !ok {
		return math.NaN()
	}
	return v
}

func sampleOr(v int64, ok bool) int64 {
	if !ok {
		return -1
	}
	return v
}
