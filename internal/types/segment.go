package types

import (
	"fmt"
	"math"
	"strings"
)

// Segment is one labeled time interval of a recording.
//
// A Segment carries its onset and offset in seconds, in sample indices, or
// both. The two representations are not checked against each other since
// the sample rate is often unknown when a Segment is built.
//
// Segment is a comparable value; its fields are only reachable through
// accessors so a constructed Segment always satisfies its invariants.
type Segment struct {
	label        string
	onsetS       float64
	offsetS      float64
	onsetSample  int64
	offsetSample int64
	hasSeconds   bool
	hasSamples   bool
}

// SegmentFields names every field of a Segment. Nil pointers are absent values.
type SegmentFields struct {
	Label        string
	OnsetS       *float64
	OffsetS      *float64
	OnsetSample  *int64
	OffsetSample *int64
}

// Float returns a pointer to v, for filling SegmentFields.
func Float(v float64) *float64 { return &v }

// Int returns a pointer to v, for filling SegmentFields.
func Int(v int64) *int64 { return &v }

// NewSegment builds a Segment from explicitly named fields.
//
// It fails with a *ValidationError when neither a complete seconds pair nor a
// complete sample pair is given, when only half of a pair is given, or when
// an offset precedes its onset.
func NewSegment(f SegmentFields) (Segment, error) {
	seg := Segment{label: f.Label}

	if (f.OnsetS == nil) != (f.OffsetS == nil) {
		if f.OnsetS != nil {
			return Segment{}, invalid("offset_s", "onset_s specified as %v but offset_s is missing", *f.OnsetS)
		}
		return Segment{}, invalid("onset_s", "offset_s specified as %v but onset_s is missing", *f.OffsetS)
	}
	if (f.OnsetSample == nil) != (f.OffsetSample == nil) {
		if f.OnsetSample != nil {
			return Segment{}, invalid("offset_sample", "onset_sample specified as %d but offset_sample is missing", *f.OnsetSample)
		}
		return Segment{}, invalid("onset_sample", "offset_sample specified as %d but onset_sample is missing", *f.OffsetSample)
	}
	if f.OnsetS == nil && f.OnsetSample == nil {
		return Segment{}, invalid("", "must provide either onset_s and offset_s, or onset_sample and offset_sample")
	}

	if f.OnsetS != nil {
		on, off := *f.OnsetS, *f.OffsetS
		if math.IsNaN(on) || math.IsInf(on, 0) {
			return Segment{}, invalid("onset_s", "not a finite number: %v", on)
		}
		if math.IsNaN(off) || math.IsInf(off, 0) {
			return Segment{}, invalid("offset_s", "not a finite number: %v", off)
		}
		if off < on {
			return Segment{}, invalid("offset_s", "offset %v precedes onset %v", off, on)
		}
		seg.onsetS, seg.offsetS, seg.hasSeconds = on, off, true
	}

	if f.OnsetSample != nil {
		on, off := *f.OnsetSample, *f.OffsetSample
		if on < 0 {
			return Segment{}, invalid("onset_sample", "negative sample index %d", on)
		}
		if off < 0 {
			return Segment{}, invalid("offset_sample", "negative sample index %d", off)
		}
		if off < on {
			return Segment{}, invalid("offset_sample", "offset %d precedes onset %d", off, on)
		}
		seg.onsetSample, seg.offsetSample, seg.hasSamples = on, off, true
	}

	return seg, nil
}

// SecondsSegment builds a Segment with onset and offset in seconds.
func SecondsSegment(label string, onset, offset float64) (Segment, error) {
	return NewSegment(SegmentFields{Label: label, OnsetS: &onset, OffsetS: &offset})
}

// SampleSegment builds a Segment with onset and offset as sample indices.
func SampleSegment(label string, onset, offset int64) (Segment, error) {
	return NewSegment(SegmentFields{Label: label, OnsetSample: &onset, OffsetSample: &offset})
}

// Segment map keys, shared with the generic tabular schema.
const (
	KeyLabel        = "label"
	KeyOnsetS       = "onset_s"
	KeyOffsetS      = "offset_s"
	KeyOnsetSample  = "onset_sample"
	KeyOffsetSample = "offset_sample"
)

// SegmentFromMap builds a Segment from an unordered mapping of field name to
// value, with the same validation as NewSegment.
//
// Values are coerced: the label may be any scalar (an integer class id
// becomes its decimal text), times may be any numeric or numeric string.
// Nil values are treated as absent. The label is required; unknown keys are
// rejected.
func SegmentFromMap(m map[string]any) (Segment, error) {
	var f SegmentFields
	hasLabel := false
	for key, val := range m {
		if val == nil {
			continue
		}
		switch key {
		case KeyLabel:
			label, err := coerceLabel(val)
			if err != nil {
				return Segment{}, invalid(KeyLabel, "%v", err)
			}
			f.Label = label
			hasLabel = true
		case KeyOnsetS, KeyOffsetS:
			v, err := coerceFloat(val)
			if err != nil {
				return Segment{}, invalid(key, "%v", err)
			}
			if key == KeyOnsetS {
				f.OnsetS = &v
			} else {
				f.OffsetS = &v
			}
		case KeyOnsetSample, KeyOffsetSample:
			v, err := coerceSample(val)
			if err != nil {
				return Segment{}, invalid(key, "%v", err)
			}
			if key == KeyOnsetSample {
				f.OnsetSample = &v
			} else {
				f.OffsetSample = &v
			}
		default:
			return Segment{}, invalid(key, "unknown segment field")
		}
	}
	if !hasLabel {
		return Segment{}, invalid(KeyLabel, "missing")
	}
	return NewSegment(f)
}

// Label returns the segment label.
func (s Segment) Label() string { return s.label }

// OnsetS returns the onset in seconds and whether it is known.
func (s Segment) OnsetS() (float64, bool) { return s.onsetS, s.hasSeconds }

// OffsetS returns the offset in seconds and whether it is known.
func (s Segment) OffsetS() (float64, bool) { return s.offsetS, s.hasSeconds }

// OnsetSample returns the onset sample index and whether it is known.
func (s Segment) OnsetSample() (int64, bool) { return s.onsetSample, s.hasSamples }

// OffsetSample returns the offset sample index and whether it is known.
func (s Segment) OffsetSample() (int64, bool) { return s.offsetSample, s.hasSamples }

// HasSeconds reports whether the seconds pair is present.
func (s Segment) HasSeconds() bool { return s.hasSeconds }

// HasSamples reports whether the sample-index pair is present.
func (s Segment) HasSamples() bool { return s.hasSamples }

// Equal reports whether two segments have identical fields.
func (s Segment) Equal(other Segment) bool { return s == other }

// Fields returns the segment as SegmentFields, the inverse of NewSegment.
func (s Segment) Fields() SegmentFields {
	f := SegmentFields{Label: s.label}
	if s.hasSeconds {
		f.OnsetS, f.OffsetS = Float(s.onsetS), Float(s.offsetS)
	}
	if s.hasSamples {
		f.OnsetSample, f.OffsetSample = Int(s.onsetSample), Int(s.offsetSample)
	}
	return f
}

// ToMap returns the segment as a mapping, the inverse of SegmentFromMap.
// Absent pairs are omitted.
func (s Segment) ToMap() map[string]any {
	m := map[string]any{KeyLabel: s.label}
	if s.hasSeconds {
		m[KeyOnsetS] = s.onsetS
		m[KeyOffsetS] = s.offsetS
	}
	if s.hasSamples {
		m[KeyOnsetSample] = s.onsetSample
		m[KeyOffsetSample] = s.offsetSample
	}
	return m
}

func (s Segment) String() string {
	var parts []string
	parts = append(parts, fmt.Sprintf("label=%q", s.label))
	if s.hasSeconds {
		parts = append(parts, fmt.Sprintf("onset_s=%v", s.onsetS), fmt.Sprintf("offset_s=%v", s.offsetS))
	}
	if s.hasSamples {
		parts = append(parts, fmt.Sprintf("onset_sample=%d", s.onsetSample), fmt.Sprintf("offset_sample=%d", s.offsetSample))
	}
	return "Segment(" + strings.Join(parts, ", ") + ")"
}
