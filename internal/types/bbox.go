package types

import (
	"fmt"
	"math"
)

// BBox is one labeled time x frequency rectangle drawn on a spectrogram.
type BBox struct {
	label    string
	onsetS   float64
	offsetS  float64
	lowFreq  float64
	highFreq float64
}

// BBoxFields names every field of a BBox.
type BBoxFields struct {
	Label    string
	OnsetS   float64
	OffsetS  float64
	LowFreq  float64
	HighFreq float64
}

// BBox map keys.
const (
	KeyLowFreq  = "low_freq"
	KeyHighFreq = "high_freq"
)

// NewBBox builds a bounding box. All values must be finite and non-negative,
// the onset must be before the offset and the low frequency below the high.
func NewBBox(f BBoxFields) (BBox, error) {
	for _, v := range []struct {
		name string
		val  float64
	}{
		{KeyOnsetS, f.OnsetS},
		{KeyOffsetS, f.OffsetS},
		{KeyLowFreq, f.LowFreq},
		{KeyHighFreq, f.HighFreq},
	} {
		if math.IsNaN(v.val) || math.IsInf(v.val, 0) {
			return BBox{}, invalid(v.name, "not a finite number: %v", v.val)
		}
		if v.val < 0 {
			return BBox{}, invalid(v.name, "must be non-negative, got %v", v.val)
		}
	}
	if !(f.OnsetS < f.OffsetS) {
		return BBox{}, invalid(KeyOnsetS, "onset %v must be less than offset %v", f.OnsetS, f.OffsetS)
	}
	if !(f.LowFreq < f.HighFreq) {
		return BBox{}, invalid(KeyLowFreq, "low frequency %v must be less than high frequency %v", f.LowFreq, f.HighFreq)
	}
	return BBox{
		label:    f.Label,
		onsetS:   f.OnsetS,
		offsetS:  f.OffsetS,
		lowFreq:  f.LowFreq,
		highFreq: f.HighFreq,
	}, nil
}

// BBoxFromMap builds a bounding box from a mapping with the keys "label",
// "onset_s", "offset_s", "low_freq" and "high_freq". All keys are required.
func BBoxFromMap(m map[string]any) (BBox, error) {
	var f BBoxFields
	seen := 0
	for key, val := range m {
		if val == nil {
			return BBox{}, invalid(key, "value is missing")
		}
		var dst *float64
		switch key {
		case KeyLabel:
			label, err := coerceLabel(val)
			if err != nil {
				return BBox{}, invalid(KeyLabel, "%v", err)
			}
			f.Label = label
			seen++
			continue
		case KeyOnsetS:
			dst = &f.OnsetS
		case KeyOffsetS:
			dst = &f.OffsetS
		case KeyLowFreq:
			dst = &f.LowFreq
		case KeyHighFreq:
			dst = &f.HighFreq
		default:
			return BBox{}, invalid(key, "unknown bounding box field")
		}
		v, err := coerceFloat(val)
		if err != nil {
			return BBox{}, invalid(key, "%v", err)
		}
		*dst = v
		seen++
	}
	if seen != 5 {
		return BBox{}, invalid("", "bounding box needs label, onset_s, offset_s, low_freq and high_freq")
	}
	return NewBBox(f)
}

// Label returns the box label.
func (b BBox) Label() string { return b.label }

// OnsetS returns the box onset in seconds.
func (b BBox) OnsetS() float64 { return b.onsetS }

// OffsetS returns the box offset in seconds.
func (b BBox) OffsetS() float64 { return b.offsetS }

// LowFreq returns the lowest frequency bounding the sound, typically in Hz.
func (b BBox) LowFreq() float64 { return b.lowFreq }

// HighFreq returns the highest frequency bounding the sound, typically in Hz.
func (b BBox) HighFreq() float64 { return b.highFreq }

// Fields returns the box as BBoxFields.
func (b BBox) Fields() BBoxFields {
	return BBoxFields{Label: b.label, OnsetS: b.onsetS, OffsetS: b.offsetS, LowFreq: b.lowFreq, HighFreq: b.highFreq}
}

// ToMap returns the box as a mapping, the inverse of BBoxFromMap.
func (b BBox) ToMap() map[string]any {
	return map[string]any{
		KeyLabel:    b.label,
		KeyOnsetS:   b.onsetS,
		KeyOffsetS:  b.offsetS,
		KeyLowFreq:  b.lowFreq,
		KeyHighFreq: b.highFreq,
	}
}

// Equal reports whether two boxes have identical fields.
func (b BBox) Equal(other BBox) bool { return b == other }

func (b BBox) String() string {
	return fmt.Sprintf("BBox(onset_s=%v, offset_s=%v, low_freq=%v, high_freq=%v, label=%q)",
		b.onsetS, b.offsetS, b.lowFreq, b.highFreq, b.label)
}
