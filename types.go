package annotkit

import (
	"github.com/simonhull/annotkit/internal/types"
)

// Segment is one labeled time interval, in seconds, sample indices or both.
type Segment = types.Segment

// SegmentFields holds the optional fields of a Segment for NewSegment.
type SegmentFields = types.SegmentFields

// Sequence is an ordered, immutable list of Segments.
type Sequence = types.Sequence

// Keywords holds the parallel vectors accepted by FromKeyword.
type Keywords = types.Keywords

// BBox is one labeled time x frequency box.
type BBox = types.BBox

// BBoxFields holds the fields of a BBox for NewBBox.
type BBoxFields = types.BBoxFields

// Annotation binds Sequences or BBoxes to their source file.
type Annotation = types.Annotation

// Kind distinguishes sequence-like from bounding-box-like annotations.
type Kind = types.Kind

const (
	KindSeq  = types.KindSeq
	KindBBox = types.KindBBox
)

// NewSegment validates f and builds a Segment.
func NewSegment(f SegmentFields) (Segment, error) { return types.NewSegment(f) }

// SecondsSegment builds a Segment with times in seconds.
func SecondsSegment(label string, onset, offset float64) (Segment, error) {
	return types.SecondsSegment(label, onset, offset)
}

// SampleSegment builds a Segment with sample indices.
func SampleSegment(label string, onset, offset int64) (Segment, error) {
	return types.SampleSegment(label, onset, offset)
}

// SegmentFromMap builds a Segment from a mapping with the keys label,
// onset_s, offset_s, onset_sample and offset_sample.
func SegmentFromMap(m map[string]any) (Segment, error) { return types.SegmentFromMap(m) }

// FromSegments builds a Sequence in the order given.
func FromSegments(segments []Segment) Sequence { return types.FromSegments(segments) }

// FromKeyword zips parallel vectors into a Sequence.
func FromKeyword(k Keywords) (Sequence, error) { return types.FromKeyword(k) }

// FromDict builds a Sequence from a mapping of vectors or bare scalars.
func FromDict(m map[string]any) (Sequence, error) { return types.FromDict(m) }

// NewBBox validates f and builds a BBox.
func NewBBox(f BBoxFields) (BBox, error) { return types.NewBBox(f) }

// BBoxFromMap builds a BBox from a mapping.
func BBoxFromMap(m map[string]any) (BBox, error) { return types.BBoxFromMap(m) }

// NewSeqAnnotation builds a sequence-like Annotation.
func NewSeqAnnotation(annotPath, notatedPath string, seqs ...Sequence) (Annotation, error) {
	return types.NewSeqAnnotation(annotPath, notatedPath, seqs...)
}

// NewBBoxAnnotation builds a bounding-box-like Annotation.
func NewBBoxAnnotation(annotPath, notatedPath string, bboxes []BBox) (Annotation, error) {
	return types.NewBBoxAnnotation(annotPath, notatedPath, bboxes)
}

// Float returns a pointer to v, for SegmentFields.
func Float(v float64) *float64 { return types.Float(v) }

// Int returns a pointer to v, for SegmentFields.
func Int(v int64) *int64 { return types.Int(v) }
