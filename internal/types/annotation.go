package types

import (
	"fmt"
	"slices"
)

// Kind distinguishes the two mutually exclusive annotation payloads.
type Kind int

const (
	// KindSeq marks sequence-like annotations: labeled time intervals.
	KindSeq Kind = iota + 1
	// KindBBox marks bounding-box-like annotations: labeled time x frequency boxes.
	KindBBox
)

func (k Kind) String() string {
	switch k {
	case KindSeq:
		return "sequence-like"
	case KindBBox:
		return "bounding-box-like"
	default:
		return "unknown"
	}
}

// Annotation binds the annotations of one source file to the path of that
// file and, when known, the path of the audio or spectrogram it annotates.
//
// An Annotation carries either one or more Sequences or a list of BBoxes,
// never both. It is immutable once built.
type Annotation struct {
	annotPath   string
	notatedPath string
	seqs        []Sequence
	bboxes      []BBox
	kind        Kind
}

// NewSeqAnnotation builds a sequence-like Annotation. notatedPath may be
// empty when the annotated file is unknown. At least one Sequence is required;
// a Sequence may itself be empty.
func NewSeqAnnotation(annotPath, notatedPath string, seqs ...Sequence) (Annotation, error) {
	if annotPath == "" {
		return Annotation{}, invalid("annot_path", "must not be empty")
	}
	if len(seqs) == 0 {
		return Annotation{}, invalid("seq", "an Annotation must have at least one Sequence")
	}
	return Annotation{
		annotPath:   annotPath,
		notatedPath: notatedPath,
		seqs:        slices.Clone(seqs),
		kind:        KindSeq,
	}, nil
}

// NewBBoxAnnotation builds a bounding-box-like Annotation.
func NewBBoxAnnotation(annotPath, notatedPath string, bboxes []BBox) (Annotation, error) {
	if annotPath == "" {
		return Annotation{}, invalid("annot_path", "must not be empty")
	}
	return Annotation{
		annotPath:   annotPath,
		notatedPath: notatedPath,
		bboxes:      slices.Clone(bboxes),
		kind:        KindBBox,
	}, nil
}

// AnnotPath returns the path of the file the annotations were loaded from.
func (a Annotation) AnnotPath() string { return a.annotPath }

// NotatedPath returns the path of the annotated file, empty if unknown.
func (a Annotation) NotatedPath() string { return a.notatedPath }

// Kind reports which payload the Annotation carries.
func (a Annotation) Kind() Kind { return a.kind }

// IsSeqLike reports whether the Annotation carries Sequences.
func (a Annotation) IsSeqLike() bool { return a.kind == KindSeq }

// IsBBoxLike reports whether the Annotation carries bounding boxes.
func (a Annotation) IsBBoxLike() bool { return a.kind == KindBBox }

// Seqs returns a copy of the Sequences, nil for bounding-box-like annotations.
func (a Annotation) Seqs() []Sequence { return slices.Clone(a.seqs) }

// Seq returns the first Sequence. Most formats annotate one recording per
// file, for which this is the only one.
func (a Annotation) Seq() (Sequence, bool) {
	if len(a.seqs) == 0 {
		return Sequence{}, false
	}
	return a.seqs[0], true
}

// BBoxes returns a copy of the bounding boxes, nil for sequence-like annotations.
func (a Annotation) BBoxes() []BBox { return slices.Clone(a.bboxes) }

// Equal reports whether both annotations have the same paths and payload.
func (a Annotation) Equal(other Annotation) bool {
	if a.annotPath != other.annotPath || a.notatedPath != other.notatedPath || a.kind != other.kind {
		return false
	}
	if a.kind == KindBBox {
		return slices.Equal(a.bboxes, other.bboxes)
	}
	return slices.EqualFunc(a.seqs, other.seqs, Sequence.Equal)
}

func (a Annotation) String() string {
	notated := a.notatedPath
	if notated == "" {
		notated = "<unknown>"
	}
	if a.kind == KindBBox {
		return fmt.Sprintf("Annotation(annot_path=%q, notated_path=%q, bboxes=%d)", a.annotPath, notated, len(a.bboxes))
	}
	return fmt.Sprintf("Annotation(annot_path=%q, notated_path=%q, seqs=%d)", a.annotPath, notated, len(a.seqs))
}
