package types

import (
	"slices"
	"strings"
)

// Format is the part of the plugin contract shared by every annotation
// format: a unique short name and the file extensions it reads.
//
// A registered Format must also implement exactly one of SeqFormat or
// BBoxFormat; the registry rejects anything else.
type Format interface {
	// Name is the unique short name, e.g. "generic-seq".
	Name() string
	// Ext lists accepted file suffixes including the dot, e.g. ".txt".
	Ext() []string
}

// SeqFormat is a sequence-like format: files holding labeled time intervals.
type SeqFormat interface {
	Format
	// FromFile loads annotations from path. It fails with a *FormatError
	// when path does not end in one of Ext().
	FromFile(path string, opts ...Option) (SeqLike, error)
}

// BBoxFormat is a bounding-box-like format: files holding labeled
// time x frequency boxes.
type BBoxFormat interface {
	Format
	FromFile(path string, opts ...Option) (BBoxLike, error)
}

// Annotator is a loaded annotation file that can be normalized into
// Annotations. Formats whose files describe several recordings return one
// Annotation per recording.
type Annotator interface {
	ToAnnot() ([]Annotation, error)
}

// SeqLike is a loaded sequence-like annotation file.
type SeqLike interface {
	Annotator
	// ToSeq returns one Sequence per annotated recording, in file order.
	ToSeq() ([]Sequence, error)
}

// BBoxLike is a loaded bounding-box-like annotation file.
type BBoxLike interface {
	Annotator
	ToBBox() ([]BBox, error)
}

// FileWriter is implemented by loaded annotations that can be written back
// in their own format.
type FileWriter interface {
	ToFile(path string, opts ...Option) error
}

// KindOf reports whether f is sequence-like or bounding-box-like,
// 0 when it is neither.
func KindOf(f Format) Kind {
	switch f.(type) {
	case SeqFormat:
		return KindSeq
	case BBoxFormat:
		return KindBBox
	default:
		return 0
	}
}

// ValidateExt checks that path ends in one of exts. Suffix matching is used
// rather than filepath.Ext so multi-part extensions like ".not.mat" work.
func ValidateExt(path, format string, exts []string) error {
	if slices.ContainsFunc(exts, func(ext string) bool { return strings.HasSuffix(path, ext) }) {
		return nil
	}
	return &FormatError{
		Path:   path,
		Format: format,
		Reason: "invalid extension, valid extension(s): " + strings.Join(exts, ", "),
	}
}
