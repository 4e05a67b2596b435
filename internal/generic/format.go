package generic

import (
	"slices"

	"github.com/simonhull/annotkit/internal/registry"
	"github.com/simonhull/annotkit/internal/types"
)

func init() {
	registry.MustRegister(Format{})
}

// Format is the "generic-seq" plugin.
type Format struct{}

// Name implements types.Format.
func (Format) Name() string { return FormatName }

// Ext implements types.Format.
func (Format) Ext() []string { return []string{".csv"} }

// FromFile reads a generic CSV file.
func (f Format) FromFile(path string, opts ...types.Option) (types.SeqLike, error) {
	if err := types.ValidateExt(path, FormatName, f.Ext()); err != nil {
		return nil, err
	}
	o := types.NewOptions(opts...)
	annots, err := ReadFile(path)
	if err != nil {
		return nil, err
	}
	o.Logger.Debug("loaded generic table", "path", path, "annotations", len(annots))
	return New(annots), nil
}

// Annotations is a loaded generic table, or any list of sequence-like
// annotations to be written as one.
type Annotations struct {
	annots []types.Annotation
}

// New wraps annots for writing.
func New(annots []types.Annotation) *Annotations {
	return &Annotations{annots: slices.Clone(annots)}
}

// ToAnnot returns the annotations in annot order.
func (a *Annotations) ToAnnot() ([]types.Annotation, error) {
	return slices.Clone(a.annots), nil
}

// ToSeq returns every sequence of every annotation, in table order.
func (a *Annotations) ToSeq() ([]types.Sequence, error) {
	var seqs []types.Sequence
	for _, annot := range a.annots {
		seqs = append(seqs, annot.Seqs()...)
	}
	return seqs, nil
}

// ToTable encodes the annotations.
func (a *Annotations) ToTable(opts ...types.Option) (Table, error) {
	return ToTable(a.annots, opts...)
}

// ToFile writes the annotations to path as a generic CSV table.
func (a *Annotations) ToFile(path string, opts ...types.Option) error {
	return WriteFile(path, a.annots, opts...)
}
