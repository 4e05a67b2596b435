package annotkit

import (
	"fmt"

	"github.com/simonhull/annotkit/internal/types"
)

// Transcriber loads annotation files of one format.
//
// The format is resolved when the Transcriber is created, so a misspelled
// name fails immediately:
//
//	t, err := annotkit.NewTranscriber("raven")
//	if err != nil {
//		return err // *NotFoundError listing the valid names
//	}
//	loaded, err := t.FromFile("Recording1.Table.1.selections.txt",
//	    annotkit.WithLabelColumn("Species"),
//	)
type Transcriber struct {
	format Format
}

// NewTranscriber returns a Transcriber for the format registered under name.
func NewTranscriber(name string) (*Transcriber, error) {
	f, err := ByName(name)
	if err != nil {
		return nil, err
	}
	return &Transcriber{format: f}, nil
}

// NewTranscriberFor returns a Transcriber for f, which need not be
// registered.
func NewTranscriberFor(f Format) (*Transcriber, error) {
	if f == nil || types.KindOf(f) == 0 {
		return nil, &ConfigError{Reason: fmt.Sprintf("%T implements neither SeqFormat nor BBoxFormat", f)}
	}
	return &Transcriber{format: f}, nil
}

// Format returns the format this Transcriber loads.
func (t *Transcriber) Format() Format {
	return t.format
}

// FromFile loads path with the Transcriber's format. The result is a
// SeqLike or a BBoxLike depending on the format.
func (t *Transcriber) FromFile(path string, opts ...Option) (Annotator, error) {
	switch f := t.format.(type) {
	case SeqFormat:
		loaded, err := f.FromFile(path, opts...)
		if err != nil {
			return nil, err
		}
		return loaded, nil
	case BBoxFormat:
		loaded, err := f.FromFile(path, opts...)
		if err != nil {
			return nil, err
		}
		return loaded, nil
	default:
		return nil, &ConfigError{Name: t.format.Name(), Reason: "format cannot load files"}
	}
}

func (t *Transcriber) String() string {
	return fmt.Sprintf("Transcriber(format=%s)", t.format.Name())
}
