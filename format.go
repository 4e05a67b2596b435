package annotkit

import (
	"github.com/simonhull/annotkit/internal/registry"
	"github.com/simonhull/annotkit/internal/types"

	// Built-in formats register themselves in init.
	_ "github.com/simonhull/annotkit/internal/audacity"
	_ "github.com/simonhull/annotkit/internal/generic"
	_ "github.com/simonhull/annotkit/internal/raven"
	_ "github.com/simonhull/annotkit/internal/simple"
	_ "github.com/simonhull/annotkit/internal/sqlitedb"
	_ "github.com/simonhull/annotkit/internal/timit"
)

// Format is the part of the plugin contract shared by every format.
type Format = types.Format

// SeqFormat reads sequence-like annotation files.
type SeqFormat = types.SeqFormat

// BBoxFormat reads bounding-box-like annotation files.
type BBoxFormat = types.BBoxFormat

// Annotator is a loaded annotation file.
type Annotator = types.Annotator

// SeqLike is a loaded sequence-like annotation file.
type SeqLike = types.SeqLike

// BBoxLike is a loaded bounding-box-like annotation file.
type BBoxLike = types.BBoxLike

// FileWriter is a loaded annotation file that can be written back in its
// own format.
type FileWriter = types.FileWriter

// Register adds a format under its name. The format must implement SeqFormat
// or BBoxFormat and its name must be unused; otherwise a *ConfigError is
// returned.
//
// Example:
//
//	if err := annotkit.Register(myFormat{}); err != nil {
//		log.Fatal(err)
//	}
func Register(f Format) error {
	return registry.Register(f)
}

// MustRegister is Register for init functions. It panics on error.
func MustRegister(f Format) {
	registry.MustRegister(f)
}

// ByName returns the format registered under name, or a *NotFoundError
// listing the valid names.
func ByName(name string) (Format, error) {
	return registry.ByName(name)
}

// AsList returns the names of all registered formats, sorted.
func AsList() []string {
	return registry.AsList()
}

// ForPath returns the sorted names of formats whose extensions match path.
// Several formats can share an extension, e.g. ".txt".
func ForPath(path string) []string {
	return registry.Default.ForPath(path)
}
