// Package audacity implements the two Audacity label track exports:
// "aud-seq", the standard format with one tab-separated line per label, and
// "aud-bbox", the extended format that adds a frequency range line after
// every label.
package audacity

import (
	"github.com/simonhull/annotkit/internal/registry"
)

// Registered format names.
const (
	SeqFormatName  = "aud-seq"
	BBoxFormatName = "aud-bbox"
)

var exts = []string{".txt"}

func init() {
	registry.MustRegister(SeqFormat{})
	registry.MustRegister(BBoxFormat{})
}
