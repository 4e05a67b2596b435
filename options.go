package annotkit

import (
	"log/slog"

	"github.com/simonhull/annotkit/internal/types"
)

// Option configures how a format loads or writes annotations.
//
// Options are shared by every format; a format ignores those that do not
// apply to it.
//
// Example:
//
//	loaded, err := t.FromFile("bl26lb16.csv",
//	    annotkit.WithColumnsMap(map[string]string{
//	        "start_seconds": "onset_s",
//	        "stop_seconds":  "offset_s",
//	        "name":          "label",
//	    }),
//	    annotkit.WithNotatedPath("bl26lb16.wav"),
//	)
type Option = types.Option

// WithNotatedPath sets the path of the audio or spectrogram file an
// annotation file describes. Formats never guess it except timit, which
// looks for a .wav next to the transcription.
func WithNotatedPath(path string) Option { return types.WithNotatedPath(path) }

// WithColumnsMap renames columns of a simple-seq file to onset_s, offset_s
// and label.
func WithColumnsMap(m map[string]string) Option { return types.WithColumnsMap(m) }

// WithDefaultLabel sets the label used when a simple-seq file has no label
// column. Default "-".
func WithDefaultLabel(label string) Option { return types.WithDefaultLabel(label) }

// WithLabelColumn names the label column of Raven selection tables.
// Default "Annotation".
func WithLabelColumn(name string) Option { return types.WithLabelColumn(name) }

// WithRoundTimes rounds times in seconds to decimals places. Rounding to
// 3 decimals is the default.
func WithRoundTimes(decimals int) Option { return types.WithRoundTimes(decimals) }

// WithoutRounding keeps times in seconds exactly as read.
func WithoutRounding() Option { return types.WithoutRounding() }

// WithSampleRate sets the sampling rate used to derive seconds from sample
// indices.
func WithSampleRate(hz int) Option { return types.WithSampleRate(hz) }

// WithAbsPath stores absolute paths in the generic table.
func WithAbsPath() Option { return types.WithAbsPath() }

// WithBasename stores only base file names in the generic table.
// It cannot be combined with WithAbsPath.
func WithBasename() Option { return types.WithBasename() }

// WithLogger sets the logger used for debug output. Default slog.Default().
func WithLogger(l *slog.Logger) Option { return types.WithLogger(l) }
