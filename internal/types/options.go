package types

import "log/slog"

// Option configures how a format loads or writes annotations.
//
// Options are shared by all formats; a format ignores options that do not
// apply to it.
type Option func(*Options)

// Options holds the resolved configuration. Formats read it through
// NewOptions.
type Options struct {
	Logger       *slog.Logger
	ColumnsMap   map[string]string // source column name -> canonical name
	NotatedPath  string
	DefaultLabel string
	LabelColumn  string
	SampleRate   int  // Hz, 0 when unknown
	Decimals     int  // digits kept when rounding times
	Round        bool // round times in seconds to Decimals
	AbsPath      bool // write absolute paths (generic encode)
	Basename     bool // write base file names only (generic encode)
}

// Defaults used by NewOptions.
const (
	DefaultLabel       = "-"
	DefaultLabelColumn = "Annotation"
	DefaultDecimals    = 3
)

// NewOptions applies opts over the defaults.
func NewOptions(opts ...Option) *Options {
	o := &Options{
		DefaultLabel: DefaultLabel,
		LabelColumn:  DefaultLabelColumn,
		Decimals:     DefaultDecimals,
		Round:        true,
	}
	for _, opt := range opts {
		opt(o)
	}
	if o.Logger == nil {
		o.Logger = slog.Default()
	}
	return o
}

// WithNotatedPath sets the path of the audio or spectrogram file the
// annotation file describes.
func WithNotatedPath(path string) Option {
	return func(o *Options) {
		o.NotatedPath = path
	}
}

// WithColumnsMap renames columns of a tabular source file to the canonical
// names a format expects, e.g. {"start_seconds": "onset_s"}.
func WithColumnsMap(m map[string]string) Option {
	return func(o *Options) {
		o.ColumnsMap = m
	}
}

// WithDefaultLabel sets the label used when a source file has no label column.
func WithDefaultLabel(label string) Option {
	return func(o *Options) {
		o.DefaultLabel = label
	}
}

// WithLabelColumn names the column holding labels in selection tables.
func WithLabelColumn(name string) Option {
	return func(o *Options) {
		o.LabelColumn = name
	}
}

// WithRoundTimes rounds times in seconds to the given number of decimals
// when converting to Sequences. Rounding is on by default with 3 decimals so
// that files converted on different platforms compare equal.
func WithRoundTimes(decimals int) Option {
	return func(o *Options) {
		o.Round = true
		o.Decimals = decimals
	}
}

// WithoutRounding keeps times in seconds exactly as read.
func WithoutRounding() Option {
	return func(o *Options) {
		o.Round = false
	}
}

// WithSampleRate sets the sampling rate used to convert sample indices to
// seconds for formats that store samples only.
func WithSampleRate(hz int) Option {
	return func(o *Options) {
		o.SampleRate = hz
	}
}

// WithAbsPath writes absolute annot_path and notated_path values.
func WithAbsPath() Option {
	return func(o *Options) {
		o.AbsPath = true
	}
}

// WithBasename writes only the base file name of annot_path and notated_path.
func WithBasename() Option {
	return func(o *Options) {
		o.Basename = true
	}
}

// WithLogger sets the logger formats use for debug output.
func WithLogger(l *slog.Logger) Option {
	return func(o *Options) {
		o.Logger = l
	}
}
