// Package config describes batch conversion jobs: which files to read, in
// which format, and where to write the resulting generic table.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/simonhull/annotkit/internal/registry"
	"github.com/simonhull/annotkit/internal/types"
)

// PathMode selects how paths are stored in the output table.
type PathMode string

// Path modes accepted in the paths key of a job file.
const (
	// PathsAsIs stores paths as they were given.
	PathsAsIs PathMode = ""
	// PathsAbs stores absolute paths.
	PathsAbs PathMode = "abs"
	// PathsBasename stores file names only.
	PathsBasename PathMode = "basename"
)

// IsValid reports whether m is one of the known path modes.
func (m PathMode) IsValid() bool {
	switch m {
	case PathsAsIs, PathsAbs, PathsBasename:
		return true
	default:
		return false
	}
}

// Output formats selected by the extension of Job.Output.
const (
	OutputCSV    = "generic-seq"
	OutputSQLite = "generic-seq-db"
)

// RoundDecimalsDefault is used when round_decimals is not set.
const RoundDecimalsDefault = types.DefaultDecimals

// Job is one conversion: every file matching Inputs is loaded with Format
// and all annotations are written to Output.
type Job struct {
	Format     string   `yaml:"format"`
	Inputs     []string `yaml:"inputs"`
	Output     string   `yaml:"output"`
	NotatedExt string   `yaml:"notated_ext"`
	SampleRate int      `yaml:"sample_rate"`
	// RoundDecimals of -1 disables rounding; nil means the default.
	RoundDecimals *int              `yaml:"round_decimals"`
	Paths         PathMode          `yaml:"paths"`
	LabelColumn   string            `yaml:"label_column"`
	DefaultLabel  string            `yaml:"default_label"`
	ColumnsMap    map[string]string `yaml:"columns_map"`
}

// Load reads a job from a YAML file. Unknown keys are rejected.
func Load(path string) (Job, error) {
	f, err := os.Open(path)
	if err != nil {
		return Job{}, fmt.Errorf("open job file: %w", err)
	}
	defer f.Close()

	var job Job
	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(&job); err != nil {
		return Job{}, fmt.Errorf("parse job file %s: %w", path, err)
	}
	return job, nil
}

// FromEnv overrides fields set in the environment. ANNOTCONV_FORMAT
// replaces the input format.
func (j *Job) FromEnv() {
	if val := os.Getenv("ANNOTCONV_FORMAT"); val != "" {
		j.Format = val
	}
}

// SetDefaults fills unset fields.
func (j *Job) SetDefaults() {
	if j.RoundDecimals == nil {
		d := RoundDecimalsDefault
		j.RoundDecimals = &d
	}
}

// IsValid reports the first problem with the job.
func (j Job) IsValid() error {
	if j.Format == "" {
		return fmt.Errorf("format cannot be empty")
	}
	f, err := registry.ByName(j.Format)
	if err != nil {
		return err
	}
	if types.KindOf(f) != types.KindSeq {
		return fmt.Errorf("format %q is %s; generic tables hold sequence-like annotations only", j.Format, types.KindOf(f))
	}
	if len(j.Inputs) == 0 {
		return fmt.Errorf("inputs cannot be empty")
	}
	for _, pattern := range j.Inputs {
		if _, err := filepath.Match(pattern, ""); err != nil {
			return fmt.Errorf("input pattern %q: %w", pattern, err)
		}
	}
	if j.Output == "" {
		return fmt.Errorf("output cannot be empty")
	}
	if _, err := j.OutputFormat(); err != nil {
		return err
	}
	if j.NotatedExt != "" && !strings.HasPrefix(j.NotatedExt, ".") {
		return fmt.Errorf("notated_ext %q must start with a dot", j.NotatedExt)
	}
	if j.SampleRate < 0 {
		return fmt.Errorf("sample_rate cannot be negative")
	}
	if d := j.RoundDecimals; d != nil && (*d < -1 || *d > 15) {
		return fmt.Errorf("round_decimals should be -1 or in the range [0, 15]")
	}
	if !j.Paths.IsValid() {
		return fmt.Errorf("paths value %q is not valid", j.Paths)
	}
	return nil
}

// OutputFormat returns the generic format selected by the output extension.
func (j Job) OutputFormat() (string, error) {
	ext := strings.ToLower(filepath.Ext(j.Output))
	switch {
	case ext == ".csv":
		return OutputCSV, nil
	case slices.Contains([]string{".sqlite", ".db"}, ext):
		return OutputSQLite, nil
	default:
		return "", fmt.Errorf("output %q must end in .csv, .sqlite or .db", j.Output)
	}
}

// Expand resolves Inputs to a sorted list of distinct files.
func (j Job) Expand() ([]string, error) {
	var paths []string
	for _, pattern := range j.Inputs {
		matches, err := filepath.Glob(pattern)
		if err != nil {
			return nil, fmt.Errorf("input pattern %q: %w", pattern, err)
		}
		paths = append(paths, matches...)
	}
	slices.Sort(paths)
	paths = slices.Compact(paths)
	if len(paths) == 0 {
		return nil, fmt.Errorf("no files match %s", strings.Join(j.Inputs, ", "))
	}
	return paths, nil
}

// NotatedPath returns the annotated file for an input, derived from
// NotatedExt, or "" when NotatedExt is unset.
func (j Job) NotatedPath(input string) string {
	if j.NotatedExt == "" {
		return ""
	}
	return strings.TrimSuffix(input, filepath.Ext(input)) + j.NotatedExt
}

// LoadOptions returns the options for loading input.
func (j Job) LoadOptions(input string) []types.Option {
	var opts []types.Option
	if p := j.NotatedPath(input); p != "" {
		opts = append(opts, types.WithNotatedPath(p))
	}
	if j.SampleRate > 0 {
		opts = append(opts, types.WithSampleRate(j.SampleRate))
	}
	if j.RoundDecimals != nil {
		if *j.RoundDecimals < 0 {
			opts = append(opts, types.WithoutRounding())
		} else {
			opts = append(opts, types.WithRoundTimes(*j.RoundDecimals))
		}
	}
	if j.LabelColumn != "" {
		opts = append(opts, types.WithLabelColumn(j.LabelColumn))
	}
	if j.DefaultLabel != "" {
		opts = append(opts, types.WithDefaultLabel(j.DefaultLabel))
	}
	if len(j.ColumnsMap) > 0 {
		opts = append(opts, types.WithColumnsMap(j.ColumnsMap))
	}
	return opts
}

// WriteOptions returns the options for writing the output table.
func (j Job) WriteOptions() []types.Option {
	switch j.Paths {
	case PathsAbs:
		return []types.Option{types.WithAbsPath()}
	case PathsBasename:
		return []types.Option{types.WithBasename()}
	default:
		return nil
	}
}

// ToMap returns the job as a flat map for logging.
func (j Job) ToMap() map[string]any {
	m := map[string]any{
		"format":      j.Format,
		"inputs":      strings.Join(j.Inputs, ","),
		"output":      j.Output,
		"notated_ext": j.NotatedExt,
		"sample_rate": j.SampleRate,
		"paths":       string(j.Paths),
	}
	if j.RoundDecimals != nil {
		m["round_decimals"] = *j.RoundDecimals
	}
	return m
}
