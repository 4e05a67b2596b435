package annotkit

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestFormatError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *FormatError
		contains []string
	}{
		{
			name: "bad extension",
			err: &FormatError{
				Path:   "bird1.csv",
				Format: "aud-seq",
				Reason: "invalid extension, valid extension(s): .txt",
			},
			contains: []string{"bird1.csv", "aud-seq", "valid extension(s): .txt"},
		},
		{
			name: "bad line",
			err: &FormatError{
				Path:   "SA1.PHN",
				Format: "timit",
				Line:   3,
				Reason: "begin sample: not an integer",
			},
			contains: []string{"SA1.PHN:3", "timit", "not an integer"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := tt.err.Error()
			for _, substr := range tt.contains {
				if !strings.Contains(msg, substr) {
					t.Errorf("error message %q should contain %q", msg, substr)
				}
			}
		})
	}
}

func TestSchemaError_Error(t *testing.T) {
	err := &SchemaError{
		Path:   "all.csv",
		Row:    4,
		Group:  1,
		Column: "annot_path",
		Reason: "value differs",
	}

	msg := err.Error()
	for _, substr := range []string{"all.csv", "row 4", "annot group 1", `"annot_path"`, "value differs"} {
		if !strings.Contains(msg, substr) {
			t.Errorf("error should contain %q, got: %s", substr, msg)
		}
	}
}

func TestNotFoundError_Error(t *testing.T) {
	err := &NotFoundError{Name: "doesnotexist", Valid: []string{"aud-seq", "raven"}}

	msg := err.Error()
	if !strings.Contains(msg, `"doesnotexist"`) {
		t.Errorf("error should contain name, got: %s", msg)
	}
	if !strings.Contains(msg, "aud-seq, raven") {
		t.Errorf("error should list valid names, got: %s", msg)
	}
}

func TestErrorSentinels(t *testing.T) {
	cause := &ValidationError{Field: "offset_s", Index: -1, Reason: "precedes onset"}
	tests := []struct {
		name   string
		err    error
		target error
	}{
		{"validation", cause, ErrValidation},
		{"format", &FormatError{Path: "x"}, ErrFormat},
		{"schema", &SchemaError{Group: -1}, ErrSchema},
		{"not found", &NotFoundError{Name: "x"}, ErrNotFound},
		{"config", &ConfigError{Reason: "x"}, ErrConfig},
		{"wrapped cause", &SchemaError{Group: -1, Err: cause}, ErrValidation},
		{"wrapped by fmt", fmt.Errorf("x.csv: %w", &FormatError{Path: "x"}), ErrFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !errors.Is(tt.err, tt.target) {
				t.Errorf("errors.Is(%v, %v) = false", tt.err, tt.target)
			}
		})
	}

	if errors.Is(&FormatError{}, ErrSchema) {
		t.Error("FormatError should not match ErrSchema")
	}
}
