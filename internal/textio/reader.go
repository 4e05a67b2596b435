// Package textio provides line- and field-oriented reading of delimited
// annotation text files, keeping file and line context for error messages.
package textio

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/simonhull/annotkit/internal/types"
)

// Separator selects how a line is split into fields.
type Separator int

const (
	// Tab splits on every tab; empty fields are kept.
	Tab Separator = iota
	// Whitespace splits on runs of spaces and tabs.
	Whitespace
)

// Record is one non-blank line of a text file.
type Record struct {
	Fields []string
	Line   int // 1-based line number in the source
}

// Reader reads delimited records from a named source.
type Reader struct {
	r      io.Reader
	path   string
	format string
}

// NewReader creates a Reader. path and format are used for error context only.
func NewReader(r io.Reader, path, format string) *Reader {
	return &Reader{r: r, path: path, format: format}
}

// Path returns the source path associated with this reader.
func (tr *Reader) Path() string {
	return tr.path
}

// Errorf returns a *types.FormatError located at line.
func (tr *Reader) Errorf(line int, format string, args ...any) error {
	return &types.FormatError{
		Path:   tr.path,
		Format: tr.format,
		Line:   line,
		Reason: fmt.Sprintf(format, args...),
	}
}

// Records reads every non-blank line and splits it with sep.
// A leading UTF-8 byte order mark and trailing carriage returns are dropped.
func (tr *Reader) Records(sep Separator) ([]Record, error) {
	sc := bufio.NewScanner(tr.r)
	sc.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)

	var records []Record
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimRight(sc.Text(), "\r")
		if line == 1 {
			text = strings.TrimPrefix(text, "\ufeff")
		}
		if strings.TrimSpace(text) == "" {
			continue
		}
		var fields []string
		switch sep {
		case Whitespace:
			fields = strings.Fields(text)
		default:
			fields = strings.Split(text, "\t")
		}
		records = append(records, Record{Fields: fields, Line: line})
	}
	if err := sc.Err(); err != nil {
		return nil, &types.FormatError{Path: tr.path, Format: tr.format, Line: line + 1, Reason: "read failed", Err: err}
	}
	return records, nil
}

// CSV reads a comma-separated file with a header row. It returns the header
// and the data records; an empty input yields a nil header and no records.
// Rows may have a different number of fields than the header; callers check.
func (tr *Reader) CSV() ([]string, []Record, error) {
	cr := csv.NewReader(tr.r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil, nil
	}
	if err != nil {
		return nil, nil, tr.csvError(err)
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}

	var records []Record
	for {
		fields, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, nil, tr.csvError(err)
		}
		line, _ := cr.FieldPos(0)
		records = append(records, Record{Fields: fields, Line: line})
	}
	return header, records, nil
}

func (tr *Reader) csvError(err error) error {
	fe := &types.FormatError{Path: tr.path, Format: tr.format, Reason: "malformed csv", Err: err}
	var pe *csv.ParseError
	if errors.As(err, &pe) {
		fe.Line = pe.Line
		fe.Err = pe.Err
	}
	return fe
}

// ReadFile opens path, passes a Reader over it to fn and closes the file on
// every return path.
func ReadFile(path, format string, fn func(*Reader) error) error {
	f, err := os.Open(path)
	if err != nil {
		return &types.FormatError{Path: path, Format: format, Reason: "open file", Err: err}
	}
	defer f.Close()
	return fn(NewReader(f, path, format))
}
