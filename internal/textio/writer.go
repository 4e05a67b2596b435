package textio

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/simonhull/annotkit/internal/types"
)

// WriteFile creates path, lets fn write to a buffered writer and flushes and
// closes the file. The first error from fn, flush or close is returned.
func WriteFile(path string, fn func(w io.Writer) error) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close %s: %w", path, cerr)
		}
	}()

	bw := bufio.NewWriter(f)
	if err := fn(bw); err != nil {
		return err
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// WriteLines writes each row as one line with fields joined by sep.
func WriteLines(w io.Writer, sep string, rows [][]string) error {
	for _, row := range rows {
		if _, err := io.WriteString(w, strings.Join(row, sep)+"\n"); err != nil {
			return err
		}
	}
	return nil
}

// WriteCSV writes a header row followed by rows in comma-separated form.
func WriteCSV(w io.Writer, header []string, rows [][]string) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return err
	}
	if err := cw.WriteAll(rows); err != nil {
		return err
	}
	return cw.Error()
}

// IsTab reports whether r is a tab.
func IsTab(r rune) bool { return r == '\t' }

// CheckCells returns a *types.FormatError for the first value that cannot be
// written as one field of a delimited line and read back unchanged: one that
// holds a line break or a rune for which isSep reports true. what names the
// values in the error, e.g. "label".
func CheckCells(path, format, what string, values []string, isSep func(rune) bool) error {
	for i, v := range values {
		if strings.ContainsAny(v, "\r\n") || strings.ContainsFunc(v, isSep) {
			return &types.FormatError{
				Path:   path,
				Format: format,
				Reason: fmt.Sprintf("%s %d (%q) contains a field separator or line break", what, i, v),
			}
		}
	}
	return nil
}
