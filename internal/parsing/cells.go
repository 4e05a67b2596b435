// Package parsing converts text cells of annotation tables to typed values
// and back, and normalizes the file paths stored alongside annotations.
package parsing

import (
	"database/sql"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ParseFloat parses a required floating point cell.
func ParseFloat(cell string) (float64, error) {
	s := strings.TrimSpace(cell)
	if s == "" {
		return 0, fmt.Errorf("empty value, expected a number")
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("not a number: %q", cell)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("not a finite number: %q", cell)
	}
	return v, nil
}

// ParseSample parses a required non-negative integer sample index.
// Integral float spellings such as "16000.0" are accepted, since spreadsheet
// tools often write integers that way.
func ParseSample(cell string) (int64, error) {
	s := strings.TrimSpace(cell)
	if s == "" {
		return 0, fmt.Errorf("empty value, expected an integer")
	}
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		f, ferr := strconv.ParseFloat(s, 64)
		if ferr != nil || f != math.Trunc(f) || math.IsInf(f, 0) {
			return 0, fmt.Errorf("not an integer: %q", cell)
		}
		v = int64(f)
	}
	if v < 0 {
		return 0, fmt.Errorf("negative sample index: %q", cell)
	}
	return v, nil
}

// ParseIndex parses a required non-negative integer grouping key.
func ParseIndex(cell string) (int, error) {
	s := strings.TrimSpace(cell)
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("not an integer: %q", cell)
	}
	if v < 0 {
		return 0, fmt.Errorf("negative index: %q", cell)
	}
	return v, nil
}

// ParseNullFloat parses an optional floating point cell; an empty cell is null.
func ParseNullFloat(cell string) (sql.NullFloat64, error) {
	if strings.TrimSpace(cell) == "" {
		return sql.NullFloat64{}, nil
	}
	v, err := ParseFloat(cell)
	if err != nil {
		return sql.NullFloat64{}, err
	}
	return sql.NullFloat64{Float64: v, Valid: true}, nil
}

// ParseNullSample parses an optional sample index cell; an empty cell is null.
func ParseNullSample(cell string) (sql.NullInt64, error) {
	if strings.TrimSpace(cell) == "" {
		return sql.NullInt64{}, nil
	}
	v, err := ParseSample(cell)
	if err != nil {
		return sql.NullInt64{}, err
	}
	return sql.NullInt64{Int64: v, Valid: true}, nil
}

// FormatFloat writes v with the fewest digits that parse back to v exactly.
func FormatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// FormatNullFloat writes a null as an empty cell.
func FormatNullFloat(v sql.NullFloat64) string {
	if !v.Valid {
		return ""
	}
	return FormatFloat(v.Float64)
}

// FormatNullInt writes a null as an empty cell.
func FormatNullInt(v sql.NullInt64) string {
	if !v.Valid {
		return ""
	}
	return strconv.FormatInt(v.Int64, 10)
}

// Round rounds v to the given number of decimals, with ties going to the
// even neighbour so results match common numeric libraries.
func Round(v float64, decimals int) float64 {
	if decimals < 0 {
		return v
	}
	scale := math.Pow(10, float64(decimals))
	return math.RoundToEven(v*scale) / scale
}

// RoundAll returns a rounded copy of vs.
func RoundAll(vs []float64, decimals int) []float64 {
	out := make([]float64, len(vs))
	for i, v := range vs {
		out[i] = Round(v, decimals)
	}
	return out
}
