package types

import (
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"

	"github.com/spf13/cast"
)

// coerceLabel converts any scalar label to text. Numeric class ids that some
// annotation tools store instead of strings become their decimal form.
func coerceLabel(v any) (string, error) {
	switch v.(type) {
	case []any, []string, map[string]any:
		return "", fmt.Errorf("label must be a scalar, got %T", v)
	}
	s, err := cast.ToStringE(v)
	if err != nil {
		return "", fmt.Errorf("cannot convert %T to label text", v)
	}
	return s, nil
}

// coerceFloat converts v to seconds. Booleans are rejected.
func coerceFloat(v any) (float64, error) {
	if _, ok := v.(bool); ok {
		return 0, fmt.Errorf("cannot convert bool to seconds")
	}
	if s, ok := v.(string); ok {
		f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			return 0, fmt.Errorf("not a number: %q", s)
		}
		return f, nil
	}
	f, err := cast.ToFloat64E(v)
	if err != nil {
		return 0, fmt.Errorf("cannot convert %T to seconds", v)
	}
	return f, nil
}

// coerceSample converts v to a sample index. Floats are accepted only when
// they hold an integral value; strings must be base-10 integers. Booleans are
// rejected.
func coerceSample(v any) (int64, error) {
	switch x := v.(type) {
	case bool:
		return 0, fmt.Errorf("cannot convert bool to sample index")
	case string:
		n, err := strconv.ParseInt(strings.TrimSpace(x), 10, 64)
		if err != nil {
			return 0, fmt.Errorf("not an integer: %q", x)
		}
		return n, nil
	case float32:
		return integralFloat(float64(x))
	case float64:
		return integralFloat(x)
	}
	n, err := cast.ToInt64E(v)
	if err != nil {
		return 0, fmt.Errorf("cannot convert %T to sample index", v)
	}
	return n, nil
}

func integralFloat(f float64) (int64, error) {
	if f != math.Trunc(f) || math.IsInf(f, 0) || math.IsNaN(f) {
		return 0, fmt.Errorf("sample index must be an integer, got %v", f)
	}
	return int64(f), nil
}

// toItems flattens a slice or array into []any. Any other value is a bare
// scalar and becomes a one-element slice.
func toItems(v any) []any {
	if v == nil {
		return nil
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return []any{v}
	}
	items := make([]any, rv.Len())
	for i := range items {
		items[i] = rv.Index(i).Interface()
	}
	return items
}
