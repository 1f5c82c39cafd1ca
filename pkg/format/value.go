package format

import (
	"fmt"
	"math"
	"reflect"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// inlineValue wraps struct values so go-toml emits them as a single
// `v = ...` assignment with an inline table.
type inlineValue struct {
	V any `toml:"v,inline"`
}

// EncodeTOMLValue renders a Go value as TOML value text suitable for a
// Field default, e.g. `"info"`, `8080`, `["a", "b"]`, `{a = 1}`. Durations
// are written as their string form since TOML has no duration type. Structs
// are delegated to go-toml as inline tables.
func EncodeTOMLValue(value any) (string, error) {
	switch v := value.(type) {
	case nil:
		return "", fmt.Errorf("format: cannot encode nil value")
	case time.Duration:
		return QuoteString(v.String()), nil
	case time.Time:
		return v.UTC().Format(time.RFC3339Nano), nil
	}

	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.String:
		return QuoteString(rv.String()), nil
	case reflect.Bool:
		return strconv.FormatBool(rv.Bool()), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(rv.Int(), 10), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return strconv.FormatUint(rv.Uint(), 10), nil
	case reflect.Float32, reflect.Float64:
		return formatFloat(rv.Float()), nil
	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			return "", fmt.Errorf("format: cannot encode nil %s", rv.Type())
		}
		return EncodeTOMLValue(rv.Elem().Interface())
	case reflect.Slice, reflect.Array:
		return encodeArray(rv)
	case reflect.Map:
		return encodeInlineTable(rv)
	}

	data, err := toml.Marshal(inlineValue{V: value})
	if err != nil {
		return "", fmt.Errorf("format: encode %T: %w", value, err)
	}
	encoded := strings.TrimSpace(string(data))
	rest, ok := strings.CutPrefix(encoded, "v = ")
	if !ok || strings.Contains(rest, "\n") {
		return "", fmt.Errorf("format: %T does not encode as an inline value", value)
	}
	return rest, nil
}

func encodeArray(rv reflect.Value) (string, error) {
	items := make([]string, rv.Len())
	for i := range items {
		item, err := EncodeTOMLValue(rv.Index(i).Interface())
		if err != nil {
			return "", err
		}
		items[i] = item
	}
	return "[" + strings.Join(items, ", ") + "]", nil
}

// encodeInlineTable writes maps with string keys as inline tables, keys
// sorted for stable output.
func encodeInlineTable(rv reflect.Value) (string, error) {
	if rv.Type().Key().Kind() != reflect.String {
		return "", fmt.Errorf("format: map keys must be strings, got %s", rv.Type().Key())
	}
	keys := make([]string, 0, rv.Len())
	for _, key := range rv.MapKeys() {
		keys = append(keys, key.String())
	}
	sort.Strings(keys)

	pairs := make([]string, 0, len(keys))
	for _, key := range keys {
		value, err := EncodeTOMLValue(rv.MapIndex(reflect.ValueOf(key).Convert(rv.Type().Key())).Interface())
		if err != nil {
			return "", err
		}
		pairs = append(pairs, tomlKey(key)+" = "+value)
	}
	return "{" + strings.Join(pairs, ", ") + "}", nil
}

func formatFloat(f float64) string {
	switch {
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	case math.IsNaN(f):
		return "nan"
	}
	out := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.ContainsAny(out, ".eE") {
		out += ".0"
	}
	return out
}
