package table

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/goccy/go-yaml"
)

// Kind is the inferred type of a cell.
type Kind uint8

const (
	// KindNull is an absent or unset cell.
	KindNull Kind = iota
	// KindInt is an integral number.
	KindInt
	// KindFloat is a non-integral or exponent-form number.
	KindFloat
	// KindString is any other text, including padding literals like [0|0|0].
	KindString
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindString:
		return "string"
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// naTokens are read as Null, matching what spreadsheet and dataframe
// exports emit for missing numbers.
var naTokens = map[string]struct{}{
	"#N/A": {}, "#N/A N/A": {}, "#NA": {}, "-1.#IND": {}, "-1.#QNAN": {},
	"-NaN": {}, "-nan": {}, "1.#IND": {}, "1.#QNAN": {}, "<NA>": {},
	"N/A": {}, "NA": {}, "NULL": {}, "NaN": {}, "None": {}, "n/a": {},
	"nan": {}, "null": {},
}

// Value is a single table cell. The zero Value is Null.
//
// Values read from a file keep their original text, so writing a table
// back out reproduces every untouched cell byte for byte.
type Value struct {
	kind Kind
	text string
	num  float64
}

// Null returns the absent value.
func Null() Value { return Value{} }

// Int returns an integer value.
func Int(n int64) Value {
	return Value{kind: KindInt, text: strconv.FormatInt(n, 10), num: float64(n)}
}

// Float returns a floating point value.
func Float(f float64) Value {
	return Value{kind: KindFloat, text: strconv.FormatFloat(f, 'f', -1, 64), num: f}
}

// String returns a text value. The text is never reinterpreted.
func String(s string) Value {
	return Value{kind: KindString, text: s}
}

// Parse infers a Value from cell text.
func Parse(text string) Value {
	if text == "" {
		return Null()
	}
	if _, ok := naTokens[text]; ok {
		return Null()
	}
	if n, err := strconv.ParseInt(text, 10, 64); err == nil {
		return Value{kind: KindInt, text: text, num: float64(n)}
	}
	if looksDecimal(text) {
		if f, err := strconv.ParseFloat(text, 64); err == nil && !math.IsInf(f, 0) && !math.IsNaN(f) {
			return Value{kind: KindFloat, text: text, num: f}
		}
	}
	return String(text)
}

// looksDecimal rejects the forms strconv.ParseFloat accepts that a CSV
// number never uses (hex floats, inf, nan, underscores).
func looksDecimal(text string) bool {
	for _, r := range text {
		switch {
		case r >= '0' && r <= '9':
		case r == '.', r == '-', r == '+', r == 'e', r == 'E':
		default:
			return false
		}
	}
	return strings.ContainsAny(text, "0123456789")
}

// Kind returns the inferred kind.
func (v Value) Kind() Kind { return v.kind }

// IsNull reports whether the cell is absent or unset.
func (v Value) IsNull() bool { return v.kind == KindNull }

// IsNumeric reports whether the value is an int or float.
func (v Value) IsNumeric() bool { return v.kind == KindInt || v.kind == KindFloat }

// Float64 returns the numeric value, if any.
func (v Value) Float64() (float64, bool) {
	return v.num, v.IsNumeric()
}

// String returns the cell text. Null renders as the empty string.
func (v Value) String() string { return v.text }

// Equal compares numbers numerically (-1 equals -1.0) and everything else
// by kind and text.
func (v Value) Equal(o Value) bool {
	if v.IsNumeric() && o.IsNumeric() {
		return v.num == o.num
	}
	return v.kind == o.kind && v.text == o.text
}

// GoString renders the value for test failure output.
func (v Value) GoString() string {
	if v.kind == KindString {
		return strconv.Quote(v.text)
	}
	if v.kind == KindNull {
		return "<null>"
	}
	return v.text
}

// native returns the value as a plain Go scalar.
func (v Value) native() any {
	switch v.kind {
	case KindInt:
		return int64(v.num)
	case KindFloat:
		return v.num
	case KindString:
		return v.text
	}
	return nil
}

// fromNative converts a decoded YAML or JSON scalar.
func fromNative(raw any) (Value, error) {
	switch x := raw.(type) {
	case nil:
		return Null(), nil
	case int:
		return Int(int64(x)), nil
	case int64:
		return Int(x), nil
	case uint64:
		if x > math.MaxInt64 {
			return Value{}, fmt.Errorf("integer %d out of range", x)
		}
		return Int(int64(x)), nil
	case float64:
		if x == math.Trunc(x) && math.Abs(x) < 1<<53 {
			return Int(int64(x)), nil
		}
		return Float(x), nil
	case json.Number:
		return Parse(x.String()), nil
	case string:
		return String(x), nil
	}
	return Value{}, fmt.Errorf("unsupported cell value %v (%T)", raw, raw)
}

// MarshalYAML implements yaml.InterfaceMarshaler.
func (v Value) MarshalYAML() (any, error) {
	return v.native(), nil
}

// UnmarshalYAML implements yaml.BytesUnmarshaler.
func (v *Value) UnmarshalYAML(b []byte) error {
	var raw any
	if err := yaml.Unmarshal(b, &raw); err != nil {
		return err
	}
	parsed, err := fromNative(raw)
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}

// MarshalJSON implements json.Marshaler.
func (v Value) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.native())
}

// UnmarshalJSON implements json.Unmarshaler.
func (v *Value) UnmarshalJSON(b []byte) error {
	dec := json.NewDecoder(strings.NewReader(string(b)))
	dec.UseNumber()
	var raw any
	if err := dec.Decode(&raw); err != nil {
		return err
	}
	parsed, err := fromNative(raw)
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}
