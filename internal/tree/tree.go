// Package tree holds structural helpers for decoded JSON values: explicit deep
// copies, normalization to the canonical decoded shape, JSON truthiness and
// $ref rewriting. Canonical values are nil, bool, string, json.Number,
// []any and map[string]any.
package tree

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"reflect"
	"strconv"

	gojson "github.com/goccy/go-json"
)

// Object returns v as a JSON object when it is one.
func Object(v any) (map[string]any, bool) {
	m, ok := v.(map[string]any)
	return m, ok && m != nil
}

// Array returns v as a JSON array when it is one.
func Array(v any) ([]any, bool) {
	a, ok := v.([]any)
	return a, ok
}

// Has reports whether m owns key k, whatever its value.
func Has(m map[string]any, k string) bool {
	_, ok := m[k]
	return ok
}

// Clone returns an independent deep copy of v. Canonical containers are copied
// member by member; other composite values are normalized, which allocates a
// fresh canonical tree. Scalars are returned as is.
func Clone(v any) any {
	switch t := v.(type) {
	case nil, bool, string, json.Number:
		return t
	case map[string]any:
		return CloneObject(t)
	case []any:
		out := make([]any, len(t))
		for i := range t {
			out[i] = Clone(t[i])
		}
		return out
	}
	switch reflect.ValueOf(v).Kind() {
	case reflect.Map, reflect.Slice, reflect.Array, reflect.Struct, reflect.Pointer, reflect.Interface:
		n, err := Normalize(v)
		if err != nil {
			return v
		}
		return n
	default:
		return v
	}
}

// CloneObject deep-copies a JSON object. A nil map stays nil.
func CloneObject(m map[string]any) map[string]any {
	if m == nil {
		return nil
	}
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = Clone(v)
	}
	return out
}

// Normalize converts v into the canonical decoded shape. Go numbers become
// json.Number, typed slices and maps become []any and map[string]any, and any
// other value goes through a JSON round trip. The input is never modified.
func Normalize(v any) (any, error) {
	switch t := v.(type) {
	case nil, bool, string, json.Number:
		return t, nil
	case float64:
		return floatNumber(t)
	case float32:
		return floatNumber(float64(t))
	case int:
		return json.Number(strconv.FormatInt(int64(t), 10)), nil
	case int8:
		return json.Number(strconv.FormatInt(int64(t), 10)), nil
	case int16:
		return json.Number(strconv.FormatInt(int64(t), 10)), nil
	case int32:
		return json.Number(strconv.FormatInt(int64(t), 10)), nil
	case int64:
		return json.Number(strconv.FormatInt(t, 10)), nil
	case uint:
		return json.Number(strconv.FormatUint(uint64(t), 10)), nil
	case uint8:
		return json.Number(strconv.FormatUint(uint64(t), 10)), nil
	case uint16:
		return json.Number(strconv.FormatUint(uint64(t), 10)), nil
	case uint32:
		return json.Number(strconv.FormatUint(uint64(t), 10)), nil
	case uint64:
		return json.Number(strconv.FormatUint(t, 10)), nil
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, vv := range t {
			n, err := Normalize(vv)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", k, err)
			}
			out[k] = n
		}
		return out, nil
	case []any:
		out := make([]any, len(t))
		for i, vv := range t {
			n, err := Normalize(vv)
			if err != nil {
				return nil, fmt.Errorf("[%d]: %w", i, err)
			}
			out[i] = n
		}
		return out, nil
	}
	return roundTrip(v)
}

func floatNumber(f float64) (any, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil, fmt.Errorf("tree: %v is not representable in JSON", f)
	}
	return json.Number(strconv.FormatFloat(f, 'g', -1, 64)), nil
}

func roundTrip(v any) (any, error) {
	b, err := gojson.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("tree: cannot marshal %T: %w", v, err)
	}
	dec := gojson.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()
	var out any
	if err := dec.Decode(&out); err != nil {
		return nil, fmt.Errorf("tree: cannot decode marshaled %T: %w", v, err)
	}
	return out, nil
}

// Equal reports structural equality of two JSON values after normalization.
// Numbers compare by their float64 value.
func Equal(a, b any) bool {
	na, err := Normalize(a)
	if err != nil {
		return false
	}
	nb, err := Normalize(b)
	if err != nil {
		return false
	}
	return equalCanonical(na, nb)
}

func equalCanonical(a, b any) bool {
	switch ta := a.(type) {
	case json.Number:
		tb, ok := b.(json.Number)
		if !ok {
			return false
		}
		if ta == tb {
			return true
		}
		fa, errA := ta.Float64()
		fb, errB := tb.Float64()
		return errA == nil && errB == nil && fa == fb
	case map[string]any:
		tb, ok := b.(map[string]any)
		if !ok || len(ta) != len(tb) {
			return false
		}
		for k, va := range ta {
			vb, ok := tb[k]
			if !ok || !equalCanonical(va, vb) {
				return false
			}
		}
		return true
	case []any:
		tb, ok := b.([]any)
		if !ok || len(ta) != len(tb) {
			return false
		}
		for i := range ta {
			if !equalCanonical(ta[i], tb[i]) {
				return false
			}
		}
		return true
	default:
		return reflect.DeepEqual(a, b)
	}
}

// Truthy applies JSON-value truthiness: nil, false, 0 and "" are falsy;
// every array and object, even an empty one, is truthy.
func Truthy(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case string:
		return t != ""
	case json.Number:
		f, err := t.Float64()
		return err != nil || f != 0
	case float64:
		return t != 0 && !math.IsNaN(t)
	case float32:
		return t != 0
	case int:
		return t != 0
	case int64:
		return t != 0
	case int32:
		return t != 0
	case uint:
		return t != 0
	case uint64:
		return t != 0
	default:
		return true
	}
}
