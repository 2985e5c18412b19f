package embedding

import (
	"encoding/json"
	"sort"
)

// Shape classifies the payload forms embedding providers are known to
// return. Each shape has its own normalization path; anything else is
// ShapeUnknown and yields no vector.
type Shape int

const (
	ShapeUnknown Shape = iota
	// ShapeFlat is a flat numeric sequence.
	ShapeFlat
	// ShapeNested is a sequence of numeric sub-sequences.
	ShapeNested
	// ShapeStructured is an object with a recognized primary numeric field.
	ShapeStructured
	// ShapeOpaque is an object without a recognized field whose numeric
	// leaves are concatenated in sorted field order.
	ShapeOpaque
)

// structuredFields are the payload fields that hold the actual
// embedding for known provider response formats, checked in order.
var structuredFields = []string{
	"last_hidden_state",
	"embedding",
	"embeddings",
	"vector",
	"data",
}

// DetectShape classifies a decoded payload.
func DetectShape(raw any) Shape {
	switch v := raw.(type) {
	case Vector, []float32, []float64:
		return ShapeFlat
	case []any:
		if len(v) == 0 {
			return ShapeUnknown
		}
		if isNumber(v[0]) {
			return ShapeFlat
		}
		if _, ok := v[0].([]any); ok {
			return ShapeNested
		}
		return ShapeUnknown
	case map[string]any:
		for _, field := range structuredFields {
			if _, ok := v[field]; ok {
				return ShapeStructured
			}
		}
		return ShapeOpaque
	}
	return ShapeUnknown
}

// Normalize reconciles any known payload shape into a flat Vector.
// It returns nil when no numeric data can be located; callers treat a
// nil vector as "skip this item". Normalizing an already-flat vector
// returns it unchanged.
func Normalize(raw any) Vector {
	switch DetectShape(raw) {
	case ShapeFlat:
		return normalizeFlat(raw)
	case ShapeNested:
		return normalizeNested(raw.([]any))
	case ShapeStructured:
		return normalizeStructured(raw.(map[string]any))
	case ShapeOpaque:
		return normalizeOpaque(raw.(map[string]any))
	}
	return nil
}

// Decode parses a raw JSON payload and normalizes it.
func Decode(payload json.RawMessage) Vector {
	var raw any
	if err := json.Unmarshal(payload, &raw); err != nil {
		return nil
	}
	return Normalize(raw)
}

func normalizeFlat(raw any) Vector {
	switch v := raw.(type) {
	case Vector:
		return v
	case []float32:
		return Vector(v)
	case []float64:
		vec := make(Vector, len(v))
		for i, f := range v {
			vec[i] = float32(f)
		}
		return vec
	case []any:
		vec := make(Vector, 0, len(v))
		for _, e := range v {
			f, ok := toFloat(e)
			if !ok {
				return nil
			}
			vec = append(vec, f)
		}
		if len(vec) == 0 {
			return nil
		}
		return vec
	}
	return nil
}

// normalizeNested flattens a sequence of sub-sequences by
// concatenation, recursing through deeper nesting levels.
func normalizeNested(rows []any) Vector {
	var vec Vector
	for _, row := range rows {
		switch e := row.(type) {
		case []any:
			vec = append(vec, normalizeNested(e)...)
		default:
			if f, ok := toFloat(e); ok {
				vec = append(vec, f)
			}
		}
	}
	if len(vec) == 0 {
		return nil
	}
	return vec
}

func normalizeStructured(obj map[string]any) Vector {
	for _, field := range structuredFields {
		value, ok := obj[field]
		if !ok {
			continue
		}
		if vec := Normalize(value); vec != nil {
			return vec
		}
	}
	return nil
}

// normalizeOpaque concatenates every numeric leaf in sorted field
// order so the result is deterministic for a given payload.
func normalizeOpaque(obj map[string]any) Vector {
	keys := make([]string, 0, len(obj))
	for key := range obj {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var vec Vector
	for _, key := range keys {
		vec = append(vec, leaves(obj[key])...)
	}
	if len(vec) == 0 {
		return nil
	}
	return vec
}

// leaves collects the numeric leaves of an arbitrary decoded value.
func leaves(value any) Vector {
	switch v := value.(type) {
	case []any:
		var vec Vector
		for _, e := range v {
			vec = append(vec, leaves(e)...)
		}
		return vec
	case map[string]any:
		return normalizeOpaque(v)
	default:
		if f, ok := toFloat(v); ok {
			return Vector{f}
		}
	}
	return nil
}

func isNumber(value any) bool {
	_, ok := toFloat(value)
	return ok
}

func toFloat(value any) (float32, bool) {
	switch v := value.(type) {
	case float64:
		return float32(v), true
	case float32:
		return v, true
	case int:
		return float32(v), true
	case int64:
		return float32(v), true
	case json.Number:
		f, err := v.Float64()
		if err != nil {
			return 0, false
		}
		return float32(f), true
	}
	return 0, false
}
