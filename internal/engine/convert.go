package engine

import (
	"fmt"
	"strconv"
	"strings"

	"sheet-pump/internal/schema"
)

// convertRow maps raw cell strings onto driver values according to the column
// types in the spec. Blank cells become NULL; text passes through unmodified
// at the byte level so multi-byte UTF-8 round-trips exactly.
func convertRow(spec *schema.TableSpec, raw []string) ([]any, error) {
	out := make([]any, len(spec.Columns))
	for i, col := range spec.Columns {
		var cell string
		if i < len(raw) {
			cell = raw[i]
		}
		v, err := convertValue(col.Type, cell)
		if err != nil {
			return nil, fmt.Errorf("column %s: %w", col.Name, err)
		}
		out[i] = v
	}
	return out, nil
}

func convertValue(t schema.InferredType, raw string) (any, error) {
	// Text keeps whitespace byte-exact; only the truly empty cell is NULL.
	if t.Kind == schema.KindVarchar || t.Kind == schema.KindText {
		if raw == "" {
			return nil, nil
		}
		return raw, nil
	}

	// Typed columns mirror inference: whitespace-only counts as null, so a
	// cell the inferencer skipped cannot fail the load.
	v := strings.TrimSpace(raw)
	if v == "" {
		return nil, nil
	}

	switch t.Kind {
	case schema.KindInteger:
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("value %q is not an integer", raw)
		}
		return n, nil
	case schema.KindDecimal:
		// Validated, then bound as a string so the destination keeps the exact
		// decimal representation instead of a float64 approximation.
		if _, err := strconv.ParseFloat(v, 64); err != nil {
			return nil, fmt.Errorf("value %q is not numeric", raw)
		}
		return v, nil
	case schema.KindBoolean:
		switch strings.ToLower(v) {
		case "true", "yes", "1":
			return true, nil
		case "false", "no", "0":
			return false, nil
		}
		return nil, fmt.Errorf("value %q is not a boolean", raw)
	default: // KindDate, KindDateTime
		ts, _, ok := schema.ParseTemporal(v)
		if !ok {
			return nil, fmt.Errorf("value %q is not a date", raw)
		}
		return ts, nil
	}
}
