package schema

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseType turns an operator-supplied type string into an InferredType.
// Accepted forms (case-insensitive): integer/int, decimal(p,s), numeric(p,s),
// boolean/bool, date, datetime/timestamp, varchar(n)/string(n), text.
// An override replaces inference for its column entirely.
func ParseType(s string) (InferredType, error) {
	spec := strings.ToLower(strings.TrimSpace(s))
	base, args := spec, ""
	if i := strings.IndexByte(spec, '('); i >= 0 && strings.HasSuffix(spec, ")") {
		base = strings.TrimSpace(spec[:i])
		args = spec[i+1 : len(spec)-1]
	}

	switch base {
	case "int", "integer":
		return InferredType{Kind: KindInteger}, nil
	case "bool", "boolean":
		return InferredType{Kind: KindBoolean}, nil
	case "date":
		return InferredType{Kind: KindDate}, nil
	case "datetime", "timestamp":
		return InferredType{Kind: KindDateTime}, nil
	case "text":
		return InferredType{Kind: KindText}, nil
	case "varchar", "string":
		n := 255
		if args != "" {
			v, err := strconv.Atoi(strings.TrimSpace(args))
			if err != nil || v <= 0 {
				return InferredType{}, fmt.Errorf("invalid varchar length in %q", s)
			}
			n = v
		}
		return InferredType{Kind: KindVarchar, Length: n}, nil
	case "decimal", "numeric":
		p, sc := 18, 4
		if args != "" {
			parts := strings.SplitN(args, ",", 2)
			v, err := strconv.Atoi(strings.TrimSpace(parts[0]))
			if err != nil || v <= 0 {
				return InferredType{}, fmt.Errorf("invalid decimal precision in %q", s)
			}
			p = v
			if len(parts) == 2 {
				w, err := strconv.Atoi(strings.TrimSpace(parts[1]))
				if err != nil || w < 0 || w > p {
					return InferredType{}, fmt.Errorf("invalid decimal scale in %q", s)
				}
				sc = w
			} else {
				sc = 0
			}
		}
		return InferredType{Kind: KindDecimal, Precision: p, Scale: sc}, nil
	default:
		return InferredType{}, fmt.Errorf("unknown column type %q", s)
	}
}

// ParseOverrides converts the raw column→type-string mapping from the config
// file into typed overrides.
func ParseOverrides(raw map[string]string) (map[string]InferredType, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	out := make(map[string]InferredType, len(raw))
	for col, spec := range raw {
		t, err := ParseType(spec)
		if err != nil {
			return nil, fmt.Errorf("override for column %q: %w", col, err)
		}
		out[col] = t
	}
	return out, nil
}
