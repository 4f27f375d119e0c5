package schema

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// ErrSchema marks errors that make a sheet unloadable (no columns, identifier
// collisions that cannot be resolved). The orchestrator converts these into a
// failed result for the sheet and moves on.
var ErrSchema = errors.New("schema error")

// maxIdentLen is the destination identifier limit (MySQL caps at 64; the other
// supported backends allow at least that much after truncation).
const maxIdentLen = 64

// reservedWords are identifiers that would need quoting everywhere; we suffix
// them instead so the generated DDL stays portable across dialects.
var reservedWords = map[string]bool{
	"all": true, "and": true, "any": true, "as": true, "asc": true,
	"between": true, "by": true, "case": true, "check": true, "column": true,
	"create": true, "cross": true, "current": true, "date": true, "default": true,
	"delete": true, "desc": true, "distinct": true, "drop": true, "else": true,
	"end": true, "exists": true, "for": true, "foreign": true, "from": true,
	"group": true, "having": true, "in": true, "index": true, "inner": true,
	"insert": true, "into": true, "is": true, "join": true, "key": true,
	"left": true, "like": true, "limit": true, "not": true, "null": true,
	"on": true, "or": true, "order": true, "outer": true, "primary": true,
	"references": true, "right": true, "select": true, "set": true, "table": true,
	"then": true, "to": true, "union": true, "unique": true, "update": true,
	"user": true, "values": true, "when": true, "where": true, "with": true,
}

// Build produces the table-creation spec for one sheet. For each column in
// sheet order it applies the operator override when present, otherwise infers
// the type from the sample for that column position. Samples are addressed by
// position, not header text, so duplicate headers infer independently. The
// result is deterministic: identical inputs always yield an identical spec.
func Build(sheet SheetDescriptor, samples func(column int) []string, overrides map[string]InferredType, cfg Config) (*TableSpec, error) {
	if len(sheet.Columns) == 0 {
		return nil, fmt.Errorf("%w: sheet %q has no columns", ErrSchema, sheet.Name)
	}

	// Case-insensitive override lookup keyed by the original header text.
	byLower := make(map[string]InferredType, len(overrides))
	for k, v := range overrides {
		byLower[strings.ToLower(strings.TrimSpace(k))] = v
	}

	spec := &TableSpec{
		Name:    NormalizeTableName(sheet.Name),
		Sheet:   sheet.Name,
		Columns: make([]Column, 0, len(sheet.Columns)),
	}

	seen := make(map[string]int, len(sheet.Columns))
	for idx, header := range sheet.Columns {
		name := NormalizeColumnName(header)
		// Disambiguate duplicates deterministically in first-seen order.
		if n, dup := seen[name]; dup {
			base := name
			for {
				n++
				candidate := fmt.Sprintf("%s_%d", base, n)
				if len(candidate) > maxIdentLen {
					return nil, fmt.Errorf("%w: cannot disambiguate column %q in sheet %q", ErrSchema, header, sheet.Name)
				}
				if _, taken := seen[candidate]; !taken {
					seen[base] = n
					name = candidate
					break
				}
			}
		}
		seen[name] = 1

		col := Column{Name: name, Source: header}
		if t, ok := byLower[strings.ToLower(strings.TrimSpace(header))]; ok {
			col.Type = t
			col.Overridden = true
		} else {
			var sample []string
			if samples != nil {
				sample = samples(idx)
			}
			col.Type, col.LowConfidence = Infer(sample, cfg)
		}
		spec.Columns = append(spec.Columns, col)
	}

	return spec, nil
}

// NormalizeTableName maps a sheet name to a destination-safe table name:
// lowercase, accents stripped, runs of non-alphanumerics collapsed to a single
// underscore, a leading digit prefixed with "table_", capped at 64 chars.
func NormalizeTableName(sheet string) string {
	name := normalizeIdent(sheet)
	if name == "" {
		name = "sheet"
	}
	if name[0] >= '0' && name[0] <= '9' {
		name = "table_" + name
	}
	if len(name) > maxIdentLen {
		name = strings.Trim(name[:maxIdentLen], "_")
	}
	return name
}

// NormalizeColumnName maps a header cell to a destination-safe column name.
// Reserved words get a "_col" suffix, a leading digit a "c_" prefix.
func NormalizeColumnName(header string) string {
	name := normalizeIdent(header)
	if name == "" {
		name = "col"
	}
	if name[0] >= '0' && name[0] <= '9' {
		name = "c_" + name
	}
	if reservedWords[name] {
		name += "_col"
	}
	if len(name) > maxIdentLen {
		name = strings.Trim(name[:maxIdentLen], "_")
	}
	return name
}

// normalizeIdent lowercases, strips accents (NFD, drop nonspacing marks, NFC)
// and converts every run of non [a-z0-9] characters into one underscore.
func normalizeIdent(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))

	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	if ascii, _, err := transform.String(t, s); err == nil {
		s = ascii
	}

	var b strings.Builder
	prevUnderscore := true // also swallows leading underscores
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z' || r >= '0' && r <= '9':
			b.WriteRune(r)
			prevUnderscore = false
		default:
			if !prevUnderscore {
				b.WriteByte('_')
				prevUnderscore = true
			}
		}
	}
	return strings.Trim(b.String(), "_")
}
