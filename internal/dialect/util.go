package dialect

import (
	"fmt"
	"strings"

	"sheet-pump/internal/schema"
)

// GeneratePlaceholders is a helper function to create a comma-separated list
// of placeholders using the dialect's placeholder function, starting at the
// given parameter offset.
func GeneratePlaceholders(count, offset int, placeholderFunc func(int) string) string {
	placeholders := make([]string, count)
	for i := 0; i < count; i++ {
		placeholders[i] = placeholderFunc(offset + i)
	}
	return strings.Join(placeholders, ", ")
}

// multiRowInsert renders "INSERT INTO t (c1, c2) VALUES (...), (...)" with
// sequentially numbered placeholders, which covers every backend here except
// Oracle (see OracleDialect.InsertQuery).
func multiRowInsert(d Dialect, table string, cols []string, rowCount int) string {
	quoted := make([]string, len(cols))
	for i, c := range cols {
		quoted[i] = d.QuoteIdent(c)
	}

	groups := make([]string, rowCount)
	for r := 0; r < rowCount; r++ {
		groups[r] = "(" + GeneratePlaceholders(len(cols), r*len(cols), d.Placeholder) + ")"
	}

	return fmt.Sprintf("INSERT INTO %s (%s) VALUES %s",
		d.QuoteIdent(table), strings.Join(quoted, ", "), strings.Join(groups, ", "))
}

// buildCreateTable renders the shared CREATE TABLE shape. Every column is
// nullable: blank source cells are preserved as NULL on load. Backends append
// their own table options via suffix.
func buildCreateTable(d Dialect, spec *schema.TableSpec, suffix string) string {
	cols := make([]string, len(spec.Columns))
	for i, c := range spec.Columns {
		cols[i] = fmt.Sprintf("  %s %s", d.QuoteIdent(c.Name), d.TypeFor(c.Type))
	}
	q := fmt.Sprintf("CREATE TABLE %s (\n%s\n)", d.QuoteIdent(spec.Name), strings.Join(cols, ",\n"))
	if suffix != "" {
		q += " " + suffix
	}
	return q
}
