package dialect

import "sheet-pump/internal/schema"

// Dialect abstracts database-specific SQL generation for the loader.
type Dialect interface {
	Name() string

	// Identifier / parameter rendering
	QuoteIdent(name string) string
	Placeholder(index int) string // Returns ?, $1, @p1, :1, ...

	// Type mapping
	TypeFor(t schema.InferredType) string

	// Query generation
	CreateTableQuery(spec *schema.TableSpec) string
	DropTableQuery(table string) string
	TableExistsQuery() string // one bound parameter: the table name
	InsertQuery(table string, cols []string, rowCount int) string
	CountQuery(table string) string

	// BatchCeiling returns the maximum rows per insert statement for the given
	// column count, or 0 when the backend imposes no practical limit. The
	// loader clamps its chunk size to this.
	BatchCeiling(cols int) int
}
