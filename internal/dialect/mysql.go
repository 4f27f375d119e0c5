package dialect

import (
	"fmt"

	"sheet-pump/internal/schema"
)

type MysqlDialect struct{}

func (d *MysqlDialect) Name() string { return "mysql" }

func (d *MysqlDialect) QuoteIdent(name string) string {
	return "`" + name + "`"
}

func (d *MysqlDialect) Placeholder(index int) string {
	return "?"
}

func (d *MysqlDialect) TypeFor(t schema.InferredType) string {
	switch t.Kind {
	case schema.KindInteger:
		return "INT"
	case schema.KindDecimal:
		return fmt.Sprintf("DECIMAL(%d,%d)", t.Precision, t.Scale)
	case schema.KindBoolean:
		return "TINYINT(1)"
	case schema.KindDate:
		return "DATE"
	case schema.KindDateTime:
		return "DATETIME"
	case schema.KindVarchar:
		return fmt.Sprintf("VARCHAR(%d)", t.Length)
	default:
		return "TEXT"
	}
}

func (d *MysqlDialect) CreateTableQuery(spec *schema.TableSpec) string {
	// utf8mb4 so multi-byte code points (§, em dash, emoji) round-trip exactly.
	return buildCreateTable(d, spec, "DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci")
}

func (d *MysqlDialect) DropTableQuery(table string) string {
	return fmt.Sprintf("DROP TABLE IF EXISTS %s", d.QuoteIdent(table))
}

func (d *MysqlDialect) TableExistsQuery() string {
	return `SELECT COUNT(*) FROM information_schema.TABLES WHERE TABLE_SCHEMA = DATABASE() AND TABLE_NAME = ?`
}

func (d *MysqlDialect) InsertQuery(table string, cols []string, rowCount int) string {
	return multiRowInsert(d, table, cols, rowCount)
}

func (d *MysqlDialect) CountQuery(table string) string {
	return fmt.Sprintf("SELECT COUNT(*) FROM %s", d.QuoteIdent(table))
}

func (d *MysqlDialect) BatchCeiling(cols int) int {
	// Bounded by max_allowed_packet rather than a row cap; the default chunk
	// sizes are far below any practical limit.
	return 0
}
