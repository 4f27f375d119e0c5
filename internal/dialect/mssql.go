package dialect

import (
	"fmt"

	"sheet-pump/internal/schema"
)

type MSSQLDialect struct{}

func (d *MSSQLDialect) Name() string { return "sqlserver" }

func (d *MSSQLDialect) QuoteIdent(name string) string {
	return "[" + name + "]"
}

func (d *MSSQLDialect) Placeholder(index int) string {
	return fmt.Sprintf("@p%d", index+1)
}

func (d *MSSQLDialect) TypeFor(t schema.InferredType) string {
	switch t.Kind {
	case schema.KindInteger:
		return "INT"
	case schema.KindDecimal:
		return fmt.Sprintf("DECIMAL(%d,%d)", t.Precision, t.Scale)
	case schema.KindBoolean:
		return "BIT"
	case schema.KindDate:
		return "DATE"
	case schema.KindDateTime:
		return "DATETIME2"
	case schema.KindVarchar:
		// NVARCHAR so non-ASCII text survives regardless of server collation.
		return fmt.Sprintf("NVARCHAR(%d)", t.Length)
	default:
		return "NVARCHAR(MAX)"
	}
}

func (d *MSSQLDialect) CreateTableQuery(spec *schema.TableSpec) string {
	return buildCreateTable(d, spec, "")
}

func (d *MSSQLDialect) DropTableQuery(table string) string {
	return fmt.Sprintf("DROP TABLE IF EXISTS %s", d.QuoteIdent(table))
}

func (d *MSSQLDialect) TableExistsQuery() string {
	return `SELECT COUNT(*) FROM INFORMATION_SCHEMA.TABLES WHERE TABLE_SCHEMA = SCHEMA_NAME() AND TABLE_NAME = @p1`
}

func (d *MSSQLDialect) InsertQuery(table string, cols []string, rowCount int) string {
	return multiRowInsert(d, table, cols, rowCount)
}

func (d *MSSQLDialect) CountQuery(table string) string {
	return fmt.Sprintf("SELECT COUNT(*) FROM %s", d.QuoteIdent(table))
}

func (d *MSSQLDialect) BatchCeiling(cols int) int {
	// SQL Server caps a statement at 1000 row value groups and 2100 bound
	// parameters, whichever is hit first.
	if cols <= 0 {
		return 1000
	}
	byParams := 2000 / cols
	if byParams < 1 {
		byParams = 1
	}
	if byParams > 1000 {
		return 1000
	}
	return byParams
}
