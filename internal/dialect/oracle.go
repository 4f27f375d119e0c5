package dialect

import (
	"fmt"
	"strings"

	"sheet-pump/internal/schema"
)

type OracleDialect struct{}

func (d *OracleDialect) Name() string { return "oracle" }

// Oracle folds unquoted identifiers to upper case; our normalized names are
// plain lowercase ASCII so we leave them unquoted rather than forcing
// case-sensitive lowercase names on the destination.
func (d *OracleDialect) QuoteIdent(name string) string {
	return name
}

func (d *OracleDialect) Placeholder(index int) string {
	return fmt.Sprintf(":%d", index+1)
}

func (d *OracleDialect) TypeFor(t schema.InferredType) string {
	switch t.Kind {
	case schema.KindInteger:
		return "NUMBER(10)"
	case schema.KindDecimal:
		return fmt.Sprintf("NUMBER(%d,%d)", t.Precision, t.Scale)
	case schema.KindBoolean:
		return "NUMBER(1)"
	case schema.KindDate:
		return "DATE"
	case schema.KindDateTime:
		return "TIMESTAMP"
	case schema.KindVarchar:
		// CHAR semantics: length in characters, not bytes, for multi-byte text.
		return fmt.Sprintf("VARCHAR2(%d CHAR)", t.Length)
	default:
		return "CLOB"
	}
}

func (d *OracleDialect) CreateTableQuery(spec *schema.TableSpec) string {
	return buildCreateTable(d, spec, "")
}

func (d *OracleDialect) DropTableQuery(table string) string {
	return fmt.Sprintf("DROP TABLE %s", table)
}

func (d *OracleDialect) TableExistsQuery() string {
	return `SELECT COUNT(*) FROM user_tables WHERE table_name = UPPER(:1)`
}

// InsertQuery uses INSERT ALL: Oracle has no multi-row VALUES syntax.
func (d *OracleDialect) InsertQuery(table string, cols []string, rowCount int) string {
	colList := strings.Join(cols, ", ")
	var b strings.Builder
	b.WriteString("INSERT ALL")
	for r := 0; r < rowCount; r++ {
		fmt.Fprintf(&b, "\nINTO %s (%s) VALUES (%s)",
			table, colList, GeneratePlaceholders(len(cols), r*len(cols), d.Placeholder))
	}
	b.WriteString("\nSELECT 1 FROM DUAL")
	return b.String()
}

func (d *OracleDialect) CountQuery(table string) string {
	return fmt.Sprintf("SELECT COUNT(*) FROM %s", table)
}

func (d *OracleDialect) BatchCeiling(cols int) int {
	// INSERT ALL degrades badly past a few hundred rows per statement.
	return 500
}
