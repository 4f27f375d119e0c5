package schema

import "fmt"

// Kind is the closed set of semantic column types a sheet column can map to.
type Kind int

const (
	KindInteger Kind = iota
	KindDecimal
	KindBoolean
	KindDate
	KindDateTime
	KindVarchar
	KindText
)

func (k Kind) String() string {
	switch k {
	case KindInteger:
		return "INTEGER"
	case KindDecimal:
		return "DECIMAL"
	case KindBoolean:
		return "BOOLEAN"
	case KindDate:
		return "DATE"
	case KindDateTime:
		return "DATETIME"
	case KindVarchar:
		return "VARCHAR"
	case KindText:
		return "TEXT"
	default:
		return "UNKNOWN"
	}
}

// InferredType is a Kind plus its size parameters. Precision/Scale are only
// meaningful for KindDecimal, Length only for KindVarchar.
type InferredType struct {
	Kind      Kind
	Precision int
	Scale     int
	Length    int
}

func (t InferredType) String() string {
	switch t.Kind {
	case KindDecimal:
		return fmt.Sprintf("DECIMAL(%d,%d)", t.Precision, t.Scale)
	case KindVarchar:
		return fmt.Sprintf("VARCHAR(%d)", t.Length)
	default:
		return t.Kind.String()
	}
}

// Config holds the operator-tunable knobs. It is passed explicitly into the
// inferencer, builder and loader so they stay pure and testable.
type Config struct {
	ChunkSize        int // rows per insert batch
	MaxVarcharLength int // byte length above which a text column becomes TEXT
	VarcharBucket    int // VARCHAR lengths are rounded up to this multiple
	DecimalPrecision int // ceiling for inferred decimal precision
	DecimalScale     int // ceiling for inferred decimal scale
	SampleRows       int // data rows sampled per sheet for inference
}

func DefaultConfig() Config {
	return Config{
		ChunkSize:        1000,
		MaxVarcharLength: 255,
		VarcharBucket:    50,
		DecimalPrecision: 18,
		DecimalScale:     4,
		SampleRows:       500,
	}
}

// SheetDescriptor identifies one sheet of the source workbook: its name, the
// header row and the number of data rows below it.
type SheetDescriptor struct {
	Name     string
	Columns  []string
	RowCount int
}

// Column pairs the original header with the normalized destination name and
// the type chosen for it (inferred or overridden).
type Column struct {
	Name          string // destination identifier
	Source        string // original header text
	Type          InferredType
	Overridden    bool
	LowConfidence bool // inference fell back to VARCHAR on an all-null sample
}

// TableSpec is the immutable table-creation specification consumed by the
// loader. Built once per sheet before any row is written.
type TableSpec struct {
	Name    string // destination table name
	Sheet   string // source sheet name
	Columns []Column
}

// ColumnNames returns the destination column names in order.
func (s *TableSpec) ColumnNames() []string {
	names := make([]string, len(s.Columns))
	for i, c := range s.Columns {
		names[i] = c.Name
	}
	return names
}

// MigrationResult is the per-sheet report entry.
type MigrationResult struct {
	SheetName string
	TableName string
	Rows      int
	Succeeded bool
	Status    string
	ErrorMsg  string
}
