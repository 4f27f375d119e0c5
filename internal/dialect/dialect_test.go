package dialect_test

import (
	"strings"
	"testing"

	"sheet-pump/internal/dialect"
	"sheet-pump/internal/schema"
)

var testSpec = &schema.TableSpec{
	Name:  "orders",
	Sheet: "Orders",
	Columns: []schema.Column{
		{Name: "id", Type: schema.InferredType{Kind: schema.KindInteger}},
		{Name: "amount", Type: schema.InferredType{Kind: schema.KindDecimal, Precision: 10, Scale: 2}},
		{Name: "note", Type: schema.InferredType{Kind: schema.KindVarchar, Length: 100}},
	},
}

func TestGetDialect(t *testing.T) {
	cases := map[string]string{
		"mysql":     "mysql",
		"postgres":  "postgres",
		"sqlserver": "sqlserver",
		"mssql":     "sqlserver",
		"oracle":    "oracle",
		"":          "mysql", // default
	}
	for driver, want := range cases {
		if got := dialect.GetDialect(driver).Name(); got != want {
			t.Errorf("GetDialect(%q).Name() = %q, want %q", driver, got, want)
		}
	}
}

func TestMysqlCreateTable(t *testing.T) {
	q := dialect.GetDialect("mysql").CreateTableQuery(testSpec)
	for _, want := range []string{
		"CREATE TABLE `orders`",
		"`id` INT",
		"`amount` DECIMAL(10,2)",
		"`note` VARCHAR(100)",
		"utf8mb4",
	} {
		if !strings.Contains(q, want) {
			t.Errorf("mysql DDL missing %q:\n%s", want, q)
		}
	}
}

func TestPostgresInsertQuery(t *testing.T) {
	d := dialect.GetDialect("postgres")
	q := d.InsertQuery("orders", []string{"id", "amount"}, 3)
	want := `INSERT INTO "orders" ("id", "amount") VALUES ($1, $2), ($3, $4), ($5, $6)`
	if q != want {
		t.Errorf("got:\n%s\nwant:\n%s", q, want)
	}
}

func TestMysqlInsertQuery(t *testing.T) {
	d := dialect.GetDialect("mysql")
	q := d.InsertQuery("orders", []string{"id"}, 2)
	want := "INSERT INTO `orders` (`id`) VALUES (?), (?)"
	if q != want {
		t.Errorf("got:\n%s\nwant:\n%s", q, want)
	}
}

func TestOracleInsertAll(t *testing.T) {
	d := dialect.GetDialect("oracle")
	q := d.InsertQuery("orders", []string{"id", "amount"}, 2)
	for _, want := range []string{
		"INSERT ALL",
		"INTO orders (id, amount) VALUES (:1, :2)",
		"INTO orders (id, amount) VALUES (:3, :4)",
		"SELECT 1 FROM DUAL",
	} {
		if !strings.Contains(q, want) {
			t.Errorf("oracle insert missing %q:\n%s", want, q)
		}
	}
}

func TestTypeMapping(t *testing.T) {
	text := schema.InferredType{Kind: schema.KindText}
	boolean := schema.InferredType{Kind: schema.KindBoolean}
	datetime := schema.InferredType{Kind: schema.KindDateTime}

	cases := []struct {
		driver string
		in     schema.InferredType
		want   string
	}{
		{"mysql", text, "TEXT"},
		{"mysql", boolean, "TINYINT(1)"},
		{"postgres", boolean, "BOOLEAN"},
		{"postgres", datetime, "TIMESTAMP"},
		{"sqlserver", text, "NVARCHAR(MAX)"},
		{"sqlserver", boolean, "BIT"},
		{"oracle", text, "CLOB"},
		{"oracle", boolean, "NUMBER(1)"},
	}
	for _, tc := range cases {
		if got := dialect.GetDialect(tc.driver).TypeFor(tc.in); got != tc.want {
			t.Errorf("%s TypeFor(%s) = %q, want %q", tc.driver, tc.in, got, tc.want)
		}
	}
}

func TestBatchCeiling(t *testing.T) {
	if got := dialect.GetDialect("mysql").BatchCeiling(10); got != 0 {
		t.Errorf("mysql ceiling = %d, want 0 (unlimited)", got)
	}
	if got := dialect.GetDialect("sqlserver").BatchCeiling(10); got != 200 {
		t.Errorf("sqlserver ceiling for 10 cols = %d, want 200", got)
	}
	if got := dialect.GetDialect("sqlserver").BatchCeiling(1); got != 1000 {
		t.Errorf("sqlserver ceiling for 1 col = %d, want 1000", got)
	}
	if got := dialect.GetDialect("postgres").BatchCeiling(5); got != 13107 {
		t.Errorf("postgres ceiling for 5 cols = %d, want 13107", got)
	}
}
