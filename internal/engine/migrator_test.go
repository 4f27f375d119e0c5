package engine

import (
	"errors"
	"strings"
	"testing"

	"sheet-pump/internal/schema"
)

// fakeSheet is an in-memory Source backed by a header row plus data rows.
type fakeSheet struct {
	name    string
	header  []string
	rows    [][]string
	descErr error
	rowsErr error
}

func (f *fakeSheet) Name() string { return f.name }

func (f *fakeSheet) Describe() (schema.SheetDescriptor, error) {
	if f.descErr != nil {
		return schema.SheetDescriptor{}, f.descErr
	}
	return schema.SheetDescriptor{Name: f.name, Columns: f.header, RowCount: len(f.rows)}, nil
}

func (f *fakeSheet) Sample(limit int) ([][]string, error) {
	out := make([][]string, len(f.header))
	for i := range f.header {
		for r, row := range f.rows {
			if r >= limit {
				break
			}
			if i < len(row) {
				out[i] = append(out[i], row[i])
			}
		}
	}
	return out, nil
}

func (f *fakeSheet) Rows() (RowSource, error) {
	if f.rowsErr != nil {
		return nil, f.rowsErr
	}
	return &sliceSource{rows: f.rows}, nil
}

func TestMigrate_ContinuesPastFailedSheet(t *testing.T) {
	sheets := []Source{
		&fakeSheet{name: "Orders", header: []string{"ID", "Total"}, rows: [][]string{{"1", "9.99"}, {"2", "14.50"}}},
		&fakeSheet{name: "Broken", descErr: errors.New("sheet is corrupt")},
		&fakeSheet{name: "People", header: []string{"Name"}, rows: [][]string{{"Ada"}, {"Grace"}}},
	}
	dest := &fakeDest{}

	progressed := map[string]bool{}
	results := Migrate(sheets, dest, schema.DefaultConfig(), Options{}, func(sheet string, done, total int) {
		progressed[sheet] = true
	})

	if len(results) != 3 {
		t.Fatalf("results: %d, want 3", len(results))
	}
	if !progressed["Orders"] || !progressed["People"] || progressed["Broken"] {
		t.Errorf("progress sheets: %v", progressed)
	}
	if !results[0].Succeeded || results[0].Rows != 2 {
		t.Errorf("orders: %+v", results[0])
	}
	if results[1].Succeeded || results[1].Status != "FAILED" {
		t.Errorf("broken sheet should fail: %+v", results[1])
	}
	if !results[2].Succeeded {
		t.Errorf("people should still run after a failure: %+v", results[2])
	}
	if len(dest.created) != 2 {
		t.Errorf("tables created: %d, want 2", len(dest.created))
	}
}

func TestMigrate_EmptySheetSkipped(t *testing.T) {
	sheets := []Source{
		&fakeSheet{name: "Empty Sheet", header: []string{"A"}, rows: nil},
	}
	dest := &fakeDest{}

	results := Migrate(sheets, dest, schema.DefaultConfig(), Options{}, nil)

	if results[0].Status != "EMPTY" {
		t.Errorf("status = %q, want EMPTY", results[0].Status)
	}
	if results[0].TableName != "empty_sheet" {
		t.Errorf("table name = %q", results[0].TableName)
	}
	if len(dest.created) != 0 {
		t.Error("empty sheet must not create a table")
	}
}

func TestMigrate_InferenceFlowsToDDL(t *testing.T) {
	sheets := []Source{
		&fakeSheet{
			name:   "Mixed",
			header: []string{"ID", "Price", "Active", "Joined"},
			rows: [][]string{
				{"1", "10.50", "yes", "2024-01-15"},
				{"2", "3.75", "no", "2024-02-01"},
			},
		},
	}
	dest := &fakeDest{}

	results := Migrate(sheets, dest, schema.DefaultConfig(), Options{}, nil)
	if !results[0].Succeeded {
		t.Fatalf("result: %+v", results[0])
	}

	spec := dest.created[0]
	kinds := map[string]schema.Kind{}
	for _, c := range spec.Columns {
		kinds[c.Name] = c.Type.Kind
	}
	want := map[string]schema.Kind{
		"id":     schema.KindInteger,
		"price":  schema.KindDecimal,
		"active": schema.KindBoolean,
		"joined": schema.KindDate,
	}
	for name, k := range want {
		if kinds[name] != k {
			t.Errorf("column %s inferred as %s, want %s", name, kinds[name], k)
		}
	}
}

func TestMigrate_OverrideApplied(t *testing.T) {
	sheets := []Source{
		&fakeSheet{name: "Codes", header: []string{"Code"}, rows: [][]string{{"001"}, {"002"}}},
	}
	dest := &fakeDest{}
	opts := Options{Overrides: map[string]schema.InferredType{
		"code": {Kind: schema.KindVarchar, Length: 10},
	}}

	results := Migrate(sheets, dest, schema.DefaultConfig(), opts, nil)
	if !results[0].Succeeded {
		t.Fatalf("result: %+v", results[0])
	}
	col := dest.created[0].Columns[0]
	if col.Type.Kind != schema.KindVarchar || !col.Overridden {
		t.Errorf("override ignored: %+v", col)
	}
	// Leading zeros survive because the column stayed textual.
	if dest.batches[0][0][0] != "001" {
		t.Errorf("value = %v, want \"001\"", dest.batches[0][0][0])
	}
}

func TestMigrate_RowsOpenFailure(t *testing.T) {
	sheets := []Source{
		&fakeSheet{name: "Locked", header: []string{"A"}, rows: [][]string{{"x"}}, rowsErr: errors.New("stream unavailable")},
	}
	results := Migrate(sheets, &fakeDest{}, schema.DefaultConfig(), Options{}, nil)
	if results[0].Succeeded || !strings.Contains(results[0].ErrorMsg, "stream unavailable") {
		t.Errorf("result: %+v", results[0])
	}
}

func TestVerify(t *testing.T) {
	dest := &fakeDest{existing: map[string]int{
		"full":  100,
		"short": 60,
	}}
	in := []schema.MigrationResult{
		{SheetName: "Full", TableName: "full", Rows: 100, Succeeded: true, Status: "OK"},
		{SheetName: "Short", TableName: "short", Rows: 100, Succeeded: true, Status: "OK"},
		{SheetName: "Bad", TableName: "bad_table", Succeeded: false, Status: "FAILED", ErrorMsg: "boom"},
	}

	out := Verify(dest, in)

	if out[0].Status != "VERIFIED_OK" {
		t.Errorf("full: %q", out[0].Status)
	}
	if out[1].Succeeded || !strings.HasPrefix(out[1].Status, "PARTIAL") {
		t.Errorf("short: %+v", out[1])
	}
	if out[2].Status != "FAILED" {
		t.Errorf("failed result must pass through untouched: %+v", out[2])
	}
}

func TestSummarize(t *testing.T) {
	s := Summarize([]schema.MigrationResult{
		{Succeeded: true, Rows: 120},
		{Succeeded: true, Rows: 80},
		{Succeeded: false, Rows: 30},
	})
	if s.Total != 3 || s.Succeeded != 2 || s.Failed != 1 || s.Rows != 230 {
		t.Errorf("summary: %+v", s)
	}
}
