package engine

import (
	"database/sql"
	"fmt"

	"sheet-pump/internal/dialect"
	"sheet-pump/internal/schema"
)

// Destination is the table-write capability the loader needs. The SQL
// implementation below is the production one; tests substitute fakes.
type Destination interface {
	// EnsureTable creates the destination table from the spec, failing fast if
	// it already exists unless drop is set.
	EnsureTable(spec *schema.TableSpec, drop bool) error
	// WriteBatch inserts one batch of rows. Each call is its own unit of
	// commit; there is no cross-batch transaction.
	WriteBatch(table string, cols []string, rows [][]any) error
	// Count returns the current row count of a destination table.
	Count(table string) (int, error)
	// MaxBatchRows reports the backend's per-statement row ceiling for the
	// given column count (0 = no limit).
	MaxBatchRows(cols int) int
}

// SQLDestination writes through a shared *sql.DB using the configured dialect.
// The connection is owned by the caller for the lifetime of the run.
type SQLDestination struct {
	DB      *sql.DB
	Dialect dialect.Dialect
}

func (d *SQLDestination) EnsureTable(spec *schema.TableSpec, drop bool) error {
	var n int
	if err := d.DB.QueryRow(d.Dialect.TableExistsQuery(), spec.Name).Scan(&n); err != nil {
		return fmt.Errorf("failed to check table %s: %w", spec.Name, err)
	}
	if n > 0 {
		if !drop {
			return fmt.Errorf("table %s already exists (use --drop to replace it)", spec.Name)
		}
		if _, err := d.DB.Exec(d.Dialect.DropTableQuery(spec.Name)); err != nil {
			return fmt.Errorf("failed to drop table %s: %w", spec.Name, err)
		}
	}
	if _, err := d.DB.Exec(d.Dialect.CreateTableQuery(spec)); err != nil {
		return fmt.Errorf("failed to create table %s: %w", spec.Name, err)
	}
	return nil
}

func (d *SQLDestination) WriteBatch(table string, cols []string, rows [][]any) error {
	if len(rows) == 0 {
		return nil
	}
	query := d.Dialect.InsertQuery(table, cols, len(rows))

	args := make([]any, 0, len(rows)*len(cols))
	for _, row := range rows {
		args = append(args, row...)
	}
	if _, err := d.DB.Exec(query, args...); err != nil {
		return fmt.Errorf("batch insert into %s failed: %w", table, err)
	}
	return nil
}

func (d *SQLDestination) Count(table string) (int, error) {
	var n int
	if err := d.DB.QueryRow(d.Dialect.CountQuery(table)).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

func (d *SQLDestination) MaxBatchRows(cols int) int {
	return d.Dialect.BatchCeiling(cols)
}

var _ Destination = (*SQLDestination)(nil)
