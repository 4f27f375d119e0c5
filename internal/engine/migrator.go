package engine

import (
	"fmt"
	"log"

	"sheet-pump/internal/schema"
)

// Source is one sheet of the workbook as the orchestrator sees it. Sample
// returns per-column value slices in header order.
type Source interface {
	Name() string
	Describe() (schema.SheetDescriptor, error)
	Sample(limit int) ([][]string, error)
	Rows() (RowSource, error)
}

// Options carry the per-run operator choices into the orchestrator.
type Options struct {
	Drop      bool // drop-and-recreate existing destination tables
	Overrides map[string]schema.InferredType
}

// Migrate processes the given sheets in order: build the table spec, then
// chunk-load the rows. Any per-sheet error is converted into a failed
// MigrationResult; no sheet's failure prevents the remaining sheets from
// being attempted.
func Migrate(sources []Source, dest Destination, cfg schema.Config, opts Options, onProgress ProgressFunc) []schema.MigrationResult {
	results := make([]schema.MigrationResult, 0, len(sources))

	for _, src := range sources {
		results = append(results, migrateSheet(src, dest, cfg, opts, onProgress))
	}
	return results
}

func migrateSheet(src Source, dest Destination, cfg schema.Config, opts Options, onProgress ProgressFunc) schema.MigrationResult {
	failed := func(table, msg string) schema.MigrationResult {
		return schema.MigrationResult{
			SheetName: src.Name(),
			TableName: table,
			Status:    "FAILED",
			ErrorMsg:  msg,
		}
	}

	desc, err := src.Describe()
	if err != nil {
		return failed("", fmt.Sprintf("failed to read sheet: %v", err))
	}
	if desc.RowCount == 0 {
		r := failed(schema.NormalizeTableName(desc.Name), "sheet has no data rows")
		r.Status = "EMPTY"
		return r
	}

	samples, err := src.Sample(cfg.SampleRows)
	if err != nil {
		return failed("", fmt.Sprintf("failed to sample sheet: %v", err))
	}

	spec, err := schema.Build(desc, sampleAt(samples), opts.Overrides, cfg)
	if err != nil {
		return failed("", err.Error())
	}
	for _, c := range spec.Columns {
		if c.LowConfidence {
			log.Printf("Warning: column %s.%s had no usable sample values, falling back to %s",
				spec.Name, c.Name, c.Type)
		}
	}

	rows, err := src.Rows()
	if err != nil {
		return failed(spec.Name, fmt.Sprintf("failed to open rows: %v", err))
	}
	if closer, ok := rows.(interface{ Close() error }); ok {
		defer closer.Close()
	}

	return Load(dest, spec, rows, desc.RowCount, cfg, opts.Drop, onProgress)
}

func sampleAt(samples [][]string) func(int) []string {
	return func(col int) []string {
		if col < len(samples) {
			return samples[col]
		}
		return nil
	}
}

// Verify re-counts every successfully loaded table and annotates the results,
// catching destinations that silently dropped rows.
func Verify(dest Destination, results []schema.MigrationResult) []schema.MigrationResult {
	verified := make([]schema.MigrationResult, 0, len(results))
	for _, res := range results {
		if !res.Succeeded {
			verified = append(verified, res)
			continue
		}
		n, err := dest.Count(res.TableName)
		switch {
		case err != nil:
			res.Status = fmt.Sprintf("VERIFY_FAIL: %v", err)
		case n < res.Rows:
			res.Status = fmt.Sprintf("PARTIAL: %d/%d", n, res.Rows)
			res.Succeeded = false
		default:
			res.Status = "VERIFIED_OK"
		}
		verified = append(verified, res)
	}
	return verified
}

// Summary aggregates the per-sheet results.
type Summary struct {
	Total     int
	Succeeded int
	Failed    int
	Rows      int
}

func Summarize(results []schema.MigrationResult) Summary {
	s := Summary{Total: len(results)}
	for _, r := range results {
		if r.Succeeded {
			s.Succeeded++
		} else {
			s.Failed++
		}
		s.Rows += r.Rows
	}
	return s
}
