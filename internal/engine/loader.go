package engine

import (
	"io"
	"log"

	"sheet-pump/internal/schema"
)

// RowSource produces a finite, forward-only sequence of raw rows. It is not
// restartable: once consumed it cannot be re-scanned.
type RowSource interface {
	// Next returns the next row, or io.EOF when the source is exhausted.
	Next() ([]string, error)
}

// ProgressFunc receives a fire-and-forget progress event after every batch.
// The sheet name lets the caller render one progress bar per sheet.
type ProgressFunc func(sheet string, rowsDone, rowsTotal int)

// Load creates the destination table from spec and streams rows into it in
// batches of at most cfg.ChunkSize, preserving source order.
//
// Failure policy: the first failed batch stops the sheet. Rows committed by
// earlier batches stand (each batch is its own unit of commit), the partial
// count is recorded, and the error message is attached to the result. There
// is no automatic retry.
//
// Memory is bounded by the chunk size: rows are pulled lazily from the source
// and the full sheet is never held at once.
func Load(dest Destination, spec *schema.TableSpec, rows RowSource, rowsTotal int, cfg schema.Config, drop bool, onProgress ProgressFunc) schema.MigrationResult {
	result := schema.MigrationResult{
		SheetName: spec.Sheet,
		TableName: spec.Name,
	}

	// Table creation surfaces before any row write; no partial table.
	if err := dest.EnsureTable(spec, drop); err != nil {
		result.Status = "FAILED"
		result.ErrorMsg = err.Error()
		return result
	}

	chunk := cfg.ChunkSize
	if chunk <= 0 {
		chunk = schema.DefaultConfig().ChunkSize
	}
	cols := spec.ColumnNames()
	if max := dest.MaxBatchRows(len(cols)); max > 0 && chunk > max {
		log.Printf("Clamping chunk size %d to backend limit %d for %s", chunk, max, spec.Name)
		chunk = max
	}

	batch := make([][]any, 0, chunk)
	flush := func() error {
		if len(batch) == 0 {
			return nil
		}
		if err := dest.WriteBatch(spec.Name, cols, batch); err != nil {
			return err
		}
		result.Rows += len(batch)
		batch = batch[:0]
		if onProgress != nil {
			onProgress(spec.Sheet, result.Rows, rowsTotal)
		}
		return nil
	}

	for {
		raw, err := rows.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			// Source read fault: committed batches stand, remaining rows are lost.
			result.Status = "FAILED"
			result.ErrorMsg = "source read failed: " + err.Error()
			return result
		}

		values, err := convertRow(spec, raw)
		if err != nil {
			result.Status = "FAILED"
			result.ErrorMsg = err.Error()
			return result
		}
		batch = append(batch, values)
		if len(batch) >= chunk {
			if err := flush(); err != nil {
				result.Status = "FAILED"
				result.ErrorMsg = err.Error()
				return result
			}
		}
	}
	if err := flush(); err != nil {
		result.Status = "FAILED"
		result.ErrorMsg = err.Error()
		return result
	}

	result.Succeeded = true
	result.Status = "OK"
	return result
}
