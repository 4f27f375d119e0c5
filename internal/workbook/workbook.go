// Package workbook reads Excel workbooks (.xlsx/.xlsm) through excelize,
// exposing per-sheet descriptors, bounded samples for type inference, and a
// forward-only row iterator so a sheet is never materialized in memory.
package workbook

import (
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"sheet-pump/internal/schema"
)

// Workbook is an open source file. The destination side knows nothing about
// it; sheets are handed to the engine one at a time.
type Workbook struct {
	file *excelize.File
	path string
}

func Open(path string) (*Workbook, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook %s: %w", path, err)
	}
	return &Workbook{file: f, path: path}, nil
}

func (w *Workbook) Close() error {
	return w.file.Close()
}

func (w *Workbook) Path() string {
	return w.path
}

// SheetNames returns the sheet names in workbook order.
func (w *Workbook) SheetNames() []string {
	return w.file.GetSheetList()
}

// Sheet returns a handle for the named sheet.
func (w *Workbook) Sheet(name string) (*Sheet, error) {
	idx, err := w.file.GetSheetIndex(name)
	if err != nil || idx < 0 {
		return nil, fmt.Errorf("sheet %q not found in %s", name, w.path)
	}
	return &Sheet{file: w.file, name: name}, nil
}

// Sheets returns handles for all sheets in workbook order.
func (w *Workbook) Sheets() []*Sheet {
	names := w.SheetNames()
	sheets := make([]*Sheet, len(names))
	for i, n := range names {
		sheets[i] = &Sheet{file: w.file, name: n}
	}
	return sheets
}

// Sheet is one rectangular data region: a header row plus data rows.
type Sheet struct {
	file *excelize.File
	name string
}

func (s *Sheet) Name() string { return s.name }

// Describe reads the header row and counts the data rows below it. The count
// pass iterates the sheet XML without keeping rows around.
func (s *Sheet) Describe() (schema.SheetDescriptor, error) {
	it, err := s.Rows()
	if err != nil {
		return schema.SheetDescriptor{}, err
	}
	defer it.Close()

	count := 0
	for {
		if _, err := it.Next(); err == io.EOF {
			break
		} else if err != nil {
			return schema.SheetDescriptor{}, err
		}
		count++
	}
	return schema.SheetDescriptor{Name: s.name, Columns: it.Header(), RowCount: count}, nil
}

// Sample collects up to limit data rows into per-column value slices, indexed
// by column position so duplicate headers keep separate samples. Used only to
// drive inference; never persisted.
func (s *Sheet) Sample(limit int) ([][]string, error) {
	it, err := s.Rows()
	if err != nil {
		return nil, err
	}
	defer it.Close()

	samples := make([][]string, len(it.Header()))
	for n := 0; n < limit; n++ {
		row, err := it.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		for i := range samples {
			samples[i] = append(samples[i], row[i])
		}
	}
	return samples, nil
}

// Rows opens a fresh forward-only iterator positioned after the header row.
// The returned iterator is not restartable; call Rows again for a new pass.
func (s *Sheet) Rows() (*RowIterator, error) {
	rows, err := s.file.Rows(s.name)
	if err != nil {
		return nil, fmt.Errorf("failed to open rows for sheet %q: %w", s.name, err)
	}

	// Header: first row with any non-blank cell. Leading empty rows are
	// tolerated the way spreadsheet authors produce them.
	var header []string
	for rows.Next() {
		cells, err := rows.Columns()
		if err != nil {
			rows.Close()
			return nil, fmt.Errorf("failed to read header of sheet %q: %w", s.name, err)
		}
		if isBlankRow(cells) {
			continue
		}
		header = make([]string, len(cells))
		for i, c := range cells {
			header[i] = strings.TrimSpace(c)
		}
		break
	}
	if header == nil {
		rows.Close()
		return &RowIterator{done: true}, nil
	}

	return &RowIterator{rows: rows, header: header}, nil
}

// RowIterator yields data rows padded or truncated to the header width.
// Fully blank rows are skipped.
type RowIterator struct {
	rows   *excelize.Rows
	header []string
	done   bool
}

// Header returns the header row the iterator was opened with. Empty when the
// sheet had no usable header.
func (it *RowIterator) Header() []string { return it.header }

// Next returns the next data row, or io.EOF when the sheet is exhausted.
func (it *RowIterator) Next() ([]string, error) {
	if it.done {
		return nil, io.EOF
	}
	for it.rows.Next() {
		cells, err := it.rows.Columns()
		if err != nil {
			return nil, fmt.Errorf("failed to read row: %w", err)
		}
		if isBlankRow(cells) {
			continue
		}
		return fitRowToWidth(cells, len(it.header)), nil
	}
	it.done = true
	if err := it.rows.Error(); err != nil {
		return nil, fmt.Errorf("row iteration failed: %w", err)
	}
	return nil, io.EOF
}

func (it *RowIterator) Close() error {
	if it.rows == nil {
		return nil
	}
	return it.rows.Close()
}

func isBlankRow(cells []string) bool {
	for _, c := range cells {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

// fitRowToWidth truncates or pads a row to exactly n fields; short rows are
// common at the ragged right edge of a sheet.
func fitRowToWidth(row []string, n int) []string {
	if len(row) == n {
		return row
	}
	cp := make([]string, n)
	copy(cp, row)
	return cp
}
