// Package workbook reads and writes the xlsx interchange format for the
// store: an importer that tolerantly upserts up to eight named sheets,
// and a template generator emitting the exact shape the importer expects.
package workbook

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/endowlab/endowdb/internal/store"
)

// SheetStats counts what one sheet contributed to an import.
type SheetStats struct {
	Sheet   string
	Rows    int
	Skipped int
}

// Stats summarizes a whole import run. There is no per-row error channel;
// rows that fail to parse are dropped and only counted.
type Stats struct {
	Sheets []SheetStats
}

// Totals returns the imported and skipped row counts across all sheets.
func (s Stats) Totals() (rows, skipped int) {
	for _, sh := range s.Sheets {
		rows += sh.Rows
		skipped += sh.Skipped
	}
	return rows, skipped
}

// Import reads the workbook at path and writes its recognized sheets into
// the store in one transaction. Absent sheets are skipped. Reference
// names that do not resolve against the current store state are
// auto-created, so sheet order determines what is pre-seeded.
func Import(st *store.Store, path string) (Stats, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return Stats{}, fmt.Errorf("opening workbook: %w", err)
	}
	defer func() { _ = f.Close() }()

	w, err := st.BeginWrite()
	if err != nil {
		return Stats{}, err
	}
	defer func() { _ = w.Rollback() }()

	imp := &importer{w: w}
	for _, def := range sheetDefs {
		sheet := findSheet(f, def.Name)
		if sheet == "" {
			continue
		}
		rows, err := f.GetRows(sheet)
		if err != nil {
			return Stats{}, fmt.Errorf("reading sheet %s: %w", sheet, err)
		}
		ss, err := imp.importSheet(def.Name, rows)
		if err != nil {
			return Stats{}, err
		}
		imp.stats.Sheets = append(imp.stats.Sheets, ss)
	}

	if err := w.Commit(); err != nil {
		return Stats{}, fmt.Errorf("committing import: %w", err)
	}
	return imp.stats, nil
}

// findSheet locates a sheet by name, case-insensitively.
func findSheet(f *excelize.File, name string) string {
	for _, s := range f.GetSheetList() {
		if strings.EqualFold(strings.TrimSpace(s), name) {
			return s
		}
	}
	return ""
}

type importer struct {
	w     *store.Writer
	stats Stats
}

// columns maps lower-cased, trimmed header names to their column index.
type columns map[string]int

func headerIndex(header []string) columns {
	cols := make(columns, len(header))
	for i, h := range header {
		key := strings.ToLower(strings.TrimSpace(h))
		if key != "" {
			cols[key] = i
		}
	}
	return cols
}

// cell returns the trimmed cell under a header, or "" when the column is
// unknown or the row is ragged.
func (c columns) cell(row []string, name string) string {
	i, ok := c[name]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

func (imp *importer) importSheet(name string, rows [][]string) (SheetStats, error) {
	ss := SheetStats{Sheet: name}
	if len(rows) < 2 {
		return ss, nil
	}
	cols := headerIndex(rows[0])

	for _, row := range rows[1:] {
		ok, err := imp.importRow(name, cols, row)
		if err != nil {
			return ss, fmt.Errorf("sheet %s: %w", name, err)
		}
		if ok {
			ss.Rows++
		} else {
			ss.Skipped++
		}
	}
	return ss, nil
}

// importRow writes one row. A false return means the row was dropped for
// a missing or unparseable required field; an error return aborts the
// whole import (storage failures only).
func (imp *importer) importRow(sheet string, cols columns, row []string) (bool, error) {
	switch sheet {
	case "asset_classes":
		name := cols.cell(row, "name")
		if name == "" {
			return false, nil
		}
		_, err := imp.w.EnsureAssetClass(name)
		return err == nil, err

	case "benchmarks":
		name := cols.cell(row, "name")
		if name == "" {
			return false, nil
		}
		_, err := imp.w.EnsureBenchmark(name, cols.cell(row, "ticker"))
		return err == nil, err

	case "funds":
		name := cols.cell(row, "name")
		acName := cols.cell(row, "asset_class")
		if name == "" || acName == "" {
			return false, nil
		}
		acID, err := imp.w.EnsureAssetClass(acName)
		if err != nil {
			return false, err
		}
		var bmID *int64
		if bm := cols.cell(row, "benchmark"); bm != "" {
			id, err := imp.w.EnsureBenchmark(bm, "")
			if err != nil {
				return false, err
			}
			bmID = &id
		}
		_, err = imp.w.EnsureFund(name, acID, bmID)
		return err == nil, err

	case "returns":
		asof := cols.cell(row, "asof")
		fund := cols.cell(row, "fund")
		val, okVal := normalizeRate(cols.cell(row, "monthly_return"))
		if asof == "" || fund == "" || !okVal {
			return false, nil
		}
		fundID, err := imp.ensureFund(fund)
		if err != nil {
			return false, err
		}
		err = imp.w.UpsertReturn(normalizeDate(asof), fundID, val)
		return err == nil, err

	case "contributions":
		asof := cols.cell(row, "asof")
		amount, okAmt := parseNumber(cols.cell(row, "amount"))
		if asof == "" || !okAmt {
			return false, nil
		}
		err := imp.w.AppendContribution(normalizeDate(asof), amount, cols.cell(row, "source"))
		return err == nil, err

	case "target_allocations":
		asof := cols.cell(row, "asof")
		acName := cols.cell(row, "asset_class")
		weight, okW := normalizeRate(cols.cell(row, "weight"))
		if asof == "" || acName == "" || !okW {
			return false, nil
		}
		acID, err := imp.w.EnsureAssetClass(acName)
		if err != nil {
			return false, err
		}
		err = imp.w.UpsertTargetAllocation(normalizeDate(asof), acID, weight)
		return err == nil, err

	case "spending_policy":
		rate, okRate := normalizeRate(cols.cell(row, "rate"))
		years, okYears := parseInt(cols.cell(row, "smoothing_years"))
		if !okRate || !okYears {
			return false, nil
		}
		// Single canonical row: every parsed row replaces it, so the
		// last row of the sheet wins.
		err := imp.w.ReplaceSpendingPolicy(rate, years)
		return err == nil, err

	case "inflation":
		asof := cols.cell(row, "asof")
		level, okLvl := parseNumber(cols.cell(row, "index_level"))
		if asof == "" || !okLvl {
			return false, nil
		}
		err := imp.w.UpsertInflation(normalizeDate(asof), level)
		return err == nil, err
	}
	return false, nil
}

// ensureFund resolves a fund by name, auto-creating it under the fallback
// asset class when a returns sheet references a fund nobody declared.
func (imp *importer) ensureFund(name string) (int64, error) {
	if id, ok := imp.w.LookupFund(name); ok {
		return id, nil
	}
	acID, err := imp.w.EnsureAssetClass(fallbackAssetClass)
	if err != nil {
		return 0, err
	}
	return imp.w.EnsureFund(name, acID, nil)
}
