package store

import (
	"database/sql"
	"fmt"
	"strings"
)

// PolicyName is the fixed identity of the canonical spending policy row.
// The importer and seeder both write to it; last write wins.
const PolicyName = "default"

// Writer is a single write transaction over the store. It carries
// name-to-id maps for the reference entities, loaded once at Begin and
// mutated in place as entities are created, so resolving a name never
// costs a query per row.
type Writer struct {
	tx           *sql.Tx
	assetClasses map[string]int64
	benchmarks   map[string]int64
	funds        map[string]int64
}

// BeginWrite starts a write transaction and loads the reference maps
// from the current store state.
func (s *Store) BeginWrite() (*Writer, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("beginning write: %w", err)
	}

	w := &Writer{tx: tx}
	w.assetClasses, err = loadNameIDs(tx, "asset_classes")
	if err == nil {
		w.benchmarks, err = loadNameIDs(tx, "benchmarks")
	}
	if err == nil {
		w.funds, err = loadNameIDs(tx, "funds")
	}
	if err != nil {
		_ = tx.Rollback()
		return nil, err
	}
	return w, nil
}

func loadNameIDs(tx *sql.Tx, table string) (map[string]int64, error) {
	rows, err := tx.Query("SELECT id, name FROM " + table)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", table, err)
	}
	defer func() { _ = rows.Close() }()

	out := make(map[string]int64)
	for rows.Next() {
		var id int64
		var name string
		if err := rows.Scan(&id, &name); err != nil {
			return nil, err
		}
		out[nameKey(name)] = id
	}
	return out, rows.Err()
}

// nameKey folds a reference-entity name for map lookup. Names are matched
// case-insensitively and whitespace-trimmed, same as workbook headers.
func nameKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// Commit commits the transaction.
func (w *Writer) Commit() error {
	return w.tx.Commit()
}

// Rollback aborts the transaction. Safe to defer after Commit.
func (w *Writer) Rollback() error {
	err := w.tx.Rollback()
	if err == sql.ErrTxDone {
		return nil
	}
	return err
}

// EnsureAssetClass returns the id for an asset class, creating it if absent.
func (w *Writer) EnsureAssetClass(name string) (int64, error) {
	if id, ok := w.assetClasses[nameKey(name)]; ok {
		return id, nil
	}
	res, err := w.tx.Exec(`INSERT INTO asset_classes (name) VALUES (?)`, strings.TrimSpace(name))
	if err != nil {
		return 0, fmt.Errorf("inserting asset class %q: %w", name, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	w.assetClasses[nameKey(name)] = id
	return id, nil
}

// EnsureBenchmark returns the id for a benchmark, creating it if absent.
// The ticker is only written on creation; existing rows are not touched.
func (w *Writer) EnsureBenchmark(name, ticker string) (int64, error) {
	if id, ok := w.benchmarks[nameKey(name)]; ok {
		return id, nil
	}
	var t any
	if ticker != "" {
		t = ticker
	}
	res, err := w.tx.Exec(`INSERT INTO benchmarks (name, ticker) VALUES (?, ?)`,
		strings.TrimSpace(name), t)
	if err != nil {
		return 0, fmt.Errorf("inserting benchmark %q: %w", name, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	w.benchmarks[nameKey(name)] = id
	return id, nil
}

// EnsureFund returns the id for a fund, creating it if absent with the
// given asset class and optional benchmark. Existing funds keep their
// references; reference entities are never rewritten.
func (w *Writer) EnsureFund(name string, assetClassID int64, benchmarkID *int64) (int64, error) {
	if id, ok := w.funds[nameKey(name)]; ok {
		return id, nil
	}
	var b any
	if benchmarkID != nil {
		b = *benchmarkID
	}
	res, err := w.tx.Exec(`INSERT INTO funds (name, asset_class_id, benchmark_id) VALUES (?, ?, ?)`,
		strings.TrimSpace(name), assetClassID, b)
	if err != nil {
		return 0, fmt.Errorf("inserting fund %q: %w", name, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	w.funds[nameKey(name)] = id
	return id, nil
}

// LookupFund resolves a fund name against the in-memory map.
func (w *Writer) LookupFund(name string) (int64, bool) {
	id, ok := w.funds[nameKey(name)]
	return id, ok
}

// LookupAssetClass resolves an asset class name against the in-memory map.
func (w *Writer) LookupAssetClass(name string) (int64, bool) {
	id, ok := w.assetClasses[nameKey(name)]
	return id, ok
}

// UpsertReturn writes one monthly return observation, replacing any prior
// observation for the same (asof, fund) key.
func (w *Writer) UpsertReturn(asof string, fundID int64, value float64) error {
	_, err := w.tx.Exec(`INSERT OR REPLACE INTO returns (asof, fund_id, monthly_return)
		VALUES (?, ?, ?)`, asof, fundID, value)
	if err != nil {
		return fmt.Errorf("upserting return (%s, %d): %w", asof, fundID, err)
	}
	return nil
}

// AppendContribution appends one ledger row. Contributions have no natural
// key; duplicate dates are distinct entries.
func (w *Writer) AppendContribution(asof string, amount float64, source string) error {
	var src any
	if source != "" {
		src = source
	}
	_, err := w.tx.Exec(`INSERT INTO contributions (asof, amount, source) VALUES (?, ?, ?)`,
		asof, amount, src)
	if err != nil {
		return fmt.Errorf("appending contribution: %w", err)
	}
	return nil
}

// InsertContributionIfAbsent appends a ledger row unless an identical
// (asof, amount, source) row already exists. The ledger has no natural
// key; this exists so re-seeding does not duplicate the fixed gift
// schedule. Returns whether a row was written.
func (w *Writer) InsertContributionIfAbsent(asof string, amount float64, source string) (bool, error) {
	res, err := w.tx.Exec(`INSERT INTO contributions (asof, amount, source)
		SELECT ?, ?, ?
		WHERE NOT EXISTS (
			SELECT 1 FROM contributions WHERE asof = ? AND amount = ? AND source IS ?
		)`, asof, amount, source, asof, amount, source)
	if err != nil {
		return false, fmt.Errorf("inserting contribution: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// UpsertTargetAllocation writes one target weight, replacing any prior
// weight for the same (asof, asset class) key.
func (w *Writer) UpsertTargetAllocation(asof string, assetClassID int64, weight float64) error {
	_, err := w.tx.Exec(`INSERT OR REPLACE INTO target_allocations (asof, asset_class_id, weight)
		VALUES (?, ?, ?)`, asof, assetClassID, weight)
	if err != nil {
		return fmt.Errorf("upserting allocation (%s, %d): %w", asof, assetClassID, err)
	}
	return nil
}

// InsertTargetAllocation writes one target weight only when the
// (asof, asset class) key is not already present (seed path).
func (w *Writer) InsertTargetAllocation(asof string, assetClassID int64, weight float64) error {
	_, err := w.tx.Exec(`INSERT OR IGNORE INTO target_allocations (asof, asset_class_id, weight)
		VALUES (?, ?, ?)`, asof, assetClassID, weight)
	if err != nil {
		return fmt.Errorf("inserting allocation (%s, %d): %w", asof, assetClassID, err)
	}
	return nil
}

// InsertSpendingPolicy writes the policy row only when a row with that
// name does not already exist (seed path).
func (w *Writer) InsertSpendingPolicy(name string, rate float64, smoothingYears int) error {
	_, err := w.tx.Exec(`INSERT OR IGNORE INTO spending_policy (name, rate, smoothing_years)
		VALUES (?, ?, ?)`, name, rate, smoothingYears)
	if err != nil {
		return fmt.Errorf("inserting spending policy: %w", err)
	}
	return nil
}

// ReplaceSpendingPolicy overwrites the canonical policy row (import path).
func (w *Writer) ReplaceSpendingPolicy(rate float64, smoothingYears int) error {
	_, err := w.tx.Exec(`INSERT OR REPLACE INTO spending_policy (name, rate, smoothing_years)
		VALUES (?, ?, ?)`, PolicyName, rate, smoothingYears)
	if err != nil {
		return fmt.Errorf("replacing spending policy: %w", err)
	}
	return nil
}

// UpsertInflation writes one index level, replacing any prior level for
// the same date.
func (w *Writer) UpsertInflation(asof string, level float64) error {
	_, err := w.tx.Exec(`INSERT OR REPLACE INTO inflation (asof, index_level) VALUES (?, ?)`,
		asof, level)
	if err != nil {
		return fmt.Errorf("upserting inflation (%s): %w", asof, err)
	}
	return nil
}
