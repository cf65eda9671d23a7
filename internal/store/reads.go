package store

import (
	"database/sql"
	"fmt"
)

// ReturnRow is one monthly return observation joined to its fund name.
type ReturnRow struct {
	AsOf  string
	Fund  string
	Value float64
}

// AllReturns returns every return observation ordered by date then fund.
func (s *Store) AllReturns() ([]ReturnRow, error) {
	rows, err := s.db.Query(`SELECT r.asof, f.name, r.monthly_return
		FROM returns r JOIN funds f ON f.id = r.fund_id
		ORDER BY r.asof, f.name`)
	if err != nil {
		return nil, fmt.Errorf("querying returns: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []ReturnRow
	for rows.Next() {
		var r ReturnRow
		if err := rows.Scan(&r.AsOf, &r.Fund, &r.Value); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// InflationRow is one cumulative index observation.
type InflationRow struct {
	AsOf  string
	Level float64
}

// InflationSeries returns the inflation index ordered by date.
func (s *Store) InflationSeries() ([]InflationRow, error) {
	rows, err := s.db.Query(`SELECT asof, index_level FROM inflation ORDER BY asof`)
	if err != nil {
		return nil, fmt.Errorf("querying inflation: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []InflationRow
	for rows.Next() {
		var r InflationRow
		if err := rows.Scan(&r.AsOf, &r.Level); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// AllocationWeights returns asset-class name to weight for one snapshot date.
func (s *Store) AllocationWeights(asof string) (map[string]float64, error) {
	rows, err := s.db.Query(`SELECT a.name, t.weight
		FROM target_allocations t JOIN asset_classes a ON a.id = t.asset_class_id
		WHERE t.asof = ?`, asof)
	if err != nil {
		return nil, fmt.Errorf("querying allocations: %w", err)
	}
	defer func() { _ = rows.Close() }()

	out := make(map[string]float64)
	for rows.Next() {
		var name string
		var weight float64
		if err := rows.Scan(&name, &weight); err != nil {
			return nil, err
		}
		out[name] = weight
	}
	return out, rows.Err()
}

// SpendingPolicyRow holds the stored spending rule.
type SpendingPolicyRow struct {
	Name           string
	Rate           float64
	SmoothingYears int
}

// SpendingPolicy returns the policy row by name, or ok=false when absent.
func (s *Store) SpendingPolicy(name string) (SpendingPolicyRow, bool, error) {
	var p SpendingPolicyRow
	err := s.db.QueryRow(`SELECT name, rate, smoothing_years FROM spending_policy WHERE name = ?`,
		name).Scan(&p.Name, &p.Rate, &p.SmoothingYears)
	if err == sql.ErrNoRows {
		return SpendingPolicyRow{}, false, nil
	}
	if err != nil {
		return SpendingPolicyRow{}, false, fmt.Errorf("querying spending policy: %w", err)
	}
	return p, true, nil
}

// ContributionRow is one ledger entry.
type ContributionRow struct {
	AsOf   string
	Amount float64
	Source string
}

// Contributions returns the ledger ordered by date then insertion.
func (s *Store) Contributions() ([]ContributionRow, error) {
	rows, err := s.db.Query(`SELECT asof, amount, COALESCE(source, '') FROM contributions
		ORDER BY asof, id`)
	if err != nil {
		return nil, fmt.Errorf("querying contributions: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []ContributionRow
	for rows.Next() {
		var c ContributionRow
		if err := rows.Scan(&c.AsOf, &c.Amount, &c.Source); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}
