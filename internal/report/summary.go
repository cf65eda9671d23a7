// Package report provides the read-only operational summary of a store.
package report

import (
	"github.com/endowlab/endowdb/internal/store"
)

// UnknownVersion is reported when the schema_meta row is absent.
const UnknownVersion = "unknown"

// TableCount pairs a domain table with its row count.
type TableCount struct {
	Table string
	Count int64
}

// Summary is the schema version plus per-table row counts.
type Summary struct {
	Path          string
	SchemaVersion string
	Tables        []TableCount
}

// Summarize opens an existing store and reports its schema version and
// domain table counts. It never creates a store: a missing file surfaces
// store.ErrStoreNotFound so callers can report that condition distinctly.
func Summarize(path string) (Summary, error) {
	st, err := store.OpenExisting(path)
	if err != nil {
		return Summary{}, err
	}
	defer func() { _ = st.Close() }()

	sum := Summary{Path: path, SchemaVersion: UnknownVersion}
	if v, ok := st.Version(); ok {
		sum.SchemaVersion = v
	}

	for _, table := range store.DomainTables {
		n, err := st.TableCount(table)
		if err != nil {
			return Summary{}, err
		}
		sum.Tables = append(sum.Tables, TableCount{Table: table, Count: n})
	}
	return sum, nil
}
