package report

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/endowlab/endowdb/internal/seed"
	"github.com/endowlab/endowdb/internal/store"
)

func TestSummarizeMissingStore(t *testing.T) {
	_, err := Summarize(filepath.Join(t.TempDir(), "absent.db"))
	require.ErrorIs(t, err, store.ErrStoreNotFound)
}

func TestSummarizeSeededStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "endowment.db")

	st, err := store.Open(path)
	require.NoError(t, err)
	_, err = seed.Run(st, seed.Params{StartYear: 2020, EndYear: 2020, Seed: 42},
		time.Date(2026, time.August, 31, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.NoError(t, st.Close())

	sum, err := Summarize(path)
	require.NoError(t, err)
	require.Equal(t, store.SchemaVersion, sum.SchemaVersion)
	require.Len(t, sum.Tables, len(store.DomainTables))

	counts := make(map[string]int64)
	for _, tc := range sum.Tables {
		counts[tc.Table] = tc.Count
	}
	require.EqualValues(t, 6, counts["asset_classes"])
	require.EqualValues(t, 6, counts["benchmarks"])
	require.EqualValues(t, 6, counts["funds"])
	require.EqualValues(t, 72, counts["returns"], "12 months x 6 funds")
	require.EqualValues(t, 12, counts["inflation"])
	require.EqualValues(t, 6, counts["target_allocations"])
	require.EqualValues(t, 1, counts["spending_policy"])
	require.EqualValues(t, 1, counts["contributions"], "one gift for 2020")
}

func TestSummarizeUnknownVersion(t *testing.T) {
	// A database file that exists but has no schema reports the
	// sentinel version and zero counts, and is left untouched.
	path := filepath.Join(t.TempDir(), "bare.db")
	require.NoError(t, os.WriteFile(path, nil, 0o600))

	sum, err := Summarize(path)
	require.NoError(t, err)
	require.Equal(t, UnknownVersion, sum.SchemaVersion)
	for _, tc := range sum.Tables {
		require.Zero(t, tc.Count)
	}
}
