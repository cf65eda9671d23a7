package store

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	st, err := Open(filepath.Join(t.TempDir(), "endowment.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	return st
}

func TestEnsureSchemaIdempotent(t *testing.T) {
	st := openTestStore(t)

	v1, ok := st.Version()
	require.True(t, ok)
	require.Equal(t, SchemaVersion, v1)

	require.NoError(t, st.EnsureSchema())

	v2, ok := st.Version()
	require.True(t, ok)
	require.Equal(t, v1, v2)

	for _, table := range DomainTables {
		n, err := st.TableCount(table)
		require.NoError(t, err)
		require.Zero(t, n, "table %s not empty after double EnsureSchema", table)
	}
}

func TestOpenExistingMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nope.db")

	_, err := OpenExisting(path)
	require.ErrorIs(t, err, ErrStoreNotFound)

	// Must not create the file as a side effect.
	_, statErr := os.Stat(path)
	require.True(t, os.IsNotExist(statErr))
}

func TestOpenExistingWithoutSchema(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.db")
	require.NoError(t, os.WriteFile(path, nil, 0o600))

	st, err := OpenExisting(path)
	require.NoError(t, err)
	defer func() { _ = st.Close() }()

	_, ok := st.Version()
	require.False(t, ok)

	n, err := st.TableCount("returns")
	require.NoError(t, err)
	require.Zero(t, n)
}

func TestForeignKeysEnforced(t *testing.T) {
	st := openTestStore(t)

	w, err := st.BeginWrite()
	require.NoError(t, err)
	defer func() { _ = w.Rollback() }()

	// No asset class with id 999 exists.
	_, err = w.EnsureFund("Orphan Fund", 999, nil)
	require.Error(t, err)
}

func TestEnsureAssetClassGetOrCreate(t *testing.T) {
	st := openTestStore(t)

	w, err := st.BeginWrite()
	require.NoError(t, err)
	defer func() { _ = w.Rollback() }()

	id1, err := w.EnsureAssetClass("US Equity")
	require.NoError(t, err)
	id2, err := w.EnsureAssetClass("  us equity ")
	require.NoError(t, err)
	require.Equal(t, id1, id2, "name resolution should be case-insensitive and trimmed")

	id3, err := w.EnsureAssetClass("Cash")
	require.NoError(t, err)
	require.NotEqual(t, id1, id3)
	require.NoError(t, w.Commit())

	n, err := st.TableCount("asset_classes")
	require.NoError(t, err)
	require.EqualValues(t, 2, n)
}

func TestUpsertReturnLastWins(t *testing.T) {
	st := openTestStore(t)

	w, err := st.BeginWrite()
	require.NoError(t, err)
	defer func() { _ = w.Rollback() }()

	acID, err := w.EnsureAssetClass("US Equity")
	require.NoError(t, err)
	fundID, err := w.EnsureFund("US Equity Fund", acID, nil)
	require.NoError(t, err)

	require.NoError(t, w.UpsertReturn("2020-01-31", fundID, 0.01))
	require.NoError(t, w.UpsertReturn("2020-01-31", fundID, 0.02))
	require.NoError(t, w.Commit())

	rows, err := st.AllReturns()
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.Equal(t, 0.02, rows[0].Value)
}

func TestContributionsAppendOnly(t *testing.T) {
	st := openTestStore(t)

	w, err := st.BeginWrite()
	require.NoError(t, err)
	defer func() { _ = w.Rollback() }()

	require.NoError(t, w.AppendContribution("2020-07-01", 1000, "gift"))
	require.NoError(t, w.AppendContribution("2020-07-01", 1000, "gift"))
	require.NoError(t, w.Commit())

	rows, err := st.Contributions()
	require.NoError(t, err)
	require.Len(t, rows, 2, "duplicate ledger entries are distinct rows")
}

func TestInsertContributionIfAbsent(t *testing.T) {
	st := openTestStore(t)

	w, err := st.BeginWrite()
	require.NoError(t, err)
	defer func() { _ = w.Rollback() }()

	ins, err := w.InsertContributionIfAbsent("2020-07-01", 2_000_000, "gift")
	require.NoError(t, err)
	require.True(t, ins)

	ins, err = w.InsertContributionIfAbsent("2020-07-01", 2_000_000, "gift")
	require.NoError(t, err)
	require.False(t, ins)
	require.NoError(t, w.Commit())

	n, err := st.TableCount("contributions")
	require.NoError(t, err)
	require.EqualValues(t, 1, n)
}

func TestSpendingPolicySingleCanonicalRow(t *testing.T) {
	st := openTestStore(t)

	w, err := st.BeginWrite()
	require.NoError(t, err)
	defer func() { _ = w.Rollback() }()

	require.NoError(t, w.InsertSpendingPolicy(PolicyName, 0.045, 3))
	// Insert-if-absent must not overwrite.
	require.NoError(t, w.InsertSpendingPolicy(PolicyName, 0.09, 9))
	require.NoError(t, w.Commit())

	p, ok, err := st.SpendingPolicy(PolicyName)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, 0.045, p.Rate)
	require.Equal(t, 3, p.SmoothingYears)

	w, err = st.BeginWrite()
	require.NoError(t, err)
	defer func() { _ = w.Rollback() }()
	require.NoError(t, w.ReplaceSpendingPolicy(0.05, 5))
	require.NoError(t, w.Commit())

	p, ok, err = st.SpendingPolicy(PolicyName)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, 0.05, p.Rate)

	n, err := st.TableCount("spending_policy")
	require.NoError(t, err)
	require.EqualValues(t, 1, n)
}
