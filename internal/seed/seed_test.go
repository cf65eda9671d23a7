package seed

import (
	"math"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/endowlab/endowdb/internal/store"
)

func openTestStore(t *testing.T) *store.Store {
	t.Helper()
	st, err := store.Open(filepath.Join(t.TempDir(), "endowment.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	return st
}

var testNow = time.Date(2026, time.August, 31, 12, 0, 0, 0, time.UTC)

func TestMonthEndsLeapYear(t *testing.T) {
	ends := monthEnds(2020, 2020, testNow)
	require.Len(t, ends, 12)

	for i, end := range ends {
		require.Equal(t, 2020, end.Year())
		require.Equal(t, time.Month(i+1), end.Month())
		// True last calendar day: the next day is the 1st.
		require.Equal(t, 1, end.AddDate(0, 0, 1).Day(), "not a month end: %s", end)
		if i > 0 {
			require.True(t, ends[i-1].Before(end), "month ends not ascending")
		}
	}
	require.Equal(t, "2020-02-29", ends[1].Format(dateFormat))
	require.Equal(t, "2020-12-31", ends[11].Format(dateFormat))
}

func TestMonthEndsOpenEnded(t *testing.T) {
	now := time.Date(2021, time.March, 10, 0, 0, 0, 0, time.UTC)
	ends := monthEnds(2020, 0, now)
	require.Len(t, ends, 14, "2020-01 through 2021-02")
	require.Equal(t, "2021-02-28", ends[len(ends)-1].Format(dateFormat))
}

func TestMonthEndsYearRollover(t *testing.T) {
	ends := monthEnds(2019, 2021, testNow)
	require.Len(t, ends, 36)
	require.Equal(t, "2019-12-31", ends[11].Format(dateFormat))
	require.Equal(t, "2020-01-31", ends[12].Format(dateFormat))
}

func TestRunDeterministic(t *testing.T) {
	p := Params{StartYear: 2006, EndYear: 2007, Seed: 42}

	st1 := openTestStore(t)
	st2 := openTestStore(t)

	res1, err := Run(st1, p, testNow)
	require.NoError(t, err)
	res2, err := Run(st2, p, testNow)
	require.NoError(t, err)
	require.Equal(t, res1, res2)

	r1, err := st1.AllReturns()
	require.NoError(t, err)
	r2, err := st2.AllReturns()
	require.NoError(t, err)
	require.Equal(t, r1, r2, "returns diverge for identical params")

	i1, err := st1.InflationSeries()
	require.NoError(t, err)
	i2, err := st2.InflationSeries()
	require.NoError(t, err)
	require.Equal(t, i1, i2, "inflation diverges for identical params")
}

func TestRunIdempotent(t *testing.T) {
	st := openTestStore(t)
	p := Params{StartYear: 2010, EndYear: 2011, Seed: 7}

	_, err := Run(st, p, testNow)
	require.NoError(t, err)
	before, err := st.AllReturns()
	require.NoError(t, err)

	res, err := Run(st, p, testNow)
	require.NoError(t, err)
	require.Zero(t, res.Contributions, "re-seed must not duplicate the gift schedule")

	after, err := st.AllReturns()
	require.NoError(t, err)
	require.Equal(t, before, after)

	n, err := st.TableCount("contributions")
	require.NoError(t, err)
	require.EqualValues(t, 2, n, "one gift per year 2010-2011")

	for _, table := range []string{"asset_classes", "benchmarks", "funds"} {
		n, err := st.TableCount(table)
		require.NoError(t, err)
		require.EqualValues(t, 6, n, "table %s", table)
	}
}

func TestRunClipsReturns(t *testing.T) {
	st := openTestStore(t)

	// A long range gives the tails plenty of chances.
	_, err := Run(st, Params{StartYear: 2000, EndYear: 2020, Seed: 1}, testNow)
	require.NoError(t, err)

	rows, err := st.AllReturns()
	require.NoError(t, err)
	require.NotEmpty(t, rows)
	for _, r := range rows {
		require.GreaterOrEqual(t, r.Value, -returnClip)
		require.LessOrEqual(t, r.Value, returnClip)
	}
}

func TestAllocationSnapshotSumsToOne(t *testing.T) {
	st := openTestStore(t)

	_, err := Run(st, Params{StartYear: 2019, EndYear: 2019, Seed: 42}, testNow)
	require.NoError(t, err)

	weights, err := st.AllocationWeights(allocationAsOf)
	require.NoError(t, err)
	require.Len(t, weights, 6)

	var sum float64
	for _, w := range weights {
		sum += w
	}
	require.InDelta(t, 1.0, sum, 1e-9)
}

func TestGiftSchedule(t *testing.T) {
	st := openTestStore(t)

	// Start before the gift floor: no gifts before 2010.
	res, err := Run(st, Params{StartYear: 2006, EndYear: 2012, Seed: 42}, testNow)
	require.NoError(t, err)
	require.Equal(t, 3, res.Contributions)

	rows, err := st.Contributions()
	require.NoError(t, err)
	require.Len(t, rows, 3)
	for i, want := range []string{"2010-07-01", "2011-07-01", "2012-07-01"} {
		require.Equal(t, want, rows[i].AsOf)
		require.Equal(t, 2_000_000.0, rows[i].Amount)
		require.Equal(t, "gift", rows[i].Source)
	}
}

func TestInflationCompoundsFromBase(t *testing.T) {
	st := openTestStore(t)

	_, err := Run(st, Params{StartYear: 2020, EndYear: 2020, Seed: 42}, testNow)
	require.NoError(t, err)

	series, err := st.InflationSeries()
	require.NoError(t, err)
	require.Len(t, series, 12)

	// Monthly draws are small, so each step stays near the prior level
	// and the whole year stays in a loose band around the base.
	prev := indexStart
	for _, pt := range series {
		step := pt.Level/prev - 1
		require.Less(t, math.Abs(step), 0.05, "implausible monthly inflation step at %s", pt.AsOf)
		prev = pt.Level
	}
}

func TestRunRejectsBadRange(t *testing.T) {
	st := openTestStore(t)

	_, err := Run(st, Params{StartYear: 2020, EndYear: 2019, Seed: 1}, testNow)
	require.Error(t, err)

	_, err = Run(st, Params{StartYear: 0, Seed: 1}, testNow)
	require.Error(t, err)
}
