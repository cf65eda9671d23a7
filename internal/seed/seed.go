// Package seed populates a store with a deterministic synthetic history:
// six fund sleeves with monthly returns drawn from fixed annualized
// assumptions, a cumulative inflation index, an allocation snapshot, a
// spending policy, and an annual gift schedule.
package seed

import (
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/endowlab/endowdb/internal/store"
)

// Params controls one seeding run.
type Params struct {
	StartYear int
	// EndYear bounds generation at that year's December month-end.
	// Zero means "through the last fully completed calendar month".
	EndYear int
	Seed    int64
}

// Result summarizes what a run wrote.
type Result struct {
	Months        int
	Returns       int
	Contributions int
	FirstMonthEnd string
	LastMonthEnd  string
}

const dateFormat = "2006-01-02"

// Run seeds the store. The random source is seeded once from Params.Seed
// and consumed in a fixed order (all six funds for a month-end, then that
// month's inflation draw), so identical params always produce identical
// tables. now only bounds the open-ended date range; pass time.Now()
// outside tests.
func Run(st *store.Store, p Params, now time.Time) (Result, error) {
	if p.StartYear <= 0 {
		return Result{}, fmt.Errorf("invalid start year %d", p.StartYear)
	}
	if p.EndYear != 0 && p.EndYear < p.StartYear {
		return Result{}, fmt.Errorf("end year %d precedes start year %d", p.EndYear, p.StartYear)
	}

	ends := monthEnds(p.StartYear, p.EndYear, now)

	w, err := st.BeginWrite()
	if err != nil {
		return Result{}, err
	}
	defer func() { _ = w.Rollback() }()

	// Reference rows, allocation snapshot, spending policy. All
	// insert-if-absent: pre-existing rows are never rewritten.
	fundIDs := make([]int64, len(fundSpecs))
	for i, fs := range fundSpecs {
		acID, err := w.EnsureAssetClass(fs.AssetClass)
		if err != nil {
			return Result{}, err
		}
		bmID, err := w.EnsureBenchmark(fs.Benchmark, fs.Ticker)
		if err != nil {
			return Result{}, err
		}
		fundIDs[i], err = w.EnsureFund(fs.Fund, acID, &bmID)
		if err != nil {
			return Result{}, err
		}
		if err := w.InsertTargetAllocation(allocationAsOf, acID, fs.Weight); err != nil {
			return Result{}, err
		}
	}
	if err := w.InsertSpendingPolicy(store.PolicyName, spendingRate, smoothingYears); err != nil {
		return Result{}, err
	}

	// Time series. One shared generator, fixed draw order.
	rng := rand.New(rand.NewSource(p.Seed))
	index := indexStart
	for _, end := range ends {
		asof := end.Format(dateFormat)
		for i, fs := range fundSpecs {
			r := monthlyDraw(rng, fs.AnnualMean, fs.AnnualStdev)
			r = clip(r, -returnClip, returnClip)
			if err := w.UpsertReturn(asof, fundIDs[i], r); err != nil {
				return Result{}, err
			}
		}
		infl := monthlyDraw(rng, inflationMean, inflationStdev)
		index *= 1 + infl
		if err := w.UpsertInflation(asof, index); err != nil {
			return Result{}, err
		}
	}

	// Gift schedule: one inflow per July 1 from max(startYear, 2010)
	// through the end year.
	res := Result{Months: len(ends), Returns: len(ends) * len(fundSpecs)}
	if len(ends) > 0 {
		res.FirstMonthEnd = ends[0].Format(dateFormat)
		res.LastMonthEnd = ends[len(ends)-1].Format(dateFormat)

		firstGift := p.StartYear
		if firstGift < giftFloorYear {
			firstGift = giftFloorYear
		}
		for year := firstGift; year <= ends[len(ends)-1].Year(); year++ {
			asof := time.Date(year, time.July, 1, 0, 0, 0, 0, time.UTC).Format(dateFormat)
			inserted, err := w.InsertContributionIfAbsent(asof, giftAmount, giftSource)
			if err != nil {
				return Result{}, err
			}
			if inserted {
				res.Contributions++
			}
		}
	}

	if err := w.Commit(); err != nil {
		return Result{}, fmt.Errorf("committing seed: %w", err)
	}
	return res, nil
}

// monthlyDraw samples a normal with annualized parameters converted to
// monthly terms: mean/12 and stddev/sqrt(12).
func monthlyDraw(rng *rand.Rand, annualMean, annualStdev float64) float64 {
	return annualMean/12 + rng.NormFloat64()*annualStdev/math.Sqrt(12)
}

func clip(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// monthEnds enumerates calendar month-end dates from startYear-01 through
// either endYear-12 or the last fully completed month relative to now,
// both bounds inclusive. Day 0 of the following month is each month's
// true last calendar day, so leap Februaries come out right.
func monthEnds(startYear, endYear int, now time.Time) []time.Time {
	var last time.Time
	if endYear > 0 {
		last = monthEnd(endYear, time.December)
	} else {
		// Last day of the month before now.
		last = time.Date(now.Year(), now.Month(), 0, 0, 0, 0, 0, time.UTC)
	}

	var out []time.Time
	y, m := startYear, time.January
	for {
		end := monthEnd(y, m)
		if end.After(last) {
			return out
		}
		out = append(out, end)
		m++
		if m > time.December {
			m = time.January
			y++
		}
	}
}

func monthEnd(year int, month time.Month) time.Time {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC)
}
