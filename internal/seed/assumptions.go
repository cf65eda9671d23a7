package seed

// fundSpec fixes one fund sleeve: its asset class, benchmark pairing,
// annualized return assumptions, and target weight in the 2019-06-30
// allocation snapshot.
type fundSpec struct {
	Fund        string
	AssetClass  string
	Benchmark   string
	Ticker      string
	AnnualMean  float64
	AnnualStdev float64
	Weight      float64
}

// fundSpecs is the fixed six-sleeve lineup. Order matters: the random
// source is consumed in this order for every month-end, so reordering
// changes generated output.
var fundSpecs = []fundSpec{
	{"US Equity Fund", "US Equity", "S&P 500", "SPX", 0.070, 0.15, 0.30},
	{"International Equity Fund", "International Equity", "MSCI ACWI ex US", "ACWX", 0.065, 0.17, 0.20},
	{"Fixed Income Fund", "Fixed Income", "Bloomberg US Aggregate", "AGG", 0.035, 0.06, 0.20},
	{"Real Assets Fund", "Real Assets", "NCREIF Property", "NPI", 0.050, 0.12, 0.10},
	{"Private Equity Fund", "Private Equity", "Cambridge US Private Equity", "CAPE", 0.090, 0.25, 0.15},
	{"Cash Fund", "Cash", "FTSE 3-Month T-Bill", "BIL", 0.020, 0.01, 0.05},
}

const (
	// allocationAsOf is the single target-allocation snapshot date.
	allocationAsOf = "2019-06-30"

	// Canonical spending rule: 4.5% of a 3-year smoothed average.
	spendingRate   = 0.045
	smoothingYears = 3

	// Annual gift inflow, booked July 1 of each year from giftFloorYear on.
	giftAmount    = 2_000_000.0
	giftSource    = "gift"
	giftFloorYear = 2010

	// Inflation index assumptions, annualized.
	inflationMean  = 0.025
	inflationStdev = 0.01
	indexStart     = 100.0

	// Hard clip applied to every generated monthly return.
	returnClip = 0.35
)
