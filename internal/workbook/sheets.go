package workbook

// sheetDef names one recognized sheet and its header row. The slice order
// is the processing order: reference sheets first, so names they declare
// are pre-seeded before the time-series sheets resolve them.
type sheetDef struct {
	Name    string
	Headers []string
}

var sheetDefs = []sheetDef{
	{"asset_classes", []string{"name"}},
	{"benchmarks", []string{"name", "ticker"}},
	{"funds", []string{"name", "asset_class", "benchmark"}},
	{"returns", []string{"asof", "fund", "monthly_return"}},
	{"contributions", []string{"asof", "amount", "source"}},
	{"target_allocations", []string{"asof", "asset_class", "weight"}},
	{"spending_policy", []string{"name", "rate", "smoothing_years"}},
	{"inflation", []string{"asof", "index_level"}},
}

// fallbackAssetClass is assigned to funds auto-created from a returns
// sheet, where no asset class column exists but the reference is NOT NULL.
const fallbackAssetClass = "Unclassified"
