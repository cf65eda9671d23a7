package store

// SchemaVersion is stamped into schema_meta on every EnsureSchema call.
const SchemaVersion = "1"

const schemaSQL = `
CREATE TABLE IF NOT EXISTS asset_classes (
    id                   INTEGER PRIMARY KEY AUTOINCREMENT,
    name                 TEXT NOT NULL UNIQUE
);

CREATE TABLE IF NOT EXISTS benchmarks (
    id                   INTEGER PRIMARY KEY AUTOINCREMENT,
    name                 TEXT NOT NULL UNIQUE,
    ticker               TEXT
);

CREATE TABLE IF NOT EXISTS funds (
    id                   INTEGER PRIMARY KEY AUTOINCREMENT,
    name                 TEXT NOT NULL UNIQUE,
    asset_class_id       INTEGER NOT NULL REFERENCES asset_classes(id),
    benchmark_id         INTEGER REFERENCES benchmarks(id)
);

CREATE TABLE IF NOT EXISTS returns (
    asof                 TEXT NOT NULL,
    fund_id              INTEGER NOT NULL REFERENCES funds(id),
    monthly_return       REAL NOT NULL,
    PRIMARY KEY (asof, fund_id)
);

CREATE TABLE IF NOT EXISTS contributions (
    id                   INTEGER PRIMARY KEY AUTOINCREMENT,
    asof                 TEXT NOT NULL,
    amount               REAL NOT NULL,
    source               TEXT
);

CREATE TABLE IF NOT EXISTS target_allocations (
    asof                 TEXT NOT NULL,
    asset_class_id       INTEGER NOT NULL REFERENCES asset_classes(id),
    weight               REAL NOT NULL,
    PRIMARY KEY (asof, asset_class_id)
);

CREATE TABLE IF NOT EXISTS spending_policy (
    name                 TEXT PRIMARY KEY,
    rate                 REAL NOT NULL,
    smoothing_years      INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS inflation (
    asof                 TEXT PRIMARY KEY,
    index_level          REAL NOT NULL
);

CREATE TABLE IF NOT EXISTS schema_meta (
    key                  TEXT PRIMARY KEY,
    value                TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_returns_fund ON returns(fund_id);
CREATE INDEX IF NOT EXISTS idx_contributions_asof ON contributions(asof);
`

// DomainTables lists the eight non-meta tables in a stable reporting order.
var DomainTables = []string{
	"asset_classes",
	"benchmarks",
	"funds",
	"returns",
	"contributions",
	"target_allocations",
	"spending_policy",
	"inflation",
}
