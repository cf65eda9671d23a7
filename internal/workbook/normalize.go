package workbook

import (
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

const dateFormat = "2006-01-02"

// dateLayouts are tried in order against trimmed cell text. Spreadsheet
// exports are wildly inconsistent about dates; this list covers what
// Excel and LibreOffice emit under their common locale formats.
var dateLayouts = []string{
	"2006-01-02",
	"2006/01/02",
	"01/02/2006",
	"1/2/2006",
	"01-02-2006",
	"01/02/06",
	"1/2/06",
	"01-02-06",
	"Jan 2, 2006",
	"January 2, 2006",
	"2-Jan-06",
	"2-Jan-2006",
	"2006-01-02 15:04:05",
	time.RFC3339,
}

// excelEpoch is day zero of the 1900 date system. Serial 60 is the
// fictional 1900-02-29, so anything at or above it lands on the right
// day with this epoch.
var excelEpoch = time.Date(1899, time.December, 30, 0, 0, 0, 0, time.UTC)

// normalizeDate canonicalizes any recognizable date representation to
// YYYY-MM-DD. Unparseable input is returned verbatim: the importer is
// best-effort and a bad date is not the row's problem to report.
func normalizeDate(raw string) string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return s
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format(dateFormat)
		}
	}
	// Excel serial date: whole days since the 1900 epoch.
	if serial, err := strconv.ParseFloat(s, 64); err == nil && serial >= 60 && serial < 300000 {
		return excelEpoch.AddDate(0, 0, int(serial)).Format(dateFormat)
	}
	return s
}

var (
	decimalOne     = decimal.NewFromInt(1)
	decimalHundred = decimal.NewFromInt(100)
)

// normalizeRate parses a return / weight / rate cell into a decimal
// fraction. A trailing % divides by 100. A bare value in (1, 100] is
// taken as stated-in-percent and also divided by 100; values in (1, 100]
// that were genuinely decimal are indistinguishable from mis-scaled
// percents, and the heuristic deliberately favors the percent reading.
func normalizeRate(raw string) (float64, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, false
	}
	if strings.HasSuffix(s, "%") {
		d, err := decimal.NewFromString(strings.TrimSpace(strings.TrimSuffix(s, "%")))
		if err != nil {
			return 0, false
		}
		return d.Div(decimalHundred).InexactFloat64(), true
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, false
	}
	if d.GreaterThan(decimalOne) && d.LessThanOrEqual(decimalHundred) {
		d = d.Div(decimalHundred)
	}
	return d.InexactFloat64(), true
}

// parseNumber parses a plain numeric cell (amounts, index levels) with no
// percent heuristic. Thousands separators are tolerated.
func parseNumber(raw string) (float64, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, false
	}
	s = strings.ReplaceAll(s, ",", "")
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, false
	}
	return d.InexactFloat64(), true
}

// parseInt parses an integer cell, tolerating a decimal rendering like "3.0".
func parseInt(raw string) (int, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, false
	}
	if n, err := strconv.Atoi(s); err == nil {
		return n, true
	}
	d, err := decimal.NewFromString(s)
	if err != nil || !d.IsInteger() {
		return 0, false
	}
	return int(d.IntPart()), true
}
