// Package rowbuilder turns positioned text fragments into candidate
// transaction rows. Fragments are clustered into lines by vertical position,
// assigned to semantic columns by horizontal calibration, and gated on a
// parsable date plus at least one parsable amount. Lines failing the gates
// are statement noise (headers, footers, address blocks) and are dropped.
package rowbuilder

import (
	"sort"
	"strings"

	"taxmaster/statement-extractor/internal/banks"
	"taxmaster/statement-extractor/internal/currencyutils"
	"taxmaster/statement-extractor/internal/dateutils"
	"taxmaster/statement-extractor/internal/models"
	"taxmaster/statement-extractor/internal/pdfreader"

	"github.com/shopspring/decimal"
)

// DeferredRow is a line that looked like a transaction but could not be
// resolved without guessing, so it goes to the refiner instead. Index is the
// number of accepted rows preceding this line, which lets the caller splice
// refined rows back in document order.
type DeferredRow struct {
	Page  int
	Index int
	Text  string
}

// Result is the outcome of reconstructing one document.
type Result struct {
	Rows     []models.Transaction
	Deferred []DeferredRow
	Dropped  int
}

// line is one clustered row of fragments, left-to-right.
type line struct {
	page  int
	frags []pdfreader.Fragment
}

func (l line) text() string {
	parts := make([]string, 0, len(l.frags))
	for _, f := range l.frags {
		parts = append(parts, f.Text)
	}
	return strings.Join(parts, " ")
}

// Reconstruct builds transaction rows from the fragment sequence, preserving
// document order. The calibration is the issuer's static table; when a page
// carries a recognizable column-header row, a calibration derived from that
// header overrides the static one for the rest of the document.
func Reconstruct(frags []pdfreader.Fragment, cal banks.Calibration) Result {
	lines := clusterLines(frags, cal.LineTolerance)

	var result Result
	active := cal

	for _, ln := range lines {
		text := ln.text()

		if banks.IsHeaderLine(text) {
			if derived, ok := calibrateFromHeader(ln, cal.LineTolerance); ok {
				active = derived
			}
			continue
		}

		tx, verdict := buildRow(ln, active)
		switch verdict {
		case rowAccepted:
			result.Rows = append(result.Rows, tx)
		case rowDeferred:
			result.Deferred = append(result.Deferred, DeferredRow{
				Page:  ln.page,
				Index: len(result.Rows),
				Text:  text,
			})
		case rowDropped:
			result.Dropped++
		}
	}

	return result
}

// clusterLines groups fragments into lines: page-ascending, then top-to-bottom
// within a page (descending Y in PDF space), fragments left-to-right.
func clusterLines(frags []pdfreader.Fragment, tolerance float64) []line {
	if tolerance <= 0 {
		tolerance = 5
	}

	sorted := make([]pdfreader.Fragment, len(frags))
	copy(sorted, frags)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Page != sorted[j].Page {
			return sorted[i].Page < sorted[j].Page
		}
		if sorted[i].Y != sorted[j].Y {
			return sorted[i].Y > sorted[j].Y
		}
		return sorted[i].X < sorted[j].X
	})

	var lines []line
	for _, f := range sorted {
		if n := len(lines); n > 0 {
			last := &lines[n-1]
			if last.page == f.Page && abs(last.frags[0].Y-f.Y) <= tolerance {
				last.frags = append(last.frags, f)
				continue
			}
		}
		lines = append(lines, line{page: f.Page, frags: []pdfreader.Fragment{f}})
	}

	for i := range lines {
		sort.SliceStable(lines[i].frags, func(a, b int) bool {
			return lines[i].frags[a].X < lines[i].frags[b].X
		})
	}

	return lines
}

type verdict int

const (
	rowDropped verdict = iota
	rowAccepted
	rowDeferred
)

// buildRow assigns a line's fragments to columns and applies the acceptance
// gates.
func buildRow(ln line, cal banks.Calibration) (models.Transaction, verdict) {
	cells := map[string][]string{}
	for _, f := range ln.frags {
		col := cal.ColumnFor(f.Center())
		cells[col] = append(cells[col], f.Text)
	}

	cell := func(col string) string {
		return strings.Join(cells[col], " ")
	}

	// Gate 1: the date column must hold a date.
	date, err := dateutils.Normalize(cell(banks.ColDate))
	if err != nil {
		return models.Transaction{}, rowDropped
	}

	valueDate := date
	if vd, err := dateutils.Normalize(cell(banks.ColValueDate)); err == nil {
		valueDate = vd
	}

	debit := parseMagnitude(cell(banks.ColDebit))
	credit := parseMagnitude(cell(banks.ColCredit))

	// Gate 2: at least one amount column must parse non-zero.
	switch {
	case debit.IsPositive() && credit.IsPositive():
		// Ambiguous: both sides carry numeric content. Never guess;
		// the refiner gets the raw line instead.
		return models.Transaction{}, rowDeferred
	case debit.IsZero() && credit.IsZero():
		return models.Transaction{}, rowDropped
	}

	return models.Transaction{
		Date:        date,
		ValueDate:   valueDate,
		Description: cell(banks.ColDescription),
		Debit:       debit,
		Credit:      credit,
		Balance:     parseSigned(cell(banks.ColBalance)),
	}, rowAccepted
}

// parseMagnitude parses a debit or credit cell, treating anything unparsable
// as empty. These columns are magnitudes, so the sign is discarded.
func parseMagnitude(s string) decimal.Decimal {
	return parseSigned(s).Abs()
}

// parseSigned parses an amount cell keeping its sign. The balance column is
// signed: an overdrawn account prints a negative or parenthesized balance.
func parseSigned(s string) decimal.Decimal {
	if !currencyutils.IsAmount(s) {
		return decimal.Zero
	}
	amount, err := currencyutils.ParseAmount(s)
	if err != nil {
		return decimal.Zero
	}
	return amount
}

// calibrateFromHeader derives column bands from an actual header row. Band
// edges sit at the midpoints between adjacent header-word centers, so the
// derived calibration works for any issuer layout the static table has never
// seen.
func calibrateFromHeader(ln line, tolerance float64) (banks.Calibration, bool) {
	type namedCenter struct {
		name   string
		center float64
	}

	var centers []namedCenter
	seen := map[string]bool{}
	add := func(name string, c float64) {
		if !seen[name] {
			seen[name] = true
			centers = append(centers, namedCenter{name: name, center: c})
		}
	}

	for _, f := range ln.frags {
		switch {
		case banks.DateKeyword.MatchString(f.Text):
			if !seen[banks.ColDate] {
				add(banks.ColDate, f.Center())
			} else {
				// A second date-labelled column is the value date.
				add(banks.ColValueDate, f.Center())
			}
		case banks.DescKeyword.MatchString(f.Text):
			add(banks.ColDescription, f.Center())
		case banks.DebitKeyword.MatchString(f.Text):
			add(banks.ColDebit, f.Center())
		case banks.CreditKeyword.MatchString(f.Text):
			add(banks.ColCredit, f.Center())
		case banks.BalanceKeyword.MatchString(f.Text):
			add(banks.ColBalance, f.Center())
		}
	}

	if !seen[banks.ColDate] || (!seen[banks.ColDebit] && !seen[banks.ColCredit]) {
		return banks.Calibration{}, false
	}

	sort.Slice(centers, func(i, j int) bool { return centers[i].center < centers[j].center })

	columns := make(map[string]banks.Range, len(centers))
	for i, nc := range centers {
		min := 0.0
		if i > 0 {
			min = (centers[i-1].center + nc.center) / 2
		}
		max := 10000.0
		if i < len(centers)-1 {
			max = (nc.center + centers[i+1].center) / 2
		}
		columns[nc.name] = banks.Range{Min: min, Max: max}
	}

	return banks.Calibration{LineTolerance: tolerance, Columns: columns}, true
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
