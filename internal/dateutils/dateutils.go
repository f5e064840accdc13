// Package dateutils provides date parsing for bank-statement rows.
// Nigerian statements lead with DD/MM/YYYY, but issuers are inconsistent, so
// parsing tries a list of known layouts in priority order.
package dateutils

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// LayoutStatement is the canonical layout for dates in the response payload.
const LayoutStatement = "02/01/2006"

// StatementFormats lists layouts seen across issuer statements, most common
// first. DD/MM variants must come before any US-style layout so ambiguous
// values like 03/04/2025 resolve day-first.
var StatementFormats = []string{
	LayoutStatement,
	"02-01-2006",
	"02.01.2006",
	"2006-01-02",
	"02/01/06",
	"2-Jan-2006",
	"02-Jan-2006",
	"2 Jan 2006",
	"02 Jan 2006",
	"Jan 2, 2006",
}

var spaceRe = regexp.MustCompile(`\s+`)

// ParseDate parses a statement date string, trying each known layout.
func ParseDate(dateStr string) (time.Time, error) {
	dateStr = CleanDateString(dateStr)
	if dateStr == "" {
		return time.Time{}, fmt.Errorf("empty date")
	}

	for _, format := range StatementFormats {
		if t, err := time.Parse(format, dateStr); err == nil {
			return t, nil
		}
	}

	return time.Time{}, fmt.Errorf("unable to parse date: %s", dateStr)
}

// Normalize parses a date string and re-renders it in the canonical
// DD/MM/YYYY layout. Returns an error when no layout matches.
func Normalize(dateStr string) (string, error) {
	t, err := ParseDate(dateStr)
	if err != nil {
		return "", err
	}
	return t.Format(LayoutStatement), nil
}

// IsDate reports whether the string parses as a statement date.
func IsDate(dateStr string) bool {
	_, err := ParseDate(dateStr)
	return err == nil
}

// CleanDateString trims and collapses whitespace in a date string.
func CleanDateString(dateStr string) string {
	dateStr = strings.TrimSpace(dateStr)
	return spaceRe.ReplaceAllString(dateStr, " ")
}
