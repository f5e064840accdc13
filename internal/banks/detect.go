// Package banks holds the issuer knowledge the pipeline needs: best-effort
// bank detection from statement header text, and per-issuer column
// calibration used by the row builder.
package banks

import (
	"regexp"
	"strings"
)

// UnknownBank is returned when no issuer marker matches.
const UnknownBank = "Unknown"

// issuerMarkers maps lowercase substrings found in statement headers to
// issuer names. Ordered: more specific markers ("access bank") must win over
// shorter ones that could appear inside unrelated narration.
var issuerMarkers = []struct {
	marker string
	name   string
}{
	{"zenith", "Zenith Bank"},
	{"ecobank", "Ecobank"},
	{"opay", "OPay"},
	{"guaranty", "GTBank"},
	{"gtbank", "GTBank"},
	{"access bank", "Access Bank"},
	{"united bank", "UBA"},
	{"uba", "UBA"},
	{"first bank", "First Bank"},
	{"fidelity", "Fidelity Bank"},
	{"stanbic", "Stanbic IBTC"},
	{"kuda", "Kuda Bank"},
	{"moniepoint", "Moniepoint"},
	{"palmpay", "PalmPay"},
	{"wema", "Wema Bank"},
	{"fcmb", "FCMB"},
	{"sterling", "Sterling Bank"},
	{"union bank", "Union Bank"},
	{"polaris", "Polaris Bank"},
	{"jaiz", "Jaiz Bank"},
	{"keystone", "Keystone Bank"},
	{"heritage", "Heritage Bank"},
	{"suntrust", "SunTrust Bank"},
}

// Detect classifies the issuer from statement text, usually the first page.
// Best effort only: the result is informational and carries no exactness
// guarantee, unlike the monetary totals.
func Detect(text string) string {
	lower := strings.ToLower(text)
	for _, m := range issuerMarkers {
		if strings.Contains(lower, m.marker) {
			return m.name
		}
	}
	return UnknownBank
}

// Column header keyword patterns shared with the row builder. Reading the
// actual header text beats assuming fixed positions, since no universal
// layout exists across issuers.
var (
	DateKeyword    = regexp.MustCompile(`(?i)\bdate\b`)
	DescKeyword    = regexp.MustCompile(`(?i)\b(description|narration|particulars|details|remarks|ref)\b`)
	DebitKeyword   = regexp.MustCompile(`(?i)\b(debit|dr\.?|withdrawal[s]?|paid out)\b`)
	CreditKeyword  = regexp.MustCompile(`(?i)\b(credit|cr\.?|deposit[s]?|paid in)\b`)
	BalanceKeyword = regexp.MustCompile(`(?i)\b(balance|bal\.?|running)\b`)
)

// IsHeaderLine reports whether the joined line text looks like a statement
// column header: a date keyword plus at least one amount-column keyword.
func IsHeaderLine(text string) bool {
	return DateKeyword.MatchString(text) &&
		(DebitKeyword.MatchString(text) || CreditKeyword.MatchString(text))
}
