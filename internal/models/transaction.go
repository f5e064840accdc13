// Package models defines the data types shared across the extraction
// pipeline: the transaction row, the statement summary, and the response
// payload returned to the calling service.
package models

import (
	"fmt"

	"github.com/shopspring/decimal"
)

func init() {
	// The calling service expects plain JSON numbers for monetary fields,
	// not quoted strings.
	decimal.MarshalJSONWithoutQuotes = true
}

// Transaction is one reconstructed statement row. Immutable once produced:
// the row builder or the refiner creates it, the summary builder only reads it.
type Transaction struct {
	Date        string          `json:"date" csv:"Date"`
	ValueDate   string          `json:"value_date" csv:"Value Date"`
	Description string          `json:"description" csv:"Description"`
	Debit       decimal.Decimal `json:"debit" csv:"Debit"`
	Credit      decimal.Decimal `json:"credit" csv:"Credit"`
	Balance     decimal.Decimal `json:"balance" csv:"Balance"`
}

// IsDebit reports whether the row reduces the balance.
func (t Transaction) IsDebit() bool {
	return t.Debit.IsPositive()
}

// IsCredit reports whether the row increases the balance.
func (t Transaction) IsCredit() bool {
	return t.Credit.IsPositive()
}

// Validate checks the row invariants: a date is present, amounts are
// non-negative, and exactly one of debit/credit is non-zero.
func (t Transaction) Validate() error {
	if t.Date == "" {
		return fmt.Errorf("transaction has no date")
	}
	if t.Debit.IsNegative() {
		return fmt.Errorf("debit must be non-negative, got %s", t.Debit)
	}
	if t.Credit.IsNegative() {
		return fmt.Errorf("credit must be non-negative, got %s", t.Credit)
	}
	if t.Debit.IsPositive() && t.Credit.IsPositive() {
		return fmt.Errorf("row is both debit (%s) and credit (%s)", t.Debit, t.Credit)
	}
	if t.Debit.IsZero() && t.Credit.IsZero() {
		return fmt.Errorf("row is neither debit nor credit")
	}
	return nil
}
