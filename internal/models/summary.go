package models

import "github.com/shopspring/decimal"

// Direction labels for StatementSummary.Direction.
const (
	DirectionSurplus = "surplus"
	DirectionDeficit = "deficit"
)

// StatementSummary aggregates a transaction list. Derived data only; it has
// no lifecycle of its own.
type StatementSummary struct {
	TotalRows      int             `json:"total_rows"`
	DebitRows      int             `json:"debit_rows"`
	CreditRows     int             `json:"credit_rows"`
	TotalDebits    decimal.Decimal `json:"total_debits"`
	TotalCredits   decimal.Decimal `json:"total_credits"`
	NetCashFlow    decimal.Decimal `json:"net_cash_flow"`
	ClosingBalance decimal.Decimal `json:"closing_balance"`
	Direction      string          `json:"direction"`
}
