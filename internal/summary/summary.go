// Package summary aggregates a transaction list into the statement summary.
// All arithmetic is decimal; the exact closing-balance guarantee in the
// response contract depends on it.
package summary

import (
	"taxmaster/statement-extractor/internal/extracterror"
	"taxmaster/statement-extractor/internal/models"

	"github.com/shopspring/decimal"
)

// Build computes the summary for an ordered transaction list. The list must
// be in document order: the closing balance is taken from the last row.
// Returns EmptyStatementError for an empty list.
func Build(transactions []models.Transaction) (*models.StatementSummary, error) {
	if len(transactions) == 0 {
		return nil, &extracterror.EmptyStatementError{}
	}

	totalDebits := decimal.Zero
	totalCredits := decimal.Zero
	debitRows := 0
	creditRows := 0

	for _, tx := range transactions {
		totalDebits = totalDebits.Add(tx.Debit)
		totalCredits = totalCredits.Add(tx.Credit)
		if tx.IsDebit() {
			debitRows++
		} else if tx.IsCredit() {
			creditRows++
		}
	}

	netCashFlow := totalCredits.Sub(totalDebits)

	direction := models.DirectionSurplus
	if netCashFlow.IsNegative() {
		direction = models.DirectionDeficit
	}

	return &models.StatementSummary{
		TotalRows:      len(transactions),
		DebitRows:      debitRows,
		CreditRows:     creditRows,
		TotalDebits:    totalDebits,
		TotalCredits:   totalCredits,
		NetCashFlow:    netCashFlow,
		ClosingBalance: transactions[len(transactions)-1].Balance,
		Direction:      direction,
	}, nil
}
