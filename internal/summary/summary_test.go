package summary

import (
	"errors"
	"fmt"
	"testing"

	"taxmaster/statement-extractor/internal/extracterror"
	"taxmaster/statement-extractor/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tx(debit, credit, balance float64) models.Transaction {
	return models.Transaction{
		Date:    "01/12/2025",
		Debit:   decimal.NewFromFloat(debit),
		Credit:  decimal.NewFromFloat(credit),
		Balance: decimal.NewFromFloat(balance),
	}
}

func TestBuildThreeRowStatement(t *testing.T) {
	transactions := []models.Transaction{
		tx(100, 0, 900),
		tx(0, 50, 950),
		tx(25, 0, 925),
	}

	s, err := Build(transactions)
	require.NoError(t, err)

	assert.Equal(t, 3, s.TotalRows)
	assert.Equal(t, 2, s.DebitRows)
	assert.Equal(t, 1, s.CreditRows)
	assert.True(t, decimal.NewFromFloat(125).Equal(s.TotalDebits), "total debits: %s", s.TotalDebits)
	assert.True(t, decimal.NewFromFloat(50).Equal(s.TotalCredits), "total credits: %s", s.TotalCredits)
	assert.True(t, decimal.NewFromFloat(-75).Equal(s.NetCashFlow), "net cash flow: %s", s.NetCashFlow)
	assert.True(t, decimal.NewFromFloat(925).Equal(s.ClosingBalance), "closing balance: %s", s.ClosingBalance)
	assert.Equal(t, models.DirectionDeficit, s.Direction)
}

func TestBuildEmptyStatement(t *testing.T) {
	_, err := Build(nil)

	var empty *extracterror.EmptyStatementError
	assert.True(t, errors.As(err, &empty))
}

func TestBuildInvariants(t *testing.T) {
	// Many rows with cent amounts that would drift under float64.
	var transactions []models.Transaction
	for i := 0; i < 500; i++ {
		if i%3 == 0 {
			transactions = append(transactions, tx(0, 0.1, 1000))
		} else {
			transactions = append(transactions, tx(0.1, 0, 1000))
		}
	}

	s, err := Build(transactions)
	require.NoError(t, err)

	assert.Equal(t, len(transactions), s.TotalRows)
	assert.Equal(t, s.TotalRows, s.DebitRows+s.CreditRows)
	assert.True(t, s.NetCashFlow.Equal(s.TotalCredits.Sub(s.TotalDebits)))

	// 167 credits of 0.10 and 333 debits of 0.10: exactly -16.60.
	assert.Equal(t, "-16.6", s.NetCashFlow.String())
}

func TestBuildOverdrawnClosingBalance(t *testing.T) {
	transactions := []models.Transaction{
		tx(0, 1000, 1000),
		tx(6000, 0, -5000),
	}

	s, err := Build(transactions)
	require.NoError(t, err)

	assert.True(t, decimal.NewFromInt(-5000).Equal(s.ClosingBalance), "closing balance: %s", s.ClosingBalance)
	assert.Equal(t, models.DirectionDeficit, s.Direction)
}

func TestBuildDirectionRule(t *testing.T) {
	tests := []struct {
		name      string
		rows      []models.Transaction
		direction string
	}{
		{"net positive", []models.Transaction{tx(0, 100, 100)}, models.DirectionSurplus},
		{"net zero", []models.Transaction{tx(50, 0, 0), tx(0, 50, 50)}, models.DirectionSurplus},
		{"net negative", []models.Transaction{tx(100, 0, -100)}, models.DirectionDeficit},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s, err := Build(tc.rows)
			require.NoError(t, err)
			assert.Equal(t, tc.direction, s.Direction)
		})
	}
}

func TestBuildIsIdempotent(t *testing.T) {
	transactions := []models.Transaction{
		tx(100, 0, 900),
		tx(0, 50, 950),
		tx(25, 0, 925),
	}

	first, err := Build(transactions)
	require.NoError(t, err)

	// Re-summarizing the same list must yield an identical summary.
	second, err := Build(transactions)
	require.NoError(t, err)

	assert.Equal(t, fmt.Sprintf("%+v", first), fmt.Sprintf("%+v", second))
}
