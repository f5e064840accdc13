package banks

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetect(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		expected string
	}{
		{"zenith header", "ZENITH BANK PLC\nStatement of Account", "Zenith Bank"},
		{"ecobank header", "Ecobank Nigeria Limited - Account Statement", "Ecobank"},
		{"guaranty trust", "Guaranty Trust Bank\nAccount Statement", "GTBank"},
		{"gtbank shorthand", "gtbank statement of account", "GTBank"},
		{"access bank", "ACCESS BANK PLC", "Access Bank"},
		{"united bank for africa", "United Bank for Africa", "UBA"},
		{"opay wallet", "OPay Digital Services statement", "OPay"},
		{"no marker", "Statement of Account\nPeriod: 01/01/2025 - 31/01/2025", UnknownBank},
		{"empty", "", UnknownBank},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, Detect(tc.text))
		})
	}
}

func TestIsHeaderLine(t *testing.T) {
	assert.True(t, IsHeaderLine("Date Narration Debit Credit Balance"))
	assert.True(t, IsHeaderLine("TRANS DATE | PARTICULARS | WITHDRAWALS | DEPOSITS | BALANCE"))
	assert.False(t, IsHeaderLine("01/12/2025 TRANSFER 100.00 900.00"))
	assert.False(t, IsHeaderLine("Opening Balance"))
}
