package extract

import (
	"os"
	"path/filepath"
	"testing"

	"taxmaster/statement-extractor/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestWriteCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")
	transactions := []models.Transaction{
		{
			Date:        "01/12/2025",
			ValueDate:   "01/12/2025",
			Description: "POS PURCHASE",
			Debit:       decimal.RequireFromString("100.00"),
			Balance:     decimal.RequireFromString("900.00"),
		},
		{
			Date:        "02/12/2025",
			ValueDate:   "02/12/2025",
			Description: "TRANSFER IN",
			Credit:      decimal.RequireFromString("50.00"),
			Balance:     decimal.RequireFromString("950.00"),
		},
	}

	require.NoError(t, writeCSV(path, transactions))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	content := string(data)
	assert.Contains(t, content, "POS PURCHASE")
	assert.Contains(t, content, "TRANSFER IN")
	assert.Contains(t, content, "01/12/2025")
}

func TestWriteCSV_BadPath(t *testing.T) {
	err := writeCSV(filepath.Join(t.TempDir(), "missing", "out.csv"), nil)
	assert.Error(t, err)
}

func TestWriteExcel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.xlsx")
	transactions := []models.Transaction{
		{
			Date:        "01/12/2025",
			ValueDate:   "01/12/2025",
			Description: "POS PURCHASE",
			Debit:       decimal.RequireFromString("100.00"),
			Balance:     decimal.RequireFromString("900.00"),
		},
	}

	require.NoError(t, writeExcel(path, transactions))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer func() {
		_ = f.Close()
	}()

	rows, err := f.GetRows(excelSheet)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, []string{"Date", "Value Date", "Description", "Debit", "Credit", "Balance"}, rows[0])
	assert.Equal(t, "01/12/2025", rows[1][0])
	assert.Equal(t, "POS PURCHASE", rows[1][2])
	assert.Equal(t, "100", rows[1][3])
	assert.Equal(t, "900", rows[1][5])
}

func TestWriteOutput_PicksFormatByExtension(t *testing.T) {
	dir := t.TempDir()
	transactions := []models.Transaction{
		{
			Date:        "01/12/2025",
			ValueDate:   "01/12/2025",
			Description: "AIRTIME",
			Debit:       decimal.RequireFromString("25.00"),
			Balance:     decimal.RequireFromString("925.00"),
		},
	}

	xlsxPath := filepath.Join(dir, "out.XLSX")
	require.NoError(t, writeOutput(xlsxPath, transactions))
	f, err := excelize.OpenFile(xlsxPath)
	require.NoError(t, err)
	_ = f.Close()

	csvPath := filepath.Join(dir, "out.csv")
	require.NoError(t, writeOutput(csvPath, transactions))
	data, err := os.ReadFile(csvPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "AIRTIME")
}
