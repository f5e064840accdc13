// Package extract runs a one-shot extraction from the command line.
package extract

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"taxmaster/statement-extractor/cmd/root"
	"taxmaster/statement-extractor/internal/logging"
	"taxmaster/statement-extractor/internal/models"

	"github.com/gocarina/gocsv"
	"github.com/spf13/cobra"
	"github.com/xuri/excelize/v2"
)

// Cmd represents the extract command.
var Cmd = &cobra.Command{
	Use:   "extract",
	Short: "Extract transactions from a statement PDF",
	Long: `Extract transactions from a single statement PDF. The JSON result is
written to stdout; pass --output to also write the transactions as CSV, or as
an Excel workbook when the output file ends in .xlsx.`,
	RunE: extractFunc,
}

func extractFunc(cmd *cobra.Command, args []string) error {
	if root.SharedFlags.Input == "" {
		return fmt.Errorf("input file is required (use --input)")
	}

	data, err := os.ReadFile(root.SharedFlags.Input)
	if err != nil {
		return fmt.Errorf("failed to read input file: %w", err)
	}

	ctx := cmd.Context()
	p, cleanup, err := root.BuildPipeline(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	result, err := p.Run(ctx, filepath.Base(root.SharedFlags.Input), data)
	if err != nil {
		return err
	}

	out, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode result: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(out))

	if root.SharedFlags.Output != "" {
		if err := writeOutput(root.SharedFlags.Output, result.Transactions); err != nil {
			return err
		}
		root.Log.Info("Wrote output file",
			logging.Field{Key: logging.FieldFilename, Value: root.SharedFlags.Output},
			logging.Field{Key: logging.FieldRows, Value: len(result.Transactions)})
	}

	return nil
}

// writeOutput picks the export format from the file extension.
func writeOutput(path string, transactions []models.Transaction) error {
	if strings.EqualFold(filepath.Ext(path), ".xlsx") {
		return writeExcel(path, transactions)
	}
	return writeCSV(path, transactions)
}

func writeCSV(path string, transactions []models.Transaction) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() {
		_ = f.Close()
	}()

	if err := gocsv.MarshalFile(&transactions, f); err != nil {
		return fmt.Errorf("failed to write CSV: %w", err)
	}
	return nil
}

// excelSheet is the worksheet the transactions land on.
const excelSheet = "Transactions"

func writeExcel(path string, transactions []models.Transaction) error {
	f := excelize.NewFile()
	defer func() {
		_ = f.Close()
	}()

	if err := f.SetSheetName("Sheet1", excelSheet); err != nil {
		return fmt.Errorf("failed to prepare worksheet: %w", err)
	}

	headers := []string{"Date", "Value Date", "Description", "Debit", "Credit", "Balance"}
	for i, h := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return fmt.Errorf("failed to address header cell: %w", err)
		}
		if err := f.SetCellValue(excelSheet, cell, h); err != nil {
			return fmt.Errorf("failed to write header: %w", err)
		}
	}

	for row, tx := range transactions {
		values := []interface{}{
			tx.Date,
			tx.ValueDate,
			tx.Description,
			tx.Debit.InexactFloat64(),
			tx.Credit.InexactFloat64(),
			tx.Balance.InexactFloat64(),
		}
		for col, v := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row+2)
			if err != nil {
				return fmt.Errorf("failed to address cell: %w", err)
			}
			if err := f.SetCellValue(excelSheet, cell, v); err != nil {
				return fmt.Errorf("failed to write row: %w", err)
			}
		}
	}

	// Wide narration column; dates and amounts fit in the default-ish rest.
	if err := f.SetColWidth(excelSheet, "C", "C", 48); err != nil {
		return fmt.Errorf("failed to size columns: %w", err)
	}
	if err := f.SetColWidth(excelSheet, "A", "B", 14); err != nil {
		return fmt.Errorf("failed to size columns: %w", err)
	}
	if err := f.SetColWidth(excelSheet, "D", "F", 16); err != nil {
		return fmt.Errorf("failed to size columns: %w", err)
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to write Excel file: %w", err)
	}
	return nil
}
