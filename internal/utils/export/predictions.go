// Package export renders projections as spreadsheets.
package export

import (
	"fmt"
	"io"

	"github.com/ThibautWa/grigou-sub000/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

// PredictionsSheet is the name of the worksheet written by WritePredictionsXLSX.
const PredictionsSheet = "Predictions"

// XLSXContentType is the MIME type of the workbook.
const XLSXContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

var predictionHeaders = []string{"Date", "Type", "Amount", "Description", "Category", "Recurrence", "Source transaction"}

// WritePredictionsXLSX writes one row per occurrence followed by a net total row.
func WritePredictionsXLSX(w io.Writer, predictions []domain.PredictedOccurrence) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", PredictionsSheet); err != nil {
		return fmt.Errorf("failed to name worksheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}
	amountStyle, err := f.NewStyle(&excelize.Style{NumFmt: 2}) // 0.00
	if err != nil {
		return fmt.Errorf("failed to create amount style: %w", err)
	}

	for i, h := range predictionHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(PredictionsSheet, cell, h); err != nil {
			return fmt.Errorf("failed to write header: %w", err)
		}
	}
	if err := f.SetRowStyle(PredictionsSheet, 1, 1, headerStyle); err != nil {
		return fmt.Errorf("failed to style header: %w", err)
	}

	net := decimal.Zero
	for idx, p := range predictions {
		row := idx + 2
		net = net.Add(p.SignedAmount())
		values := []any{
			domain.FormatDate(p.Date),
			string(p.Type),
			p.Amount.Round(2).InexactFloat64(),
			deref(p.Description),
			deref(p.CategoryName),
			string(p.RecurrenceType),
			p.SourceTransactionID,
		}
		cell, _ := excelize.CoordinatesToCellName(1, row)
		if err := f.SetSheetRow(PredictionsSheet, cell, &values); err != nil {
			return fmt.Errorf("failed to write row %d: %w", row, err)
		}
	}

	totalRow := len(predictions) + 2
	if err := f.SetCellValue(PredictionsSheet, fmt.Sprintf("B%d", totalRow), "Net"); err != nil {
		return fmt.Errorf("failed to write total label: %w", err)
	}
	if err := f.SetCellValue(PredictionsSheet, fmt.Sprintf("C%d", totalRow), net.Round(2).InexactFloat64()); err != nil {
		return fmt.Errorf("failed to write total: %w", err)
	}
	if err := f.SetCellStyle(PredictionsSheet, "C2", fmt.Sprintf("C%d", totalRow), amountStyle); err != nil {
		return fmt.Errorf("failed to style amounts: %w", err)
	}

	_ = f.SetColWidth(PredictionsSheet, "A", "B", 12)
	_ = f.SetColWidth(PredictionsSheet, "C", "C", 14)
	_ = f.SetColWidth(PredictionsSheet, "D", "E", 30)
	_ = f.SetColWidth(PredictionsSheet, "F", "G", 18)

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
