// Package export renders a batch's ordered result list as an XLSX workbook.
package export

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/assetdesk/metagen/internal/domain"
)

const sheetName = "Assets"

var headers = []string{
	"Uploaded file name",
	"Asset name (English)",
	"Asset name (Arabic)",
	"Tags",
}

// Workbook renders the results into a single-sheet XLSX workbook. Rows appear
// in result order, one per task. Failed tasks keep their row: the name columns
// stay empty and the tags column carries the error message, so the exported
// table always has exactly one row per input task.
func Workbook(results []domain.TaskResult) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(sheetName)
	if err != nil {
		return nil, fmt.Errorf("create sheet: %w", err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("drop default sheet: %w", err)
	}

	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheetName, cell, h); err != nil {
			return nil, fmt.Errorf("write header: %w", err)
		}
	}

	for i, r := range results {
		row := i + 2
		write := func(col int, v string) error {
			cell, _ := excelize.CoordinatesToCellName(col, row)
			return f.SetCellValue(sheetName, cell, v)
		}

		values := [4]string{r.DisplayName, r.EnglishName, r.ArabicName, strings.Join(r.Tags, ", ")}
		if r.Failed() {
			values[1] = ""
			values[2] = ""
			values[3] = "Error: " + r.FailureMessage
		}
		for col, v := range values {
			if err := write(col+1, v); err != nil {
				return nil, fmt.Errorf("write row %d: %w", row, err)
			}
		}
	}

	_ = f.SetColWidth(sheetName, "A", "A", 40)
	_ = f.SetColWidth(sheetName, "B", "C", 32)
	_ = f.SetColWidth(sheetName, "D", "D", 60)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx write: %w", err)
	}
	return buf.Bytes(), nil
}
