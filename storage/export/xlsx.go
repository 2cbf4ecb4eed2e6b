package export

import (
	"io"

	"github.com/pkg/errors"
	"github.com/xuri/excelize/v2"

	"github.com/trezcool/studyplanner/core/activity"
)

const SheetName = "Activities"

var colWidths = []float64{6, 14, 32, 12, 10, 10, 12, 20, 40}

// WriteXLSX writes the CSV columns to the "Activities" sheet of a new workbook.
func WriteXLSX(w io.Writer, activities []activity.Activity) error {
	f := excelize.NewFile()
	defer f.Close()

	idx, err := f.NewSheet(SheetName)
	if err != nil {
		return errors.Wrap(err, "creating sheet")
	}
	f.SetActiveSheet(idx)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return errors.Wrap(err, "removing default sheet")
	}

	for i, width := range colWidths {
		col, _ := excelize.ColumnNumberToName(i + 1)
		if err := f.SetColWidth(SheetName, col, col, width); err != nil {
			return errors.Wrap(err, "setting column width")
		}
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return errors.Wrap(err, "creating header style")
	}

	header := make([]interface{}, len(columns))
	for i, c := range columns {
		header[i] = c
	}
	if err := f.SetSheetRow(SheetName, "A1", &header); err != nil {
		return errors.Wrap(err, "writing header")
	}
	last, _ := excelize.CoordinatesToCellName(len(columns), 1)
	if err := f.SetCellStyle(SheetName, "A1", last, headerStyle); err != nil {
		return errors.Wrap(err, "styling header")
	}

	for i, a := range activities {
		fields := row(a)
		values := make([]interface{}, len(fields))
		values[0] = a.ID
		for j := 1; j < len(fields); j++ {
			values[j] = fields[j]
		}
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(SheetName, cell, &values); err != nil {
			return errors.Wrapf(err, "writing activity %d", a.ID)
		}
	}

	return errors.Wrap(f.Write(w), "writing workbook")
}
