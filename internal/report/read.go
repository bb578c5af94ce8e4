package report

import (
	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"
)

// Sheet is one worksheet of a saved report, as display strings.
type Sheet struct {
	Name string
	Rows [][]string
}

// DataRows returns the number of rows below the header.
func (s Sheet) DataRows() int {
	if len(s.Rows) == 0 {
		return 0
	}
	return len(s.Rows) - 1
}

// Read opens a saved report and returns its sheets in workbook order.
func Read(path string) ([]Sheet, error) {
	f, err := xlsx.OpenFile(path)
	if err != nil {
		return nil, eris.Wrap(err, "report: open workbook")
	}

	sheets := make([]Sheet, 0, len(f.Sheets))
	for _, sh := range f.Sheets {
		rows := make([][]string, 0, len(sh.Rows))
		for _, row := range sh.Rows {
			rows = append(rows, rowToStrings(row))
		}
		sheets = append(sheets, Sheet{Name: sh.Name, Rows: rows})
	}
	return sheets, nil
}

// Summary returns the Field/Value pairs of the Summary sheet, in order.
func Summary(sheets []Sheet) ([][2]string, error) {
	for _, s := range sheets {
		if s.Name != SheetSummary {
			continue
		}
		var fields [][2]string
		for i, r := range s.Rows {
			if i == 0 || len(r) < 2 {
				continue
			}
			fields = append(fields, [2]string{r[0], r[1]})
		}
		return fields, nil
	}
	return nil, eris.Errorf("report: sheet %q not found", SheetSummary)
}

func rowToStrings(row *xlsx.Row) []string {
	cells := make([]string, len(row.Cells))
	for j, cell := range row.Cells {
		cells[j] = cell.String()
	}
	return cells
}
