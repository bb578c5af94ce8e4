package report

import (
	"encoding/json"
	"unicode/utf8"

	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"

	"github.com/sells-group/osint-cli/internal/model"
)

// maxCellChars is Excel's per-cell text limit.
const maxCellChars = 32767

// Columns returns the union of record keys in first-seen order.
func Columns(records []model.Record) []string {
	seen := make(map[string]bool)
	var cols []string
	for _, rec := range records {
		for _, k := range rec.Keys() {
			if !seen[k] {
				seen[k] = true
				cols = append(cols, k)
			}
		}
	}
	return cols
}

// writeTable writes a header row followed by one row per record. Nothing is
// written for an empty record set.
func writeTable(sheet *xlsx.Sheet, records []model.Record) error {
	if len(records) == 0 {
		return nil
	}
	cols := Columns(records)

	header := sheet.AddRow()
	for _, c := range cols {
		header.AddCell().SetString(c)
	}

	for i, rec := range records {
		row := sheet.AddRow()
		for _, c := range cols {
			cell := row.AddCell()
			v, ok := rec.Get(c)
			if !ok {
				continue
			}
			if err := setCell(cell, v); err != nil {
				return eris.Wrapf(err, "report: row %d column %q", i+1, c)
			}
		}
	}
	return nil
}

// setCell stores a decoded JSON value. Integral numbers stay integers,
// nested objects and arrays are written as compact JSON text.
func setCell(cell *xlsx.Cell, v any) error {
	switch val := v.(type) {
	case nil:
	case string:
		cell.SetString(truncate(val))
	case bool:
		cell.SetBool(val)
	case json.Number:
		if n, err := val.Int64(); err == nil {
			cell.SetInt64(n)
		} else if f, err := val.Float64(); err == nil {
			cell.SetFloat(f)
		} else {
			cell.SetString(val.String())
		}
	case float64:
		cell.SetFloat(val)
	case int:
		cell.SetInt(val)
	case int64:
		cell.SetInt64(val)
	default:
		data, err := json.Marshal(val)
		if err != nil {
			return eris.Wrap(err, "report: encode nested value")
		}
		cell.SetString(truncate(string(data)))
	}
	return nil
}

func truncate(s string) string {
	if utf8.RuneCountInString(s) <= maxCellChars {
		return s
	}
	r := []rune(s)
	return string(r[:maxCellChars])
}
