package export

import (
	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"

	"github.com/sells-group/polecheck/internal/match"
)

// WriteXLSX writes the full record table to an XLSX workbook with a
// single "Comparison" sheet, header row first.
func WriteXLSX(path string, res *match.Result) error {
	f := xlsx.NewFile()
	sheet, err := f.AddSheet("Comparison")
	if err != nil {
		return eris.Wrap(err, "export: add sheet")
	}

	header := sheet.AddRow()
	for _, h := range Headers {
		header.AddCell().SetString(h)
	}

	for i := range res.Records {
		row := sheet.AddRow()
		for _, v := range Row(&res.Records[i]) {
			row.AddCell().SetString(v)
		}
	}

	if err := f.Save(path); err != nil {
		return eris.Wrap(err, "export: save xlsx")
	}
	return nil
}
