package httpapi

import (
	"io"

	"github.com/xuri/excelize/v2"

	"draftboard-engine/internal/domain"
	"draftboard-engine/internal/records"
	"draftboard-engine/internal/value"
)

const (
	xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	xlsxSheet       = "Sheet1"
)

// numericColumns are written as numbers when they parse.
var numericColumns = map[string]bool{
	domain.FieldYear:       true,
	domain.FieldRound:      true,
	domain.FieldPick:       true,
	domain.FieldAgeAtDraft: true,
}

func writeCSV(w io.Writer, picks []domain.Pick) error {
	return records.WriteCSV(w, picks)
}

func writeXLSX(w io.Writer, picks []domain.Pick) error {
	f := excelize.NewFile()
	defer f.Close()

	header := records.Header()
	if err := f.SetSheetRow(xlsxSheet, "A1", &header); err != nil {
		return err
	}

	for i, p := range picks {
		row := make([]any, len(domain.Fields))
		for j, field := range domain.Fields {
			raw := p.Get(field)
			if n := value.ParseNumber(raw); numericColumns[field] && n.OK {
				row[j] = n.Float
				continue
			}
			row[j] = raw
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(xlsxSheet, cell, &row); err != nil {
			return err
		}
	}

	last, err := excelize.CoordinatesToCellName(len(header), 1)
	if err != nil {
		return err
	}
	if err := f.AutoFilter(xlsxSheet, "A1:"+last, nil); err != nil {
		return err
	}
	return f.Write(w)
}
