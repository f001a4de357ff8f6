package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/spigell/resume-scorer/internal/candidate"
)

const (
	defaultSheet = "Sheet1"
	sheetName    = "Candidates"
)

var headers = []string{
	"Name",
	"Contact Details",
	"University",
	"Year of Study",
	"Course",
	"Discipline",
	"CGPA/Percentage",
	"Key Skills",
	"Gen AI Experience Score",
	"AI/ML Experience Score",
	"Supporting Information",
	"Total Score",
}

type XLSX struct{}

func (XLSX) Export(records *candidate.Records, path string) (err error) {
	if err := prepare(path); err != nil {
		return err
	}

	f := excelize.NewFile()
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	row, err := writeHeader(f, defaultSheet, 0, headers)
	if err != nil {
		return fmt.Errorf("writing xlsx header: %w", err)
	}

	ranked := records.Ranked()
	if ranked.Len() != 0 {
		if _, err := writeRecords(f, defaultSheet, ranked.Items, row); err != nil {
			return fmt.Errorf("writing xlsx rows: %w", err)
		}
	}

	if err := f.SetSheetName(defaultSheet, sheetName); err != nil {
		return err
	}

	return f.SaveAs(path)
}

func writeRecords(f *excelize.File, sheet string, items []*candidate.Record, row int) (int, error) {
	if err := applyDataCellStyle(f, sheet, 1, row+1, len(headers), row+len(items)); err != nil {
		return row, err
	}

	for _, item := range items {
		row++
		values := []any{
			item.Name,
			item.Contact,
			item.Education.Institution,
			item.Education.Year,
			item.Education.Course,
			item.Education.Discipline,
			item.Education.GradeDisplay,
			item.SkillList(),
			item.NextGenTier,
			item.ClassicalTier,
			item.EvidenceList(),
			item.TotalScore,
		}
		for col, value := range values {
			if err := writeColumn(f, sheet, col+1, row, value); err != nil {
				return row, err
			}
		}
	}
	return row, nil
}

func writeColumn(f *excelize.File, sheet string, col, row int, value any) error {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return err
	}
	return f.SetCellValue(sheet, cell, value)
}

func writeHeader(f *excelize.File, sheet string, row int, headers []string) (int, error) {
	row++
	style, err := f.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{Horizontal: "center"},
		Font:      &excelize.Font{Bold: true, Size: 11},
	})
	if err != nil {
		return row, err
	}

	cellFirst, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return row, err
	}
	cellLast, err := excelize.CoordinatesToCellName(len(headers), row)
	if err != nil {
		return row, err
	}
	if err = f.SetCellStyle(sheet, cellFirst, cellLast, style); err != nil {
		return row, err
	}

	lastCol, err := excelize.ColumnNumberToName(len(headers))
	if err != nil {
		return row, err
	}
	if err = f.SetColWidth(sheet, "A", lastCol, 25); err != nil {
		return row, err
	}

	for idx, value := range headers {
		if err = writeColumn(f, sheet, idx+1, row, value); err != nil {
			return row, err
		}
	}
	return row, nil
}

func applyDataCellStyle(f *excelize.File, sheet string, colFrom, rowFrom, colTo, rowTo int) error {
	style, err := f.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{Horizontal: "left", Vertical: "center", WrapText: true},
		Font:      &excelize.Font{Size: 11},
	})
	if err != nil {
		return err
	}

	cellFirst, err := excelize.CoordinatesToCellName(colFrom, rowFrom)
	if err != nil {
		return err
	}
	cellLast, err := excelize.CoordinatesToCellName(colTo, rowTo)
	if err != nil {
		return err
	}
	return f.SetCellStyle(sheet, cellFirst, cellLast, style)
}
