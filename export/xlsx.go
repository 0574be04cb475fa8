package export

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"slatelog/models"
)

// allShotsSheet collects every log's rows in one table, mirroring the
// whole-project CSV export.
const allShotsSheet = "All Shots"

var columnLabels = []string{
	"SL No", "Slate", "Camera Name", "Camera Model", "Clip No",
	"Lens", "Height", "Focus", "FPS", "Shutter", "Notes",
}

// ProjectToXLSX builds a workbook for a project: one sheet per shoot log
// (metadata block followed by the row table) plus a combined sheet
// matching ProjectToCSV content. The caller owns closing the file.
func ProjectToXLSX(project models.Project) (*excelize.File, error) {
	f := excelize.NewFile()

	for i, log := range project.ShootLogs {
		sheet := sheetName(log, i)
		if _, err := f.NewSheet(sheet); err != nil {
			_ = f.Close()
			return nil, fmt.Errorf("failed to create sheet %q: %w", sheet, err)
		}

		meta := [][]interface{}{
			{"Project:", project.Name},
			{"Shoot Day:", log.Name},
			{"Date:", log.Date},
			{"Location:", log.Location},
		}
		for r, vals := range meta {
			if err := f.SetSheetRow(sheet, fmt.Sprintf("A%d", r+1), &vals); err != nil {
				_ = f.Close()
				return nil, fmt.Errorf("failed to write metadata: %w", err)
			}
		}
		if err := writeRowTable(f, sheet, 6, log.Data); err != nil {
			_ = f.Close()
			return nil, err
		}
	}

	if _, err := f.NewSheet(allShotsSheet); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("failed to create combined sheet: %w", err)
	}
	var all []models.SheetRow
	for _, log := range project.ShootLogs {
		for _, row := range log.Data {
			row.Slate = log.Name + " | " + log.Date + " | " + row.Slate
			all = append(all, row)
		}
	}
	if err := writeRowTable(f, allShotsSheet, 1, all); err != nil {
		_ = f.Close()
		return nil, err
	}

	if err := f.DeleteSheet("Sheet1"); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("failed to drop default sheet: %w", err)
	}
	f.SetActiveSheet(0)
	return f, nil
}

func writeRowTable(f *excelize.File, sheet string, startRow int, rows []models.SheetRow) error {
	header := make([]interface{}, len(columnLabels))
	for i, label := range columnLabels {
		header[i] = label
	}
	if err := f.SetSheetRow(sheet, fmt.Sprintf("A%d", startRow), &header); err != nil {
		return fmt.Errorf("failed to write header row: %w", err)
	}
	for i, row := range rows {
		fields := rowFields(row)
		vals := make([]interface{}, len(fields))
		for j, field := range fields {
			vals[j] = field
		}
		if err := f.SetSheetRow(sheet, fmt.Sprintf("A%d", startRow+1+i), &vals); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i, err)
		}
	}
	return nil
}

// sheetName builds a workbook-safe sheet title. Excel limits titles to
// 31 characters and forbids a handful of punctuation; the index suffix
// keeps duplicate log names distinct.
func sheetName(log models.ShootLog, index int) string {
	name := log.Name
	for _, c := range []string{":", "\\", "/", "?", "*", "[", "]"} {
		name = strings.ReplaceAll(name, c, " ")
	}
	name = strings.TrimSpace(name)
	if name == "" {
		name = "Shoot Log"
	}
	suffix := fmt.Sprintf(" (%d)", index+1)
	if len(name)+len(suffix) > 31 {
		name = name[:31-len(suffix)]
	}
	return name + suffix
}
