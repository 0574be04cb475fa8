// Package export renders projects and shoot logs into downloadable
// documents. The CSV output is byte-for-byte deterministic: the same
// input always yields the same text, which the round-trip tests rely on.
package export

import (
	"regexp"
	"strings"

	"slatelog/models"
)

// CSVHeaders is the fixed column order for the row table. Every SheetRow
// field except the internal id, in declaration order.
var CSVHeaders = []string{
	"slno", "slate", "cameraName", "cameraModel", "clipNo",
	"lens", "height", "focus", "fps", "shutter", "notes",
}

// escapeCSV wraps value in double quotes when it contains a comma, a
// double quote or a newline, doubling any internal quotes. Everything
// else passes through untouched.
func escapeCSV(value string) string {
	if strings.ContainsAny(value, ",\"\n") {
		return `"` + strings.ReplaceAll(value, `"`, `""`) + `"`
	}
	return value
}

func rowFields(row models.SheetRow) []string {
	return []string{
		row.SlNo, row.Slate, row.CameraName, row.CameraModel, row.ClipNo,
		row.Lens, row.Height, row.Focus, row.FPS, row.Shutter, row.Notes,
	}
}

// RowsToCSV serializes rows into a CSV table with the fixed header line,
// one row per line, separated by \n.
func RowsToCSV(rows []models.SheetRow) string {
	lines := make([]string, 0, len(rows)+1)
	lines = append(lines, strings.Join(CSVHeaders, ","))
	for _, row := range rows {
		fields := rowFields(row)
		escaped := make([]string, len(fields))
		for i, f := range fields {
			escaped[i] = escapeCSV(f)
		}
		lines = append(lines, strings.Join(escaped, ","))
	}
	return strings.Join(lines, "\n")
}

// LogToCSV renders one shoot log with a four-line metadata header and a
// blank separator line before the row table.
func LogToCSV(project models.Project, log models.ShootLog) string {
	header := strings.Join([]string{
		"Project:," + escapeCSV(project.Name),
		"Shoot Day:," + escapeCSV(log.Name),
		"Date:," + escapeCSV(log.Date),
		"Location:," + escapeCSV(log.Location),
		"",
	}, "\n")
	return header + "\n" + RowsToCSV(log.Data)
}

// ProjectToCSV flattens every shoot log's rows into one table, rewriting
// each slate to "<logName> | <logDate> | <slate>" so rows stay
// attributable without per-log headers.
func ProjectToCSV(project models.Project) string {
	var all []models.SheetRow
	for _, log := range project.ShootLogs {
		for _, row := range log.Data {
			row.Slate = log.Name + " | " + log.Date + " | " + row.Slate
			all = append(all, row)
		}
	}
	return RowsToCSV(all)
}

var whitespaceRun = regexp.MustCompile(`\s+`)

func sanitizeName(name string) string {
	return whitespaceRun.ReplaceAllString(name, "_")
}

// LogCSVFilename names a per-log export: vfx-log-<project>-<date>.csv.
func LogCSVFilename(project models.Project, log models.ShootLog) string {
	return "vfx-log-" + sanitizeName(project.Name) + "-" + log.Date + ".csv"
}

// ProjectCSVFilename names a whole-project export: vfx-project-<project>.csv.
func ProjectCSVFilename(project models.Project) string {
	return "vfx-project-" + sanitizeName(project.Name) + ".csv"
}

// ProjectXLSXFilename names a whole-project workbook export.
func ProjectXLSXFilename(project models.Project) string {
	return "vfx-project-" + sanitizeName(project.Name) + ".xlsx"
}
