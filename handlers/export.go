package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"slatelog/export"
	"slatelog/state"
)

const (
	csvContentType  = "text/csv; charset=utf-8"
	xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

func ExportLogCSV(app *state.App) gin.HandlerFunc {
	return func(c *gin.Context) {
		project, log, ok := app.ShootLog(c.Param("id"), c.Param("logId"))
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "shoot log not found"})
			return
		}

		c.Header("Content-Disposition", `attachment; filename="`+export.LogCSVFilename(project, log)+`"`)
		c.Data(http.StatusOK, csvContentType, []byte(export.LogToCSV(project, log)))
	}
}

func ExportProjectCSV(app *state.App) gin.HandlerFunc {
	return func(c *gin.Context) {
		project, ok := app.Project(c.Param("id"))
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "project not found"})
			return
		}

		c.Header("Content-Disposition", `attachment; filename="`+export.ProjectCSVFilename(project)+`"`)
		c.Data(http.StatusOK, csvContentType, []byte(export.ProjectToCSV(project)))
	}
}

func ExportProjectXLSX(app *state.App) gin.HandlerFunc {
	return func(c *gin.Context) {
		project, ok := app.Project(c.Param("id"))
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "project not found"})
			return
		}

		f, err := export.ProjectToXLSX(project)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to build workbook"})
			return
		}
		defer f.Close()

		c.Header("Content-Disposition", `attachment; filename="`+export.ProjectXLSXFilename(project)+`"`)
		c.Header("Content-Type", xlsxContentType)
		c.Status(http.StatusOK)
		if err := f.Write(c.Writer); err != nil {
			c.Error(err)
		}
	}
}
