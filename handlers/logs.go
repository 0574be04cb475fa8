package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"slatelog/models"
	"slatelog/state"
)

func HealthCheck(c *gin.Context) {
	c.JSON(200, gin.H{
		"status": "ok",
	})
}

func CreateShootLog(app *state.App) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.CreateShootLogRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		log := app.AddShootLog(c.Param("id"), req.Name, req.Date, req.Location)
		if log == nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "shoot log requires a name, an ISO date and a location, and an existing project"})
			return
		}

		c.JSON(http.StatusCreated, log)
	}
}

func DeleteShootLog(app *state.App) gin.HandlerFunc {
	return func(c *gin.Context) {
		app.DeleteShootLog(c.Param("id"), c.Param("logId"))
		c.JSON(http.StatusOK, gin.H{"message": "shoot log deleted"})
	}
}

func SelectLog(app *state.App) gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, _, ok := app.ShootLog(c.Param("id"), c.Param("logId")); !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "shoot log not found"})
			return
		}
		app.SelectLog(c.Param("logId"))
		c.JSON(http.StatusOK, app.Snapshot())
	}
}

// UpdateRows wholesale-replaces the log's row sequence. Single-cell edits
// from a table UI arrive here as the full sequence with one row changed.
func UpdateRows(app *state.App) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.UpdateRowsRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		app.UpdateShootLogData(c.Param("id"), c.Param("logId"), req.Rows)
		c.JSON(http.StatusOK, gin.H{"message": "rows updated", "count": len(req.Rows)})
	}
}

func AddRow(app *state.App) gin.HandlerFunc {
	return func(c *gin.Context) {
		row := app.AddRow(c.Param("id"), c.Param("logId"))
		if row == nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "shoot log not found"})
			return
		}
		c.JSON(http.StatusCreated, row)
	}
}

func DeleteRow(app *state.App) gin.HandlerFunc {
	return func(c *gin.Context) {
		index, err := strconv.Atoi(c.Param("index"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid row index"})
			return
		}
		app.DeleteRow(c.Param("id"), c.Param("logId"), index)
		c.JSON(http.StatusOK, gin.H{"message": "row deleted"})
	}
}

func UpdateCell(app *state.App) gin.HandlerFunc {
	return func(c *gin.Context) {
		index, err := strconv.Atoi(c.Param("index"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid row index"})
			return
		}

		var req models.UpdateCellRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		app.UpdateCell(c.Param("id"), c.Param("logId"), index, req.Column, req.Value)
		c.JSON(http.StatusOK, gin.H{"message": "cell updated"})
	}
}
