package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"slatelog/models"
	"slatelog/state"
)

// AddPreset records a reusable value in one of the project's preset
// categories (lens, cameraName, cameraModel). The list stays deduplicated
// and sorted in numeric-aware order.
func AddPreset(app *state.App) gin.HandlerFunc {
	return func(c *gin.Context) {
		category, ok := state.ParsePresetCategory(c.Param("category"))
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unknown preset category"})
			return
		}

		var req models.PresetRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		app.AddPreset(c.Param("id"), category, req.Value)
		c.JSON(http.StatusOK, gin.H{"message": "preset added"})
	}
}

func RemovePreset(app *state.App) gin.HandlerFunc {
	return func(c *gin.Context) {
		category, ok := state.ParsePresetCategory(c.Param("category"))
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unknown preset category"})
			return
		}

		var req models.PresetRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		app.RemovePreset(c.Param("id"), category, req.Value)
		c.JSON(http.StatusOK, gin.H{"message": "preset removed"})
	}
}
