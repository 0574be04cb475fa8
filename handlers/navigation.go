package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"slatelog/state"
)

// GetState exposes the current view, selection and collection so the
// presentation layer can render without its own bookkeeping.
func GetState(app *state.App) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, app.Snapshot())
	}
}

func Back(app *state.App) gin.HandlerFunc {
	return func(c *gin.Context) {
		app.Back()
		c.JSON(http.StatusOK, app.Snapshot())
	}
}

// GetConfig tells the UI which optional features are available, so
// controls for unconfigured features render inert instead of failing.
func GetConfig(gen SampleGenerator) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"sampleDataEnabled": gen.Enabled(),
		})
	}
}
