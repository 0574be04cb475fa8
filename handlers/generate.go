package handlers

import (
	"context"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"

	"slatelog/models"
	"slatelog/state"
)

// SampleGenerator proposes candidate rows for a shoot log.
// *gemini.Generator satisfies this.
type SampleGenerator interface {
	Enabled() bool
	Generate(ctx context.Context) ([]models.SheetRow, error)
}

// generateGuard allows one in-flight generation per shoot log. The
// triggering control's enabled state is a pure function of this: busy
// means disabled, and a second request while busy is rejected instead
// of queued.
type generateGuard struct {
	mu   sync.Mutex
	busy map[string]bool
}

func newGenerateGuard() *generateGuard {
	return &generateGuard{busy: make(map[string]bool)}
}

func (g *generateGuard) acquire(key string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.busy[key] {
		return false
	}
	g.busy[key] = true
	return true
}

func (g *generateGuard) release(key string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.busy, key)
}

// GenerateRows asks the AI collaborator for sample rows and appends them
// to the targeted log. On failure nothing is mutated and the single
// generic message is surfaced; retry is manual.
func GenerateRows(app *state.App, gen SampleGenerator) gin.HandlerFunc {
	guard := newGenerateGuard()

	return func(c *gin.Context) {
		if !gen.Enabled() {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "sample data generation is not configured"})
			return
		}

		projectID := c.Param("id")
		logID := c.Param("logId")
		if _, _, ok := app.ShootLog(projectID, logID); !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "shoot log not found"})
			return
		}

		key := projectID + "/" + logID
		if !guard.acquire(key) {
			c.JSON(http.StatusConflict, gin.H{"error": "sample data generation already in progress"})
			return
		}
		defer guard.release(key)

		rows, err := gen.Generate(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
			return
		}

		appended := app.AppendRows(projectID, logID, rows)
		c.JSON(http.StatusOK, gin.H{
			"message": "sample rows added",
			"count":   len(appended),
			"rows":    appended,
		})
	}
}
