package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"slatelog/models"
	"slatelog/state"
)

func CreateProject(app *state.App) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.CreateProjectRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		project := app.AddProject(req.Name)
		if project == nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "project name must not be empty"})
			return
		}

		c.JSON(http.StatusCreated, project)
	}
}

func ListProjects(app *state.App) gin.HandlerFunc {
	return func(c *gin.Context) {
		snap := app.Snapshot()
		c.JSON(http.StatusOK, models.ProjectsResponse{
			Projects: snap.Projects,
			Total:    len(snap.Projects),
		})
	}
}

func GetProject(app *state.App) gin.HandlerFunc {
	return func(c *gin.Context) {
		project, ok := app.Project(c.Param("id"))
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "project not found"})
			return
		}
		c.JSON(http.StatusOK, project)
	}
}

// DeleteProject cascades: the project's shoot logs and rows go with it.
// Stale ids are fine; the collection simply comes back unchanged.
func DeleteProject(app *state.App) gin.HandlerFunc {
	return func(c *gin.Context) {
		app.DeleteProject(c.Param("id"))
		c.JSON(http.StatusOK, gin.H{"message": "project deleted"})
	}
}

func SelectProject(app *state.App) gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := app.Project(c.Param("id")); !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "project not found"})
			return
		}
		app.SelectProject(c.Param("id"))
		c.JSON(http.StatusOK, app.Snapshot())
	}
}
