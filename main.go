package main

import (
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"slatelog/gemini"
	"slatelog/handlers"
	"slatelog/middleware"
	"slatelog/state"
	"slatelog/store"
)

func main() {
	godotenv.Load()

	logger, err := newLogger()
	if err != nil {
		log.Fatal("Failed to create logger:", err)
	}
	defer logger.Sync()

	dataDir := os.Getenv("DATA_DIR")
	if dataDir == "" {
		dataDir = "./data"
	}

	st, err := store.Open(store.Config{Path: dataDir, Logger: logger})
	if err != nil {
		logger.Fatal("failed to open store", zap.Error(err))
	}
	defer st.Close()

	app := state.New(st, logger, st.Load())
	gen := gemini.NewGenerator(os.Getenv("GEMINI_API_KEY"), os.Getenv("GEMINI_MODEL"), logger)
	if !gen.Enabled() {
		logger.Warn("GEMINI_API_KEY not set, sample data generation disabled")
	}

	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestLogger(logger))

	r.GET("/health", handlers.HealthCheck)
	r.GET("/config", handlers.GetConfig(gen))
	r.GET("/state", handlers.GetState(app))
	r.POST("/back", handlers.Back(app))

	r.GET("/projects", handlers.ListProjects(app))
	r.POST("/projects", handlers.CreateProject(app))
	r.GET("/projects/:id", handlers.GetProject(app))
	r.DELETE("/projects/:id", handlers.DeleteProject(app))
	r.POST("/projects/:id/select", handlers.SelectProject(app))
	r.GET("/projects/:id/export.csv", handlers.ExportProjectCSV(app))
	r.GET("/projects/:id/export.xlsx", handlers.ExportProjectXLSX(app))
	r.POST("/projects/:id/presets/:category", handlers.AddPreset(app))
	r.DELETE("/projects/:id/presets/:category", handlers.RemovePreset(app))

	r.POST("/projects/:id/logs", handlers.CreateShootLog(app))
	r.DELETE("/projects/:id/logs/:logId", handlers.DeleteShootLog(app))
	r.POST("/projects/:id/logs/:logId/select", handlers.SelectLog(app))
	r.GET("/projects/:id/logs/:logId/export.csv", handlers.ExportLogCSV(app))
	r.PUT("/projects/:id/logs/:logId/rows", handlers.UpdateRows(app))
	r.POST("/projects/:id/logs/:logId/rows", handlers.AddRow(app))
	r.DELETE("/projects/:id/logs/:logId/rows/:index", handlers.DeleteRow(app))
	r.PUT("/projects/:id/logs/:logId/rows/:index", handlers.UpdateCell(app))
	r.POST("/projects/:id/logs/:logId/generate", handlers.GenerateRows(app, gen))

	addr := os.Getenv("LISTEN_ADDR")
	if addr == "" {
		addr = ":8080"
	}

	logger.Info("server starting", zap.String("addr", addr))
	if err := r.Run(addr); err != nil {
		logger.Fatal("server exited", zap.Error(err))
	}
}

func newLogger() (*zap.Logger, error) {
	if os.Getenv("APP_ENV") == "dev" {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
