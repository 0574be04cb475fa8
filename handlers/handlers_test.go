package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"slatelog/models"
	"slatelog/state"
)

// fakeGenerator is a scriptable SampleGenerator. When block is set,
// Generate closes started on entry and waits for block before returning.
type fakeGenerator struct {
	enabled bool
	rows    []models.SheetRow
	err     error
	started chan struct{}
	block   chan struct{}
}

func (f *fakeGenerator) Enabled() bool { return f.enabled }

func (f *fakeGenerator) Generate(ctx context.Context) ([]models.SheetRow, error) {
	if f.started != nil {
		close(f.started)
	}
	if f.block != nil {
		<-f.block
	}
	return f.rows, f.err
}

func newTestRouter(gen SampleGenerator) (*gin.Engine, *state.App) {
	gin.SetMode(gin.TestMode)
	app := state.New(nil, nil, nil)

	r := gin.New()
	r.GET("/health", HealthCheck)
	r.GET("/config", GetConfig(gen))
	r.GET("/state", GetState(app))
	r.POST("/back", Back(app))
	r.GET("/projects", ListProjects(app))
	r.POST("/projects", CreateProject(app))
	r.GET("/projects/:id", GetProject(app))
	r.DELETE("/projects/:id", DeleteProject(app))
	r.POST("/projects/:id/select", SelectProject(app))
	r.GET("/projects/:id/export.csv", ExportProjectCSV(app))
	r.GET("/projects/:id/export.xlsx", ExportProjectXLSX(app))
	r.POST("/projects/:id/presets/:category", AddPreset(app))
	r.DELETE("/projects/:id/presets/:category", RemovePreset(app))
	r.POST("/projects/:id/logs", CreateShootLog(app))
	r.DELETE("/projects/:id/logs/:logId", DeleteShootLog(app))
	r.POST("/projects/:id/logs/:logId/select", SelectLog(app))
	r.GET("/projects/:id/logs/:logId/export.csv", ExportLogCSV(app))
	r.PUT("/projects/:id/logs/:logId/rows", UpdateRows(app))
	r.POST("/projects/:id/logs/:logId/rows", AddRow(app))
	r.DELETE("/projects/:id/logs/:logId/rows/:index", DeleteRow(app))
	r.PUT("/projects/:id/logs/:logId/rows/:index", UpdateCell(app))
	r.POST("/projects/:id/logs/:logId/generate", GenerateRows(app, gen))
	return r, app
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestEndToEndProjectExport(t *testing.T) {
	r, _ := newTestRouter(&fakeGenerator{})

	// Create project "Pilot".
	w := doJSON(t, r, http.MethodPost, "/projects", gin.H{"name": "Pilot"})
	require.Equal(t, http.StatusCreated, w.Code)
	var project models.Project
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &project))

	// Add shoot log "Day 1".
	w = doJSON(t, r, http.MethodPost, "/projects/"+project.ID+"/logs", gin.H{
		"name": "Day 1", "date": "2024-03-01", "location": "Stage A",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	var log models.ShootLog
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &log))

	// One row with a 50mm lens.
	w = doJSON(t, r, http.MethodPut, "/projects/"+project.ID+"/logs/"+log.ID+"/rows", models.UpdateRowsRequest{
		Rows: []models.SheetRow{{ID: "r1", SlNo: "1", Slate: "SC-1 T-1", Lens: "50mm"}},
	})
	require.Equal(t, http.StatusOK, w.Code)

	// Whole-project CSV export.
	w = doJSON(t, r, http.MethodGet, "/projects/"+project.ID+"/export.csv", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, `attachment; filename="vfx-project-Pilot.csv"`, w.Header().Get("Content-Disposition"))

	lines := strings.Split(w.Body.String(), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[1], "1,Day 1 | 2024-03-01 | "), "slate must carry the log name and date: %q", lines[1])
	assert.Contains(t, lines[1], "50mm")
}

func TestExportLogCSV(t *testing.T) {
	r, app := newTestRouter(&fakeGenerator{})
	project := app.AddProject("Pilot")
	log := app.AddShootLog(project.ID, "Day 1", "2024-03-01", "Stage A")

	w := doJSON(t, r, http.MethodGet, "/projects/"+project.ID+"/logs/"+log.ID+"/export.csv", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, `attachment; filename="vfx-log-Pilot-2024-03-01.csv"`, w.Header().Get("Content-Disposition"))
	assert.True(t, strings.HasPrefix(w.Body.String(), "Project:,Pilot\n"))

	w = doJSON(t, r, http.MethodGet, "/projects/"+project.ID+"/logs/no-such-log/export.csv", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestExportProjectXLSX(t *testing.T) {
	r, app := newTestRouter(&fakeGenerator{})
	project := app.AddProject("Pilot")

	w := doJSON(t, r, http.MethodGet, "/projects/"+project.ID+"/export.xlsx", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, `attachment; filename="vfx-project-Pilot.xlsx"`, w.Header().Get("Content-Disposition"))
	assert.NotZero(t, w.Body.Len())
}

func TestNavigation(t *testing.T) {
	r, app := newTestRouter(&fakeGenerator{})
	project := app.AddProject("Pilot")
	app.Back()
	require.Equal(t, state.ViewHome, app.Snapshot().View)

	w := doJSON(t, r, http.MethodPost, "/projects/"+project.ID+"/select", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, state.ViewProject, app.Snapshot().View)

	w = doJSON(t, r, http.MethodPost, "/back", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, state.ViewHome, app.Snapshot().View)

	w = doJSON(t, r, http.MethodPost, "/projects/no-such-id/select", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCreateProject_Validation(t *testing.T) {
	r, _ := newTestRouter(&fakeGenerator{})

	w := doJSON(t, r, http.MethodPost, "/projects", gin.H{})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, r, http.MethodPost, "/projects", gin.H{"name": "   "})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPresetEndpoints(t *testing.T) {
	r, app := newTestRouter(&fakeGenerator{})
	project := app.AddProject("Pilot")

	w := doJSON(t, r, http.MethodPost, "/projects/"+project.ID+"/presets/lens", gin.H{"value": "Lens 10"})
	require.Equal(t, http.StatusOK, w.Code)
	w = doJSON(t, r, http.MethodPost, "/projects/"+project.ID+"/presets/lens", gin.H{"value": "Lens 2"})
	require.Equal(t, http.StatusOK, w.Code)

	got, _ := app.Project(project.ID)
	assert.Equal(t, []string{"Lens 2", "Lens 10"}, got.LensPresets)

	w = doJSON(t, r, http.MethodDelete, "/projects/"+project.ID+"/presets/lens", gin.H{"value": "Lens 2"})
	require.Equal(t, http.StatusOK, w.Code)
	got, _ = app.Project(project.ID)
	assert.Equal(t, []string{"Lens 10"}, got.LensPresets)

	w = doJSON(t, r, http.MethodPost, "/projects/"+project.ID+"/presets/bogus", gin.H{"value": "x"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestConfig(t *testing.T) {
	r, _ := newTestRouter(&fakeGenerator{enabled: true})
	w := doJSON(t, r, http.MethodGet, "/config", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"sampleDataEnabled":true}`, w.Body.String())

	r, _ = newTestRouter(&fakeGenerator{enabled: false})
	w = doJSON(t, r, http.MethodGet, "/config", nil)
	assert.JSONEq(t, `{"sampleDataEnabled":false}`, w.Body.String())
}

func TestGenerate_AppendsRows(t *testing.T) {
	gen := &fakeGenerator{
		enabled: true,
		rows: []models.SheetRow{
			{SlNo: "1", Slate: "SC-10 T-1", Lens: "50mm"},
			{SlNo: "2", Slate: "SC-10 T-2", Lens: "85mm"},
		},
	}
	r, app := newTestRouter(gen)
	project := app.AddProject("Pilot")
	log := app.AddShootLog(project.ID, "Day 1", "2024-03-01", "Stage A")

	w := doJSON(t, r, http.MethodPost, "/projects/"+project.ID+"/logs/"+log.ID+"/generate", nil)
	require.Equal(t, http.StatusOK, w.Code)

	_, got, ok := app.ShootLog(project.ID, log.ID)
	require.True(t, ok)
	require.Len(t, got.Data, 2)
	assert.NotEmpty(t, got.Data[0].ID)
	assert.NotEmpty(t, got.Data[1].ID)
}

func TestGenerate_Disabled(t *testing.T) {
	r, app := newTestRouter(&fakeGenerator{enabled: false})
	project := app.AddProject("Pilot")
	log := app.AddShootLog(project.ID, "Day 1", "2024-03-01", "Stage A")

	w := doJSON(t, r, http.MethodPost, "/projects/"+project.ID+"/logs/"+log.ID+"/generate", nil)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestGenerate_FailureLeavesStateUntouched(t *testing.T) {
	gen := &fakeGenerator{enabled: true, err: context.DeadlineExceeded}
	r, app := newTestRouter(gen)
	project := app.AddProject("Pilot")
	log := app.AddShootLog(project.ID, "Day 1", "2024-03-01", "Stage A")

	w := doJSON(t, r, http.MethodPost, "/projects/"+project.ID+"/logs/"+log.ID+"/generate", nil)
	assert.Equal(t, http.StatusBadGateway, w.Code)

	_, got, _ := app.ShootLog(project.ID, log.ID)
	assert.Empty(t, got.Data)
}

func TestGenerate_RejectsConcurrentRequests(t *testing.T) {
	gen := &fakeGenerator{
		enabled: true,
		rows:    []models.SheetRow{{SlNo: "1", Slate: "SC-1"}},
		started: make(chan struct{}),
		block:   make(chan struct{}),
	}
	r, app := newTestRouter(gen)
	project := app.AddProject("Pilot")
	log := app.AddShootLog(project.ID, "Day 1", "2024-03-01", "Stage A")

	path := "/projects/" + project.ID + "/logs/" + log.ID + "/generate"

	done := make(chan *httptest.ResponseRecorder, 1)
	go func() {
		done <- doJSON(t, r, http.MethodPost, path, nil)
	}()

	select {
	case <-gen.started:
	case <-time.After(2 * time.Second):
		t.Fatal("first generate request never started")
	}

	// Second request while the first is in flight must be rejected, not queued.
	w := doJSON(t, r, http.MethodPost, path, nil)
	assert.Equal(t, http.StatusConflict, w.Code)

	close(gen.block)
	first := <-done
	assert.Equal(t, http.StatusOK, first.Code)

	_, got, _ := app.ShootLog(project.ID, log.ID)
	assert.Len(t, got.Data, 1)
}

func TestHealthCheck(t *testing.T) {
	r, _ := newTestRouter(&fakeGenerator{})
	w := doJSON(t, r, http.MethodGet, "/health", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestDeleteEndpointsAreIdempotent(t *testing.T) {
	r, app := newTestRouter(&fakeGenerator{})
	project := app.AddProject("Pilot")
	log := app.AddShootLog(project.ID, "Day 1", "2024-03-01", "Stage A")

	w := doJSON(t, r, http.MethodDelete, "/projects/"+project.ID+"/logs/"+log.ID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	// Deleting again is a silent no-op.
	w = doJSON(t, r, http.MethodDelete, "/projects/"+project.ID+"/logs/"+log.ID, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodDelete, "/projects/"+project.ID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	w = doJSON(t, r, http.MethodDelete, "/projects/"+project.ID, nil)
	require.Equal(t, http.StatusOK, w.Code)

	assert.Empty(t, app.Snapshot().Projects)
}

func TestRowEndpoints(t *testing.T) {
	r, app := newTestRouter(&fakeGenerator{})
	project := app.AddProject("Pilot")
	log := app.AddShootLog(project.ID, "Day 1", "2024-03-01", "Stage A")
	base := "/projects/" + project.ID + "/logs/" + log.ID + "/rows"

	w := doJSON(t, r, http.MethodPost, base, nil)
	require.Equal(t, http.StatusCreated, w.Code)
	var row models.SheetRow
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &row))
	assert.Equal(t, "1", row.SlNo)

	w = doJSON(t, r, http.MethodPut, base+"/0", models.UpdateCellRequest{Column: "lens", Value: "50mm"})
	require.Equal(t, http.StatusOK, w.Code)
	_, got, _ := app.ShootLog(project.ID, log.ID)
	assert.Equal(t, "50mm", got.Data[0].Lens)

	w = doJSON(t, r, http.MethodDelete, base+"/0", nil)
	require.Equal(t, http.StatusOK, w.Code)
	_, got, _ = app.ShootLog(project.ID, log.ID)
	assert.Empty(t, got.Data)

	w = doJSON(t, r, http.MethodDelete, base+"/abc", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
