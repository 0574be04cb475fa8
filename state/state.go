package state

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"slatelog/models"
)

// View identifies which level of the project tree the user is looking at.
type View string

const (
	ViewHome    View = "home"
	ViewProject View = "project"
	ViewLog     View = "log"
)

// Saver persists the full project collection after every mutation.
// *store.Store satisfies this.
type Saver interface {
	Save(projects []models.Project)
}

// App owns the in-memory project collection and the current selection.
// All mutations are replace-on-write: they build new slices down the
// changed path and share untouched siblings, so a snapshot handed to a
// reader is never mutated underneath it. Every successful mutation
// persists the whole collection through the saver.
//
// A single mutex serializes all access; there is exactly one logical
// actor (the user) and persistence is a fire-and-forget side effect.
type App struct {
	mu                sync.Mutex
	projects          []models.Project
	view              View
	selectedProjectID string
	selectedLogID     string

	saver  Saver
	logger *zap.Logger
	now    func() time.Time
}

// Option configures an App.
type Option func(*App)

// WithClock overrides the clock used for timestamped slates. Tests use this.
func WithClock(now func() time.Time) Option {
	return func(a *App) { a.now = now }
}

// New creates an App owning the given collection. A nil saver disables
// persistence; a nil logger disables logging.
func New(saver Saver, logger *zap.Logger, projects []models.Project, opts ...Option) *App {
	if logger == nil {
		logger = zap.NewNop()
	}
	if projects == nil {
		projects = []models.Project{}
	}
	for i := range projects {
		projects[i].Normalize()
	}

	a := &App{
		projects: projects,
		view:     ViewHome,
		saver:    saver,
		logger:   logger,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Snapshot is a read-only view of the current state.
type Snapshot struct {
	View              View             `json:"view"`
	SelectedProjectID string           `json:"selectedProjectId,omitempty"`
	SelectedLogID     string           `json:"selectedLogId,omitempty"`
	Projects          []models.Project `json:"projects"`
}

// Snapshot returns the current view, selection and collection.
func (a *App) Snapshot() Snapshot {
	a.mu.Lock()
	defer a.mu.Unlock()
	return Snapshot{
		View:              a.view,
		SelectedProjectID: a.selectedProjectID,
		SelectedLogID:     a.selectedLogID,
		Projects:          a.projects,
	}
}

// Project returns the project with the given id, if present.
func (a *App) Project(id string) (models.Project, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	for _, p := range a.projects {
		if p.ID == id {
			return p, true
		}
	}
	return models.Project{}, false
}

// ShootLog returns a project's shoot log by id, if present.
func (a *App) ShootLog(projectID, logID string) (models.Project, models.ShootLog, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	for _, p := range a.projects {
		if p.ID != projectID {
			continue
		}
		for _, l := range p.ShootLogs {
			if l.ID == logID {
				return p, l, true
			}
		}
	}
	return models.Project{}, models.ShootLog{}, false
}

// SelectProject navigates into a project.
func (a *App) SelectProject(id string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.selectProjectLocked(id)
}

func (a *App) selectProjectLocked(id string) {
	a.selectedProjectID = id
	a.selectedLogID = ""
	a.view = ViewProject
}

// SelectLog navigates into a shoot log of the currently selected project.
// A no-op when no project is selected.
func (a *App) SelectLog(id string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.selectedProjectID == "" {
		return
	}
	a.selectLogLocked(id)
}

func (a *App) selectLogLocked(id string) {
	a.selectedLogID = id
	a.view = ViewLog
}

// Back pops one level of navigation: log → project → home. A no-op at home.
func (a *App) Back() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.backLocked()
}

func (a *App) backLocked() {
	switch a.view {
	case ViewLog:
		a.selectedLogID = ""
		a.view = ViewProject
	case ViewProject:
		a.selectedProjectID = ""
		a.view = ViewHome
	}
}

// AddProject creates a project and makes it the active selection.
// Returns nil when the name is empty after trimming.
func (a *App) AddProject(name string) *models.Project {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	project := models.Project{
		ID:                 uuid.NewString(),
		Name:               name,
		ShootLogs:          []models.ShootLog{},
		LensPresets:        []string{},
		CameraNamePresets:  []string{},
		CameraModelPresets: []string{},
	}

	next := make([]models.Project, 0, len(a.projects)+1)
	next = append(next, a.projects...)
	next = append(next, project)
	a.projects = next

	a.selectProjectLocked(project.ID)
	a.persistLocked()
	a.logger.Info("project created", zap.String("id", project.ID), zap.String("name", project.Name))
	return &project
}

// DeleteProject removes a project and everything it owns. Deleting the
// selected project falls back to the home view so the UI never points at
// a deleted entity. Unknown ids are a silent no-op.
func (a *App) DeleteProject(id string) {
	a.mu.Lock()
	defer a.mu.Unlock()

	next := make([]models.Project, 0, len(a.projects))
	for _, p := range a.projects {
		if p.ID != id {
			next = append(next, p)
		}
	}
	if len(next) == len(a.projects) {
		return
	}
	a.projects = next

	if a.selectedProjectID == id {
		a.selectedProjectID = ""
		a.selectedLogID = ""
		a.view = ViewHome
	}
	a.persistLocked()
	a.logger.Info("project deleted", zap.String("id", id))
}

// AddShootLog creates a shoot log under a project and makes it the active
// selection. Name, date and location must be non-empty after trimming and
// the date must be an ISO YYYY-MM-DD string (the per-project log ordering
// relies on zero-padded dates comparing lexicographically). Returns nil
// when validation fails or the project does not exist.
func (a *App) AddShootLog(projectID, name, date, location string) *models.ShootLog {
	name = strings.TrimSpace(name)
	date = strings.TrimSpace(date)
	location = strings.TrimSpace(location)
	if name == "" || date == "" || location == "" {
		return nil
	}
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return nil
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	log := models.ShootLog{
		ID:       uuid.NewString(),
		Name:     name,
		Date:     date,
		Location: location,
		Data:     []models.SheetRow{},
	}

	next, changed := replaceProject(a.projects, projectID, func(p models.Project) models.Project {
		logs := make([]models.ShootLog, 0, len(p.ShootLogs)+1)
		logs = append(logs, p.ShootLogs...)
		logs = append(logs, log)
		sort.SliceStable(logs, func(i, j int) bool {
			return logs[i].Date > logs[j].Date
		})
		p.ShootLogs = logs
		return p
	})
	if !changed {
		return nil
	}
	a.projects = next

	a.selectLogLocked(log.ID)
	a.persistLocked()
	a.logger.Info("shoot log created", zap.String("project", projectID), zap.String("id", log.ID), zap.String("date", log.Date))
	return &log
}

// DeleteShootLog removes a shoot log. Deleting the selected log falls back
// to the project view. Stale ids are a silent no-op.
func (a *App) DeleteShootLog(projectID, logID string) {
	a.mu.Lock()
	defer a.mu.Unlock()

	removed := false
	next, _ := replaceProject(a.projects, projectID, func(p models.Project) models.Project {
		logs := make([]models.ShootLog, 0, len(p.ShootLogs))
		for _, l := range p.ShootLogs {
			if l.ID != logID {
				logs = append(logs, l)
			}
		}
		removed = len(logs) != len(p.ShootLogs)
		p.ShootLogs = logs
		return p
	})
	if !removed {
		return
	}
	a.projects = next

	if a.selectedLogID == logID {
		a.selectedLogID = ""
		a.view = ViewProject
	}
	a.persistLocked()
	a.logger.Info("shoot log deleted", zap.String("project", projectID), zap.String("id", logID))
}

// UpdateShootLogData wholesale-replaces a log's row sequence. Stale
// project or log ids leave the collection unchanged.
func (a *App) UpdateShootLogData(projectID, logID string, rows []models.SheetRow) {
	if rows == nil {
		rows = []models.SheetRow{}
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	a.updateLogDataLocked(projectID, logID, func([]models.SheetRow) []models.SheetRow {
		return rows
	})
}

// AddRow appends an empty row to a log. The serial is count+1 (display
// only, never renumbered) and the slate is stamped with the current time,
// e.g. "2:30:05 pm -[07-03-2024]".
func (a *App) AddRow(projectID, logID string) *models.SheetRow {
	a.mu.Lock()
	defer a.mu.Unlock()

	var added *models.SheetRow
	a.updateLogDataLocked(projectID, logID, func(rows []models.SheetRow) []models.SheetRow {
		row := models.SheetRow{
			ID:    uuid.NewString(),
			SlNo:  fmt.Sprintf("%d", len(rows)+1),
			Slate: timestampSlate(a.now()),
		}
		added = &row
		next := make([]models.SheetRow, 0, len(rows)+1)
		next = append(next, rows...)
		next = append(next, row)
		return next
	})
	return added
}

// DeleteRow removes the row at the given position. Out-of-range positions
// are a silent no-op. Remaining serials keep their values.
func (a *App) DeleteRow(projectID, logID string, index int) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.updateLogDataLocked(projectID, logID, func(rows []models.SheetRow) []models.SheetRow {
		if index < 0 || index >= len(rows) {
			return rows
		}
		next := make([]models.SheetRow, 0, len(rows)-1)
		next = append(next, rows[:index]...)
		next = append(next, rows[index+1:]...)
		return next
	})
}

// UpdateCell replaces one column of the row at the given position.
// Unknown columns and out-of-range positions are a silent no-op.
func (a *App) UpdateCell(projectID, logID string, index int, column, value string) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.updateLogDataLocked(projectID, logID, func(rows []models.SheetRow) []models.SheetRow {
		if index < 0 || index >= len(rows) {
			return rows
		}
		row := rows[index]
		if !setColumn(&row, column, value) {
			return rows
		}
		next := make([]models.SheetRow, len(rows))
		copy(next, rows)
		next[index] = row
		return next
	})
}

// AppendRows bulk-appends rows to a log, assigning each a fresh id.
// Used by sample data generation. Returns the appended rows, or nil when
// the project or log no longer exists.
func (a *App) AppendRows(projectID, logID string, rows []models.SheetRow) []models.SheetRow {
	if len(rows) == 0 {
		return nil
	}
	appended := make([]models.SheetRow, len(rows))
	for i, r := range rows {
		r.ID = uuid.NewString()
		appended[i] = r
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	changed := a.updateLogDataLocked(projectID, logID, func(existing []models.SheetRow) []models.SheetRow {
		next := make([]models.SheetRow, 0, len(existing)+len(appended))
		next = append(next, existing...)
		next = append(next, appended...)
		return next
	})
	if !changed {
		return nil
	}
	return appended
}

// updateLogDataLocked applies fn to the targeted log's row sequence.
// Returns false (collection untouched) when the project or log is missing
// or fn returns the rows unchanged.
func (a *App) updateLogDataLocked(projectID, logID string, fn func([]models.SheetRow) []models.SheetRow) bool {
	touched := false
	next, _ := replaceProject(a.projects, projectID, func(p models.Project) models.Project {
		logs := make([]models.ShootLog, len(p.ShootLogs))
		for i, l := range p.ShootLogs {
			if l.ID == logID {
				rows := fn(l.Data)
				// fn returns either the original slice or a fresh one, so
				// slice identity is a reliable no-op test.
				same := len(rows) == len(l.Data) && (len(rows) == 0 || &rows[0] == &l.Data[0])
				if !same {
					touched = true
				}
				l.Data = rows
			}
			logs[i] = l
		}
		p.ShootLogs = logs
		return p
	})
	if !touched {
		return false
	}
	a.projects = next
	a.persistLocked()
	return true
}

func (a *App) persistLocked() {
	if a.saver != nil {
		a.saver.Save(a.projects)
	}
}

// replaceProject returns a new collection with fn applied to the project
// matching id. The second return reports whether a match was found; when
// false the input slice is returned as-is.
func replaceProject(projects []models.Project, id string, fn func(models.Project) models.Project) ([]models.Project, bool) {
	matched := false
	for _, p := range projects {
		if p.ID == id {
			matched = true
			break
		}
	}
	if !matched {
		return projects, false
	}

	next := make([]models.Project, len(projects))
	for i, p := range projects {
		if p.ID == id {
			next[i] = fn(p)
		} else {
			next[i] = p
		}
	}
	return next, true
}

// setColumn writes value into the named column of row. Column names match
// the JSON/CSV field keys. Returns false for unknown columns.
func setColumn(row *models.SheetRow, column, value string) bool {
	switch column {
	case "slno":
		row.SlNo = value
	case "slate":
		row.Slate = value
	case "cameraName":
		row.CameraName = value
	case "cameraModel":
		row.CameraModel = value
	case "clipNo":
		row.ClipNo = value
	case "lens":
		row.Lens = value
	case "height":
		row.Height = value
	case "focus":
		row.Focus = value
	case "fps":
		row.FPS = value
	case "shutter":
		row.Shutter = value
	case "notes":
		row.Notes = value
	default:
		return false
	}
	return true
}

// timestampSlate formats the default slate for a hand-added row:
// 12-hour time without a leading zero, lowercase am/pm, then the date
// in -[dd-mm-yyyy] form.
func timestampSlate(now time.Time) string {
	return now.Format("3:04:05 pm") + " -[" + now.Format("02-01-2006") + "]"
}
