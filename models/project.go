package models

// Project is the top-level container for a production.
// It owns its shoot logs and its per-project preset lists outright;
// nothing is shared between projects, and deleting a project deletes
// everything underneath it.
type Project struct {
	ID                 string     `json:"id"`
	Name               string     `json:"name"`
	ShootLogs          []ShootLog `json:"shootLogs"`
	LensPresets        []string   `json:"lensPresets,omitempty"`
	CameraNamePresets  []string   `json:"cameraNamePresets,omitempty"`
	CameraModelPresets []string   `json:"cameraModelPresets,omitempty"`
}

// Normalize fills in fields that may be absent from persisted blobs.
// Preset lists are omitempty and older blobs may predate them entirely,
// and a log's row slice can round-trip as null. Absent means empty, never nil.
func (p *Project) Normalize() {
	if p.ShootLogs == nil {
		p.ShootLogs = []ShootLog{}
	}
	for i := range p.ShootLogs {
		if p.ShootLogs[i].Data == nil {
			p.ShootLogs[i].Data = []SheetRow{}
		}
	}
	if p.LensPresets == nil {
		p.LensPresets = []string{}
	}
	if p.CameraNamePresets == nil {
		p.CameraNamePresets = []string{}
	}
	if p.CameraModelPresets == nil {
		p.CameraModelPresets = []string{}
	}
}

// CreateProjectRequest is the payload for creating a new project.
type CreateProjectRequest struct {
	Name string `json:"name" binding:"required"`
}

// ProjectsResponse is the standard response format for project listings.
type ProjectsResponse struct {
	Projects []Project `json:"projects"`
	Total    int       `json:"total"`
}
