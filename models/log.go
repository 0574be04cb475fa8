package models

// SheetRow is one logged camera take. Every field is free-form text;
// nothing is parsed numerically. ID is assigned once at creation and is
// the only stable key for a row. SlNo is a display serial: it is set to
// count+1 on append and deliberately not renumbered on delete.
type SheetRow struct {
	ID          string `json:"id"`
	SlNo        string `json:"slno"`
	Slate       string `json:"slate"`
	CameraName  string `json:"cameraName"`
	CameraModel string `json:"cameraModel"`
	ClipNo      string `json:"clipNo"`
	Lens        string `json:"lens"`
	Height      string `json:"height"`
	Focus       string `json:"focus"`
	FPS         string `json:"fps"`
	Shutter     string `json:"shutter"`
	Notes       string `json:"notes"`
}

// ShootLog is one day (or unit) of shooting within a project.
// Date is an ISO YYYY-MM-DD string; logs are kept sorted descending by
// that string within their project.
type ShootLog struct {
	ID       string     `json:"id"`
	Name     string     `json:"name"`
	Date     string     `json:"date"`
	Location string     `json:"location"`
	Data     []SheetRow `json:"data"`
}

// CreateShootLogRequest is the payload for adding a shoot log to a project.
type CreateShootLogRequest struct {
	Name     string `json:"name" binding:"required"`
	Date     string `json:"date" binding:"required"`
	Location string `json:"location" binding:"required"`
}

// UpdateRowsRequest wholesale-replaces a shoot log's row sequence.
// Used for single-cell edits (the caller sends the full sequence with
// one row changed) as well as bulk changes.
type UpdateRowsRequest struct {
	Rows []SheetRow `json:"rows"`
}

// UpdateCellRequest changes one column of the row at the given position.
type UpdateCellRequest struct {
	Column string `json:"column" binding:"required"`
	Value  string `json:"value"`
}

// PresetRequest adds or removes a reusable field value in one of the
// project's preset categories.
type PresetRequest struct {
	Value string `json:"value" binding:"required"`
}
