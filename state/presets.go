package state

import (
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"slatelog/models"
)

// PresetCategory names one of the per-project preset lists.
type PresetCategory string

const (
	PresetLens        PresetCategory = "lens"
	PresetCameraName  PresetCategory = "cameraName"
	PresetCameraModel PresetCategory = "cameraModel"
)

// ParsePresetCategory maps a request path segment to a category.
func ParsePresetCategory(s string) (PresetCategory, bool) {
	switch PresetCategory(s) {
	case PresetLens, PresetCameraName, PresetCameraModel:
		return PresetCategory(s), true
	}
	return "", false
}

// presetCollator orders presets so that numeric suffixes compare as
// numbers: "Lens 2" sorts before "Lens 10". Collators buffer internally,
// so all use happens under the App mutex.
var presetCollator = collate.New(language.Und, collate.Numeric)

// addPreset trims value and appends it to list unless already present
// (exact match), then re-sorts the whole list. An empty trimmed value
// returns the list unchanged.
func addPreset(list []string, value string) []string {
	value = strings.TrimSpace(value)
	if value == "" {
		return list
	}
	for _, v := range list {
		if v == value {
			return list
		}
	}
	next := make([]string, 0, len(list)+1)
	next = append(next, list...)
	next = append(next, value)
	presetCollator.SortStrings(next)
	return next
}

// removePreset returns list with all exact matches of value removed.
// The original list comes back untouched when value is absent.
func removePreset(list []string, value string) []string {
	found := false
	for _, v := range list {
		if v == value {
			found = true
			break
		}
	}
	if !found {
		return list
	}
	next := make([]string, 0, len(list)-1)
	for _, v := range list {
		if v != value {
			next = append(next, v)
		}
	}
	return next
}

// AddPreset records a reusable field value in one of the project's preset
// categories. Duplicates and blank values are silently ignored, and the
// list stays sorted in numeric-aware ascending order.
func (a *App) AddPreset(projectID string, category PresetCategory, value string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.applyPresetLocked(projectID, category, func(list []string) []string {
		return addPreset(list, value)
	})
}

// RemovePreset deletes a preset value from the given category. Absent
// values and stale project ids are a silent no-op.
func (a *App) RemovePreset(projectID string, category PresetCategory, value string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.applyPresetLocked(projectID, category, func(list []string) []string {
		return removePreset(list, value)
	})
}

func (a *App) applyPresetLocked(projectID string, category PresetCategory, fn func([]string) []string) {
	touched := false
	next, _ := replaceProject(a.projects, projectID, func(p models.Project) models.Project {
		var list []string
		switch category {
		case PresetLens:
			list = p.LensPresets
		case PresetCameraName:
			list = p.CameraNamePresets
		case PresetCameraModel:
			list = p.CameraModelPresets
		default:
			return p
		}

		out := fn(list)
		same := len(out) == len(list) && (len(out) == 0 || &out[0] == &list[0])
		if same {
			return p
		}
		touched = true

		switch category {
		case PresetLens:
			p.LensPresets = out
		case PresetCameraName:
			p.CameraNamePresets = out
		case PresetCameraModel:
			p.CameraModelPresets = out
		}
		return p
	})
	if !touched {
		return
	}
	a.projects = next
	a.persistLocked()
}
