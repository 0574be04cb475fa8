// Package gemini generates plausible sample camera log rows through the
// Gemini structured-output API. The rest of the application only sees
// "given a request, asynchronously returns rows or fails".
package gemini

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"google.golang.org/genai"

	"slatelog/models"
)

const (
	// DefaultModel is used when GEMINI_MODEL is not set.
	DefaultModel = "gemini-2.5-flash"

	samplePrompt = "Generate a list of 5 realistic camera log entries for a visual effects heavy sci-fi action scene. Include varied and plausible technical details for each entry."
)

var (
	// ErrNotConfigured means no API key is set. Callers disable the
	// feature up front instead of attempting a request.
	ErrNotConfigured = errors.New("Gemini API key is not configured. Please set the GEMINI_API_KEY environment variable.")

	// ErrGeneration is the single user-facing failure message. Transport
	// errors, credential errors and malformed responses all collapse into
	// it; details go to the log.
	ErrGeneration = errors.New("Failed to generate sample data. Please check your API key and network connection.")
)

var sampleRowSchema = &genai.Schema{
	Type: genai.TypeArray,
	Items: &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"slno":        {Type: genai.TypeString, Description: `Sequential serial number, e.g., "1", "2".`},
			"slate":       {Type: genai.TypeString, Description: `Slate and take number, e.g., "A001C002_220101_R123", "SC-10 T-1".`},
			"cameraName":  {Type: genai.TypeString, Description: `Camera identifier, e.g., "A Cam", "B Cam".`},
			"cameraModel": {Type: genai.TypeString, Description: `Camera model name, e.g., "ARRI Alexa Mini LF", "RED Komodo".`},
			"clipNo":      {Type: genai.TypeString, Description: `Clip or file name, e.g., "A001_C001.mxf".`},
			"lens":        {Type: genai.TypeString, Description: `Lens used, e.g., "50mm Cooke Anamorphic".`},
			"height":      {Type: genai.TypeString, Description: `Camera height from ground, e.g., "1.5m", "4ft".`},
			"focus":       {Type: genai.TypeString, Description: `Focal distance, e.g., "2m", "6ft".`},
			"fps":         {Type: genai.TypeString, Description: `Frames per second, e.g., "24", "48".`},
			"shutter":     {Type: genai.TypeString, Description: `Shutter angle or speed, e.g., "180d", "1/48s".`},
			"notes":       {Type: genai.TypeString, Description: `Any relevant notes for the shot, e.g., "Good take", "VFX marker tracking issue".`},
		},
		Required: []string{
			"slno", "slate", "cameraName", "cameraModel", "clipNo",
			"lens", "height", "focus", "fps", "shutter", "notes",
		},
	},
}

// Generator calls Gemini to propose sample rows.
type Generator struct {
	apiKey string
	model  string
	logger *zap.Logger
}

// NewGenerator creates a generator. An empty apiKey yields a disabled
// generator; an empty model falls back to DefaultModel.
func NewGenerator(apiKey, model string, logger *zap.Logger) *Generator {
	if model == "" {
		model = DefaultModel
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Generator{apiKey: apiKey, model: model, logger: logger}
}

// Enabled reports whether an API key is configured.
func (g *Generator) Enabled() bool {
	return g.apiKey != ""
}

// Generate requests sample rows and validates the structured response.
// Returned rows carry empty IDs; the core assigns them on append. Any
// transport or parse failure maps to ErrGeneration.
func (g *Generator) Generate(ctx context.Context) ([]models.SheetRow, error) {
	if !g.Enabled() {
		return nil, ErrNotConfigured
	}

	// The client is created per call so a misconfigured environment
	// fails the request, not startup.
	client, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: g.apiKey})
	if err != nil {
		g.logger.Error("failed to create Gemini client", zap.Error(err))
		return nil, ErrGeneration
	}

	resp, err := client.Models.GenerateContent(ctx, g.model, genai.Text(samplePrompt), &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema:   sampleRowSchema,
	})
	if err != nil {
		g.logger.Error("Gemini generate call failed", zap.Error(err))
		return nil, ErrGeneration
	}

	rows, err := decodeRows([]byte(resp.Text()))
	if err != nil {
		g.logger.Error("Gemini returned an unusable response", zap.Error(err))
		return nil, ErrGeneration
	}

	g.logger.Info("sample rows generated", zap.Int("count", len(rows)))
	return rows, nil
}

// sampleRow mirrors the response schema with pointer fields so missing
// keys are distinguishable from empty strings.
type sampleRow struct {
	SlNo        *string `json:"slno"`
	Slate       *string `json:"slate"`
	CameraName  *string `json:"cameraName"`
	CameraModel *string `json:"cameraModel"`
	ClipNo      *string `json:"clipNo"`
	Lens        *string `json:"lens"`
	Height      *string `json:"height"`
	Focus       *string `json:"focus"`
	FPS         *string `json:"fps"`
	Shutter     *string `json:"shutter"`
	Notes       *string `json:"notes"`
}

// decodeRows parses the model output. The response must be a JSON array
// and every entry must carry all row fields.
func decodeRows(data []byte) ([]models.SheetRow, error) {
	var raw []sampleRow
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("response is not a row array: %w", err)
	}
	if raw == nil {
		return nil, errors.New("response is not a row array")
	}

	rows := make([]models.SheetRow, 0, len(raw))
	for i, r := range raw {
		if r.SlNo == nil || r.Slate == nil || r.CameraName == nil || r.CameraModel == nil ||
			r.ClipNo == nil || r.Lens == nil || r.Height == nil || r.Focus == nil ||
			r.FPS == nil || r.Shutter == nil || r.Notes == nil {
			return nil, fmt.Errorf("entry %d is missing required fields", i)
		}
		rows = append(rows, models.SheetRow{
			SlNo:        *r.SlNo,
			Slate:       *r.Slate,
			CameraName:  *r.CameraName,
			CameraModel: *r.CameraModel,
			ClipNo:      *r.ClipNo,
			Lens:        *r.Lens,
			Height:      *r.Height,
			Focus:       *r.Focus,
			FPS:         *r.FPS,
			Shutter:     *r.Shutter,
			Notes:       *r.Notes,
		})
	}
	return rows, nil
}
