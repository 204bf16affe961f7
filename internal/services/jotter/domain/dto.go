// Package domain holds DTOs and ports for the jotter pipeline service
package domain

import (
	"smartjotter/internal/adapters/hostapp"
	"smartjotter/internal/adapters/ink"
	"smartjotter/internal/core/pipeline"
)

// InputKind selects the capture surface
type InputKind string

// Input kinds; switching kind discards data held for the other
const (
	KindText    InputKind = "text"
	KindDrawing InputKind = "drawing"
)

// SetModeInput switches the capture mode for a run
type SetModeInput struct {
	Kind string `json:"kind" validate:"required,oneof=text drawing" example:"text"`
}

// TextInput replaces the in-progress free text
type TextInput struct {
	Text string `json:"text" example:"John Smith, 07712345678, Ford Focus 2018, YA19 ABC, Engine warning light"`
}

// DrawingInput replaces the in-progress drawing with a raster image
type DrawingInput struct {
	ImagePNG string `json:"image_png" validate:"required,base64" example:"iVBORw0KGgo="`
	Width    int    `json:"width,omitempty" validate:"omitempty,min=1" example:"800"`
	Height   int    `json:"height,omitempty" validate:"omitempty,min=1" example:"400"`
}

// StrokesInput appends strokes to the in-progress drawing
type StrokesInput struct {
	Strokes []ink.Stroke `json:"strokes" validate:"required,min=1,dive"`
}

// EditInput carries a replacement value for one record field
type EditInput struct {
	Value string `json:"value" example:"07700 900123"`
}

// DispatchInput selects the creation target for a finished record
type DispatchInput struct {
	Action string `json:"action" validate:"required,oneof=booking estimate" example:"booking"`
}

// FieldView is one record field with its value and confidence band
type FieldView struct {
	Name    string   `json:"name"`
	Value   string   `json:"value"`
	Band    string   `json:"band"`
	Editing bool     `json:"editing"`
	Score   *float64 `json:"score,omitempty"`
}

// RecordView is the review-surface projection of the structured record
type RecordView struct {
	Fields            []FieldView `json:"fields"`
	Actionable        bool        `json:"actionable"`
	MissingRequired   []string    `json:"missing_required,omitempty"`
	HasVehicleContext bool        `json:"has_vehicle_context"`
	IsMock            bool        `json:"is_mock"`
	OverallBand       string      `json:"overall_band"`
}

// RunView is the full state of one pipeline run as shown to the client
type RunView struct {
	ID        string             `json:"id"`
	Stage     string             `json:"stage"`
	Kind      InputKind          `json:"kind"`
	Text      string             `json:"text,omitempty"`
	TextLimit int                `json:"text_limit"`
	Strokes   int                `json:"strokes"`
	HasRaster bool               `json:"has_raster"`
	Record    *RecordView        `json:"record,omitempty"`
	LastError *pipeline.RunError `json:"last_error,omitempty"`
	Notice    string             `json:"notice,omitempty"`
	Draft     *hostapp.DraftRef  `json:"draft,omitempty"`
}
