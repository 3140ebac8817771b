package entities

import (
	"github.com/ellypaws/controlnet-api/pkg/entities"
)

// Defaults for a ControlNet processing unit. A request field left unset binds
// to these, and the deprecated flat fields resolve to them as well.
const (
	DefaultModule       = "none"
	DefaultModel        = "None"
	DefaultWeight       = 1.0
	DefaultResizeMode   = string(entities.ResizeModeScaleToFit)
	DefaultProcessorRes = 64
	DefaultThresholdA   = 64
	DefaultThresholdB   = 64
	DefaultGuidance     = 1.0
	DefaultGuessMode    = true
)

// BlankMask is a 1x1 black PNG used when a unit carries an image but no mask,
// so the host always receives a well-formed image/mask pair.
const BlankMask = "iVBORw0KGgoAAAANSUhEUgAAAAEAAAABCAYAAAAfFcSJAAAADUlEQVR42mNkYPhfDwAChwGA60e6kgAAAABJRU5ErkJggg=="

// UnitRequest is one ControlNet processing unit as callers send it.
// Numeric and boolean fields are pointers so an explicit zero survives the
// trip through the defaults.
type UnitRequest struct {
	InputImage   string   `json:"input_image"`
	Mask         string   `json:"mask"`
	Module       string   `json:"module"`
	Model        string   `json:"model"`
	Weight       *float64 `json:"weight,omitempty"`
	ResizeMode   string   `json:"resize_mode,omitempty"`
	Lowvram      *bool    `json:"lowvram,omitempty"`
	ProcessorRes *int     `json:"processor_res,omitempty"`
	ThresholdA   *float64 `json:"threshold_a,omitempty"`
	ThresholdB   *float64 `json:"threshold_b,omitempty"`
	Guidance     *float64 `json:"guidance,omitempty"`
	GuessMode    *bool    `json:"guessmode,omitempty"`
}

// WithDefaults returns a copy of the unit with every unset field bound to its
// documented default.
func (u UnitRequest) WithDefaults() UnitRequest {
	if u.Module == "" {
		u.Module = DefaultModule
	}
	if u.Model == "" {
		u.Model = DefaultModel
	}
	if u.ResizeMode == "" {
		u.ResizeMode = DefaultResizeMode
	}
	if u.Weight == nil {
		u.Weight = ptr(DefaultWeight)
	}
	if u.Lowvram == nil {
		u.Lowvram = ptr(false)
	}
	if u.ProcessorRes == nil {
		u.ProcessorRes = ptr(DefaultProcessorRes)
	}
	if u.ThresholdA == nil {
		u.ThresholdA = ptr(float64(DefaultThresholdA))
	}
	if u.ThresholdB == nil {
		u.ThresholdB = ptr(float64(DefaultThresholdB))
	}
	if u.Guidance == nil {
		u.Guidance = ptr(DefaultGuidance)
	}
	if u.GuessMode == nil {
		u.GuessMode = ptr(DefaultGuessMode)
	}
	return u
}

// Parameters translates the unit into the host pipeline's alwayson_scripts
// shape.
func (u UnitRequest) Parameters() *entities.ControlNetParameters {
	u = u.WithDefaults()

	params := &entities.ControlNetParameters{
		Module:       u.Module,
		Model:        u.Model,
		Weight:       *u.Weight,
		ResizeMode:   entities.ResizeMode(u.ResizeMode),
		Lowvram:      *u.Lowvram,
		ProcessorRes: *u.ProcessorRes,
		ThresholdA:   *u.ThresholdA,
		ThresholdB:   *u.ThresholdB,
		Guidance:     *u.Guidance,
		GuessMode:    *u.GuessMode,
		GuidanceEnd:  1,
	}
	if u.InputImage != "" {
		params.InputImage = &u.InputImage
	}
	if u.Mask != "" {
		params.Mask = &u.Mask
	}
	return params
}

func ptr[T any](v T) *T {
	return &v
}
