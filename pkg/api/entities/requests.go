package entities

import (
	"encoding/json"

	"github.com/ellypaws/controlnet-api/pkg/entities"
)

// TextToImageRequest is the typed /controlnet/txt2img body: the host's full
// txt2img payload plus the ControlNet units and the deprecated flat fields
// older callers still send.
type TextToImageRequest struct {
	entities.TextToImageRequest
	ControlNetUnits []UnitRequest `json:"controlnet_units"`
	DeprecatedFields
}

// DeprecatedFields is the flat request shape that predates controlnet_units.
// Every field is optional; when any of them is present the whole group is
// folded into a single unit. The image and mask lists only ever carried one
// element.
type DeprecatedFields struct {
	InputImages  []string `json:"controlnet_input_image,omitempty"`
	Masks        []string `json:"controlnet_mask,omitempty"`
	Module       *string  `json:"controlnet_module,omitempty"`
	Model        *string  `json:"controlnet_model,omitempty"`
	Weight       *float64 `json:"controlnet_weight,omitempty"`
	ResizeMode   *string  `json:"controlnet_resize_mode,omitempty"`
	Lowvram      *bool    `json:"controlnet_lowvram,omitempty"`
	ProcessorRes *int     `json:"controlnet_processor_res,omitempty"`
	ThresholdA   *float64 `json:"controlnet_threshold_a,omitempty"`
	ThresholdB   *float64 `json:"controlnet_threshold_b,omitempty"`
	Guidance     *float64 `json:"controlnet_guidance,omitempty"`
	GuessMode    *bool    `json:"controlnet_guessmode,omitempty"`
}

func (d *DeprecatedFields) Empty() bool {
	return d.InputImages == nil &&
		d.Masks == nil &&
		d.Module == nil &&
		d.Model == nil &&
		d.Weight == nil &&
		d.ResizeMode == nil &&
		d.Lowvram == nil &&
		d.ProcessorRes == nil &&
		d.ThresholdA == nil &&
		d.ThresholdB == nil &&
		d.Guidance == nil &&
		d.GuessMode == nil
}

// Unit folds the flat group into a single processing unit, binding unset
// fields to the unit defaults.
func (d *DeprecatedFields) Unit() UnitRequest {
	var unit UnitRequest
	if len(d.InputImages) > 0 {
		unit.InputImage = d.InputImages[0]
	}
	if len(d.Masks) > 0 {
		unit.Mask = d.Masks[0]
	}
	if d.Module != nil {
		unit.Module = *d.Module
	}
	if d.Model != nil {
		unit.Model = *d.Model
	}
	unit.Weight = d.Weight
	if d.ResizeMode != nil {
		unit.ResizeMode = *d.ResizeMode
	}
	unit.Lowvram = d.Lowvram
	unit.ProcessorRes = d.ProcessorRes
	unit.ThresholdA = d.ThresholdA
	unit.ThresholdB = d.ThresholdB
	unit.Guidance = d.Guidance
	unit.GuessMode = d.GuessMode
	return unit.WithDefaults()
}

// NestDeprecatedFields folds the flat controlnet_* fields into the unit list.
// When any of them is set, the group becomes unit 0; either way the flat
// fields are cleared so they never reach the host pipeline.
func (r *TextToImageRequest) NestDeprecatedFields() {
	if r.DeprecatedFields.Empty() {
		return
	}

	r.ControlNetUnits = append([]UnitRequest{r.DeprecatedFields.Unit()}, r.ControlNetUnits...)
	r.DeprecatedFields = DeprecatedFields{}
}

func UnmarshalTextToImageRequest(data []byte) (TextToImageRequest, error) {
	var r TextToImageRequest
	err := json.Unmarshal(data, &r)
	return r, err
}

func (r *TextToImageRequest) Marshal() ([]byte, error) {
	return json.Marshal(r)
}

// ImageToImageRequest is the flat /controlnet/img2img body, kept for parity
// with the original endpoint: inpainting parameters and a single flat
// ControlNet group, no controlnet_units list.
type ImageToImageRequest struct {
	InitImages                        []string       `json:"init_images"`
	Mask                              string         `json:"mask,omitempty"`
	MaskBlur                          *int64         `json:"mask_blur,omitempty"`
	InpaintingFill                    *int64         `json:"inpainting_fill,omitempty"`
	InpaintFullRes                    *bool          `json:"inpaint_full_res,omitempty"`
	InpaintFullResPadding             *int64         `json:"inpaint_full_res_padding,omitempty"`
	InpaintingMaskInvert              *int64         `json:"inpainting_mask_invert,omitempty"`
	ResizeMode                        *int64         `json:"resize_mode,omitempty"`
	DenoisingStrength                 *float64       `json:"denoising_strength,omitempty"`
	Prompt                            string         `json:"prompt"`
	NegativePrompt                    string         `json:"negative_prompt,omitempty"`
	Seed                              *int64         `json:"seed,omitempty"`
	Subseed                           *int64         `json:"subseed,omitempty"`
	SubseedStrength                   *float64       `json:"subseed_strength,omitempty"`
	SamplerIndex                      string         `json:"sampler_index,omitempty"`
	BatchSize                         *int           `json:"batch_size,omitempty"`
	NIter                             *int           `json:"n_iter,omitempty"`
	Steps                             *int           `json:"steps,omitempty"`
	CFGScale                          *float64       `json:"cfg_scale,omitempty"`
	Width                             *int           `json:"width,omitempty"`
	Height                            *int           `json:"height,omitempty"`
	RestoreFaces                      *bool          `json:"restore_faces,omitempty"`
	IncludeInitImages                 *bool          `json:"include_init_images,omitempty"`
	OverrideSettings                  map[string]any `json:"override_settings,omitempty"`
	OverrideSettingsRestoreAfterwards *bool          `json:"override_settings_restore_afterwards,omitempty"`

	ControlNetInputImages []string `json:"controlnet_input_image"`
	ControlNetMasks       []string `json:"controlnet_mask,omitempty"`
	ControlNetModule      string   `json:"controlnet_module,omitempty"`
	ControlNetModel       string   `json:"controlnet_model,omitempty"`
	ControlNetWeight      *float64 `json:"controlnet_weight,omitempty"`
	ControlNetResizeMode  string   `json:"controlnet_resize_mode,omitempty"`
	ControlNetLowvram     *bool    `json:"controlnet_lowvram,omitempty"`
	ControlNetProcessor   *int     `json:"controlnet_processor_res,omitempty"`
	ControlNetThresholdA  *float64 `json:"controlnet_threshold_a,omitempty"`
	ControlNetThresholdB  *float64 `json:"controlnet_threshold_b,omitempty"`
	ControlNetGuidance    *float64 `json:"controlnet_guidance,omitempty"`
	ControlNetGuessMode   *bool    `json:"controlnet_guessmode,omitempty"`
}

// Unit folds the flat ControlNet group into a processing unit.
func (r *ImageToImageRequest) Unit() UnitRequest {
	unit := UnitRequest{
		Module:       r.ControlNetModule,
		Model:        r.ControlNetModel,
		Weight:       r.ControlNetWeight,
		ResizeMode:   r.ControlNetResizeMode,
		Lowvram:      r.ControlNetLowvram,
		ProcessorRes: r.ControlNetProcessor,
		ThresholdA:   r.ControlNetThresholdA,
		ThresholdB:   r.ControlNetThresholdB,
		Guidance:     r.ControlNetGuidance,
		GuessMode:    r.ControlNetGuessMode,
	}
	if len(r.ControlNetInputImages) > 0 {
		unit.InputImage = r.ControlNetInputImages[0]
	}
	if len(r.ControlNetMasks) > 0 {
		unit.Mask = r.ControlNetMasks[0]
	}
	return unit.WithDefaults()
}

// HostRequest translates the flat body into the host pipeline's img2img
// payload, binding the original endpoint defaults.
func (r *ImageToImageRequest) HostRequest() *entities.ImageToImageRequest {
	req := &entities.ImageToImageRequest{
		InitImages:                        r.InitImages,
		MaskBlur:                          or(r.MaskBlur, 30),
		InpaintingFill:                    or(r.InpaintingFill, 0),
		InpaintFullRes:                    or(r.InpaintFullRes, true),
		InpaintFullResPadding:             or(r.InpaintFullResPadding, 1),
		InpaintingMaskInvert:              or(r.InpaintingMaskInvert, 1),
		ResizeMode:                        or(r.ResizeMode, 0),
		DenoisingStrength:                 or(r.DenoisingStrength, 0.7),
		Prompt:                            r.Prompt,
		Seed:                              or(r.Seed, -1),
		Subseed:                           or(r.Subseed, -1),
		SubseedStrength:                   or(r.SubseedStrength, 0),
		BatchSize:                         *or(r.BatchSize, 1),
		NIter:                             *or(r.NIter, 1),
		Steps:                             or(r.Steps, 20),
		CFGScale:                          or(r.CFGScale, 7),
		Width:                             or(r.Width, 512),
		Height:                            or(r.Height, 512),
		RestoreFaces:                      or(r.RestoreFaces, true),
		IncludeInitImages:                 or(r.IncludeInitImages, true),
		OverrideSettings:                  r.OverrideSettings,
		OverrideSettingsRestoreAfterwards: or(r.OverrideSettingsRestoreAfterwards, true),
		DoNotSaveSamples:                  ptr(true),
		DoNotSaveGrid:                     ptr(true),
	}
	if r.NegativePrompt != "" {
		req.NegativePrompt = &r.NegativePrompt
	}
	if r.Mask != "" {
		req.Mask = &r.Mask
	}
	if r.SamplerIndex != "" {
		req.SamplerName = &r.SamplerIndex
	}
	return req
}

func or[T any](v *T, fallback T) *T {
	if v != nil {
		return v
	}
	return &fallback
}

// DetectRequest is the /controlnet/detect body. Detection runs the annotator
// module over the input images without touching the generation pipeline.
type DetectRequest struct {
	Module       string   `json:"controlnet_module"`
	InputImages  []string `json:"controlnet_input_images"`
	ProcessorRes *int     `json:"controlnet_processor_res,omitempty"`
	ThresholdA   *float64 `json:"controlnet_threshold_a,omitempty"`
	ThresholdB   *float64 `json:"controlnet_threshold_b,omitempty"`
}

// DefaultDetectRes is the preprocessor resolution detect binds when the
// caller leaves it unset. It is deliberately higher than the generation-path
// default; detect output is meant to be inspected.
const DefaultDetectRes = 512

func (r *DetectRequest) WithDefaults() DetectRequest {
	out := *r
	if out.Module == "" {
		out.Module = DefaultModel // "None", rejected by the whitelist check
	}
	if out.ProcessorRes == nil {
		out.ProcessorRes = ptr(DefaultDetectRes)
	}
	if out.ThresholdA == nil {
		out.ThresholdA = ptr(float64(DefaultThresholdA))
	}
	if out.ThresholdB == nil {
		out.ThresholdB = ptr(float64(DefaultThresholdB))
	}
	return out
}
