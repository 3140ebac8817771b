package entities

import (
	"github.com/ellypaws/controlnet-api/pkg/entities"
)

// ImagePayload is the image/mask pair a processing unit hands to the
// pipeline script. A unit without an input image sends a nil Image; a unit
// without a mask sends the blank placeholder so the pair is always complete.
type ImagePayload struct {
	Image *string `json:"image"`
	Mask  string  `json:"mask"`
}

// ScriptArgs assembles the positional script-argument vector for the
// ControlNet pipeline script. The vector starts with the img2img flag and is
// followed by one fixed-width group per unit:
//
//	enabled, module, model, weight, {image, mask}, scribble_mode,
//	resize_mode, rgbbgr_mode, lowvram, processor_res, threshold_a,
//	threshold_b, guidance, guessmode
func ScriptArgs(isImg2Img bool, units ...UnitRequest) []any {
	args := []any{isImg2Img}
	for _, unit := range units {
		args = append(args, unitArgs(unit)...)
	}
	return args
}

func unitArgs(unit UnitRequest) []any {
	unit = unit.WithDefaults()

	payload := ImagePayload{Mask: BlankMask}
	if unit.InputImage != "" {
		payload.Image = &unit.InputImage
	}
	if unit.Mask != "" {
		payload.Mask = unit.Mask
	}

	return []any{
		true, // enabled
		unit.Module,
		unit.Model,
		*unit.Weight,
		payload,
		false, // scribble_mode
		unit.ResizeMode,
		false, // rgbbgr_mode
		*unit.Lowvram,
		*unit.ProcessorRes,
		*unit.ThresholdA,
		*unit.ThresholdB,
		*unit.Guidance,
		*unit.GuessMode,
	}
}

// ApplyUnits wires the units into an outgoing txt2img request. Modern hosts
// take them as alwayson_scripts args; legacy hosts take the positional
// script-argument vector scoped to the ControlNet script alone.
func ApplyUnits(req *entities.TextToImageRequest, units []UnitRequest, legacy bool) {
	if len(units) == 0 {
		return
	}

	if legacy {
		req.ScriptArgs = append(req.ScriptArgs, ScriptArgs(false, units...)...)
		return
	}

	controlnet := req.NewControlNet()
	for _, unit := range units {
		controlnet.Args = append(controlnet.Args, unit.Parameters())
	}
}

// ApplyUnitsImg2Img is the img2img counterpart of ApplyUnits.
func ApplyUnitsImg2Img(req *entities.ImageToImageRequest, units []UnitRequest, legacy bool) {
	if len(units) == 0 {
		return
	}

	if legacy {
		req.ScriptArgs = append(req.ScriptArgs, ScriptArgs(true, units...)...)
		return
	}

	controlnet := req.NewControlNet()
	for _, unit := range units {
		controlnet.Args = append(controlnet.Args, unit.Parameters())
	}
}
