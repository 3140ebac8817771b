package entities

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUnitRequest_WithDefaults(t *testing.T) {
	unit := UnitRequest{}.WithDefaults()

	assert.Equal(t, "none", unit.Module)
	assert.Equal(t, "None", unit.Model)
	assert.Equal(t, "Scale to Fit (Inner Fit)", unit.ResizeMode)
	assert.Equal(t, 1.0, *unit.Weight)
	assert.Equal(t, 64, *unit.ProcessorRes)
	assert.Equal(t, 64.0, *unit.ThresholdA)
	assert.Equal(t, 64.0, *unit.ThresholdB)
	assert.Equal(t, 1.0, *unit.Guidance)
	assert.False(t, *unit.Lowvram)
	assert.True(t, *unit.GuessMode)
}

func TestUnitRequest_WithDefaultsKeepsExplicitZero(t *testing.T) {
	weight := 0.0
	guess := false
	unit := UnitRequest{Weight: &weight, GuessMode: &guess}.WithDefaults()

	assert.Equal(t, 0.0, *unit.Weight)
	assert.False(t, *unit.GuessMode)
}

func TestNestDeprecatedFields(t *testing.T) {
	body := `{
		"prompt": "a house",
		"controlnet_input_image": ["aGk="],
		"controlnet_module": "canny",
		"controlnet_model": "control_sd15_canny [fef5e48e]",
		"controlnet_weight": 0.5
	}`

	request, err := UnmarshalTextToImageRequest([]byte(body))
	if !assert.NoError(t, err) {
		return
	}
	assert.False(t, request.DeprecatedFields.Empty())

	request.NestDeprecatedFields()

	if assert.Len(t, request.ControlNetUnits, 1) {
		unit := request.ControlNetUnits[0]
		assert.Equal(t, "aGk=", unit.InputImage)
		assert.Equal(t, "canny", unit.Module)
		assert.Equal(t, "control_sd15_canny [fef5e48e]", unit.Model)
		assert.Equal(t, 0.5, *unit.Weight)
	}

	assert.True(t, request.DeprecatedFields.Empty())

	// The flat fields must not survive into the outgoing payload.
	out, err := request.Marshal()
	if assert.NoError(t, err) {
		assert.NotContains(t, string(out), "controlnet_module")
	}
}

func TestNestDeprecatedFieldsPrependsToUnits(t *testing.T) {
	module := "depth"
	request := TextToImageRequest{
		ControlNetUnits:  []UnitRequest{{Module: "canny"}},
		DeprecatedFields: DeprecatedFields{Module: &module},
	}

	request.NestDeprecatedFields()

	if assert.Len(t, request.ControlNetUnits, 2) {
		assert.Equal(t, "depth", request.ControlNetUnits[0].Module)
		assert.Equal(t, "canny", request.ControlNetUnits[1].Module)
	}
}

func TestNestDeprecatedFieldsNoop(t *testing.T) {
	request := TextToImageRequest{
		ControlNetUnits: []UnitRequest{{Module: "canny"}},
	}

	request.NestDeprecatedFields()

	assert.Len(t, request.ControlNetUnits, 1)
}

func TestImageToImageRequest_Unit(t *testing.T) {
	request := ImageToImageRequest{
		ControlNetInputImages: []string{"aGk="},
		ControlNetModule:      "hed",
	}

	unit := request.Unit()

	assert.Equal(t, "aGk=", unit.InputImage)
	assert.Equal(t, "hed", unit.Module)
	assert.Equal(t, "None", unit.Model)
	assert.Equal(t, 1.0, *unit.Weight)
}

func TestImageToImageRequest_HostRequestDefaults(t *testing.T) {
	request := ImageToImageRequest{
		InitImages:   []string{"aGk="},
		Prompt:       "a house",
		SamplerIndex: "Euler a",
	}

	host := request.HostRequest()

	assert.Equal(t, int64(30), *host.MaskBlur)
	assert.Equal(t, int64(1), *host.InpaintingMaskInvert)
	assert.Equal(t, 0.7, *host.DenoisingStrength)
	assert.Equal(t, int64(-1), *host.Seed)
	assert.Equal(t, 20, *host.Steps)
	assert.Equal(t, 7.0, *host.CFGScale)
	assert.Equal(t, 512, *host.Width)
	assert.Equal(t, 512, *host.Height)
	assert.True(t, *host.RestoreFaces)
	assert.True(t, *host.IncludeInitImages)
	assert.True(t, *host.DoNotSaveSamples)
	assert.True(t, *host.DoNotSaveGrid)
	assert.Equal(t, "Euler a", *host.SamplerName)
	assert.Nil(t, host.NegativePrompt)
}

func TestDetectRequest_WithDefaults(t *testing.T) {
	detect := DetectRequest{Module: "canny"}
	request := detect.WithDefaults()

	assert.Equal(t, "canny", request.Module)
	assert.Equal(t, 512, *request.ProcessorRes)
	assert.Equal(t, 64.0, *request.ThresholdA)
	assert.Equal(t, 64.0, *request.ThresholdB)
}

func TestDetectRequest_WithDefaultsEmptyModule(t *testing.T) {
	var detect DetectRequest
	request := detect.WithDefaults()

	// Binds the sentinel model name, which no whitelist accepts.
	assert.Equal(t, "None", request.Module)
}

func TestDeprecatedFieldsRoundTrip(t *testing.T) {
	weight := 0.75
	fields := DeprecatedFields{Weight: &weight}

	data, err := json.Marshal(fields)
	if !assert.NoError(t, err) {
		return
	}
	assert.JSONEq(t, `{"controlnet_weight": 0.75}`, string(data))
}
