package annotator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAvailable(t *testing.T) {
	for _, name := range Modules() {
		assert.True(t, Available(name), name)
	}

	assert.False(t, Available("none"))
	assert.False(t, Available("invert"))
	assert.False(t, Available(""))
}

func TestModulesMatchTable(t *testing.T) {
	assert.Len(t, Modules(), len(modules))
}

func TestUnloadable(t *testing.T) {
	assert.False(t, Unloadable("canny"))
	assert.False(t, Unloadable("fake_scribble"))
	assert.True(t, Unloadable("openpose"))
	assert.False(t, Unloadable("unknown"))
}

func TestNormalize(t *testing.T) {
	req := Request{Module: "canny", Image: "aGk=", ThresholdA: 100, ThresholdB: 200}

	normalized, err := Normalize(req)
	if assert.NoError(t, err) {
		assert.Equal(t, 100.0, normalized.ThresholdA)
		assert.Equal(t, 200.0, normalized.ThresholdB)
	}
}

func TestNormalizeKeepsOnlyFirstThreshold(t *testing.T) {
	req := Request{Module: "normal_map", ThresholdA: 100, ThresholdB: 200}

	normalized, err := Normalize(req)
	if assert.NoError(t, err) {
		assert.Equal(t, 100.0, normalized.ThresholdA)
		assert.Zero(t, normalized.ThresholdB)
	}
}

func TestNormalizeDropsUnusedThresholds(t *testing.T) {
	req := Request{Module: "openpose", ThresholdA: 100, ThresholdB: 200}

	normalized, err := Normalize(req)
	if assert.NoError(t, err) {
		assert.Zero(t, normalized.ThresholdA)
		assert.Zero(t, normalized.ThresholdB)
	}
}

func TestNormalizeUnknownModule(t *testing.T) {
	_, err := Normalize(Request{Module: "binary"})
	assert.ErrorIs(t, err, ErrModuleNotAvailable)
}
