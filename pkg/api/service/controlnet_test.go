package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestControlTypes(t *testing.T) {
	names := []string{
		"control_sd15_canny [fef5e48e]",
		"control_sd15_depth [400750f6]",
		"control_sd15_openpose [fef5e48e]",
	}

	response := ControlTypes(names)
	types := response.ControlTypes

	if all, ok := types["All"]; assert.True(t, ok) {
		assert.Equal(t, "none", all.ModuleList[0])
		assert.Equal(t, "None", all.ModelList[0])
		assert.Len(t, all.ModelList, 4)
		assert.Equal(t, "none", all.DefaultOption)
	}

	if canny, ok := types["Canny"]; assert.True(t, ok) {
		assert.Equal(t, []string{"canny"}, canny.ModuleList)
		assert.Equal(t, []string{"control_sd15_canny [fef5e48e]"}, canny.ModelList)
		assert.Equal(t, "control_sd15_canny [fef5e48e]", canny.DefaultModel)
	}

	if depth, ok := types["Depth"]; assert.True(t, ok) {
		assert.Contains(t, depth.ModuleList, "depth_leres")
		assert.Equal(t, []string{"control_sd15_depth [400750f6]"}, depth.ModelList)
	}

	// No MLSD model on disk, so the group stays empty with the sentinel.
	if mlsd, ok := types["MLSD"]; assert.True(t, ok) {
		assert.Empty(t, mlsd.ModelList)
		assert.Equal(t, "None", mlsd.DefaultModel)
	}
}

func TestDecodeBase64Image(t *testing.T) {
	encoded, bin, err := DecodeBase64Image("aGk=")
	if assert.NoError(t, err) {
		assert.Equal(t, "aGk=", encoded)
		assert.Equal(t, []byte("hi"), bin)
	}
}

func TestDecodeBase64ImageDataURI(t *testing.T) {
	encoded, bin, err := DecodeBase64Image("data:image/png;base64,aGk=")
	if assert.NoError(t, err) {
		assert.Equal(t, "aGk=", encoded)
		assert.Equal(t, []byte("hi"), bin)
	}
}

func TestDecodeBase64ImageInvalid(t *testing.T) {
	_, _, err := DecodeBase64Image("not base64!!!")
	assert.Error(t, err)
}
