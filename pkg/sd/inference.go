package sd

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/ellypaws/controlnet-api/pkg/entities"
)

var ErrUnknownSampler = errors.New("sampler not found")

// TextToImage submits a generation request to the host pipeline and returns
// the decoded response envelope.
func (h *Host) TextToImage(req *entities.TextToImageRequest) (*entities.TextToImageResponse, error) {
	if req == nil {
		return nil, errors.New("missing request")
	}

	jsonData, err := req.Marshal()
	if err != nil {
		return nil, fmt.Errorf("error marshalling request: %w", err)
	}

	body, err := h.POST("/sdapi/v1/txt2img", jsonData)
	if err != nil {
		return nil, err
	}

	response, err := entities.UnmarshalTextToImageResponse(body)
	if err != nil {
		return nil, fmt.Errorf("error with the response: %w", err)
	}

	return &response, nil
}

// ImageToImage is the img2img counterpart of TextToImage. The host returns
// the same response envelope for both.
func (h *Host) ImageToImage(req *entities.ImageToImageRequest) (*entities.TextToImageResponse, error) {
	if req == nil {
		return nil, errors.New("missing request")
	}

	jsonData, err := req.Marshal()
	if err != nil {
		return nil, fmt.Errorf("error marshalling request: %w", err)
	}

	body, err := h.POST("/sdapi/v1/img2img", jsonData)
	if err != nil {
		return nil, err
	}

	response, err := entities.UnmarshalTextToImageResponse(body)
	if err != nil {
		return nil, fmt.Errorf("error with the response: %w", err)
	}

	return &response, nil
}

// Samplers returns the sampler list the host pipeline advertises.
func (h *Host) Samplers() ([]entities.Sampler, error) {
	body, err := h.GET("/sdapi/v1/samplers")
	if err != nil {
		return nil, err
	}

	var samplers []entities.Sampler
	if err := json.Unmarshal(body, &samplers); err != nil {
		return nil, fmt.Errorf("error with the response: %w", err)
	}

	return samplers, nil
}

// ValidateSampler resolves a sampler name or alias against the host's list.
// An empty name is accepted and left for the host to default.
func (h *Host) ValidateSampler(name string) error {
	if name == "" {
		return nil
	}

	samplers, err := h.Samplers()
	if err != nil {
		return err
	}

	for _, sampler := range samplers {
		if sampler.Name == name {
			return nil
		}
		for _, alias := range sampler.Aliases {
			if alias == name {
				return nil
			}
		}
	}

	return ErrUnknownSampler
}

func (h *Host) Progress() (*entities.ProgressResponse, error) {
	body, err := h.GET("/sdapi/v1/progress")
	if err != nil {
		return nil, err
	}

	response, err := entities.UnmarshalProgressResponse(body)
	if err != nil {
		return nil, fmt.Errorf("error with the response: %w", err)
	}

	return &response, nil
}

func (h *Host) Interrupt() error {
	_, err := h.POST("/sdapi/v1/interrupt", nil)
	return err
}
