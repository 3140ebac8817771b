package annotator

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
)

var ErrNilHost = errors.New("host is nil")

// Host is an annotator runtime reached over HTTP, mirroring the shape of the
// generation host client.
type Host url.URL

var DefaultHost = (*Host)(&url.URL{
	Scheme: "http",
	Host:   "localhost:7861",
})

func FromString(s string) *Host {
	u, err := url.Parse(s)
	if err != nil {
		return nil
	}
	return (*Host)(u)
}

func (h *Host) String() string {
	return (*url.URL)(h).String()
}

func (h *Host) Base() string {
	return fmt.Sprintf("%s://%s", h.Scheme, h.Host)
}

func (h *Host) WithPath(path string) *Host {
	if h == nil {
		return nil
	}
	p := *h
	p.Path = path
	return &p
}

func (h *Host) Alive() bool {
	if h == nil {
		return false
	}
	req, err := http.NewRequest(http.MethodHead, h.Base(), nil)
	if err != nil {
		return false
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil || resp.StatusCode != http.StatusOK {
		return false
	}
	return true
}

type runResponse struct {
	Image string `json:"image"`
	Info  string `json:"info,omitempty"`
}

// Annotate sends one image through the runtime's preprocessor endpoint and
// returns the annotated image.
func (h *Host) Annotate(req *Request) (string, error) {
	if h == nil {
		return "", ErrNilHost
	}

	normalized, err := Normalize(*req)
	if err != nil {
		return "", err
	}

	body, err := h.post("/annotator/run", normalized)
	if err != nil {
		return "", err
	}

	var response runResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return "", fmt.Errorf("error with the response: %w", err)
	}
	if response.Image == "" {
		return "", fmt.Errorf("annotator returned no image: %s", response.Info)
	}
	return response.Image, nil
}

// Unload asks the runtime to release the module's models. Modules without
// weights are a no-op locally.
func (h *Host) Unload(module string) error {
	if h == nil {
		return ErrNilHost
	}
	if !Unloadable(module) {
		return nil
	}
	_, err := h.post("/annotator/unload", Request{Module: module})
	return err
}

func (h *Host) post(path string, payload any) ([]byte, error) {
	jsonData, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	request, err := http.NewRequest(http.MethodPost, h.WithPath(path).String(), bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, err
	}
	request.Header.Set("Content-Type", "application/json; charset=UTF-8")
	request.Header.Set("Accept", "application/json")

	response, err := http.DefaultClient.Do(request)
	if err != nil {
		return nil, err
	}
	defer response.Body.Close()

	body, err := io.ReadAll(response.Body)
	if err != nil {
		return nil, fmt.Errorf("error reading response body: %w", err)
	}
	if response.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: `%v` %s", response.Status, body)
	}
	return body, nil
}
