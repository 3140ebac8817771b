package entities

// GenerationResponse is the envelope for /controlnet/txt2img and
// /controlnet/img2img, mirroring the host's own response shape.
type GenerationResponse struct {
	Images []string `json:"images"`
	Info   string   `json:"info"`
}

// DetectResponse carries the annotated images. Info is "Success" or one of
// the fixed refusal strings ("Module not available", "No image selected").
type DetectResponse struct {
	Images []string `json:"images"`
	Info   string   `json:"info"`
}

type ModelListResponse struct {
	ModelList []string `json:"model_list"`
}

type ModuleListResponse struct {
	ModuleList []string `json:"module_list"`
}

type VersionResponse struct {
	Version int `json:"version"`
}

// SettingsResponse reports the effective limits of this API surface.
type SettingsResponse struct {
	MaxUnits        int  `json:"control_net_unit_count"`
	MaxDetectRes    int  `json:"max_detect_resolution"`
	LegacyScripts   bool `json:"legacy_script_args"`
	ModelsAvailable int  `json:"models_available"`
}

type ControlType struct {
	ModuleList    []string `json:"module_list"`
	ModelList     []string `json:"model_list"`
	DefaultOption string   `json:"default_option"`
	DefaultModel  string   `json:"default_model"`
}

type ControlTypesResponse struct {
	ControlTypes map[string]ControlType `json:"control_types"`
}

// HistoryEntry is one persisted API call, with human-readable timestamps for
// the /history listing.
type HistoryEntry struct {
	ID        string `json:"id"`
	Endpoint  string `json:"endpoint"`
	Module    string `json:"module,omitempty"`
	Units     int    `json:"units,omitempty"`
	Images    int    `json:"images"`
	Info      string `json:"info,omitempty"`
	Duration  string `json:"duration"`
	CreatedAt string `json:"created_at"`
	Ago       string `json:"ago"`
}
