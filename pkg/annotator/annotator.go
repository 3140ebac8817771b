// Package annotator is the client side of the preprocessing runtime: the
// collaborator that turns raw images into conditioning signals (edge maps,
// depth, pose and so on). The models themselves live behind the runtime; this
// package only knows which modules exist and which parameters each forwards.
package annotator

import "errors"

var ErrModuleNotAvailable = errors.New("module not available")

// Request is one image for one preprocessor module.
type Request struct {
	Module       string  `json:"module"`
	Image        string  `json:"image"`
	ProcessorRes int     `json:"processor_res,omitempty"`
	ThresholdA   float64 `json:"threshold_a,omitempty"`
	ThresholdB   float64 `json:"threshold_b,omitempty"`
}

// Annotator runs preprocessor modules and releases their models afterwards.
type Annotator interface {
	Annotate(req *Request) (string, error)
	Unload(module string) error
}

// module describes how a preprocessor consumes the request parameters.
// Modules that ignore a threshold never forward it; normal_map only reads
// the first one. fake_scribble runs on hed weights but is never part of
// the unload chain.
type module struct {
	thresholdA bool
	thresholdB bool
	unloadable bool
}

var modules = map[string]module{
	"canny":         {thresholdA: true, thresholdB: true},
	"depth":         {unloadable: true},
	"depth_leres":   {thresholdA: true, thresholdB: true, unloadable: true},
	"fake_scribble": {},
	"hed":           {unloadable: true},
	"mlsd":          {thresholdA: true, thresholdB: true, unloadable: true},
	"normal_map":    {thresholdA: true, unloadable: true},
	"openpose":      {unloadable: true},
	"segmentation":  {unloadable: true},
}

// Modules returns the preprocessor whitelist in a stable order.
func Modules() []string {
	return []string{
		"canny",
		"depth",
		"depth_leres",
		"fake_scribble",
		"hed",
		"mlsd",
		"normal_map",
		"openpose",
		"segmentation",
	}
}

func Available(name string) bool {
	_, ok := modules[name]
	return ok
}

// Unloadable reports whether the module holds model weights worth releasing
// after a batch. canny is pure image processing and keeps nothing loaded.
func Unloadable(name string) bool {
	return modules[name].unloadable
}

// Normalize trims the request down to what the module actually consumes.
func Normalize(req Request) (Request, error) {
	m, ok := modules[req.Module]
	if !ok {
		return req, ErrModuleNotAvailable
	}
	if !m.thresholdA {
		req.ThresholdA = 0
	}
	if !m.thresholdB {
		req.ThresholdB = 0
	}
	return req, nil
}
