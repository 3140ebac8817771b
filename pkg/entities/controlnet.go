package entities

// ControlNetParameters represents the parameters for a single ControlNet
// processing unit as the host pipeline expects them inside alwayson_scripts.
type ControlNetParameters struct {
	InputImage    *string     `json:"input_image,omitempty"`    // InputImage is the conditioning image for this unit. The default is nil.
	Mask          *string     `json:"mask,omitempty"`           // Mask limits which region of the conditioning image applies. The default is nil.
	Module        string      `json:"module,omitempty"`         // Module selects the preprocessor for the image. Defaults to "none".
	Model         string      `json:"model,omitempty"`          // Model is the conditioning model name. Defaults to "None".
	Weight        float64     `json:"weight,omitempty"`         // Weight denotes this unit's weight. Defaults to 1.
	ResizeMode    ResizeMode  `json:"resize_mode,omitempty"`    // ResizeMode determines how to resize the input image. Defaults to "Scale to Fit (Inner Fit)".
	Lowvram       bool        `json:"lowvram,omitempty"`        // Lowvram asks the host to compensate for low GPU memory. Defaults to false.
	ProcessorRes  int         `json:"processor_res,omitempty"`  // ProcessorRes is the resolution for the preprocessor. Defaults to 64.
	ThresholdA    float64     `json:"threshold_a,omitempty"`    // ThresholdA is the first preprocessor parameter when it accepts arguments. Defaults to 64.
	ThresholdB    float64     `json:"threshold_b,omitempty"`    // ThresholdB, like ThresholdA, is a preprocessor parameter and defaults to 64.
	Guidance      float64     `json:"guidance,omitempty"`       // Guidance is the conditioning strength. Defaults to 1.
	GuidanceStart float64     `json:"guidance_start,omitempty"` // GuidanceStart is the generation ratio at which this unit starts having an impact. Defaults to 0.
	GuidanceEnd   float64     `json:"guidance_end,omitempty"`   // GuidanceEnd is the generation ratio at which this unit discontinues its impact. Defaults to 1.
	GuessMode     bool        `json:"guessmode,omitempty"`      // GuessMode lets the model estimate the prompt from the conditioning image alone.
	ControlMode   ControlMode `json:"control_mode,omitempty"`   // ControlMode balances the prompt against the control model. Defaults to "Balanced".
}

type ControlMode string

const (
	ControlModeBalanced ControlMode = "Balanced"
	ControlModePrompt   ControlMode = "My prompt is more important"
	ControlModeControl  ControlMode = "ControlNet is more important"
)

type ResizeMode string

const (
	ResizeModeJustResize ResizeMode = "Just Resize"
	ResizeModeScaleToFit ResizeMode = "Scale to Fit (Inner Fit)"
	ResizeModeEnvelope   ResizeMode = "Envelope (Outer Fit)"
)

type ControlNet struct {
	Args []*ControlNetParameters `json:"args,omitempty"`
}

func (s *Scripts) NewControlNet() {
	s.ControlNet = &ControlNet{}
}
