package entities

type Scripts struct {
	ControlNet *ControlNet `json:"controlnet,omitempty"`
}

func (r *TextToImageRequest) NewScripts() {
	r.Scripts = Scripts{}
}

func (r *ImageToImageRequest) NewScripts() {
	r.Scripts = Scripts{}
}

func (r *TextToImageRequest) NewControlNet() *ControlNet {
	if r.Scripts.ControlNet == nil {
		r.Scripts.NewControlNet()
	}
	return r.Scripts.ControlNet
}

func (r *ImageToImageRequest) NewControlNet() *ControlNet {
	if r.Scripts.ControlNet == nil {
		r.Scripts.NewControlNet()
	}
	return r.Scripts.ControlNet
}
