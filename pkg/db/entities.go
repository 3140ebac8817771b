package db

import "time"

// Generation is one recorded /controlnet/txt2img or /controlnet/img2img call.
type Generation struct {
	ID        string
	Endpoint  string
	Prompt    string
	Units     int
	Modules   []string
	Images    int
	Info      string
	Duration  time.Duration
	CreatedAt time.Time
}

// Detection is one recorded /controlnet/detect call.
type Detection struct {
	ID         string
	Module     string
	Images     int
	Resolution int
	ThresholdA float64
	ThresholdB float64
	Duration   time.Duration
	CreatedAt  time.Time
}
