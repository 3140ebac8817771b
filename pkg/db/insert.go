package db

import (
	"encoding/json"
	"time"
)

// Insert statements
const (
	insertGeneration = `
	INSERT INTO generations (generation_id, endpoint, prompt, units, modules, images, info, duration_ms, created_at)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	ON CONFLICT(generation_id)
	    DO UPDATE SET
	                  endpoint=excluded.endpoint,
	                  prompt=excluded.prompt,
	                  units=excluded.units,
	                  modules=excluded.modules,
	                  images=excluded.images,
	                  info=excluded.info,
	                  duration_ms=excluded.duration_ms,
	                  created_at=excluded.created_at;
	`

	insertDetection = `
	INSERT INTO detections (detection_id, module, images, resolution, threshold_a, threshold_b, duration_ms, created_at)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	ON CONFLICT(detection_id)
	    DO UPDATE SET
	                  module=excluded.module,
	                  images=excluded.images,
	                  resolution=excluded.resolution,
	                  threshold_a=excluded.threshold_a,
	                  threshold_b=excluded.threshold_b,
	                  duration_ms=excluded.duration_ms,
	                  created_at=excluded.created_at;
	`
)

func (db Sqlite) InsertGeneration(generation Generation) error {
	modules, err := json.Marshal(generation.Modules)
	if err != nil {
		return err
	}

	if generation.CreatedAt.IsZero() {
		generation.CreatedAt = time.Now().UTC()
	}

	_, err = db.ExecContext(db.context, insertGeneration,
		generation.ID, generation.Endpoint, generation.Prompt, generation.Units,
		modules, generation.Images, generation.Info,
		generation.Duration.Milliseconds(), generation.CreatedAt.Format(time.RFC3339),
	)

	return err
}

func (db Sqlite) InsertDetection(detection Detection) error {
	if detection.CreatedAt.IsZero() {
		detection.CreatedAt = time.Now().UTC()
	}

	_, err := db.ExecContext(db.context, insertDetection,
		detection.ID, detection.Module, detection.Images, detection.Resolution,
		detection.ThresholdA, detection.ThresholdB,
		detection.Duration.Milliseconds(), detection.CreatedAt.Format(time.RFC3339),
	)

	return err
}
