package db

import (
	"database/sql"
	"encoding/json"
	"time"

	"github.com/go-errors/errors"
)

const (
	selectGenerations = `
	SELECT generation_id, endpoint, prompt, units, modules, images, info, duration_ms, created_at
	FROM generations ORDER BY created_at DESC LIMIT ?;
	`

	selectGeneration = `
	SELECT generation_id, endpoint, prompt, units, modules, images, info, duration_ms, created_at
	FROM generations WHERE generation_id = ?;
	`

	selectDetections = `
	SELECT detection_id, module, images, resolution, threshold_a, threshold_b, duration_ms, created_at
	FROM detections ORDER BY created_at DESC LIMIT ?;
	`

	selectDetection = `
	SELECT detection_id, module, images, resolution, threshold_a, threshold_b, duration_ms, created_at
	FROM detections WHERE detection_id = ?;
	`
)

var ErrNotFound = errors.Errorf("not found")

func (db Sqlite) RecentGenerations(limit int) ([]Generation, error) {
	rows, err := db.QueryContext(db.context, selectGenerations, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var generations []Generation
	for rows.Next() {
		generation, err := scanGeneration(rows.Scan)
		if err != nil {
			return nil, err
		}
		generations = append(generations, generation)
	}

	return generations, rows.Err()
}

func (db Sqlite) GetGeneration(id string) (Generation, error) {
	row := db.QueryRowContext(db.context, selectGeneration, id)
	generation, err := scanGeneration(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return generation, ErrNotFound
	}
	return generation, err
}

func (db Sqlite) RecentDetections(limit int) ([]Detection, error) {
	rows, err := db.QueryContext(db.context, selectDetections, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var detections []Detection
	for rows.Next() {
		detection, err := scanDetection(rows.Scan)
		if err != nil {
			return nil, err
		}
		detections = append(detections, detection)
	}

	return detections, rows.Err()
}

func (db Sqlite) GetDetection(id string) (Detection, error) {
	row := db.QueryRowContext(db.context, selectDetection, id)
	detection, err := scanDetection(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return detection, ErrNotFound
	}
	return detection, err
}

func scanGeneration(scan func(dest ...any) error) (Generation, error) {
	var generation Generation
	var modules []byte
	var durationMs int64
	var createdAt string

	err := scan(&generation.ID, &generation.Endpoint, &generation.Prompt, &generation.Units,
		&modules, &generation.Images, &generation.Info, &durationMs, &createdAt)
	if err != nil {
		return generation, err
	}

	if len(modules) > 0 {
		if err := json.Unmarshal(modules, &generation.Modules); err != nil {
			return generation, err
		}
	}
	generation.Duration = time.Duration(durationMs) * time.Millisecond
	generation.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	return generation, nil
}

func scanDetection(scan func(dest ...any) error) (Detection, error) {
	var detection Detection
	var durationMs int64
	var createdAt string

	err := scan(&detection.ID, &detection.Module, &detection.Images, &detection.Resolution,
		&detection.ThresholdA, &detection.ThresholdB, &durationMs, &createdAt)
	if err != nil {
		return detection, err
	}

	detection.Duration = time.Duration(durationMs) * time.Millisecond
	detection.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	return detection, nil
}
