package db

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func newTestDB(t *testing.T) *Sqlite {
	t.Helper()
	db, err := New(context.WithValue(context.Background(), ":memory:", true))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestInsertGeneration(t *testing.T) {
	db := newTestDB(t)

	generation := Generation{
		ID:       "a0f9c1f3",
		Endpoint: "/controlnet/txt2img",
		Prompt:   "a house",
		Units:    2,
		Modules:  []string{"canny", "depth"},
		Images:   1,
		Info:     `{"seed": 1}`,
		Duration: 1500 * time.Millisecond,
	}

	if !assert.NoError(t, db.InsertGeneration(generation)) {
		return
	}

	got, err := db.GetGeneration("a0f9c1f3")
	if assert.NoError(t, err) {
		assert.Equal(t, generation.Endpoint, got.Endpoint)
		assert.Equal(t, generation.Prompt, got.Prompt)
		assert.Equal(t, generation.Modules, got.Modules)
		assert.Equal(t, generation.Duration, got.Duration)
		assert.False(t, got.CreatedAt.IsZero())
	}
}

func TestInsertGenerationUpsert(t *testing.T) {
	db := newTestDB(t)

	generation := Generation{ID: "a0f9c1f3", Endpoint: "/controlnet/txt2img", Prompt: "a house"}
	assert.NoError(t, db.InsertGeneration(generation))

	generation.Prompt = "a castle"
	assert.NoError(t, db.InsertGeneration(generation))

	got, err := db.GetGeneration("a0f9c1f3")
	if assert.NoError(t, err) {
		assert.Equal(t, "a castle", got.Prompt)
	}

	generations, err := db.RecentGenerations(10)
	if assert.NoError(t, err) {
		assert.Len(t, generations, 1)
	}
}

func TestGetGenerationNotFound(t *testing.T) {
	db := newTestDB(t)

	_, err := db.GetGeneration("missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRecentGenerationsOrder(t *testing.T) {
	db := newTestDB(t)

	first := Generation{ID: "first", Endpoint: "/controlnet/txt2img", Prompt: "one", CreatedAt: time.Now().Add(-time.Hour)}
	second := Generation{ID: "second", Endpoint: "/controlnet/txt2img", Prompt: "two", CreatedAt: time.Now()}
	assert.NoError(t, db.InsertGeneration(first))
	assert.NoError(t, db.InsertGeneration(second))

	generations, err := db.RecentGenerations(10)
	if assert.NoError(t, err) && assert.Len(t, generations, 2) {
		assert.Equal(t, "second", generations[0].ID)
		assert.Equal(t, "first", generations[1].ID)
	}
}

func TestDeleteGeneration(t *testing.T) {
	db := newTestDB(t)

	assert.NoError(t, db.InsertGeneration(Generation{ID: "a0f9c1f3", Endpoint: "/controlnet/txt2img", Prompt: "a house"}))
	assert.NoError(t, db.DeleteGeneration("a0f9c1f3"))
	assert.ErrorIs(t, db.DeleteGeneration("a0f9c1f3"), ErrNotFound)
}

func TestInsertDetection(t *testing.T) {
	db := newTestDB(t)

	detection := Detection{
		ID:         "b1e8d2c4",
		Module:     "canny",
		Images:     3,
		Resolution: 512,
		ThresholdA: 100,
		ThresholdB: 200,
		Duration:   300 * time.Millisecond,
	}

	if !assert.NoError(t, db.InsertDetection(detection)) {
		return
	}

	detections, err := db.RecentDetections(10)
	if assert.NoError(t, err) && assert.Len(t, detections, 1) {
		assert.Equal(t, "canny", detections[0].Module)
		assert.Equal(t, 512, detections[0].Resolution)
		assert.Equal(t, 100.0, detections[0].ThresholdA)
	}

	got, err := db.GetDetection("b1e8d2c4")
	if assert.NoError(t, err) {
		assert.Equal(t, "canny", got.Module)
		assert.Equal(t, 300*time.Millisecond, got.Duration)
	}

	_, err = db.GetDetection("missing")
	assert.ErrorIs(t, err, ErrNotFound)

	assert.NoError(t, db.DeleteDetection("b1e8d2c4"))
	assert.ErrorIs(t, db.DeleteDetection("b1e8d2c4"), ErrNotFound)
}
