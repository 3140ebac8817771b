package api

import (
	"context"
	"encoding/json"
	"net/http"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/ellypaws/controlnet-api/pkg/api/entities"
	"github.com/ellypaws/controlnet-api/pkg/db"
	"github.com/ellypaws/controlnet-api/pkg/models"
)

func useDatabase(t *testing.T) *db.Sqlite {
	t.Helper()
	previous := Database
	database, err := db.New(context.WithValue(context.Background(), ":memory:", true))
	if err != nil {
		t.Fatal(err)
	}
	Database = database
	t.Cleanup(func() {
		Database = previous
		database.Close()
	})
	return database
}

func TestGetVersion(t *testing.T) {
	c, rec := newContext(t, http.MethodGet, "/controlnet/version", "")

	if assert.NoError(t, GetVersion(c)) {
		assert.Equal(t, http.StatusOK, rec.Code)

		var response entities.VersionResponse
		if assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response)) {
			assert.Equal(t, Version, response.Version)
		}
	}
}

func TestGetModuleList(t *testing.T) {
	c, rec := newContext(t, http.MethodGet, "/controlnet/module_list", "")

	if assert.NoError(t, GetModuleList(c)) {
		assert.Equal(t, http.StatusOK, rec.Code)

		var response entities.ModuleListResponse
		if assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response)) {
			assert.Contains(t, response.ModuleList, "canny")
			assert.Contains(t, response.ModuleList, "openpose")
			assert.NotContains(t, response.ModuleList, "none")
		}
	}
}

func TestGetModelList(t *testing.T) {
	dir := t.TempDir()
	assert.NoError(t, os.WriteFile(filepath.Join(dir, "control_sd15_canny.pth"), []byte("weights"), 0644))

	previous := Models
	Models = models.New(dir)
	t.Cleanup(func() { Models = previous })

	c, rec := newContext(t, http.MethodGet, "/controlnet/model_list?update=true", "")

	if assert.NoError(t, GetModelList(c)) {
		assert.Equal(t, http.StatusOK, rec.Code)

		var response entities.ModelListResponse
		if assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response)) {
			if assert.Len(t, response.ModelList, 1) {
				assert.Contains(t, response.ModelList[0], "control_sd15_canny [")
			}
		}
	}
}

func TestGetSettings(t *testing.T) {
	c, rec := newContext(t, http.MethodGet, "/controlnet/settings", "")

	if assert.NoError(t, GetSettings(c)) {
		assert.Equal(t, http.StatusOK, rec.Code)

		var response entities.SettingsResponse
		if assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response)) {
			assert.Equal(t, MaxUnits, response.MaxUnits)
			assert.Equal(t, MaxDetectRes, response.MaxDetectRes)
		}
	}
}

func TestGetHistory(t *testing.T) {
	database := useDatabase(t)

	assert.NoError(t, database.InsertGeneration(db.Generation{
		ID:       "a0f9c1f3",
		Endpoint: "/controlnet/txt2img",
		Prompt:   "a house",
		Units:    1,
		Modules:  []string{"canny"},
		Images:   1,
		Duration: time.Second,
	}))
	assert.NoError(t, database.InsertDetection(db.Detection{
		ID:         "b1e8d2c4",
		Module:     "depth",
		Images:     2,
		Resolution: 512,
	}))

	c, rec := newContext(t, http.MethodGet, "/history", "")

	if assert.NoError(t, GetHistory(c)) {
		assert.Equal(t, http.StatusOK, rec.Code)

		var response struct {
			Generations []entities.HistoryEntry `json:"generations"`
			Detections  []entities.HistoryEntry `json:"detections"`
		}
		if assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response)) {
			if assert.Len(t, response.Generations, 1) {
				assert.Equal(t, "a0f9c1f3", response.Generations[0].ID)
				assert.Equal(t, "canny", response.Generations[0].Module)
			}
			if assert.Len(t, response.Detections, 1) {
				assert.Equal(t, "depth", response.Detections[0].Module)
			}
		}
	}
}

func TestGetHistoryItemDetection(t *testing.T) {
	database := useDatabase(t)

	assert.NoError(t, database.InsertDetection(db.Detection{
		ID:         "b1e8d2c4",
		Module:     "openpose",
		Images:     1,
		Resolution: 512,
	}))

	c, rec := newContext(t, http.MethodGet, "/history/b1e8d2c4", "")
	c.SetParamNames("id")
	c.SetParamValues("b1e8d2c4")

	if assert.NoError(t, GetHistoryItem(c)) {
		assert.Equal(t, http.StatusOK, rec.Code)

		var response entities.HistoryEntry
		if assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response)) {
			assert.Equal(t, "b1e8d2c4", response.ID)
			assert.Equal(t, "/controlnet/detect", response.Endpoint)
			assert.Equal(t, "openpose", response.Module)
		}
	}
}

func TestGetHistoryItemNotFound(t *testing.T) {
	useDatabase(t)

	c, rec := newContext(t, http.MethodGet, "/history/missing", "")
	c.SetParamNames("id")
	c.SetParamValues("missing")

	if assert.NoError(t, GetHistoryItem(c)) {
		assert.Equal(t, http.StatusNotFound, rec.Code)
	}
}

func TestDeleteHistoryItem(t *testing.T) {
	database := useDatabase(t)

	assert.NoError(t, database.InsertDetection(db.Detection{ID: "b1e8d2c4", Module: "canny"}))

	c, rec := newContext(t, http.MethodDelete, "/history/b1e8d2c4", "")
	c.SetParamNames("id")
	c.SetParamValues("b1e8d2c4")

	if assert.NoError(t, deleteHistoryItem(c)) {
		assert.Equal(t, http.StatusOK, rec.Code)
	}

	_, err := database.RecentDetections(10)
	assert.NoError(t, err)
	assert.ErrorIs(t, database.DeleteDetection("b1e8d2c4"), db.ErrNotFound)
}
