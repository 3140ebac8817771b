package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/dustin/go-humanize"
	"github.com/labstack/echo/v4"

	"github.com/ellypaws/controlnet-api/pkg/annotator"
	"github.com/ellypaws/controlnet-api/pkg/api/cache"
	. "github.com/ellypaws/controlnet-api/pkg/api/entities"
	"github.com/ellypaws/controlnet-api/pkg/api/service"
	"github.com/ellypaws/controlnet-api/pkg/crashy"
	"github.com/ellypaws/controlnet-api/pkg/db"
)

// Version of the /controlnet API surface. Bumped when the request schema
// changes shape.
const Version = 2

var getHandlers = pathHandler{
	"/":                         handler{root, withCache},
	"/progress":                 handler{GetProgress, nil},
	"/controlnet/version":       handler{GetVersion, withCache},
	"/controlnet/model_list":    handler{GetModelList, withRedis},
	"/controlnet/module_list":   handler{GetModuleList, withCache},
	"/controlnet/control_types": handler{GetControlTypes, withRedis},
	"/controlnet/settings":      handler{GetSettings, nil},
	"/history":                  handler{GetHistory, historyMiddleware},
	"/history/:id":              handler{GetHistoryItem, historyMiddleware},
}

func root(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]any{
		"name":      "controlnet-api",
		"version":   Version,
		"sd":        SDHost.Alive(),
		"annotator": annotatorAlive(),
		"database":  db.Error(Database) == nil,
	})
}

func annotatorAlive() bool {
	type pinger interface{ Alive() bool }
	if p, ok := AnnotatorHost.(pinger); ok {
		return p.Alive()
	}
	return AnnotatorHost != nil
}

func GetVersion(c echo.Context) error {
	return c.JSON(http.StatusOK, VersionResponse{Version: Version})
}

func GetProgress(c echo.Context) error {
	progress, err := SDHost.Progress()
	if err != nil {
		return c.JSON(http.StatusServiceUnavailable, crashy.Wrap(err))
	}
	return c.JSON(http.StatusOK, progress)
}

// GetModelList lists the conditioning models as "name [hash]". Set query
// "update" to "true" to rescan the model directories.
func GetModelList(c echo.Context) error {
	update := c.QueryParam("update") == "true"

	names, err := service.ModelNames(c, cache.SwitchCache(c), Models, update)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, ModelListResponse{ModelList: names})
}

func GetModuleList(c echo.Context) error {
	return c.JSON(http.StatusOK, ModuleListResponse{ModuleList: annotator.Modules()})
}

func GetControlTypes(c echo.Context) error {
	names, err := service.ModelNames(c, cache.SwitchCache(c), Models, false)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, service.ControlTypes(names))
}

func GetSettings(c echo.Context) error {
	return c.JSON(http.StatusOK, SettingsResponse{
		MaxUnits:        MaxUnits,
		MaxDetectRes:    MaxDetectRes,
		LegacyScripts:   LegacyScripts,
		ModelsAvailable: Models.Len(),
	})
}

const defaultHistoryLimit = 50

// GetHistory lists the most recent generation and detection calls.
func GetHistory(c echo.Context) error {
	limit := defaultHistoryLimit
	if l := c.QueryParam("limit"); l != "" {
		if parsed, err := strconv.Atoi(l); err == nil && parsed > 0 {
			limit = parsed
		}
	}

	generations, err := Database.RecentGenerations(limit)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, crashy.Wrap(err))
	}
	detections, err := Database.RecentDetections(limit)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, crashy.Wrap(err))
	}

	out := struct {
		Generations []HistoryEntry `json:"generations"`
		Detections  []HistoryEntry `json:"detections"`
	}{
		Generations: make([]HistoryEntry, 0, len(generations)),
		Detections:  make([]HistoryEntry, 0, len(detections)),
	}
	for _, generation := range generations {
		out.Generations = append(out.Generations, generationEntry(generation))
	}
	for _, detection := range detections {
		out.Detections = append(out.Detections, detectionEntry(detection))
	}

	return c.JSON(http.StatusOK, out)
}

func GetHistoryItem(c echo.Context) error {
	id := c.Param("id")
	generation, err := Database.GetGeneration(id)
	if err == nil {
		return c.JSON(http.StatusOK, generationEntry(generation))
	}
	if !errors.Is(err, db.ErrNotFound) {
		return c.JSON(http.StatusInternalServerError, crashy.Wrap(err))
	}

	detection, err := Database.GetDetection(id)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return c.JSON(http.StatusNotFound, crashy.Wrap(err))
		}
		return c.JSON(http.StatusInternalServerError, crashy.Wrap(err))
	}
	return c.JSON(http.StatusOK, detectionEntry(detection))
}

func generationEntry(generation db.Generation) HistoryEntry {
	module := ""
	if len(generation.Modules) > 0 {
		module = generation.Modules[0]
	}
	return HistoryEntry{
		ID:        generation.ID,
		Endpoint:  generation.Endpoint,
		Module:    module,
		Units:     generation.Units,
		Images:    generation.Images,
		Info:      generation.Info,
		Duration:  generation.Duration.String(),
		CreatedAt: generation.CreatedAt.Format("2006-01-02 15:04:05"),
		Ago:       humanize.Time(generation.CreatedAt),
	}
}

func detectionEntry(detection db.Detection) HistoryEntry {
	return HistoryEntry{
		ID:        detection.ID,
		Endpoint:  "/controlnet/detect",
		Module:    detection.Module,
		Images:    detection.Images,
		Duration:  detection.Duration.String(),
		CreatedAt: detection.CreatedAt.Format("2006-01-02 15:04:05"),
		Ago:       humanize.Time(detection.CreatedAt),
	}
}
