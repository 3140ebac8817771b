package service

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/ellypaws/controlnet-api/pkg/annotator"
	"github.com/ellypaws/controlnet-api/pkg/api/entities"
	"github.com/ellypaws/controlnet-api/pkg/crashy"
	"github.com/ellypaws/controlnet-api/pkg/db"
	host "github.com/ellypaws/controlnet-api/pkg/entities"
	"github.com/ellypaws/controlnet-api/pkg/models"
)

// ValidateUnits binds defaults and checks each unit before anything reaches
// the pipeline: the unit count bound, the module whitelist, known models
// when the registry has any, and that every image payload decodes.
func ValidateUnits(c echo.Context, registry *models.Registry, maxUnits int, units []entities.UnitRequest) ([]entities.UnitRequest, error) {
	if len(units) > maxUnits {
		return nil, c.JSON(http.StatusBadRequest, crashy.ErrorResponse{ErrorString: "too many controlnet units"})
	}

	validated := make([]entities.UnitRequest, 0, len(units))
	for _, unit := range units {
		unit = unit.WithDefaults()

		if unit.Module != "none" && !annotator.Available(unit.Module) {
			return nil, c.JSON(http.StatusUnprocessableEntity, crashy.ErrorResponse{ErrorString: "Module not available", Debug: unit.Module})
		}

		if registry.Len() > 0 && !registry.Has(unit.Model) {
			return nil, c.JSON(http.StatusNotFound, crashy.ErrorResponse{ErrorString: "Model not found", Debug: unit.Model})
		}

		if unit.InputImage != "" {
			encoded, _, err := DecodeBase64Image(unit.InputImage)
			if err != nil {
				return nil, c.JSON(http.StatusBadRequest, crashy.Wrap(err))
			}
			unit.InputImage = encoded
		}
		if unit.Mask != "" {
			encoded, _, err := DecodeBase64Image(unit.Mask)
			if err != nil {
				return nil, c.JSON(http.StatusBadRequest, crashy.Wrap(err))
			}
			unit.Mask = encoded
		}

		validated = append(validated, unit)
	}

	return validated, nil
}

// RecordGeneration persists one generation call. A nil database is a no-op.
func RecordGeneration(c echo.Context, database *db.Sqlite, endpoint, prompt string, units []entities.UnitRequest, response *host.TextToImageResponse, started time.Time) {
	if database == nil {
		return
	}

	modules := make([]string, 0, len(units))
	for _, unit := range units {
		modules = append(modules, unit.WithDefaults().Module)
	}

	err := database.InsertGeneration(db.Generation{
		ID:       uuid.New().String(),
		Endpoint: endpoint,
		Prompt:   prompt,
		Units:    len(units),
		Modules:  modules,
		Images:   len(response.Images),
		Info:     response.Info,
		Duration: time.Since(started),
	})
	if err != nil {
		c.Logger().Errorf("error recording generation: %v", err)
	}
}
