package service

import (
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	units "github.com/labstack/gommon/bytes"

	"github.com/ellypaws/controlnet-api/pkg/annotator"
	"github.com/ellypaws/controlnet-api/pkg/api/cache"
	"github.com/ellypaws/controlnet-api/pkg/api/entities"
	"github.com/ellypaws/controlnet-api/pkg/crashy"
	"github.com/ellypaws/controlnet-api/pkg/db"
)

// DecodeBase64Image validates a base64 image payload, stripping a data URI
// prefix when present. It returns the clean base64 string and the raw bytes.
func DecodeBase64Image(encoded string) (string, []byte, error) {
	if strings.HasPrefix(encoded, "data:image/") {
		if i := strings.Index(encoded, ","); i >= 0 {
			encoded = encoded[i+1:]
		}
	}
	bin, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return "", nil, fmt.Errorf("invalid encoded image: %w", err)
	}
	return encoded, bin, nil
}

// Detect runs every input image through the requested annotator module.
// Results are cached per image; the module's models are unloaded after the
// batch. The refusal envelopes ("Module not available", "No image selected")
// match the original endpoint verbatim.
func Detect(c echo.Context, cacheToUse cache.Cache, host annotator.Annotator, database *db.Sqlite, request entities.DetectRequest) (*entities.DetectResponse, error) {
	request = request.WithDefaults()

	if !annotator.Available(request.Module) {
		return nil, c.JSON(http.StatusUnprocessableEntity, entities.DetectResponse{Images: []string{}, Info: "Module not available"})
	}
	if len(request.InputImages) == 0 {
		return nil, c.JSON(http.StatusUnprocessableEntity, entities.DetectResponse{Images: []string{}, Info: "No image selected"})
	}

	c.Logger().Infof("Detecting %d images with the %s module", len(request.InputImages), request.Module)

	started := time.Now()
	results := make([]string, 0, len(request.InputImages))
	for _, encoded := range request.InputImages {
		encoded, bin, err := DecodeBase64Image(encoded)
		if err != nil {
			return nil, c.JSON(http.StatusBadRequest, crashy.Wrap(err))
		}

		key := detectKey(request, bin)
		if item, err := cacheToUse.Get(key); err == nil {
			c.Logger().Debugf("Cache hit for %s", key)
			results = append(results, string(item.Blob))
			continue
		}

		annotated, err := host.Annotate(&annotator.Request{
			Module:       request.Module,
			Image:        encoded,
			ProcessorRes: *request.ProcessorRes,
			ThresholdA:   *request.ThresholdA,
			ThresholdB:   *request.ThresholdB,
		})
		if err != nil {
			return nil, c.JSON(http.StatusInternalServerError, crashy.Wrap(err))
		}

		if err := cacheToUse.Set(key, &cache.Item{
			Blob:     []byte(annotated),
			MimeType: "image/png",
		}, cache.Week); err != nil {
			c.Logger().Errorf("error caching detection: %v", err)
		} else {
			c.Logger().Debugf("Cached %s %dKiB", key, len(annotated)/units.KiB)
		}

		results = append(results, annotated)
	}

	if err := host.Unload(request.Module); err != nil {
		c.Logger().Warnf("error unloading %s: %v", request.Module, err)
	}

	if database != nil {
		err := database.InsertDetection(db.Detection{
			ID:         uuid.New().String(),
			Module:     request.Module,
			Images:     len(request.InputImages),
			Resolution: *request.ProcessorRes,
			ThresholdA: *request.ThresholdA,
			ThresholdB: *request.ThresholdB,
			Duration:   time.Since(started),
		})
		if err != nil {
			c.Logger().Errorf("error recording detection: %v", err)
		}
	}

	return &entities.DetectResponse{Images: results, Info: "Success"}, nil
}

func detectKey(request entities.DetectRequest, image []byte) string {
	sum := sha256.Sum256(image)
	return fmt.Sprintf("image/png:detect:%s:%d:%v:%v:%s",
		request.Module, *request.ProcessorRes, *request.ThresholdA, *request.ThresholdB,
		hex.EncodeToString(sum[:6]))
}
