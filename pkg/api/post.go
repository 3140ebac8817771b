package api

import (
	"bytes"
	"encoding/base64"
	"errors"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/disintegration/imaging"
	"github.com/labstack/echo/v4"
	units "github.com/labstack/gommon/bytes"

	"github.com/ellypaws/controlnet-api/pkg/api/cache"
	. "github.com/ellypaws/controlnet-api/pkg/api/entities"
	"github.com/ellypaws/controlnet-api/pkg/api/service"
	"github.com/ellypaws/controlnet-api/pkg/crashy"
	"github.com/ellypaws/controlnet-api/pkg/sd"
)

// MaxDetectRes caps the preprocessor resolution a caller may request.
const MaxDetectRes = 1024

var postHandlers = pathHandler{
	"/controlnet/txt2img":       handler{ControlNetTxt2Img, append(hostMiddleware, withRedis...)},
	"/controlnet/img2img":       handler{ControlNetImg2Img, append(hostMiddleware, withRedis...)},
	"/controlnet/detect":        handler{Detect, withRedis},
	"/controlnet/detect/upload": handler{DetectUpload, withRedis},
	"/interrupt":                handler{Interrupt, hostMiddleware},
}

// Interrupt asks the generation host to abort the current job.
func Interrupt(c echo.Context) error {
	if err := SDHost.Interrupt(); err != nil {
		return c.JSON(http.StatusInternalServerError, crashy.Wrap(err))
	}
	return c.NoContent(http.StatusNoContent)
}

// validateSampler writes the refusal itself and returns the host error so
// callers can bail without writing a second response.
func validateSampler(c echo.Context, name string) error {
	err := SDHost.ValidateSampler(name)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, sd.ErrUnknownSampler):
		_ = c.JSON(http.StatusNotFound, crashy.ErrorResponse{ErrorString: "Sampler not found"})
	default:
		_ = c.JSON(http.StatusServiceUnavailable, crashy.Wrap(err))
	}
	return err
}

// ControlNetTxt2Img accepts the typed txt2img body, folds the deprecated
// flat controlnet_* fields into the unit list, wires the units into the
// outgoing request and forwards it to the generation host.
//
// Set query "image" to "true" to return just the first image.
func ControlNetTxt2Img(c echo.Context) error {
	var request TextToImageRequest
	if err := c.Bind(&request); err != nil {
		return err
	}

	request.NestDeprecatedFields()

	if err := validateSampler(c, request.SamplerName); err != nil {
		return err
	}

	controlNetUnits, err := service.ValidateUnits(c, Models, MaxUnits, request.ControlNetUnits)
	if controlNetUnits == nil {
		return err
	}

	ApplyUnits(&request.TextToImageRequest, controlNetUnits, LegacyScripts)

	started := time.Now()
	c.Logger().Infof("Generating with %d controlnet units...", len(controlNetUnits))
	response, err := SDHost.TextToImage(&request.TextToImageRequest)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, crashy.Wrap(err))
	}

	if len(response.Images) == 0 {
		return c.JSON(http.StatusNotFound, crashy.ErrorResponse{ErrorString: "no images were generated"})
	}
	c.Logger().Infof("Finished %d images in %v", len(response.Images), time.Since(started))

	service.RecordGeneration(c, Database, "/controlnet/txt2img", request.Prompt, controlNetUnits, response, started)

	if c.QueryParam("image") == "true" {
		bin, err := base64.StdEncoding.DecodeString(response.Images[0])
		if err != nil {
			return c.JSON(http.StatusInternalServerError, crashy.Wrap(err))
		}
		return c.Blob(http.StatusOK, "image/png", bin)
	}

	return c.JSON(http.StatusOK, GenerationResponse{Images: response.Images, Info: response.Info})
}

// ControlNetImg2Img accepts the flat img2img body kept for parity with the
// original endpoint: a single flat ControlNet group, no unit list.
func ControlNetImg2Img(c echo.Context) error {
	var request ImageToImageRequest
	if err := c.Bind(&request); err != nil {
		return err
	}

	if len(request.InitImages) == 0 {
		return c.JSON(http.StatusBadRequest, crashy.ErrorResponse{ErrorString: "init_images is required"})
	}
	if len(request.ControlNetInputImages) == 0 {
		return c.JSON(http.StatusBadRequest, crashy.ErrorResponse{ErrorString: "controlnet_input_image is required"})
	}

	if err := validateSampler(c, request.SamplerIndex); err != nil {
		return err
	}

	controlNetUnits, err := service.ValidateUnits(c, Models, MaxUnits, []UnitRequest{request.Unit()})
	if controlNetUnits == nil {
		return err
	}

	hostRequest := request.HostRequest()
	ApplyUnitsImg2Img(hostRequest, controlNetUnits, LegacyScripts)

	started := time.Now()
	c.Logger().Infof("img2img: %s", request.Prompt)
	response, err := SDHost.ImageToImage(hostRequest)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, crashy.Wrap(err))
	}

	if len(response.Images) == 0 {
		return c.JSON(http.StatusNotFound, crashy.ErrorResponse{ErrorString: "no images were generated"})
	}

	service.RecordGeneration(c, Database, "/controlnet/img2img", request.Prompt, controlNetUnits, response, started)

	return c.JSON(http.StatusOK, GenerationResponse{Images: response.Images, Info: response.Info})
}

// Detect runs annotator modules over raw images without generating anything.
func Detect(c echo.Context) error {
	var request DetectRequest
	if err := c.Bind(&request); err != nil {
		return err
	}

	if request.ProcessorRes != nil && *request.ProcessorRes > MaxDetectRes {
		*request.ProcessorRes = MaxDetectRes
	}

	response, err := service.Detect(c, cache.SwitchCache(c), AnnotatorHost, Database, request)
	if response == nil {
		return err
	}

	return c.JSON(http.StatusOK, response)
}

// DetectUpload is the multipart variant of Detect: the image arrives as a
// form file and is fitted to the processor resolution before annotation.
//
// Set query "image" to "true" to return just the annotated image.
func DetectUpload(c echo.Context) error {
	file, err := c.FormFile("image")
	if err != nil {
		return c.JSON(http.StatusBadRequest, crashy.Wrap(err))
	}

	src, err := file.Open()
	if err != nil {
		return c.JSON(http.StatusInternalServerError, crashy.Wrap(err))
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, crashy.Wrap(err))
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, crashy.Wrap(err))
	}

	request := DetectRequest{Module: c.FormValue("module")}
	if res := c.FormValue("processor_res"); res != "" {
		i, err := strconv.Atoi(res)
		if err != nil {
			return c.JSON(http.StatusBadRequest, crashy.Wrap(err))
		}
		request.ProcessorRes = &i
	}
	if threshold := c.FormValue("threshold_a"); threshold != "" {
		f, err := strconv.ParseFloat(threshold, 64)
		if err != nil {
			return c.JSON(http.StatusBadRequest, crashy.Wrap(err))
		}
		request.ThresholdA = &f
	}
	if threshold := c.FormValue("threshold_b"); threshold != "" {
		f, err := strconv.ParseFloat(threshold, 64)
		if err != nil {
			return c.JSON(http.StatusBadRequest, crashy.Wrap(err))
		}
		request.ThresholdB = &f
	}

	request = request.WithDefaults()
	if *request.ProcessorRes > MaxDetectRes {
		*request.ProcessorRes = MaxDetectRes
	}

	msize := [2]int{*request.ProcessorRes, *request.ProcessorRes}

	var b64 string
	if compare(dimensions(img), msize) > 0 {
		b64 = resizeImage(img, msize)
		if b64 == "" {
			return c.JSON(http.StatusInternalServerError, crashy.ErrorResponse{ErrorString: "error resizing image"})
		}
		c.Logger().Debugf("Resized %s from %dKiB", file.Filename, len(data)/units.KiB)
	} else {
		b64 = base64.StdEncoding.EncodeToString(data)
	}

	request.InputImages = []string{b64}

	response, err := service.Detect(c, cache.SwitchCache(c), AnnotatorHost, Database, request)
	if response == nil {
		return err
	}

	if c.QueryParam("image") == "true" {
		bin, err := base64.StdEncoding.DecodeString(response.Images[0])
		if err != nil {
			return c.JSON(http.StatusInternalServerError, crashy.Wrap(err))
		}
		return c.Blob(http.StatusOK, "image/png", bin)
	}

	return c.JSON(http.StatusOK, response)
}

func compare(a, b [2]int) int {
	if a[0] == b[0] && a[1] == b[1] {
		return 0
	}
	if a[0] > b[0] || a[1] > b[1] {
		return 1
	}
	return -1
}

func dimensions(src image.Image) [2]int {
	bounds := src.Bounds()
	return [2]int{bounds.Dx(), bounds.Dy()}
}

func resizeImage(src image.Image, max [2]int) string {
	i := imaging.Fit(src, max[0], max[1], imaging.Lanczos)
	writer := new(bytes.Buffer)
	err := imaging.Encode(writer, i, imaging.PNG)
	if err != nil {
		return ""
	}
	return base64.StdEncoding.EncodeToString(writer.Bytes())
}
