package main

import (
	"fmt"
	"log"
	"net/url"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	level "github.com/labstack/gommon/log"
	"github.com/muesli/termenv"

	"github.com/ellypaws/controlnet-api/pkg/annotator"
	"github.com/ellypaws/controlnet-api/pkg/api"
	"github.com/ellypaws/controlnet-api/pkg/db"
	"github.com/ellypaws/controlnet-api/pkg/models"
	"github.com/ellypaws/controlnet-api/pkg/sd"
)

var (
	database      *db.Sqlite
	sdHost        = sd.DefaultHost
	annotatorHost = annotator.DefaultHost
	registry      *models.Registry
	serverHost    *url.URL
	port          uint = 7865
	maxUnits           = 4
	legacyScripts bool
)

func main() {
	api.Run(api.RunConfig{
		Database:      database,
		SDHost:        sdHost,
		AnnotatorHost: annotatorHost,
		Models:        registry,
		ServerHost:    serverHost,
		Port:          port,
		MaxUnits:      maxUnits,
		LegacyScripts: legacyScripts,
		LogLevel:      level.DEBUG,
		Middlewares:   middlewares,
		Extra:         extra,
	})
}

var middlewares = []echo.MiddlewareFunc{
	middleware.RemoveTrailingSlash(),
	middleware.Gzip(),
	middleware.Decompress(),
	middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{echo.GET, echo.HEAD, echo.POST, echo.DELETE},
	}),
}

var extra = []func(e *echo.Echo){
	func(e *echo.Echo) {
		colors := []struct {
			text  string
			color string
		}{
			{"c", "#447294"},
			{"o", "#4f7d9e"},
			{"n", "#5987a8"},
			{"t", "#6492b2"},
			{"r", "#6f9cbd"},
			{"o", "#7aa7c7"},
			{"l", "#84b1d1"},
			{"n", "#8fbcdb"},
			{"e", "#a0c0d6"},
			{"t", "#b1c5d1"},
			{"-", "#c2c9cc"},
			{"a", "#d2cdc6"},
			{"p", "#e3d2c1"},
			{"i", "#f4d6bc"},
		}

		var coloredText strings.Builder
		for _, ansi := range colors {
			coloredText.WriteString(termenv.String(ansi.text).Foreground(termenv.RGBColor(ansi.color)).Bold().String())
		}

		e.Logger.Infof("%s %s", coloredText.String(), "https://github.com/ellypaws")

		e.Logger.Infof("     api host: %s", api.ServerHost)

		if api.SDHost.Alive() {
			e.Logger.Infof("      sd host: %s", api.SDHost)
		} else {
			e.Logger.Warnf("      sd host: %s (not running)", api.SDHost)
		}

		if names, err := api.Models.Names(); err == nil {
			e.Logger.Infof("       models: %d", len(names))
		}
	},
}

func init() {
	_ = godotenv.Load()

	if p := os.Getenv("PORT"); p != "" {
		i, err := strconv.ParseUint(p, 10, 32)
		if err != nil {
			log.Fatal(err)
		}
		port = uint(i)
	}

	envServerHost := os.Getenv("SERVER_HOST")
	if envServerHost == "" {
		log.Printf("SERVER_HOST is not set, using default localhost:%d", port)
		serverHost = &url.URL{
			Scheme: "http",
			Host:   fmt.Sprintf("localhost:%d", port),
		}
	} else {
		var err error
		serverHost, err = url.Parse(envServerHost)
		if err != nil {
			log.Fatal(err)
		}
	}

	if h := os.Getenv("SD_HOST"); h != "" {
		u, err := url.Parse(h)
		if err != nil {
			log.Fatal(err)
		}
		sdHost = (*sd.Host)(u)
	} else {
		log.Println("warning: SD_HOST not set, using default localhost:7860")
	}

	if h := os.Getenv("ANNOTATOR_HOST"); h != "" {
		u, err := url.Parse(h)
		if err != nil {
			log.Fatal(err)
		}
		annotatorHost = (*annotator.Host)(u)
	}

	if dirs := os.Getenv("CN_MODELS_DIR"); dirs != "" {
		registry = models.FromEnv(dirs)
	} else {
		log.Println("warning: CN_MODELS_DIR not set, model names will not be validated")
	}

	if m := os.Getenv("CN_MAX_UNITS"); m != "" {
		i, err := strconv.Atoi(m)
		if err != nil {
			log.Fatal(err)
		}
		maxUnits = i
	}

	legacyScripts = os.Getenv("CN_LEGACY_SCRIPTS") == "true"

	var err error
	database, err = db.New(nil)
	if err != nil {
		log.Fatal(err)
	}
}
