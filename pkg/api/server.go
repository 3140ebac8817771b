package api

import (
	"fmt"
	"net/url"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	logger "github.com/labstack/gommon/log"

	"github.com/ellypaws/controlnet-api/pkg/annotator"
	"github.com/ellypaws/controlnet-api/pkg/db"
	"github.com/ellypaws/controlnet-api/pkg/models"
	"github.com/ellypaws/controlnet-api/pkg/sd"
)

var (
	Database      *db.Sqlite
	SDHost        = sd.DefaultHost
	AnnotatorHost annotator.Annotator = annotator.DefaultHost
	Models        = models.New()
	ServerHost    *url.URL

	// MaxUnits bounds how many ControlNet units a single request may carry.
	MaxUnits = 4

	// LegacyScripts switches the outgoing requests to the positional
	// script-argument vector instead of alwayson_scripts.
	LegacyScripts = false
)

type RunConfig struct {
	Database      *db.Sqlite
	SDHost        *sd.Host
	AnnotatorHost annotator.Annotator
	Models        *models.Registry
	ServerHost    *url.URL
	Port          uint
	MaxUnits      int
	LegacyScripts bool
	LogLevel      logger.Lvl
	Middlewares   []echo.MiddlewareFunc
	Extra         []func(e *echo.Echo)
}

func Run(config RunConfig) {
	Database = config.Database
	SDHost = config.SDHost
	ServerHost = config.ServerHost
	LegacyScripts = config.LegacyScripts
	if config.AnnotatorHost != nil {
		AnnotatorHost = config.AnnotatorHost
	}
	if config.Models != nil {
		Models = config.Models
	}
	if config.MaxUnits > 0 {
		MaxUnits = config.MaxUnits
	}

	e := echo.New()

	e.Use(middleware.Recover())

	registerAs(e.GET, getHandlers)
	registerAs(e.POST, postHandlers)
	registerAs(e.HEAD, headHandlers)
	registerAs(e.DELETE, deleteHandlers)

	e.Logger.SetLevel(config.LogLevel)
	e.Logger.SetHeader(`${time_rfc3339} ${level}	${short_file}:${line}	`)

	e.Use(config.Middlewares...)

	for _, f := range config.Extra {
		f(e)
	}

	e.Logger.Fatal(e.Start(fmt.Sprintf(":%d", config.Port)))
}

type route = func(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route

type handler struct {
	handler    func(c echo.Context) error
	middleware []echo.MiddlewareFunc
}

type pathHandler = map[string]handler

func registerAs(route route, pathHandler pathHandler) {
	for path, handler := range pathHandler {
		route(path, handler.handler, handler.middleware...)
	}
}
