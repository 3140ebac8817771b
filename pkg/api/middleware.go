package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/ellypaws/controlnet-api/pkg/api/cache"
	"github.com/ellypaws/controlnet-api/pkg/crashy"
)

const timeToLive = 5 * time.Minute

var timeToLiveString = fmt.Sprintf("max-age=%v", timeToLive.Seconds())

func SetCacheHeaders(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		c.Response().Header().Set(echo.HeaderCacheControl, timeToLiveString)
		return next(c)
	}
}

var withCache = []echo.MiddlewareFunc{SetCacheHeaders}

func RedisMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if !cache.Initialized {
			return next(c)
		}
		c.Set("redis", cache.RedisClient())
		return next(c)
	}
}

var withRedis = []echo.MiddlewareFunc{SetCacheHeaders, RedisMiddleware}

// RequireHost refuses work early when the generation host is unreachable,
// before any payload is decoded.
func RequireHost(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if !SDHost.Alive() {
			return c.JSON(http.StatusServiceUnavailable, crashy.ErrorResponse{ErrorString: "host is not available"})
		}
		return next(c)
	}
}

var hostMiddleware = []echo.MiddlewareFunc{RequireHost}

// RequireDatabase guards the history routes.
func RequireDatabase(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if Database == nil {
			return c.JSON(http.StatusServiceUnavailable, crashy.ErrorResponse{ErrorString: "database is not available"})
		}
		return next(c)
	}
}

var historyMiddleware = []echo.MiddlewareFunc{RequireDatabase}
