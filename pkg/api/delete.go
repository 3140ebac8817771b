package api

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ellypaws/controlnet-api/pkg/crashy"
	"github.com/ellypaws/controlnet-api/pkg/db"
)

var deleteHandlers = pathHandler{
	"/history/:id": handler{deleteHistoryItem, historyMiddleware},
}

// deleteHistoryItem removes one record by id, generations first, then
// detections when no generation matched.
func deleteHistoryItem(c echo.Context) error {
	id := c.Param("id")
	if id == "" {
		return c.JSON(http.StatusBadRequest, crashy.ErrorResponse{ErrorString: "missing id"})
	}

	err := Database.DeleteGeneration(id)
	if errors.Is(err, db.ErrNotFound) {
		err = Database.DeleteDetection(id)
	}
	if errors.Is(err, db.ErrNotFound) {
		return c.JSON(http.StatusNotFound, crashy.ErrorResponse{ErrorString: "record not found", Debug: id})
	}
	if err != nil {
		return c.JSON(http.StatusInternalServerError, crashy.Wrap(err))
	}

	return c.JSON(http.StatusOK, map[string]string{"id": id})
}
