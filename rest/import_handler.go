package rest

import (
	"net/http"

	"photo-indexer/domain"
	"photo-indexer/port"

	"github.com/labstack/echo/v4"
)

// ImportHandler accepts manual import requests and puts them on the
// job queue. A request for an owner with an import already in flight
// is accepted and collapses to a no-op at the queue.
type ImportHandler struct {
	queue port.JobQueue
}

func NewImportHandler(queue port.JobQueue) *ImportHandler {
	return &ImportHandler{queue: queue}
}

type ImportRequest struct {
	OwnerID     string `json:"owner_id"`
	Source      string `json:"source"`
	ProfileType string `json:"profile_type"`
	DaysAgo     *int   `json:"days_ago,omitempty"`
}

func (h *ImportHandler) Handle(c echo.Context) error {
	ctx := c.Request().Context()

	var req ImportRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	if req.OwnerID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "owner_id is required")
	}

	source, err := domain.ParseSourceType(req.Source)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	profileType := domain.ProfileUser
	if req.ProfileType != "" {
		profileType, err = domain.ParseProfileType(req.ProfileType)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
	}

	if req.DaysAgo != nil && *req.DaysAgo <= 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "days_ago must be positive")
	}

	job := domain.ImportJob{
		OwnerID:     req.OwnerID,
		Source:      source,
		ProfileType: profileType,
		DaysAgo:     req.DaysAgo,
	}

	if err := h.queue.Enqueue(ctx, job); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to enqueue import")
	}

	return c.JSON(http.StatusAccepted, map[string]string{"status": "accepted"})
}
