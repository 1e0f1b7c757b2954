package rest

import (
	"errors"
	"net/http"

	"photo-indexer/domain"
	"photo-indexer/usecase"

	"github.com/labstack/echo/v4"
)

// ProfileHandler serves profile registration and listing.
type ProfileHandler struct {
	register *usecase.RegisterProfileUsecase
	list     *usecase.ListProfilesUsecase
}

func NewProfileHandler(register *usecase.RegisterProfileUsecase, list *usecase.ListProfilesUsecase) *ProfileHandler {
	return &ProfileHandler{
		register: register,
		list:     list,
	}
}

type RegisterProfileRequest struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	ProfileType string `json:"profile_type"`
	Source      string `json:"source"`
}

type ProfileResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	ProfileType string `json:"profile_type"`
	Source      string `json:"source"`
}

type ListProfilesResponse struct {
	Profiles []ProfileResponse `json:"profiles"`
}

// HandleRegister creates a profile and queues its first import.
func (h *ProfileHandler) HandleRegister(c echo.Context) error {
	ctx := c.Request().Context()

	var req RegisterProfileRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	profileType, err := domain.ParseProfileType(req.ProfileType)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	source, err := domain.ParseSourceType(req.Source)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	profile, err := h.register.Execute(ctx, req.ID, req.Name, profileType, source)
	if err != nil {
		var repoErr *domain.RepositoryError
		if errors.As(err, &repoErr) {
			return echo.NewHTTPError(http.StatusInternalServerError, "failed to store profile")
		}
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	return c.JSON(http.StatusCreated, toProfileResponse(profile))
}

// HandleList returns registered profiles for one source.
func (h *ProfileHandler) HandleList(c echo.Context) error {
	ctx := c.Request().Context()

	source, err := domain.ParseSourceType(c.QueryParam("source"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "query parameter 'source' must be a known source")
	}

	profiles, err := h.list.Execute(ctx, source)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to list profiles")
	}

	resp := ListProfilesResponse{Profiles: make([]ProfileResponse, 0, len(profiles))}
	for _, p := range profiles {
		resp.Profiles = append(resp.Profiles, toProfileResponse(p))
	}

	return c.JSON(http.StatusOK, resp)
}

func toProfileResponse(p *domain.Profile) ProfileResponse {
	return ProfileResponse{
		ID:          p.ID(),
		Name:        p.Name(),
		ProfileType: string(p.ProfileType()),
		Source:      string(p.Source()),
	}
}
