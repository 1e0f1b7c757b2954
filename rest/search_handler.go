package rest

import (
	"errors"
	"net/http"
	"strconv"

	"photo-indexer/domain"
	"photo-indexer/usecase"

	"github.com/labstack/echo/v4"
)

// SearchHandler serves /v1/search.
type SearchHandler struct {
	search          *usecase.SearchPhotosUsecase
	defaultPageSize int64
}

func NewSearchHandler(search *usecase.SearchPhotosUsecase, defaultPageSize int64) *SearchHandler {
	return &SearchHandler{
		search:          search,
		defaultPageSize: defaultPageSize,
	}
}

// SearchResponse wraps the translated result set with the query it answers.
type SearchResponse struct {
	Query      string                `json:"query"`
	Total      int64                 `json:"total"`
	Offset     int64                 `json:"offset"`
	Results    []domain.SearchResult `json:"results"`
	Suggestion *domain.Suggestion    `json:"suggestion,omitempty"`
}

func (h *SearchHandler) Handle(c echo.Context) error {
	ctx := c.Request().Context()

	query := c.QueryParam("q")
	if query == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "query parameter 'q' is required")
	}

	offset, err := parseInt64Param(c.QueryParam("offset"), 0)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "offset must be an integer")
	}

	limit, err := parseInt64Param(c.QueryParam("limit"), h.defaultPageSize)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "limit must be an integer")
	}

	set, err := h.search.Execute(ctx, query, offset, limit)
	if err != nil {
		var engineErr *domain.SearchEngineError
		if errors.As(err, &engineErr) {
			return echo.NewHTTPError(http.StatusBadGateway, "search engine unavailable")
		}
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	results := set.Results
	if results == nil {
		results = []domain.SearchResult{}
	}

	return c.JSON(http.StatusOK, SearchResponse{
		Query:      query,
		Total:      set.Total,
		Offset:     set.Offset,
		Results:    results,
		Suggestion: set.Suggestion,
	})
}

func parseInt64Param(raw string, fallback int64) (int64, error) {
	if raw == "" {
		return fallback, nil
	}
	return strconv.ParseInt(raw, 10, 64)
}
