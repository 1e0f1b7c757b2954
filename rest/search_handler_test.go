package rest

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"photo-indexer/domain"
	"photo-indexer/usecase"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubPhotoIndex struct {
	set        *domain.SearchResultSet
	searchErr  error
	lastQuery  string
	lastOffset int64
	lastLimit  int64
}

func (s *stubPhotoIndex) EnsureIndex(ctx context.Context) error { return nil }

func (s *stubPhotoIndex) Exists(ctx context.Context, id string) (bool, error) { return false, nil }

func (s *stubPhotoIndex) IndexPhoto(ctx context.Context, photo *domain.Photo) error { return nil }

func (s *stubPhotoIndex) Search(ctx context.Context, query string, offset, limit int64) (*domain.SearchResultSet, error) {
	s.lastQuery = query
	s.lastOffset = offset
	s.lastLimit = limit
	if s.searchErr != nil {
		return nil, s.searchErr
	}
	return s.set, nil
}

func newSearchContext(t *testing.T, target string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestSearchHandler_Handle(t *testing.T) {
	t.Run("returns translated results as JSON", func(t *testing.T) {
		index := &stubPhotoIndex{
			set: &domain.SearchResultSet{
				Total:  1,
				Offset: 0,
				Results: []domain.SearchResult{
					{
						Type:    "flickr_photo",
						Title:   "Brooklyn Bridge",
						URL:     "https://www.flickr.com/photos/61913304@N07/7890",
						TakenAt: time.Date(2014, 7, 22, 10, 15, 0, 0, time.UTC),
					},
				},
			},
		}
		handler := NewSearchHandler(usecase.NewSearchPhotosUsecase(index), 20)

		c, rec := newSearchContext(t, "/v1/search?q=bridge")
		require.NoError(t, handler.Handle(c))

		assert.Equal(t, http.StatusOK, rec.Code)

		var resp SearchResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "bridge", resp.Query)
		assert.Equal(t, int64(1), resp.Total)
		require.Len(t, resp.Results, 1)
		assert.Equal(t, "Brooklyn Bridge", resp.Results[0].Title)
		assert.Nil(t, resp.Suggestion)

		assert.Equal(t, "bridge", index.lastQuery)
		assert.Equal(t, int64(20), index.lastLimit)
	})

	t.Run("passes offset and limit through", func(t *testing.T) {
		index := &stubPhotoIndex{set: &domain.SearchResultSet{Results: []domain.SearchResult{}}}
		handler := NewSearchHandler(usecase.NewSearchPhotosUsecase(index), 20)

		c, rec := newSearchContext(t, "/v1/search?q=bridge&offset=40&limit=10")
		require.NoError(t, handler.Handle(c))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, int64(40), index.lastOffset)
		assert.Equal(t, int64(10), index.lastLimit)
	})

	t.Run("rejects missing query", func(t *testing.T) {
		handler := NewSearchHandler(usecase.NewSearchPhotosUsecase(&stubPhotoIndex{}), 20)

		c, _ := newSearchContext(t, "/v1/search")
		err := handler.Handle(c)

		var he *echo.HTTPError
		require.ErrorAs(t, err, &he)
		assert.Equal(t, http.StatusBadRequest, he.Code)
	})

	t.Run("rejects non-numeric offset", func(t *testing.T) {
		handler := NewSearchHandler(usecase.NewSearchPhotosUsecase(&stubPhotoIndex{}), 20)

		c, _ := newSearchContext(t, "/v1/search?q=bridge&offset=abc")
		err := handler.Handle(c)

		var he *echo.HTTPError
		require.ErrorAs(t, err, &he)
		assert.Equal(t, http.StatusBadRequest, he.Code)
	})

	t.Run("rejects query with forbidden characters", func(t *testing.T) {
		handler := NewSearchHandler(usecase.NewSearchPhotosUsecase(&stubPhotoIndex{}), 20)

		c, _ := newSearchContext(t, "/v1/search?q=%3Cscript%3E")
		err := handler.Handle(c)

		var he *echo.HTTPError
		require.ErrorAs(t, err, &he)
		assert.Equal(t, http.StatusBadRequest, he.Code)
	})

	t.Run("maps engine failure to bad gateway", func(t *testing.T) {
		index := &stubPhotoIndex{
			searchErr: &domain.SearchEngineError{Op: "search", Err: "connection refused"},
		}
		handler := NewSearchHandler(usecase.NewSearchPhotosUsecase(index), 20)

		c, _ := newSearchContext(t, "/v1/search?q=bridge")
		err := handler.Handle(c)

		var he *echo.HTTPError
		require.ErrorAs(t, err, &he)
		assert.Equal(t, http.StatusBadGateway, he.Code)
	})
}
