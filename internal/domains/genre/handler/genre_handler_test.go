package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bookshelf-backend/internal/domains/genre"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeGenreService struct {
	genre.Service

	byID    map[int64]*genre.GenreResponse
	byName  map[string]*genre.GenreResponse
	created []genre.GenreRequest
}

func newFakeGenreService() *fakeGenreService {
	return &fakeGenreService{
		byID:   make(map[int64]*genre.GenreResponse),
		byName: make(map[string]*genre.GenreResponse),
	}
}

func (f *fakeGenreService) FindByID(_ context.Context, id int64) (*genre.GenreResponse, error) {
	g, ok := f.byID[id]
	if !ok {
		return nil, genre.ErrGenreNotFound
	}
	return g, nil
}

func (f *fakeGenreService) FindByName(_ context.Context, name string) (*genre.GenreResponse, error) {
	g, ok := f.byName[name]
	if !ok {
		return nil, genre.ErrGenreNotFound
	}
	return g, nil
}

func (f *fakeGenreService) SearchByName(_ context.Context, fragment string) ([]genre.GenreResponse, error) {
	out := make([]genre.GenreResponse, 0)
	for _, g := range f.byName {
		if strings.Contains(g.Name, fragment) {
			out = append(out, *g)
		}
	}
	return out, nil
}

func (f *fakeGenreService) Create(_ context.Context, req genre.GenreRequest) (*genre.GenreResponse, error) {
	f.created = append(f.created, req)
	return &genre.GenreResponse{ID: 1, Name: req.Name}, nil
}

func setupRouter(svc *fakeGenreService) *gin.Engine {
	h := NewGenreHandler(svc)
	r := gin.New()
	genres := r.Group("/genres")
	{
		genres.POST("", h.Create)
		genres.GET("/search", h.Search)
		genres.GET("/by-name/:name", h.GetByName)
		genres.GET("/:id", h.GetByID)
	}
	return r
}

func doRequest(t *testing.T, r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestGenreHandler_GetByID(t *testing.T) {
	svc := newFakeGenreService()
	svc.byID[2] = &genre.GenreResponse{ID: 2, Name: "Fantasy"}
	r := setupRouter(svc)

	tests := []struct {
		name       string
		path       string
		wantStatus int
	}{
		{"found", "/genres/2", http.StatusOK},
		{"not found", "/genres/404", http.StatusNotFound},
		{"invalid id", "/genres/abc", http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doRequest(t, r, http.MethodGet, tt.path, "")
			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}

func TestGenreHandler_GetByName(t *testing.T) {
	svc := newFakeGenreService()
	svc.byName["Fantasy"] = &genre.GenreResponse{ID: 2, Name: "Fantasy"}
	r := setupRouter(svc)

	w := doRequest(t, r, http.MethodGet, "/genres/by-name/Fantasy", "")
	assert.Equal(t, http.StatusOK, w.Code)

	w = doRequest(t, r, http.MethodGet, "/genres/by-name/Unknown", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGenreHandler_Search(t *testing.T) {
	svc := newFakeGenreService()
	svc.byName["Fantasy"] = &genre.GenreResponse{ID: 2, Name: "Fantasy"}
	r := setupRouter(svc)

	w := doRequest(t, r, http.MethodGet, "/genres/search?name=Fan", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Fantasy")

	w = doRequest(t, r, http.MethodGet, "/genres/search", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGenreHandler_Create(t *testing.T) {
	svc := newFakeGenreService()
	r := setupRouter(svc)

	w := doRequest(t, r, http.MethodPost, "/genres", `{"name":"Mystery"}`)
	assert.Equal(t, http.StatusCreated, w.Code)
	require.Len(t, svc.created, 1)

	w = doRequest(t, r, http.MethodPost, "/genres", `{"name":""}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Len(t, svc.created, 1)
}
