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

	bookmodel "bookshelf-backend/internal/domains/book/model"
	"bookshelf-backend/internal/domains/review/model"
	"bookshelf-backend/internal/domains/review/service"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeReviewService struct {
	service.ServiceInterface

	lastFilter model.ReviewFilter
	lastBookID int64
	lastSort   model.ReviewSort
	createErr  error
	created    []model.ReviewRequest
}

func (f *fakeReviewService) FindAll(_ context.Context, filter model.ReviewFilter) ([]model.ReviewResponse, error) {
	f.lastFilter = filter
	return []model.ReviewResponse{}, nil
}

func (f *fakeReviewService) FindByID(_ context.Context, id int64) (*model.ReviewResponse, error) {
	return nil, model.ErrReviewNotFound
}

func (f *fakeReviewService) FindByBookID(_ context.Context, bookID int64, sort model.ReviewSort) ([]model.ReviewResponse, error) {
	f.lastBookID = bookID
	f.lastSort = sort
	return []model.ReviewResponse{}, nil
}

func (f *fakeReviewService) StatsByBookID(_ context.Context, bookID int64) (*model.BookReviewStats, error) {
	if bookID == 404 {
		return nil, bookmodel.ErrBookNotFound
	}
	return &model.BookReviewStats{BookID: bookID, ReviewCount: 2, AverageRating: 4.5}, nil
}

func (f *fakeReviewService) Create(_ context.Context, req model.ReviewRequest) (*model.ReviewResponse, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.created = append(f.created, req)
	return &model.ReviewResponse{ID: 1, Rating: req.Rating}, nil
}

func setupRouter(svc *fakeReviewService) *gin.Engine {
	h := NewReviewHandler(svc)
	r := gin.New()
	r.GET("/reviews", h.GetAll)
	r.POST("/reviews", h.Create)
	r.GET("/reviews/:id", h.GetByID)
	r.GET("/books/:id/reviews", h.GetByBookID)
	r.GET("/books/:id/reviews/stats", h.GetStatsByBookID)
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

func TestReviewHandler_GetAll_FilterParsing(t *testing.T) {
	svc := &fakeReviewService{}
	r := setupRouter(svc)

	w := doRequest(t, r, http.MethodGet, "/reviews?rating=4&minRating=2&maxRating=5&sort=rating_desc", "")
	assert.Equal(t, http.StatusOK, w.Code)

	require.NotNil(t, svc.lastFilter.Rating)
	assert.Equal(t, 4, *svc.lastFilter.Rating)
	require.NotNil(t, svc.lastFilter.MinRating)
	assert.Equal(t, 2, *svc.lastFilter.MinRating)
	require.NotNil(t, svc.lastFilter.MaxRating)
	assert.Equal(t, 5, *svc.lastFilter.MaxRating)
	assert.Equal(t, model.SortByRatingDesc, svc.lastFilter.Sort)
}

func TestReviewHandler_GetAll_NoFilters(t *testing.T) {
	svc := &fakeReviewService{}
	w := doRequest(t, setupRouter(svc), http.MethodGet, "/reviews", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Nil(t, svc.lastFilter.Rating)
	assert.Nil(t, svc.lastFilter.MinRating)
	assert.Nil(t, svc.lastFilter.MaxRating)
	assert.Equal(t, model.SortByID, svc.lastFilter.Sort)
	assert.Equal(t, "[]", strings.TrimSpace(w.Body.String()))
}

func TestReviewHandler_GetAll_InvalidRating(t *testing.T) {
	w := doRequest(t, setupRouter(&fakeReviewService{}), http.MethodGet, "/reviews?rating=five", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestReviewHandler_GetByID_NotFound(t *testing.T) {
	w := doRequest(t, setupRouter(&fakeReviewService{}), http.MethodGet, "/reviews/404", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestReviewHandler_GetByBookID(t *testing.T) {
	svc := &fakeReviewService{}
	w := doRequest(t, setupRouter(svc), http.MethodGet, "/books/5/reviews?sort=created_desc", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, int64(5), svc.lastBookID)
	assert.Equal(t, model.SortByCreatedAtDesc, svc.lastSort)
}

func TestReviewHandler_GetStatsByBookID(t *testing.T) {
	r := setupRouter(&fakeReviewService{})

	w := doRequest(t, r, http.MethodGet, "/books/5/reviews/stats", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"bookId":5,"reviewCount":2,"averageRating":4.5}`, w.Body.String())

	w = doRequest(t, r, http.MethodGet, "/books/404/reviews/stats", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestReviewHandler_Create(t *testing.T) {
	svc := &fakeReviewService{}
	w := doRequest(t, setupRouter(svc), http.MethodPost, "/reviews",
		`{"bookId":5,"content":"Great read","rating":5}`)

	assert.Equal(t, http.StatusCreated, w.Code)
	require.Len(t, svc.created, 1)
	assert.Equal(t, int64(5), svc.created[0].BookID)
}

func TestReviewHandler_Create_InvalidRating(t *testing.T) {
	svc := &fakeReviewService{}
	w := doRequest(t, setupRouter(svc), http.MethodPost, "/reviews", `{"bookId":5,"rating":6}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Empty(t, svc.created)
}

func TestReviewHandler_Create_MissingBook(t *testing.T) {
	svc := &fakeReviewService{createErr: bookmodel.ErrBookNotFound}
	w := doRequest(t, setupRouter(svc), http.MethodPost, "/reviews", `{"bookId":404,"rating":4}`)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
