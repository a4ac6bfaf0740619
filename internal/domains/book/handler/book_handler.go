package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"bookshelf-backend/internal/domains/book/model"
	"bookshelf-backend/internal/domains/book/service"
	"bookshelf-backend/internal/shared/response"
)

// defaultMinRating is the transport-level default for the high-rated
// filter; the data layer has no default.
const defaultMinRating = 4.0

type BookHandler struct {
	bookService service.ServiceInterface
}

func NewBookHandler(bookService service.ServiceInterface) *BookHandler {
	return &BookHandler{bookService: bookService}
}

// =====================================================
// CRUD
// =====================================================

// GetAll handles GET /books
func (h *BookHandler) GetAll(c *gin.Context) {
	books, err := h.bookService.FindAll(c.Request.Context())
	if err != nil {
		response.InternalServerError(c, err.Error())
		return
	}
	response.JSON(c, http.StatusOK, books)
}

// GetByID handles GET /books/:id
func (h *BookHandler) GetByID(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		response.BadRequest(c, "invalid book id")
		return
	}

	resp, err := h.bookService.FindByID(c.Request.Context(), id)
	if err != nil {
		mapBookError(c, err)
		return
	}
	response.JSON(c, http.StatusOK, resp)
}

// Create handles POST /books
func (h *BookHandler) Create(c *gin.Context) {
	var req model.BookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		response.ValidationFailed(c, err)
		return
	}

	resp, err := h.bookService.Create(c.Request.Context(), req)
	if err != nil {
		mapBookError(c, err)
		return
	}
	response.Created(c, resp)
}

// Update handles PUT /books/:id
func (h *BookHandler) Update(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		response.BadRequest(c, "invalid book id")
		return
	}

	var req model.BookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		response.ValidationFailed(c, err)
		return
	}

	resp, err := h.bookService.Update(c.Request.Context(), id, req)
	if err != nil {
		mapBookError(c, err)
		return
	}
	response.JSON(c, http.StatusOK, resp)
}

// Delete handles DELETE /books/:id
func (h *BookHandler) Delete(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		response.BadRequest(c, "invalid book id")
		return
	}

	deleted, err := h.bookService.DeleteByID(c.Request.Context(), id)
	if err != nil {
		response.InternalServerError(c, err.Error())
		return
	}
	if !deleted {
		response.NotFound(c, "book not found")
		return
	}
	response.NoContent(c)
}

// DeleteByAuthor handles DELETE /books/by-author?author=
func (h *BookHandler) DeleteByAuthor(c *gin.Context) {
	author := c.Query("author")
	if author == "" {
		response.BadRequest(c, "author is required")
		return
	}

	count, err := h.bookService.DeleteByAuthor(c.Request.Context(), author)
	if err != nil {
		response.InternalServerError(c, err.Error())
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"deleted": count})
}

// =====================================================
// SEARCH
// =====================================================

// SearchByAuthor handles GET /books/search/author?author=&match=&sort=
func (h *BookHandler) SearchByAuthor(c *gin.Context) {
	author := c.Query("author")
	if author == "" {
		response.BadRequest(c, "author is required")
		return
	}

	match := model.AuthorMatch(c.DefaultQuery("match", string(model.MatchExact)))
	sort := model.AuthorSort(c.Query("sort"))

	books, err := h.bookService.FindByAuthor(c.Request.Context(), author, match, sort)
	if err != nil {
		response.InternalServerError(c, err.Error())
		return
	}
	response.JSON(c, http.StatusOK, books)
}

// CountByAuthor handles GET /books/count/author?author=
func (h *BookHandler) CountByAuthor(c *gin.Context) {
	author := c.Query("author")
	if author == "" {
		response.BadRequest(c, "author is required")
		return
	}

	count, err := h.bookService.CountByAuthor(c.Request.Context(), author)
	if err != nil {
		response.InternalServerError(c, err.Error())
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"author": author, "count": count})
}

// CountByStatus handles GET /books/count/status?status=
func (h *BookHandler) CountByStatus(c *gin.Context) {
	status, ok := parseStatus(c)
	if !ok {
		return
	}

	count, err := h.bookService.CountByStatus(c.Request.Context(), status)
	if err != nil {
		response.InternalServerError(c, err.Error())
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"status": status, "count": count})
}

// SearchByStatus handles GET /books/search/status?status=&author=&op=
// With an author present the op parameter picks AND (default) or OR.
func (h *BookHandler) SearchByStatus(c *gin.Context) {
	status, ok := parseStatus(c)
	if !ok {
		return
	}

	var (
		books []model.BookResponse
		err   error
	)
	if author := c.Query("author"); author != "" {
		matchAny := c.Query("op") == "or"
		books, err = h.bookService.FindByStatusAndAuthor(c.Request.Context(), status, author, matchAny)
	} else {
		books, err = h.bookService.FindByStatus(c.Request.Context(), status)
	}
	if err != nil {
		response.InternalServerError(c, err.Error())
		return
	}
	response.JSON(c, http.StatusOK, books)
}

// SearchByYear handles GET /books/search/year?year=&op=
// The op parameter picks exact (default), before or after.
func (h *BookHandler) SearchByYear(c *gin.Context) {
	year, err := strconv.Atoi(c.Query("year"))
	if err != nil || year < 1 {
		response.BadRequest(c, "invalid year")
		return
	}

	var books []model.BookResponse
	switch c.Query("op") {
	case "", "exact":
		books, err = h.bookService.FindByPublicationYear(c.Request.Context(), year)
	case "before":
		books, err = h.bookService.FindByYearBefore(c.Request.Context(), year)
	case "after":
		books, err = h.bookService.FindByYearAfter(c.Request.Context(), year)
	default:
		response.BadRequest(c, "op must be one of exact, before, after")
		return
	}
	if err != nil {
		response.InternalServerError(c, err.Error())
		return
	}
	response.JSON(c, http.StatusOK, books)
}

// SearchByYearRange handles GET /books/search/year-range?start=&end=
func (h *BookHandler) SearchByYearRange(c *gin.Context) {
	start, err := strconv.Atoi(c.Query("start"))
	if err != nil {
		response.BadRequest(c, "invalid start year")
		return
	}
	end, err := strconv.Atoi(c.Query("end"))
	if err != nil {
		response.BadRequest(c, "invalid end year")
		return
	}
	if start > end {
		response.BadRequest(c, "start year must not exceed end year")
		return
	}

	books, err := h.bookService.FindByYearRange(c.Request.Context(), start, end)
	if err != nil {
		response.InternalServerError(c, err.Error())
		return
	}
	response.JSON(c, http.StatusOK, books)
}

// SearchByTitle handles GET /books/search/title?prefix= or ?suffix=
func (h *BookHandler) SearchByTitle(c *gin.Context) {
	prefix := c.Query("prefix")
	suffix := c.Query("suffix")

	var (
		books []model.BookResponse
		err   error
	)
	switch {
	case prefix != "":
		books, err = h.bookService.FindByTitlePrefix(c.Request.Context(), prefix)
	case suffix != "":
		books, err = h.bookService.FindByTitleSuffix(c.Request.Context(), suffix)
	default:
		response.BadRequest(c, "prefix or suffix is required")
		return
	}
	if err != nil {
		response.InternalServerError(c, err.Error())
		return
	}
	response.JSON(c, http.StatusOK, books)
}

// SearchByISBN handles GET /books/search/isbn?isbn=
func (h *BookHandler) SearchByISBN(c *gin.Context) {
	isbn := c.Query("isbn")
	if isbn == "" {
		response.BadRequest(c, "isbn is required")
		return
	}

	resp, err := h.bookService.FindByISBN(c.Request.Context(), isbn)
	if err != nil {
		mapBookError(c, err)
		return
	}
	response.JSON(c, http.StatusOK, resp)
}

// ISBNExists handles GET /books/isbn-exists?isbn=
func (h *BookHandler) ISBNExists(c *gin.Context) {
	isbn := c.Query("isbn")
	if isbn == "" {
		response.BadRequest(c, "isbn is required")
		return
	}

	exists, err := h.bookService.ISBNExists(c.Request.Context(), isbn)
	if err != nil {
		response.InternalServerError(c, err.Error())
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"isbn": isbn, "exists": exists})
}

// GetByGenreID handles GET /books/by-genre/:genreId
func (h *BookHandler) GetByGenreID(c *gin.Context) {
	genreID, err := strconv.ParseInt(c.Param("genreId"), 10, 64)
	if err != nil {
		response.BadRequest(c, "invalid genre id")
		return
	}

	books, err := h.bookService.FindByGenreID(c.Request.Context(), genreID)
	if err != nil {
		response.InternalServerError(c, err.Error())
		return
	}
	response.JSON(c, http.StatusOK, books)
}

// GetByGenreName handles GET /books/by-genre-name/:name
func (h *BookHandler) GetByGenreName(c *gin.Context) {
	name := c.Param("name")

	books, err := h.bookService.FindByGenreName(c.Request.Context(), name)
	if err != nil {
		response.InternalServerError(c, err.Error())
		return
	}
	response.JSON(c, http.StatusOK, books)
}

// GetPopular handles GET /books/popular
func (h *BookHandler) GetPopular(c *gin.Context) {
	books, err := h.bookService.FindPopular(c.Request.Context())
	if err != nil {
		response.InternalServerError(c, err.Error())
		return
	}
	response.JSON(c, http.StatusOK, books)
}

// GetHighRated handles GET /books/high-rated?minRating=
func (h *BookHandler) GetHighRated(c *gin.Context) {
	minRating := defaultMinRating
	if raw := c.Query("minRating"); raw != "" {
		parsed, err := strconv.ParseFloat(raw, 64)
		if err != nil || parsed < 0 || parsed > 5 {
			response.BadRequest(c, "invalid minRating")
			return
		}
		minRating = parsed
	}

	books, err := h.bookService.FindHighRated(c.Request.Context(), minRating)
	if err != nil {
		response.InternalServerError(c, err.Error())
		return
	}
	response.JSON(c, http.StatusOK, books)
}

// =====================================================
// HELPERS
// =====================================================

func parseID(c *gin.Context) (int64, error) {
	return strconv.ParseInt(c.Param("id"), 10, 64)
}

func parseStatus(c *gin.Context) (model.BookStatus, bool) {
	status := model.BookStatus(c.Query("status"))
	if !status.Valid() {
		response.BadRequest(c, "status must be one of AVAILABLE, READ, IN_PROGRESS")
		return "", false
	}
	return status, true
}

func mapBookError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, model.ErrBookNotFound):
		response.NotFound(c, err.Error())
	case errors.Is(err, model.ErrGenreRefNotFound):
		response.Error(c, http.StatusNotFound, "Resource Not Found", err.Error())
	default:
		response.InternalServerError(c, err.Error())
	}
}
