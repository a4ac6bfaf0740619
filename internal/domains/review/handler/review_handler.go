package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	bookmodel "bookshelf-backend/internal/domains/book/model"
	"bookshelf-backend/internal/domains/review/model"
	"bookshelf-backend/internal/domains/review/service"
	"bookshelf-backend/internal/shared/response"
)

type ReviewHandler struct {
	reviewService service.ServiceInterface
}

func NewReviewHandler(reviewService service.ServiceInterface) *ReviewHandler {
	return &ReviewHandler{reviewService: reviewService}
}

// GetAll handles GET /reviews with optional rating filters:
// ?rating= exact, ?minRating= strictly above, ?maxRating= strictly below.
func (h *ReviewHandler) GetAll(c *gin.Context) {
	var filter model.ReviewFilter

	if raw := c.Query("rating"); raw != "" {
		rating, err := strconv.Atoi(raw)
		if err != nil {
			response.BadRequest(c, "invalid rating")
			return
		}
		filter.Rating = &rating
	}
	if raw := c.Query("minRating"); raw != "" {
		minRating, err := strconv.Atoi(raw)
		if err != nil {
			response.BadRequest(c, "invalid minRating")
			return
		}
		filter.MinRating = &minRating
	}
	if raw := c.Query("maxRating"); raw != "" {
		maxRating, err := strconv.Atoi(raw)
		if err != nil {
			response.BadRequest(c, "invalid maxRating")
			return
		}
		filter.MaxRating = &maxRating
	}
	filter.Sort = parseSort(c)

	reviews, err := h.reviewService.FindAll(c.Request.Context(), filter)
	if err != nil {
		mapReviewError(c, err)
		return
	}
	response.JSON(c, http.StatusOK, reviews)
}

// GetByID handles GET /reviews/:id
func (h *ReviewHandler) GetByID(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		response.BadRequest(c, "invalid review id")
		return
	}

	resp, err := h.reviewService.FindByID(c.Request.Context(), id)
	if err != nil {
		mapReviewError(c, err)
		return
	}
	response.JSON(c, http.StatusOK, resp)
}

// GetByBookID handles GET /books/:id/reviews
func (h *ReviewHandler) GetByBookID(c *gin.Context) {
	bookID, err := parseID(c)
	if err != nil {
		response.BadRequest(c, "invalid book id")
		return
	}

	reviews, err := h.reviewService.FindByBookID(c.Request.Context(), bookID, parseSort(c))
	if err != nil {
		mapReviewError(c, err)
		return
	}
	response.JSON(c, http.StatusOK, reviews)
}

// GetStatsByBookID handles GET /books/:id/reviews/stats
func (h *ReviewHandler) GetStatsByBookID(c *gin.Context) {
	bookID, err := parseID(c)
	if err != nil {
		response.BadRequest(c, "invalid book id")
		return
	}

	stats, err := h.reviewService.StatsByBookID(c.Request.Context(), bookID)
	if err != nil {
		mapReviewError(c, err)
		return
	}
	response.JSON(c, http.StatusOK, stats)
}

// Create handles POST /reviews
func (h *ReviewHandler) Create(c *gin.Context) {
	var req model.ReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		response.ValidationFailed(c, err)
		return
	}

	resp, err := h.reviewService.Create(c.Request.Context(), req)
	if err != nil {
		mapReviewError(c, err)
		return
	}
	response.Created(c, resp)
}

// Update handles PUT /reviews/:id
func (h *ReviewHandler) Update(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		response.BadRequest(c, "invalid review id")
		return
	}

	var req model.ReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		response.ValidationFailed(c, err)
		return
	}

	resp, err := h.reviewService.Update(c.Request.Context(), id, req)
	if err != nil {
		mapReviewError(c, err)
		return
	}
	response.JSON(c, http.StatusOK, resp)
}

// Delete handles DELETE /reviews/:id
func (h *ReviewHandler) Delete(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		response.BadRequest(c, "invalid review id")
		return
	}

	deleted, err := h.reviewService.DeleteByID(c.Request.Context(), id)
	if err != nil {
		response.InternalServerError(c, err.Error())
		return
	}
	if !deleted {
		response.NotFound(c, "review not found")
		return
	}
	response.NoContent(c)
}

func parseID(c *gin.Context) (int64, error) {
	return strconv.ParseInt(c.Param("id"), 10, 64)
}

func parseSort(c *gin.Context) model.ReviewSort {
	switch c.Query("sort") {
	case "rating_desc":
		return model.SortByRatingDesc
	case "created_desc":
		return model.SortByCreatedAtDesc
	}
	return model.SortByID
}

func mapReviewError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, model.ErrReviewNotFound):
		response.NotFound(c, err.Error())
	case errors.Is(err, bookmodel.ErrBookNotFound):
		response.NotFound(c, err.Error())
	default:
		response.InternalServerError(c, err.Error())
	}
}
