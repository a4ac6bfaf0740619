package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"bookshelf-backend/internal/domains/genre"
	"bookshelf-backend/internal/shared/response"
)

type GenreHandler struct {
	service genre.Service
}

func NewGenreHandler(svc genre.Service) *GenreHandler {
	return &GenreHandler{service: svc}
}

// GetAll handles GET /genres
func (h *GenreHandler) GetAll(c *gin.Context) {
	genres, err := h.service.FindAll(c.Request.Context())
	if err != nil {
		response.InternalServerError(c, err.Error())
		return
	}
	response.JSON(c, http.StatusOK, genres)
}

// GetByID handles GET /genres/:id
func (h *GenreHandler) GetByID(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		response.BadRequest(c, "invalid genre id")
		return
	}

	resp, err := h.service.FindByID(c.Request.Context(), id)
	if err != nil {
		mapGenreError(c, err)
		return
	}
	response.JSON(c, http.StatusOK, resp)
}

// GetByName handles GET /genres/by-name/:name
func (h *GenreHandler) GetByName(c *gin.Context) {
	name := c.Param("name")

	resp, err := h.service.FindByName(c.Request.Context(), name)
	if err != nil {
		mapGenreError(c, err)
		return
	}
	response.JSON(c, http.StatusOK, resp)
}

// Search handles GET /genres/search?name=
func (h *GenreHandler) Search(c *gin.Context) {
	name := c.Query("name")
	if name == "" {
		response.BadRequest(c, "name is required")
		return
	}

	genres, err := h.service.SearchByName(c.Request.Context(), name)
	if err != nil {
		response.InternalServerError(c, err.Error())
		return
	}
	response.JSON(c, http.StatusOK, genres)
}

// Create handles POST /genres
func (h *GenreHandler) Create(c *gin.Context) {
	var req genre.GenreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		response.ValidationFailed(c, err)
		return
	}

	resp, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		mapGenreError(c, err)
		return
	}
	response.Created(c, resp)
}

// Update handles PUT /genres/:id
func (h *GenreHandler) Update(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		response.BadRequest(c, "invalid genre id")
		return
	}

	var req genre.GenreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		response.ValidationFailed(c, err)
		return
	}

	resp, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		mapGenreError(c, err)
		return
	}
	response.JSON(c, http.StatusOK, resp)
}

// Delete handles DELETE /genres/:id
func (h *GenreHandler) Delete(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		response.BadRequest(c, "invalid genre id")
		return
	}

	deleted, err := h.service.DeleteByID(c.Request.Context(), id)
	if err != nil {
		response.InternalServerError(c, err.Error())
		return
	}
	if !deleted {
		response.NotFound(c, "genre not found")
		return
	}
	response.NoContent(c)
}

func parseID(c *gin.Context) (int64, error) {
	return strconv.ParseInt(c.Param("id"), 10, 64)
}

func mapGenreError(c *gin.Context, err error) {
	if errors.Is(err, genre.ErrGenreNotFound) {
		response.NotFound(c, err.Error())
		return
	}
	response.InternalServerError(c, err.Error())
}
