package main

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"bookshelf-backend/internal/shared/middleware"
	"bookshelf-backend/pkg/container"
)

func SetupRouter(c *container.Container) *gin.Engine {
	router := gin.New()

	router.Use(
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.Logger(),
		middleware.CORS(),
	)

	v1 := router.Group("/api/v1")
	{
		v1.GET("/health", healthCheckHandler(c))

		setupBookRoutes(v1, c)
		setupGenreRoutes(v1, c)
		setupReviewRoutes(v1, c)
	}

	return router
}

func setupBookRoutes(v1 *gin.RouterGroup, c *container.Container) {
	books := v1.Group("/books")
	{
		books.GET("", c.BookHandler.GetAll)
		books.POST("", c.BookHandler.Create)
		books.GET("/popular", c.BookHandler.GetPopular)
		books.GET("/high-rated", c.BookHandler.GetHighRated)
		books.GET("/isbn-exists", c.BookHandler.ISBNExists)
		books.GET("/search/author", c.BookHandler.SearchByAuthor)
		books.GET("/search/status", c.BookHandler.SearchByStatus)
		books.GET("/search/year", c.BookHandler.SearchByYear)
		books.GET("/search/year-range", c.BookHandler.SearchByYearRange)
		books.GET("/search/title", c.BookHandler.SearchByTitle)
		books.GET("/search/isbn", c.BookHandler.SearchByISBN)
		books.GET("/count/author", c.BookHandler.CountByAuthor)
		books.GET("/count/status", c.BookHandler.CountByStatus)
		books.GET("/by-genre/:genreId", c.BookHandler.GetByGenreID)
		books.GET("/by-genre-name/:name", c.BookHandler.GetByGenreName)
		books.DELETE("/by-author", c.BookHandler.DeleteByAuthor)
		books.GET("/:id", c.BookHandler.GetByID)
		books.PUT("/:id", c.BookHandler.Update)
		books.DELETE("/:id", c.BookHandler.Delete)
		books.GET("/:id/reviews", c.ReviewHandler.GetByBookID)
		books.GET("/:id/reviews/stats", c.ReviewHandler.GetStatsByBookID)
	}
}

func setupGenreRoutes(v1 *gin.RouterGroup, c *container.Container) {
	genres := v1.Group("/genres")
	{
		genres.GET("", c.GenreHandler.GetAll)
		genres.POST("", c.GenreHandler.Create)
		genres.GET("/search", c.GenreHandler.Search)
		genres.GET("/by-name/:name", c.GenreHandler.GetByName)
		genres.GET("/:id", c.GenreHandler.GetByID)
		genres.PUT("/:id", c.GenreHandler.Update)
		genres.DELETE("/:id", c.GenreHandler.Delete)
	}
}

func setupReviewRoutes(v1 *gin.RouterGroup, c *container.Container) {
	reviews := v1.Group("/reviews")
	{
		reviews.GET("", c.ReviewHandler.GetAll)
		reviews.POST("", c.ReviewHandler.Create)
		reviews.GET("/:id", c.ReviewHandler.GetByID)
		reviews.PUT("/:id", c.ReviewHandler.Update)
		reviews.DELETE("/:id", c.ReviewHandler.Delete)
	}
}

func healthCheckHandler(c *container.Container) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		dbStatus := "ok"
		if err := c.DB.Ping(ctx.Request.Context()); err != nil {
			dbStatus = "unreachable"
		}

		status := http.StatusOK
		if dbStatus != "ok" {
			status = http.StatusServiceUnavailable
		}

		ctx.JSON(status, gin.H{
			"status":    dbStatus,
			"version":   c.Config.App.Version,
			"timestamp": time.Now().UTC(),
		})
	}
}
