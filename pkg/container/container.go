package container

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"bookshelf-backend/internal/config"
	bookHandler "bookshelf-backend/internal/domains/book/handler"
	bookRepo "bookshelf-backend/internal/domains/book/repository"
	bookService "bookshelf-backend/internal/domains/book/service"
	"bookshelf-backend/internal/domains/genre"
	genreHandler "bookshelf-backend/internal/domains/genre/handler"
	genreRepo "bookshelf-backend/internal/domains/genre/repository"
	genreService "bookshelf-backend/internal/domains/genre/service"
	reviewHandler "bookshelf-backend/internal/domains/review/handler"
	reviewRepo "bookshelf-backend/internal/domains/review/repository"
	reviewService "bookshelf-backend/internal/domains/review/service"
	"bookshelf-backend/internal/infrastructure/database"
)

// Container is the root of the dependency graph: config, infrastructure,
// repositories, services and handlers, built in that order.
type Container struct {
	Config *config.Config
	DB     *database.PostgresDB

	GenreRepo  genre.Repository
	BookRepo   bookRepo.BookRepository
	ReviewRepo reviewRepo.ReviewRepository

	GenreService  genre.Service
	BookService   bookService.ServiceInterface
	ReviewService reviewService.ServiceInterface

	GenreHandler  *genreHandler.GenreHandler
	BookHandler   *bookHandler.BookHandler
	ReviewHandler *reviewHandler.ReviewHandler
}

// NewContainer initializes the whole graph. Any failure aborts startup.
func NewContainer() (*Container, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db, err := database.Connect(ctx, cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	c := &Container{Config: cfg, DB: db}

	c.GenreRepo = genreRepo.NewPostgresRepository(db.Pool)
	c.BookRepo = bookRepo.NewPostgresRepository(db.Pool)
	c.ReviewRepo = reviewRepo.NewPostgresRepository(db.Pool)

	c.GenreService = genreService.NewGenreService(c.GenreRepo)
	c.BookService = bookService.NewBookService(c.BookRepo, c.GenreRepo, db)
	c.ReviewService = reviewService.NewReviewService(c.ReviewRepo, c.BookService)

	c.GenreHandler = genreHandler.NewGenreHandler(c.GenreService)
	c.BookHandler = bookHandler.NewBookHandler(c.BookService)
	c.ReviewHandler = reviewHandler.NewReviewHandler(c.ReviewService)

	log.Info().Msg("Dependency container initialized")
	return c, nil
}

// Cleanup releases infrastructure resources on shutdown.
func (c *Container) Cleanup() {
	if c.DB != nil {
		c.DB.Close()
	}
}
