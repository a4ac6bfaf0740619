package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"bookshelf-backend/internal/domains/genre"
)

type genreService struct {
	genreRepo genre.Repository
}

func NewGenreService(genreRepo genre.Repository) genre.Service {
	return &genreService{genreRepo: genreRepo}
}

func (s *genreService) FindAll(ctx context.Context) ([]genre.GenreResponse, error) {
	genres, err := s.genreRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list genres: %w", err)
	}
	return genre.ToResponseList(genres), nil
}

func (s *genreService) FindByID(ctx context.Context, id int64) (*genre.GenreResponse, error) {
	g, err := s.genreRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return genre.ToResponse(g), nil
}

func (s *genreService) FindByName(ctx context.Context, name string) (*genre.GenreResponse, error) {
	g, err := s.genreRepo.GetByName(ctx, name)
	if err != nil {
		return nil, err
	}
	return genre.ToResponse(g), nil
}

func (s *genreService) SearchByName(ctx context.Context, fragment string) ([]genre.GenreResponse, error) {
	genres, err := s.genreRepo.FindByNameContaining(ctx, fragment)
	if err != nil {
		return nil, fmt.Errorf("failed to search genres: %w", err)
	}
	return genre.ToResponseList(genres), nil
}

func (s *genreService) Create(ctx context.Context, req genre.GenreRequest) (*genre.GenreResponse, error) {
	g := &genre.Genre{Name: req.Name}
	if err := s.genreRepo.Create(ctx, g); err != nil {
		return nil, fmt.Errorf("failed to create genre: %w", err)
	}

	log.Info().Int64("genre_id", g.ID).Str("name", g.Name).Msg("Genre created")
	return genre.ToResponse(g), nil
}

func (s *genreService) Update(ctx context.Context, id int64, req genre.GenreRequest) (*genre.GenreResponse, error) {
	g, err := s.genreRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	g.Name = req.Name
	if err := s.genreRepo.Update(ctx, g); err != nil {
		return nil, fmt.Errorf("failed to update genre: %w", err)
	}
	return genre.ToResponse(g), nil
}

func (s *genreService) DeleteByID(ctx context.Context, id int64) (bool, error) {
	deleted, err := s.genreRepo.Delete(ctx, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete genre: %w", err)
	}
	if deleted {
		log.Info().Int64("genre_id", id).Msg("Genre deleted")
	}
	return deleted, nil
}
