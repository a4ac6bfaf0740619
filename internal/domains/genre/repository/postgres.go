package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"bookshelf-backend/internal/domains/genre"
)

type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) genre.Repository {
	return &postgresRepository{pool: pool}
}

func (r *postgresRepository) GetAll(ctx context.Context) ([]genre.Genre, error) {
	const query = `SELECT id, name FROM genres ORDER BY id`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list genres: %w", err)
	}
	defer rows.Close()

	return scanGenres(rows)
}

func (r *postgresRepository) GetByID(ctx context.Context, id int64) (*genre.Genre, error) {
	const query = `SELECT id, name FROM genres WHERE id = $1`

	var g genre.Genre
	err := r.pool.QueryRow(ctx, query, id).Scan(&g.ID, &g.Name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, genre.ErrGenreNotFound
		}
		return nil, fmt.Errorf("failed to get genre: %w", err)
	}
	return &g, nil
}

func (r *postgresRepository) GetByName(ctx context.Context, name string) (*genre.Genre, error) {
	const query = `SELECT id, name FROM genres WHERE name = $1 ORDER BY id LIMIT 1`

	var g genre.Genre
	err := r.pool.QueryRow(ctx, query, name).Scan(&g.ID, &g.Name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, genre.ErrGenreNotFound
		}
		return nil, fmt.Errorf("failed to get genre by name: %w", err)
	}
	return &g, nil
}

func (r *postgresRepository) Create(ctx context.Context, g *genre.Genre) error {
	const query = `INSERT INTO genres (name) VALUES ($1) RETURNING id`

	if err := r.pool.QueryRow(ctx, query, g.Name).Scan(&g.ID); err != nil {
		return fmt.Errorf("failed to create genre: %w", err)
	}
	return nil
}

func (r *postgresRepository) Update(ctx context.Context, g *genre.Genre) error {
	const query = `UPDATE genres SET name = $1 WHERE id = $2`

	tag, err := r.pool.Exec(ctx, query, g.Name, g.ID)
	if err != nil {
		return fmt.Errorf("failed to update genre: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return genre.ErrGenreNotFound
	}
	return nil
}

func (r *postgresRepository) Delete(ctx context.Context, id int64) (bool, error) {
	const query = `DELETE FROM genres WHERE id = $1`

	tag, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete genre: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

func (r *postgresRepository) CountByIDs(ctx context.Context, ids []int64) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	const query = `SELECT COUNT(*) FROM genres WHERE id = ANY($1)`

	var count int64
	if err := r.pool.QueryRow(ctx, query, ids).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count genres by ids: %w", err)
	}
	return count, nil
}

func (r *postgresRepository) FindByNameContaining(ctx context.Context, fragment string) ([]genre.Genre, error) {
	const query = `SELECT id, name FROM genres WHERE name LIKE '%' || $1 || '%' ORDER BY id`

	rows, err := r.pool.Query(ctx, query, fragment)
	if err != nil {
		return nil, fmt.Errorf("failed to search genres by name: %w", err)
	}
	defer rows.Close()

	return scanGenres(rows)
}

func scanGenres(rows pgx.Rows) ([]genre.Genre, error) {
	genres := make([]genre.Genre, 0)
	for rows.Next() {
		var g genre.Genre
		if err := rows.Scan(&g.ID, &g.Name); err != nil {
			return nil, fmt.Errorf("failed to scan genre: %w", err)
		}
		genres = append(genres, g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}
	return genres, nil
}
