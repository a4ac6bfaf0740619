package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"bookshelf-backend/internal/domains/book/model"
	"bookshelf-backend/internal/domains/genre"
)

const bookColumns = `id, title, author, isbn, publication_year, status`

type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) BookRepository {
	return &postgresRepository{pool: pool}
}

// =====================================================
// BASIC CRUD
// =====================================================

func (r *postgresRepository) GetAll(ctx context.Context) ([]model.Book, error) {
	return r.queryBooks(ctx, `SELECT `+bookColumns+` FROM books ORDER BY id`)
}

func (r *postgresRepository) GetByID(ctx context.Context, id int64) (*model.Book, error) {
	const query = `SELECT ` + bookColumns + ` FROM books WHERE id = $1`

	b, err := scanBook(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrBookNotFound
		}
		return nil, fmt.Errorf("failed to get book: %w", err)
	}
	return b, nil
}

func (r *postgresRepository) ExistsByID(ctx context.Context, id int64) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM books WHERE id = $1)`

	var exists bool
	if err := r.pool.QueryRow(ctx, query, id).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check book existence: %w", err)
	}
	return exists, nil
}

func (r *postgresRepository) InsertTx(ctx context.Context, tx pgx.Tx, b *model.Book) error {
	const query = `
		INSERT INTO books (title, author, isbn, publication_year, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`

	err := tx.QueryRow(ctx, query,
		b.Title, b.Author, b.ISBN, b.PublicationYear, b.Status,
	).Scan(&b.ID)
	if err != nil {
		return fmt.Errorf("failed to insert book: %w", err)
	}
	return nil
}

func (r *postgresRepository) UpdateTx(ctx context.Context, tx pgx.Tx, b *model.Book) error {
	const query = `
		UPDATE books
		SET title = $1, author = $2, isbn = $3, publication_year = $4, status = $5
		WHERE id = $6
	`

	tag, err := tx.Exec(ctx, query,
		b.Title, b.Author, b.ISBN, b.PublicationYear, b.Status, b.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update book: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrBookNotFound
	}
	return nil
}

// Delete removes the book; reviews and genre links go with it via the
// ON DELETE CASCADE constraints.
func (r *postgresRepository) Delete(ctx context.Context, id int64) (bool, error) {
	const query = `DELETE FROM books WHERE id = $1`

	tag, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete book: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

func (r *postgresRepository) DeleteByAuthor(ctx context.Context, author string) (int64, error) {
	const query = `DELETE FROM books WHERE author = $1`

	tag, err := r.pool.Exec(ctx, query, author)
	if err != nil {
		return 0, fmt.Errorf("failed to delete books by author: %w", err)
	}
	return tag.RowsAffected(), nil
}

// =====================================================
// DERIVED AUTHOR LOOKUPS
// =====================================================

func (r *postgresRepository) FindByAuthor(ctx context.Context, author string) ([]model.Book, error) {
	return r.queryBooks(ctx,
		`SELECT `+bookColumns+` FROM books WHERE author = $1 ORDER BY id`, author)
}

func (r *postgresRepository) FindByAuthorIgnoreCase(ctx context.Context, author string) ([]model.Book, error) {
	return r.queryBooks(ctx,
		`SELECT `+bookColumns+` FROM books WHERE LOWER(author) = LOWER($1) ORDER BY id`, author)
}

func (r *postgresRepository) FindByAuthorContaining(ctx context.Context, fragment string) ([]model.Book, error) {
	return r.queryBooks(ctx,
		`SELECT `+bookColumns+` FROM books WHERE author LIKE '%' || $1 || '%' ORDER BY id`, fragment)
}

func (r *postgresRepository) FindByAuthorContainingIgnoreCase(ctx context.Context, fragment string) ([]model.Book, error) {
	return r.queryBooks(ctx,
		`SELECT `+bookColumns+` FROM books WHERE author ILIKE '%' || $1 || '%' ORDER BY id`, fragment)
}

func (r *postgresRepository) FindByAuthorOrderByTitle(ctx context.Context, author string) ([]model.Book, error) {
	return r.queryBooks(ctx,
		`SELECT `+bookColumns+` FROM books WHERE author = $1 ORDER BY title ASC, id`, author)
}

func (r *postgresRepository) FindByAuthorOrderByYearDesc(ctx context.Context, author string) ([]model.Book, error) {
	return r.queryBooks(ctx,
		`SELECT `+bookColumns+` FROM books WHERE author = $1
		 ORDER BY publication_year DESC NULLS LAST, id`, author)
}

func (r *postgresRepository) CountByAuthor(ctx context.Context, author string) (int64, error) {
	return r.count(ctx, `SELECT COUNT(*) FROM books WHERE author = $1`, author)
}

// =====================================================
// STATUS AND YEAR LOOKUPS
// =====================================================

func (r *postgresRepository) FindByStatus(ctx context.Context, status model.BookStatus) ([]model.Book, error) {
	return r.queryBooks(ctx,
		`SELECT `+bookColumns+` FROM books WHERE status = $1 ORDER BY id`, status)
}

func (r *postgresRepository) CountByStatus(ctx context.Context, status model.BookStatus) (int64, error) {
	return r.count(ctx, `SELECT COUNT(*) FROM books WHERE status = $1`, status)
}

func (r *postgresRepository) FindByStatusAndAuthor(ctx context.Context, status model.BookStatus, author string) ([]model.Book, error) {
	return r.queryBooks(ctx,
		`SELECT `+bookColumns+` FROM books WHERE status = $1 AND author = $2 ORDER BY id`,
		status, author)
}

func (r *postgresRepository) FindByStatusOrAuthor(ctx context.Context, status model.BookStatus, author string) ([]model.Book, error) {
	return r.queryBooks(ctx,
		`SELECT `+bookColumns+` FROM books WHERE status = $1 OR author = $2 ORDER BY id`,
		status, author)
}

func (r *postgresRepository) FindByPublicationYear(ctx context.Context, year int) ([]model.Book, error) {
	return r.queryBooks(ctx,
		`SELECT `+bookColumns+` FROM books WHERE publication_year = $1 ORDER BY id`, year)
}

func (r *postgresRepository) FindByPublicationYearBefore(ctx context.Context, year int) ([]model.Book, error) {
	return r.queryBooks(ctx,
		`SELECT `+bookColumns+` FROM books WHERE publication_year < $1 ORDER BY id`, year)
}

func (r *postgresRepository) FindByPublicationYearAfter(ctx context.Context, year int) ([]model.Book, error) {
	return r.queryBooks(ctx,
		`SELECT `+bookColumns+` FROM books WHERE publication_year > $1 ORDER BY id`, year)
}

func (r *postgresRepository) FindByPublicationYearBetween(ctx context.Context, startYear, endYear int) ([]model.Book, error) {
	return r.queryBooks(ctx,
		`SELECT `+bookColumns+` FROM books
		 WHERE publication_year BETWEEN $1 AND $2
		 ORDER BY publication_year DESC, id`, startYear, endYear)
}

// =====================================================
// TITLE AND ISBN LOOKUPS
// =====================================================

func (r *postgresRepository) FindByTitlePrefix(ctx context.Context, prefix string) ([]model.Book, error) {
	return r.queryBooks(ctx,
		`SELECT `+bookColumns+` FROM books WHERE title LIKE $1 || '%' ORDER BY id`, prefix)
}

func (r *postgresRepository) FindByTitleSuffix(ctx context.Context, suffix string) ([]model.Book, error) {
	return r.queryBooks(ctx,
		`SELECT `+bookColumns+` FROM books WHERE title LIKE '%' || $1 ORDER BY id`, suffix)
}

func (r *postgresRepository) FindByISBN(ctx context.Context, isbn string) (*model.Book, error) {
	const query = `SELECT ` + bookColumns + ` FROM books WHERE isbn = $1 ORDER BY id LIMIT 1`

	b, err := scanBook(r.pool.QueryRow(ctx, query, isbn))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrBookNotFound
		}
		return nil, fmt.Errorf("failed to get book by isbn: %w", err)
	}
	return b, nil
}

func (r *postgresRepository) ExistsByISBN(ctx context.Context, isbn string) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM books WHERE isbn = $1)`

	var exists bool
	if err := r.pool.QueryRow(ctx, query, isbn).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check isbn existence: %w", err)
	}
	return exists, nil
}

// =====================================================
// GENRE-JOINED LOOKUPS
// =====================================================

func (r *postgresRepository) FindByGenreID(ctx context.Context, genreID int64) ([]model.Book, error) {
	return r.queryBooks(ctx, `
		SELECT b.id, b.title, b.author, b.isbn, b.publication_year, b.status
		FROM books b
		JOIN book_genres bg ON bg.book_id = b.id
		WHERE bg.genre_id = $1
		ORDER BY b.id`, genreID)
}

func (r *postgresRepository) FindByGenreName(ctx context.Context, name string) ([]model.Book, error) {
	return r.queryBooks(ctx, `
		SELECT b.id, b.title, b.author, b.isbn, b.publication_year, b.status
		FROM books b
		JOIN book_genres bg ON bg.book_id = b.id
		JOIN genres g ON g.id = bg.genre_id
		WHERE g.name = $1
		ORDER BY b.id`, name)
}

// =====================================================
// AGGREGATION-DRIVEN LOOKUPS
// =====================================================

// FindPopular orders by review count descending; ties break on id so the
// ordering stays stable.
func (r *postgresRepository) FindPopular(ctx context.Context) ([]model.Book, error) {
	return r.queryBooks(ctx, `
		SELECT b.id, b.title, b.author, b.isbn, b.publication_year, b.status
		FROM books b
		LEFT JOIN reviews r ON r.book_id = b.id
		GROUP BY b.id
		ORDER BY COUNT(r.id) DESC, b.id ASC`)
}

// FindWithAverageRatingAbove keeps books whose average rating strictly
// exceeds the threshold; books with no reviews never qualify.
func (r *postgresRepository) FindWithAverageRatingAbove(ctx context.Context, minRating float64) ([]model.Book, error) {
	return r.queryBooks(ctx, `
		SELECT b.id, b.title, b.author, b.isbn, b.publication_year, b.status
		FROM books b
		JOIN reviews r ON r.book_id = b.id
		GROUP BY b.id
		HAVING AVG(r.rating) > $1
		ORDER BY b.id`, minRating)
}

// =====================================================
// GENRE ASSOCIATION (JOIN TABLE)
// =====================================================

// ReplaceGenres installs the verified genre set with clear-then-add
// semantics inside the caller's transaction. The join table is the single
// source of truth for the relation, so both the "genres of book" and
// "books of genre" views stay consistent by construction.
func (r *postgresRepository) ReplaceGenres(ctx context.Context, tx pgx.Tx, bookID int64, genreIDs []int64) error {
	if _, err := tx.Exec(ctx, `DELETE FROM book_genres WHERE book_id = $1`, bookID); err != nil {
		return fmt.Errorf("failed to clear genre links: %w", err)
	}

	for _, genreID := range genreIDs {
		_, err := tx.Exec(ctx,
			`INSERT INTO book_genres (book_id, genre_id) VALUES ($1, $2)
			 ON CONFLICT DO NOTHING`, bookID, genreID)
		if err != nil {
			return fmt.Errorf("failed to link genre %d: %w", genreID, err)
		}
	}
	return nil
}

// =====================================================
// BATCH LOADS FOR RESPONSE SHAPING
// =====================================================

func (r *postgresRepository) GenresForBooks(ctx context.Context, bookIDs []int64) (map[int64][]genre.Genre, error) {
	result := make(map[int64][]genre.Genre, len(bookIDs))
	if len(bookIDs) == 0 {
		return result, nil
	}

	const query = `
		SELECT bg.book_id, g.id, g.name
		FROM book_genres bg
		JOIN genres g ON g.id = bg.genre_id
		WHERE bg.book_id = ANY($1)
		ORDER BY bg.book_id, g.id
	`

	rows, err := r.pool.Query(ctx, query, bookIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to load genres for books: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var bookID int64
		var g genre.Genre
		if err := rows.Scan(&bookID, &g.ID, &g.Name); err != nil {
			return nil, fmt.Errorf("failed to scan genre link: %w", err)
		}
		result[bookID] = append(result[bookID], g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}
	return result, nil
}

func (r *postgresRepository) StatsForBooks(ctx context.Context, bookIDs []int64) (map[int64]model.ReviewStats, error) {
	result := make(map[int64]model.ReviewStats, len(bookIDs))
	if len(bookIDs) == 0 {
		return result, nil
	}

	const query = `
		SELECT book_id, COUNT(*), AVG(rating)::float8
		FROM reviews
		WHERE book_id = ANY($1)
		GROUP BY book_id
	`

	rows, err := r.pool.Query(ctx, query, bookIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to load review stats: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var bookID int64
		var stats model.ReviewStats
		if err := rows.Scan(&bookID, &stats.Count, &stats.AverageRating); err != nil {
			return nil, fmt.Errorf("failed to scan review stats: %w", err)
		}
		result[bookID] = stats
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}
	return result, nil
}

// =====================================================
// SCAN HELPERS
// =====================================================

func (r *postgresRepository) queryBooks(ctx context.Context, query string, args ...interface{}) ([]model.Book, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("book query failed: %w", err)
	}
	defer rows.Close()

	books := make([]model.Book, 0)
	for rows.Next() {
		var b model.Book
		if err := rows.Scan(&b.ID, &b.Title, &b.Author, &b.ISBN, &b.PublicationYear, &b.Status); err != nil {
			return nil, fmt.Errorf("failed to scan book: %w", err)
		}
		books = append(books, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}
	return books, nil
}

func (r *postgresRepository) count(ctx context.Context, query string, args ...interface{}) (int64, error) {
	var count int64
	if err := r.pool.QueryRow(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("count query failed: %w", err)
	}
	return count, nil
}

func scanBook(row pgx.Row) (*model.Book, error) {
	var b model.Book
	if err := row.Scan(&b.ID, &b.Title, &b.Author, &b.ISBN, &b.PublicationYear, &b.Status); err != nil {
		return nil, err
	}
	return &b, nil
}
