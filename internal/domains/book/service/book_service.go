package service

import (
	"context"
	"fmt"

	pgx "github.com/jackc/pgx/v5"
	"github.com/rs/zerolog/log"

	"bookshelf-backend/internal/domains/book/model"
	"bookshelf-backend/internal/domains/book/repository"
	"bookshelf-backend/internal/domains/genre"
	"bookshelf-backend/internal/infrastructure/database"
)

type bookService struct {
	bookRepo  repository.BookRepository
	genreRepo genre.Repository
	tx        database.TxRunner
}

func NewBookService(
	bookRepo repository.BookRepository,
	genreRepo genre.Repository,
	tx database.TxRunner,
) ServiceInterface {
	return &bookService{
		bookRepo:  bookRepo,
		genreRepo: genreRepo,
		tx:        tx,
	}
}

// =====================================================
// READS
// =====================================================

func (s *bookService) FindAll(ctx context.Context) ([]model.BookResponse, error) {
	books, err := s.bookRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list books: %w", err)
	}
	return s.toResponses(ctx, books)
}

func (s *bookService) FindByID(ctx context.Context, id int64) (*model.BookResponse, error) {
	b, err := s.bookRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.toResponse(ctx, b)
}

// Exists is the cheap owner probe for other domains; it skips the genre
// and review loading FindByID does.
func (s *bookService) Exists(ctx context.Context, id int64) (bool, error) {
	return s.bookRepo.ExistsByID(ctx, id)
}

func (s *bookService) FindByAuthor(ctx context.Context, author string, match model.AuthorMatch, sort model.AuthorSort) ([]model.BookResponse, error) {
	var (
		books []model.Book
		err   error
	)

	switch sort {
	case model.SortTitleAsc:
		books, err = s.bookRepo.FindByAuthorOrderByTitle(ctx, author)
	case model.SortYearDesc:
		books, err = s.bookRepo.FindByAuthorOrderByYearDesc(ctx, author)
	default:
		switch match {
		case model.MatchExactIgnoreCase:
			books, err = s.bookRepo.FindByAuthorIgnoreCase(ctx, author)
		case model.MatchContains:
			books, err = s.bookRepo.FindByAuthorContaining(ctx, author)
		case model.MatchContainsIgnoreCase:
			books, err = s.bookRepo.FindByAuthorContainingIgnoreCase(ctx, author)
		default:
			books, err = s.bookRepo.FindByAuthor(ctx, author)
		}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find books by author: %w", err)
	}
	return s.toResponses(ctx, books)
}

func (s *bookService) CountByAuthor(ctx context.Context, author string) (int64, error) {
	return s.bookRepo.CountByAuthor(ctx, author)
}

func (s *bookService) CountByStatus(ctx context.Context, status model.BookStatus) (int64, error) {
	return s.bookRepo.CountByStatus(ctx, status)
}

func (s *bookService) FindByStatus(ctx context.Context, status model.BookStatus) ([]model.BookResponse, error) {
	books, err := s.bookRepo.FindByStatus(ctx, status)
	if err != nil {
		return nil, fmt.Errorf("failed to find books by status: %w", err)
	}
	return s.toResponses(ctx, books)
}

func (s *bookService) FindByStatusAndAuthor(ctx context.Context, status model.BookStatus, author string, matchAny bool) ([]model.BookResponse, error) {
	var (
		books []model.Book
		err   error
	)
	if matchAny {
		books, err = s.bookRepo.FindByStatusOrAuthor(ctx, status, author)
	} else {
		books, err = s.bookRepo.FindByStatusAndAuthor(ctx, status, author)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find books by status and author: %w", err)
	}
	return s.toResponses(ctx, books)
}

func (s *bookService) FindByPublicationYear(ctx context.Context, year int) ([]model.BookResponse, error) {
	books, err := s.bookRepo.FindByPublicationYear(ctx, year)
	if err != nil {
		return nil, fmt.Errorf("failed to find books by year: %w", err)
	}
	return s.toResponses(ctx, books)
}

func (s *bookService) FindByYearBefore(ctx context.Context, year int) ([]model.BookResponse, error) {
	books, err := s.bookRepo.FindByPublicationYearBefore(ctx, year)
	if err != nil {
		return nil, fmt.Errorf("failed to find books before year: %w", err)
	}
	return s.toResponses(ctx, books)
}

func (s *bookService) FindByYearAfter(ctx context.Context, year int) ([]model.BookResponse, error) {
	books, err := s.bookRepo.FindByPublicationYearAfter(ctx, year)
	if err != nil {
		return nil, fmt.Errorf("failed to find books after year: %w", err)
	}
	return s.toResponses(ctx, books)
}

func (s *bookService) FindByYearRange(ctx context.Context, startYear, endYear int) ([]model.BookResponse, error) {
	books, err := s.bookRepo.FindByPublicationYearBetween(ctx, startYear, endYear)
	if err != nil {
		return nil, fmt.Errorf("failed to find books by year range: %w", err)
	}
	return s.toResponses(ctx, books)
}

func (s *bookService) FindByTitlePrefix(ctx context.Context, prefix string) ([]model.BookResponse, error) {
	books, err := s.bookRepo.FindByTitlePrefix(ctx, prefix)
	if err != nil {
		return nil, fmt.Errorf("failed to find books by title prefix: %w", err)
	}
	return s.toResponses(ctx, books)
}

func (s *bookService) FindByTitleSuffix(ctx context.Context, suffix string) ([]model.BookResponse, error) {
	books, err := s.bookRepo.FindByTitleSuffix(ctx, suffix)
	if err != nil {
		return nil, fmt.Errorf("failed to find books by title suffix: %w", err)
	}
	return s.toResponses(ctx, books)
}

func (s *bookService) FindByISBN(ctx context.Context, isbn string) (*model.BookResponse, error) {
	b, err := s.bookRepo.FindByISBN(ctx, isbn)
	if err != nil {
		return nil, err
	}
	return s.toResponse(ctx, b)
}

func (s *bookService) ISBNExists(ctx context.Context, isbn string) (bool, error) {
	return s.bookRepo.ExistsByISBN(ctx, isbn)
}

func (s *bookService) FindByGenreID(ctx context.Context, genreID int64) ([]model.BookResponse, error) {
	books, err := s.bookRepo.FindByGenreID(ctx, genreID)
	if err != nil {
		return nil, fmt.Errorf("failed to find books by genre id: %w", err)
	}
	return s.toResponses(ctx, books)
}

func (s *bookService) FindByGenreName(ctx context.Context, name string) ([]model.BookResponse, error) {
	books, err := s.bookRepo.FindByGenreName(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("failed to find books by genre name: %w", err)
	}
	return s.toResponses(ctx, books)
}

func (s *bookService) FindPopular(ctx context.Context) ([]model.BookResponse, error) {
	books, err := s.bookRepo.FindPopular(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to find popular books: %w", err)
	}
	return s.toResponses(ctx, books)
}

func (s *bookService) FindHighRated(ctx context.Context, minRating float64) ([]model.BookResponse, error) {
	books, err := s.bookRepo.FindWithAverageRatingAbove(ctx, minRating)
	if err != nil {
		return nil, fmt.Errorf("failed to find high rated books: %w", err)
	}
	return s.toResponses(ctx, books)
}

// =====================================================
// WRITES
// =====================================================

// Create saves a new book. When genre ids are supplied, every id must
// exist; otherwise the whole operation fails before anything is written.
// The insert and the genre links commit in one transaction.
func (s *bookService) Create(ctx context.Context, req model.BookRequest) (*model.BookResponse, error) {
	genreIDs := dedupeIDs(req.GenreIDs)
	if len(genreIDs) > 0 {
		if err := s.verifyGenresExist(ctx, genreIDs); err != nil {
			return nil, err
		}
	}

	b := req.ToEntity()
	err := s.tx.ExecuteInTransaction(ctx, func(tx pgx.Tx) error {
		if err := s.bookRepo.InsertTx(ctx, tx, b); err != nil {
			return err
		}
		if len(genreIDs) > 0 {
			return s.bookRepo.ReplaceGenres(ctx, tx, b.ID, genreIDs)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create book: %w", err)
	}

	log.Info().Int64("book_id", b.ID).Str("title", b.Title).Msg("Book created")
	return s.toResponse(ctx, b)
}

// Update overwrites every scalar field. A nil genre-id set means the
// associations stay as they are; a present set — empty included — replaces
// them wholesale together with the save, in one transaction.
func (s *bookService) Update(ctx context.Context, id int64, req model.BookRequest) (*model.BookResponse, error) {
	b, err := s.bookRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	var genreIDs []int64
	replaceGenres := req.GenreIDs != nil
	if replaceGenres {
		genreIDs = dedupeIDs(req.GenreIDs)
		if err := s.verifyGenresExist(ctx, genreIDs); err != nil {
			return nil, err
		}
	}

	req.ApplyTo(b)
	err = s.tx.ExecuteInTransaction(ctx, func(tx pgx.Tx) error {
		if err := s.bookRepo.UpdateTx(ctx, tx, b); err != nil {
			return err
		}
		if replaceGenres {
			return s.bookRepo.ReplaceGenres(ctx, tx, b.ID, genreIDs)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to update book: %w", err)
	}

	return s.toResponse(ctx, b)
}

func (s *bookService) DeleteByID(ctx context.Context, id int64) (bool, error) {
	deleted, err := s.bookRepo.Delete(ctx, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete book: %w", err)
	}
	if deleted {
		log.Info().Int64("book_id", id).Msg("Book deleted")
	}
	return deleted, nil
}

func (s *bookService) DeleteByAuthor(ctx context.Context, author string) (int64, error) {
	count, err := s.bookRepo.DeleteByAuthor(ctx, author)
	if err != nil {
		return 0, fmt.Errorf("failed to delete books by author: %w", err)
	}
	log.Info().Str("author", author).Int64("count", count).Msg("Books deleted by author")
	return count, nil
}

// verifyGenresExist compares the count of matched genres against the
// requested set size; any mismatch is a referential violation.
func (s *bookService) verifyGenresExist(ctx context.Context, genreIDs []int64) error {
	count, err := s.genreRepo.CountByIDs(ctx, genreIDs)
	if err != nil {
		return fmt.Errorf("failed to verify genres: %w", err)
	}
	if count != int64(len(genreIDs)) {
		return model.ErrGenreRefNotFound
	}
	return nil
}

// =====================================================
// RESPONSE SHAPING
// =====================================================

func (s *bookService) toResponse(ctx context.Context, b *model.Book) (*model.BookResponse, error) {
	responses, err := s.toResponses(ctx, []model.Book{*b})
	if err != nil {
		return nil, err
	}
	return &responses[0], nil
}

// toResponses loads genre sets and review aggregates for the whole batch
// in two queries, then shapes each book.
func (s *bookService) toResponses(ctx context.Context, books []model.Book) ([]model.BookResponse, error) {
	ids := make([]int64, 0, len(books))
	for i := range books {
		ids = append(ids, books[i].ID)
	}

	genresByBook, err := s.bookRepo.GenresForBooks(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to load book genres: %w", err)
	}
	statsByBook, err := s.bookRepo.StatsForBooks(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to load review stats: %w", err)
	}

	responses := make([]model.BookResponse, 0, len(books))
	for i := range books {
		b := &books[i]
		responses = append(responses, *model.ToResponse(b, genresByBook[b.ID], statsByBook[b.ID]))
	}
	return responses, nil
}

func dedupeIDs(ids []int64) []int64 {
	if ids == nil {
		return nil
	}
	seen := make(map[int64]struct{}, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
