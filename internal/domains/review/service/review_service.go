package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	bookmodel "bookshelf-backend/internal/domains/book/model"
	bookservice "bookshelf-backend/internal/domains/book/service"
	"bookshelf-backend/internal/domains/review/model"
	"bookshelf-backend/internal/domains/review/repository"
)

type reviewService struct {
	reviewRepo  repository.ReviewRepository
	bookService bookservice.ServiceInterface
}

func NewReviewService(
	reviewRepo repository.ReviewRepository,
	bookService bookservice.ServiceInterface,
) ServiceInterface {
	return &reviewService{
		reviewRepo:  reviewRepo,
		bookService: bookService,
	}
}

func (s *reviewService) FindAll(ctx context.Context, filter model.ReviewFilter) ([]model.ReviewResponse, error) {
	reviews, err := s.reviewRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list reviews: %w", err)
	}
	return s.toResponses(ctx, reviews)
}

func (s *reviewService) FindByID(ctx context.Context, id int64) (*model.ReviewResponse, error) {
	rev, err := s.reviewRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.toResponse(ctx, rev)
}

func (s *reviewService) FindByBookID(ctx context.Context, bookID int64, sort model.ReviewSort) ([]model.ReviewResponse, error) {
	filter := model.ReviewFilter{BookID: &bookID, Sort: sort}
	reviews, err := s.reviewRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list reviews by book: %w", err)
	}
	return s.toResponses(ctx, reviews)
}

// StatsByBookID aggregates straight from the reviews table. A book with
// no reviews yields zero stats; a missing book is still a 404-class error,
// so the owner is checked when nothing was counted.
func (s *reviewService) StatsByBookID(ctx context.Context, bookID int64) (*model.BookReviewStats, error) {
	count, err := s.reviewRepo.CountByBookID(ctx, bookID)
	if err != nil {
		return nil, fmt.Errorf("failed to count reviews: %w", err)
	}
	if count == 0 {
		if err := s.requireBook(ctx, bookID); err != nil {
			return nil, err
		}
		return &model.BookReviewStats{BookID: bookID}, nil
	}

	avg, err := s.reviewRepo.AverageRatingByBookID(ctx, bookID)
	if err != nil {
		return nil, fmt.Errorf("failed to average ratings: %w", err)
	}
	return &model.BookReviewStats{
		BookID:        bookID,
		ReviewCount:   count,
		AverageRating: bookmodel.RoundRating(avg),
	}, nil
}

// Create verifies the owning book exists before anything is written; a
// missing book id fails the whole operation.
func (s *reviewService) Create(ctx context.Context, req model.ReviewRequest) (*model.ReviewResponse, error) {
	if err := s.requireBook(ctx, req.BookID); err != nil {
		return nil, err
	}

	rev := req.ToEntity()
	rev.CreatedAt = time.Now().UTC()

	if err := s.reviewRepo.Create(ctx, rev); err != nil {
		return nil, fmt.Errorf("failed to create review: %w", err)
	}

	log.Info().Int64("review_id", rev.ID).Int64("book_id", rev.BookID).
		Int("rating", rev.Rating).Msg("Review created")

	// The book response is loaded after the insert so the embedded
	// aggregate includes the review that was just written.
	book, err := s.bookService.FindByID(ctx, rev.BookID)
	if err != nil {
		return nil, err
	}
	return model.ToResponse(rev, book), nil
}

// Update overwrites content and rating; when the owner id changes, the
// new book must exist. createdAt is never touched.
func (s *reviewService) Update(ctx context.Context, id int64, req model.ReviewRequest) (*model.ReviewResponse, error) {
	rev, err := s.reviewRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if rev.BookID != req.BookID {
		if err := s.requireBook(ctx, req.BookID); err != nil {
			return nil, err
		}
	}

	rev.Content = req.Content
	rev.Rating = req.Rating
	rev.BookID = req.BookID

	if err := s.reviewRepo.Update(ctx, rev); err != nil {
		return nil, fmt.Errorf("failed to update review: %w", err)
	}
	return s.toResponse(ctx, rev)
}

func (s *reviewService) DeleteByID(ctx context.Context, id int64) (bool, error) {
	deleted, err := s.reviewRepo.Delete(ctx, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete review: %w", err)
	}
	if deleted {
		log.Info().Int64("review_id", id).Msg("Review deleted")
	}
	return deleted, nil
}

func (s *reviewService) requireBook(ctx context.Context, bookID int64) error {
	exists, err := s.bookService.Exists(ctx, bookID)
	if err != nil {
		return fmt.Errorf("failed to check book existence: %w", err)
	}
	if !exists {
		return bookmodel.ErrBookNotFound
	}
	return nil
}

func (s *reviewService) toResponse(ctx context.Context, rev *model.Review) (*model.ReviewResponse, error) {
	book, err := s.bookService.FindByID(ctx, rev.BookID)
	if err != nil {
		return nil, err
	}
	return model.ToResponse(rev, book), nil
}

// toResponses resolves each distinct owning book once for the batch.
func (s *reviewService) toResponses(ctx context.Context, reviews []model.Review) ([]model.ReviewResponse, error) {
	booksByID := make(map[int64]*bookmodel.BookResponse)
	responses := make([]model.ReviewResponse, 0, len(reviews))

	for i := range reviews {
		rev := &reviews[i]
		book, ok := booksByID[rev.BookID]
		if !ok {
			var err error
			book, err = s.bookService.FindByID(ctx, rev.BookID)
			if err != nil {
				return nil, err
			}
			booksByID[rev.BookID] = book
		}
		responses = append(responses, *model.ToResponse(rev, book))
	}
	return responses, nil
}
