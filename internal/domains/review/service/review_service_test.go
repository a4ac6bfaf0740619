package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	bookmodel "bookshelf-backend/internal/domains/book/model"
	bookservice "bookshelf-backend/internal/domains/book/service"
	"bookshelf-backend/internal/domains/review/model"
	"bookshelf-backend/internal/domains/review/repository"
)

// fakeReviewRepo covers only the methods the service calls; the embedded
// interface panics on anything unexpected.
type fakeReviewRepo struct {
	repository.ReviewRepository

	reviews     map[int64]model.Review
	nextID      int64
	createCalls int
	updateCalls int
	lastFilter  model.ReviewFilter
}

func newFakeReviewRepo() *fakeReviewRepo {
	return &fakeReviewRepo{reviews: make(map[int64]model.Review), nextID: 1}
}

func (f *fakeReviewRepo) List(_ context.Context, filter model.ReviewFilter) ([]model.Review, error) {
	f.lastFilter = filter
	out := make([]model.Review, 0, len(f.reviews))
	for _, r := range f.reviews {
		if filter.BookID != nil && r.BookID != *filter.BookID {
			continue
		}
		out = append(out, r)
	}
	return out, nil
}

func (f *fakeReviewRepo) GetByID(_ context.Context, id int64) (*model.Review, error) {
	r, ok := f.reviews[id]
	if !ok {
		return nil, model.ErrReviewNotFound
	}
	return &r, nil
}

func (f *fakeReviewRepo) Create(_ context.Context, r *model.Review) error {
	f.createCalls++
	r.ID = f.nextID
	f.nextID++
	f.reviews[r.ID] = *r
	return nil
}

func (f *fakeReviewRepo) Update(_ context.Context, r *model.Review) error {
	f.updateCalls++
	f.reviews[r.ID] = *r
	return nil
}

func (f *fakeReviewRepo) CountByBookID(_ context.Context, bookID int64) (int64, error) {
	var count int64
	for _, r := range f.reviews {
		if r.BookID == bookID {
			count++
		}
	}
	return count, nil
}

func (f *fakeReviewRepo) AverageRatingByBookID(_ context.Context, bookID int64) (float64, error) {
	var sum, count float64
	for _, r := range f.reviews {
		if r.BookID == bookID {
			sum += float64(r.Rating)
			count++
		}
	}
	if count == 0 {
		return 0, nil
	}
	return sum / count, nil
}

func (f *fakeReviewRepo) Delete(_ context.Context, id int64) (bool, error) {
	if _, ok := f.reviews[id]; !ok {
		return false, nil
	}
	delete(f.reviews, id)
	return true, nil
}

// fakeBookService hands out canned book responses and counts lookups.
type fakeBookService struct {
	bookservice.ServiceInterface

	books       map[int64]*bookmodel.BookResponse
	findCalls   int
	existsCalls int
}

func newFakeBookService(ids ...int64) *fakeBookService {
	books := make(map[int64]*bookmodel.BookResponse, len(ids))
	for _, id := range ids {
		books[id] = &bookmodel.BookResponse{ID: id, Title: "Book", Author: "Author", Status: bookmodel.StatusAvailable}
	}
	return &fakeBookService{books: books}
}

func (f *fakeBookService) FindByID(_ context.Context, id int64) (*bookmodel.BookResponse, error) {
	f.findCalls++
	b, ok := f.books[id]
	if !ok {
		return nil, bookmodel.ErrBookNotFound
	}
	return b, nil
}

func (f *fakeBookService) Exists(_ context.Context, id int64) (bool, error) {
	f.existsCalls++
	_, ok := f.books[id]
	return ok, nil
}

func strPtr(s string) *string { return &s }

func TestReviewService_Create(t *testing.T) {
	reviewRepo := newFakeReviewRepo()
	bookSvc := newFakeBookService(5)
	svc := NewReviewService(reviewRepo, bookSvc)

	before := time.Now().UTC()
	resp, err := svc.Create(context.Background(), model.ReviewRequest{
		BookID:  5,
		Content: strPtr("Gripping from the first page."),
		Rating:  5,
	})
	require.NoError(t, err)

	assert.Equal(t, 1, reviewRepo.createCalls)
	assert.Equal(t, 5, resp.Rating)
	require.NotNil(t, resp.Book)
	assert.Equal(t, int64(5), resp.Book.ID)
	assert.False(t, resp.CreatedAt.Before(before))
	assert.False(t, resp.CreatedAt.After(time.Now().UTC()))
}

func TestReviewService_Create_MissingBook_NothingWritten(t *testing.T) {
	reviewRepo := newFakeReviewRepo()
	svc := NewReviewService(reviewRepo, newFakeBookService())

	_, err := svc.Create(context.Background(), model.ReviewRequest{BookID: 404, Rating: 4})
	require.ErrorIs(t, err, bookmodel.ErrBookNotFound)

	assert.Equal(t, 0, reviewRepo.createCalls)
}

func TestReviewService_Update_KeepsCreatedAt(t *testing.T) {
	createdAt := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	reviewRepo := newFakeReviewRepo()
	reviewRepo.reviews[1] = model.Review{ID: 1, Rating: 3, CreatedAt: createdAt, BookID: 5}
	svc := NewReviewService(reviewRepo, newFakeBookService(5))

	resp, err := svc.Update(context.Background(), 1, model.ReviewRequest{
		BookID:  5,
		Content: strPtr("Better on a second read."),
		Rating:  4,
	})
	require.NoError(t, err)

	assert.Equal(t, 4, resp.Rating)
	assert.Equal(t, createdAt, resp.CreatedAt)
	assert.Equal(t, createdAt, reviewRepo.reviews[1].CreatedAt)
}

func TestReviewService_Update_SameBook_SkipsOwnerCheck(t *testing.T) {
	reviewRepo := newFakeReviewRepo()
	reviewRepo.reviews[1] = model.Review{ID: 1, Rating: 3, BookID: 5}
	bookSvc := newFakeBookService(5)
	svc := NewReviewService(reviewRepo, bookSvc)

	_, err := svc.Update(context.Background(), 1, model.ReviewRequest{BookID: 5, Rating: 2})
	require.NoError(t, err)

	// One lookup for response shaping only, no owner check.
	assert.Equal(t, 1, bookSvc.findCalls)
	assert.Equal(t, 0, bookSvc.existsCalls)
}

func TestReviewService_Update_ChangedBookMustExist(t *testing.T) {
	reviewRepo := newFakeReviewRepo()
	reviewRepo.reviews[1] = model.Review{ID: 1, Rating: 3, BookID: 5}
	svc := NewReviewService(reviewRepo, newFakeBookService(5))

	_, err := svc.Update(context.Background(), 1, model.ReviewRequest{BookID: 404, Rating: 3})
	require.ErrorIs(t, err, bookmodel.ErrBookNotFound)

	assert.Equal(t, 0, reviewRepo.updateCalls)
	assert.Equal(t, int64(5), reviewRepo.reviews[1].BookID)
}

func TestReviewService_Update_NotFound(t *testing.T) {
	svc := NewReviewService(newFakeReviewRepo(), newFakeBookService())

	_, err := svc.Update(context.Background(), 404, model.ReviewRequest{BookID: 1, Rating: 3})
	assert.ErrorIs(t, err, model.ErrReviewNotFound)
}

func TestReviewService_FindByBookID_Filters(t *testing.T) {
	reviewRepo := newFakeReviewRepo()
	reviewRepo.reviews[1] = model.Review{ID: 1, Rating: 5, BookID: 5}
	reviewRepo.reviews[2] = model.Review{ID: 2, Rating: 2, BookID: 6}
	svc := NewReviewService(reviewRepo, newFakeBookService(5, 6))

	reviews, err := svc.FindByBookID(context.Background(), 5, model.SortByRatingDesc)
	require.NoError(t, err)

	require.Len(t, reviews, 1)
	assert.Equal(t, int64(1), reviews[0].ID)
	require.NotNil(t, reviewRepo.lastFilter.BookID)
	assert.Equal(t, int64(5), *reviewRepo.lastFilter.BookID)
	assert.Equal(t, model.SortByRatingDesc, reviewRepo.lastFilter.Sort)
}

func TestReviewService_FindAll_ResolvesEachBookOnce(t *testing.T) {
	reviewRepo := newFakeReviewRepo()
	reviewRepo.reviews[1] = model.Review{ID: 1, Rating: 5, BookID: 5}
	reviewRepo.reviews[2] = model.Review{ID: 2, Rating: 4, BookID: 5}
	reviewRepo.reviews[3] = model.Review{ID: 3, Rating: 3, BookID: 6}
	bookSvc := newFakeBookService(5, 6)
	svc := NewReviewService(reviewRepo, bookSvc)

	reviews, err := svc.FindAll(context.Background(), model.ReviewFilter{})
	require.NoError(t, err)

	assert.Len(t, reviews, 3)
	assert.Equal(t, 2, bookSvc.findCalls)
}

func TestReviewService_StatsByBookID(t *testing.T) {
	reviewRepo := newFakeReviewRepo()
	reviewRepo.reviews[1] = model.Review{ID: 1, Rating: 3, BookID: 5}
	reviewRepo.reviews[2] = model.Review{ID: 2, Rating: 4, BookID: 5}
	reviewRepo.reviews[3] = model.Review{ID: 3, Rating: 4, BookID: 5}
	svc := NewReviewService(reviewRepo, newFakeBookService(5, 6))

	stats, err := svc.StatsByBookID(context.Background(), 5)
	require.NoError(t, err)

	assert.Equal(t, int64(5), stats.BookID)
	assert.Equal(t, int64(3), stats.ReviewCount)
	// (3+4+4)/3 rounded to one decimal
	assert.Equal(t, 3.7, stats.AverageRating)
}

func TestReviewService_StatsByBookID_NoReviews(t *testing.T) {
	svc := NewReviewService(newFakeReviewRepo(), newFakeBookService(6))

	stats, err := svc.StatsByBookID(context.Background(), 6)
	require.NoError(t, err)

	assert.Equal(t, int64(0), stats.ReviewCount)
	assert.Equal(t, 0.0, stats.AverageRating)
}

func TestReviewService_StatsByBookID_MissingBook(t *testing.T) {
	svc := NewReviewService(newFakeReviewRepo(), newFakeBookService())

	_, err := svc.StatsByBookID(context.Background(), 404)
	assert.ErrorIs(t, err, bookmodel.ErrBookNotFound)
}

func TestReviewService_DeleteByID(t *testing.T) {
	reviewRepo := newFakeReviewRepo()
	reviewRepo.reviews[1] = model.Review{ID: 1, Rating: 3, BookID: 5}
	svc := NewReviewService(reviewRepo, newFakeBookService(5))

	deleted, err := svc.DeleteByID(context.Background(), 1)
	require.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = svc.DeleteByID(context.Background(), 1)
	require.NoError(t, err)
	assert.False(t, deleted)
}
