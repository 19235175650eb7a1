package review

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockRepository struct {
	reviews map[string]*Review
}

func newMockRepository() *mockRepository {
	return &mockRepository{reviews: make(map[string]*Review)}
}

func (m *mockRepository) Create(_ context.Context, rv *Review) error {
	m.reviews[rv.ID.String()] = rv
	return nil
}

func (m *mockRepository) GetByID(_ context.Context, id string) (*Review, error) {
	rv, ok := m.reviews[id]
	if !ok {
		return nil, ErrReviewNotFound
	}
	return rv, nil
}

func (m *mockRepository) List(_ context.Context, status string) ([]*Review, error) {
	var out []*Review
	for _, rv := range m.reviews {
		if status == "" || string(rv.Status) == status {
			out = append(out, rv)
		}
	}
	return out, nil
}

func (m *mockRepository) UpdateStatus(_ context.Context, id string, status ReviewStatus) error {
	rv, ok := m.reviews[id]
	if !ok {
		return ErrReviewNotFound
	}
	rv.Status = status
	return nil
}

func (m *mockRepository) Delete(_ context.Context, id string) error {
	if _, ok := m.reviews[id]; !ok {
		return ErrReviewNotFound
	}
	delete(m.reviews, id)
	return nil
}

func submitReq() SubmitReviewRequest {
	return SubmitReviewRequest{
		ProductID:     1,
		CustomerName:  "Moussa Ba",
		CustomerEmail: "moussa@example.com",
		Rating:        5,
		Comment:       "Excellente tisane, je recommande.",
	}
}

func TestSubmitReviewStartsPending(t *testing.T) {
	svc := NewService(newMockRepository())

	rv, err := svc.SubmitReview(context.Background(), submitReq())

	require.NoError(t, err)
	assert.Equal(t, StatusPending, rv.Status)
}

func TestSubmitReviewValidatesRating(t *testing.T) {
	svc := NewService(newMockRepository())

	for _, rating := range []int{0, 6, -1} {
		req := submitReq()
		req.Rating = rating
		_, err := svc.SubmitReview(context.Background(), req)
		assert.Error(t, err, "rating %d should be rejected", rating)
	}
}

func TestModerationApprovesPendingReview(t *testing.T) {
	svc := NewService(newMockRepository())
	rv, err := svc.SubmitReview(context.Background(), submitReq())
	require.NoError(t, err)

	approved, err := svc.UpdateStatus(context.Background(), rv.ID.String(), "approved")
	require.NoError(t, err)
	assert.Equal(t, StatusApproved, approved.Status)
}

func TestModerationDecisionIsFinal(t *testing.T) {
	svc := NewService(newMockRepository())
	rv, err := svc.SubmitReview(context.Background(), submitReq())
	require.NoError(t, err)

	_, err = svc.UpdateStatus(context.Background(), rv.ID.String(), "rejected")
	require.NoError(t, err)

	_, err = svc.UpdateStatus(context.Background(), rv.ID.String(), "approved")
	assert.Error(t, err)
}

func TestModerationRejectsUnknownStatus(t *testing.T) {
	svc := NewService(newMockRepository())
	rv, err := svc.SubmitReview(context.Background(), submitReq())
	require.NoError(t, err)

	_, err = svc.UpdateStatus(context.Background(), rv.ID.String(), "pending")
	assert.Error(t, err)
}

func TestListReviewsFiltersByStatus(t *testing.T) {
	svc := NewService(newMockRepository())

	first, err := svc.SubmitReview(context.Background(), submitReq())
	require.NoError(t, err)
	_, err = svc.SubmitReview(context.Background(), submitReq())
	require.NoError(t, err)
	_, err = svc.UpdateStatus(context.Background(), first.ID.String(), "approved")
	require.NoError(t, err)

	approved, err := svc.ListReviews(context.Background(), "approved")
	require.NoError(t, err)
	assert.Len(t, approved, 1)

	pending, err := svc.ListReviews(context.Background(), "pending")
	require.NoError(t, err)
	assert.Len(t, pending, 1)
}
