package review

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// Service defines review moderation business logic.
type Service interface {
	SubmitReview(ctx context.Context, req SubmitReviewRequest) (*Review, error)
	ListReviews(ctx context.Context, status string) ([]*Review, error)
	UpdateStatus(ctx context.Context, id string, status string) (*Review, error)
	DeleteReview(ctx context.Context, id string) error
}

var validate = validator.New()

type service struct{ repo Repository }

func NewService(repo Repository) Service { return &service{repo: repo} }

func (s *service) SubmitReview(ctx context.Context, req SubmitReviewRequest) (*Review, error) {
	if err := validate.Struct(req); err != nil {
		return nil, err
	}
	rv := &Review{
		ID:            uuid.New(),
		ProductID:     req.ProductID,
		CustomerName:  req.CustomerName,
		CustomerEmail: req.CustomerEmail,
		Rating:        req.Rating,
		Comment:       req.Comment,
		Status:        StatusPending,
	}
	if err := s.repo.Create(ctx, rv); err != nil {
		return nil, err
	}
	return rv, nil
}

func (s *service) ListReviews(ctx context.Context, status string) ([]*Review, error) {
	return s.repo.List(ctx, status)
}

// UpdateStatus moderates a review. Only pending reviews can be decided;
// a decision is final.
func (s *service) UpdateStatus(ctx context.Context, id string, status string) (*Review, error) {
	next := ReviewStatus(strings.ToLower(status))
	if next != StatusApproved && next != StatusRejected {
		return nil, fmt.Errorf("invalid review status %q", status)
	}

	rv, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if rv.Status != StatusPending {
		return nil, fmt.Errorf("review already moderated (%s)", rv.Status)
	}

	if err := s.repo.UpdateStatus(ctx, id, next); err != nil {
		return nil, err
	}
	rv.Status = next
	return rv, nil
}

func (s *service) DeleteReview(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}
