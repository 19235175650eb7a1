package review

import (
	"time"

	"github.com/google/uuid"
)

// ReviewStatus is the moderation state of a customer review.
type ReviewStatus string

const (
	StatusPending  ReviewStatus = "pending"
	StatusApproved ReviewStatus = "approved"
	StatusRejected ReviewStatus = "rejected"
)

// Review is a customer testimonial about a product. Only approved reviews
// appear on the storefront.
type Review struct {
	ID            uuid.UUID    `json:"id"`
	ProductID     int64        `json:"productId"`
	CustomerName  string       `json:"customerName"`
	CustomerEmail string       `json:"customerEmail"`
	Rating        int          `json:"rating"`
	Comment       string       `json:"comment"`
	Status        ReviewStatus `json:"status"`
	CreatedAt     time.Time    `json:"createdAt"`
}

// SubmitReviewRequest is the public payload for submitting a review.
type SubmitReviewRequest struct {
	ProductID     int64  `json:"product_id"`
	CustomerName  string `json:"customer_name" validate:"required"`
	CustomerEmail string `json:"customer_email" validate:"required,email"`
	Rating        int    `json:"rating" validate:"min=1,max=5"`
	Comment       string `json:"comment" validate:"required"`
}
