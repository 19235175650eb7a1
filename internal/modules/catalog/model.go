package catalog

import (
	"time"

	"github.com/google/uuid"
)

// ProductStatus controls storefront visibility.
type ProductStatus string

const (
	StatusActive   ProductStatus = "active"
	StatusInactive ProductStatus = "inactive"
)

// Product is an item in the NatureVita catalog.
type Product struct {
	ID          uuid.UUID     `json:"id"`
	Name        string        `json:"name"`
	Price       float64       `json:"price"`
	Description string        `json:"description,omitempty"`
	Image       string        `json:"image,omitempty"`
	Category    string        `json:"category"`
	Stock       int           `json:"stock"`
	Status      ProductStatus `json:"status"`
	CreatedAt   time.Time     `json:"createdAt"`
	UpdatedAt   time.Time     `json:"updatedAt"`
}
