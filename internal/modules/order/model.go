package order

import (
	"time"

	"github.com/google/uuid"
)

// OrderStatus represents the lifecycle state of an order.
type OrderStatus string

const (
	StatusPending    OrderStatus = "pending"
	StatusProcessing OrderStatus = "processing"
	StatusShipped    OrderStatus = "shipped"
	StatusDelivered  OrderStatus = "delivered"
	StatusCancelled  OrderStatus = "cancelled"
)

// OrderProduct is one product line copied from the cart at checkout.
// Prices are integer currency units (XOF), frozen at checkout time.
type OrderProduct struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
	Price    int64  `json:"price"`
}

// Order is a customer order placed through checkout.
type Order struct {
	ID              uuid.UUID      `json:"id"`
	CustomerName    string         `json:"customerName"`
	CustomerEmail   string         `json:"customerEmail"`
	Products        []OrderProduct `json:"products"`
	Total           int64          `json:"total"`
	Status          OrderStatus    `json:"status"`
	ShippingAddress string         `json:"shippingAddress"`
	CreatedAt       time.Time      `json:"createdAt"`
}

// CheckoutRequest is the customer-facing payload; the product lines and
// total come from the session cart, never from the client.
type CheckoutRequest struct {
	CustomerName    string `json:"customer_name" validate:"required"`
	CustomerEmail   string `json:"customer_email" validate:"required,email"`
	ShippingAddress string `json:"shipping_address" validate:"required"`
}

// UpdateStatusRequest is the admin payload for advancing an order.
type UpdateStatusRequest struct {
	Status string `json:"status"`
}
