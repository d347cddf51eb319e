package dto

import "time"

type CreateOrderRequest struct {
	OfferDetailID uint `json:"offer_detail_id" validate:"required"`
}

// OrderResponse exposes the snapshot fields copied from the package at
// purchase time, not the live offer detail.
type OrderResponse struct {
	ID                 uint      `json:"id"`
	CustomerUser       uint      `json:"customer_user"`
	BusinessUser       uint      `json:"business_user"`
	Title              string    `json:"title"`
	Revisions          int       `json:"revisions"`
	DeliveryTimeInDays int       `json:"delivery_time_in_days"`
	Price              float64   `json:"price"`
	Features           []string  `json:"features"`
	OfferType          string    `json:"offer_type"`
	Status             string    `json:"status"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

type OrderCountResponse struct {
	OrderCount int64 `json:"order_count"`
}

type CompletedOrderCountResponse struct {
	CompletedOrderCount int64 `json:"completed_order_count"`
}
