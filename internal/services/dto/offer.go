package dto

import "time"

// OfferDetailRequest is one package inside an offer creation payload.
// Revisions of -1 means unlimited. Zero is a valid price and a valid
// delivery time, so neither field carries a required tag.
type OfferDetailRequest struct {
	Title              string   `json:"title" validate:"required,max=255"`
	Revisions          int      `json:"revisions" validate:"gte=-1"`
	DeliveryTimeInDays int      `json:"delivery_time_in_days" validate:"gte=0"`
	Price              float64  `json:"price" validate:"gte=0"`
	Features           []string `json:"features" validate:"required"`
	OfferType          string   `json:"offer_type" validate:"required,oneof=basic standard premium"`
}

// CreateOfferRequest requires exactly three packages, one per offer type.
// The one-per-type rule is enforced by the service.
type CreateOfferRequest struct {
	Title       string               `json:"title" validate:"required,max=255"`
	Image       *string              `json:"image"`
	Description string               `json:"description"`
	Details     []OfferDetailRequest `json:"details" validate:"required,len=3,dive"`
}

// OfferDetailPatch updates one existing package. OfferType is the matching
// key and must always be present; nil fields keep their current value.
type OfferDetailPatch struct {
	Title              *string   `json:"title" validate:"omitempty,max=255"`
	Revisions          *int      `json:"revisions" validate:"omitempty,gte=-1"`
	DeliveryTimeInDays *int      `json:"delivery_time_in_days" validate:"omitempty,gte=0"`
	Price              *float64  `json:"price" validate:"omitempty,gte=0"`
	Features           *[]string `json:"features"`
	OfferType          string    `json:"offer_type"`
}

type UpdateOfferRequest struct {
	Title       *string            `json:"title" validate:"omitempty,max=255"`
	Image       *string            `json:"image"`
	Description *string            `json:"description"`
	Details     []OfferDetailPatch `json:"details" validate:"omitempty,dive"`
}

// OfferDetailResponse is the full package shape used on the standalone
// detail endpoint and inside create and update responses.
type OfferDetailResponse struct {
	ID                 uint     `json:"id"`
	Title              string   `json:"title"`
	Revisions          int      `json:"revisions"`
	DeliveryTimeInDays int      `json:"delivery_time_in_days"`
	Price              float64  `json:"price"`
	Features           []string `json:"features"`
	OfferType          string   `json:"offer_type"`
}

// DetailLink is the compact package reference used by list and retrieve.
type DetailLink struct {
	ID  uint   `json:"id"`
	URL string `json:"url"`
}

// UserDetails is the embedded creator summary on list items.
type UserDetails struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Username  string `json:"username"`
}

type OfferListItem struct {
	ID              uint         `json:"id"`
	User            uint         `json:"user"`
	Title           string       `json:"title"`
	Image           *string      `json:"image"`
	Description     string       `json:"description"`
	CreatedAt       time.Time    `json:"created_at"`
	UpdatedAt       time.Time    `json:"updated_at"`
	Details         []DetailLink `json:"details"`
	MinPrice        *float64     `json:"min_price"`
	MinDeliveryTime *int         `json:"min_delivery_time"`
	UserDetails     UserDetails  `json:"user_details"`
}

// OfferRetrieveResponse is the single-offer shape. Unlike the list item it
// carries no embedded creator summary.
type OfferRetrieveResponse struct {
	ID              uint         `json:"id"`
	User            uint         `json:"user"`
	Title           string       `json:"title"`
	Image           *string      `json:"image"`
	Description     string       `json:"description"`
	CreatedAt       time.Time    `json:"created_at"`
	UpdatedAt       time.Time    `json:"updated_at"`
	Details         []DetailLink `json:"details"`
	MinPrice        *float64     `json:"min_price"`
	MinDeliveryTime *int         `json:"min_delivery_time"`
}

// OfferWriteResponse is returned after create and update, with the packages
// expanded in full.
type OfferWriteResponse struct {
	ID          uint                  `json:"id"`
	Title       string                `json:"title"`
	Image       *string               `json:"image"`
	Description string                `json:"description"`
	Details     []OfferDetailResponse `json:"details"`
}

// PaginatedOffers mirrors page-number pagination: count plus next and
// previous page links, null at the edges.
type PaginatedOffers struct {
	Count    int64           `json:"count"`
	Next     *string         `json:"next"`
	Previous *string         `json:"previous"`
	Results  []OfferListItem `json:"results"`
}
