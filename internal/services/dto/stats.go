package dto

// BaseInfoResponse is the public platform stats payload. AverageRating is
// rounded to one decimal and null while no reviews exist.
type BaseInfoResponse struct {
	ReviewCount          int64    `json:"review_count"`
	AverageRating        *float64 `json:"average_rating"`
	BusinessProfileCount int64    `json:"business_profile_count"`
	OfferCount           int64    `json:"offer_count"`
}
