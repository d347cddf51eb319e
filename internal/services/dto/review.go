package dto

import "time"

type CreateReviewRequest struct {
	BusinessUser uint   `json:"business_user" validate:"required"`
	Rating       int    `json:"rating" validate:"required,gte=1,lte=5"`
	Description  string `json:"description"`
}

type ReviewResponse struct {
	ID           uint      `json:"id"`
	BusinessUser uint      `json:"business_user"`
	Reviewer     uint      `json:"reviewer"`
	Rating       int       `json:"rating"`
	Description  string    `json:"description"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
