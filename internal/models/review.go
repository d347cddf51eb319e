package models

// Review is a customer's rating of a business. The composite unique index
// guarantees at most one review per (business_user, reviewer) pair even when
// two requests race past the application-level pre-check.
type Review struct {
	BaseModel
	BusinessUserID uint `gorm:"not null;index;uniqueIndex:idx_reviews_business_reviewer"`
	ReviewerID     uint `gorm:"not null;index;uniqueIndex:idx_reviews_business_reviewer"`
	Rating         int  `gorm:"not null;check:rating >= 1 AND rating <= 5"`
	Description    string

	// Relations
	BusinessUser User `gorm:"foreignKey:BusinessUserID"`
	Reviewer     User `gorm:"foreignKey:ReviewerID"`
}
