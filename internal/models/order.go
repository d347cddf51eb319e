package models

import "gorm.io/datatypes"

const (
	OrderStatusInProgress = "in_progress"
	OrderStatusCompleted  = "completed"
	OrderStatusCancelled  = "cancelled"
)

// Order is a snapshot of a purchased OfferDetail. The package fields are
// copied at creation time, so later edits to the detail never change a
// placed order. Only status is mutable afterwards.
type Order struct {
	BaseModel
	CustomerUserID uint `gorm:"not null;index"`
	BusinessUserID uint `gorm:"not null;index"`

	Title              string
	Price              float64 `gorm:"type:decimal(10,2);not null"`
	Revisions          int
	DeliveryTimeInDays int
	Features           datatypes.JSONSlice[string]
	OfferType          string `gorm:"type:varchar(20)"`
	Status             string `gorm:"type:varchar(20);not null;default:'in_progress'"`

	// Relations
	CustomerUser User `gorm:"foreignKey:CustomerUserID"`
	BusinessUser User `gorm:"foreignKey:BusinessUserID"`
}

func ValidOrderStatus(s string) bool {
	switch s {
	case OrderStatusInProgress, OrderStatusCompleted, OrderStatusCancelled:
		return true
	default:
		return false
	}
}
