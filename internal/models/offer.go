package models

import "gorm.io/datatypes"

const (
	OfferTypeBasic    = "basic"
	OfferTypeStandard = "standard"
	OfferTypePremium  = "premium"
)

// OfferTypes lists the package tiers every offer must provide, in order.
var OfferTypes = []string{OfferTypeBasic, OfferTypeStandard, OfferTypePremium}

// Offer is a business user's published service listing. Pricing lives in the
// three OfferDetail packages; an offer never exists without them.
type Offer struct {
	BaseModel
	UserID      uint `gorm:"not null;index"`
	Title       string
	Description string
	Image       string

	// Relations
	User    User          `gorm:"foreignKey:UserID"`
	Details []OfferDetail `gorm:"foreignKey:OfferID;constraint:OnDelete:CASCADE"`
}

// OfferDetail is one priced package (basic/standard/premium) of an Offer.
// The offer_type is the matching key for partial updates.
type OfferDetail struct {
	BaseModel
	OfferID            uint    `gorm:"not null;index"`
	Title              string  `gorm:"default:'Standard Package'"`
	Price              float64 `gorm:"type:decimal(10,2);not null"`
	DeliveryTimeInDays int     `gorm:"not null"`
	Revisions          int     `gorm:"default:0"` // -1 means unlimited
	Features           datatypes.JSONSlice[string]
	OfferType          string `gorm:"type:varchar(20);not null;index"`
	Description        string
	Image              string

	// Relations
	Offer Offer `gorm:"foreignKey:OfferID"`
}

func ValidOfferType(t string) bool {
	switch t {
	case OfferTypeBasic, OfferTypeStandard, OfferTypePremium:
		return true
	default:
		return false
	}
}
