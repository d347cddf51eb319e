package models

// UserType is the fixed role of a profile: it decides which operations the
// user may invoke (businesses publish offers, customers buy and review).
type UserType string

const (
	UserTypeCustomer UserType = "customer"
	UserTypeBusiness UserType = "business"
)

// Profile extends a User with marketplace-specific fields. Exactly one
// Profile exists per User.
type Profile struct {
	BaseModel
	UserID       uint     `gorm:"uniqueIndex;not null"`
	Type         UserType `gorm:"type:varchar(10);not null;default:'customer'"`
	File         string   // uploaded profile image URL, empty when unset
	Location     string
	Tel          string
	Description  string
	WorkingHours string

	// Relations
	User User `gorm:"foreignKey:UserID"`
}

func ValidUserType(t string) bool {
	switch UserType(t) {
	case UserTypeCustomer, UserTypeBusiness:
		return true
	default:
		return false
	}
}
