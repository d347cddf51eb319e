package models

type User struct {
	BaseModel
	Username     string `gorm:"uniqueIndex;not null"`
	Email        string `gorm:"uniqueIndex;not null"`
	PasswordHash string `gorm:"not null"`
	FirstName    string
	LastName     string
	IsStaff      bool `gorm:"default:false"`

	// Relations
	Profile *Profile `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}
