package db_models

import "time"

// User is created on first successful authentication and never overwritten
// by later logins.
type User struct {
	BaseModel
	FirebaseUID string  `gorm:"size:128;uniqueIndex;not null"`
	Email       *string `gorm:"size:255"`
	FullName    *string `gorm:"size:255"`
	Locale      *string `gorm:"size:16"`
	LastLoginAt *time.Time

	Trips []Trip `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}
