package model

type User struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Name     string `gorm:"size:128;not null" json:"name"`
	Email    string `gorm:"size:128;not null;index" json:"email"`
	Password string `gorm:"size:255;not null" json:"-"`
	// ResetToken is set while a password reset is pending and cleared once redeemed.
	ResetToken *string `gorm:"size:512" json:"-"`
}
