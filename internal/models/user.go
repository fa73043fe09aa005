package models

import "time"

// User represents an account identified by phone number. Login is OTP-based;
// only the bcrypt hash of the most recently issued code is stored.
type User struct {
	Base
	PhoneNumber string     `gorm:"uniqueIndex;not null" json:"phoneNumber"`
	Name        string     `json:"name,omitempty"`
	Email       string     `json:"email,omitempty"`
	IsVerified  bool       `gorm:"default:false" json:"isVerified"`
	OTPHash     string     `gorm:"size:60" json:"-"`
	OTPExpiry   *time.Time `json:"-"`
}
