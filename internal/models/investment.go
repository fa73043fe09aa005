package models

import "time"

// InvestmentType represents the metal an investment is held in.
type InvestmentType string

const (
	InvestmentTypeGold   InvestmentType = "gold"
	InvestmentTypeSilver InvestmentType = "silver"
)

// Gold carat grades.
const (
	Carat22K = "22K"
	Carat24K = "24K"
)

// Investment represents a gold or silver purchase. Carat is set for gold
// only; silver investments never carry one.
type Investment struct {
	Base
	UserID       string         `gorm:"type:uuid;not null;index" json:"userId"`
	Type         InvestmentType `gorm:"not null" json:"type"`
	Carat        string         `json:"carat,omitempty"`
	Quantity     float64        `gorm:"not null" json:"quantity"`
	PricePerUnit float64        `gorm:"not null" json:"pricePerUnit"`
	TotalAmount  float64        `gorm:"not null" json:"totalAmount"`
	Date         time.Time      `gorm:"not null;index" json:"date"`
}
