package models

import "time"

// GoalTransactionType represents the direction of a goal transaction.
type GoalTransactionType string

const (
	GoalTransactionDeposit  GoalTransactionType = "deposit"
	GoalTransactionWithdraw GoalTransactionType = "withdraw"
	GoalTransactionPayment  GoalTransactionType = "payment"
)

// GoalTransaction represents a deposit into or withdrawal from a goal.
// Deleting a goal deletes its transactions.
type GoalTransaction struct {
	Base
	UserID      string              `gorm:"type:uuid;not null;index" json:"userId"`
	GoalID      string              `gorm:"type:uuid;not null;index" json:"goalId"`
	Type        GoalTransactionType `gorm:"not null" json:"type"`
	Amount      float64             `gorm:"not null" json:"amount"`
	Description string              `json:"description,omitempty"`
	Date        time.Time           `gorm:"not null" json:"date"`
}
