package services

import (
	"time"

	"fintrack/internal/models"
	"fintrack/internal/pagination"
)

// UserServicer defines the contract for the OTP authentication flow and
// profile management.
type UserServicer interface {
	SendOTP(phoneNumber string) (code string, expiry time.Time, err error)
	VerifyOTP(phoneNumber, code string) (*models.User, error)
	GetUserByID(id string) (*models.User, error)
	UpdateProfile(userID string, name, email *string) (*models.User, error)
}

// TransactionUpdateFields holds optional fields for a transaction update.
// Nil pointers leave the stored value unchanged.
type TransactionUpdateFields struct {
	Type        *models.TransactionType
	Amount      *float64
	Category    *string
	Description *string
	Date        *time.Time
}

// TransactionServicer defines the contract for transaction-related business logic.
type TransactionServicer interface {
	CreateTransaction(userID string, transactionType models.TransactionType, amount float64, category, description string, date time.Time) (*models.Transaction, error)
	GetUserTransactions(userID string) ([]models.Transaction, error)
	UpdateTransaction(userID, transactionID string, fields TransactionUpdateFields) (*models.Transaction, error)
	DeleteTransaction(userID, transactionID string) error
}

// InvestmentUpdateFields holds optional fields for an investment update.
type InvestmentUpdateFields struct {
	Type         *models.InvestmentType
	Carat        *string
	Quantity     *float64
	PricePerUnit *float64
	TotalAmount  *float64
	Date         *time.Time
}

// InvestmentServicer defines the contract for investment-related business logic.
type InvestmentServicer interface {
	CreateInvestment(userID string, investmentType models.InvestmentType, carat string, quantity, pricePerUnit, totalAmount float64, date time.Time) (*models.Investment, error)
	GetUserInvestments(userID string) ([]models.Investment, error)
	UpdateInvestment(userID, investmentID string, fields InvestmentUpdateFields) (*models.Investment, error)
	DeleteInvestment(userID, investmentID string) error
}

// GoalUpdateFields holds optional fields for a goal update. CurrentAmount is
// deliberately absent: balances only move through goal transactions.
type GoalUpdateFields struct {
	Name         *string
	TargetAmount *float64
	TargetDate   *time.Time
	Icon         *models.GoalIcon
}

// GoalServicer defines the contract for goals and the goal-balance engine.
type GoalServicer interface {
	CreateGoal(userID, name string, targetAmount float64, targetDate *time.Time, icon models.GoalIcon) (*models.Goal, error)
	GetUserGoals(userID string) ([]models.Goal, error)
	GetGoalByID(userID, goalID string) (*models.Goal, error)
	UpdateGoal(userID, goalID string, fields GoalUpdateFields) (*models.Goal, error)
	DeleteGoal(userID, goalID string) error
	GetGoalTransactions(userID, goalID string) ([]models.GoalTransaction, error)
	ApplyGoalTransaction(userID, goalID string, transactionType models.GoalTransactionType, amount float64, description string) (*models.GoalTransaction, *models.Goal, error)
}

// ParticipantInput describes one participant's share when creating a bill.
type ParticipantInput struct {
	Name   string
	Phone  string
	Amount float64
}

// SplitBillServicer defines the contract for split bills and their status
// consistency rules.
type SplitBillServicer interface {
	CreateSplitBill(userID string, totalAmount float64, description string, participants []ParticipantInput) (*models.SplitBill, error)
	GetUserSplitBills(userID string, page pagination.PageRequest, status *models.BillStatus) (*pagination.PageResponse[models.SplitBill], error)
	GetSplitBillByID(userID, billID string) (*models.SplitBill, error)
	UpdateSplitBillStatus(userID, billID string, status models.BillStatus) (*models.SplitBill, error)
	UpdateParticipantStatus(userID, billID, phone string, status models.ParticipantStatus) (*models.SplitBill, error)
	DeleteSplitBill(userID, billID string) error
}
