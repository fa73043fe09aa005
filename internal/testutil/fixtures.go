package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"fintrack/internal/models"

	"gorm.io/gorm"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// NextPhoneNumber returns a unique, valid Indian mobile number.
func NextPhoneNumber() string {
	return fmt.Sprintf("9%09d", nextID())
}

// CreateTestUser creates a verified user with a unique phone number.
func CreateTestUser(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()
	return CreateTestUserWithPhone(t, db, NextPhoneNumber())
}

// CreateTestUserWithPhone creates a verified user with the given phone number.
func CreateTestUserWithPhone(t *testing.T, db *gorm.DB, phoneNumber string) *models.User {
	t.Helper()

	user := &models.User{
		PhoneNumber: phoneNumber,
		Name:        fmt.Sprintf("Test User %d", nextID()),
		IsVerified:  true,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// CreateTestTransaction creates a transaction of the given type and amount.
func CreateTestTransaction(t *testing.T, db *gorm.DB, userID string, txType models.TransactionType, amount float64) *models.Transaction {
	t.Helper()

	tx := &models.Transaction{
		UserID:   userID,
		Type:     txType,
		Amount:   amount,
		Category: fmt.Sprintf("Test Category %d", nextID()),
		Date:     time.Now(),
	}
	if err := db.Create(tx).Error; err != nil {
		t.Fatalf("failed to create test transaction: %v", err)
	}
	return tx
}

// CreateTestInvestment creates a gold investment with a 24K carat.
func CreateTestInvestment(t *testing.T, db *gorm.DB, userID string) *models.Investment {
	t.Helper()

	inv := &models.Investment{
		UserID:       userID,
		Type:         models.InvestmentTypeGold,
		Carat:        models.Carat24K,
		Quantity:     10,
		PricePerUnit: 6500,
		TotalAmount:  65000,
		Date:         time.Now(),
	}
	if err := db.Create(inv).Error; err != nil {
		t.Fatalf("failed to create test investment: %v", err)
	}
	return inv
}

// CreateTestGoal creates a goal with a zero balance.
func CreateTestGoal(t *testing.T, db *gorm.DB, userID string, targetAmount float64) *models.Goal {
	t.Helper()
	return CreateTestGoalWithBalance(t, db, userID, targetAmount, 0)
}

// CreateTestGoalWithBalance creates a goal with the given saved balance.
func CreateTestGoalWithBalance(t *testing.T, db *gorm.DB, userID string, targetAmount, currentAmount float64) *models.Goal {
	t.Helper()

	goal := &models.Goal{
		UserID:        userID,
		Name:          fmt.Sprintf("Test Goal %d", nextID()),
		TargetAmount:  targetAmount,
		CurrentAmount: currentAmount,
		Icon:          models.GoalIconBike,
	}
	if err := db.Create(goal).Error; err != nil {
		t.Fatalf("failed to create test goal: %v", err)
	}
	return goal
}

// CreateTestGoalTransaction creates a goal transaction record. The goal's
// balance is not touched; use the service to move balances.
func CreateTestGoalTransaction(t *testing.T, db *gorm.DB, userID, goalID string, txType models.GoalTransactionType, amount float64) *models.GoalTransaction {
	t.Helper()

	tx := &models.GoalTransaction{
		UserID: userID,
		GoalID: goalID,
		Type:   txType,
		Amount: amount,
		Date:   time.Now(),
	}
	if err := db.Create(tx).Error; err != nil {
		t.Fatalf("failed to create test goal transaction: %v", err)
	}
	return tx
}

// CreateTestSplitBill creates a pending bill split evenly across the given
// number of participants. The first participant starts paid.
func CreateTestSplitBill(t *testing.T, db *gorm.DB, userID string, totalAmount float64, participantCount int) *models.SplitBill {
	t.Helper()

	share := totalAmount / float64(participantCount)
	participants := make([]models.Participant, participantCount)
	for i := range participants {
		status := models.ParticipantStatusPending
		if i == 0 {
			status = models.ParticipantStatusPaid
		}
		participants[i] = models.Participant{
			Name:     fmt.Sprintf("Participant %d", nextID()),
			Phone:    NextPhoneNumber(),
			Amount:   share,
			Status:   status,
			Position: i,
		}
	}

	bill := &models.SplitBill{
		UserID:       userID,
		TotalAmount:  totalAmount,
		Description:  fmt.Sprintf("Test Bill %d", nextID()),
		Status:       models.BillStatusPending,
		Participants: participants,
	}
	if err := db.Create(bill).Error; err != nil {
		t.Fatalf("failed to create test split bill: %v", err)
	}
	return bill
}
