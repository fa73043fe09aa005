package services

import (
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	apperrors "fintrack/internal/errors"
	"fintrack/internal/models"
)

// goalService handles savings goals and the goal-balance rules.
type goalService struct {
	db *gorm.DB
}

// NewGoalService creates a new GoalServicer.
func NewGoalService(db *gorm.DB) GoalServicer {
	return &goalService{db: db}
}

// CreateGoal creates a savings goal with a zero balance.
func (s *goalService) CreateGoal(userID, name string, targetAmount float64, targetDate *time.Time, icon models.GoalIcon) (*models.Goal, error) {
	if strings.TrimSpace(name) == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "name is required")
	}
	if targetAmount < 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "target amount must not be negative")
	}
	if icon == "" {
		icon = models.GoalIconBike
	}

	goal := &models.Goal{
		UserID:        userID,
		Name:          strings.TrimSpace(name),
		TargetAmount:  targetAmount,
		CurrentAmount: 0,
		TargetDate:    targetDate,
		Icon:          icon,
	}

	if err := s.db.Create(goal).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return goal, nil
}

// GetUserGoals retrieves the user's goals, newest first.
func (s *goalService) GetUserGoals(userID string) ([]models.Goal, error) {
	var goals []models.Goal
	if err := s.db.Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&goals).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return goals, nil
}

// GetGoalByID retrieves a goal scoped to its owner.
func (s *goalService) GetGoalByID(userID, goalID string) (*models.Goal, error) {
	var goal models.Goal
	if err := s.db.Where("id = ? AND user_id = ?", goalID, userID).First(&goal).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrGoalNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &goal, nil
}

// UpdateGoal applies a partial update to a goal's descriptive fields. The
// balance is not updatable here; it only moves through ApplyGoalTransaction.
func (s *goalService) UpdateGoal(userID, goalID string, fields GoalUpdateFields) (*models.Goal, error) {
	goal, err := s.GetGoalByID(userID, goalID)
	if err != nil {
		return nil, err
	}

	if fields.Name != nil && strings.TrimSpace(*fields.Name) == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "name cannot be empty")
	}
	if fields.TargetAmount != nil && *fields.TargetAmount < 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "target amount must not be negative")
	}

	if fields.Name != nil {
		goal.Name = strings.TrimSpace(*fields.Name)
	}
	if fields.TargetAmount != nil {
		goal.TargetAmount = *fields.TargetAmount
	}
	if fields.TargetDate != nil {
		goal.TargetDate = fields.TargetDate
	}
	if fields.Icon != nil {
		goal.Icon = *fields.Icon
	}

	if err := s.db.Save(goal).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return goal, nil
}

// DeleteGoal removes a goal and all of its transactions in one database
// transaction, so no orphaned goal-transactions survive a partial failure.
func (s *goalService) DeleteGoal(userID, goalID string) error {
	goal, err := s.GetGoalByID(userID, goalID)
	if err != nil {
		return err
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("goal_id = ?", goal.ID).Delete(&models.GoalTransaction{}).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if err := tx.Delete(goal).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return nil
	})
}

// GetGoalTransactions retrieves a goal's transactions, newest first. The goal
// lookup enforces ownership before any transactions are read.
func (s *goalService) GetGoalTransactions(userID, goalID string) ([]models.GoalTransaction, error) {
	goal, err := s.GetGoalByID(userID, goalID)
	if err != nil {
		return nil, err
	}

	var transactions []models.GoalTransaction
	if err := s.db.Where("goal_id = ?", goal.ID).
		Order("date DESC").
		Find(&transactions).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return transactions, nil
}

// ApplyGoalTransaction records a goal transaction and moves the goal balance
// accordingly. Deposits always succeed; withdrawals and payments fail with
// INSUFFICIENT_FUNDS when they exceed the current balance, leaving it
// untouched. The transaction insert and the balance write share one database
// transaction, and the goal row is re-read inside it so both observe the same
// before-state.
func (s *goalService) ApplyGoalTransaction(
	userID, goalID string,
	transactionType models.GoalTransactionType,
	amount float64,
	description string,
) (*models.GoalTransaction, *models.Goal, error) {
	if amount <= 0 {
		return nil, nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "amount must be greater than zero")
	}

	var (
		transaction *models.GoalTransaction
		goal        models.Goal
	)
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ? AND user_id = ?", goalID, userID).First(&goal).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.ErrGoalNotFound
			}
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}

		switch transactionType {
		case models.GoalTransactionDeposit:
			goal.CurrentAmount += amount
		case models.GoalTransactionWithdraw, models.GoalTransactionPayment:
			if amount > goal.CurrentAmount {
				return apperrors.ErrInsufficientFunds
			}
			goal.CurrentAmount -= amount
		default:
			return apperrors.WithMessage(apperrors.ErrInvalidInput, "type must be deposit, withdraw or payment")
		}

		transaction = &models.GoalTransaction{
			UserID:      userID,
			GoalID:      goal.ID,
			Type:        transactionType,
			Amount:      amount,
			Description: strings.TrimSpace(description),
			Date:        time.Now(),
		}
		if err := tx.Create(transaction).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}

		if err := tx.Model(&goal).Update("current_amount", goal.CurrentAmount).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	return transaction, &goal, nil
}
