package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	apperrors "fintrack/internal/errors"
	"fintrack/internal/models"
)

// investmentService handles gold/silver investment logic.
type investmentService struct {
	db *gorm.DB
}

// NewInvestmentService creates a new InvestmentServicer.
func NewInvestmentService(db *gorm.DB) InvestmentServicer {
	return &investmentService{db: db}
}

// CreateInvestment records a metal purchase. Gold requires a carat grade;
// a carat supplied for silver is dropped rather than rejected.
func (s *investmentService) CreateInvestment(
	userID string,
	investmentType models.InvestmentType,
	carat string,
	quantity, pricePerUnit, totalAmount float64,
	date time.Time,
) (*models.Investment, error) {
	if quantity < 0 || pricePerUnit < 0 || totalAmount < 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "quantity, price and total must not be negative")
	}

	switch investmentType {
	case models.InvestmentTypeGold:
		if carat != models.Carat22K && carat != models.Carat24K {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "gold investments require a carat of 22K or 24K")
		}
	case models.InvestmentTypeSilver:
		carat = ""
	}

	if date.IsZero() {
		date = time.Now()
	}

	investment := &models.Investment{
		UserID:       userID,
		Type:         investmentType,
		Carat:        carat,
		Quantity:     quantity,
		PricePerUnit: pricePerUnit,
		TotalAmount:  totalAmount,
		Date:         date,
	}

	if err := s.db.Create(investment).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return investment, nil
}

// GetUserInvestments retrieves the user's investments, newest first.
func (s *investmentService) GetUserInvestments(userID string) ([]models.Investment, error) {
	var investments []models.Investment
	if err := s.db.Where("user_id = ?", userID).
		Order("date DESC").
		Find(&investments).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return investments, nil
}

// getInvestmentByID retrieves an investment scoped to its owner.
func (s *investmentService) getInvestmentByID(userID, investmentID string) (*models.Investment, error) {
	var investment models.Investment
	if err := s.db.Where("id = ? AND user_id = ?", investmentID, userID).First(&investment).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrInvestmentNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &investment, nil
}

// UpdateInvestment applies a partial update, re-checking the carat rules
// against the resulting type.
func (s *investmentService) UpdateInvestment(userID, investmentID string, fields InvestmentUpdateFields) (*models.Investment, error) {
	investment, err := s.getInvestmentByID(userID, investmentID)
	if err != nil {
		return nil, err
	}

	if fields.Quantity != nil && *fields.Quantity < 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "quantity must not be negative")
	}
	if fields.PricePerUnit != nil && *fields.PricePerUnit < 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "price per unit must not be negative")
	}
	if fields.TotalAmount != nil && *fields.TotalAmount < 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "total amount must not be negative")
	}

	if fields.Type != nil {
		investment.Type = *fields.Type
	}
	if fields.Carat != nil {
		investment.Carat = *fields.Carat
	}
	if fields.Quantity != nil {
		investment.Quantity = *fields.Quantity
	}
	if fields.PricePerUnit != nil {
		investment.PricePerUnit = *fields.PricePerUnit
	}
	if fields.TotalAmount != nil {
		investment.TotalAmount = *fields.TotalAmount
	}
	if fields.Date != nil {
		investment.Date = *fields.Date
	}

	// The carat invariant must hold for the record as it will be stored.
	switch investment.Type {
	case models.InvestmentTypeGold:
		if investment.Carat != models.Carat22K && investment.Carat != models.Carat24K {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "gold investments require a carat of 22K or 24K")
		}
	case models.InvestmentTypeSilver:
		investment.Carat = ""
	}

	// Save skips zero-valued fields for struct updates, so use Select to make
	// the carat clear stick when switching gold -> silver.
	if err := s.db.Model(investment).Select("type", "carat", "quantity", "price_per_unit", "total_amount", "date").
		Updates(investment).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return investment, nil
}

// DeleteInvestment removes an investment the user owns.
func (s *investmentService) DeleteInvestment(userID, investmentID string) error {
	investment, err := s.getInvestmentByID(userID, investmentID)
	if err != nil {
		return err
	}

	if err := s.db.Delete(investment).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}
