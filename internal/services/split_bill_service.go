package services

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	apperrors "fintrack/internal/errors"
	"fintrack/internal/models"
	"fintrack/internal/pagination"
)

// sumTolerance is the accepted rounding slack between the participant shares
// and the bill total.
var sumTolerance = decimal.NewFromFloat(0.01)

// splitBillService handles split bills and their status consistency rules.
type splitBillService struct {
	db *gorm.DB
}

// NewSplitBillService creates a new SplitBillServicer.
func NewSplitBillService(db *gorm.DB) SplitBillServicer {
	return &splitBillService{db: db}
}

// CreateSplitBill validates and persists a bill with its participants. The
// share amounts must add up to the total within sumTolerance; the comparison
// runs on decimals so float noise cannot push a valid bill over the line.
// The first participant is the creator's own share and starts out paid.
func (s *splitBillService) CreateSplitBill(
	userID string,
	totalAmount float64,
	description string,
	participants []ParticipantInput,
) (*models.SplitBill, error) {
	if totalAmount <= 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "total amount must be greater than 0")
	}
	if strings.TrimSpace(description) == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "description is required")
	}
	if len(participants) < 2 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "at least 2 participants are required")
	}

	sum := decimal.Zero
	for _, p := range participants {
		if strings.TrimSpace(p.Name) == "" || strings.TrimSpace(p.Phone) == "" {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "every participant needs a name and phone")
		}
		if p.Amount < 0 {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "participant amounts must not be negative")
		}
		sum = sum.Add(decimal.NewFromFloat(p.Amount))
	}

	diff := sum.Sub(decimal.NewFromFloat(totalAmount)).Abs()
	if diff.GreaterThan(sumTolerance) {
		return nil, apperrors.ErrBillSumMismatch
	}

	bill := &models.SplitBill{
		UserID:      userID,
		TotalAmount: totalAmount,
		Description: strings.TrimSpace(description),
		Status:      models.BillStatusPending,
	}
	for i, p := range participants {
		status := models.ParticipantStatusPending
		if i == 0 {
			status = models.ParticipantStatusPaid
		}
		bill.Participants = append(bill.Participants, models.Participant{
			Name:     strings.TrimSpace(p.Name),
			Phone:    strings.TrimSpace(p.Phone),
			Amount:   p.Amount,
			Status:   status,
			Position: i,
		})
	}

	// Participants are created through the association, in the same
	// transaction gorm opens for the parent insert.
	if err := s.db.Create(bill).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return bill, nil
}

// GetUserSplitBills retrieves a paginated list of the user's bills, newest
// first, optionally filtered by aggregate status.
func (s *splitBillService) GetUserSplitBills(userID string, page pagination.PageRequest, status *models.BillStatus) (*pagination.PageResponse[models.SplitBill], error) {
	page.Defaults()

	base := s.db.Model(&models.SplitBill{}).Where("user_id = ?", userID)
	if status != nil {
		base = base.Where("status = ?", *status)
	}

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var bills []models.SplitBill
	if err := base.Scopes(pagination.Paginate(page)).
		Preload("Participants", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Order("created_at DESC").
		Find(&bills).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(bills, page.Page, page.Limit, totalItems)
	return &result, nil
}

// GetSplitBillByID retrieves a bill with its participants, scoped to its owner.
func (s *splitBillService) GetSplitBillByID(userID, billID string) (*models.SplitBill, error) {
	var bill models.SplitBill
	if err := s.db.Where("id = ? AND user_id = ?", billID, userID).
		Preload("Participants", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		First(&bill).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrSplitBillNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &bill, nil
}

// UpdateSplitBillStatus sets the aggregate status directly. This is the
// manual override; it does not touch participants.
func (s *splitBillService) UpdateSplitBillStatus(userID, billID string, status models.BillStatus) (*models.SplitBill, error) {
	bill, err := s.GetSplitBillByID(userID, billID)
	if err != nil {
		return nil, err
	}

	if err := s.db.Model(bill).Update("status", status).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	bill.Status = status
	return bill, nil
}

// UpdateParticipantStatus sets one participant's payment state, looked up by
// phone within the bill. When the update leaves every participant paid and
// the bill is still pending, the bill completes automatically. Marking a
// participant back to pending never reverts a completed bill.
func (s *splitBillService) UpdateParticipantStatus(userID, billID, phone string, status models.ParticipantStatus) (*models.SplitBill, error) {
	bill, err := s.GetSplitBillByID(userID, billID)
	if err != nil {
		return nil, err
	}

	var participant *models.Participant
	for i := range bill.Participants {
		if bill.Participants[i].Phone == phone {
			participant = &bill.Participants[i]
			break
		}
	}
	if participant == nil {
		return nil, apperrors.WithMessage(apperrors.ErrParticipantNotFound, "No participant found with phone: "+phone)
	}

	participant.Status = status

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(participant).Update("status", status).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}

		if bill.AllPaid() && bill.Status == models.BillStatusPending {
			bill.Status = models.BillStatusCompleted
			if err := tx.Model(bill).Update("status", bill.Status).Error; err != nil {
				return apperrors.Wrap(apperrors.ErrInternalServer, err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return bill, nil
}

// DeleteSplitBill removes a bill and its participants together.
func (s *splitBillService) DeleteSplitBill(userID, billID string) error {
	bill, err := s.GetSplitBillByID(userID, billID)
	if err != nil {
		return err
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("split_bill_id = ?", bill.ID).Delete(&models.Participant{}).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if err := tx.Delete(bill).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return nil
	})
}
