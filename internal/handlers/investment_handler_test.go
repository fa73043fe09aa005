package handlers

import (
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "fintrack/internal/errors"
	"fintrack/internal/models"
	"fintrack/internal/services"
)

type mockInvestmentService struct {
	createFn func(userID string, invType models.InvestmentType, carat string, quantity, pricePerUnit, totalAmount float64, date time.Time) (*models.Investment, error)
	listFn   func(userID string) ([]models.Investment, error)
	updateFn func(userID, investmentID string, fields services.InvestmentUpdateFields) (*models.Investment, error)
	deleteFn func(userID, investmentID string) error
}

func (m *mockInvestmentService) CreateInvestment(userID string, invType models.InvestmentType, carat string, quantity, pricePerUnit, totalAmount float64, date time.Time) (*models.Investment, error) {
	if m.createFn != nil {
		return m.createFn(userID, invType, carat, quantity, pricePerUnit, totalAmount, date)
	}
	return &models.Investment{UserID: userID, Type: invType, Carat: carat}, nil
}

func (m *mockInvestmentService) GetUserInvestments(userID string) ([]models.Investment, error) {
	if m.listFn != nil {
		return m.listFn(userID)
	}
	return []models.Investment{}, nil
}

func (m *mockInvestmentService) UpdateInvestment(userID, investmentID string, fields services.InvestmentUpdateFields) (*models.Investment, error) {
	if m.updateFn != nil {
		return m.updateFn(userID, investmentID, fields)
	}
	return &models.Investment{}, nil
}

func (m *mockInvestmentService) DeleteInvestment(userID, investmentID string) error {
	if m.deleteFn != nil {
		return m.deleteFn(userID, investmentID)
	}
	return nil
}

func setupInvestmentRouter(handler *InvestmentHandler) *gin.Engine {
	r := gin.New()
	protected := r.Group("/", injectUserID(testUserID))
	protected.POST("/investments", handler.CreateInvestment)
	protected.GET("/investments", handler.GetInvestments)
	protected.PUT("/investments/:id", handler.UpdateInvestment)
	protected.DELETE("/investments/:id", handler.DeleteInvestment)
	return r
}

func TestInvestmentHandler_Create(t *testing.T) {
	t.Run("returns 201 on gold purchase", func(t *testing.T) {
		handler := NewInvestmentHandler(&mockInvestmentService{})
		r := setupInvestmentRouter(handler)

		rec := doRequest(r, "POST", "/investments",
			`{"type":"gold","carat":"22K","quantity":5,"pricePerUnit":6000,"totalAmount":30000}`)

		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
	})

	t.Run("returns 400 on invalid carat", func(t *testing.T) {
		handler := NewInvestmentHandler(&mockInvestmentService{})
		r := setupInvestmentRouter(handler)

		rec := doRequest(r, "POST", "/investments",
			`{"type":"gold","carat":"18K","quantity":5,"pricePerUnit":6000,"totalAmount":30000}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("returns 400 on unknown metal", func(t *testing.T) {
		handler := NewInvestmentHandler(&mockInvestmentService{})
		r := setupInvestmentRouter(handler)

		rec := doRequest(r, "POST", "/investments",
			`{"type":"platinum","quantity":5,"pricePerUnit":6000,"totalAmount":30000}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("returns 400 when service rejects gold without carat", func(t *testing.T) {
		svc := &mockInvestmentService{
			createFn: func(_ string, _ models.InvestmentType, _ string, _, _, _ float64, _ time.Time) (*models.Investment, error) {
				return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "gold investments require a carat of 22K or 24K")
			},
		}
		handler := NewInvestmentHandler(svc)
		r := setupInvestmentRouter(handler)

		rec := doRequest(r, "POST", "/investments",
			`{"type":"gold","quantity":5,"pricePerUnit":6000,"totalAmount":30000}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "INVALID_INPUT")
	})
}

func TestInvestmentHandler_List(t *testing.T) {
	svc := &mockInvestmentService{
		listFn: func(userID string) ([]models.Investment, error) {
			return []models.Investment{{UserID: userID, Type: models.InvestmentTypeSilver}}, nil
		},
	}
	handler := NewInvestmentHandler(svc)
	r := setupInvestmentRouter(handler)

	rec := doRequest(r, "GET", "/investments", "")

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestInvestmentHandler_Update(t *testing.T) {
	t.Run("returns 200 on success", func(t *testing.T) {
		svc := &mockInvestmentService{
			updateFn: func(_, investmentID string, fields services.InvestmentUpdateFields) (*models.Investment, error) {
				if fields.Quantity == nil || *fields.Quantity != 10 {
					t.Error("expected quantity field to be passed through")
				}
				return &models.Investment{Base: models.Base{ID: investmentID}, Quantity: 10}, nil
			},
		}
		handler := NewInvestmentHandler(svc)
		r := setupInvestmentRouter(handler)

		rec := doRequest(r, "PUT", "/investments/some-id", `{"quantity":10}`)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
	})

	t.Run("returns 404 when not found", func(t *testing.T) {
		svc := &mockInvestmentService{
			updateFn: func(_, _ string, _ services.InvestmentUpdateFields) (*models.Investment, error) {
				return nil, apperrors.ErrInvestmentNotFound
			},
		}
		handler := NewInvestmentHandler(svc)
		r := setupInvestmentRouter(handler)

		rec := doRequest(r, "PUT", "/investments/missing", `{"quantity":10}`)

		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
	})
}

func TestInvestmentHandler_Delete(t *testing.T) {
	handler := NewInvestmentHandler(&mockInvestmentService{})
	r := setupInvestmentRouter(handler)

	rec := doRequest(r, "DELETE", "/investments/some-id", "")

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	result := parseJSON(t, rec)
	if result["message"] != "Investment deleted successfully" {
		t.Errorf("unexpected message: %v", result["message"])
	}
}
