package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "fintrack/internal/errors"
	"fintrack/internal/models"
	"fintrack/internal/pagination"
	"fintrack/internal/services"
)

// SplitBillHandler handles split-bill requests.
type SplitBillHandler struct {
	splitBillService services.SplitBillServicer
}

// NewSplitBillHandler creates a new SplitBillHandler.
func NewSplitBillHandler(splitBillService services.SplitBillServicer) *SplitBillHandler {
	return &SplitBillHandler{splitBillService: splitBillService}
}

// ParticipantRequest represents one participant's share in a bill.
type ParticipantRequest struct {
	Name   string  `json:"name" binding:"required,max=100"`
	Phone  string  `json:"phone" binding:"required,max=20"`
	Amount float64 `json:"amount" binding:"gte=0"`
}

// CreateSplitBillRequest represents the request payload for creating a split bill
type CreateSplitBillRequest struct {
	TotalAmount  float64              `json:"totalAmount" binding:"required,gt=0"`
	Description  string               `json:"description" binding:"required,max=500"`
	Participants []ParticipantRequest `json:"participants" binding:"required,min=2,dive"`
}

// UpdateSplitBillStatusRequest represents the payload for setting a bill's status.
type UpdateSplitBillStatusRequest struct {
	Status models.BillStatus `json:"status" binding:"required,bill_status"`
}

// UpdateParticipantStatusRequest represents the payload for marking a
// participant's share.
type UpdateParticipantStatusRequest struct {
	Status models.ParticipantStatus `json:"status" binding:"required,participant_status"`
}

// listSplitBillsQuery holds the query parameters for listing bills.
type listSplitBillsQuery struct {
	pagination.PageRequest
	Status string `form:"status" binding:"omitempty,bill_status"`
}

// CreateSplitBill handles the creation of a new split bill
// @Summary     Create a split bill
// @Description Split a bill across two or more participants. Shares must sum to the total, and the first participant is the payer and starts paid.
// @Tags        split-bills
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreateSplitBillRequest true "Bill details"
// @Success     201 {object} models.SplitBill "Split bill created"
// @Failure     400 {object} ErrorResponse "Invalid input or sum mismatch"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /split-bills [post]
func (h *SplitBillHandler) CreateSplitBill(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateSplitBillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	participants := make([]services.ParticipantInput, len(req.Participants))
	for i, p := range req.Participants {
		participants[i] = services.ParticipantInput{
			Name:   p.Name,
			Phone:  p.Phone,
			Amount: p.Amount,
		}
	}

	bill, err := h.splitBillService.CreateSplitBill(userID, req.TotalAmount, req.Description, participants)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, bill)
}

// GetSplitBills handles the retrieval of the user's split bills
// @Summary     List split bills
// @Description Get the user's split bills, newest first, optionally filtered by status
// @Tags        split-bills
// @Produce     json
// @Security    BearerAuth
// @Param       status query string false "Filter by status" Enums(pending, completed, cancelled)
// @Param       page   query int    false "Page number"      default(1)
// @Param       limit  query int    false "Items per page"   default(50)
// @Success     200 {object} pagination.PageResponse[models.SplitBill] "Split bills"
// @Failure     400 {object} ErrorResponse "Invalid query parameters"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /split-bills [get]
func (h *SplitBillHandler) GetSplitBills(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var query listSplitBillsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}
	query.Defaults()

	var status *models.BillStatus
	if query.Status != "" {
		s := models.BillStatus(query.Status)
		status = &s
	}

	page, err := h.splitBillService.GetUserSplitBills(userID, query.PageRequest, status)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, page)
}

// GetSplitBillByID handles the retrieval of a specific split bill
// @Summary     Get split bill by ID
// @Tags        split-bills
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Split bill ID"
// @Success     200 {object} models.SplitBill "Split bill details"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Split bill not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /split-bills/{id} [get]
func (h *SplitBillHandler) GetSplitBillByID(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	bill, err := h.splitBillService.GetSplitBillByID(userID, c.Param("id"))
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, bill)
}

// UpdateSplitBillStatus handles setting a bill's status
// @Summary     Update split bill status
// @Description Set a bill's status to pending, completed or cancelled
// @Tags        split-bills
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path string                       true "Split bill ID"
// @Param       request body UpdateSplitBillStatusRequest true "New status"
// @Success     200 {object} models.SplitBill "Updated split bill"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Split bill not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /split-bills/{id} [put]
func (h *SplitBillHandler) UpdateSplitBillStatus(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateSplitBillStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	bill, err := h.splitBillService.UpdateSplitBillStatus(userID, c.Param("id"), req.Status)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, bill)
}

// UpdateParticipantStatus handles marking a participant's share paid or pending
// @Summary     Update participant status
// @Description Mark a participant's share paid or pending. When every share is paid, a pending bill completes automatically.
// @Tags        split-bills
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path string                         true "Split bill ID"
// @Param       phone   path string                         true "Participant phone number"
// @Param       request body UpdateParticipantStatusRequest true "New status"
// @Success     200 {object} models.SplitBill "Updated split bill"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Bill or participant not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /split-bills/{id}/participants/{phone} [put]
func (h *SplitBillHandler) UpdateParticipantStatus(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateParticipantStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	bill, err := h.splitBillService.UpdateParticipantStatus(userID, c.Param("id"), c.Param("phone"), req.Status)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, bill)
}

// DeleteSplitBill handles the deletion of a split bill and its participants
// @Summary     Delete split bill
// @Tags        split-bills
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Split bill ID"
// @Success     200 {object} MessageResponse "Split bill deleted"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Split bill not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /split-bills/{id} [delete]
func (h *SplitBillHandler) DeleteSplitBill(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.splitBillService.DeleteSplitBill(userID, c.Param("id")); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Split bill deleted successfully"})
}
