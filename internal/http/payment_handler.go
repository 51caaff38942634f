package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/nurpe/renttax/internal/model"
	"github.com/nurpe/renttax/internal/service"
)

type createPaymentRequest struct {
	ContractID string          `json:"contract_id" binding:"required"`
	Amount     decimal.Decimal `json:"amount"`
	Date       string          `json:"date" binding:"required"`
}

type updatePaymentRequest struct {
	ContractID *string          `json:"contract_id"`
	Amount     *decimal.Decimal `json:"amount"`
	Date       *string          `json:"date"`
}

func (h *Handler) createPayment(c *gin.Context) {
	var req createPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, err.Error())
		return
	}

	contractID, err := parseUUID(req.ContractID)
	if err != nil {
		h.badRequest(c, "invalid contract_id")
		return
	}
	date, err := parseDate(req.Date)
	if err != nil {
		h.badRequest(c, "invalid date")
		return
	}

	payment, err := h.ledger.CreatePayment(c.Request.Context(), service.PaymentInput{
		ContractID: contractID,
		Amount:     req.Amount,
		Date:       date,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, payment)
}

func (h *Handler) listPayments(c *gin.Context) {
	if raw := c.Query("recent"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil {
			h.badRequest(c, "invalid recent limit")
			return
		}
		rows, err := h.ledger.ListRecentPayments(c.Request.Context(), limit)
		if err != nil {
			h.handleError(c, err)
			return
		}
		c.JSON(http.StatusOK, rows)
		return
	}

	rows, err := h.ledger.ListPayments(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, rows)
}

func (h *Handler) getPayment(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	payment, err := h.ledger.GetPayment(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, payment)
}

func (h *Handler) updatePayment(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req updatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, err.Error())
		return
	}

	patch := model.PaymentPatch{Amount: req.Amount}
	if req.ContractID != nil {
		contractID, err := parseUUID(*req.ContractID)
		if err != nil {
			h.badRequest(c, "invalid contract_id")
			return
		}
		patch.ContractID = &contractID
	}
	var err error
	if patch.Date, err = parseDatePtr(req.Date); err != nil {
		h.badRequest(c, "invalid date")
		return
	}

	payment, err := h.ledger.UpdatePayment(c.Request.Context(), id, patch)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, payment)
}

func (h *Handler) deletePayment(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.ledger.DeletePayment(c.Request.Context(), id); err != nil {
		h.handleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
