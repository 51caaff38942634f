package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/nurpe/renttax/internal/model"
	"github.com/nurpe/renttax/internal/service"
)

type createContractRequest struct {
	PropertyID      string          `json:"property_id" binding:"required"`
	TenantName      string          `json:"tenant_name" binding:"required"`
	StartDate       string          `json:"start_date"`
	EndDate         string          `json:"end_date"`
	RentAmount      decimal.Decimal `json:"rent_amount"`
	PaymentSchedule string          `json:"payment_schedule"`
}

type updateContractRequest struct {
	PropertyID      *string          `json:"property_id"`
	TenantName      *string          `json:"tenant_name"`
	StartDate       *string          `json:"start_date"`
	EndDate         *string          `json:"end_date"`
	RentAmount      *decimal.Decimal `json:"rent_amount"`
	PaymentSchedule *string          `json:"payment_schedule"`
	IsActive        *bool            `json:"is_active"`
}

func (h *Handler) createContract(c *gin.Context) {
	var req createContractRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, err.Error())
		return
	}

	propertyID, err := parseUUID(req.PropertyID)
	if err != nil {
		h.badRequest(c, "invalid property_id")
		return
	}
	start, err := parseOptionalDate(req.StartDate)
	if err != nil {
		h.badRequest(c, "invalid start_date")
		return
	}
	end, err := parseOptionalDate(req.EndDate)
	if err != nil {
		h.badRequest(c, "invalid end_date")
		return
	}

	contract, err := h.ledger.CreateContract(c.Request.Context(), service.ContractInput{
		PropertyID:      propertyID,
		TenantName:      req.TenantName,
		StartDate:       start,
		EndDate:         end,
		RentAmount:      req.RentAmount,
		PaymentSchedule: req.PaymentSchedule,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, contract)
}

func (h *Handler) listContracts(c *gin.Context) {
	activeOnly := false
	if raw := c.Query("active"); raw != "" {
		parsed, err := strconv.ParseBool(raw)
		if err != nil {
			h.badRequest(c, "invalid active flag")
			return
		}
		activeOnly = parsed
	}

	rows, err := h.ledger.ListContracts(c.Request.Context(), activeOnly)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, rows)
}

func (h *Handler) getContract(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	contract, err := h.ledger.GetContract(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, contract)
}

func (h *Handler) updateContract(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req updateContractRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, err.Error())
		return
	}

	patch := model.ContractPatch{
		TenantName:      req.TenantName,
		RentAmount:      req.RentAmount,
		PaymentSchedule: req.PaymentSchedule,
		IsActive:        req.IsActive,
	}
	if req.PropertyID != nil {
		propertyID, err := parseUUID(*req.PropertyID)
		if err != nil {
			h.badRequest(c, "invalid property_id")
			return
		}
		patch.PropertyID = &propertyID
	}
	var err error
	if patch.StartDate, err = parseDatePtr(req.StartDate); err != nil {
		h.badRequest(c, "invalid start_date")
		return
	}
	if patch.EndDate, err = parseDatePtr(req.EndDate); err != nil {
		h.badRequest(c, "invalid end_date")
		return
	}

	contract, err := h.ledger.UpdateContract(c.Request.Context(), id, patch)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, contract)
}

func (h *Handler) deleteContract(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.ledger.DeleteContract(c.Request.Context(), id); err != nil {
		h.handleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) listContractPayments(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	rows, err := h.ledger.ListPaymentsByContract(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, rows)
}

