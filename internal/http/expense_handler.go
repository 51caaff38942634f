package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/nurpe/renttax/internal/model"
	"github.com/nurpe/renttax/internal/service"
)

type createExpenseRequest struct {
	PropertyID  string          `json:"property_id" binding:"required"`
	Amount      decimal.Decimal `json:"amount"`
	Date        string          `json:"date" binding:"required"`
	Category    string          `json:"category"`
	Description string          `json:"description"`
}

type updateExpenseRequest struct {
	PropertyID  *string          `json:"property_id"`
	Amount      *decimal.Decimal `json:"amount"`
	Date        *string          `json:"date"`
	Category    *string          `json:"category"`
	Description *string          `json:"description"`
}

func (h *Handler) createExpense(c *gin.Context) {
	var req createExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, err.Error())
		return
	}

	propertyID, err := parseUUID(req.PropertyID)
	if err != nil {
		h.badRequest(c, "invalid property_id")
		return
	}
	date, err := parseDate(req.Date)
	if err != nil {
		h.badRequest(c, "invalid date")
		return
	}

	expense, err := h.ledger.CreateExpense(c.Request.Context(), service.ExpenseInput{
		PropertyID:  propertyID,
		Amount:      req.Amount,
		Date:        date,
		Category:    req.Category,
		Description: req.Description,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, expense)
}

func (h *Handler) listExpenses(c *gin.Context) {
	rows, err := h.ledger.ListExpenses(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, rows)
}

func (h *Handler) getExpense(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	expense, err := h.ledger.GetExpense(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, expense)
}

func (h *Handler) updateExpense(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req updateExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, err.Error())
		return
	}

	patch := model.ExpensePatch{
		Amount:      req.Amount,
		Category:    req.Category,
		Description: req.Description,
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
	if patch.Date, err = parseDatePtr(req.Date); err != nil {
		h.badRequest(c, "invalid date")
		return
	}

	expense, err := h.ledger.UpdateExpense(c.Request.Context(), id, patch)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, expense)
}

func (h *Handler) deleteExpense(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.ledger.DeleteExpense(c.Request.Context(), id); err != nil {
		h.handleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
