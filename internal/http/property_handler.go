package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/nurpe/renttax/internal/model"
	"github.com/nurpe/renttax/internal/service"
)

type createPropertyRequest struct {
	Name         string          `json:"name" binding:"required"`
	Address      string          `json:"address"`
	Category     string          `json:"category" binding:"required"`
	BaseRentRate decimal.Decimal `json:"base_rent_rate"`
}

type updatePropertyRequest struct {
	Name         *string          `json:"name"`
	Address      *string          `json:"address"`
	Category     *string          `json:"category"`
	BaseRentRate *decimal.Decimal `json:"base_rent_rate"`
}

func (h *Handler) createProperty(c *gin.Context) {
	var req createPropertyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, err.Error())
		return
	}

	property, err := h.ledger.CreateProperty(c.Request.Context(), service.PropertyInput{
		Name:         req.Name,
		Address:      req.Address,
		Category:     model.PropertyCategory(req.Category),
		BaseRentRate: req.BaseRentRate,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, property)
}

func (h *Handler) listProperties(c *gin.Context) {
	rows, err := h.ledger.ListProperties(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, rows)
}

func (h *Handler) getProperty(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	property, err := h.ledger.GetProperty(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, property)
}

func (h *Handler) updateProperty(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req updatePropertyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, err.Error())
		return
	}

	patch := model.PropertyPatch{
		Name:         req.Name,
		Address:      req.Address,
		BaseRentRate: req.BaseRentRate,
	}
	if req.Category != nil {
		category := model.PropertyCategory(*req.Category)
		patch.Category = &category
	}

	property, err := h.ledger.UpdateProperty(c.Request.Context(), id, patch)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, property)
}

func (h *Handler) deleteProperty(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.ledger.DeleteProperty(c.Request.Context(), id); err != nil {
		h.handleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) listPropertyContracts(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	rows, err := h.ledger.ListContractsByProperty(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, rows)
}

func (h *Handler) listPropertyExpenses(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	rows, err := h.ledger.ListExpensesByProperty(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, rows)
}
