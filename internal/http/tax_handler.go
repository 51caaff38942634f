package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/nurpe/renttax/internal/http/middleware"
	"github.com/nurpe/renttax/internal/model"
)

type calculateTaxRequest struct {
	TotalIncome      decimal.Decimal `json:"total_income"`
	TotalExpenses    decimal.Decimal `json:"total_expenses"`
	LandlordCategory string          `json:"landlord_category"`
	TenantCategory   string          `json:"tenant_category"`
}

type regimeRequest struct {
	LandlordCategory string `json:"landlord_category" binding:"required"`
	TenantCategory   string `json:"tenant_category"`
}

// resolveRegime fills a missing landlord category from the session regime.
// A tenant given on its own replaces the session tenant.
func (h *Handler) resolveRegime(landlord, tenant string) (model.Regime, bool) {
	if strings.TrimSpace(landlord) == "" {
		regime := h.tax.Regime()
		if strings.TrimSpace(tenant) == "" {
			return regime, true
		}
		parsed, err := model.ParseTenantCategory(tenant)
		if err != nil {
			return model.Regime{}, false
		}
		regime.Tenant = parsed
		return regime, true
	}
	regime, err := model.ParseRegime(landlord, tenant)
	if err != nil {
		return model.Regime{}, false
	}
	return regime, true
}

func (h *Handler) queryRegime(c *gin.Context) (model.Regime, bool) {
	regime, ok := h.resolveRegime(c.Query("landlord"), c.Query("tenant"))
	if !ok {
		h.badRequest(c, "unknown tax regime")
	}
	return regime, ok
}

func (h *Handler) calculateTax(c *gin.Context) {
	var req calculateTaxRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, err.Error())
		return
	}
	regime, ok := h.resolveRegime(req.LandlordCategory, req.TenantCategory)
	if !ok {
		h.badRequest(c, "unknown tax regime")
		return
	}

	result, err := h.tax.Calculate(req.TotalIncome, req.TotalExpenses, regime)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *Handler) getRegime(c *gin.Context) {
	c.JSON(http.StatusOK, h.tax.Regime())
}

func (h *Handler) setRegime(c *gin.Context) {
	var req regimeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, err.Error())
		return
	}
	regime, err := model.ParseRegime(req.LandlordCategory, req.TenantCategory)
	if err != nil {
		h.badRequest(c, "unknown tax regime")
		return
	}
	if err := h.tax.SetRegime(c.Request.Context(), regime); err != nil {
		h.handleError(c, err)
		return
	}

	event := h.log.Info().Str("regime", regime.String())
	if principal, ok := middleware.MustPrincipal(c); ok && !principal.IsAnonymous() {
		event = event.Str("subject", principal.Subject)
	}
	event.Msg("regime updated over http")
	c.JSON(http.StatusOK, h.tax.Regime())
}

func (h *Handler) taxSummary(c *gin.Context) {
	regime, ok := h.queryRegime(c)
	if !ok {
		return
	}
	result, err := h.tax.CalculateAggregate(c.Request.Context(), regime)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *Handler) taxByProperty(c *gin.Context) {
	regime, ok := h.queryRegime(c)
	if !ok {
		return
	}
	results, err := h.tax.CalculateAllProperties(c.Request.Context(), regime)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, results)
}

func (h *Handler) propertyTax(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	regime, ok := h.queryRegime(c)
	if !ok {
		return
	}
	result, err := h.tax.CalculateForProperty(c.Request.Context(), id, regime)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}
