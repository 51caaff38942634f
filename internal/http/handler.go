package http

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/nurpe/renttax/internal/service"
)

type Handler struct {
	ledger  *service.LedgerService
	tax     *service.TaxService
	reports *service.ReportService
	log     zerolog.Logger
	now     func() time.Time
}

func NewHandler(ledger *service.LedgerService, tax *service.TaxService, reports *service.ReportService, log zerolog.Logger) *Handler {
	return &Handler{
		ledger:  ledger,
		tax:     tax,
		reports: reports,
		log:     log,
		now:     time.Now,
	}
}

func (h *Handler) Register(router *gin.Engine, authMiddleware gin.HandlerFunc) {
	router.GET("/healthz", h.health)

	protected := router.Group("/")
	protected.Use(authMiddleware)

	protected.POST("/properties", h.createProperty)
	protected.GET("/properties", h.listProperties)
	protected.GET("/properties/:id", h.getProperty)
	protected.PATCH("/properties/:id", h.updateProperty)
	protected.DELETE("/properties/:id", h.deleteProperty)
	protected.GET("/properties/:id/contracts", h.listPropertyContracts)
	protected.GET("/properties/:id/expenses", h.listPropertyExpenses)
	protected.GET("/properties/:id/tax", h.propertyTax)

	protected.POST("/contracts", h.createContract)
	protected.GET("/contracts", h.listContracts)
	protected.GET("/contracts/:id", h.getContract)
	protected.PATCH("/contracts/:id", h.updateContract)
	protected.DELETE("/contracts/:id", h.deleteContract)
	protected.GET("/contracts/:id/payments", h.listContractPayments)

	protected.POST("/payments", h.createPayment)
	protected.GET("/payments", h.listPayments)
	protected.GET("/payments/:id", h.getPayment)
	protected.PATCH("/payments/:id", h.updatePayment)
	protected.DELETE("/payments/:id", h.deletePayment)

	protected.POST("/expenses", h.createExpense)
	protected.GET("/expenses", h.listExpenses)
	protected.GET("/expenses/:id", h.getExpense)
	protected.PATCH("/expenses/:id", h.updateExpense)
	protected.DELETE("/expenses/:id", h.deleteExpense)

	protected.POST("/tax/calculate", h.calculateTax)
	protected.GET("/tax/regime", h.getRegime)
	protected.PUT("/tax/regime", h.setRegime)
	protected.GET("/tax/summary", h.taxSummary)
	protected.GET("/tax/properties", h.taxByProperty)

	protected.GET("/dashboard", h.dashboard)
	protected.GET("/analytics/monthly", h.monthly)
	protected.GET("/export", h.export)
}

func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *Handler) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		h.log.Error().Err(err).Str("path", c.FullPath()).Msg("request failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

func (h *Handler) badRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, gin.H{"error": message})
}

func pathID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(strings.TrimSpace(c.Param("id")))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return uuid.Nil, false
	}
	return id, true
}

func parseUUID(raw string) (uuid.UUID, error) {
	id, err := uuid.Parse(strings.TrimSpace(raw))
	if err != nil {
		return uuid.Nil, service.ErrInvalidInput
	}
	return id, nil
}

func parseDate(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, service.ErrInvalidInput
	}
	layouts := []string{
		time.RFC3339,
		"2006-01-02",
		"2006-01-02T15:04:05",
	}
	for _, layout := range layouts {
		if parsed, err := time.Parse(layout, raw); err == nil {
			return parsed, nil
		}
	}
	return time.Time{}, service.ErrInvalidInput
}

// parseOptionalDate accepts an empty value as the zero time.
func parseOptionalDate(raw string) (time.Time, error) {
	if strings.TrimSpace(raw) == "" {
		return time.Time{}, nil
	}
	return parseDate(raw)
}

func parseDatePtr(raw *string) (*time.Time, error) {
	if raw == nil {
		return nil, nil
	}
	parsed, err := parseDate(*raw)
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}
