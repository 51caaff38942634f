package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

func (h *Handler) dashboard(c *gin.Context) {
	dashboard, err := h.reports.Dashboard(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, dashboard)
}

func (h *Handler) monthly(c *gin.Context) {
	months := 0
	if raw := c.Query("months"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			h.badRequest(c, "invalid months")
			return
		}
		months = parsed
	}

	series, err := h.reports.MonthlySeries(c.Request.Context(), months, h.now())
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, series)
}

func (h *Handler) export(c *gin.Context) {
	snapshot, err := h.reports.Export(c.Request.Context(), h.now())
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.Header("Content-Disposition", "attachment; filename=\"renttax-export-"+snapshot.ExportDate.Format("2006-01-02")+".json\"")
	c.JSON(http.StatusOK, snapshot)
}
