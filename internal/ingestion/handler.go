package ingestion

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Handler exposes the ingestion health signal.
type Handler struct {
	probe   *Probe
	reports *ReportStore
}

func NewHandler(probe *Probe, reports *ReportStore) *Handler {
	return &Handler{probe: probe, reports: reports}
}

func (h *Handler) RegisterRoutes(router *gin.Engine) {
	router.GET("/health/ingestion", h.HealthStatus)
	router.GET("/health/ingestion/last-run", h.LatestReport)
}

func (h *Handler) HealthStatus(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": h.probe.Observe()})
}

// LatestReport returns the most recent archived run, or 404 when the archive
// is empty or disabled.
func (h *Handler) LatestReport(c *gin.Context) {
	if h.reports == nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "run report archive disabled"})
		return
	}
	report, err := h.reports.Latest(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}
	if report == nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "no runs recorded"})
		return
	}
	c.JSON(http.StatusOK, report)
}
