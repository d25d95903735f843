package emailconf

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"casemail/internal/logger"
	"casemail/pkg/errors"
)

type Handler struct {
	service Service
	logger  logger.Logger
}

func NewHandler(service Service, log logger.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  log,
	}
}

func (h *Handler) RegisterRoutes(group *gin.RouterGroup) {
	configs := group.Group("/email-configs")
	{
		configs.GET("", h.List)
		configs.POST("", h.Create)
		configs.GET("/:namespace/:municipalityId", h.Get)
		configs.PUT("/:namespace/:municipalityId", h.Update)
		configs.DELETE("/:namespace/:municipalityId", h.Delete)
	}
}

func (h *Handler) handleError(c *gin.Context, err error) {
	h.logger.ErrorwCtx(c.Request.Context(), "Request error", "error", err, "path", c.Request.URL.Path)

	status := errors.ToHTTPStatus(err)
	response := errors.ToErrorResponse(err)

	c.JSON(status, response)
}

func (h *Handler) List(c *gin.Context) {
	configs, err := h.service.List(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, configs)
}

func (h *Handler) Create(c *gin.Context) {
	var cfg TenantEmailConfig
	if err := c.ShouldBindJSON(&cfg); err != nil {
		h.handleError(c, errors.ErrValidation.WithCause(err))
		return
	}

	created, err := h.service.Create(c.Request.Context(), &cfg)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h *Handler) Get(c *gin.Context) {
	cfg, err := h.service.Get(c.Request.Context(), c.Param("namespace"), c.Param("municipalityId"))
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, cfg)
}

func (h *Handler) Update(c *gin.Context) {
	var cfg TenantEmailConfig
	if err := c.ShouldBindJSON(&cfg); err != nil {
		h.handleError(c, errors.ErrValidation.WithCause(err))
		return
	}
	cfg.Namespace = c.Param("namespace")
	cfg.MunicipalityID = c.Param("municipalityId")

	updated, err := h.service.Update(c.Request.Context(), &cfg)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *Handler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("namespace"), c.Param("municipalityId")); err != nil {
		h.handleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
