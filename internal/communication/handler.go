package communication

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"casemail/internal/logger"
	"casemail/pkg/errors"
)

type Handler struct {
	repo  Repository
	blobs BlobStore
	log   logger.Logger
}

func NewHandler(repo Repository, blobs BlobStore, log logger.Logger) *Handler {
	return &Handler{
		repo:  repo,
		blobs: blobs,
		log:   log,
	}
}

func (h *Handler) RegisterRoutes(group *gin.RouterGroup) {
	comms := group.Group("/communications")
	{
		comms.GET("/:namespace/:municipalityId/errands/:errandNumber", h.ListByErrand)
		comms.GET("/attachments/:attachmentId", h.GetAttachmentContent)
	}
}

func (h *Handler) handleError(c *gin.Context, err error) {
	h.log.ErrorwCtx(c.Request.Context(), "Request error", "error", err, "path", c.Request.URL.Path)

	status := errors.ToHTTPStatus(err)
	response := errors.ToErrorResponse(err)

	c.JSON(status, response)
}

func (h *Handler) ListByErrand(c *gin.Context) {
	comms, err := h.repo.ListByErrand(c.Request.Context(),
		c.Param("namespace"), c.Param("municipalityId"), c.Param("errandNumber"))
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, comms)
}

// GetAttachmentContent streams an attachment payload from the blob store.
func (h *Handler) GetAttachmentContent(c *gin.Context) {
	att, err := h.repo.GetAttachment(c.Request.Context(), c.Param("attachmentId"))
	if err != nil {
		h.handleError(c, err)
		return
	}
	if att.BlobKey == "" {
		h.handleError(c, errors.ErrNotFound.WithDetail("message", "attachment payload not stored"))
		return
	}

	object, err := h.blobs.Get(c.Request.Context(), att.BlobKey)
	if err != nil {
		h.handleError(c, err)
		return
	}
	defer object.Close()

	c.Header("Content-Disposition", `attachment; filename="`+att.Name+`"`)
	c.Header("Content-Type", att.ContentType)
	c.Status(http.StatusOK)
	if _, err := io.Copy(c.Writer, object); err != nil {
		h.log.WarnwCtx(c.Request.Context(), "Failed to stream attachment",
			"attachment_id", att.ID, "error", err)
	}
}
