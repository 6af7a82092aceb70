package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/shubham1234-glitch/Timesheet-sub000/internal/service"
	"github.com/shubham1234-glitch/Timesheet-sub000/pkg/response"
)

// AttachmentHandler streams attachment downloads authenticated by signed
// URL tokens.
type AttachmentHandler struct {
	attachments *service.AttachmentService
}

// NewAttachmentHandler constructs AttachmentHandler.
func NewAttachmentHandler(attachments *service.AttachmentService) *AttachmentHandler {
	return &AttachmentHandler{attachments: attachments}
}

// Download godoc
// @Summary Download an attachment by signed token
// @Tags Attachments
// @Produce octet-stream
// @Param token path string true "Signed download token"
// @Success 200 {file} binary
// @Failure 401 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /attachments/{token} [get]
func (h *AttachmentHandler) Download(c *gin.Context) {
	attachment, file, err := h.attachments.OpenByToken(c.Request.Context(), c.Param("token"))
	if err != nil {
		response.Error(c, err)
		return
	}
	defer file.Close() //nolint:errcheck

	contentType := attachment.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", attachment.FileName))
	c.Header("Content-Type", contentType)
	http.ServeContent(c.Writer, c.Request, attachment.FileName, attachment.UploadedAt, file)
}
