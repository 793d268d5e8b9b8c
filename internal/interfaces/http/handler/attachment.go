package handler

import (
	"io"

	attachmentapp "github.com/gestor-erp/backend/internal/application/attachment"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// AttachmentHandler serves the file attachment endpoints
type AttachmentHandler struct {
	BaseHandler
	attachments *attachmentapp.AttachmentService
}

// NewAttachmentHandler creates a new AttachmentHandler
func NewAttachmentHandler(attachments *attachmentapp.AttachmentService) *AttachmentHandler {
	return &AttachmentHandler{attachments: attachments}
}

// RegisterRoutes mounts the attachment routes
func (h *AttachmentHandler) RegisterRoutes(rg *gin.RouterGroup) {
	group := rg.Group("/attachments")
	group.POST("", h.Upload)
	group.GET("", h.ListByOwner)
	group.GET("/:id/url", h.URL)
	group.DELETE("/:id", h.Delete)
}

// Upload stores a multipart file against an owning record
func (h *AttachmentHandler) Upload(c *gin.Context) {
	ownerType := c.PostForm("owner_type")
	if ownerType == "" {
		h.BadRequest(c, "Form field owner_type is required")
		return
	}
	ownerID, err := uuid.Parse(c.PostForm("owner_id"))
	if err != nil {
		h.BadRequest(c, "Invalid owner_id")
		return
	}
	file, err := c.FormFile("file")
	if err != nil {
		h.BadRequest(c, "Form file is required")
		return
	}
	src, err := file.Open()
	if err != nil {
		h.HandleError(c, err)
		return
	}
	defer src.Close()
	data, err := io.ReadAll(src)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	att, err := h.attachments.Upload(c.Request.Context(), companyID(c), attachmentapp.UploadRequest{
		OwnerType:   ownerType,
		OwnerID:     ownerID,
		FileName:    file.Filename,
		ContentType: file.Header.Get("Content-Type"),
		Data:        data,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, att)
}

// ListByOwner lists the attachments of one owning record
func (h *AttachmentHandler) ListByOwner(c *gin.Context) {
	ownerType := c.Query("owner_type")
	if ownerType == "" {
		h.BadRequest(c, "Query parameter owner_type is required")
		return
	}
	ownerID, err := uuid.Parse(c.Query("owner_id"))
	if err != nil {
		h.BadRequest(c, "Invalid owner_id")
		return
	}
	attachments, err := h.attachments.ListByOwner(c.Request.Context(), companyID(c), ownerType, ownerID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, attachments)
}

// URL returns a short lived download link
func (h *AttachmentHandler) URL(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		h.BadRequest(c, "Invalid attachment id")
		return
	}
	url, err := h.attachments.URL(c.Request.Context(), companyID(c), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, gin.H{"url": url})
}

// Delete removes the attachment record and its stored blob
func (h *AttachmentHandler) Delete(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		h.BadRequest(c, "Invalid attachment id")
		return
	}
	if err := h.attachments.Delete(c.Request.Context(), companyID(c), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
