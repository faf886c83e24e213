package handlers

import (
	"github.com/gin-gonic/gin"

	"freightdesk/internal/core/apperror"
	"freightdesk/internal/infrastructure/http/v1/dto"
	"freightdesk/internal/infrastructure/storage/object"
)

// UploadHandler handles multipart file uploads for variant images and
// quotation attachments.
type UploadHandler struct {
	*BaseHandler
	storage *object.Service
}

// NewUploadHandler creates a new upload handler.
func NewUploadHandler(base *BaseHandler, storage *object.Service) *UploadHandler {
	return &UploadHandler{
		BaseHandler: base,
		storage:     storage,
	}
}

// UploadBatch handles POST /uploads/batch
//
// Accepts a multipart form with repeated "files" parts and returns the
// stored URLs in the order the files were sent, so clients can map them
// back to variants by index.
func (h *UploadHandler) UploadBatch(c *gin.Context) {
	ctx := c.Request.Context()

	form, err := c.MultipartForm()
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid multipart form").WithDetail("error", err.Error()))
		return
	}

	headers := form.File["files"]
	if len(headers) == 0 {
		h.Error(c, apperror.NewValidation("no files provided").WithDetail("field", "files"))
		return
	}
	if len(headers) > object.MaxBatchFiles {
		h.Error(c, apperror.NewValidation("too many files in batch").
			WithDetail("limit", object.MaxBatchFiles).
			WithDetail("got", len(headers)))
		return
	}

	folder := c.DefaultPostForm("folder", "quotations")

	files := make([]object.File, 0, len(headers))
	opened := make([]interface{ Close() error }, 0, len(headers))
	defer func() {
		for _, f := range opened {
			_ = f.Close()
		}
	}()

	for _, header := range headers {
		f, err := header.Open()
		if err != nil {
			h.Error(c, apperror.NewValidation("unreadable file").WithDetail("file", header.Filename))
			return
		}
		opened = append(opened, f)

		files = append(files, object.File{
			Name:        header.Filename,
			ContentType: header.Header.Get("Content-Type"),
			Size:        header.Size,
			Reader:      f,
		})
	}

	urls, err := h.storage.UploadBatch(ctx, folder, files)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.BatchUploadResponse{URLs: urls})
}
