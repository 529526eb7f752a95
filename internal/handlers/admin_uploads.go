package handlers

import (
	"io"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"

	"towerup-backend/internal/audit"
	"towerup-backend/internal/models"
	"towerup-backend/internal/services"
)

type UploadHandler struct {
	files *services.StorageService
	audit *audit.Recorder
}

func NewUploadHandler(files *services.StorageService, rec *audit.Recorder) *UploadHandler {
	return &UploadHandler{files: files, audit: rec}
}

// Upload godoc
// @Summary     Upload media
// @Description Stores an image or document and returns its storage path and public URL
// @Tags        admin
// @Accept      multipart/form-data
// @Produce     json
// @Security    Bearer
// @Param       file   formData file   true  "File to upload"
// @Param       folder formData string false "Target folder (default uploads)"
// @Success     201 {object} models.UploadResponse
// @Failure     400 {object} models.ErrorResponse
// @Failure     503 {object} models.ErrorResponse
// @Router      /api/v1/admin/uploads [post]
func (h *UploadHandler) Upload(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, services.MaxAttachmentBytes+1<<20)

	header, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "file is required", Message: err.Error()})
		return
	}
	attachment, err := readAttachment(header)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "failed to read file", Message: err.Error()})
		return
	}

	stored, err := h.files.UploadMedia(c.Request.Context(), c.PostForm("folder"), attachment)
	if err != nil {
		respondError(c, err, "upload", "file")
		return
	}

	recordAudit(c, h.audit, ActionUpload, "file", stored.Path, map[string]any{
		"filename": header.Filename,
		"size":     header.Size,
	})
	c.JSON(http.StatusCreated, models.UploadResponse{Path: stored.Path, PublicURL: stored.PublicURL})
}

// readAttachment reads at most one byte past the size limit so the storage
// service can reject oversized files.
func readAttachment(header *multipart.FileHeader) (services.Attachment, error) {
	f, err := header.Open()
	if err != nil {
		return services.Attachment{}, err
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, services.MaxAttachmentBytes+1))
	if err != nil {
		return services.Attachment{}, err
	}
	return services.Attachment{
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Data:        data,
	}, nil
}
