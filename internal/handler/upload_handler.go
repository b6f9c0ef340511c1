package handler

import (
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/learningflow/api/internal/dto"
	"github.com/learningflow/api/internal/service"
	appErrors "github.com/learningflow/api/pkg/errors"
	"github.com/learningflow/api/pkg/response"
	"github.com/learningflow/api/pkg/storage"
)

// UploadHandler accepts document uploads and serves stored files back.
type UploadHandler struct {
	service *service.UploadService
	store   *storage.LocalStorage
	metrics *service.MetricsService
}

// NewUploadHandler creates a new handler.
func NewUploadHandler(svc *service.UploadService, store *storage.LocalStorage, metrics *service.MetricsService) *UploadHandler {
	return &UploadHandler{service: svc, store: store, metrics: metrics}
}

// Upload godoc
// @Summary Upload a document
// @Description Accept a PDF or TXT file, extract its text and generate study material. The response is the flat legacy shape the frontend consumes.
// @Tags Upload
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "PDF or TXT document"
// @Param filename formData string false "Display name for the upload"
// @Param category formData string false "Document category"
// @Success 200 {object} dto.UploadResult
// @Failure 400 {object} response.Envelope
// @Router /upload [post]
func (h *UploadHandler) Upload(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "file is required"))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to read the file"))
		return
	}
	defer file.Close() //nolint:errcheck

	data, err := io.ReadAll(file)
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to read the file"))
		return
	}

	input := dto.UploadInput{
		Data:             data,
		OriginalFilename: fileHeader.Filename,
		CustomFilename:   c.PostForm("filename"),
		Category:         c.PostForm("category"),
	}
	if claims := claimsFromContext(c); claims != nil {
		userID := claims.UserID
		input.UserID = &userID
	}

	result, err := h.service.Process(c.Request.Context(), input)
	fileType := strings.TrimPrefix(strings.ToLower(filepath.Ext(fileHeader.Filename)), ".")
	h.metrics.RecordUpload(fileType, err)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// ServeFile godoc
// @Summary Download a stored document
// @Description Serve a previously uploaded PDF by its stored name
// @Tags Upload
// @Produce application/pdf
// @Param filename path string true "Stored file name"
// @Success 200 {file} file
// @Failure 404 {object} response.Envelope
// @Router /uploads/{filename} [get]
func (h *UploadHandler) ServeFile(c *gin.Context) {
	name := c.Param("filename")
	file, err := h.store.Open(name)
	if err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrNotFound, "file not found"))
		return
	}
	file.Close() //nolint:errcheck

	if strings.HasSuffix(strings.ToLower(name), ".pdf") {
		c.Header("Content-Type", "application/pdf")
	}
	c.File(h.store.Path(name))
}
