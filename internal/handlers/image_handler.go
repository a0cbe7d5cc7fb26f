package handlers

import (
	"mime/multipart"
	"net/http"

	"github.com/getmentor/persons-api/internal/models"
	"github.com/getmentor/persons-api/internal/services"
	"github.com/getmentor/persons-api/pkg/errors"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

// ImageHandler handles image upload endpoints
type ImageHandler struct {
	service services.ImageServiceInterface
}

// NewImageHandler creates a new ImageHandler
func NewImageHandler(service services.ImageServiceInterface) *ImageHandler {
	return &ImageHandler{service: service}
}

// UploadImages handles POST /post-image with one or more "images" parts
func (h *ImageHandler) UploadImages(c *gin.Context) {
	var req models.UploadImagesRequest
	if err := bindUpload(c, &req); err != nil {
		respondValidationError(c, err)
		return
	}

	infos, err := h.inspect(c, req.Images)
	if err != nil {
		return
	}

	c.JSON(http.StatusOK, infos)
}

// UploadImage handles POST /post-image/single with one "image" part
func (h *ImageHandler) UploadImage(c *gin.Context) {
	var req models.UploadImageRequest
	if err := bindUpload(c, &req); err != nil {
		respondValidationError(c, err)
		return
	}

	infos, err := h.inspect(c, []*multipart.FileHeader{req.Image})
	if err != nil {
		return
	}

	c.JSON(http.StatusCreated, infos[0])
}

// bindUpload parses the multipart body with the engine's MaxMultipartMemory
// before binding. binding.FormMultipart alone would parse with gin's fixed
// 32 MiB default; once the form is parsed it is reused.
func bindUpload(c *gin.Context, req any) error {
	if _, err := c.MultipartForm(); err != nil {
		return err
	}
	return c.ShouldBindWith(req, binding.FormMultipart)
}

// inspect runs the service and writes the error response on failure
func (h *ImageHandler) inspect(c *gin.Context, files []*multipart.FileHeader) ([]models.ImageInfo, error) {
	infos, err := h.service.Inspect(c.Request.Context(), files)
	if err == nil {
		return infos, nil
	}

	switch status := errors.HTTPStatus(err); status {
	case http.StatusUnprocessableEntity:
		respondErrorWithDetails(c, status, "Validation failed", gin.H{"message": err.Error()}, err)
	default:
		respondError(c, status, "Failed to read uploaded image", err)
	}
	return nil, err
}
