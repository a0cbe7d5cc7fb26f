package services

import (
	"context"
	"fmt"
	"io"
	"math"
	"mime/multipart"

	"github.com/gabriel-vasile/mimetype"
	"github.com/getmentor/persons-api/internal/models"
	"github.com/getmentor/persons-api/pkg/errors"
	"github.com/getmentor/persons-api/pkg/logger"
	"github.com/getmentor/persons-api/pkg/metrics"
	"github.com/getmentor/persons-api/pkg/tracing"
	"go.uber.org/zap"
)

// ImageService reports metadata about uploaded images. Files are read into
// memory once and discarded; nothing is stored.
type ImageService struct{}

// NewImageService creates a new image service instance
func NewImageService() *ImageService {
	return &ImageService{}
}

// Inspect describes every uploaded file, in order
func (s *ImageService) Inspect(ctx context.Context, files []*multipart.FileHeader) (infos []models.ImageInfo, err error) {
	_, finish := tracing.StartOperation(ctx, "ImageService", "Inspect")
	defer func() { finish(err) }()

	if len(files) == 0 {
		return nil, errors.InvalidInputError("images", "at least one file is required")
	}

	infos = make([]models.ImageInfo, 0, len(files))
	for _, fh := range files {
		info, err := describe(fh)
		if err != nil {
			metrics.ImageUploads.WithLabelValues("error").Inc()
			logger.LogError(err, "Failed to read uploaded image", zap.String("filename", fh.Filename))
			return nil, err
		}

		metrics.ImageUploads.WithLabelValues("success").Inc()
		infos = append(infos, info)
	}

	return infos, nil
}

func describe(fh *multipart.FileHeader) (models.ImageInfo, error) {
	f, err := fh.Open()
	if err != nil {
		return models.ImageInfo{}, errors.InternalError(fmt.Sprintf("failed to open %q", fh.Filename), err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return models.ImageInfo{}, errors.InternalError(fmt.Sprintf("failed to read %q", fh.Filename), err)
	}
	metrics.ImageUploadBytes.Observe(float64(len(data)))

	var declared *string
	if values, ok := fh.Header["Content-Type"]; ok && len(values) > 0 {
		declared = &values[0]
	}

	return models.ImageInfo{
		Filename:     fh.Filename,
		ContentType:  declared,
		DetectedType: mimetype.Detect(data).String(),
		SizeKB:       SizeInKB(len(data)),
	}, nil
}

// SizeInKB converts a byte count to KiB rounded to two decimals, ties to even.
// n/1024*100 is exact in float64 for any realistic upload size.
func SizeInKB(n int) float64 {
	return math.RoundToEven(float64(n)/1024*100) / 100
}
