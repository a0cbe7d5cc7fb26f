package services_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/getmentor/persons-api/internal/services"
	"github.com/getmentor/persons-api/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")

func TestSizeInKB(t *testing.T) {
	tests := []struct {
		bytes    int
		expected float64
	}{
		{0, 0},
		{1, 0},
		{128, 0.12},
		{384, 0.38},
		{512, 0.5},
		{1000, 0.98},
		{1024, 1},
		{1536, 1.5},
		{10 * 1024 * 1024, 10240},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, services.SizeInKB(tt.bytes), "bytes=%d", tt.bytes)
	}
}

func TestImageService_Inspect(t *testing.T) {
	service := services.NewImageService()
	files := buildFileHeaders(t, "images",
		uploadPart{field: "images", filename: "a.jpg", contentType: "image/jpeg", data: bytes.Repeat([]byte{0xff}, 2048)},
		uploadPart{field: "images", filename: "b.png", contentType: "image/png", data: bytes.Repeat([]byte{0x01}, 1000)},
	)

	infos, err := service.Inspect(context.Background(), files)
	require.NoError(t, err)
	require.Len(t, infos, 2)

	assert.Equal(t, "a.jpg", infos[0].Filename)
	require.NotNil(t, infos[0].ContentType)
	assert.Equal(t, "image/jpeg", *infos[0].ContentType)
	assert.Equal(t, 2.0, infos[0].SizeKB)

	assert.Equal(t, "b.png", infos[1].Filename)
	require.NotNil(t, infos[1].ContentType)
	assert.Equal(t, "image/png", *infos[1].ContentType)
	assert.Equal(t, 0.98, infos[1].SizeKB)
}

func TestImageService_Inspect_MissingContentType(t *testing.T) {
	service := services.NewImageService()
	files := buildFileHeaders(t, "images",
		uploadPart{field: "images", filename: "photo", data: pngHeader},
	)

	infos, err := service.Inspect(context.Background(), files)
	require.NoError(t, err)
	require.Len(t, infos, 1)
	assert.Nil(t, infos[0].ContentType)
	assert.Equal(t, "image/png", infos[0].DetectedType)
}

func TestImageService_Inspect_DetectsDespiteDeclaredType(t *testing.T) {
	service := services.NewImageService()
	files := buildFileHeaders(t, "images",
		uploadPart{field: "images", filename: "photo.jpg", contentType: "image/jpeg", data: pngHeader},
	)

	infos, err := service.Inspect(context.Background(), files)
	require.NoError(t, err)
	require.Len(t, infos, 1)
	require.NotNil(t, infos[0].ContentType)
	assert.Equal(t, "image/jpeg", *infos[0].ContentType)
	assert.Equal(t, "image/png", infos[0].DetectedType)
}

func TestImageService_Inspect_NoFiles(t *testing.T) {
	service := services.NewImageService()

	_, err := service.Inspect(context.Background(), nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrInvalidInput))
}
