package handlers_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/getmentor/persons-api/internal/handlers"
	"github.com/getmentor/persons-api/internal/models"
	"github.com/getmentor/persons-api/internal/services"
	apperrors "github.com/getmentor/persons-api/pkg/errors"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newImageRouter(service services.ImageServiceInterface) *gin.Engine {
	handler := handlers.NewImageHandler(service)
	router := gin.New()
	router.POST("/post-image", handler.UploadImages)
	router.POST("/post-image/single", handler.UploadImage)
	return router
}

func TestImageHandler_UploadImages(t *testing.T) {
	router := newImageRouter(services.NewImageService())

	req := newMultipartRequest(t, "/post-image", "images",
		testFile{name: "one.jpg", data: bytes.Repeat([]byte{1}, 1024)},
		testFile{name: "two.jpg", data: bytes.Repeat([]byte{2}, 3000)},
	)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var infos []models.ImageInfo
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &infos))
	require.Len(t, infos, 2)

	assert.Equal(t, "one.jpg", infos[0].Filename)
	require.NotNil(t, infos[0].ContentType)
	assert.Equal(t, "application/octet-stream", *infos[0].ContentType)
	assert.Equal(t, 1.0, infos[0].SizeKB)

	assert.Equal(t, "two.jpg", infos[1].Filename)
	assert.Equal(t, 2.93, infos[1].SizeKB)
}

func TestImageHandler_UploadImages_MissingFiles(t *testing.T) {
	router := newImageRouter(services.NewImageService())

	req := newMultipartRequest(t, "/post-image", "other", testFile{name: "x.jpg", data: []byte{1}})
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.True(t, hasField(fieldErrors(t, w), "images"), w.Body.String())
}

func TestImageHandler_UploadImages_NotMultipart(t *testing.T) {
	router := newImageRouter(services.NewImageService())

	w := httptest.NewRecorder()
	router.ServeHTTP(w, newJSONRequest("POST", "/post-image", `{}`))

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestImageHandler_UploadImages_ServiceError(t *testing.T) {
	mockService := new(MockImageService)
	router := newImageRouter(mockService)

	mockService.On("Inspect", mock.Anything, mock.Anything).Return(nil, errors.New("disk on fire")).Once()

	req := newMultipartRequest(t, "/post-image", "images", testFile{name: "x.jpg", data: []byte{1}})
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "Failed to read uploaded image", decodeError(t, w).Error)
	mockService.AssertExpectations(t)
}

func TestImageHandler_UploadImage_Single(t *testing.T) {
	router := newImageRouter(services.NewImageService())

	req := newMultipartRequest(t, "/post-image/single", "image", testFile{name: "avatar.png", data: bytes.Repeat([]byte{7}, 1536)})
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var info map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &info))
	assert.Equal(t, "avatar.png", info["filename"])
	assert.Equal(t, "application/octet-stream", info["content_type"])
	assert.Equal(t, 1.5, info["size_kb"])
	assert.Contains(t, info, "detected_type")
}

func TestImageHandler_UploadImage_Missing(t *testing.T) {
	router := newImageRouter(services.NewImageService())

	req := newMultipartRequest(t, "/post-image/single", "images", testFile{name: "avatar.png", data: []byte{7}})
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.True(t, hasField(fieldErrors(t, w), "image"), w.Body.String())
}

func TestImageHandler_UploadImages_ServiceRejectsInput(t *testing.T) {
	mockService := new(MockImageService)
	router := newImageRouter(mockService)

	mockService.On("Inspect", mock.Anything, mock.Anything).
		Return(nil, apperrors.InvalidInputError("images", "at least one file is required")).Once()

	req := newMultipartRequest(t, "/post-image", "images", testFile{name: "x.jpg", data: []byte{1}})
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Equal(t, "Validation failed", decodeError(t, w).Error)
	mockService.AssertExpectations(t)
}

// uploadedToDisk reports whether the first uploaded part was spilled to a temp file
func uploadedToDisk(t *testing.T, maxMemory int64, size int) bool {
	t.Helper()
	mockService := new(MockImageService)
	handler := handlers.NewImageHandler(mockService)
	router := gin.New()
	router.MaxMultipartMemory = maxMemory
	router.POST("/post-image", handler.UploadImages)

	var onDisk bool
	mockService.On("Inspect", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		files := args.Get(1).([]*multipart.FileHeader)
		f, err := files[0].Open()
		require.NoError(t, err)
		defer f.Close()
		_, onDisk = f.(*os.File)
	}).Return([]models.ImageInfo{{Filename: "big.bin"}}, nil).Once()

	req := newMultipartRequest(t, "/post-image", "images", testFile{name: "big.bin", data: bytes.Repeat([]byte{9}, size)})
	t.Cleanup(func() {
		if req.MultipartForm != nil {
			_ = req.MultipartForm.RemoveAll()
		}
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	mockService.AssertExpectations(t)

	return onDisk
}

func TestImageHandler_UploadImages_HonorsMaxMultipartMemory(t *testing.T) {
	assert.True(t, uploadedToDisk(t, 1, 64<<10), "part above the limit should spill to disk")
	assert.False(t, uploadedToDisk(t, 1<<20, 64<<10), "part below the limit should stay in memory")
}
