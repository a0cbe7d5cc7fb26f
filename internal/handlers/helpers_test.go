package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/getmentor/persons-api/internal/handlers"
	"github.com/getmentor/persons-api/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
	handlers.SetupValidator()
}

// errorResponse mirrors the error envelope written by the handlers
type errorResponse struct {
	Error   string          `json:"error"`
	Details json.RawMessage `json:"details"`
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) errorResponse {
	t.Helper()
	var resp errorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

// fieldErrors decodes the per-field details of a validation failure
func fieldErrors(t *testing.T, w *httptest.ResponseRecorder) []handlers.ValidationError {
	t.Helper()
	var details []handlers.ValidationError
	require.NoError(t, json.Unmarshal(decodeError(t, w).Details, &details))
	return details
}

func hasField(errs []handlers.ValidationError, field string) bool {
	for _, e := range errs {
		if e.Field == field {
			return true
		}
	}
	return false
}

func newJSONRequest(method, target, body string) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func newFormRequest(target string, values url.Values) *http.Request {
	req := httptest.NewRequest("POST", target, strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

type testFile struct {
	name string
	data []byte
}

// newMultipartRequest builds a multipart upload with one part per file
func newMultipartRequest(t *testing.T, target, field string, files ...testFile) *http.Request {
	t.Helper()

	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	for _, f := range files {
		part, err := w.CreateFormFile(field, f.name)
		require.NoError(t, err)
		_, err = part.Write(f.data)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	req := httptest.NewRequest("POST", target, &body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return req
}

// MockPersonService implements PersonServiceInterface for testing
type MockPersonService struct {
	mock.Mock
}

func (m *MockPersonService) Create(ctx context.Context, person *models.Person) (*models.PersonOut, error) {
	args := m.Called(ctx, person)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.PersonOut), args.Error(1)
}

func (m *MockPersonService) Search(ctx context.Context, query *models.PersonQuery) (map[string]string, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]string), args.Error(1)
}

func (m *MockPersonService) Exists(ctx context.Context, personID models.PersonID) error {
	args := m.Called(ctx, personID)
	return args.Error(0)
}

func (m *MockPersonService) Update(ctx context.Context, personID models.PersonID, person *models.Person, location *models.Location) (*models.PersonWithLocation, error) {
	args := m.Called(ctx, personID, person, location)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.PersonWithLocation), args.Error(1)
}

// MockImageService implements ImageServiceInterface for testing
type MockImageService struct {
	mock.Mock
}

func (m *MockImageService) Inspect(ctx context.Context, files []*multipart.FileHeader) ([]models.ImageInfo, error) {
	args := m.Called(ctx, files)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.ImageInfo), args.Error(1)
}
