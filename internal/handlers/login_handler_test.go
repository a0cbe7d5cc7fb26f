package handlers_test

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/getmentor/persons-api/internal/handlers"
	"github.com/getmentor/persons-api/internal/services"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func newLoginRouter() *gin.Engine {
	handler := handlers.NewLoginHandler(services.NewLoginService())
	router := gin.New()
	router.POST("/login", handler.Login)
	return router
}

func TestLoginHandler_Login_Success(t *testing.T) {
	router := newLoginRouter()

	w := httptest.NewRecorder()
	router.ServeHTTP(w, newFormRequest("/login", url.Values{"username": {"gus"}, "password": {"123"}}))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"username":"gus","message":"Login successful :)"}`, w.Body.String())
	assert.NotContains(t, w.Body.String(), "password")
}

func TestLoginHandler_Login_ValidationErrors(t *testing.T) {
	router := newLoginRouter()

	testCases := []struct {
		name        string
		form        url.Values
		expectField string
	}{
		{
			name:        "missing_username",
			form:        url.Values{"password": {"123"}},
			expectField: "username",
		},
		{
			name:        "username_too_long",
			form:        url.Values{"username": {strings.Repeat("u", 21)}, "password": {"123"}},
			expectField: "username",
		},
		{
			name:        "password_too_short",
			form:        url.Values{"username": {"gus"}, "password": {"1"}},
			expectField: "password",
		},
		{
			name:        "password_too_long",
			form:        url.Values{"username": {"gus"}, "password": {strings.Repeat("p", 21)}},
			expectField: "password",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			router.ServeHTTP(w, newFormRequest("/login", tc.form))

			assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
			assert.True(t, hasField(fieldErrors(t, w), tc.expectField), w.Body.String())
		})
	}
}
