package handlers

import (
	"net/http"

	"github.com/getmentor/persons-api/internal/models"
	"github.com/getmentor/persons-api/internal/services"
	"github.com/gin-gonic/gin"
)

type LoginHandler struct {
	service services.LoginServiceInterface
}

func NewLoginHandler(service services.LoginServiceInterface) *LoginHandler {
	return &LoginHandler{service: service}
}

// Login handles POST /login (form encoded)
func (h *LoginHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBind(&req); err != nil {
		respondValidationError(c, err)
		return
	}

	out, err := h.service.Login(c.Request.Context(), &req)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Internal server error", err)
		return
	}

	c.JSON(http.StatusOK, out)
}
