package handlers

import (
	"net/http"

	"github.com/getmentor/persons-api/internal/models"
	"github.com/getmentor/persons-api/internal/services"
	"github.com/gin-gonic/gin"
)

const adsCookie = "ads"

type ContactHandler struct {
	service services.ContactServiceInterface
}

func NewContactHandler(service services.ContactServiceInterface) *ContactHandler {
	return &ContactHandler{service: service}
}

// SubmitContact handles POST /contact (form encoded)
func (h *ContactHandler) SubmitContact(c *gin.Context) {
	var req models.ContactRequest
	if err := c.ShouldBind(&req); err != nil {
		respondValidationError(c, err)
		return
	}

	var meta models.ContactMeta
	if _, ok := c.Request.Header["User-Agent"]; ok {
		ua := c.Request.UserAgent()
		meta.UserAgent = &ua
	}
	if ads, err := c.Cookie(adsCookie); err == nil {
		meta.Ads = &ads
	}

	userAgent, err := h.service.SubmitContactForm(c.Request.Context(), &req, meta)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Internal server error", err)
		return
	}

	c.JSON(http.StatusOK, userAgent)
}
