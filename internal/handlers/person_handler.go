package handlers

import (
	"net/http"

	"github.com/getmentor/persons-api/internal/models"
	"github.com/getmentor/persons-api/internal/services"
	"github.com/getmentor/persons-api/pkg/errors"
	"github.com/gin-gonic/gin"
)

// PersonHandler handles the /person endpoints
type PersonHandler struct {
	service services.PersonServiceInterface
}

// NewPersonHandler creates a new PersonHandler
func NewPersonHandler(service services.PersonServiceInterface) *PersonHandler {
	return &PersonHandler{service: service}
}

// CreatePerson handles POST /person/new
func (h *PersonHandler) CreatePerson(c *gin.Context) {
	var person models.Person
	if err := c.ShouldBindJSON(&person); err != nil {
		respondValidationError(c, err)
		return
	}

	out, err := h.service.Create(c.Request.Context(), &person)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to create person", err)
		return
	}

	c.JSON(http.StatusCreated, out)
}

// SearchPerson handles POST /person/detail?name=&age=
// Deprecated endpoint, kept for existing clients.
func (h *PersonHandler) SearchPerson(c *gin.Context) {
	c.Header("Deprecation", "true")

	var query models.PersonQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		respondValidationError(c, err)
		return
	}

	result, err := h.service.Search(c.Request.Context(), &query)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to search person", err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetPerson handles GET /person/detail/:person_id
func (h *PersonHandler) GetPerson(c *gin.Context) {
	var param models.PersonIDParam
	if err := c.ShouldBindUri(&param); err != nil {
		respondValidationError(c, err)
		return
	}

	if err := h.service.Exists(c.Request.Context(), param.PersonID); err != nil {
		if errors.Is(err, errors.ErrNotFound) {
			respondError(c, http.StatusNotFound, models.PersonNotFoundMessage, err)
			return
		}
		respondError(c, http.StatusInternalServerError, "Failed to look up person", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{param.PersonID.Canonical(): models.PersonExistsMessage})
}

// UpdatePerson handles PUT /person/:person_id
func (h *PersonHandler) UpdatePerson(c *gin.Context) {
	var param models.PersonIDParam
	if err := c.ShouldBindUri(&param); err != nil {
		respondValidationError(c, err)
		return
	}

	var req models.UpdatePersonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err)
		return
	}

	merged, err := h.service.Update(c.Request.Context(), param.PersonID, &req.Person, &req.Location)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to update person", err)
		return
	}

	c.JSON(http.StatusOK, merged)
}
