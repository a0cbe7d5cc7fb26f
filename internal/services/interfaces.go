package services

import (
	"context"
	"mime/multipart"

	"github.com/getmentor/persons-api/internal/models"
)

// PersonServiceInterface defines the interface for person operations
type PersonServiceInterface interface {
	Create(ctx context.Context, person *models.Person) (*models.PersonOut, error)
	Search(ctx context.Context, query *models.PersonQuery) (map[string]string, error)
	Exists(ctx context.Context, personID models.PersonID) error
	Update(ctx context.Context, personID models.PersonID, person *models.Person, location *models.Location) (*models.PersonWithLocation, error)
}

// LoginServiceInterface defines the interface for the login form
type LoginServiceInterface interface {
	Login(ctx context.Context, req *models.LoginRequest) (*models.LoginOut, error)
}

// ContactServiceInterface defines the interface for contact form submissions
type ContactServiceInterface interface {
	SubmitContactForm(ctx context.Context, req *models.ContactRequest, meta models.ContactMeta) (*string, error)
}

// ImageServiceInterface defines the interface for uploaded image inspection
type ImageServiceInterface interface {
	Inspect(ctx context.Context, files []*multipart.FileHeader) ([]models.ImageInfo, error)
}

// Ensure services implement their interfaces
var _ PersonServiceInterface = (*PersonService)(nil)
var _ LoginServiceInterface = (*LoginService)(nil)
var _ ContactServiceInterface = (*ContactService)(nil)
var _ ImageServiceInterface = (*ImageService)(nil)
