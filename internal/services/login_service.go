package services

import (
	"context"

	"github.com/getmentor/persons-api/internal/models"
	"github.com/getmentor/persons-api/pkg/logger"
	"github.com/getmentor/persons-api/pkg/metrics"
	"github.com/getmentor/persons-api/pkg/tracing"
	"go.uber.org/zap"
)

// LoginService accepts any well-formed login form. There are no accounts.
type LoginService struct{}

// NewLoginService creates a new login service instance
func NewLoginService() *LoginService {
	return &LoginService{}
}

func (s *LoginService) Login(ctx context.Context, req *models.LoginRequest) (*models.LoginOut, error) {
	_, finish := tracing.StartOperation(ctx, "LoginService", "Login")
	defer finish(nil)

	metrics.Logins.Inc()
	logger.Info("Login accepted", zap.String("username", req.Username))

	return &models.LoginOut{
		Username: req.Username,
		Password: req.Password,
		Message:  models.DefaultLoginMessage,
	}, nil
}
