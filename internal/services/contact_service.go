package services

import (
	"context"

	"github.com/getmentor/persons-api/internal/models"
	"github.com/getmentor/persons-api/pkg/logger"
	"github.com/getmentor/persons-api/pkg/metrics"
	"github.com/getmentor/persons-api/pkg/tracing"
	"go.uber.org/zap"
)

// ContactService handles contact form submissions
type ContactService struct{}

// NewContactService creates a new contact service instance
func NewContactService() *ContactService {
	return &ContactService{}
}

// SubmitContactForm accepts a validated form and answers with the caller's
// User-Agent (nil when absent). The form and the ads cookie are not kept.
func (s *ContactService) SubmitContactForm(ctx context.Context, req *models.ContactRequest, meta models.ContactMeta) (*string, error) {
	_, finish := tracing.StartOperation(ctx, "ContactService", "SubmitContactForm")
	defer finish(nil)

	metrics.ContactFormSubmissions.WithLabelValues("success").Inc()
	logger.Info("Contact form received",
		zap.String("email", req.Email),
		zap.Int("message_length", len(req.Message)),
		zap.Bool("has_user_agent", meta.UserAgent != nil),
		zap.Bool("has_ads_cookie", meta.Ads != nil))

	return meta.UserAgent, nil
}
