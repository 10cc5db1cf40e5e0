// Package service implements the business logic between handlers and
// repositories.
package service

import (
	"github.com/jobtrack/jobtrack/internal/data"
	"github.com/jobtrack/jobtrack/internal/notify"
	"github.com/jobtrack/jobtrack/pkg/jwt"
	"github.com/jobtrack/jobtrack/pkg/logger"
)

// Service aggregates all services.
type Service struct {
	Auth *AuthService
	Jobs *JobService
}

// New creates the service layer.
func New(d *data.Data, tokens *jwt.TokenManager, notifier notify.Notifier, logger *logger.Logger) *Service {
	return &Service{
		Auth: NewAuthService(d.Users, tokens, logger),
		Jobs: NewJobService(d.Jobs, notifier, logger),
	}
}
