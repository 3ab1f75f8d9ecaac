package user

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"
	"storefront/internal/domain"
	userrepo "storefront/internal/repository/user"
)

// Notifier greets new users.
type Notifier interface {
	Welcome(u domain.User, s domain.Settings)
}

// SettingsSource supplies the store settings used in outgoing mail.
type SettingsSource interface {
	Current(ctx context.Context) (domain.Settings, error)
}

// Service registers and lists storefront users.
type Service struct {
	repo     userrepo.Repository
	notifier Notifier
	settings SettingsSource
	logger   *log.Logger
	now      func() time.Time
}

// New creates a Service. notifier, settings and logger may be nil.
func New(repo userrepo.Repository, notifier Notifier, settings SettingsSource, logger *log.Logger) *Service {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Service{repo: repo, notifier: notifier, settings: settings, logger: logger, now: time.Now}
}

func (s *Service) List(ctx context.Context) ([]domain.User, error) {
	return s.repo.List(ctx)
}

// Register stores a new user with defaults applied and sends the welcome
// mail. Email is unique regardless of case.
func (s *Service) Register(ctx context.Context, u domain.User) (*domain.User, error) {
	u.Email = strings.TrimSpace(u.Email)
	if u.Email == "" {
		return nil, domain.Invalid("email", "required")
	}
	if _, err := mail.ParseAddress(u.Email); err != nil {
		return nil, domain.Invalid("email", "malformed address")
	}
	if strings.TrimSpace(u.Name) == "" {
		return nil, domain.Invalid("name", "required")
	}
	switch u.Role {
	case "":
		u.Role = domain.RoleCustomer
	case domain.RoleAdmin, domain.RoleCustomer:
	default:
		return nil, domain.Invalid("role", fmt.Sprintf("unknown role %q", u.Role))
	}
	if u.Status == "" {
		u.Status = domain.StatusActive
	}
	if u.JoinedAt.IsZero() {
		u.JoinedAt = s.now().UTC()
	}
	if u.ID == "" {
		u.ID = uuid.NewString()
	}

	if _, err := s.repo.GetByEmail(ctx, u.Email); err == nil {
		return nil, fmt.Errorf("user %s: %w", u.Email, domain.ErrAlreadyExists)
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}
	if err := s.repo.Insert(ctx, u.ID, u); err != nil {
		return nil, err
	}

	if s.notifier != nil {
		var settings domain.Settings
		if s.settings != nil {
			cur, err := s.settings.Current(ctx)
			if err != nil {
				s.logger.Printf("user service: read settings for welcome id=%s failed, using default branding: %v", u.ID, err)
			} else {
				settings = cur
			}
		}
		s.notifier.Welcome(u, settings)
	}
	return &u, nil
}
