package service

import (
	"strings"

	"quiz_portal_backend/internal/model"
	"quiz_portal_backend/internal/repository"
	"quiz_portal_backend/pkg/logger"

	"go.uber.org/zap"
)

type UserService struct {
	Users *repository.UserRepository
}

func NewUserService(users *repository.UserRepository) *UserService {
	return &UserService{Users: users}
}

type Profile struct {
	UserID      string   `json:"user_id"`
	Email       string   `json:"email"`
	DisplayName string   `json:"display_name"`
	Roles       []string `json:"roles"`
}

func (s *UserService) Me(user *model.AppUser) (*Profile, error) {
	roles, err := s.Users.RoleCodes(user.ID)
	if err != nil {
		return nil, err
	}
	return &Profile{
		UserID:      user.ID,
		Email:       user.Email,
		DisplayName: user.DisplayName,
		Roles:       roles,
	}, nil
}

// WebhookUser is the identity-provider payload shape we care about.
type WebhookUser struct {
	ID                    string `json:"id"`
	PrimaryEmailAddressID string `json:"primary_email_address_id"`
	EmailAddresses        []struct {
		ID           string `json:"id"`
		EmailAddress string `json:"email_address"`
	} `json:"email_addresses"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Username  string `json:"username"`
}

func (w *WebhookUser) primaryEmail() string {
	for _, e := range w.EmailAddresses {
		if e.ID == w.PrimaryEmailAddressID {
			return e.EmailAddress
		}
	}
	if len(w.EmailAddresses) > 0 {
		return w.EmailAddresses[0].EmailAddress
	}
	return ""
}

func (w *WebhookUser) displayName(email string) string {
	name := strings.TrimSpace(strings.TrimSpace(w.FirstName) + " " + strings.TrimSpace(w.LastName))
	if name != "" {
		return name
	}
	if w.Username != "" {
		return w.Username
	}
	if email != "" {
		return email
	}
	return "User"
}

// Provision upserts a portal user from a user.created / user.updated
// event. Events without an email are acknowledged but skipped: email is
// NOT NULL, and the provider sends a later user.updated once it knows it.
func (s *UserService) Provision(payload *WebhookUser) (provisioned bool, err error) {
	email := payload.primaryEmail()
	if email == "" {
		logger.Log.Info("webhook user event without email, waiting for update",
			zap.String("subject", payload.ID))
		return false, nil
	}

	_, err = s.Users.Upsert(payload.ID, email, payload.displayName(email))
	if err != nil {
		return false, err
	}
	return true, nil
}
