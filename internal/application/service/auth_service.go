package service

import (
	"context"
	"strings"
	"time"

	"github.com/sangkips/dinedash-api/internal/application/engine"
	"github.com/sangkips/dinedash-api/internal/domain/enum"
	"github.com/sangkips/dinedash-api/pkg/apperror"
	"github.com/sangkips/dinedash-api/pkg/utils"
)

// MinPasscodeLength is the shortest passcode accepted for any role
const MinPasscodeLength = 4

// DefaultPasscodes are installed for roles without a stored hash
var DefaultPasscodes = map[enum.UserRole]string{
	enum.RoleAdmin:      "1234",
	enum.RoleRestaurant: "rest123",
	enum.RoleRooms:      "room123",
}

// AuthService handles role passcode login and first-time setup
type AuthService struct {
	store      *StateStore
	jwtManager *utils.JWTManager
}

// NewAuthService creates a new auth service
func NewAuthService(store *StateStore, jwtManager *utils.JWTManager) *AuthService {
	return &AuthService{store: store, jwtManager: jwtManager}
}

// LoginOutput represents the login output
type LoginOutput struct {
	Role        enum.UserRole `json:"role"`
	AccessToken string        `json:"access_token"`
	ExpiresAt   time.Time     `json:"expires_at"`
}

// SetupInput represents the first-time property setup
type SetupInput struct {
	HotelName     string
	HotelEmail    string
	AdminPasscode string
}

// SetupStatus tells a terminal whether onboarding is still pending
type SetupStatus struct {
	IsConfigured bool   `json:"is_configured"`
	HotelName    string `json:"hotel_name"`
}

// EnsureDefaults hashes the default passcode of every role that has none
func (s *AuthService) EnsureDefaults(ctx context.Context) error {
	_, err := s.store.Update(func(st *engine.State) (*engine.State, error) {
		auth := st.Auth
		changed := false
		for _, slot := range []struct {
			role enum.UserRole
			hash *string
		}{
			{enum.RoleAdmin, &auth.AdminHash},
			{enum.RoleRestaurant, &auth.RestaurantHash},
			{enum.RoleRooms, &auth.RoomsHash},
		} {
			if *slot.hash != "" {
				continue
			}
			h, err := utils.HashPasscode(DefaultPasscodes[slot.role])
			if err != nil {
				return st, err
			}
			*slot.hash = h
			changed = true
		}
		if !changed {
			return st, nil
		}
		next := st.Clone()
		next.Auth = auth
		return next, nil
	})
	return err
}

// Login checks the passcode of a role and issues an access token. Until
// setup is complete only the admin may sign in.
func (s *AuthService) Login(ctx context.Context, role enum.UserRole, passcode string) (*LoginOutput, error) {
	role = enum.UserRole(strings.ToUpper(string(role)))
	if !role.IsValid() {
		return nil, fieldError("role", "must be one of ADMIN, RESTAURANT, ROOMS")
	}
	auth := s.store.Current().Auth
	if !auth.IsConfigured && role != enum.RoleAdmin {
		return nil, apperror.ErrNotConfigured
	}
	if !utils.CheckPasscode(passcode, auth.PasscodeHash(string(role))) {
		return nil, apperror.ErrInvalidCredentials
	}

	token, expires, err := s.jwtManager.GenerateAccessToken(string(role))
	if err != nil {
		return nil, err
	}
	return &LoginOutput{Role: role, AccessToken: token, ExpiresAt: expires}, nil
}

func (s *AuthService) Status() SetupStatus {
	auth := s.store.Current().Auth
	return SetupStatus{IsConfigured: auth.IsConfigured, HotelName: auth.HotelName}
}

// Setup records the property profile and replaces the default admin
// passcode. It runs once.
func (s *AuthService) Setup(ctx context.Context, in SetupInput) (SetupStatus, error) {
	var errs []apperror.FieldError
	if strings.TrimSpace(in.HotelName) == "" {
		errs = append(errs, apperror.FieldError{Field: "hotel_name", Message: "is required"})
	}
	if !strings.Contains(in.HotelEmail, "@") {
		errs = append(errs, apperror.FieldError{Field: "hotel_email", Message: "must be a valid email"})
	}
	if len(in.AdminPasscode) < MinPasscodeLength {
		errs = append(errs, apperror.FieldError{Field: "admin_passcode", Message: "must be at least 4 characters"})
	}
	if len(errs) > 0 {
		return SetupStatus{}, apperror.NewValidationError(errs)
	}

	hash, err := utils.HashPasscode(in.AdminPasscode)
	if err != nil {
		return SetupStatus{}, err
	}
	next, err := s.store.Update(func(st *engine.State) (*engine.State, error) {
		if st.Auth.IsConfigured {
			return st, apperror.NewConflictError("Property is already configured")
		}
		n := st.Clone()
		n.Auth.HotelName = strings.TrimSpace(in.HotelName)
		n.Auth.HotelEmail = strings.TrimSpace(in.HotelEmail)
		n.Auth.AdminHash = hash
		n.Auth.IsConfigured = true
		return n, nil
	})
	if err != nil {
		return SetupStatus{}, err
	}
	return SetupStatus{IsConfigured: true, HotelName: next.Auth.HotelName}, nil
}
