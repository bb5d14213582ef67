package service

import (
	"context"
	"math"
	"strings"

	"github.com/sangkips/dinedash-api/internal/application/engine"
	"github.com/sangkips/dinedash-api/internal/domain/entity"
	"github.com/sangkips/dinedash-api/internal/domain/enum"
	"github.com/sangkips/dinedash-api/pkg/apperror"
	"github.com/sangkips/dinedash-api/pkg/utils"
)

// SettingsService handles the property profile and passcode rotation
type SettingsService struct {
	store       *StateStore
	defaultCGST float64
}

// NewSettingsService creates a new settings service
func NewSettingsService(store *StateStore, cgstRate float64) *SettingsService {
	return &SettingsService{store: store, defaultCGST: cgstRate}
}

// Settings is the readable part of the auth record
type Settings struct {
	HotelName    string  `json:"hotel_name"`
	HotelEmail   string  `json:"hotel_email"`
	Address      string  `json:"address"`
	GSTNumber    string  `json:"gst_number"`
	CGSTRate     float64 `json:"cgst_rate"`
	IsConfigured bool    `json:"is_configured"`
}

// UpdateSettingsInput holds the fields to change; nil leaves a field as is.
// Passcodes are keyed by role.
type UpdateSettingsInput struct {
	HotelName  *string
	HotelEmail *string
	Address    *string
	GSTNumber  *string
	CGSTRate   *float64
	Passcodes  map[enum.UserRole]string
}

func (s *SettingsService) Get() Settings {
	return s.view(s.store.Current().Auth)
}

func (s *SettingsService) view(a entity.AuthSettings) Settings {
	rate := a.CGSTRate
	if rate <= 0 {
		rate = s.defaultCGST
	}
	return Settings{
		HotelName:    a.HotelName,
		HotelEmail:   a.HotelEmail,
		Address:      a.Address,
		GSTNumber:    a.GSTNumber,
		CGSTRate:     rate,
		IsConfigured: a.IsConfigured,
	}
}

// Update applies profile changes and rotates passcodes
func (s *SettingsService) Update(ctx context.Context, in UpdateSettingsInput) (Settings, error) {
	var errs []apperror.FieldError
	if in.HotelName != nil && strings.TrimSpace(*in.HotelName) == "" {
		errs = append(errs, apperror.FieldError{Field: "hotel_name", Message: "must not be empty"})
	}
	if in.HotelEmail != nil && !strings.Contains(*in.HotelEmail, "@") {
		errs = append(errs, apperror.FieldError{Field: "hotel_email", Message: "must be a valid email"})
	}
	if in.CGSTRate != nil && (math.IsNaN(*in.CGSTRate) || *in.CGSTRate < 0 || *in.CGSTRate > 50) {
		errs = append(errs, apperror.FieldError{Field: "cgst_rate", Message: "must be between 0 and 50"})
	}
	hashes := make(map[enum.UserRole]string, len(in.Passcodes))
	for role, code := range in.Passcodes {
		if !role.IsValid() {
			errs = append(errs, apperror.FieldError{Field: "passcodes", Message: "unknown role " + string(role)})
			continue
		}
		if len(code) < MinPasscodeLength {
			errs = append(errs, apperror.FieldError{Field: "passcodes." + strings.ToLower(string(role)), Message: "must be at least 4 characters"})
			continue
		}
		h, err := utils.HashPasscode(code)
		if err != nil {
			return Settings{}, err
		}
		hashes[role] = h
	}
	if len(errs) > 0 {
		return Settings{}, apperror.NewValidationError(errs)
	}

	next, err := s.store.Update(func(st *engine.State) (*engine.State, error) {
		n := st.Clone()
		a := &n.Auth
		if in.HotelName != nil {
			a.HotelName = strings.TrimSpace(*in.HotelName)
		}
		if in.HotelEmail != nil {
			a.HotelEmail = strings.TrimSpace(*in.HotelEmail)
		}
		if in.Address != nil {
			a.Address = strings.TrimSpace(*in.Address)
		}
		if in.GSTNumber != nil {
			a.GSTNumber = strings.TrimSpace(*in.GSTNumber)
		}
		if in.CGSTRate != nil {
			a.CGSTRate = *in.CGSTRate
		}
		for role, h := range hashes {
			switch role {
			case enum.RoleAdmin:
				a.AdminHash = h
			case enum.RoleRestaurant:
				a.RestaurantHash = h
			case enum.RoleRooms:
				a.RoomsHash = h
			}
		}
		return n, nil
	})
	if err != nil {
		return Settings{}, err
	}
	return s.view(next.Auth), nil
}
