package service

import (
	"time"

	"github.com/sangkips/dinedash-api/internal/application/engine"
	"github.com/sangkips/dinedash-api/pkg/pagination"
)

// GuestService derives guest profiles from bookings and orders
type GuestService struct {
	store *StateStore
	now   func() time.Time
}

// NewGuestService creates a new guest service
func NewGuestService(store *StateStore) *GuestService {
	return &GuestService{store: store, now: time.Now}
}

// List returns guest profiles for a segment (ALL, VIP, RECENT) and search term
func (s *GuestService) List(segment, query string, params *pagination.PaginationParams) *pagination.PaginatedResult[engine.GuestProfile] {
	st := s.store.Current()
	profiles := engine.AggregateGuests(st.Bookings, st.Orders)
	return pagination.Paginate(engine.FilterGuests(profiles, segment, query, s.now()), params)
}
