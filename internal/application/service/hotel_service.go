package service

import (
	"context"
	"strings"
	"time"

	"github.com/sangkips/dinedash-api/internal/application/engine"
	"github.com/sangkips/dinedash-api/internal/domain/entity"
	"github.com/sangkips/dinedash-api/internal/domain/enum"
	"github.com/sangkips/dinedash-api/pkg/apperror"
	"github.com/sangkips/dinedash-api/pkg/events"
	"github.com/sangkips/dinedash-api/pkg/telemetry"
)

// HotelService handles rooms, bookings and folio settlement
type HotelService struct {
	store       *StateStore
	engine      *engine.Engine
	events      *Broadcaster
	metrics     *telemetry.Metrics
	notifier    *NotificationService
	defaultCGST float64
}

// NewHotelService creates a new hotel service. cgstRate is used for folios
// until the property sets its own rate.
func NewHotelService(
	store *StateStore,
	eng *engine.Engine,
	bus *Broadcaster,
	metrics *telemetry.Metrics,
	notifier *NotificationService,
	cgstRate float64,
) *HotelService {
	return &HotelService{
		store:       store,
		engine:      eng,
		events:      bus,
		metrics:     metrics,
		notifier:    notifier,
		defaultCGST: cgstRate,
	}
}

// StayInput represents a check-in or reservation request
type StayInput struct {
	GuestName string
	Phone     string
	GovID     string
	Nights    int
	Start     time.Time
}

func (in StayInput) validate() error {
	var errs []apperror.FieldError
	if strings.TrimSpace(in.GuestName) == "" {
		errs = append(errs, apperror.FieldError{Field: "guest_name", Message: "is required"})
	}
	if strings.TrimSpace(in.Phone) == "" {
		errs = append(errs, apperror.FieldError{Field: "phone", Message: "is required"})
	}
	if len(errs) > 0 {
		return apperror.NewValidationError(errs)
	}
	return nil
}

func (in StayInput) request(roomID string) engine.StayRequest {
	return engine.StayRequest{
		RoomID:    roomID,
		GuestName: strings.TrimSpace(in.GuestName),
		Phone:     strings.TrimSpace(in.Phone),
		GovID:     strings.TrimSpace(in.GovID),
		Nights:    in.Nights,
		Start:     in.Start,
	}
}

func (s *HotelService) ListRooms() []entity.Room {
	return s.store.Current().Rooms
}

// CheckIn opens an active stay in an available room
func (s *HotelService) CheckIn(ctx context.Context, roomID string, in StayInput) (entity.Booking, error) {
	if err := in.validate(); err != nil {
		return entity.Booking{}, err
	}
	var booking entity.Booking
	_, err := s.store.Update(func(st *engine.State) (*engine.State, error) {
		if _, ok := st.Room(roomID); !ok {
			return st, errNotFound("Room")
		}
		n, b, err := s.engine.CheckIn(st, in.request(roomID))
		if err != nil {
			return st, ruleError(err)
		}
		booking = b
		return n, nil
	})
	if err != nil {
		return entity.Booking{}, err
	}
	s.events.Emit(events.TopicBookingUpdated, booking)
	return booking, nil
}

// Reserve books a future stay without occupying the room
func (s *HotelService) Reserve(ctx context.Context, roomID string, in StayInput) (entity.Booking, error) {
	if err := in.validate(); err != nil {
		return entity.Booking{}, err
	}
	var booking entity.Booking
	_, err := s.store.Update(func(st *engine.State) (*engine.State, error) {
		if _, ok := st.Room(roomID); !ok {
			return st, errNotFound("Room")
		}
		n, b := s.engine.Reserve(st, in.request(roomID))
		booking = b
		return n, nil
	})
	if err != nil {
		return entity.Booking{}, err
	}
	s.events.Emit(events.TopicBookingUpdated, booking)
	return booking, nil
}

// CleanRoom marks a dirty room as available
func (s *HotelService) CleanRoom(ctx context.Context, roomID string) (entity.Room, error) {
	return s.roomChange(roomID, func(st *engine.State) (*engine.State, error) {
		return s.engine.CleanRoom(st, roomID)
	})
}

// SetMaintenance takes a room out of service or returns it
func (s *HotelService) SetMaintenance(ctx context.Context, roomID string, on bool) (entity.Room, error) {
	return s.roomChange(roomID, func(st *engine.State) (*engine.State, error) {
		return s.engine.SetRoomMaintenance(st, roomID, on)
	})
}

func (s *HotelService) roomChange(roomID string, fn func(*engine.State) (*engine.State, error)) (entity.Room, error) {
	next, err := s.store.Update(func(st *engine.State) (*engine.State, error) {
		if _, ok := st.Room(roomID); !ok {
			return st, errNotFound("Room")
		}
		n, err := fn(st)
		if err != nil {
			return st, ruleError(err)
		}
		return n, nil
	})
	if err != nil {
		return entity.Room{}, err
	}
	r, _ := next.Room(roomID)
	return r, nil
}

// ListBookings returns bookings, newest first, optionally filtered by status
func (s *HotelService) ListBookings(status *enum.BookingStatus) []entity.Booking {
	all := s.store.Current().Bookings
	out := make([]entity.Booking, 0, len(all))
	for i := len(all) - 1; i >= 0; i-- {
		if status == nil || all[i].Status == *status {
			out = append(out, all[i])
		}
	}
	return out
}

// UpdateBookingStatus applies a front desk status change
func (s *HotelService) UpdateBookingStatus(ctx context.Context, id string, status enum.BookingStatus) (entity.Booking, error) {
	var before entity.Booking
	next, err := s.store.Update(func(st *engine.State) (*engine.State, error) {
		b, ok := st.Booking(id)
		if !ok {
			return st, errNotFound("Booking")
		}
		before = b
		n, err := s.engine.UpdateBookingStatus(st, id, status)
		if err != nil {
			return st, ruleError(err)
		}
		return n, nil
	})
	if err != nil {
		return entity.Booking{}, err
	}

	booking, _ := next.Booking(id)
	if before.Status != enum.BookingStatusCompleted && booking.Status == enum.BookingStatusCompleted {
		s.afterSettle(next, id)
	} else {
		s.events.Emit(events.TopicBookingUpdated, booking)
	}
	return booking, nil
}

// Folio returns the itemised bill of a booking
func (s *HotelService) Folio(id string) (engine.Folio, error) {
	st := s.store.Current()
	f, ok := engine.BuildFolio(st, id, s.cgstRate(st))
	if !ok {
		return engine.Folio{}, apperror.NewNotFoundError("Booking")
	}
	return f, nil
}

// Settle checks the guest out and records how the folio was paid
func (s *HotelService) Settle(ctx context.Context, id string, method enum.PaymentMethod) (engine.Folio, error) {
	if method == "" {
		method = enum.PaymentCash
	}
	if !method.IsValid() || method == enum.PaymentChargeToRoom {
		return engine.Folio{}, fieldError("payment_method", "choose how the folio is paid")
	}

	next, err := s.store.Update(func(st *engine.State) (*engine.State, error) {
		if _, ok := st.Booking(id); !ok {
			return st, errNotFound("Booking")
		}
		n, err := s.engine.SettleFolio(st, id, method)
		if err != nil {
			return st, ruleError(err)
		}
		return n, nil
	})
	if err != nil {
		return engine.Folio{}, err
	}
	return s.afterSettle(next, id), nil
}

func (s *HotelService) afterSettle(st *engine.State, id string) engine.Folio {
	f, _ := engine.BuildFolio(st, id, s.cgstRate(st))
	s.metrics.FoliosSettled.WithLabelValues(string(f.Booking.PaymentMethod)).Inc()
	s.metrics.FolioRevenue.Add(f.StoredTotal)
	s.events.Emit(events.TopicFolioSettled, map[string]interface{}{
		"booking_id":     f.Booking.ID,
		"room_id":        f.Booking.RoomID,
		"total":          f.StoredTotal,
		"payment_method": f.Booking.PaymentMethod,
	})
	s.notifier.FolioSettled(f)
	return f
}

func (s *HotelService) cgstRate(st *engine.State) float64 {
	if st.Auth.CGSTRate > 0 {
		return st.Auth.CGSTRate
	}
	return s.defaultCGST
}
