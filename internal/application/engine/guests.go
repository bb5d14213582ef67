package engine

import (
	"strconv"
	"strings"
	"time"

	"github.com/sangkips/dinedash-api/internal/domain/entity"
	"github.com/sangkips/dinedash-api/pkg/money"
)

// WalkInName is the customer name the POS uses for anonymous guests.
const WalkInName = "Walk-in Guest"

const (
	vipSpendThreshold   = 10000
	vipBookingThreshold = 3
	recentWindow        = 7 * day
)

// IdentityKind tags how a guest was identified
type IdentityKind int

const (
	ByGovernmentID IdentityKind = iota
	ByPhone
	ByName
	ByWalkIn
)

func (k IdentityKind) String() string {
	switch k {
	case ByGovernmentID:
		return "GOV_ID"
	case ByPhone:
		return "PHONE"
	case ByName:
		return "NAME"
	case ByWalkIn:
		return "WALK_IN"
	}
	return "UNKNOWN"
}

func (k IdentityKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// IdentityKey groups bookings and orders belonging to one guest
type IdentityKey struct {
	Kind  IdentityKind `json:"kind"`
	Value string       `json:"value"`
}

func (k IdentityKey) String() string {
	return k.Kind.String() + ":" + k.Value
}

// BookingIdentity keys a booking by government id, else phone.
func BookingIdentity(b entity.Booking) IdentityKey {
	if id := strings.TrimSpace(b.GovID); id != "" {
		return IdentityKey{Kind: ByGovernmentID, Value: id}
	}
	return IdentityKey{Kind: ByPhone, Value: strings.TrimSpace(b.Phone)}
}

// OrderIdentity keys an order by government id, else customer name.
// Anonymous orders each become their own walk-in guest.
func OrderIdentity(o entity.Order) IdentityKey {
	if id := strings.TrimSpace(o.GovID); id != "" {
		return IdentityKey{Kind: ByGovernmentID, Value: id}
	}
	name := strings.TrimSpace(o.CustomerName)
	if name == "" || name == WalkInName {
		return IdentityKey{Kind: ByWalkIn, Value: strconv.FormatInt(o.Timestamp.UnixMilli(), 10)}
	}
	return IdentityKey{Kind: ByName, Value: name}
}

// GuestProfile is the unified view of one guest
type GuestProfile struct {
	Key        IdentityKey `json:"key"`
	Name       string      `json:"name"`
	GovID      string      `json:"gov_id,omitempty"`
	Phone      string      `json:"phone,omitempty"`
	BookingIDs []string    `json:"booking_ids"`
	OrderIDs   []string    `json:"order_ids"`
	TotalSpent float64     `json:"total_spent"`
	VisitCount int         `json:"visit_count"`
	LastActive time.Time   `json:"last_active"`
	IsVIP      bool        `json:"is_vip"`
}

// AggregateGuests builds guest profiles in order of first appearance,
// bookings before orders.
func AggregateGuests(bookings []entity.Booking, orders []entity.Order) []GuestProfile {
	index := make(map[IdentityKey]int)
	var profiles []GuestProfile

	lookup := func(key IdentityKey, name, govID, phone string) *GuestProfile {
		if i, ok := index[key]; ok {
			return &profiles[i]
		}
		index[key] = len(profiles)
		profiles = append(profiles, GuestProfile{
			Key: key, Name: name, GovID: govID, Phone: phone,
			BookingIDs: []string{}, OrderIDs: []string{},
		})
		return &profiles[len(profiles)-1]
	}

	for _, b := range bookings {
		g := lookup(BookingIdentity(b), b.GuestName, b.GovID, b.Phone)
		g.BookingIDs = append(g.BookingIDs, b.ID)
		g.TotalSpent += money.Safe(b.Total)
		if b.CheckIn.After(g.LastActive) {
			g.LastActive = b.CheckIn
		}
	}
	for _, o := range orders {
		name := o.CustomerName
		if name == "" {
			name = WalkInName
		}
		g := lookup(OrderIdentity(o), name, o.GovID, "")
		g.OrderIDs = append(g.OrderIDs, o.ID)
		g.TotalSpent += money.Safe(o.Total)
		if o.Timestamp.After(g.LastActive) {
			g.LastActive = o.Timestamp
		}
	}

	for i := range profiles {
		g := &profiles[i]
		g.TotalSpent = money.Round2(g.TotalSpent)
		g.VisitCount = len(g.BookingIDs) + len(g.OrderIDs)
		g.IsVIP = g.TotalSpent > vipSpendThreshold || len(g.BookingIDs) > vipBookingThreshold
	}
	return profiles
}

// Guest segments
const (
	SegmentAll    = "ALL"
	SegmentVIP    = "VIP"
	SegmentRecent = "RECENT"
)

// FilterGuests narrows profiles by segment and a case-insensitive search
// over name, government id and phone.
func FilterGuests(profiles []GuestProfile, segment, query string, now time.Time) []GuestProfile {
	term := strings.ToLower(strings.TrimSpace(query))
	cutoff := now.Add(-recentWindow)

	out := []GuestProfile{}
	for _, g := range profiles {
		switch strings.ToUpper(segment) {
		case SegmentVIP:
			if !g.IsVIP {
				continue
			}
		case SegmentRecent:
			if !g.LastActive.After(cutoff) {
				continue
			}
		}
		if term != "" &&
			!strings.Contains(strings.ToLower(g.Name), term) &&
			!strings.Contains(strings.ToLower(g.GovID), term) &&
			!strings.Contains(g.Phone, term) {
			continue
		}
		out = append(out, g)
	}
	return out
}
