package engine

import (
	"slices"

	"github.com/sangkips/dinedash-api/internal/domain/entity"
	"github.com/sangkips/dinedash-api/internal/domain/enum"
)

// Snapshot keys, one per persisted entity collection.
const (
	KindMenu      = "menu"
	KindOrders    = "orders"
	KindTables    = "tables"
	KindInventory = "inventory"
	KindRooms     = "rooms"
	KindBookings  = "bookings"
	KindStaff     = "staff"
	KindPayouts   = "payouts"
	KindHeld      = "held"
	KindAuth      = "auth"
)

// Kinds lists every snapshot key in persistence order.
var Kinds = []string{
	KindMenu, KindOrders, KindTables, KindInventory, KindRooms,
	KindBookings, KindStaff, KindPayouts, KindHeld, KindAuth,
}

// State is the whole application aggregate. Engine operations never modify
// a State in place; they return a new one.
type State struct {
	Menu      []entity.MenuItem      `json:"menu"`
	Orders    []entity.Order         `json:"orders"` // most recent first
	Tables    []entity.Table         `json:"tables"`
	Inventory []entity.InventoryItem `json:"inventory"`
	Rooms     []entity.Room          `json:"rooms"`
	Bookings  []entity.Booking       `json:"bookings"`
	Staff     []entity.Staff         `json:"staff"`
	Payouts   []entity.Payout        `json:"payouts"` // most recent first
	Held      []entity.HeldCart      `json:"held"`
	Auth      entity.AuthSettings    `json:"auth"`
}

// Clone returns a deep copy of s.
func (s *State) Clone() *State {
	if s == nil {
		return &State{}
	}
	c := &State{
		Tables:    slices.Clone(s.Tables),
		Inventory: slices.Clone(s.Inventory),
		Rooms:     slices.Clone(s.Rooms),
		Payouts:   slices.Clone(s.Payouts),
		Auth:      s.Auth,
	}
	if s.Menu != nil {
		c.Menu = make([]entity.MenuItem, len(s.Menu))
		for i, m := range s.Menu {
			c.Menu[i] = m.Clone()
		}
	}
	if s.Orders != nil {
		c.Orders = make([]entity.Order, len(s.Orders))
		for i, o := range s.Orders {
			c.Orders[i] = o.Clone()
		}
	}
	if s.Bookings != nil {
		c.Bookings = make([]entity.Booking, len(s.Bookings))
		for i, b := range s.Bookings {
			c.Bookings[i] = b.Clone()
		}
	}
	if s.Staff != nil {
		c.Staff = make([]entity.Staff, len(s.Staff))
		for i, st := range s.Staff {
			c.Staff[i] = st.Clone()
		}
	}
	if s.Held != nil {
		c.Held = make([]entity.HeldCart, len(s.Held))
		for i, h := range s.Held {
			h.Items = cloneLines(h.Items)
			c.Held[i] = h
		}
	}
	return c
}

// Collection returns a pointer to the field stored under kind, or nil.
func (s *State) Collection(kind string) interface{} {
	switch kind {
	case KindMenu:
		return &s.Menu
	case KindOrders:
		return &s.Orders
	case KindTables:
		return &s.Tables
	case KindInventory:
		return &s.Inventory
	case KindRooms:
		return &s.Rooms
	case KindBookings:
		return &s.Bookings
	case KindStaff:
		return &s.Staff
	case KindPayouts:
		return &s.Payouts
	case KindHeld:
		return &s.Held
	case KindAuth:
		return &s.Auth
	}
	return nil
}

func (s *State) MenuItem(id string) (entity.MenuItem, bool) {
	for _, m := range s.Menu {
		if m.ID == id {
			return m, true
		}
	}
	return entity.MenuItem{}, false
}

func (s *State) Order(id string) (entity.Order, bool) {
	if i := s.orderIndex(id); i >= 0 {
		return s.Orders[i], true
	}
	return entity.Order{}, false
}

func (s *State) Table(id string) (entity.Table, bool) {
	if i := s.tableIndex(id); i >= 0 {
		return s.Tables[i], true
	}
	return entity.Table{}, false
}

func (s *State) Room(id string) (entity.Room, bool) {
	if i := s.roomIndex(id); i >= 0 {
		return s.Rooms[i], true
	}
	return entity.Room{}, false
}

func (s *State) Booking(id string) (entity.Booking, bool) {
	if i := s.bookingIndex(id); i >= 0 {
		return s.Bookings[i], true
	}
	return entity.Booking{}, false
}

func (s *State) InventoryItem(id string) (entity.InventoryItem, bool) {
	if i := s.inventoryIndex(id); i >= 0 {
		return s.Inventory[i], true
	}
	return entity.InventoryItem{}, false
}

func (s *State) StaffMember(id string) (entity.Staff, bool) {
	if i := s.staffIndex(id); i >= 0 {
		return s.Staff[i], true
	}
	return entity.Staff{}, false
}

// ActiveBookingForRoom returns the ACTIVE booking occupying roomID.
func (s *State) ActiveBookingForRoom(roomID string) (entity.Booking, bool) {
	if i := s.activeBookingIndex(roomID); i >= 0 {
		return s.Bookings[i], true
	}
	return entity.Booking{}, false
}

// OpenOrderForTable returns the non-terminal order on tableID.
func (s *State) OpenOrderForTable(tableID string) (entity.Order, bool) {
	if i := s.openOrderIndex(tableID); i >= 0 {
		return s.Orders[i], true
	}
	return entity.Order{}, false
}

func (s *State) orderIndex(id string) int {
	for i := range s.Orders {
		if s.Orders[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *State) openOrderIndex(tableID string) int {
	if tableID == "" {
		return -1
	}
	for i := range s.Orders {
		if s.Orders[i].TableID == tableID && s.Orders[i].IsOpen() {
			return i
		}
	}
	return -1
}

func (s *State) tableIndex(id string) int {
	for i := range s.Tables {
		if s.Tables[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *State) roomIndex(id string) int {
	for i := range s.Rooms {
		if s.Rooms[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *State) bookingIndex(id string) int {
	for i := range s.Bookings {
		if s.Bookings[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *State) activeBookingIndex(roomID string) int {
	if roomID == "" {
		return -1
	}
	for i := range s.Bookings {
		b := &s.Bookings[i]
		if b.RoomID == roomID && b.Status == enum.BookingStatusActive {
			return i
		}
	}
	return -1
}

func (s *State) inventoryIndex(id string) int {
	for i := range s.Inventory {
		if s.Inventory[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *State) staffIndex(id string) int {
	for i := range s.Staff {
		if s.Staff[i].ID == id {
			return i
		}
	}
	return -1
}

func cloneLines(items []entity.LineItem) []entity.LineItem {
	if items == nil {
		return nil
	}
	out := make([]entity.LineItem, len(items))
	for i, li := range items {
		li.MenuItem = li.MenuItem.Clone()
		out[i] = li
	}
	return out
}
