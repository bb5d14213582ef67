package engine

import (
	"github.com/sangkips/dinedash-api/internal/domain/entity"
	"github.com/sangkips/dinedash-api/internal/domain/enum"
	"github.com/sangkips/dinedash-api/pkg/money"
)

// UpsertMenuItem adds or replaces a menu item. Committed orders keep their
// own snapshot and are never recomputed.
func (e *Engine) UpsertMenuItem(s *State, item entity.MenuItem) (*State, entity.MenuItem) {
	if item.ID == "" {
		item.ID = e.NewID("MENU")
	}
	item.Price = money.Round2(money.NonNegative(money.Safe(item.Price)))
	item = item.Clone()

	next := s.Clone()
	for i := range next.Menu {
		if next.Menu[i].ID == item.ID {
			next.Menu[i] = item
			return next, item
		}
	}
	next.Menu = append(next.Menu, item)
	return next, item
}

// RemoveMenuItem deletes a menu item from the catalog.
func (e *Engine) RemoveMenuItem(s *State, id string) *State {
	for i := range s.Menu {
		if s.Menu[i].ID == id {
			next := s.Clone()
			next.Menu = append(next.Menu[:i], next.Menu[i+1:]...)
			return next
		}
	}
	return s
}

// AddStaff registers a staff member with a clean leave and advance balance.
func (e *Engine) AddStaff(s *State, member entity.Staff) (*State, entity.Staff) {
	if member.ID == "" {
		member.ID = e.NewID("S")
	}
	if member.Status == "" {
		member.Status = enum.StaffActive
	}
	member.Salary = money.NonNegative(money.Safe(member.Salary))
	member.HolidaysTaken = 0
	member.AdvanceTaken = 0
	member.Attendance = []entity.AttendanceRecord{}

	next := s.Clone()
	next.Staff = append(next.Staff, member)
	return next, member
}

// StaffProfile holds the directory fields that may be edited after hiring
type StaffProfile struct {
	Name         string
	Role         enum.StaffRole
	Phone        string
	Status       enum.StaffStatus
	Salary       float64
	PaidHolidays int
}

// UpdateStaff edits directory fields. Attendance, holidays taken and the
// advance balance are only changed by payroll operations.
func (e *Engine) UpdateStaff(s *State, id string, p StaffProfile) *State {
	i := s.staffIndex(id)
	if i < 0 {
		return s
	}
	next := s.Clone()
	member := &next.Staff[i]
	member.Name = p.Name
	member.Role = p.Role
	member.Phone = p.Phone
	member.Status = p.Status
	member.Salary = money.NonNegative(money.Safe(p.Salary))
	member.PaidHolidays = max(0, p.PaidHolidays)
	return next
}

// RemoveStaff deletes a staff member. Past payouts are kept.
func (e *Engine) RemoveStaff(s *State, id string) *State {
	i := s.staffIndex(id)
	if i < 0 {
		return s
	}
	next := s.Clone()
	next.Staff = append(next.Staff[:i], next.Staff[i+1:]...)
	return next
}
