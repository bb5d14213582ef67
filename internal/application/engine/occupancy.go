package engine

import (
	"github.com/sangkips/dinedash-api/internal/domain/entity"
	"github.com/sangkips/dinedash-api/internal/domain/enum"
)

// releaseTable frees the table held by order, if it still points at it.
func releaseTable(s *State, order *entity.Order) {
	t := s.tableIndex(order.TableID)
	if t < 0 {
		return
	}
	table := &s.Tables[t]
	if table.CurrentOrderID != "" && table.CurrentOrderID != order.ID {
		return
	}
	table.Status = enum.TableStatusVacant
	table.CurrentOrderID = ""
}

// SetTableBilling toggles the manual BILLING override on an occupied table.
func (e *Engine) SetTableBilling(s *State, tableID string, billing bool) (*State, error) {
	t := s.tableIndex(tableID)
	if t < 0 {
		return s, nil
	}
	table := s.Tables[t]
	switch {
	case billing && table.Status == enum.TableStatusBilling,
		!billing && table.Status != enum.TableStatusBilling:
		return s, nil
	case billing && table.Status != enum.TableStatusOccupied:
		return s, ErrInvalidTransition
	}

	next := s.Clone()
	if billing {
		next.Tables[t].Status = enum.TableStatusBilling
	} else if next.openOrderIndex(tableID) >= 0 {
		next.Tables[t].Status = enum.TableStatusOccupied
	} else {
		next.Tables[t].Status = enum.TableStatusVacant
		next.Tables[t].CurrentOrderID = ""
	}
	return next, nil
}

func occupyRoom(s *State, roomID, bookingID string) {
	if r := s.roomIndex(roomID); r >= 0 {
		s.Rooms[r].Status = enum.RoomStatusOccupied
		s.Rooms[r].CurrentBookingID = bookingID
	}
}

// vacateRoom sends the room to housekeeping after a stay ends.
func vacateRoom(s *State, roomID, bookingID string) {
	r := s.roomIndex(roomID)
	if r < 0 {
		return
	}
	room := &s.Rooms[r]
	if room.CurrentBookingID != "" && room.CurrentBookingID != bookingID {
		return
	}
	room.Status = enum.RoomStatusDirty
	room.CurrentBookingID = ""
}

// CleanRoom returns a DIRTY room to AVAILABLE.
func (e *Engine) CleanRoom(s *State, roomID string) (*State, error) {
	r := s.roomIndex(roomID)
	if r < 0 {
		return s, nil
	}
	if s.Rooms[r].Status != enum.RoomStatusDirty {
		return s, ErrInvalidTransition
	}
	next := s.Clone()
	next.Rooms[r].Status = enum.RoomStatusAvailable
	return next, nil
}

// SetRoomMaintenance takes a vacant room out of service or puts it back.
func (e *Engine) SetRoomMaintenance(s *State, roomID string, on bool) (*State, error) {
	r := s.roomIndex(roomID)
	if r < 0 {
		return s, nil
	}
	status := s.Rooms[r].Status
	if on == (status == enum.RoomStatusMaintenance) {
		return s, nil
	}
	if status == enum.RoomStatusOccupied {
		return s, ErrRoomUnavailable
	}
	next := s.Clone()
	if on {
		next.Rooms[r].Status = enum.RoomStatusMaintenance
	} else {
		next.Rooms[r].Status = enum.RoomStatusAvailable
	}
	return next, nil
}
