package enum

import (
	"encoding/json"
)

// BookingStatus represents the lifecycle of a hotel booking
type BookingStatus int

const (
	BookingStatusReserved  BookingStatus = 0
	BookingStatusActive    BookingStatus = 1
	BookingStatusCompleted BookingStatus = 2
	BookingStatusCancelled BookingStatus = 3
)

var bookingStatusNames = [...]string{"RESERVED", "ACTIVE", "COMPLETED", "CANCELLED"}

func (s BookingStatus) String() string {
	if int(s) < 0 || int(s) >= len(bookingStatusNames) {
		return bookingStatusNames[0]
	}
	return bookingStatusNames[s]
}

// IsTerminal reports whether the booking can no longer change.
func (s BookingStatus) IsTerminal() bool {
	return s == BookingStatusCompleted || s == BookingStatusCancelled
}

func ParseBookingStatus(name string) (BookingStatus, bool) {
	for i, n := range bookingStatusNames {
		if n == name {
			return BookingStatus(i), true
		}
	}
	return BookingStatusReserved, false
}

func (s BookingStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *BookingStatus) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*s = BookingStatus(i)
		return nil
	}
	if parsed, ok := ParseBookingStatus(str); ok {
		*s = parsed
	}
	return nil
}
