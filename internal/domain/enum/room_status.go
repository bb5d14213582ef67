package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// RoomStatus represents the housekeeping state of a hotel room
type RoomStatus int

const (
	RoomStatusAvailable   RoomStatus = 0
	RoomStatusOccupied    RoomStatus = 1
	RoomStatusDirty       RoomStatus = 2
	RoomStatusMaintenance RoomStatus = 3
)

var roomStatusNames = [...]string{"AVAILABLE", "OCCUPIED", "DIRTY", "MAINTENANCE"}

func (s RoomStatus) String() string {
	if int(s) < 0 || int(s) >= len(roomStatusNames) {
		return roomStatusNames[0]
	}
	return roomStatusNames[s]
}

func ParseRoomStatus(name string) (RoomStatus, bool) {
	for i, n := range roomStatusNames {
		if n == name {
			return RoomStatus(i), true
		}
	}
	return RoomStatusAvailable, false
}

func (s RoomStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *RoomStatus) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*s = RoomStatus(i)
		return nil
	}
	if parsed, ok := ParseRoomStatus(str); ok {
		*s = parsed
	}
	return nil
}

func (s RoomStatus) Value() (driver.Value, error) {
	return int64(s), nil
}

func (s *RoomStatus) Scan(value interface{}) error {
	if value == nil {
		*s = RoomStatusAvailable
		return nil
	}
	switch v := value.(type) {
	case int64:
		*s = RoomStatus(v)
	case int:
		*s = RoomStatus(v)
	}
	return nil
}
