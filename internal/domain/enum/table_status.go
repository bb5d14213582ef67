package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// TableStatus represents the occupancy of a restaurant table
type TableStatus int

const (
	TableStatusVacant   TableStatus = 0
	TableStatusOccupied TableStatus = 1
	TableStatusBilling  TableStatus = 2
)

var tableStatusNames = [...]string{"VACANT", "OCCUPIED", "BILLING"}

func (s TableStatus) String() string {
	if int(s) < 0 || int(s) >= len(tableStatusNames) {
		return tableStatusNames[0]
	}
	return tableStatusNames[s]
}

func ParseTableStatus(name string) (TableStatus, bool) {
	for i, n := range tableStatusNames {
		if n == name {
			return TableStatus(i), true
		}
	}
	return TableStatusVacant, false
}

func (s TableStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *TableStatus) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*s = TableStatus(i)
		return nil
	}
	if parsed, ok := ParseTableStatus(str); ok {
		*s = parsed
	}
	return nil
}

func (s TableStatus) Value() (driver.Value, error) {
	return int64(s), nil
}

func (s *TableStatus) Scan(value interface{}) error {
	if value == nil {
		*s = TableStatusVacant
		return nil
	}
	switch v := value.(type) {
	case int64:
		*s = TableStatus(v)
	case int:
		*s = TableStatus(v)
	}
	return nil
}
