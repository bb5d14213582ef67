package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// OrderStatus represents the kitchen lifecycle of an order
type OrderStatus int

const (
	OrderStatusPending   OrderStatus = 0
	OrderStatusKitchen   OrderStatus = 1
	OrderStatusReady     OrderStatus = 2
	OrderStatusCompleted OrderStatus = 3
	OrderStatusCancelled OrderStatus = 4
)

var orderStatusNames = [...]string{"PENDING", "KITCHEN", "READY", "COMPLETED", "CANCELLED"}

func (s OrderStatus) String() string {
	if int(s) < 0 || int(s) >= len(orderStatusNames) {
		return orderStatusNames[0]
	}
	return orderStatusNames[s]
}

// IsTerminal reports whether the order no longer holds its table.
func (s OrderStatus) IsTerminal() bool {
	return s == OrderStatusCompleted || s == OrderStatusCancelled
}

// ParseOrderStatus maps a status name to its value.
func ParseOrderStatus(name string) (OrderStatus, bool) {
	for i, n := range orderStatusNames {
		if n == name {
			return OrderStatus(i), true
		}
	}
	return OrderStatusPending, false
}

func (s OrderStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *OrderStatus) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		// Try unmarshaling as int
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*s = OrderStatus(i)
		return nil
	}
	if parsed, ok := ParseOrderStatus(str); ok {
		*s = parsed
	}
	return nil
}

func (s OrderStatus) Value() (driver.Value, error) {
	return int64(s), nil
}

func (s *OrderStatus) Scan(value interface{}) error {
	if value == nil {
		*s = OrderStatusPending
		return nil
	}
	switch v := value.(type) {
	case int64:
		*s = OrderStatus(v)
	case int:
		*s = OrderStatus(v)
	}
	return nil
}
