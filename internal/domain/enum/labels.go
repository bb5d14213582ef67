package enum

// PaymentMethod is a settlement label; no capture protocol sits behind it.
type PaymentMethod string

const (
	PaymentCash         PaymentMethod = "CASH"
	PaymentUPI          PaymentMethod = "UPI"
	PaymentCard         PaymentMethod = "CARD"
	PaymentWallet       PaymentMethod = "WALLET"
	PaymentChargeToRoom PaymentMethod = "CHARGE_TO_ROOM"
)

func (p PaymentMethod) IsValid() bool {
	switch p {
	case PaymentCash, PaymentUPI, PaymentCard, PaymentWallet, PaymentChargeToRoom:
		return true
	}
	return false
}

// OrderType describes how an order is served
type OrderType string

const (
	OrderTypeDineIn      OrderType = "DINE_IN"
	OrderTypeTakeaway    OrderType = "TAKEAWAY"
	OrderTypeDelivery    OrderType = "DELIVERY"
	OrderTypeRoomService OrderType = "ROOM_SERVICE"
)

func (t OrderType) IsValid() bool {
	switch t {
	case OrderTypeDineIn, OrderTypeTakeaway, OrderTypeDelivery, OrderTypeRoomService:
		return true
	}
	return false
}

// RoomType is the sellable category of a room
type RoomType string

const (
	RoomTypeStandard RoomType = "STANDARD"
	RoomTypeDeluxe   RoomType = "DELUXE"
	RoomTypeSuite    RoomType = "SUITE"
)

// StaffRole is the job role of a staff member (not an access role)
type StaffRole string

const (
	StaffRoleAdmin        StaffRole = "ADMIN"
	StaffRoleWaiter       StaffRole = "WAITER"
	StaffRoleChef         StaffRole = "CHEF"
	StaffRoleReceptionist StaffRole = "RECEPTIONIST"
)

type StaffStatus string

const (
	StaffActive  StaffStatus = "ACTIVE"
	StaffOffDuty StaffStatus = "OFF-DUTY"
)

// UserRole is the access role carried by an auth token
type UserRole string

const (
	RoleAdmin      UserRole = "ADMIN"
	RoleRestaurant UserRole = "RESTAURANT"
	RoleRooms      UserRole = "ROOMS"
)

func (r UserRole) IsValid() bool {
	return r == RoleAdmin || r == RoleRestaurant || r == RoleRooms
}
