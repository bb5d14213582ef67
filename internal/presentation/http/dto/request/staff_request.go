package request

// StaffRequest creates or updates a staff member
type StaffRequest struct {
	Name         string  `json:"name" binding:"required,max=255"`
	Role         string  `json:"role" binding:"required"`
	Phone        string  `json:"phone" binding:"omitempty,max=32"`
	Status       string  `json:"status"`
	Salary       float64 `json:"salary" binding:"min=0"`
	PaidHolidays int     `json:"paid_holidays" binding:"min=0"`
}

// AttendanceRequest marks one day of attendance
type AttendanceRequest struct {
	Date   string `json:"date" binding:"required"`
	Status string `json:"status" binding:"required"`
}

// AdvanceRequest issues a cash advance
type AdvanceRequest struct {
	Amount float64 `json:"amount" binding:"required,gt=0"`
}

// PayoutRequest confirms the salary of one month
type PayoutRequest struct {
	Month string `json:"month" binding:"required"`
}
