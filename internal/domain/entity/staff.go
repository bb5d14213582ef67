package entity

import (
	"slices"
	"strings"
	"time"

	"github.com/sangkips/dinedash-api/internal/domain/enum"
)

// AttendanceRecord is one day of attendance, keyed by YYYY-MM-DD
type AttendanceRecord struct {
	Date   string                `json:"date"`
	Status enum.AttendanceStatus `json:"status"`
}

// Staff represents an employee on the payroll
type Staff struct {
	ID            string             `json:"id"`
	Name          string             `json:"name"`
	Role          enum.StaffRole     `json:"role"`
	Phone         string             `json:"phone"`
	Status        enum.StaffStatus   `json:"status"`
	Salary        float64            `json:"salary"`         // monthly
	PaidHolidays  int                `json:"paid_holidays"`  // annual allowance
	HolidaysTaken int                `json:"holidays_taken"` // year to date
	AdvanceTaken  float64            `json:"advance_taken"`
	Attendance    []AttendanceRecord `json:"attendance"`
}

// Clone returns a copy with its own attendance slice.
func (s Staff) Clone() Staff {
	s.Attendance = slices.Clone(s.Attendance)
	return s
}

// AttendanceIn returns the records whose date falls in the YYYY-MM month.
func (s *Staff) AttendanceIn(month string) []AttendanceRecord {
	var out []AttendanceRecord
	for _, r := range s.Attendance {
		if strings.HasPrefix(r.Date, month) {
			out = append(out, r)
		}
	}
	return out
}

// Payout is an immutable salary disbursement for one staff month
type Payout struct {
	ID        string    `json:"id"`
	StaffID   string    `json:"staff_id"`
	Month     string    `json:"month"` // YYYY-MM
	Amount    float64   `json:"amount"`
	Timestamp time.Time `json:"timestamp"`
}
