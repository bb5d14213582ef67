package engine

import (
	"math"

	"github.com/sangkips/dinedash-api/internal/domain/entity"
	"github.com/sangkips/dinedash-api/internal/domain/enum"
	"github.com/sangkips/dinedash-api/pkg/money"
)

// PayrollDaysPerMonth is the fixed month length used for the daily rate.
const PayrollDaysPerMonth = 30

// Payslip is the payroll computation of one staff month
type Payslip struct {
	StaffID        string  `json:"staff_id"`
	StaffName      string  `json:"staff_name"`
	Month          string  `json:"month"`
	BaseSalary     float64 `json:"base_salary"`
	PresentCount   int     `json:"present_count"`
	Absences       int     `json:"absences"`
	HalfDays       int     `json:"half_days"`
	PaidLeaves     int     `json:"paid_leaves"`
	LeaveDeduction float64 `json:"leave_deduction"`
	AdvanceTaken   float64 `json:"advance_taken"`
	Total          float64 `json:"total"`
	IsPaid         bool    `json:"is_paid"`
}

// ComputeMonthPayroll derives the net pay of staff for a YYYY-MM month.
// Once a payout exists for the month the advance is no longer deducted.
func ComputeMonthPayroll(staff entity.Staff, month string, payouts []entity.Payout) Payslip {
	p := Payslip{
		StaffID:    staff.ID,
		StaffName:  staff.Name,
		Month:      month,
		BaseSalary: money.Safe(staff.Salary),
		IsPaid:     IsMonthPaid(payouts, staff.ID, month),
	}
	for _, r := range staff.AttendanceIn(month) {
		switch r.Status {
		case enum.AttendancePresent:
			p.PresentCount++
		case enum.AttendanceAbsent:
			p.Absences++
		case enum.AttendanceHalfDay:
			p.HalfDays++
		case enum.AttendancePaidLeave:
			p.PaidLeaves++
		}
	}

	dailyRate := p.BaseSalary / PayrollDaysPerMonth
	deduction := float64(p.Absences)*dailyRate + float64(p.HalfDays)*dailyRate*0.5
	advance := 0.0
	if !p.IsPaid {
		advance = money.Safe(staff.AdvanceTaken)
	}

	p.LeaveDeduction = money.RoundWhole(deduction)
	p.AdvanceTaken = money.RoundWhole(advance)
	p.Total = money.RoundWhole(p.BaseSalary - deduction - advance)
	return p
}

// IsMonthPaid reports whether a payout exists for (staffID, month).
func IsMonthPaid(payouts []entity.Payout, staffID, month string) bool {
	for _, p := range payouts {
		if p.StaffID == staffID && p.Month == month {
			return true
		}
	}
	return false
}

// PendingPayrollTotal sums the net pay of every unpaid staff month.
func PendingPayrollTotal(staff []entity.Staff, month string, payouts []entity.Payout) float64 {
	var total float64
	for _, st := range staff {
		slip := ComputeMonthPayroll(st, month, payouts)
		if !slip.IsPaid {
			total += slip.Total
		}
	}
	return money.Round2(total)
}

// MarkAttendance upserts the record for date. A PAID_LEAVE being replaced
// refunds its holiday before the new status is applied; a new PAID_LEAVE
// fails with ErrNoPaidHolidays once the allowance is used up.
func (e *Engine) MarkAttendance(s *State, staffID, date string, status enum.AttendanceStatus) (*State, error) {
	i := s.staffIndex(staffID)
	if i < 0 {
		return s, nil
	}
	st := s.Staff[i]

	existing := -1
	for j, r := range st.Attendance {
		if r.Date == date {
			existing = j
			break
		}
	}

	taken := st.HolidaysTaken
	if existing >= 0 && st.Attendance[existing].Status == enum.AttendancePaidLeave {
		if status == enum.AttendancePaidLeave {
			return s, nil
		}
		taken = max(0, taken-1)
	}
	if status == enum.AttendancePaidLeave {
		if taken >= st.PaidHolidays {
			return s, ErrNoPaidHolidays
		}
		taken++
	}

	next := s.Clone()
	member := &next.Staff[i]
	record := entity.AttendanceRecord{Date: date, Status: status}
	if existing >= 0 {
		member.Attendance[existing] = record
	} else {
		member.Attendance = append(member.Attendance, record)
	}
	member.HolidaysTaken = taken
	return next, nil
}

// IssueAdvance adds a cash advance to the staff member's balance.
func (e *Engine) IssueAdvance(s *State, staffID string, amount float64) (*State, error) {
	if math.IsNaN(amount) || math.IsInf(amount, 0) || amount <= 0 {
		return s, ErrInvalidAdvance
	}
	i := s.staffIndex(staffID)
	if i < 0 {
		return s, nil
	}
	next := s.Clone()
	next.Staff[i].AdvanceTaken = money.Round2(next.Staff[i].AdvanceTaken + amount)
	return next, nil
}

// ConfirmPayout records the month as paid and clears the advance balance.
// It cannot be undone.
func (e *Engine) ConfirmPayout(s *State, staffID string, amount float64, month string) (*State, entity.Payout, error) {
	if math.IsNaN(amount) || math.IsInf(amount, 0) || amount < 0 {
		return s, entity.Payout{}, ErrInvalidAmount
	}
	i := s.staffIndex(staffID)
	if i < 0 {
		return s, entity.Payout{}, nil
	}
	if IsMonthPaid(s.Payouts, staffID, month) {
		return s, entity.Payout{}, ErrAlreadyPaid
	}

	payout := entity.Payout{
		ID:        e.NewID("PAY"),
		StaffID:   staffID,
		Month:     month,
		Amount:    money.Round2(amount),
		Timestamp: e.now(),
	}
	next := s.Clone()
	next.Payouts = append([]entity.Payout{payout}, next.Payouts...)
	next.Staff[i].AdvanceTaken = 0
	return next, payout, nil
}

// PayoutsFor returns the payouts of one staff member, most recent first.
func PayoutsFor(payouts []entity.Payout, staffID string) []entity.Payout {
	var out []entity.Payout
	for _, p := range payouts {
		if p.StaffID == staffID {
			out = append(out, p)
		}
	}
	return out
}
