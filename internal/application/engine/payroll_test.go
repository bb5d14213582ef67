package engine

import (
	"errors"
	"math"
	"testing"

	"github.com/sangkips/dinedash-api/internal/domain/entity"
	"github.com/sangkips/dinedash-api/internal/domain/enum"
)

func attendance(records ...string) []entity.AttendanceRecord {
	out := make([]entity.AttendanceRecord, 0, len(records)/2)
	for i := 0; i+1 < len(records); i += 2 {
		status, _ := enum.ParseAttendanceStatus(records[i+1])
		out = append(out, entity.AttendanceRecord{Date: records[i], Status: status})
	}
	return out
}

func TestComputeMonthPayroll(t *testing.T) {
	tests := []struct {
		name    string
		staff   entity.Staff
		payouts []entity.Payout
		want    Payslip
	}{
		{
			name: "absencesAndAdvance",
			staff: entity.Staff{ID: "s9", Salary: 30000, AdvanceTaken: 1000,
				Attendance: attendance("2024-05-02", "ABSENT", "2024-05-03", "ABSENT", "2024-05-04", "PRESENT", "2024-04-30", "ABSENT")},
			want: Payslip{StaffID: "s9", Month: "2024-05", BaseSalary: 30000, PresentCount: 1, Absences: 2,
				LeaveDeduction: 2000, AdvanceTaken: 1000, Total: 27000},
		},
		{
			name: "halfDaysAndPaidLeave",
			staff: entity.Staff{ID: "s9", Salary: 18000,
				Attendance: attendance("2024-05-02", "HALF_DAY", "2024-05-03", "HALF_DAY", "2024-05-04", "HALF_DAY", "2024-05-05", "PAID_LEAVE")},
			want: Payslip{StaffID: "s9", Month: "2024-05", BaseSalary: 18000, HalfDays: 3, PaidLeaves: 1,
				LeaveDeduction: 900, Total: 17100},
		},
		{
			name:    "paidMonthIgnoresAdvance",
			staff:   entity.Staff{ID: "s9", Salary: 30000, AdvanceTaken: 5000, Attendance: attendance("2024-05-02", "ABSENT")},
			payouts: []entity.Payout{{StaffID: "s9", Month: "2024-05", Amount: 29000}},
			want: Payslip{StaffID: "s9", Month: "2024-05", BaseSalary: 30000, Absences: 1,
				LeaveDeduction: 1000, Total: 29000, IsPaid: true},
		},
		{
			name:    "payoutForOtherMonthDoesNotCount",
			staff:   entity.Staff{ID: "s9", Salary: 10000, AdvanceTaken: 500},
			payouts: []entity.Payout{{StaffID: "s9", Month: "2024-04"}, {StaffID: "s1", Month: "2024-05"}},
			want:    Payslip{StaffID: "s9", Month: "2024-05", BaseSalary: 10000, AdvanceTaken: 500, Total: 9500},
		},
		{
			name:  "oddDailyRateRoundsTotal",
			staff: entity.Staff{ID: "s9", Salary: 32000, Attendance: attendance("2024-05-09", "ABSENT")},
			want: Payslip{StaffID: "s9", Month: "2024-05", BaseSalary: 32000, Absences: 1,
				LeaveDeduction: 1067, Total: 30933},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ComputeMonthPayroll(tt.staff, "2024-05", tt.payouts); got != tt.want {
				t.Errorf("ComputeMonthPayroll() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestMarkAttendance(t *testing.T) {
	e := newTestEngine()
	s := DefaultState()

	s, err := e.MarkAttendance(s, "s3", "2024-05-10", enum.AttendancePresent)
	mustNoErr(t, err)
	s, err = e.MarkAttendance(s, "s3", "2024-05-10", enum.AttendanceAbsent)
	mustNoErr(t, err)

	member, _ := s.StaffMember("s3")
	if len(member.Attendance) != 1 || member.Attendance[0].Status != enum.AttendanceAbsent {
		t.Fatalf("attendance = %+v, want a single ABSENT record", member.Attendance)
	}
}

func TestMarkAttendancePaidLeaveAccounting(t *testing.T) {
	e := newTestEngine()
	s := DefaultState() // s3 has 10 paid holidays, 4 taken

	s, err := e.MarkAttendance(s, "s3", "2024-05-10", enum.AttendancePaidLeave)
	mustNoErr(t, err)
	if m, _ := s.StaffMember("s3"); m.HolidaysTaken != 5 {
		t.Fatalf("holidays taken = %d, want 5", m.HolidaysTaken)
	}

	// re-marking the same day as paid leave does not spend a second holiday
	s, err = e.MarkAttendance(s, "s3", "2024-05-10", enum.AttendancePaidLeave)
	mustNoErr(t, err)
	if m, _ := s.StaffMember("s3"); m.HolidaysTaken != 5 {
		t.Fatalf("holidays taken = %d, want 5", m.HolidaysTaken)
	}

	s, err = e.MarkAttendance(s, "s3", "2024-05-10", enum.AttendancePresent)
	mustNoErr(t, err)
	if m, _ := s.StaffMember("s3"); m.HolidaysTaken != 4 {
		t.Errorf("holidays taken after refund = %d, want 4", m.HolidaysTaken)
	}
}

func TestMarkAttendanceHolidayBoundary(t *testing.T) {
	e := newTestEngine()
	s := DefaultState()
	s.Staff[2].HolidaysTaken = s.Staff[2].PaidHolidays

	next, err := e.MarkAttendance(s, "s3", "2024-05-11", enum.AttendancePaidLeave)
	if !errors.Is(err, ErrNoPaidHolidays) {
		t.Fatalf("err = %v, want ErrNoPaidHolidays", err)
	}
	m, _ := next.StaffMember("s3")
	if m.HolidaysTaken != m.PaidHolidays || len(m.Attendance) != 0 {
		t.Errorf("state changed on rejection: %+v", m)
	}
}

func TestMarkAttendanceSwapsPaidLeaveAtBoundary(t *testing.T) {
	e := newTestEngine()
	s := DefaultState()
	s.Staff[2].HolidaysTaken = 9

	s, err := e.MarkAttendance(s, "s3", "2024-05-12", enum.AttendancePaidLeave)
	mustNoErr(t, err)
	// allowance is exhausted, but the refund of the same day frees one slot
	s, err = e.MarkAttendance(s, "s3", "2024-05-12", enum.AttendanceHalfDay)
	mustNoErr(t, err)
	s, err = e.MarkAttendance(s, "s3", "2024-05-13", enum.AttendancePaidLeave)
	mustNoErr(t, err)
	if m, _ := s.StaffMember("s3"); m.HolidaysTaken != 10 {
		t.Errorf("holidays taken = %d, want 10", m.HolidaysTaken)
	}
}

func TestIssueAdvance(t *testing.T) {
	tests := []struct {
		name    string
		amount  float64
		wantErr error
		want    float64
	}{
		{"positive", 1500.5, nil, 1500.5},
		{"zero", 0, ErrInvalidAdvance, 0},
		{"negative", -10, ErrInvalidAdvance, 0},
		{"nan", math.NaN(), ErrInvalidAdvance, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newTestEngine()
			s, err := e.IssueAdvance(DefaultState(), "s1", tt.amount)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("err = %v, want %v", err, tt.wantErr)
			}
			if m, _ := s.StaffMember("s1"); m.AdvanceTaken != tt.want {
				t.Errorf("advance = %v, want %v", m.AdvanceTaken, tt.want)
			}
		})
	}
}

func TestConfirmPayout(t *testing.T) {
	e := newTestEngine()
	s := DefaultState()
	s, err := e.IssueAdvance(s, "s1", 2000)
	mustNoErr(t, err)

	before := PendingPayrollTotal(s.Staff, "2024-05", s.Payouts)
	if before != 45000-2000+32000+18000 {
		t.Fatalf("pending before payout = %v", before)
	}

	slip := ComputeMonthPayroll(s.Staff[0], "2024-05", s.Payouts)
	s, payout, err := e.ConfirmPayout(s, "s1", slip.Total, "2024-05")
	mustNoErr(t, err)
	if payout.Amount != 43000 || payout.Month != "2024-05" || s.Payouts[0].ID != payout.ID {
		t.Errorf("payout = %+v", payout)
	}
	if m, _ := s.StaffMember("s1"); m.AdvanceTaken != 0 {
		t.Errorf("advance after payout = %v, want 0", m.AdvanceTaken)
	}

	if after := ComputeMonthPayroll(s.Staff[0], "2024-05", s.Payouts); !after.IsPaid {
		t.Error("month should be reported as paid")
	}
	if pending := PendingPayrollTotal(s.Staff, "2024-05", s.Payouts); pending != 32000+18000 {
		t.Errorf("pending after payout = %v, want 50000", pending)
	}

	if _, _, err := e.ConfirmPayout(s, "s1", 100, "2024-05"); !errors.Is(err, ErrAlreadyPaid) {
		t.Errorf("double payout err = %v", err)
	}
	if _, _, err := e.ConfirmPayout(s, "s2", -1, "2024-05"); !errors.Is(err, ErrInvalidAmount) {
		t.Errorf("negative payout err = %v", err)
	}
	if got := PayoutsFor(s.Payouts, "s1"); len(got) != 1 {
		t.Errorf("payouts for s1 = %d, want 1", len(got))
	}
}
