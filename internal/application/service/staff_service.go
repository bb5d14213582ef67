package service

import (
	"context"
	"math"
	"strings"

	"github.com/sangkips/dinedash-api/internal/application/engine"
	"github.com/sangkips/dinedash-api/internal/domain/entity"
	"github.com/sangkips/dinedash-api/internal/domain/enum"
	"github.com/sangkips/dinedash-api/pkg/apperror"
	"github.com/sangkips/dinedash-api/pkg/events"
	"github.com/sangkips/dinedash-api/pkg/telemetry"
	"github.com/sangkips/dinedash-api/pkg/utils"
	"github.com/xuri/excelize/v2"
)

// StaffService handles the staff directory, attendance and payroll
type StaffService struct {
	store    *StateStore
	engine   *engine.Engine
	events   *Broadcaster
	metrics  *telemetry.Metrics
	notifier *NotificationService
}

// NewStaffService creates a new staff service
func NewStaffService(
	store *StateStore,
	eng *engine.Engine,
	bus *Broadcaster,
	metrics *telemetry.Metrics,
	notifier *NotificationService,
) *StaffService {
	return &StaffService{
		store:    store,
		engine:   eng,
		events:   bus,
		metrics:  metrics,
		notifier: notifier,
	}
}

// StaffInput represents the editable directory fields of a staff member
type StaffInput struct {
	Name         string
	Role         enum.StaffRole
	Phone        string
	Status       enum.StaffStatus
	Salary       float64
	PaidHolidays int
}

func (in StaffInput) validate() error {
	var errs []apperror.FieldError
	if strings.TrimSpace(in.Name) == "" {
		errs = append(errs, apperror.FieldError{Field: "name", Message: "is required"})
	}
	switch in.Role {
	case enum.StaffRoleAdmin, enum.StaffRoleWaiter, enum.StaffRoleChef, enum.StaffRoleReceptionist:
	default:
		errs = append(errs, apperror.FieldError{Field: "role", Message: "must be one of ADMIN, WAITER, CHEF, RECEPTIONIST"})
	}
	if in.Status != "" && in.Status != enum.StaffActive && in.Status != enum.StaffOffDuty {
		errs = append(errs, apperror.FieldError{Field: "status", Message: "must be ACTIVE or OFF-DUTY"})
	}
	if math.IsNaN(in.Salary) || math.IsInf(in.Salary, 0) || in.Salary < 0 {
		errs = append(errs, apperror.FieldError{Field: "salary", Message: "must be a non-negative number"})
	}
	if in.PaidHolidays < 0 {
		errs = append(errs, apperror.FieldError{Field: "paid_holidays", Message: "must not be negative"})
	}
	if len(errs) > 0 {
		return apperror.NewValidationError(errs)
	}
	return nil
}

// PayrollSummary is the payroll sheet of one month
type PayrollSummary struct {
	Month        string           `json:"month"`
	Payslips     []engine.Payslip `json:"payslips"`
	PendingTotal float64          `json:"pending_total"`
}

// List returns staff whose name, role or phone contains query
func (s *StaffService) List(query string) []entity.Staff {
	staff := s.store.Current().Staff
	term := strings.ToLower(strings.TrimSpace(query))
	if term == "" {
		return staff
	}
	out := []entity.Staff{}
	for _, m := range staff {
		if strings.Contains(strings.ToLower(m.Name), term) ||
			strings.Contains(strings.ToLower(string(m.Role)), term) ||
			strings.Contains(m.Phone, term) {
			out = append(out, m)
		}
	}
	return out
}

func (s *StaffService) Get(id string) (entity.Staff, error) {
	m, ok := s.store.Current().StaffMember(id)
	if !ok {
		return entity.Staff{}, apperror.NewNotFoundError("Staff member")
	}
	return m, nil
}

func (s *StaffService) Create(ctx context.Context, in StaffInput) (entity.Staff, error) {
	if err := in.validate(); err != nil {
		return entity.Staff{}, err
	}
	var member entity.Staff
	_, err := s.store.Update(func(st *engine.State) (*engine.State, error) {
		n, m := s.engine.AddStaff(st, entity.Staff{
			Name:         strings.TrimSpace(in.Name),
			Role:         in.Role,
			Phone:        strings.TrimSpace(in.Phone),
			Status:       in.Status,
			Salary:       in.Salary,
			PaidHolidays: in.PaidHolidays,
		})
		member = m
		return n, nil
	})
	if err != nil {
		return entity.Staff{}, err
	}
	return member, nil
}

func (s *StaffService) Update(ctx context.Context, id string, in StaffInput) (entity.Staff, error) {
	if err := in.validate(); err != nil {
		return entity.Staff{}, err
	}
	status := in.Status
	if status == "" {
		status = enum.StaffActive
	}
	next, err := s.store.Update(func(st *engine.State) (*engine.State, error) {
		if _, ok := st.StaffMember(id); !ok {
			return st, errNotFound("Staff member")
		}
		return s.engine.UpdateStaff(st, id, engine.StaffProfile{
			Name:         strings.TrimSpace(in.Name),
			Role:         in.Role,
			Phone:        strings.TrimSpace(in.Phone),
			Status:       status,
			Salary:       in.Salary,
			PaidHolidays: in.PaidHolidays,
		}), nil
	})
	if err != nil {
		return entity.Staff{}, err
	}
	m, _ := next.StaffMember(id)
	return m, nil
}

func (s *StaffService) Delete(ctx context.Context, id string) error {
	_, err := s.store.Update(func(st *engine.State) (*engine.State, error) {
		if _, ok := st.StaffMember(id); !ok {
			return st, errNotFound("Staff member")
		}
		return s.engine.RemoveStaff(st, id), nil
	})
	return err
}

// MarkAttendance records the attendance of one day (YYYY-MM-DD)
func (s *StaffService) MarkAttendance(ctx context.Context, id, date string, status enum.AttendanceStatus) (entity.Staff, error) {
	if !utils.IsDate(date) {
		return entity.Staff{}, fieldError("date", "must be YYYY-MM-DD")
	}
	next, err := s.store.Update(func(st *engine.State) (*engine.State, error) {
		if _, ok := st.StaffMember(id); !ok {
			return st, errNotFound("Staff member")
		}
		n, err := s.engine.MarkAttendance(st, id, date, status)
		if err != nil {
			return st, ruleError(err)
		}
		return n, nil
	})
	if err != nil {
		return entity.Staff{}, err
	}
	m, _ := next.StaffMember(id)
	return m, nil
}

// IssueAdvance adds a salary advance to the member's balance
func (s *StaffService) IssueAdvance(ctx context.Context, id string, amount float64) (entity.Staff, error) {
	next, err := s.store.Update(func(st *engine.State) (*engine.State, error) {
		if _, ok := st.StaffMember(id); !ok {
			return st, errNotFound("Staff member")
		}
		n, err := s.engine.IssueAdvance(st, id, amount)
		if err != nil {
			return st, ruleError(err)
		}
		return n, nil
	})
	if err != nil {
		return entity.Staff{}, err
	}
	m, _ := next.StaffMember(id)
	return m, nil
}

// Payroll computes every payslip of a YYYY-MM month
func (s *StaffService) Payroll(month string) (PayrollSummary, error) {
	if !utils.IsYearMonth(month) {
		return PayrollSummary{}, fieldError("month", "must be YYYY-MM")
	}
	st := s.store.Current()
	summary := PayrollSummary{
		Month:        month,
		Payslips:     make([]engine.Payslip, 0, len(st.Staff)),
		PendingTotal: engine.PendingPayrollTotal(st.Staff, month, st.Payouts),
	}
	for _, m := range st.Staff {
		summary.Payslips = append(summary.Payslips, engine.ComputeMonthPayroll(m, month, st.Payouts))
	}
	return summary, nil
}

// Payslip computes the payroll of one member for a YYYY-MM month
func (s *StaffService) Payslip(id, month string) (engine.Payslip, error) {
	if !utils.IsYearMonth(month) {
		return engine.Payslip{}, fieldError("month", "must be YYYY-MM")
	}
	st := s.store.Current()
	m, ok := st.StaffMember(id)
	if !ok {
		return engine.Payslip{}, apperror.NewNotFoundError("Staff member")
	}
	return engine.ComputeMonthPayroll(m, month, st.Payouts), nil
}

// ConfirmPayout pays the computed net salary of a month. A negative net
// (advance above salary) is paid as zero.
func (s *StaffService) ConfirmPayout(ctx context.Context, id, month string) (entity.Payout, error) {
	if !utils.IsYearMonth(month) {
		return entity.Payout{}, fieldError("month", "must be YYYY-MM")
	}
	var payout entity.Payout
	var slip engine.Payslip
	_, err := s.store.Update(func(st *engine.State) (*engine.State, error) {
		m, ok := st.StaffMember(id)
		if !ok {
			return st, errNotFound("Staff member")
		}
		slip = engine.ComputeMonthPayroll(m, month, st.Payouts)
		n, p, err := s.engine.ConfirmPayout(st, id, max(0, slip.Total), month)
		if err != nil {
			return st, ruleError(err)
		}
		payout = p
		return n, nil
	})
	if err != nil {
		return entity.Payout{}, err
	}

	s.metrics.Payouts.Inc()
	s.metrics.PayoutAmount.Add(payout.Amount)
	s.events.Emit(events.TopicPayrollPayout, payout)
	s.notifier.PayoutConfirmed(payout, slip)
	return payout, nil
}

// Payouts returns the payout history of one member, most recent first
func (s *StaffService) Payouts(id string) []entity.Payout {
	out := engine.PayoutsFor(s.store.Current().Payouts, id)
	if out == nil {
		return []entity.Payout{}
	}
	return out
}

// ExportPayroll renders the month's payroll as an XLSX workbook
func (s *StaffService) ExportPayroll(month string) ([]byte, error) {
	summary, err := s.Payroll(month)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer f.Close()
	sheet := "Payroll " + month
	index, err := f.NewSheet(sheet)
	if err != nil {
		return nil, err
	}
	f.DeleteSheet("Sheet1")
	f.SetActiveSheet(index)

	header := []string{"Staff ID", "Name", "Base Salary", "Present", "Absent", "Half Days", "Paid Leave", "Leave Deduction", "Advance", "Net Pay", "Status"}
	for c, v := range header {
		cell, _ := excelize.CoordinatesToCellName(c+1, 1)
		_ = f.SetCellValue(sheet, cell, v)
	}
	for r, p := range summary.Payslips {
		status := "PENDING"
		if p.IsPaid {
			status = "PAID"
		}
		values := []any{
			p.StaffID,
			p.StaffName,
			p.BaseSalary,
			p.PresentCount,
			p.Absences,
			p.HalfDays,
			p.PaidLeaves,
			p.LeaveDeduction,
			p.AdvanceTaken,
			p.Total,
			status,
		}
		for c, v := range values {
			cell, _ := excelize.CoordinatesToCellName(c+1, r+2)
			_ = f.SetCellValue(sheet, cell, v)
		}
	}
	totalRow := len(summary.Payslips) + 3
	label, _ := excelize.CoordinatesToCellName(9, totalRow)
	value, _ := excelize.CoordinatesToCellName(10, totalRow)
	_ = f.SetCellValue(sheet, label, "Pending")
	_ = f.SetCellValue(sheet, value, summary.PendingTotal)

	_ = f.SetColWidth(sheet, "A", "A", 12)
	_ = f.SetColWidth(sheet, "B", "B", 24)
	_ = f.SetColWidth(sheet, "C", "K", 14)

	style, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E5E7EB"}, Pattern: 1},
	})
	_ = f.SetCellStyle(sheet, "A1", "K1", style)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
