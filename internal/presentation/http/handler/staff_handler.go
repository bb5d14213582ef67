package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/dinedash-api/internal/application/service"
	"github.com/sangkips/dinedash-api/internal/domain/enum"
	"github.com/sangkips/dinedash-api/internal/presentation/http/dto/request"
	"github.com/sangkips/dinedash-api/internal/presentation/http/dto/response"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// StaffHandler handles the staff directory and payroll
type StaffHandler struct {
	staffService *service.StaffService
	now          func() time.Time
}

// NewStaffHandler creates a new staff handler
func NewStaffHandler(staffService *service.StaffService) *StaffHandler {
	return &StaffHandler{staffService: staffService, now: time.Now}
}

// month reads ?month=YYYY-MM, defaulting to the current month
func (h *StaffHandler) month(c *gin.Context) string {
	return c.DefaultQuery("month", h.now().Format("2006-01"))
}

// List returns staff, optionally filtered by ?search=
func (h *StaffHandler) List(c *gin.Context) {
	response.OK(c, "Staff retrieved successfully", h.staffService.List(c.Query("search")))
}

// Get handles getting a staff member by ID
func (h *StaffHandler) Get(c *gin.Context) {
	member, err := h.staffService.Get(c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Staff member retrieved successfully", member)
}

// Create hires a staff member
func (h *StaffHandler) Create(c *gin.Context) {
	var req request.StaffRequest
	if !bindJSON(c, &req) {
		return
	}

	member, err := h.staffService.Create(c.Request.Context(), staffInput(req))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Staff member created successfully", member)
}

// Update edits directory fields of a staff member
func (h *StaffHandler) Update(c *gin.Context) {
	var req request.StaffRequest
	if !bindJSON(c, &req) {
		return
	}

	member, err := h.staffService.Update(c.Request.Context(), c.Param("id"), staffInput(req))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Staff member updated successfully", member)
}

// Delete removes a staff member
func (h *StaffHandler) Delete(c *gin.Context) {
	if err := h.staffService.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Staff member deleted successfully", nil)
}

// MarkAttendance records one day of attendance
func (h *StaffHandler) MarkAttendance(c *gin.Context) {
	var req request.AttendanceRequest
	if !bindJSON(c, &req) {
		return
	}

	status, ok := enum.ParseAttendanceStatus(upper(req.Status))
	if !ok {
		response.BadRequest(c, "Invalid attendance status")
		return
	}

	member, err := h.staffService.MarkAttendance(c.Request.Context(), c.Param("id"), req.Date, status)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Attendance recorded successfully", member)
}

// IssueAdvance adds a cash advance to a staff member's balance
func (h *StaffHandler) IssueAdvance(c *gin.Context) {
	var req request.AdvanceRequest
	if !bindJSON(c, &req) {
		return
	}

	member, err := h.staffService.IssueAdvance(c.Request.Context(), c.Param("id"), req.Amount)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Advance issued successfully", member)
}

// Payroll returns every payslip of ?month= with the pending total
func (h *StaffHandler) Payroll(c *gin.Context) {
	summary, err := h.staffService.Payroll(h.month(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Payroll retrieved successfully", summary)
}

// Payslip returns one staff member's payslip for ?month=
func (h *StaffHandler) Payslip(c *gin.Context) {
	slip, err := h.staffService.Payslip(c.Param("id"), h.month(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Payslip retrieved successfully", slip)
}

// ConfirmPayout pays out a staff month
func (h *StaffHandler) ConfirmPayout(c *gin.Context) {
	var req request.PayoutRequest
	if !bindJSON(c, &req) {
		return
	}

	payout, err := h.staffService.ConfirmPayout(c.Request.Context(), c.Param("id"), req.Month)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Payout confirmed successfully", payout)
}

// Payouts returns a staff member's payout history
func (h *StaffHandler) Payouts(c *gin.Context) {
	response.OK(c, "Payouts retrieved successfully", h.staffService.Payouts(c.Param("id")))
}

// ExportPayroll downloads the payroll of ?month= as a spreadsheet
func (h *StaffHandler) ExportPayroll(c *gin.Context) {
	month := h.month(c)
	data, err := h.staffService.ExportPayroll(month)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="payroll-%s.xlsx"`, month))
	c.Data(http.StatusOK, xlsxContentType, data)
}

func staffInput(req request.StaffRequest) service.StaffInput {
	return service.StaffInput{
		Name:         req.Name,
		Role:         enum.StaffRole(upper(req.Role)),
		Phone:        req.Phone,
		Status:       enum.StaffStatus(upper(req.Status)),
		Salary:       req.Salary,
		PaidHolidays: req.PaidHolidays,
	}
}
