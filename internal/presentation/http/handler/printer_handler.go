package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/dinedash-api/internal/application/service"
	"github.com/sangkips/dinedash-api/internal/presentation/http/dto/response"
)

// PrinterHandler handles printer-related HTTP requests.
type PrinterHandler struct {
	printerService *service.PrinterService
}

// NewPrinterHandler creates a new printer handler.
func NewPrinterHandler(printerService *service.PrinterService) *PrinterHandler {
	return &PrinterHandler{printerService: printerService}
}

// GetStatus returns the current printer connection status.
func (h *PrinterHandler) GetStatus(c *gin.Context) {
	response.OK(c, "Printer status retrieved", h.printerService.Status())
}

// TestPrint sends a test page to the printer.
func (h *PrinterHandler) TestPrint(c *gin.Context) {
	job, err := h.printerService.TestPrint(c.Request.Context())
	h.reply(c, job, err, "Test page sent to printer")
}

// PrintOrder prints the customer receipt of an order.
func (h *PrinterHandler) PrintOrder(c *gin.Context) {
	job, err := h.printerService.PrintOrder(c.Request.Context(), c.Param("id"))
	h.reply(c, job, err, "Order receipt printed successfully")
}

// PrintKOT prints the kitchen order ticket of an order.
func (h *PrinterHandler) PrintKOT(c *gin.Context) {
	job, err := h.printerService.PrintKOT(c.Request.Context(), c.Param("id"))
	h.reply(c, job, err, "Kitchen ticket printed successfully")
}

// PrintFolio prints the folio of a booking.
func (h *PrinterHandler) PrintFolio(c *gin.Context) {
	job, err := h.printerService.PrintFolio(c.Request.Context(), c.Param("id"))
	h.reply(c, job, err, "Folio printed successfully")
}

// reply returns the rendered document even when the printer failed, so the
// terminal can still show or reprint it.
func (h *PrinterHandler) reply(c *gin.Context, job *service.PrintJob, err error, message string) {
	if err != nil {
		if job != nil {
			response.OK(c, "Receipt generated but printing failed", gin.H{
				"job":     job,
				"warning": err.Error(),
			})
			return
		}
		response.Error(c, err)
		return
	}

	if !job.Printed {
		message = "Receipt generated (printer disabled)"
	}
	response.OK(c, message, gin.H{"job": job})
}
