package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/sangkips/dinedash-api/internal/application/engine"
	"github.com/sangkips/dinedash-api/internal/domain/entity"
	"github.com/sangkips/dinedash-api/internal/domain/enum"
	"github.com/sangkips/dinedash-api/pkg/apperror"
	"github.com/sangkips/dinedash-api/pkg/printer"
)

// PrinterService formats bills, KOTs and folios and sends them to the
// thermal printer.
type PrinterService struct {
	printer     printer.Printer
	printerType string
	width       int
	store       *StateStore
	hotel       *HotelService
	loc         *time.Location
}

// NewPrinterService creates a new printer service.
func NewPrinterService(
	p printer.Printer,
	printerType string,
	width int,
	store *StateStore,
	hotel *HotelService,
	loc *time.Location,
) *PrinterService {
	if width <= 0 {
		width = printer.Width58mm
	}
	if loc == nil {
		loc = time.Local
	}
	return &PrinterService{
		printer:     p,
		printerType: printerType,
		width:       width,
		store:       store,
		hotel:       hotel,
		loc:         loc,
	}
}

// PrinterStatus returns the current printer status information.
type PrinterStatus struct {
	Configured bool   `json:"configured"`
	Connected  bool   `json:"connected"`
	Type       string `json:"type"`
	Width      int    `json:"width"`
}

// PrintJob is a rendered document. Preview is the text the paper shows.
type PrintJob struct {
	Receipt *entity.Receipt `json:"receipt"`
	Preview string          `json:"preview"`
	Printed bool            `json:"printed"`
}

func (s *PrinterService) configured() bool {
	return s.printerType != printer.TypeNone && s.printerType != ""
}

func (s *PrinterService) Status() *PrinterStatus {
	return &PrinterStatus{
		Configured: s.configured(),
		Connected:  s.printer.IsConnected(),
		Type:       s.printerType,
		Width:      s.width,
	}
}

// TestPrint sends a test page to the printer.
func (s *PrinterService) TestPrint(ctx context.Context) (*PrintJob, error) {
	r := &entity.Receipt{
		Header:    s.header(),
		Title:     "PRINTER TEST",
		Reference: "TEST-001",
		Date:      time.Now().In(s.loc).Format("02 Jan 2006 15:04"),
		Items: []entity.ReceiptItem{
			{Name: "Masala Chai", Quantity: 2, UnitPrice: 30, Total: 60},
			{Name: "Veg Sandwich", Quantity: 1, UnitPrice: 120, Total: 120},
		},
		Total:  180,
		Footer: "Printer OK",
	}
	return s.send(ctx, r)
}

// PrintOrder prints the customer bill of an order.
func (s *PrinterService) PrintOrder(ctx context.Context, orderID string) (*PrintJob, error) {
	st := s.store.Current()
	o, ok := st.Order(orderID)
	if !ok {
		return nil, apperror.NewNotFoundError("Order")
	}
	r := &entity.Receipt{
		Header:      s.header(),
		Title:       "BILL",
		Reference:   o.ID,
		Date:        o.Timestamp.In(s.loc).Format("02 Jan 2006 15:04"),
		Location:    s.location(st, o),
		Customer:    o.CustomerName,
		PaymentType: string(o.PaymentMethod),
		Items:       receiptItems(o.Items),
		Totals: []entity.ReceiptLine{
			{Label: "Subtotal", Amount: o.Subtotal},
			{Label: "GST", Amount: o.Tax},
		},
		Total:  o.Total,
		Footer: "Thank you, visit again!",
	}
	if o.ServiceCharge > 0 {
		r.Totals = append(r.Totals, entity.ReceiptLine{Label: "Service charge", Amount: o.ServiceCharge})
	}
	if o.Discount > 0 {
		r.Totals = append(r.Totals, entity.ReceiptLine{Label: "Discount", Amount: -o.Discount})
	}
	return s.send(ctx, r)
}

// PrintKOT prints the kitchen copy of an order: items and notes only.
func (s *PrinterService) PrintKOT(ctx context.Context, orderID string) (*PrintJob, error) {
	st := s.store.Current()
	o, ok := st.Order(orderID)
	if !ok {
		return nil, apperror.NewNotFoundError("Order")
	}
	r := &entity.Receipt{
		Header:      entity.ReceiptHeader{StoreName: "KITCHEN"},
		Title:       "KOT",
		Reference:   o.ID,
		Date:        o.Timestamp.In(s.loc).Format("15:04"),
		Location:    s.location(st, o),
		Items:       receiptItems(o.Items),
		KitchenCopy: true,
	}
	return s.send(ctx, r)
}

// PrintFolio prints the guest folio of a booking.
func (s *PrinterService) PrintFolio(ctx context.Context, bookingID string) (*PrintJob, error) {
	f, err := s.hotel.Folio(bookingID)
	if err != nil {
		return nil, err
	}
	stay := fmt.Sprintf("Room charges (%d night", f.StayDuration)
	if f.StayDuration != 1 {
		stay += "s"
	}
	stay += ")"

	r := &entity.Receipt{
		Header:    s.header(),
		Title:     "GUEST FOLIO",
		Reference: f.Booking.ID,
		Date:      f.Booking.CheckIn.In(s.loc).Format("02 Jan 2006"),
		Location:  "Room " + f.Room.Number,
		Customer:  f.Booking.GuestName,
		Items:     []entity.ReceiptItem{{Name: stay, Quantity: 1, UnitPrice: f.RoomTotal, Total: f.RoomTotal}},
		Totals: []entity.ReceiptLine{
			{Label: "Net", Amount: f.NetTotal},
			{Label: "CGST", Amount: f.CGST},
			{Label: "SGST", Amount: f.SGST},
		},
		Total:  f.GrandTotal,
		Footer: "We hope you enjoyed your stay",
	}
	if f.Booking.Status == enum.BookingStatusCompleted {
		r.PaymentType = string(f.Booking.PaymentMethod)
	}
	for _, o := range f.Orders {
		r.Items = append(r.Items, receiptItems(o.Items)...)
	}
	return s.send(ctx, r)
}

func (s *PrinterService) send(ctx context.Context, r *entity.Receipt) (*PrintJob, error) {
	doc := FormatReceipt(r, s.width)
	job := &PrintJob{Receipt: r, Preview: doc.Plain()}
	if !s.configured() {
		return job, nil
	}
	if err := s.printer.Print(ctx, doc.Bytes()); err != nil {
		log.Printf("Printer error (%s %s): %v", r.Title, r.Reference, err)
		return job, fmt.Errorf("failed to print %s: %w", r.Title, err)
	}
	job.Printed = true
	return job, nil
}

func (s *PrinterService) header() entity.ReceiptHeader {
	a := s.store.Current().Auth
	name := a.HotelName
	if name == "" {
		name = "DineDash"
	}
	return entity.ReceiptHeader{StoreName: name, Address: a.Address, TaxID: a.GSTNumber}
}

func (s *PrinterService) location(st *engine.State, o entity.Order) string {
	if o.TableID != "" {
		if t, ok := st.Table(o.TableID); ok {
			return fmt.Sprintf("Table %d", t.Number)
		}
		return "Table " + o.TableID
	}
	if o.RoomID != "" {
		if r, ok := st.Room(o.RoomID); ok {
			return "Room " + r.Number
		}
		return "Room " + o.RoomID
	}
	return string(o.Type)
}

func receiptItems(items []entity.LineItem) []entity.ReceiptItem {
	out := make([]entity.ReceiptItem, 0, len(items))
	for _, li := range items {
		out = append(out, entity.ReceiptItem{
			Name:      li.Name,
			Quantity:  li.Quantity,
			UnitPrice: li.Price,
			Total:     li.LineTotal(),
			Note:      li.Note,
		})
	}
	return out
}

// FormatReceipt lays a receipt out as an ESC/POS document.
func FormatReceipt(r *entity.Receipt, width int) *printer.Document {
	doc := printer.NewDocument(width)

	doc.Title(r.Header.StoreName)
	doc.SetAlign(printer.AlignCenter)
	if r.Header.Address != "" {
		doc.Text(r.Header.Address)
	}
	if r.Header.Phone != "" {
		doc.Text(r.Header.Phone)
	}
	if r.Header.TaxID != "" {
		doc.TextF("GSTIN: %s", r.Header.TaxID)
	}
	if r.Title != "" {
		doc.SetBold(true).Text(r.Title).SetBold(false)
	}
	doc.SetAlign(printer.AlignLeft).
		Separator('-')

	doc.KeyValue("No:", r.Reference).
		KeyValue("Date:", r.Date)
	if r.Location != "" {
		doc.KeyValue("At:", r.Location)
	}
	if r.Customer != "" && !r.KitchenCopy {
		doc.KeyValue("Guest:", r.Customer)
	}
	if r.PaymentType != "" && !r.KitchenCopy {
		doc.KeyValue("Payment:", r.PaymentType)
	}
	doc.Separator('-')

	for _, item := range r.Items {
		if r.KitchenCopy {
			doc.SetBold(true).ItemLine(item.Quantity, item.Name, "").SetBold(false)
			doc.Note(item.Note)
			continue
		}
		doc.ItemLine(item.Quantity, item.Name, fmt.Sprintf("%.2f", item.Total))
		if item.Quantity > 1 {
			doc.TextF("  @ %.2f each", item.UnitPrice)
		}
	}

	if !r.KitchenCopy {
		doc.Separator('-')
		for _, t := range r.Totals {
			doc.KeyValue(t.Label+":", fmt.Sprintf("%.2f", t.Amount))
		}
		doc.SetBold(true).
			KeyValue("TOTAL:", fmt.Sprintf("%.2f", r.Total)).
			SetBold(false)
	}
	doc.Separator('-')

	if r.Footer != "" {
		doc.SetAlign(printer.AlignCenter).
			Text(r.Footer).
			SetAlign(printer.AlignLeft)
	}
	doc.FeedLines(3).
		PartialCut()
	return doc
}
