package service

import (
	"log"

	"github.com/sangkips/dinedash-api/internal/application/engine"
	"github.com/sangkips/dinedash-api/internal/domain/entity"
	"github.com/sangkips/dinedash-api/pkg/email"
)

// Mailer sends the operational mails
type Mailer interface {
	Enabled() bool
	SendFolioSettled(to string, data email.FolioMail) error
	SendPayoutSlip(to string, data email.PayoutMail) error
	SendLowStockAlert(to string, data email.LowStockMail) error
}

// NotificationService mails the property inbox after settlements, payouts
// and low stock events. Sending happens off the request path.
type NotificationService struct {
	mailer   Mailer
	store    *StateStore
	dispatch func(func())
}

// NewNotificationService creates a new notification service
func NewNotificationService(mailer Mailer, store *StateStore) *NotificationService {
	return &NotificationService{
		mailer:   mailer,
		store:    store,
		dispatch: func(f func()) { go f() },
	}
}

func (n *NotificationService) recipient() (to, hotel string, ok bool) {
	if n == nil || n.mailer == nil || !n.mailer.Enabled() {
		return "", "", false
	}
	auth := n.store.Current().Auth
	if auth.HotelEmail == "" {
		return "", "", false
	}
	return auth.HotelEmail, auth.HotelName, true
}

// FolioSettled mails the checkout summary of a settled booking
func (n *NotificationService) FolioSettled(f engine.Folio) {
	to, hotel, ok := n.recipient()
	if !ok {
		return
	}
	checkOut := ""
	if f.Booking.CheckOut != nil {
		checkOut = f.Booking.CheckOut.Format("2006-01-02 15:04")
	}
	data := email.FolioMail{
		HotelName:  hotel,
		BookingID:  f.Booking.ID,
		GuestName:  f.Booking.GuestName,
		RoomNumber: f.Room.Number,
		CheckIn:    f.Booking.CheckIn.Format("2006-01-02 15:04"),
		CheckOut:   checkOut,
		Lines: []email.FolioLine{
			{Label: "Room charges", Amount: f.RoomTotal},
			{Label: "Food & beverage", Amount: f.FoodTotal},
		},
		Total:         f.StoredTotal,
		PaymentMethod: string(f.Booking.PaymentMethod),
	}
	n.dispatch(func() {
		if err := n.mailer.SendFolioSettled(to, data); err != nil {
			log.Printf("notify: folio %s: %v", data.BookingID, err)
		}
	})
}

// PayoutConfirmed mails a payout slip
func (n *NotificationService) PayoutConfirmed(p entity.Payout, slip engine.Payslip) {
	to, hotel, ok := n.recipient()
	if !ok {
		return
	}
	data := email.PayoutMail{
		HotelName:      hotel,
		StaffName:      slip.StaffName,
		Month:          p.Month,
		BaseSalary:     slip.BaseSalary,
		LeaveDeduction: slip.LeaveDeduction,
		AdvanceTaken:   slip.AdvanceTaken,
		Amount:         p.Amount,
		PayoutID:       p.ID,
	}
	n.dispatch(func() {
		if err := n.mailer.SendPayoutSlip(to, data); err != nil {
			log.Printf("notify: payout %s: %v", p.ID, err)
		}
	})
}

// LowStock mails the items that just dropped to their minimum level
func (n *NotificationService) LowStock(items []entity.InventoryItem) {
	if len(items) == 0 {
		return
	}
	to, hotel, ok := n.recipient()
	if !ok {
		return
	}
	data := email.LowStockMail{HotelName: hotel}
	for _, it := range items {
		data.Items = append(data.Items, email.LowStockLine{Name: it.Name, Stock: it.Stock, Unit: it.Unit, MinLevel: it.MinLevel})
	}
	n.dispatch(func() {
		if err := n.mailer.SendLowStockAlert(to, data); err != nil {
			log.Printf("notify: low stock: %v", err)
		}
	})
}
