package email

import (
	"bytes"
	"fmt"
	"html/template"
	"net/smtp"
	"strings"
)

// EmailConfig holds SMTP configuration
type EmailConfig struct {
	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	FromName     string
	FromEmail    string
}

type sendFunc func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

// EmailService renders and sends operational mails to the property inbox
type EmailService struct {
	config EmailConfig
	send   sendFunc
	tmpl   *template.Template
}

// NewEmailService creates a new email service
func NewEmailService(config EmailConfig) *EmailService {
	tmpl := template.Must(template.New("layout").Funcs(template.FuncMap{
		"money": func(v float64) string { return fmt.Sprintf("%.2f", v) },
	}).Parse(layoutTemplate))
	template.Must(tmpl.New("folio").Parse(folioTemplate))
	template.Must(tmpl.New("payout").Parse(payoutTemplate))
	template.Must(tmpl.New("low_stock").Parse(lowStockTemplate))

	return &EmailService{config: config, send: smtp.SendMail, tmpl: tmpl}
}

// Enabled reports whether an SMTP host is configured.
func (s *EmailService) Enabled() bool {
	return s.config.SMTPHost != ""
}

// FolioLine is one charge on a settled folio
type FolioLine struct {
	Label  string
	Amount float64
}

// FolioMail is the data for a checkout summary
type FolioMail struct {
	HotelName     string
	BookingID     string
	GuestName     string
	RoomNumber    string
	CheckIn       string
	CheckOut      string
	Lines         []FolioLine
	Total         float64
	PaymentMethod string
}

// PayoutMail is the data for a salary payout slip
type PayoutMail struct {
	HotelName      string
	StaffName      string
	Month          string
	BaseSalary     float64
	LeaveDeduction float64
	AdvanceTaken   float64
	Amount         float64
	PayoutID       string
}

// LowStockMail lists items at or below their minimum level
type LowStockMail struct {
	HotelName string
	Items     []LowStockLine
}

type LowStockLine struct {
	Name     string
	Stock    float64
	Unit     string
	MinLevel float64
}

// SendFolioSettled mails the checkout summary of a settled booking
func (s *EmailService) SendFolioSettled(to string, data FolioMail) error {
	subject := fmt.Sprintf("Checkout %s - %s", data.BookingID, data.GuestName)
	return s.render(to, subject, "folio", data.HotelName, data)
}

// SendPayoutSlip mails a salary payout confirmation
func (s *EmailService) SendPayoutSlip(to string, data PayoutMail) error {
	subject := fmt.Sprintf("Salary paid - %s (%s)", data.StaffName, data.Month)
	return s.render(to, subject, "payout", data.HotelName, data)
}

// SendLowStockAlert mails the current low stock list
func (s *EmailService) SendLowStockAlert(to string, data LowStockMail) error {
	subject := fmt.Sprintf("Low stock: %d item(s)", len(data.Items))
	return s.render(to, subject, "low_stock", data.HotelName, data)
}

func (s *EmailService) render(to, subject, name, hotel string, data interface{}) error {
	if strings.TrimSpace(to) == "" {
		return fmt.Errorf("email: no recipient for %q", subject)
	}
	body, err := s.renderBody(name, hotel, data)
	if err != nil {
		return fmt.Errorf("failed to render email template: %w", err)
	}
	return s.sendEmail(to, s.buildHTMLEmail(to, subject, body))
}

func (s *EmailService) renderBody(name, hotel string, data interface{}) (string, error) {
	if hotel == "" {
		hotel = "DineDash"
	}
	var content bytes.Buffer
	if err := s.tmpl.ExecuteTemplate(&content, name, data); err != nil {
		return "", err
	}
	var page bytes.Buffer
	err := s.tmpl.ExecuteTemplate(&page, "layout", struct {
		Hotel   string
		Content template.HTML
	}{Hotel: hotel, Content: template.HTML(content.String())})
	if err != nil {
		return "", err
	}
	return page.String(), nil
}

// sendEmail sends an email using SMTP
func (s *EmailService) sendEmail(to string, message []byte) error {
	if !s.Enabled() {
		return fmt.Errorf("email: smtp host is not configured")
	}
	addr := fmt.Sprintf("%s:%d", s.config.SMTPHost, s.config.SMTPPort)

	var auth smtp.Auth
	if s.config.SMTPUsername != "" {
		auth = smtp.PlainAuth("", s.config.SMTPUsername, s.config.SMTPPassword, s.config.SMTPHost)
	}

	if err := s.send(addr, auth, s.config.FromEmail, []string{to}, message); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

// buildHTMLEmail builds an HTML email message
func (s *EmailService) buildHTMLEmail(to, subject, htmlBody string) []byte {
	headers := fmt.Sprintf(
		"From: %s <%s>\r\n"+
			"To: %s\r\n"+
			"Subject: %s\r\n"+
			"MIME-Version: 1.0\r\n"+
			"Content-Type: text/html; charset=\"UTF-8\"\r\n"+
			"\r\n",
		s.config.FromName,
		s.config.FromEmail,
		to,
		subject,
	)

	return []byte(headers + htmlBody)
}

const layoutTemplate = `<!DOCTYPE html>
<html lang="en">
<head><meta charset="UTF-8"><title>{{.Hotel}}</title></head>
<body style="margin:0;padding:24px;font-family:'Segoe UI',Tahoma,sans-serif;background-color:#f4f7fa;">
  <table role="presentation" style="max-width:600px;margin:0 auto;background:#ffffff;border-radius:12px;border-collapse:collapse;">
    <tr><td style="background:#1a1a2e;padding:24px;text-align:center;">
      <h1 style="color:#ffffff;margin:0;font-size:22px;">{{.Hotel}}</h1>
    </td></tr>
    <tr><td style="padding:24px;color:#4a5568;font-size:15px;line-height:1.6;">{{.Content}}</td></tr>
  </table>
</body>
</html>`

const folioTemplate = `<h2 style="color:#1a1a2e;margin:0 0 16px 0;">Checkout summary</h2>
<p><strong>{{.GuestName}}</strong>, room {{.RoomNumber}} ({{.BookingID}})<br>{{.CheckIn}} to {{.CheckOut}}</p>
<table style="width:100%;border-collapse:collapse;">
{{range .Lines}}<tr><td>{{.Label}}</td><td style="text-align:right;">{{money .Amount}}</td></tr>
{{end}}<tr><td><strong>Total</strong></td><td style="text-align:right;"><strong>{{money .Total}}</strong></td></tr>
</table>
<p>Settled by {{.PaymentMethod}}.</p>`

const payoutTemplate = `<h2 style="color:#1a1a2e;margin:0 0 16px 0;">Salary payout</h2>
<p>{{.StaffName}} was paid for {{.Month}} ({{.PayoutID}}).</p>
<table style="width:100%;border-collapse:collapse;">
<tr><td>Base salary</td><td style="text-align:right;">{{money .BaseSalary}}</td></tr>
<tr><td>Leave deduction</td><td style="text-align:right;">-{{money .LeaveDeduction}}</td></tr>
<tr><td>Advance recovered</td><td style="text-align:right;">-{{money .AdvanceTaken}}</td></tr>
<tr><td><strong>Paid</strong></td><td style="text-align:right;"><strong>{{money .Amount}}</strong></td></tr>
</table>`

const lowStockTemplate = `<h2 style="color:#1a1a2e;margin:0 0 16px 0;">Low stock</h2>
<ul>{{range .Items}}<li>{{.Name}}: {{.Stock}} {{.Unit}} (min {{.MinLevel}})</li>{{end}}</ul>`
