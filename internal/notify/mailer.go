package notify

import (
	"context"
	"fmt"

	"github.com/brightpaw/vetcare-platform/internal/booking"
	"github.com/brightpaw/vetcare-platform/internal/observability/metrics"
	"github.com/brightpaw/vetcare-platform/pkg/logging"
)

// Mailer renders and sends the booking notification pair: a confirmation to
// the customer and an alert to the clinic inbox.
type Mailer struct {
	sender        EmailSender
	businessEmail string
	businessName  string
	metrics       *metrics.NotifyMetrics
	logger        *logging.Logger
}

// NewMailer creates a Mailer. The sender must not be nil; m may be nil.
func NewMailer(sender EmailSender, businessEmail, businessName string, m *metrics.NotifyMetrics, logger *logging.Logger) *Mailer {
	if sender == nil {
		panic("notify: sender is required")
	}
	if logger == nil {
		logger = logging.Default()
	}
	if businessName == "" {
		businessName = "BrightPaw Veterinary"
	}
	return &Mailer{
		sender:        sender,
		businessEmail: businessEmail,
		businessName:  businessName,
		metrics:       m,
		logger:        logger,
	}
}

// SendBoardingEmails sends the customer confirmation and, when a business
// inbox is configured, the internal notification for a boarding booking.
// The customer email is sent first; a business-side failure is logged but
// does not fail the call once the customer has been notified.
func (m *Mailer) SendBoardingEmails(ctx context.Context, b *booking.BoardingBooking) error {
	customer := EmailMessage{
		To:      b.OwnerEmail,
		ToName:  b.OwnerName,
		Subject: fmt.Sprintf("Boarding confirmed for %s", b.PetName),
		Body:    boardingCustomerText(b, m.businessName),
		HTML:    boardingCustomerHTML(b, m.businessName),
	}
	if err := m.sender.Send(ctx, customer); err != nil {
		m.metrics.ObserveEmail("customer", "failed")
		return fmt.Errorf("notify: boarding customer email: %w", err)
	}
	m.metrics.ObserveEmail("customer", "sent")

	if m.businessEmail == "" {
		return nil
	}
	business := EmailMessage{
		To:      m.businessEmail,
		ToName:  m.businessName,
		Subject: fmt.Sprintf("New boarding booking: %s (%s)", b.PetName, b.OwnerName),
		Body:    boardingBusinessText(b),
	}
	if err := m.sender.Send(ctx, business); err != nil {
		m.metrics.ObserveEmail("business", "failed")
		m.logger.Error("boarding business email failed", "error", err, "booking_id", b.ID)
		return nil
	}
	m.metrics.ObserveEmail("business", "sent")
	return nil
}

// SendTransportEmails sends the customer confirmation and the internal
// notification for a pet transportation booking.
func (m *Mailer) SendTransportEmails(ctx context.Context, t *booking.TransportBooking) error {
	customer := EmailMessage{
		To:      t.OwnerEmail,
		ToName:  t.OwnerName,
		Subject: fmt.Sprintf("Transportation confirmed for %s", t.PetName),
		Body:    transportCustomerText(t, m.businessName),
		HTML:    transportCustomerHTML(t, m.businessName),
	}
	if err := m.sender.Send(ctx, customer); err != nil {
		m.metrics.ObserveEmail("customer", "failed")
		return fmt.Errorf("notify: transport customer email: %w", err)
	}
	m.metrics.ObserveEmail("customer", "sent")

	if m.businessEmail == "" {
		return nil
	}
	business := EmailMessage{
		To:      m.businessEmail,
		ToName:  m.businessName,
		Subject: fmt.Sprintf("New transportation booking: %s (%s)", t.PetName, t.OwnerName),
		Body:    transportBusinessText(t),
	}
	if err := m.sender.Send(ctx, business); err != nil {
		m.metrics.ObserveEmail("business", "failed")
		m.logger.Error("transport business email failed", "error", err, "booking_id", t.ID)
		return nil
	}
	m.metrics.ObserveEmail("business", "sent")
	return nil
}

func boardingCustomerText(b *booking.BoardingBooking, businessName string) string {
	return fmt.Sprintf(
		"Hi %s,\n\nYour boarding booking for %s is confirmed.\n\nCheck-in: %s\nCheck-out: %s\n\nIf you need to make changes, reply to this email or call us.\n\n%s",
		b.OwnerName, b.PetName, b.StartDate, b.EndDate, businessName,
	)
}

func boardingCustomerHTML(b *booking.BoardingBooking, businessName string) string {
	return fmt.Sprintf(
		`<p>Hi %s,</p><p>Your boarding booking for <strong>%s</strong> is confirmed.</p><ul><li>Check-in: %s</li><li>Check-out: %s</li></ul><p>If you need to make changes, reply to this email or call us.</p><p>%s</p>`,
		b.OwnerName, b.PetName, b.StartDate, b.EndDate, businessName,
	)
}

func boardingBusinessText(b *booking.BoardingBooking) string {
	return fmt.Sprintf(
		"New boarding booking received.\n\nOwner: %s\nEmail: %s\nPhone: %s\nPet: %s (%s)\nCheck-in: %s\nCheck-out: %s\nNotes: %s\nBooking ID: %s",
		b.OwnerName, b.OwnerEmail, b.OwnerPhone, b.PetName, b.PetType, b.StartDate, b.EndDate, b.Notes, b.ID,
	)
}

func transportCustomerText(t *booking.TransportBooking, businessName string) string {
	return fmt.Sprintf(
		"Hi %s,\n\nYour pet transportation booking for %s is confirmed.\n\nDate: %s at %s\nPickup: %s\nDrop-off: %s\n\nIf you need to make changes, reply to this email or call us.\n\n%s",
		t.OwnerName, t.PetName, t.Date, t.Time, t.Pickup, t.Dropoff, businessName,
	)
}

func transportCustomerHTML(t *booking.TransportBooking, businessName string) string {
	return fmt.Sprintf(
		`<p>Hi %s,</p><p>Your pet transportation booking for <strong>%s</strong> is confirmed.</p><ul><li>Date: %s at %s</li><li>Pickup: %s</li><li>Drop-off: %s</li></ul><p>If you need to make changes, reply to this email or call us.</p><p>%s</p>`,
		t.OwnerName, t.PetName, t.Date, t.Time, t.Pickup, t.Dropoff, businessName,
	)
}

func transportBusinessText(t *booking.TransportBooking) string {
	return fmt.Sprintf(
		"New transportation booking received.\n\nOwner: %s\nEmail: %s\nPhone: %s\nPet: %s\nDate: %s at %s\nPickup: %s\nDrop-off: %s\nNotes: %s\nBooking ID: %s",
		t.OwnerName, t.OwnerEmail, t.OwnerPhone, t.PetName, t.Date, t.Time, t.Pickup, t.Dropoff, t.Notes, t.ID,
	)
}
