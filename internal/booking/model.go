package booking

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/brightpaw/vetcare-platform/internal/schedule"
)

// ErrInvalidBooking is returned when a booking request is malformed.
var ErrInvalidBooking = errors.New("booking: invalid booking request")

// ErrSlotTaken is returned when the targeted slot is already reserved.
var ErrSlotTaken = errors.New("booking: slot is already reserved")

// BoardingBooking is a pet-boarding request document. Its creation fires the
// booking-notifier trigger.
type BoardingBooking struct {
	ID          string `dynamodbav:"id" json:"id"`
	OwnerName   string `dynamodbav:"ownerName" json:"owner_name"`
	OwnerEmail  string `dynamodbav:"ownerEmail" json:"owner_email"`
	OwnerPhone  string `dynamodbav:"ownerPhone" json:"owner_phone"`
	PetName     string `dynamodbav:"petName" json:"pet_name"`
	PetType     string `dynamodbav:"petType" json:"pet_type"`
	StartDate   string `dynamodbav:"startDate" json:"start_date"`
	EndDate     string `dynamodbav:"endDate" json:"end_date"`
	Notes       string `dynamodbav:"notes,omitempty" json:"notes,omitempty"`
	EmailSent   bool   `dynamodbav:"emailSent" json:"email_sent"`
	EmailSentAt string `dynamodbav:"emailSentAt,omitempty" json:"email_sent_at,omitempty"`
	CreatedAt   string `dynamodbav:"createdAt" json:"created_at"`
}

// Validate checks the fields the confirmation emails depend on.
func (b *BoardingBooking) Validate() error {
	if strings.TrimSpace(b.OwnerName) == "" {
		return fmt.Errorf("%w: owner name is required", ErrInvalidBooking)
	}
	if strings.TrimSpace(b.OwnerEmail) == "" {
		return fmt.Errorf("%w: owner email is required", ErrInvalidBooking)
	}
	if strings.TrimSpace(b.PetName) == "" {
		return fmt.Errorf("%w: pet name is required", ErrInvalidBooking)
	}
	if _, err := time.Parse("2006-01-02", b.StartDate); err != nil {
		return fmt.Errorf("%w: start_date must be YYYY-MM-DD", ErrInvalidBooking)
	}
	if _, err := time.Parse("2006-01-02", b.EndDate); err != nil {
		return fmt.Errorf("%w: end_date must be YYYY-MM-DD", ErrInvalidBooking)
	}
	if b.EndDate < b.StartDate {
		return fmt.Errorf("%w: end_date before start_date", ErrInvalidBooking)
	}
	return nil
}

// TransportBooking is a pet-transportation request document. Its creation
// fires the booking-notifier trigger.
type TransportBooking struct {
	ID          string `dynamodbav:"id" json:"id"`
	OwnerName   string `dynamodbav:"ownerName" json:"owner_name"`
	OwnerEmail  string `dynamodbav:"ownerEmail" json:"owner_email"`
	OwnerPhone  string `dynamodbav:"ownerPhone" json:"owner_phone"`
	PetName     string `dynamodbav:"petName" json:"pet_name"`
	Pickup      string `dynamodbav:"pickupAddress" json:"pickup_address"`
	Dropoff     string `dynamodbav:"dropoffAddress" json:"dropoff_address"`
	Date        string `dynamodbav:"date" json:"date"`
	Time        string `dynamodbav:"time" json:"time"`
	Notes       string `dynamodbav:"notes,omitempty" json:"notes,omitempty"`
	EmailSent   bool   `dynamodbav:"emailSent" json:"email_sent"`
	EmailSentAt string `dynamodbav:"emailSentAt,omitempty" json:"email_sent_at,omitempty"`
	CreatedAt   string `dynamodbav:"createdAt" json:"created_at"`
}

// Validate checks the fields the confirmation emails depend on.
func (b *TransportBooking) Validate() error {
	if strings.TrimSpace(b.OwnerName) == "" {
		return fmt.Errorf("%w: owner name is required", ErrInvalidBooking)
	}
	if strings.TrimSpace(b.OwnerEmail) == "" {
		return fmt.Errorf("%w: owner email is required", ErrInvalidBooking)
	}
	if strings.TrimSpace(b.PetName) == "" {
		return fmt.Errorf("%w: pet name is required", ErrInvalidBooking)
	}
	if strings.TrimSpace(b.Pickup) == "" || strings.TrimSpace(b.Dropoff) == "" {
		return fmt.Errorf("%w: pickup and dropoff addresses are required", ErrInvalidBooking)
	}
	if _, err := time.Parse("2006-01-02", b.Date); err != nil {
		return fmt.Errorf("%w: date must be YYYY-MM-DD", ErrInvalidBooking)
	}
	return nil
}

// SlotBookingRequest books a concrete availability slot for a client.
type SlotBookingRequest struct {
	ProviderID   string `json:"provider_id"`
	ProviderName string `json:"provider_name"`
	Date         string `json:"date"`
	StartTime    string `json:"start_time"`
	EndTime      string `json:"end_time"`
	ClientName   string `json:"client_name"`
	ClientEmail  string `json:"client_email"`
	ClientPhone  string `json:"client_phone"`
	PetName      string `json:"pet_name"`
	Notes        string `json:"notes"`
}

// Validate checks required fields before the transaction is attempted.
func (r *SlotBookingRequest) Validate() error {
	if strings.TrimSpace(r.ProviderID) == "" {
		return fmt.Errorf("%w: provider_id is required", ErrInvalidBooking)
	}
	if strings.TrimSpace(r.ClientName) == "" {
		return fmt.Errorf("%w: client_name is required", ErrInvalidBooking)
	}
	if strings.TrimSpace(r.PetName) == "" {
		return fmt.Errorf("%w: pet_name is required", ErrInvalidBooking)
	}
	if _, err := time.Parse("2006-01-02", r.Date); err != nil {
		return fmt.Errorf("%w: date must be YYYY-MM-DD", ErrInvalidBooking)
	}
	if !schedule.ValidTimeOfDay(r.StartTime) || !schedule.ValidTimeOfDay(r.EndTime) {
		return fmt.Errorf("%w: start_time and end_time must be HH:MM", ErrInvalidBooking)
	}
	return nil
}
