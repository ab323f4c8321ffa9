package appointments

import (
	"errors"
	"fmt"
)

// DateLayout is the calendar-day encoding shared with the schedule package.
const DateLayout = "2006-01-02"

// Appointment is a client booking on a provider's calendar. Appointments are
// created by the public booking flow and only ever move forward through the
// status machine; this service never deletes them.
type Appointment struct {
	ID           string `dynamodbav:"id" json:"id"`
	ProviderID   string `dynamodbav:"providerId" json:"provider_id"`
	ProviderName string `dynamodbav:"providerName" json:"provider_name"`
	ApptKey      string `dynamodbav:"apptKey" json:"-"`
	Date         string `dynamodbav:"appointmentDate" json:"appointment_date"`
	StartTime    string `dynamodbav:"startTime" json:"start_time"`
	EndTime      string `dynamodbav:"endTime" json:"end_time"`
	ClientName   string `dynamodbav:"clientName" json:"client_name"`
	ClientEmail  string `dynamodbav:"clientEmail" json:"client_email"`
	ClientPhone  string `dynamodbav:"clientPhone" json:"client_phone"`
	PetName      string `dynamodbav:"petName" json:"pet_name"`
	Status       Status `dynamodbav:"status" json:"status"`
	Notes        string `dynamodbav:"notes" json:"notes,omitempty"`
	CreatedAt    string `dynamodbav:"createdAt" json:"created_at"`
	UpdatedAt    string `dynamodbav:"updatedAt" json:"updated_at"`
}

// Key returns the sort key "date#startTime#id". Sort-key order gives the
// (date, startTime) ascending listing the staff views expect.
func Key(date, startTime, id string) string {
	return date + "#" + startTime + "#" + id
}

// DateFilter selects which part of a provider's calendar to list.
type DateFilter string

const (
	FilterUpcoming DateFilter = "upcoming" // date >= today start
	FilterToday    DateFilter = "today"    // within today
	FilterPast     DateFilter = "past"     // date < today start
	FilterAll      DateFilter = "all"      // no date constraint
)

// ErrUnknownFilter is returned for a filter value outside the four above.
var ErrUnknownFilter = errors.New("appointments: unknown date filter")

// ParseFilter maps a query-string value onto a DateFilter. Empty means all.
func ParseFilter(raw string) (DateFilter, error) {
	switch DateFilter(raw) {
	case FilterUpcoming, FilterToday, FilterPast, FilterAll:
		return DateFilter(raw), nil
	case "":
		return FilterAll, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFilter, raw)
	}
}
