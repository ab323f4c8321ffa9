package schedule

import (
	"fmt"
	"regexp"
	"time"
)

// DateLayout is the calendar-day encoding used for slot partition ranges.
const DateLayout = "2006-01-02"

// timeOfDayRE matches zero-padded 24h "HH:MM" strings. All slot times must
// satisfy this format: it is the precondition that makes lexicographic
// comparison equivalent to minute-of-day comparison.
var timeOfDayRE = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]$`)

// ValidTimeOfDay reports whether s is a zero-padded 24h "HH:MM" string.
func ValidTimeOfDay(s string) bool {
	return timeOfDayRE.MatchString(s)
}

// Slot is a provider-declared open time window eligible for exactly one booking.
// StartTime and EndTime are "HH:MM" strings compared lexicographically; the
// interval is half-open: [StartTime, EndTime).
type Slot struct {
	ID           string `dynamodbav:"id" json:"id"`
	ProviderID   string `dynamodbav:"providerId" json:"provider_id"`
	ProviderName string `dynamodbav:"providerName" json:"provider_name"`
	SlotKey      string `dynamodbav:"slotKey" json:"-"`
	Date         string `dynamodbav:"date" json:"date"`
	StartTime    string `dynamodbav:"startTime" json:"start_time"`
	EndTime      string `dynamodbav:"endTime" json:"end_time"`
	IsReserved   bool   `dynamodbav:"isReserved" json:"is_reserved"`
	CreatedAt    string `dynamodbav:"createdAt" json:"created_at"`
}

// Key returns the sort key for a slot on its day: "date#startTime". Sort-key
// order therefore equals start-time order within a day.
func Key(date, startTime string) string {
	return date + "#" + startTime
}

// NewSlotRequest describes a slot a provider wants to open.
type NewSlotRequest struct {
	Date      string `json:"date"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

// Validate checks field shape only; overlap is the validator's concern.
func (r *NewSlotRequest) Validate() error {
	if _, err := time.Parse(DateLayout, r.Date); err != nil {
		return fmt.Errorf("%w: date must be YYYY-MM-DD", ErrInvalidInput)
	}
	if !ValidTimeOfDay(r.StartTime) {
		return fmt.Errorf("%w: start_time must be HH:MM", ErrInvalidInput)
	}
	if !ValidTimeOfDay(r.EndTime) {
		return fmt.Errorf("%w: end_time must be HH:MM", ErrInvalidInput)
	}
	return nil
}
