package schedule

import (
	"errors"
	"testing"
)

func daySlots(ranges ...[2]string) []Slot {
	slots := make([]Slot, 0, len(ranges))
	for _, r := range ranges {
		slots = append(slots, Slot{StartTime: r[0], EndTime: r[1]})
	}
	return slots
}

func TestValidate(t *testing.T) {
	existing := daySlots([2]string{"09:00", "10:00"}, [2]string{"13:00", "14:30"})

	tests := []struct {
		name    string
		start   string
		end     string
		wantErr error
	}{
		{"empty range rejected", "10:00", "10:00", ErrInvalidRange},
		{"inverted range rejected", "11:00", "10:00", ErrInvalidRange},
		{"start inside existing", "09:30", "10:30", ErrOverlap},
		{"end inside existing", "08:30", "09:30", ErrOverlap},
		{"identical to existing", "09:00", "10:00", ErrOverlap},
		{"contains existing", "08:00", "11:00", ErrOverlap},
		{"contained by existing", "13:30", "14:00", ErrOverlap},
		{"back to back after", "10:00", "11:00", nil},
		{"back to back before", "08:00", "09:00", nil},
		{"gap between slots", "10:30", "12:30", nil},
		{"clear of everything", "15:00", "16:00", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(TimeRange{Start: tt.start, End: tt.end}, existing)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate(%s-%s) = %v, want %v", tt.start, tt.end, err, tt.wantErr)
			}
		})
	}
}

func TestValidateEmptyDay(t *testing.T) {
	if err := Validate(TimeRange{Start: "09:00", End: "17:00"}, nil); err != nil {
		t.Errorf("expected nil on empty day, got %v", err)
	}
}

// Every pair accepted into the same day must be mutually non-overlapping.
func TestValidateAcceptedSetIsConsistent(t *testing.T) {
	var accepted []Slot
	candidates := []TimeRange{
		{"09:00", "10:00"},
		{"09:30", "10:30"}, // conflicts with the first
		{"10:00", "11:00"},
		{"08:00", "09:00"},
		{"10:30", "11:30"}, // conflicts with 10:00-11:00
	}
	for _, c := range candidates {
		if Validate(c, accepted) == nil {
			accepted = append(accepted, Slot{StartTime: c.Start, EndTime: c.End})
		}
	}

	if len(accepted) != 3 {
		t.Fatalf("accepted %d slots, want 3", len(accepted))
	}
	for i, a := range accepted {
		for j, b := range accepted {
			if i == j {
				continue
			}
			if a.StartTime < b.EndTime && b.StartTime < a.EndTime {
				t.Errorf("accepted slots overlap: %s-%s and %s-%s",
					a.StartTime, a.EndTime, b.StartTime, b.EndTime)
			}
		}
	}
}

func TestValidTimeOfDay(t *testing.T) {
	valid := []string{"00:00", "09:30", "23:59", "12:00"}
	invalid := []string{"24:00", "9:30", "09:60", "0900", "09:3", "", "ab:cd"}

	for _, s := range valid {
		if !ValidTimeOfDay(s) {
			t.Errorf("ValidTimeOfDay(%q) = false, want true", s)
		}
	}
	for _, s := range invalid {
		if ValidTimeOfDay(s) {
			t.Errorf("ValidTimeOfDay(%q) = true, want false", s)
		}
	}
}
