package schedule

// TimeRange is a candidate [Start, End) window within one day.
type TimeRange struct {
	Start string
	End   string
}

// Validate decides whether a proposed time range may join the given set of
// slots for one provider and day. It is pure: no I/O, no side effects.
//
// Precondition: all times are zero-padded 24h "HH:MM" strings, so string
// comparison below is minute-of-day comparison.
//
// Returns ErrInvalidRange when Start >= End, ErrOverlap when the candidate
// shares any minute with an existing slot under half-open semantics, nil
// otherwise. Back-to-back ranges (candidate starts exactly at an existing
// end, or ends exactly at an existing start) do not overlap.
func Validate(candidate TimeRange, existing []Slot) error {
	if candidate.Start >= candidate.End {
		return ErrInvalidRange
	}
	for _, s := range existing {
		// candidate start inside [s.Start, s.End)
		if candidate.Start >= s.StartTime && candidate.Start < s.EndTime {
			return ErrOverlap
		}
		// candidate end inside (s.Start, s.End]
		if candidate.End > s.StartTime && candidate.End <= s.EndTime {
			return ErrOverlap
		}
		// candidate fully contains s
		if candidate.Start <= s.StartTime && candidate.End >= s.EndTime {
			return ErrOverlap
		}
	}
	return nil
}
