package domain

import "time"

// DateLayout is the calendar-date format used for storage and input.
const DateLayout = "2006-01-02"

// ParseDate parses a YYYY-MM-DD string into a UTC midnight time.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, Validationf("invalid date %q (expected YYYY-MM-DD)", s)
	}
	return t, nil
}

// ParseOptionalDate parses s, returning nil for the empty string.
func ParseOptionalDate(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := ParseDate(s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// DateOnly truncates t to its calendar date in t's location, returned in UTC.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ValidateRange checks a child range for internal consistency and, when the
// parent range is fully known, for containment. Absent bounds are never
// defaulted: a child with no dates is always valid.
func ValidateRange(start, end, parentStart, parentEnd *time.Time) error {
	if start != nil && end != nil && DateOnly(*end).Before(DateOnly(*start)) {
		return &RangeError{Kind: ErrInvalidRange, Start: start, End: end}
	}

	if parentStart == nil || parentEnd == nil {
		return nil
	}
	lo, hi := DateOnly(*parentStart), DateOnly(*parentEnd)
	for _, bound := range []*time.Time{start, end} {
		if bound == nil {
			continue
		}
		b := DateOnly(*bound)
		if b.Before(lo) || b.After(hi) {
			return &RangeError{
				Kind:        ErrOutOfParentRange,
				Start:       start,
				End:         end,
				ParentStart: parentStart,
				ParentEnd:   parentEnd,
			}
		}
	}
	return nil
}

// SameDate reports whether two optional dates denote the same calendar day.
func SameDate(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return DateOnly(*a).Equal(DateOnly(*b))
}

// FormatOptionalDate renders an optional date, or "" when absent.
func FormatOptionalDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(DateLayout)
}
