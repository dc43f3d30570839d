package booking

import (
	"fmt"
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

// StayDates is the check-in/check-out pair shown on the checkout page.
// Unparsable or inverted input degrades to today/tomorrow instead of failing.
type StayDates struct {
	checkIn  time.Time
	checkOut time.Time
	degraded bool
}

func NewStayDates(checkIn, checkOut string, now time.Time) StayDates {
	in, inErr := parseDate(checkIn, now.Location())
	out, outErr := parseDate(checkOut, now.Location())
	if inErr != nil || outErr != nil || !out.After(in) {
		today := startOfDay(now)
		return StayDates{
			checkIn:  today,
			checkOut: today.AddDate(0, 0, 1),
			degraded: true,
		}
	}
	return StayDates{checkIn: in, checkOut: out}
}

func ReconstructStayDates(checkIn, checkOut time.Time, degraded bool) StayDates {
	return StayDates{checkIn: checkIn, checkOut: checkOut, degraded: degraded}
}

func (s StayDates) CheckIn() time.Time  { return s.checkIn }
func (s StayDates) CheckOut() time.Time { return s.checkOut }
func (s StayDates) Degraded() bool      { return s.degraded }

func (s StayDates) Nights() int {
	if s.degraded {
		return 1
	}
	nights := int(s.checkOut.Sub(s.checkIn).Round(time.Hour).Hours() / 24)
	if nights < 1 {
		return 1
	}
	return nights
}

func (s StayDates) Label() string {
	return fmt.Sprintf("%d-night stay", s.Nights())
}

func (s StayDates) CheckInString() string  { return s.checkIn.Format(dateLayout) }
func (s StayDates) CheckOutString() string { return s.checkOut.Format(dateLayout) }

func parseDate(value string, loc *time.Location) (time.Time, error) {
	value = strings.TrimSpace(value)
	if t, err := time.ParseInLocation(dateLayout, value, loc); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, err
	}
	return startOfDay(t.In(loc)), nil
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
