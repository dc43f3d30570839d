package clock

import "time"

type Clock interface {
	Now() time.Time
}

// RealClock reports wall time in a fixed location so that "today" for stay
// fallbacks follows the property's calendar rather than the server's.
type RealClock struct {
	loc *time.Location
}

func NewRealClock() Clock {
	return &RealClock{loc: time.Local}
}

func NewRealClockIn(name string) (Clock, error) {
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, err
	}
	return &RealClock{loc: loc}, nil
}

func (c *RealClock) Now() time.Time {
	return time.Now().In(c.loc)
}

type MockClock struct {
	currentTime time.Time
}

func NewMockClock(t time.Time) *MockClock {
	return &MockClock{currentTime: t}
}

func (c *MockClock) Now() time.Time {
	return c.currentTime
}

func (c *MockClock) Set(t time.Time) {
	c.currentTime = t
}

func (c *MockClock) Add(d time.Duration) {
	c.currentTime = c.currentTime.Add(d)
}
