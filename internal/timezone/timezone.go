package timezone

import (
	"sync"
	"time"
)

const DefaultTimezone = "America/Argentina/Buenos_Aires"

// StampLayout formats registration timestamps: ISO-8601 with microseconds
// and the UTC offset.
const StampLayout = "2006-01-02T15:04:05.000000-07:00"

// Clock returns the current instant. Use cases take one so tests can pin "now".
type Clock func() time.Time

// Now calls the clock, or the clinic wall clock when c is nil.
func (c Clock) Now() time.Time {
	if c == nil {
		return Now()
	}
	return c()
}

// Today is the current clinic date as YYYY-MM-DD.
func (c Clock) Today() string {
	return c.Now().Format("2006-01-02")
}

var (
	mu      sync.RWMutex
	current = DefaultTimezone
)

func IsValid(tz string) bool {
	if tz == "" {
		return false
	}
	_, err := time.LoadLocation(tz)
	return err == nil
}

// SetDefault changes the clinic timezone used by Now and Location("").
// Invalid names are ignored.
func SetDefault(tz string) {
	if !IsValid(tz) {
		return
	}
	mu.Lock()
	current = tz
	mu.Unlock()
}

func Location(tz string) *time.Location {
	if IsValid(tz) {
		if loc, err := time.LoadLocation(tz); err == nil {
			return loc
		}
	}

	mu.RLock()
	name := current
	mu.RUnlock()

	loc, err := time.LoadLocation(name)
	if err != nil {
		return time.FixedZone("ART", -3*60*60)
	}
	return loc
}

func Now() time.Time {
	return time.Now().In(Location(""))
}

func NowIn(tz string) time.Time {
	return time.Now().In(Location(tz))
}

// ParseDate parses YYYY-MM-DD in the clinic timezone.
func ParseDate(s string) (time.Time, error) {
	return time.ParseInLocation("2006-01-02", s, Location(""))
}

// ParseDateTime parses "YYYY-MM-DD" + "HH:MM" in the clinic timezone.
func ParseDateTime(date, hm string) (time.Time, error) {
	return time.ParseInLocation("2006-01-02 15:04", date+" "+hm, Location(""))
}
