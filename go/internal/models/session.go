package models

import (
	"cmp"
	"fmt"
	"time"

	"github.com/relaycoach/relaycoach/go/internal/apperrors"
)

// SessionTimeLayout is used when rendering session times.
const SessionTimeLayout = "02 January 2006 15:04"

// MessageSessionConstraints is shown when a session's time range is not increasing.
const MessageSessionConstraints = "Session start date/time must be strictly before its end date/time"

// Session is an immutable practice session on a team's calendar.
type Session struct {
	location Location
	start    time.Time
	end      time.Time
}

// NewSession validates the location and requires start < end.
// Sessions that only touch at an endpoint never conflict, so a zero-length
// session is rejected rather than treated as an instant.
func NewSession(location string, start, end time.Time) (Session, error) {
	loc, err := NewLocation(location)
	if err != nil {
		return Session{}, err
	}
	if start.IsZero() || end.IsZero() || !start.Before(end) {
		return Session{}, apperrors.New(apperrors.CodeValidation, MessageSessionConstraints)
	}
	return Session{location: loc, start: start, end: end}, nil
}

func (s Session) Location() Location { return s.location }
func (s Session) Start() time.Time   { return s.start }
func (s Session) End() time.Time     { return s.end }

// Duration returns the length of the session.
func (s Session) Duration() time.Duration {
	return s.end.Sub(s.start)
}

// Equal reports value equality. Locations are compared exactly; the
// conflict detector applies its own case-insensitive rule.
func (s Session) Equal(other Session) bool {
	return s.location == other.location && s.start.Equal(other.start) && s.end.Equal(other.end)
}

func (s Session) String() string {
	return fmt.Sprintf("startDate: %s, endDate: %s, location: %s",
		s.start.Format(SessionTimeLayout), s.end.Format(SessionTimeLayout), s.location)
}

// CompareSessions orders sessions by start, then end, then location.
func CompareSessions(a, b Session) int {
	if c := a.start.Compare(b.start); c != 0 {
		return c
	}
	if c := a.end.Compare(b.end); c != 0 {
		return c
	}
	return cmp.Compare(string(a.location), string(b.location))
}
