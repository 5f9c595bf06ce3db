// Package schedule decides whether a practice session may join a team's
// calendar and defines the calendar's display order.
package schedule

import (
	"fmt"
	"slices"

	"github.com/relaycoach/relaycoach/go/internal/apperrors"
	"github.com/relaycoach/relaycoach/go/internal/models"
)

const (
	MessageDuplicateSession    = "This session already exists for the team"
	MessageOverlappingSession  = "This session overlaps with an existing session of the team"
	MessageInvalidSessionIndex = "The session index provided is invalid."
)

// Detector classifies candidate sessions against a calendar.
type Detector struct{}

// NewDetector creates a new Detector
func NewDetector() *Detector {
	return &Detector{}
}

// Check reports whether candidate conflicts with existing. An exact match on
// start, end and location (ignoring case) anywhere in the calendar is a
// duplicate, and takes precedence over any overlap.
func (d *Detector) Check(existing []models.Session, candidate models.Session) error {
	for _, s := range existing {
		if IsDuplicate(s, candidate) {
			return apperrors.WithMetadata(apperrors.CodeDuplicateSession, MessageDuplicateSession,
				map[string]string{"session": s.String()})
		}
	}
	for _, s := range Order(existing) {
		if Overlaps(s, candidate) {
			return apperrors.WithMetadata(apperrors.CodeOverlappingSession, MessageOverlappingSession,
				map[string]string{"session": s.String()})
		}
	}
	return nil
}

// Schedule returns team with candidate added, or the conflict.
func (d *Detector) Schedule(team models.Team, candidate models.Session) (models.Team, error) {
	if err := d.Check(team.Sessions(), candidate); err != nil {
		return models.Team{}, err
	}
	return team.WithSession(candidate), nil
}

// IsDuplicate reports whether a and b share start, end and location, with the
// location compared ignoring case.
func IsDuplicate(a, b models.Session) bool {
	return a.Start().Equal(b.Start()) && a.End().Equal(b.End()) && a.Location().EqualFold(b.Location())
}

// Overlaps reports whether the half-open intervals [start, end) intersect.
// Sessions that only touch do not overlap.
func Overlaps(a, b models.Session) bool {
	return a.Start().Before(b.End()) && b.Start().Before(a.End())
}

// Order returns a copy of sessions sorted by start, end, then location.
func Order(sessions []models.Session) []models.Session {
	out := slices.Clone(sessions)
	slices.SortStableFunc(out, models.CompareSessions)
	return out
}

// SessionAt resolves a 1-based ordinal in the calendar's display order.
func SessionAt(team models.Team, ordinal int) (models.Session, error) {
	ordered := Order(team.Sessions())
	if ordinal < 1 || ordinal > len(ordered) {
		return models.Session{}, apperrors.WithMetadata(apperrors.CodeInvalidSessionIndex, MessageInvalidSessionIndex,
			map[string]string{"ordinal": fmt.Sprint(ordinal), "sessions": fmt.Sprint(len(ordered))})
	}
	return ordered[ordinal-1], nil
}

// Cancel returns team without the session at ordinal, along with the removed session.
func (d *Detector) Cancel(team models.Team, ordinal int) (models.Team, models.Session, error) {
	s, err := SessionAt(team, ordinal)
	if err != nil {
		return models.Team{}, models.Session{}, err
	}
	next, ok := team.WithoutSession(s)
	if !ok {
		return models.Team{}, models.Session{}, apperrors.New(apperrors.CodeNotFound, MessageInvalidSessionIndex)
	}
	return next, s, nil
}
