package models

import (
	"fmt"
	"slices"
	"strings"

	"github.com/relaycoach/relaycoach/go/internal/apperrors"
)

// TeamSize is the fixed number of athletes in a relay team.
const TeamSize = 4

// MessageInvalidTeamSize is shown when a team does not have exactly TeamSize distinct members.
var MessageInvalidTeamSize = fmt.Sprintf("A team must have exactly %d distinct members.", TeamSize)

// Team is an immutable relay team. Members form a set keyed by athlete
// identity and sessions form a set of values, both kept in a canonical order.
type Team struct {
	name     TeamName
	members  []Athlete // sorted by Key, exactly TeamSize
	sessions []Session // sorted by CompareSessions, unique
}

// NewTeam builds a team from exactly TeamSize distinct athletes.
// Sessions equal by value are collapsed.
func NewTeam(name TeamName, members []Athlete, sessions []Session) (Team, error) {
	if name == "" {
		return Team{}, apperrors.New(apperrors.CodeValidation, MessageTeamNameConstraints)
	}
	set := distinctMembers(members)
	if len(set) != TeamSize {
		return Team{}, apperrors.WithMetadata(apperrors.CodeInvalidTeamSize, MessageInvalidTeamSize,
			map[string]string{"distinct_members": fmt.Sprint(len(set))})
	}
	return Team{
		name:     name,
		members:  set,
		sessions: normalizeSessions(sessions),
	}, nil
}

func distinctMembers(members []Athlete) []Athlete {
	set := make([]Athlete, 0, len(members))
	for _, m := range members {
		if m.IsZero() {
			continue
		}
		if slices.ContainsFunc(set, m.SameAthlete) {
			continue
		}
		set = append(set, m)
	}
	slices.SortFunc(set, func(a, b Athlete) int { return strings.Compare(a.Key(), b.Key()) })
	return set
}

func normalizeSessions(sessions []Session) []Session {
	out := make([]Session, 0, len(sessions))
	for _, s := range sessions {
		if !slices.ContainsFunc(out, s.Equal) {
			out = append(out, s)
		}
	}
	slices.SortFunc(out, CompareSessions)
	return out
}

func (t Team) Name() TeamName { return t.name }

// Key returns the team's identity key.
func (t Team) Key() string { return t.name.Key() }

// IsZero reports whether t was never built.
func (t Team) IsZero() bool { return t.name == "" }

// Members returns a copy of the member set.
func (t Team) Members() []Athlete { return slices.Clone(t.members) }

// Sessions returns a copy of the session set in (start, end, location) order.
func (t Team) Sessions() []Session { return slices.Clone(t.sessions) }

// HasMember reports whether an athlete with a's identity is on the team.
func (t Team) HasMember(a Athlete) bool {
	return slices.ContainsFunc(t.members, a.SameAthlete)
}

// HasSession reports whether the exact session value is on the calendar.
func (t Team) HasSession(s Session) bool {
	return slices.ContainsFunc(t.sessions, s.Equal)
}

// SameTeam reports whether both values identify the same team.
func (t Team) SameTeam(other Team) bool {
	return t.Key() == other.Key()
}

// WithSession returns a copy of t with s added to the calendar.
// No conflict checks are made here.
func (t Team) WithSession(s Session) Team {
	next := t
	next.sessions = normalizeSessions(append(slices.Clone(t.sessions), s))
	return next
}

// WithoutSession returns a copy of t without s; ok is false if s was not present.
func (t Team) WithoutSession(s Session) (Team, bool) {
	i := slices.IndexFunc(t.sessions, s.Equal)
	if i < 0 {
		return t, false
	}
	next := t
	next.sessions = slices.Delete(slices.Clone(t.sessions), i, i+1)
	return next, true
}

// ReplaceMember returns a copy of t with old swapped for replacement.
func (t Team) ReplaceMember(old, replacement Athlete) (Team, error) {
	if !t.HasMember(old) {
		return Team{}, apperrors.New(apperrors.CodeNotFound,
			fmt.Sprintf("%s is not a member of team %s", old.Name(), t.name))
	}
	members := make([]Athlete, 0, TeamSize)
	for _, m := range t.members {
		if m.SameAthlete(old) {
			members = append(members, replacement)
			continue
		}
		members = append(members, m)
	}
	return NewTeam(t.name, members, t.sessions)
}

// Renamed returns a copy of t carrying a new name.
func (t Team) Renamed(name TeamName) Team {
	next := t
	next.name = name
	return next
}

// Equal compares name, members and sessions.
func (t Team) Equal(other Team) bool {
	return t.name == other.name &&
		slices.EqualFunc(t.members, other.members, Athlete.Equal) &&
		slices.EqualFunc(t.sessions, other.sessions, Session.Equal)
}

func (t Team) String() string {
	names := make([]string, len(t.members))
	for i, m := range t.members {
		names[i] = m.Name().String()
	}
	return fmt.Sprintf("Team %s: [%s]", t.name, strings.Join(names, ", "))
}
