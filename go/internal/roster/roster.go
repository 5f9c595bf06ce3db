// Package roster holds the canonical in-memory collections of athletes and
// relay teams. It is single-writer and unsynchronised; callers that share a
// Roster across goroutines must serialise access themselves.
package roster

import (
	"fmt"
	"slices"

	"github.com/relaycoach/relaycoach/go/internal/apperrors"
	"github.com/relaycoach/relaycoach/go/internal/models"
)

const (
	MessageDuplicateAthlete = "This athlete already exists in the roster"
	MessageDuplicateTeam    = "This team already exists in the roster"
	MessageAthleteNotFound  = "This athlete does not exist."
	MessageTeamNotFound     = "This team does not exist."
)

// Roster owns athletes and teams keyed by identity, in insertion order.
type Roster struct {
	athletes     []models.Athlete
	athleteIndex map[string]int
	teams        []models.Team
	teamIndex    map[string]int

	listeners []*listener
}

// New returns an empty roster.
func New() *Roster {
	return &Roster{
		athleteIndex: make(map[string]int),
		teamIndex:    make(map[string]int),
	}
}

// AddAthlete appends a to the roster.
func (r *Roster) AddAthlete(a models.Athlete) error {
	if _, ok := r.athleteIndex[a.Key()]; ok {
		return apperrors.WithMetadata(apperrors.CodeDuplicateIdentity, MessageDuplicateAthlete,
			map[string]string{"athlete": a.Name().String()})
	}
	r.athleteIndex[a.Key()] = len(r.athletes)
	r.athletes = append(r.athletes, a)
	r.notify(AthletesChanged)
	return nil
}

// SetAthlete replaces old with updated in place and rewrites every team that
// references old. Nothing changes if any rewritten team would be invalid.
func (r *Roster) SetAthlete(old, updated models.Athlete) error {
	i, ok := r.athleteIndex[old.Key()]
	if !ok {
		return athleteNotFound(old)
	}
	if j, taken := r.athleteIndex[updated.Key()]; taken && j != i {
		return apperrors.WithMetadata(apperrors.CodeDuplicateIdentity, MessageDuplicateAthlete,
			map[string]string{"athlete": updated.Name().String()})
	}

	rewritten := make(map[int]models.Team)
	for ti, t := range r.teams {
		if !t.HasMember(old) {
			continue
		}
		next, err := t.ReplaceMember(old, updated)
		if err != nil {
			return fmt.Errorf("rewrite team %s: %w", t.Name(), err)
		}
		rewritten[ti] = next
	}

	delete(r.athleteIndex, old.Key())
	r.athletes[i] = updated
	r.athleteIndex[updated.Key()] = i

	changed := AthletesChanged
	for ti, t := range rewritten {
		r.teams[ti] = t
		changed |= TeamsChanged
	}
	r.notify(changed)
	return nil
}

// RemoveAthlete deletes a. Athletes that are still on a team cannot be removed.
func (r *Roster) RemoveAthlete(a models.Athlete) error {
	i, ok := r.athleteIndex[a.Key()]
	if !ok {
		return athleteNotFound(a)
	}
	if teams := r.TeamsContaining(a); len(teams) > 0 {
		return apperrors.WithMetadata(apperrors.CodeMemberAlreadyAssigned,
			fmt.Sprintf("%s is a member of team %s", a.Name(), teams[0].Name()),
			map[string]string{"athlete": a.Name().String(), "team": teams[0].Name().String()})
	}
	r.athletes = slices.Delete(r.athletes, i, i+1)
	r.reindexAthletes()
	r.notify(AthletesChanged)
	return nil
}

// Athlete looks an athlete up by name, ignoring case.
func (r *Roster) Athlete(name string) (models.Athlete, bool) {
	i, ok := r.athleteIndex[models.Key(name)]
	if !ok {
		return models.Athlete{}, false
	}
	return r.athletes[i], true
}

// HasAthlete reports whether an athlete with a's identity exists.
func (r *Roster) HasAthlete(a models.Athlete) bool {
	_, ok := r.athleteIndex[a.Key()]
	return ok
}

// Athletes returns the athletes in insertion order.
func (r *Roster) Athletes() []models.Athlete {
	return slices.Clone(r.athletes)
}

// AddTeam appends t to the roster. Team rules are checked by the enforcer,
// the roster only guards identity and member references.
func (r *Roster) AddTeam(t models.Team) error {
	if _, ok := r.teamIndex[t.Key()]; ok {
		return apperrors.WithMetadata(apperrors.CodeDuplicateIdentity, MessageDuplicateTeam,
			map[string]string{"team": t.Name().String()})
	}
	if err := r.checkMembers(t); err != nil {
		return err
	}
	r.teamIndex[t.Key()] = len(r.teams)
	r.teams = append(r.teams, t)
	r.notify(TeamsChanged)
	return nil
}

// ReplaceTeam swaps old for updated at the same position. old must be
// present with an equal value.
func (r *Roster) ReplaceTeam(old, updated models.Team) error {
	i, ok := r.teamIndex[old.Key()]
	if !ok || !r.teams[i].Equal(old) {
		return teamNotFound(old)
	}
	if j, taken := r.teamIndex[updated.Key()]; taken && j != i {
		return apperrors.WithMetadata(apperrors.CodeDuplicateIdentity, MessageDuplicateTeam,
			map[string]string{"team": updated.Name().String()})
	}
	if err := r.checkMembers(updated); err != nil {
		return err
	}
	delete(r.teamIndex, old.Key())
	r.teams[i] = updated
	r.teamIndex[updated.Key()] = i
	r.notify(TeamsChanged)
	return nil
}

// RemoveTeam deletes t. The members stay on the roster.
func (r *Roster) RemoveTeam(t models.Team) error {
	i, ok := r.teamIndex[t.Key()]
	if !ok {
		return teamNotFound(t)
	}
	r.teams = slices.Delete(r.teams, i, i+1)
	r.reindexTeams()
	r.notify(TeamsChanged)
	return nil
}

// Team looks a team up by name, ignoring case.
func (r *Roster) Team(name string) (models.Team, bool) {
	i, ok := r.teamIndex[models.Key(name)]
	if !ok {
		return models.Team{}, false
	}
	return r.teams[i], true
}

// Teams returns the teams in insertion order.
func (r *Roster) Teams() []models.Team {
	return slices.Clone(r.teams)
}

// TeamsContaining returns every team whose member set includes a.
func (r *Roster) TeamsContaining(a models.Athlete) []models.Team {
	var out []models.Team
	for _, t := range r.teams {
		if t.HasMember(a) {
			out = append(out, t)
		}
	}
	return out
}

func (r *Roster) AthletesEmpty() bool { return len(r.athletes) == 0 }
func (r *Roster) TeamsEmpty() bool    { return len(r.teams) == 0 }

// Reset replaces the whole content of the roster, e.g. after loading a
// snapshot. Identities must be unique and every team member must be one of
// athletes. On error the roster is unchanged.
func (r *Roster) Reset(athletes []models.Athlete, teams []models.Team) error {
	next := New()
	for _, a := range athletes {
		if err := next.AddAthlete(a); err != nil {
			return err
		}
	}
	for _, t := range teams {
		if err := next.AddTeam(t); err != nil {
			return err
		}
	}
	r.athletes, r.athleteIndex = next.athletes, next.athleteIndex
	r.teams, r.teamIndex = next.teams, next.teamIndex
	r.notify(AthletesChanged | TeamsChanged)
	return nil
}

// Clone returns a copy of the roster content without its listeners.
func (r *Roster) Clone() *Roster {
	c := New()
	c.athletes = slices.Clone(r.athletes)
	c.teams = slices.Clone(r.teams)
	c.reindexAthletes()
	c.reindexTeams()
	return c
}

// Restore copies the content of from into r and notifies listeners.
func (r *Roster) Restore(from *Roster) {
	r.athletes = slices.Clone(from.athletes)
	r.teams = slices.Clone(from.teams)
	r.reindexAthletes()
	r.reindexTeams()
	r.notify(AthletesChanged | TeamsChanged)
}

func (r *Roster) checkMembers(t models.Team) error {
	for _, m := range t.Members() {
		if !r.HasAthlete(m) {
			return athleteNotFound(m)
		}
	}
	return nil
}

func (r *Roster) reindexAthletes() {
	r.athleteIndex = make(map[string]int, len(r.athletes))
	for i, a := range r.athletes {
		r.athleteIndex[a.Key()] = i
	}
}

func (r *Roster) reindexTeams() {
	r.teamIndex = make(map[string]int, len(r.teams))
	for i, t := range r.teams {
		r.teamIndex[t.Key()] = i
	}
}

func athleteNotFound(a models.Athlete) error {
	return apperrors.WithMetadata(apperrors.CodeNotFound, MessageAthleteNotFound,
		map[string]string{"athlete": a.Name().String()})
}

func teamNotFound(t models.Team) error {
	return apperrors.WithMetadata(apperrors.CodeNotFound, MessageTeamNotFound,
		map[string]string{"team": t.Name().String()})
}
