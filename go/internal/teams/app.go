// Package teams enforces the relay team invariants that span the roster:
// exclusive membership across teams and unique team names.
package teams

import (
	"fmt"

	"github.com/relaycoach/relaycoach/go/internal/apperrors"
	"github.com/relaycoach/relaycoach/go/internal/models"
)

const MessageDuplicateTeamName = "A team with this name already exists"

// TeamsReader defines what the enforcer needs from the roster
type TeamsReader interface {
	Teams() []models.Team
	Team(name string) (models.Team, bool)
}

// Enforcer validates team formation and updates against the current roster.
// It never mutates the roster; callers commit the returned value.
type Enforcer struct {
	roster TeamsReader
}

// NewEnforcer creates a new Enforcer
func NewEnforcer(roster TeamsReader) *Enforcer {
	return &Enforcer{roster: roster}
}

// ValidateFormation checks, in order: the name format, the member count,
// the name's uniqueness and that no member already belongs to a team.
func (e *Enforcer) ValidateFormation(req FormationRequest) (models.Team, error) {
	name, err := models.NewTeamName(req.Name)
	if err != nil {
		return models.Team{}, err
	}

	team, err := models.NewTeam(name, req.Members, nil)
	if err != nil {
		return models.Team{}, err
	}

	if err := e.checkNameFree(name, ""); err != nil {
		return models.Team{}, err
	}

	for _, m := range team.Members() {
		if err := e.checkUnassigned(m, ""); err != nil {
			return models.Team{}, err
		}
	}
	return team, nil
}

// ValidateRename returns req.Team carrying the new name. Changing only the
// case of the current name is allowed.
func (e *Enforcer) ValidateRename(req RenameRequest) (models.Team, error) {
	name, err := models.NewTeamName(req.NewName)
	if err != nil {
		return models.Team{}, err
	}
	if err := e.checkNameFree(name, req.Team.Key()); err != nil {
		return models.Team{}, err
	}
	return req.Team.Renamed(name), nil
}

// ValidateMemberSwap returns req.Team with Outgoing replaced by Replacement.
// The replacement must not be on any other team.
func (e *Enforcer) ValidateMemberSwap(req SwapRequest) (models.Team, error) {
	if err := e.checkUnassigned(req.Replacement, req.Team.Key()); err != nil {
		return models.Team{}, err
	}
	return req.Team.ReplaceMember(req.Outgoing, req.Replacement)
}

func (e *Enforcer) checkNameFree(name models.TeamName, selfKey string) error {
	existing, ok := e.roster.Team(name.String())
	if !ok || existing.Key() == selfKey {
		return nil
	}
	return apperrors.WithMetadata(apperrors.CodeDuplicateTeamName, MessageDuplicateTeamName,
		map[string]string{"team": existing.Name().String()})
}

// checkUnassigned fails if a belongs to any team other than the one keyed by selfKey.
func (e *Enforcer) checkUnassigned(a models.Athlete, selfKey string) error {
	for _, t := range e.roster.Teams() {
		if t.Key() == selfKey || !t.HasMember(a) {
			continue
		}
		return apperrors.WithMetadata(apperrors.CodeMemberAlreadyAssigned,
			fmt.Sprintf("%s is already a member of team %s", a.Name(), t.Name()),
			map[string]string{"athlete": a.Name().String(), "team": t.Name().String()})
	}
	return nil
}
