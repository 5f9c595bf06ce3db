package coach

import (
	"fmt"

	"github.com/relaycoach/relaycoach/go/internal/apperrors"
	"github.com/relaycoach/relaycoach/go/internal/models"
)

const (
	MessageInvalidAthleteIndex = "The athlete index provided is invalid"
	MessageInvalidTeamIndex    = "The team index provided is invalid."
	MessageAthleteNotFound     = "This athlete does not exist."
	MessageTeamNotFound        = "This team does not exist."
	MessageEmptySelector       = "An index or a name must be given"
)

func (a *App) resolveAthlete(sel Selector) (models.Athlete, error) {
	switch {
	case sel.Index != 0:
		athlete, ok := a.views.Athletes.At(sel.Index)
		if !ok {
			return models.Athlete{}, apperrors.WithMetadata(apperrors.CodeInvalidAthleteIndex, MessageInvalidAthleteIndex,
				map[string]string{"index": fmt.Sprint(sel.Index)})
		}
		return athlete, nil
	case sel.Name != "":
		athlete, ok := a.roster.Athlete(sel.Name)
		if !ok {
			return models.Athlete{}, apperrors.WithMetadata(apperrors.CodeNotFound, MessageAthleteNotFound,
				map[string]string{"athlete": sel.Name})
		}
		return athlete, nil
	default:
		return models.Athlete{}, apperrors.New(apperrors.CodeValidation, MessageEmptySelector)
	}
}

func (a *App) resolveAthletes(sels []Selector) ([]models.Athlete, error) {
	out := make([]models.Athlete, 0, len(sels))
	for _, sel := range sels {
		athlete, err := a.resolveAthlete(sel)
		if err != nil {
			return nil, err
		}
		out = append(out, athlete)
	}
	return out, nil
}

func (a *App) resolveTeam(sel Selector) (models.Team, error) {
	switch {
	case sel.Index != 0:
		team, ok := a.views.Teams.At(sel.Index)
		if !ok {
			return models.Team{}, apperrors.WithMetadata(apperrors.CodeInvalidTeamIndex, MessageInvalidTeamIndex,
				map[string]string{"index": fmt.Sprint(sel.Index)})
		}
		return team, nil
	case sel.Name != "":
		team, ok := a.roster.Team(sel.Name)
		if !ok {
			return models.Team{}, apperrors.WithMetadata(apperrors.CodeNotFound, MessageTeamNotFound,
				map[string]string{"team": sel.Name})
		}
		return team, nil
	default:
		return models.Team{}, apperrors.New(apperrors.CodeValidation, MessageEmptySelector)
	}
}
