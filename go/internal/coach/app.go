// Package coach implements the roster commands. App validates each command
// against the roster and commits it in one step; Service serialises calls,
// persists the result and publishes events.
package coach

import (
	"fmt"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"

	"github.com/relaycoach/relaycoach/go/internal/apperrors"
	"github.com/relaycoach/relaycoach/go/internal/models"
	"github.com/relaycoach/relaycoach/go/internal/roster"
	"github.com/relaycoach/relaycoach/go/internal/schedule"
	"github.com/relaycoach/relaycoach/go/internal/teams"
	"github.com/relaycoach/relaycoach/go/internal/view"
)

const (
	MessageAthleteAdded    = "New athlete added: %s"
	MessageAthleteEdited   = "Edited athlete: %s"
	MessageAthleteDeleted  = "Deleted athlete: %s"
	MessageNothingToEdit   = "At least one field to edit must be provided."
	MessageTeamFormed      = "New team added: %s"
	MessageTeamDisbanded   = "Disbanded team: %s"
	MessageTeamRenamed     = "Renamed team %s to %s"
	MessageMemberSwapped   = "Replaced %s with %s in team %s"
	MessageSessionAdded    = "Added session to %s: %s"
	MessageSessionDeleted  = "Deleted session: %s\nFrom team: %s"
	MessageListedAthletes  = "Listed all athletes"
	MessageListedTeams     = "Listed all teams"
	MessageNoAthletes      = "No athletes added yet!"
	MessageNoTeams         = "No teams added yet!"
	MessageAthletesListed  = "%d athlete(s) listed!"
	MessageTeamsListed     = "%d team(s) listed!"
	MessageSessionsListed  = "%d session(s) listed for %s!"
	MessageNoSessions      = "No sessions scheduled for %s yet!"
	MessageNoMatchAthletes = "The keywords does not seem to match any athletes."
	MessageNoMatchTeams    = "The keywords does not seem to match any teams."
)

// App is the command validator. It is not safe for concurrent use.
type App struct {
	roster   *roster.Roster
	views    *view.Views
	enforcer *teams.Enforcer
	detector *schedule.Detector
	clock    clockwork.Clock
}

// NewApp creates an App over r. The clock decides "today" for athlete dates of birth.
func NewApp(r *roster.Roster, clock clockwork.Clock) *App {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &App{
		roster:   r,
		views:    view.Attach(r),
		enforcer: teams.NewEnforcer(r),
		detector: schedule.NewDetector(),
		clock:    clock,
	}
}

// Roster returns the roster the app commits to.
func (a *App) Roster() *roster.Roster { return a.roster }

// Views returns the live projections used for index addressing and display.
func (a *App) Views() *view.Views { return a.views }

// AddAthlete validates and adds a new athlete.
func (a *App) AddAthlete(req AddAthleteRequest) (Result, error) {
	athlete, err := models.NewAthlete(req.Athlete, a.clock)
	if err != nil {
		return Result{}, err
	}
	if err := a.roster.AddAthlete(athlete); err != nil {
		return Result{}, err
	}

	log.Info().Str("athlete", athlete.Name().String()).Msg("added athlete")
	return Result{
		Message:  fmt.Sprintf(MessageAthleteAdded, athlete),
		Athletes: []models.Athlete{athlete},
	}, nil
}

// EditAthlete applies an update to an athlete and to every team it is on.
func (a *App) EditAthlete(req EditAthleteRequest) (Result, error) {
	if req.Update.IsEmpty() {
		return Result{}, apperrors.New(apperrors.CodeValidation, MessageNothingToEdit)
	}
	old, err := a.resolveAthlete(req.Athlete)
	if err != nil {
		return Result{}, err
	}
	edited, err := old.Apply(req.Update, a.clock)
	if err != nil {
		return Result{}, err
	}
	if err := a.roster.SetAthlete(old, edited); err != nil {
		return Result{}, err
	}

	log.Info().
		Str("athlete", old.Name().String()).
		Str("edited", edited.Name().String()).
		Msg("edited athlete")
	return Result{
		Message:  fmt.Sprintf(MessageAthleteEdited, edited),
		Athletes: []models.Athlete{edited},
	}, nil
}

// DeleteAthlete removes an athlete that is on no team.
func (a *App) DeleteAthlete(req DeleteAthleteRequest) (Result, error) {
	athlete, err := a.resolveAthlete(req.Athlete)
	if err != nil {
		return Result{}, err
	}
	if err := a.roster.RemoveAthlete(athlete); err != nil {
		return Result{}, err
	}

	log.Info().Str("athlete", athlete.Name().String()).Msg("deleted athlete")
	return Result{
		Message:  fmt.Sprintf(MessageAthleteDeleted, athlete),
		Athletes: []models.Athlete{athlete},
	}, nil
}

// FormTeam resolves the member selectors and adds the team if every team
// rule holds.
func (a *App) FormTeam(req FormTeamRequest) (Result, error) {
	members, err := a.resolveAthletes(req.Members)
	if err != nil {
		return Result{}, err
	}
	team, err := a.enforcer.ValidateFormation(teams.FormationRequest{Name: req.Name, Members: members})
	if err != nil {
		return Result{}, err
	}
	if err := a.roster.AddTeam(team); err != nil {
		return Result{}, err
	}

	log.Info().Str("team", team.Name().String()).Msg("formed team")
	return Result{
		Message: fmt.Sprintf(MessageTeamFormed, team),
		Teams:   []models.Team{team},
	}, nil
}

// DisbandTeam removes a team. Its members stay on the roster.
func (a *App) DisbandTeam(req DisbandTeamRequest) (Result, error) {
	team, err := a.resolveTeam(req.Team)
	if err != nil {
		return Result{}, err
	}
	if err := a.roster.RemoveTeam(team); err != nil {
		return Result{}, err
	}

	log.Info().Str("team", team.Name().String()).Msg("disbanded team")
	return Result{
		Message: fmt.Sprintf(MessageTeamDisbanded, team.Name()),
		Teams:   []models.Team{team},
	}, nil
}

// RenameTeam gives a team a new name that no other team uses.
func (a *App) RenameTeam(req RenameTeamRequest) (Result, error) {
	team, err := a.resolveTeam(req.Team)
	if err != nil {
		return Result{}, err
	}
	renamed, err := a.enforcer.ValidateRename(teams.RenameRequest{Team: team, NewName: req.NewName})
	if err != nil {
		return Result{}, err
	}
	if err := a.roster.ReplaceTeam(team, renamed); err != nil {
		return Result{}, err
	}

	log.Info().Str("team", team.Name().String()).Str("renamed", renamed.Name().String()).Msg("renamed team")
	return Result{
		Message: fmt.Sprintf(MessageTeamRenamed, team.Name(), renamed.Name()),
		Teams:   []models.Team{renamed},
	}, nil
}

// SwapMember replaces one team member with an athlete on no other team.
func (a *App) SwapMember(req SwapMemberRequest) (Result, error) {
	team, err := a.resolveTeam(req.Team)
	if err != nil {
		return Result{}, err
	}
	outgoing, err := a.resolveAthlete(req.Outgoing)
	if err != nil {
		return Result{}, err
	}
	replacement, err := a.resolveAthlete(req.Replacement)
	if err != nil {
		return Result{}, err
	}
	swapped, err := a.enforcer.ValidateMemberSwap(teams.SwapRequest{
		Team:        team,
		Outgoing:    outgoing,
		Replacement: replacement,
	})
	if err != nil {
		return Result{}, err
	}
	if err := a.roster.ReplaceTeam(team, swapped); err != nil {
		return Result{}, err
	}

	log.Info().
		Str("team", team.Name().String()).
		Str("outgoing", outgoing.Name().String()).
		Str("replacement", replacement.Name().String()).
		Msg("swapped team member")
	return Result{
		Message: fmt.Sprintf(MessageMemberSwapped, outgoing.Name(), replacement.Name(), team.Name()),
		Teams:   []models.Team{swapped},
	}, nil
}

// ScheduleSession adds a session to a team's calendar unless it duplicates
// or overlaps an existing one.
func (a *App) ScheduleSession(req ScheduleSessionRequest) (Result, error) {
	team, err := a.resolveTeam(req.Team)
	if err != nil {
		return Result{}, err
	}
	session, err := models.NewSession(req.Location, req.Start, req.End)
	if err != nil {
		return Result{}, err
	}
	scheduled, err := a.detector.Schedule(team, session)
	if err != nil {
		return Result{}, err
	}
	if err := a.roster.ReplaceTeam(team, scheduled); err != nil {
		return Result{}, err
	}

	log.Info().
		Str("team", team.Name().String()).
		Str("location", session.Location().String()).
		Time("start", session.Start()).
		Time("end", session.End()).
		Msg("scheduled session")
	return Result{
		Message:  fmt.Sprintf(MessageSessionAdded, team.Name(), session),
		Teams:    []models.Team{scheduled},
		Sessions: []models.Session{session},
	}, nil
}

// CancelSession removes the session at a 1-based ordinal of the team's
// ordered calendar.
func (a *App) CancelSession(req CancelSessionRequest) (Result, error) {
	team, err := a.resolveTeam(req.Team)
	if err != nil {
		return Result{}, err
	}
	next, removed, err := a.detector.Cancel(team, req.Ordinal)
	if err != nil {
		return Result{}, err
	}
	if err := a.roster.ReplaceTeam(team, next); err != nil {
		return Result{}, err
	}

	log.Info().
		Str("team", team.Name().String()).
		Int("ordinal", req.Ordinal).
		Str("location", removed.Location().String()).
		Msg("cancelled session")
	return Result{
		Message:  fmt.Sprintf(MessageSessionDeleted, removed, team.Name()),
		Teams:    []models.Team{next},
		Sessions: []models.Session{removed},
	}, nil
}

// ListSessions returns a team's calendar in display order.
func (a *App) ListSessions(req ListSessionsRequest) (Result, error) {
	team, err := a.resolveTeam(req.Team)
	if err != nil {
		return Result{}, err
	}
	sessions := schedule.Order(team.Sessions())
	if len(sessions) == 0 {
		return Result{Message: fmt.Sprintf(MessageNoSessions, team.Name()), Empty: true, Teams: []models.Team{team}}, nil
	}
	return Result{
		Message:  fmt.Sprintf(MessageSessionsListed, len(sessions), team.Name()),
		Teams:    []models.Team{team},
		Sessions: sessions,
	}, nil
}

// ListAthletes clears any athlete filter.
func (a *App) ListAthletes() Result {
	a.views.Athletes.ShowAll()
	if a.roster.AthletesEmpty() {
		return Result{Message: MessageNoAthletes, Empty: true}
	}
	return Result{Message: MessageListedAthletes, Athletes: a.views.Athletes.Items()}
}

// ListTeams clears any team filter.
func (a *App) ListTeams() Result {
	a.views.Teams.ShowAll()
	if a.roster.TeamsEmpty() {
		return Result{Message: MessageNoTeams, Empty: true}
	}
	return Result{Message: MessageListedTeams, Teams: a.views.Teams.Items()}
}

// FindAthletes filters the athlete view. Matching nothing is not an error.
func (a *App) FindAthletes(req FindAthletesRequest) (Result, error) {
	pred, err := req.Predicate()
	if err != nil {
		return Result{}, err
	}
	a.views.Athletes.SetPredicate(pred)

	switch {
	case a.roster.AthletesEmpty():
		return Result{Message: MessageNoAthletes, Empty: true}, nil
	case a.views.Athletes.Len() == 0:
		return Result{Message: MessageNoMatchAthletes}, nil
	}
	items := a.views.Athletes.Items()
	return Result{Message: fmt.Sprintf(MessageAthletesListed, len(items)), Athletes: items}, nil
}

// FindTeams filters the team view. Matching nothing is not an error.
func (a *App) FindTeams(req FindTeamsRequest) (Result, error) {
	pred, err := req.Predicate()
	if err != nil {
		return Result{}, err
	}
	a.views.Teams.SetPredicate(pred)

	switch {
	case a.roster.TeamsEmpty():
		return Result{Message: MessageNoTeams, Empty: true}, nil
	case a.views.Teams.Len() == 0:
		return Result{Message: MessageNoMatchTeams}, nil
	}
	items := a.views.Teams.Items()
	return Result{Message: fmt.Sprintf(MessageTeamsListed, len(items)), Teams: items}, nil
}
