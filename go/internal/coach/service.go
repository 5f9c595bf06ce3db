package coach

import (
	"context"
	"fmt"
	"sync"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"

	"github.com/relaycoach/relaycoach/go/internal/events"
	"github.com/relaycoach/relaycoach/go/internal/models"
	"github.com/relaycoach/relaycoach/go/internal/storage"
)

// Service serialises access to an App. Every mutation is saved before the
// call returns; if saving fails the roster is rolled back. Events are
// published after a successful save and publish failures are only logged.
type Service struct {
	mu        sync.RWMutex
	app       *App
	store     storage.Store
	publisher events.Publisher
	clock     clockwork.Clock
}

// NewService creates a new Service. store and publisher may be nil.
func NewService(app *App, store storage.Store, publisher events.Publisher, clock clockwork.Clock) *Service {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Service{
		app:       app,
		store:     store,
		publisher: publisher,
		clock:     clock,
	}
}

// Load replaces the roster with the store's snapshot.
func (s *Service) Load(ctx context.Context) error {
	if s.store == nil {
		return nil
	}
	snap, err := s.store.Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to load roster: %w", err)
	}
	loaded, err := snap.Restore(s.app.clock)
	if err != nil {
		return fmt.Errorf("failed to restore roster: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.app.roster.Restore(loaded)
	log.Info().
		Int("athletes", len(snap.Athletes)).
		Int("teams", len(snap.Teams)).
		Msg("loaded roster")
	return nil
}

// Snapshot returns the displayed athletes and teams.
func (s *Service) Snapshot() ([]models.Athlete, []models.Team) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.app.views.Athletes.Items(), s.app.views.Teams.Items()
}

// SubscribeViews registers callbacks for projection changes. Callbacks run
// while the service lock is held and must not block or call back into the service.
func (s *Service) SubscribeViews(onAthletes func([]models.Athlete), onTeams func([]models.Team)) (unsubscribe func()) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var unsubs []func()
	if onAthletes != nil {
		unsubs = append(unsubs, s.app.views.Athletes.Subscribe(onAthletes))
	}
	if onTeams != nil {
		unsubs = append(unsubs, s.app.views.Teams.Subscribe(onTeams))
	}
	return func() {
		for _, u := range unsubs {
			u()
		}
	}
}

// eventSpec names the event a successful mutation publishes.
type eventSpec struct {
	typ  string
	team func(Result) string
}

func (s *Service) mutate(ctx context.Context, spec eventSpec, op func() (Result, error)) (Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	backup := s.app.roster.Clone()
	res, err := op()
	if err != nil {
		return Result{}, err
	}

	if s.store != nil {
		if err := s.store.Save(ctx, storage.FromRoster(s.app.roster)); err != nil {
			s.app.roster.Restore(backup)
			log.Error().Err(err).Str("event_type", spec.typ).Msg("failed to persist roster, rolled back")
			return Result{}, fmt.Errorf("failed to persist roster: %w", err)
		}
	}

	s.publish(ctx, spec, res)
	return res, nil
}

func (s *Service) publish(ctx context.Context, spec eventSpec, res Result) {
	if s.publisher == nil {
		return
	}
	team := ""
	if spec.team != nil {
		team = spec.team(res)
	}
	event, err := events.New(s.clock, spec.typ, team, toResultDTO(res))
	if err != nil {
		log.Error().Err(err).Str("event_type", spec.typ).Msg("failed to build event")
		return
	}
	if err := s.publisher.Publish(ctx, event); err != nil {
		log.Error().Err(err).Str("event_type", spec.typ).Str("event_id", event.ID.String()).Msg("failed to publish event")
	}
}

func firstTeam(res Result) string {
	if len(res.Teams) == 0 {
		return ""
	}
	return res.Teams[0].Name().String()
}

func (s *Service) AddAthlete(ctx context.Context, req AddAthleteRequest) (Result, error) {
	return s.mutate(ctx, eventSpec{typ: events.AthleteAdded}, func() (Result, error) {
		return s.app.AddAthlete(req)
	})
}

func (s *Service) EditAthlete(ctx context.Context, req EditAthleteRequest) (Result, error) {
	return s.mutate(ctx, eventSpec{typ: events.AthleteEdited}, func() (Result, error) {
		return s.app.EditAthlete(req)
	})
}

func (s *Service) DeleteAthlete(ctx context.Context, req DeleteAthleteRequest) (Result, error) {
	return s.mutate(ctx, eventSpec{typ: events.AthleteDeleted}, func() (Result, error) {
		return s.app.DeleteAthlete(req)
	})
}

func (s *Service) FormTeam(ctx context.Context, req FormTeamRequest) (Result, error) {
	return s.mutate(ctx, eventSpec{typ: events.TeamFormed, team: firstTeam}, func() (Result, error) {
		return s.app.FormTeam(req)
	})
}

func (s *Service) DisbandTeam(ctx context.Context, req DisbandTeamRequest) (Result, error) {
	return s.mutate(ctx, eventSpec{typ: events.TeamDisbanded, team: firstTeam}, func() (Result, error) {
		return s.app.DisbandTeam(req)
	})
}

func (s *Service) RenameTeam(ctx context.Context, req RenameTeamRequest) (Result, error) {
	return s.mutate(ctx, eventSpec{typ: events.TeamUpdated, team: firstTeam}, func() (Result, error) {
		return s.app.RenameTeam(req)
	})
}

func (s *Service) SwapMember(ctx context.Context, req SwapMemberRequest) (Result, error) {
	return s.mutate(ctx, eventSpec{typ: events.TeamUpdated, team: firstTeam}, func() (Result, error) {
		return s.app.SwapMember(req)
	})
}

func (s *Service) ScheduleSession(ctx context.Context, req ScheduleSessionRequest) (Result, error) {
	return s.mutate(ctx, eventSpec{typ: events.SessionScheduled, team: firstTeam}, func() (Result, error) {
		return s.app.ScheduleSession(req)
	})
}

func (s *Service) CancelSession(ctx context.Context, req CancelSessionRequest) (Result, error) {
	return s.mutate(ctx, eventSpec{typ: events.SessionCancelled, team: firstTeam}, func() (Result, error) {
		return s.app.CancelSession(req)
	})
}

// Listing and finding change the displayed lists, so they take the write lock too.

func (s *Service) ListAthletes(ctx context.Context) Result {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.app.ListAthletes()
}

func (s *Service) ListTeams(ctx context.Context) Result {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.app.ListTeams()
}

func (s *Service) ListSessions(ctx context.Context, req ListSessionsRequest) (Result, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.app.ListSessions(req)
}

func (s *Service) FindAthletes(ctx context.Context, req FindAthletesRequest) (Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.app.FindAthletes(req)
}

func (s *Service) FindTeams(ctx context.Context, req FindTeamsRequest) (Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.app.FindTeams(req)
}
