package gateway

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"

	"github.com/relaycoach/relaycoach/go/internal/coach"
	"github.com/relaycoach/relaycoach/go/internal/models"
)

// MessageTypeRosterSnapshot tags every message on /ws/roster.
const MessageTypeRosterSnapshot = "roster_snapshot"

// RosterSnapshot is the displayed athlete and team lists.
type RosterSnapshot struct {
	Type     string                `json:"type"`
	Sequence int                   `json:"sequence"`
	Athletes []models.AthleteInput `json:"athletes"`
	Teams    []coach.TeamDTO       `json:"teams"`
	SentAt   time.Time             `json:"sent_at"`
}

// RosterSource is implemented by *coach.Service.
type RosterSource interface {
	Snapshot() ([]models.Athlete, []models.Team)
	SubscribeViews(onAthletes func([]models.Athlete), onTeams func([]models.Team)) (unsubscribe func())
}

// RosterStream mirrors the service's projections and broadcasts the full
// snapshot whenever either list changes.
type RosterStream struct {
	manager *ConnectionManager
	clock   clockwork.Clock

	mu          sync.Mutex
	state       RosterSnapshot
	athletesSet bool
	teamsSet    bool
	unsubscribe func()
}

// NewRosterStream subscribes to source and seeds the manager with the current state.
func NewRosterStream(source RosterSource, manager *ConnectionManager, clock clockwork.Clock) *RosterStream {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	s := &RosterStream{
		manager: manager,
		clock:   clock,
		state: RosterSnapshot{
			Type:     MessageTypeRosterSnapshot,
			Athletes: []models.AthleteInput{},
			Teams:    []coach.TeamDTO{},
		},
	}
	s.unsubscribe = source.SubscribeViews(s.onAthletes, s.onTeams)

	// Callbacks that fired since subscribing carry newer data than this read.
	athletes, teams := source.Snapshot()
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.athletesSet {
		s.state.Athletes = coach.AthleteDTOs(athletes)
	}
	if !s.teamsSet {
		s.state.Teams = coach.TeamDTOs(teams)
	}
	s.broadcastLocked()
	return s
}

func (s *RosterStream) onAthletes(athletes []models.Athlete) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.athletesSet = true
	s.state.Athletes = coach.AthleteDTOs(athletes)
	s.broadcastLocked()
}

func (s *RosterStream) onTeams(teams []models.Team) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.teamsSet = true
	s.state.Teams = coach.TeamDTOs(teams)
	s.broadcastLocked()
}

func (s *RosterStream) broadcastLocked() {
	s.state.Sequence++
	s.state.SentAt = s.clock.Now()
	payload, err := json.Marshal(s.state)
	if err != nil {
		log.Error().Err(err).Msg("failed to marshal roster snapshot")
		return
	}
	s.manager.Broadcast(payload)
}

// Current returns a copy of the last broadcast snapshot.
func (s *RosterStream) Current() RosterSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Close stops following the service and disconnects every client.
func (s *RosterStream) Close() {
	if s.unsubscribe != nil {
		s.unsubscribe()
	}
	s.manager.Close()
}
