// Package storage converts the roster to and from plain records that
// persistence adapters can write losslessly.
package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/relaycoach/relaycoach/go/internal/models"
	"github.com/relaycoach/relaycoach/go/internal/roster"
	"github.com/relaycoach/relaycoach/go/internal/schedule"
	"github.com/relaycoach/relaycoach/go/internal/teams"
)

// SnapshotVersion is written into every snapshot.
const SnapshotVersion = 1

// Store persists whole roster snapshots.
type Store interface {
	Load(ctx context.Context) (Snapshot, error)
	Save(ctx context.Context, snapshot Snapshot) error
}

// SessionRecord is a session as stored.
type SessionRecord struct {
	Location string    `json:"location" yaml:"location"`
	Start    time.Time `json:"start" yaml:"start"`
	End      time.Time `json:"end" yaml:"end"`
}

// TeamRecord is a team as stored. Members are athlete names.
type TeamRecord struct {
	Name     string          `json:"name" yaml:"name"`
	Members  []string        `json:"members" yaml:"members"`
	Sessions []SessionRecord `json:"sessions,omitempty" yaml:"sessions,omitempty"`
}

// Snapshot is the full roster in insertion order.
type Snapshot struct {
	Version  int                   `json:"version" yaml:"version"`
	Athletes []models.AthleteInput `json:"athletes" yaml:"athletes"`
	Teams    []TeamRecord          `json:"teams" yaml:"teams"`
}

// FromRoster captures the content of r.
func FromRoster(r *roster.Roster) Snapshot {
	snap := Snapshot{Version: SnapshotVersion}
	for _, a := range r.Athletes() {
		snap.Athletes = append(snap.Athletes, a.Input())
	}
	for _, t := range r.Teams() {
		snap.Teams = append(snap.Teams, teamRecord(t))
	}
	return snap
}

func teamRecord(t models.Team) TeamRecord {
	rec := TeamRecord{Name: t.Name().String()}
	for _, m := range t.Members() {
		rec.Members = append(rec.Members, m.Name().String())
	}
	for _, s := range schedule.Order(t.Sessions()) {
		rec.Sessions = append(rec.Sessions, SessionRecord{
			Location: s.Location().String(),
			Start:    s.Start(),
			End:      s.End(),
		})
	}
	return rec
}

// Restore rebuilds a roster from the snapshot through the same validation
// a live roster applies: field rules, team invariants and session conflicts.
func (s Snapshot) Restore(clock clockwork.Clock) (*roster.Roster, error) {
	if s.Version > SnapshotVersion {
		return nil, fmt.Errorf("unsupported snapshot version %d", s.Version)
	}

	r := roster.New()
	for i, input := range s.Athletes {
		a, err := models.NewAthlete(input, clock)
		if err != nil {
			return nil, fmt.Errorf("athlete %d (%s): %w", i+1, input.Name, err)
		}
		if err := r.AddAthlete(a); err != nil {
			return nil, fmt.Errorf("athlete %d (%s): %w", i+1, input.Name, err)
		}
	}

	enforcer := teams.NewEnforcer(r)
	detector := schedule.NewDetector()
	for i, rec := range s.Teams {
		team, err := restoreTeam(r, enforcer, detector, rec)
		if err != nil {
			return nil, fmt.Errorf("team %d (%s): %w", i+1, rec.Name, err)
		}
		if err := r.AddTeam(team); err != nil {
			return nil, fmt.Errorf("team %d (%s): %w", i+1, rec.Name, err)
		}
	}
	return r, nil
}

func restoreTeam(r *roster.Roster, enforcer *teams.Enforcer, detector *schedule.Detector, rec TeamRecord) (models.Team, error) {
	members := make([]models.Athlete, 0, len(rec.Members))
	for _, name := range rec.Members {
		a, ok := r.Athlete(name)
		if !ok {
			return models.Team{}, fmt.Errorf("unknown member %q", name)
		}
		members = append(members, a)
	}

	team, err := enforcer.ValidateFormation(teams.FormationRequest{Name: rec.Name, Members: members})
	if err != nil {
		return models.Team{}, err
	}

	for _, sr := range rec.Sessions {
		session, err := models.NewSession(sr.Location, sr.Start, sr.End)
		if err != nil {
			return models.Team{}, err
		}
		if team, err = detector.Schedule(team, session); err != nil {
			return models.Team{}, err
		}
	}
	return team, nil
}
