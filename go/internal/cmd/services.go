package main

import (
	"context"
	"fmt"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"

	"github.com/relaycoach/relaycoach/go/internal/coach"
	"github.com/relaycoach/relaycoach/go/internal/events"
	"github.com/relaycoach/relaycoach/go/internal/gateway"
	"github.com/relaycoach/relaycoach/go/internal/roster"
	"github.com/relaycoach/relaycoach/go/internal/storage"
	"github.com/relaycoach/relaycoach/go/internal/storage/jsonfile"
	"github.com/relaycoach/relaycoach/go/internal/storage/postgres"
)

type Services struct {
	Roster      *coach.Service
	Connections *gateway.ConnectionManager
	Stream      *gateway.RosterStream

	closers []func() error
}

// setupServices wires store → app → service → gateway and loads the saved roster.
func setupServices(ctx context.Context, cfg Config) (*Services, error) {
	clock := clockwork.NewRealClock()
	s := &Services{}

	store, err := s.setupStore(ctx, cfg.Storage)
	if err != nil {
		s.Close()
		return nil, err
	}
	publisher, err := s.setupPublisher(ctx, cfg.Events)
	if err != nil {
		s.Close()
		return nil, err
	}

	app := coach.NewApp(roster.New(), clock)
	s.Roster = coach.NewService(app, store, publisher, clock)
	if err := s.Roster.Load(ctx); err != nil {
		s.Close()
		return nil, err
	}

	s.Connections = gateway.NewConnectionManager(cfg.Gateway.connectionConfig(), clock)
	s.Stream = gateway.NewRosterStream(s.Roster, s.Connections, clock)
	s.closers = append(s.closers, func() error {
		s.Stream.Close()
		return nil
	})
	return s, nil
}

func (s *Services) setupStore(ctx context.Context, cfg StorageConfig) (storage.Store, error) {
	switch cfg.Backend {
	case BackendPostgres:
		db, err := setupDatabase(ctx)
		if err != nil {
			return nil, err
		}
		s.closers = append(s.closers, db.Close)
		store := postgres.NewStore(db)
		if cfg.Migrate {
			if err := store.Migrate(ctx); err != nil {
				return nil, err
			}
		}
		return store, nil
	case BackendJSON:
		log.Info().Str("path", cfg.Path).Msg("using json file storage")
		return jsonfile.NewStore(cfg.Path), nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Backend)
	}
}

func (s *Services) setupPublisher(ctx context.Context, cfg EventsConfig) (events.Publisher, error) {
	if !cfg.NATS {
		return events.NewLogPublisher(), nil
	}
	publisher, err := events.NewJetStreamPublisher(ctx, cfg.JetStream)
	if err != nil {
		return nil, err
	}
	s.closers = append(s.closers, publisher.Close)
	return publisher, nil
}

// Close releases resources in reverse order of acquisition.
func (s *Services) Close() {
	for i := len(s.closers) - 1; i >= 0; i-- {
		if err := s.closers[i](); err != nil {
			log.Error().Err(err).Msg("failed to close resource")
		}
	}
	s.closers = nil
}
