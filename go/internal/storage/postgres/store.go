// Package postgres stores roster snapshots in Postgres through database/sql
// and lib/pq. Every Save replaces the stored roster in one transaction.
package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"
	"github.com/sqlc-dev/pqtype"

	"github.com/relaycoach/relaycoach/go/internal/models"
	"github.com/relaycoach/relaycoach/go/internal/sqlutil"
	"github.com/relaycoach/relaycoach/go/internal/storage"
)

// Store is a storage.Store backed by Postgres.
type Store struct {
	db *sql.DB
}

// NewStore wraps an open database handle.
func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

var _ storage.Store = (*Store)(nil)

// Migrate creates the tables if they do not exist.
func (s *Store) Migrate(ctx context.Context) error {
	err := sqlutil.Run(ctx, s.db, newQueries, func(q *queries) error {
		_, err := q.tx.ExecContext(ctx, Schema)
		return err
	})
	if err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}
	return nil
}

// queries binds the statements to a transaction.
type queries struct {
	tx *sql.Tx
}

func newQueries(tx *sql.Tx) *queries { return &queries{tx: tx} }

// Save replaces the stored roster with snap.
func (s *Store) Save(ctx context.Context, snap storage.Snapshot) error {
	err := sqlutil.RunTx(ctx, s.db, &sql.TxOptions{Isolation: sql.LevelSerializable}, newQueries, func(q *queries) error {
		if err := q.clear(ctx); err != nil {
			return err
		}
		for i, a := range snap.Athletes {
			if err := q.insertAthlete(ctx, i, a); err != nil {
				return fmt.Errorf("failed to insert athlete %s: %w", a.Name, err)
			}
		}
		for i, t := range snap.Teams {
			if err := q.insertTeam(ctx, i, t); err != nil {
				return fmt.Errorf("failed to insert team %s: %w", t.Name, err)
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to save roster: %w", err)
	}
	return nil
}

func (q *queries) clear(ctx context.Context) error {
	for _, table := range []string{"team_sessions", "teams", "athletes"} {
		if _, err := q.tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}
	return nil
}

func (q *queries) insertAthlete(ctx context.Context, position int, a models.AthleteInput) error {
	tags, err := sqlutil.ToNullJSON(a.Tags)
	if err != nil {
		return err
	}
	_, err = q.tx.ExecContext(ctx, `
		INSERT INTO athletes (position, name, name_key, dob, phone, email, address, school, role, height, weight, tags)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		position, a.Name, models.Key(a.Name), a.Dob, a.Phone, a.Email, a.Address,
		sqlutil.NullIfEmpty(a.School), sqlutil.NullIfEmpty(a.Role),
		sqlutil.NullIfEmpty(a.Height), sqlutil.NullIfEmpty(a.Weight), tags,
	)
	return err
}

func (q *queries) insertTeam(ctx context.Context, position int, t storage.TeamRecord) error {
	key := models.Key(t.Name)
	if _, err := q.tx.ExecContext(ctx,
		`INSERT INTO teams (position, name, name_key, members) VALUES ($1, $2, $3, $4)`,
		position, t.Name, key, pq.Array(t.Members),
	); err != nil {
		return err
	}
	for _, s := range t.Sessions {
		if _, err := q.tx.ExecContext(ctx,
			`INSERT INTO team_sessions (team_key, location, starts_at, ends_at) VALUES ($1, $2, $3, $4)`,
			key, s.Location, s.Start, s.End,
		); err != nil {
			return err
		}
	}
	return nil
}

// Load reads the stored roster in insertion order.
func (s *Store) Load(ctx context.Context) (storage.Snapshot, error) {
	snap := storage.Snapshot{Version: storage.SnapshotVersion}

	athletes, err := s.loadAthletes(ctx)
	if err != nil {
		return storage.Snapshot{}, fmt.Errorf("failed to load athletes: %w", err)
	}
	snap.Athletes = athletes

	teams, err := s.loadTeams(ctx)
	if err != nil {
		return storage.Snapshot{}, fmt.Errorf("failed to load teams: %w", err)
	}
	snap.Teams = teams
	return snap, nil
}

func (s *Store) loadAthletes(ctx context.Context) ([]models.AthleteInput, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT name, dob, phone, email, address, school, role, height, weight, tags
		FROM athletes ORDER BY position`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.AthleteInput
	for rows.Next() {
		var (
			a                            models.AthleteInput
			school, role, height, weight sql.NullString
			tags                         pqtype.NullRawMessage
		)
		if err := rows.Scan(&a.Name, &a.Dob, &a.Phone, &a.Email, &a.Address,
			&school, &role, &height, &weight, &tags); err != nil {
			return nil, err
		}
		a.School = sqlutil.FromSqlString(school, "")
		a.Role = sqlutil.FromSqlString(role, "")
		a.Height = sqlutil.FromSqlString(height, "")
		a.Weight = sqlutil.FromSqlString(weight, "")
		if a.Tags, err = sqlutil.FromNullJSON[string](tags); err != nil {
			return nil, fmt.Errorf("failed to decode tags of %s: %w", a.Name, err)
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (s *Store) loadTeams(ctx context.Context) ([]storage.TeamRecord, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT name, name_key, members FROM teams ORDER BY position`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var (
		out  []storage.TeamRecord
		keys []string
	)
	for rows.Next() {
		var (
			t   storage.TeamRecord
			key string
		)
		if err := rows.Scan(&t.Name, &key, pq.Array(&t.Members)); err != nil {
			return nil, err
		}
		out = append(out, t)
		keys = append(keys, key)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i, key := range keys {
		sessions, err := s.loadSessions(ctx, key)
		if err != nil {
			return nil, fmt.Errorf("failed to load sessions of %s: %w", out[i].Name, err)
		}
		out[i].Sessions = sessions
	}
	return out, nil
}

func (s *Store) loadSessions(ctx context.Context, teamKey string) ([]storage.SessionRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT location, starts_at, ends_at FROM team_sessions
		WHERE team_key = $1 ORDER BY starts_at, ends_at, location`, teamKey)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []storage.SessionRecord
	for rows.Next() {
		var rec storage.SessionRecord
		if err := rows.Scan(&rec.Location, &rec.Start, &rec.End); err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}
