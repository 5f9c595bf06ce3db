package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jonboulle/clockwork"
	"github.com/spf13/pflag"

	"github.com/relaycoach/relaycoach/go/internal/dbconfig"
	"github.com/relaycoach/relaycoach/go/internal/models"
	"github.com/relaycoach/relaycoach/go/internal/storage"
	"github.com/relaycoach/relaycoach/go/internal/storage/postgres"
)

type summary struct {
	athletesInserted, athletesSkipped int
	teamsInserted, teamsSkipped       int
	sessions                          int
}

func main() {
	file := pflag.StringP("file", "f", "go/internal/assets/roster.json", "JSON roster snapshot to seed from")
	migrate := pflag.Bool("migrate", true, "create the tables before seeding")
	pflag.Parse()

	// 1) Load and validate the snapshot
	snap, err := readSnapshot(*file)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}

	// 2) Connect using shared dbconfig
	ctx := context.Background()
	cfg, err := dbconfig.NewConfigFromEnv()
	if err != nil {
		fmt.Fprintf(os.Stderr, "read db config: %v\n", err)
		os.Exit(1)
	}
	pool, err := pgxpool.New(ctx, cfg.DSN())
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to connect: %v\n", err)
		os.Exit(1)
	}
	defer pool.Close()

	if *migrate {
		if _, err := pool.Exec(ctx, postgres.Schema); err != nil {
			fmt.Fprintf(os.Stderr, "apply schema: %v\n", err)
			os.Exit(1)
		}
	}

	// 3) Upsert in one transaction
	var sum summary
	err = pgx.BeginFunc(ctx, pool, func(tx pgx.Tx) error {
		var err error
		sum, err = seed(ctx, tx, snap)
		return err
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "seed roster: %v\n", err)
		os.Exit(1)
	}

	// 4) Print summary
	fmt.Printf(
		"Roster seed complete: athletes %d inserted, %d skipped; teams %d inserted, %d skipped; %d sessions\n",
		sum.athletesInserted, sum.athletesSkipped, sum.teamsInserted, sum.teamsSkipped, sum.sessions,
	)
}

// readSnapshot decodes path and checks it rebuilds into a consistent roster.
func readSnapshot(path string) (storage.Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return storage.Snapshot{}, fmt.Errorf("read JSON: %w", err)
	}
	var snap storage.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return storage.Snapshot{}, fmt.Errorf("unmarshal JSON: %w", err)
	}
	if _, err := snap.Restore(clockwork.NewRealClock()); err != nil {
		return storage.Snapshot{}, fmt.Errorf("invalid roster %s: %w", path, err)
	}
	return snap, nil
}

// seed appends rows after the existing ones. Athletes and teams already
// present by name are skipped; a skipped team keeps its stored sessions.
func seed(ctx context.Context, tx pgx.Tx, snap storage.Snapshot) (summary, error) {
	var sum summary

	var next int
	if err := tx.QueryRow(ctx, `SELECT COALESCE(MAX(position), -1) + 1 FROM athletes`).Scan(&next); err != nil {
		return sum, fmt.Errorf("read athlete position: %w", err)
	}
	for _, a := range snap.Athletes {
		var tags any
		if len(a.Tags) > 0 {
			tags = a.Tags
		}
		tag, err := tx.Exec(ctx, `
			INSERT INTO athletes (position, name, name_key, dob, phone, email, address, school, role, height, weight, tags)
			VALUES ($1, $2, $3, $4, $5, $6, $7, NULLIF($8, ''), NULLIF($9, ''), NULLIF($10, ''), NULLIF($11, ''), $12)
			ON CONFLICT (name_key) DO NOTHING`,
			next, a.Name, models.Key(a.Name), a.Dob, a.Phone, a.Email, a.Address,
			a.School, a.Role, a.Height, a.Weight, tags,
		)
		if err != nil {
			return sum, fmt.Errorf("insert athlete %s: %w", a.Name, err)
		}
		if tag.RowsAffected() == 1 {
			sum.athletesInserted++
			next++
		} else {
			sum.athletesSkipped++
		}
	}

	if err := tx.QueryRow(ctx, `SELECT COALESCE(MAX(position), -1) + 1 FROM teams`).Scan(&next); err != nil {
		return sum, fmt.Errorf("read team position: %w", err)
	}
	for _, t := range snap.Teams {
		key := models.Key(t.Name)
		tag, err := tx.Exec(ctx, `
			INSERT INTO teams (position, name, name_key, members) VALUES ($1, $2, $3, $4)
			ON CONFLICT (name_key) DO NOTHING`,
			next, t.Name, key, t.Members,
		)
		if err != nil {
			return sum, fmt.Errorf("insert team %s: %w", t.Name, err)
		}
		if tag.RowsAffected() == 0 {
			sum.teamsSkipped++
			continue
		}
		sum.teamsInserted++
		next++

		for _, s := range t.Sessions {
			if _, err := tx.Exec(ctx,
				`INSERT INTO team_sessions (team_key, location, starts_at, ends_at) VALUES ($1, $2, $3, $4)`,
				key, s.Location, s.Start, s.End,
			); err != nil {
				return sum, fmt.Errorf("insert session for team %s: %w", t.Name, err)
			}
			sum.sessions++
		}
	}
	return sum, nil
}
