package postgres

// Schema is applied by Migrate and by the seed tool. Positions keep the roster's insertion order.
const Schema = `
CREATE TABLE IF NOT EXISTS athletes (
	position  INTEGER PRIMARY KEY,
	name      TEXT NOT NULL,
	name_key  TEXT NOT NULL UNIQUE,
	dob       TEXT NOT NULL,
	phone     TEXT NOT NULL,
	email     TEXT NOT NULL,
	address   TEXT NOT NULL,
	school    TEXT,
	role      TEXT,
	height    TEXT,
	weight    TEXT,
	tags      JSONB
);

CREATE TABLE IF NOT EXISTS teams (
	position  INTEGER PRIMARY KEY,
	name      TEXT NOT NULL,
	name_key  TEXT NOT NULL UNIQUE,
	members   TEXT[] NOT NULL
);

CREATE TABLE IF NOT EXISTS team_sessions (
	team_key  TEXT NOT NULL REFERENCES teams (name_key) ON DELETE CASCADE,
	location  TEXT NOT NULL,
	starts_at TIMESTAMPTZ NOT NULL,
	ends_at   TIMESTAMPTZ NOT NULL,
	CHECK (starts_at < ends_at)
);
`
