package persistence

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// Schema and seed statements applied at startup. Directory data is fixed
// reference data; ON CONFLICT keeps restarts idempotent.
var migrations = []struct {
	name string
	sql  string
}{
	{
		name: "001_departments",
		sql: `
        CREATE TABLE IF NOT EXISTS departments (
            id   INTEGER PRIMARY KEY,
            name TEXT NOT NULL UNIQUE
        );
        INSERT INTO departments (id, name) VALUES
            (1, 'Lending'),
            (2, 'Funding'),
            (3, 'Operations'),
            (4, 'Engineering')
        ON CONFLICT (id) DO NOTHING;`,
	},
	{
		name: "002_locations",
		sql: `
        CREATE TABLE IF NOT EXISTS locations (
            id   INTEGER PRIMARY KEY,
            name TEXT NOT NULL UNIQUE
        );
        INSERT INTO locations (id, name) VALUES
            (1, 'Jakarta'),
            (2, 'Depok'),
            (3, 'Surabaya')
        ON CONFLICT (id) DO NOTHING;`,
	},
	{
		name: "003_basic_info",
		sql: `
        CREATE TABLE IF NOT EXISTS basic_info (
            id          SERIAL PRIMARY KEY,
            full_name   TEXT NOT NULL,
            email       TEXT NOT NULL,
            department  TEXT NOT NULL,
            role        TEXT NOT NULL,
            employee_id TEXT NOT NULL
        );`,
	},
	{
		name: "004_details",
		sql: `
        CREATE TABLE IF NOT EXISTS details (
            id              SERIAL PRIMARY KEY,
            basic_info_id   INTEGER NOT NULL REFERENCES basic_info(id),
            photo           TEXT NOT NULL DEFAULT '',
            photo_filename  TEXT NOT NULL DEFAULT '',
            employment_type TEXT NOT NULL,
            office_location TEXT NOT NULL,
            notes           TEXT NOT NULL DEFAULT ''
        );`,
	},
	{
		name: "005_operators",
		sql: `
        CREATE TABLE IF NOT EXISTS operators (
            id            UUID PRIMARY KEY DEFAULT gen_random_uuid(),
            name          TEXT NOT NULL,
            email         TEXT NOT NULL UNIQUE,
            password_hash TEXT NOT NULL,
            role          TEXT NOT NULL,
            created_at    TIMESTAMPTZ NOT NULL DEFAULT NOW(),
            updated_at    TIMESTAMPTZ NOT NULL DEFAULT NOW()
        );`,
	},
}

// RunMigrations applies the embedded schema and seed statements in order.
func RunMigrations(ctx context.Context, pool *pgxpool.Pool, logger *zap.Logger) error {
	if pool == nil {
		logger.Warn("no postgres pool available; skipping migrations")
		return nil
	}

	for _, migration := range migrations {
		logger.Info("applying migration", zap.String("name", migration.name))
		if _, err := pool.Exec(ctx, migration.sql); err != nil {
			return fmt.Errorf("apply migration %s: %w", migration.name, err)
		}
	}

	logger.Info("migrations applied", zap.Int("count", len(migrations)))
	return nil
}
