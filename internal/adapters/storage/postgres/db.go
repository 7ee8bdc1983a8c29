package postgres

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"sort"
	"time"

	"animal-rescue/internal/domain/animals"

	_ "github.com/jackc/pgx/v5/stdlib"
)

//go:embed migrations/*.sql
var migrationFS embed.FS

// Open abre una conexión pool a Postgres usando pgx (database/sql).
func Open(dsn string) (*sql.DB, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxIdleTime(5 * time.Minute)
	db.SetConnMaxLifetime(30 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}

	return db, nil
}

// Migrate aplica los .sql embebidos en orden de nombre. Son idempotentes (IF NOT EXISTS).
func Migrate(ctx context.Context, db *sql.DB) error {
	names, err := fs.Glob(migrationFS, "migrations/*.sql")
	if err != nil {
		return err
	}
	sort.Strings(names)

	for _, name := range names {
		b, err := migrationFS.ReadFile(name)
		if err != nil {
			return fmt.Errorf("read migration %s: %w", name, err)
		}
		// sin args => pgx usa protocolo simple y acepta varios statements
		if _, err := db.ExecContext(ctx, string(b)); err != nil {
			return fmt.Errorf("apply migration %s: %w", name, err)
		}
	}
	return nil
}

// Setup migra y siembra el catálogo. Cualquier error corta el arranque.
func Setup(ctx context.Context, db *sql.DB, seed []animals.Animal) error {
	if err := Migrate(ctx, db); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	if err := SeedAnimals(ctx, db, seed); err != nil {
		return fmt.Errorf("seed: %w", err)
	}
	return nil
}

// SeedAnimals inserta el catálogo inicial si todavía no existe (por id).
func SeedAnimals(ctx context.Context, db *sql.DB, items []animals.Animal) error {
	for _, a := range items {
		_, err := db.ExecContext(ctx, `
			INSERT INTO animals (
				id, name, species, sex, age,
				description, avatar_url, rescue_date
			) VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
			ON CONFLICT (id) DO NOTHING
		`,
			a.ID,
			a.Name,
			a.Species,
			a.Sex,
			a.Age,
			a.Description,
			a.AvatarURL,
			toNullDate(a.RescueDate),
		)
		if err != nil {
			return fmt.Errorf("seed animal %d: %w", a.ID, err)
		}
	}

	// BIGSERIAL no avanza con ids explícitos
	_, err := db.ExecContext(ctx, `SELECT setval(pg_get_serial_sequence('animals', 'id'), COALESCE((SELECT MAX(id) FROM animals), 1))`)
	return err
}

func toNullDate(t time.Time) sql.NullTime {
	if t.IsZero() {
		return sql.NullTime{Valid: false}
	}
	return sql.NullTime{Time: t, Valid: true}
}
