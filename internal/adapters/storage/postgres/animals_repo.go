package postgres

import (
	"context"
	"database/sql"
	"errors"

	"animal-rescue/internal/domain/animals"
)

type AnimalsRepo struct {
	db *sql.DB
}

func NewAnimalsRepo(db *sql.DB) *AnimalsRepo {
	return &AnimalsRepo{db: db}
}

const animalColumns = `
	id, name, species, sex, age,
	description, avatar_url, rescue_date
`

func (r *AnimalsRepo) FindAll(ctx context.Context) ([]animals.Animal, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+animalColumns+` FROM animals ORDER BY id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]animals.Animal, 0)
	for rows.Next() {
		a, err := scanAnimal(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (r *AnimalsRepo) FindByID(ctx context.Context, id int64) (animals.Animal, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+animalColumns+` FROM animals WHERE id = $1`, id)

	a, err := scanAnimal(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return animals.Animal{}, animals.ErrNotFound
		}
		return animals.Animal{}, err
	}
	return a, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanAnimal(s scanner) (animals.Animal, error) {
	var a animals.Animal
	var rescued sql.NullTime
	if err := s.Scan(
		&a.ID,
		&a.Name,
		&a.Species,
		&a.Sex,
		&a.Age,
		&a.Description,
		&a.AvatarURL,
		&rescued,
	); err != nil {
		return animals.Animal{}, err
	}
	if rescued.Valid {
		a.RescueDate = rescued.Time
	}
	return a, nil
}
