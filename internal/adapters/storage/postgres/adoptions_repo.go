package postgres

import (
	"context"
	"database/sql"
	"strings"

	"animal-rescue/internal/domain/adoptions"

	"github.com/google/uuid"
)

type AdoptionsRepo struct {
	db *sql.DB
}

func NewAdoptionsRepo(db *sql.DB) *AdoptionsRepo {
	return &AdoptionsRepo{db: db}
}

func (r *AdoptionsRepo) FindByAnimal(ctx context.Context, animalID int64) ([]adoptions.AdoptionRequest, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, animal_id, adopter_name, email, notes
		FROM adoption_requests
		WHERE animal_id = $1
		ORDER BY created_at ASC, id ASC
	`, animalID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]adoptions.AdoptionRequest, 0)
	for rows.Next() {
		var ar adoptions.AdoptionRequest
		if err := rows.Scan(
			&ar.ID,
			&ar.AnimalID,
			&ar.AdopterName,
			&ar.Email,
			&ar.Notes,
		); err != nil {
			return nil, err
		}
		out = append(out, ar)
	}
	return out, rows.Err()
}

func (r *AdoptionsRepo) CountByAdopterName(ctx context.Context, adopterName string) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM adoption_requests WHERE adopter_name = $1
	`, adopterName).Scan(&n)
	return n, err
}

// Save hace upsert por id; en conflicto solo cambian email y notes.
func (r *AdoptionsRepo) Save(ctx context.Context, ar adoptions.AdoptionRequest) (adoptions.AdoptionRequest, error) {
	if strings.TrimSpace(ar.ID) == "" {
		ar.ID = uuid.NewString()
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO adoption_requests (
			id, animal_id, adopter_name, email, notes
		) VALUES ($1,$2,$3,$4,$5)
		ON CONFLICT (id) DO UPDATE
		SET
			email = EXCLUDED.email,
			notes = EXCLUDED.notes
	`,
		ar.ID,
		ar.AnimalID,
		ar.AdopterName,
		ar.Email,
		ar.Notes,
	)
	if err != nil {
		return adoptions.AdoptionRequest{}, err
	}
	return ar, nil
}

func (r *AdoptionsRepo) Delete(ctx context.Context, ar adoptions.AdoptionRequest) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM adoption_requests WHERE id = $1`, ar.ID)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return adoptions.ErrNotFound
	}
	return nil
}
