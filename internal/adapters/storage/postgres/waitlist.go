package postgres

import (
	"context"
	"database/sql"

	"pet-adoption-center/internal/domain/waitlist"
)

type WaitlistRepo struct {
	db *sql.DB
}

func NewWaitlistRepo(db *sql.DB) *WaitlistRepo {
	return &WaitlistRepo{db: db}
}

func (r *WaitlistRepo) Add(ctx context.Context, e waitlist.Entry) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO fila_espera (id, animal_id, adotante_id, score, entrada_em)
		VALUES ($1,$2,$3,$4,$5)
	`,
		e.ID,
		e.AnimalID,
		e.AdopterID,
		e.Score,
		e.EnqueuedAt,
	)
	return err
}

func (r *WaitlistRepo) Update(ctx context.Context, e waitlist.Entry) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE fila_espera
		SET score = $3
		WHERE animal_id = $1 AND adotante_id = $2
	`,
		e.AnimalID,
		e.AdopterID,
		e.Score,
	)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return waitlist.ErrInvalidInput
	}
	return nil
}

func (r *WaitlistRepo) Remove(ctx context.Context, animalID, adopterID string) (bool, error) {
	res, err := r.db.ExecContext(ctx, `
		DELETE FROM fila_espera
		WHERE animal_id = $1 AND adotante_id = $2
	`, animalID, adopterID)
	if err != nil {
		return false, err
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}

func (r *WaitlistRepo) ExistsFor(ctx context.Context, animalID, adopterID string) (bool, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `
		SELECT COUNT(1)
		FROM fila_espera
		WHERE animal_id = $1 AND adotante_id = $2
	`, animalID, adopterID).Scan(&n)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *WaitlistRepo) ListByAnimal(ctx context.Context, animalID string) ([]waitlist.Entry, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, animal_id, adotante_id, score, entrada_em
		FROM fila_espera
		WHERE animal_id = $1
	`, animalID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]waitlist.Entry, 0)
	for rows.Next() {
		var e waitlist.Entry
		if err := rows.Scan(&e.ID, &e.AnimalID, &e.AdopterID, &e.Score, &e.EnqueuedAt); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
