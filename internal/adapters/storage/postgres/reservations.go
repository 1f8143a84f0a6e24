package postgres

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"pet-adoption-center/internal/domain/reservations"
)

type ReservationRepo struct {
	db *sql.DB
}

func NewReservationRepo(db *sql.DB) *ReservationRepo {
	return &ReservationRepo{db: db}
}

func (r *ReservationRepo) Create(ctx context.Context, res reservations.Reservation) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO reservas (
			id, animal_id, adotante_id, status,
			criada_em, expira_em, encerrada_em
		) VALUES ($1,$2,$3,$4,$5,$6,$7)
	`,
		res.ID,
		res.AnimalID,
		res.AdopterID,
		string(res.Status),
		res.CreatedAt,
		res.ExpiresAt,
		toNullTime(res.ClosedAt),
	)
	return err
}

func (r *ReservationRepo) Update(ctx context.Context, res reservations.Reservation) error {
	out, err := r.db.ExecContext(ctx, `
		UPDATE reservas
		SET
			status = $2,
			encerrada_em = $3
		WHERE id = $1
	`,
		res.ID,
		string(res.Status),
		toNullTime(res.ClosedAt),
	)
	if err != nil {
		return err
	}
	n, _ := out.RowsAffected()
	if n == 0 {
		return reservations.ErrNotFound
	}
	return nil
}

const reservationColumns = `
	id, animal_id, adotante_id, status,
	criada_em, expira_em, encerrada_em
`

func (r *ReservationRepo) GetByID(ctx context.Context, id string) (reservations.Reservation, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return reservations.Reservation{}, reservations.ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `
		SELECT `+reservationColumns+`
		FROM reservas
		WHERE id = $1
	`, id)

	res, err := scanReservation(row)
	if err == sql.ErrNoRows {
		return reservations.Reservation{}, reservations.ErrNotFound
	}
	return res, err
}

func (r *ReservationRepo) GetActiveByAnimal(ctx context.Context, animalID string) (reservations.Reservation, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+reservationColumns+`
		FROM reservas
		WHERE animal_id = $1 AND status = $2
		ORDER BY criada_em DESC
		LIMIT 1
	`, animalID, string(reservations.StatusActive))

	res, err := scanReservation(row)
	if err == sql.ErrNoRows {
		return reservations.Reservation{}, reservations.ErrNotFound
	}
	return res, err
}

func (r *ReservationRepo) ListActive(ctx context.Context) ([]reservations.Reservation, error) {
	return r.query(ctx, `
		SELECT `+reservationColumns+`
		FROM reservas
		WHERE status = $1
		ORDER BY criada_em ASC
	`, string(reservations.StatusActive))
}

func (r *ReservationRepo) ListByAnimal(ctx context.Context, animalID string) ([]reservations.Reservation, error) {
	return r.query(ctx, `
		SELECT `+reservationColumns+`
		FROM reservas
		WHERE animal_id = $1
		ORDER BY criada_em ASC
	`, animalID)
}

func (r *ReservationRepo) List(ctx context.Context) ([]reservations.Reservation, error) {
	return r.query(ctx, `
		SELECT `+reservationColumns+`
		FROM reservas
		ORDER BY criada_em ASC
	`)
}

func (r *ReservationRepo) HasActiveForAdopter(ctx context.Context, adopterID string) (bool, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `
		SELECT COUNT(1)
		FROM reservas
		WHERE adotante_id = $1 AND status = $2
	`, adopterID, string(reservations.StatusActive)).Scan(&n)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *ReservationRepo) query(ctx context.Context, q string, args ...any) ([]reservations.Reservation, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]reservations.Reservation, 0)
	for rows.Next() {
		res, err := scanReservation(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, res)
	}
	return out, rows.Err()
}

func scanReservation(row rowScanner) (reservations.Reservation, error) {
	var (
		res    reservations.Reservation
		status string
		closed sql.NullTime
	)
	if err := row.Scan(
		&res.ID,
		&res.AnimalID,
		&res.AdopterID,
		&status,
		&res.CreatedAt,
		&res.ExpiresAt,
		&closed,
	); err != nil {
		return reservations.Reservation{}, err
	}
	res.Status = reservations.Status(status)
	if closed.Valid {
		t := closed.Time
		res.ClosedAt = &t
	}
	return res, nil
}

func toNullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{Valid: false}
	}
	return sql.NullTime{Time: *t, Valid: true}
}
