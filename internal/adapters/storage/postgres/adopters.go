package postgres

import (
	"context"
	"database/sql"
	"strings"

	"pet-adoption-center/internal/domain/adopters"
)

type AdopterRepo struct {
	db *sql.DB
}

func NewAdopterRepo(db *sql.DB) *AdopterRepo {
	return &AdopterRepo{db: db}
}

func (r *AdopterRepo) Create(ctx context.Context, a adopters.Adopter) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO adotantes (
			id, nome, idade, moradia, area_moradia,
			experiencia, tem_criancas, outros_animais,
			criado_em, atualizado_em
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
	`,
		a.ID,
		a.Name,
		a.Age,
		string(a.Housing),
		a.HousingArea,
		a.Experience,
		a.HasChildren,
		a.OtherPets,
		a.CreatedAt,
		a.UpdatedAt,
	)
	return err
}

func (r *AdopterRepo) Update(ctx context.Context, a adopters.Adopter) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE adotantes
		SET
			nome = $2,
			idade = $3,
			moradia = $4,
			area_moradia = $5,
			experiencia = $6,
			tem_criancas = $7,
			outros_animais = $8,
			atualizado_em = $9
		WHERE id = $1
	`,
		a.ID,
		a.Name,
		a.Age,
		string(a.Housing),
		a.HousingArea,
		a.Experience,
		a.HasChildren,
		a.OtherPets,
		a.UpdatedAt,
	)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return adopters.ErrNotFound
	}
	return nil
}

func (r *AdopterRepo) GetByID(ctx context.Context, id string) (adopters.Adopter, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return adopters.Adopter{}, adopters.ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `
		SELECT
			id, nome, idade, moradia, area_moradia,
			experiencia, tem_criancas, outros_animais,
			criado_em, atualizado_em
		FROM adotantes
		WHERE id = $1
	`, id)

	a, err := scanAdopter(row)
	if err == sql.ErrNoRows {
		return adopters.Adopter{}, adopters.ErrNotFound
	}
	return a, err
}

func (r *AdopterRepo) List(ctx context.Context) ([]adopters.Adopter, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT
			id, nome, idade, moradia, area_moradia,
			experiencia, tem_criancas, outros_animais,
			criado_em, atualizado_em
		FROM adotantes
		ORDER BY criado_em ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]adopters.Adopter, 0)
	for rows.Next() {
		a, err := scanAdopter(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func scanAdopter(row rowScanner) (adopters.Adopter, error) {
	var (
		a       adopters.Adopter
		housing string
	)
	if err := row.Scan(
		&a.ID,
		&a.Name,
		&a.Age,
		&housing,
		&a.HousingArea,
		&a.Experience,
		&a.HasChildren,
		&a.OtherPets,
		&a.CreatedAt,
		&a.UpdatedAt,
	); err != nil {
		return adopters.Adopter{}, err
	}
	a.Housing = adopters.Housing(housing)
	return a, nil
}
