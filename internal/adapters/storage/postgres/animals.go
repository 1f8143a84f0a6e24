package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"pet-adoption-center/internal/domain/animals"
)

type AnimalRepo struct {
	db *sql.DB
}

func NewAnimalRepo(db *sql.DB) *AnimalRepo {
	return &AnimalRepo{db: db}
}

type historyEvent struct {
	Type    string    `json:"tipo"`
	Details string    `json:"detalhes"`
	At      time.Time `json:"timestamp"`
}

func encodeHistory(events []animals.Event) ([]byte, error) {
	out := make([]historyEvent, 0, len(events))
	for _, e := range events {
		out = append(out, historyEvent{Type: e.Type, Details: e.Details, At: e.At})
	}
	return json.Marshal(out)
}

func decodeHistory(data []byte) ([]animals.Event, error) {
	var recs []historyEvent
	if err := json.Unmarshal(data, &recs); err != nil {
		return nil, err
	}
	var out []animals.Event
	for _, e := range recs {
		out = append(out, animals.Event{Type: e.Type, Details: e.Details, At: e.At})
	}
	return out, nil
}

func (r *AnimalRepo) Create(ctx context.Context, a animals.Animal) error {
	temperament, err := json.Marshal(a.Temperament)
	if err != nil {
		return err
	}
	history, err := encodeHistory(a.History)
	if err != nil {
		return err
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO animais (
			id, nome, raca, especie, sexo,
			idade_meses, porte, temperamento,
			necessidade_passeio, independencia,
			status, data_entrada, historico
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13)
	`,
		a.ID,
		a.Name,
		a.Breed,
		string(a.Species),
		string(a.Sex),
		a.AgeMonths,
		string(a.Size),
		temperament,
		walkNeed(a),
		independence(a),
		string(a.Status),
		a.RegisteredAt,
		history,
	)
	return err
}

func (r *AnimalRepo) Update(ctx context.Context, a animals.Animal) error {
	temperament, err := json.Marshal(a.Temperament)
	if err != nil {
		return err
	}
	history, err := encodeHistory(a.History)
	if err != nil {
		return err
	}

	res, err := r.db.ExecContext(ctx, `
		UPDATE animais
		SET
			nome = $2,
			raca = $3,
			especie = $4,
			sexo = $5,
			idade_meses = $6,
			porte = $7,
			temperamento = $8,
			necessidade_passeio = $9,
			independencia = $10,
			status = $11,
			historico = $12
		WHERE id = $1
	`,
		a.ID,
		a.Name,
		a.Breed,
		string(a.Species),
		string(a.Sex),
		a.AgeMonths,
		string(a.Size),
		temperament,
		walkNeed(a),
		independence(a),
		string(a.Status),
		history,
	)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return animals.ErrNotFound
	}
	return nil
}

const animalColumns = `
	id, nome, raca, especie, sexo,
	idade_meses, porte, temperamento,
	necessidade_passeio, independencia,
	status, data_entrada, historico
`

func (r *AnimalRepo) GetByID(ctx context.Context, id string) (animals.Animal, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return animals.Animal{}, animals.ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `
		SELECT `+animalColumns+`
		FROM animais
		WHERE id = $1
	`, id)

	a, err := scanAnimal(row)
	if err == sql.ErrNoRows {
		return animals.Animal{}, animals.ErrNotFound
	}
	return a, err
}

func (r *AnimalRepo) List(ctx context.Context, f animals.Filter) ([]animals.Animal, error) {
	query := `
		SELECT ` + animalColumns + `
		FROM animais
		WHERE 1=1
	`
	var args []any
	if f.Status != nil {
		args = append(args, string(*f.Status))
		query += ` AND status = $` + strconv.Itoa(len(args))
	}
	if f.Species != nil {
		args = append(args, string(*f.Species))
		query += ` AND especie = $` + strconv.Itoa(len(args))
	}
	if f.Size != nil {
		args = append(args, string(*f.Size))
		query += ` AND porte = $` + strconv.Itoa(len(args))
	}
	query += ` ORDER BY data_entrada ASC`

	rows, err := r.db.QueryContext(ctx, query, args...)
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

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAnimal(row rowScanner) (animals.Animal, error) {
	var (
		a            animals.Animal
		species      string
		sex          string
		size         string
		status       string
		temperament  []byte
		walk         sql.NullInt64
		independ     sql.NullInt64
		history      []byte
	)
	if err := row.Scan(
		&a.ID,
		&a.Name,
		&a.Breed,
		&species,
		&sex,
		&a.AgeMonths,
		&size,
		&temperament,
		&walk,
		&independ,
		&status,
		&a.RegisteredAt,
		&history,
	); err != nil {
		return animals.Animal{}, err
	}

	a.Species = animals.Species(species)
	a.Sex = animals.Sex(sex)
	a.Size = animals.Size(size)
	a.Status = animals.Status(status)

	if err := json.Unmarshal(temperament, &a.Temperament); err != nil {
		return animals.Animal{}, err
	}
	events, err := decodeHistory(history)
	if err != nil {
		return animals.Animal{}, err
	}
	a.History = events

	if walk.Valid {
		a.Dog = &animals.DogTraits{WalkNeed: int(walk.Int64)}
	}
	if independ.Valid {
		a.Cat = &animals.CatTraits{Independence: int(independ.Int64)}
	}
	return a, nil
}

func walkNeed(a animals.Animal) sql.NullInt64 {
	if a.Dog == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(a.Dog.WalkNeed), Valid: true}
}

func independence(a animals.Animal) sql.NullInt64 {
	if a.Cat == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(a.Cat.Independence), Valid: true}
}

