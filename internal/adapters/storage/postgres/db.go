// Package postgres implementa os repositórios sobre PostgreSQL via pgx
// (driver database/sql). Temperamento e histórico ficam em colunas JSONB.
package postgres

import (
	"context"
	"database/sql"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
)

// Open abre um pool de conexões e valida com ping.
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

// EnsureSchema cria as tabelas quando não existem. Suficiente para o porte do
// sistema; migrações versionadas ficam para quando o schema estabilizar.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS animais (
			id            TEXT PRIMARY KEY,
			nome          TEXT NOT NULL,
			raca          TEXT NOT NULL DEFAULT '',
			especie       TEXT NOT NULL,
			sexo          TEXT NOT NULL,
			idade_meses   INT  NOT NULL,
			porte         TEXT NOT NULL,
			temperamento  JSONB NOT NULL DEFAULT '[]',
			necessidade_passeio INT,
			independencia INT,
			status        TEXT NOT NULL,
			data_entrada  TIMESTAMPTZ NOT NULL,
			historico     JSONB NOT NULL DEFAULT '[]'
		)`,
		`CREATE TABLE IF NOT EXISTS adotantes (
			id             TEXT PRIMARY KEY,
			nome           TEXT NOT NULL,
			idade          INT  NOT NULL,
			moradia        TEXT NOT NULL,
			area_moradia   DOUBLE PRECISION NOT NULL DEFAULT 0,
			experiencia    BOOLEAN NOT NULL DEFAULT FALSE,
			tem_criancas   BOOLEAN NOT NULL DEFAULT FALSE,
			outros_animais BOOLEAN NOT NULL DEFAULT FALSE,
			criado_em      TIMESTAMPTZ NOT NULL,
			atualizado_em  TIMESTAMPTZ NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS reservas (
			id           TEXT PRIMARY KEY,
			animal_id    TEXT NOT NULL REFERENCES animais(id),
			adotante_id  TEXT NOT NULL REFERENCES adotantes(id),
			status       TEXT NOT NULL,
			criada_em    TIMESTAMPTZ NOT NULL,
			expira_em    TIMESTAMPTZ NOT NULL,
			encerrada_em TIMESTAMPTZ
		)`,
		`CREATE INDEX IF NOT EXISTS idx_reservas_animal ON reservas (animal_id)`,
		`CREATE INDEX IF NOT EXISTS idx_reservas_status ON reservas (status)`,
		`CREATE TABLE IF NOT EXISTS fila_espera (
			id          TEXT NOT NULL,
			animal_id   TEXT NOT NULL REFERENCES animais(id),
			adotante_id TEXT NOT NULL REFERENCES adotantes(id),
			score       INT  NOT NULL,
			entrada_em  TIMESTAMPTZ NOT NULL,
			PRIMARY KEY (animal_id, adotante_id)
		)`,
	}

	for _, stmt := range stmts {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}
