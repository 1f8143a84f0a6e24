package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validSettings = `{
  "politicas": {
    "idade_minima": 18,
    "area_minima_porte_g": 50,
    "moradia_permitida_porte_g": "casa"
  },
  "reserva": {"duracao_horas": 48},
  "compatibilidade": {
    "pesos": {
      "porte_moradia": 0.30,
      "experiencia": 0.25,
      "criancas": 0.20,
      "temperamento": 0.15,
      "outros_animais": 0.10
    }
  }
}`

func writeSettings(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "settings.json")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoad_Valid(t *testing.T) {
	cfg, err := Load(writeSettings(t, validSettings))
	require.NoError(t, err)

	assert.Equal(t, 18, cfg.Policies.MinimumAge)
	assert.Equal(t, 48, cfg.Reservation.DurationHours)
	assert.InDelta(t, 0.30, cfg.Compatibility.Weights[WeightHousing], 1e-9)

	// Defaults preenchidos para o que o arquivo não traz.
	assert.Equal(t, "padrao", cfg.Fees.Strategy)
	assert.Equal(t, "jsonfile", cfg.Storage.Driver)
	assert.Equal(t, "data", cfg.Storage.DataDir)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	require.Error(t, err)
}

func TestLoad_MissingWeightKey(t *testing.T) {
	body := `{
	  "politicas": {"idade_minima": 18, "area_minima_porte_g": 50, "moradia_permitida_porte_g": "casa"},
	  "reserva": {"duracao_horas": 48},
	  "compatibilidade": {"pesos": {
	    "porte_moradia": 0.40, "experiencia": 0.25, "criancas": 0.20, "temperamento": 0.15
	  }}
	}`
	_, err := Load(writeSettings(t, body))
	require.Error(t, err)

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "compatibilidade.pesos.outros_animais", verr.Field)
}

func TestLoad_WeightsMustSumToOne(t *testing.T) {
	body := `{
	  "politicas": {"idade_minima": 18, "area_minima_porte_g": 50, "moradia_permitida_porte_g": "casa"},
	  "reserva": {"duracao_horas": 48},
	  "compatibilidade": {"pesos": {
	    "porte_moradia": 0.30, "experiencia": 0.30, "criancas": 0.20, "temperamento": 0.15, "outros_animais": 0.10
	  }}
	}`
	_, err := Load(writeSettings(t, body))
	require.Error(t, err)

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "compatibilidade.pesos", verr.Field)
}

func TestLoad_UnknownCriterionRejected(t *testing.T) {
	body := `{
	  "politicas": {"idade_minima": 18, "area_minima_porte_g": 50, "moradia_permitida_porte_g": "casa"},
	  "reserva": {"duracao_horas": 48},
	  "compatibilidade": {"pesos": {
	    "porte_moradia": 0.30, "experiencia": 0.25, "criancas": 0.20, "temperamento": 0.15,
	    "outros_animais": 0.10, "signo": 0.0
	  }}
	}`
	_, err := Load(writeSettings(t, body))
	require.Error(t, err)

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "compatibilidade.pesos.signo", verr.Field)
}

func TestLoad_MissingMinimumAge(t *testing.T) {
	body := `{
	  "politicas": {"area_minima_porte_g": 50, "moradia_permitida_porte_g": "casa"},
	  "reserva": {"duracao_horas": 48},
	  "compatibilidade": {"pesos": {
	    "porte_moradia": 0.30, "experiencia": 0.25, "criancas": 0.20, "temperamento": 0.15, "outros_animais": 0.10
	  }}
	}`
	_, err := Load(writeSettings(t, body))

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "politicas.idade_minima", verr.Field)
}

func TestLoad_UnknownFeeStrategy(t *testing.T) {
	body := `{
	  "politicas": {"idade_minima": 18, "area_minima_porte_g": 50, "moradia_permitida_porte_g": "casa"},
	  "reserva": {"duracao_horas": 48},
	  "compatibilidade": {"pesos": {
	    "porte_moradia": 0.30, "experiencia": 0.25, "criancas": 0.20, "temperamento": 0.15, "outros_animais": 0.10
	  }},
	  "taxas": {"estrategia": "leilao"}
	}`
	_, err := Load(writeSettings(t, body))

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "taxas.estrategia", verr.Field)
}

func TestLoad_PostgresRequiresDSN(t *testing.T) {
	body := `{
	  "politicas": {"idade_minima": 18, "area_minima_porte_g": 50, "moradia_permitida_porte_g": "casa"},
	  "reserva": {"duracao_horas": 48},
	  "compatibilidade": {"pesos": {
	    "porte_moradia": 0.30, "experiencia": 0.25, "criancas": 0.20, "temperamento": 0.15, "outros_animais": 0.10
	  }},
	  "armazenamento": {"driver": "postgres"}
	}`
	t.Setenv("DATABASE_URL", "")
	_, err := Load(writeSettings(t, body))

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "armazenamento.postgres_dsn", verr.Field)
}
