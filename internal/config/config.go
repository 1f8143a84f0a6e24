package config

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"strings"
	"time"
)

// Critérios de compatibilidade reconhecidos em compatibilidade.pesos.
const (
	WeightHousing     = "porte_moradia"
	WeightExperience  = "experiencia"
	WeightChildren    = "criancas"
	WeightTemperament = "temperamento"
	WeightOtherPets   = "outros_animais"
)

// WeightKeys is the full, ordered set of required weight keys.
var WeightKeys = []string{
	WeightHousing,
	WeightExperience,
	WeightChildren,
	WeightTemperament,
	WeightOtherPets,
}

const weightSumTolerance = 1e-6

// ValidationError describes a settings value the process refuses to start
// with. The field uses the JSON path from settings.json.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("settings: %s: %s", e.Field, e.Reason)
}

// Policies holds the screening thresholds.
type Policies struct {
	MinimumAge          int     `json:"idade_minima"`
	LargeMinArea        float64 `json:"area_minima_porte_g"`
	LargeAllowedHousing string  `json:"moradia_permitida_porte_g"`
}

type Reservation struct {
	DurationHours int `json:"duracao_horas"`
}

type Compatibility struct {
	Weights map[string]float64 `json:"pesos"`
}

// Fees selects and parameterizes the adoption fee strategy.
type Fees struct {
	Strategy         string  `json:"estrategia"`
	BaseAmount       float64 `json:"valor_base"`
	SeniorDiscount   float64 `json:"desconto_senior"`
	SeniorFromMonths int     `json:"senior_a_partir_meses"`
	PuppyUpToMonths  int     `json:"filhote_ate_meses"`
	PuppySurcharge   float64 `json:"acrescimo_filhote"`
	SpecialAmount    float64 `json:"valor_especial"`
}

type Storage struct {
	Driver      string `json:"driver"`
	DataDir     string `json:"data_dir"`
	PostgresDSN string `json:"postgres_dsn"`
}

// Log configures the structured logger. Environment variables LOG_LEVEL and
// LOG_FORMAT take precedence when set.
type Log struct {
	Level  string `json:"nivel"`
	Format string `json:"formato"`
}

// Config is the immutable process-wide configuration. Loaded once in main
// and passed explicitly to every component that needs it.
type Config struct {
	Policies      Policies      `json:"politicas"`
	Reservation   Reservation   `json:"reserva"`
	Compatibility Compatibility `json:"compatibilidade"`
	Fees          Fees          `json:"taxas"`
	Storage       Storage       `json:"armazenamento"`
	Log           Log           `json:"log"`
	ContractsDir  string        `json:"pasta_contratos"`
}

// ReservationDuration converts reserva.duracao_horas into a time.Duration.
func (c Config) ReservationDuration() time.Duration {
	return time.Duration(c.Reservation.DurationHours) * time.Hour
}

// Load reads settings from path and validates them. Any validation failure
// must abort startup.
func Load(path string) (Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("settings: %w", err)
	}

	var cfg Config
	if err := json.Unmarshal(raw, &cfg); err != nil {
		return Config{}, fmt.Errorf("settings: decode %s: %w", path, err)
	}

	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Fees.Strategy == "" {
		c.Fees.Strategy = "padrao"
	}
	if c.Fees.BaseAmount == 0 {
		c.Fees.BaseAmount = 100
	}
	if c.Fees.SeniorDiscount == 0 {
		c.Fees.SeniorDiscount = 0.5
	}
	if c.Fees.SeniorFromMonths == 0 {
		c.Fees.SeniorFromMonths = 96
	}
	if c.Fees.PuppyUpToMonths == 0 {
		c.Fees.PuppyUpToMonths = 6
	}
	if c.Fees.SpecialAmount == 0 {
		c.Fees.SpecialAmount = 50
	}
	if c.Storage.Driver == "" {
		c.Storage.Driver = "jsonfile"
	}
	// A DSN pode vir do ambiente para não ficar em arquivo versionado.
	if c.Storage.PostgresDSN == "" {
		c.Storage.PostgresDSN = os.Getenv("DATABASE_URL")
	}
	if c.Storage.DataDir == "" {
		c.Storage.DataDir = "data"
	}
	if c.ContractsDir == "" {
		c.ContractsDir = "data/contratos"
	}
}

// Validate checks required keys and the weight vector invariant
// (sum == 1.0 within 1e-6).
func (c Config) Validate() error {
	if c.Policies.MinimumAge <= 0 {
		return &ValidationError{Field: "politicas.idade_minima", Reason: "required and must be positive"}
	}
	if c.Policies.LargeMinArea <= 0 {
		return &ValidationError{Field: "politicas.area_minima_porte_g", Reason: "required and must be positive"}
	}
	switch c.Policies.LargeAllowedHousing {
	case "casa", "apartamento":
	case "":
		return &ValidationError{Field: "politicas.moradia_permitida_porte_g", Reason: "required"}
	default:
		return &ValidationError{
			Field:  "politicas.moradia_permitida_porte_g",
			Reason: fmt.Sprintf("unknown housing type %q", c.Policies.LargeAllowedHousing),
		}
	}

	if c.Reservation.DurationHours <= 0 {
		return &ValidationError{Field: "reserva.duracao_horas", Reason: "required and must be positive"}
	}

	if len(c.Compatibility.Weights) == 0 {
		return &ValidationError{Field: "compatibilidade.pesos", Reason: "required"}
	}
	sum := 0.0
	for _, key := range WeightKeys {
		w, ok := c.Compatibility.Weights[key]
		if !ok {
			return &ValidationError{Field: "compatibilidade.pesos." + key, Reason: "required"}
		}
		if w < 0 {
			return &ValidationError{Field: "compatibilidade.pesos." + key, Reason: "must not be negative"}
		}
		sum += w
	}
	for key := range c.Compatibility.Weights {
		if !isKnownWeight(key) {
			return &ValidationError{Field: "compatibilidade.pesos." + key, Reason: "unknown criterion"}
		}
	}
	if math.Abs(sum-1.0) > weightSumTolerance {
		return &ValidationError{
			Field:  "compatibilidade.pesos",
			Reason: fmt.Sprintf("weights must sum to 1.0, got %.6f", sum),
		}
	}

	switch c.Fees.Strategy {
	case "padrao", "senior", "filhote", "especial":
	default:
		return &ValidationError{
			Field:  "taxas.estrategia",
			Reason: fmt.Sprintf("unknown fee strategy %q", c.Fees.Strategy),
		}
	}

	switch c.Storage.Driver {
	case "jsonfile", "memory":
	case "postgres":
		if strings.TrimSpace(c.Storage.PostgresDSN) == "" {
			return &ValidationError{Field: "armazenamento.postgres_dsn", Reason: "required for driver postgres"}
		}
	default:
		return &ValidationError{
			Field:  "armazenamento.driver",
			Reason: fmt.Sprintf("unknown storage driver %q", c.Storage.Driver),
		}
	}

	return nil
}

func isKnownWeight(key string) bool {
	for _, k := range WeightKeys {
		if k == key {
			return true
		}
	}
	return false
}
