package adoptions

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pet-adoption-center/internal/config"
	"pet-adoption-center/internal/domain/adopters"
	"pet-adoption-center/internal/domain/animals"
)

func TestStandardFee(t *testing.T) {
	fee := StandardFee{Base: 100}
	assert.Equal(t, 100.0, fee.Calculate(animals.Animal{AgeMonths: 3}, adopters.Adopter{}))
	assert.Equal(t, 100.0, fee.Calculate(animals.Animal{AgeMonths: 120}, adopters.Adopter{}))
	assert.Equal(t, "padrao", fee.Name())
}

func TestSeniorFee(t *testing.T) {
	fee := SeniorFee{Base: 100, Discount: 0.5, FromMonths: 96}

	assert.Equal(t, 100.0, fee.Calculate(animals.Animal{AgeMonths: 95}, adopters.Adopter{}))
	assert.Equal(t, 50.0, fee.Calculate(animals.Animal{AgeMonths: 96}, adopters.Adopter{}))
	assert.Equal(t, 50.0, fee.Calculate(animals.Animal{AgeMonths: 140}, adopters.Adopter{}))
}

func TestPuppyFee(t *testing.T) {
	fee := PuppyFee{Base: 100, Surcharge: 50, UpToMonths: 6}

	assert.Equal(t, 150.0, fee.Calculate(animals.Animal{AgeMonths: 2}, adopters.Adopter{}))
	assert.Equal(t, 150.0, fee.Calculate(animals.Animal{AgeMonths: 6}, adopters.Adopter{}))
	assert.Equal(t, 100.0, fee.Calculate(animals.Animal{AgeMonths: 7}, adopters.Adopter{}))
}

func TestSpecialFee(t *testing.T) {
	fee := SpecialFee{Amount: 10}
	assert.Equal(t, 10.0, fee.Calculate(animals.Animal{}, adopters.Adopter{}))
}

func TestStrategyFromConfig(t *testing.T) {
	cases := []struct {
		strategy string
		wantName string
	}{
		{"padrao", "padrao"},
		{"senior", "senior"},
		{"filhote", "filhote"},
		{"especial", "especial"},
	}

	for _, c := range cases {
		s, err := StrategyFromConfig(config.Fees{
			Strategy:   c.strategy,
			BaseAmount: 100,
		})
		require.NoError(t, err, c.strategy)
		assert.Equal(t, c.wantName, s.Name())
	}

	_, err := StrategyFromConfig(config.Fees{Strategy: "leilao"})
	assert.Error(t, err)
}
