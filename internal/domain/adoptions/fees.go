// Package adoptions concentra o que acontece na efetivação da adoção:
// estratégias de taxa e geração do contrato.
package adoptions

import (
	"fmt"

	"pet-adoption-center/internal/config"
	"pet-adoption-center/internal/domain/adopters"
	"pet-adoption-center/internal/domain/animals"
)

// Strategy calcula a taxa de adoção. Variantes concretas são escolhidas por
// configuração, não por herança.
type Strategy interface {
	Calculate(an animals.Animal, a adopters.Adopter) float64
	Name() string
}

// StandardFee cobra o valor base para qualquer animal.
type StandardFee struct {
	Base float64
}

func (f StandardFee) Calculate(animals.Animal, adopters.Adopter) float64 { return f.Base }
func (f StandardFee) Name() string                                      { return "padrao" }

// SeniorFee desconta um percentual para animais idosos, incentivando a
// adoção dos mais velhos.
type SeniorFee struct {
	Base       float64
	Discount   float64 // 0.0 a 1.0
	FromMonths int
}

func (f SeniorFee) Calculate(an animals.Animal, _ adopters.Adopter) float64 {
	if an.AgeMonths >= f.FromMonths {
		return f.Base * (1 - f.Discount)
	}
	return f.Base
}
func (f SeniorFee) Name() string { return "senior" }

// PuppyFee acresce um valor para filhotes (alta demanda).
type PuppyFee struct {
	Base       float64
	Surcharge  float64
	UpToMonths int
}

func (f PuppyFee) Calculate(an animals.Animal, _ adopters.Adopter) float64 {
	if an.AgeMonths <= f.UpToMonths {
		return f.Base + f.Surcharge
	}
	return f.Base
}
func (f PuppyFee) Name() string { return "filhote" }

// SpecialFee é o valor fixo reduzido de campanhas de adoção.
type SpecialFee struct {
	Amount float64
}

func (f SpecialFee) Calculate(animals.Animal, adopters.Adopter) float64 { return f.Amount }
func (f SpecialFee) Name() string                                      { return "especial" }

// StrategyFromConfig materializa a estratégia nomeada na configuração.
func StrategyFromConfig(cfg config.Fees) (Strategy, error) {
	switch cfg.Strategy {
	case "padrao":
		return StandardFee{Base: cfg.BaseAmount}, nil
	case "senior":
		return SeniorFee{Base: cfg.BaseAmount, Discount: cfg.SeniorDiscount, FromMonths: cfg.SeniorFromMonths}, nil
	case "filhote":
		return PuppyFee{Base: cfg.BaseAmount, Surcharge: cfg.PuppySurcharge, UpToMonths: cfg.PuppyUpToMonths}, nil
	case "especial":
		return SpecialFee{Amount: cfg.SpecialAmount}, nil
	default:
		return nil, fmt.Errorf("unknown fee strategy %q", cfg.Strategy)
	}
}
