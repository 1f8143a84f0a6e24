// Package compat calcula o score de compatibilidade adotante↔animal
// (0–100) a partir de cinco subcritérios ponderados. Determinístico e sem
// efeitos colaterais; o resultado não é persistido.
package compat

import (
	"math"

	"pet-adoption-center/internal/config"
	"pet-adoption-center/internal/domain/adopters"
	"pet-adoption-center/internal/domain/animals"
)

// Subscore neutro quando o animal não tem dados declarados para o critério.
const neutralSubscore = 0.5

// Result é efêmero: recalculado sob demanda, nunca persistido (exceto a
// cópia congelada na entrada da fila de espera).
type Result struct {
	AdopterID string
	AnimalID  string
	Score     int
	Subscores map[string]float64
}

var positiveTraits = map[string]struct{}{
	"docil":     {},
	"calmo":     {},
	"tranquilo": {},
	"sociavel":  {},
}

type Scorer struct {
	weights      map[string]float64
	largeHousing adopters.Housing
}

// NewScorer assume pesos já validados pelo config (soma 1.0 ± 1e-6).
func NewScorer(weights map[string]float64, largeHousing adopters.Housing) *Scorer {
	w := make(map[string]float64, len(weights))
	for k, v := range weights {
		w[k] = v
	}
	return &Scorer{weights: w, largeHousing: largeHousing}
}

// Score calcula round(100 * Σ peso_i * subscore_i), limitado a [0,100].
func (s *Scorer) Score(a adopters.Adopter, an animals.Animal) Result {
	subs := map[string]float64{
		config.WeightHousing:     s.housingFit(a, an),
		config.WeightExperience:  experienceFit(a),
		config.WeightChildren:    childrenFit(a, an),
		config.WeightTemperament: temperamentFit(an),
		config.WeightOtherPets:   otherPetsFit(a, an),
	}

	total := 0.0
	for _, key := range config.WeightKeys {
		total += s.weights[key] * subs[key]
	}

	score := int(math.Round(total * 100))
	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}

	return Result{
		AdopterID: a.ID,
		AnimalID:  an.ID,
		Score:     score,
		Subscores: subs,
	}
}

// Porte grande é ideal com a moradia permitida pela política; os demais
// portes se adequam a qualquer moradia.
func (s *Scorer) housingFit(a adopters.Adopter, an animals.Animal) float64 {
	if an.Size != animals.SizeLarge {
		return 1.0
	}
	if a.Housing == s.largeHousing {
		return 1.0
	}
	return 0.5
}

func experienceFit(a adopters.Adopter) float64 {
	if a.Experience {
		return 1.0
	}
	return 0.6
}

func childrenFit(a adopters.Adopter, an animals.Animal) float64 {
	if !a.HasChildren {
		return 1.0
	}
	if an.HasTemperament("arisco") {
		return 0.2
	}
	return 1.0
}

func temperamentFit(an animals.Animal) float64 {
	if !an.TemperamentKnown() {
		return neutralSubscore
	}
	for _, t := range an.Temperament {
		if _, ok := positiveTraits[t]; ok {
			return 1.0
		}
	}
	return 0.7
}

func otherPetsFit(a adopters.Adopter, an animals.Animal) float64 {
	if !a.OtherPets {
		return 1.0
	}
	if !an.TemperamentKnown() {
		return neutralSubscore
	}
	if an.HasTemperament("sociavel") {
		return 1.0
	}
	return 0.5
}
