package compat

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pet-adoption-center/internal/config"
	"pet-adoption-center/internal/domain/adopters"
	"pet-adoption-center/internal/domain/animals"
)

func testWeights() map[string]float64 {
	return map[string]float64{
		config.WeightHousing:     0.30,
		config.WeightExperience:  0.25,
		config.WeightChildren:    0.20,
		config.WeightTemperament: 0.15,
		config.WeightOtherPets:   0.10,
	}
}

func newTestScorer() *Scorer {
	return NewScorer(testWeights(), adopters.HousingHouse)
}

func TestScore_PerfectMatch(t *testing.T) {
	scorer := newTestScorer()

	adopter := adopters.Adopter{
		ID:          "ad1",
		Housing:     adopters.HousingHouse,
		Experience:  true,
		HasChildren: false,
		OtherPets:   false,
	}
	animal := animals.Animal{
		ID:          "an1",
		Size:        animals.SizeLarge,
		Temperament: []string{"docil"},
	}

	r := scorer.Score(adopter, animal)
	assert.Equal(t, 100, r.Score)
	assert.Equal(t, "ad1", r.AdopterID)
	assert.Equal(t, "an1", r.AnimalID)
}

func TestScore_UnknownTemperamentIsNeutral(t *testing.T) {
	scorer := newTestScorer()

	adopter := adopters.Adopter{
		Housing:    adopters.HousingHouse,
		Experience: true,
		OtherPets:  true,
	}
	animal := animals.Animal{Size: animals.SizeSmall}

	r := scorer.Score(adopter, animal)

	// Sem temperamento declarado, os critérios dependentes valem 0.5.
	assert.InDelta(t, 0.5, r.Subscores[config.WeightTemperament], 1e-9)
	assert.InDelta(t, 0.5, r.Subscores[config.WeightOtherPets], 1e-9)

	// 0.30*1.0 + 0.25*1.0 + 0.20*1.0 + 0.15*0.5 + 0.10*0.5 = 0.875 -> 88
	assert.Equal(t, 88, r.Score)
}

func TestScore_ChildrenWithSkittishAnimal(t *testing.T) {
	scorer := newTestScorer()

	adopter := adopters.Adopter{HasChildren: true}
	animal := animals.Animal{Temperament: []string{"arisco"}}

	r := scorer.Score(adopter, animal)
	assert.InDelta(t, 0.2, r.Subscores[config.WeightChildren], 1e-9)

	// Sem crianças o mesmo animal não penaliza o critério.
	r = scorer.Score(adopters.Adopter{}, animal)
	assert.InDelta(t, 1.0, r.Subscores[config.WeightChildren], 1e-9)
}

func TestScore_LargeAnimalHousingPenalty(t *testing.T) {
	scorer := newTestScorer()
	animal := animals.Animal{Size: animals.SizeLarge}

	inHouse := scorer.Score(adopters.Adopter{Housing: adopters.HousingHouse}, animal)
	inApartment := scorer.Score(adopters.Adopter{Housing: adopters.HousingApartment}, animal)

	assert.InDelta(t, 1.0, inHouse.Subscores[config.WeightHousing], 1e-9)
	assert.InDelta(t, 0.5, inApartment.Subscores[config.WeightHousing], 1e-9)
	assert.Greater(t, inHouse.Score, inApartment.Score)
}

func TestScore_OtherPetsNeedsSociableAnimal(t *testing.T) {
	scorer := newTestScorer()
	adopter := adopters.Adopter{OtherPets: true}

	sociable := scorer.Score(adopter, animals.Animal{Temperament: []string{"sociavel"}})
	grumpy := scorer.Score(adopter, animals.Animal{Temperament: []string{"arisco"}})

	assert.InDelta(t, 1.0, sociable.Subscores[config.WeightOtherPets], 1e-9)
	assert.InDelta(t, 0.5, grumpy.Subscores[config.WeightOtherPets], 1e-9)
}

// O score fica sempre em [0,100] e os subscores em [0,1], para qualquer
// combinação dos atributos discretos.
func TestScore_RangeProperty(t *testing.T) {
	scorer := newTestScorer()

	temperaments := [][]string{nil, {"docil"}, {"arisco"}, {"sociavel"}, {"agitado"}}
	sizes := []animals.Size{animals.SizeSmall, animals.SizeMedium, animals.SizeLarge}
	bools := []bool{false, true}

	for _, temperament := range temperaments {
		for _, size := range sizes {
			for _, exp := range bools {
				for _, children := range bools {
					for _, pets := range bools {
						for _, housing := range []adopters.Housing{adopters.HousingHouse, adopters.HousingApartment} {
							adopter := adopters.Adopter{
								Housing:     housing,
								Experience:  exp,
								HasChildren: children,
								OtherPets:   pets,
							}
							animal := animals.Animal{Size: size, Temperament: temperament}

							r := scorer.Score(adopter, animal)
							require.GreaterOrEqual(t, r.Score, 0)
							require.LessOrEqual(t, r.Score, 100)
							for key, sub := range r.Subscores {
								require.GreaterOrEqual(t, sub, 0.0, "subscore %s", key)
								require.LessOrEqual(t, sub, 1.0, "subscore %s", key)
							}
						}
					}
				}
			}
		}
	}
}

func TestScore_Deterministic(t *testing.T) {
	scorer := newTestScorer()
	adopter := adopters.Adopter{Housing: adopters.HousingApartment, HasChildren: true, OtherPets: true}
	animal := animals.Animal{Size: animals.SizeLarge, Temperament: []string{"arisco"}}

	first := scorer.Score(adopter, animal)
	for i := 0; i < 20; i++ {
		assert.Equal(t, first.Score, scorer.Score(adopter, animal).Score)
	}
}
