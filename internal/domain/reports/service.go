// Package reports gera as métricas estatísticas do sistema a partir do
// histórico dos animais e das reservas. Somente leitura.
package reports

import (
	"context"
	"sort"
	"time"

	"pet-adoption-center/internal/domain/adopters"
	"pet-adoption-center/internal/domain/animals"
	"pet-adoption-center/internal/domain/compat"
	"pet-adoption-center/internal/domain/screening"
)

type Screener interface {
	Evaluate(a adopters.Adopter, size animals.Size) screening.Outcome
}

type Scorer interface {
	Score(a adopters.Adopter, an animals.Animal) compat.Result
}

type Service struct {
	animals  animals.Repository
	adopters adopters.Repository
	screen   Screener
	scorer   Scorer
}

func NewService(animalRepo animals.Repository, adopterRepo adopters.Repository, screen Screener, scorer Scorer) *Service {
	return &Service{
		animals:  animalRepo,
		adopters: adopterRepo,
		screen:   screen,
		scorer:   scorer,
	}
}

type RankedAnimal struct {
	Animal    animals.Animal
	MeanScore float64
	// Eligible conta os adotantes que passaram na triagem para este animal.
	Eligible int
}

// TopAdoptable ranqueia os animais disponíveis pela média de compatibilidade
// com os adotantes elegíveis. Pares reprovados na triagem são ignorados;
// animais sem nenhum adotante elegível ficam fora do ranking.
func (s *Service) TopAdoptable(ctx context.Context, limit int) ([]RankedAnimal, error) {
	if limit <= 0 {
		limit = 5
	}

	status := animals.StatusAvailable
	candidates, err := s.animals.List(ctx, animals.Filter{Status: &status})
	if err != nil {
		return nil, err
	}
	people, err := s.adopters.List(ctx)
	if err != nil {
		return nil, err
	}

	var ranked []RankedAnimal
	for _, an := range candidates {
		sum, n := 0, 0
		for _, ad := range people {
			if !s.screen.Evaluate(ad, an.Size).Approved {
				continue
			}
			sum += s.scorer.Score(ad, an).Score
			n++
		}
		if n == 0 {
			continue
		}
		ranked = append(ranked, RankedAnimal{
			Animal:    an,
			MeanScore: float64(sum) / float64(n),
			Eligible:  n,
		})
	}

	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].MeanScore > ranked[j].MeanScore })
	if len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked, nil
}

type GroupKey struct {
	Species animals.Species
	Size    animals.Size
}

// AdoptionsBySpeciesSize conta adoções agrupadas por espécie e porte.
// Considera o histórico: animais devolvidos depois da adoção também contam.
func (s *Service) AdoptionsBySpeciesSize(ctx context.Context) (map[GroupKey]int, error) {
	all, err := s.animals.List(ctx, animals.Filter{})
	if err != nil {
		return nil, err
	}

	out := make(map[GroupKey]int)
	for _, an := range all {
		if _, ok := an.AdoptedAt(); !ok {
			continue
		}
		out[GroupKey{Species: an.Species, Size: an.Size}]++
	}
	return out, nil
}

// AvgTimeToAdoption calcula o tempo médio entre a entrada do animal e a
// primeira adoção. ok=false quando nenhum animal tem adoção registrada.
func (s *Service) AvgTimeToAdoption(ctx context.Context) (time.Duration, bool, error) {
	all, err := s.animals.List(ctx, animals.Filter{})
	if err != nil {
		return 0, false, err
	}

	var total time.Duration
	n := 0
	for _, an := range all {
		adoptedAt, ok := an.AdoptedAt()
		if !ok {
			continue
		}
		delta := adoptedAt.Sub(an.RegisteredAt)
		if delta < 0 {
			// Dados inconsistentes, ignora.
			continue
		}
		total += delta
		n++
	}
	if n == 0 {
		return 0, false, nil
	}
	return total / time.Duration(n), true, nil
}

// ReturnsByReason agrupa as devoluções registradas no histórico pelo motivo
// informado.
func (s *Service) ReturnsByReason(ctx context.Context) (map[string]int, error) {
	all, err := s.animals.List(ctx, animals.Filter{})
	if err != nil {
		return nil, err
	}

	out := make(map[string]int)
	for _, an := range all {
		for _, e := range an.History {
			if e.Type != animals.EventReturned {
				continue
			}
			reason := e.Details
			if reason == "" {
				reason = "não informado"
			}
			out[reason]++
		}
	}
	return out, nil
}

type Rates struct {
	TotalAnimals int
	Adopted      int
	Returned     int
	// AdoptionRate = adotados / total; ReturnRate = devolvidos / adotados.
	AdoptionRate float64
	ReturnRate   float64
}

func (s *Service) Rates(ctx context.Context) (Rates, error) {
	all, err := s.animals.List(ctx, animals.Filter{})
	if err != nil {
		return Rates{}, err
	}

	r := Rates{TotalAnimals: len(all)}
	for _, an := range all {
		if _, ok := an.AdoptedAt(); ok {
			r.Adopted++
		}
		for _, e := range an.History {
			if e.Type == animals.EventReturned {
				r.Returned++
				break
			}
		}
	}
	if r.TotalAnimals > 0 {
		r.AdoptionRate = float64(r.Adopted) / float64(r.TotalAnimals)
	}
	if r.Adopted > 0 {
		r.ReturnRate = float64(r.Returned) / float64(r.Adopted)
	}
	return r, nil
}
