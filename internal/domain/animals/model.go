package animals

import (
	"fmt"
	"time"
)

// DogTraits e CatTraits são as cargas específicas por espécie. Exatamente
// uma delas é não-nula, conforme o campo Species.
type DogTraits struct {
	// WalkNeed: 0 (sedentário) a 10 (precisa de muito exercício).
	WalkNeed int
}

type CatTraits struct {
	// Independence: 0 (muito dependente) a 10 (fica sozinho sem problema).
	Independence int
}

// Event é um fato imutável do histórico do animal.
type Event struct {
	Type    string
	Details string
	At      time.Time
}

// Animal é o registro base compartilhado entre as espécies.
type Animal struct {
	ID      string
	Name    string
	Breed   string
	Species Species
	Sex     Sex

	AgeMonths   int
	Size        Size
	Temperament []string

	Dog *DogTraits
	Cat *CatTraits

	Status       Status
	RegisteredAt time.Time

	// History nunca é truncado; alimenta os relatórios de tempo até adoção
	// e devoluções por motivo.
	History []Event
}

func (a Animal) HasTemperament(trait string) bool {
	for _, t := range a.Temperament {
		if t == trait {
			return true
		}
	}
	return false
}

// TemperamentKnown indica se o animal tem temperamento declarado. Sem dados,
// os critérios de compatibilidade que dependem dele usam score neutro.
func (a Animal) TemperamentKnown() bool {
	return len(a.Temperament) > 0
}

// ChangeStatus valida e aplica a transição, registrando-a no histórico.
func (a *Animal) ChangeStatus(to Status, reason string, at time.Time) error {
	if err := ValidateTransition(a.Status, to); err != nil {
		return err
	}
	details := fmt.Sprintf("%s -> %s", a.Status, to)
	if reason != "" {
		details += " | motivo: " + reason
	}
	a.Status = to
	a.Record(EventStatusChange, details, at)
	return nil
}

// Record adiciona um evento ao histórico.
func (a *Animal) Record(eventType, details string, at time.Time) {
	a.History = append(a.History, Event{Type: eventType, Details: details, At: at})
}

// AdoptedAt devolve o instante da primeira adoção registrada no histórico.
func (a Animal) AdoptedAt() (time.Time, bool) {
	for _, e := range a.History {
		if e.Type == EventAdopted {
			return e.At, true
		}
	}
	return time.Time{}, false
}
