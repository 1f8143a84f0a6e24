package adopters

import "time"

// Housing é o tipo de moradia do adotante.
type Housing string

const (
	HousingHouse     Housing = "casa"
	HousingApartment Housing = "apartamento"
)

// Adopter guarda os atributos consumidos pela triagem e pelo cálculo de
// compatibilidade.
type Adopter struct {
	ID   string
	Name string
	Age  int

	Housing     Housing
	HousingArea float64

	Experience  bool
	HasChildren bool
	OtherPets   bool

	CreatedAt time.Time
	UpdatedAt time.Time
}
