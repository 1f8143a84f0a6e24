package animals

import (
	"errors"
	"fmt"
)

var ErrInvalidTransition = errors.New("invalid status transition")

type Species string

const (
	SpeciesDog Species = "Cachorro"
	SpeciesCat Species = "Gato"
)

// Size é o porte físico do animal. Os valores seguem o formato persistido
// (P/M/G).
type Size string

const (
	SizeSmall  Size = "P"
	SizeMedium Size = "M"
	SizeLarge  Size = "G"
)

type Sex string

const (
	SexMale   Sex = "M"
	SexFemale Sex = "F"
)

// Status do animal no ciclo de adoção. Transições fora da tabela abaixo são
// rejeitadas; UNAVAILABLE é terminal e animais nunca são removidos
// fisicamente.
type Status string

const (
	StatusAvailable   Status = "DISPONIVEL"
	StatusReserved    Status = "RESERVADO"
	StatusAdopted     Status = "ADOTADO"
	StatusReturned    Status = "DEVOLVIDO"
	StatusQuarantine  Status = "QUARENTENA"
	StatusUnavailable Status = "INADOTAVEL"
)

var allowedTransitions = map[Status][]Status{
	StatusAvailable:   {StatusReserved, StatusUnavailable},
	StatusReserved:    {StatusAdopted, StatusAvailable},
	StatusAdopted:     {StatusReturned},
	StatusReturned:    {StatusAvailable, StatusQuarantine, StatusUnavailable},
	StatusQuarantine:  {StatusAvailable, StatusUnavailable},
	StatusUnavailable: nil,
}

func CanTransition(from, to Status) bool {
	for _, next := range allowedTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

func ValidateTransition(from, to Status) error {
	if !CanTransition(from, to) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, from, to)
	}
	return nil
}

// Tipos de evento registrados no histórico do animal.
const (
	EventIntake         = "ENTRADA"
	EventStatusChange   = "MUDANCA_STATUS"
	EventReserved       = "RESERVA"
	EventReservationEnd = "RESERVA_ENCERRADA"
	EventAdopted        = "ADOCAO"
	EventReturned       = "DEVOLUCAO"
	EventReassessed     = "REAVALIACAO"
)
