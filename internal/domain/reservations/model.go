package reservations

import "time"

// Status da reserva. ACTIVE é o único estado vivo; os demais são terminais e
// a reserva nunca é removida fisicamente (histórico de relatórios).
type Status string

const (
	StatusActive    Status = "ATIVA"
	StatusConfirmed Status = "CONFIRMADA"
	StatusExpired   Status = "EXPIRADA"
	StatusCancelled Status = "CANCELADA"
)

// Reservation é a posse temporária de um animal por um adotante. ExpiresAt é
// fixado na criação (created_at + duração da política) e nunca estendido.
type Reservation struct {
	ID        string
	AnimalID  string
	AdopterID string

	Status Status

	CreatedAt time.Time
	ExpiresAt time.Time
	// ClosedAt marca a transição para um estado terminal.
	ClosedAt *time.Time
}

// ExpiredBy reporta se o prazo venceu: expires_at <= now.
func (r Reservation) ExpiredBy(now time.Time) bool {
	return !now.Before(r.ExpiresAt)
}
