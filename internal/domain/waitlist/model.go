package waitlist

import "time"

// Entry é a posição de um adotante na fila de um animal. O score de
// compatibilidade é congelado no momento da entrada para manter a ordenação
// estável; só muda via RefreshScores.
type Entry struct {
	ID        string
	AnimalID  string
	AdopterID string

	Score      int
	EnqueuedAt time.Time
}

// Before define a prioridade da fila: maior score primeiro; empate decidido
// por ordem de chegada (FIFO).
func Before(a, b Entry) bool {
	if a.Score != b.Score {
		return a.Score > b.Score
	}
	if !a.EnqueuedAt.Equal(b.EnqueuedAt) {
		return a.EnqueuedAt.Before(b.EnqueuedAt)
	}
	return a.ID < b.ID
}
