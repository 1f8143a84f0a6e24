package reservations

import (
	"context"
	"time"
)

// Sweep percorre as reservas ATIVAS e expira as vencidas em relação a now,
// devolvendo o animal para DISPONIVEL e acionando a fila de espera.
// Idempotente: uma segunda varredura com o mesmo now não transiciona nada.
// Deve rodar antes de qualquer leitura de disponibilidade, para que nenhum
// chamador veja um animal RESERVADO além do prazo.
func (s *Service) Sweep(ctx context.Context, now time.Time) ([]string, error) {
	active, err := s.reservations.ListActive(ctx)
	if err != nil {
		return nil, err
	}

	var expired []string
	for _, r := range active {
		if !r.ExpiredBy(now) {
			continue
		}

		lock := s.lockFor(r.AnimalID)
		lock.Lock()

		// Releitura sob o lock: outra operação pode ter fechado a reserva.
		fresh, err := s.reservations.GetByID(ctx, r.ID)
		if err != nil {
			lock.Unlock()
			return expired, err
		}
		if fresh.Status != StatusActive || !fresh.ExpiredBy(now) {
			lock.Unlock()
			continue
		}

		if _, err := s.closeLocked(ctx, fresh, StatusExpired, "reserva expirada"); err != nil {
			lock.Unlock()
			return expired, err
		}
		expired = append(expired, fresh.ID)
		lock.Unlock()
	}

	return expired, nil
}
