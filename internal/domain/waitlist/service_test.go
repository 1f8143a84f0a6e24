package waitlist

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pet-adoption-center/internal/domain/adopters"
	"pet-adoption-center/internal/domain/animals"
	"pet-adoption-center/internal/domain/compat"
)

// -------------------------
// Fakes
// -------------------------

type testRepo struct {
	entries map[string]Entry // chave animalID|adopterID
}

func newTestRepo() *testRepo {
	return &testRepo{entries: map[string]Entry{}}
}

func key(animalID, adopterID string) string { return animalID + "|" + adopterID }

func (r *testRepo) Add(ctx context.Context, e Entry) error {
	k := key(e.AnimalID, e.AdopterID)
	if _, ok := r.entries[k]; ok {
		return ErrDuplicateEntry
	}
	r.entries[k] = e
	return nil
}

func (r *testRepo) Update(ctx context.Context, e Entry) error {
	k := key(e.AnimalID, e.AdopterID)
	if _, ok := r.entries[k]; !ok {
		return errors.New("repo: entry not found")
	}
	r.entries[k] = e
	return nil
}

func (r *testRepo) Remove(ctx context.Context, animalID, adopterID string) (bool, error) {
	k := key(animalID, adopterID)
	if _, ok := r.entries[k]; !ok {
		return false, nil
	}
	delete(r.entries, k)
	return true, nil
}

func (r *testRepo) ExistsFor(ctx context.Context, animalID, adopterID string) (bool, error) {
	_, ok := r.entries[key(animalID, adopterID)]
	return ok, nil
}

func (r *testRepo) ListByAnimal(ctx context.Context, animalID string) ([]Entry, error) {
	out := make([]Entry, 0)
	for _, e := range r.entries {
		if e.AnimalID == animalID {
			out = append(out, e)
		}
	}
	return out, nil
}

type testAnimals struct{ byID map[string]animals.Animal }

func (g testAnimals) GetByID(ctx context.Context, id string) (animals.Animal, error) {
	a, ok := g.byID[id]
	if !ok {
		return animals.Animal{}, animals.ErrNotFound
	}
	return a, nil
}

type testAdopters struct{ byID map[string]adopters.Adopter }

func (g testAdopters) GetByID(ctx context.Context, id string) (adopters.Adopter, error) {
	a, ok := g.byID[id]
	if !ok {
		return adopters.Adopter{}, adopters.ErrNotFound
	}
	return a, nil
}

// testScorer devolve um score fixo por adotante.
type testScorer struct{ scores map[string]int }

func (s testScorer) Score(a adopters.Adopter, an animals.Animal) compat.Result {
	return compat.Result{AdopterID: a.ID, AnimalID: an.ID, Score: s.scores[a.ID]}
}

func newFixture(scores map[string]int) (*Service, *testRepo) {
	repo := newTestRepo()
	animalStore := testAnimals{byID: map[string]animals.Animal{
		"an1": {ID: "an1", Status: animals.StatusReserved},
	}}
	adopterStore := testAdopters{byID: map[string]adopters.Adopter{}}
	for id := range scores {
		adopterStore.byID[id] = adopters.Adopter{ID: id}
	}
	svc := NewService(repo, animalStore, adopterStore, testScorer{scores: scores})
	return svc, repo
}

// -------------------------
// Tests
// -------------------------

func TestBefore_Ordering(t *testing.T) {
	base := time.Date(2026, 1, 5, 10, 0, 0, 0, time.UTC)

	higher := Entry{ID: "a", Score: 80, EnqueuedAt: base.Add(time.Hour)}
	lower := Entry{ID: "b", Score: 60, EnqueuedAt: base}

	// Score maior vence mesmo chegando depois.
	assert.True(t, Before(higher, lower))
	assert.False(t, Before(lower, higher))

	// Empate de score: FIFO.
	first := Entry{ID: "c", Score: 70, EnqueuedAt: base}
	second := Entry{ID: "d", Score: 70, EnqueuedAt: base.Add(time.Minute)}
	assert.True(t, Before(first, second))
	assert.False(t, Before(second, first))
}

func TestEnqueue_FreezesScore(t *testing.T) {
	scores := map[string]int{"ad1": 75}
	svc, _ := newFixture(scores)
	now := time.Date(2026, 1, 5, 10, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	e, err := svc.Enqueue(context.Background(), "an1", "ad1")
	require.NoError(t, err)
	assert.Equal(t, 75, e.Score)
	assert.Equal(t, now, e.EnqueuedAt)
	assert.NotEmpty(t, e.ID)
}

func TestEnqueue_DuplicateRejected(t *testing.T) {
	svc, _ := newFixture(map[string]int{"ad1": 50})
	ctx := context.Background()

	_, err := svc.Enqueue(ctx, "an1", "ad1")
	require.NoError(t, err)

	_, err = svc.Enqueue(ctx, "an1", "ad1")
	assert.ErrorIs(t, err, ErrDuplicateEntry)
}

func TestPromoteNext_HighestScoreFirst(t *testing.T) {
	svc, _ := newFixture(map[string]int{"ad1": 60, "ad2": 80, "ad3": 70})
	ctx := context.Background()

	base := time.Date(2026, 1, 5, 10, 0, 0, 0, time.UTC)
	step := 0
	svc.now = func() time.Time {
		step++
		return base.Add(time.Duration(step) * time.Minute)
	}

	for _, id := range []string{"ad1", "ad2", "ad3"} {
		_, err := svc.Enqueue(ctx, "an1", id)
		require.NoError(t, err)
	}

	var order []string
	for {
		e, ok, err := svc.PromoteNext(ctx, "an1")
		require.NoError(t, err)
		if !ok {
			break
		}
		order = append(order, e.AdopterID)
	}
	assert.Equal(t, []string{"ad2", "ad3", "ad1"}, order)
}

func TestPromoteNext_FIFOOnTie(t *testing.T) {
	svc, _ := newFixture(map[string]int{"ad1": 70, "ad2": 70})
	ctx := context.Background()

	base := time.Date(2026, 1, 5, 10, 0, 0, 0, time.UTC)
	times := []time.Time{base, base.Add(time.Minute)}
	i := 0
	svc.now = func() time.Time {
		t := times[i]
		i++
		return t
	}

	_, err := svc.Enqueue(ctx, "an1", "ad1")
	require.NoError(t, err)
	_, err = svc.Enqueue(ctx, "an1", "ad2")
	require.NoError(t, err)

	e, ok, err := svc.PromoteNext(ctx, "an1")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "ad1", e.AdopterID)
}

func TestPromoteNext_EmptyQueue(t *testing.T) {
	svc, _ := newFixture(nil)

	_, ok, err := svc.PromoteNext(context.Background(), "an1")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestWithdraw_AbsentIsNoop(t *testing.T) {
	svc, _ := newFixture(map[string]int{"ad1": 50})
	ctx := context.Background()

	require.NoError(t, svc.Withdraw(ctx, "an1", "ad1"))

	_, err := svc.Enqueue(ctx, "an1", "ad1")
	require.NoError(t, err)
	require.NoError(t, svc.Withdraw(ctx, "an1", "ad1"))

	n, err := svc.Len(ctx, "an1")
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestRanking_SortedByPriority(t *testing.T) {
	svc, _ := newFixture(map[string]int{"ad1": 60, "ad2": 90, "ad3": 75})
	ctx := context.Background()

	for _, id := range []string{"ad1", "ad2", "ad3"} {
		_, err := svc.Enqueue(ctx, "an1", id)
		require.NoError(t, err)
	}

	ranking, err := svc.Ranking(ctx, "an1")
	require.NoError(t, err)
	require.Len(t, ranking, 3)
	assert.Equal(t, "ad2", ranking[0].AdopterID)
	assert.Equal(t, "ad3", ranking[1].AdopterID)
	assert.Equal(t, "ad1", ranking[2].AdopterID)
}

func TestRefreshScores_UpdatesFrozenScores(t *testing.T) {
	scores := map[string]int{"ad1": 50}
	svc, repo := newFixture(scores)
	ctx := context.Background()

	_, err := svc.Enqueue(ctx, "an1", "ad1")
	require.NoError(t, err)

	// Os dados do adotante mudaram depois da entrada na fila.
	scores["ad1"] = 90
	require.NoError(t, svc.RefreshScores(ctx, "an1"))

	entries, err := repo.ListByAnimal(ctx, "an1")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, 90, entries[0].Score)
}
