package jsonfile

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pet-adoption-center/internal/domain/adopters"
	"pet-adoption-center/internal/domain/animals"
	"pet-adoption-center/internal/domain/reservations"
	"pet-adoption-center/internal/domain/waitlist"
)

// Cada repositório sobrevive a um "restart": grava, reabre do mesmo
// diretório e encontra o mesmo estado.

func TestAnimalRepo_ReloadFromDisk(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	repo, err := NewAnimalRepo(dir)
	require.NoError(t, err)

	registered := time.Date(2026, 1, 10, 8, 0, 0, 0, time.UTC)
	a := animals.Animal{
		ID:           "an1",
		Name:         "Rex",
		Breed:        "SRD",
		Species:      animals.SpeciesDog,
		Sex:          animals.SexMale,
		AgeMonths:    24,
		Size:         animals.SizeLarge,
		Temperament:  []string{"docil", "brincalhao"},
		Dog:          &animals.DogTraits{WalkNeed: 8},
		Status:       animals.StatusAvailable,
		RegisteredAt: registered,
		History: []animals.Event{
			{Type: animals.EventIntake, Details: "cadastrado", At: registered},
		},
	}
	require.NoError(t, repo.Create(ctx, a))

	reopened, err := NewAnimalRepo(dir)
	require.NoError(t, err)

	got, err := reopened.GetByID(ctx, "an1")
	require.NoError(t, err)
	assert.Equal(t, a, got)

	_, err = reopened.GetByID(ctx, "missing")
	assert.ErrorIs(t, err, animals.ErrNotFound)
}

func TestAnimalRepo_ListFilter(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	repo, err := NewAnimalRepo(dir)
	require.NoError(t, err)

	base := time.Date(2026, 1, 10, 8, 0, 0, 0, time.UTC)
	mk := func(id string, species animals.Species, status animals.Status, offset time.Duration) animals.Animal {
		return animals.Animal{
			ID: id, Name: id, Breed: "SRD", Species: species, Sex: animals.SexMale,
			Size: animals.SizeSmall, Status: status, RegisteredAt: base.Add(offset),
		}
	}
	require.NoError(t, repo.Create(ctx, mk("a1", animals.SpeciesDog, animals.StatusAvailable, 0)))
	require.NoError(t, repo.Create(ctx, mk("a2", animals.SpeciesCat, animals.StatusAvailable, time.Hour)))
	require.NoError(t, repo.Create(ctx, mk("a3", animals.SpeciesDog, animals.StatusAdopted, 2*time.Hour)))

	status := animals.StatusAvailable
	list, err := repo.List(ctx, animals.Filter{Status: &status})
	require.NoError(t, err)
	require.Len(t, list, 2)
	// Ordenado por data de entrada.
	assert.Equal(t, "a1", list[0].ID)
	assert.Equal(t, "a2", list[1].ID)

	species := animals.SpeciesDog
	list, err = repo.List(ctx, animals.Filter{Species: &species})
	require.NoError(t, err)
	assert.Len(t, list, 2)
}

func TestAdopterRepo_ReloadFromDisk(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	repo, err := NewAdopterRepo(dir)
	require.NoError(t, err)

	now := time.Date(2026, 1, 11, 9, 0, 0, 0, time.UTC)
	a := adopters.Adopter{
		ID: "ad1", Name: "Ana", Age: 30,
		Housing: adopters.HousingHouse, HousingArea: 80,
		Experience: true, CreatedAt: now, UpdatedAt: now,
	}
	require.NoError(t, repo.Create(ctx, a))

	a.Age = 31
	a.UpdatedAt = now.Add(time.Hour)
	require.NoError(t, repo.Update(ctx, a))

	reopened, err := NewAdopterRepo(dir)
	require.NoError(t, err)
	got, err := reopened.GetByID(ctx, "ad1")
	require.NoError(t, err)
	assert.Equal(t, a, got)
}

func TestReservationRepo_ReloadFromDisk(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	repo, err := NewReservationRepo(dir)
	require.NoError(t, err)

	created := time.Date(2026, 1, 12, 10, 0, 0, 0, time.UTC)
	r := reservations.Reservation{
		ID: "r1", AnimalID: "an1", AdopterID: "ad1",
		Status: reservations.StatusActive,
		CreatedAt: created, ExpiresAt: created.Add(48 * time.Hour),
	}
	require.NoError(t, repo.Create(ctx, r))

	reopened, err := NewReservationRepo(dir)
	require.NoError(t, err)

	active, err := reopened.GetActiveByAnimal(ctx, "an1")
	require.NoError(t, err)
	assert.Equal(t, r, active)

	has, err := reopened.HasActiveForAdopter(ctx, "ad1")
	require.NoError(t, err)
	assert.True(t, has)

	// Fecha a reserva e reabre de novo.
	closed := created.Add(time.Hour)
	r.Status = reservations.StatusCancelled
	r.ClosedAt = &closed
	require.NoError(t, reopened.Update(ctx, r))

	final, err := NewReservationRepo(dir)
	require.NoError(t, err)
	_, err = final.GetActiveByAnimal(ctx, "an1")
	assert.ErrorIs(t, err, reservations.ErrNotFound)

	got, err := final.GetByID(ctx, "r1")
	require.NoError(t, err)
	require.NotNil(t, got.ClosedAt)
	assert.True(t, got.ClosedAt.Equal(closed))
}

func TestWaitlistRepo_ReloadFromDisk(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	repo, err := NewWaitlistRepo(dir)
	require.NoError(t, err)

	e := waitlist.Entry{
		ID: "e1", AnimalID: "an1", AdopterID: "ad1",
		Score: 80, EnqueuedAt: time.Date(2026, 1, 13, 11, 0, 0, 0, time.UTC),
	}
	require.NoError(t, repo.Add(ctx, e))
	assert.ErrorIs(t, repo.Add(ctx, e), waitlist.ErrDuplicateEntry)

	reopened, err := NewWaitlistRepo(dir)
	require.NoError(t, err)

	entries, err := reopened.ListByAnimal(ctx, "an1")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, e, entries[0])

	removed, err := reopened.Remove(ctx, "an1", "ad1")
	require.NoError(t, err)
	assert.True(t, removed)

	removed, err = reopened.Remove(ctx, "an1", "ad1")
	require.NoError(t, err)
	assert.False(t, removed)
}
