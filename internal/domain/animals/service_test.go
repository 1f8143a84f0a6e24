package animals

import (
	"context"
	"errors"
	"testing"
	"time"
)

// -------------------------
// Test repo (in-memory)
// -------------------------

type testRepo struct {
	byID map[string]Animal
}

func newTestRepo() *testRepo {
	return &testRepo{byID: map[string]Animal{}}
}

func (r *testRepo) Create(ctx context.Context, a Animal) error {
	if _, ok := r.byID[a.ID]; ok {
		return errors.New("repo: already exists")
	}
	r.byID[a.ID] = a
	return nil
}

func (r *testRepo) Update(ctx context.Context, a Animal) error {
	if _, ok := r.byID[a.ID]; !ok {
		return ErrNotFound
	}
	r.byID[a.ID] = a
	return nil
}

func (r *testRepo) GetByID(ctx context.Context, id string) (Animal, error) {
	a, ok := r.byID[id]
	if !ok {
		return Animal{}, ErrNotFound
	}
	return a, nil
}

func (r *testRepo) List(ctx context.Context, f Filter) ([]Animal, error) {
	out := make([]Animal, 0)
	for _, a := range r.byID {
		if f.Status != nil && a.Status != *f.Status {
			continue
		}
		out = append(out, a)
	}
	return out, nil
}

func fixedNow() time.Time {
	return time.Date(2026, 2, 10, 9, 0, 0, 0, time.UTC)
}

func newTestService(repo *testRepo) *Service {
	svc := NewService(repo, nil)
	svc.now = fixedNow
	return svc
}

// -------------------------
// Tests
// -------------------------

func TestRegister_Dog(t *testing.T) {
	svc := newTestService(newTestRepo())

	a, err := svc.Register(context.Background(), RegisterInput{
		Name:        "Rex",
		Breed:       "SRD",
		Species:     SpeciesDog,
		Sex:         SexMale,
		AgeMonths:   24,
		Size:        SizeMedium,
		Temperament: []string{"Docil", " docil ", "BRINCALHAO"},
		WalkNeed:    7,
	})
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}

	if a.Status != StatusAvailable {
		t.Fatalf("expected status %s, got %s", StatusAvailable, a.Status)
	}
	if a.Dog == nil || a.Dog.WalkNeed != 7 {
		t.Fatalf("dog traits not set: %+v", a.Dog)
	}
	if a.Cat != nil {
		t.Fatalf("cat traits set on a dog")
	}

	// Temperamento normalizado: minúsculo, sem duplicatas.
	if len(a.Temperament) != 2 || a.Temperament[0] != "docil" || a.Temperament[1] != "brincalhao" {
		t.Fatalf("unexpected temperament: %v", a.Temperament)
	}

	if len(a.History) != 1 || a.History[0].Type != EventIntake {
		t.Fatalf("expected intake event, got %+v", a.History)
	}
}

func TestRegister_Validation(t *testing.T) {
	svc := newTestService(newTestRepo())
	ctx := context.Background()

	cases := []struct {
		name string
		in   RegisterInput
	}{
		{"empty name", RegisterInput{Breed: "SRD", Species: SpeciesDog, Sex: SexMale, Size: SizeSmall}},
		{"empty breed", RegisterInput{Name: "Rex", Species: SpeciesDog, Sex: SexMale, Size: SizeSmall}},
		{"bad sex", RegisterInput{Name: "Rex", Breed: "SRD", Species: SpeciesDog, Sex: "X", Size: SizeSmall}},
		{"negative age", RegisterInput{Name: "Rex", Breed: "SRD", Species: SpeciesDog, Sex: SexMale, AgeMonths: -1, Size: SizeSmall}},
		{"bad size", RegisterInput{Name: "Rex", Breed: "SRD", Species: SpeciesDog, Sex: SexMale, Size: "XG"}},
		{"bad species", RegisterInput{Name: "Rex", Breed: "SRD", Species: "Papagaio", Sex: SexMale, Size: SizeSmall}},
		{"walk need out of range", RegisterInput{Name: "Rex", Breed: "SRD", Species: SpeciesDog, Sex: SexMale, Size: SizeSmall, WalkNeed: 11}},
		{"independence out of range", RegisterInput{Name: "Mia", Breed: "SRD", Species: SpeciesCat, Sex: SexFemale, Size: SizeSmall, Independence: -2}},
	}

	for _, c := range cases {
		if _, err := svc.Register(ctx, c.in); !errors.Is(err, ErrInvalidInput) {
			t.Errorf("%s: expected ErrInvalidInput, got %v", c.name, err)
		}
	}
}

func TestProcessReturn_NoIssueBackToAvailable(t *testing.T) {
	repo := newTestRepo()
	svc := newTestService(repo)
	repo.byID["a1"] = Animal{ID: "a1", Name: "Rex", Status: StatusAdopted}

	a, err := svc.ProcessReturn(context.Background(), "a1", "mudança de cidade", false)
	if err != nil {
		t.Fatalf("ProcessReturn returned error: %v", err)
	}
	if a.Status != StatusAvailable {
		t.Fatalf("expected %s, got %s", StatusAvailable, a.Status)
	}

	// O trânsito por DEVOLVIDO fica no histórico.
	var returned bool
	for _, e := range a.History {
		if e.Type == EventReturned && e.Details == "mudança de cidade" {
			returned = true
		}
	}
	if !returned {
		t.Fatalf("return event missing from history: %+v", a.History)
	}
}

func TestProcessReturn_HealthIssueGoesToQuarantine(t *testing.T) {
	repo := newTestRepo()
	svc := newTestService(repo)
	repo.byID["a1"] = Animal{ID: "a1", Status: StatusAdopted}

	a, err := svc.ProcessReturn(context.Background(), "a1", "mordeu", true)
	if err != nil {
		t.Fatalf("ProcessReturn returned error: %v", err)
	}
	if a.Status != StatusQuarantine {
		t.Fatalf("expected %s, got %s", StatusQuarantine, a.Status)
	}
}

func TestProcessReturn_RejectsNonAdopted(t *testing.T) {
	repo := newTestRepo()
	svc := newTestService(repo)
	repo.byID["a1"] = Animal{ID: "a1", Status: StatusAvailable}

	_, err := svc.ProcessReturn(context.Background(), "a1", "x", false)
	if !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition, got %v", err)
	}
}

func TestReassess(t *testing.T) {
	repo := newTestRepo()
	svc := newTestService(repo)
	ctx := context.Background()

	repo.byID["q1"] = Animal{ID: "q1", Status: StatusQuarantine}
	a, err := svc.Reassess(ctx, "q1", true)
	if err != nil {
		t.Fatalf("Reassess returned error: %v", err)
	}
	if a.Status != StatusAvailable {
		t.Fatalf("fit animal: expected %s, got %s", StatusAvailable, a.Status)
	}

	repo.byID["q2"] = Animal{ID: "q2", Status: StatusQuarantine}
	a, err = svc.Reassess(ctx, "q2", false)
	if err != nil {
		t.Fatalf("Reassess returned error: %v", err)
	}
	if a.Status != StatusUnavailable {
		t.Fatalf("unfit animal: expected %s, got %s", StatusUnavailable, a.Status)
	}

	// INADOTAVEL é terminal: nova reavaliação é rejeitada.
	if _, err := svc.Reassess(ctx, "q2", true); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition on terminal status, got %v", err)
	}
}
