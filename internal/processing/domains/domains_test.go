package domains

import (
	"context"
	"errors"
	"testing"
	"time"
)

type mockDomainRepo struct {
	insertFn   func(ctx context.Context, domain *Domain) error
	findByIDFn func(ctx context.Context, id string) (*Domain, error)
	updateFn   func(ctx context.Context, id string, in UpdateDomainInput) (*Domain, error)
	deleteFn   func(ctx context.Context, id string) (bool, error)

	updateCalls int
}

func (m *mockDomainRepo) Insert(ctx context.Context, d *Domain) error { return m.insertFn(ctx, d) }
func (m *mockDomainRepo) FindByID(ctx context.Context, id string) (*Domain, error) {
	return m.findByIDFn(ctx, id)
}
func (m *mockDomainRepo) FindAll(context.Context, int, int) ([]Domain, error) { return nil, nil }
func (m *mockDomainRepo) Update(ctx context.Context, id string, in UpdateDomainInput) (*Domain, error) {
	m.updateCalls++
	return m.updateFn(ctx, id, in)
}
func (m *mockDomainRepo) Delete(ctx context.Context, id string) (bool, error) {
	return m.deleteFn(ctx, id)
}

func newTestService(repo *mockDomainRepo) *Service {
	svc := NewService(repo)
	svc.now = func() time.Time {
		return time.Date(2025, 2, 1, 10, 0, 0, 0, time.UTC)
	}
	svc.newID = func() string { return "dom-1" }
	return svc
}

func TestCreate_HappyPath(t *testing.T) {
	var stored *Domain
	repo := &mockDomainRepo{
		insertFn: func(_ context.Context, d *Domain) error {
			stored = d
			return nil
		},
	}
	svc := newTestService(repo)

	domain, err := svc.Create(context.Background(), "  Short.Example ")
	if err != nil {
		t.Fatal(err)
	}
	if stored == nil {
		t.Fatal("domain was not inserted")
	}
	if domain.Name != "short.example" {
		t.Errorf("name = %q, want normalized lower-case host", domain.Name)
	}
	if !domain.CreatedAt.Equal(domain.UpdatedAt) {
		t.Error("created_at and updated_at must match on create")
	}
}

func TestCreate_RejectsNonHostNames(t *testing.T) {
	svc := newTestService(&mockDomainRepo{})

	for _, bad := range []string{"", "  ", "https://short.example", "short.example/path", "short.example:8080", ".short.example", "short.example.", "two words"} {
		if _, err := svc.Create(context.Background(), bad); !errors.Is(err, ErrInvalidName) {
			t.Errorf("name %q: expected ErrInvalidName, got: %v", bad, err)
		}
	}
}

func TestUpdate_EmptyInputIsNoOp(t *testing.T) {
	existing := &Domain{ID: "dom-1", Name: "short.example"}
	repo := &mockDomainRepo{
		findByIDFn: func(context.Context, string) (*Domain, error) { return existing, nil },
		updateFn: func(context.Context, string, UpdateDomainInput) (*Domain, error) {
			t.Fatal("repo.Update must not run for an empty input")
			return nil, nil
		},
	}
	svc := newTestService(repo)

	got, err := svc.Update(context.Background(), "dom-1", UpdateDomainInput{})
	if err != nil {
		t.Fatal(err)
	}
	if got != existing {
		t.Error("no-op update must return the stored domain")
	}
	if repo.updateCalls != 0 {
		t.Error("no update statement may run")
	}
}

func TestUpdate_NormalizesName(t *testing.T) {
	var seen UpdateDomainInput
	repo := &mockDomainRepo{
		updateFn: func(_ context.Context, _ string, in UpdateDomainInput) (*Domain, error) {
			seen = in
			return &Domain{ID: "dom-1"}, nil
		},
	}
	svc := newTestService(repo)

	name := " NEW.Example "
	if _, err := svc.Update(context.Background(), "dom-1", UpdateDomainInput{Name: &name}); err != nil {
		t.Fatal(err)
	}
	if seen.Name == nil || *seen.Name != "new.example" {
		t.Errorf("name passed to repo = %v", seen.Name)
	}
}

func TestDelete_NotFound(t *testing.T) {
	repo := &mockDomainRepo{
		deleteFn: func(context.Context, string) (bool, error) { return false, nil },
	}
	svc := newTestService(repo)

	if err := svc.Delete(context.Background(), "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got: %v", err)
	}
}
