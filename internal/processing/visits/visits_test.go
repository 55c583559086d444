package visits

import (
	"context"
	"errors"
	"testing"
	"time"
)

type mockVisitRepo struct {
	findByLinkFn  func(ctx context.Context, linkID string, limit, offset int) ([]Visit, error)
	countByLinkFn func(ctx context.Context, linkID string) (int64, error)
	findByRangeFn func(ctx context.Context, from, to time.Time, limit, offset int) ([]Visit, error)
	deleteFn      func(ctx context.Context, id string) (bool, error)
	deleteByLink  func(ctx context.Context, linkID string) (int64, error)
	countryFn     func(ctx context.Context, linkID string) ([]CountryCount, error)
}

func (m *mockVisitRepo) FindByLink(ctx context.Context, linkID string, limit, offset int) ([]Visit, error) {
	return m.findByLinkFn(ctx, linkID, limit, offset)
}
func (m *mockVisitRepo) CountByLink(ctx context.Context, linkID string) (int64, error) {
	return m.countByLinkFn(ctx, linkID)
}
func (m *mockVisitRepo) FindByRange(ctx context.Context, from, to time.Time, limit, offset int) ([]Visit, error) {
	return m.findByRangeFn(ctx, from, to, limit, offset)
}
func (m *mockVisitRepo) Delete(ctx context.Context, id string) (bool, error) {
	return m.deleteFn(ctx, id)
}
func (m *mockVisitRepo) DeleteByLink(ctx context.Context, linkID string) (int64, error) {
	return m.deleteByLink(ctx, linkID)
}
func (m *mockVisitRepo) CountByCountry(ctx context.Context, linkID string) ([]CountryCount, error) {
	return m.countryFn(ctx, linkID)
}

func TestListByLink_ClampsPagination(t *testing.T) {
	var gotLimit, gotOffset int
	repo := &mockVisitRepo{
		findByLinkFn: func(_ context.Context, _ string, limit, offset int) ([]Visit, error) {
			gotLimit, gotOffset = limit, offset
			return nil, nil
		},
		countByLinkFn: func(context.Context, string) (int64, error) { return 0, nil },
	}
	svc := NewService(repo)

	if _, _, err := svc.ListByLink(context.Background(), "link-1", -5, -3); err != nil {
		t.Fatal(err)
	}
	if gotLimit != 100 || gotOffset != 0 {
		t.Errorf("limit/offset = %d/%d, want 100/0", gotLimit, gotOffset)
	}
}

func TestListByRange_RejectsInvertedRange(t *testing.T) {
	svc := NewService(&mockVisitRepo{})

	from := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	to := from.Add(-time.Hour)
	if _, err := svc.ListByRange(context.Background(), from, to, 10, 0); !errors.Is(err, ErrInvalidRange) {
		t.Fatalf("expected ErrInvalidRange, got: %v", err)
	}
}

func TestDelete_NotFound(t *testing.T) {
	repo := &mockVisitRepo{
		deleteFn: func(context.Context, string) (bool, error) { return false, nil },
	}
	svc := NewService(repo)

	if err := svc.Delete(context.Background(), "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got: %v", err)
	}
}

func TestDeleteByLink_ZeroIsNotAnError(t *testing.T) {
	repo := &mockVisitRepo{
		deleteByLink: func(context.Context, string) (int64, error) { return 0, nil },
	}
	svc := NewService(repo)

	n, err := svc.DeleteByLink(context.Background(), "link-1")
	if err != nil {
		t.Fatal(err)
	}
	if n != 0 {
		t.Errorf("deleted = %d, want 0", n)
	}
}

func TestCountryStats_TrimsLinkID(t *testing.T) {
	var seen string
	repo := &mockVisitRepo{
		countryFn: func(_ context.Context, linkID string) ([]CountryCount, error) {
			seen = linkID
			return []CountryCount{{Country: "Brazil", Count: 3}}, nil
		},
	}
	svc := NewService(repo)

	stats, err := svc.CountryStats(context.Background(), "  link-1 ")
	if err != nil {
		t.Fatal(err)
	}
	if seen != "link-1" {
		t.Errorf("linkID = %q", seen)
	}
	if len(stats) != 1 || stats[0].Country != "Brazil" {
		t.Errorf("stats = %v", stats)
	}
}
