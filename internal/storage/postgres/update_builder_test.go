package postgres

import (
	"testing"
	"time"
)

func TestUpdateBuilder_OnlyProvidedColumns(t *testing.T) {
	var b updateBuilder
	title := "new title"
	setIf(&b, "title", &title)
	setIf[string](&b, "url", nil)
	active := false
	setIf(&b, "active", &active)

	now := time.Date(2025, 2, 1, 10, 0, 0, 0, time.UTC)
	q, args := b.query("links", "id", "link-1", now)

	want := "UPDATE links SET title = $1, active = $2, updated_at = $3 WHERE id = $4 RETURNING id"
	if q != want {
		t.Errorf("query =\n%s\nwant\n%s", q, want)
	}
	if len(args) != 4 {
		t.Fatalf("args = %d, want 4", len(args))
	}
	if args[0] != "new title" || args[1] != false || args[3] != "link-1" {
		t.Errorf("args = %v", args)
	}
	if !args[2].(time.Time).Equal(now) {
		t.Error("updated_at must carry the forced timestamp")
	}
}

func TestUpdateBuilder_EmptyDetectsNoAssignments(t *testing.T) {
	var b updateBuilder
	if !b.empty() {
		t.Error("fresh builder must be empty")
	}
	setIf[string](&b, "title", nil)
	if !b.empty() {
		t.Error("nil pointers must not add assignments")
	}
	v := "x"
	setIf(&b, "title", &v)
	if b.empty() {
		t.Error("set column must mark the builder non-empty")
	}
}
