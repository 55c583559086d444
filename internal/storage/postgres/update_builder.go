package postgres

import (
	"fmt"
	"strings"
	"time"
)

// updateBuilder assembles a sparse UPDATE statement: only provided columns
// appear in the SET list, and updated_at is always forced in.
type updateBuilder struct {
	assignments []string
	args        []any
}

func (b *updateBuilder) set(column string, value any) {
	b.args = append(b.args, value)
	b.assignments = append(b.assignments, fmt.Sprintf("%s = $%d", column, len(b.args)))
}

func setIf[T any](b *updateBuilder, column string, value *T) {
	if value != nil {
		b.set(column, *value)
	}
}

func (b *updateBuilder) empty() bool { return len(b.assignments) == 0 }

// query renders the full statement with a trailing WHERE id = ... and a
// RETURNING list, bumping updated_at as the last assignment.
func (b *updateBuilder) query(table, returning, id string, now time.Time) (string, []any) {
	b.set("updated_at", now)
	args := append(b.args, id)
	q := fmt.Sprintf(
		"UPDATE %s SET %s WHERE id = $%d RETURNING %s",
		table, strings.Join(b.assignments, ", "), len(args), returning,
	)
	return q, args
}
