package postgres

import (
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/stockmaster-api/internal/domain/inventory"
)

func TestIsUniqueViolation(t *testing.T) {
	assert.True(t, isUniqueViolation(&pgconn.PgError{Code: "23505"}))
	assert.False(t, isUniqueViolation(&pgconn.PgError{Code: "23503"}))
	assert.False(t, isUniqueViolation(errors.New("otro")))
	assert.True(t, isForeignKeyViolation(&pgconn.PgError{Code: "23503"}))
}

func TestLikePattern(t *testing.T) {
	assert.Equal(t, "%laptop%", likePattern(" laptop "))
	assert.Equal(t, `%50\%\_x%`, likePattern("50%_x"))
}

func TestMoveWhere(t *testing.T) {
	where, args := moveWhere(inventory.MoveFilter{})
	assert.Empty(t, where)
	assert.Empty(t, args)

	from := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	where, args = moveWhere(inventory.MoveFilter{Type: "receipt", Status: "done", ProductID: 7, From: &from, Search: "MV-00042"})
	assert.Contains(t, where, "m.type = $1")
	assert.Contains(t, where, "m.status = $2")
	assert.Contains(t, where, "m.product_id = $3")
	assert.Contains(t, where, "m.created_at >= $4")
	assert.Contains(t, where, "ILIKE $5")
	assert.Contains(t, where, "m.id = $6")
	assert.Equal(t, []any{"receipt", "done", int64(7), from, "%MV-00042%", int64(42)}, args)

	where, args = moveWhere(inventory.MoveFilter{Search: "tornillo"})
	assert.NotContains(t, where, "m.id =")
	assert.Len(t, args, 1)
}
