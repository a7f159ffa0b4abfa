package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/stockmaster-api/internal/domain"
	"github.com/jhoicas/stockmaster-api/internal/domain/entity"
	"github.com/jhoicas/stockmaster-api/internal/domain/inventory"
	"github.com/jhoicas/stockmaster-api/internal/domain/repository"
)

var _ repository.MoveRepository = (*MoveRepo)(nil)

// MoveRepo ledger de movimientos sobre PostgreSQL (usable con pool o tx).
type MoveRepo struct {
	q Querier
}

// NewMoveRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMoveRepository(q Querier) *MoveRepo {
	return &MoveRepo{q: q}
}

const moveViewSelect = `
	SELECT m.id, m.product_id, m.source_location_id, m.dest_location_id, m.quantity, m.type, m.status,
	       m.reference, m.reason, m.scheduled_at, m.created_at, m.done_at, COALESCE(m.created_by::TEXT, ''),
	       p.sku, p.name, s.name, s.kind, d.name, d.kind
	FROM stock_moves m
	JOIN products  p ON p.id = m.product_id
	JOIN locations s ON s.id = m.source_location_id
	JOIN locations d ON d.id = m.dest_location_id`

// moveCodeExpr reproduce FormatMoveCode en SQL para poder buscar por MV-xxxxx.
const moveCodeExpr = `('MV-' || lpad(m.id::TEXT, 5, '0'))`

func scanMoveView(row pgx.Row) (*entity.StockMoveView, error) {
	var v entity.StockMoveView
	err := row.Scan(
		&v.ID, &v.ProductID, &v.SourceID, &v.DestID, &v.Quantity, &v.Type, &v.Status,
		&v.Reference, &v.Reason, &v.ScheduledAt, &v.CreatedAt, &v.DoneAt, &v.CreatedBy,
		&v.ProductSKU, &v.ProductName, &v.SourceName, &v.SourceKind, &v.DestName, &v.DestKind,
	)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// Create persiste un movimiento y asigna ID y CreatedAt. ScheduledAt vacío toma now().
func (r *MoveRepo) Create(ctx context.Context, m *entity.StockMove) error {
	query := `
		INSERT INTO stock_moves (product_id, source_location_id, dest_location_id, quantity, type, status,
		                         reference, reason, scheduled_at, done_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, COALESCE($9::timestamptz, now()), $10, $11)
		RETURNING id, scheduled_at, created_at`
	var scheduled any
	if !m.ScheduledAt.IsZero() {
		scheduled = m.ScheduledAt
	}
	var createdBy any
	if m.CreatedBy != "" {
		createdBy = m.CreatedBy
	}
	err := r.q.QueryRow(ctx, query,
		m.ProductID, m.SourceID, m.DestID, m.Quantity, m.Type, m.Status,
		m.Reference, m.Reason, scheduled, m.DoneAt, createdBy,
	).Scan(&m.ID, &m.ScheduledAt, &m.CreatedAt)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.Errorf(domain.ErrNotFound, "producto o ubicación inexistente")
		}
		return fmt.Errorf("insert stock move: %w", err)
	}
	return nil
}

// GetByID obtiene un movimiento con nombres de producto y ubicaciones.
func (r *MoveRepo) GetByID(ctx context.Context, id int64) (*entity.StockMoveView, error) {
	v, err := scanMoveView(r.q.QueryRow(ctx, moveViewSelect+` WHERE m.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get stock move: %w", err)
	}
	return v, nil
}

// GetForUpdate bloquea la fila del movimiento (SELECT FOR UPDATE).
func (r *MoveRepo) GetForUpdate(ctx context.Context, id int64) (*entity.StockMove, error) {
	query := `
		SELECT id, product_id, source_location_id, dest_location_id, quantity, type, status,
		       reference, reason, scheduled_at, created_at, done_at, COALESCE(created_by::TEXT, '')
		FROM stock_moves WHERE id = $1
		FOR UPDATE`
	var m entity.StockMove
	err := r.q.QueryRow(ctx, query, id).Scan(
		&m.ID, &m.ProductID, &m.SourceID, &m.DestID, &m.Quantity, &m.Type, &m.Status,
		&m.Reference, &m.Reason, &m.ScheduledAt, &m.CreatedAt, &m.DoneAt, &m.CreatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get stock move for update: %w", err)
	}
	return &m, nil
}

// UpdateStatus compare-and-swap sobre status.
func (r *MoveRepo) UpdateStatus(ctx context.Context, id int64, from, to string, doneAt *time.Time) error {
	cmd, err := r.q.Exec(ctx, `
		UPDATE stock_moves SET status = $3, done_at = COALESCE($4::timestamptz, done_at)
		WHERE id = $1 AND status = $2`, id, from, to, doneAt)
	if err != nil {
		return fmt.Errorf("update stock move status: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.Errorf(domain.ErrInvalidTransition, "%s ya no está en %s", entity.FormatMoveCode(id), from)
	}
	return nil
}

// moveWhere construye el WHERE del historial. El texto se busca con ILIKE sobre la referencia
// MV-xxxxx, la referencia externa, producto y ubicaciones; una referencia MV reconocible
// también coincide por id.
func moveWhere(f inventory.MoveFilter) (string, []any) {
	var conds []string
	var args []any
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}
	if f.Type != "" {
		conds = append(conds, "m.type = "+arg(f.Type))
	}
	if f.Status != "" {
		conds = append(conds, "m.status = "+arg(f.Status))
	}
	if f.ProductID != 0 {
		conds = append(conds, "m.product_id = "+arg(f.ProductID))
	}
	if f.From != nil {
		conds = append(conds, "m.created_at >= "+arg(*f.From))
	}
	if f.To != nil {
		conds = append(conds, "m.created_at < "+arg(*f.To))
	}
	if s := strings.TrimSpace(f.Search); s != "" {
		p := arg(likePattern(s))
		text := fmt.Sprintf("(%s ILIKE %s OR m.reference ILIKE %s OR p.name ILIKE %s OR p.sku ILIKE %s OR s.name ILIKE %s OR d.name ILIKE %s",
			moveCodeExpr, p, p, p, p, p, p)
		if id, ok := inventory.ParseMoveCode(s); ok {
			text += " OR m.id = " + arg(id)
		}
		conds = append(conds, text+")")
	}
	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

// Search página del historial, created_at desc, id desc.
func (r *MoveRepo) Search(ctx context.Context, f inventory.MoveFilter, limit, offset int) ([]*entity.StockMoveView, int64, error) {
	where, args := moveWhere(f)

	var total int64
	countQuery := `
		SELECT COUNT(*)
		FROM stock_moves m
		JOIN products  p ON p.id = m.product_id
		JOIN locations s ON s.id = m.source_location_id
		JOIN locations d ON d.id = m.dest_location_id` + where
	if err := r.q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count stock moves: %w", err)
	}

	query := moveViewSelect + where + ` ORDER BY m.created_at DESC, m.id DESC`
	if limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", limit)
	}
	if offset > 0 {
		query += fmt.Sprintf(" OFFSET %d", offset)
	}
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("search stock moves: %w", err)
	}
	defer rows.Close()

	list := make([]*entity.StockMoveView, 0)
	for rows.Next() {
		v, err := scanMoveView(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan stock move: %w", err)
		}
		list = append(list, v)
	}
	return list, total, rows.Err()
}

// Counts agrupa por tipo y estado; late cuenta scheduled_at < now.
func (r *MoveRepo) Counts(ctx context.Context, now time.Time) ([]repository.MoveCount, error) {
	query := `
		SELECT type, status, COUNT(*), COUNT(*) FILTER (WHERE scheduled_at < $1)
		FROM stock_moves
		GROUP BY type, status
		ORDER BY type, status`
	rows, err := r.q.Query(ctx, query, now)
	if err != nil {
		return nil, fmt.Errorf("count stock moves by status: %w", err)
	}
	defer rows.Close()

	out := make([]repository.MoveCount, 0)
	for rows.Next() {
		var c repository.MoveCount
		if err := rows.Scan(&c.Type, &c.Status, &c.Count, &c.Late); err != nil {
			return nil, fmt.Errorf("scan move count: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// ExistsForProduct indica si el producto aparece en algún movimiento.
func (r *MoveRepo) ExistsForProduct(ctx context.Context, productID int64) (bool, error) {
	var exists bool
	err := r.q.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM stock_moves WHERE product_id = $1)`, productID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("stock moves exist: %w", err)
	}
	return exists, nil
}

// LedgerBalances suma los efectos de los movimientos done en ubicaciones internas.
// Un ajuste aplica su cantidad con signo en su única ubicación.
func (r *MoveRepo) LedgerBalances(ctx context.Context) ([]repository.Balance, error) {
	query := `
		SELECT product_id, location_id, SUM(delta)
		FROM (
		    SELECT m.product_id, m.dest_location_id AS location_id, m.quantity AS delta
		    FROM stock_moves m
		    JOIN locations d ON d.id = m.dest_location_id
		    WHERE m.status = 'done' AND d.kind = 'internal'
		    UNION ALL
		    SELECT m.product_id, m.source_location_id, -m.quantity
		    FROM stock_moves m
		    JOIN locations s ON s.id = m.source_location_id
		    WHERE m.status = 'done' AND s.kind = 'internal' AND m.type <> 'adjustment'
		) effects
		GROUP BY product_id, location_id
		ORDER BY product_id, location_id`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("ledger balances: %w", err)
	}
	defer rows.Close()

	out := make([]repository.Balance, 0)
	for rows.Next() {
		var b repository.Balance
		if err := rows.Scan(&b.ProductID, &b.LocationID, &b.Quantity); err != nil {
			return nil, fmt.Errorf("scan balance: %w", err)
		}
		out = append(out, b)
	}
	return out, rows.Err()
}
