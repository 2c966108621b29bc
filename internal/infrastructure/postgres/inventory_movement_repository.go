package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/placacenter/pos-api/internal/domain/entity"
	"github.com/placacenter/pos-api/internal/domain/repository"
)

var _ repository.InventoryMovementRepository = (*InventoryMovementRepo)(nil)

// InventoryMovementRepo implementación del libro de movimientos sobre
// PostgreSQL (usable con pool o tx). Solo inserta y lee: el libro es
// append-only.
type InventoryMovementRepo struct {
	q Querier
}

// NewInventoryMovementRepository construye el adaptador. Pasar pool o tx
// (Querier).
func NewInventoryMovementRepository(q Querier) *InventoryMovementRepo {
	return &InventoryMovementRepo{q: q}
}

// Create persiste un movimiento de inventario.
func (r *InventoryMovementRepo) Create(movement *entity.InventoryMovement) error {
	if movement.ID == "" {
		movement.ID = uuid.New().String()
	}
	query := `
		INSERT INTO inventory_movements (id, product_id, kind, quantity, unit_cost, reason, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	reason := (*string)(nil)
	if movement.Reason != "" {
		reason = &movement.Reason
	}
	_, err := r.q.Exec(context.Background(), query,
		movement.ID, movement.ProductID, movement.Kind, movement.Quantity,
		movement.UnitCost, reason, movement.CreatedAt)
	if err != nil {
		return fmt.Errorf("create inventory movement: %w", err)
	}
	return nil
}

// ListByProduct lista movimientos de un producto, más recientes primero.
func (r *InventoryMovementRepo) ListByProduct(productID string, from, to *time.Time, limit, offset int) ([]*entity.InventoryMovement, error) {
	query := `
		SELECT id, product_id, kind, quantity, unit_cost, reason, created_at
		FROM inventory_movements WHERE product_id = $1`
	args := []any{productID}
	query, args = appendRange(query, args, from, to)
	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	args = append(args, limit, offset)
	return r.list(query, args)
}

// List lista movimientos globales, más recientes primero.
func (r *InventoryMovementRepo) List(from, to *time.Time, limit, offset int) ([]*entity.InventoryMovement, error) {
	query := `
		SELECT id, product_id, kind, quantity, unit_cost, reason, created_at
		FROM inventory_movements WHERE true`
	var args []any
	query, args = appendRange(query, args, from, to)
	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	args = append(args, limit, offset)
	return r.list(query, args)
}

func appendRange(query string, args []any, from, to *time.Time) (string, []any) {
	if from != nil {
		args = append(args, *from)
		query += fmt.Sprintf(" AND created_at >= $%d", len(args))
	}
	if to != nil {
		args = append(args, *to)
		query += fmt.Sprintf(" AND created_at <= $%d", len(args))
	}
	return query, args
}

func (r *InventoryMovementRepo) list(query string, args []any) ([]*entity.InventoryMovement, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list movements: %w", err)
	}
	defer rows.Close()
	var list []*entity.InventoryMovement
	for rows.Next() {
		var m entity.InventoryMovement
		var reason *string
		if err := rows.Scan(&m.ID, &m.ProductID, &m.Kind, &m.Quantity, &m.UnitCost, &reason, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		if reason != nil {
			m.Reason = *reason
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}

// ListSales devuelve las salidas con motivo SALE del rango inclusivo, en
// orden cronológico ascendente, unidas al precio de venta ACTUAL del
// producto (el reporte valora el ingreso a precio vigente).
func (r *InventoryMovementRepo) ListSales(ctx context.Context, from, to time.Time) ([]repository.SaleRecord, error) {
	query := `
		SELECT m.product_id, p.name, m.quantity, m.unit_cost, p.sale_price, m.created_at
		FROM inventory_movements m
		JOIN products p ON p.id = m.product_id
		WHERE m.kind = $1 AND m.reason = $2
		  AND m.created_at >= $3 AND m.created_at <= $4
		ORDER BY m.created_at ASC`
	rows, err := r.q.Query(ctx, query, entity.MovementSalida, entity.ReasonSale, from, to)
	if err != nil {
		return nil, fmt.Errorf("list sales: %w", err)
	}
	defer rows.Close()
	var list []repository.SaleRecord
	for rows.Next() {
		var s repository.SaleRecord
		if err := rows.Scan(&s.ProductID, &s.ProductName, &s.Quantity, &s.UnitCost, &s.SalePrice, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan sale: %w", err)
		}
		list = append(list, s)
	}
	return list, rows.Err()
}
