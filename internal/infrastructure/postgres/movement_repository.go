package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/Kardex-api/internal/domain"
	"github.com/jhoicas/Kardex-api/internal/domain/entity"
	"github.com/jhoicas/Kardex-api/internal/domain/repository"
)

var _ repository.MovementRepository = (*MovementRepo)(nil)

// MovementRepo implementación del log de movimientos sobre PostgreSQL
// (usable con pool o tx). from_location/to_location son NULL cuando el
// movimiento entra o sale del mundo externo; en el dominio eso es cadena
// vacía, la conversión vive solo aquí.
type MovementRepo struct {
	q Querier
}

// NewMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMovementRepository(q Querier) *MovementRepo {
	return &MovementRepo{q: q}
}

// Create persiste el movimiento; la BD asigna movement_id (bigserial) y
// timestamp (now()), que quedan escritos sobre la entidad.
func (r *MovementRepo) Create(movement *entity.ProductMovement) error {
	err := r.q.QueryRow(context.Background(), `
		INSERT INTO product_movements (product_id, from_location, to_location, qty)
		VALUES ($1, $2, $3, $4)
		RETURNING movement_id, timestamp`,
		movement.ProductID, nullable(movement.FromLocation), nullable(movement.ToLocation), movement.Qty,
	).Scan(&movement.ID, &movement.Timestamp)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("insert movement: %w", err)
	}
	return nil
}

// GetByID obtiene un movimiento por ID; nil si no existe.
func (r *MovementRepo) GetByID(id int64) (*entity.ProductMovement, error) {
	row := r.q.QueryRow(context.Background(), `
		SELECT movement_id, timestamp, product_id, from_location, to_location, qty
		FROM product_movements WHERE movement_id = $1`, id)
	m, err := scanMovement(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get movement: %w", err)
	}
	return m, nil
}

// Update reescribe los campos editables; movement_id y timestamp son inmutables.
func (r *MovementRepo) Update(movement *entity.ProductMovement) error {
	cmd, err := r.q.Exec(context.Background(), `
		UPDATE product_movements
		SET product_id = $2, from_location = $3, to_location = $4, qty = $5
		WHERE movement_id = $1`,
		movement.ID, movement.ProductID, nullable(movement.FromLocation), nullable(movement.ToLocation), movement.Qty,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("update movement: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina el movimiento. Borrar nunca re-valida saldos: los saldos se
// recomputan del log restante y un borrado solo puede aumentarlos o dejarlos
// igual en el destino.
func (r *MovementRepo) Delete(id int64) error {
	cmd, err := r.q.Exec(context.Background(),
		`DELETE FROM product_movements WHERE movement_id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete movement: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List devuelve el log completo, más reciente primero (timestamp DESC,
// movement_id DESC como desempate).
func (r *MovementRepo) List() ([]*entity.ProductMovement, error) {
	rows, err := r.q.Query(context.Background(), `
		SELECT movement_id, timestamp, product_id, from_location, to_location, qty
		FROM product_movements
		ORDER BY timestamp DESC, movement_id DESC`)
	if err != nil {
		return nil, fmt.Errorf("list movements: %w", err)
	}
	defer rows.Close()
	var list []*entity.ProductMovement
	for rows.Next() {
		m, err := scanMovement(rows)
		if err != nil {
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		list = append(list, m)
	}
	return list, rows.Err()
}

// Balance saldo del producto en la bodega: entradas menos salidas sobre el
// log completo. COALESCE garantiza 0 cuando no hay filas.
func (r *MovementRepo) Balance(productID, locationID string) (int64, error) {
	var balance int64
	err := r.q.QueryRow(context.Background(), `
		SELECT COALESCE(SUM(qty) FILTER (WHERE to_location = $2), 0)
		     - COALESCE(SUM(qty) FILTER (WHERE from_location = $2), 0)
		FROM product_movements
		WHERE product_id = $1`,
		productID, locationID,
	).Scan(&balance)
	if err != nil {
		return 0, fmt.Errorf("balance: %w", err)
	}
	return balance, nil
}

// CountByProduct cuenta los movimientos que referencian un producto.
func (r *MovementRepo) CountByProduct(productID string) (int64, error) {
	var count int64
	err := r.q.QueryRow(context.Background(),
		`SELECT COUNT(*) FROM product_movements WHERE product_id = $1`, productID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count by product: %w", err)
	}
	return count, nil
}

// CountByLocation cuenta los movimientos que referencian una bodega como
// origen o destino.
func (r *MovementRepo) CountByLocation(locationID string) (int64, error) {
	var count int64
	err := r.q.QueryRow(context.Background(),
		`SELECT COUNT(*) FROM product_movements WHERE from_location = $1 OR to_location = $1`, locationID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count by location: %w", err)
	}
	return count, nil
}

// nullable convierte la cadena vacía del dominio en NULL de SQL.
func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func scanMovement(row pgx.Row) (*entity.ProductMovement, error) {
	var m entity.ProductMovement
	var from, to *string
	if err := row.Scan(&m.ID, &m.Timestamp, &m.ProductID, &from, &to, &m.Qty); err != nil {
		return nil, err
	}
	if from != nil {
		m.FromLocation = *from
	}
	if to != nil {
		m.ToLocation = *to
	}
	return &m, nil
}
