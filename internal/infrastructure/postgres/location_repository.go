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

var _ repository.LocationRepository = (*LocationRepo)(nil)

// LocationRepo implementación de LocationRepository sobre PostgreSQL (usable
// con pool o tx).
type LocationRepo struct {
	q Querier
}

// NewLocationRepository construye el adaptador de bodegas. Pasar pool o tx (Querier).
func NewLocationRepository(q Querier) *LocationRepo {
	return &LocationRepo{q: q}
}

// Create persiste una nueva bodega. ID duplicado -> domain.ErrDuplicate.
func (r *LocationRepo) Create(location *entity.Location) error {
	_, err := r.q.Exec(context.Background(),
		`INSERT INTO locations (location_id, location_name) VALUES ($1, $2)`,
		location.ID, location.Name,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert location: %w", err)
	}
	return nil
}

// GetByID obtiene una bodega por ID; nil si no existe.
func (r *LocationRepo) GetByID(id string) (*entity.Location, error) {
	var l entity.Location
	err := r.q.QueryRow(context.Background(),
		`SELECT location_id, location_name FROM locations WHERE location_id = $1`, id,
	).Scan(&l.ID, &l.Name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get location: %w", err)
	}
	return &l, nil
}

// Update actualiza el nombre. El ID es inmutable.
func (r *LocationRepo) Update(location *entity.Location) error {
	cmd, err := r.q.Exec(context.Background(),
		`UPDATE locations SET location_name = $2 WHERE location_id = $1`,
		location.ID, location.Name,
	)
	if err != nil {
		return fmt.Errorf("update location: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List lista todas las bodegas ordenadas por ID.
func (r *LocationRepo) List() ([]*entity.Location, error) {
	rows, err := r.q.Query(context.Background(),
		`SELECT location_id, location_name FROM locations ORDER BY location_id`)
	if err != nil {
		return nil, fmt.Errorf("list locations: %w", err)
	}
	defer rows.Close()
	var list []*entity.Location
	for rows.Next() {
		var l entity.Location
		if err := rows.Scan(&l.ID, &l.Name); err != nil {
			return nil, fmt.Errorf("scan location: %w", err)
		}
		list = append(list, &l)
	}
	return list, rows.Err()
}

// Delete elimina una bodega por ID.
func (r *LocationRepo) Delete(id string) error {
	cmd, err := r.q.Exec(context.Background(),
		`DELETE FROM locations WHERE location_id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrReferenced
		}
		return fmt.Errorf("delete location: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
