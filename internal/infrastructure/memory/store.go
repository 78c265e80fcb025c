// Package memory implementa los puertos de persistencia sobre estructuras en
// memoria protegidas por un mutex. Sirve como backend de desarrollo
// (DB_DRIVER=memory) y como doble de pruebas de los casos de uso: mismo
// contrato que los adaptadores PostgreSQL, sin base de datos.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/jhoicas/Kardex-api/internal/application/ledger"
	"github.com/jhoicas/Kardex-api/internal/domain"
	"github.com/jhoicas/Kardex-api/internal/domain/entity"
	"github.com/jhoicas/Kardex-api/internal/domain/kardex"
	"github.com/jhoicas/Kardex-api/internal/domain/repository"
)

// Store contiene las tablas en memoria. El mutex serializa cada operación de
// repositorio y el TxRunner completo, lo que da la misma atomicidad
// validar-luego-escribir que la transacción SERIALIZABLE en Postgres.
type Store struct {
	mu        sync.Mutex
	products  map[string]*entity.Product
	locations map[string]*entity.Location
	movements []*entity.ProductMovement
	nextID    int64
	lastTS    time.Time
}

// NewStore crea un almacén vacío.
func NewStore() *Store {
	return &Store{
		products:  make(map[string]*entity.Product),
		locations: make(map[string]*entity.Location),
		nextID:    1,
	}
}

// Products devuelve el repositorio de productos sobre este almacén.
func (s *Store) Products() repository.ProductRepository { return &productRepo{s: s} }

// Locations devuelve el repositorio de bodegas sobre este almacén.
func (s *Store) Locations() repository.LocationRepository { return &locationRepo{s: s} }

// Movements devuelve el repositorio del log de movimientos.
func (s *Store) Movements() repository.MovementRepository { return &movementRepo{s: s} }

// TxRunner devuelve un runner que ejecuta el callback bajo el mutex del
// almacén (una "transacción" a la vez).
func (s *Store) TxRunner() ledger.TxRunner { return &txRunner{s: s} }

var _ ledger.TxRunner = (*txRunner)(nil)

type txRunner struct {
	s *Store
}

// Run ejecuta fn con repos desincronizados atados al almacén, sosteniendo el
// mutex durante todo el callback. No hay rollback: los casos de uso escriben
// como último paso, después de validar.
func (r *txRunner) Run(_ context.Context, fn func(
	movRepo repository.MovementRepository,
	productRepo repository.ProductRepository,
	locationRepo repository.LocationRepository,
) error) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return fn(
		&movementRepo{s: r.s, inTx: true},
		&productRepo{s: r.s, inTx: true},
		&locationRepo{s: r.s, inTx: true},
	)
}

// lock toma el mutex salvo que ya lo sostenga el TxRunner.
func lock(s *Store, inTx bool) func() {
	if inTx {
		return func() {}
	}
	s.mu.Lock()
	return s.mu.Unlock
}

// ── productos ────────────────────────────────────────────────────────────────

type productRepo struct {
	s    *Store
	inTx bool
}

func (r *productRepo) Create(p *entity.Product) error {
	defer lock(r.s, r.inTx)()
	if _, ok := r.s.products[p.ID]; ok {
		return domain.ErrDuplicate
	}
	cp := *p
	r.s.products[p.ID] = &cp
	return nil
}

func (r *productRepo) GetByID(id string) (*entity.Product, error) {
	defer lock(r.s, r.inTx)()
	p, ok := r.s.products[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *productRepo) Update(p *entity.Product) error {
	defer lock(r.s, r.inTx)()
	if _, ok := r.s.products[p.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *p
	r.s.products[p.ID] = &cp
	return nil
}

func (r *productRepo) List() ([]*entity.Product, error) {
	defer lock(r.s, r.inTx)()
	list := make([]*entity.Product, 0, len(r.s.products))
	for _, p := range r.s.products {
		cp := *p
		list = append(list, &cp)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
	return list, nil
}

func (r *productRepo) Delete(id string) error {
	defer lock(r.s, r.inTx)()
	if _, ok := r.s.products[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.s.products, id)
	return nil
}

// ── bodegas ──────────────────────────────────────────────────────────────────

type locationRepo struct {
	s    *Store
	inTx bool
}

func (r *locationRepo) Create(l *entity.Location) error {
	defer lock(r.s, r.inTx)()
	if _, ok := r.s.locations[l.ID]; ok {
		return domain.ErrDuplicate
	}
	cp := *l
	r.s.locations[l.ID] = &cp
	return nil
}

func (r *locationRepo) GetByID(id string) (*entity.Location, error) {
	defer lock(r.s, r.inTx)()
	l, ok := r.s.locations[id]
	if !ok {
		return nil, nil
	}
	cp := *l
	return &cp, nil
}

func (r *locationRepo) Update(l *entity.Location) error {
	defer lock(r.s, r.inTx)()
	if _, ok := r.s.locations[l.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *l
	r.s.locations[l.ID] = &cp
	return nil
}

func (r *locationRepo) List() ([]*entity.Location, error) {
	defer lock(r.s, r.inTx)()
	list := make([]*entity.Location, 0, len(r.s.locations))
	for _, l := range r.s.locations {
		cp := *l
		list = append(list, &cp)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
	return list, nil
}

func (r *locationRepo) Delete(id string) error {
	defer lock(r.s, r.inTx)()
	if _, ok := r.s.locations[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.s.locations, id)
	return nil
}

// ── movimientos ──────────────────────────────────────────────────────────────

type movementRepo struct {
	s    *Store
	inTx bool
}

func (r *movementRepo) Create(m *entity.ProductMovement) error {
	defer lock(r.s, r.inTx)()
	cp := *m
	cp.ID = r.s.nextID
	r.s.nextID++
	cp.Timestamp = r.s.monotonicNow()
	r.s.movements = append(r.s.movements, &cp)
	*m = cp
	return nil
}

func (r *movementRepo) GetByID(id int64) (*entity.ProductMovement, error) {
	defer lock(r.s, r.inTx)()
	for _, m := range r.s.movements {
		if m.ID == id {
			cp := *m
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *movementRepo) Update(m *entity.ProductMovement) error {
	defer lock(r.s, r.inTx)()
	for i, existing := range r.s.movements {
		if existing.ID == m.ID {
			cp := *m
			cp.Timestamp = existing.Timestamp
			r.s.movements[i] = &cp
			return nil
		}
	}
	return domain.ErrNotFound
}

func (r *movementRepo) Delete(id int64) error {
	defer lock(r.s, r.inTx)()
	for i, m := range r.s.movements {
		if m.ID == id {
			r.s.movements = append(r.s.movements[:i], r.s.movements[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}

func (r *movementRepo) List() ([]*entity.ProductMovement, error) {
	defer lock(r.s, r.inTx)()
	list := make([]*entity.ProductMovement, 0, len(r.s.movements))
	for _, m := range r.s.movements {
		cp := *m
		list = append(list, &cp)
	}
	sort.Slice(list, func(i, j int) bool {
		if !list[i].Timestamp.Equal(list[j].Timestamp) {
			return list[i].Timestamp.After(list[j].Timestamp)
		}
		return list[i].ID > list[j].ID
	})
	return list, nil
}

func (r *movementRepo) Balance(productID, locationID string) (int64, error) {
	defer lock(r.s, r.inTx)()
	return kardex.AvailableQuantity(r.s.movements, productID, locationID), nil
}

func (r *movementRepo) CountByProduct(productID string) (int64, error) {
	defer lock(r.s, r.inTx)()
	var count int64
	for _, m := range r.s.movements {
		if m.ProductID == productID {
			count++
		}
	}
	return count, nil
}

func (r *movementRepo) CountByLocation(locationID string) (int64, error) {
	defer lock(r.s, r.inTx)()
	var count int64
	for _, m := range r.s.movements {
		if m.FromLocation == locationID || m.ToLocation == locationID {
			count++
		}
	}
	return count, nil
}

// monotonicNow garantiza timestamps no decrecientes aunque el reloj del
// sistema repita el mismo instante en inserciones consecutivas.
func (s *Store) monotonicNow() time.Time {
	now := time.Now()
	if !now.After(s.lastTS) {
		now = s.lastTS.Add(time.Microsecond)
	}
	s.lastTS = now
	return now
}
