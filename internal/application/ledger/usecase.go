package ledger

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/jhoicas/Kardex-api/internal/application/dto"
	"github.com/jhoicas/Kardex-api/internal/domain"
	"github.com/jhoicas/Kardex-api/internal/domain/entity"
	"github.com/jhoicas/Kardex-api/internal/domain/kardex"
	"github.com/jhoicas/Kardex-api/internal/domain/repository"
)

// maxConflictRetries reintentos ante fallo de serialización antes de
// devolver domain.ErrConflict al caller.
const maxConflictRetries = 3

// MovementInputDTO entrada para crear o editar un movimiento. FromLocation y
// ToLocation vacíos significan mundo externo.
type MovementInputDTO struct {
	ProductID    string
	FromLocation string
	ToLocation   string
	Qty          int64
}

// UseCase es el ledger de movimientos: único escritor del log. Cada escritura
// valida dentro de la misma transacción que persiste (TxRunner) y reintenta
// de forma acotada ante conflictos de concurrencia.
type UseCase struct {
	txRunner     TxRunner
	movRepo      repository.MovementRepository
	productRepo  repository.ProductRepository
	locationRepo repository.LocationRepository
}

// NewUseCase construye el ledger.
func NewUseCase(
	txRunner TxRunner,
	movRepo repository.MovementRepository,
	productRepo repository.ProductRepository,
	locationRepo repository.LocationRepository,
) *UseCase {
	return &UseCase{
		txRunner:     txRunner,
		movRepo:      movRepo,
		productRepo:  productRepo,
		locationRepo: locationRepo,
	}
}

// CreateMovement valida y persiste un movimiento nuevo. Devuelve la entidad
// con ID y Timestamp asignados por el almacenamiento.
func (uc *UseCase) CreateMovement(ctx context.Context, input MovementInputDTO) (*entity.ProductMovement, error) {
	if err := uc.checkReferences(input); err != nil {
		return nil, err
	}

	opID := uuid.New().String()
	candidate := &entity.ProductMovement{
		ProductID:    input.ProductID,
		FromLocation: input.FromLocation,
		ToLocation:   input.ToLocation,
		Qty:          input.Qty,
	}

	err := uc.runWithRetry(ctx, opID, func(
		movRepo repository.MovementRepository,
		_ repository.ProductRepository,
		_ repository.LocationRepository,
	) error {
		if err := kardex.ValidateMovement(candidate, nil, movRepo); err != nil {
			return err
		}
		return movRepo.Create(candidate)
	})
	if err != nil {
		return nil, err
	}

	log.Info().
		Str("op_id", opID).
		Int64("movement_id", candidate.ID).
		Str("product_id", candidate.ProductID).
		Int64("qty", candidate.Qty).
		Msg("movimiento registrado")
	return candidate, nil
}

// UpdateMovement reemplaza los campos de un movimiento existente y re-valida.
// El disponible se calcula como si el movimiento original no existiera, así
// que un aumento de cantidad también se verifica contra el stock real.
func (uc *UseCase) UpdateMovement(ctx context.Context, movementID int64, input MovementInputDTO) (*entity.ProductMovement, error) {
	if err := uc.checkReferences(input); err != nil {
		return nil, err
	}

	opID := uuid.New().String()
	var updated *entity.ProductMovement

	err := uc.runWithRetry(ctx, opID, func(
		movRepo repository.MovementRepository,
		_ repository.ProductRepository,
		_ repository.LocationRepository,
	) error {
		original, err := movRepo.GetByID(movementID)
		if err != nil {
			return err
		}
		if original == nil {
			return domain.ErrNotFound
		}
		candidate := &entity.ProductMovement{
			ID:           original.ID,
			Timestamp:    original.Timestamp,
			ProductID:    input.ProductID,
			FromLocation: input.FromLocation,
			ToLocation:   input.ToLocation,
			Qty:          input.Qty,
		}
		if err := kardex.ValidateMovement(candidate, original, movRepo); err != nil {
			return err
		}
		if err := movRepo.Update(candidate); err != nil {
			return err
		}
		updated = candidate
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Info().
		Str("op_id", opID).
		Int64("movement_id", movementID).
		Msg("movimiento actualizado")
	return updated, nil
}

// DeleteMovement elimina un movimiento sin re-validar saldos: los saldos
// siempre se recomputan del log restante, y quitar un movimiento nunca puede
// producir un saldo negativo observable.
func (uc *UseCase) DeleteMovement(ctx context.Context, movementID int64) error {
	if err := uc.movRepo.Delete(movementID); err != nil {
		return err
	}
	log.Info().Int64("movement_id", movementID).Msg("movimiento eliminado")
	return nil
}

// AvailableQuantity saldo actual de un producto en una bodega. Lectura pura:
// pares sin movimientos devuelven 0, nunca un valor ausente.
func (uc *UseCase) AvailableQuantity(_ context.Context, productID, locationID string) (int64, error) {
	if productID == "" || locationID == "" {
		return 0, fmt.Errorf("%w: product_id y location_id son requeridos", domain.ErrInvalidInput)
	}
	return uc.movRepo.Balance(productID, locationID)
}

// ListMovements devuelve el log ordenado (más reciente primero) con los
// nombres de producto y bodegas resueltos.
func (uc *UseCase) ListMovements(_ context.Context) (*dto.MovementListResponse, error) {
	movements, err := uc.movRepo.List()
	if err != nil {
		return nil, err
	}
	productNames, err := uc.productNames()
	if err != nil {
		return nil, err
	}
	locationNames, err := uc.locationNames()
	if err != nil {
		return nil, err
	}

	items := make([]dto.MovementResponse, 0, len(movements))
	for _, m := range movements {
		items = append(items, dto.MovementResponse{
			MovementID:       m.ID,
			Timestamp:        m.Timestamp,
			ProductID:        m.ProductID,
			ProductName:      productNames[m.ProductID],
			FromLocationID:   m.FromLocation,
			FromLocationName: locationNames[m.FromLocation],
			ToLocationID:     m.ToLocation,
			ToLocationName:   locationNames[m.ToLocation],
			Qty:              m.Qty,
		})
	}
	return &dto.MovementListResponse{Items: items}, nil
}

// checkReferences verifica que el producto y las bodegas referenciadas
// existan (domain.ErrNotFound si no). La FK de la BD respalda esta
// verificación dentro de la transacción de escritura.
func (uc *UseCase) checkReferences(input MovementInputDTO) error {
	if input.ProductID == "" {
		return fmt.Errorf("%w: product_id es requerido", domain.ErrInvalidInput)
	}
	product, err := uc.productRepo.GetByID(input.ProductID)
	if err != nil {
		return err
	}
	if product == nil {
		return fmt.Errorf("%w: producto %s", domain.ErrNotFound, input.ProductID)
	}
	for _, locID := range []string{input.FromLocation, input.ToLocation} {
		if locID == "" {
			continue
		}
		loc, err := uc.locationRepo.GetByID(locID)
		if err != nil {
			return err
		}
		if loc == nil {
			return fmt.Errorf("%w: bodega %s", domain.ErrNotFound, locID)
		}
	}
	return nil
}

// runWithRetry ejecuta la transacción y reintenta ante domain.ErrConflict
// (fallo de serialización) hasta maxConflictRetries veces. Cualquier otro
// error se devuelve de inmediato, nunca se reintenta un rechazo de negocio.
func (uc *UseCase) runWithRetry(ctx context.Context, opID string, fn func(
	repository.MovementRepository,
	repository.ProductRepository,
	repository.LocationRepository,
) error) error {
	var err error
	for attempt := 1; attempt <= maxConflictRetries; attempt++ {
		err = uc.txRunner.Run(ctx, fn)
		if !errors.Is(err, domain.ErrConflict) {
			return err
		}
		log.Warn().
			Str("op_id", opID).
			Int("attempt", attempt).
			Msg("conflicto de serialización, reintentando")
	}
	return err
}

func (uc *UseCase) productNames() (map[string]string, error) {
	products, err := uc.productRepo.List()
	if err != nil {
		return nil, err
	}
	names := make(map[string]string, len(products))
	for _, p := range products {
		names[p.ID] = p.Name
	}
	return names, nil
}

func (uc *UseCase) locationNames() (map[string]string, error) {
	locations, err := uc.locationRepo.List()
	if err != nil {
		return nil, err
	}
	names := make(map[string]string, len(locations))
	for _, l := range locations {
		names[l.ID] = l.Name
	}
	return names, nil
}
