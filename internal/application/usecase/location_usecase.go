package usecase

import (
	"github.com/jhoicas/Kardex-api/internal/application/dto"
	"github.com/jhoicas/Kardex-api/internal/domain"
	"github.com/jhoicas/Kardex-api/internal/domain/entity"
	"github.com/jhoicas/Kardex-api/internal/domain/repository"
)

// LocationUseCase casos de uso CRUD para bodegas (almacén de entidades).
type LocationUseCase struct {
	repo    repository.LocationRepository
	movRepo repository.MovementRepository
}

// NewLocationUseCase construye el caso de uso.
func NewLocationUseCase(repo repository.LocationRepository, movRepo repository.MovementRepository) *LocationUseCase {
	return &LocationUseCase{repo: repo, movRepo: movRepo}
}

// Create crea una bodega con su clave de negocio. ID duplicado -> domain.ErrDuplicate.
func (uc *LocationUseCase) Create(in dto.CreateLocationRequest) (*dto.LocationResponse, error) {
	location := &entity.Location{ID: in.LocationID, Name: in.LocationName}
	if err := uc.repo.Create(location); err != nil {
		return nil, err
	}
	return toLocationResponse(location), nil
}

// GetByID obtiene una bodega por ID; nil si no existe.
func (uc *LocationUseCase) GetByID(id string) (*dto.LocationResponse, error) {
	location, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if location == nil {
		return nil, nil
	}
	return toLocationResponse(location), nil
}

// Update actualiza el nombre. El ID es inmutable.
func (uc *LocationUseCase) Update(id string, in dto.UpdateLocationRequest) (*dto.LocationResponse, error) {
	location, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if location == nil {
		return nil, nil
	}
	location.Name = in.LocationName
	if err := uc.repo.Update(location); err != nil {
		return nil, err
	}
	return toLocationResponse(location), nil
}

// List lista todas las bodegas ordenadas por ID.
func (uc *LocationUseCase) List() (*dto.LocationListResponse, error) {
	list, err := uc.repo.List()
	if err != nil {
		return nil, err
	}
	items := make([]dto.LocationResponse, 0, len(list))
	for _, l := range list {
		items = append(items, *toLocationResponse(l))
	}
	return &dto.LocationListResponse{Items: items}, nil
}

// Delete elimina una bodega. Falla con domain.ErrReferenced si algún
// movimiento la usa como origen o destino.
func (uc *LocationUseCase) Delete(id string) error {
	count, err := uc.movRepo.CountByLocation(id)
	if err != nil {
		return err
	}
	if count > 0 {
		return domain.ErrReferenced
	}
	return uc.repo.Delete(id)
}

func toLocationResponse(l *entity.Location) *dto.LocationResponse {
	return &dto.LocationResponse{LocationID: l.ID, LocationName: l.Name}
}
