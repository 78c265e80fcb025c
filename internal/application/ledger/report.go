package ledger

import (
	"context"

	"github.com/jhoicas/Kardex-api/internal/application/dto"
	"github.com/jhoicas/Kardex-api/internal/domain/repository"
)

// BuildBalanceReport materializa el producto cartesiano producto × bodega y
// conserva solo los pares con saldo positivo. Corre dentro de una sola
// transacción para que todo el reporte sea un snapshot consistente aunque
// haya escrituras concurrentes. El orden es determinista: product_id
// ascendente y, dentro de cada producto, location_id ascendente.
func (uc *UseCase) BuildBalanceReport(ctx context.Context) (*dto.BalanceReportResponse, error) {
	report := &dto.BalanceReportResponse{Items: []dto.BalanceRow{}}

	err := uc.txRunner.Run(ctx, func(
		movRepo repository.MovementRepository,
		productRepo repository.ProductRepository,
		locationRepo repository.LocationRepository,
	) error {
		products, err := productRepo.List()
		if err != nil {
			return err
		}
		locations, err := locationRepo.List()
		if err != nil {
			return err
		}
		for _, p := range products {
			for _, l := range locations {
				qty, err := movRepo.Balance(p.ID, l.ID)
				if err != nil {
					return err
				}
				if qty > 0 {
					report.Items = append(report.Items, dto.BalanceRow{
						ProductID:    p.ID,
						ProductName:  p.Name,
						LocationID:   l.ID,
						LocationName: l.Name,
						Quantity:     qty,
					})
				}
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return report, nil
}
