package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Kardex-api/internal/application/ledger"
)

// ReportHandler expone el reporte de saldos.
type ReportHandler struct {
	uc *ledger.UseCase
}

// NewReportHandler construye el handler.
func NewReportHandler(uc *ledger.UseCase) *ReportHandler {
	return &ReportHandler{uc: uc}
}

// Report godoc
// @Summary      Reporte de saldos por producto y bodega
// @Description  Una fila por par (producto, bodega) con saldo positivo; snapshot consistente.
// @Tags         report
// @Produce      json
// @Success      200  {object}  dto.BalanceReportResponse
// @Router       /api/report [get]
func (h *ReportHandler) Report(c *fiber.Ctx) error {
	out, err := h.uc.BuildBalanceReport(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
