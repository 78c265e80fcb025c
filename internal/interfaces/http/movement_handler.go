package http

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Kardex-api/internal/application/dto"
	"github.com/jhoicas/Kardex-api/internal/application/ledger"
	"github.com/jhoicas/Kardex-api/pkg/validator"
)

// MovementHandler maneja las peticiones HTTP del ledger de movimientos.
type MovementHandler struct {
	uc *ledger.UseCase
}

// NewMovementHandler construye el handler.
func NewMovementHandler(uc *ledger.UseCase) *MovementHandler {
	return &MovementHandler{uc: uc}
}

// Create godoc
// @Summary      Registrar movimiento
// @Description  from_location vacío = ingreso externo; to_location vacío = salida externa.
// @Tags         movements
// @Accept       json
// @Produce      json
// @Param        body  body  dto.MovementRequest  true  "Movimiento"
// @Success      201   {object}  dto.MovementResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/movements [post]
func (h *MovementHandler) Create(c *fiber.Ctx) error {
	var in dto.MovementRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	if err := validator.Struct(in); err != nil {
		return badRequest(c, "VALIDATION", err.Error())
	}
	mov, err := h.uc.CreateMovement(c.UserContext(), ledger.MovementInputDTO{
		ProductID:    in.ProductID,
		FromLocation: in.FromLocation,
		ToLocation:   in.ToLocation,
		Qty:          in.Qty,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.MovementResponse{
		MovementID:     mov.ID,
		Timestamp:      mov.Timestamp,
		ProductID:      mov.ProductID,
		FromLocationID: mov.FromLocation,
		ToLocationID:   mov.ToLocation,
		Qty:            mov.Qty,
	})
}

// Update godoc
// @Summary      Editar movimiento
// @Description  Reemplaza producto, bodegas y cantidad; siempre re-valida disponibilidad.
// @Tags         movements
// @Accept       json
// @Produce      json
// @Param        id    path  int  true  "ID del movimiento"
// @Param        body  body  dto.MovementRequest  true  "Campos nuevos"
// @Success      200   {object}  dto.MovementResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/movements/{id} [put]
func (h *MovementHandler) Update(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return badRequest(c, "INVALID_ID", "id de movimiento inválido")
	}
	var in dto.MovementRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	if err := validator.Struct(in); err != nil {
		return badRequest(c, "VALIDATION", err.Error())
	}
	mov, err := h.uc.UpdateMovement(c.UserContext(), id, ledger.MovementInputDTO{
		ProductID:    in.ProductID,
		FromLocation: in.FromLocation,
		ToLocation:   in.ToLocation,
		Qty:          in.Qty,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.MovementResponse{
		MovementID:     mov.ID,
		Timestamp:      mov.Timestamp,
		ProductID:      mov.ProductID,
		FromLocationID: mov.FromLocation,
		ToLocationID:   mov.ToLocation,
		Qty:            mov.Qty,
	})
}

// Delete godoc
// @Summary      Eliminar movimiento
// @Tags         movements
// @Param        id  path  int  true  "ID del movimiento"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/movements/{id} [delete]
func (h *MovementHandler) Delete(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return badRequest(c, "INVALID_ID", "id de movimiento inválido")
	}
	if err := h.uc.DeleteMovement(c.UserContext(), id); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// List godoc
// @Summary      Listar movimientos (más reciente primero)
// @Tags         movements
// @Produce      json
// @Success      200  {object}  dto.MovementListResponse
// @Router       /api/movements [get]
func (h *MovementHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.ListMovements(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Stock godoc
// @Summary      Saldo de un producto en una bodega
// @Tags         movements
// @Produce      json
// @Param        product_id   query  string  true  "ID del producto"
// @Param        location_id  query  string  true  "ID de la bodega"
// @Success      200  {object}  dto.StockResponse
// @Router       /api/stock [get]
func (h *MovementHandler) Stock(c *fiber.Ctx) error {
	productID := c.Query("product_id")
	locationID := c.Query("location_id")
	qty, err := h.uc.AvailableQuantity(c.UserContext(), productID, locationID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.StockResponse{
		ProductID:  productID,
		LocationID: locationID,
		Quantity:   qty,
	})
}
