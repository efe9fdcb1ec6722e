package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/reposicion-api/internal/application/dto"
	"github.com/jhoicas/reposicion-api/internal/application/purchasing"
)

// PurchaseOrderHandler maneja la creación y el ciclo de vida de órdenes de compra.
type PurchaseOrderHandler struct {
	uc *purchasing.PurchaseOrderUseCase
}

func NewPurchaseOrderHandler(uc *purchasing.PurchaseOrderUseCase) *PurchaseOrderHandler {
	return &PurchaseOrderHandler{uc: uc}
}

// Create godoc
// @Summary      Generar órdenes de compra
// @Description  Agrupa las líneas por proveedor (una orden por proveedor). Si ya hay órdenes abiertas
// @Description  para alguno de los artículos y confirmacion=false, no crea nada y devuelve creada=false
// @Description  con esas órdenes y los nombres de los artículos.
// @Tags         GenerarOrdenCompra
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.NewOrderRequest  true  "Líneas de la orden"
// @Success      200   {object}  dto.NewOrderResponse  "Advertencia de órdenes abiertas"
// @Success      201   {object}  dto.NewOrderResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /GenerarOrdenCompra/nuevaOrden [post]
func (h *PurchaseOrderHandler) Create(c *fiber.Ctx) error {
	var in dto.NewOrderRequest
	if err := bindJSON(c, &in); err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	if !out.Creada {
		return c.JSON(out)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Send godoc
// @Summary      Enviar orden de compra (PENDIENTE → ENVIADA)
// @Tags         EnviarOrdenCompra
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la orden"
// @Success      200  {object}  dto.PurchaseOrderResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /EnviarOrdenCompra/enviar/{id} [put]
func (h *PurchaseOrderHandler) Send(c *fiber.Ctx) error {
	out, err := h.uc.Send(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Finalize godoc
// @Summary      Finalizar orden de compra (ENVIADA → FINALIZADA)
// @Description  Suma las cantidades recibidas al stock de cada artículo en la misma transacción.
// @Tags         FinalizarOrdenCompra
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la orden"
// @Success      200  {object}  dto.PurchaseOrderResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /FinalizarOrdenCompra/finalizar/{id} [put]
func (h *PurchaseOrderHandler) Finalize(c *fiber.Ctx) error {
	out, err := h.uc.Finalize(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Cancel godoc
// @Summary      Cancelar orden de compra (solo PENDIENTE)
// @Tags         CancelarOrdenDeCompra
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la orden"
// @Success      200  {object}  dto.PurchaseOrderResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /CancelarOrdenDeCompra/cancelar/{id} [put]
func (h *PurchaseOrderHandler) Cancel(c *fiber.Ctx) error {
	out, err := h.uc.Cancel(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Modify godoc
// @Summary      Modificar líneas de una orden PENDIENTE
// @Tags         ModificarOrdenCompra
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ModifyOrderRequest  true  "Nuevas líneas"
// @Success      200   {object}  dto.PurchaseOrderResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /ModificarOrdenCompra/modificar [post]
func (h *PurchaseOrderHandler) Modify(c *fiber.Ctx) error {
	var in dto.ModifyOrderRequest
	if err := bindJSON(c, &in); err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.Modify(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// GetAll godoc
// @Summary      Listar órdenes de compra
// @Tags         OrdenCompra
// @Security     Bearer
// @Produce      json
// @Param        estado  query  string  false  "PENDIENTE, ENVIADA, FINALIZADA o CANCELADA"
// @Success      200  {array}   dto.PurchaseOrderResponse
// @Failure      422  {object}  dto.ErrorResponse
// @Router       /OrdenCompra/getAll [get]
func (h *PurchaseOrderHandler) GetAll(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext(), c.Query("estado"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener orden de compra por ID
// @Tags         OrdenCompra
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la orden"
// @Success      200  {object}  dto.PurchaseOrderResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /OrdenCompra/getById/{id} [get]
func (h *PurchaseOrderHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// PDF godoc
// @Summary      Descargar la orden de compra en PDF
// @Tags         OrdenCompra
// @Security     Bearer
// @Produce      application/pdf
// @Param        id   path  string  true  "ID de la orden"
// @Success      200  {file}    binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /OrdenCompra/pdf/{id} [get]
func (h *PurchaseOrderHandler) PDF(c *fiber.Ctx) error {
	id := c.Params("id")
	doc, err := h.uc.RenderPDF(c.UserContext(), id)
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `inline; filename="orden-`+id+`.pdf"`)
	return c.Send(doc)
}
