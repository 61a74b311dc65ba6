package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/invoice-tracker/internal/application/dto"
	"github.com/jhoicas/invoice-tracker/internal/application/ledger"
	"github.com/jhoicas/invoice-tracker/internal/domain"
)

// InvoiceHandler maneja las operaciones del ledger de facturas.
type InvoiceHandler struct {
	svc  *ledger.Service
	msgs *Messages
	log  zerolog.Logger
}

// NewInvoiceHandler construye el handler.
func NewInvoiceHandler(svc *ledger.Service, msgs *Messages, log zerolog.Logger) *InvoiceHandler {
	return &InvoiceHandler{svc: svc, msgs: msgs, log: log}
}

// Register godoc
// @Summary      Registrar la entrada de una factura
// @Tags         invoices
// @Accept       json
// @Produce      json
// @Param        body  body      dto.RegisterInvoiceRequest  true  "Número de factura"
// @Success      201   {object}  dto.OutcomeResponse
// @Success      200   {object}  dto.OutcomeResponse  "ya registrada"
// @Failure      400   {object}  dto.OutcomeResponse
// @Failure      500   {object}  dto.ErrorResponse
// @Router       /api/invoices [post]
func (h *InvoiceHandler) Register(c *fiber.Ctx) error {
	var in dto.RegisterInvoiceRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.svc.Register(c.UserContext(), in.Number)
	if err != nil {
		return h.internal(c, err)
	}
	return h.respond(c, out)
}

// RecordExit godoc
// @Summary      Registrar la salida de una factura
// @Tags         invoices
// @Produce      json
// @Param        number  path      string  true  "Número de factura"
// @Success      200     {object}  dto.OutcomeResponse
// @Failure      400     {object}  dto.OutcomeResponse
// @Failure      404     {object}  dto.OutcomeResponse
// @Failure      409     {object}  dto.OutcomeResponse  "estado desconocido"
// @Failure      500     {object}  dto.ErrorResponse
// @Router       /api/invoices/{number}/exit [post]
func (h *InvoiceHandler) RecordExit(c *fiber.Ctx) error {
	out, err := h.svc.RecordExit(c.UserContext(), c.Params("number"))
	if err != nil {
		return h.internal(c, err)
	}
	return h.respond(c, out)
}

// Delete godoc
// @Summary      Eliminar una factura que aún no salió
// @Tags         invoices
// @Produce      json
// @Param        number  path      string  true  "Número de factura"
// @Success      200     {object}  dto.OutcomeResponse
// @Failure      400     {object}  dto.OutcomeResponse
// @Failure      404     {object}  dto.OutcomeResponse
// @Failure      409     {object}  dto.OutcomeResponse  "ya salió"
// @Failure      500     {object}  dto.ErrorResponse
// @Router       /api/invoices/{number} [delete]
func (h *InvoiceHandler) Delete(c *fiber.Ctx) error {
	out, err := h.svc.Delete(c.UserContext(), c.Params("number"))
	if err != nil {
		return h.internal(c, err)
	}
	return h.respond(c, out)
}

// Lookup godoc
// @Summary      Consultar el estado más reciente de una factura
// @Tags         invoices
// @Produce      json
// @Param        number  path      string  true  "Número de factura"
// @Success      200     {object}  dto.OutcomeResponse
// @Failure      400     {object}  dto.OutcomeResponse
// @Failure      404     {object}  dto.OutcomeResponse
// @Router       /api/invoices/{number} [get]
func (h *InvoiceHandler) Lookup(c *fiber.Ctx) error {
	out, err := h.svc.Lookup(c.UserContext(), c.Params("number"))
	if err != nil {
		return h.internal(c, err)
	}
	return h.respond(c, out)
}

// Scan godoc
// @Summary      Entrada del lector de códigos (modo entrada o salida)
// @Tags         invoices
// @Accept       json
// @Produce      json
// @Param        body  body      dto.ScanRequest  true  "Modo y número"
// @Success      200   {object}  dto.OutcomeResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/scan [post]
func (h *InvoiceHandler) Scan(c *fiber.Ctx) error {
	var in dto.ScanRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.svc.Scan(c.UserContext(), in.Mode, in.Number)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_MODE", Message: "modo debe ser entry o exit"})
		}
		return h.internal(c, err)
	}
	return h.respond(c, out)
}

// List godoc
// @Summary      Listado completo, entrada más reciente primero
// @Tags         invoices
// @Produce      json
// @Success      200  {object}  dto.InvoiceListResponse
// @Router       /api/invoices [get]
func (h *InvoiceHandler) List(c *fiber.Ctx) error {
	rows, err := h.svc.ListAll(c.UserContext())
	if err != nil {
		return h.internal(c, err)
	}
	tag := GetLocale(c, h.msgs.Default())
	items := make([]dto.InvoiceListItemDTO, 0, len(rows))
	for _, r := range rows {
		items = append(items, dto.InvoiceListItemDTO{
			Number:       r.Number,
			EnteredDate:  r.EnteredDate,
			EnteredTime:  r.EnteredTime,
			LatestStatus: r.LatestStatus,
			StatusLabel:  h.msgs.Status(tag, r.LatestStatus),
			ExitedDate:   r.ExitedDate,
		})
	}
	return c.JSON(dto.InvoiceListResponse{Items: items, Total: len(items)})
}

// Count godoc
// @Summary      Facturas dentro (sin salida)
// @Tags         invoices
// @Produce      json
// @Success      200  {object}  dto.CountResponse
// @Router       /api/invoices/count [get]
func (h *InvoiceHandler) Count(c *fiber.Ctx) error {
	n, err := h.svc.CountEntered(c.UserContext())
	if err != nil {
		return h.internal(c, err)
	}
	return c.JSON(dto.CountResponse{Entered: n})
}

func (h *InvoiceHandler) respond(c *fiber.Ctx, out ledger.Outcome) error {
	tag := GetLocale(c, h.msgs.Default())
	resp := dto.OutcomeResponse{
		Kind:     string(out.Kind),
		Number:   out.Number,
		Severity: string(out.Severity()),
		Message:  h.msgs.Outcome(tag, out),
	}
	if out.Snapshot != nil {
		resp.Snapshot = &dto.SnapshotDTO{Date: out.Snapshot.Date, Time: out.Snapshot.Time, Status: out.Snapshot.Status}
	}
	return c.Status(statusFor(out.Kind)).JSON(resp)
}

func (h *InvoiceHandler) internal(c *fiber.Ctx, err error) error {
	return internalError(c, h.log, err)
}

// statusFor código HTTP de cada tipo de resultado.
func statusFor(kind ledger.OutcomeKind) int {
	switch kind {
	case ledger.KindRegistered:
		return fiber.StatusCreated
	case ledger.KindAlreadyKnown, ledger.KindExited, ledger.KindDeleted, ledger.KindFound:
		return fiber.StatusOK
	case ledger.KindInvalidNumber:
		return fiber.StatusBadRequest
	case ledger.KindNotFound:
		return fiber.StatusNotFound
	case ledger.KindCannotDelete, ledger.KindUnknownStatus:
		return fiber.StatusConflict
	default:
		return fiber.StatusInternalServerError
	}
}

// internalError registra el fallo de almacenamiento y responde 500.
func internalError(c *fiber.Ctx, log zerolog.Logger, err error) error {
	log.Error().Err(err).Str("method", c.Method()).Str("path", c.Path()).Msg("fallo de almacenamiento")
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "error interno"})
}
