package http

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventory-assistant/internal/application/command"
	"github.com/jhoicas/inventory-assistant/internal/application/dto"
	"github.com/jhoicas/inventory-assistant/internal/domain"
	"github.com/jhoicas/inventory-assistant/internal/domain/entity"
)

// CommandHandler puente entre el transporte de chat y el motor de lotes (protegido).
type CommandHandler struct {
	svc *command.Service
}

// NewCommandHandler construye el handler.
func NewCommandHandler(svc *command.Service) *CommandHandler {
	return &CommandHandler{svc: svc}
}

// Process godoc
// @Summary      Procesar comando /in, /out o /adjust
// @Description  Tokeniza el texto del chat, valida el lote y registra los movimientos.
//
//	Con format=pdf devuelve la remisión del lote en lugar del JSON.
//
// @Tags         commands
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        type    path   string              true   "in | out | adjust"
// @Param        format  query  string              false  "pdf"
// @Param        body    body   dto.CommandRequest  true   "texto del comando"
// @Success      200  {object}  dto.CommandResult
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      422  {object}  dto.CommandResult
// @Router       /api/commands/{type} [post]
func (h *CommandHandler) Process(c *fiber.Ctx) error {
	mt, in, bad := h.bind(c)
	if bad != nil {
		return c.Status(fiber.StatusBadRequest).JSON(bad)
	}
	res := h.svc.Handle(c.UserContext(), mt, in)

	if c.Query("format") != "pdf" {
		return c.JSON(res.Response)
	}
	pdf, err := h.svc.DeliveryNote(c.UserContext(), mt, in, res)
	if errors.Is(err, domain.ErrNotFound) {
		// Sin movimientos registrados no hay remisión: se devuelve el resultado del lote.
		return c.Status(fiber.StatusUnprocessableEntity).JSON(res.Response)
	}
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("inline; filename=%q", res.Outcome.BatchID+".pdf"))
	return c.Send(pdf)
}

// Preview godoc
// @Summary      Vista previa de un comando
// @Tags         commands
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        type  path  string              true  "in | out | adjust"
// @Param        body  body  dto.CommandRequest  true  "texto del comando"
// @Success      200  {object}  dto.PreviewResult
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/commands/{type}/preview [post]
func (h *CommandHandler) Preview(c *fiber.Ctx) error {
	mt, in, bad := h.bind(c)
	if bad != nil {
		return c.Status(fiber.StatusBadRequest).JSON(bad)
	}
	return c.JSON(h.svc.Preview(c.UserContext(), mt, in))
}

// bind lee el tipo de la ruta y el cuerpo. El usuario del token completa los campos vacíos.
func (h *CommandHandler) bind(c *fiber.Ctx) (entity.MovementType, dto.CommandRequest, *dto.ErrorResponse) {
	var in dto.CommandRequest
	mt, ok := entity.ParseMovementType(c.Params("type"))
	if !ok {
		return "", in, &dto.ErrorResponse{Code: "UNKNOWN_COMMAND", Message: "tipo de comando desconocido: " + c.Params("type")}
	}
	if err := c.BodyParser(&in); err != nil {
		return "", in, &dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"}
	}
	if in.UserID == "" {
		in.UserID = GetUserID(c)
	}
	if in.UserName == "" {
		in.UserName = GetUserName(c)
	}
	return mt, in, nil
}
