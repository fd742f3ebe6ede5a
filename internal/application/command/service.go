package command

import (
	"context"
	"fmt"
	"strings"

	"github.com/jhoicas/inventory-assistant/internal/application/batch"
	"github.com/jhoicas/inventory-assistant/internal/application/dto"
	"github.com/jhoicas/inventory-assistant/internal/application/ports"
	"github.com/jhoicas/inventory-assistant/internal/domain"
	"github.com/jhoicas/inventory-assistant/internal/domain/entity"
	"github.com/jhoicas/inventory-assistant/pkg/logger"
)

// Result respuesta para el transporte de chat y el resultado interno del lote
// (Outcome es nil cuando el comando no pasó el tokenizador).
type Result struct {
	Response *dto.CommandResult
	Outcome  *batch.Outcome
}

// Service operaciones que consume el transporte de chat: /in, /out, /adjust y vista previa.
type Service struct {
	processor *batch.Processor
	notes     ports.DeliveryNoteGenerator
	log       *logger.Logger
}

// NewService crea el servicio. notes puede ser nil si no se generan remisiones.
func NewService(processor *batch.Processor, notes ports.DeliveryNoteGenerator, log *logger.Logger) *Service {
	if log == nil {
		log = logger.Nop()
	}
	return &Service{processor: processor, notes: notes, log: log.Component("command")}
}

// HandleIn procesa un comando /in.
func (s *Service) HandleIn(ctx context.Context, req dto.CommandRequest) *Result {
	return s.Handle(ctx, entity.MovementTypeIN, req)
}

// HandleOut procesa un comando /out.
func (s *Service) HandleOut(ctx context.Context, req dto.CommandRequest) *Result {
	return s.Handle(ctx, entity.MovementTypeOUT, req)
}

// HandleAdjust procesa un comando /adjust.
func (s *Service) HandleAdjust(ctx context.Context, req dto.CommandRequest) *Result {
	return s.Handle(ctx, entity.MovementTypeADJUST, req)
}

// Handle tokeniza el texto y procesa el lote. Nunca devuelve error: los fallos
// se reflejan en el estado y los mensajes de la respuesta.
func (s *Service) Handle(ctx context.Context, mt entity.MovementType, req dto.CommandRequest) *Result {
	parsed := Parse(req.Text, mt)
	if !parsed.OK() {
		s.log.Info().Str("type", string(mt)).Str("user_id", req.UserID).Int("errors", len(parsed.Errors)).Msg("comando rechazado por formato")
		return &Result{Response: parsingResponse(mt, parsed)}
	}

	out := s.processor.Process(ctx, toRequest(parsed, req))
	return &Result{Response: ToResponse(mt, out), Outcome: out}
}

// Preview valida el comando y muestra cómo quedarían los movimientos, sin registrarlos.
func (s *Service) Preview(ctx context.Context, mt entity.MovementType, req dto.CommandRequest) *dto.PreviewResult {
	parsed := Parse(req.Text, mt)
	if !parsed.OK() {
		return &dto.PreviewResult{
			Items:       []dto.PreviewItemDTO{},
			Errors:      toErrorDTOs(mt, parsed.Errors),
			Suggestions: Suggestions(mt, parsed.Errors),
		}
	}

	vr, built := s.processor.Preview(ctx, toRequest(parsed, req))
	res := &dto.PreviewResult{
		Valid:       vr.OK,
		Items:       []dto.PreviewItemDTO{},
		Errors:      toErrorDTOs(mt, vr.Errors),
		Warnings:    toErrorDTOs(mt, vr.Warnings),
		Suggestions: Suggestions(mt, vr.Errors),
	}
	if built == nil {
		return res
	}
	res.Warnings = append(res.Warnings, toErrorDTOs(mt, built.Warnings)...)
	res.GlobalParameters = built.GlobalParameters
	for _, m := range built.Movements {
		res.Items = append(res.Items, dto.PreviewItemDTO{
			Name:               m.ItemName,
			Quantity:           m.Quantity,
			Unit:               m.Unit,
			SignedBaseQuantity: m.SignedBaseQuantity,
			UnitSize:           m.UnitSize,
			UnitType:           m.UnitType,
			Category:           m.Category.String(),
			FromLocation:       m.FromLocation,
			ToLocation:         m.ToLocation,
		})
	}
	return res
}

// DeliveryNote genera la remisión PDF de un lote procesado con al menos un movimiento.
func (s *Service) DeliveryNote(ctx context.Context, mt entity.MovementType, req dto.CommandRequest, res *Result) ([]byte, error) {
	if s.notes == nil {
		return nil, fmt.Errorf("generador de remisiones no configurado: %w", domain.ErrInvalidInput)
	}
	if res == nil || res.Outcome == nil || len(res.Outcome.Movements) == 0 {
		return nil, fmt.Errorf("el lote no registró movimientos: %w", domain.ErrNotFound)
	}
	params := res.Outcome.Result.GlobalParameters
	note := &ports.DeliveryNote{
		BatchID:      res.Outcome.BatchID,
		MovementType: mt,
		Project:      params[entity.ParamProject],
		Driver:       params[entity.ParamDriver],
		FromLocation: firstNonEmpty(params[entity.ParamFromLocation], params[entity.ParamLocation]),
		ToLocation:   firstNonEmpty(params[entity.ParamToLocation], params[entity.ParamLocation]),
		UserName:     req.UserName,
		Movements:    res.Outcome.Movements,
		Summary:      res.Outcome.Result.Summary,
	}
	pdf, err := s.notes.Generate(ctx, note)
	if err != nil {
		return nil, fmt.Errorf("generar remisión %s: %w", note.BatchID, err)
	}
	return pdf, nil
}

// Status success / partial_success / error según el resultado del lote.
func Status(r *entity.BatchResult) string {
	switch {
	case r.FullySuccessful():
		return dto.StatusSuccess
	case r.SuccessfulEntries == 0 && r.TotalEntries > 0:
		return dto.StatusError
	default:
		return dto.StatusPartialSuccess
	}
}

// ToResponse convierte el resultado del lote en la respuesta del chat.
func ToResponse(mt entity.MovementType, out *batch.Outcome) *dto.CommandResult {
	r := out.Result
	resp := &dto.CommandResult{
		Status:            Status(r),
		Summary:           r.Summary,
		BatchID:           out.BatchID,
		TotalEntries:      r.TotalEntries,
		SuccessfulEntries: r.SuccessfulEntries,
		FailedEntries:     r.FailedEntries,
		SuccessRate:       r.SuccessRate,
		MovementIDs:       r.MovementIDs,
		Errors:            toErrorDTOs(mt, r.Errors),
		Warnings:          toErrorDTOs(mt, r.Warnings),
		GlobalParameters:  r.GlobalParameters,
	}
	if resp.MovementIDs == nil {
		resp.MovementIDs = []string{}
	}
	if resp.Status != dto.StatusSuccess {
		resp.Suggestions = Suggestions(mt, r.Errors)
	}
	return resp
}

func parsingResponse(mt entity.MovementType, parsed *ParsedCommand) *dto.CommandResult {
	msgs := make([]string, 0, len(parsed.Errors))
	for _, e := range parsed.Errors {
		msgs = append(msgs, e.Message)
	}
	total := len(parsed.Items)
	return &dto.CommandResult{
		Status:        dto.StatusError,
		Summary:       "❌ Could not read the command: " + strings.Join(msgs, "; "),
		Suggestions:   Suggestions(mt, parsed.Errors),
		TotalEntries:  total,
		FailedEntries: total,
		MovementIDs:   []string{},
		Errors:        toErrorDTOs(mt, parsed.Errors),
	}
}

func toRequest(parsed *ParsedCommand, req dto.CommandRequest) batch.Request {
	meta := parsed.Meta
	meta.UserID = req.UserID
	meta.UserName = req.UserName
	meta.ChatID = req.ChatID
	return batch.Request{MovementType: parsed.MovementType, Items: parsed.Items, Meta: meta}
}

func toErrorDTOs(mt entity.MovementType, errs []entity.BatchError) []dto.BatchErrorDTO {
	if len(errs) == 0 {
		return nil
	}
	out := make([]dto.BatchErrorDTO, 0, len(errs))
	for _, e := range errs {
		out = append(out, dto.BatchErrorDTO{
			Kind:       string(e.Kind),
			Message:    e.Message,
			Severity:   string(e.Severity),
			EntryIndex: e.EntryIndex,
			Suggestion: suggestionFor(mt, e),
		})
	}
	return out
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
