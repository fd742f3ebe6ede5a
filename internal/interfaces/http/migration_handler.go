package http

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventory-assistant/internal/application/dto"
	"github.com/jhoicas/inventory-assistant/internal/application/migration"
	"github.com/jhoicas/inventory-assistant/internal/application/ports"
	"github.com/jhoicas/inventory-assistant/internal/domain"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// MigrationHandler auditoría y migración de categorías (solo admin).
type MigrationHandler struct {
	auditor   *migration.Auditor
	snapshots ports.SnapshotStore
}

// NewMigrationHandler construye el handler. snapshots puede ser nil (sin respaldos xlsx).
func NewMigrationHandler(auditor *migration.Auditor, snapshots ports.SnapshotStore) *MigrationHandler {
	return &MigrationHandler{auditor: auditor, snapshots: snapshots}
}

// Preview godoc
// @Summary      Vista previa de la migración
// @Tags         migration
// @Security     Bearer
// @Produce      json
// @Param        limit  query  int  false  "máximo de ítems (20 por defecto)"
// @Success      200  {object}  migration.PreviewReport
// @Failure      503  {object}  dto.ErrorResponse
// @Router       /api/migration/preview [get]
func (h *MigrationHandler) Preview(c *fiber.Ctx) error {
	rep, err := h.auditor.Preview(c.UserContext(), c.QueryInt("limit", migration.DefaultPreviewLimit))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(rep)
}

// Validate godoc
// @Summary      Distribución de categorías y avisos previos a migrar
// @Tags         migration
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  migration.DataValidation
// @Failure      503  {object}  dto.ErrorResponse
// @Router       /api/migration/validate [get]
func (h *MigrationHandler) Validate(c *fiber.Ctx) error {
	rep, err := h.auditor.ValidateData(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(rep)
}

// Consistency godoc
// @Summary      Detectar categorías incoherentes
// @Tags         migration
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  migration.ConsistencyReport
// @Failure      503  {object}  dto.ErrorResponse
// @Router       /api/migration/consistency [get]
func (h *MigrationHandler) Consistency(c *fiber.Ctx) error {
	rep, err := h.auditor.CheckConsistency(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(rep)
}

// Run godoc
// @Summary      Ejecutar (o simular) la migración de categorías
// @Description  Con format=xlsx devuelve el respaldo de categorías originales en lugar del JSON.
// @Tags         migration
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        format  query  string                   false  "xlsx"
// @Param        body    body   dto.MigrationRunRequest  false  "dry_run, batch_size"
// @Success      200  {object}  migration.Report
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      503  {object}  dto.ErrorResponse
// @Router       /api/migration/run [post]
func (h *MigrationHandler) Run(c *fiber.Ctx) error {
	var in dto.MigrationRunRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&in); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
		}
	}
	rep, err := h.auditor.Migrate(c.UserContext(), migration.Options{DryRun: in.DryRun, BatchSize: in.BatchSize})
	if err != nil {
		return respondError(c, err)
	}
	if c.Query("format") != "xlsx" {
		return c.JSON(rep)
	}
	if h.snapshots == nil {
		return c.Status(fiber.StatusNotImplemented).JSON(dto.ErrorResponse{Code: "NO_SNAPSHOTS", Message: "respaldos xlsx no configurados"})
	}

	var buf bytes.Buffer
	if err := h.snapshots.Export(c.UserContext(), &buf, migration.SnapshotFromReport(rep)); err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, xlsxContentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", "category_backup_"+time.Now().UTC().Format("20060102_150405")+".xlsx"))
	c.Set("X-Migration-Migrated", strconv.Itoa(rep.Migrated))
	c.Set("X-Migration-Failed", strconv.Itoa(rep.Failed))
	return c.Send(buf.Bytes())
}

// Rollback godoc
// @Summary      Revertir una migración
// @Description  Acepta JSON {"backups": [...]} o un archivo xlsx en el campo multipart "snapshot".
// @Tags         migration
// @Security     Bearer
// @Accept       json
// @Accept       mpfd
// @Produce      json
// @Param        body      body      dto.RollbackRequest  false  "registros de respaldo"
// @Param        snapshot  formData  file                 false  "respaldo xlsx"
// @Success      200  {object}  migration.RollbackReport
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/migration/rollback [post]
func (h *MigrationHandler) Rollback(c *fiber.Ctx) error {
	var backups []migration.BackupRecord
	if strings.HasPrefix(c.Get(fiber.HeaderContentType), fiber.MIMEMultipartForm) {
		records, err := h.importSnapshot(c)
		if err != nil {
			return respondError(c, err)
		}
		backups = records
	} else {
		var in dto.RollbackRequest
		if err := c.BodyParser(&in); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
		}
		for _, b := range in.Backups {
			backups = append(backups, migration.BackupRecord{ItemName: b.ItemName, OriginalCategory: b.OriginalCategory})
		}
	}
	if len(backups) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "no se recibieron registros de respaldo"})
	}
	return c.JSON(h.auditor.Rollback(c.UserContext(), backups))
}

func (h *MigrationHandler) importSnapshot(c *fiber.Ctx) ([]migration.BackupRecord, error) {
	if h.snapshots == nil {
		return nil, fmt.Errorf("respaldos xlsx no configurados: %w", domain.ErrInvalidInput)
	}
	fh, err := c.FormFile("snapshot")
	if err != nil {
		return nil, fmt.Errorf("campo snapshot: %w", domain.ErrInvalidInput)
	}
	f, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("abrir %s: %w", fh.Filename, domain.ErrInvalidInput)
	}
	defer f.Close()

	rows, err := h.snapshots.Import(c.UserContext(), f)
	if err != nil {
		return nil, err
	}
	return migration.BackupsFromSnapshot(rows), nil
}
