package postgres

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/jhoicas/inventory-assistant/internal/domain"
)

// isIntegrityViolation errores de clase 23 (datos rechazados por constraints).
func isIntegrityViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && strings.HasPrefix(pgErr.Code, "23")
}

// storeError traduce errores de PostgreSQL a los sentinelas del dominio: datos rechazados
// por constraints → ErrInvalidInput; cualquier otro fallo → ErrStoreUnavailable.
func storeError(op string, err error) error {
	if isIntegrityViolation(err) {
		return fmt.Errorf("%s: %w: %w", op, domain.ErrInvalidInput, err)
	}
	return fmt.Errorf("%s: %w: %w", op, domain.ErrStoreUnavailable, err)
}
