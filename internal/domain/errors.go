package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound            = errors.New("recurso no encontrado")
	ErrInvalidInput        = errors.New("entrada inválida")
	ErrUnauthorized        = errors.New("no autorizado")
	ErrForbidden           = errors.New("acceso denegado")
	ErrStoreUnavailable    = errors.New("almacén de registros no disponible")
	ErrBatchTooLarge       = errors.New("el lote excede el tamaño máximo")
	ErrDestinationRequired = errors.New("destino requerido para salidas")
	ErrEmptyBatch          = errors.New("lote sin ítems")
	ErrUnknownMovementType = errors.New("tipo de movimiento desconocido")
)
