package entity

// ErrorKind taxonomía de errores de un lote.
type ErrorKind string

// Tipos de error. ClassificationFallback no es un error: es un evento registrado.
const (
	ErrorKindValidation             ErrorKind = "ValidationError"
	ErrorKindParsing                ErrorKind = "ParsingError"
	ErrorKindClassificationFallback ErrorKind = "ClassificationFallback"
	ErrorKindExternalUnavailable    ErrorKind = "ExternalUnavailable"
	ErrorKindInternal               ErrorKind = "InternalError"
)

// Severity severidad de un BatchError.
type Severity string

// Severidades.
const (
	SeverityInfo     Severity = "INFO"
	SeverityWarning  Severity = "WARNING"
	SeverityError    Severity = "ERROR"
	SeverityCritical Severity = "CRITICAL"
)

// NoEntry índice usado por errores a nivel de lote.
const NoEntry = -1

// BatchError error estructurado de un lote. EntryIndex es 0-based o NoEntry.
type BatchError struct {
	Kind       ErrorKind `json:"kind"`
	Message    string    `json:"message"`
	Severity   Severity  `json:"severity"`
	EntryIndex int       `json:"entry_index"`
	Field      string    `json:"field,omitempty"`
	Suggestion string    `json:"suggestion,omitempty"`
}

// Claves de GlobalParameters.
const (
	ParamProject      = "project"
	ParamDriver       = "driver"
	ParamFromLocation = "from_location"
	ParamToLocation   = "to_location"
	ParamLocation     = "location"
	ParamBatchID      = "batch_id"
	ParamCategory     = "category"
	ParamDate         = "date"
	ParamLoggedBy     = "logged_by"
)

// BatchResult agregado de una invocación; se crea nuevo por lote y no se reutiliza.
type BatchResult struct {
	TotalEntries      int               `json:"total_entries"`
	SuccessfulEntries int               `json:"successful_entries"`
	FailedEntries     int               `json:"failed_entries"`
	SuccessRate       float64           `json:"success_rate"`
	MovementIDs       []string          `json:"movements_created"`
	Errors            []BatchError      `json:"errors"`
	Warnings          []BatchError      `json:"warnings,omitempty"`
	Summary           string            `json:"summary"`
	GlobalParameters  map[string]string `json:"global_parameters"`
	// ProcessingTimeSeconds lo completa el procesador; 0 si el resultado no pasó por él.
	ProcessingTimeSeconds float64 `json:"processing_time_seconds,omitempty"`
}

// SuccessRate successful/total; 1.0 cuando total es 0 ("nada que hacer", no un fallo).
func SuccessRate(successful, total int) float64 {
	if total <= 0 {
		return 1.0
	}
	rate := float64(successful) / float64(total)
	switch {
	case rate < 0:
		return 0
	case rate > 1:
		return 1
	}
	return rate
}

// FullySuccessful indica éxito total (SuccessRate == 1.0).
func (r *BatchResult) FullySuccessful() bool {
	return r.SuccessRate == 1.0
}

// FailedEntryIndexes índices de entradas con error (sin duplicados, en orden de aparición).
func (r *BatchResult) FailedEntryIndexes() []int {
	seen := make(map[int]bool)
	var out []int
	for _, e := range r.Errors {
		if e.EntryIndex == NoEntry || seen[e.EntryIndex] {
			continue
		}
		seen[e.EntryIndex] = true
		out = append(out, e.EntryIndex)
	}
	return out
}
