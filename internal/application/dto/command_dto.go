package dto

import "github.com/shopspring/decimal"

// Estados de la respuesta al transporte de chat.
const (
	StatusSuccess        = "success"
	StatusPartialSuccess = "partial_success"
	StatusError          = "error"
)

// CommandRequest body para POST /api/commands/{in|out|adjust}.
type CommandRequest struct {
	Text     string `json:"text"`
	UserID   string `json:"user_id"`
	UserName string `json:"user_name"`
	ChatID   int64  `json:"chat_id"`
}

// BatchErrorDTO error estructurado de un lote.
type BatchErrorDTO struct {
	Kind       string `json:"kind"`
	Message    string `json:"message"`
	Severity   string `json:"severity"`
	EntryIndex int    `json:"entry_index"`
	Suggestion string `json:"suggestion,omitempty"`
}

// CommandResult respuesta al transporte de chat. Nunca incluye trazas ni identificadores internos.
type CommandResult struct {
	Status            string            `json:"status"`
	Summary           string            `json:"summary"`
	Suggestions       []string          `json:"suggestions,omitempty"`
	BatchID           string            `json:"batch_id,omitempty"`
	TotalEntries      int               `json:"total_entries"`
	SuccessfulEntries int               `json:"successful_entries"`
	FailedEntries     int               `json:"failed_entries"`
	SuccessRate       float64           `json:"success_rate"`
	MovementIDs       []string          `json:"movements_created"`
	Errors            []BatchErrorDTO   `json:"errors,omitempty"`
	Warnings          []BatchErrorDTO   `json:"warnings,omitempty"`
	GlobalParameters  map[string]string `json:"global_parameters,omitempty"`
}

// PreviewItemDTO cómo quedaría un ítem sin registrarlo.
type PreviewItemDTO struct {
	Name               string          `json:"name"`
	Quantity           decimal.Decimal `json:"quantity"`
	Unit               string          `json:"unit"`
	SignedBaseQuantity decimal.Decimal `json:"signed_base_quantity"`
	UnitSize           decimal.Decimal `json:"unit_size"`
	UnitType           string          `json:"unit_type"`
	Category           string          `json:"category"`
	FromLocation       string          `json:"from_location"`
	ToLocation         string          `json:"to_location"`
}

// PreviewResult respuesta de POST /api/commands/{type}/preview.
type PreviewResult struct {
	Valid            bool              `json:"valid"`
	Items            []PreviewItemDTO  `json:"items"`
	Errors           []BatchErrorDTO   `json:"errors,omitempty"`
	Warnings         []BatchErrorDTO   `json:"warnings,omitempty"`
	Suggestions      []string          `json:"suggestions,omitempty"`
	GlobalParameters map[string]string `json:"global_parameters,omitempty"`
}
