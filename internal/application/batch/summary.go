package batch

import (
	"fmt"
	"strings"

	"github.com/jhoicas/inventory-assistant/internal/domain/entity"
)

// AssembleResult arma el BatchResult a partir de los conteos; la tasa queda en [0, 1].
func AssembleResult(total, successful int, movementIDs []string, errs, warns []entity.BatchError, params map[string]string) *entity.BatchResult {
	if successful > total {
		successful = total
	}
	if movementIDs == nil {
		movementIDs = []string{}
	}
	if errs == nil {
		errs = []entity.BatchError{}
	}
	if params == nil {
		params = map[string]string{}
	}
	return &entity.BatchResult{
		TotalEntries:      total,
		SuccessfulEntries: successful,
		FailedEntries:     total - successful,
		SuccessRate:       entity.SuccessRate(successful, total),
		MovementIDs:       movementIDs,
		Errors:            errs,
		Warnings:          warns,
		GlobalParameters:  params,
	}
}

// FailedResult lote rechazado completo: cero movimientos, todas las entradas fallidas.
func FailedResult(total int, errs, warns []entity.BatchError) *entity.BatchResult {
	r := AssembleResult(total, 0, nil, errs, warns, nil)
	r.Summary = FailureSummary(errs)
	return r
}

// FailureSummary "Batch processing failed: msg1; msg2".
func FailureSummary(errs []entity.BatchError) string {
	msgs := make([]string, 0, len(errs))
	for _, e := range errs {
		msgs = append(msgs, e.Message)
	}
	return "Batch processing failed: " + strings.Join(msgs, "; ")
}

// Summarize resumen legible para el chat según el resultado.
func Summarize(mt entity.MovementType, r *entity.BatchResult) string {
	switch {
	case r.TotalEntries == 0:
		return "No entries processed"
	case r.FullySuccessful():
		return successSummary(mt, r.SuccessfulEntries, r.GlobalParameters)
	case r.SuccessfulEntries == 0:
		return fmt.Sprintf("❌ Failed to process %d items\n\n%s", r.FailedEntries, errorLines(r.Errors))
	default:
		return fmt.Sprintf("⚠️ Processed %d items successfully, %d failed\n\n%s",
			r.SuccessfulEntries, r.FailedEntries, errorLines(r.Errors))
	}
}

func successSummary(mt entity.MovementType, n int, params map[string]string) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "✅ Batch %s processed successfully!\n\n", mt)
	switch mt {
	case entity.MovementTypeIN:
		fmt.Fprintf(&sb, "📦 **Items Added:** %d\n", n)
		fmt.Fprintf(&sb, "📋 **Project:** %s\n", params[entity.ParamProject])
		fmt.Fprintf(&sb, "🚗 **Driver:** %s\n", params[entity.ParamDriver])
		fmt.Fprintf(&sb, "📍 **From:** %s\n", params[entity.ParamFromLocation])
		fmt.Fprintf(&sb, "🏢 **To:** %s\n\n", params[entity.ParamToLocation])
	case entity.MovementTypeOUT:
		fmt.Fprintf(&sb, "📦 **Items Issued:** %d\n", n)
		fmt.Fprintf(&sb, "📋 **Project:** %s\n", params[entity.ParamProject])
		fmt.Fprintf(&sb, "🚗 **Driver:** %s\n", params[entity.ParamDriver])
		fmt.Fprintf(&sb, "🏢 **From:** %s\n", params[entity.ParamFromLocation])
		fmt.Fprintf(&sb, "📍 **To:** %s\n\n", params[entity.ParamToLocation])
	default:
		fmt.Fprintf(&sb, "📦 **Items Adjusted:** %d\n", n)
		fmt.Fprintf(&sb, "📍 **Location:** %s\n\n", params[entity.ParamLocation])
	}
	sb.WriteString("All items have been submitted for approval.")
	return sb.String()
}

func errorLines(errs []entity.BatchError) string {
	lines := make([]string, 0, len(errs))
	for _, e := range errs {
		lines = append(lines, "• "+e.Message)
	}
	return strings.Join(lines, "\n")
}
