// Package command interpreta los comandos de texto del chat (/in, /out, /adjust)
// y expone las operaciones que consume el transporte de chat.
package command

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventory-assistant/internal/application/batch"
	"github.com/jhoicas/inventory-assistant/internal/domain/entity"
	"github.com/jhoicas/inventory-assistant/internal/domain/inference"
)

var (
	paramProject  = regexp.MustCompile(`(?i)\bproject:\s*([^,\n;]+)`)
	paramDriver   = regexp.MustCompile(`(?i)\bdriver:\s*([^,\n;]+)`)
	paramFrom     = regexp.MustCompile(`(?i)\bfrom:\s*([^,\n;]+)`)
	paramTo       = regexp.MustCompile(`(?i)\bto:\s*([^,\n;]+)`)
	paramDate     = regexp.MustCompile(`(?i)\bdate:\s*([^,\n;]+)`)
	paramLoggedBy = regexp.MustCompile(`(?i)\blogged\s+by:\s*([^,\n;]+)`)
	paramCategory = regexp.MustCompile(`(?i)\bcategory:\s*([^,\n;]+)`)

	batchSection  = regexp.MustCompile(`(?i)-\s*batch\s*\d+\s*-`)
	commandPrefix = regexp.MustCompile(`(?i)^/?(in|out|adjust)(@\S+)?\s+`)
	itemLine      = regexp.MustCompile(`,\s*[+-]?\d`)
	// nombre, cantidad [unidad][, unidad][, nota]
	itemPattern = regexp.MustCompile(`,\s*([+-]?\d+(?:\.\d+)?)\s*([^\s,]*?)(?:\s*,\s*(.+))?$`)
)

// Mensajes y sugerencias del tokenizador.
const (
	MsgNoItems    = "No items found in command"
	MsgDuplicates = "Duplicate items found in command"
	MsgSections   = "Batch sections (-batch N-) are not supported in a single command"

	SuggestSections = "Send each -batch N- section as a separate command"
)

// ParsedCommand comando tokenizado: metadatos del lote, ítems y errores de parseo.
type ParsedCommand struct {
	MovementType entity.MovementType
	Meta         batch.Metadata
	Items        []entity.ItemDraft
	Duplicates   []string
	Errors       []entity.BatchError
}

// OK indica que no hubo errores de parseo.
func (p *ParsedCommand) OK() bool { return len(p.Errors) == 0 }

// Parse tokeniza el texto de un comando. Las líneas de ítems tienen la forma
// "nombre, cantidad [unidad][, nota]" o "nombre, cantidad, unidad[, nota]" y pueden
// separarse por salto de línea o ";". Los marcadores "-batch N-" se rechazan.
func Parse(text string, movementType entity.MovementType) *ParsedCommand {
	text = strings.TrimSpace(text)
	pc := &ParsedCommand{
		MovementType: movementType,
		Meta: batch.Metadata{
			Project:      param(paramProject, text),
			Driver:       param(paramDriver, text),
			FromLocation: param(paramFrom, text),
			ToLocation:   param(paramTo, text),
			Date:         param(paramDate, text),
			LoggedBy:     param(paramLoggedBy, text),
			Category:     param(paramCategory, text),
		},
	}

	body := commandPrefix.ReplaceAllString(text, "")
	for _, line := range strings.Split(body, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || !itemLine.MatchString(line) {
			continue
		}
		for _, segment := range strings.Split(line, ";") {
			if d, ok := parseItem(strings.TrimSpace(segment)); ok {
				pc.Items = append(pc.Items, d)
			}
		}
	}

	if batchSection.MatchString(text) {
		e := parsingError(MsgSections, "items")
		e.Suggestion = SuggestSections
		pc.Errors = append(pc.Errors, e)
	}
	if len(pc.Items) == 0 {
		pc.Errors = append(pc.Errors, parsingError(MsgNoItems, "items"))
	}
	if dups := duplicates(pc.Items); len(dups) > 0 {
		pc.Duplicates = dups
		pc.Errors = append(pc.Errors, parsingError(
			fmt.Sprintf("%s: %s", MsgDuplicates, strings.Join(dups, ", ")), "name"))
	}
	return pc
}

func param(re *regexp.Regexp, text string) string {
	m := re.FindStringSubmatch(text)
	if m == nil {
		return ""
	}
	return strings.TrimSpace(m[1])
}

// parseItem "Steel Beam 6m, 10 pieces, urgente" → {Steel Beam 6m, 10, pieces, urgente};
// "paint, 5, ltrs" → {paint, 5, ltrs, ""}.
func parseItem(segment string) (entity.ItemDraft, bool) {
	loc := itemPattern.FindStringSubmatchIndex(segment)
	if loc == nil {
		return entity.ItemDraft{}, false
	}
	name := strings.TrimSpace(segment[:loc[0]])
	if name == "" || strings.Contains(name, ":") {
		// "project: X, 10" no es un ítem
		return entity.ItemDraft{}, false
	}
	qty, err := decimal.NewFromString(strings.TrimPrefix(segment[loc[2]:loc[3]], "+"))
	if err != nil {
		return entity.ItemDraft{}, false
	}
	d := entity.ItemDraft{Name: name, Quantity: qty}
	if loc[4] >= 0 {
		d.Unit = strings.TrimSpace(segment[loc[4]:loc[5]])
	}
	if loc[6] >= 0 {
		d.Note = strings.TrimSpace(segment[loc[6]:loc[7]])
	}
	if d.Unit == "" && d.Note != "" {
		// "paint, 5, ltrs": la unidad separada por coma no es nota
		first, rest, _ := strings.Cut(d.Note, ",")
		if inference.IsUnitToken(first) {
			d.Unit = strings.TrimSpace(first)
			d.Note = strings.TrimSpace(rest)
		}
	}
	return d, true
}

// duplicates nombres repetidos (sin distinguir mayúsculas), en orden de primera aparición.
func duplicates(items []entity.ItemDraft) []string {
	seen := make(map[string]int, len(items))
	var out []string
	for _, it := range items {
		k := strings.ToLower(strings.TrimSpace(it.Name))
		seen[k]++
		if seen[k] == 2 {
			out = append(out, it.Name)
		}
	}
	return out
}

func parsingError(msg, field string) entity.BatchError {
	return entity.BatchError{
		Kind:       entity.ErrorKindParsing,
		Message:    msg,
		Severity:   entity.SeverityError,
		EntryIndex: entity.NoEntry,
		Field:      field,
	}
}
