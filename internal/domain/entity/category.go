package entity

import "strings"

// CategorySeparator separa la categoría principal de la subcategoría ("Electrical > Cables").
const CategorySeparator = " > "

// CategoryOther categoría genérica cuando no se puede sintetizar una a partir del nombre.
const CategoryOther Category = "Other"

// Category etiqueta de clasificación, plana ("Paint") o jerárquica de dos niveles
// ("Electrical > Cables"). No es una entidad persistida: se deriva y se adjunta a ítems y movimientos.
type Category string

// NewCategory compone una categoría jerárquica; sin sub devuelve la categoría plana.
func NewCategory(base, sub string) Category {
	if sub == "" {
		return Category(base)
	}
	return Category(base + CategorySeparator + sub)
}

// String implementa fmt.Stringer.
func (c Category) String() string { return string(c) }

// IsHierarchical indica si la categoría tiene subcategoría.
func (c Category) IsHierarchical() bool {
	return strings.Contains(string(c), CategorySeparator)
}

// Base devuelve el segmento principal ("Electrical" para "Electrical > Cables").
func (c Category) Base() string {
	base, _, _ := strings.Cut(string(c), CategorySeparator)
	return base
}

// Sub devuelve la subcategoría o "" si la categoría es plana.
func (c Category) Sub() string {
	_, sub, _ := strings.Cut(string(c), CategorySeparator)
	return sub
}

// Valid: no vacía; si es jerárquica, exactamente un separador y ambos segmentos no vacíos.
func (c Category) Valid() bool {
	s := string(c)
	if strings.TrimSpace(s) == "" {
		return false
	}
	switch strings.Count(s, CategorySeparator) {
	case 0:
		return true
	case 1:
		base, sub, _ := strings.Cut(s, CategorySeparator)
		return strings.TrimSpace(base) != "" && strings.TrimSpace(sub) != ""
	default:
		return false
	}
}
