package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventory-assistant/internal/application/dto"
	"github.com/jhoicas/inventory-assistant/internal/domain/ambiguity"
	"github.com/jhoicas/inventory-assistant/internal/domain/classifier"
	"github.com/jhoicas/inventory-assistant/internal/domain/entity"
	"github.com/jhoicas/inventory-assistant/internal/domain/inference"
)

// CategoryHandler consulta de categorías y clasificación de nombres (protegido).
type CategoryHandler struct {
	classifier *classifier.Classifier
	resolver   *ambiguity.Resolver
}

// NewCategoryHandler construye el handler.
func NewCategoryHandler(c *classifier.Classifier, r *ambiguity.Resolver) *CategoryHandler {
	return &CategoryHandler{classifier: c, resolver: r}
}

// List godoc
// @Summary      Listar categorías conocidas
// @Tags         categories
// @Security     Bearer
// @Produce      json
// @Param        q      query  string  false  "filtro por texto"
// @Param        limit  query  int     false  "máximo de resultados con q"
// @Success      200  {object}  dto.CategoryListResponse
// @Router       /api/categories [get]
func (h *CategoryHandler) List(c *fiber.Ctx) error {
	var categories []entity.Category
	if q := strings.TrimSpace(c.Query("q")); q != "" {
		categories = h.classifier.Search(q, c.QueryInt("limit", classifier.DefaultSearchLimit))
	} else {
		categories = h.classifier.AllCategories()
	}
	out := dto.CategoryListResponse{
		Categories: make([]string, 0, len(categories)),
		Main:       h.classifier.MainCategories(),
	}
	for _, cat := range categories {
		out.Categories = append(out.Categories, cat.String())
	}
	return c.JSON(out)
}

// Classify godoc
// @Summary      Clasificar un nombre de ítem
// @Tags         categories
// @Security     Bearer
// @Produce      json
// @Param        name  query  string  true  "nombre del ítem"
// @Success      200  {object}  dto.ClassifyResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/categories/classify [get]
func (h *CategoryHandler) Classify(c *fiber.Ctx) error {
	name := strings.TrimSpace(c.Query("name"))
	if name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "name requerido"})
	}
	res := h.resolver.ResolveItem(name)
	out := dto.ClassifyResponse{
		Name:       name,
		Category:   res.Category.String(),
		Candidates: make([]string, 0, len(res.Candidates)),
		Method:     string(res.Method),
	}
	for _, cat := range res.Candidates {
		out.Candidates = append(out.Candidates, cat.String())
	}
	if unit, ok := inference.ExtractUnit(name); ok {
		out.UnitSize = unit.Size.String()
		out.UnitType = unit.Type
	}
	return c.JSON(out)
}

// Validate godoc
// @Summary      Validar el formato de una categoría
// @Tags         categories
// @Security     Bearer
// @Produce      json
// @Param        category  query  string  true  "categoría a validar"
// @Success      200  {object}  map[string]interface{}
// @Router       /api/categories/validate [get]
func (h *CategoryHandler) Validate(c *fiber.Ctx) error {
	category := entity.Category(strings.TrimSpace(c.Query("category")))
	return c.JSON(fiber.Map{
		"category": category,
		"valid":    h.classifier.ValidateCategory(category),
	})
}

// AmbiguityHandler auditoría del caché de resoluciones ambiguas (solo admin).
type AmbiguityHandler struct {
	cache *ambiguity.Cache
}

// NewAmbiguityHandler construye el handler.
func NewAmbiguityHandler(cache *ambiguity.Cache) *AmbiguityHandler {
	return &AmbiguityHandler{cache: cache}
}

// Stats godoc
// @Summary      Estadísticas de ambigüedad
// @Tags         ambiguity
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Router       /api/ambiguity [get]
func (h *AmbiguityHandler) Stats(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"stats":          h.cache.Stats(),
		"entries":        h.cache.Entries(),
		"new_categories": h.cache.NewCategories(),
	})
}

// Clear godoc
// @Summary      Vaciar el caché de ambigüedad
// @Tags         ambiguity
// @Security     Bearer
// @Success      204
// @Router       /api/ambiguity [delete]
func (h *AmbiguityHandler) Clear(c *fiber.Ctx) error {
	h.cache.Clear()
	return c.SendStatus(fiber.StatusNoContent)
}
