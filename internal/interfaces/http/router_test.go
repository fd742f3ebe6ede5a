package http_test

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventory-assistant/internal/application/batch"
	"github.com/jhoicas/inventory-assistant/internal/application/command"
	"github.com/jhoicas/inventory-assistant/internal/application/dto"
	"github.com/jhoicas/inventory-assistant/internal/application/migration"
	"github.com/jhoicas/inventory-assistant/internal/domain/ambiguity"
	"github.com/jhoicas/inventory-assistant/internal/domain/classifier"
	"github.com/jhoicas/inventory-assistant/internal/domain/entity"
	"github.com/jhoicas/inventory-assistant/internal/infrastructure/memory"
	"github.com/jhoicas/inventory-assistant/internal/infrastructure/metrics"
	"github.com/jhoicas/inventory-assistant/internal/infrastructure/pdf"
	"github.com/jhoicas/inventory-assistant/internal/infrastructure/xlsx"
	apphttp "github.com/jhoicas/inventory-assistant/internal/interfaces/http"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

type testEnv struct {
	app   *fiber.App
	store *memory.ItemStore
	cache *ambiguity.Cache
}

// newTestEnv arma la API completa sobre el almacén en memoria.
func newTestEnv(t *testing.T, seed ...*entity.Item) *testEnv {
	t.Helper()
	store := memory.NewItemStore(seed...)
	cls := classifier.New()
	cache := ambiguity.NewCache()
	resolver := ambiguity.NewResolver(cls, cache)
	rec := metrics.NewRecorder()

	builder := batch.NewBuilder(resolver, func() time.Time { return time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC) })
	proc := batch.NewProcessor(batch.NewValidator(batch.DefaultLimits()), builder, store, rec, nil)

	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		Commands:   command.NewService(proc, pdf.NewDeliveryNoteGenerator(), nil),
		Classifier: cls,
		Resolver:   resolver,
		Auditor:    migration.NewAuditor(store, cls, migration.Config{}, rec, nil),
		Snapshots:  xlsx.NewSnapshotStore(),
		Metrics:    rec.Handler(),
		JWTSecret:  testJWTSecret,
	})
	return &testEnv{app: app, store: store, cache: cache}
}

func (e *testEnv) do(t *testing.T, method, path, role string, body io.Reader, contentType string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(method, path, body)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if role != "" {
		req.Header.Set("Authorization", tokenForRole(t, role))
	}
	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func (e *testEnv) doJSON(t *testing.T, method, path, role string, payload any) *http.Response {
	t.Helper()
	var body io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(b)
	}
	return e.do(t, method, path, role, body, fiber.MIMEApplicationJSON)
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()
	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func cmdReq(text string) dto.CommandRequest {
	return dto.CommandRequest{Text: text, ChatID: 1001}
}

// ──────────────────────────────────────────────────────────────────────────────
// Comandos
// ──────────────────────────────────────────────────────────────────────────────

func TestCommands_In_ExitoConUsuarioDelToken(t *testing.T) {
	env := newTestEnv(t)
	resp := env.doJSON(t, http.MethodPost, "/api/commands/in", "bot", cmdReq("/in project: Site A, driver: John\ncement, 100 bags"))
	require.Equal(t, http.StatusOK, resp.StatusCode)

	res := decode[dto.CommandResult](t, resp)
	assert.Equal(t, dto.StatusSuccess, res.Status)
	assert.Equal(t, 1, res.SuccessfulEntries)
	assert.Len(t, res.MovementIDs, 1)

	movs := env.store.Movements()
	require.Len(t, movs, 1)
	assert.Equal(t, testUserID, movs[0].UserID, "el usuario sale del token si el cuerpo no lo trae")
	assert.Equal(t, testUserName, movs[0].UserName)
}

func TestCommands_OutSinDestino_Sugerencia(t *testing.T) {
	env := newTestEnv(t)
	resp := env.doJSON(t, http.MethodPost, "/api/commands/out", "operator", cmdReq("/out paint, 5"))
	require.Equal(t, http.StatusOK, resp.StatusCode)

	res := decode[dto.CommandResult](t, resp)
	assert.Equal(t, dto.StatusError, res.Status)
	assert.Contains(t, res.Suggestions, command.SuggestDestination)
	assert.Empty(t, env.store.Movements())
}

func TestCommands_TipoDesconocido(t *testing.T) {
	env := newTestEnv(t)
	resp := env.doJSON(t, http.MethodPost, "/api/commands/transfer", "bot", cmdReq("cement, 1"))
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "UNKNOWN_COMMAND", decode[dto.ErrorResponse](t, resp).Code)
}

func TestCommands_SinToken(t *testing.T) {
	env := newTestEnv(t)
	resp := env.doJSON(t, http.MethodPost, "/api/commands/in", "", cmdReq("/in cement, 1"))
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestCommands_RemisionPDF(t *testing.T) {
	env := newTestEnv(t)
	resp := env.doJSON(t, http.MethodPost, "/api/commands/out?format=pdf", "bot", cmdReq("/out to: Site B, project: Tower\ncement, 3 bags"))
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(body, []byte("%PDF")))
}

func TestCommands_RemisionSinMovimientos(t *testing.T) {
	env := newTestEnv(t)
	resp := env.doJSON(t, http.MethodPost, "/api/commands/out?format=pdf", "bot", cmdReq("/out paint, 5"))
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	assert.Equal(t, dto.StatusError, decode[dto.CommandResult](t, resp).Status)
}

func TestCommands_VistaPreviaNoRegistra(t *testing.T) {
	env := newTestEnv(t)
	resp := env.doJSON(t, http.MethodPost, "/api/commands/adjust/preview", "operator", cmdReq("/adjust PVC Pipe, -12"))
	require.Equal(t, http.StatusOK, resp.StatusCode)

	res := decode[dto.PreviewResult](t, resp)
	assert.True(t, res.Valid)
	require.Len(t, res.Items, 1)
	assert.Equal(t, "-12", res.Items[0].SignedBaseQuantity.String())
	assert.Empty(t, env.store.Movements())
}

// ──────────────────────────────────────────────────────────────────────────────
// Categorías y ambigüedad
// ──────────────────────────────────────────────────────────────────────────────

func TestCategories_ClassifyConUnidad(t *testing.T) {
	env := newTestEnv(t)
	resp := env.do(t, http.MethodGet, "/api/categories/classify?name=cement%2050kg", "bot", nil, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	res := decode[dto.ClassifyResponse](t, resp)
	assert.Equal(t, "Construction Materials", res.Category)
	assert.Equal(t, "50", res.UnitSize)
	assert.Equal(t, "kg", res.UnitType)
}

func TestCategories_ClassifySinNombre(t *testing.T) {
	env := newTestEnv(t)
	resp := env.do(t, http.MethodGet, "/api/categories/classify", "bot", nil, "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestCategories_ListaYBusqueda(t *testing.T) {
	env := newTestEnv(t)
	all := decode[dto.CategoryListResponse](t, env.do(t, http.MethodGet, "/api/categories", "bot", nil, ""))
	assert.Contains(t, all.Categories, "Plumbing > Pipes")
	assert.Contains(t, all.Main, "Electrical")

	found := decode[dto.CategoryListResponse](t, env.do(t, http.MethodGet, "/api/categories?q=pipes&limit=5", "bot", nil, ""))
	require.NotEmpty(t, found.Categories)
	for _, c := range found.Categories {
		assert.Contains(t, strings.ToLower(c), "pipes")
	}
}

func TestAmbiguity_SoloAdmin(t *testing.T) {
	env := newTestEnv(t)
	resp := env.do(t, http.MethodGet, "/api/ambiguity", "operator", nil, "")
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestAmbiguity_EstadisticasYLimpieza(t *testing.T) {
	env := newTestEnv(t)
	// Un nombre sin reglas se sintetiza y queda registrado.
	env.do(t, http.MethodGet, "/api/categories/classify?name=zorblax", "bot", nil, "")
	require.Equal(t, 1, env.cache.Len())

	resp := env.do(t, http.MethodGet, "/api/ambiguity", "admin", nil, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body := decode[map[string]any](t, resp)
	stats, ok := body["stats"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, float64(1), stats["new_categories_created"])

	resp = env.do(t, http.MethodDelete, "/api/ambiguity", "admin", nil, "")
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	assert.Equal(t, 0, env.cache.Len())
}

// ──────────────────────────────────────────────────────────────────────────────
// Migración
// ──────────────────────────────────────────────────────────────────────────────

func migrationSeed() []*entity.Item {
	return []*entity.Item{
		{Name: "LED Bulb 9W", Category: "Steel"},
		{Name: "cement"},
		{Name: "sand", Category: "Construction Materials"},
	}
}

func TestMigration_SimulacionJSON(t *testing.T) {
	env := newTestEnv(t, migrationSeed()...)
	resp := env.doJSON(t, http.MethodPost, "/api/migration/run", "admin", dto.MigrationRunRequest{DryRun: true})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	rep := decode[migration.Report](t, resp)
	assert.True(t, rep.DryRun)
	assert.Equal(t, 2, rep.Migrated)
	it, _ := env.store.Item("cement")
	assert.Empty(t, it.Category)
}

func TestMigration_RespaldoXLSXYReversion(t *testing.T) {
	env := newTestEnv(t, migrationSeed()...)

	resp := env.doJSON(t, http.MethodPost, "/api/migration/run?format=xlsx", "admin", dto.MigrationRunRequest{})
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "2", resp.Header.Get("X-Migration-Migrated"))
	workbook, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	it, _ := env.store.Item("LED Bulb 9W")
	require.Equal(t, entity.Category("Lamps and Bulbs > LED Bulbs"), it.Category)

	var form bytes.Buffer
	w := multipart.NewWriter(&form)
	part, err := w.CreateFormFile("snapshot", "backup.xlsx")
	require.NoError(t, err)
	_, err = part.Write(workbook)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	resp = env.do(t, http.MethodPost, "/api/migration/rollback", "admin", &form, w.FormDataContentType())
	require.Equal(t, http.StatusOK, resp.StatusCode)
	rb := decode[migration.RollbackReport](t, resp)
	assert.Equal(t, 2, rb.RolledBack)

	it, _ = env.store.Item("LED Bulb 9W")
	assert.Equal(t, entity.Category("Steel"), it.Category)
}

func TestMigration_ReversionJSONVacia(t *testing.T) {
	env := newTestEnv(t)
	resp := env.doJSON(t, http.MethodPost, "/api/migration/rollback", "admin", dto.RollbackRequest{})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestMigration_AlmacenNoDisponible(t *testing.T) {
	env := newTestEnv(t, migrationSeed()...)
	env.store.FailWith(memory.Unavailable("FetchAllItems"))
	resp := env.do(t, http.MethodGet, "/api/migration/validate", "admin", nil, "")
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
	assert.Equal(t, "STORE_UNAVAILABLE", decode[dto.ErrorResponse](t, resp).Code)
}

// ──────────────────────────────────────────────────────────────────────────────
// Métricas
// ──────────────────────────────────────────────────────────────────────────────

func TestMetrics_ExponeLotes(t *testing.T) {
	env := newTestEnv(t)
	env.doJSON(t, http.MethodPost, "/api/commands/in", "bot", cmdReq("/in cement, 1"))

	resp := env.do(t, http.MethodGet, "/metrics", "", nil, "")
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `inventory_assistant_batches_total{status="success",type="IN"} 1`)
}
