package http_test

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/juju/clock/testclock"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/jhoicas/invoice-tracker/internal/application/analytics"
	"github.com/jhoicas/invoice-tracker/internal/application/dto"
	"github.com/jhoicas/invoice-tracker/internal/application/ledger"
	"github.com/jhoicas/invoice-tracker/internal/domain/entity"
	"github.com/jhoicas/invoice-tracker/internal/domain/repository"
	"github.com/jhoicas/invoice-tracker/internal/domain/repository/mocks"
	"github.com/jhoicas/invoice-tracker/internal/domain/repository/repositorytest"
	"github.com/jhoicas/invoice-tracker/internal/infrastructure/memory"
	"github.com/jhoicas/invoice-tracker/internal/infrastructure/metrics"
	"github.com/jhoicas/invoice-tracker/internal/infrastructure/pdf"
	apphttp "github.com/jhoicas/invoice-tracker/internal/interfaces/http"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

type testEnv struct {
	app *fiber.App
	clk *testclock.Clock
}

// buildTestApp arma la app completa sobre el almacén en memoria (o el repo dado).
func buildTestApp(t *testing.T, locale string, repo repository.InvoiceRepository) testEnv {
	t.Helper()
	clk, cal := repositorytest.NewCalendar(repositorytest.Today)

	var tx *memory.TxRunner
	if repo == nil {
		mem := memory.NewInvoiceRepository(cal)
		repo, tx = mem, memory.NewTxRunner(mem)
	}
	m := metrics.New()
	var svc *ledger.Service
	if tx != nil {
		svc = ledger.NewService(repo, tx, zerolog.Nop(), m)
	} else {
		svc = ledger.NewService(repo, nil, zerolog.Nop(), m)
	}
	dashboard := analytics.NewDashboardUseCase(repo, cal)
	msgs, err := apphttp.NewMessages(locale)
	require.NoError(t, err)

	app := apphttp.NewApp("invoice-tracker-test")
	apphttp.Router(app, apphttp.RouterDeps{
		Ledger:    svc,
		Dashboard: dashboard,
		ReportPDF: analytics.NewReportPDFUseCase(dashboard, cal, pdf.NewMarotoReportGenerator("test")),
		Messages:  msgs,
		Metrics:   m,
		Logger:    zerolog.Nop(),
		StoreName: "memory",
	})
	return testEnv{app: app, clk: clk}
}

func doRequest(t *testing.T, app *fiber.App, method, path, body string, headers ...string) *http.Response {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeOutcome(t *testing.T, resp *http.Response) dto.OutcomeResponse {
	t.Helper()
	var out dto.OutcomeResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

// ──────────────────────────────────────────────────────────────────────────────
// Ciclo de vida
// ──────────────────────────────────────────────────────────────────────────────

func TestRegister_CreaYLuegoInforma(t *testing.T) {
	env := buildTestApp(t, "es", nil)

	resp := doRequest(t, env.app, http.MethodPost, "/api/invoices", `{"number":" 100 "}`)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	out := decodeOutcome(t, resp)
	assert.Equal(t, "REGISTERED", out.Kind)
	assert.Equal(t, "100", out.Number)
	assert.Equal(t, "success", out.Severity)
	assert.Equal(t, "Factura 100 registrada ✅", out.Message)

	resp = doRequest(t, env.app, http.MethodPost, "/api/invoices", `{"number":"100"}`)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	out = decodeOutcome(t, resp)
	assert.Equal(t, "ALREADY_KNOWN", out.Kind)
	assert.Equal(t, "notice", out.Severity)
	require.NotNil(t, out.Snapshot)
	assert.Equal(t, "Factura 100 (2026/10/19 - 10:00:00) ingresada", out.Message)
}

func TestRegister_NumeroInvalido400(t *testing.T) {
	env := buildTestApp(t, "es", nil)

	resp := doRequest(t, env.app, http.MethodPost, "/api/invoices", `{"number":"12a"}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "INVALID_NUMBER", decodeOutcome(t, resp).Kind)

	resp = doRequest(t, env.app, http.MethodPost, "/api/invoices", `{bad json`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestRecordExit_YDeleteBloqueado(t *testing.T) {
	env := buildTestApp(t, "en", nil)

	resp := doRequest(t, env.app, http.MethodPost, "/api/invoices/999/exit", "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "Invoice 999 not found ❌", decodeOutcome(t, resp).Message)

	doRequest(t, env.app, http.MethodPost, "/api/invoices", `{"number":"42"}`)
	env.clk.Advance(15 * time.Minute)

	resp = doRequest(t, env.app, http.MethodPost, "/api/invoices/42/exit", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	out := decodeOutcome(t, resp)
	assert.Equal(t, "EXITED", out.Kind)
	require.NotNil(t, out.Snapshot)
	assert.Equal(t, "10:15:00", out.Snapshot.Time)

	resp = doRequest(t, env.app, http.MethodPost, "/api/invoices/42/exit", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Invoice 42 (2026/10/19 - 10:15:00) exited", decodeOutcome(t, resp).Message)

	resp = doRequest(t, env.app, http.MethodDelete, "/api/invoices/42", "")
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "CANNOT_DELETE", decodeOutcome(t, resp).Kind)
}

func TestDelete_AntesDeSalir(t *testing.T) {
	env := buildTestApp(t, "es", nil)

	doRequest(t, env.app, http.MethodPost, "/api/invoices", `{"number":"43"}`)
	resp := doRequest(t, env.app, http.MethodDelete, "/api/invoices/43", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "DELETED", decodeOutcome(t, resp).Kind)

	resp = doRequest(t, env.app, http.MethodGet, "/api/invoices/43", "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestLookup_DigitosPersasEnLaRuta(t *testing.T) {
	env := buildTestApp(t, "fa", nil)

	doRequest(t, env.app, http.MethodPost, "/api/invoices", `{"number":"123"}`)
	resp := doRequest(t, env.app, http.MethodGet, "/api/invoices/"+url.PathEscape("۱۲۳"), "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	out := decodeOutcome(t, resp)
	assert.Equal(t, "FOUND", out.Kind)
	assert.Equal(t, "123", out.Number)
	assert.Equal(t, "فاکتور 123 (2026/10/19 - 10:00:00) وارد شده", out.Message)
}

func TestScan_Modos(t *testing.T) {
	env := buildTestApp(t, "es", nil)

	resp := doRequest(t, env.app, http.MethodPost, "/api/scan", `{"mode":"entry","number":"7"}`)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = doRequest(t, env.app, http.MethodPost, "/api/scan", `{"mode":"exit","number":"7"}`)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "EXITED", decodeOutcome(t, resp).Kind)

	resp = doRequest(t, env.app, http.MethodPost, "/api/scan", `{"mode":"sideways","number":"7"}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	var e dto.ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&e))
	assert.Equal(t, "INVALID_MODE", e.Code)
}

// ──────────────────────────────────────────────────────────────────────────────
// Idioma
// ──────────────────────────────────────────────────────────────────────────────

func TestMensajes_IdiomaPorQueryYCabecera(t *testing.T) {
	env := buildTestApp(t, "fa", nil)

	resp := doRequest(t, env.app, http.MethodGet, "/api/invoices/5", "")
	assert.Equal(t, "فاکتور 5 یافت نشد ❌", decodeOutcome(t, resp).Message)

	resp = doRequest(t, env.app, http.MethodGet, "/api/invoices/5", "", "Accept-Language", "es-AR,es;q=0.9")
	assert.Equal(t, "Factura 5 no encontrada ❌", decodeOutcome(t, resp).Message)

	resp = doRequest(t, env.app, http.MethodGet, "/api/invoices/5?lang=en", "", "Accept-Language", "es")
	assert.Equal(t, "Invoice 5 not found ❌", decodeOutcome(t, resp).Message)

	resp = doRequest(t, env.app, http.MethodGet, "/api/invoices/5", "", "Accept-Language", "ja")
	assert.Equal(t, "فاکتور 5 یافت نشد ❌", decodeOutcome(t, resp).Message, "idioma sin soporte cae en el de respaldo")
}

// ──────────────────────────────────────────────────────────────────────────────
// Listados, reportes y operación
// ──────────────────────────────────────────────────────────────────────────────

func TestListYCount(t *testing.T) {
	env := buildTestApp(t, "es", nil)

	for _, n := range []string{"100", "101", "102"} {
		doRequest(t, env.app, http.MethodPost, "/api/invoices", `{"number":"`+n+`"}`)
		env.clk.Advance(time.Second)
	}
	doRequest(t, env.app, http.MethodPost, "/api/invoices/101/exit", "")

	resp := doRequest(t, env.app, http.MethodGet, "/api/invoices/count", "")
	var count dto.CountResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&count))
	assert.Equal(t, 2, count.Entered)

	resp = doRequest(t, env.app, http.MethodGet, "/api/invoices", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var list dto.InvoiceListResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&list))
	require.Equal(t, 3, list.Total)
	assert.Equal(t, "102", list.Items[0].Number)
	assert.Equal(t, "exited", list.Items[1].LatestStatus)
	assert.Equal(t, "salida", list.Items[1].StatusLabel)
	assert.Equal(t, "ingresada", list.Items[0].StatusLabel)
	assert.NotNil(t, list.Items[1].ExitedDate)

	resp = doRequest(t, env.app, http.MethodGet, "/api/invoices?lang=fa", "")
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&list))
	assert.Equal(t, "خارج شده", list.Items[1].StatusLabel)
}

func TestReportes(t *testing.T) {
	env := buildTestApp(t, "es", nil)
	doRequest(t, env.app, http.MethodPost, "/api/invoices", `{"number":"1"}`)
	doRequest(t, env.app, http.MethodPost, "/api/invoices", `{"number":"2"}`)
	doRequest(t, env.app, http.MethodPost, "/api/invoices/2/exit", "")

	resp := doRequest(t, env.app, http.MethodGet, "/api/reports/weekly", "")
	var weekly []dto.WeeklySummaryRowDTO
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&weekly))
	assert.Equal(t, []dto.WeeklySummaryRowDTO{{Date: "2026/10/19", EnterCount: 2, ExitCount: 1}}, weekly)

	resp = doRequest(t, env.app, http.MethodGet, "/api/reports/monthly", "")
	var monthly []dto.MonthlySummaryRowDTO
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&monthly))
	assert.Equal(t, []dto.MonthlySummaryRowDTO{{Date: "2026/10/19", Count: 2}}, monthly)

	resp = doRequest(t, env.app, http.MethodGet, "/api/dashboard/summary", "")
	var summary dto.DashboardSummaryDTO
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&summary))
	assert.Equal(t, 1, summary.EnteredCount)
	assert.Len(t, summary.Week.Days, 8)
	assert.Equal(t, "50", summary.Week.ExitRate.String())

	for _, path := range []string{"/api/reports/weekly.pdf", "/api/reports/monthly.pdf"} {
		resp = doRequest(t, env.app, http.MethodGet, path, "")
		assert.Equal(t, http.StatusOK, resp.StatusCode, path)
		assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
		assert.Contains(t, resp.Header.Get("Content-Disposition"), ".pdf")
	}
}

func TestHealthYMetrics(t *testing.T) {
	env := buildTestApp(t, "es", nil)
	doRequest(t, env.app, http.MethodPost, "/api/invoices", `{"number":"1"}`)

	resp := doRequest(t, env.app, http.MethodGet, "/health", "")
	var health dto.HealthResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&health))
	assert.Equal(t, dto.HealthResponse{Status: "ok", Store: "memory"}, health)

	resp = doRequest(t, env.app, http.MethodGet, "/metrics", "")
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `invoice_tracker_outcomes_total{kind="REGISTERED",op="register"} 1`)
}

func TestMetrics_GaugeDeDentroSigueLasMutaciones(t *testing.T) {
	env := buildTestApp(t, "es", nil)
	scrape := func() string {
		t.Helper()
		resp := doRequest(t, env.app, http.MethodGet, "/metrics", "")
		body, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		return string(body)
	}

	doRequest(t, env.app, http.MethodPost, "/api/invoices", `{"number":"1"}`)
	doRequest(t, env.app, http.MethodPost, "/api/invoices", `{"number":"2"}`)
	assert.Contains(t, scrape(), "invoice_tracker_entered_invoices 2")

	doRequest(t, env.app, http.MethodPost, "/api/invoices/1/exit", "")
	assert.Contains(t, scrape(), "invoice_tracker_entered_invoices 1")

	doRequest(t, env.app, http.MethodDelete, "/api/invoices/2", "")
	assert.Contains(t, scrape(), "invoice_tracker_entered_invoices 0")
}

// ──────────────────────────────────────────────────────────────────────────────
// Errores de almacenamiento y estados anómalos
// ──────────────────────────────────────────────────────────────────────────────

func TestErrorDeAlmacen_500(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockInvoiceRepository(ctrl)
	repo.EXPECT().GetStatus(gomock.Any(), "9").Return(nil, errors.New("disk I/O error"))
	env := buildTestApp(t, "es", repo)

	resp := doRequest(t, env.app, http.MethodPost, "/api/invoices", `{"number":"9"}`)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	var e dto.ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&e))
	assert.Equal(t, "INTERNAL", e.Code)
	assert.NotContains(t, e.Message, "disk", "el detalle queda en el log")
}

func TestEstadoDesconocido_409(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockInvoiceRepository(ctrl)
	repo.EXPECT().GetStatus(gomock.Any(), "13").Return(&entity.Invoice{
		Number: "13", EnteredDate: "2026/10/19", EnteredTime: "09:00:00", EntryStatus: "pending",
	}, nil)
	env := buildTestApp(t, "es", repo)

	resp := doRequest(t, env.app, http.MethodPost, "/api/invoices/13/exit", "")
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	out := decodeOutcome(t, resp)
	assert.Equal(t, "UNKNOWN_STATUS", out.Kind)
	assert.Equal(t, "Estado desconocido para la factura 13 ❌", out.Message)
}
