package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"StockPulse/internal/repository"
	"StockPulse/internal/usecase"
	"StockPulse/pkg/cache"
	applogger "StockPulse/pkg/logger"

	"github.com/labstack/echo/v4"
)

func newTestServer(t *testing.T) *echo.Echo {
	t.Helper()
	log, err := applogger.New(&applogger.Config{Level: "error", Format: "json", Output: "stderr"})
	if err != nil {
		t.Fatalf("logger: %v", err)
	}
	uc := usecase.NewReportUseCase(usecase.Options{}, log)
	h := NewReportsEchoHandler(log, uc, nil)
	e := echo.New()
	h.RegisterRoutes(e)
	return e
}

const reportBody = `{
  "symbol": "005930",
  "name": "Samsung Electronics",
  "stock": {
    "technical": {
      "current_price": 70000,
      "week52_high": 90000,
      "week52_low": 60000
    },
    "financial": {}
  },
  "model_results": [
    {
      "model": "gpt-4-turbo",
      "recommendation": "buy",
      "risk_level": "medium",
      "risk_score": 40,
      "evaluation_score": 75
    }
  ]
}`

type envelope struct {
	Status int             `json:"status"`
	Data   json.RawMessage `json:"data"`
}

func doRequest(t *testing.T, e *echo.Echo, method, path, body string) envelope {
	t.Helper()
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("http status = %d, want 200", rec.Code)
	}
	var env envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode envelope: %v", err)
	}
	return env
}

func TestGenerateEndpoint(t *testing.T) {
	e := newTestServer(t)
	env := doRequest(t, e, http.MethodPost, "/api/reports", reportBody)
	if env.Status != http.StatusOK {
		t.Fatalf("envelope status = %d, want 200", env.Status)
	}
	var report struct {
		Symbol string `json:"symbol"`
		Signal struct {
			Action string `json:"signal"`
		} `json:"trading_signal"`
	}
	if err := json.Unmarshal(env.Data, &report); err != nil {
		t.Fatalf("decode report: %v", err)
	}
	if report.Symbol != "005930" {
		t.Errorf("symbol = %q", report.Symbol)
	}
	if report.Signal.Action == "" {
		t.Error("signal action empty")
	}
}

func TestGenerateEndpointRejectsMissingSymbol(t *testing.T) {
	e := newTestServer(t)
	env := doRequest(t, e, http.MethodPost, "/api/reports", `{"name":"No Symbol"}`)
	if env.Status != http.StatusBadRequest {
		t.Fatalf("envelope status = %d, want 400", env.Status)
	}
}

func TestLatestEndpointMiss(t *testing.T) {
	e := newTestServer(t)
	env := doRequest(t, e, http.MethodGet, "/api/reports/999999", "")
	if env.Status != http.StatusNotFound {
		t.Fatalf("envelope status = %d, want 404", env.Status)
	}
}

func TestLatestEndpointAfterGenerate(t *testing.T) {
	log, err := applogger.New(&applogger.Config{Level: "error", Format: "json", Output: "stderr"})
	if err != nil {
		t.Fatalf("logger: %v", err)
	}
	reports := repository.NewCachedReportStore(cache.NewMemoryCache(), 0)
	uc := usecase.NewReportUseCase(usecase.Options{Reports: reports}, log)
	h := NewReportsEchoHandler(log, uc, nil)
	e := echo.New()
	h.RegisterRoutes(e)

	env := doRequest(t, e, http.MethodPost, "/api/reports", reportBody)
	if env.Status != http.StatusOK {
		t.Fatalf("generate status = %d", env.Status)
	}

	env = doRequest(t, e, http.MethodGet, "/api/reports/005930", "")
	if env.Status != http.StatusOK {
		t.Fatalf("lookup status = %d, want 200", env.Status)
	}
}

func TestHealthEndpoint(t *testing.T) {
	e := newTestServer(t)
	env := doRequest(t, e, http.MethodGet, "/healthz", "")
	if env.Status != http.StatusOK {
		t.Fatalf("envelope status = %d, want 200", env.Status)
	}
}
