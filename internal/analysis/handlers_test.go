package analysis

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
)

func analysisApp() *fiber.App {
	app := fiber.New()
	RegisterRoutes(app.Group("/analysis"))
	return app
}

func postJSON(t *testing.T, app *fiber.App, path string, body any) *http.Response {
	t.Helper()
	raw, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	return resp
}

func TestGradientPaceHandler(t *testing.T) {
	app := analysisApp()
	body := analyzeRequest{Results: oneRun(mkbin(0, 1000, 300), mkbin(10, 1000, 390))}

	resp := postJSON(t, app, "/analysis/gradient-pace", body)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var report Report
	raw, _ := io.ReadAll(resp.Body)
	if err := json.Unmarshal(raw, &report); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(report.PerDegreeChart) != 2 || len(report.GradeAdjustment) != 2 {
		t.Fatalf("unexpected report: %+v", report)
	}
}

func TestGradientPaceHandlerMissingResults(t *testing.T) {
	app := analysisApp()
	resp := postJSON(t, app, "/analysis/gradient-pace", map[string]any{"other": 1})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}

func TestDeviationHandlerStatisticValidation(t *testing.T) {
	app := analysisApp()
	body := analyzeRequest{Results: oneRun(mkbin(0, 1000, 300))}

	resp := postJSON(t, app, "/analysis/deviation?statistic=p95", body)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown statistic, got %d", resp.StatusCode)
	}

	resp = postJSON(t, app, "/analysis/deviation?statistic=mean", body)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
}
