package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"

	"PriceSentinel/internal/history"
	"PriceSentinel/internal/model"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func writeStore(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "price-history.json")
	store := model.NewStore("2025-03-01")
	tr := history.NewTracker(store)
	info := history.ModelInfo{ID: "gpt-4o", Name: "GPT-4o", Provider: "OpenAI"}
	for i, price := range []float64{5, 4, 2.5} {
		tr.RecordObservation(info, model.PriceObservation{
			Date:   []string{"2025-03-01", "2025-03-02", "2025-03-03"}[i],
			Routes: map[string]model.RoutePrice{model.RouteDirect: {InputPer1M: price, OutputPer1M: price * 4, Currency: "USD"}},
		})
	}
	tr.RecordObservation(history.ModelInfo{ID: "solo", Name: "Solo"}, model.PriceObservation{
		Date:   "2025-03-03",
		Routes: map[string]model.RoutePrice{model.RouteDirect: {InputPer1M: 1, OutputPer1M: 2, Currency: "USD"}},
	})
	if err := history.Persist(path, store, "2025-03-03"); err != nil {
		t.Fatal(err)
	}
	return path
}

func get(t *testing.T, h http.Handler, url string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, url, nil)
	req.Header.Set("Origin", "https://aipricecompare.com")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	var body map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode %s: %v (%s)", url, err, w.Body.String())
	}
	return w, body
}

func TestListTrends(t *testing.T) {
	h := NewRouter(writeStore(t), nil)
	w, body := get(t, h, "/api/v1/trends")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if body["count"].(float64) != 1 {
		t.Errorf("count = %v, want 1", body["count"])
	}
	if body["lastUpdated"] != "2025-03-03" {
		t.Errorf("lastUpdated = %v", body["lastUpdated"])
	}
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Errorf("Access-Control-Allow-Origin = %q, want *", got)
	}
}

func TestGetTrend(t *testing.T) {
	h := NewRouter(writeStore(t), nil)

	w, body := get(t, h, "/api/v1/models/gpt-4o/trend")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	trend, ok := body["trend"].(map[string]any)
	if !ok {
		t.Fatalf("trend = %v, want object", body["trend"])
	}
	if trend["direction"] != "down" || trend["change"] != "50.0" {
		t.Errorf("trend = %v, want down 50", trend)
	}

	w, body = get(t, h, "/api/v1/models/unknown/trend")
	if w.Code != http.StatusOK {
		t.Errorf("unknown model status = %d, want 200", w.Code)
	}
	if body["trend"] != nil {
		t.Errorf("unknown model trend = %v, want null", body["trend"])
	}
}

func TestGetTrend_MissingStore(t *testing.T) {
	h := NewRouter(filepath.Join(t.TempDir(), "absent.json"), nil)
	w, body := get(t, h, "/api/v1/models/gpt-4o/trend")
	if w.Code != http.StatusOK || body["trend"] != nil {
		t.Errorf("status=%d trend=%v, want 200 and null", w.Code, body["trend"])
	}
}

func TestGetTrend_CorruptStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "price-history.json")
	if err := os.WriteFile(path, []byte("garbage"), 0o644); err != nil {
		t.Fatal(err)
	}
	h := NewRouter(path, nil)
	w, body := get(t, h, "/api/v1/models/gpt-4o/trend")
	if w.Code != http.StatusOK || body["trend"] != nil {
		t.Errorf("status=%d trend=%v, want 200 and null", w.Code, body["trend"])
	}
}

func TestGetHistory(t *testing.T) {
	h := NewRouter(writeStore(t), []string{"https://aipricecompare.com"})

	w, body := get(t, h, "/api/v1/models/gpt-4o/history?limit=2")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	entries := body["history"].([]any)
	if len(entries) != 2 {
		t.Fatalf("len(history) = %d, want 2", len(entries))
	}
	if entries[0].(map[string]any)["date"] != "2025-03-02" {
		t.Errorf("first entry = %v, want 2025-03-02", entries[0])
	}
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "https://aipricecompare.com" {
		t.Errorf("Access-Control-Allow-Origin = %q", got)
	}

	w, _ = get(t, h, "/api/v1/models/gpt-4o/history?limit=zero")
	if w.Code != http.StatusBadRequest {
		t.Errorf("bad limit status = %d, want 400", w.Code)
	}

	w, body = get(t, h, "/api/v1/models/unknown/history")
	if w.Code != http.StatusNotFound {
		t.Errorf("unknown model status = %d, want 404", w.Code)
	}
	if body["error"].(map[string]any)["code"] != "MODEL_NOT_FOUND" {
		t.Errorf("error = %v", body["error"])
	}
}

func TestHealthAndNoRoute(t *testing.T) {
	h := NewRouter(writeStore(t), nil)
	if w, body := get(t, h, "/health"); w.Code != http.StatusOK || body["status"] != "ok" {
		t.Errorf("health = %d %v", w.Code, body)
	}
	if w, _ := get(t, h, "/api/v2/nothing"); w.Code != http.StatusNotFound {
		t.Errorf("no route status = %d, want 404", w.Code)
	}
}
