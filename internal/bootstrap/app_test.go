package bootstrap

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"dealdesk-backend/internal/shared/config"
)

func devConfig(t *testing.T) config.Config {
	t.Helper()
	t.Setenv("OPENAI_API_KEY", "")
	return config.Config{
		Env:             "dev",
		Port:            "0",
		CORSAllowOrigin: []string{"http://localhost:5173"},
		ObjectStoreType: "local",
		LocalStoreDir:   t.TempDir(),
		QueueType:       "memory",
		LLMProvider:     "openai",
		PipelineWorkers: 1,
	}
}

func TestBuildDevDefaults(t *testing.T) {
	app, err := Build(devConfig(t))
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	if app.DB != nil {
		t.Fatalf("expected no database in dev without DATABASE_URL")
	}
	if app.Router == nil || app.DealsHandler == nil || app.Runner == nil || app.Dispatcher == nil {
		t.Fatalf("missing wiring: %+v", app)
	}
	if app.Queue == nil || app.QueueReceiver == nil {
		t.Fatalf("memory queue should serve both send and receive")
	}
}

func TestBuildHealthEndpoint(t *testing.T) {
	app, err := Build(devConfig(t))
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/health", nil)
	resp := httptest.NewRecorder()
	app.Router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("health status = %d", resp.Code)
	}
	var payload map[string]any
	if err := json.Unmarshal(resp.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode health: %v", err)
	}
	if payload["ok"] != true {
		t.Fatalf("payload = %v", payload)
	}
	if payload["database"] != false {
		t.Fatalf("expected database=false, got %v", payload["database"])
	}
	if payload["queue"] != "memory" {
		t.Fatalf("expected queue=memory, got %v", payload["queue"])
	}
}
