package routers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"

	"github.com/saiteja-29/V-Hire/internal/handlers"
	"github.com/saiteja-29/V-Hire/internal/lifecycle"
	"github.com/saiteja-29/V-Hire/internal/models"
	"github.com/saiteja-29/V-Hire/internal/repositories"
	"github.com/saiteja-29/V-Hire/internal/session"
	"github.com/saiteja-29/V-Hire/internal/settlement"
	"github.com/saiteja-29/V-Hire/internal/testhelpers"
)

func newTestRouter(t *testing.T) (http.Handler, *repositories.SettlementRepository) {
	t.Helper()
	db := testhelpers.SetupTestDB(t)
	log := zap.NewNop()

	interviews := &repositories.InterviewRepository{DB: db}
	settlements := &repositories.SettlementRepository{DB: db}

	h := &handlers.Handlers{
		Log: log,
		Manager: &lifecycle.Manager{
			Interviews:  interviews,
			Reports:     &repositories.ReportRepository{DB: db},
			Settlements: settlements,
			Profiles:    &repositories.ProfileRepository{DB: db},
			Log:         log,
		},
		Reconciler: &settlement.Reconciler{
			Settlements: settlements,
			Interviews:  interviews,
			Log:         log,
		},
		Hub:       session.NewHub(),
		JWTSecret: []byte("test-secret"),
	}
	return New(h), settlements
}

func TestRouterHealthEndpoint(t *testing.T) {
	router, _ := newTestRouter(t)
	server := httptest.NewServer(router)
	defer server.Close()

	resp, err := http.Get(server.URL + "/api/v1/healthz")
	if err != nil {
		t.Fatalf("health request failed: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
}

func TestRouterMetricsEndpoint(t *testing.T) {
	router, _ := newTestRouter(t)
	server := httptest.NewServer(router)
	defer server.Close()

	resp, err := http.Get(server.URL + "/metrics")
	if err != nil {
		t.Fatalf("metrics request failed: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
}

func TestRouterSettlementStatusByPathParam(t *testing.T) {
	router, settlements := newTestRouter(t)
	server := httptest.NewServer(router)
	defer server.Close()

	err := settlements.Upsert(&models.SettlementRecord{
		InterviewID:      "abc12345-1700000000000",
		InterviewerEmail: "ivr@example.com",
		SettlementStatus: models.SettlementReceived,
	})
	if err != nil {
		t.Fatalf("failed to seed settlement: %v", err)
	}

	resp, err := http.Get(server.URL + "/api/v1/settlements/abc12345-1700000000000")
	if err != nil {
		t.Fatalf("status request failed: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var body map[string]models.SettlementStatus
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("invalid body: %v", err)
	}
	if body["settlementStatus"] != models.SettlementReceived {
		t.Fatalf("unexpected status: %v", body)
	}
}

func TestRouterUnknownSettlementIs404(t *testing.T) {
	router, _ := newTestRouter(t)
	server := httptest.NewServer(router)
	defer server.Close()

	resp, err := http.Get(server.URL + "/api/v1/settlements/nope")
	if err != nil {
		t.Fatalf("status request failed: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.StatusCode)
	}
}
