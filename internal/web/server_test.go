package web

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/okulov/casetrack/internal/config"
	"github.com/okulov/casetrack/internal/hub"
	"github.com/okulov/casetrack/internal/model"
	"github.com/okulov/casetrack/internal/tracker"
)

type staticInventory struct{}

func (staticInventory) GetInventory(ctx context.Context) (*model.Inventory, error) {
	return &model.Inventory{
		Assets:       []model.Asset{{AssetID: "1", ClassID: "c1"}},
		Descriptions: []model.Description{{ClassID: "c1", MarketHashName: "item"}},
	}, nil
}

func (staticInventory) IconURL(icon string) string { return "" }

type staticResolver struct{}

func (staticResolver) Resolve(ctx context.Context, name string) string { return "1,00 pуб." }

type pingFunc func(ctx context.Context) error

func (f pingFunc) Ping(ctx context.Context) error { return f(ctx) }

func newTestServer(t *testing.T, db Pinger) *Server {
	t.Helper()

	tr := tracker.New(tracker.DefaultConfig(), staticInventory{}, staticResolver{}, nil)
	h := hub.New(nil)

	return New(config.ServerConfig{Host: "127.0.0.1", Port: 0}, tr, h, db, nil)
}

func TestHealth(t *testing.T) {
	s := newTestServer(t, nil)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var resp healthResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Status != "healthy" {
		t.Errorf("Status = %q, want healthy", resp.Status)
	}
	if resp.Components["tracker"] != "created" {
		t.Errorf("tracker component = %q, want created", resp.Components["tracker"])
	}
	if _, ok := resp.Components["database"]; ok {
		t.Error("database component reported with history disabled")
	}
}

func TestHealth_DatabaseDown(t *testing.T) {
	down := pingFunc(func(ctx context.Context) error { return errors.New("connection refused") })
	s := newTestServer(t, down)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want 503", rec.Code)
	}

	var resp healthResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Status != "degraded" {
		t.Errorf("Status = %q, want degraded", resp.Status)
	}
	if resp.Components["database"] != "unreachable" {
		t.Errorf("database component = %q, want unreachable", resp.Components["database"])
	}
}

func TestStats(t *testing.T) {
	s := newTestServer(t, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/stats", nil)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var resp statsResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.State != "created" {
		t.Errorf("State = %q, want created", resp.State)
	}
	if resp.Stats.CasesOpened != 0 {
		t.Errorf("CasesOpened = %d, want 0", resp.Stats.CasesOpened)
	}
	if resp.Feed.Pending != 0 {
		t.Errorf("Feed.Pending = %d, want 0", resp.Feed.Pending)
	}
}

func TestUnknownRoute(t *testing.T) {
	s := newTestServer(t, nil)

	req := httptest.NewRequest(http.MethodGet, "/nope", nil)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}
