package routes

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	quotesvc "github.com/custodia-hq/custodia-backend/internal/quotes"
	"github.com/custodia-hq/custodia-backend/pkg/config"
	"github.com/custodia-hq/custodia-backend/pkg/db/models"
	pkgerrors "github.com/custodia-hq/custodia-backend/pkg/errors"
	"github.com/custodia-hq/custodia-backend/pkg/logger"
)

type stubPinger struct{}

func (stubPinger) Ping(context.Context) error {
	return nil
}

type stubQuoteService struct{}

func (stubQuoteService) GetQuote(ctx context.Context, quoteID uuid.UUID) (*models.Quote, error) {
	return nil, pkgerrors.New(pkgerrors.CodeNotFound, "quote not found")
}

func (stubQuoteService) GetCosts(ctx context.Context, quoteID uuid.UUID) (*quotesvc.QuoteCosts, error) {
	return nil, pkgerrors.New(pkgerrors.CodeNotFound, "quote not found")
}

func (stubQuoteService) ReplaceCosts(ctx context.Context, quoteID uuid.UUID, input quotesvc.ReplaceCostsInput) (*quotesvc.QuoteCosts, error) {
	return nil, pkgerrors.New(pkgerrors.CodeNotFound, "quote not found")
}

func newTestRouter() http.Handler {
	cfg := &config.Config{App: config.AppConfig{Env: config.AppEnvDev}}
	logg := logger.New(logger.Options{ServiceName: "router-test", Level: zerolog.ErrorLevel, Output: io.Discard})
	return NewRouter(cfg, logg, stubPinger{}, stubQuoteService{})
}

func TestRouterHealthEndpoints(t *testing.T) {
	router := newTestRouter()

	for _, path := range []string{"/health/live", "/health/ready"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		resp := httptest.NewRecorder()
		router.ServeHTTP(resp, req)
		if resp.Code != http.StatusOK {
			t.Fatalf("%s: expected 200 got %d", path, resp.Code)
		}
	}
}

func TestRouterQuoteCostsRoutesAreWired(t *testing.T) {
	router := newTestRouter()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/quotes/"+uuid.NewString()+"/costs", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected stub 404 got %d", resp.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/v1/unknown", nil)
	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected router 404 got %d", resp.Code)
	}
}
