package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	quotesvc "github.com/custodia-hq/custodia-backend/internal/quotes"
	"github.com/custodia-hq/custodia-backend/pkg/db/models"
	pkgerrors "github.com/custodia-hq/custodia-backend/pkg/errors"
)

type stubQuoteService struct {
	quote *models.Quote
	costs *quotesvc.QuoteCosts
	err   error

	lastInput *quotesvc.ReplaceCostsInput
}

func (s *stubQuoteService) GetQuote(ctx context.Context, quoteID uuid.UUID) (*models.Quote, error) {
	return s.quote, s.err
}

func (s *stubQuoteService) GetCosts(ctx context.Context, quoteID uuid.UUID) (*quotesvc.QuoteCosts, error) {
	return s.costs, s.err
}

func (s *stubQuoteService) ReplaceCosts(ctx context.Context, quoteID uuid.UUID, input quotesvc.ReplaceCostsInput) (*quotesvc.QuoteCosts, error) {
	s.lastInput = &input
	return s.costs, s.err
}

func newCostsRouter(svc quotesvc.Service) http.Handler {
	r := chi.NewRouter()
	r.Get("/api/v1/quotes/{quoteID}/costs", GetQuoteCosts(svc, nil))
	r.Put("/api/v1/quotes/{quoteID}/costs", ReplaceQuoteCosts(svc, nil))
	return r
}

func TestGetQuoteCostsSuccess(t *testing.T) {
	quoteID := uuid.New()
	svc := &stubQuoteService{
		costs: &quotesvc.QuoteCosts{
			Quote: models.Quote{ID: quoteID},
			Summary: quotesvc.CostSummary{
				TotalGuards:  4,
				MonthlyTotal: decimal.RequireFromString("91234.56"),
			},
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/quotes/"+quoteID.String()+"/costs", nil)
	resp := httptest.NewRecorder()
	newCostsRouter(svc).ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}

	var envelope struct {
		Data quoteCostsResponse `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Data.Summary.TotalGuards != 4 {
		t.Fatalf("unexpected totalGuards: %d", envelope.Data.Summary.TotalGuards)
	}
	if !envelope.Data.Summary.MonthlyTotal.Equal(decimal.RequireFromString("91234.56")) {
		t.Fatalf("unexpected monthlyTotal: %s", envelope.Data.Summary.MonthlyTotal)
	}
}

func TestGetQuoteCostsInvalidID(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/quotes/not-a-uuid/costs", nil)
	resp := httptest.NewRecorder()
	newCostsRouter(&stubQuoteService{}).ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestGetQuoteCostsNotFound(t *testing.T) {
	svc := &stubQuoteService{err: pkgerrors.New(pkgerrors.CodeNotFound, "quote not found")}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/quotes/"+uuid.NewString()+"/costs", nil)
	resp := httptest.NewRecorder()
	newCostsRouter(svc).ServeHTTP(resp, req)

	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d", resp.Code)
	}
}

func TestReplaceQuoteCostsMapsPayload(t *testing.T) {
	svc := &stubQuoteService{costs: &quotesvc.QuoteCosts{}}
	catalogItemID := uuid.New()
	body := `{
		"parameters": {"marginPct": "20", "contractMonths": 24},
		"uniforms": [{"catalogItemId": "` + catalogItemID.String() + `", "active": true}],
		"costItems": [{"catalogItemId": "` + uuid.NewString() + `", "calcMode": "per_guard", "quantity": 2, "active": true}],
		"meals": [{"mealType": "Lunch", "mealsPerDay": 1, "daysOfService": 30, "enabled": true}]
	}`

	req := httptest.NewRequest(http.MethodPut, "/api/v1/quotes/"+uuid.NewString()+"/costs", strings.NewReader(body))
	resp := httptest.NewRecorder()
	newCostsRouter(svc).ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", resp.Code, resp.Body.String())
	}
	if svc.lastInput == nil {
		t.Fatal("service was not invoked")
	}
	if svc.lastInput.Parameters == nil || svc.lastInput.Parameters.ContractMonths != 24 {
		t.Fatalf("parameters not mapped: %+v", svc.lastInput.Parameters)
	}
	if len(svc.lastInput.Uniforms) != 1 || svc.lastInput.Uniforms[0].CatalogItemID != catalogItemID {
		t.Fatalf("uniforms not mapped: %+v", svc.lastInput.Uniforms)
	}
	if len(svc.lastInput.CostItems) != 1 || svc.lastInput.CostItems[0].CalcMode != "per_guard" {
		t.Fatalf("cost items not mapped: %+v", svc.lastInput.CostItems)
	}
}

func TestReplaceQuoteCostsRejectsUnknownFields(t *testing.T) {
	svc := &stubQuoteService{costs: &quotesvc.QuoteCosts{}}
	body := `{"bogus": true}`

	req := httptest.NewRequest(http.MethodPut, "/api/v1/quotes/"+uuid.NewString()+"/costs", strings.NewReader(body))
	resp := httptest.NewRecorder()
	newCostsRouter(svc).ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
	if svc.lastInput != nil {
		t.Fatal("service must not be invoked on invalid payload")
	}
}

func TestReplaceQuoteCostsInvalidCalcMode(t *testing.T) {
	svc := &stubQuoteService{costs: &quotesvc.QuoteCosts{}}
	body := `{"costItems": [{"catalogItemId": "` + uuid.NewString() + `", "calcMode": "hourly", "active": true}]}`

	req := httptest.NewRequest(http.MethodPut, "/api/v1/quotes/"+uuid.NewString()+"/costs", strings.NewReader(body))
	resp := httptest.NewRecorder()
	newCostsRouter(svc).ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}
