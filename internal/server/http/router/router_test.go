package router

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/polkiloo/credit-checkout/internal/config"
	"github.com/polkiloo/credit-checkout/internal/domain/model"
	"github.com/polkiloo/credit-checkout/internal/metrics"
	"github.com/polkiloo/credit-checkout/internal/server/http/handlers"
	testhelpers "github.com/polkiloo/credit-checkout/internal/test"
)

func TestSetupRoutes(t *testing.T) {
	gin.SetMode(gin.TestMode)
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	facade := testhelpers.CheckoutFacadeStub{
		TermsFn: func(context.Context, string, []model.CartLine) (*model.Evaluation, error) {
			return &model.Evaluation{Terms: []int{7}, Subtotal: decimal.NewFromInt(100), Taxes: decimal.NewFromInt(10)}, nil
		},
	}
	engine := Setup(Params{Facade: facade, Metrics: metrics.New(), Config: &config.Config{}, Logger: logger})

	cases := []struct {
		method string
		path   string
		body   string
		status int
	}{
		{http.MethodGet, "/", "", http.StatusOK},
		{http.MethodGet, "/health", "", http.StatusOK},
		{http.MethodGet, "/buyer/31605828000105", "", http.StatusOK},
		{http.MethodPost, "/buyer/terms/", `{"cnpj":"31605828000105","cart":[{"sku":"oweuriek","quantity":1}]}`, http.StatusOK},
		{http.MethodPost, "/order/create/", `{"cnpj":"31605828000105","cart":[],"term":7}`, http.StatusOK},
	}
	for _, tc := range cases {
		var body io.Reader
		if tc.body != "" {
			body = bytes.NewReader([]byte(tc.body))
		}
		req := httptest.NewRequest(tc.method, tc.path, body)
		req.Header.Set("Content-Type", "application/json")
		resp := httptest.NewRecorder()
		engine.ServeHTTP(resp, req)
		if resp.Code != tc.status {
			t.Fatalf("%s %s: expected status %d, got %d", tc.method, tc.path, tc.status, resp.Code)
		}
	}

	resp := httptest.NewRecorder()
	engine.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if resp.Code != http.StatusOK {
		t.Fatalf("expected metrics status 200, got %d", resp.Code)
	}
	if !strings.Contains(resp.Body.String(), `credit_checkout_checkouts_total{outcome="success"} 1`) {
		t.Fatalf("expected checkout outcome in metrics output")
	}
	if !strings.Contains(resp.Body.String(), `route="/buyer/:cnpj"`) {
		t.Fatalf("expected route template label in metrics output")
	}
}

var _ handlers.Facade = (*testhelpers.CheckoutFacadeStub)(nil)
