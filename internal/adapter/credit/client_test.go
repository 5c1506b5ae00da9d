package credit

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	domainErrors "github.com/polkiloo/credit-checkout/internal/domain/errors"
	"github.com/polkiloo/credit-checkout/internal/domain/model"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

func newTestClient(t *testing.T, handler http.HandlerFunc) *HTTPClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	client, err := NewHTTPClient(srv.URL, "secret", time.Second, testLogger())
	if err != nil {
		t.Fatalf("failed to create client: %v", err)
	}
	return client
}

func TestNewHTTPClientValidatesURL(t *testing.T) {
	if _, err := NewHTTPClient("://bad-url", "k", 0, testLogger()); err == nil {
		t.Fatal("expected error for invalid url")
	}
	if _, err := NewHTTPClient("/relative", "k", 0, testLogger()); err == nil {
		t.Fatal("expected error for relative url")
	}
	client, err := NewHTTPClient("http://credit.local", "k", 0, testLogger())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if client.httpClient.Timeout != 10*time.Second {
		t.Fatalf("expected default timeout, got %v", client.httpClient.Timeout)
	}
}

func TestFetchBuyerSuccess(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet || r.URL.Path != "/v1/buyers/31605828000105" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		if r.Header.Get(APIKeyHeader) != "secret" {
			t.Errorf("missing api key header")
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"taxId":"31605828000105","availableCreditLimitAmountCents":100000,`+
			`"sellerConfigs":[{"taxId":"1","maxPaymentTermDays":30},{"taxId":"2","maxPaymentTermDays":5}]}`)
	})

	buyer, err := client.FetchBuyer(context.Background(), "31605828000105")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if buyer.AvailableCreditCents != 100000 {
		t.Fatalf("unexpected credit %d", buyer.AvailableCreditCents)
	}
	if len(buyer.SellerConfigs) != 2 || buyer.SellerConfigs[1].MaxPaymentTermDays != 5 {
		t.Fatalf("unexpected seller configs %+v", buyer.SellerConfigs)
	}
	if !json.Valid(buyer.Raw) {
		t.Fatalf("expected raw body to be kept, got %q", buyer.Raw)
	}
}

func TestFetchBuyerErrors(t *testing.T) {
	tests := []struct {
		name         string
		status       int
		body         string
		wantProvider int
		wantErr      error
	}{
		{name: "http error status", status: http.StatusNotFound, body: `{"message":"buyer not found"}`, wantProvider: http.StatusNotFound},
		{name: "status in body", status: http.StatusOK, body: `{"statusCode":403,"message":"blocked"}`, wantProvider: http.StatusForbidden},
		{name: "malformed json", status: http.StatusOK, body: `{`, wantErr: domainErrors.ErrProviderTransport},
		{name: "missing credit", status: http.StatusOK, body: `{"sellerConfigs":[]}`, wantErr: domainErrors.ErrMissingField},
		{name: "missing term", status: http.StatusOK, body: `{"availableCreditLimitAmountCents":1,"sellerConfigs":[{"taxId":"1"}]}`, wantErr: domainErrors.ErrMissingField},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = io.WriteString(w, tt.body)
			})

			_, err := client.FetchBuyer(context.Background(), "1")
			if tt.wantProvider != 0 {
				var pe *domainErrors.ProviderError
				if !errors.As(err, &pe) {
					t.Fatalf("expected ProviderError, got %v", err)
				}
				if pe.StatusCode != tt.wantProvider {
					t.Fatalf("expected status %d, got %d", tt.wantProvider, pe.StatusCode)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}
			if !errors.Is(err, domainErrors.ErrProviderTransport) {
				t.Fatalf("expected transport classification, got %v", err)
			}
		})
	}
}

func TestFetchBuyerTransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := srv.URL
	srv.Close()

	client, err := NewHTTPClient(url, "k", time.Second, testLogger())
	if err != nil {
		t.Fatalf("failed to create client: %v", err)
	}
	if _, err := client.FetchBuyer(context.Background(), "1"); !errors.Is(err, domainErrors.ErrProviderTransport) {
		t.Fatalf("expected transport error, got %v", err)
	}
}

func TestSubmitOrder(t *testing.T) {
	submission := &model.OrderSubmission{
		SubtotalAmountCents: 90000,
		TaxAmountCents:      9000,
		Installments:        []model.Installment{{MaturityDate: "2025-02-14T01:15:09Z", FaceValueCents: 99000}},
		BuyerTaxID:          "31605828000105",
		SellerTaxID:         "11222333000181",
		Items:               []model.SubmissionItem{{ProductID: "oweuriek", ProductName: "Product A", Quantity: 9, UnitPriceCents: 10000}},
		Contact:             model.ContactInformation{Email: "a@b.c", Phone: "1", Name: "Ana", LastName: "Silva"},
	}

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/v1/orders" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		if r.Header.Get(IdempotencyKeyHeader) != "key-1" {
			t.Errorf("missing idempotency key")
		}
		if r.Header.Get("Content-Type") != "application/json" {
			t.Errorf("unexpected content type %q", r.Header.Get("Content-Type"))
		}
		var got map[string]any
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode body: %v", err)
		}
		if got["subtotalAmountCents"] != float64(90000) || got["shippingCostCents"] != float64(0) {
			t.Errorf("unexpected amounts %v", got)
		}
		contact, _ := got["contactInformation"].(map[string]any)
		if contact["name"] != "Ana" || contact["lastName"] != "Silva" {
			t.Errorf("unexpected contact %v", contact)
		}
		installments, _ := got["installments"].([]any)
		if len(installments) != 1 {
			t.Errorf("expected one installment, got %v", installments)
		}
		_, _ = io.WriteString(w, `{"id":"ext-123"}`)
	})

	result, err := client.SubmitOrder(context.Background(), "key-1", submission)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.ExternalOrderID != "ext-123" {
		t.Fatalf("unexpected id %q", result.ExternalOrderID)
	}
}

func TestSubmitOrderFailures(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     string
		provider bool
	}{
		{name: "status code above 299", status: http.StatusUnprocessableEntity, body: `{"message":"invalid"}`, provider: true},
		{name: "status in body", status: http.StatusOK, body: `{"statusCode":400}`, provider: true},
		{name: "missing id", status: http.StatusOK, body: `{}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = io.WriteString(w, tt.body)
			})
			_, err := client.SubmitOrder(context.Background(), "k", &model.OrderSubmission{})
			var pe *domainErrors.ProviderError
			if tt.provider != errors.As(err, &pe) {
				t.Fatalf("provider error mismatch: %v", err)
			}
			if !tt.provider && !errors.Is(err, domainErrors.ErrProviderTransport) {
				t.Fatalf("expected transport error, got %v", err)
			}
		})
	}
}

func TestFetchLogsErrorResponses(t *testing.T) {
	called := make(chan struct{}, 1)
	handler := slog.NewJSONHandler(io.Discard, &slog.HandlerOptions{ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
		if a.Key == slog.LevelKey && a.Value.Any() == slog.LevelError {
			select {
			case called <- struct{}{}:
			default:
			}
		}
		return a
	}})

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	client, err := NewHTTPClient(srv.URL, "k", time.Second, slog.New(handler))
	if err != nil {
		t.Fatalf("failed to create client: %v", err)
	}

	if _, err := client.FetchBuyer(context.Background(), "123"); err == nil {
		t.Fatal("expected error from server")
	}

	select {
	case <-called:
	case <-time.After(time.Second):
		t.Fatal("expected error log to be written")
	}
}
