package credit

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"path"
	"time"

	domainErrors "github.com/polkiloo/credit-checkout/internal/domain/errors"
	"github.com/polkiloo/credit-checkout/internal/domain/model"
)

// APIKeyHeader carries the credit provider credential.
const APIKeyHeader = "X-CREDIPAY-API-KEY"

// IdempotencyKeyHeader lets the provider deduplicate repeated submissions.
const IdempotencyKeyHeader = "Idempotency-Key"

// Client exposes the credit provider operations used by checkout.
type Client interface {
	FetchBuyer(ctx context.Context, taxID string) (*model.BuyerProfile, error)
	SubmitOrder(ctx context.Context, idempotencyKey string, submission *model.OrderSubmission) (*model.SubmissionResult, error)
}

// HTTPClient implements Client via HTTP API.
type HTTPClient struct {
	baseURL    *url.URL
	apiKey     string
	httpClient *http.Client
	logger     *slog.Logger
}

type statusEnvelope struct {
	StatusCode *int   `json:"statusCode,omitempty"`
	Message    string `json:"message,omitempty"`
}

type buyerResponse struct {
	statusEnvelope
	TaxID                           string                 `json:"taxId"`
	AvailableCreditLimitAmountCents *int64                 `json:"availableCreditLimitAmountCents"`
	SellerConfigs                   []sellerConfigResponse `json:"sellerConfigs"`
}

type sellerConfigResponse struct {
	TaxID              string `json:"taxId"`
	MaxPaymentTermDays *int   `json:"maxPaymentTermDays"`
}

type orderResponse struct {
	statusEnvelope
	ID string `json:"id"`
}

type installmentRequest struct {
	MaturityDate   string `json:"maturityDate"`
	FaceValueCents int64  `json:"faceValueCents"`
}

type itemRequest struct {
	ProductID      string `json:"productId"`
	ProductName    string `json:"productName"`
	Quantity       int    `json:"quantity"`
	UnitPriceCents int64  `json:"unitPriceCents"`
}

type contactRequest struct {
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Name     string `json:"name"`
	LastName string `json:"lastName"`
}

type orderRequest struct {
	SubtotalAmountCents int64                `json:"subtotalAmountCents"`
	TaxAmountCents      int64                `json:"taxAmountCents"`
	ShippingCostCents   int64                `json:"shippingCostCents"`
	Installments        []installmentRequest `json:"installments"`
	BuyerTaxID          string               `json:"buyerTaxId"`
	SellerTaxID         string               `json:"sellerTaxId"`
	Items               []itemRequest        `json:"items"`
	ContactInformation  contactRequest       `json:"contactInformation"`
}

// NewHTTPClient creates HTTP credit client with the given per request timeout.
func NewHTTPClient(baseURL, apiKey string, timeout time.Duration, logger *slog.Logger) (*HTTPClient, error) {
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse credit api url: %w", err)
	}
	if !parsed.IsAbs() {
		return nil, fmt.Errorf("credit api url must be absolute")
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &HTTPClient{
		baseURL: parsed,
		apiKey:  apiKey,
		logger:  logger,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}, nil
}

// FetchBuyer loads the credit profile of the buyer identified by taxID.
func (c *HTTPClient) FetchBuyer(ctx context.Context, taxID string) (*model.BuyerProfile, error) {
	body, err := c.do(ctx, http.MethodGet, path.Join("/v1/buyers", url.PathEscape(taxID)), "", nil)
	if err != nil {
		return nil, err
	}

	var data buyerResponse
	if err := json.Unmarshal(body, &data); err != nil {
		return nil, fmt.Errorf("%w: decode buyer: %v", domainErrors.ErrProviderTransport, err)
	}
	if err := data.statusEnvelope.check(); err != nil {
		return nil, err
	}
	if data.AvailableCreditLimitAmountCents == nil {
		return nil, fmt.Errorf("%w: %w", domainErrors.ErrProviderTransport, &domainErrors.MissingFieldError{Field: "availableCreditLimitAmountCents"})
	}

	profile := &model.BuyerProfile{
		TaxID:                data.TaxID,
		AvailableCreditCents: *data.AvailableCreditLimitAmountCents,
		SellerConfigs:        make([]model.SellerConfig, 0, len(data.SellerConfigs)),
		Raw:                  json.RawMessage(body),
	}
	if profile.TaxID == "" {
		profile.TaxID = taxID
	}
	for _, seller := range data.SellerConfigs {
		if seller.MaxPaymentTermDays == nil {
			return nil, fmt.Errorf("%w: %w", domainErrors.ErrProviderTransport, &domainErrors.MissingFieldError{Field: "maxPaymentTermDays"})
		}
		profile.SellerConfigs = append(profile.SellerConfigs, model.SellerConfig{
			TaxID:              seller.TaxID,
			MaxPaymentTermDays: *seller.MaxPaymentTermDays,
		})
	}
	return profile, nil
}

// SubmitOrder sends the order for installment billing.
func (c *HTTPClient) SubmitOrder(ctx context.Context, idempotencyKey string, submission *model.OrderSubmission) (*model.SubmissionResult, error) {
	payload, err := json.Marshal(newOrderRequest(submission))
	if err != nil {
		return nil, fmt.Errorf("encode order: %w", err)
	}

	body, err := c.do(ctx, http.MethodPost, "/v1/orders", idempotencyKey, payload)
	if err != nil {
		return nil, err
	}

	var data orderResponse
	if err := json.Unmarshal(body, &data); err != nil {
		return nil, fmt.Errorf("%w: decode order: %v", domainErrors.ErrProviderTransport, err)
	}
	if err := data.statusEnvelope.check(); err != nil {
		return nil, err
	}
	if data.ID == "" {
		return nil, fmt.Errorf("%w: %w", domainErrors.ErrProviderTransport, &domainErrors.MissingFieldError{Field: "id"})
	}
	return &model.SubmissionResult{ExternalOrderID: data.ID}, nil
}

func (c *HTTPClient) do(ctx context.Context, method, endpointPath, idempotencyKey string, payload []byte) ([]byte, error) {
	endpoint := *c.baseURL
	endpoint.Path = path.Join(endpoint.Path, endpointPath)

	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, endpoint.String(), reader)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set(APIKeyHeader, c.apiKey)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if idempotencyKey != "" {
		req.Header.Set(IdempotencyKeyHeader, idempotencyKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domainErrors.ErrProviderTransport, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read body: %v", domainErrors.ErrProviderTransport, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.logger.Error("credit request failed",
			slog.String("method", method),
			slog.String("path", endpointPath),
			slog.Int("status", resp.StatusCode),
			slog.String("body", string(body)),
		)
		var envelope statusEnvelope
		_ = json.Unmarshal(body, &envelope)
		return nil, &domainErrors.ProviderError{StatusCode: resp.StatusCode, Message: envelope.Message}
	}
	return body, nil
}

// check turns an explicit non-success status carried in a 2xx body into a ProviderError.
func (e statusEnvelope) check() error {
	if e.StatusCode == nil {
		return nil
	}
	if code := *e.StatusCode; code < 200 || code > 299 {
		return &domainErrors.ProviderError{StatusCode: code, Message: e.Message}
	}
	return nil
}

func newOrderRequest(sub *model.OrderSubmission) orderRequest {
	req := orderRequest{
		SubtotalAmountCents: sub.SubtotalAmountCents,
		TaxAmountCents:      sub.TaxAmountCents,
		ShippingCostCents:   sub.ShippingCostCents,
		Installments:        make([]installmentRequest, 0, len(sub.Installments)),
		BuyerTaxID:          sub.BuyerTaxID,
		SellerTaxID:         sub.SellerTaxID,
		Items:               make([]itemRequest, 0, len(sub.Items)),
		ContactInformation: contactRequest{
			Email:    sub.Contact.Email,
			Phone:    sub.Contact.Phone,
			Name:     sub.Contact.Name,
			LastName: sub.Contact.LastName,
		},
	}
	for _, inst := range sub.Installments {
		req.Installments = append(req.Installments, installmentRequest(inst))
	}
	for _, item := range sub.Items {
		req.Items = append(req.Items, itemRequest(item))
	}
	return req
}
