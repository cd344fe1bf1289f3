package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"aether-be/internal/logger"
	"aether-be/internal/metrics"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const (
	SandboxBaseURL = "https://api-m.sandbox.paypal.com"

	intentCapture = "CAPTURE"
)

type paypalGateway struct {
	baseURL      string
	clientID     string
	clientSecret string
	httpClient   *http.Client
}

// ----------------- Constructor -----------------

func NewPayPalGateway(baseURL, clientID, clientSecret string) Gateway {
	if baseURL == "" {
		baseURL = SandboxBaseURL
	}
	if strings.HasSuffix(clientID, "_NOT_SET") || strings.HasSuffix(clientSecret, "_NOT_SET") {
		logger.L().Warn("PayPal credentials are not configured, payment calls will fail")
	}

	return &paypalGateway{
		baseURL:      strings.TrimRight(baseURL, "/"),
		clientID:     clientID,
		clientSecret: clientSecret,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

// ----------------- Access token -----------------

func (p *paypalGateway) accessToken(ctx context.Context) (string, error) {
	form := url.Values{"grant_type": {"client_credentials"}}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		p.baseURL+"/v1/oauth2/token", strings.NewReader(form.Encode()))
	if err != nil {
		return "", err
	}
	req.SetBasicAuth(p.clientID, p.clientSecret)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	var tok tokenResponse
	if _, err := p.do(req, &tok); err != nil {
		return "", fmt.Errorf("access token: %w", err)
	}
	if tok.AccessToken == "" {
		return "", fmt.Errorf("%w: empty access token", ErrPaymentFailed)
	}
	return tok.AccessToken, nil
}

// ----------------- CreateOrder -----------------

func (p *paypalGateway) CreateOrder(ctx context.Context, amt decimal.Decimal, currency string) (*OrderResult, error) {
	metrics.PaymentCalls.Inc()

	if currency == "" {
		currency = DefaultCurrency
	}

	log := logger.FromCtx(ctx).With(
		zap.String("layer", "gateway"),
		zap.String("method", "CreateOrder"),
		zap.String("amount", amt.StringFixed(2)),
		zap.String("currency", currency),
	)

	res, err := p.createOrder(ctx, amt, currency)
	if err != nil {
		metrics.PaymentFailures.Inc()
		log.Error("paypal create order failed", zap.Error(err))
		return nil, err
	}

	log.Info("paypal order created",
		zap.String("paypal_order_id", res.ID),
		zap.String("status", res.Status),
	)
	return res, nil
}

func (p *paypalGateway) createOrder(ctx context.Context, amt decimal.Decimal, currency string) (*OrderResult, error) {
	token, err := p.accessToken(ctx)
	if err != nil {
		return nil, err
	}

	body, err := json.Marshal(createOrderRequest{
		Intent: intentCapture,
		PurchaseUnits: []purchaseUnit{{
			Amount: amount{CurrencyCode: currency, Value: amt.StringFixed(2)},
		}},
		PaymentSource: map[string]map[string]any{"paypal": {}},
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPaymentFailed, err)
	}

	req, err := p.newJSONRequest(ctx, p.baseURL+"/v2/checkout/orders", token, body)
	if err != nil {
		return nil, err
	}

	var res OrderResult
	raw, err := p.do(req, &res)
	if err != nil {
		return nil, fmt.Errorf("create order: %w", err)
	}
	res.RawResponse = raw
	return &res, nil
}

// ----------------- CaptureOrder -----------------

func (p *paypalGateway) CaptureOrder(ctx context.Context, orderID string) (*CaptureResult, error) {
	metrics.PaymentCalls.Inc()

	log := logger.FromCtx(ctx).With(
		zap.String("layer", "gateway"),
		zap.String("method", "CaptureOrder"),
		zap.String("paypal_order_id", orderID),
	)

	res, err := p.captureOrder(ctx, orderID)
	if err != nil {
		metrics.PaymentFailures.Inc()
		log.Error("paypal capture failed", zap.Error(err))
		return nil, err
	}

	log.Info("paypal order captured", zap.String("status", res.Status))
	return res, nil
}

func (p *paypalGateway) captureOrder(ctx context.Context, orderID string) (*CaptureResult, error) {
	if orderID == "" {
		return nil, fmt.Errorf("%w: missing order id", ErrPaymentFailed)
	}

	token, err := p.accessToken(ctx)
	if err != nil {
		return nil, err
	}

	req, err := p.newJSONRequest(ctx,
		p.baseURL+"/v2/checkout/orders/"+url.PathEscape(orderID)+"/capture", token, []byte("{}"))
	if err != nil {
		return nil, err
	}

	var res CaptureResult
	raw, err := p.do(req, &res)
	if err != nil {
		return nil, fmt.Errorf("capture order: %w", err)
	}
	res.RawResponse = raw
	return &res, nil
}

// ----------------- helpers -----------------

func (p *paypalGateway) newJSONRequest(ctx context.Context, endpoint, token string, body []byte) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPaymentFailed, err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Prefer", "return=representation")
	return req, nil
}

// do sends req and decodes a 2xx body into out. Every failure wraps
// ErrPaymentFailed.
func (p *paypalGateway) do(req *http.Request, out any) (*json.RawMessage, error) {
	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPaymentFailed, err)
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read response: %v", ErrPaymentFailed, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: paypal status %d: %s", ErrPaymentFailed, resp.StatusCode, string(bodyBytes))
	}

	if err := json.Unmarshal(bodyBytes, out); err != nil {
		return nil, fmt.Errorf("%w: decode response: %v", ErrPaymentFailed, err)
	}

	raw := json.RawMessage(bodyBytes)
	return &raw, nil
}
