package payment

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/coursehaven/backend/internal/config"
)

// Intent is the slice of a Stripe payment intent the workflow cares about.
// Amount is in minor units (cents).
type Intent struct {
	ID           string `json:"id"`
	ClientSecret string `json:"client_secret"`
	Amount       int64  `json:"amount"`
	Currency     string `json:"currency"`
	Status       string `json:"status"`
}

// IntentSucceeded is the gateway status of a confirmed charge.
const IntentSucceeded = "succeeded"

// Gateway is the payment authorization interface the purchase workflow
// depends on.
type Gateway interface {
	CreateIntent(ctx context.Context, amount int64, currency string) (*Intent, error)
	GetIntent(ctx context.Context, id string) (*Intent, error)
}

type stripeGateway struct {
	httpClient *http.Client
	baseURL    string
	secretKey  string
}

func NewStripeGateway(cfg config.Stripe) Gateway {
	return &stripeGateway{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		baseURL:    cfg.BaseURL,
		secretKey:  cfg.SecretKey,
	}
}

// CreateIntent reserves a card payment for the given amount. The returned
// client secret is handed to the buyer, who confirms the charge with the
// gateway directly.
func (g *stripeGateway) CreateIntent(ctx context.Context, amount int64, currency string) (*Intent, error) {
	form := url.Values{}
	form.Set("amount", strconv.FormatInt(amount, 10))
	form.Set("currency", currency)
	form.Set("payment_method_types[]", "card")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		g.baseURL+"/v1/payment_intents", strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("http new request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+g.secretKey)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	return g.do(req)
}

// GetIntent fetches the gateway's authoritative record of a payment intent,
// used to verify client-reported confirmations server-side.
func (g *stripeGateway) GetIntent(ctx context.Context, id string) (*Intent, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		g.baseURL+"/v1/payment_intents/"+url.PathEscape(id), nil)
	if err != nil {
		return nil, fmt.Errorf("http new request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+g.secretKey)

	return g.do(req)
}

func (g *stripeGateway) do(req *http.Request) (*Intent, error) {
	resp, err := g.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http client do: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var apiErr struct {
			Error struct {
				Message string `json:"message"`
			} `json:"error"`
		}
		json.NewDecoder(resp.Body).Decode(&apiErr)
		return nil, fmt.Errorf("stripe %s: status %d: %s", req.URL.Path, resp.StatusCode, apiErr.Error.Message)
	}

	var intent Intent
	if err := json.NewDecoder(resp.Body).Decode(&intent); err != nil {
		return nil, fmt.Errorf("decode intent: %w", err)
	}
	return &intent, nil
}
