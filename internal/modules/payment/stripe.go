package payment

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

// stripeGateway is the intent-based provider: initialize creates a payment
// intent and returns its client secret, verify retrieves the intent by id.
// Stripe amounts are in cents and it wants lowercase currency codes.
// API docs: https://stripe.com/docs/api/payment_intents
type stripeGateway struct {
	secretKey string
	baseURL   string
	client    *http.Client
}

// NewStripeGateway creates a Stripe adapter. baseURL defaults to the public
// API when empty.
func NewStripeGateway(secretKey, baseURL string) Gateway {
	if baseURL == "" {
		baseURL = "https://api.stripe.com"
	}
	return &stripeGateway{
		secretKey: secretKey,
		baseURL:   strings.TrimRight(baseURL, "/"),
		client:    newHTTPClient(),
	}
}

type stripeIntent struct {
	ID           string `json:"id"`
	ClientSecret string `json:"client_secret"`
	Status       string `json:"status"`
	Amount       int64  `json:"amount"`
	Currency     string `json:"currency"`
	Error        *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

func (g *stripeGateway) Initialize(ctx context.Context, req InitializeRequest) (*InitializeResult, error) {
	currency := strings.ToLower(req.Currency)
	if currency == "" {
		currency = "usd"
	}

	form := url.Values{}
	form.Set("amount", strconv.FormatInt(toMinorUnits(req.Amount), 10))
	form.Set("currency", currency)
	if req.Email != "" {
		form.Set("receipt_email", req.Email)
	}

	intent, err := g.call(ctx, http.MethodPost, "/v1/payment_intents", form)
	if err != nil {
		return nil, err
	}

	return &InitializeResult{
		Provider:     ProviderStripe,
		Reference:    intent.ID,
		ClientSecret: intent.ClientSecret,
	}, nil
}

func (g *stripeGateway) Verify(ctx context.Context, reference string) (*VerifyResult, error) {
	intent, err := g.call(ctx, http.MethodGet, "/v1/payment_intents/"+reference, nil)
	if err != nil {
		return nil, err
	}

	return &VerifyResult{
		Success:  intent.Status == "succeeded",
		Status:   intent.Status,
		Amount:   fromMinorUnits(intent.Amount),
		Currency: strings.ToUpper(intent.Currency),
	}, nil
}

func (g *stripeGateway) call(ctx context.Context, method, path string, form url.Values) (*stripeIntent, error) {
	var body *strings.Reader
	if form == nil {
		body = strings.NewReader("")
	} else {
		body = strings.NewReader(form.Encode())
	}

	req, err := http.NewRequestWithContext(ctx, method, g.baseURL+path, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+g.secretKey)
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("stripe request: %w", err)
	}
	defer resp.Body.Close()

	var intent stripeIntent
	if err := json.NewDecoder(resp.Body).Decode(&intent); err != nil {
		return nil, err
	}
	if intent.Error != nil {
		return nil, fmt.Errorf("stripe error: %s", intent.Error.Message)
	}
	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("stripe returned %d", resp.StatusCode)
	}
	return &intent, nil
}
