package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/sokoline/sokoline-backend/internal/apperr"
)

// paystackGateway is the redirect-based provider: initialize returns an
// authorization URL the buyer is sent to, verify is polled by reference.
// Paystack amounts are in kobo. API docs: https://paystack.com/docs/api/
type paystackGateway struct {
	secretKey string
	baseURL   string
	client    *http.Client
}

// NewPaystackGateway creates a Paystack adapter. baseURL defaults to the
// public API when empty.
func NewPaystackGateway(secretKey, baseURL string) Gateway {
	if baseURL == "" {
		baseURL = "https://api.paystack.co"
	}
	return &paystackGateway{
		secretKey: secretKey,
		baseURL:   strings.TrimRight(baseURL, "/"),
		client:    newHTTPClient(),
	}
}

type paystackInitBody struct {
	Email    string `json:"email"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency,omitempty"`
}

type paystackInitResponse struct {
	Status  bool   `json:"status"`
	Message string `json:"message"`
	Data    struct {
		AuthorizationURL string `json:"authorization_url"`
		AccessCode       string `json:"access_code"`
		Reference        string `json:"reference"`
	} `json:"data"`
}

type paystackVerifyResponse struct {
	Status  bool   `json:"status"`
	Message string `json:"message"`
	Data    struct {
		Status   string `json:"status"`
		Amount   int64  `json:"amount"`
		Currency string `json:"currency"`
	} `json:"data"`
}

func (g *paystackGateway) Initialize(ctx context.Context, req InitializeRequest) (*InitializeResult, error) {
	if req.Email == "" {
		return nil, apperr.Wrap(apperr.ErrInvalid, "email is required for paystack")
	}

	body, err := json.Marshal(paystackInitBody{
		Email:    req.Email,
		Amount:   toMinorUnits(req.Amount),
		Currency: strings.ToUpper(req.Currency),
	})
	if err != nil {
		return nil, err
	}

	var out paystackInitResponse
	if err := g.call(ctx, http.MethodPost, "/transaction/initialize", body, &out); err != nil {
		return nil, err
	}
	if !out.Status {
		return nil, fmt.Errorf("paystack initialize failed: %s", out.Message)
	}

	return &InitializeResult{
		Provider:         ProviderPaystack,
		Reference:        out.Data.Reference,
		AuthorizationURL: out.Data.AuthorizationURL,
	}, nil
}

func (g *paystackGateway) Verify(ctx context.Context, reference string) (*VerifyResult, error) {
	var out paystackVerifyResponse
	if err := g.call(ctx, http.MethodGet, "/transaction/verify/"+reference, nil, &out); err != nil {
		return nil, err
	}
	if !out.Status {
		return nil, fmt.Errorf("paystack verify failed: %s", out.Message)
	}

	return &VerifyResult{
		Success:  out.Data.Status == "success",
		Status:   out.Data.Status,
		Amount:   fromMinorUnits(out.Data.Amount),
		Currency: strings.ToUpper(out.Data.Currency),
	}, nil
}

func (g *paystackGateway) call(ctx context.Context, method, path string, body []byte, out interface{}) error {
	var reader *bytes.Reader
	if body == nil {
		reader = bytes.NewReader(nil)
	} else {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, g.baseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+g.secretKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return fmt.Errorf("paystack request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 500 {
		return fmt.Errorf("paystack returned %d", resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
