// Package checkout talks to the hosted checkout provider used for wallet top-ups.
package checkout

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"mypayment-ledger/config"
	"mypayment-ledger/internal/core/ports"
	"mypayment-ledger/pkg/apperror"

	"github.com/rs/zerolog"
)

// HTTPClient interface for testability.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// errBadRequest marks a 400 from the checkout endpoint.
var errBadRequest = errors.New("checkout: bad request")

// tokenLeeway renews the access token slightly before it actually expires.
const tokenLeeway = 30 * time.Second

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int64  `json:"expires_in"`
}

type payer struct {
	FirstName string `json:"firstName,omitempty"`
	LastName  string `json:"lastName,omitempty"`
}

type checkoutMetadata struct {
	UserID string `json:"user_id"`
}

type initCheckoutBody struct {
	TotalAmount      int64            `json:"totalAmount"`
	InitialAmount    int64            `json:"initialAmount"`
	ItemName         string           `json:"itemName"`
	BackURL          string           `json:"backUrl"`
	ErrorURL         string           `json:"errorUrl"`
	ReturnURL        string           `json:"returnUrl"`
	ContainsDonation bool             `json:"containsDonation"`
	Payer            *payer           `json:"payer,omitempty"`
	Metadata         checkoutMetadata `json:"metadata"`
}

type initCheckoutResponse struct {
	ID          int64  `json:"id"`
	RedirectURL string `json:"redirectUrl"`
}

// Client implements ports.CheckoutProvider against a HelloAsso-compatible API.
// It authenticates with the OAuth2 client-credentials grant and caches the token.
type Client struct {
	cfg        config.CheckoutConfig
	httpClient HTTPClient
	log        zerolog.Logger
	now        func() time.Time

	mu          sync.Mutex
	accessToken string
	expiresAt   time.Time
}

// NewClient creates a checkout client.
func NewClient(cfg config.CheckoutConfig, httpClient HTTPClient, log zerolog.Logger) *Client {
	return &Client{
		cfg:        cfg,
		httpClient: httpClient,
		log:        log,
		now:        time.Now,
	}
}

// Configured reports whether provider credentials are present.
func (c *Client) Configured() bool {
	return c.cfg.ClientID != "" && c.cfg.ClientSecret != "" && c.cfg.OrganizationSlug != ""
}

// InitCheckout creates a hosted checkout. Some payer names are refused by the
// provider, so a 400 is retried once without payer details.
func (c *Client) InitCheckout(ctx context.Context, req ports.CheckoutRequest) (*ports.Checkout, error) {
	if !c.Configured() {
		return nil, apperror.ErrUnavailable("Top-up provider is not configured")
	}

	body := initCheckoutBody{
		TotalAmount:      req.Amount,
		InitialAmount:    req.Amount,
		ItemName:         req.Name,
		BackURL:          req.RedirectURL,
		ErrorURL:         req.RedirectURL,
		ReturnURL:        req.RedirectURL,
		ContainsDonation: false,
		Payer:            splitName(req.PayerName),
		Metadata:         checkoutMetadata{UserID: req.PayerUserID},
	}

	resp, err := c.postCheckout(ctx, body)
	if errors.Is(err, errBadRequest) && body.Payer != nil {
		c.log.Warn().Str("user_id", req.PayerUserID).Msg("checkout: provider refused payer details, retrying without them")
		body.Payer = nil
		resp, err = c.postCheckout(ctx, body)
	}
	if err != nil {
		return nil, err
	}
	if resp.RedirectURL == "" {
		return nil, fmt.Errorf("checkout: provider returned no redirect url")
	}

	c.log.Info().Int64("checkout_id", resp.ID).Int64("amount", req.Amount).Msg("checkout: created")
	return &ports.Checkout{ID: strconv.FormatInt(resp.ID, 10), URL: resp.RedirectURL}, nil
}

func (c *Client) postCheckout(ctx context.Context, body initCheckoutBody) (*initCheckoutResponse, error) {
	token, err := c.token(ctx)
	if err != nil {
		return nil, err
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("checkout: encoding body: %w", err)
	}

	endpoint := fmt.Sprintf("%s/v5/organizations/%s/checkout-intents",
		strings.TrimRight(c.cfg.BaseURL, "/"), url.PathEscape(c.cfg.OrganizationSlug))

	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("checkout: creating request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("checkout: request failed: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusBadRequest:
		return nil, errBadRequest
	case resp.StatusCode == http.StatusUnauthorized:
		c.resetToken()
		return nil, fmt.Errorf("checkout: token rejected")
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("checkout: unexpected status %d: %s", resp.StatusCode, snippet)
	}

	var out initCheckoutResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("checkout: decoding response: %w", err)
	}
	return &out, nil
}

// token returns a cached access token, fetching a new one when needed.
func (c *Client) token(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.accessToken != "" && c.now().Before(c.expiresAt) {
		return c.accessToken, nil
	}

	form := url.Values{}
	form.Set("grant_type", "client_credentials")
	form.Set("client_id", c.cfg.ClientID)
	form.Set("client_secret", c.cfg.ClientSecret)

	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	endpoint := strings.TrimRight(c.cfg.BaseURL, "/") + "/oauth2/token"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("checkout: creating token request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("checkout: token request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("checkout: token endpoint returned %d", resp.StatusCode)
	}

	var tok tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&tok); err != nil {
		return "", fmt.Errorf("checkout: decoding token: %w", err)
	}
	if tok.AccessToken == "" {
		return "", fmt.Errorf("checkout: empty access token")
	}

	c.accessToken = tok.AccessToken
	c.expiresAt = c.now().Add(time.Duration(tok.ExpiresIn)*time.Second - tokenLeeway)
	return c.accessToken, nil
}

func (c *Client) resetToken() {
	c.mu.Lock()
	c.accessToken = ""
	c.mu.Unlock()
}

func (c *Client) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if c.cfg.Timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, c.cfg.Timeout)
}

// splitName turns "First Last Names" into a payer. Empty names send no payer.
func splitName(name string) *payer {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil
	}
	first, last, _ := strings.Cut(name, " ")
	return &payer{FirstName: first, LastName: strings.TrimSpace(last)}
}
