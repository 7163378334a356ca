package checkout

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"mypayment-ledger/config"
	"mypayment-ledger/internal/core/ports"
	"mypayment-ledger/pkg/apperror"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeProvider struct {
	tokenCalls    atomic.Int32
	checkoutCalls atomic.Int32
	rejectPayer   bool
	bodies        chan initCheckoutBody
}

func (p *fakeProvider) handler(t *testing.T) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/oauth2/token", func(w http.ResponseWriter, r *http.Request) {
		p.tokenCalls.Add(1)
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "client_credentials", r.PostForm.Get("grant_type"))
		assert.Equal(t, "id", r.PostForm.Get("client_id"))
		assert.Equal(t, "secret", r.PostForm.Get("client_secret"))
		_ = json.NewEncoder(w).Encode(tokenResponse{AccessToken: "tok", ExpiresIn: 1800})
	})
	mux.HandleFunc("/v5/organizations/bde-ecl/checkout-intents", func(w http.ResponseWriter, r *http.Request) {
		p.checkoutCalls.Add(1)
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))

		var body initCheckoutBody
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		p.bodies <- body

		if p.rejectPayer && body.Payer != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		_ = json.NewEncoder(w).Encode(initCheckoutResponse{ID: 4242, RedirectURL: "https://pay.example.com/4242"})
	})
	return mux
}

func newTestClient(t *testing.T, p *fakeProvider) *Client {
	t.Helper()
	p.bodies = make(chan initCheckoutBody, 4)
	srv := httptest.NewServer(p.handler(t))
	t.Cleanup(srv.Close)

	return NewClient(config.CheckoutConfig{
		BaseURL:          srv.URL,
		OrganizationSlug: "bde-ecl",
		ClientID:         "id",
		ClientSecret:     "secret",
		Timeout:          2 * time.Second,
	}, srv.Client(), zerolog.Nop())
}

func testRequest() ports.CheckoutRequest {
	return ports.CheckoutRequest{
		Amount:      1500,
		Name:        "Recharge MyECL Pay",
		RedirectURL: "https://api.myecl.fr/mypayment/transfer/redirect?url=x",
		PayerUserID: "alice",
		PayerName:   "Alice de la Tour",
	}
}

func TestInitCheckout_Success(t *testing.T) {
	p := &fakeProvider{}
	client := newTestClient(t, p)

	checkout, err := client.InitCheckout(context.Background(), testRequest())
	require.NoError(t, err)
	assert.Equal(t, "4242", checkout.ID)
	assert.Equal(t, "https://pay.example.com/4242", checkout.URL)

	body := <-p.bodies
	assert.Equal(t, int64(1500), body.TotalAmount)
	assert.Equal(t, int64(1500), body.InitialAmount)
	assert.Equal(t, "Recharge MyECL Pay", body.ItemName)
	assert.Equal(t, body.ReturnURL, body.BackURL)
	assert.Equal(t, body.ReturnURL, body.ErrorURL)
	assert.False(t, body.ContainsDonation)
	require.NotNil(t, body.Payer)
	assert.Equal(t, "Alice", body.Payer.FirstName)
	assert.Equal(t, "de la Tour", body.Payer.LastName)
	assert.Equal(t, "alice", body.Metadata.UserID)
}

func TestInitCheckout_ReusesToken(t *testing.T) {
	p := &fakeProvider{}
	client := newTestClient(t, p)

	for i := 0; i < 3; i++ {
		_, err := client.InitCheckout(context.Background(), testRequest())
		require.NoError(t, err)
		<-p.bodies
	}
	assert.Equal(t, int32(1), p.tokenCalls.Load())
	assert.Equal(t, int32(3), p.checkoutCalls.Load())
}

func TestInitCheckout_RefreshesExpiredToken(t *testing.T) {
	p := &fakeProvider{}
	client := newTestClient(t, p)
	now := time.Now()
	client.now = func() time.Time { return now }

	_, err := client.InitCheckout(context.Background(), testRequest())
	require.NoError(t, err)
	<-p.bodies

	now = now.Add(time.Hour)
	_, err = client.InitCheckout(context.Background(), testRequest())
	require.NoError(t, err)
	<-p.bodies

	assert.Equal(t, int32(2), p.tokenCalls.Load())
}

func TestInitCheckout_RetriesWithoutPayer(t *testing.T) {
	p := &fakeProvider{rejectPayer: true}
	client := newTestClient(t, p)

	checkout, err := client.InitCheckout(context.Background(), testRequest())
	require.NoError(t, err)
	assert.Equal(t, "4242", checkout.ID)

	first, second := <-p.bodies, <-p.bodies
	assert.NotNil(t, first.Payer)
	assert.Nil(t, second.Payer)
	assert.Equal(t, int32(2), p.checkoutCalls.Load())
}

func TestInitCheckout_NotConfigured(t *testing.T) {
	client := NewClient(config.CheckoutConfig{BaseURL: "http://unused"}, http.DefaultClient, zerolog.Nop())
	assert.False(t, client.Configured())

	_, err := client.InitCheckout(context.Background(), testRequest())
	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperror.CodeUnavailable, appErr.Code)
}

func TestInitCheckout_ProviderError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/oauth2/token" {
			_ = json.NewEncoder(w).Encode(tokenResponse{AccessToken: "tok", ExpiresIn: 1800})
			return
		}
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := NewClient(config.CheckoutConfig{
		BaseURL: srv.URL, OrganizationSlug: "bde-ecl", ClientID: "id", ClientSecret: "secret",
	}, srv.Client(), zerolog.Nop())

	_, err := client.InitCheckout(context.Background(), testRequest())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unexpected status 500")
}

func TestSplitName(t *testing.T) {
	assert.Nil(t, splitName("  "))
	assert.Equal(t, &payer{FirstName: "Alice"}, splitName("Alice"))
	assert.Equal(t, &payer{FirstName: "Jean", LastName: "Dupont"}, splitName(" Jean Dupont "))
}
