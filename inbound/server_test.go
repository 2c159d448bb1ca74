package inbound

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dropmail/access"
	"dropmail/registry"
)

func serverFixture(t *testing.T, secret string) (*registry.Registry, *fakeNotifier, http.Handler) {
	t.Helper()
	reg, err := registry.New(context.Background(), "inbox.example", registry.NewMemoryStore())
	require.NoError(t, err)
	n := &fakeNotifier{failFor: make(map[int64]error)}
	rt := NewRouter(reg, access.NewGate(1, reg), n)

	srv := NewServer(ServerOptions{
		Listen:        ":0",
		WebhookSecret: secret,
		Router:        rt,
	})
	return reg, n, srv.Handler
}

func postMail(h http.Handler, secret string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/mailgun", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if secret != "" {
		req.Header.Set(webhookSecretHeader, secret)
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestWebhookRejectsBadSecret(t *testing.T) {
	reg, n, h := serverFixture(t, "s3cret")
	addr, err := reg.MintNamed(context.Background(), 100, "target")
	require.NoError(t, err)

	form := url.Values{"recipient": {addr}, "sender": {"x@remote.example"}}

	w := postMail(h, "", form)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = postMail(h, "wrong", form)
	assert.Equal(t, http.StatusForbidden, w.Code)

	// Rejected requests must not deliver anything.
	assert.Empty(t, n.deliveries)
}

func TestWebhookDeliversMail(t *testing.T) {
	reg, n, h := serverFixture(t, "s3cret")
	ctx := context.Background()
	addr, err := reg.MintNamed(ctx, 100, "target")
	require.NoError(t, err)

	w := postMail(h, "s3cret", url.Values{
		"recipient":     {addr},
		"sender":        {"friend@remote.example"},
		"subject":       {"ping"},
		"stripped-text": {"pong"},
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"ok":true,"delivered":1}`, w.Body.String())
	require.Len(t, n.deliveries, 1)
	assert.Equal(t, int64(100), n.deliveries[0].userID)
}

func TestWebhookCountsOnlyKnownRecipients(t *testing.T) {
	reg, _, h := serverFixture(t, "s3cret")
	addr, err := reg.MintNamed(context.Background(), 100, "known")
	require.NoError(t, err)

	w := postMail(h, "s3cret", url.Values{
		"recipient": {addr + ", stranger@inbox.example"},
		"sender":    {"x@remote.example"},
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"ok":true,"delivered":1}`, w.Body.String())
}

func TestWebhookFallsBackToBodyPlain(t *testing.T) {
	reg, n, h := serverFixture(t, "")
	addr, err := reg.MintNamed(context.Background(), 100, "plain")
	require.NoError(t, err)

	w := postMail(h, "", url.Values{
		"To":         {"Someone <" + addr + ">"},
		"body-plain": {"plain text body"},
	})
	require.Equal(t, http.StatusOK, w.Code)
	require.Len(t, n.deliveries, 1)
	assert.Contains(t, n.deliveries[0].text, "plain text body")
}

func TestHealthEndpoints(t *testing.T) {
	_, _, h := serverFixture(t, "")

	for _, path := range []string{"/healthz", "/readyz"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		w := httptest.NewRecorder()
		h.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code, path)
	}
}
