package inbound

import (
	"crypto/subtle"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/heptiolabs/healthcheck"

	"dropmail/core/logger"
)

const webhookSecretHeader = "X-Webhook-Secret"

// ServerOptions configures the inbound mail HTTP server.
type ServerOptions struct {
	// Listen is the address the server binds to, e.g. ":8080".
	Listen string
	// WebhookSecret must match the X-Webhook-Secret header on every mail
	// POST. Empty disables the check (local development only).
	WebhookSecret string
	// Router receives authorized mail events.
	Router *Router
	// ReadyCheck, when set, gates the readiness endpoint (e.g. a database
	// ping for the relational backend).
	ReadyCheck healthcheck.Check
}

// NewServer builds the webhook HTTP server: POST /mailgun for inbound mail
// plus liveness and readiness probes.
func NewServer(opts ServerOptions) *http.Server {
	health := healthcheck.NewHandler()
	if opts.ReadyCheck != nil {
		health.AddReadinessCheck("storage", opts.ReadyCheck)
	}

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Timeout(30 * time.Second))

	r.Get("/", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("dropmail inbound webhook\n"))
	})
	r.Get("/healthz", health.LiveEndpoint)
	r.Get("/readyz", health.ReadyEndpoint)
	r.Post("/mailgun", mailgunHandler(opts.WebhookSecret, opts.Router))

	return &http.Server{
		Addr:              opts.Listen,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}
}

func mailgunHandler(secret string, router *Router) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !authorized(r, secret) {
			logger.MAIL.Warn("webhook auth failed",
				slog.String("event", "mail.webhook.unauthorized"),
				slog.String("remote", r.RemoteAddr),
			)
			writeJSON(w, http.StatusForbidden, map[string]any{"ok": false})
			return
		}

		if err := r.ParseForm(); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]any{"ok": false})
			return
		}

		ev := eventFromForm(r)
		delivered := router.Route(r.Context(), ev)

		logger.MAIL.Info("webhook processed",
			slog.String("event", "mail.webhook"),
			slog.Int("recipients", len(ev.Recipients)),
			slog.Int("delivered", delivered),
		)
		writeJSON(w, http.StatusOK, map[string]any{"ok": true, "delivered": delivered})
	}
}

// authorized checks the shared-secret header in constant time. An empty
// configured secret skips the check.
func authorized(r *http.Request, secret string) bool {
	if secret == "" {
		return true
	}
	got := r.Header.Get(webhookSecretHeader)
	return subtle.ConstantTimeCompare([]byte(got), []byte(secret)) == 1
}

// eventFromForm maps the provider's form fields onto an Event. Recipients
// come from every addressing field the provider may populate.
func eventFromForm(r *http.Request) Event {
	body := r.PostFormValue("stripped-text")
	if body == "" {
		body = r.PostFormValue("body-plain")
	}
	to := r.PostFormValue("To")
	if to == "" {
		to = r.PostFormValue("to")
	}
	return Event{
		Recipients: ExtractAddresses(
			r.PostFormValue("recipient"),
			to,
			r.PostFormValue("envelope"),
		),
		Sender:  r.PostFormValue("sender"),
		Subject: r.PostFormValue("subject"),
		Body:    body,
	}
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
