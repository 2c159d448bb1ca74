package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{
		Telegram: TelegramConfig{Token: "t", RunMode: "longpoll"},
		Mail:     MailConfig{Domain: "Inbox.Example"},
		Storage:  StorageConfig{Backend: "memory"},
	}
}

func TestNormalizeDefaults(t *testing.T) {
	cfg := validConfig()
	require.NoError(t, Normalize(cfg))

	assert.Equal(t, "inbox.example", cfg.Mail.Domain)
	assert.Equal(t, ":8080", cfg.Mail.Listen)
	assert.Equal(t, StorageMemory, cfg.Storage.Backend)
	assert.Equal(t, RunModeLongpoll, cfg.Telegram.RunMode)
}

func TestNormalizeRequiresTokenAndDomain(t *testing.T) {
	cfg := validConfig()
	cfg.Telegram.Token = ""
	assert.Error(t, Normalize(cfg))

	cfg = validConfig()
	cfg.Mail.Domain = "  "
	assert.Error(t, Normalize(cfg))
}

func TestNormalizeStorageBackends(t *testing.T) {
	cfg := validConfig()
	cfg.Storage.Backend = "file"
	assert.Error(t, Normalize(cfg), "file backend needs a path")
	cfg.Storage.File = "data/registry.json"
	assert.NoError(t, Normalize(cfg))

	cfg = validConfig()
	cfg.Storage.Backend = "postgres"
	assert.Error(t, Normalize(cfg), "postgres backend needs host and name")
	cfg.Database.Host = "localhost"
	cfg.Database.Name = "dropmail"
	assert.NoError(t, Normalize(cfg))

	cfg = validConfig()
	cfg.Storage.Backend = "etcd"
	assert.Error(t, Normalize(cfg))
}

func TestNormalizeWebhookMode(t *testing.T) {
	cfg := validConfig()
	cfg.Telegram.RunMode = "webhook"
	assert.Error(t, Normalize(cfg))

	cfg.Webhook = WebhookConfig{URL: "https://bot.example/hook", Listen: "0.0.0.0", Port: 8443}
	assert.NoError(t, Normalize(cfg))
}

func TestNormalizeRateLimitExclusions(t *testing.T) {
	cfg := validConfig()
	cfg.RateLimit.ExcludeUpdates = []string{" Callback ", "message"}
	require.NoError(t, Normalize(cfg))
	assert.Equal(t, []string{"callback", "message"}, cfg.RateLimit.ExcludeUpdates)

	cfg = validConfig()
	cfg.RateLimit.ExcludeUpdates = []string{"inline_query"}
	assert.Error(t, Normalize(cfg))
}
