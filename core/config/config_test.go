package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	coreerrors "github.com/dnslin/feedback-links/core/errors"
	"github.com/dnslin/feedback-links/core/link"
	"github.com/dnslin/feedback-links/core/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, name := range []string{EnvAPIKey, EnvSecretKey, EnvEnvironment, EnvEncryption} {
		t.Setenv(name, "")
	}
}

func TestLoad_DefaultsWithoutFile(t *testing.T) {
	clearEnv(t)
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "qa", cfg.Environment)
	assert.Equal(t, "no-encryption", cfg.Encryption)
	assert.Equal(t, DefaultGuests, cfg.Guests)
	assert.Equal(t, DefaultConcurrency, cfg.Concurrency)
	assert.Equal(t, DefaultCheckinOffset, *cfg.CheckinOffset)
	assert.Equal(t, DefaultCheckoutOffset, *cfg.CheckoutOffset)
}

func TestLoad_FileAndEnvOverrides(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "profile.yaml")
	content := `environment: production
encryption: tripledes
api_key: file-key
secret_key: file-secret
survey_id: S1
pms_id: P1
guests: 5
checkin_offset_days: -3
params:
  room: "101"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	t.Run("file only", func(t *testing.T) {
		cfg, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, "production", cfg.Environment)
		assert.Equal(t, "file-key", cfg.APIKey)
		assert.Equal(t, 5, cfg.Guests)
		assert.Equal(t, -3, *cfg.CheckinOffset)
		assert.Equal(t, DefaultCheckoutOffset, *cfg.CheckoutOffset)
		assert.Equal(t, "101", cfg.Params["room"])
	})

	t.Run("env overrides file", func(t *testing.T) {
		t.Setenv(EnvAPIKey, "env-key")
		t.Setenv(EnvSecretKey, "env-secret")
		t.Setenv(EnvEnvironment, "qa")
		t.Setenv(EnvEncryption, "aes")

		cfg, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, "env-key", cfg.APIKey)
		assert.Equal(t, "env-secret", cfg.SecretKey)
		assert.Equal(t, "qa", cfg.Environment)
		assert.Equal(t, "aes", cfg.Encryption)
	})
}

func TestLoad_MissingFile(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "missing.yaml")
	_, err := Load(path)
	require.Error(t, err)
	assert.Equal(t, coreerrors.ErrCodeInvalidConfig, coreerrors.CodeOf(err))
	assert.ErrorIs(t, err, store.ErrConfigNotFound)
	assert.Contains(t, err.Error(), path)
}

func TestValidate_AggregatesErrors(t *testing.T) {
	cfg := Default()
	cfg.Environment = "staging"
	cfg.Encryption = "rot13"
	cfg.Guests = -1
	cfg.Params = map[string]string{"sig": "x", "room": ""}

	err := cfg.Validate()
	require.Error(t, err)
	msg := err.Error()
	assert.Contains(t, msg, "environment")
	assert.Contains(t, msg, "encryption")
	assert.Contains(t, msg, "guests")
	assert.Contains(t, msg, "params.sig")
	assert.Contains(t, msg, "params.room")
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "profile.yaml")
	cfg := Default()
	cfg.APIKey = "K1"
	cfg.Params = map[string]string{"lang": "en"}
	require.NoError(t, Save(path, cfg))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)

	assert.Error(t, Save(path, nil))
}

func TestForm(t *testing.T) {
	cfg := Default()
	cfg.Environment = "prod"
	cfg.Encryption = "tripledes"
	cfg.APIKey = "K1"
	cfg.Params = map[string]string{"room": "101"}

	now := time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)
	form, err := cfg.Form(now)
	require.NoError(t, err)
	assert.Equal(t, link.EnvProduction, form.Environment)
	assert.Equal(t, link.EncryptionTripleDES, form.Encryption)
	assert.Equal(t, "2024-01-01", form.Checkin)
	assert.Equal(t, "2024-01-03", form.Checkout)
	assert.Equal(t, "K1", form.APIKey)

	form.Params["room"] = "202"
	assert.Equal(t, "101", cfg.Params["room"], "表单参数应为副本")
}
