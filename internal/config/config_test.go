package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad(t *testing.T) {
	cfg := Load()

	assert.NotNil(t, cfg)
	assert.NotEmpty(t, cfg.ServerPort)
	assert.NotEmpty(t, cfg.APIBaseURL)
	assert.Equal(t, 30*time.Second, cfg.OTPResendWindow())
}

func TestLoadCustomValues(t *testing.T) {
	t.Setenv("SERVER_PORT", "9000")
	t.Setenv("API_BASE_URL", "https://api.exactfit.test/")
	t.Setenv("API_TIMEOUT", "3s")
	t.Setenv("CORS_ORIGINS", "https://exactfit.ae, https://www.exactfit.ae,")
	t.Setenv("OTP_RESEND_SECONDS", "45")
	t.Setenv("COOKIE_SECURE", "true")
	t.Setenv("STATE_BACKEND", "redis")

	cfg := Load()

	assert.Equal(t, ":9000", cfg.Addr())
	assert.Equal(t, "https://api.exactfit.test", cfg.APIBaseURL)
	assert.Equal(t, 3*time.Second, cfg.APITimeout)
	assert.Equal(t, []string{"https://exactfit.ae", "https://www.exactfit.ae"}, cfg.CORSOrigins)
	assert.Equal(t, 45*time.Second, cfg.OTPResendWindow())
	assert.True(t, cfg.CookieSecure)
	assert.Equal(t, "redis", cfg.StateBackend)
}

func TestLoadIgnoresMalformedNumbers(t *testing.T) {
	t.Setenv("OTP_RATE_PER_MIN", "lots")
	t.Setenv("API_TIMEOUT", "soon")

	cfg := Load()

	assert.Equal(t, 10, cfg.OTPRatePerMinute)
	assert.Equal(t, 15*time.Second, cfg.APITimeout)
}

func TestMapsScriptURL(t *testing.T) {
	cfg := &Config{}
	assert.Empty(t, cfg.MapsScriptURL())

	cfg.MapsAPIKey = "k123"
	assert.Contains(t, cfg.MapsScriptURL(), "libraries=places")
	assert.Contains(t, cfg.MapsScriptURL(), "key=k123")
}
