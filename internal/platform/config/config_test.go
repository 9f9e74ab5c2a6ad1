package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFromEnvDefaults(t *testing.T) {
	for _, key := range []string{"AYUSH_ADDR", "UPSTREAM_BASE_URL", "JWT_ISSUER", "SESSION_TTL", "SIM_LATENCY", "KAFKA_BROKERS"} {
		t.Setenv(key, "")
	}

	cfg := FromEnv()

	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, "http://localhost:8000", cfg.UpstreamBaseURL)
	assert.Equal(t, "ayushdesk", cfg.JWTIssuer)
	assert.Equal(t, 12*time.Hour, cfg.SessionTTL)
	assert.True(t, cfg.SimulatedLatency)
	assert.Empty(t, cfg.KafkaBrokers)
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv("UPSTREAM_BASE_URL", "http://registry.example:9000")
	t.Setenv("KAFKA_BROKERS", "broker-1:9092, broker-2:9092,")

	cfg := FromEnv()
	assert.Equal(t, "http://registry.example:9000", cfg.UpstreamBaseURL)
	assert.Equal(t, []string{"broker-1:9092", "broker-2:9092"}, cfg.KafkaBrokers)
}

func TestSimLatencySwitch(t *testing.T) {
	cases := map[string]bool{
		"off":   false,
		"OFF":   false,
		"on":    true,
		"false": false,
		"true":  true,
		"1":     true,
		"0":     false,
		"bogus": true, // malformed values keep the default
	}
	for raw, want := range cases {
		t.Setenv("SIM_LATENCY", raw)
		assert.Equal(t, want, FromEnv().SimulatedLatency, "SIM_LATENCY=%s", raw)
	}
}
