package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Server captures process level configuration. Everything comes from the
// environment so main stays lean; a .env file is honored when present.
type Server struct {
	Addr            string
	UpstreamBaseURL string
	JWTSigningKey   string
	JWTIssuer       string
	SessionTTL      time.Duration

	DatabaseURL  string
	RedisURL     string
	KafkaBrokers []string
	AuditTopic   string

	SimulatedLatency bool

	AdminEmail    string
	AdminPassword string
	AdminName     string
}

// FromEnv builds a Server config from environment variables.
func FromEnv() Server {
	// Missing .env is fine, the environment may be set directly.
	_ = godotenv.Load()

	cfg := Server{
		Addr:            getenv("AYUSH_ADDR", ":8080"),
		UpstreamBaseURL: getenv("UPSTREAM_BASE_URL", "http://localhost:8000"),
		JWTSigningKey:   getenv("JWT_SIGNING_KEY", "dev-secret-key-change-in-production"),
		JWTIssuer:       getenv("JWT_ISSUER", "ayushdesk"),
		SessionTTL:      getDuration("SESSION_TTL", 12*time.Hour),

		DatabaseURL: os.Getenv("DATABASE_URL"),
		RedisURL:    os.Getenv("REDIS_URL"),
		AuditTopic:  getenv("KAFKA_AUDIT_TOPIC", "ayushdesk.audit"),

		SimulatedLatency: getBool("SIM_LATENCY", true),

		AdminEmail:    getenv("ADMIN_EMAIL", "admin@ayushdesk.local"),
		AdminPassword: getenv("ADMIN_PASSWORD", "admin123"),
		AdminName:     getenv("ADMIN_NAME", "Super Admin"),
	}

	if brokers := os.Getenv("KAFKA_BROKERS"); brokers != "" {
		for _, b := range strings.Split(brokers, ",") {
			if b = strings.TrimSpace(b); b != "" {
				cfg.KafkaBrokers = append(cfg.KafkaBrokers, b)
			}
		}
	}
	return cfg
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// getBool accepts the strconv forms plus on/off.
func getBool(key string, fallback bool) bool {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	switch strings.ToLower(v) {
	case "on":
		return true
	case "off":
		return false
	}
	parsed, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return parsed
}

func getDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return parsed
}
