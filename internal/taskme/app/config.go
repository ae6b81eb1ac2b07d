package app

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/aussiebroadwan/taskme/pkg/httpx"
	"github.com/aussiebroadwan/taskme/pkg/llm"
	"github.com/aussiebroadwan/taskme/pkg/mailx"
)

// DefaultJWTSecret is the placeholder secret. Production refuses to start with it.
const DefaultJWTSecret = "CHANGE-ME-IN-PRODUCTION"

var (
	ErrInsecureSecret    = errors.New("JWT_SECRET_KEY must be set in production")
	ErrUnsupportedDBURL  = errors.New("DATABASE_URL must be a sqlite URL or file path")
	ErrInvalidPort       = errors.New("PORT must be between 1 and 65535")
	ErrInvalidTokenTTL   = errors.New("JWT_EXPIRE_MINUTES must be positive")
	ErrInvalidVerifyTTL  = errors.New("EMAIL_VERIFICATION_EXPIRE_HOURS must be positive")
	ErrInvalidLLMDefault = errors.New("LLM_PROVIDER must be openai or anthropic")
)

type Config struct {
	Env       string // development, production (default: development)
	LogLevel  string // debug, info, warn, error (default: info)
	LogFormat string // json, text (default: json)

	Port                int           // HTTP listen port (default: 8000)
	ShutdownGracePeriod time.Duration // Graceful shutdown timeout (default: 10s)

	DatabaseURL string // as given, kept for logging
	DatabaseDSN string // sqlite DSN derived from DatabaseURL
	PepperFile  string // Optional: pepper mixed into password hashes

	JWTSecret          string
	JWTAlgorithm       string        // HS256, HS384, HS512 (default: HS256)
	AccessTokenTTL     time.Duration // JWT_EXPIRE_MINUTES (default: 24h)
	VerificationTTL    time.Duration // EMAIL_VERIFICATION_EXPIRE_HOURS (default: 24h)
	FrontendURL        string        // CORS origin, redirect and share link base
	PublicURL          string        // base of links that point back at this API
	CORSAllowedOrigins []string      // extra origins on top of FrontendURL

	LLM  llm.Config
	Mail mailx.Config

	RateLimits httpx.RateLimits
	EnableDocs bool
}

// LoadConfig reads a .env file (if any) and then the process environment.
// Variables already set in the environment win over the file.
func LoadConfig() (*Config, error) {
	_ = godotenv.Load(getEnvOrDefault("ENV_FILE", ".env"))

	env := getEnvOrDefault("ENV", "development")
	if os.Getenv("RAILWAY_ENVIRONMENT") != "" {
		env = "production"
	}

	cfg := &Config{
		Env:                 env,
		LogLevel:            getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:           getEnvOrDefault("LOG_FORMAT", "json"),
		Port:                getEnvIntOrDefault("PORT", 8000),
		ShutdownGracePeriod: getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
		DatabaseURL:         getEnvOrDefault("DATABASE_URL", "sqlite:///./taskme.db"),
		PepperFile:          os.Getenv("TASKME_PEPPER_FILE"),

		JWTSecret:       getEnvOrDefault("JWT_SECRET_KEY", DefaultJWTSecret),
		JWTAlgorithm:    getEnvOrDefault("JWT_ALGORITHM", "HS256"),
		AccessTokenTTL:  time.Duration(getEnvIntOrDefault("JWT_EXPIRE_MINUTES", 1440)) * time.Minute,
		VerificationTTL: time.Duration(getEnvIntOrDefault("EMAIL_VERIFICATION_EXPIRE_HOURS", 24)) * time.Hour,
		FrontendURL:     strings.TrimSuffix(getEnvOrDefault("FRONTEND_URL", "http://localhost:5173"), "/"),
		PublicURL:       strings.TrimSuffix(getEnvOrDefault("PUBLIC_URL", "http://localhost:8000"), "/"),

		LLM: llm.Config{
			DefaultProvider: getEnvOrDefault("LLM_PROVIDER", string(llm.ProviderOpenAI)),
			OpenAIKey:       os.Getenv("OPENAI_API_KEY"),
			OpenAIModel:     getEnvOrDefault("OPENAI_MODEL", "gpt-4o"),
			AnthropicKey:    os.Getenv("ANTHROPIC_API_KEY"),
			AnthropicModel:  getEnvOrDefault("ANTHROPIC_MODEL", "claude-sonnet-4-20250514"),
		},
		Mail: mailx.Config{
			From:         os.Getenv("SMTP_FROM_EMAIL"),
			ResendAPIKey: os.Getenv("RESEND_API_KEY"),
			SMTPHost:     getEnvOrDefault("SMTP_HOST", "smtp.gmail.com"),
			SMTPPort:     getEnvIntOrDefault("SMTP_PORT", 587),
			SMTPUser:     os.Getenv("SMTP_USER"),
			SMTPPassword: os.Getenv("SMTP_PASSWORD"),
		},
	}

	for _, o := range strings.Split(os.Getenv("CORS_ALLOWED_ORIGINS"), ",") {
		if o = strings.TrimSuffix(strings.TrimSpace(o), "/"); o != "" {
			cfg.CORSAllowedOrigins = append(cfg.CORSAllowedOrigins, o)
		}
	}

	dsn, err := SQLiteDSN(cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}
	cfg.DatabaseDSN = dsn

	if cfg.RateLimits, err = loadRateLimits(); err != nil {
		return nil, err
	}

	cfg.EnableDocs = getEnvBoolOrDefault("ENABLE_DOCS", !cfg.IsProduction())

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// IsProduction reports whether production hardening applies.
func (c *Config) IsProduction() bool {
	switch strings.ToLower(c.Env) {
	case "production", "prod":
		return true
	}
	return false
}

// Origins is the full CORS allow list: the frontend, the local dev server
// and any extras, without duplicates.
func (c *Config) Origins() []string {
	seen := map[string]struct{}{}
	var out []string
	for _, o := range append([]string{c.FrontendURL, "http://localhost:5173"}, c.CORSAllowedOrigins...) {
		if _, ok := seen[o]; ok || o == "" {
			continue
		}
		seen[o] = struct{}{}
		out = append(out, o)
	}
	return out
}

func (c *Config) Validate() error {
	if c.IsProduction() && (c.JWTSecret == "" || c.JWTSecret == DefaultJWTSecret) {
		return ErrInsecureSecret
	}
	if c.Port < 1 || c.Port > 65535 {
		return ErrInvalidPort
	}
	if c.AccessTokenTTL <= 0 {
		return ErrInvalidTokenTTL
	}
	if c.VerificationTTL <= 0 {
		return ErrInvalidVerifyTTL
	}
	if !llm.Provider(strings.ToLower(strings.TrimSpace(c.LLM.DefaultProvider))).Valid() {
		return ErrInvalidLLMDefault
	}
	return nil
}

// SQLiteDSN turns DATABASE_URL into a DSN for the sqlite driver. Accepted
// forms are sqlite:///relative/or/absolute, sqlite://path, file: DSNs and
// bare paths.
func SQLiteDSN(raw string) (string, error) {
	raw = strings.TrimSpace(raw)

	var path string
	switch {
	case raw == "":
		return "", ErrUnsupportedDBURL
	case strings.HasPrefix(raw, "sqlite:///"):
		path = strings.TrimPrefix(raw, "sqlite:///")
	case strings.HasPrefix(raw, "sqlite://"):
		path = strings.TrimPrefix(raw, "sqlite://")
	case strings.HasPrefix(raw, "file:"), raw == ":memory:":
		return raw, nil
	case strings.Contains(raw, "://"):
		return "", fmt.Errorf("%w: %q", ErrUnsupportedDBURL, schemeOf(raw))
	default:
		path = raw
	}

	if path == "" {
		return "", ErrUnsupportedDBURL
	}
	if path == ":memory:" {
		return path, nil
	}
	return fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)&_pragma=foreign_keys(1)", path), nil
}

func schemeOf(u string) string {
	if i := strings.Index(u, "://"); i >= 0 {
		return u[:i]
	}
	return u
}

func loadRateLimits() (httpx.RateLimits, error) {
	rl := httpx.DefaultRateLimits()
	profiles := []struct {
		key string
		dst *httpx.RateLimitConfig
	}{
		{"RATE_LIMIT_STRICT", &rl.Strict},
		{"RATE_LIMIT_MODERATE", &rl.Moderate},
		{"RATE_LIMIT_LENIENT", &rl.Lenient},
		{"RATE_LIMIT_PUBLIC", &rl.Public},
		{"RATE_LIMIT_NOTIFY", &rl.Notify},
	}
	for _, p := range profiles {
		v, err := httpx.ParseRateLimit(os.Getenv(p.key), *p.dst)
		if err != nil {
			return rl, fmt.Errorf("%s: %w", p.key, err)
		}
		*p.dst = v
	}
	return rl, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if intValue, err := strconv.Atoi(value); err == nil {
		return intValue
	}

	return defaultValue
}

func getEnvBoolOrDefault(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if b, err := strconv.ParseBool(value); err == nil {
		return b
	}

	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	// Try parsing as duration (e.g., "1h", "30m", "90s")
	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}

	// Try parsing as integer seconds
	if seconds, err := strconv.Atoi(value); err == nil {
		return time.Duration(seconds) * time.Second
	}

	return defaultValue
}
