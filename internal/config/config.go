package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

const (
	BackendPostgres = "postgres"
	BackendMemory   = "memory"
)

// Config holds application configuration
type Config struct {
	Port           string
	DBConn         string
	StorageBackend string
	LogLevel       string

	// Auth
	JWTSecret            string
	SessionTTL           time.Duration
	SessionPurgeSchedule string
	BcryptCost           int

	// AMQP
	AMQPURL      string
	AMQPExchange string
	AMQPQueue    string

	// SMTP
	SMTPHost     string
	SMTPPort     string
	SMTPUsername string
	SMTPPassword string
	SenderEmail  string

	// Chat assistant
	LLMBaseURL string
	LLMAPIKey  string
	LLMModel   string

	DefaultLocale string

	// values that were set but could not be parsed
	parseProblems []string
}

// NewConfig loads configuration from environment variables. A .env file in
// the working directory is read first when present; real environment
// variables win over it.
func NewConfig() (*Config, error) {
	_ = godotenv.Load()

	env := &envReader{}
	cfg := &Config{
		Port:           getEnv("PORT", "8080"),
		DBConn:         getEnv("DB_CONN", "host=localhost port=5432 user=finhealth password=finhealth dbname=finhealth sslmode=disable"),
		StorageBackend: getEnv("STORAGE_BACKEND", BackendPostgres),
		LogLevel:       getEnv("LOG_LEVEL", "INFO"),

		JWTSecret:            getEnv("JWT_SECRET", ""),
		SessionTTL:           env.duration("SESSION_TTL", 30*24*time.Hour),
		SessionPurgeSchedule: getEnv("SESSION_PURGE_SCHEDULE", "@hourly"),
		BcryptCost:           env.integer("BCRYPT_COST", 12),

		AMQPURL:      getEnv("AMQP_URL", ""),
		AMQPExchange: getEnv("AMQP_EXCHANGE", "finhealth"),
		AMQPQueue:    getEnv("AMQP_QUEUE", "analysis_saved"),

		SMTPHost:     getEnv("SMTP_HOST", ""),
		SMTPPort:     getEnv("SMTP_PORT", "587"),
		SMTPUsername: getEnv("SMTP_USERNAME", ""),
		SMTPPassword: getEnv("SMTP_PASSWORD", ""),
		SenderEmail:  getEnv("SENDER_EMAIL", ""),

		LLMBaseURL: getEnv("LLM_BASE_URL", "https://api.openai.com/v1"),
		LLMAPIKey:  getEnv("LLM_API_KEY", ""),
		LLMModel:   getEnv("LLM_MODEL", "gpt-4o-mini"),

		DefaultLocale: getEnv("DEFAULT_LOCALE", "zh"),

		parseProblems: env.problems,
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate reports every configuration problem at once.
func (c *Config) Validate() error {
	problems := append([]string(nil), c.parseProblems...)

	if port, err := strconv.Atoi(c.Port); err != nil {
		problems = append(problems, fmt.Sprintf("invalid port '%s': must be a number", c.Port))
	} else if port < 1 || port > 65535 {
		problems = append(problems, fmt.Sprintf("invalid port %d: must be between 1 and 65535", port))
	}

	switch c.StorageBackend {
	case BackendPostgres:
		if c.DBConn == "" {
			problems = append(problems, "DB_CONN is required for the postgres backend")
		}
	case BackendMemory:
	default:
		problems = append(problems, fmt.Sprintf("invalid storage backend '%s': must be %s or %s", c.StorageBackend, BackendPostgres, BackendMemory))
	}

	if c.JWTSecret == "" {
		problems = append(problems, "JWT_SECRET is required")
	}
	if c.SessionTTL < time.Minute {
		problems = append(problems, fmt.Sprintf("invalid session TTL %v: must be at least 1 minute", c.SessionTTL))
	}

	if c.BcryptCost != 0 && (c.BcryptCost < bcrypt.MinCost || c.BcryptCost > bcrypt.MaxCost) {
		problems = append(problems, fmt.Sprintf("invalid bcrypt cost %d: must be between %d and %d", c.BcryptCost, bcrypt.MinCost, bcrypt.MaxCost))
	}

	if c.AMQPURL != "" {
		if u, err := url.Parse(c.AMQPURL); err != nil {
			problems = append(problems, fmt.Sprintf("invalid AMQP URL '%s': %v", c.AMQPURL, err))
		} else if u.Scheme != "amqp" && u.Scheme != "amqps" {
			problems = append(problems, fmt.Sprintf("invalid AMQP URL scheme '%s': must be 'amqp' or 'amqps'", u.Scheme))
		}
		if c.AMQPExchange == "" || c.AMQPQueue == "" {
			problems = append(problems, "AMQP exchange and queue names are required when AMQP_URL is set")
		}
	}

	if c.SMTPHost != "" && c.SenderEmail == "" {
		problems = append(problems, "SENDER_EMAIL is required when SMTP_HOST is set")
	}

	if _, err := url.ParseRequestURI(c.LLMBaseURL); err != nil {
		problems = append(problems, fmt.Sprintf("invalid LLM base URL '%s'", c.LLMBaseURL))
	}

	switch strings.ToLower(c.DefaultLocale) {
	case "zh", "en":
	default:
		problems = append(problems, fmt.Sprintf("invalid default locale '%s': must be zh or en", c.DefaultLocale))
	}

	if len(problems) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(problems, "\n- "))
	}
	return nil
}

// MailEnabled reports whether outgoing mail is configured.
func (c *Config) MailEnabled() bool {
	return c.SMTPHost != "" && c.SenderEmail != ""
}

func getEnv(key, defaultVal string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultVal
}

// envReader parses typed variables and remembers the ones it could not
// parse, so Validate reports them instead of silently using defaults.
type envReader struct {
	problems []string
}

func (e *envReader) duration(key string, defaultVal time.Duration) time.Duration {
	value, exists := os.LookupEnv(key)
	if !exists || value == "" {
		return defaultVal
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		e.problems = append(e.problems, fmt.Sprintf("invalid %s '%s': must be a duration such as 720h", key, value))
		return defaultVal
	}
	return d
}

func (e *envReader) integer(key string, defaultVal int) int {
	value, exists := os.LookupEnv(key)
	if !exists || value == "" {
		return defaultVal
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		e.problems = append(e.problems, fmt.Sprintf("invalid %s '%s': must be a number", key, value))
		return defaultVal
	}
	return n
}
