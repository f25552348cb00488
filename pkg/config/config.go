package config

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Capability names a service surface that a process can expose
type Capability string

const (
	CapabilityInsights Capability = "insights"
	CapabilityQnA      Capability = "qna"
)

// Supported model providers
const (
	ProviderGroq      = "groq"
	ProviderOpenAI    = "openai"
	ProviderAnthropic = "anthropic"
	ProviderGemini    = "gemini"
	ProviderTGI       = "tgi"
)

// defaultModels is used when LLM_MODEL is not set
var defaultModels = map[string]string{
	ProviderGroq:      "llama-3.1-8b-instant",
	ProviderOpenAI:    "gpt-4o-mini",
	ProviderAnthropic: "claude-haiku-4-5",
	ProviderGemini:    "gemini-2.0-flash",
	ProviderTGI:       "mistralai/Mistral-7B-Instruct-v0.2",
}

// Config holds application configuration
type Config struct {
	Server  ServerConfig  `envconfig:"SERVER"`
	Service ServiceConfig `envconfig:"SERVICE"`
	Swagger SwaggerConfig `envconfig:"SWAGGER"`
	LLM     LLMConfig     `envconfig:"LLM"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host            string        `envconfig:"HOST" default:"0.0.0.0"`
	Port            string        `envconfig:"PORT" default:"8080"`
	Environment     string        `envconfig:"ENVIRONMENT" default:"development"`
	AllowedOrigins  []string      `envconfig:"ALLOWED_ORIGINS" default:"*"`
	ShutdownTimeout time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"10s"`
	BodyLimit       string        `envconfig:"BODY_LIMIT" default:"2M"`
}

// ServiceConfig selects which capabilities this process serves
type ServiceConfig struct {
	Capabilities []string `envconfig:"CAPABILITIES" default:"insights,qna"`
}

// SwaggerConfig toggles the API docs route
type SwaggerConfig struct {
	Enabled bool `envconfig:"ENABLED" default:"true"`
}

// LLMConfig holds model invocation settings. Read once at start and shared by all requests.
type LLMConfig struct {
	Provider       string        `envconfig:"PROVIDER" default:"groq"`
	Model          string        `envconfig:"MODEL"`
	APIKey         string        `envconfig:"API_KEY"`
	BaseURL        string        `envconfig:"BASE_URL"`
	Timeout        time.Duration `envconfig:"TIMEOUT" default:"60s"`
	TimeoutRetries int           `envconfig:"TIMEOUT_RETRIES" default:"1"`
	MaxInputChars  int           `envconfig:"MAX_INPUT_CHARS" default:"24000"`
	MaxTokens      int           `envconfig:"MAX_TOKENS" default:"512"`
	Temperature    float64       `envconfig:"TEMPERATURE" default:"0"`
	MaxConcurrency int           `envconfig:"MAX_CONCURRENCY" default:"4"`
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if exists (ignore error if file doesn't exist)
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found, using environment variables or defaults")
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to read environment: %w", err)
	}

	cfg.normalize()

	// Validate required fields
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) normalize() {
	c.LLM.Provider = strings.ToLower(strings.TrimSpace(c.LLM.Provider))
	c.LLM.Model = strings.TrimSpace(c.LLM.Model)
	if c.LLM.Model == "" {
		c.LLM.Model = defaultModels[c.LLM.Provider]
	}
	c.LLM.APIKey = strings.TrimSpace(c.LLM.APIKey)
	c.LLM.BaseURL = strings.TrimRight(strings.TrimSpace(c.LLM.BaseURL), "/")

	caps := make([]string, 0, len(c.Service.Capabilities))
	for _, name := range c.Service.Capabilities {
		name = strings.ToLower(strings.TrimSpace(name))
		if name != "" {
			caps = append(caps, name)
		}
	}
	c.Service.Capabilities = caps
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if _, ok := defaultModels[c.LLM.Provider]; !ok {
		return fmt.Errorf("LLM_PROVIDER %q is not supported", c.LLM.Provider)
	}
	if c.LLM.APIKey == "" && c.LLM.Provider != ProviderTGI {
		return fmt.Errorf("LLM_API_KEY is required for provider %s", c.LLM.Provider)
	}
	if c.LLM.Provider == ProviderTGI && c.LLM.BaseURL == "" {
		return fmt.Errorf("LLM_BASE_URL is required for provider %s", ProviderTGI)
	}
	if c.LLM.Temperature < 0 || c.LLM.Temperature > 1 {
		return fmt.Errorf("LLM_TEMPERATURE must be between 0.0 and 1.0, got %v", c.LLM.Temperature)
	}
	if c.LLM.Timeout <= 0 {
		return fmt.Errorf("LLM_TIMEOUT must be positive")
	}
	if c.LLM.TimeoutRetries < 0 {
		return fmt.Errorf("LLM_TIMEOUT_RETRIES must not be negative")
	}
	if c.LLM.MaxInputChars <= 0 {
		return fmt.Errorf("LLM_MAX_INPUT_CHARS must be positive")
	}
	if c.LLM.MaxTokens <= 0 {
		return fmt.Errorf("LLM_MAX_TOKENS must be positive")
	}
	if c.LLM.MaxConcurrency <= 0 {
		return fmt.Errorf("LLM_MAX_CONCURRENCY must be positive")
	}
	if len(c.Service.Capabilities) == 0 {
		return fmt.Errorf("SERVICE_CAPABILITIES must name at least one capability")
	}
	for _, name := range c.Service.Capabilities {
		switch Capability(name) {
		case CapabilityInsights, CapabilityQnA:
		default:
			return fmt.Errorf("SERVICE_CAPABILITIES: unknown capability %q", name)
		}
	}
	return nil
}

// Enabled reports whether the process serves the given capability
func (c *Config) Enabled(capability Capability) bool {
	for _, name := range c.Service.Capabilities {
		if Capability(name) == capability {
			return true
		}
	}
	return false
}

// IsProduction reports whether the server runs in production mode
func (c *Config) IsProduction() bool {
	return c.Server.Environment == "production"
}

// GetServerAddr returns the listen address
func (c *Config) GetServerAddr() string {
	return fmt.Sprintf("%s:%s", c.Server.Host, c.Server.Port)
}
