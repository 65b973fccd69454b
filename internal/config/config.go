package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config is the process configuration, assembled once at startup and passed
// into constructors explicitly. Business logic never reads the environment.
type Config struct {
	Host   string
	Port   int
	LogDir string

	// Balance provider.
	TokenAPIBaseURL string
	GraphAPIKey     string

	// Language model.
	ModelProvider string
	ModelAPIKey   string
	ModelBaseURL  string
	ModelName     string
}

var validProviders = map[string]struct{}{
	"openai":    {},
	"anthropic": {},
	"gemini":    {},
	"rules":     {},
}

// Load builds the configuration from the environment. A .env file in the
// working directory (or the one named by envFile) is loaded first when
// present; real environment variables win over file values.
func Load(envFile string) Config {
	if envFile != "" {
		_ = godotenv.Load(envFile)
	} else {
		_ = godotenv.Load()
	}

	return Config{
		Host:            getenv("HOST", "127.0.0.1"),
		Port:            getenvInt("PORT", 8000),
		LogDir:          getenv("LOG_DIR", "logs"),
		TokenAPIBaseURL: os.Getenv("TOKEN_API_BASE_URL"),
		GraphAPIKey:     os.Getenv("GRAPH_API_KEY"),
		ModelProvider:   strings.ToLower(getenv("MODEL_PROVIDER", "openai")),
		ModelAPIKey:     firstNonEmpty(os.Getenv("MODEL_API_KEY"), os.Getenv("OPENAI_API_KEY")),
		ModelBaseURL:    os.Getenv("MODEL_BASE_URL"),
		ModelName:       os.Getenv("MODEL_NAME"),
	}
}

// Validate rejects configurations the server cannot start with. Missing
// model credentials are not checked here; the core surfaces those as a
// distinct configuration error.
func (c Config) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid port %d", c.Port)
	}
	if _, ok := validProviders[c.ModelProvider]; !ok {
		return fmt.Errorf("unsupported model provider %q (expected openai, anthropic, gemini or rules)", c.ModelProvider)
	}
	return nil
}

func getenv(key, fallback string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return fallback
}

func getenvInt(key string, fallback int) int {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if strings.TrimSpace(value) != "" {
			return value
		}
	}
	return ""
}
