// internal/config/config.go
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Environment string
	Server      ServerConfig
	NocoDB      NocoDBConfig
	Chatwoot    ChatwootConfig
	Admin       AdminConfig
	I18n        I18nConfig
	Frontend    FrontendConfig
}

type ServerConfig struct {
	Port         string
	Host         string
	ReadTimeout  int
	WriteTimeout int
	IdleTimeout  int
}

type NocoDBConfig struct {
	BaseURL       string
	Token         string
	AdvisorsTable string
	PricesTable   string
	Timeout       int // in seconds
	CacheTTL      int // advisor directory cache, in seconds
}

type ChatwootConfig struct {
	BaseURL   string
	APIToken  string
	AccountID string
	Timeout   int // in seconds
	// AgentMap maps NocoDB advisor IDs to Chatwoot agent IDs
	// ("1:6,2:10,3:9"). Conversations are assigned through it.
	AgentMap map[int]int
}

type AdminConfig struct {
	APIKey string
}

type I18nConfig struct {
	DefaultLocale string
	LocalesPath   string
}

type FrontendConfig struct {
	BaseURL         string
	AllowedOrigins  []string
	DefaultWhatsapp string
}

func Load() (*Config, error) {
	// Load .env file if it exists
	godotenv.Load()

	config := &Config{
		Environment: getEnv("ENVIRONMENT", "development"),
		Server: ServerConfig{
			Port:         getEnv("SERVER_PORT", "8080"),
			Host:         getEnv("SERVER_HOST", "localhost"),
			ReadTimeout:  getEnvAsInt("SERVER_READ_TIMEOUT", 15),
			WriteTimeout: getEnvAsInt("SERVER_WRITE_TIMEOUT", 15),
			IdleTimeout:  getEnvAsInt("SERVER_IDLE_TIMEOUT", 60),
		},
		NocoDB: NocoDBConfig{
			BaseURL:       getEnv("NOCODB_BASE_URL", "http://localhost:8090"),
			Token:         getEnv("NOCODB_TOKEN", ""),
			AdvisorsTable: getEnv("NOCODB_ADVISORS_TABLE", "mk3y12zsd2xgngl"),
			PricesTable:   getEnv("NOCODB_PRICES_TABLE", "m8hyj9f4y3ffe9o"),
			Timeout:       getEnvAsInt("NOCODB_TIMEOUT", 10),
			CacheTTL:      getEnvAsInt("NOCODB_CACHE_TTL", 300),
		},
		Chatwoot: ChatwootConfig{
			BaseURL:   getEnv("CHATWOOT_BASE_URL", ""),
			APIToken:  getEnv("CHATWOOT_API_TOKEN", ""),
			AccountID: getEnv("CHATWOOT_ACCOUNT_ID", "1"),
			Timeout:   getEnvAsInt("CHATWOOT_TIMEOUT", 10),
			AgentMap:  parseAgentMap(getEnv("CHATWOOT_AGENT_MAP", "")),
		},
		Admin: AdminConfig{
			APIKey: getEnv("ADMIN_API_KEY", ""),
		},
		I18n: I18nConfig{
			DefaultLocale: getEnv("DEFAULT_LOCALE", "es"),
			LocalesPath:   getEnv("LOCALES_PATH", "./internal/i18n/locales"),
		},
		Frontend: FrontendConfig{
			BaseURL:         getEnv("FRONTEND_BASE_URL", "http://localhost:5173"),
			AllowedOrigins:  splitAndTrim(getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173")),
			DefaultWhatsapp: getEnv("DEFAULT_WHATSAPP", "3024894085"),
		},
	}

	return config, config.Validate()
}

func (c *Config) Validate() error {
	if c.NocoDB.Token == "" && c.Environment == "production" {
		return fmt.Errorf("NocoDB token is required in production")
	}

	if c.Admin.APIKey == "" && c.Environment == "production" {
		return fmt.Errorf("admin API key is required in production")
	}

	return nil
}

// parseAgentMap parses "nocodbID:chatwootID" pairs separated by commas.
// Malformed pairs are skipped.
func parseAgentMap(raw string) map[int]int {
	agents := make(map[int]int)
	for _, pair := range strings.Split(raw, ",") {
		parts := strings.SplitN(strings.TrimSpace(pair), ":", 2)
		if len(parts) != 2 {
			continue
		}
		nocodbID, err1 := strconv.Atoi(strings.TrimSpace(parts[0]))
		chatwootID, err2 := strconv.Atoi(strings.TrimSpace(parts[1]))
		if err1 == nil && err2 == nil {
			agents[nocodbID] = chatwootID
		}
	}
	return agents
}

func splitAndTrim(raw string) []string {
	var out []string
	for _, s := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(s); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

// Helper functions
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(strings.ToLower(value)); err == nil {
			return boolValue
		}
	}
	return defaultValue
}
