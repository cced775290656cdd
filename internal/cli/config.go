package cli

import (
	"os"

	"github.com/castello/castello-go/internal/session"
)

// Config holds CLI configuration
type Config struct {
	ServerURL   string
	SessionFile string
	Output      string
	Verbose     bool
}

// DefaultConfig returns a Config with default values
func DefaultConfig() *Config {
	return &Config{
		ServerURL:   getEnvOrDefault("CASTELLO_SERVER", "http://localhost:8080"),
		SessionFile: getEnvOrDefault("CASTELLO_SESSION", session.DefaultPath()),
		Output:      "text",
		Verbose:     false,
	}
}

func getEnvOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
