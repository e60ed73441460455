package mcpserver

import (
	"log/slog"
	"os"
	"strconv"
)

// serverConfig holds all configurable MCP server defaults.
// Loaded once at startup from environment variables via loadConfig().
type serverConfig struct {
	// Generate tool defaults.
	Output     string
	Kubernetes bool
	Strict     bool
	StandAlone bool
}

// cfg is the active server configuration, initialized at package load time.
var cfg = loadConfig()

// loadConfig reads configuration from OPENAPI2JSONSCHEMA_* environment
// variables. Invalid values log a warning and fall back to the hardcoded
// default.
func loadConfig() *serverConfig {
	return &serverConfig{
		Output:     envString("OPENAPI2JSONSCHEMA_OUTPUT", "schemas"),
		Kubernetes: envBool("OPENAPI2JSONSCHEMA_KUBERNETES", false),
		Strict:     envBool("OPENAPI2JSONSCHEMA_STRICT", false),
		StandAlone: envBool("OPENAPI2JSONSCHEMA_STAND_ALONE", false),
	}
}

func envString(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		slog.Warn("invalid bool env var, using default", "key", key, "value", v, "default", fallback)
		return fallback
	}
	return b
}
