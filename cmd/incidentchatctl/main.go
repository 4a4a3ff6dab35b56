package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/incidentchat/incidentchat/internal/cli/incidentchatctl"
)

func main() {
	_ = godotenv.Load()

	options := incidentchatctl.Options{
		BaseURL:  envOr("INCIDENTCHAT_API_URL", "http://localhost:8080"),
		APIKey:   strings.TrimSpace(os.Getenv("INCIDENTCHAT_API_KEY")),
		ClientID: strings.TrimSpace(os.Getenv("INCIDENTCHAT_CLIENT_ID")),
		Timeout:  parseDurationWithDefault(strings.TrimSpace(os.Getenv("INCIDENTCHAT_CLI_TIMEOUT")), 30*time.Second),
		Stdout:   os.Stdout,
		Stderr:   os.Stderr,
	}

	root := incidentchatctl.NewRootCommand(options)
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func envOr(key, fallback string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return fallback
}

func parseDurationWithDefault(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(raw)
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "invalid INCIDENTCHAT_CLI_TIMEOUT %q; using %s\n", raw, fallback)
		return fallback
	}
	return parsed
}
