package configs

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	kerrors "github.com/n8n-tools/n8n-export/internal/errors"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// DefaultOutputDir is where exported workflow files are written unless
// overridden with the --output flag.
const DefaultOutputDir = "n8n_workflows_export"

const defaultTimeoutSeconds = 60

// Settings holds everything the exporter reads from the environment.
type Settings struct {
	// BaseURL is the root of the n8n instance, always ending in "/".
	BaseURL string

	// APIKey is sent as the X-N8N-API-KEY header on every request.
	APIKey string

	// VerifyTLS is false only when VERIFY_TLS is "0", "false", or "no".
	VerifyTLS bool

	// Timeout applies per request, not to the whole run.
	Timeout time.Duration
}

// Load reads settings from the environment, after loading a .env file
// from the working directory if one exists. A missing .env is fine; a
// missing N8N_BASE_URL or N8N_API_KEY is not.
func Load() (*Settings, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("VERIFY_TLS", "true")
	v.SetDefault("HTTP_TIMEOUT", strconv.Itoa(defaultTimeoutSeconds))

	baseURL := strings.TrimSpace(v.GetString("N8N_BASE_URL"))
	if baseURL == "" {
		return nil, kerrors.ErrMissingBaseURL
	}
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}

	apiKey := strings.TrimSpace(v.GetString("N8N_API_KEY"))
	if apiKey == "" {
		return nil, kerrors.ErrMissingAPIKey
	}

	timeoutRaw := strings.TrimSpace(v.GetString("HTTP_TIMEOUT"))
	timeoutSeconds, err := strconv.Atoi(timeoutRaw)
	if err != nil {
		return nil, fmt.Errorf("invalid HTTP_TIMEOUT %q: %w", timeoutRaw, err)
	}

	return &Settings{
		BaseURL:   baseURL,
		APIKey:    apiKey,
		VerifyTLS: verifyTLS(v.GetString("VERIFY_TLS")),
		Timeout:   time.Duration(timeoutSeconds) * time.Second,
	}, nil
}

// verifyTLS interprets the VERIFY_TLS setting. Anything other than an
// explicit opt-out keeps certificate verification on.
func verifyTLS(value string) bool {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "0", "false", "no":
		return false
	}
	return true
}
