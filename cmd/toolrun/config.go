package main

import (
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/effective-security/xlog"
)

// Provider names accepted by -provider.
const (
	providerGemini    = "gemini"
	providerAnthropic = "anthropic"
)

// providerConfig is the resolved model provider selection.
type providerConfig struct {
	name string
	key  string
}

// resolveConfig selects the provider and its API key. All env var values are
// passed in as parameters; env is only read in main().
func resolveConfig(providerFlag, apiKeyFlag, anthropicEnvKey, geminiEnvKey string) (providerConfig, error) {
	provider := providerFlag

	// Auto-detect from env vars if no flag.
	if provider == "" {
		hasAnthropic := anthropicEnvKey != ""
		hasGemini := geminiEnvKey != ""
		switch {
		case hasAnthropic && hasGemini:
			return providerConfig{}, errors.New("multiple API keys found (ANTHROPIC_API_KEY, GEMINI_API_KEY): use -provider flag to select")
		case hasAnthropic:
			provider = providerAnthropic
		case hasGemini:
			provider = providerGemini
		case apiKeyFlag != "":
			// A bare key defaults to Gemini.
			provider = providerGemini
		default:
			return providerConfig{}, errors.New("no API key found: set GEMINI_API_KEY or ANTHROPIC_API_KEY (or use -provider and -api-key flags)")
		}
	}

	// Explicit flag overrides env var.
	key := apiKeyFlag
	switch provider {
	case providerAnthropic:
		if key == "" {
			key = anthropicEnvKey
		}
		if key == "" {
			return providerConfig{}, errors.New("ANTHROPIC_API_KEY not set (use -api-key flag or environment variable)")
		}
	case providerGemini:
		if key == "" {
			key = geminiEnvKey
		}
		if key == "" {
			return providerConfig{}, errors.New("GEMINI_API_KEY not set (use -api-key flag or environment variable)")
		}
	default:
		return providerConfig{}, errors.Newf("unknown provider %q: must be %q or %q", provider, providerGemini, providerAnthropic)
	}
	return providerConfig{name: provider, key: key}, nil
}

// parseToolPatterns splits a comma-separated -tools value into glob
// patterns, dropping blanks.
func parseToolPatterns(s string) []string {
	var patterns []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			patterns = append(patterns, p)
		}
	}
	return patterns
}

// parseLogLevel maps a -log-level value to an xlog level.
func parseLogLevel(s string) (xlog.LogLevel, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "CRITICAL":
		return xlog.CRITICAL, nil
	case "ERROR":
		return xlog.ERROR, nil
	case "WARNING", "WARN":
		return xlog.WARNING, nil
	case "NOTICE":
		return xlog.NOTICE, nil
	case "INFO", "":
		return xlog.INFO, nil
	case "DEBUG":
		return xlog.DEBUG, nil
	case "TRACE":
		return xlog.TRACE, nil
	default:
		return xlog.INFO, errors.Newf("unknown log level %q", s)
	}
}
