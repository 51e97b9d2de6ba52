package config

import (
	_ "embed"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

//go:embed thresholds.yaml
var thresholdsYAML []byte

type Config struct {
	Storage    StorageConfig
	Extractor  ExtractorConfig
	Web        WebConfig
	Thresholds ThresholdsConfig
}

type StorageConfig struct {
	DataDir     string // directory for the file blob store (default ./data)
	DatabaseURL string // when set, blobs persist to PostgreSQL instead of disk
}

type ExtractorConfig struct {
	URL string // face/embedding service base URL, defaults to http://localhost:8000
}

type WebConfig struct {
	Host string
	Port int
}

type ThresholdsConfig struct {
	Matching MatchingThresholds `yaml:"matching"`
}

// MatchingThresholds holds the per-signal match thresholds. They are
// independent tunables, not derived from each other.
type MatchingThresholds struct {
	Face         float64 `yaml:"face"`
	Embedding    float64 `yaml:"embedding"`
	Pixel        float64 `yaml:"pixel"`
	CheckoutGate float64 `yaml:"checkout_gate"`
}

// envInt reads an environment variable and parses it as a positive integer.
// Returns the default value if the env var is unset, empty, or invalid.
func envInt(key string, defaultVal int) int {
	s := os.Getenv(key)
	if s == "" {
		return defaultVal
	}
	if n, err := strconv.Atoi(s); err == nil && n > 0 {
		return n
	}
	return defaultVal
}

func envString(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func Load() *Config {
	var thresholds ThresholdsConfig
	if err := yaml.Unmarshal(thresholdsYAML, &thresholds); err != nil {
		// This is an embedded file so this error should never happen in practice
		panic("failed to unmarshal embedded thresholds.yaml: " + err.Error())
	}

	return &Config{
		Storage: StorageConfig{
			DataDir:     envString("KIOSK_DATA_DIR", "data"),
			DatabaseURL: os.Getenv("DATABASE_URL"),
		},
		Extractor: ExtractorConfig{
			URL: os.Getenv("EXTRACTOR_URL"),
		},
		Web: WebConfig{
			Host: envString("WEB_HOST", "0.0.0.0"),
			Port: envInt("WEB_PORT", 8080),
		},
		Thresholds: thresholds,
	}
}
