package config

import "testing"

func TestLoadEmbeddedThresholds(t *testing.T) {
	cfg := Load()

	m := cfg.Thresholds.Matching
	if m.Face != 0.6 {
		t.Errorf("face threshold = %f; want 0.6", m.Face)
	}
	if m.Embedding != 0.75 {
		t.Errorf("embedding threshold = %f; want 0.75", m.Embedding)
	}
	if m.Pixel != 0.8 {
		t.Errorf("pixel threshold = %f; want 0.8", m.Pixel)
	}
	if m.CheckoutGate != 0.7 {
		t.Errorf("checkout gate threshold = %f; want 0.7", m.CheckoutGate)
	}
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("KIOSK_DATA_DIR", "")
	t.Setenv("WEB_PORT", "")
	t.Setenv("WEB_HOST", "")

	cfg := Load()
	if cfg.Storage.DataDir != "data" {
		t.Errorf("data dir = %q; want data", cfg.Storage.DataDir)
	}
	if cfg.Web.Port != 8080 {
		t.Errorf("port = %d; want 8080", cfg.Web.Port)
	}
	if cfg.Web.Host != "0.0.0.0" {
		t.Errorf("host = %q; want 0.0.0.0", cfg.Web.Host)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("KIOSK_DATA_DIR", "/tmp/kiosk")
	t.Setenv("WEB_PORT", "9090")
	t.Setenv("EXTRACTOR_URL", "http://extractor:8000")

	cfg := Load()
	if cfg.Storage.DataDir != "/tmp/kiosk" {
		t.Errorf("data dir = %q; want /tmp/kiosk", cfg.Storage.DataDir)
	}
	if cfg.Web.Port != 9090 {
		t.Errorf("port = %d; want 9090", cfg.Web.Port)
	}
	if cfg.Extractor.URL != "http://extractor:8000" {
		t.Errorf("extractor url = %q", cfg.Extractor.URL)
	}
}

func TestEnvIntInvalid(t *testing.T) {
	t.Setenv("WEB_PORT", "not-a-number")
	cfg := Load()
	if cfg.Web.Port != 8080 {
		t.Errorf("invalid port should fall back to default, got %d", cfg.Web.Port)
	}

	t.Setenv("WEB_PORT", "-1")
	cfg = Load()
	if cfg.Web.Port != 8080 {
		t.Errorf("negative port should fall back to default, got %d", cfg.Web.Port)
	}
}
