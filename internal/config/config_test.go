package config

import (
	"os"
	"strings"
	"testing"
	"time"
)

var configKeys = []string{
	"MG_USERNAME", "MG_PASSWORD", "PORT", "MG_API_URL", "MG_TIMEOUT",
	"MG_MOCK_API", "SLACK_SIGNING_SECRET", "OTEL_EXPORTER_OTLP_ENDPOINT", "OTEL_SERVICE_NAME",
}

// clearEnv unsets every key Load reads; t.Setenv restores them after the test.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range configKeys {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("MG_USERNAME", "gavin")
	t.Setenv("MG_PASSWORD", "secret")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.Port != "8999" {
		t.Errorf("Port = %q; want 8999", cfg.Port)
	}
	if cfg.APIURL != "http://version1.api.memegenerator.net" {
		t.Errorf("APIURL = %q", cfg.APIURL)
	}
	if cfg.Timeout != 10*time.Second {
		t.Errorf("Timeout = %v; want 10s", cfg.Timeout)
	}
	if cfg.ServiceName != "memerelay" {
		t.Errorf("ServiceName = %q", cfg.ServiceName)
	}
}

func TestLoad_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("MG_USERNAME", "gavin")
	t.Setenv("MG_PASSWORD", "secret")
	t.Setenv("PORT", "3000")
	t.Setenv("MG_API_URL", "http://localhost:9000")
	t.Setenv("MG_TIMEOUT", "250ms")
	t.Setenv("MG_MOCK_API", "true")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.Port != "3000" || cfg.APIURL != "http://localhost:9000" {
		t.Errorf("unexpected cfg: %+v", cfg)
	}
	if cfg.Timeout != 250*time.Millisecond {
		t.Errorf("Timeout = %v; want 250ms", cfg.Timeout)
	}
	if !cfg.MockAPI {
		t.Errorf("MockAPI = false; want true")
	}
}

func TestLoad_Invalid(t *testing.T) {
	cases := []struct {
		name string
		env  map[string]string
		want string
	}{
		{"missing username", map[string]string{"MG_USERNAME": "", "MG_PASSWORD": "p"}, "Username"},
		{"missing password", map[string]string{"MG_USERNAME": "u", "MG_PASSWORD": ""}, "Password"},
		{"bad port", map[string]string{"MG_USERNAME": "u", "MG_PASSWORD": "p", "PORT": "http"}, "Port"},
		{"bad url", map[string]string{"MG_USERNAME": "u", "MG_PASSWORD": "p", "MG_API_URL": "not a url"}, "APIURL"},
		{"zero timeout", map[string]string{"MG_USERNAME": "u", "MG_PASSWORD": "p", "MG_TIMEOUT": "0s"}, "Timeout"},
		{"bad timeout", map[string]string{"MG_USERNAME": "u", "MG_PASSWORD": "p", "MG_TIMEOUT": "soon"}, "Timeout"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tc.env {
				t.Setenv(k, v)
			}
			_, err := Load()
			if err == nil {
				t.Fatalf("Load() error = nil; want error mentioning %s", tc.want)
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Errorf("Load() error = %v; want mention of %s", err, tc.want)
			}
		})
	}
}
