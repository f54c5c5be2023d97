package config

import (
	"testing"
	"time"
)

func TestEndpointsForKnownEnvironments(t *testing.T) {
	cases := []struct {
		env     Environment
		backend string
	}{
		{EnvLocal, "http://127.0.0.1:5006"},
		{EnvDevelopment, "https://dev-api.perfpulseai.com"},
		{EnvStaging, "https://staging-api.perfpulseai.com"},
		{EnvProduction, "https://api.perfpulseai.com"},
	}
	for _, tc := range cases {
		ep := EndpointsFor(tc.env)
		if ep.BackendURL != tc.backend {
			t.Errorf("EndpointsFor(%s).BackendURL = %q, want %q", tc.env, ep.BackendURL, tc.backend)
		}
	}
}

func TestEndpointsForUnknownFallsBackToLocal(t *testing.T) {
	ep := EndpointsFor(Environment("nonsense"))
	if ep.BackendURL != "http://127.0.0.1:5006" {
		t.Errorf("EndpointsFor(unknown) = %+v, want local endpoints", ep)
	}
}

func TestLoadDefaults(t *testing.T) {
	cfg := Load()
	if cfg.Port != "5006" {
		t.Errorf("Port = %q, want 5006", cfg.Port)
	}
	if cfg.ProxyTimeout != 5*time.Second {
		t.Errorf("ProxyTimeout = %v, want 5s", cfg.ProxyTimeout)
	}
	if cfg.EncryptCredentials {
		t.Error("EncryptCredentials should default to false")
	}
}

func TestGetBoolEnv(t *testing.T) {
	t.Setenv("AUTH_ENCRYPT_CREDENTIALS", "true")
	if !getBoolEnv("AUTH_ENCRYPT_CREDENTIALS", false) {
		t.Error("getBoolEnv() = false, want true")
	}
	t.Setenv("AUTH_ENCRYPT_CREDENTIALS", "not-a-bool")
	if getBoolEnv("AUTH_ENCRYPT_CREDENTIALS", false) {
		t.Error("getBoolEnv() should fall back on unparsable values")
	}
}
