package main

import (
	"testing"

	"github.com/screentime/screentime-api/internal/config"
)

func TestAdminSecretPrefersHash(t *testing.T) {
	cfg := &config.Config{InitialAdminPassword: "plain-password", InitialAdminPasswordHash: "$2a$10$abc"}
	if got := adminSecret(cfg); got != "$2a$10$abc" {
		t.Fatalf("expected hash, got %q", got)
	}

	cfg.InitialAdminPasswordHash = ""
	if got := adminSecret(cfg); got != "plain-password" {
		t.Fatalf("expected password, got %q", got)
	}
}
