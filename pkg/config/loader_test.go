package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
)

func TestLoad_Defaults(t *testing.T) {
	// Arrange
	t.Setenv("SENDGRID_API_KEY", "")

	// Act
	cfg, err := load(viper.New())

	// Assert
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.HTTP.Port != 3000 {
		t.Errorf("expected port 3000, got %d", cfg.HTTP.Port)
	}
	if cfg.HTTP.Path != "/alexa" {
		t.Errorf("expected path /alexa, got %q", cfg.HTTP.Path)
	}
	if cfg.Email.Provider != "sendgrid" {
		t.Errorf("expected sendgrid provider, got %q", cfg.Email.Provider)
	}
	if cfg.Appointment.Subject != "Dog Walkers" {
		t.Errorf("unexpected subject %q", cfg.Appointment.Subject)
	}
	if cfg.Appointment.GuardTTL != 10*time.Minute {
		t.Errorf("expected 10m guard ttl, got %v", cfg.Appointment.GuardTTL)
	}
	if cfg.CircuitBreaker.FailureThreshold != 5 {
		t.Errorf("expected threshold 5, got %d", cfg.CircuitBreaker.FailureThreshold)
	}
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	// Arrange
	t.Setenv("S3_PERSISTENCE_BUCKET", "walk-audio")
	t.Setenv("SENDGRID_API_KEY", "SG.test")
	t.Setenv("HTTP_PORT", "8080")
	t.Setenv("REDIS_URL", "redis://localhost:6379/0")
	t.Setenv("APP_SKILL_APPLICATION_IDS", "amzn1.ask.skill.a, amzn1.ask.skill.b")
	t.Setenv("APP_PROFILE_EXTRA_ALLOWED_HOSTS", "localhost")

	// Act
	cfg, err := load(viper.New())

	// Assert
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Storage.Bucket != "walk-audio" {
		t.Errorf("expected bucket from env, got %q", cfg.Storage.Bucket)
	}
	if cfg.Email.SendGridAPIKey != "SG.test" {
		t.Errorf("expected sendgrid key from env, got %q", cfg.Email.SendGridAPIKey)
	}
	if cfg.HTTP.Port != 8080 {
		t.Errorf("expected port 8080, got %d", cfg.HTTP.Port)
	}
	if cfg.Redis.URL != "redis://localhost:6379/0" {
		t.Errorf("unexpected redis url %q", cfg.Redis.URL)
	}
	if len(cfg.Profile.ExtraAllowedHosts) != 1 || cfg.Profile.ExtraAllowedHosts[0] != "localhost" {
		t.Errorf("expected extra profile host, got %v", cfg.Profile.ExtraAllowedHosts)
	}
	if len(cfg.Skill.ApplicationIDs) != 2 || cfg.Skill.ApplicationIDs[1] != "amzn1.ask.skill.b" {
		t.Errorf("expected two application ids, got %v", cfg.Skill.ApplicationIDs)
	}
}
