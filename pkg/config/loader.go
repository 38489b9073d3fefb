package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Load reads configs/config.yaml when present and overlays environment variables.
func Load() (*Config, error) {
	return load(viper.New())
}

func load(v *viper.Viper) (*Config, error) {
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./configs")
	v.AddConfigPath(".")
	v.AddConfigPath("/app/configs")

	setDefaults(v)

	v.SetEnvPrefix("APP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Allow common env vars without APP_ prefix for Docker/VM deploys
	v.BindEnv("http.port", "HTTP_PORT", "APP_HTTP_PORT")
	v.BindEnv("logging.level", "LOG_LEVEL", "APP_LOGGING_LEVEL")
	v.BindEnv("app.environment", "APP_ENVIRONMENT")
	v.BindEnv("storage.bucket", "S3_PERSISTENCE_BUCKET", "APP_STORAGE_BUCKET")
	v.BindEnv("storage.region", "S3_PERSISTENCE_REGION", "AWS_REGION", "APP_STORAGE_REGION")
	v.BindEnv("email.sendgrid_api_key", "SENDGRID_API_KEY", "APP_EMAIL_SENDGRID_API_KEY")
	v.BindEnv("redis.url", "REDIS_URL", "APP_REDIS_URL")
	v.BindEnv("nats.url", "NATS_URL", "APP_NATS_URL")
	v.BindEnv("vault.address", "VAULT_ADDR", "APP_VAULT_ADDRESS")
	v.BindEnv("vault.token", "VAULT_TOKEN", "APP_VAULT_TOKEN")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// Lists from the environment arrive comma separated, possibly padded.
	cfg.Skill.ApplicationIDs = splitList(strings.Join(cfg.Skill.ApplicationIDs, ","))
	cfg.Profile.ExtraAllowedHosts = splitList(strings.Join(cfg.Profile.ExtraAllowedHosts, ","))

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "dogwalk-skill")
	v.SetDefault("app.version", "v1.0.0")
	v.SetDefault("app.environment", "development")

	v.SetDefault("http.port", 3000)
	v.SetDefault("http.path", "/alexa")
	v.SetDefault("http.read_timeout", 10*time.Second)
	v.SetDefault("http.write_timeout", 10*time.Second)
	v.SetDefault("http.idle_timeout", 60*time.Second)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")

	v.SetDefault("skill.application_ids", []string{})
	v.SetDefault("skill.welcome_audio_key", "")

	v.SetDefault("email.provider", "sendgrid")
	v.SetDefault("email.from_email", "noreply@dogwalkers.example")
	v.SetDefault("email.from_name", "Dog Walkers")
	v.SetDefault("email.smtp_host", "localhost")
	v.SetDefault("email.smtp_port", 1025)

	v.SetDefault("appointment.subject", "Dog Walkers")
	v.SetDefault("appointment.guard_ttl", 10*time.Minute)

	v.SetDefault("storage.bucket", "")
	v.SetDefault("storage.region", "us-east-1")

	v.SetDefault("vault.sendgrid_path", "secret/data/sendgrid")

	v.SetDefault("profile.timeout", 5*time.Second)
	v.SetDefault("profile.extra_allowed_hosts", []string{})

	v.SetDefault("circuit_breaker.interval", 60*time.Second)
	v.SetDefault("circuit_breaker.timeout", 30*time.Second)
	v.SetDefault("circuit_breaker.failure_threshold", 5)
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
