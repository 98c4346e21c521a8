package config

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/gregtusar/exotics/pkg/models"
	"github.com/gregtusar/exotics/pkg/secrets"
	"github.com/gregtusar/exotics/pkg/valuer"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Auth      AuthConfig      `mapstructure:"auth"`
	Valuation ValuationConfig `mapstructure:"valuation"`
	Logging   LoggingConfig   `mapstructure:"logging"`
	GCP       GCPConfig       `mapstructure:"gcp"`
}

type ServerConfig struct {
	Port      int     `mapstructure:"port"`
	RateLimit float64 `mapstructure:"rate_limit"` // requests per second, 0 disables
	Burst     int     `mapstructure:"burst"`
}

type AuthConfig struct {
	// SigningKey enables bearer token auth on the API when non-empty.
	SigningKey string        `mapstructure:"signing_key"`
	TokenTTL   time.Duration `mapstructure:"token_ttl"`
	Issuer     string        `mapstructure:"issuer"`
}

type ValuationConfig struct {
	Path      []float64             `mapstructure:"path"`
	Workers   int                   `mapstructure:"workers"`
	Portfolio []models.ContractSpec `mapstructure:"portfolio"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

type GCPConfig struct {
	ProjectID       string              `mapstructure:"project_id"`
	UseSecrets      bool                `mapstructure:"use_secrets"`
	CredentialsFile string              `mapstructure:"credentials_file"`
	SecretNames     secrets.SecretNames `mapstructure:"secret_names"`
}

func Load(configPath string) (*Config, error) {
	// .env is optional
	_ = godotenv.Load()

	v := viper.New()

	setDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
		v.AddConfigPath("/etc/exotics")
	}

	v.SetEnvPrefix("VALUER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found; use defaults and environment
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	if err := overrideFromEnv(&config); err != nil {
		return nil, err
	}

	if len(config.Valuation.Portfolio) == 0 {
		config.Valuation.Portfolio = valuer.SamplePortfolio()
	}

	if config.GCP.UseSecrets && config.GCP.ProjectID != "" {
		ctx := context.Background()
		logger := logrus.New()
		if err := loadSecretsFromGCP(ctx, &config, logger); err != nil {
			return nil, fmt.Errorf("error loading secrets from GCP: %w", err)
		}
	}

	return &config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.rate_limit", 20.0)
	v.SetDefault("server.burst", 40)

	v.SetDefault("auth.signing_key", "")
	v.SetDefault("auth.token_ttl", "24h")
	v.SetDefault("auth.issuer", "exotics-valuer")

	v.SetDefault("valuation.path", valuer.SamplePath)
	v.SetDefault("valuation.workers", 0)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")

	v.SetDefault("gcp.use_secrets", false)
	v.SetDefault("gcp.project_id", "")
	v.SetDefault("gcp.credentials_file", "")

	secretNames := secrets.DefaultSecretNames()
	v.SetDefault("gcp.secret_names.signing_key", secretNames.SigningKey)
}

func overrideFromEnv(config *Config) error {
	if key := os.Getenv("VALUER_SIGNING_KEY"); key != "" {
		config.Auth.SigningKey = key
	}
	if raw := os.Getenv("VALUER_PATH"); raw != "" {
		path, err := ParsePath(raw)
		if err != nil {
			return fmt.Errorf("VALUER_PATH: %w", err)
		}
		config.Valuation.Path = path
	}

	if projectID := os.Getenv("GCP_PROJECT_ID"); projectID != "" {
		config.GCP.ProjectID = projectID
	}
	if useSecrets := os.Getenv("GCP_USE_SECRETS"); useSecrets == "true" {
		config.GCP.UseSecrets = true
	}
	if creds := os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"); creds != "" && config.GCP.CredentialsFile == "" {
		config.GCP.CredentialsFile = creds
	}
	return nil
}

// ParsePath parses a comma separated list of prices such as "100,102.5,99".
func ParsePath(raw string) ([]float64, error) {
	fields := strings.Split(raw, ",")
	path := make([]float64, 0, len(fields))
	for _, f := range fields {
		f = strings.TrimSpace(f)
		if f == "" {
			continue
		}
		price, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid price %q: %w", f, err)
		}
		path = append(path, price)
	}
	if len(path) == 0 {
		return nil, fmt.Errorf("no prices in %q", raw)
	}
	return path, nil
}

// NewLogger builds the process logger from the logging section.
func (c *Config) NewLogger() *logrus.Logger {
	logger := logrus.New()
	if c.Logging.Format == "text" {
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	} else {
		logger.SetFormatter(&logrus.JSONFormatter{})
	}

	level, err := logrus.ParseLevel(c.Logging.Level)
	if err != nil {
		logger.WithError(err).Error("Invalid log level, using INFO")
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)
	return logger
}

func loadSecretsFromGCP(ctx context.Context, config *Config, logger *logrus.Logger) error {
	secretManager, err := secrets.NewGCPSecretManager(ctx, config.GCP.ProjectID, config.GCP.CredentialsFile, logger)
	if err != nil {
		return fmt.Errorf("failed to create secret manager: %w", err)
	}
	defer secretManager.Close()

	// Only load secrets if they're not already set
	if config.Auth.SigningKey == "" {
		config.Auth.SigningKey = secretManager.GetSecretWithDefault(ctx,
			config.GCP.SecretNames.SigningKey, "")
	}

	logger.Info("Successfully loaded secrets from GCP Secret Manager")
	return nil
}
