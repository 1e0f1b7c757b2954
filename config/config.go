package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"
)

type Config struct {
	Database    DatabaseConfig
	Meilisearch MeilisearchConfig
	Sources     SourcesConfig
	Analysis    AnalysisConfig
	Scheduler   SchedulerConfig
	HTTP        HTTPConfig
}

// DatabaseConfig carries the profile store connection settings with
// SSL support.
type DatabaseConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	Timeout  time.Duration
	SSL      SSLConfig
}

type SSLConfig struct {
	Mode     string
	RootCert string
	Cert     string
	Key      string
}

type MeilisearchConfig struct {
	Host    string
	APIKey  string
	Timeout time.Duration
}

// SourcesConfig holds upstream API credentials. A source with an empty
// credential is not wired at startup.
type SourcesConfig struct {
	InstagramAccessToken string
	FlickrAPIKey         string
}

// AnalysisConfig points at the deployable analysis assets. A missing
// synonyms file is fatal at startup.
type AnalysisConfig struct {
	SynonymsPath string
}

type SchedulerConfig struct {
	Interval time.Duration
	Enabled  bool
}

type HTTPConfig struct {
	Addr              string
	ReadHeaderTimeout time.Duration
}

func Load() (*Config, error) {
	dbConfig := &DatabaseConfig{
		Host:     getEnvRequired("DB_HOST"),
		Port:     getEnvRequired("DB_PORT"),
		Name:     getEnvRequired("DB_NAME"),
		User:     getEnvRequired("PHOTO_INDEXER_DB_USER"),
		Password: getEnvRequired("PHOTO_INDEXER_DB_PASSWORD"),
		Timeout:  DBTimeout,
		SSL: SSLConfig{
			Mode:     getEnvOrDefault("DB_SSL_MODE", "prefer"),
			RootCert: getEnvOrDefault("DB_SSL_ROOT_CERT", ""),
			Cert:     getEnvOrDefault("DB_SSL_CERT", ""),
			Key:      getEnvOrDefault("DB_SSL_KEY", ""),
		},
	}

	if err := dbConfig.ValidateSSLConfig(); err != nil {
		slog.Error("Invalid SSL configuration", "error", err)
		return nil, fmt.Errorf("SSL configuration error: %w", err)
	}

	cfg := &Config{
		Database: *dbConfig,
		Meilisearch: MeilisearchConfig{
			Host:    getEnvRequired("MEILISEARCH_HOST"),
			APIKey:  getEnvOrDefault("MEILISEARCH_API_KEY", ""),
			Timeout: MeiliTimeout,
		},
		Sources: SourcesConfig{
			InstagramAccessToken: getEnvOrDefault("INSTAGRAM_ACCESS_TOKEN", ""),
			FlickrAPIKey:         getEnvOrDefault("FLICKR_API_KEY", ""),
		},
		Analysis: AnalysisConfig{
			SynonymsPath: getEnvOrDefault("SYNONYMS_PATH", "config/analysis/en_synonyms.txt"),
		},
		Scheduler: SchedulerConfig{
			Interval: RefreshInterval,
			Enabled:  getEnvOrDefault("SCHEDULER_ENABLED", "true") == "true",
		},
		HTTP: HTTPConfig{
			Addr:              HTTPAddr,
			ReadHeaderTimeout: 5 * time.Second,
		},
	}

	slog.Info("Configuration loaded",
		"db_host", cfg.Database.Host,
		"db_sslmode", cfg.Database.SSL.Mode,
		"meilisearch_host", cfg.Meilisearch.Host,
		"synonyms_path", cfg.Analysis.SynonymsPath,
	)

	return cfg, nil
}

func (c *DatabaseConfig) GetDatabaseConnectionString() string {
	baseConn := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SSL.Mode,
	)

	if c.SSL.RootCert != "" {
		baseConn += fmt.Sprintf(" sslrootcert=%s", c.SSL.RootCert)
	}
	if c.SSL.Cert != "" {
		baseConn += fmt.Sprintf(" sslcert=%s", c.SSL.Cert)
	}
	if c.SSL.Key != "" {
		baseConn += fmt.Sprintf(" sslkey=%s", c.SSL.Key)
	}

	return baseConn
}

func (c *DatabaseConfig) GetDatabaseURL() string {
	baseURL := fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s",
		c.User, c.Password, c.Host, c.Port, c.Name,
	)

	params := fmt.Sprintf("?sslmode=%s", c.SSL.Mode)

	if c.SSL.RootCert != "" {
		params += fmt.Sprintf("&sslrootcert=%s", c.SSL.RootCert)
	}
	if c.SSL.Cert != "" {
		params += fmt.Sprintf("&sslcert=%s", c.SSL.Cert)
	}
	if c.SSL.Key != "" {
		params += fmt.Sprintf("&sslkey=%s", c.SSL.Key)
	}

	return baseURL + params
}

func (c *DatabaseConfig) ValidateSSLConfig() error {
	switch c.SSL.Mode {
	case "disable":
		return fmt.Errorf("SSL disable mode is not allowed")
	case "allow", "prefer":
		return nil
	case "require":
		return nil
	case "verify-ca", "verify-full":
		if c.SSL.RootCert == "" {
			return fmt.Errorf("SSL root certificate required for mode %s", c.SSL.Mode)
		}
		return nil
	default:
		return fmt.Errorf("invalid SSL mode: %s", c.SSL.Mode)
	}
}

func getEnvRequired(key string) string {
	// Docker secrets arrive through the _FILE suffix
	if fileValue := os.Getenv(key + "_FILE"); fileValue != "" {
		content, err := os.ReadFile(fileValue)
		if err == nil {
			return strings.TrimSpace(string(content))
		}
	}

	value := os.Getenv(key)
	if value == "" {
		panic(fmt.Sprintf("required environment variable %s is not set", key))
	}
	return value
}

func getEnvOrDefault(key, defaultValue string) string {
	if fileValue := os.Getenv(key + "_FILE"); fileValue != "" {
		content, err := os.ReadFile(fileValue)
		if err == nil {
			return strings.TrimSpace(string(content))
		}
	}

	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
