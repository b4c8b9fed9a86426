package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Load reads the YAML file at configPath on top of the built-in defaults.
func Load(configPath string) (*AppConfig, error) {
	path := strings.TrimSpace(configPath)
	if path == "" {
		path = DefaultConfigPath
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file %q: %w", path, err)
	}
	cfg, err := Parse(content)
	if err != nil {
		return nil, fmt.Errorf("config file %q: %w", path, err)
	}
	if abs, err := filepath.Abs(path); err == nil {
		cfg.baseDir = filepath.Dir(abs)
	}
	return cfg, nil
}

// Parse decodes YAML content. Unknown keys are rejected.
func Parse(content []byte) (*AppConfig, error) {
	cfg := defaultAppConfig()
	decoder := yaml.NewDecoder(bytes.NewReader(content))
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parse: %w", err)
	}

	cfg.normalize()
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func defaultAppConfig() AppConfig {
	cfg := AppConfig{
		Port: defaultPort,
		Env:  defaultEnv,
		Database: DatabaseRuntimeConfig{
			Host:      defaultDBHost,
			Port:      defaultDBPort,
			User:      defaultDBUser,
			Password:  defaultDBPassword,
			Name:      defaultDBName,
			Charset:   defaultDBCharset,
			ParseTime: true,
			Loc:       defaultDBLoc,
		},
		Redis: RedisRuntimeConfig{
			Host: defaultRedisHost,
			Port: defaultRedisPort,
			DB:   defaultRedisDB,
		},
		Storage:         StorageRuntimeConfig{Driver: StorageDriverLocal},
		SessionTTLHours: defaultSessionTTL,
		RateLimit:       defaultRateLimit,
		AutoMigrate:     true,
	}
	cfg.normalize()
	return cfg
}

func (c *AppConfig) normalize() {
	c.Env = normalizeEnv(c.Env)
	c.Database = normalizeDatabaseConfig(c.Database)
	c.Redis = normalizeRedisConfig(c.Redis)
	c.Paths = normalizeRuntimePaths(c.Paths)
	c.Storage = normalizeStorageConfig(c.Storage)
	c.AllowedOrigins = normalizeOrigins(c.AllowedOrigins)
	c.JWTSecret = strings.TrimSpace(c.JWTSecret)
	c.Timezone = strings.TrimSpace(c.Timezone)
	if c.SessionTTLHours <= 0 {
		c.SessionTTLHours = defaultSessionTTL
	}
	if c.RateLimit < 0 {
		c.RateLimit = 0
	}
	c.DSN = c.Database.DSNValue()
	c.RedisURL = c.Redis.URLValue()
}

func (c *AppConfig) validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("invalid port %d, expected 1-65535", c.Port)
	}
	if c.Database.Port < 1 || c.Database.Port > 65535 {
		return fmt.Errorf("invalid database.port %d, expected 1-65535", c.Database.Port)
	}
	if c.Redis.Port < 1 || c.Redis.Port > 65535 {
		return fmt.Errorf("invalid redis.port %d, expected 1-65535", c.Redis.Port)
	}
	if c.Redis.DB < 0 {
		return fmt.Errorf("invalid redis.db %d, expected >= 0", c.Redis.DB)
	}
	switch c.Storage.Driver {
	case StorageDriverLocal:
	case StorageDriverS3:
		if c.Storage.S3.Bucket == "" {
			return errors.New("storage.s3.bucket is required for the s3 driver")
		}
	default:
		return fmt.Errorf("unknown storage.driver %q, expected local or s3", c.Storage.Driver)
	}
	return nil
}

// IsDev reports whether the app runs in development mode.
func (c *AppConfig) IsDev() bool { return c.Env == "development" }

// LogDir returns the resolved directory for daily log files.
func (c *AppConfig) LogDir() string { return c.resolvePath(c.Paths.Logs, defaultLogsDir) }

// MediaDir returns the resolved directory for locally stored uploads.
func (c *AppConfig) MediaDir() string { return c.resolvePath(c.Paths.Media, defaultMediaDir) }

// SessionTTL returns how long a login session stays valid.
func (c *AppConfig) SessionTTL() time.Duration {
	return time.Duration(c.SessionTTLHours) * time.Hour
}
