package config

import (
	"errors"
	"os"
	"sync"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Redis    RedisConfig    `yaml:"redis"`
	Auth     AuthConfig     `yaml:"auth"`
	Cleanup  CleanupConfig  `yaml:"cleanup"`
	Logger   LoggerConfig   `yaml:"logger"`
}

type ServerConfig struct {
	Port         string `yaml:"port"`
	Host         string `yaml:"host"`
	ReadTimeout  int    `yaml:"readTimeout"`
	WriteTimeout int    `yaml:"writeTimeout"`
}

type DatabaseConfig struct {
	Host         string `yaml:"host"`
	Port         string `yaml:"port"`
	User         string `yaml:"user"`
	Password     string `yaml:"password"`
	DBName       string `yaml:"dbname"`
	SSLMode      string `yaml:"sslmode"`
	MaxIdleConns int    `yaml:"maxIdleConns"`
	MaxOpenConns int    `yaml:"maxOpenConns"`
	MaxLifetime  int    `yaml:"maxLifetime"` // in minutes
}

// RedisConfig is optional; when Addr is empty the token blacklist
// falls back to the relational store.
type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type AuthConfig struct {
	AccessTokenSecret  string `yaml:"accessTokenSecret"`
	AccessTokenTTL     string `yaml:"accessTokenTTL"` // e.g. "15m"
	RefreshTokenSecret string `yaml:"refreshTokenSecret"`
	RefreshTokenTTL    string `yaml:"refreshTokenTTL"` // e.g. "7d"
}

type CleanupConfig struct {
	IntervalMinutes int `yaml:"intervalMinutes"`
}

type LoggerConfig struct {
	Level      string `yaml:"level"`
	OutputPath string `yaml:"outputPath"`
}

var (
	config  *Config
	loadErr error
	once    sync.Once
)

// Load reads the configuration file and returns a Config struct.
// Missing token secrets fail here, at startup, rather than at first token use.
func Load(configPath string) (*Config, error) {
	once.Do(func() {
		config = &Config{}

		data, err := os.ReadFile(configPath)
		if err != nil {
			loadErr = err
			return
		}

		if err := yaml.Unmarshal(data, config); err != nil {
			loadErr = err
			return
		}

		applyEnvOverrides(config)
		config.applyDefaults()
		loadErr = config.Validate()
	})

	return config, loadErr
}

// applyEnvOverrides lets environment variables win over file values
func applyEnvOverrides(config *Config) {
	if envPort := os.Getenv("SERVER_PORT"); envPort != "" {
		config.Server.Port = envPort
	}
	if dbHost := os.Getenv("DB_HOST"); dbHost != "" {
		config.Database.Host = dbHost
	}
	if dbPort := os.Getenv("DB_PORT"); dbPort != "" {
		config.Database.Port = dbPort
	}
	if dbUser := os.Getenv("DB_USER"); dbUser != "" {
		config.Database.User = dbUser
	}
	if dbPass := os.Getenv("DB_PASSWORD"); dbPass != "" {
		config.Database.Password = dbPass
	}
	if dbName := os.Getenv("DB_NAME"); dbName != "" {
		config.Database.DBName = dbName
	}
	if redisAddr := os.Getenv("REDIS_ADDR"); redisAddr != "" {
		config.Redis.Addr = redisAddr
	}
	if redisPass := os.Getenv("REDIS_PASSWORD"); redisPass != "" {
		config.Redis.Password = redisPass
	}
	if accessSecret := os.Getenv("JWT_ACCESS_TOKEN_SECRET"); accessSecret != "" {
		config.Auth.AccessTokenSecret = accessSecret
	}
	if refreshSecret := os.Getenv("JWT_REFRESH_TOKEN_SECRET"); refreshSecret != "" {
		config.Auth.RefreshTokenSecret = refreshSecret
	}
	if accessTTL := os.Getenv("JWT_ACCESS_TOKEN_EXPIRES_IN"); accessTTL != "" {
		config.Auth.AccessTokenTTL = accessTTL
	}
	if refreshTTL := os.Getenv("JWT_REFRESH_TOKEN_EXPIRES_IN"); refreshTTL != "" {
		config.Auth.RefreshTokenTTL = refreshTTL
	}
}

func (c *Config) applyDefaults() {
	if c.Auth.AccessTokenTTL == "" {
		c.Auth.AccessTokenTTL = "15m"
	}
	if c.Auth.RefreshTokenTTL == "" {
		c.Auth.RefreshTokenTTL = "7d"
	}
	if c.Cleanup.IntervalMinutes <= 0 {
		c.Cleanup.IntervalMinutes = 60
	}
}

// Validate checks that everything required to sign and verify tokens is present.
func (c *Config) Validate() error {
	if c.Auth.AccessTokenSecret == "" {
		return errors.New("auth.accessTokenSecret is not configured")
	}
	if c.Auth.RefreshTokenSecret == "" {
		return errors.New("auth.refreshTokenSecret is not configured")
	}
	return nil
}

// Get returns the loaded configuration
func Get() *Config {
	if config == nil {
		panic("Config not loaded")
	}
	return config
}

// GetDSN returns the PostgreSQL connection string
func (c *DatabaseConfig) GetDSN() string {
	return "postgresql://" + c.User + ":" + c.Password + "@" + c.Host + ":" + c.Port + "/" + c.DBName + "?sslmode=" + c.SSLMode
}
