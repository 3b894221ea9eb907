package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	ServerPort string `mapstructure:"SERVER_PORT"`
	Env        string `mapstructure:"ENV"`
	LogLevel   string `mapstructure:"LOG_LEVEL"`
	LogFormat  string `mapstructure:"LOG_FORMAT"`

	CORSOrigins string `mapstructure:"CORS_ORIGINS"`

	JWTSecret   string `mapstructure:"JWT_SECRET"`
	JWTTTLHours int    `mapstructure:"JWT_TTL_HOURS"`

	Timezone string `mapstructure:"TIMEZONE"`

	StoreDriver string `mapstructure:"STORE_DRIVER"`
	DataDir     string `mapstructure:"DATA_DIR"`
	DBUrl       string `mapstructure:"DATABASE_URL"`

	RedisAddr      string `mapstructure:"REDIS_ADDR"`
	RedisPassword  string `mapstructure:"REDIS_PASSWORD"`
	RedisDB        int    `mapstructure:"REDIS_DB"`
	RedisKeyPrefix string `mapstructure:"REDIS_KEY_PREFIX"`

	S3Bucket           string `mapstructure:"S3_BUCKET"`
	S3Region           string `mapstructure:"S3_REGION"`
	S3Endpoint         string `mapstructure:"S3_ENDPOINT"`
	S3Prefix           string `mapstructure:"S3_PREFIX"`
	AWSAccessKeyID     string `mapstructure:"AWS_ACCESS_KEY_ID"`
	AWSSecretAccessKey string `mapstructure:"AWS_SECRET_ACCESS_KEY"`

	MPAccessToken string `mapstructure:"MP_ACCESS_TOKEN"`
	MPCurrency    string `mapstructure:"MP_CURRENCY"`
}

var keys = []string{
	"SERVER_PORT", "ENV", "LOG_LEVEL", "LOG_FORMAT", "CORS_ORIGINS",
	"JWT_SECRET", "JWT_TTL_HOURS", "TIMEZONE",
	"STORE_DRIVER", "DATA_DIR", "DATABASE_URL",
	"REDIS_ADDR", "REDIS_PASSWORD", "REDIS_DB", "REDIS_KEY_PREFIX",
	"S3_BUCKET", "S3_REGION", "S3_ENDPOINT", "S3_PREFIX",
	"AWS_ACCESS_KEY_ID", "AWS_SECRET_ACCESS_KEY",
	"MP_ACCESS_TOKEN", "MP_CURRENCY",
}

func Load() (*Config, error) {
	// .env is optional; real environment wins
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("SERVER_PORT", "8080")
	v.SetDefault("ENV", "development")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")
	v.SetDefault("JWT_SECRET", "changeme")
	v.SetDefault("JWT_TTL_HOURS", 12)
	v.SetDefault("TIMEZONE", "America/Argentina/Buenos_Aires")
	v.SetDefault("STORE_DRIVER", "file")
	v.SetDefault("DATA_DIR", defaultDataDir())
	v.SetDefault("REDIS_ADDR", "localhost:6379")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("REDIS_KEY_PREFIX", "clinica:")
	v.SetDefault("S3_REGION", "us-east-1")
	v.SetDefault("S3_PREFIX", "backups")
	v.SetDefault("MP_CURRENCY", "ARS")

	for _, k := range keys {
		_ = v.BindEnv(k)
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	switch cfg.StoreDriver {
	case "file", "memory", "redis":
	case "postgres":
		if cfg.DBUrl == "" {
			return nil, fmt.Errorf("DATABASE_URL is required for STORE_DRIVER=postgres")
		}
	default:
		return nil, fmt.Errorf("unknown STORE_DRIVER %q", cfg.StoreDriver)
	}

	return cfg, nil
}

// Persistent disk when mounted, working directory otherwise.
func defaultDataDir() string {
	if st, err := os.Stat("/data"); err == nil && st.IsDir() {
		return "/data"
	}
	return "."
}

func (c *Config) Addr() string {
	return fmt.Sprintf(":%s", c.ServerPort)
}

// AllowedOrigins splits CORS_ORIGINS on commas. Empty means any origin.
func (c *Config) AllowedOrigins() []string {
	var out []string
	for _, o := range strings.Split(c.CORSOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}

func (c *Config) IsDev() bool {
	return c.Env == "development"
}
