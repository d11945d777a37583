package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"golang.org/x/crypto/bcrypt"
)

// DevSecret is the signing key used when none is configured. Only fit for local runs.
const DevSecret = "dev-secret-change-me"

const (
	BackendLocal = "local"
	BackendGCS   = "gcs"
)

type Config struct {
	Port    string        `mapstructure:"port"`
	Log     LogConfig     `mapstructure:"log"`
	DB      DBConfig      `mapstructure:"db"`
	Auth    AuthConfig    `mapstructure:"auth"`
	Market  MarketConfig  `mapstructure:"market"`
	Storage StorageConfig `mapstructure:"storage"`
	CORS    CORSConfig    `mapstructure:"cors"`
	WS      WSConfig      `mapstructure:"ws"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"` // console | json
}

type DBConfig struct {
	Path string `mapstructure:"path"`
}

type AuthConfig struct {
	Secret     string        `mapstructure:"secret"`
	TokenTTL   time.Duration `mapstructure:"token_ttl"`
	BcryptCost int           `mapstructure:"bcrypt_cost"`
}

type MarketConfig struct {
	StartingCoins int `mapstructure:"starting_coins"`
}

type StorageConfig struct {
	Backend        string    `mapstructure:"backend"`
	UploadDir      string    `mapstructure:"upload_dir"`
	PublicPath     string    `mapstructure:"public_path"`
	MaxUploadBytes int64     `mapstructure:"max_upload_bytes"`
	GCS            GCSConfig `mapstructure:"gcs"`
}

type GCSConfig struct {
	Bucket          string `mapstructure:"bucket"`
	CredentialsFile string `mapstructure:"credentials_file"` // empty means Application Default Credentials
	Prefix          string `mapstructure:"prefix"`
}

type CORSConfig struct {
	Origins []string `mapstructure:"origins"`
}

type WSConfig struct {
	DefaultInterval time.Duration `mapstructure:"default_interval"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("port", "3011")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
	v.SetDefault("db.path", "stickers.db")
	v.SetDefault("auth.secret", DevSecret)
	v.SetDefault("auth.token_ttl", time.Hour)
	v.SetDefault("auth.bcrypt_cost", 10)
	v.SetDefault("market.starting_coins", 5000)
	v.SetDefault("storage.backend", BackendLocal)
	v.SetDefault("storage.upload_dir", "uploads/stickers")
	v.SetDefault("storage.public_path", "/uploads/stickers")
	v.SetDefault("storage.max_upload_bytes", 5<<20)
	v.SetDefault("storage.gcs.bucket", "")
	v.SetDefault("storage.gcs.credentials_file", "")
	v.SetDefault("storage.gcs.prefix", "stickers")
	v.SetDefault("cors.origins", []string{"*"})
	v.SetDefault("ws.default_interval", time.Second)
}

// Load reads an optional .env file, then <dir>/config.yml, then environment
// variables (AUTH_SECRET overrides auth.secret and so on).
// A missing config file is not an error; defaults apply.
func Load(dir string) (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)

	v.AddConfigPath(dir)
	v.SetConfigName("config")
	v.SetConfigType("yml")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects settings the service cannot run with.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Auth.Secret) == "" {
		return errors.New("auth.secret must not be empty")
	}
	if c.Auth.TokenTTL <= 0 {
		return fmt.Errorf("auth.token_ttl must be positive, got %s", c.Auth.TokenTTL)
	}
	if c.Auth.BcryptCost < bcrypt.MinCost || c.Auth.BcryptCost > bcrypt.MaxCost {
		return fmt.Errorf("auth.bcrypt_cost must be in [%d, %d], got %d", bcrypt.MinCost, bcrypt.MaxCost, c.Auth.BcryptCost)
	}
	if c.Market.StartingCoins < 0 {
		return fmt.Errorf("market.starting_coins must be >= 0, got %d", c.Market.StartingCoins)
	}
	switch c.Storage.Backend {
	case BackendLocal:
		if c.Storage.UploadDir == "" {
			return errors.New("storage.upload_dir is required for the local backend")
		}
	case BackendGCS:
		if c.Storage.GCS.Bucket == "" {
			return errors.New("storage.gcs.bucket is required for the gcs backend")
		}
	default:
		return fmt.Errorf("unknown storage.backend %q", c.Storage.Backend)
	}
	return nil
}

// UsesDevSecret reports whether tokens are signed with the built-in development key.
func (c *Config) UsesDevSecret() bool {
	return c.Auth.Secret == DevSecret
}
