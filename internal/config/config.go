package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

const (
	SessionStoreMemory   = "memory"
	SessionStorePostgres = "postgres"
)

type Config struct {
	App            App            `mapstructure:",squash"`
	Server         Server         `mapstructure:",squash"`
	Database       Database       `mapstructure:",squash"`
	StudioAPI      StudioAPI      `mapstructure:",squash"`
	Auth           Auth           `mapstructure:",squash"`
	Session        Session        `mapstructure:",squash"`
	SessionCleanup SessionCleanup `mapstructure:",squash"`
	Cors           Cors           `mapstructure:",squash"`
}

type App struct {
	LogLevel    string `mapstructure:"log_level"`
	Environment string `mapstructure:"app_env"`
}

type Server struct {
	Host string `mapstructure:"host"`
	Port string `mapstructure:"port"`
}

type Database struct {
	DSN      string `mapstructure:"-"`
	Driver   string `mapstructure:"database_driver"`
	Password string `mapstructure:"database_password"`
	URL      string `mapstructure:"database_url"`
	User     string `mapstructure:"database_user"`
}

// StudioAPI points at the platform backend serving /api/v1/studio/*.
type StudioAPI struct {
	URL     string        `mapstructure:"studio_api_url"`
	Timeout time.Duration `mapstructure:"studio_api_timeout"`
}

// Auth holds the secret shared with the backend to verify its access tokens.
type Auth struct {
	Secret string `mapstructure:"auth_secret"`
}

type Session struct {
	Store      string        `mapstructure:"session_store"`
	Secret     string        `mapstructure:"session_secret"`
	CookieName string        `mapstructure:"session_cookie_name"`
	TTL        time.Duration `mapstructure:"session_ttl"`
}

type SessionCleanup struct {
	CronSchedule string `mapstructure:"session_cleanup_cron"`
	Enabled      bool   `mapstructure:"session_cleanup_enabled"`
}

type Cors struct {
	AllowedOrigins []string `mapstructure:"cors_allowed_origins"`
}

// IsDevelopment reports whether cookies may be sent over plain HTTP.
func (c *Config) IsDevelopment() bool {
	env := c.App.Environment
	return env == "" || env == "development" || env == "dev"
}

func SetDefaults() {
	viper.SetDefault("HOST", "localhost")
	viper.SetDefault("PORT", 8080)

	viper.SetDefault("LOG_LEVEL", "debug")
	viper.SetDefault("APP_ENV", "development")

	viper.SetDefault("DATABASE_DRIVER", "postgres")
	viper.SetDefault("DATABASE_URL", "localhost:5432/studio_console?sslmode=disable")
	viper.SetDefault("DATABASE_USER", "postgres")
	viper.SetDefault("DATABASE_PASSWORD", "root")

	viper.SetDefault("STUDIO_API_URL", "http://localhost:5000")
	viper.SetDefault("STUDIO_API_TIMEOUT", "30s")

	viper.SetDefault("AUTH_SECRET", "your_secret_key")

	viper.SetDefault("SESSION_STORE", SessionStoreMemory)
	viper.SetDefault("SESSION_SECRET", "your_session_secret")
	viper.SetDefault("SESSION_COOKIE_NAME", "studio_session")
	viper.SetDefault("SESSION_TTL", "24h")

	viper.SetDefault("SESSION_CLEANUP_CRON", "*/15 * * * *") // every 15 minutes
	viper.SetDefault("SESSION_CLEANUP_ENABLED", true)

	viper.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")
}

func NewConfig() (*Config, error) {
	loadEnvFile()

	config := &Config{}

	SetDefaults()

	viper.SetConfigType("env")
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		logrus.Debug("using environment loaded by godotenv, viper could not read .env: ", err)
	}

	err := viper.Unmarshal(&config, viper.DecodeHook(
		mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	))
	if err != nil {
		return nil, err
	}

	if err := config.validate(); err != nil {
		return nil, err
	}

	config.Database.DSN = fmt.Sprintf(
		"%s://%s:%s@%s",
		config.Database.Driver,
		config.Database.User,
		config.Database.Password,
		config.Database.URL,
	)

	return config, nil
}

func (c *Config) validate() error {
	if c.StudioAPI.URL == "" {
		return fmt.Errorf("config: STUDIO_API_URL is required")
	}
	if c.Auth.Secret == "" {
		return fmt.Errorf("config: AUTH_SECRET is required")
	}
	if c.Session.Secret == "" {
		return fmt.Errorf("config: SESSION_SECRET is required")
	}

	switch c.Session.Store {
	case SessionStoreMemory, SessionStorePostgres:
	default:
		return fmt.Errorf("config: unknown SESSION_STORE %q", c.Session.Store)
	}

	if c.Session.TTL <= 0 {
		return fmt.Errorf("config: SESSION_TTL must be positive")
	}

	return nil
}

// loadEnvFile looks for a .env next to and above the working directory.
func loadEnvFile() {
	cwd, err := os.Getwd()
	if err != nil {
		logrus.Warn("could not resolve working directory: ", err)
		return
	}

	locations := []string{
		filepath.Join(cwd, ".env"),
		filepath.Join(filepath.Dir(cwd), ".env"),
		filepath.Join(cwd, "../../.env"),
	}

	for _, location := range locations {
		if err := godotenv.Load(location); err == nil {
			logrus.Info(".env loaded from: ", location)
			return
		}
	}

	logrus.Debug("no .env file found, relying on environment variables")
}
