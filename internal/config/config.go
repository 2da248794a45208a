package config

import (
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Bot      BotConfig      `mapstructure:"bot"`
	Catalog  CatalogConfig  `mapstructure:"catalog"`
	Session  SessionConfig  `mapstructure:"session"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Database DatabaseConfig `mapstructure:"database"`
}

// BotConfig holds messaging platform settings
type BotConfig struct {
	Token                string `mapstructure:"token"`
	APIBaseURL           string `mapstructure:"api_base_url"`
	ContactURL           string `mapstructure:"contact_url"`
	PollTimeout          int    `mapstructure:"poll_timeout"`
	Timeout              int    `mapstructure:"timeout"`
	MaxRequestsPerSecond int    `mapstructure:"max_requests_per_second"`
}

// CatalogConfig holds the on-disk catalog locations
type CatalogConfig struct {
	CategoriesPath string `mapstructure:"categories_path"`
	ProductsDir    string `mapstructure:"products_dir"`
	TextsDir       string `mapstructure:"texts_dir"`
}

// SessionConfig selects the session store backend
type SessionConfig struct {
	Backend string `mapstructure:"backend"` // "memory" or "redis"
}

// RedisConfig holds Redis connection details
type RedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	Database int    `mapstructure:"database"`
}

// DatabaseConfig holds the optional interaction journal database
type DatabaseConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Name     string `mapstructure:"name"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
}

// Load loads configuration from YAML file with environment variable overrides
func Load() (*Config, error) {
	// .env is optional; in production variables are set directly
	_ = godotenv.Load()

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")

	setDefaults()

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	if config.Bot.Token == "" {
		return nil, fmt.Errorf("bot token is not set (bot.token in config.yaml or BOT_TOKEN)")
	}

	return &config, nil
}

func setDefaults() {
	viper.SetDefault("bot.token", "")
	viper.SetDefault("bot.api_base_url", "https://api.telegram.org")
	viper.SetDefault("bot.contact_url", "https://t.me/")
	viper.SetDefault("bot.poll_timeout", 50)
	viper.SetDefault("bot.timeout", 30)
	viper.SetDefault("bot.max_requests_per_second", 25)

	viper.SetDefault("catalog.categories_path", "./data/categories.json")
	viper.SetDefault("catalog.products_dir", "./data/products")
	viper.SetDefault("catalog.texts_dir", "./data/texts")

	viper.SetDefault("session.backend", "memory")

	viper.SetDefault("redis.host", "localhost")
	viper.SetDefault("redis.port", 6379)
	viper.SetDefault("redis.password", "")
	viper.SetDefault("redis.database", 0)

	viper.SetDefault("database.enabled", false)
	viper.SetDefault("database.host", "localhost")
	viper.SetDefault("database.port", 5432)
	viper.SetDefault("database.name", "storefront")
	viper.SetDefault("database.user", "storefront_user")
	viper.SetDefault("database.password", "storefront_pass")
}
