package config

import (
	"log"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Port                          string        `mapstructure:"PORT"`
	DatabaseURL                   string        `mapstructure:"DATABASE_URL"`
	DBMaxOpenConns                int           `mapstructure:"DB_MAX_OPEN_CONNS"`
	StaticDir                     string        `mapstructure:"STATIC_DIR"`
	RequestTimeout                time.Duration `mapstructure:"REQUEST_TIMEOUT"`
	ShutdownTimeout               time.Duration `mapstructure:"SHUTDOWN_TIMEOUT"`
	SeedOnStartup                 bool          `mapstructure:"SEED_ON_STARTUP"`
	LogSQL                        bool          `mapstructure:"LOG_SQL"`
	EnableMetrics                 bool          `mapstructure:"ENABLE_METRICS"`
	DiscordBotToken               string        `mapstructure:"DISCORD_BOT_TOKEN"`
	DiscordNotificationsChannelID string        `mapstructure:"DISCORD_NOTIFICATIONS_CHANNEL_ID"`
	NotifyTimeout                 time.Duration `mapstructure:"NOTIFY_TIMEOUT"`
}

// Load reads the configuration from the environment on top of the defaults.
func Load() (*Config, error) {
	v := viper.New()

	v.SetDefault("PORT", "8080")
	v.SetDefault("DATABASE_URL", "activities.db")
	v.SetDefault("DB_MAX_OPEN_CONNS", 10)
	v.SetDefault("STATIC_DIR", "static")
	v.SetDefault("REQUEST_TIMEOUT", "30s")
	v.SetDefault("SHUTDOWN_TIMEOUT", "15s")
	v.SetDefault("SEED_ON_STARTUP", true)
	v.SetDefault("LOG_SQL", false)
	v.SetDefault("ENABLE_METRICS", true)
	v.SetDefault("NOTIFY_TIMEOUT", "5s")

	v.BindEnv("DISCORD_BOT_TOKEN")
	v.BindEnv("DISCORD_NOTIFICATIONS_CHANNEL_ID")

	v.AutomaticEnv()

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

func LoadConfig() *Config {
	config, err := Load()
	if err != nil {
		log.Fatalf("Unable to decode into struct, %v", err)
	}
	return config
}
