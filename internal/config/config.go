package config

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/viper"
)

// Template describes one ephemeral-room flavor: the display name carries a
// single ordinal placeholder, user_limit 0 means unlimited.
type Template struct {
	Name      string `mapstructure:"name"`
	UserLimit int    `mapstructure:"user_limit"`
	Category  string `mapstructure:"category_name"`
}

type Verification struct {
	RoleID    string `mapstructure:"role_id"`
	ChannelID string `mapstructure:"channel_id"`
}

type Vacation struct {
	RoleID         string `mapstructure:"role_id"`
	RequestChannel string `mapstructure:"request_channel_id"`
	AdminChannel   string `mapstructure:"admin_channel_id"`
}

type Config struct {
	Mode string `mapstructure:"mode"`
	Port int    `mapstructure:"port"`

	GatewayURL string        `mapstructure:"gateway_url"`
	APIBaseURL string        `mapstructure:"api_base_url"`
	Token      string        `mapstructure:"token"`
	PingPeriod time.Duration `mapstructure:"ping_period"`

	GracePeriod       time.Duration `mapstructure:"grace_period"`
	ReconcileInterval time.Duration `mapstructure:"reconcile_interval"`

	// Triggers maps trigger tag -> lobby voice channel ID.
	Triggers map[string]string `mapstructure:"triggers"`
	// Templates maps trigger tag -> room template.
	Templates map[string]Template `mapstructure:"templates"`

	SearchChannel string `mapstructure:"search_channel_id"`

	Verification Verification `mapstructure:"verification"`
	Vacation     Vacation     `mapstructure:"vacation"`

	// Cooldowns maps command name -> advisory throttle window.
	Cooldowns map[string]time.Duration `mapstructure:"cooldowns"`
}

func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")

	env := os.Getenv("CONFIG_ENV")
	if env == "" {
		env = "dev"
	}
	fileName := fmt.Sprintf("config/config.%s.yaml", env)

	v.SetConfigFile(fileName)
	v.AddConfigPath(".")
	v.AddConfigPath("./config")

	v.SetDefault("mode", "release")
	v.SetDefault("port", 8080)
	v.SetDefault("ping_period", "54s")
	v.SetDefault("grace_period", "10s")
	v.SetDefault("reconcile_interval", "30s")

	if err := v.ReadInConfig(); err != nil {
		fmt.Printf("⚠️ Config file not found (%s), using defaults\n", fileName)
	} else {
		fmt.Printf("✅ Loaded config: %s\n", fileName)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	fmt.Printf("🧩 Mode: %s | Port: %d | Triggers: %d\n", cfg.Mode, cfg.Port, len(cfg.Triggers))
	return &cfg, nil
}
