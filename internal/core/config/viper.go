package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Load reads configuration with CLI flags > environment > config file >
// defaults precedence. Environment variables use the ESC_ prefix
// (ESC_DATABASE_URL, ESC_BUSINESS_HOURS_TIMEZONE, ...).
func Load(configPath string) (*Config, error) {
	v := viper.New()

	// Defaults matching Default()
	v.SetDefault("database_url", "sqlite://escalate.db")
	v.SetDefault("business_hours.start", 9)
	v.SetDefault("business_hours.end", 17)
	v.SetDefault("business_hours.timezone", "UTC")
	v.SetDefault("rules.max_batch", 500)

	v.SetEnvPrefix("ESC")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	cfg := &Config{
		DatabaseURL: v.GetString("database_url"),
		BusinessHours: BusinessHoursConfig{
			Start:    v.GetInt("business_hours.start"),
			End:      v.GetInt("business_hours.end"),
			Timezone: v.GetString("business_hours.timezone"),
		},
		MaxRuleBatch: v.GetInt("rules.max_batch"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}
