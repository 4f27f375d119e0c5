package cmd

import (
	"fmt"

	"github.com/spf13/viper"

	"sheet-pump/internal/schema"
)

type DBConfig struct {
	Name   string `mapstructure:"name"`
	Driver string `mapstructure:"driver"`
	DSN    string `mapstructure:"dsn"`
	Active bool   `mapstructure:"active"`
}

// GetActiveDBConfig returns the currently active database configuration.
// Falls back to the flat database.dsn key when no databases list is present,
// so a bare --dsn flag keeps working without a config file.
func GetActiveDBConfig() (*DBConfig, error) {
	var configs []DBConfig

	if err := viper.UnmarshalKey("databases", &configs); err != nil {
		return nil, fmt.Errorf("failed to parse databases config: %w", err)
	}

	var activeConfig *DBConfig
	count := 0

	for i := range configs {
		if configs[i].Active {
			activeConfig = &configs[i]
			count++
		}
	}

	if count > 1 {
		return nil, fmt.Errorf("multiple active databases found (only one can be active)")
	}
	if count == 1 {
		if activeConfig.Driver == "" {
			activeConfig.Driver = detectDriver(activeConfig.DSN)
		}
		return activeConfig, nil
	}

	connStr := viper.GetString("database.dsn")
	if connStr == "" {
		return nil, fmt.Errorf("no database configured: set database.dsn, pass --dsn, or mark a databases entry active: true")
	}
	return &DBConfig{
		Name:   "default",
		Driver: detectDriver(connStr),
		DSN:    connStr,
		Active: true,
	}, nil
}

// loadSettings resolves the inference and loading knobs (Flag > Config > Default).
func loadSettings() schema.Config {
	cfg := schema.DefaultConfig()
	if v := viper.GetInt("settings.chunk_size"); v > 0 {
		cfg.ChunkSize = v
	}
	if v := viper.GetInt("settings.max_varchar_length"); v > 0 {
		cfg.MaxVarcharLength = v
	}
	if v := viper.GetInt("settings.varchar_bucket"); v > 0 {
		cfg.VarcharBucket = v
	}
	if v := viper.GetInt("settings.decimal_precision"); v > 0 {
		cfg.DecimalPrecision = v
	}
	if v := viper.GetInt("settings.decimal_scale"); v > 0 {
		cfg.DecimalScale = v
	}
	if v := viper.GetInt("settings.sample_rows"); v > 0 {
		cfg.SampleRows = v
	}
	return cfg
}

// loadOverrides parses the overrides map from the config file, e.g.
//
//	overrides:
//	  zip_code: varchar(10)
//	  amount: decimal(12,2)
func loadOverrides() (map[string]schema.InferredType, error) {
	raw := viper.GetStringMapString("overrides")
	if len(raw) == 0 {
		return nil, nil
	}
	overrides, err := schema.ParseOverrides(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid overrides config: %w", err)
	}
	return overrides, nil
}
