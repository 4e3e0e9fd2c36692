package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Settings struct {
	Server    ServerSettings    `mapstructure:"server"`
	Storage   StorageSettings   `mapstructure:"storage"`
	Catalog   CatalogSettings   `mapstructure:"catalog"`
	Alerts    AlertSettings     `mapstructure:"alerts"`
	Generator GeneratorSettings `mapstructure:"generator"`
	Overview  OverviewSettings  `mapstructure:"overview"`
	Logging   LoggingSettings   `mapstructure:"logging"`
}

type ServerSettings struct {
	Host string `mapstructure:"host"`
	Port string `mapstructure:"port"`
}

type StorageSettings struct {
	DBPath        string        `mapstructure:"db_path"` // empty disables snapshots
	KeepSnapshots int           `mapstructure:"keep_snapshots"`
	PruneInterval time.Duration `mapstructure:"prune_interval"`
}

type CatalogSettings struct {
	Path string `mapstructure:"path"` // empty uses the built-in catalog
}

type AlertSettings struct {
	WindowDays int `mapstructure:"window_days"`
}

type GeneratorSettings struct {
	Cadence     string  `mapstructure:"cadence"`
	Probability float64 `mapstructure:"probability"`
	Seed        uint64  `mapstructure:"seed"` // 0 picks a time based seed
}

type OverviewSettings struct {
	KPIs []string `mapstructure:"kpis"`
}

type LoggingSettings struct {
	Level string `mapstructure:"level"`
}

const envPrefix = "KPI"

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "127.0.0.1")
	v.SetDefault("server.port", "8080")
	v.SetDefault("storage.db_path", "kpi-monitor.db")
	v.SetDefault("storage.keep_snapshots", 20)
	v.SetDefault("storage.prune_interval", time.Hour)
	v.SetDefault("catalog.path", "")
	v.SetDefault("alerts.window_days", 30)
	v.SetDefault("generator.cadence", "weekly")
	v.SetDefault("generator.probability", 0.3)
	v.SetDefault("generator.seed", 0)
	v.SetDefault("overview.kpis", []string{"SMM.MONEY", "SMM.ER"})
	v.SetDefault("logging.level", "info")
}

// Load reads settings from path (optional) and KPI_* environment variables,
// e.g. KPI_SERVER_PORT or KPI_ALERTS_WINDOW_DAYS.
func Load(path string) (*Settings, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var settings Settings
	if err := v.Unmarshal(&settings); err != nil {
		return nil, fmt.Errorf("failed to parse settings: %w", err)
	}

	if err := settings.Validate(); err != nil {
		return nil, err
	}
	return &settings, nil
}

func (s *Settings) Validate() error {
	var errs []error
	if s.Alerts.WindowDays < 0 {
		errs = append(errs, fmt.Errorf("alerts.window_days must not be negative"))
	}
	if s.Storage.KeepSnapshots < 1 {
		errs = append(errs, fmt.Errorf("storage.keep_snapshots must be at least 1"))
	}
	switch s.Generator.Cadence {
	case "daily", "weekly":
	default:
		errs = append(errs, fmt.Errorf("generator.cadence must be daily or weekly, got %q", s.Generator.Cadence))
	}
	if s.Generator.Probability < 0 || s.Generator.Probability > 1 {
		errs = append(errs, fmt.Errorf("generator.probability must be within [0, 1]"))
	}
	return errors.Join(errs...)
}
