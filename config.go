package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
)

// configFile is a package-level var so tests can point loads at a temp file.
var configFile = "config.json"

// loadConfig reads config.json, fills in any missing fields from the default
// template, and persists the completed file back so operators can discover
// every tunable. A missing file is created from the defaults.
func loadConfig() (*Config, error) {
	data, err := os.ReadFile(configFile)
	if os.IsNotExist(err) {
		cfg := defaultConfigTemplate()
		if werr := writeConfig(&cfg); werr != nil {
			slog.Warn("Could not create default config", "file", configFile, "err", werr)
		} else {
			slog.Info("Default config created", "file", configFile)
		}
		return &cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", configFile, err)
	}

	var configMap map[string]interface{}
	if err := json.Unmarshal(data, &configMap); err != nil {
		return nil, fmt.Errorf("parse %s: %w", configFile, err)
	}

	if fillMissingConfigFields(configMap) {
		merged, err := json.MarshalIndent(configMap, "", "  ")
		if err == nil {
			if werr := os.WriteFile(configFile, merged, 0644); werr != nil {
				slog.Warn("Could not persist completed config", "file", configFile, "err", werr)
			}
		}
		data, _ = json.Marshal(configMap)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", configFile, err)
	}

	sanitizeConfig(&cfg)
	slog.Info("Config loaded", "file", configFile)
	return &cfg, nil
}

func writeConfig(cfg *Config) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(configFile, data, 0644)
}

// sanitizeConfig clamps operator-supplied values to workable minimums.
func sanitizeConfig(cfg *Config) {
	if cfg.Intervals.ClassifySeconds < 1 {
		cfg.Intervals.ClassifySeconds = 10
	}
	if cfg.Intervals.CacheTTLSeconds < 1 {
		cfg.Intervals.CacheTTLSeconds = 15
	}
	if cfg.Intervals.StatusSeconds < 5 {
		cfg.Intervals.StatusSeconds = 60
	}
	if cfg.Intervals.DebounceMillis < 100 {
		cfg.Intervals.DebounceMillis = 750
	}
	if cfg.Sampling.Workers < 1 {
		cfg.Sampling.Workers = 4
	}
	if cfg.Kill.TimeoutSeconds < 1 {
		cfg.Kill.TimeoutSeconds = 3
	}
	if cfg.Thresholds.UsageMB < 0 {
		cfg.Thresholds.UsageMB = 0
	}
	if cfg.Thresholds.FlaggedMB < 0 {
		cfg.Thresholds.FlaggedMB = 0
	}
}
