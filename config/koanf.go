package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths are searched when no path is given.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
}

// ConfigPathEnvVar names a config file explicitly.
const ConfigPathEnvVar = "CONFIG_PATH"

// envMappings maps lowercased environment variable names to config paths.
// Service variables carry the MATJIB_ prefix; names not listed are ignored.
var envMappings = map[string]string{
	"matjib_host":                     "server.host",
	"matjib_port":                     "server.port",
	"matjib_max_body_bytes":           "server.max_body_bytes",
	"matjib_cors_origins":             "server.cors_origins",
	"matjib_shutdown_timeout":         "server.shutdown_timeout",
	"matjib_log_level":                "logging.level",
	"matjib_log_format":               "logging.format",
	"matjib_map_client_id":            "map.client_id",
	"matjib_map_script_endpoint":      "map.script_endpoint",
	"matjib_map_zoom":                 "map.zoom",
	"matjib_recommend_delay":          "recommend.delay",
	"matjib_recommend_workers":        "recommend.workers",
	"matjib_session_ttl":              "session.ttl",
	"matjib_session_cleanup_interval": "session.cleanup_interval",
	"matjib_job_retention":            "session.job_retention",
	"matjib_filter_strict_thresholds": "filter.strict_thresholds",
}

// envFallbacks are read only while the MATJIB_ variable they stand in for
// is unset, so the prefixed name always wins
var envFallbacks = map[string]string{
	"naver_maps_client_id": "matjib_map_client_id",
}

// sliceConfigPaths are given as comma-separated strings in the environment
var sliceConfigPaths = []string{
	"server.cors_origins",
}

// Load builds the configuration from defaults, then the YAML file at path
// (or the first file found via CONFIG_PATH and DefaultConfigPaths when path
// is empty), then environment variables.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(Default(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if path == "" {
		path = findConfigFile()
	} else if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("config file %s: %w", path, err)
	}
	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := processSliceFields(k); err != nil {
		return nil, fmt.Errorf("failed to process slice fields: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}
	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// envTransformFunc returns the config path for an environment variable, or
// "" to skip it.
func envTransformFunc(key string) string {
	key = strings.ToLower(key)
	if mapped, ok := envMappings[key]; ok {
		return mapped
	}
	if primary, ok := envFallbacks[key]; ok {
		if _, set := os.LookupEnv(strings.ToUpper(primary)); !set {
			return envMappings[primary]
		}
	}
	return ""
}

func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		strVal, ok := k.Get(path).(string)
		if !ok {
			continue
		}

		parts := strings.Split(strVal, ",")
		trimmed := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				trimmed = append(trimmed, p)
			}
		}
		if err := k.Set(path, trimmed); err != nil {
			return fmt.Errorf("failed to set %s: %w", path, err)
		}
	}
	return nil
}
