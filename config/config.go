// Package config holds the service configuration and loads it from struct
// defaults, an optional YAML file and the environment, in that order.
package config

import (
	"fmt"
	"time"

	"github.com/gcbaptista/matjibmap/internal/mapview"
	"github.com/gcbaptista/matjibmap/internal/validation"
)

// Config is the complete service configuration.
type Config struct {
	Server    ServerConfig    `koanf:"server"`
	Logging   LoggingConfig   `koanf:"logging"`
	Map       MapConfig       `koanf:"map"`
	Recommend RecommendConfig `koanf:"recommend"`
	Session   SessionConfig   `koanf:"session"`
	Filter    FilterConfig    `koanf:"filter"`
}

// ServerConfig configures the HTTP listener.
type ServerConfig struct {
	Host            string        `koanf:"host"`
	Port            int           `koanf:"port" validate:"min=1,max=65535"`
	MaxBodyBytes    int64         `koanf:"max_body_bytes" validate:"gt=0"`
	CORSOrigins     []string      `koanf:"cors_origins"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout" validate:"gt=0"`
}

// LoggingConfig configures zerolog.
type LoggingConfig struct {
	Level  string `koanf:"level" validate:"oneof=trace debug info warn error disabled"`
	Format string `koanf:"format" validate:"oneof=json console"`
}

// MapConfig configures the map widget. An empty ClientID is allowed: the
// map then reports itself unavailable and the list keeps working.
type MapConfig struct {
	ClientID       string         `koanf:"client_id"`
	ScriptEndpoint string         `koanf:"script_endpoint" validate:"required,url"`
	Center         mapview.LatLng `koanf:"center"`
	Zoom           int            `koanf:"zoom" validate:"min=1,max=21"`
	Bounds         mapview.Bounds `koanf:"bounds"`
}

// RecommendConfig configures the recommendation stub.
type RecommendConfig struct {
	Delay   time.Duration `koanf:"delay" validate:"gte=0"`
	Workers int           `koanf:"workers" validate:"min=1"`
}

// SessionConfig configures session expiry.
type SessionConfig struct {
	TTL             time.Duration `koanf:"ttl" validate:"gt=0"`
	CleanupInterval time.Duration `koanf:"cleanup_interval" validate:"gt=0"`
	JobRetention    time.Duration `koanf:"job_retention" validate:"gt=0"`
}

// FilterConfig selects the filter variant.
type FilterConfig struct {
	// StrictThresholds applies the price, rating and distance sliders.
	StrictThresholds bool `koanf:"strict_thresholds"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Host:            "",
			Port:            8080,
			MaxBodyBytes:    1 << 20,
			CORSOrigins:     []string{"*"},
			ShutdownTimeout: 10 * time.Second,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
		Map: MapConfig{
			ClientID:       "",
			ScriptEndpoint: mapview.DefaultScriptEndpoint,
			Center:         mapview.LatLng{Lat: 35.0191, Lng: 126.7866},
			Zoom:           14,
			Bounds: mapview.Bounds{
				SouthWest: mapview.LatLng{Lat: 35.0075, Lng: 126.7668},
				NorthEast: mapview.LatLng{Lat: 35.0308, Lng: 126.8065},
			},
		},
		Recommend: RecommendConfig{
			Delay:   1500 * time.Millisecond,
			Workers: 8,
		},
		Session: SessionConfig{
			TTL:             30 * time.Minute,
			CleanupInterval: time.Minute,
			JobRetention:    time.Hour,
		},
		Filter: FilterConfig{
			StrictThresholds: false,
		},
	}
}

// Validate checks struct constraints and the map bounds.
func (c *Config) Validate() error {
	if err := validation.ValidateStruct(c); err != nil {
		return err
	}

	b := c.Map.Bounds
	if b.SouthWest.Lat > b.NorthEast.Lat || b.SouthWest.Lng > b.NorthEast.Lng {
		return fmt.Errorf("map.bounds: south_west must be below and left of north_east")
	}
	return nil
}

// MapOptions converts the map section for the adapter.
func (c *Config) MapOptions() mapview.MapOptions {
	return mapview.MapOptions{
		Center: c.Map.Center,
		Zoom:   c.Map.Zoom,
		Bounds: c.Map.Bounds,
	}
}

// Addr returns the listen address.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}
