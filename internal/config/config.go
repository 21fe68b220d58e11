// Package config loads server configuration from layered sources:
// built-in defaults, an optional YAML file, and TRAFFIC_-prefixed
// environment variables, in increasing precedence.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/Omkar2k5/Dynamic-Traffic-Route-Optimization-sub000/internal/lib/geo"
)

// envPrefix scopes the environment overrides. A double underscore maps to
// a nesting level: TRAFFIC_ROUTES__GOOGLE_API_KEY -> routes.google_api_key.
const envPrefix = "TRAFFIC_"

// Config is the complete server configuration.
type Config struct {
	Environment string        `koanf:"environment"`
	Server      ServerConfig  `koanf:"server"`
	Routes      RoutesConfig  `koanf:"routes"`
	Cameras     CamerasConfig `koanf:"cameras"`
	Mongo       MongoConfig   `koanf:"mongo"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port        int      `koanf:"port"`
	CorsOrigins []string `koanf:"cors_origins"`
}

// RoutesConfig holds route suggestion settings.
type RoutesConfig struct {
	// Provider selects the directions backend: "google" or "synthetic".
	Provider             string  `koanf:"provider"`
	GoogleAPIKey         string  `koanf:"google_api_key"`
	ProximityThresholdKm float64 `koanf:"proximity_threshold_km"`
	AverageSpeedKmh      float64 `koanf:"average_speed_kmh"`
	// Seed fixes the synthetic estimator; 0 means seed from the clock.
	Seed               int64      `koanf:"seed"`
	MonitoredCorridors []Corridor `koanf:"monitored_corridors"`
}

// Corridor is a named origin/destination pair monitored by the dashboard.
type Corridor struct {
	ID          string      `koanf:"id"`
	Name        string      `koanf:"name"`
	Origin      Coordinates `koanf:"origin"`
	Destination Coordinates `koanf:"destination"`
}

// Coordinates is a lat/lng pair in config files.
type Coordinates struct {
	Latitude  float64 `koanf:"latitude"`
	Longitude float64 `koanf:"longitude"`
}

// ToPoint converts config coordinates to a geo point.
func (c Coordinates) ToPoint() geo.Point {
	return geo.Point{Latitude: c.Latitude, Longitude: c.Longitude}
}

// CamerasConfig holds camera snapshot settings.
type CamerasConfig struct {
	// FeedURL points at the optional camera KML feed. Empty disables it.
	FeedURL         string        `koanf:"feed_url"`
	RefreshInterval time.Duration `koanf:"refresh_interval"`
	StaleThreshold  time.Duration `koanf:"stale_threshold"`
	// UseStaticData serves the seeded dataset instead of MongoDB.
	UseStaticData bool `koanf:"use_static_data"`
}

// MongoConfig holds MongoDB connection settings.
type MongoConfig struct {
	URI            string        `koanf:"uri"`
	Database       string        `koanf:"database"`
	ConnectTimeout time.Duration `koanf:"connect_timeout"`
}

// Load builds the configuration. The file at path is optional; defaults
// and environment variables always apply.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(defaults(), "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load default config: %w", err)
	}

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
				return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
			}
		}
	}

	if err := k.Load(env.Provider(envPrefix, ".", envKeyMapper), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment config: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func envKeyMapper(key string) string {
	key = strings.ToLower(strings.TrimPrefix(key, envPrefix))
	return strings.ReplaceAll(key, "__", ".")
}

// Validate rejects configurations the server cannot start with.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port %d", c.Server.Port)
	}
	if c.Routes.Provider != "google" && c.Routes.Provider != "synthetic" {
		return fmt.Errorf("unknown routes provider %q", c.Routes.Provider)
	}
	if c.Routes.Provider == "google" && c.Routes.GoogleAPIKey == "" {
		return fmt.Errorf("routes provider %q requires a google_api_key", c.Routes.Provider)
	}
	if c.Routes.ProximityThresholdKm <= 0 {
		return fmt.Errorf("proximity_threshold_km must be positive, got %v", c.Routes.ProximityThresholdKm)
	}
	if c.Routes.AverageSpeedKmh <= 0 {
		return fmt.Errorf("average_speed_kmh must be positive, got %v", c.Routes.AverageSpeedKmh)
	}
	if !c.Cameras.UseStaticData && c.Mongo.URI == "" {
		return fmt.Errorf("mongo.uri is required when cameras.use_static_data is false")
	}
	return nil
}

// defaults seed a development server that runs with no config file, no
// external provider, and no database.
func defaults() map[string]interface{} {
	return map[string]interface{}{
		"environment": "development",
		"server": map[string]interface{}{
			"port":         8080,
			"cors_origins": []string{"*"},
		},
		"routes": map[string]interface{}{
			"provider":               "synthetic",
			"proximity_threshold_km": 0.5,
			"average_speed_kmh":      40.0,
			"seed":                   0,
			"monitored_corridors": []interface{}{
				map[string]interface{}{
					"id":   "market-street",
					"name": "Market Street - Embarcadero to Van Ness",
					"origin": map[string]interface{}{
						"latitude":  37.7938,
						"longitude": -122.3950,
					},
					"destination": map[string]interface{}{
						"latitude":  37.7752,
						"longitude": -122.4193,
					},
				},
				map[string]interface{}{
					"id":   "101-approach",
					"name": "US-101 Approach - Cesar Chavez to Downtown",
					"origin": map[string]interface{}{
						"latitude":  37.7484,
						"longitude": -122.4053,
					},
					"destination": map[string]interface{}{
						"latitude":  37.7894,
						"longitude": -122.4017,
					},
				},
			},
		},
		"cameras": map[string]interface{}{
			"feed_url":         "",
			"refresh_interval": "5m",
			"stale_threshold":  "10m",
			"use_static_data":  true,
		},
		"mongo": map[string]interface{}{
			"uri":             "",
			"database":        "traffic",
			"connect_timeout": "5s",
		},
	}
}
