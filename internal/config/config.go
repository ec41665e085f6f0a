package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Database  DatabaseConfig  `yaml:"database"`
	Tailscale TailscaleConfig `yaml:"tailscale"`
	Auth      AuthConfig      `yaml:"auth"`
	Units     UnitsConfig     `yaml:"units"`
}

type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Name     string `yaml:"name"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	SSLMode  string `yaml:"sslmode"`
}

type TailscaleConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Hostname string `yaml:"hostname"`
	StateDir string `yaml:"state_dir"`
}

// AuthConfig holds the shared webhook secret. The same token is checked
// against the payload body on ingest and against X-API-Key on admin routes.
type AuthConfig struct {
	Token string `yaml:"token"`
}

// UnitsConfig selects display units for the dietary metrics. Nutrient mass is
// "g" or "oz"; water volume is "mL" or "fl oz" ("fl_oz" is accepted in files
// and env vars and canonicalized on load).
type UnitsConfig struct {
	NutrientMass string `yaml:"nutrient_mass_unit"`
	WaterVolume  string `yaml:"water_volume_unit"`
}

// DSN returns a PostgreSQL connection string.
func (d DatabaseConfig) DSN() string {
	sslmode := d.SSLMode
	if sslmode == "" {
		sslmode = "disable"
	}
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, sslmode)
}

// Load reads config from a YAML file, then applies environment variable overrides.
// Env vars use the prefix HEALTHBRIDGE_ and underscore-separated paths:
//
//	HEALTHBRIDGE_SERVER_HOST, HEALTHBRIDGE_SERVER_PORT,
//	HEALTHBRIDGE_DB_HOST, HEALTHBRIDGE_DB_PORT, HEALTHBRIDGE_DB_NAME,
//	HEALTHBRIDGE_DB_USER, HEALTHBRIDGE_DB_PASSWORD, HEALTHBRIDGE_DB_SSLMODE,
//	HEALTHBRIDGE_AUTH_TOKEN,
//	HEALTHBRIDGE_NUTRIENT_MASS_UNIT, HEALTHBRIDGE_WATER_VOLUME_UNIT
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	applyEnvOverrides(cfg)
	applyDefaults(cfg)

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}

	return cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("HEALTHBRIDGE_SERVER_HOST"); v != "" {
		cfg.Server.Host = v
	}
	if v := os.Getenv("HEALTHBRIDGE_SERVER_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = port
		}
	}
	if v := os.Getenv("HEALTHBRIDGE_DB_HOST"); v != "" {
		cfg.Database.Host = v
	}
	if v := os.Getenv("HEALTHBRIDGE_DB_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Database.Port = port
		}
	}
	if v := os.Getenv("HEALTHBRIDGE_DB_NAME"); v != "" {
		cfg.Database.Name = v
	}
	if v := os.Getenv("HEALTHBRIDGE_DB_USER"); v != "" {
		cfg.Database.User = v
	}
	if v := os.Getenv("HEALTHBRIDGE_DB_PASSWORD"); v != "" {
		cfg.Database.Password = v
	}
	if v := os.Getenv("HEALTHBRIDGE_DB_SSLMODE"); v != "" {
		cfg.Database.SSLMode = v
	}
	if v := os.Getenv("HEALTHBRIDGE_AUTH_TOKEN"); v != "" {
		cfg.Auth.Token = v
	}
	if v := os.Getenv("HEALTHBRIDGE_NUTRIENT_MASS_UNIT"); v != "" {
		cfg.Units.NutrientMass = v
	}
	if v := os.Getenv("HEALTHBRIDGE_WATER_VOLUME_UNIT"); v != "" {
		cfg.Units.WaterVolume = v
	}
}

func applyDefaults(cfg *Config) {
	if cfg.Units.NutrientMass == "" {
		cfg.Units.NutrientMass = "g"
	}
	if cfg.Units.WaterVolume == "" {
		cfg.Units.WaterVolume = "mL"
	}
	if cfg.Units.WaterVolume == "fl_oz" {
		cfg.Units.WaterVolume = "fl oz"
	}
}

func (c *Config) validate() error {
	if c.Server.Port == 0 && !c.Tailscale.Enabled {
		return fmt.Errorf("server.port is required")
	}
	if c.Database.Host == "" {
		return fmt.Errorf("database.host is required")
	}
	if c.Database.Port == 0 {
		return fmt.Errorf("database.port is required")
	}
	if c.Database.Name == "" {
		return fmt.Errorf("database.name is required")
	}
	if c.Database.User == "" {
		return fmt.Errorf("database.user is required")
	}
	if c.Auth.Token == "" {
		return fmt.Errorf("auth.token is required")
	}
	if c.Tailscale.Enabled && c.Tailscale.Hostname == "" {
		return fmt.Errorf("tailscale.hostname is required when tailscale.enabled")
	}
	switch c.Units.NutrientMass {
	case "g", "oz":
	default:
		return fmt.Errorf("units.nutrient_mass_unit must be g or oz, got %q", c.Units.NutrientMass)
	}
	switch c.Units.WaterVolume {
	case "mL", "fl oz":
	default:
		return fmt.Errorf("units.water_volume_unit must be mL or fl_oz, got %q", c.Units.WaterVolume)
	}
	return nil
}
