package config

import (
	"fmt"
	"net/url"
	"os"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	BaseURL   string        `json:"base_url" mapstructure:"base_url"`
	AuxURL    string        `json:"aux_url" mapstructure:"aux_url"`
	Timeout   time.Duration `json:"timeout" mapstructure:"timeout"`
	Minimum   int           `json:"minimum" mapstructure:"minimum"`
	Delay     time.Duration `json:"delay" mapstructure:"delay"`
	PlanFile  string        `json:"plan_file" mapstructure:"plan_file"`
	StateDir  string        `json:"state_dir" mapstructure:"state_dir"`
	Intervals Intervals     `json:"intervals" mapstructure:"intervals"`
	Cache     Cache         `json:"cache" mapstructure:"cache"`
	Database  Database      `json:"database" mapstructure:"database"`
	Server    Server        `json:"server" mapstructure:"server"`
}

// Intervals are the periods of the live generators and the auxiliary
// service jobs.
type Intervals struct {
	Auto         time.Duration `json:"auto" mapstructure:"auto"`
	Orders       time.Duration `json:"orders" mapstructure:"orders"`
	Chart        time.Duration `json:"chart" mapstructure:"chart"`
	Users        time.Duration `json:"users" mapstructure:"users"`
	CustomerCare time.Duration `json:"customer_care" mapstructure:"customer_care"`
	Restaurants  time.Duration `json:"restaurants" mapstructure:"restaurants"`
}

type Cache struct {
	Driver        string        `json:"driver" mapstructure:"driver"`
	TTL           time.Duration `json:"ttl" mapstructure:"ttl"`
	RedisAddr     string        `json:"redis_addr" mapstructure:"redis_addr"`
	RedisPassword string        `json:"redis_password" mapstructure:"redis_password"`
	RedisDB       int           `json:"redis_db" mapstructure:"redis_db"`
}

type Database struct {
	Provider string `json:"provider" mapstructure:"provider"`
	URLEnv   string `json:"url_env" mapstructure:"url_env"`
}

type Server struct {
	Port int `json:"port" mapstructure:"port"`
}

// Default returns a Config with every default applied.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

func Load() (*Config, error) {
	var cfg Config

	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	cfg.applyDefaults()
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.BaseURL == "" {
		c.BaseURL = "http://localhost:1310"
	}
	if c.Timeout == 0 {
		c.Timeout = 10 * time.Second
	}
	if c.Minimum == 0 {
		c.Minimum = 10
	}
	if c.Delay == 0 {
		c.Delay = 100 * time.Millisecond
	}
	if c.PlanFile == "" {
		c.PlanFile = "seed.plan.yaml"
	}
	if c.StateDir == "" {
		c.StateDir = ".flashseed"
	}

	setDuration(&c.Intervals.Auto, 30*time.Second)
	setDuration(&c.Intervals.Orders, 30*time.Second)
	setDuration(&c.Intervals.Chart, 30*time.Second)
	setDuration(&c.Intervals.Users, 60*time.Second)
	setDuration(&c.Intervals.CustomerCare, 90*time.Second)
	setDuration(&c.Intervals.Restaurants, 120*time.Second)

	if c.Cache.Driver == "" {
		c.Cache.Driver = "memory"
	}
	setDuration(&c.Cache.TTL, 5*time.Minute)
	if c.Cache.RedisAddr == "" {
		c.Cache.RedisAddr = "localhost:6379"
	}

	if c.Database.Provider == "" {
		c.Database.Provider = "postgresql"
	}
	if c.Database.URLEnv == "" {
		c.Database.URLEnv = "DATABASE_URL"
	}
	if c.Server.Port == 0 {
		c.Server.Port = 3001
	}
	if c.AuxURL == "" {
		c.AuxURL = fmt.Sprintf("http://127.0.0.1:%d", c.Server.Port)
	}
}

func setDuration(d *time.Duration, def time.Duration) {
	if *d == 0 {
		*d = def
	}
}

func (c *Config) Validate() error {
	for name, raw := range map[string]string{"base_url": c.BaseURL, "aux_url": c.AuxURL} {
		u, err := url.Parse(raw)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return fmt.Errorf("%s must be an http(s) URL, got %q", name, raw)
		}
	}

	if c.Timeout < 0 {
		return fmt.Errorf("timeout cannot be negative")
	}
	if c.Minimum < 0 {
		return fmt.Errorf("minimum cannot be negative")
	}
	if c.Delay < 0 {
		return fmt.Errorf("delay cannot be negative")
	}

	intervals := map[string]time.Duration{
		"intervals.auto":          c.Intervals.Auto,
		"intervals.orders":        c.Intervals.Orders,
		"intervals.chart":         c.Intervals.Chart,
		"intervals.users":         c.Intervals.Users,
		"intervals.customer_care": c.Intervals.CustomerCare,
		"intervals.restaurants":   c.Intervals.Restaurants,
	}
	for name, d := range intervals {
		if d <= 0 {
			return fmt.Errorf("%s must be positive", name)
		}
	}

	switch c.Cache.Driver {
	case "memory", "redis":
	default:
		return fmt.Errorf("unsupported cache driver: %s. Supported drivers: [memory redis]", c.Cache.Driver)
	}

	supportedProviders := []string{"postgresql", "postgres", "mysql", "sqlite", "sqlite3"}
	supported := false
	for _, provider := range supportedProviders {
		if c.Database.Provider == provider {
			supported = true
			break
		}
	}
	if !supported {
		return fmt.Errorf("unsupported database provider: %s. Supported providers: %v", c.Database.Provider, supportedProviders)
	}

	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port out of range: %d", c.Server.Port)
	}

	return nil
}

func (c *Config) GetDatabaseURL() (string, error) {
	dbURL := os.Getenv(c.Database.URLEnv)
	if dbURL == "" {
		return "", fmt.Errorf("database URL not found in environment variable %s", c.Database.URLEnv)
	}
	return dbURL, nil
}

// NeonURL builds a Postgres URL from the NEON_* variables. ok is false when
// NEON_HOST is unset.
func NeonURL() (dsn string, ok bool) {
	host := os.Getenv("NEON_HOST")
	if host == "" {
		return "", false
	}
	port := os.Getenv("NEON_PORT")
	if port == "" {
		port = "5432"
	}
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(os.Getenv("NEON_USER"), os.Getenv("NEON_PASSWORD")),
		Host:     host + ":" + port,
		Path:     "/" + os.Getenv("NEON_DATABASE"),
		RawQuery: "sslmode=require",
	}
	return u.String(), true
}

// SchemaPatchTarget returns the database the customers schema patch runs
// against. NEON_* variables win and always mean postgresql; otherwise the
// configured provider and URL are used.
func (c *Config) SchemaPatchTarget() (provider, dsn string, err error) {
	if dsn, ok := NeonURL(); ok {
		return "postgresql", dsn, nil
	}
	dsn, err = c.GetDatabaseURL()
	if err != nil {
		return "", "", fmt.Errorf("no database URL: set %s or NEON_HOST/NEON_USER/NEON_PASSWORD/NEON_DATABASE", c.Database.URLEnv)
	}
	return c.Database.Provider, dsn, nil
}
