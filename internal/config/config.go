package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/nurpe/renttax/internal/model"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverBolt     = "bolt"
)

type HTTPConfig struct {
	Host string
	Port int
}

type DBConfig struct {
	Driver          string
	DSN             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime string
}

type AuthConfig struct {
	AccessSecret string
}

type CORSConfig struct {
	AllowedOrigins []string
}

type TaxConfig struct {
	LandlordCategory string
	TenantCategory   string
	// Regime is the parsed form of the two categories above.
	Regime model.Regime
}

type Config struct {
	Environment string
	LogLevel    string
	HTTP        HTTPConfig
	DB          DBConfig
	Auth        AuthConfig
	CORS        CORSConfig
	Tax         TaxConfig
}

func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName("app")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("./deploy")
	v.AddConfigPath("./internal/config")
	v.AutomaticEnv()

	_ = v.ReadInConfig()

	cfg := &Config{
		Environment: v.GetString("APP_ENV"),
		LogLevel:    v.GetString("LOG_LEVEL"),
		HTTP: HTTPConfig{
			Host: v.GetString("HTTP_HOST"),
			Port: v.GetInt("HTTP_PORT"),
		},
		DB: DBConfig{
			Driver:          strings.ToLower(strings.TrimSpace(v.GetString("DB_DRIVER"))),
			DSN:             v.GetString("DB_DSN"),
			MaxOpenConns:    v.GetInt("DB_MAX_OPEN_CONNS"),
			MaxIdleConns:    v.GetInt("DB_MAX_IDLE_CONNS"),
			ConnMaxLifetime: v.GetString("DB_CONN_MAX_LIFETIME"),
		},
		Auth: AuthConfig{
			AccessSecret: v.GetString("JWT_ACCESS_SECRET"),
		},
		CORS: CORSConfig{
			AllowedOrigins: parseList(v.GetString("CORS_ALLOWED_ORIGINS")),
		},
		Tax: TaxConfig{
			LandlordCategory: v.GetString("TAX_LANDLORD_CATEGORY"),
			TenantCategory:   v.GetString("TAX_TENANT_CATEGORY"),
		},
	}

	if cfg.Environment == "" {
		cfg.Environment = "development"
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	if cfg.HTTP.Host == "" {
		cfg.HTTP.Host = "0.0.0.0"
	}
	if cfg.HTTP.Port == 0 {
		cfg.HTTP.Port = 7090
	}
	if cfg.DB.Driver == "" {
		cfg.DB.Driver = DriverSQLite
	}
	if cfg.DB.DSN == "" {
		switch cfg.DB.Driver {
		case DriverSQLite:
			cfg.DB.DSN = "renttax.db"
		case DriverBolt:
			cfg.DB.DSN = "renttax.bolt"
		}
	}
	if len(cfg.CORS.AllowedOrigins) == 0 {
		cfg.CORS.AllowedOrigins = []string{"*"}
	}
	if cfg.Tax.LandlordCategory == "" {
		cfg.Tax.LandlordCategory = string(model.LandlordSelfEmployed)
	}
	if cfg.Tax.TenantCategory == "" {
		cfg.Tax.TenantCategory = string(model.TenantNaturalPerson)
	}

	if err := validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func validate(cfg *Config) error {
	switch cfg.DB.Driver {
	case DriverSQLite, DriverBolt:
	case DriverPostgres:
		if cfg.DB.DSN == "" {
			return fmt.Errorf("DB_DSN is required for postgres")
		}
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", cfg.DB.Driver)
	}
	if cfg.DB.ConnMaxLifetime != "" {
		if _, err := time.ParseDuration(cfg.DB.ConnMaxLifetime); err != nil {
			return fmt.Errorf("invalid DB_CONN_MAX_LIFETIME: %w", err)
		}
	}
	regime, err := model.ParseRegime(cfg.Tax.LandlordCategory, cfg.Tax.TenantCategory)
	if err != nil {
		return fmt.Errorf("invalid TAX_LANDLORD_CATEGORY/TAX_TENANT_CATEGORY: %w", err)
	}
	cfg.Tax.Regime = regime
	return nil
}

func parseList(raw string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	items := strings.Split(raw, ",")
	result := make([]string, 0, len(items))
	for _, item := range items {
		item = strings.TrimSpace(item)
		if item != "" {
			result = append(result, item)
		}
	}
	return result
}
