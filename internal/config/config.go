package config

import (
	"strconv"
	"time"

	"github.com/spf13/viper"
)

// Config holds the configuration settings for the create-point service.
//
// Fields:
// - Env: The current environment (e.g., local, development, production).
// - Port: The port of the public web server.
// - MonitoringPort: The port of the health and metrics server.
// - APIURL: Base URL of the points API (items catalog and point creation).
// - IBGEURL: Base URL of the IBGE localities API.
// - ProviderType: The geocoding provider used to resolve initial positions (google, nominatim, none).
// - APIKey: The API key of the geocoding provider (required for Google).
// - AddrPrefix: Prefix prepended to geocoded addresses.
// - DefaultPosition: Position used when nothing better is known.
// - RequestTimeout: Timeout of every upstream request.
// - MaxUploadSize: Maximum accepted size of a create-point form, image included.
// - Outbox: Redelivery settings for submissions that failed to reach the points API.
// - Database: Configuration settings for the PostgreSQL outbox database.
type Config struct {
	Env             string
	Port            int
	MonitoringPort  int
	APIURL          string
	IBGEURL         string
	ProviderType    string
	APIKey          string
	AddrPrefix      string
	DefaultPosition Position
	RequestTimeout  time.Duration
	MaxUploadSize   int64
	Outbox          OutboxConfig
	Database        PostgresConfig
}

// Position is a configured latitude/longitude pair.
type Position struct {
	Latitude  float64
	Longitude float64
}

// OutboxConfig controls redelivery of queued submissions.
type OutboxConfig struct {
	Workers  int           // The number of concurrent redelivery workers.
	Interval time.Duration // The duration between redelivery rounds.
}

// PostgresConfig struct holds the configuration details for connecting to a PostgreSQL database.
type PostgresConfig struct {
	Host     string // Host is the database server address. An empty host disables the outbox.
	Port     string // Port is the database server port.
	User     string // User is the database user.
	Password string // Password is the database user's password.
	Name     string // Name is the name of the database.
}

// Enabled reports whether a database was configured.
func (p PostgresConfig) Enabled() bool {
	return p.Host != ""
}

// MustLoad reads the configuration from the environment and an optional .env file.
// It panics when a value cannot be parsed.
func MustLoad() *Config {
	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	_ = v.ReadInConfig()
	v.AutomaticEnv()

	setDefaults(v)

	port, err := strconv.Atoi(v.GetString("ECOLETA_PORT"))
	if err != nil {
		panic("failed to parse port for web server from configuration")
	}

	monitoringPort, err := strconv.Atoi(v.GetString("ECOLETA_HEALTH_PORT"))
	if err != nil {
		panic("failed to parse port for monitoring server from configuration")
	}

	timeout, err := time.ParseDuration(v.GetString("ECOLETA_REQUEST_TIMEOUT"))
	if err != nil {
		panic("failed to parse request timeout from configuration")
	}

	maxUpload, err := strconv.ParseInt(v.GetString("ECOLETA_MAX_UPLOAD_BYTES"), 10, 64)
	if err != nil {
		panic("failed to parse max upload size from configuration, must be an integer")
	}

	latitude, err := strconv.ParseFloat(v.GetString("ECOLETA_DEFAULT_LATITUDE"), 64)
	if err != nil {
		panic("failed to parse default latitude from configuration")
	}

	longitude, err := strconv.ParseFloat(v.GetString("ECOLETA_DEFAULT_LONGITUDE"), 64)
	if err != nil {
		panic("failed to parse default longitude from configuration")
	}

	workers, err := strconv.Atoi(v.GetString("ECOLETA_OUTBOX_WORKERS"))
	if err != nil || workers < 1 {
		panic("failed to parse outbox workers from configuration, must be a positive integer")
	}

	interval, err := time.ParseDuration(v.GetString("ECOLETA_OUTBOX_INTERVAL"))
	if err != nil {
		panic("failed to parse outbox interval from configuration")
	}

	return &Config{
		Env:             v.GetString("ECOLETA_ENV"),
		Port:            port,
		MonitoringPort:  monitoringPort,
		APIURL:          v.GetString("ECOLETA_API_URL"),
		IBGEURL:         v.GetString("ECOLETA_IBGE_URL"),
		ProviderType:    v.GetString("ECOLETA_PROVIDER_TYPE"),
		APIKey:          v.GetString("ECOLETA_PROVIDER_KEY"),
		AddrPrefix:      v.GetString("ECOLETA_ADDRESS_PREFIX"),
		DefaultPosition: Position{Latitude: latitude, Longitude: longitude},
		RequestTimeout:  timeout,
		MaxUploadSize:   maxUpload,
		Outbox: OutboxConfig{
			Workers:  workers,
			Interval: interval,
		},
		Database: PostgresConfig{
			Host:     v.GetString("DB_HOST"),
			Port:     v.GetString("DB_PORT"),
			User:     v.GetString("DB_USERNAME"),
			Password: v.GetString("DB_PASSWORD"),
			Name:     v.GetString("DB_NAME"),
		},
	}
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ECOLETA_ENV", "production")
	v.SetDefault("ECOLETA_PORT", "3000")
	v.SetDefault("ECOLETA_HEALTH_PORT", "8080")
	v.SetDefault("ECOLETA_API_URL", "http://localhost:3333")
	v.SetDefault("ECOLETA_IBGE_URL", "https://servicodados.ibge.gov.br/api/v1")
	v.SetDefault("ECOLETA_PROVIDER_TYPE", "nominatim")
	v.SetDefault("ECOLETA_PROVIDER_KEY", "")
	v.SetDefault("ECOLETA_ADDRESS_PREFIX", "")
	v.SetDefault("ECOLETA_DEFAULT_LATITUDE", "-14.235")
	v.SetDefault("ECOLETA_DEFAULT_LONGITUDE", "-51.9253")
	v.SetDefault("ECOLETA_REQUEST_TIMEOUT", "10s")
	v.SetDefault("ECOLETA_MAX_UPLOAD_BYTES", "10485760")
	v.SetDefault("ECOLETA_OUTBOX_WORKERS", "2")
	v.SetDefault("ECOLETA_OUTBOX_INTERVAL", "1m")
	v.SetDefault("DB_HOST", "")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_USERNAME", "")
	v.SetDefault("DB_PASSWORD", "")
	v.SetDefault("DB_NAME", "")
}
