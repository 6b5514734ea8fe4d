package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/deduction"
	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

type Config struct {
	Database  DatabaseConfig
	JWT       JWTConfig
	App       AppConfig
	Deduction DeductionConfig
	Office    OfficeConfig
	AMQP      AMQPConfig
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret           string
	AccessExpiration string
}

// AppConfig holds application configuration
type AppConfig struct {
	Port        int
	Env         string
	LogLevel    string
	FrontendURL string
	Timezone    string
}

// DeductionConfig holds the default rate table used when a company has not
// saved its own payroll settings.
type DeductionConfig struct {
	Alpa       decimal.Decimal
	Terlambat  decimal.Decimal
	Izin       decimal.Decimal
	Sakit      decimal.Decimal
	LateCutoff string
}

// OfficeConfig describes the clock-in geofence. A zero radius disables it.
// AutoClockOut is written into sessions left open past midnight.
type OfficeConfig struct {
	Latitude     float64
	Longitude    float64
	RadiusMeters float64
	AutoClockOut string
}

// AMQPConfig is optional; an empty URL disables event publishing.
type AMQPConfig struct {
	URL      string
	Exchange string
	Queue    string
}

func Load() (*Config, error) {
	// .env is optional, the environment wins either way
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("error loading .env file: %w", err)
	}

	config := &Config{}

	// Database configuration
	dbPort, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}

	config.Database = DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     dbPort,
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", "cmlabs-hris"),
		SSLMode:  getEnv("DB_SSL_MODE", "disable"),
	}

	// Application configuration
	appPort, err := strconv.Atoi(getEnv("APP_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}

	config.App = AppConfig{
		Port:        appPort,
		Env:         getEnv("APP_ENV", "development"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		FrontendURL: getEnv("FRONTEND_URL", "http://localhost:5173"),
		Timezone:    getEnv("TIMEZONE", "Asia/Jakarta"),
	}

	// JWT configuration
	config.JWT = JWTConfig{
		Secret:           getEnv("JWT_SECRET_KEY", ""),
		AccessExpiration: getEnv("JWT_ACCESS_EXPIRATION_TIME", "1h"),
	}

	// Deduction rates
	defaults := deduction.DefaultRates()
	config.Deduction.LateCutoff = getEnv("LATE_CUTOFF", "08:00")
	rates := []struct {
		key      string
		fallback decimal.Decimal
		dst      *decimal.Decimal
	}{
		{"POTONGAN_ALPA", defaults.Alpa, &config.Deduction.Alpa},
		{"POTONGAN_TERLAMBAT", defaults.Terlambat, &config.Deduction.Terlambat},
		{"POTONGAN_IZIN", defaults.Izin, &config.Deduction.Izin},
		{"POTONGAN_SAKIT", defaults.Sakit, &config.Deduction.Sakit},
	}
	for _, r := range rates {
		v, err := getEnvDecimal(r.key, r.fallback)
		if err != nil {
			return nil, err
		}
		*r.dst = v
	}

	// Office geofence
	if config.Office.Latitude, err = getEnvFloat("OFFICE_LATITUDE", 0); err != nil {
		return nil, err
	}
	if config.Office.Longitude, err = getEnvFloat("OFFICE_LONGITUDE", 0); err != nil {
		return nil, err
	}
	if config.Office.RadiusMeters, err = getEnvFloat("OFFICE_RADIUS_METERS", 0); err != nil {
		return nil, err
	}
	config.Office.AutoClockOut = getEnv("AUTO_CLOCK_OUT", "17:00")

	// AMQP
	config.AMQP = AMQPConfig{
		URL:      getEnv("AMQP_URL", ""),
		Exchange: getEnv("AMQP_EXCHANGE", "hris.payroll"),
		Queue:    getEnv("AMQP_QUEUE", "payroll.created"),
	}

	// Validate required fields
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Database.Password == "" {
		return fmt.Errorf("DB_PASSWORD is required")
	}
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET_KEY is required")
	}
	if _, err := time.ParseDuration(c.JWT.AccessExpiration); err != nil {
		return fmt.Errorf("invalid JWT_ACCESS_EXPIRATION_TIME: %w", err)
	}
	if _, err := time.LoadLocation(c.App.Timezone); err != nil {
		return fmt.Errorf("invalid TIMEZONE: %w", err)
	}
	if _, ok := deduction.ParseClock(c.Deduction.LateCutoff); !ok {
		return fmt.Errorf("invalid LATE_CUTOFF %q, expected HH:MM", c.Deduction.LateCutoff)
	}
	for name, v := range map[string]decimal.Decimal{
		"POTONGAN_ALPA":      c.Deduction.Alpa,
		"POTONGAN_TERLAMBAT": c.Deduction.Terlambat,
		"POTONGAN_IZIN":      c.Deduction.Izin,
		"POTONGAN_SAKIT":     c.Deduction.Sakit,
	} {
		if v.IsNegative() {
			return fmt.Errorf("%s must not be negative", name)
		}
	}
	if c.Office.RadiusMeters < 0 {
		return fmt.Errorf("OFFICE_RADIUS_METERS must not be negative")
	}
	if _, ok := deduction.ParseClock(c.Office.AutoClockOut); !ok {
		return fmt.Errorf("invalid AUTO_CLOCK_OUT %q, expected HH:MM", c.Office.AutoClockOut)
	}
	return nil
}

// DatabaseURL returns the PostgreSQL connection string
func (c *Config) DatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

func (d DeductionConfig) Rates() deduction.Rates {
	return deduction.Rates{
		Alpa:      d.Alpa,
		Terlambat: d.Terlambat,
		Izin:      d.Izin,
		Sakit:     d.Sakit,
	}
}

// Cutoff returns the parsed late cutoff. Validate guarantees it parses.
func (d DeductionConfig) Cutoff() deduction.ClockTime {
	c, _ := deduction.ParseClock(d.LateCutoff)
	return c
}

func (a AppConfig) Location() *time.Location {
	loc, err := time.LoadLocation(a.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func (o OfficeConfig) GeofenceEnabled() bool {
	return o.RadiusMeters > 0
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvDecimal(key string, fallback decimal.Decimal) (decimal.Decimal, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback, nil
	}
	d, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}

func getEnvFloat(key string, fallback float64) (float64, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback, nil
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return f, nil
}
