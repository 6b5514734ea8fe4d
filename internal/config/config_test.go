package config

import (
	"testing"

	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/deduction"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("DB_PASSWORD", "secret")
	t.Setenv("JWT_SECRET_KEY", "jwt-secret")
	t.Setenv("TIMEZONE", "UTC")
}

func TestLoad_Defaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.App.Port)
	assert.True(t, cfg.Deduction.Alpa.Equal(decimal.NewFromInt(100000)))
	assert.True(t, cfg.Deduction.Terlambat.Equal(decimal.NewFromInt(25000)))
	assert.True(t, cfg.Deduction.Izin.Equal(decimal.NewFromInt(50000)))
	assert.True(t, cfg.Deduction.Sakit.IsZero())
	assert.Equal(t, deduction.ClockTime{Hour: 8}, cfg.Deduction.Cutoff())
	assert.False(t, cfg.Office.GeofenceEnabled())
	assert.Equal(t, "17:00", cfg.Office.AutoClockOut)
	assert.Empty(t, cfg.AMQP.URL)
}

func TestLoad_RateOverrides(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("POTONGAN_ALPA", "150000")
	t.Setenv("POTONGAN_SAKIT", "10000")
	t.Setenv("LATE_CUTOFF", "08:30")

	cfg, err := Load()
	require.NoError(t, err)

	rates := cfg.Deduction.Rates()
	assert.True(t, rates.Alpa.Equal(decimal.NewFromInt(150000)))
	assert.True(t, rates.Sakit.Equal(decimal.NewFromInt(10000)))
	assert.Equal(t, deduction.ClockTime{Hour: 8, Minute: 30}, cfg.Deduction.Cutoff())
}

func TestLoad_Invalid(t *testing.T) {
	cases := map[string]string{
		"POTONGAN_ALPA":        "lots",
		"POTONGAN_IZIN":        "-1",
		"LATE_CUTOFF":          "8 o'clock",
		"OFFICE_RADIUS_METERS": "-5",
		"APP_PORT":             "http",
		"AUTO_CLOCK_OUT":       "evening",
	}
	for key, value := range cases {
		t.Run(key, func(t *testing.T) {
			setRequiredEnv(t)
			t.Setenv(key, value)

			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestValidate_RequiresSecrets(t *testing.T) {
	cfg := &Config{
		App:       AppConfig{Timezone: "UTC"},
		JWT:       JWTConfig{AccessExpiration: "1h"},
		Deduction: DeductionConfig{LateCutoff: "08:00"},
		Office:    OfficeConfig{AutoClockOut: "17:00"},
	}
	assert.EqualError(t, cfg.Validate(), "DB_PASSWORD is required")

	cfg.Database.Password = "x"
	assert.EqualError(t, cfg.Validate(), "JWT_SECRET_KEY is required")

	cfg.JWT.Secret = "y"
	assert.NoError(t, cfg.Validate())
}

func TestDatabaseURL(t *testing.T) {
	cfg := &Config{Database: DatabaseConfig{
		Host: "db", Port: 5432, User: "hris", Password: "pw", Name: "payroll", SSLMode: "disable",
	}}
	assert.Equal(t, "postgres://hris:pw@db:5432/payroll?sslmode=disable", cfg.DatabaseURL())
}
