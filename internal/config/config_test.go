package config

import (
	"os"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
)

func TestConfig_ValidateSSLMode(t *testing.T) {
	tests := []struct {
		name        string
		env         string
		sslMode     string
		expectError bool
	}{
		{"Production with empty SSL mode", "production", "", true},
		{"Production with disable SSL mode", "production", "disable", true},
		{"Production with require SSL mode", "production", "require", false},
		{"Prod with disable SSL mode", "prod", "disable", true},
		{"Prod with verify-full SSL mode", "prod", "verify-full", false},
		{"Development with disable SSL mode", "development", "disable", false},
		{"Test with empty SSL mode", "test", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &Config{
				Env:        tt.env,
				DBDriver:   DriverPostgres,
				DBSSLMode:  tt.sslMode,
				DBPassword: "secure-password",
				Port:       "8080",
			}

			err := c.Validate()
			if tt.expectError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestConfig_ValidateDriverAndSchemaMode(t *testing.T) {
	base := func() *Config {
		return &Config{Port: "8080", Env: "development", DBDriver: DriverSQLite, DBSchemaMode: "hybrid"}
	}

	c := base()
	assert.NoError(t, c.Validate())

	c = base()
	c.DBDriver = "mysql"
	assert.Error(t, c.Validate())

	c = base()
	c.DBSchemaMode = "yolo"
	assert.Error(t, c.Validate())

	c = base()
	c.Port = ""
	assert.Error(t, c.Validate())

	c = base()
	c.DBMaxOpenConns = -1
	assert.Error(t, c.Validate())
}

func TestConfig_ProductionSQLiteSkipsPostgresChecks(t *testing.T) {
	c := &Config{Port: "8080", Env: "production", DBDriver: DriverSQLite}
	assert.NoError(t, c.Validate())
}

func TestLoadConfig_Normalization(t *testing.T) {
	defer os.Unsetenv("APP_ENV")
	defer os.Unsetenv("DB_SSLMODE")
	defer os.Unsetenv("DB_DRIVER")
	defer viper.Reset()

	os.Setenv("APP_ENV", "development")
	os.Setenv("DB_SSLMODE", "  DISABLE  ")
	os.Setenv("DB_DRIVER", " SQLite ")

	c, err := LoadConfig()
	assert.NoError(t, err)
	assert.Equal(t, "disable", c.DBSSLMode)
	assert.Equal(t, DriverSQLite, c.DBDriver)
	assert.Equal(t, "persist_favorites=on", c.FeatureFlags)
	assert.Equal(t, 30, c.ListCacheTTLSeconds)
}
