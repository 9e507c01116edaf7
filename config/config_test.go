package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyDefaults(t *testing.T) {
	cfg := &Config{}
	applyDefaults(cfg)

	assert.Equal(t, defaultHost, cfg.HTTP.Host)
	assert.Equal(t, defaultPort, cfg.HTTP.Port)
	assert.Equal(t, defaultMaxRequestBodySize, cfg.HTTP.MaxRequestBodySize)
	require.NotNil(t, cfg.Storage)
	assert.Equal(t, StorageTypeFile, cfg.Storage.Type)
	assert.Equal(t, MediumBlob, cfg.Storage.File.Medium)
	assert.NotEmpty(t, cfg.Storage.File.URL)
	assert.Equal(t, DriverPostgres, cfg.Storage.DB.Driver)
	require.NotNil(t, cfg.Events)
	assert.Equal(t, defaultWorkerPort, cfg.Events.WorkerPort)
}

func TestApplyAPIEnv(t *testing.T) {
	t.Setenv("HBNB_API_HOST", "127.0.0.1")
	t.Setenv("HBNB_API_PORT", "5001")
	t.Setenv("HBNB_TYPE_STORAGE", "db")

	cfg := &Config{}
	applyDefaults(cfg)
	applyAPIEnv(cfg)

	assert.Equal(t, "127.0.0.1", cfg.HTTP.Host)
	assert.Equal(t, 5001, cfg.HTTP.Port)
	assert.Equal(t, StorageTypeDB, cfg.Storage.Type)
}

func TestApplyAPIEnv_IgnoresBadPort(t *testing.T) {
	t.Setenv("HBNB_API_PORT", "not-a-port")

	cfg := &Config{}
	applyDefaults(cfg)
	applyAPIEnv(cfg)

	assert.Equal(t, defaultPort, cfg.HTTP.Port)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{name: "file on blob", mutate: func(*Config) {}},
		{name: "file on redis without redis", mutate: func(c *Config) { c.Storage.File.Medium = MediumRedis }, wantErr: true},
		{name: "file on redis", mutate: func(c *Config) {
			c.Storage.File.Medium = MediumRedis
			c.Redis = &RedisConfig{Addr: "localhost:6379"}
		}},
		{name: "unknown medium", mutate: func(c *Config) { c.Storage.File.Medium = "tape" }, wantErr: true},
		{name: "db on mysql", mutate: func(c *Config) {
			c.Storage.Type = StorageTypeDB
			c.Storage.DB.Driver = DriverMySQL
			c.MySQL = &MySQLConfig{Host: "localhost"}
		}},
		{name: "db on mysql without mysql", mutate: func(c *Config) {
			c.Storage.Type = StorageTypeDB
			c.Storage.DB.Driver = DriverMySQL
		}, wantErr: true},
		{name: "db on postgres without postgres", mutate: func(c *Config) { c.Storage.Type = StorageTypeDB }, wantErr: true},
		{name: "unknown driver", mutate: func(c *Config) {
			c.Storage.Type = StorageTypeDB
			c.Storage.DB.Driver = "sqlite"
		}, wantErr: true},
		{name: "unknown type", mutate: func(c *Config) { c.Storage.Type = "memory" }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{}
			applyDefaults(cfg)
			tt.mutate(cfg)

			err := cfg.validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()

	require.NoError(t, loadDotEnv(filepath.Join(dir, "missing.env")))

	path := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(path, []byte("HBNB_DOTENV_PROBE=loaded\n"), 0o600))
	t.Cleanup(func() { _ = os.Unsetenv("HBNB_DOTENV_PROBE") })

	require.NoError(t, loadDotEnv(path))
	assert.Equal(t, "loaded", os.Getenv("HBNB_DOTENV_PROBE"))
}

func TestBuildMySQLReplicasFromEnv(t *testing.T) {
	t.Setenv("MYSQL_REPLICAS_0_HOST", "replica-a")
	t.Setenv("MYSQL_REPLICAS_0_PORT", "3307")
	t.Setenv("MYSQL_REPLICAS_1_HOST", "replica-b")

	replicas := buildMySQLReplicasFromEnv()

	require.Len(t, replicas, 1)
	assert.Equal(t, MySQLReplica{Host: "replica-a", Port: 3307}, replicas[0])
}
