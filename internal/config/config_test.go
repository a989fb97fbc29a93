package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleConfig = `
[server]
http_port = 8090

[database]
host = "localhost"
user = "rental"
password = "secret"
dbname = "rental"

[logs]
file = "logs/app.log"
level = "debug"

[metrics]
enabled = true

[redis]
enabled = true
addr = "localhost:6379"

[kafka]
enabled = true
brokers = ["localhost:9092"]

[store_service]
url = "http://localhost:8081"
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_AppliesDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, sampleConfig))
	require.NoError(t, err)

	assert.Equal(t, 8090, cfg.Server.HTTPPort)
	assert.Equal(t, 10, cfg.Server.ShutdownTimeout)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, "disable", cfg.Database.SSLMode)
	assert.Equal(t, "/metrics", cfg.Metrics.Path)
	assert.Equal(t, "rental-service", cfg.Metrics.ServiceName)
	assert.Equal(t, "rental.events", cfg.Kafka.Topic)
	assert.Equal(t, 60, cfg.Redis.ProductTTL)
	assert.Equal(t, 3, cfg.Engine.TxMaxAttempts)
	assert.Equal(t, "RSV", cfg.Engine.ReservationNumberPrefix)
	assert.Equal(t, "host=localhost port=5432 user=rental password=secret dbname=rental sslmode=disable", cfg.Database.DSN())
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("DB_PASSWORD", "from-env")
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("REDIS_ADDR", "cache:6379")
	t.Setenv("KAFKA_BROKERS", "k1:9092, k2:9092,")

	cfg, err := Load(writeConfig(t, sampleConfig))
	require.NoError(t, err)

	assert.Equal(t, "from-env", cfg.Database.Password)
	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Equal(t, "cache:6379", cfg.Redis.Addr)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.Kafka.Brokers)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.ErrorIs(t, err, ErrReadConfig)
}

func TestLoad_Invalid(t *testing.T) {
	content := `
[server]
http_port = 70000

[database]
host = "localhost"

[logs]
level = "verbose"

[redis]
enabled = true
`
	_, err := Load(writeConfig(t, content))

	require.ErrorIs(t, err, ErrInvalidConfig)
	assert.Contains(t, err.Error(), "http_port")
	assert.Contains(t, err.Error(), "dbname")
	assert.Contains(t, err.Error(), "logs.level")
	assert.Contains(t, err.Error(), "redis.addr")
	assert.Contains(t, err.Error(), "store_service.url")
}
