package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"zoocore/internal/core"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestDefaults(t *testing.T) {
	cfg, err := Load(New(), "")
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, "sqlite", cfg.Storage.Driver)
	assert.Equal(t, "zoocore.db", cfg.Storage.SQLitePath)
	assert.Equal(t, "fs", cfg.Blob.Driver)
	assert.Equal(t, "./blobdata", cfg.Blob.FSRoot)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format)
	assert.Equal(t, "UTC", cfg.Location.Timezone)
	assert.False(t, cfg.Location.Enabled())
	assert.Equal(t, "none", cfg.Tracing.Exporter)
	assert.Equal(t, "zoocore", cfg.Tracing.ServiceName)
	assert.Equal(t, core.StorageConfig{Driver: core.StorageSQLite, SQLitePath: "zoocore.db"}, cfg.CoreStorage())
}

func TestFileAndEnvironmentOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "zoocore.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
server:
  addr: ":9090"
storage:
  driver: memory
blob:
  driver: s3
  s3:
    bucket: zoo-reports
    path_style: true
tracing:
  exporter: otlp
  endpoint: collector:4317
  insecure: true
location:
  latitude: 52.37
  longitude: 4.89
  timezone: Europe/Amsterdam
`), 0o644))
	t.Setenv("ZOOCORE_SERVER_ADDR", ":7070")
	t.Setenv("ZOOCORE_LOG_FORMAT", "json")

	cfg, err := Load(New(), path)
	require.NoError(t, err)

	assert.Equal(t, ":7070", cfg.Server.Addr, "environment wins over file")
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, "memory", cfg.Storage.Driver)
	assert.Equal(t, "zoo-reports", cfg.Blob.S3.Bucket)
	assert.True(t, cfg.Blob.S3.PathStyle)
	assert.Equal(t, "otlp", cfg.Tracing.Exporter)
	assert.Equal(t, "collector:4317", cfg.Tracing.Endpoint)
	assert.True(t, cfg.Tracing.Insecure)
	assert.True(t, cfg.Location.Enabled())
	loc, err := cfg.Location.TimeLocation()
	require.NoError(t, err)
	assert.Equal(t, "Europe/Amsterdam", loc.String())
}

func TestValidation(t *testing.T) {
	cases := map[string]string{
		"ZOOCORE_STORAGE_DRIVER":     "cassandra",
		"ZOOCORE_LOCATION_LATITUDE":  "120",
		"ZOOCORE_LOCATION_LONGITUDE": "-200",
		"ZOOCORE_LOCATION_TIMEZONE":  "Mars/Olympus",
		"ZOOCORE_LOG_LEVEL":          "loud",
		"ZOOCORE_TRACING_EXPORTER":   "jaeger",
	}
	for key, value := range cases {
		t.Run(key, func(t *testing.T) {
			t.Setenv(key, value)
			_, err := Load(New(), "")
			assert.Error(t, err)
		})
	}
}

func TestMissingFile(t *testing.T) {
	_, err := Load(New(), filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestTimeLocationDefaultsToUTC(t *testing.T) {
	loc, err := LocationConfig{}.TimeLocation()
	require.NoError(t, err)
	assert.Equal(t, time.UTC, loc)
}

func TestOTLPExporterNeedsEndpoint(t *testing.T) {
	t.Setenv("ZOOCORE_TRACING_EXPORTER", "otlp")
	_, err := Load(New(), "")
	require.Error(t, err)

	t.Setenv("ZOOCORE_TRACING_ENDPOINT", "localhost:4317")
	cfg, err := Load(New(), "")
	require.NoError(t, err)
	assert.Equal(t, "localhost:4317", cfg.Tracing.Endpoint)
}
