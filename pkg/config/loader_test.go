package config_test

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/fieldrules/pkg/config"
	"github.com/dmitrymomot/fieldrules/pkg/environment"
	"github.com/dmitrymomot/fieldrules/pkg/httpserver"
	"github.com/dmitrymomot/fieldrules/pkg/redis"
)

type serviceConfig struct {
	Env   environment.Environment `env:"CFGTEST_APP_ENV" envDefault:"development"`
	HTTP  httpserver.Config
	Redis redis.Config
}

type catalogConfig struct {
	Path string `env:"CFGTEST_CATALOG_PATH" envDefault:"rules.yaml"`
}

type cachedConfig struct {
	Version string `env:"CFGTEST_CATALOG_VERSION"`
}

type secretConfig struct {
	Key string `env:"CFGTEST_SECRET_KEY,required"`
}

type brokenConfig struct {
	Secret string `env:"CFGTEST_BROKEN_SECRET,required"`
}

func TestParse_NestedDefaults(t *testing.T) {
	t.Setenv("CFGTEST_APP_ENV", "stage")
	t.Setenv("HTTP_ADDR", "127.0.0.1:9000")
	t.Setenv("REDIS_RETRY_INTERVAL", "250ms")

	cfg, err := config.Parse[serviceConfig]()
	require.NoError(t, err)

	assert.Equal(t, environment.Staging, cfg.Env)
	assert.Equal(t, "127.0.0.1:9000", cfg.HTTP.Addr)
	assert.Equal(t, 5*time.Second, cfg.HTTP.ShutdownTimeout)
	assert.Equal(t, 250*time.Millisecond, cfg.Redis.RetryInterval)
	assert.Equal(t, 3, cfg.Redis.RetryAttempts)
}

func TestParse_InvalidEnvironment(t *testing.T) {
	t.Setenv("CFGTEST_APP_ENV", "moon")

	_, err := config.Parse[serviceConfig]()
	assert.ErrorIs(t, err, config.ErrParsingConfig)
}

func TestLoad_Defaults(t *testing.T) {
	os.Unsetenv("CFGTEST_CATALOG_PATH")

	var cfg catalogConfig
	require.NoError(t, config.Load(&cfg))
	assert.Equal(t, "rules.yaml", cfg.Path)
}

func TestLoad_CachedPerType(t *testing.T) {
	t.Setenv("CFGTEST_CATALOG_VERSION", "1")

	var first cachedConfig
	require.NoError(t, config.Load(&first))

	t.Setenv("CFGTEST_CATALOG_VERSION", "2")

	var second cachedConfig
	require.NoError(t, config.Load(&second))
	assert.Equal(t, "1", second.Version)
}

func TestLoad_ErrorIsCached(t *testing.T) {
	os.Unsetenv("CFGTEST_BROKEN_SECRET")

	var cfg brokenConfig
	first := config.Load(&cfg)
	require.ErrorIs(t, first, config.ErrParsingConfig)

	t.Setenv("CFGTEST_BROKEN_SECRET", "now-set")
	assert.Equal(t, first, config.Load(&cfg))
}

func TestLoad_NilPointer(t *testing.T) {
	var cfg *catalogConfig
	assert.ErrorIs(t, config.Load(cfg), config.ErrNilPointer)
}

func TestMustLoad(t *testing.T) {
	t.Setenv("CFGTEST_SECRET_KEY", "k")

	var cfg secretConfig
	assert.NotPanics(t, func() { config.MustLoad(&cfg) })
	assert.Equal(t, "k", cfg.Key)
}
