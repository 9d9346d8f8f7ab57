package config

import (
	"bytes"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mapLookup(env map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		v, ok := env[key]
		return v, ok
	}
}

func TestFromEnvDefaults(t *testing.T) {
	cfg, err := FromEnv(mapLookup(nil))
	require.NoError(t, err)
	assert.Equal(t, "auto", cfg.Kernel)
	assert.Equal(t, runtime.NumCPU(), cfg.Jobs)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
}

func TestFromEnv(t *testing.T) {
	cfg, err := FromEnv(mapLookup(map[string]string{
		EnvKernel:    "scalar",
		EnvJobs:      "3",
		EnvLogLevel:  "debug",
		EnvLogFormat: "json",
	}))
	require.NoError(t, err)
	assert.Equal(t, Config{Kernel: "scalar", Jobs: 3, LogLevel: "debug", LogFormat: "json"}, cfg)
}

func TestFromEnvEmptyValuesUseDefaults(t *testing.T) {
	cfg, err := FromEnv(mapLookup(map[string]string{EnvKernel: "", EnvJobs: ""}))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestFromEnvMalformedJobs(t *testing.T) {
	_, err := FromEnv(mapLookup(map[string]string{EnvJobs: "many"}))
	require.ErrorIs(t, err, ErrInvalid)
}

func TestFromEnvDefersValidation(t *testing.T) {
	cfg, err := FromEnv(mapLookup(map[string]string{EnvJobs: "0", EnvKernel: "avx512"}))
	require.NoError(t, err)
	assert.Equal(t, 0, cfg.Jobs)
	assert.Equal(t, "avx512", cfg.Kernel)
	require.ErrorIs(t, cfg.Validate(), ErrInvalid)

	cfg.Jobs, cfg.Kernel = 4, "swar"
	require.NoError(t, cfg.Validate())
}

func TestValidate(t *testing.T) {
	tests := map[string]map[string]string{
		"jobs_zero": {EnvJobs: "0"},
		"kernel":    {EnvKernel: "avx512"},
		"level":     {EnvLogLevel: "loud"},
		"format":    {EnvLogFormat: "xml"},
	}
	for name, env := range tests {
		t.Run(name, func(t *testing.T) {
			cfg, err := FromEnv(mapLookup(env))
			require.NoError(t, err)
			require.ErrorIs(t, cfg.Validate(), ErrInvalid)
		})
	}
}

func TestLoadEnvFile(t *testing.T) {
	t.Cleanup(func() {
		os.Unsetenv(EnvKernel)
		os.Unsetenv(EnvJobs)
	})

	path := filepath.Join(t.TempDir(), "memscan.env")
	require.NoError(t, os.WriteFile(path, []byte("MEMSCAN_KERNEL=swar\nMEMSCAN_JOBS=2\n"), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "swar", cfg.Kernel)
	assert.Equal(t, 2, cfg.Jobs)
}

func TestLoadMissingEnvFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.env"))
	require.NoError(t, err)
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	log := Config{Kernel: "auto", Jobs: 1, LogLevel: "debug", LogFormat: "json"}.NewLogger(&buf)
	assert.Equal(t, logrus.DebugLevel, log.GetLevel())

	log.WithField("file", "a.txt").Debug("scanned")
	assert.Contains(t, buf.String(), `"file":"a.txt"`)
	assert.Contains(t, buf.String(), `"msg":"scanned"`)

	buf.Reset()
	log = Default().NewLogger(&buf)
	log.Debug("hidden")
	assert.Empty(t, buf.String())
}
