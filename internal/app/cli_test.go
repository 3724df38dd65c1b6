package app

import (
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFlagSet(register func(*pflag.FlagSet)) *pflag.FlagSet {
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	register(flags)
	return flags
}

func TestRegisterFlags(t *testing.T) {
	flags := newFlagSet(RegisterFlags)

	shorthands := map[string]string{
		"transport":               "t",
		"host":                    "H",
		"port":                    "p",
		"auth-type":               "a",
		"auth-basic-username":     "u",
		"auth-basic-password":     "P",
		"auth-api-keys":           "k",
		"catalog":                 "c",
		"catalog-watch":           "",
		"catalog-watch-debounce":  "",
		"catalog-reload-schedule": "",
		"catalog-name-prefix":     "",
		"catalog-default-limit":   "",
		"catalog-full-text":       "",
		"catalog-cache-enabled":   "",
		"catalog-cache-size":      "",
		"catalog-cache-ttl":       "",
		"metrics-enabled":         "",
		"metrics-path":            "",
	}

	for name, shorthand := range shorthands {
		flag := flags.Lookup(name)
		if assert.NotNil(t, flag, "flag %q", name) {
			assert.Equal(t, shorthand, flag.Shorthand, "flag %q", name)
		}
	}
}

func TestRegisterFlags_ParsedValues(t *testing.T) {
	flags := newFlagSet(RegisterFlags)
	require.NoError(t, flags.Parse([]string{
		"--transport", "sse",
		"-H", "localhost",
		"--port", "9090",
		"--auth-type", "basic",
		"--catalog-watch",
		"--catalog-cache-ttl", "5m",
		"--catalog-reload-schedule", "@every 10m",
		"--metrics-enabled",
	}))

	transport, _ := flags.GetString("transport")
	host, _ := flags.GetString("host")
	port, _ := flags.GetInt("port")
	authType, _ := flags.GetString("auth-type")
	watch, _ := flags.GetBool("catalog-watch")
	ttl, _ := flags.GetDuration("catalog-cache-ttl")
	schedule, _ := flags.GetString("catalog-reload-schedule")
	metricsEnabled, _ := flags.GetBool("metrics-enabled")

	assert.Equal(t, "sse", transport)
	assert.Equal(t, "localhost", host)
	assert.Equal(t, 9090, port)
	assert.Equal(t, "basic", authType)
	assert.True(t, watch)
	assert.Equal(t, 5*time.Minute, ttl)
	assert.Equal(t, "@every 10m", schedule)
	assert.True(t, metricsEnabled)
}

func TestRegisterCatalogFlags(t *testing.T) {
	flags := newFlagSet(RegisterCatalogFlags)
	require.NoError(t, flags.Parse([]string{"-c", "widgets.yaml", "--catalog-name-prefix", "ui."}))

	path, _ := flags.GetString("catalog")
	prefix, _ := flags.GetString("catalog-name-prefix")
	assert.Equal(t, "widgets.yaml", path)
	assert.Equal(t, "ui.", prefix)

	assert.Nil(t, flags.Lookup("transport"), "server flags stay off one-shot commands")
	assert.Nil(t, flags.Lookup("catalog-watch"))
}
