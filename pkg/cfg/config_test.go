package cfg

import (
	"errors"
	"flag"
	"io/ioutil"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	c := Defaults()
	assert.Equal(t, "", c.Host)
	assert.Equal(t, "8754", c.Port)
	assert.Equal(t, 600, c.Warning)
	assert.Equal(t, 3600, c.Critical)
	assert.False(t, c.AlwaysOK)
	assert.False(t, c.PrintVersion)
	assert.Equal(t, "warn", c.LogLevel.String())
}

func TestParse(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want func(c Config)
	}{
		{
			name: "host only",
			args: []string{"--host", "10.0.0.5"},
			want: func(c Config) {
				assert.Equal(t, "10.0.0.5", c.Host)
				assert.Equal(t, DefaultPort, c.Port)
				assert.Equal(t, DefaultWarning, c.Warning)
				assert.Equal(t, DefaultCritical, c.Critical)
			},
		},
		{
			name: "short thresholds",
			args: []string{"--host=feeder", "-w", "60", "-c", "120"},
			want: func(c Config) {
				assert.Equal(t, 60, c.Warning)
				assert.Equal(t, 120, c.Critical)
			},
		},
		{
			name: "long thresholds and port",
			args: []string{"--host", "feeder", "--port", "9000", "--warning=10", "--critical=20", "--always-ok"},
			want: func(c Config) {
				assert.Equal(t, "9000", c.Port)
				assert.Equal(t, 10, c.Warning)
				assert.Equal(t, 20, c.Critical)
				assert.True(t, c.AlwaysOK)
			},
		},
		{
			name: "version without host",
			args: []string{"-V"},
			want: func(c Config) {
				assert.True(t, c.PrintVersion)
			},
		},
		{
			name: "log level",
			args: []string{"--host", "feeder", "--log.level", "DEBUG"},
			want: func(c Config) {
				assert.Equal(t, "debug", c.LogLevel.String())
				assert.NotNil(t, c.LogLevel.Option())
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := Parse("check_fr24feed", tt.args, ioutil.Discard)
			require.NoError(t, err)
			tt.want(c)
		})
	}
}

func TestParse_Errors(t *testing.T) {
	t.Run("MissingHost", func(t *testing.T) {
		_, err := Parse("check_fr24feed", []string{"--port", "1"}, ioutil.Discard)
		assert.True(t, errors.Is(err, ErrHostRequired))
	})

	t.Run("NonNumericThreshold", func(t *testing.T) {
		_, err := Parse("check_fr24feed", []string{"--host", "feeder", "-w", "ten"}, ioutil.Discard)
		assert.Error(t, err)
	})

	t.Run("UnknownFlag", func(t *testing.T) {
		_, err := Parse("check_fr24feed", []string{"--host", "feeder", "--bogus"}, ioutil.Discard)
		assert.Error(t, err)
	})

	t.Run("PositionalArgs", func(t *testing.T) {
		_, err := Parse("check_fr24feed", []string{"--host", "feeder", "extra"}, ioutil.Discard)
		assert.EqualError(t, err, "unrecognized arguments: extra")
	})

	t.Run("BadLogLevel", func(t *testing.T) {
		_, err := Parse("check_fr24feed", []string{"--host", "feeder", "--log.level", "trace"}, ioutil.Discard)
		assert.Error(t, err)
	})

	t.Run("Help", func(t *testing.T) {
		_, err := Parse("check_fr24feed", []string{"-h"}, ioutil.Discard)
		assert.Equal(t, flag.ErrHelp, err)
	})
}

func TestConfig_URL(t *testing.T) {
	c := Config{Host: "192.168.1.20", Port: "8754"}
	assert.Equal(t, "http://192.168.1.20:8754/monitor.json", c.URL())
}
