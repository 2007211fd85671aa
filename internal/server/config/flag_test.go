package config

import (
	"flag"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlags(t *testing.T) {

	tests := []struct {
		expected *Config
		name     string
		args     []string
	}{
		{
			name: "all flags set",
			args: []string{"cmd", "-a", "127.0.0.1:9090", "-d", "db", "-t", "30"},
			expected: &Config{
				EndpointAddrHTTP:      "127.0.0.1:9090",
				DatabaseDSN:           "db",
				TokenValidityDuration: 30 * time.Minute,
			},
		},
		{
			name: "unknown flags are ignored",
			args: []string{"cmd", "-a", "127.0.0.1:9090", "-x", "junk"},
			expected: &Config{
				EndpointAddrHTTP: "127.0.0.1:9090",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			flag.CommandLine = flag.NewFlagSet(os.Args[0], flag.PanicOnError)

			origArgs := os.Args
			t.Cleanup(func() { os.Args = origArgs })
			os.Args = tt.args

			config := &Config{}

			require.NotPanics(t, func() { parseFlags(config) })
			assert.Equal(t, tt.expected.EndpointAddrHTTP, config.EndpointAddrHTTP)
			assert.Equal(t, tt.expected.DatabaseDSN, config.DatabaseDSN)
			assert.Equal(t, tt.expected.TokenValidityDuration, config.TokenValidityDuration)
		})
	}
}
