package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/shotbrain/internal/core/domain"
)

func TestMCPCmd_Registered(t *testing.T) {
	var serve bool
	for _, c := range mcpCmd.Commands() {
		if c.Name() == "serve" {
			serve = true
		}
	}
	assert.True(t, serve)

	flag := mcpServeCmd.Flags().Lookup("port")
	require.NotNil(t, flag)
	assert.Equal(t, "p", flag.Shorthand)
	assert.Equal(t, "0", flag.DefValue)

	host := mcpServeCmd.Flags().Lookup("host")
	require.NotNil(t, host)
	assert.Equal(t, "localhost", host.DefValue)
}

func TestMCPServe_NotConfigured(t *testing.T) {
	SetServices(Services{})

	_, err := execute(t, "mcp", "serve")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "analysis service not configured")
}

func TestMCPAddr(t *testing.T) {
	tests := []struct {
		host    string
		port    int
		want    string
		wantErr bool
	}{
		{"localhost", 8080, "localhost:8080", false},
		{"0.0.0.0", 1, "0.0.0.0:1", false},
		{"::1", 9000, "[::1]:9000", false},
		{"localhost", -1, "", true},
		{"localhost", 70000, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			got, err := mcpAddr(tt.host, tt.port)
			if tt.wantErr {
				assert.ErrorIs(t, err, domain.ErrInvalidInput)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMCPServe_InvalidPort(t *testing.T) {
	setupTestServices(t)

	_, err := execute(t, "mcp", "serve", "--port", "70000")

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
