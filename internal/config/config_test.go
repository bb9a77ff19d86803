package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	tests := []struct {
		name        string
		envVars     map[string]string
		expectError bool
		errorMsg    string
	}{
		{
			name:        "Success with defaults",
			envVars:     map[string]string{},
			expectError: false,
		},
		{
			name: "Success with all config specified",
			envVars: map[string]string{
				"API_BASE_URL":                   "https://orders.example.com",
				"API_TIMEOUT":                    "10s",
				"API_MAX_RETRIES":                "2",
				"GEO_BASE_URL":                   "https://geo.example.com",
				"AUTH_TOKEN":                     "abc123",
				"LOG_LEVEL":                      "debug",
				"LOG_FORMAT":                     "json",
				"LIST_PAGE_SIZE":                 "25",
				"LIST_SEARCH_DEBOUNCE":           "200ms",
				"POLICY_STATUS_EDIT_WHEN_CLOSED": "false",
			},
			expectError: false,
		},
		{
			name: "Error - invalid log level",
			envVars: map[string]string{
				"LOG_LEVEL": "invalid",
			},
			expectError: true,
			errorMsg:    "invalid log level",
		},
		{
			name: "Error - invalid log format",
			envVars: map[string]string{
				"LOG_FORMAT": "xml",
			},
			expectError: true,
			errorMsg:    "invalid log format",
		},
		{
			name: "Error - page size not in allowed set",
			envVars: map[string]string{
				"LIST_PAGE_SIZE": "7",
			},
			expectError: true,
			errorMsg:    "invalid page size",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Clear environment
			os.Clearenv()

			// Set test environment variables
			for key, value := range tt.envVars {
				os.Setenv(key, value)
			}

			cfg, err := Load()

			if tt.expectError {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errorMsg)
				assert.Nil(t, cfg)
			} else {
				require.NoError(t, err)
				require.NotNil(t, cfg)
			}

			// Clean up
			os.Clearenv()
		})
	}
}

func TestLoad_Defaults(t *testing.T) {
	os.Clearenv()
	defer os.Clearenv()

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:8080", cfg.API.BaseURL)
	assert.Equal(t, 30*time.Second, cfg.API.Timeout)
	assert.Equal(t, 3, cfg.API.MaxRetries)
	assert.Equal(t, 5, cfg.List.PageSize)
	assert.Equal(t, 500*time.Millisecond, cfg.List.SearchDebounce)
	assert.Equal(t, []int{5, 10, 25}, cfg.List.AllowedPageSizes)
	assert.True(t, cfg.Policy.AllowStatusEditWhenClosed)
	assert.True(t, cfg.Policy.PruneZeroQuantityOnSubmit)
	assert.Empty(t, cfg.Auth.Token)
}

func TestListConfig_PageSizeAllowed(t *testing.T) {
	cfg := ListConfig{AllowedPageSizes: []int{5, 10, 25}}

	assert.True(t, cfg.PageSizeAllowed(5))
	assert.True(t, cfg.PageSizeAllowed(25))
	assert.False(t, cfg.PageSizeAllowed(7))
	assert.False(t, cfg.PageSizeAllowed(0))
}
