package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	content := `
# Comment line
CRONLENS_ENV_A=value1
export CRONLENS_ENV_B="quoted value"
CRONLENS_ENV_C='single'

not-a-pair
=missing-key
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	for _, k := range []string{"CRONLENS_ENV_A", "CRONLENS_ENV_B", "CRONLENS_ENV_C"} {
		k := k
		t.Cleanup(func() { os.Unsetenv(k) })
	}

	require.NoError(t, LoadEnv(path))

	assert.Equal(t, "value1", os.Getenv("CRONLENS_ENV_A"))
	assert.Equal(t, "quoted value", os.Getenv("CRONLENS_ENV_B"))
	assert.Equal(t, "single", os.Getenv("CRONLENS_ENV_C"))
}

func TestLoadEnv_DoesNotOverride(t *testing.T) {
	t.Setenv("CRONLENS_ENV_KEEP", "original")

	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("CRONLENS_ENV_KEEP=replaced\n"), 0644))

	require.NoError(t, LoadEnv(path))
	assert.Equal(t, "original", os.Getenv("CRONLENS_ENV_KEEP"))
}

func TestLoadEnv_MissingFile(t *testing.T) {
	err := LoadEnv(filepath.Join(t.TempDir(), "missing.env"))
	assert.Error(t, err)
}

func TestLoadEnvOptional(t *testing.T) {
	assert.NoError(t, LoadEnvOptional(filepath.Join(t.TempDir(), "missing.env")))
}

func TestParseEnvLine(t *testing.T) {
	tests := []struct {
		line   string
		key    string
		value  string
		wantOK bool
	}{
		{"KEY=value", "KEY", "value", true},
		{"  KEY = value  ", "KEY", "value", true},
		{"export KEY=value", "KEY", "value", true},
		{`KEY="a=b"`, "KEY", "a=b", true},
		{"# KEY=value", "", "", false},
		{"", "", "", false},
		{"novalue", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			key, value, ok := parseEnvLine(tt.line)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.key, key)
				assert.Equal(t, tt.value, value)
			}
		})
	}
}
