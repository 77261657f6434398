package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEGISConfig_ResolvePassword_Inline(t *testing.T) {
	cfg := EGISConfig{Password: "s3cret"}

	pw, err := cfg.ResolvePassword()
	require.NoError(t, err)
	assert.Equal(t, "s3cret", pw)
}

func TestEGISConfig_ResolvePassword_FileWins(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "egis_password")
	require.NoError(t, os.WriteFile(path, []byte("from-file\n"), 0o600))

	cfg := EGISConfig{Password: "inline", PasswordFile: path}

	pw, err := cfg.ResolvePassword()
	require.NoError(t, err)
	assert.Equal(t, "from-file", pw)
}

func TestEGISConfig_ResolvePassword_FileMissing(t *testing.T) {
	cfg := EGISConfig{PasswordFile: "/nonexistent/egis_password"}

	_, err := cfg.ResolvePassword()
	assert.Error(t, err)
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "ERPNext", cfg.EGIS.ERP)
	assert.Equal(t, "Standard Selling", cfg.EGIS.SellingPriceList)
	assert.Equal(t, "EGIS", cfg.EGIS.ItemGroup)
	assert.Equal(t, "30s", cfg.EGIS.RequestTimeout.String())
}
