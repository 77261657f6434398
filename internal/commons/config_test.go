package commons

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_ParsesYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")

	content := `
server:
  port: 9090
database:
  host: db.internal
  port: 3306
  name: palantir
log:
  level: debug
egis:
  url: https://www.egis-online.de/cgi-bin/WebObjects/EBC.woa/wa
  login: shopuser
  erp: ERPNext
  sellingPriceList: Standard Selling
  itemGroup: EGIS
  requestTimeout: 30s
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "shopuser", cfg.EGIS.Login)
	assert.Equal(t, "Standard Selling", cfg.EGIS.SellingPriceList)
	assert.Equal(t, 30*time.Second, cfg.EGIS.RequestTimeout)
}

func TestLoadConfig_MissingFile(t *testing.T) {
	_, err := LoadConfig("/nonexistent/config.yaml")
	assert.Error(t, err)
}

func TestLoadConfig_InvalidYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server: [not: closed"), 0o600))

	_, err := LoadConfig(path)
	assert.Error(t, err)
}
