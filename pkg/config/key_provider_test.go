package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stockorder-sync/pkg/config"
)

func writeEnvFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "push.env")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestFileKeyProvider_LeeLaKey(t *testing.T) {
	path := writeEnvFile(t, "OTRA=1\nBDL_API_KEY=abc-123\n")

	key, err := config.NewFileKeyProvider(path, "BDL_API_KEY").APIKey()
	require.NoError(t, err)
	assert.Equal(t, "abc-123", key)
}

func TestFileKeyProvider_RelecturaEnCadaLlamada(t *testing.T) {
	path := writeEnvFile(t, "BDL_API_KEY=primera\n")
	p := config.NewFileKeyProvider(path, "BDL_API_KEY")

	key, err := p.APIKey()
	require.NoError(t, err)
	assert.Equal(t, "primera", key)

	require.NoError(t, os.WriteFile(path, []byte("BDL_API_KEY=segunda\n"), 0o600))
	key, err = p.APIKey()
	require.NoError(t, err)
	assert.Equal(t, "segunda", key, "la key rotada debe verse sin reiniciar")
}

func TestFileKeyProvider_ArchivoInexistente(t *testing.T) {
	p := config.NewFileKeyProvider(filepath.Join(t.TempDir(), "no-existe.env"), "BDL_API_KEY")

	key, err := p.APIKey()
	assert.Empty(t, key)
	assert.ErrorIs(t, err, config.ErrKeyUnavailable)
}

func TestFileKeyProvider_ClaveAusente(t *testing.T) {
	path := writeEnvFile(t, "OTRA=1\n")

	_, err := config.NewFileKeyProvider(path, "BDL_API_KEY").APIKey()
	assert.ErrorIs(t, err, config.ErrKeyUnavailable)
}

func TestStaticKeyProvider(t *testing.T) {
	key, err := config.StaticKeyProvider("k").APIKey()
	require.NoError(t, err)
	assert.Equal(t, "k", key)

	_, err = config.StaticKeyProvider("").APIKey()
	assert.ErrorIs(t, err, config.ErrKeyUnavailable)
}

func TestPushAPIConfig_TimeoutPorDefecto(t *testing.T) {
	assert.Equal(t, 30.0, config.PushAPIConfig{}.Timeout().Seconds())
	assert.Equal(t, 5.0, config.PushAPIConfig{TimeoutSeconds: 5}.Timeout().Seconds())
}
