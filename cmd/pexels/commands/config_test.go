package commands

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigFileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	viper.Set("config", path)

	defer viper.Reset()

	err := saveConfigFile(&Config{Token: "secret", Locale: "de-DE"})
	require.NoError(t, err)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	config, err := loadConfigFile()
	require.NoError(t, err)
	assert.Equal(t, "secret", config.Token)
	assert.Equal(t, "de-DE", config.Locale)
}

func TestLoadConfigFileMissingIsEmpty(t *testing.T) {
	viper.Set("config", filepath.Join(t.TempDir(), "absent.yml"))

	defer viper.Reset()

	config, err := loadConfigFile()
	require.NoError(t, err)
	assert.Equal(t, &Config{}, config)
}

func TestLoadConfigFileRejectsGarbage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte("{not yaml"), 0o600))

	viper.Set("config", path)

	defer viper.Reset()

	_, err := loadConfigFile()
	require.Error(t, err)
}
