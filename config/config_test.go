package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("RABBITMQ_URL", "")
	t.Setenv("CORS_ALLOWED_ORIGINS", "")
	t.Setenv("UPLOAD_URL_PREFIX", "")

	cfg := LoadConfig()

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "storefront", cfg.DBName)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.AllowedOrigins)
	assert.Equal(t, "/static/uploads", cfg.UploadURLPrefix)
	assert.Equal(t, 587, cfg.EmailPort)
	assert.Empty(t, cfg.RabbitMQURL)
	assert.Equal(t, 10, cfg.MaxPriority)
}

func TestLoadConfig_FromEnvironment(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("CORS_ALLOWED_ORIGINS", " https://shop.example.com , ,http://localhost:5173")
	t.Setenv("UPLOAD_URL_PREFIX", "/media/")
	t.Setenv("EMAIL_PORT", "2525")

	cfg := LoadConfig()

	assert.Equal(t, []string{"https://shop.example.com", "http://localhost:5173"}, cfg.AllowedOrigins)
	assert.Equal(t, "/media", cfg.UploadURLPrefix)
	assert.Equal(t, 2525, cfg.EmailPort)
}

func TestGetEnvInt_Invalid(t *testing.T) {
	t.Setenv("SOME_PORT", "not-a-number")
	assert.Equal(t, 42, getEnvInt("SOME_PORT", 42))
}

func TestGetEnvFromFile(t *testing.T) {
	secret := filepath.Join(t.TempDir(), "db_password")
	require.NoError(t, os.WriteFile(secret, []byte("s3cret\n"), 0o600))

	t.Setenv("TEST_PASSWORD_FILE", secret)
	t.Setenv("TEST_PASSWORD", "from-env")
	assert.Equal(t, "s3cret", getEnvFromFile("TEST_PASSWORD_FILE", "TEST_PASSWORD", ""))

	t.Setenv("TEST_PASSWORD_FILE", filepath.Join(t.TempDir(), "missing"))
	assert.Equal(t, "from-env", getEnvFromFile("TEST_PASSWORD_FILE", "TEST_PASSWORD", ""))
}

func TestLoadConfig_DotEnv(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("DB_NAME=from_dotenv\n"), 0o600))
	os.Unsetenv("DB_NAME")
	t.Cleanup(func() { os.Unsetenv("DB_NAME") })

	cfg := LoadConfig()
	assert.Equal(t, "from_dotenv", cfg.DBName)
}

// chdir switches the working directory for the test and restores it on cleanup.
func chdir(t *testing.T, dir string) {
	t.Helper()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { require.NoError(t, os.Chdir(wd)) })
}
