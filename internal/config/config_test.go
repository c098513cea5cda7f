package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()

	t.Setenv("MONGODB_URI", "mongodb://localhost:27017")
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("CLOUDINARY_CLOUD_NAME", "demo")
	t.Setenv("CLOUDINARY_API_KEY", "key")
	t.Setenv("CLOUDINARY_API_SECRET", "secret")
}

func TestLoad(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("PORT", "8080")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://localhost:5173,https://portal.krmu.edu.in")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, "mongodb://localhost:27017", cfg.MongoURI)
	assert.Equal(t, "lostfound", cfg.MongoDatabase)
	assert.Equal(t, "smtp.gmail.com", cfg.SMTPHost)
	assert.Equal(t, 587, cfg.SMTPPort)
	assert.Equal(t,
		[]string{"http://localhost:5173", "https://portal.krmu.edu.in"},
		cfg.CORSAllowedOrigins,
	)
}

func TestLoad_Defaults(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("PORT", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 3000, cfg.Port)
}

func TestLoad_MissingRequired(t *testing.T) {
	tests := []struct {
		name string
		env  string
	}{
		{name: "mongo uri", env: "MONGODB_URI"},
		{name: "jwt secret", env: "JWT_SECRET"},
		{name: "cloudinary cloud name", env: "CLOUDINARY_CLOUD_NAME"},
		{name: "cloudinary api key", env: "CLOUDINARY_API_KEY"},
		{name: "cloudinary api secret", env: "CLOUDINARY_API_SECRET"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setRequiredEnv(t)
			t.Setenv(tt.env, "")

			_, err := Load()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.env)
		})
	}
}

func TestLoad_SMTPNotRequiredAtStartup(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("SMTP_USER", "")
	t.Setenv("SMTP_PASS", "")
	t.Setenv("ADMIN_EMAIL", "")

	_, err := Load()
	assert.NoError(t, err)
}
