package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config holds all environment-provided settings for the portal.
//
// The token signing secret, the document store URL and the Cloudinary
// credentials are required at startup. SMTP credentials and the admin
// notification address are deliberately not: the email paths check them per
// request and report a configuration error without touching the mailer.
type Config struct {
	Port int `env:"PORT" envDefault:"3000"`

	MongoURI      string `env:"MONGODB_URI"`
	MongoDatabase string `env:"MONGODB_DATABASE" envDefault:"lostfound"`

	JWTSecret string `env:"JWT_SECRET"`

	SMTPHost   string `env:"SMTP_HOST" envDefault:"smtp.gmail.com"`
	SMTPPort   int    `env:"SMTP_PORT" envDefault:"587"`
	SMTPUser   string `env:"SMTP_USER"`
	SMTPPass   string `env:"SMTP_PASS"`
	AdminEmail string `env:"ADMIN_EMAIL"`

	CloudinaryCloudName string `env:"CLOUDINARY_CLOUD_NAME"`
	CloudinaryAPIKey    string `env:"CLOUDINARY_API_KEY"`
	CloudinaryAPISecret string `env:"CLOUDINARY_API_SECRET"`

	CORSAllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envSeparator:","`
}

// Load parses the configuration from environment variables and checks that
// every startup-required value is present.
func Load() (*Config, error) {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return nil, fmt.Errorf("failed to parse environment variables: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// validate checks the values that must be present before the server starts.
func (c *Config) validate() error {
	if c.MongoURI == "" {
		return fmt.Errorf("missing MONGODB_URI environment variable")
	}
	if c.JWTSecret == "" {
		return fmt.Errorf("missing JWT_SECRET environment variable")
	}
	if c.CloudinaryCloudName == "" {
		return fmt.Errorf("missing CLOUDINARY_CLOUD_NAME environment variable")
	}
	if c.CloudinaryAPIKey == "" {
		return fmt.Errorf("missing CLOUDINARY_API_KEY environment variable")
	}
	if c.CloudinaryAPISecret == "" {
		return fmt.Errorf("missing CLOUDINARY_API_SECRET environment variable")
	}

	return nil
}
