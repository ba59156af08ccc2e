package config

import (
	"fmt"
	"os"
	"strings"
)

type Config struct {
	Port             string
	MongoDBURI       string
	MongoDBPassword  string
	MongoDBDatabase  string
	GoogleMapsAPIKey string
	AuthJWKSURL      string
	AuthJWTSecret    string
	CORSOrigins      []string
	Environment      string
	LogLevel         string
}

func LoadConfig() (*Config, error) {
	cfg := &Config{
		Port:             getEnvWithDefault("PORT", "8080"),
		MongoDBURI:       os.Getenv("MONGODB_URI"),
		MongoDBPassword:  os.Getenv("MONGODB_PASSWORD"),
		MongoDBDatabase:  getEnvWithDefault("MONGODB_DATABASE", "rendez"),
		GoogleMapsAPIKey: os.Getenv("GOOGLE_MAPS_API_KEY"),
		AuthJWKSURL:      os.Getenv("AUTH_JWKS_URL"),
		AuthJWTSecret:    os.Getenv("AUTH_JWT_SECRET"),
		CORSOrigins:      splitList(getEnvWithDefault("CORS_ORIGINS", "http://localhost:3000")),
		Environment:      getEnvWithDefault("ENVIRONMENT", "development"),
		LogLevel:         getEnvWithDefault("LOG_LEVEL", "info"),
	}

	// Validate required fields
	if cfg.MongoDBURI == "" {
		return nil, fmt.Errorf("MONGODB_URI is required")
	}
	if strings.Contains(cfg.MongoDBURI, "<password>") && cfg.MongoDBPassword == "" {
		return nil, fmt.Errorf("MONGODB_PASSWORD is required when MONGODB_URI contains <password>")
	}
	if cfg.AuthJWKSURL == "" && cfg.AuthJWTSecret == "" {
		return nil, fmt.Errorf("one of AUTH_JWKS_URL or AUTH_JWT_SECRET is required")
	}

	return cfg, nil
}

// MongoDBFullURI returns the connection string with the password placeholder filled in.
func (c *Config) MongoDBFullURI() string {
	return strings.Replace(c.MongoDBURI, "<password>", c.MongoDBPassword, 1)
}

func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}
