package config

import (
	"os"
)

type Config struct {
	DatabasePath   string
	Port           string
	SecretKey      string
	AllowedOrigins string
	Environment    string

	MailgunDomain      string
	MailgunAPIKey      string
	MailgunSenderEmail string
	MailgunSenderName  string
}

func Load() *Config {
	cfg := &Config{
		DatabasePath:   getEnv("DATABASE_PATH", "pantrybook.db"),
		Port:           getEnv("PORT", "8080"),
		SecretKey:      getEnv("SECRET_KEY", "your-secret-key-change-this-in-production"),
		AllowedOrigins: getEnv("ALLOWED_ORIGINS", "http://localhost:3000"),
		Environment:    getEnv("ENVIRONMENT", "production"),

		MailgunDomain:      getEnv("MAILGUN_DOMAIN", ""),
		MailgunAPIKey:      getEnv("MAILGUN_API_KEY", ""),
		MailgunSenderEmail: getEnv("MAILGUN_SENDER_EMAIL", "noreply@pantrybook.app"),
		MailgunSenderName:  getEnv("MAILGUN_SENDER_NAME", "Pantrybook"),
	}
	return cfg
}

func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
