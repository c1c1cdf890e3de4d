package config

// Config holds all configuration for the application.
type Config struct {
	DBName        string
	MigrationsDir string
	Port          string
	Auth          AuthConfig
	Turso         TursoConfig
	ProjectID     string
}

type AuthConfig struct {
	SigningSecret string
}

type TursoConfig struct {
	PrimaryURL string
	AuthToken  string
}
