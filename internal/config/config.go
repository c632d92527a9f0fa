package config

import (
	"log"
	"net/url"
	"os"

	"github.com/joho/godotenv"
)

// Config carries the environment of both binaries: the admin panel and the
// development backend. Each reads only the fields it cares about.
type Config struct {
	// admin panel
	AdminAddr string
	APIURL    string
	AssetRoot string
	LogLevel  string

	// dev backend
	BackendAddr   string
	DatabaseURL   string
	SQLitePath    string
	JWTSecret     []byte
	AdminEmail    string
	AdminPassword string
	UploadDir     string
}

func Load() *Config {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("Notice: .env file not found: %v. Using system environment variables", err)
	}

	cfg := &Config{
		AdminAddr: EnvDefault("ADMIN_ADDR", ":8081"),
		APIURL:    EnvDefault("API_URL", "http://localhost:3001/api"),
		AssetRoot: os.Getenv("ASSET_ROOT"),
		LogLevel:  EnvDefault("LOG_LEVEL", "info"),

		BackendAddr:   EnvDefault("BACKEND_ADDR", ":3001"),
		DatabaseURL:   os.Getenv("DATABASE_URL"),
		SQLitePath:    EnvDefault("SQLITE_PATH", "foodcourt.db"),
		JWTSecret:     []byte(EnvDefault("JWT_SECRET", "dev-secret")),
		AdminEmail:    EnvDefault("ADMIN_EMAIL", "admin@example.com"),
		AdminPassword: EnvDefault("ADMIN_PASSWORD", "admin"),
		UploadDir:     EnvDefault("UPLOAD_DIR", "uploads"),
	}

	if cfg.AssetRoot == "" {
		cfg.AssetRoot = deriveAssetRoot(cfg.APIURL)
	}
	return cfg
}

// deriveAssetRoot takes the origin of the API URL, so relative image URLs
// returned by the upload endpoint resolve against the backend host.
func deriveAssetRoot(apiURL string) string {
	u, err := url.Parse(apiURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return ""
	}
	return u.Scheme + "://" + u.Host
}

func EnvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
