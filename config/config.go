package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all process configuration, loaded once at startup and passed
// explicitly to the components that need it.
type Config struct {
	AppName string
	Env     string // development, production
	Port    string
	GinMode string

	// MongoDB
	MongoURI string
	MongoDB  string

	// Auth
	JWTSecret string
	TokenTTL  time.Duration

	// Google OAuth
	GoogleClientID     string
	GoogleClientSecret string
	GoogleRedirectURL  string

	// Cloudinary (media CDN)
	CloudinaryURL string

	// Web push (VAPID)
	VAPIDPublicKey  string
	VAPIDPrivateKey string
	VAPIDSubscriber string

	// CORS
	CORSAllowedOrigins []string

	// Rate limiting on auth routes
	AuthRateLimit  int
	AuthRateWindow time.Duration
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getint(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		i, err := strconv.Atoi(v)
		if err != nil {
			return def
		}
		return i
	}
	return def
}

func getdur(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return def
		}
		return d
	}
	return def
}

// Load builds the configuration from environment variables. It fails with an
// error naming every missing required variable so the process can exit before
// serving a single request.
func Load() (*Config, error) {
	cfg := &Config{
		AppName: getenv("APP_NAME", "blogify"),
		Env:     getenv("APP_ENV", "development"),
		Port:    getenv("PORT", "8080"),
		GinMode: getenv("GIN_MODE", "debug"),

		MongoURI: os.Getenv("MONGODB_URI"),
		MongoDB:  getenv("MONGODB_DB", "blogify"),

		JWTSecret: os.Getenv("JWT_SECRET"),
		TokenTTL:  getdur("TOKEN_TTL", 24*time.Hour),

		GoogleClientID:     os.Getenv("GOOGLE_CLIENT_ID"),
		GoogleClientSecret: os.Getenv("GOOGLE_CLIENT_SECRET"),
		GoogleRedirectURL:  getenv("GOOGLE_REDIRECT_URL", "http://localhost:8080/api/auth/google/callback"),

		CloudinaryURL: os.Getenv("CLOUDINARY_URL"),

		VAPIDPublicKey:  os.Getenv("VAPID_PUBLIC_KEY"),
		VAPIDPrivateKey: os.Getenv("VAPID_PRIVATE_KEY"),
		VAPIDSubscriber: getenv("VAPID_SUBSCRIBER", "mailto:admin@blogify.app"),

		AuthRateLimit:  getint("AUTH_RATE_LIMIT", 20),
		AuthRateWindow: getdur("AUTH_RATE_WINDOW", time.Minute),
	}

	origins := getenv("CORS_ALLOWED_ORIGINS", "http://localhost:3000")
	for _, o := range strings.Split(origins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			cfg.CORSAllowedOrigins = append(cfg.CORSAllowedOrigins, o)
		}
	}

	var missing []string
	for _, req := range []struct{ name, val string }{
		{"MONGODB_URI", cfg.MongoURI},
		{"JWT_SECRET", cfg.JWTSecret},
		{"CLOUDINARY_URL", cfg.CloudinaryURL},
	} {
		if req.val == "" {
			missing = append(missing, req.name)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("missing required environment variables: %s", strings.Join(missing, ", "))
	}

	return cfg, nil
}
