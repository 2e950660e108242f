// Package config reads process settings from the environment and an
// optional .env file.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
)

// MemoryStore selects the in-process store instead of MongoDB.
const MemoryStore = "memory"

// DevJWTSecret signs tokens when the in-memory store runs without
// JWT_SECRET. A MongoDB-backed server has no default secret.
const DevJWTSecret = "tourfleet-dev-secret"

type Config struct {
	Port     string
	MongoURI string
	MongoDB  string

	JWTSecret string
	JWTExpiry time.Duration

	MQTTBroker      string
	MQTTClientID    string
	MQTTTopicPrefix string

	LogLevel  string
	LogFormat string

	AdminUsername string
	AdminPassword string

	APIBaseURL string
	FleetToken string
}

// Load reads .env files (missing files are ignored) and then the
// environment. Variables already set in the environment win over .env.
func Load(files ...string) (*Config, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("loading %s: %w", f, err)
		}
	}

	expiry, err := time.ParseDuration(getEnv("JWT_EXPIRY", "24h"))
	if err != nil {
		return nil, fmt.Errorf("invalid JWT_EXPIRY: %w", err)
	}

	cfg := &Config{
		Port:            getEnv("PORT", "8080"),
		MongoURI:        getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDB:         getEnv("MONGO_DB", "tourfleet"),
		JWTSecret:       os.Getenv("JWT_SECRET"),
		JWTExpiry:       expiry,
		MQTTBroker:      os.Getenv("MQTT_BROKER"),
		MQTTClientID:    getEnv("MQTT_CLIENT_ID", "tourfleet-api"),
		MQTTTopicPrefix: getEnv("MQTT_TOPIC_PREFIX", "tourfleet"),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		LogFormat:       getEnv("LOG_FORMAT", "text"),
		AdminUsername:   getEnv("ADMIN_USERNAME", "admin"),
		AdminPassword:   os.Getenv("ADMIN_PASSWORD"),
		APIBaseURL:      getEnv("API_BASE_URL", "http://localhost:8080/api"),
		FleetToken:      os.Getenv("FLEET_TOKEN"),
	}
	if cfg.JWTSecret == "" && cfg.UseMemoryStore() {
		log.Warn("JWT_SECRET is not set; using the development secret for the in-memory store")
		cfg.JWTSecret = DevJWTSecret
	}
	return cfg, nil
}

// UseMemoryStore reports whether MONGO_URI asks for the in-process store.
func (c *Config) UseMemoryStore() bool {
	return strings.EqualFold(c.MongoURI, MemoryStore)
}

// ConfigureLogging applies the log level and format to the standard logrus
// logger.
func (c *Config) ConfigureLogging() error {
	level, err := log.ParseLevel(c.LogLevel)
	if err != nil {
		return fmt.Errorf("invalid LOG_LEVEL: %w", err)
	}
	log.SetLevel(level)

	switch strings.ToLower(c.LogFormat) {
	case "json":
		log.SetFormatter(&log.JSONFormatter{})
	case "text", "":
		log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	default:
		return fmt.Errorf("invalid LOG_FORMAT %q", c.LogFormat)
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}
