package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

func Load() {
	err := godotenv.Load(".env")
	if err != nil {
		log.Println("⚠️  Aucun fichier .env trouvé, on continue avec les variables d'environnement du système")
	} else {
		log.Println("✅ Fichier .env chargé avec succès")
	}
}

// --- Stockage ---
type StorageSettings struct {
	Driver     string
	Timeout    time.Duration
	SQLitePath string

	RedisHost     string
	RedisPassword string
	RedisPrefix   string

	ScyllaHosts    []string
	ScyllaKeyspace string
	ScyllaUsername string
	ScyllaPassword string

	MinIOEndpoint  string
	MinIOAccessKey string
	MinIOSecretKey string
	MinIOBucket    string
	MinIOPrefix    string
	MinIOUseSSL    bool
}

type ElasticSettings struct {
	URL      string
	Username string
	Password string
}

type SMTPSettings struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	AdminTo  string // copie des nouvelles commandes pour la boutique, optionnelle
}

type Settings struct {
	Port        string
	CORSOrigins []string

	Storage StorageSettings
	Elastic ElasticSettings
	SMTP    SMTPSettings

	JWTSecret         string
	AdminPassword     string
	AdminPasswordHash string
	WhatsAppNumber    string
}

// FromEnv lit la configuration depuis l'environnement (après Load)
func FromEnv() Settings {
	return Settings{
		Port:        getEnv("PORT", "8080"),
		CORSOrigins: splitList(getEnv("CORS_ORIGINS", "http://localhost:5173")),
		Storage: StorageSettings{
			Driver:         strings.ToLower(getEnv("STORAGE_DRIVER", "sqlite")),
			Timeout:        getDuration("STORAGE_TIMEOUT", 5*time.Second),
			SQLitePath:     getEnv("STORE_SQLITE_PATH", "store.db"),
			RedisHost:      os.Getenv("REDIS_HOST"),
			RedisPassword:  os.Getenv("REDIS_PASSWORD"),
			RedisPrefix:    getEnv("REDIS_PREFIX", "costumes:"),
			ScyllaHosts:    splitList(os.Getenv("SCYLLA_HOSTS")),
			ScyllaKeyspace: os.Getenv("SCYLLA_KEYSPACE"),
			ScyllaUsername: os.Getenv("SCYLLA_USERNAME"),
			ScyllaPassword: os.Getenv("SCYLLA_PASSWORD"),
			MinIOEndpoint:  os.Getenv("MINIO_ENDPOINT"),
			MinIOAccessKey: os.Getenv("MINIO_ACCESS_KEY"),
			MinIOSecretKey: os.Getenv("MINIO_SECRET_KEY"),
			MinIOBucket:    getEnv("MINIO_BUCKET", "storefront"),
			MinIOPrefix:    getEnv("MINIO_PREFIX", "store/"),
			MinIOUseSSL:    strings.ToLower(os.Getenv("MINIO_USE_SSL")) == "true",
		},
		Elastic: ElasticSettings{
			URL:      os.Getenv("ELASTIC_URL"),
			Username: os.Getenv("ELASTIC_USER"),
			Password: os.Getenv("ELASTIC_PASSWORD"),
		},
		SMTP: SMTPSettings{
			Host:     os.Getenv("SMTP_HOST"),
			Port:     getInt("SMTP_PORT", 587),
			Username: os.Getenv("SMTP_USERNAME"),
			Password: os.Getenv("SMTP_PASSWORD"),
			From:     getEnv("SMTP_FROM", "noreply@costumes.ma"),
			AdminTo:  strings.TrimSpace(os.Getenv("SMTP_ADMIN_TO")),
		},
		JWTSecret:         os.Getenv("JWT_SECRET"),
		AdminPassword:     os.Getenv("ADMIN_PASSWORD"),
		AdminPasswordHash: os.Getenv("ADMIN_PASSWORD_HASH"),
		WhatsAppNumber:    getEnv("WHATSAPP_NUMBER", "212610284374"),
	}
}

func getEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("⚠️ %s invalide (%q), valeur par défaut %d utilisée", key, v, fallback)
		return fallback
	}
	return n
}

func getDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		log.Printf("⚠️ %s invalide (%q), valeur par défaut %s utilisée", key, v, fallback)
		return fallback
	}
	return d
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
