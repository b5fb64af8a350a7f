package database

import (
	"context"
	"fmt"
	"log"

	"costumes_back_end/internal/config"
)

// Storage est un stockage clé/valeur durable : une valeur texte par clé.
// Get renvoie found=false (sans erreur) quand la clé n'existe pas.
type Storage interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Close() error
}

const (
	DriverMemory = "memory"
	DriverSQLite = "sqlite"
	DriverRedis  = "redis"
	DriverScylla = "scylla"
	DriverMinIO  = "minio"
)

// Open ouvre le backend choisi par STORAGE_DRIVER
func Open(ctx context.Context, cfg config.StorageSettings) (Storage, error) {
	var (
		s   Storage
		err error
	)

	switch cfg.Driver {
	case DriverMemory:
		s = NewMemory()
	case DriverSQLite, "":
		s, err = OpenSQLite(cfg.SQLitePath)
	case DriverRedis:
		s, err = OpenRedis(ctx, cfg.RedisHost, cfg.RedisPassword, cfg.RedisPrefix)
	case DriverScylla:
		s, err = OpenScylla(ScyllaConfig{
			Hosts:    cfg.ScyllaHosts,
			Keyspace: cfg.ScyllaKeyspace,
			Username: cfg.ScyllaUsername,
			Password: cfg.ScyllaPassword,
			Timeout:  cfg.Timeout,
		})
	case DriverMinIO:
		s, err = OpenMinIO(ctx, MinIOConfig{
			Endpoint:  cfg.MinIOEndpoint,
			AccessKey: cfg.MinIOAccessKey,
			SecretKey: cfg.MinIOSecretKey,
			Bucket:    cfg.MinIOBucket,
			Prefix:    cfg.MinIOPrefix,
			UseSSL:    cfg.MinIOUseSSL,
		})
	default:
		return nil, fmt.Errorf("driver de stockage inconnu: %q", cfg.Driver)
	}
	if err != nil {
		return nil, fmt.Errorf("ouverture stockage %s: %w", cfg.Driver, err)
	}

	log.Printf("✅ Stockage %s prêt", driverName(cfg.Driver))
	return s, nil
}

// OpenOrMemory ouvre le backend configuré ; en cas d'échec on continue en mémoire
// pour que l'application démarre quand même (les données de départ sont utilisées).
func OpenOrMemory(ctx context.Context, cfg config.StorageSettings) Storage {
	s, err := Open(ctx, cfg)
	if err != nil {
		log.Printf("❌ %v, repli sur le stockage en mémoire", err)
		return NewMemory()
	}
	return s
}

func driverName(d string) string {
	if d == "" {
		return DriverSQLite
	}
	return d
}
