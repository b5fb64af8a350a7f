package database

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/gocql/gocql"
)

// --- Configuration ScyllaDB ---
type ScyllaConfig struct {
	Hosts       []string
	Keyspace    string
	Username    string
	Password    string
	Timeout     time.Duration
	NumConns    int
	Consistency gocql.Consistency
}

const (
	scyllaCreateTable = `CREATE TABLE IF NOT EXISTS store_kv (key text PRIMARY KEY, value text)`
	scyllaSelect      = `SELECT value FROM store_kv WHERE key = ?`
	scyllaUpsert      = `INSERT INTO store_kv (key, value) VALUES (?, ?)`
)

// Scylla stocke chaque clé dans la table store_kv du keyspace configuré
type Scylla struct {
	session *gocql.Session
}

func (c ScyllaConfig) validate() error {
	if len(c.Hosts) == 0 {
		return errors.New("SCYLLA_HOSTS non configuré")
	}
	if c.Keyspace == "" {
		return errors.New("SCYLLA_KEYSPACE non configuré")
	}
	return nil
}

// createScyllaCluster crée une configuration de cluster pour le keyspace
func createScyllaCluster(config ScyllaConfig) *gocql.ClusterConfig {
	cluster := gocql.NewCluster(config.Hosts...)
	cluster.Keyspace = config.Keyspace
	cluster.Consistency = config.Consistency
	if cluster.Consistency == 0 {
		cluster.Consistency = gocql.Quorum
	}
	if config.Timeout > 0 {
		cluster.Timeout = config.Timeout
	}
	if config.NumConns > 0 {
		cluster.NumConns = config.NumConns
	}
	cluster.ReconnectInterval = 1 * time.Second
	if config.Username != "" {
		cluster.Authenticator = gocql.PasswordAuthenticator{
			Username: config.Username,
			Password: config.Password,
		}
	}
	cluster.PoolConfig.HostSelectionPolicy = gocql.TokenAwareHostPolicy(gocql.RoundRobinHostPolicy())
	return cluster
}

func OpenScylla(config ScyllaConfig) (*Scylla, error) {
	if err := config.validate(); err != nil {
		return nil, err
	}

	session, err := createScyllaCluster(config).CreateSession()
	if err != nil {
		return nil, fmt.Errorf("erreur création session pour %s: %w", config.Keyspace, err)
	}

	if err := session.Query(scyllaCreateTable).Exec(); err != nil {
		session.Close()
		return nil, fmt.Errorf("création table store_kv: %w", err)
	}

	log.Printf("✅ Session ScyllaDB pour keyspace '%s'", config.Keyspace)
	return &Scylla{session: session}, nil
}

func (s *Scylla) Get(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := s.session.Query(scyllaSelect, key).WithContext(ctx).Scan(&value)
	if errors.Is(err, gocql.ErrNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return value, true, nil
}

func (s *Scylla) Set(ctx context.Context, key, value string) error {
	return s.session.Query(scyllaUpsert, key, value).WithContext(ctx).Exec()
}

func (s *Scylla) Close() error {
	if s.session != nil {
		s.session.Close()
		log.Println("🔌 Session ScyllaDB fermée")
	}
	return nil
}
