package database

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"costumes_back_end/internal/config"
)

// exerciseStorage vérifie le contrat commun à tous les backends
func exerciseStorage(t *testing.T, s Storage) {
	t.Helper()
	ctx := context.Background()

	_, found, err := s.Get(ctx, "store_cart")
	require.NoError(t, err)
	assert.False(t, found, "clé absente au départ")

	require.NoError(t, s.Set(ctx, "store_cart", `[{"quantity":1}]`))
	v, found, err := s.Get(ctx, "store_cart")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, `[{"quantity":1}]`, v)

	require.NoError(t, s.Set(ctx, "store_cart", `[]`))
	v, _, err = s.Get(ctx, "store_cart")
	require.NoError(t, err)
	assert.Equal(t, `[]`, v, "la dernière écriture gagne")

	require.NoError(t, s.Set(ctx, "store_orders", `[]`))
	v, _, err = s.Get(ctx, "store_cart")
	require.NoError(t, err)
	assert.Equal(t, `[]`, v, "les clés sont indépendantes")
}

func TestMemory(t *testing.T) {
	exerciseStorage(t, NewMemory())
}

func TestSQLite(t *testing.T) {
	s, err := OpenSQLite(filepath.Join(t.TempDir(), "store.db"))
	require.NoError(t, err)
	defer s.Close()

	exerciseStorage(t, s)
}

func TestSQLite_SurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "store.db")
	ctx := context.Background()

	s, err := OpenSQLite(path)
	require.NoError(t, err)
	require.NoError(t, s.Set(ctx, "store_products", `[{"id":"1"}]`))
	require.NoError(t, s.Close())

	s, err = OpenSQLite(path)
	require.NoError(t, err)
	defer s.Close()

	v, found, err := s.Get(ctx, "store_products")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, `[{"id":"1"}]`, v)
}

func TestSQLite_EmptyPath(t *testing.T) {
	_, err := OpenSQLite("")
	assert.Error(t, err)
}

func TestRedis(t *testing.T) {
	mr := miniredis.RunT(t)

	s, err := OpenRedis(context.Background(), mr.Addr(), "", "test:")
	require.NoError(t, err)
	defer s.Close()

	exerciseStorage(t, s)

	raw, err := mr.Get("test:store_cart")
	require.NoError(t, err)
	assert.Equal(t, `[]`, raw, "les clés sont préfixées")
	assert.Equal(t, "test:updates", s.UpdatesChannel())
}

func TestRedis_PublishesUpdates(t *testing.T) {
	mr := miniredis.RunT(t)
	ctx := context.Background()

	s, err := OpenRedis(ctx, mr.Addr(), "", "test:")
	require.NoError(t, err)
	defer s.Close()

	sub := s.Client().Subscribe(ctx, s.UpdatesChannel())
	defer sub.Close()
	_, err = sub.Receive(ctx)
	require.NoError(t, err)

	require.NoError(t, s.Set(ctx, "store_orders", `[]`))

	msg, err := sub.ReceiveMessage(ctx)
	require.NoError(t, err)
	assert.Equal(t, "store_orders", msg.Payload)
}

func TestRedis_MissingHost(t *testing.T) {
	_, err := OpenRedis(context.Background(), "", "", "x:")
	assert.Error(t, err)
}

func TestScylla_Validation(t *testing.T) {
	_, err := OpenScylla(ScyllaConfig{Keyspace: "store"})
	assert.ErrorContains(t, err, "SCYLLA_HOSTS")

	_, err = OpenScylla(ScyllaConfig{Hosts: []string{"127.0.0.1"}})
	assert.ErrorContains(t, err, "SCYLLA_KEYSPACE")
}

func TestMinIO_Validation(t *testing.T) {
	_, err := OpenMinIO(context.Background(), MinIOConfig{Bucket: "b"})
	assert.ErrorContains(t, err, "MINIO_ENDPOINT")

	_, err = OpenMinIO(context.Background(), MinIOConfig{Endpoint: "localhost:9000"})
	assert.ErrorContains(t, err, "MINIO_BUCKET")
}

func TestOpen_Drivers(t *testing.T) {
	ctx := context.Background()

	s, err := Open(ctx, config.StorageSettings{Driver: DriverMemory})
	require.NoError(t, err)
	assert.IsType(t, &Memory{}, s)

	s, err = Open(ctx, config.StorageSettings{Driver: DriverSQLite, SQLitePath: filepath.Join(t.TempDir(), "s.db")})
	require.NoError(t, err)
	assert.IsType(t, &SQLite{}, s)
	s.Close()

	_, err = Open(ctx, config.StorageSettings{Driver: "localstorage"})
	assert.ErrorContains(t, err, "inconnu")
}

func TestOpenOrMemory_FallsBack(t *testing.T) {
	s := OpenOrMemory(context.Background(), config.StorageSettings{Driver: DriverRedis})
	assert.IsType(t, &Memory{}, s)
}
