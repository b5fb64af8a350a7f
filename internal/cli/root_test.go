package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"costumes_back_end/internal/config"
	"costumes_back_end/internal/database"
	"costumes_back_end/internal/models"
	"costumes_back_end/internal/store"
	"costumes_back_end/internal/utils"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func sqliteArgs(t *testing.T) []string {
	t.Helper()
	return []string{"--driver", "sqlite", "--sqlite-path", filepath.Join(t.TempDir(), "store.db")}
}

func TestRootCommand(t *testing.T) {
	cmd := NewRootCommand()
	require.NotNil(t, cmd)
	assert.Equal(t, "storectl", cmd.Use)
}

func TestCommandPresence(t *testing.T) {
	cmd := NewRootCommand()
	for _, name := range []string{"products", "recommended", "orders", "order-status", "hash-password"} {
		t.Run(name, func(t *testing.T) {
			sub, _, err := cmd.Find([]string{name})
			require.NoError(t, err)
			assert.Equal(t, name, sub.Name())
		})
	}
}

func TestGlobalFlags(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", "redis")
	cmd := NewRootCommand()

	driver := cmd.PersistentFlags().Lookup("driver")
	require.NotNil(t, driver)
	assert.Equal(t, "redis", driver.DefValue, "défaut lu depuis l'environnement")

	format := cmd.PersistentFlags().Lookup("format")
	require.NotNil(t, format)
	assert.Equal(t, "text", format.DefValue)
}

func TestInvalidFormat(t *testing.T) {
	_, err := run(t, "products", "--driver", "memory", "--format", "xml")
	assert.ErrorContains(t, err, "xml")
}

func TestProductsCommand(t *testing.T) {
	out, err := run(t, "products", "--driver", "memory")
	require.NoError(t, err)
	assert.Contains(t, out, "Tuxedo Classic Noir")
	assert.Equal(t, 13, len(strings.Split(strings.TrimSpace(out), "\n")), "en-tête + 12 produits")

	out, err = run(t, "products", "--driver", "memory", "--category", "promotions", "--format", "json")
	require.NoError(t, err)
	var products []models.Product
	require.NoError(t, json.Unmarshal([]byte(out), &products))
	assert.Len(t, products, 4)
}

func TestRecommendedCommand(t *testing.T) {
	out, err := run(t, "recommended", "--driver", "memory", "--format", "json")
	require.NoError(t, err)

	var products []models.Product
	require.NoError(t, json.Unmarshal([]byte(out), &products))
	require.Len(t, products, 4)
	assert.Equal(t, "1", products[0].ID)
}

func TestOrderStatusCommand_Persists(t *testing.T) {
	args := sqliteArgs(t)

	out, err := run(t, append([]string{"order-status", "ORD002", "completed"}, args...)...)
	require.NoError(t, err)
	assert.Contains(t, out, "completed")

	out, err = run(t, append([]string{"orders", "--format", "json"}, args...)...)
	require.NoError(t, err)
	var orders []models.Order
	require.NoError(t, json.Unmarshal([]byte(out), &orders))
	require.Len(t, orders, 2)
	assert.Equal(t, models.OrderCompleted, orders[1].Status)
}

func TestOrderStatusCommand_SurvivesServerWrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "store.db")
	ctx := context.Background()

	storage, err := database.Open(ctx, config.StorageSettings{Driver: "sqlite", SQLitePath: path})
	require.NoError(t, err)
	defer storage.Close()
	server := store.New(ctx, storage)

	_, err = run(t, "order-status", "ORD002", "cancelled", "--driver", "sqlite", "--sqlite-path", path)
	require.NoError(t, err)

	p, ok := server.Product("4")
	require.True(t, ok)
	server.AddToCart(p, "", "")
	_, ok = server.SubmitOrder("Sara", "sara@example.com", "Fès")
	require.True(t, ok)

	out, err := run(t, "orders", "--format", "json", "--driver", "sqlite", "--sqlite-path", path)
	require.NoError(t, err)
	var orders []models.Order
	require.NoError(t, json.Unmarshal([]byte(out), &orders))
	require.Len(t, orders, 3)
	assert.Equal(t, models.OrderCancelled, orders[1].Status)
}

func TestOrderStatusCommand_Errors(t *testing.T) {
	_, err := run(t, "order-status", "ORD002", "shipped", "--driver", "memory")
	assert.Error(t, err)

	_, err = run(t, "order-status", "ORD999", "completed", "--driver", "memory")
	assert.ErrorContains(t, err, "introuvable")

	_, err = run(t, "order-status", "ORD001", "--driver", "memory")
	assert.Error(t, err)
}

func TestUnknownDriver(t *testing.T) {
	_, err := run(t, "products", "--driver", "cassette")
	assert.ErrorContains(t, err, "inconnu")
}

func TestHashPasswordCommand(t *testing.T) {
	out, err := run(t, "hash-password", "costume2026")
	require.NoError(t, err)

	hash := strings.TrimSpace(out)
	ok, err := utils.VerifyPassword("costume2026", hash)
	require.NoError(t, err)
	assert.True(t, ok)
}
