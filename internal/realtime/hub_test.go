package realtime

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"costumes_back_end/internal/database"
	"costumes_back_end/internal/store"
)

func dial(t *testing.T, h *Hub) *websocket.Conn {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(h.ServeWS))
	t.Cleanup(srv.Close)

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http"), nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	var hello EventMessage
	readJSON(t, conn, &hello)
	require.Equal(t, "connected", hello.Type)
	return conn
}

func readJSON(t *testing.T, conn *websocket.Conn, v any) {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	require.NoError(t, conn.ReadJSON(v))
}

func TestHub_ToastBroadcast(t *testing.T) {
	h := NewHub(nil)
	a := dial(t, h)
	b := dial(t, h)
	assert.Equal(t, 2, h.Clients())

	h.Success("Produit supprimé")

	for _, conn := range []*websocket.Conn{a, b} {
		var msg ToastMessage
		readJSON(t, conn, &msg)
		assert.Equal(t, ToastMessage{Type: "toast", Level: "success", Message: "Produit supprimé"}, msg)
	}

	h.Error("Cette catégorie existe déjà")
	var msg ToastMessage
	readJSON(t, a, &msg)
	assert.Equal(t, "error", msg.Level)
}

func TestHub_RejectsUnknownOrigin(t *testing.T) {
	h := NewHub([]string{"http://localhost:5173"})
	srv := httptest.NewServer(http.HandlerFunc(h.ServeWS))
	defer srv.Close()

	header := http.Header{"Origin": []string{"http://evil.example"}}
	_, resp, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http"), header)
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Zero(t, h.Clients())
}

func TestHub_AttachRelaysCartAndProducts(t *testing.T) {
	s := store.New(context.Background(), database.NewMemory())
	h := NewHub(nil)
	h.Attach(s)
	conn := dial(t, h)

	p, ok := s.Product("1")
	require.True(t, ok)
	s.AddToCart(p, "M", "Noir")

	var cart CartMessage
	readJSON(t, conn, &cart)
	assert.Equal(t, "cart_updated", cart.Type)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 899.99, cart.Total)
	assert.Equal(t, 1, cart.Count)

	s.RecordView("2")
	var ev EventMessage
	readJSON(t, conn, &ev)
	assert.Equal(t, "products_updated", ev.Type)
}

func TestHub_CloseDisconnectsClients(t *testing.T) {
	h := NewHub(nil)
	conn := dial(t, h)

	h.Close()
	assert.Zero(t, h.Clients())

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, _, err := conn.ReadMessage()
	assert.Error(t, err)
}
