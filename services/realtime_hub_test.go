package services

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBroadcastToUserConcurrentWriters(t *testing.T) {
	hub := NewRealtimeHub()
	upgrader := websocket.Upgrader{}
	registered := make(chan struct{})

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			t.Error(err)
			return
		}
		hub.Register(&WSClient{UserID: 7, Conn: conn})
		close(registered)
	}))
	defer srv.Close()

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http"), nil)
	require.NoError(t, err)
	defer conn.Close()
	<-registered

	const writers, perWriter = 20, 50
	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < perWriter; j++ {
				hub.BroadcastToUser(7, map[string]any{"kind": "alert.created"})
			}
		}()
	}

	// every frame must arrive intact despite the concurrent writers
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(10*time.Second)))
	for received := 0; received < writers*perWriter; received++ {
		_, msg, err := conn.ReadMessage()
		require.NoError(t, err)
		assert.True(t, json.Valid(msg))
	}
	wg.Wait()
}

func TestUnregisterStopsDelivery(t *testing.T) {
	hub := NewRealtimeHub()
	upgrader := websocket.Upgrader{}
	clients := make(chan *WSClient, 1)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			t.Error(err)
			return
		}
		cl := &WSClient{UserID: 9, Conn: conn}
		hub.Register(cl)
		clients <- cl
	}))
	defer srv.Close()

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http"), nil)
	require.NoError(t, err)
	defer conn.Close()

	cl := <-clients
	hub.Unregister(cl)

	// broadcast after unregister reaches no socket
	hub.BroadcastToUser(9, map[string]any{"kind": "alert.created"})
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(200*time.Millisecond)))
	_, _, err = conn.ReadMessage()
	assert.Error(t, err)
}
