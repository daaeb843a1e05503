package stay_site

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zuu3/stay-site/cons"
)

func dialWS(t *testing.T, srv *httptest.Server) *websocket.Conn {
	t.Helper()
	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http")+"/ws", nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func waitClients(t *testing.T, h *WsServer, n int) {
	t.Helper()
	require.Eventually(t, func() bool { return h.ClientCount() == n }, 2*time.Second, 10*time.Millisecond)
}

func TestWs_RegisterBroadcastsCount(t *testing.T) {
	env := newTestEnv(t)
	srv := httptest.NewServer(env.router)
	defer srv.Close()

	conn := dialWS(t, srv)
	waitClients(t, env.engine.WsServer, 1)

	token := env.login(t, "user-42", "")
	expectPreRegistrationSchema(env.mock)
	env.mock.ExpectBegin()
	env.mock.ExpectExec(insertPreRegistration).WillReturnResult(sqlmock.NewResult(0, 1))
	env.mock.ExpectQuery(countAll).WillReturnRows(countRows(7))
	env.mock.ExpectCommit()

	w := env.do(http.MethodPost, "/api/v1/pre-registration", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, msg, err := conn.ReadMessage()
	require.NoError(t, err)

	var ev struct {
		Type string `json:"type"`
		Data struct {
			Count int64 `json:"count"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(msg, &ev))
	assert.Equal(t, cons.EventPreRegistrationCount, ev.Type)
	assert.Equal(t, int64(7), ev.Data.Count)
}

func TestWsServer_DropsSlowSubscriber(t *testing.T) {
	h := NewWsServer(nil)
	go h.Run()
	defer h.Close()

	slow := &Client{hub: h, send: make(chan []byte, 1)}
	h.register <- slow
	waitClients(t, h, 1)

	// 无人读取 send，第二条起缓冲满
	for i := 0; i < 3; i++ {
		h.Broadcast(cons.EventNoticeCreated, map[string]any{"id": i})
	}
	waitClients(t, h, 0)

	<-slow.send
	_, open := <-slow.send
	assert.False(t, open)
}

func TestWsServer_CloseDisconnects(t *testing.T) {
	h := NewWsServer(nil)
	go h.Run()

	c := &Client{hub: h, send: make(chan []byte, 4)}
	h.register <- c
	waitClients(t, h, 1)

	h.Close()
	h.Close()
	waitClients(t, h, 0)
	h.Broadcast(cons.EventNoticeDeleted, nil)
}
