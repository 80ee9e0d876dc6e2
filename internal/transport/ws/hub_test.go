package ws

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"readiness/internal/model"
	"readiness/internal/service"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func receive(t *testing.T, conn *Connection) Message {
	t.Helper()
	select {
	case data, ok := <-conn.Send:
		require.True(t, ok, "connection closed")
		var msg Message
		require.NoError(t, json.Unmarshal(data, &msg))
		return msg
	case <-time.After(time.Second):
		t.Fatal("no message received")
		return Message{}
	}
}

func waitClosed(t *testing.T, conn *Connection) {
	t.Helper()
	deadline := time.After(time.Second)
	for {
		select {
		case _, ok := <-conn.Send:
			if !ok {
				return
			}
		case <-deadline:
			t.Fatal("connection not closed")
		}
	}
}

func TestHub_RoutesMessages(t *testing.T) {
	hub := NewHub(quietLogger(), nil)
	t.Cleanup(hub.Close)

	dashboard := &Connection{IsAdmin: true, Send: make(chan []byte, 8), Hub: hub}
	mine := &Connection{SessionID: "s-1", Send: make(chan []byte, 8), Hub: hub}
	other := &Connection{SessionID: "s-2", Send: make(chan []byte, 8), Hub: hub}
	hub.Register(dashboard)
	hub.Register(mine)
	hub.Register(other)

	event := model.ProgressEvent{Type: model.EventQuestionAnswered, SessionID: "s-1", Progress: model.Progress{Current: 1, Total: 5, Percentage: 20}}
	hub.BroadcastToSession("s-1", event.Type, event)
	hub.BroadcastToDashboard(event.Type, event)

	msg := receive(t, mine)
	assert.Equal(t, MessageType(model.EventQuestionAnswered), msg.Type)
	var got model.ProgressEvent
	require.NoError(t, json.Unmarshal(msg.Payload, &got))
	assert.Equal(t, event.Progress, got.Progress)

	assert.Equal(t, MessageType(model.EventQuestionAnswered), receive(t, dashboard).Type)
	assert.Empty(t, other.Send)
}

func TestHub_DisconnectSessionDeliversQueuedMessagesFirst(t *testing.T) {
	hub := NewHub(quietLogger(), nil)
	t.Cleanup(hub.Close)

	conn := &Connection{SessionID: "s-1", Send: make(chan []byte, 8), Hub: hub}
	hub.Register(conn)

	hub.BroadcastToSession("s-1", model.EventAssessmentAbandoned, map[string]string{"sessionId": "s-1"})
	hub.DisconnectSession("s-1")

	assert.Equal(t, MessageType(model.EventAssessmentAbandoned), receive(t, conn).Type)
	waitClosed(t, conn)

	// unregistering an already dropped connection is a no-op
	hub.Unregister(conn)
}

func TestHub_CloseDropsEveryone(t *testing.T) {
	hub := NewHub(quietLogger(), nil)
	conn := &Connection{IsAdmin: true, Send: make(chan []byte, 1), Hub: hub}
	hub.Register(conn)

	hub.Close()
	waitClosed(t, conn)
	hub.Close()
	hub.BroadcastToDashboard("ignored", nil)
}

func TestHandler_SessionWS(t *testing.T) {
	hub := NewHub(quietLogger(), nil)
	t.Cleanup(hub.Close)
	auth := service.NewAuthService("admin", "secret", "ws-secret", time.Hour)
	h := NewHandler(hub, auth, []string{"*"}, quietLogger())

	r := mux.NewRouter()
	r.HandleFunc("/v1/ws/assessments/{id}", h.SessionWS)
	r.HandleFunc("/v1/ws/dashboard", h.DashboardWS)
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	base := "ws" + strings.TrimPrefix(srv.URL, "http")

	_, resp, err := websocket.DefaultDialer.Dial(base+"/v1/ws/assessments/s-1", nil)
	require.Error(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	token, err := auth.GenerateRespondentToken("s-2", "")
	require.NoError(t, err)
	_, resp, err = websocket.DefaultDialer.Dial(base+"/v1/ws/assessments/s-1?token="+token, nil)
	require.Error(t, err)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	_, resp, err = websocket.DefaultDialer.Dial(base+"/v1/ws/dashboard?token="+token, nil)
	require.Error(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	token, err = auth.GenerateRespondentToken("s-1", "")
	require.NoError(t, err)
	client, _, err := websocket.DefaultDialer.Dial(base+"/v1/ws/assessments/s-1?token="+token, nil)
	require.NoError(t, err)
	t.Cleanup(func() { client.Close() })

	// registration is asynchronous; keep sending until the client sees one
	received := make(chan Message, 1)
	go func() {
		var msg Message
		if err := client.ReadJSON(&msg); err == nil {
			received <- msg
		}
	}()
	deadline := time.After(2 * time.Second)
	for {
		hub.BroadcastToSession("s-1", model.EventQuestionAnswered, map[string]int{"current": 1})
		select {
		case msg := <-received:
			assert.Equal(t, MessageType(model.EventQuestionAnswered), msg.Type)
			return
		case <-time.After(20 * time.Millisecond):
		case <-deadline:
			t.Fatal("no message over websocket")
		}
	}
}

func TestOriginChecker(t *testing.T) {
	req := func(origin string) *http.Request {
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		if origin != "" {
			r.Header.Set("Origin", origin)
		}
		return r
	}

	assert.True(t, originChecker(nil)(req("https://evil.example")))
	assert.True(t, originChecker([]string{"*"})(req("https://evil.example")))

	check := originChecker([]string{"https://dash.example"})
	assert.True(t, check(req("https://dash.example")))
	assert.True(t, check(req("")))
	assert.False(t, check(req("https://evil.example")))
}
