package websocket

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"phone-book/config"
	"phone-book/internal/event"
	"phone-book/internal/model"
	"phone-book/pkg/jwt"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/require"
)

func newClient(userID uint) *Client {
	return &Client{UserID: userID, Send: make(chan []byte, 1)}
}

func TestManager_AddRemove(t *testing.T) {
	req := require.New(t)
	m := NewManager()
	first := newClient(1)

	m.AddClient(1, first)
	req.True(m.IsOnline(1))

	second := newClient(1)
	m.AddClient(1, second)
	_, open := <-first.Send
	req.False(open, "replaced connection is closed")

	m.RemoveClient(1, first)
	req.True(m.IsOnline(1), "stale connection does not remove the current one")

	m.RemoveClient(1, second)
	req.False(m.IsOnline(1))
}

func TestManager_SendToUser(t *testing.T) {
	req := require.New(t)
	m := NewManager()
	c := newClient(2)
	m.AddClient(2, c)

	req.False(m.SendToUser(9, []byte("x")), "offline user")
	req.True(m.SendToUser(2, []byte("a")))
	req.False(m.SendToUser(2, []byte("b")), "queue full")
	req.Equal([]byte("a"), <-c.Send)
}

func TestManager_HandlePushesToOwner(t *testing.T) {
	req := require.New(t)
	m := NewManager()
	c := newClient(4)
	m.AddClient(4, c)

	userID := uint(4)
	evt := event.NewMessageSent(&model.Message{ID: 12, UserID: &userID, ContactID: 3, Status: model.StatusSent})
	req.NoError(m.Handle(context.Background(), evt))

	var push Push
	req.NoError(json.Unmarshal(<-c.Send, &push))
	req.Equal(event.NameMessageSent, push.Type)
	req.Equal(uint(12), push.Data.MessageID)

	req.NoError(m.Handle(context.Background(), event.NewMessageSent(&model.Message{ID: 13})), "message without owner is skipped")

	offline := uint(6)
	req.NoError(m.Handle(context.Background(), event.NewMessageSent(&model.Message{ID: 14, UserID: &offline})), "offline owner is skipped")
	req.Empty(c.Send, "nothing queued for other users")
}

func startServer(t *testing.T, wsCfg config.WebSocketConfig) (*jwt.JWTService, *Manager, string) {
	gin.SetMode(gin.TestMode)
	jwtSvc := jwt.NewJWTService(config.JWTConfig{Secret: "ws-secret", ExpireTime: time.Hour, Issuer: "phone-book-test"})
	m := NewManager()
	r := gin.New()
	r.GET("/ws", NewHandler(jwtSvc, wsCfg, m))
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return jwtSvc, m, "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
}

func dialAndReceive(t *testing.T, jwtSvc *jwt.JWTService, m *Manager, wsURL string) {
	req := require.New(t)

	token, err := jwtSvc.GenerateToken(5, "eve")
	req.NoError(err)
	conn, _, err := websocket.DefaultDialer.Dial(wsURL+"?token="+token, nil)
	req.NoError(err)
	defer conn.Close()

	req.Eventually(func() bool { return m.IsOnline(5) }, time.Second, 10*time.Millisecond)

	userID := uint(5)
	req.NoError(m.Handle(context.Background(), event.NewMessageSent(&model.Message{ID: 8, UserID: &userID, Status: model.StatusSent})))

	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, data, err := conn.ReadMessage()
	req.NoError(err)

	var push Push
	req.NoError(json.Unmarshal(data, &push))
	req.Equal(uint(8), push.Data.MessageID)
}

func TestHandler_PushOverConnection(t *testing.T) {
	jwtSvc, m, wsURL := startServer(t, config.WebSocketConfig{PingInterval: time.Minute, ReadTimeout: time.Minute})

	_, resp, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.Error(t, err, "missing token")
	if resp != nil {
		resp.Body.Close()
	}

	dialAndReceive(t, jwtSvc, m, wsURL)
}

func TestHandler_ZeroIntervalsUseDefaults(t *testing.T) {
	jwtSvc, m, wsURL := startServer(t, config.WebSocketConfig{})
	dialAndReceive(t, jwtSvc, m, wsURL)
}
