package realtime

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"groupstays/internal/pkg/jwt"
	"groupstays/internal/pkg/logger"
)

func newServer(t *testing.T) (*Hub, *jwt.Service, *httptest.Server) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	hub := NewHub(logger.Discard())
	jwtService := jwt.New("secret", time.Hour)

	router := gin.New()
	RegisterRoutes(router, NewHandler(hub, jwtService, nil))
	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return hub, jwtService, srv
}

func wsURL(srv *httptest.Server, token string) string {
	return "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws/owner?token=" + token
}

func TestServeOwner_DeliversEvents(t *testing.T) {
	hub, jwtService, srv := newServer(t)
	token, err := jwtService.GenerateToken(5, jwt.RoleOwner)
	require.NoError(t, err)

	conn, _, err := websocket.DefaultDialer.Dial(wsURL(srv, token), nil)
	require.NoError(t, err)
	defer conn.Close()

	require.Eventually(t, func() bool { return hub.Connected(5) == 1 }, time.Second, 10*time.Millisecond)

	assert.True(t, hub.SendToUser(5, Event{Type: EventPropertyStatus, Payload: map[string]string{"status": "approved"}}))
	assert.False(t, hub.SendToUser(6, Event{Type: EventPropertyStatus}))

	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var got Event
	require.NoError(t, conn.ReadJSON(&got))
	assert.Equal(t, EventPropertyStatus, got.Type)
	assert.Equal(t, map[string]any{"status": "approved"}, got.Payload)
}

func TestServeOwner_UnregistersOnClose(t *testing.T) {
	hub, jwtService, srv := newServer(t)
	token, _ := jwtService.GenerateToken(5, jwt.RoleOwner)

	conn, _, err := websocket.DefaultDialer.Dial(wsURL(srv, token), nil)
	require.NoError(t, err)
	require.Eventually(t, func() bool { return hub.Connected(5) == 1 }, time.Second, 10*time.Millisecond)

	conn.Close()
	assert.Eventually(t, func() bool { return hub.Connected(5) == 0 }, 2*time.Second, 10*time.Millisecond)
}

func TestServeOwner_RejectsBadToken(t *testing.T) {
	_, _, srv := newServer(t)

	_, resp, err := websocket.DefaultDialer.Dial(wsURL(srv, "nope"), nil)
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
