package websocket

import (
	"net/http"
	"strings"
	"time"

	"phone-book/config"
	"phone-book/pkg/jwt"
	"phone-book/pkg/logger"
	"phone-book/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // 允许跨域
	},
}

const (
	defaultPingInterval = 30 * time.Second
	defaultReadTimeout  = 90 * time.Second
)

// NewHandler 返回 /ws 路由处理函数。
// 连接只用于服务端推送事件，客户端发来的数据仅用于保活。
func NewHandler(jwtSvc *jwt.JWTService, wsCfg config.WebSocketConfig, manager *Manager) gin.HandlerFunc {
	if wsCfg.PingInterval <= 0 {
		wsCfg.PingInterval = defaultPingInterval
	}
	if wsCfg.ReadTimeout <= 0 {
		wsCfg.ReadTimeout = defaultReadTimeout
	}

	return func(c *gin.Context) {
		token := c.Query("token")
		if token == "" {
			token = strings.TrimPrefix(c.GetHeader("Sec-WebSocket-Protocol"), "Bearer ")
		}
		if token == "" {
			response.Unauthorized(c, "缺少token")
			return
		}

		claims, err := jwtSvc.ValidateToken(token)
		if err != nil {
			response.Unauthorized(c, "token无效或已过期")
			return
		}
		userID, err := claims.UserID()
		if err != nil {
			response.Unauthorized(c, "token无效")
			return
		}

		// 回显子协议，避免客户端提示 "Server sent no subprotocol"
		respHeader := http.Header{}
		if protocol := c.GetHeader("Sec-WebSocket-Protocol"); protocol != "" {
			respHeader.Set("Sec-WebSocket-Protocol", protocol)
		}

		conn, err := upgrader.Upgrade(c.Writer, c.Request, respHeader)
		if err != nil {
			logger.Warn("WebSocket升级失败", zap.Error(err))
			return
		}
		defer conn.Close()

		client := &Client{
			UserID: userID,
			Conn:   conn,
			Send:   make(chan []byte, 256),
		}
		manager.AddClient(client.UserID, client)
		defer manager.RemoveClient(client.UserID, client)
		logger.Info("WebSocket连接建立",
			zap.Uint("user_id", client.UserID),
			zap.String("username", claims.Username),
		)

		// 写协程 + 定时发送ping心跳
		go writePump(client, wsCfg.PingInterval)

		// 读循环。若超时未收到任何读事件则断开
		_ = conn.SetReadDeadline(time.Now().Add(wsCfg.ReadTimeout))
		conn.SetPongHandler(func(appData string) error {
			return conn.SetReadDeadline(time.Now().Add(wsCfg.ReadTimeout))
		})
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				break
			}
			_ = conn.SetReadDeadline(time.Now().Add(wsCfg.ReadTimeout))
		}
		logger.Info("WebSocket连接关闭", zap.Uint("user_id", client.UserID))
	}
}

func writePump(client *Client, pingInterval time.Duration) {
	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()
	for {
		select {
		case msg, ok := <-client.Send:
			if !ok {
				_ = client.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := client.Conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-ticker.C:
			if err := client.Conn.WriteControl(websocket.PingMessage, []byte("ping"), time.Now().Add(5*time.Second)); err != nil {
				return
			}
		}
	}
}
