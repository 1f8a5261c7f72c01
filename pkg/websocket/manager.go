package websocket

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"phone-book/internal/event"

	"github.com/gorilla/websocket"
)

// Client 代表一个WebSocket连接的用户
// UserID: 用户ID
// Conn: WebSocket连接
// Send: 发送消息的通道

type Client struct {
	UserID uint
	Conn   *websocket.Conn
	Send   chan []byte
}

// Manager 管理所有在线用户的WebSocket连接，并把消息事件推送给消息所属用户
type Manager struct {
	clients map[uint]*Client // 在线用户
	lock    sync.RWMutex
}

func NewManager() *Manager {
	return &Manager{
		clients: make(map[uint]*Client),
	}
}

// AddClient 添加新连接，同一用户的旧连接会被关闭
func (m *Manager) AddClient(userID uint, client *Client) {
	m.lock.Lock()
	defer m.lock.Unlock()
	if old, ok := m.clients[userID]; ok && old != client {
		close(old.Send)
	}
	m.clients[userID] = client
}

// RemoveClient 移除连接，仅当传入的连接仍是当前连接时才生效
func (m *Manager) RemoveClient(userID uint, client *Client) {
	m.lock.Lock()
	defer m.lock.Unlock()
	if c, ok := m.clients[userID]; ok && c == client {
		close(c.Send)
		delete(m.clients, userID)
	}
}

// SendToUser 推送消息给指定用户，用户不在线或发送队列已满时返回 false
func (m *Manager) SendToUser(userID uint, msg []byte) bool {
	m.lock.RLock()
	defer m.lock.RUnlock()
	client, ok := m.clients[userID]
	if !ok {
		return false
	}
	select {
	case client.Send <- msg:
		return true
	default:
		return false
	}
}

// IsOnline 判断用户是否在线
func (m *Manager) IsOnline(userID uint) bool {
	m.lock.RLock()
	defer m.lock.RUnlock()
	_, ok := m.clients[userID]
	return ok
}

// Push 推送给客户端的数据格式
type Push struct {
	Type string            `json:"type"`
	Data event.MessageSent `json:"data"`
}

// Handle 实现 event.Handler，把事件推送给消息所属用户。
// 用户不在线时直接跳过，不算错误。
func (m *Manager) Handle(_ context.Context, evt event.MessageSent) error {
	if evt.UserID == nil || !m.IsOnline(*evt.UserID) {
		return nil
	}
	payload, err := json.Marshal(Push{Type: evt.Name, Data: evt})
	if err != nil {
		return fmt.Errorf("序列化推送消息失败: %w", err)
	}
	m.SendToUser(*evt.UserID, payload)
	return nil
}
