package service

import (
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"quiz_web/internal/models"
	"quiz_web/internal/repository"
)

// Conn 是連線中心使用的 WebSocket 連線能力子集，測試時可用假連線替代
type Conn interface {
	WriteJSON(v interface{}) error
	WriteMessage(messageType int, data []byte) error
	SetWriteDeadline(t time.Time) error
	Close() error
}

// Client 代表一個已註冊的客戶端連線
type Client struct {
	conn     Conn
	UserID   uint
	Username string
	RoomID   uint
	send     chan *models.Event
}

// WebSocketManager 管理所有的客戶端連線和房間內的消息廣播
type WebSocketManager struct {
	messageRepo repository.ChatMessageRepository

	mu     sync.RWMutex
	rooms  map[uint]map[*Client]bool // roomID -> client 集合
	byUser map[uint]*Client          // 每個用戶至多一條連線
}

// NewWebSocketManager 創建並初始化連線中心
func NewWebSocketManager(messageRepo repository.ChatMessageRepository) *WebSocketManager {
	return &WebSocketManager{
		messageRepo: messageRepo,
		rooms:       make(map[uint]map[*Client]bool),
		byUser:      make(map[uint]*Client),
	}
}

// Register 註冊一條新連線並向房間廣播 user_joined
// 同一用戶的舊連線會被新連線取代並關閉
func (s *WebSocketManager) Register(roomID, userID uint, username string, conn Conn) *Client {
	client := &Client{
		conn:     conn,
		UserID:   userID,
		Username: username,
		RoomID:   roomID,
		send:     make(chan *models.Event, 256),
	}

	s.mu.Lock()
	if old, ok := s.byUser[userID]; ok {
		s.detach(old)
		old.conn.Close()
	}
	if s.rooms[roomID] == nil {
		s.rooms[roomID] = make(map[*Client]bool)
	}
	s.rooms[roomID][client] = true
	s.byUser[userID] = client
	s.mu.Unlock()

	go s.writePump(client)

	s.Broadcast(roomID, models.NewUserJoinedEvent(userID, username))
	return client
}

// Unregister 移除連線並向房間廣播 user_left
// 若該連線已被更新的連線取代，則不做任何事
func (s *WebSocketManager) Unregister(client *Client) {
	s.mu.Lock()
	if s.byUser[client.UserID] != client {
		s.mu.Unlock()
		return
	}
	s.detach(client)
	s.mu.Unlock()

	client.conn.Close()
	s.Broadcast(client.RoomID, models.NewUserLeftEvent(client.UserID, client.Username))
}

// Broadcast 向房間內所有已註冊的連線廣播事件
// 單一連線的發送失敗不影響其他連線，也不向調用者回報
func (s *WebSocketManager) Broadcast(roomID uint, event *models.Event) {
	s.mu.RLock()
	clients := make([]*Client, 0, len(s.rooms[roomID]))
	for client := range s.rooms[roomID] {
		clients = append(clients, client)
	}
	s.mu.RUnlock()

	for _, client := range clients {
		select {
		case client.send <- event:
		default:
			// 發送隊列已滿，淘汰該連線，不阻塞廣播
			log.Printf("websocket: user %d 的發送隊列已滿，關閉連線", client.UserID)
			s.evict(client)
		}
	}
}

// HandleInbound 處理客戶端傳入的一條消息
// chat 消息先持久化再廣播；game_action 消息原樣轉發給房間
func (s *WebSocketManager) HandleInbound(client *Client, raw []byte) {
	evt, err := models.ParseInbound(raw)
	if err != nil {
		log.Printf("websocket: 來自 user %d 的消息無法解析: %v", client.UserID, err)
		return
	}

	switch evt.Type {
	case models.EventChat:
		now := time.Now().UTC()
		record := &models.ChatMessage{
			MessageID: uuid.NewString(),
			RoomID:    client.RoomID,
			UserID:    client.UserID,
			Username:  client.Username,
			Message:   evt.Message,
			Timestamp: now,
		}
		if err := s.messageRepo.Create(record); err != nil {
			log.Printf("websocket: 聊天消息持久化失敗: %v", err)
		}
		s.Broadcast(client.RoomID, models.NewChatEvent(client.UserID, client.Username, evt.Message, now))

	case models.EventGameAction:
		s.Broadcast(client.RoomID, models.NewGameActionEvent(client.UserID, evt.Action, evt.Data))
	}
}

// CloseRoom 關閉房間內的所有連線，房間被刪除時由註冊表回調觸發
func (s *WebSocketManager) CloseRoom(roomID uint) {
	s.mu.Lock()
	clients := s.rooms[roomID]
	delete(s.rooms, roomID)
	for client := range clients {
		if s.byUser[client.UserID] == client {
			delete(s.byUser, client.UserID)
		}
	}
	s.mu.Unlock()

	for client := range clients {
		client.conn.Close()
	}
}

// RoomClients 獲取指定房間的在線連線數量
func (s *WebSocketManager) RoomClients(roomID uint) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.rooms[roomID])
}

// writePump 將發送隊列中的事件寫到連線，並定期發送心跳
func (s *WebSocketManager) writePump(client *Client) {
	ticker := time.NewTicker(54 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case event, ok := <-client.send:
			client.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if !ok {
				client.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := client.conn.WriteJSON(event); err != nil {
				// 寫入失敗留給連線自己的斷線處理收尾
				log.Printf("websocket: 向 user %d 發送事件失敗: %v", client.UserID, err)
				return
			}

		case <-ticker.C:
			client.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if err := client.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// evict 移除一條連線但不廣播離開事件，用於淘汰失效的連線
func (s *WebSocketManager) evict(client *Client) {
	s.mu.Lock()
	if s.byUser[client.UserID] == client {
		s.detach(client)
	}
	s.mu.Unlock()
	client.conn.Close()
}

// detach 從兩個索引中移除連線，調用方必須持有寫鎖
func (s *WebSocketManager) detach(client *Client) {
	if clients, ok := s.rooms[client.RoomID]; ok {
		delete(clients, client)
		if len(clients) == 0 {
			delete(s.rooms, client.RoomID)
		}
	}
	delete(s.byUser, client.UserID)
}
