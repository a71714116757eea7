package models

import (
	"encoding/json"
	"fmt"
	"time"
)

// EventType 是 WebSocket 事件的類型標籤
type EventType string

const (
	EventUserJoined EventType = "user_joined"
	EventUserLeft   EventType = "user_left"
	EventChat       EventType = "chat"
	EventGameAction EventType = "game_action"
)

// Event 是廣播給房間成員的出站事件
// Type 為固定的判別標籤，其餘字段依類型而定
type Event struct {
	Type      EventType      `json:"type"`
	UserID    uint           `json:"user_id,omitempty"`
	Username  string         `json:"username,omitempty"`
	Message   string         `json:"message,omitempty"`
	Timestamp string         `json:"timestamp,omitempty"`
	Action    string         `json:"action,omitempty"`
	Data      map[string]any `json:"data,omitempty"`
}

// InboundEvent 是客戶端傳入的事件，只允許 chat 和 game_action 兩種
type InboundEvent struct {
	Type    EventType      `json:"type"`
	Message string         `json:"message"`
	Action  string         `json:"action"`
	Data    map[string]any `json:"data"`
}

// ParseInbound 解析客戶端消息，未知的類型標籤會被明確拒絕
func ParseInbound(raw []byte) (*InboundEvent, error) {
	var evt InboundEvent
	if err := json.Unmarshal(raw, &evt); err != nil {
		return nil, err
	}

	switch evt.Type {
	case EventChat, EventGameAction:
		return &evt, nil
	default:
		return nil, fmt.Errorf("unknown event type %q", evt.Type)
	}
}

// NewUserJoinedEvent 建立用戶加入房間的通知事件
func NewUserJoinedEvent(userID uint, username string) *Event {
	return &Event{
		Type:     EventUserJoined,
		UserID:   userID,
		Username: username,
	}
}

// NewUserLeftEvent 建立用戶離開房間的通知事件
func NewUserLeftEvent(userID uint, username string) *Event {
	return &Event{
		Type:     EventUserLeft,
		UserID:   userID,
		Username: username,
	}
}

// NewChatEvent 建立聊天廣播事件
func NewChatEvent(userID uint, username, message string, at time.Time) *Event {
	return &Event{
		Type:      EventChat,
		UserID:    userID,
		Username:  username,
		Message:   message,
		Timestamp: at.UTC().Format(time.RFC3339),
	}
}

// NewGameActionEvent 建立遊戲動作的轉發事件
func NewGameActionEvent(userID uint, action string, data map[string]any) *Event {
	return &Event{
		Type:   EventGameAction,
		UserID: userID,
		Action: action,
		Data:   data,
	}
}
