package service

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quiz_web/internal/models"
)

func waitForType(t *testing.T, conn *fakeConn, typ models.EventType, n int) {
	t.Helper()
	require.Eventually(t, func() bool {
		return conn.countType(typ) >= n
	}, time.Second, 5*time.Millisecond, "等待 %s x%d 超時", typ, n)
}

func TestRegisterAnnouncesUserJoined(t *testing.T) {
	hub := NewWebSocketManager(newFakeChatRepo())

	conn1 := &fakeConn{}
	hub.Register(1, 10, "ana", conn1)

	conn2 := &fakeConn{}
	hub.Register(1, 11, "leo", conn2)

	// 先加入的連線會收到後加入者的通知
	waitForType(t, conn1, models.EventUserJoined, 2)
	assert.Equal(t, 2, hub.RoomClients(1))
}

func TestSupersedeClosesOldConnection(t *testing.T) {
	hub := NewWebSocketManager(newFakeChatRepo())

	old := &fakeConn{}
	hub.Register(1, 10, "ana", old)
	waitForType(t, old, models.EventUserJoined, 1)

	replacement := &fakeConn{}
	hub.Register(1, 10, "ana", replacement)

	assert.True(t, old.isClosed())
	assert.Equal(t, 1, hub.RoomClients(1))

	// 取代後的廣播不會到達舊連線
	before := old.countType(models.EventChat)
	hub.Broadcast(1, models.NewChatEvent(10, "ana", "hola", time.Now()))
	waitForType(t, replacement, models.EventChat, 1)
	assert.Equal(t, before, old.countType(models.EventChat))
}

func TestUnregisterAfterSupersessionIsNoop(t *testing.T) {
	hub := NewWebSocketManager(newFakeChatRepo())

	old := &fakeConn{}
	oldClient := hub.Register(1, 10, "ana", old)

	replacement := &fakeConn{}
	hub.Register(1, 10, "ana", replacement)

	// 舊連線的斷線清理不應把新連線踢出房間，也不應廣播 user_left
	hub.Unregister(oldClient)
	assert.Equal(t, 1, hub.RoomClients(1))

	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, 0, replacement.countType(models.EventUserLeft))
}

func TestUnregisterAnnouncesUserLeft(t *testing.T) {
	hub := NewWebSocketManager(newFakeChatRepo())

	conn1 := &fakeConn{}
	hub.Register(1, 10, "ana", conn1)

	conn2 := &fakeConn{}
	client2 := hub.Register(1, 11, "leo", conn2)

	hub.Unregister(client2)

	waitForType(t, conn1, models.EventUserLeft, 1)
	assert.Equal(t, 1, hub.RoomClients(1))
	assert.True(t, conn2.isClosed())
}

func TestBroadcastSurvivesFailingConnection(t *testing.T) {
	hub := NewWebSocketManager(newFakeChatRepo())

	good1 := &fakeConn{}
	hub.Register(1, 10, "ana", good1)
	broken := &fakeConn{failWrites: true}
	hub.Register(1, 11, "leo", broken)
	good2 := &fakeConn{}
	hub.Register(1, 12, "mia", good2)

	hub.Broadcast(1, models.NewChatEvent(10, "ana", "hola", time.Now()))

	// 壞掉的連線不影響其他成員收到廣播
	waitForType(t, good1, models.EventChat, 1)
	waitForType(t, good2, models.EventChat, 1)
}

func TestBroadcastScopedToRoom(t *testing.T) {
	hub := NewWebSocketManager(newFakeChatRepo())

	roomA := &fakeConn{}
	hub.Register(1, 10, "ana", roomA)
	roomB := &fakeConn{}
	hub.Register(2, 11, "leo", roomB)

	hub.Broadcast(1, models.NewChatEvent(10, "ana", "hola", time.Now()))

	waitForType(t, roomA, models.EventChat, 1)
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, 0, roomB.countType(models.EventChat))
}

func TestHandleInboundChatPersistsAndBroadcasts(t *testing.T) {
	chatRepo := newFakeChatRepo()
	hub := NewWebSocketManager(chatRepo)

	conn := &fakeConn{}
	client := hub.Register(1, 10, "ana", conn)

	raw, _ := json.Marshal(map[string]any{"type": "chat", "message": "hola a todos"})
	hub.HandleInbound(client, raw)

	waitForType(t, conn, models.EventChat, 1)
	require.Equal(t, 1, chatRepo.count())

	messages, err := chatRepo.FindByRoomID(1)
	require.NoError(t, err)
	assert.Equal(t, "hola a todos", messages[0].Message)
	assert.Equal(t, "ana", messages[0].Username)
	assert.NotEmpty(t, messages[0].MessageID)
}

func TestHandleInboundGameActionPassthrough(t *testing.T) {
	hub := NewWebSocketManager(newFakeChatRepo())

	conn1 := &fakeConn{}
	hub.Register(1, 10, "ana", conn1)
	conn2 := &fakeConn{}
	client2 := hub.Register(1, 11, "leo", conn2)

	raw, _ := json.Marshal(map[string]any{
		"type":   "game_action",
		"action": "buzz",
		"data":   map[string]any{"question": 1},
	})
	hub.HandleInbound(client2, raw)

	waitForType(t, conn1, models.EventGameAction, 1)
}

func TestHandleInboundRejectsUnknownType(t *testing.T) {
	chatRepo := newFakeChatRepo()
	hub := NewWebSocketManager(chatRepo)

	conn := &fakeConn{}
	client := hub.Register(1, 10, "ana", conn)
	waitForType(t, conn, models.EventUserJoined, 1)

	hub.HandleInbound(client, []byte(`{"type":"hack","message":"x"}`))

	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, 0, chatRepo.count())
	assert.Equal(t, 0, conn.countType(models.EventChat))
}

func TestCloseRoomClosesAllConnections(t *testing.T) {
	hub := NewWebSocketManager(newFakeChatRepo())

	conn1 := &fakeConn{}
	hub.Register(1, 10, "ana", conn1)
	conn2 := &fakeConn{}
	hub.Register(1, 11, "leo", conn2)

	hub.CloseRoom(1)

	assert.True(t, conn1.isClosed())
	assert.True(t, conn2.isClosed())
	assert.Equal(t, 0, hub.RoomClients(1))
}
