package handlers

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"quiz_web/internal/service"
)

// 定義 WebSocket 升級器
var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // 注意：在生產環境中，應該檢查 origin
	},
}

// WebSocketHandler 處理 WebSocket 連接
type WebSocketHandler struct {
	wsManager   *service.WebSocketManager
	roomService *service.RoomService
	userService *service.UserService
}

// NewWebSocketHandler 創建一個新的 WebSocketHandler 實例
func NewWebSocketHandler(wsManager *service.WebSocketManager, roomService *service.RoomService, userService *service.UserService) *WebSocketHandler {
	return &WebSocketHandler{
		wsManager:   wsManager,
		roomService: roomService,
		userService: userService,
	}
}

// HandleWebSocket 處理 WebSocket 連接請求
// 瀏覽器無法在 WebSocket 握手時設置請求頭，token 因此放在查詢參數中；
// 認證失敗的連線在註冊到連線中心之前就被拒絕
func (h *WebSocketHandler) HandleWebSocket(c *gin.Context) {
	roomID, err := parseRoomID(c)
	if err != nil {
		return
	}

	user, err := h.userService.Authenticate(c.Query("token"))
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	if _, err := h.roomService.GetRoom(roomID); err != nil {
		respondError(c, err)
		return
	}

	// 升級 HTTP 連接為 WebSocket 連接
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "升級WebSocket失敗"})
		return
	}

	client := h.wsManager.Register(roomID, user.ID, user.Username, conn)
	defer h.wsManager.Unregister(client)

	h.readPump(conn, client)
}

// readPump 持續監聽並處理從客戶端接收的消息
func (h *WebSocketHandler) readPump(conn *websocket.Conn, client *service.Client) {
	conn.SetReadLimit(4096) // 設置最大消息大小為 4KB
	conn.SetReadDeadline(time.Now().Add(60 * time.Second))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(60 * time.Second))
		return nil
	})

	for {
		_, message, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("websocket unexpected close error: %v", err)
			}
			break
		}

		h.wsManager.HandleInbound(client, message)
	}
}
