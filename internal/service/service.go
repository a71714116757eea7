package service

import (
	"quiz_web/internal/repository"
)

type Services struct {
	User      *UserService
	Room      *RoomService
	Game      *GameService
	WebSocket *WebSocketManager
}

func NewServices(repos *repository.Repositories) *Services {
	wsManager := NewWebSocketManager(repos.ChatMessage)

	userService := NewUserService(repos.User)
	roomService := NewRoomService(repos.Room)
	gameService := NewGameService(roomService, repos.Question, repos.GameSession, userService, wsManager)

	// 房間被刪除時：結束進行中的遊戲，並關閉房間內的所有連線
	roomService.OnRoomClosed(gameService.handleRoomClosed)
	roomService.OnRoomClosed(wsManager.CloseRoom)

	return &Services{
		User:      userService,
		Room:      roomService,
		Game:      gameService,
		WebSocket: wsManager,
	}
}
