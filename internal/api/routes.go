package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"quiz_web/internal/api/handlers"
	"quiz_web/internal/middleware"
	"quiz_web/internal/repository"
	"quiz_web/internal/service"
)

func SetupRoutes(r *gin.Engine, services *service.Services, repos *repository.Repositories) {
	// 初始化 handlers
	authHandler := handlers.NewAuthHandler(services.User)
	roomHandler := handlers.NewRoomHandler(services.Room, repos.ChatMessage)
	gameHandler := handlers.NewGameHandler(services.Game)
	wsHandler := handlers.NewWebSocketHandler(services.WebSocket, services.Room, services.User)

	// API 路由群組
	api := r.Group("/api")

	// 處理 404 錯誤
	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "找不到該路徑",
		})
	})

	// 公開路由
	{
		// 用戶認證相關
		api.POST("/register", authHandler.Register)
		api.POST("/login", authHandler.Login)

		// 基本的健康檢查
		api.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{
				"status": "ok",
			})
		})

		// WebSocket 連接點（token 在查詢參數中，由 handler 自行認證）
		api.GET("/rooms/:id/ws", wsHandler.HandleWebSocket)
	}

	// 需要驗證的路由
	authorized := api.Group("/")
	authorized.Use(middleware.AuthMiddleware(services.User))
	{
		// 遊戲房間相關
		rooms := authorized.Group("/rooms")
		{
			// 基本操作
			rooms.GET("", roomHandler.ListRooms)                // 獲取房間列表
			rooms.POST("", roomHandler.CreateRoom)              // 創建房間
			rooms.GET("/:id", roomHandler.GetRoom)              // 獲取房間信息
			rooms.GET("/:id/messages", roomHandler.GetMessages) // 獲取聊天記錄

			// 房間參與
			rooms.POST("/:id/join", roomHandler.JoinRoom)   // 加入房間
			rooms.POST("/:id/leave", roomHandler.LeaveRoom) // 離開房間

			// 開始遊戲
			rooms.POST("/:id/game/start", gameHandler.StartGame)
		}

		// 遊戲進程相關
		sessions := authorized.Group("/sessions")
		{
			sessions.GET("/:id/questions/:index", gameHandler.GetQuestion) // 獲取題目
			sessions.POST("/:id/answers", gameHandler.SubmitAnswer)        // 提交答案
			sessions.GET("/:id/results", gameHandler.GetResults)           // 獲取計分榜
			sessions.POST("/:id/complete", gameHandler.CompleteGame)       // 結束遊戲
		}
	}
}
