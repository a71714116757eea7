package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"quiz_web/internal/models"
	"quiz_web/internal/repository"
	"quiz_web/internal/service"
)

// RoomHandler 處理與遊戲房間相關的請求
type RoomHandler struct {
	roomService *service.RoomService
	messageRepo repository.ChatMessageRepository
}

// NewRoomHandler 創建一個新的 RoomHandler 實例
func NewRoomHandler(roomService *service.RoomService, messageRepo repository.ChatMessageRepository) *RoomHandler {
	return &RoomHandler{
		roomService: roomService,
		messageRepo: messageRepo,
	}
}

// CreateRoom 處理創建新房間的請求，創建者成為房主
func (h *RoomHandler) CreateRoom(c *gin.Context) {
	var input struct {
		Name            string `json:"name" binding:"required"`
		Capacity        int    `json:"capacity" binding:"required,min=1"`
		Subject         string `json:"subject" binding:"required"`
		GradeLevel      string `json:"grade_level" binding:"required"`
		Difficulty      string `json:"difficulty"`
		TimePerQuestion int    `json:"time_per_question"`
		TotalQuestions  int    `json:"total_questions" binding:"required,min=1"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID := c.GetUint("userID")
	room, err := h.roomService.CreateRoom(input.Name, userID, input.Capacity, models.RoomConfig{
		Subject:         input.Subject,
		GradeLevel:      input.GradeLevel,
		Difficulty:      input.Difficulty,
		TimePerQuestion: input.TimePerQuestion,
		TotalQuestions:  input.TotalQuestions,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "創建房間失敗"})
		return
	}

	c.JSON(http.StatusCreated, room)
}

// ListRooms 處理獲取房間列表的請求
func (h *RoomHandler) ListRooms(c *gin.Context) {
	rooms, err := h.roomService.ListOpenRooms()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "無法搜尋房間列表"})
		return
	}

	c.JSON(http.StatusOK, rooms)
}

// GetRoom 處理獲取房間訊息的請求
func (h *RoomHandler) GetRoom(c *gin.Context) {
	roomID, err := parseRoomID(c)
	if err != nil {
		return
	}

	room, err := h.roomService.GetRoom(roomID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, room)
}

// JoinRoom 處理加入房間的請求
func (h *RoomHandler) JoinRoom(c *gin.Context) {
	roomID, err := parseRoomID(c)
	if err != nil {
		return
	}

	userID := c.GetUint("userID")
	if err := h.roomService.JoinRoom(roomID, userID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "成功加入房間"})
}

// LeaveRoom 處理離開房間的請求
func (h *RoomHandler) LeaveRoom(c *gin.Context) {
	roomID, err := parseRoomID(c)
	if err != nil {
		return
	}

	userID := c.GetUint("userID")
	if err := h.roomService.LeaveRoom(roomID, userID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "成功離開房間"})
}

// GetMessages 處理獲取房間聊天記錄的請求
func (h *RoomHandler) GetMessages(c *gin.Context) {
	roomID, err := parseRoomID(c)
	if err != nil {
		return
	}

	messages, err := h.messageRepo.FindByRoomID(roomID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "無法搜尋聊天記錄"})
		return
	}

	c.JSON(http.StatusOK, messages)
}

// parseRoomID 解析路徑參數中的房間 ID，無效時直接回應 400
func parseRoomID(c *gin.Context) (uint, error) {
	roomID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "無效的房間 ID"})
		return 0, err
	}
	return uint(roomID), nil
}
