package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"quiz_web/internal/service"
)

// GameHandler 處理與遊戲進程相關的請求
type GameHandler struct {
	gameService *service.GameService
}

// NewGameHandler 創建一個新的 GameHandler 實例
func NewGameHandler(gameService *service.GameService) *GameHandler {
	return &GameHandler{gameService: gameService}
}

// StartGame 處理開始遊戲的請求，只有房主可以開始
func (h *GameHandler) StartGame(c *gin.Context) {
	roomID, err := parseRoomID(c)
	if err != nil {
		return
	}

	userID := c.GetUint("userID")
	sessionID, questions, err := h.gameService.Start(roomID, userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"session_id": sessionID,
		"questions":  questions,
	})
}

// GetQuestion 處理獲取指定題目的請求
func (h *GameHandler) GetQuestion(c *gin.Context) {
	sessionID := c.Param("id")
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "無效的題目索引"})
		return
	}

	question, err := h.gameService.Question(sessionID, index)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, question)
}

// SubmitAnswer 處理提交答案的請求
func (h *GameHandler) SubmitAnswer(c *gin.Context) {
	var input struct {
		QuestionIndex *int `json:"question_index" binding:"required"`
		ChoiceIndex   *int `json:"choice_index" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	sessionID := c.Param("id")
	userID := c.GetUint("userID")
	result, err := h.gameService.SubmitAnswer(sessionID, userID, *input.QuestionIndex, *input.ChoiceIndex)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetResults 處理獲取計分榜的請求，遊戲未結束時回傳部分結果
func (h *GameHandler) GetResults(c *gin.Context) {
	sessionID := c.Param("id")

	results, err := h.gameService.Results(sessionID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, results)
}

// CompleteGame 處理結束遊戲的請求，只有房主可以結束
func (h *GameHandler) CompleteGame(c *gin.Context) {
	sessionID := c.Param("id")
	userID := c.GetUint("userID")

	if err := h.gameService.Complete(sessionID, userID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "遊戲結束"})
}
