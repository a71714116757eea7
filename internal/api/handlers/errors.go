package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"quiz_web/internal/service"
)

// respondError 將服務層的錯誤分類對應到 HTTP 狀態碼
func respondError(c *gin.Context, err error) {
	c.JSON(errorStatus(err), gin.H{"error": err.Error()})
}

func errorStatus(err error) int {
	switch {
	case errors.Is(err, service.ErrUnauthenticated):
		return http.StatusUnauthorized
	case errors.Is(err, service.ErrRoomNotFound),
		errors.Is(err, service.ErrSessionNotFound),
		errors.Is(err, service.ErrQuestionNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrNotRoomHost),
		errors.Is(err, service.ErrNotPlayer):
		return http.StatusForbidden
	case errors.Is(err, service.ErrRoomFull),
		errors.Is(err, service.ErrAlreadyMember),
		errors.Is(err, service.ErrSessionActive),
		errors.Is(err, service.ErrSessionFinished),
		errors.Is(err, service.ErrAlreadyAnswered):
		return http.StatusConflict
	case errors.Is(err, service.ErrInvalidChoice):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
