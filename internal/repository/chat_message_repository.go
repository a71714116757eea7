package repository

import (
	"quiz_web/internal/models"
	"quiz_web/internal/storage"
)

type ChatMessageRepository interface {
	Create(message *models.ChatMessage) error
	FindByRoomID(roomID uint) ([]models.ChatMessage, error)
}

type chatMessageRepository struct {
	db *storage.PostgresDB
}

func NewChatMessageRepository(db *storage.PostgresDB) ChatMessageRepository {
	return &chatMessageRepository{db: db}
}

func (r *chatMessageRepository) Create(message *models.ChatMessage) error {
	return r.db.Create(message).Error
}

func (r *chatMessageRepository) FindByRoomID(roomID uint) ([]models.ChatMessage, error) {
	var messages []models.ChatMessage
	err := r.db.Where("room_id = ?", roomID).Order("timestamp asc").Find(&messages).Error
	return messages, err
}
