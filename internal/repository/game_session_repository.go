package repository

import (
	"quiz_web/internal/models"
	"quiz_web/internal/storage"
)

type GameSessionRepository interface {
	Create(session *models.GameSession) error
	FindBySessionID(sessionID string) (*models.GameSession, error)
	Update(session *models.GameSession) error
}

type gameSessionRepository struct {
	db *storage.PostgresDB
}

func NewGameSessionRepository(db *storage.PostgresDB) GameSessionRepository {
	return &gameSessionRepository{db: db}
}

func (r *gameSessionRepository) Create(session *models.GameSession) error {
	return r.db.Create(session).Error
}

func (r *gameSessionRepository) FindBySessionID(sessionID string) (*models.GameSession, error) {
	var session models.GameSession
	err := r.db.Where("session_id = ?", sessionID).First(&session).Error
	if err != nil {
		return nil, err
	}
	return &session, nil
}

func (r *gameSessionRepository) Update(session *models.GameSession) error {
	return r.db.Save(session).Error
}
