package repository

import "quiz_web/internal/storage"

type Repositories struct {
	User        UserRepository
	Room        RoomRepository
	Question    QuestionRepository
	GameSession GameSessionRepository
	ChatMessage ChatMessageRepository
}

func NewRepositories(db *storage.PostgresDB) *Repositories {
	return &Repositories{
		User:        NewUserRepository(db),
		Room:        NewRoomRepository(db),
		Question:    NewQuestionRepository(db),
		GameSession: NewGameSessionRepository(db),
		ChatMessage: NewChatMessageRepository(db),
	}
}
