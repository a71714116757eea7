package service

import (
	"fmt"
	"sync"
	"time"

	"gorm.io/gorm"

	"quiz_web/internal/models"
)

// 測試用的記憶體版 repository 和連線實現

type fakeRoomRepo struct {
	mu     sync.Mutex
	nextID uint
	rooms  map[uint]models.Room
}

func newFakeRoomRepo() *fakeRoomRepo {
	return &fakeRoomRepo{rooms: make(map[uint]models.Room)}
}

func (r *fakeRoomRepo) Create(room *models.Room) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	room.ID = r.nextID
	r.rooms[room.ID] = *room
	return nil
}

func (r *fakeRoomRepo) FindByID(id uint) (*models.Room, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	room, ok := r.rooms[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &room, nil
}

func (r *fakeRoomRepo) Update(room *models.Room) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rooms[room.ID] = *room
	return nil
}

func (r *fakeRoomRepo) Delete(id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.rooms, id)
	return nil
}

func (r *fakeRoomRepo) FindOpen() ([]models.Room, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var rooms []models.Room
	for _, room := range r.rooms {
		if room.Status != models.RoomStatusFinished {
			rooms = append(rooms, room)
		}
	}
	return rooms, nil
}

type fakeQuestionRepo struct {
	mu        sync.Mutex
	nextID    uint
	questions []models.Question
}

func newFakeQuestionRepo() *fakeQuestionRepo {
	return &fakeQuestionRepo{}
}

func (r *fakeQuestionRepo) Create(question *models.Question) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	question.ID = r.nextID
	r.questions = append(r.questions, *question)
	return nil
}

func (r *fakeQuestionRepo) FindByID(id uint) (*models.Question, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, q := range r.questions {
		if q.ID == id {
			return &q, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeQuestionRepo) FindBySubjectGrade(subject, gradeLevel string, limit int) ([]models.Question, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Question
	for _, q := range r.questions {
		if q.Subject == subject && q.GradeLevel == gradeLevel {
			out = append(out, q)
			if limit > 0 && len(out) == limit {
				break
			}
		}
	}
	return out, nil
}

// EnsureDefaults 為指定科目/年級寫入五道固定題目，正確選項一律是索引 1
func (r *fakeQuestionRepo) EnsureDefaults(subject, gradeLevel string) ([]models.Question, error) {
	existing, _ := r.FindBySubjectGrade(subject, gradeLevel, 0)
	if len(existing) > 0 {
		return existing, nil
	}

	for i := 0; i < 5; i++ {
		q := models.Question{
			Subject:      subject,
			GradeLevel:   gradeLevel,
			Text:         fmt.Sprintf("pregunta %d", i+1),
			Options:      []string{"opcion a", "opcion b", "opcion c", "opcion d"},
			CorrectIndex: 1,
		}
		if err := r.Create(&q); err != nil {
			return nil, err
		}
	}
	return r.FindBySubjectGrade(subject, gradeLevel, 0)
}

type fakeSessionRepo struct {
	mu       sync.Mutex
	sessions map[string]models.GameSession
}

func newFakeSessionRepo() *fakeSessionRepo {
	return &fakeSessionRepo{sessions: make(map[string]models.GameSession)}
}

func (r *fakeSessionRepo) Create(session *models.GameSession) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[session.SessionID] = *session
	return nil
}

func (r *fakeSessionRepo) FindBySessionID(sessionID string) (*models.GameSession, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	session, ok := r.sessions[sessionID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &session, nil
}

func (r *fakeSessionRepo) Update(session *models.GameSession) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[session.SessionID] = *session
	return nil
}

type fakeChatRepo struct {
	mu       sync.Mutex
	messages []models.ChatMessage
}

func newFakeChatRepo() *fakeChatRepo {
	return &fakeChatRepo{}
}

func (r *fakeChatRepo) Create(message *models.ChatMessage) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.messages = append(r.messages, *message)
	return nil
}

func (r *fakeChatRepo) FindByRoomID(roomID uint) ([]models.ChatMessage, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.ChatMessage
	for _, m := range r.messages {
		if m.RoomID == roomID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *fakeChatRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.messages)
}

// fakeIdentity 以固定的 map 回答顯示名稱查詢
type fakeIdentity struct {
	names map[uint]string
}

func (f *fakeIdentity) DisplayNames(ids []uint) (map[uint]string, error) {
	out := make(map[uint]string, len(ids))
	for _, id := range ids {
		out[id] = f.names[id]
	}
	return out, nil
}

// fakeConn 記錄寫入的事件；failWrites 為 true 時模擬已斷開的連線
type fakeConn struct {
	mu         sync.Mutex
	events     []*models.Event
	closed     bool
	failWrites bool
}

func (c *fakeConn) WriteJSON(v interface{}) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.failWrites || c.closed {
		return fmt.Errorf("connection closed")
	}
	if evt, ok := v.(*models.Event); ok {
		c.events = append(c.events, evt)
	}
	return nil
}

func (c *fakeConn) WriteMessage(messageType int, data []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.failWrites || c.closed {
		return fmt.Errorf("connection closed")
	}
	return nil
}

func (c *fakeConn) SetWriteDeadline(t time.Time) error { return nil }

func (c *fakeConn) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	return nil
}

func (c *fakeConn) isClosed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closed
}

func (c *fakeConn) eventTypes() []models.EventType {
	c.mu.Lock()
	defer c.mu.Unlock()
	types := make([]models.EventType, len(c.events))
	for i, evt := range c.events {
		types[i] = evt.Type
	}
	return types
}

func (c *fakeConn) countType(t models.EventType) int {
	n := 0
	for _, typ := range c.eventTypes() {
		if typ == t {
			n++
		}
	}
	return n
}
