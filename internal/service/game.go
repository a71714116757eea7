package service

import (
	"fmt"
	"log"
	"math/rand"
	"slices"
	"sort"
	"sync"

	"github.com/google/uuid"

	"quiz_web/internal/models"
	"quiz_web/internal/repository"
)

// Identity 是遊戲引擎對身份提供者的窄依賴，只用於結算時查顯示名稱
type Identity interface {
	DisplayNames(ids []uint) (map[uint]string, error)
}

// GameService 驅動一場遊戲的狀態機：出題、收答案、計分、結算
// 進行中的狀態保存在記憶體，每場遊戲有自己的互斥鎖，
// 同一場遊戲的並發答題互不競爭，不同遊戲完全獨立
type GameService struct {
	rooms        *RoomService
	questionRepo repository.QuestionRepository
	sessionRepo  repository.GameSessionRepository
	identity     Identity
	hub          *WebSocketManager

	mu       sync.RWMutex
	sessions map[string]*gameSession
	byRoom   map[uint]string // roomID -> 進行中的 session id
}

type gameSession struct {
	mu sync.Mutex

	id        string
	roomID    uint
	questions []models.Question
	players   []uint // 開局時的成員快照，保留加入順序
	scores    map[uint]int
	answers   map[uint][]int        // 每個玩家按提交順序的答案歷史
	answered  map[uint]map[int]bool // 每個玩家已作答過的題目索引
	status    models.SessionStatus
}

func NewGameService(rooms *RoomService, questionRepo repository.QuestionRepository,
	sessionRepo repository.GameSessionRepository, identity Identity, hub *WebSocketManager) *GameService {
	return &GameService{
		rooms:        rooms,
		questionRepo: questionRepo,
		sessionRepo:  sessionRepo,
		identity:     identity,
		hub:          hub,
		sessions:     make(map[string]*gameSession),
		byRoom:       make(map[uint]string),
	}
}

// QuestionView 是對玩家可見的題目，正確答案已被剝除
type QuestionView struct {
	ID             uint     `json:"id"`
	Text           string   `json:"text"`
	Options        []string `json:"options"`
	QuestionNumber int      `json:"question_number"`
	TotalQuestions int      `json:"total_questions"`
}

// AnswerResult 是一次答題的結果
type AnswerResult struct {
	IsCorrect    bool   `json:"is_correct"`
	CorrectIndex int    `json:"correct_index"`
	Explanation  string `json:"explanation"`
}

// ResultEntry 是結算榜上的一行
type ResultEntry struct {
	UserID         uint   `json:"user_id"`
	Username       string `json:"username"`
	Score          int    `json:"score"`
	TotalQuestions int    `json:"total_questions"`
}

// SessionResults 是一場遊戲的結算
type SessionResults struct {
	SessionID string               `json:"session_id"`
	Status    models.SessionStatus `json:"status"`
	Results   []ResultEntry        `json:"results"`
	Winner    *ResultEntry         `json:"winner"`
}

// Start 由房主開始一場遊戲
// 題目不足時先冪等地寫入預設題庫再選題；候選題目隨機洗牌後截斷到設定的題數
func (s *GameService) Start(roomID, requesterID uint) (string, []QuestionView, error) {
	room, err := s.rooms.GetRoom(roomID)
	if err != nil {
		return "", nil, err
	}
	if room.HostUserID != requesterID {
		return "", nil, ErrNotRoomHost
	}

	// 先占位，避免兩個並發的開始請求都通過檢查
	s.mu.Lock()
	if _, active := s.byRoom[roomID]; active {
		s.mu.Unlock()
		return "", nil, ErrSessionActive
	}
	s.byRoom[roomID] = ""
	s.mu.Unlock()

	sessionID, views, err := s.buildSession(room)

	s.mu.Lock()
	if err != nil {
		delete(s.byRoom, roomID)
	} else {
		s.byRoom[roomID] = sessionID
	}
	s.mu.Unlock()

	if err != nil {
		return "", nil, err
	}

	s.hub.Broadcast(roomID, models.NewGameActionEvent(requesterID, "game_started", map[string]any{
		"session_id":      sessionID,
		"total_questions": len(views),
	}))
	return sessionID, views, nil
}

func (s *GameService) buildSession(room *models.Room) (string, []QuestionView, error) {
	total := room.Config.TotalQuestions

	pool, err := s.questionRepo.FindBySubjectGrade(room.Config.Subject, room.Config.GradeLevel, 0)
	if err != nil {
		return "", nil, err
	}
	if len(pool) < total {
		if _, err := s.questionRepo.EnsureDefaults(room.Config.Subject, room.Config.GradeLevel); err != nil {
			return "", nil, err
		}
		pool, err = s.questionRepo.FindBySubjectGrade(room.Config.Subject, room.Config.GradeLevel, 0)
		if err != nil {
			return "", nil, err
		}
	}
	if len(pool) == 0 {
		return "", nil, ErrQuestionNotFound
	}

	// 全局隨機源自 Go 1.20 起自動播種，並發開局的順序彼此獨立
	rand.Shuffle(len(pool), func(i, j int) {
		pool[i], pool[j] = pool[j], pool[i]
	})
	if len(pool) > total {
		pool = pool[:total]
	}

	session := &gameSession{
		id:        uuid.NewString(),
		roomID:    room.ID,
		questions: pool,
		players:   slices.Clone(room.Members),
		scores:    make(map[uint]int),
		answers:   make(map[uint][]int),
		answered:  make(map[uint]map[int]bool),
		status:    models.SessionStatusActive,
	}
	for _, userID := range session.players {
		session.scores[userID] = 0
		session.answers[userID] = []int{}
		session.answered[userID] = make(map[int]bool)
	}

	questionIDs := make([]uint, len(pool))
	for i, q := range pool {
		questionIDs[i] = q.ID
	}
	initialScores := make(map[uint]int, len(session.scores))
	for id, score := range session.scores {
		initialScores[id] = score
	}
	record := &models.GameSession{
		SessionID:   session.id,
		RoomID:      room.ID,
		QuestionIDs: questionIDs,
		Scores:      initialScores,
		Status:      models.SessionStatusActive,
	}
	if err := s.sessionRepo.Create(record); err != nil {
		return "", nil, err
	}

	if err := s.rooms.SetStatus(room.ID, models.RoomStatusPlaying); err != nil {
		return "", nil, err
	}

	s.mu.Lock()
	s.sessions[session.id] = session
	s.mu.Unlock()

	views := make([]QuestionView, len(pool))
	for i, q := range pool {
		views[i] = stripQuestion(q, i, len(pool))
	}
	return session.id, views, nil
}

// Question 回傳指定索引的題目（不含答案），並附上題號和總題數
func (s *GameService) Question(sessionID string, index int) (*QuestionView, error) {
	session, err := s.session(sessionID)
	if err != nil {
		return nil, err
	}

	session.mu.Lock()
	defer session.mu.Unlock()

	if index < 0 || index >= len(session.questions) {
		return nil, ErrQuestionNotFound
	}
	view := stripQuestion(session.questions[index], index, len(session.questions))
	return &view, nil
}

// SubmitAnswer 記錄一名玩家對某題的作答
// 同一玩家對同一題的重複提交會被拒絕；答對時分數恰好加一
func (s *GameService) SubmitAnswer(sessionID string, userID uint, questionIndex, choiceIndex int) (*AnswerResult, error) {
	session, err := s.session(sessionID)
	if err != nil {
		return nil, err
	}

	session.mu.Lock()
	defer session.mu.Unlock()

	if session.status == models.SessionStatusFinished {
		return nil, ErrSessionFinished
	}
	if _, ok := session.scores[userID]; !ok {
		return nil, ErrNotPlayer
	}
	if questionIndex < 0 || questionIndex >= len(session.questions) {
		return nil, ErrQuestionNotFound
	}

	question := session.questions[questionIndex]
	if choiceIndex < 0 || choiceIndex >= len(question.Options) {
		return nil, ErrInvalidChoice
	}
	if session.answered[userID][questionIndex] {
		return nil, ErrAlreadyAnswered
	}

	session.answered[userID][questionIndex] = true
	session.answers[userID] = append(session.answers[userID], choiceIndex)

	isCorrect := choiceIndex == question.CorrectIndex
	if isCorrect {
		session.scores[userID]++
	}

	return &AnswerResult{
		IsCorrect:    isCorrect,
		CorrectIndex: question.CorrectIndex,
		Explanation:  fmt.Sprintf("La respuesta correcta era: %s", question.Options[question.CorrectIndex]),
	}, nil
}

// AnswerHistory 回傳一名玩家按提交順序排列的答案索引
func (s *GameService) AnswerHistory(sessionID string, userID uint) ([]int, error) {
	session, err := s.session(sessionID)
	if err != nil {
		return nil, err
	}

	session.mu.Lock()
	defer session.mu.Unlock()

	history, ok := session.answers[userID]
	if !ok {
		return nil, ErrNotPlayer
	}
	return slices.Clone(history), nil
}

// Results 回傳目前的計分榜，按分數降序排列，同分按加入順序
// 遊戲進行中也可查詢，此時回傳的是部分結果
func (s *GameService) Results(sessionID string) (*SessionResults, error) {
	session, err := s.session(sessionID)
	if err != nil {
		return nil, err
	}

	session.mu.Lock()
	players := slices.Clone(session.players)
	scores := make(map[uint]int, len(session.scores))
	for id, score := range session.scores {
		scores[id] = score
	}
	total := len(session.questions)
	status := session.status
	session.mu.Unlock()

	names, err := s.identity.DisplayNames(players)
	if err != nil {
		return nil, err
	}

	entries := make([]ResultEntry, 0, len(players))
	for _, userID := range players {
		entries = append(entries, ResultEntry{
			UserID:         userID,
			Username:       names[userID],
			Score:          scores[userID],
			TotalQuestions: total,
		})
	}
	// entries 已按加入順序排列，穩定排序讓同分者維持該順序
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Score > entries[j].Score
	})

	results := &SessionResults{
		SessionID: sessionID,
		Status:    status,
		Results:   entries,
	}
	if len(entries) > 0 {
		results.Winner = &entries[0]
	}
	return results, nil
}

// Complete 由房主明確結束一場遊戲，結算後結果不再變動
func (s *GameService) Complete(sessionID string, requesterID uint) error {
	session, err := s.session(sessionID)
	if err != nil {
		return err
	}

	room, err := s.rooms.GetRoom(session.roomID)
	if err == nil && room.HostUserID != requesterID {
		return ErrNotRoomHost
	}

	session.mu.Lock()
	if session.status == models.SessionStatusFinished {
		session.mu.Unlock()
		return ErrSessionFinished
	}
	session.status = models.SessionStatusFinished
	session.mu.Unlock()

	s.mu.Lock()
	delete(s.byRoom, session.roomID)
	s.mu.Unlock()

	s.persistFinal(session)
	if room != nil {
		if err := s.rooms.SetStatus(session.roomID, models.RoomStatusFinished); err != nil {
			return err
		}
	}

	s.hub.Broadcast(session.roomID, models.NewGameActionEvent(requesterID, "game_finished", map[string]any{
		"session_id": sessionID,
	}))
	return nil
}

// handleRoomClosed 在房間被刪除時結束其進行中的遊戲
func (s *GameService) handleRoomClosed(roomID uint) {
	s.mu.Lock()
	sessionID, ok := s.byRoom[roomID]
	if ok {
		delete(s.byRoom, roomID)
	}
	session := s.sessions[sessionID]
	s.mu.Unlock()

	if !ok || session == nil {
		return
	}

	session.mu.Lock()
	finished := session.status == models.SessionStatusFinished
	session.status = models.SessionStatusFinished
	session.mu.Unlock()

	if !finished {
		s.persistFinal(session)
	}
}

// persistFinal 將最終分數和結束狀態落盤
func (s *GameService) persistFinal(session *gameSession) {
	record, err := s.sessionRepo.FindBySessionID(session.id)
	if err != nil {
		log.Printf("game: 查詢遊戲記錄失敗: %v", err)
		return
	}

	session.mu.Lock()
	scores := make(map[uint]int, len(session.scores))
	for id, score := range session.scores {
		scores[id] = score
	}
	session.mu.Unlock()

	record.Scores = scores
	record.Status = models.SessionStatusFinished
	if err := s.sessionRepo.Update(record); err != nil {
		log.Printf("game: 更新遊戲記錄失敗: %v", err)
	}
}

func (s *GameService) session(sessionID string) (*gameSession, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	session, ok := s.sessions[sessionID]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return session, nil
}

func stripQuestion(q models.Question, index, total int) QuestionView {
	return QuestionView{
		ID:             q.ID,
		Text:           q.Text,
		Options:        q.Options,
		QuestionNumber: index + 1,
		TotalQuestions: total,
	}
}
