package service

import (
	"slices"
	"sync"

	"quiz_web/internal/models"
	"quiz_web/internal/repository"
)

// RoomService 是行程內的房間註冊表
// 成員名單以記憶體中的狀態為準，每次變更都寫穿到資料庫；
// 鎖採兩層設計：RWMutex 保護房間 map，每個房間再有自己的互斥鎖，
// 不同房間的操作互不阻塞
type RoomService struct {
	roomRepo repository.RoomRepository

	mu    sync.RWMutex
	rooms map[uint]*roomEntry

	closedHooks []func(roomID uint)
}

type roomEntry struct {
	mu   sync.Mutex
	room *models.Room
}

func NewRoomService(roomRepo repository.RoomRepository) *RoomService {
	return &RoomService{
		roomRepo: roomRepo,
		rooms:    make(map[uint]*roomEntry),
	}
}

// OnRoomClosed 註冊房間被刪除時的回調，用於通知遊戲引擎和連線中心
// 必須在開始處理請求前完成註冊
func (s *RoomService) OnRoomClosed(hook func(roomID uint)) {
	s.closedHooks = append(s.closedHooks, hook)
}

// CreateRoom 建立新房間，房主自動成為唯一成員
func (s *RoomService) CreateRoom(name string, hostUserID uint, capacity int, config models.RoomConfig) (*models.Room, error) {
	room := &models.Room{
		Name:       name,
		HostUserID: hostUserID,
		Members:    []uint{hostUserID},
		Capacity:   capacity,
		Status:     models.RoomStatusWaiting,
		Config:     config,
	}

	if err := s.roomRepo.Create(room); err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.rooms[room.ID] = &roomEntry{room: room}
	s.mu.Unlock()

	return copyRoom(room), nil
}

// JoinRoom 將用戶加入房間
func (s *RoomService) JoinRoom(roomID, userID uint) error {
	entry, err := s.entry(roomID)
	if err != nil {
		return err
	}

	entry.mu.Lock()
	defer entry.mu.Unlock()

	room := entry.room
	if slices.Contains(room.Members, userID) {
		return ErrAlreadyMember
	}
	if len(room.Members) >= room.Capacity {
		return ErrRoomFull
	}

	room.Members = append(room.Members, userID)
	if err := s.roomRepo.Update(room); err != nil {
		room.Members = room.Members[:len(room.Members)-1]
		return err
	}
	return nil
}

// LeaveRoom 將用戶移出房間，最後一名成員離開時刪除房間
// 房主離開而房間未空時，由最早加入的剩餘成員接任房主
func (s *RoomService) LeaveRoom(roomID, userID uint) error {
	entry, err := s.entry(roomID)
	if err != nil {
		return err
	}

	entry.mu.Lock()

	room := entry.room
	idx := slices.Index(room.Members, userID)
	if idx < 0 {
		// 非成員的離開請求視為無操作
		entry.mu.Unlock()
		return nil
	}

	room.Members = slices.Delete(room.Members, idx, idx+1)

	if len(room.Members) == 0 {
		entry.mu.Unlock()

		s.mu.Lock()
		delete(s.rooms, roomID)
		s.mu.Unlock()

		if err := s.roomRepo.Delete(roomID); err != nil {
			return err
		}
		for _, hook := range s.closedHooks {
			hook(roomID)
		}
		return nil
	}

	if room.HostUserID == userID {
		room.HostUserID = room.Members[0]
	}
	err = s.roomRepo.Update(room)
	entry.mu.Unlock()
	return err
}

// GetRoom 回傳房間狀態的快照
func (s *RoomService) GetRoom(roomID uint) (*models.Room, error) {
	entry, err := s.entry(roomID)
	if err != nil {
		return nil, err
	}

	entry.mu.Lock()
	defer entry.mu.Unlock()
	return copyRoom(entry.room), nil
}

// ListOpenRooms 查詢所有可加入或進行中的房間
func (s *RoomService) ListOpenRooms() ([]models.Room, error) {
	return s.roomRepo.FindOpen()
}

// SetStatus 更新房間的生命週期狀態
func (s *RoomService) SetStatus(roomID uint, status models.RoomStatus) error {
	entry, err := s.entry(roomID)
	if err != nil {
		return err
	}

	entry.mu.Lock()
	defer entry.mu.Unlock()

	prev := entry.room.Status
	entry.room.Status = status
	if err := s.roomRepo.Update(entry.room); err != nil {
		entry.room.Status = prev
		return err
	}
	return nil
}

func (s *RoomService) entry(roomID uint) (*roomEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entry, ok := s.rooms[roomID]
	if !ok {
		return nil, ErrRoomNotFound
	}
	return entry, nil
}

func copyRoom(room *models.Room) *models.Room {
	dup := *room
	dup.Members = slices.Clone(room.Members)
	return &dup
}
