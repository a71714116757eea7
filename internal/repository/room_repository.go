package repository

import (
	"quiz_web/internal/models"
	"quiz_web/internal/storage"
)

type RoomRepository interface {
	Create(room *models.Room) error
	FindByID(id uint) (*models.Room, error)
	Update(room *models.Room) error
	Delete(id uint) error
	FindOpen() ([]models.Room, error) // 查詢可見的房間（等待中或遊戲中）
}

type roomRepository struct {
	db *storage.PostgresDB
}

func NewRoomRepository(db *storage.PostgresDB) RoomRepository {
	return &roomRepository{db: db}
}

func (r *roomRepository) Create(room *models.Room) error {
	return r.db.Create(room).Error
}

func (r *roomRepository) FindByID(id uint) (*models.Room, error) {
	var room models.Room
	err := r.db.First(&room, id).Error
	if err != nil {
		return nil, err
	}
	return &room, nil
}

func (r *roomRepository) Update(room *models.Room) error {
	return r.db.Save(room).Error
}

func (r *roomRepository) Delete(id uint) error {
	return r.db.Delete(&models.Room{}, id).Error
}

func (r *roomRepository) FindOpen() ([]models.Room, error) {
	var rooms []models.Room
	err := r.db.Where("status IN ?", []models.RoomStatus{models.RoomStatusWaiting, models.RoomStatusPlaying}).
		Order("created_at DESC").Find(&rooms).Error
	return rooms, err
}
