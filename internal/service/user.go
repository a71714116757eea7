package service

import (
	"quiz_web/internal/models"
	"quiz_web/internal/repository"
	"quiz_web/internal/utils"
)

// UserService 是身份提供者：驗證憑證、查詢顯示名稱
type UserService struct {
	userRepo repository.UserRepository
}

func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

func (s *UserService) CreateUser(user *models.User) error {
	return s.userRepo.Create(user)
}

func (s *UserService) GetUserByEmail(email string) (*models.User, error) {
	return s.userRepo.FindByEmail(email)
}

// Authenticate 驗證 bearer token，成功時回傳對應的用戶
// 任何解析或查詢失敗都視為未認證
func (s *UserService) Authenticate(token string) (*models.User, error) {
	claims, err := utils.ParseToken(token)
	if err != nil {
		return nil, ErrUnauthenticated
	}

	user, err := s.userRepo.FindByID(claims.UserID)
	if err != nil {
		return nil, ErrUnauthenticated
	}
	return user, nil
}

// DisplayNames 批量查詢用戶的顯示名稱，結算時使用
func (s *UserService) DisplayNames(ids []uint) (map[uint]string, error) {
	users, err := s.userRepo.FindByIDs(ids)
	if err != nil {
		return nil, err
	}

	names := make(map[uint]string, len(users))
	for _, user := range users {
		names[user.ID] = user.Username
	}
	return names, nil
}
