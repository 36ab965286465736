package store

import (
	"LoveAI/backend/go/internal/models"

	"gorm.io/gorm"
)

// Store 封装了对用户表的数据库访问。
type Store struct {
	DB *gorm.DB
}

// NewStore 创建一个新的 Store 实例。
func NewStore(db *gorm.DB) *Store {
	return &Store{DB: db}
}

// CreateUser 在数据库中创建一个新用户。
func (s *Store) CreateUser(user *models.User) error {
	return s.DB.Create(user).Error
}

// GetUserByEmail 通过邮箱地址查找用户。
func (s *Store) GetUserByEmail(email string) (*models.User, error) {
	var user models.User
	if err := s.DB.Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// GetUserByID 通过 ID 查找用户。
func (s *Store) GetUserByID(id uint) (*models.User, error) {
	var user models.User
	if err := s.DB.First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateUser 更新用户信息。
func (s *Store) UpdateUser(user *models.User) error {
	return s.DB.Save(user).Error
}
