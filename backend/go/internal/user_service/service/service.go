package service

import (
	"errors"
	"fmt"
	"time"

	"LoveAI/backend/go/internal/models"
	"LoveAI/backend/go/internal/user_service/store"

	"github.com/golang-jwt/jwt"
	"golang.org/x/crypto/bcrypt"
)

// ErrEmailExists 表示注册时邮箱已被占用。
var ErrEmailExists = errors.New("该邮箱已被注册")

// Service 封装了业务逻辑。
type Service struct {
	store     *store.Store
	jwtSecret []byte
	tokenTTL  time.Duration
}

// NewService 创建一个新的 Service 实例。
func NewService(s *store.Store, jwtSecret string, tokenTTLSeconds int) *Service {
	if tokenTTLSeconds <= 0 {
		tokenTTLSeconds = 7 * 24 * 3600
	}
	return &Service{
		store:     s,
		jwtSecret: []byte(jwtSecret),
		tokenTTL:  time.Duration(tokenTTLSeconds) * time.Second,
	}
}

// --- User Registration & Login ---

// RegisterUserByEmail 处理新用户通过邮箱注册的逻辑。
func (s *Service) RegisterUserByEmail(email, password, fullName string) (*models.User, error) {
	// 检查用户是否已存在
	_, err := s.store.GetUserByEmail(email)
	if err == nil {
		return nil, ErrEmailExists
	}

	// 哈希密码
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("密码哈希失败: %w", err)
	}

	// 创建用户模型
	user := &models.User{
		FullName: fullName,
		Email:    email,
		Status:   models.StatusActive,
		Password: string(hashedPassword),
	}

	if err := s.store.CreateUser(user); err != nil {
		return nil, err
	}

	return user, nil
}

// LoginUserByEmail 处理用户通过邮箱登录的逻辑。
func (s *Service) LoginUserByEmail(email, password string) (string, error) {
	user, err := s.store.GetUserByEmail(email)
	if err != nil {
		return "", errors.New("用户不存在或密码错误")
	}

	if err = bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", errors.New("用户不存在或密码错误")
	}

	// 记录最近一次登录时间，失败不影响登录
	now := time.Now()
	user.LastLoginAt = &now
	_ = s.store.UpdateUser(user)

	// 生成 JWT
	return s.generateJWT(user.ID)
}

// GetUser 返回指定 ID 的用户。
func (s *Service) GetUser(userID uint) (*models.User, error) {
	return s.store.GetUserByID(userID)
}

// --- Helpers ---

// generateJWT 为指定用户 ID 生成一个新的 JWT。
func (s *Service) generateJWT(userID uint) (string, error) {
	claims := jwt.MapClaims{
		"sub": userID,
		"iss": "LoveAI_user_service",
		"aud": "LoveAI_clients",
		"exp": time.Now().Add(s.tokenTTL).Unix(),
		"iat": time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	return token.SignedString(s.jwtSecret)
}
