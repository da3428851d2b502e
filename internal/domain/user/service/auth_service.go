package service

import (
	"errors"

	"parcel_tracking/internal/domain/user/model"
	"parcel_tracking/internal/domain/user/repository"
	"parcel_tracking/pkg/utils"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// ErrInvalidCredentials 用户名或密码错误
var ErrInvalidCredentials = errors.New("invalid username or password")

// AuthService 认证服务接口
type AuthService interface {
	Login(username, password string) (string, *model.User, error)
	GetUser(id string) (*model.User, error)
}

// authService 实现
type authService struct {
	repo repository.UserRepository
}

// NewAuthService 创建认证服务
func NewAuthService(repo repository.UserRepository) AuthService {
	return &authService{repo: repo}
}

// Login 用户名密码登录，成功返回 JWT 与用户信息
func (s *authService) Login(username, password string) (string, *model.User, error) {
	user, err := s.repo.GetByUsername(username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", nil, ErrInvalidCredentials
	}

	token, _, err := utils.GenerateToken(user.ID, user.Username, user.Role.Name)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

// GetUser 获取用户信息（令牌校验路径）
func (s *authService) GetUser(id string) (*model.User, error) {
	return s.repo.GetByID(id)
}
