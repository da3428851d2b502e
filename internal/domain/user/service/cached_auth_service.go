package service

import (
	"context"
	"fmt"
	"time"

	"parcel_tracking/internal/domain/user/model"
	"parcel_tracking/internal/domain/user/repository"
	"parcel_tracking/pkg/cache"
)

// CachedAuthService 带缓存的认证服务
// 令牌校验在每次路由守卫时触发，用户信息走缓存避免每次查库
type CachedAuthService struct {
	inner AuthService
	cache cache.CacheService
}

// NewCachedAuthService 创建带缓存的认证服务
func NewCachedAuthService(repo repository.UserRepository, cache cache.CacheService) AuthService {
	return &CachedAuthService{
		inner: NewAuthService(repo),
		cache: cache,
	}
}

// 缓存键常量
const (
	UserCacheKeyPrefix = "user:"
	UserCacheTTL       = time.Minute * 30
)

// getUserCacheKey 获取用户缓存键
func (s *CachedAuthService) getUserCacheKey(id string) string {
	return fmt.Sprintf("%s%s", UserCacheKeyPrefix, id)
}

// Login 登录后刷新用户缓存
func (s *CachedAuthService) Login(username, password string) (string, *model.User, error) {
	token, user, err := s.inner.Login(username, password)
	if err != nil {
		return "", nil, err
	}

	// 缓存失败不影响登录
	_ = s.cache.Set(context.Background(), s.getUserCacheKey(user.ID), user, UserCacheTTL)

	return token, user, nil
}

// GetUser 优先读缓存，未命中回源数据库
func (s *CachedAuthService) GetUser(id string) (*model.User, error) {
	ctx := context.Background()
	cacheKey := s.getUserCacheKey(id)

	var cached model.User
	if err := s.cache.Get(ctx, cacheKey, &cached); err == nil {
		return &cached, nil
	}

	user, err := s.inner.GetUser(id)
	if err != nil {
		return nil, err
	}

	_ = s.cache.Set(ctx, cacheKey, user, UserCacheTTL)
	return user, nil
}
