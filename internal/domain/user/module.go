package user

import (
	"parcel_tracking/internal/domain/user/handler"
	"parcel_tracking/internal/domain/user/repository"
	"parcel_tracking/internal/domain/user/service"
	"parcel_tracking/internal/pkg/middleware"
	"parcel_tracking/internal/pkg/registry"
	"parcel_tracking/pkg/cache"

	"github.com/gin-gonic/gin"
)

// UserModule 用户模块
type UserModule struct{}

func init() {
	// 自动注册模块
	registry.Register(&UserModule{})
}

func (m *UserModule) Name() string {
	return "user"
}

func (m *UserModule) Priority() int {
	// 用户模块优先级最高，因为其他模块可能依赖它
	return 1
}

func (m *UserModule) Init(ctx *registry.ModuleContext) error {
	// 1. 依赖注入
	userRepo := repository.NewUserRepository(ctx.DB)
	cacheService := cache.NewRedisCache(ctx.Redis)
	authService := service.NewCachedAuthService(userRepo, cacheService)
	authHandler := handler.NewAuthHandler(authService)

	// 2. 路由注册
	setupRoutes(ctx.Router, authHandler)

	return nil
}

func setupRoutes(r *gin.Engine, h *handler.AuthHandler) {
	authGroup := r.Group("/auth")
	{
		authGroup.POST("/login", h.Login)
		authGroup.POST("/validate", middleware.AuthMiddleware(), h.Validate)
	}
}
