package main

import (
	"log"

	"parcel_tracking/internal/pkg/config"
	"parcel_tracking/internal/pkg/middleware"
	"parcel_tracking/internal/pkg/registry"
	"parcel_tracking/pkg/database"
	"parcel_tracking/pkg/logger"
	"parcel_tracking/pkg/response"

	// 模块通过 init 自动注册
	_ "parcel_tracking/internal/domain/order"
	_ "parcel_tracking/internal/domain/user"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	// 加载配置
	config.LoadConfig()

	// 初始化日志
	logger.Init(config.GlobalConfig.Server.Mode)
	defer logger.Sync()

	// 初始化存储
	db := database.InitDatabase()
	readDB := database.InitReadDB()
	rdb := database.InitRedis()

	// 初始化路由
	gin.SetMode(config.GlobalConfig.Server.Mode)
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.TraceMiddleware())
	r.Use(middleware.LoggerMiddleware())
	r.Use(middleware.RateLimitMiddleware())
	r.Use(middleware.MetricsMiddleware())
	r.Use(cors.Default())

	// 健康检查与指标
	r.GET("/health", func(c *gin.Context) {
		response.Success(c, "ok", nil)
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// 按优先级初始化业务模块
	ctx := &registry.ModuleContext{
		DB:     db,
		ReadDB: readDB,
		Redis:  rdb,
		Router: r,
	}
	if err := registry.InitModules(ctx); err != nil {
		log.Fatalf("Failed to initialize modules: %v", err)
	}

	// 启动服务
	port := config.GlobalConfig.Server.Port
	log.Printf("Server starting on port %s", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
