package order

import (
	"parcel_tracking/internal/domain/order/handler"
	"parcel_tracking/internal/domain/order/policy"
	"parcel_tracking/internal/domain/order/repository"
	"parcel_tracking/internal/domain/order/service"
	"parcel_tracking/internal/pkg/middleware"
	"parcel_tracking/internal/pkg/registry"

	"github.com/gin-gonic/gin"
)

// OrderModule 订单模块
type OrderModule struct{}

func init() {
	// 自动注册模块
	registry.Register(&OrderModule{})
}

func (m *OrderModule) Name() string {
	return "order"
}

func (m *OrderModule) Priority() int {
	// 订单模块在用户模块之后初始化
	return 2
}

func (m *OrderModule) Init(ctx *registry.ModuleContext) error {
	// 1. 依赖注入
	orderRepo := repository.NewOrderRepository(ctx.DB)
	tracker := repository.NewTrackingReader(ctx.ReadDB)
	orderService := service.NewOrderService(orderRepo, tracker)
	orderHandler := handler.NewOrderHandler(orderService)

	// 2. 路由注册
	setupRoutes(ctx.Router, orderHandler)

	return nil
}

func setupRoutes(r *gin.Engine, h *handler.OrderHandler) {
	// 公开路由：客户凭运单号查询
	r.GET("/orders/track", h.Track)

	// 受保护的路由
	orderGroup := r.Group("/orders")
	orderGroup.Use(middleware.AuthMiddleware())
	{
		orderGroup.GET("", h.GetOrders)
		orderGroup.GET("/columns", h.GetColumns)
		orderGroup.POST("", middleware.RequireCapability(func(rec policy.PermissionRecord) bool {
			return rec.CanCreate
		}), h.CreateOrders)
		orderGroup.PUT("/bulk", middleware.RequireCapability(func(rec policy.PermissionRecord) bool {
			return rec.CanEdit
		}), h.BulkUpsert)
		orderGroup.PUT("", middleware.RequireCapability(func(rec policy.PermissionRecord) bool {
			return rec.CanEdit
		}), h.UpdateOrder)
		orderGroup.DELETE("", middleware.RequireCapability(func(rec policy.PermissionRecord) bool {
			return rec.CanDelete
		}), h.DeleteOrder)
	}
}
