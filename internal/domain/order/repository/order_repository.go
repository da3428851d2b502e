package repository

import (
	"parcel_tracking/internal/domain/order/model"

	"gorm.io/gorm"
)

// OrderRepository 接口定义
type OrderRepository interface {
	Create(order *model.Order) error
	CreateBatch(orders []*model.Order) error
	GetByID(id string) (*model.Order, error)
	GetByTrackingNumber(trackingNumber string) (*model.Order, error)
	GetList(offset, limit int, search, status string) ([]model.Order, int64, error)
	UpdateFields(id string, fields map[string]interface{}) (int64, error)
	Delete(order *model.Order) error
}

// orderRepository 实现
type orderRepository struct {
	db *gorm.DB
}

// NewOrderRepository 创建新的仓库实例
func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &orderRepository{db: db}
}

// Create 创建订单
func (r *orderRepository) Create(order *model.Order) error {
	return r.db.Create(order).Error
}

// CreateBatch 批量创建订单（单事务）
func (r *orderRepository) CreateBatch(orders []*model.Order) error {
	if len(orders) == 0 {
		return nil
	}
	return r.db.Create(orders).Error
}

// GetByID 根据ID获取订单
func (r *orderRepository) GetByID(id string) (*model.Order, error) {
	var order model.Order
	if err := r.db.Where("id = ?", id).First(&order).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

// GetByTrackingNumber 根据运单号获取订单
func (r *orderRepository) GetByTrackingNumber(trackingNumber string) (*model.Order, error) {
	var order model.Order
	if err := r.db.Where("tracking_number = ?", trackingNumber).First(&order).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

// GetList 获取订单列表（分页，支持搜索与状态过滤）
func (r *orderRepository) GetList(offset, limit int, search, status string) ([]model.Order, int64, error) {
	var orders []model.Order
	var total int64

	query := r.db.Model(&model.Order{})
	if search != "" {
		pattern := "%" + search + "%"
		query = query.Where("tracking_number ILIKE ? OR client_name ILIKE ? OR client_phone ILIKE ?",
			pattern, pattern, pattern)
	}
	if status != "" {
		query = query.Where("status = ?", status)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := query.Order("created_at DESC").Offset(offset).Limit(limit).Find(&orders).Error; err != nil {
		return nil, 0, err
	}
	return orders, total, nil
}

// UpdateFields 按字段集更新订单，返回受影响行数
func (r *orderRepository) UpdateFields(id string, fields map[string]interface{}) (int64, error) {
	result := r.db.Model(&model.Order{}).Where("id = ?", id).Updates(fields)
	return result.RowsAffected, result.Error
}

// Delete 软删除订单
func (r *orderRepository) Delete(order *model.Order) error {
	return r.db.Delete(order).Error
}
