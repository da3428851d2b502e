package model

import (
	"time"

	baseModel "parcel_tracking/pkg/model"
)

// Order 订单模型
type Order struct {
	baseModel.BaseModel
	TrackingNumber string   `gorm:"uniqueIndex;not null" json:"tracking_number"`
	ClientName     string   `gorm:"not null" json:"client_name"`
	ClientPhone    string   `json:"client_phone"`
	Amount         *float64 `json:"amount"`
	Currency       *string  `json:"currency"` // LAK, THB
	Status         string   `gorm:"default:'AT_THAI_BRANCH'" json:"status"`
	IsPaid         bool     `gorm:"default:false" json:"is_paid"`
	Remark         string   `json:"remark"`
	CreatedByID    string   `gorm:"column:created_by;type:uuid" json:"-"`
	CreatedBy      Creator  `gorm:"-" json:"created_by"`
}

// Creator 订单创建者快照
type Creator struct {
	ID       string   `json:"id"`
	Username string   `json:"username"`
	Role     RoleInfo `json:"role"`
}

// RoleInfo 嵌套的角色信息
type RoleInfo struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// TrackingView 公开查询返回的订单视图，只暴露客户可见的字段
type TrackingView struct {
	TrackingNumber string    `db:"tracking_number" json:"tracking_number"`
	Status         string    `db:"status" json:"status"`
	StatusLabel    string    `db:"-" json:"status_label"`
	UpdatedAt      time.Time `db:"updated_at" json:"updated_at"`
}
