package model

import (
	baseModel "parcel_tracking/pkg/model"
)

// Role 角色模型
type Role struct {
	baseModel.BaseModel
	Name        string `gorm:"unique;not null" json:"name"`
	Description string `json:"description"`
}

// RoleName 返回角色名称，供访问策略归一化角色输入
func (r Role) RoleName() string {
	return r.Name
}

// User 员工账号模型
type User struct {
	baseModel.BaseModel
	Username string `gorm:"unique;not null" json:"username"`
	Password string `json:"-"` // 密码不返回给前端
	RoleID   string `gorm:"type:uuid" json:"-"`
	Role     Role   `gorm:"foreignKey:RoleID" json:"role"`
}
