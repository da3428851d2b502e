package model

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// FlexNumber 金额字段的宽松解码：接受数字、数字字符串、空串或 null
// 上游接口对 amount 的类型并不稳定，这里在边界处统一解码一次
type FlexNumber struct {
	Value *float64
}

// UnmarshalJSON 宽松解码，解码失败按缺失处理而不是报错
func (f *FlexNumber) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || string(data) == "null" {
		f.Value = nil
		return nil
	}

	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			f.Value = nil
			return nil
		}
		s = strings.TrimSpace(s)
		if s == "" {
			f.Value = nil
			return nil
		}
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			f.Value = nil
			return nil
		}
		f.Value = &v
		return nil
	}

	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		f.Value = nil
		return nil
	}
	f.Value = &v
	return nil
}

// MarshalJSON 输出数字或 null
func (f FlexNumber) MarshalJSON() ([]byte, error) {
	if f.Value == nil {
		return []byte("null"), nil
	}
	return json.Marshal(*f.Value)
}

// RawRole 角色字段的宽松解码：接受角色名字符串或 {id,name,description} 对象
type RawRole struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// UnmarshalJSON 宽松解码
func (r *RawRole) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || string(data) == "null" {
		*r = RawRole{}
		return nil
	}

	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return nil
		}
		*r = RawRole{Name: s}
		return nil
	}

	type alias RawRole
	var a alias
	if err := json.Unmarshal(data, &a); err != nil {
		return nil
	}
	*r = RawRole(a)
	return nil
}

// RawCreator 创建者字段的宽松解码：接受用户 ID 字符串或用户对象
type RawCreator struct {
	ID       string  `json:"id"`
	LegacyID string  `json:"_id"`
	Username string  `json:"username"`
	Role     RawRole `json:"role"`
}

// UnmarshalJSON 宽松解码
func (rc *RawCreator) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || string(data) == "null" {
		*rc = RawCreator{}
		return nil
	}

	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return nil
		}
		*rc = RawCreator{ID: s}
		return nil
	}

	type alias RawCreator
	var a alias
	if err := json.Unmarshal(data, &a); err != nil {
		return nil
	}
	*rc = RawCreator(a)
	return nil
}

// Normalize 规范化创建者记录，缺失字段回退为空串
func (rc RawCreator) Normalize() Creator {
	id := rc.ID
	if id == "" {
		id = rc.LegacyID
	}
	return Creator{
		ID:       id,
		Username: rc.Username,
		Role: RoleInfo{
			ID:          rc.Role.ID,
			Name:        rc.Role.Name,
			Description: rc.Role.Description,
		},
	}
}

// RawOrder 上游订单负载，字段类型宽松
type RawOrder struct {
	ID             string     `json:"id"`
	LegacyID       string     `json:"_id"`
	TrackingNumber string     `json:"tracking_number"`
	ClientName     string     `json:"client_name"`
	ClientPhone    string     `json:"client_phone"`
	Amount         FlexNumber `json:"amount"`
	Currency       *string    `json:"currency"`
	Status         string     `json:"status"`
	IsPaid         *bool      `json:"is_paid"`
	Remark         string     `json:"remark"`
	CreatedBy      RawCreator `json:"created_by"`
	CreatedAt      *time.Time `json:"created_at"`
	UpdatedAt      *time.Time `json:"updated_at"`
}

// Normalize 将宽松负载转换为规范订单记录
// 不会失败：缺失字段全部补默认值；对已规范化的记录再执行一次结果不变
func (r RawOrder) Normalize() Order {
	order := Order{
		TrackingNumber: r.TrackingNumber,
		ClientName:     r.ClientName,
		ClientPhone:    r.ClientPhone,
		Amount:         r.Amount.Value,
		Status:         r.Status,
		Remark:         r.Remark,
	}

	// ID 回退：先取 id，再取遗留的 _id，都没有则生成
	order.ID = r.ID
	if order.ID == "" {
		order.ID = r.LegacyID
	}
	if order.ID == "" {
		order.ID = uuid.New().String()
	}

	if r.Currency != nil && *r.Currency != "" {
		currency := *r.Currency
		order.Currency = &currency
	}

	if order.Status == "" {
		order.Status = DefaultStatus
	}

	if r.IsPaid != nil {
		order.IsPaid = *r.IsPaid
	}

	if r.CreatedAt != nil {
		order.CreatedAt = *r.CreatedAt
	} else {
		order.CreatedAt = time.Now()
	}
	if r.UpdatedAt != nil {
		order.UpdatedAt = *r.UpdatedAt
	} else {
		order.UpdatedAt = order.CreatedAt
	}

	order.CreatedBy = r.CreatedBy.Normalize()
	order.CreatedByID = order.CreatedBy.ID

	return order
}
