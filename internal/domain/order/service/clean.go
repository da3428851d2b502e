package service

import (
	"strings"

	"parcel_tracking/internal/domain/order/model"
)

// 提交前的记录清洗：只保留有意义的值，避免空白覆盖服务端已有数据，
// 也避免把哨兵零值当成真实金额写入
//
// 已知限制：amount 为 0 时会被剔除，金额恰好为 0 的订单无法通过
// 该通道传输（沿用既有行为，勿擅自修改）

// CleanForCreate 创建意图的清洗
// tracking_number、client_name、status 恒定保留（status 为空时回退默认值），
// 其余字段按条件保留
func CleanForCreate(r model.RawOrder) map[string]interface{} {
	payload := map[string]interface{}{
		"tracking_number": r.TrackingNumber,
		"client_name":     r.ClientName,
	}

	status := r.Status
	if status == "" {
		status = model.DefaultStatus
	}
	payload["status"] = status

	appendOptionalFields(payload, r)

	return payload
}

// CleanForUpdate 更新意图的清洗
// 与创建相同的条件规则额外作用于 tracking_number、client_name 和 status，
// status 不再强制回退默认值
func CleanForUpdate(r model.RawOrder) map[string]interface{} {
	payload := map[string]interface{}{}

	if r.TrackingNumber != "" {
		payload["tracking_number"] = r.TrackingNumber
	}
	if r.ClientName != "" {
		payload["client_name"] = r.ClientName
	}
	if r.Status != "" {
		payload["status"] = r.Status
	}

	appendOptionalFields(payload, r)

	return payload
}

// appendOptionalFields 两种意图共用的条件字段规则
func appendOptionalFields(payload map[string]interface{}, r model.RawOrder) {
	if phone := strings.TrimSpace(r.ClientPhone); phone != "" {
		payload["client_phone"] = phone
	}

	// 零金额被视为"未定价"剔除
	if r.Amount.Value != nil && *r.Amount.Value != 0 {
		payload["amount"] = *r.Amount.Value
	}

	if r.Currency != nil {
		if currency := strings.TrimSpace(*r.Currency); currency != "" {
			payload["currency"] = currency
		}
	}

	// is_paid 只要有值就保留，包括 false
	if r.IsPaid != nil {
		payload["is_paid"] = *r.IsPaid
	}

	if remark := strings.TrimSpace(r.Remark); remark != "" {
		payload["remark"] = remark
	}
}
