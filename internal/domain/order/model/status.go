package model

// 订单状态（泰国分部 → 老挝分部的运输流水线）
const (
	StatusAtThaiBranch = "AT_THAI_BRANCH" // 泰国分部已收件
	StatusInTransit    = "IN_TRANSIT"     // 已离开泰国分部，运输中
	StatusAtLaoBranch  = "AT_LAO_BRANCH"  // 已到达老挝分部
	StatusCompleted    = "COMPLETED"      // 已交付客户（终态）
	StatusCancelled    = "CANCELLED"      // 已取消（终态）
)

// DefaultStatus 新订单的初始状态
const DefaultStatus = StatusAtThaiBranch

// StatusInfo 状态展示信息
type StatusInfo struct {
	Label string `json:"label"`
	Color string `json:"color"`
}

// statusRegistry 状态注册表
var statusRegistry = map[string]StatusInfo{
	StatusAtThaiBranch: {Label: "At Thai Branch", Color: "blue"},
	StatusInTransit:    {Label: "In Transit", Color: "orange"},
	StatusAtLaoBranch:  {Label: "At Lao Branch", Color: "cyan"},
	StatusCompleted:    {Label: "Completed", Color: "green"},
	StatusCancelled:    {Label: "Cancelled", Color: "red"},
}

// validStatuses 创建订单时允许的状态值，保持固定顺序
var validStatuses = []string{
	StatusAtThaiBranch,
	StatusInTransit,
	StatusAtLaoBranch,
	StatusCompleted,
	StatusCancelled,
}

// GetStatusInfo 根据状态码获取展示信息
// 未知状态码原样作为标签返回，颜色使用中性默认值
func GetStatusInfo(code string) StatusInfo {
	if info, ok := statusRegistry[code]; ok {
		return info
	}
	return StatusInfo{Label: code, Color: "default"}
}

// IsValidStatus 检查状态码是否在枚举内
func IsValidStatus(code string) bool {
	_, ok := statusRegistry[code]
	return ok
}

// ValidStatuses 返回允许的状态值列表
func ValidStatuses() []string {
	out := make([]string, len(validStatuses))
	copy(out, validStatuses)
	return out
}

// 货币枚举
const (
	CurrencyLAK = "LAK"
	CurrencyTHB = "THB"
)

// IsValidCurrency 检查货币是否在枚举内
func IsValidCurrency(code string) bool {
	return code == CurrencyLAK || code == CurrencyTHB
}
