// Package policy 订单访问策略：按角色划分的能力、可见列与可写字段
//
// 这是服务端的权威判定，前端的列隐藏与按钮禁用只是体验优化，
// 所有变更请求都要在这里再过一遍
package policy

import "strings"

// Role 员工角色
type Role string

const (
	RoleSuperAdmin Role = "super_admin"
	RoleThaiAdmin  Role = "thai_admin"
	RoleLaoAdmin   Role = "lao_admin"

	// RoleUnknown 未识别角色，得到最严格的权限集
	RoleUnknown Role = ""
)

// 订单表格列标识
const (
	ColumnCheckbox       = "checkbox"
	ColumnSequence       = "sequence"
	ColumnClientName     = "client_name"
	ColumnTrackingNumber = "tracking_number"
	ColumnClientPhone    = "client_phone"
	ColumnAmount         = "amount"
	ColumnCurrency       = "currency"
	ColumnStatus         = "status"
	ColumnIsPaid         = "is_paid"
	ColumnRemark         = "remark"
	ColumnCreatedAt      = "created_at"
	ColumnUpdatedAt      = "updated_at"
	ColumnActions        = "actions"
)

// 订单数据字段标识
const (
	FieldTrackingNumber = "tracking_number"
	FieldClientName     = "client_name"
	FieldClientPhone    = "client_phone"
	FieldAmount         = "amount"
	FieldCurrency       = "currency"
	FieldStatus         = "status"
	FieldIsPaid         = "is_paid"
	FieldRemark         = "remark"
)

// PermissionRecord 角色权限记录，由角色纯函数推导，不落库
type PermissionRecord struct {
	CanCreate      bool     `json:"can_create"`
	CanEdit        bool     `json:"can_edit"`
	CanDelete      bool     `json:"can_delete"`
	CanViewAll     bool     `json:"can_view_all"`
	VisibleColumns []string `json:"visible_columns"`
	EditableFields []string `json:"editable_fields"`
	CreateFields   []string `json:"create_fields"`
}

// allColumns 完整列集合，顺序即表格展示顺序
var allColumns = []string{
	ColumnCheckbox,
	ColumnSequence,
	ColumnClientName,
	ColumnTrackingNumber,
	ColumnClientPhone,
	ColumnAmount,
	ColumnCurrency,
	ColumnStatus,
	ColumnIsPaid,
	ColumnRemark,
	ColumnCreatedAt,
	ColumnUpdatedAt,
	ColumnActions,
}

// thaiAdminColumns 泰国管理员不可见金额、货币与付款状态
var thaiAdminColumns = []string{
	ColumnCheckbox,
	ColumnSequence,
	ColumnClientName,
	ColumnTrackingNumber,
	ColumnClientPhone,
	ColumnStatus,
	ColumnRemark,
	ColumnCreatedAt,
	ColumnUpdatedAt,
	ColumnActions,
}

// restrictedColumns 未识别角色只读最小列集合
var restrictedColumns = []string{
	ColumnSequence,
	ColumnClientName,
	ColumnTrackingNumber,
	ColumnStatus,
	ColumnCreatedAt,
}

var (
	allEditableFields = []string{
		FieldStatus,
		FieldTrackingNumber,
		FieldClientName,
		FieldClientPhone,
		FieldAmount,
		FieldCurrency,
		FieldIsPaid,
		FieldRemark,
	}

	// 创建时不含 is_paid，由服务端默认 false
	allCreateFields = []string{
		FieldTrackingNumber,
		FieldClientName,
		FieldClientPhone,
		FieldAmount,
		FieldCurrency,
		FieldStatus,
		FieldRemark,
	}

	thaiAdminEditableFields = []string{
		FieldStatus,
		FieldTrackingNumber,
		FieldClientName,
		FieldClientPhone,
		FieldRemark,
	}

	thaiAdminCreateFields = []string{
		FieldTrackingNumber,
		FieldClientPhone,
		FieldClientName,
		FieldRemark,
	}

	laoAdminEditableFields = []string{
		FieldStatus,
		FieldTrackingNumber,
		FieldClientName,
		FieldClientPhone,
		FieldAmount,
		FieldCurrency,
		FieldIsPaid,
		FieldRemark,
	}

	laoAdminCreateFields = []string{
		FieldTrackingNumber,
		FieldClientName,
		FieldClientPhone,
		FieldAmount,
		FieldCurrency,
		FieldStatus,
		FieldRemark,
	}
)

// RoleNamer 携带角色名称的类型（接口有时以对象形式嵌套返回角色）
type RoleNamer interface {
	RoleName() string
}

// NormalizeRole 把各种形态的角色输入归一为规范角色
// 接受角色名字符串、Role、实现 RoleNamer 的对象或带 name 键的 map，
// 大小写不敏感；其余输入一律归为未识别角色
func NormalizeRole(v interface{}) Role {
	var name string
	switch t := v.(type) {
	case nil:
		return RoleUnknown
	case string:
		name = t
	case Role:
		name = string(t)
	case RoleNamer:
		name = t.RoleName()
	case map[string]interface{}:
		if n, ok := t["name"].(string); ok {
			name = n
		}
	default:
		return RoleUnknown
	}

	switch Role(strings.ToLower(strings.TrimSpace(name))) {
	case RoleSuperAdmin:
		return RoleSuperAdmin
	case RoleThaiAdmin:
		return RoleThaiAdmin
	case RoleLaoAdmin:
		return RoleLaoAdmin
	default:
		return RoleUnknown
	}
}

// GetPermissions 获取角色权限记录
// 纯函数且全定义：任何输入（包括未识别角色）都返回确定的记录
func GetPermissions(role Role) PermissionRecord {
	switch role {
	case RoleSuperAdmin:
		return PermissionRecord{
			CanCreate:      true,
			CanEdit:        true,
			CanDelete:      true,
			CanViewAll:     true,
			VisibleColumns: copyList(allColumns),
			EditableFields: copyList(allEditableFields),
			CreateFields:   copyList(allCreateFields),
		}
	case RoleThaiAdmin:
		return PermissionRecord{
			CanCreate:      true,
			CanEdit:        true,
			CanDelete:      false,
			CanViewAll:     false,
			VisibleColumns: copyList(thaiAdminColumns),
			EditableFields: copyList(thaiAdminEditableFields),
			CreateFields:   copyList(thaiAdminCreateFields),
		}
	case RoleLaoAdmin:
		return PermissionRecord{
			CanCreate:      true,
			CanEdit:        true,
			CanDelete:      false,
			CanViewAll:     false,
			VisibleColumns: copyList(allColumns),
			EditableFields: copyList(laoAdminEditableFields),
			CreateFields:   copyList(laoAdminCreateFields),
		}
	default:
		return PermissionRecord{
			CanCreate:      false,
			CanEdit:        false,
			CanDelete:      false,
			CanViewAll:     false,
			VisibleColumns: copyList(restrictedColumns),
			EditableFields: []string{},
			CreateFields:   []string{},
		}
	}
}

// CanAccessColumn 角色是否可见某列，可在表格渲染时逐格调用
func CanAccessColumn(column string, role interface{}) bool {
	rec := GetPermissions(NormalizeRole(role))
	return contains(rec.VisibleColumns, column)
}

// CanEditField 角色是否可编辑某字段
func CanEditField(field string, role interface{}) bool {
	rec := GetPermissions(NormalizeRole(role))
	return contains(rec.EditableFields, field)
}

// CanCreateField 角色创建订单时是否可提交某字段
func CanCreateField(field string, role interface{}) bool {
	rec := GetPermissions(NormalizeRole(role))
	return contains(rec.CreateFields, field)
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}

func copyList(list []string) []string {
	out := make([]string, len(list))
	copy(out, list)
	return out
}
