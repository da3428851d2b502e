package policy

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type namedRole struct {
	name string
}

func (r namedRole) RoleName() string {
	return r.name
}

func TestNormalizeRole(t *testing.T) {
	t.Run("Bare role strings", func(t *testing.T) {
		assert.Equal(t, RoleSuperAdmin, NormalizeRole("super_admin"))
		assert.Equal(t, RoleThaiAdmin, NormalizeRole("thai_admin"))
		assert.Equal(t, RoleLaoAdmin, NormalizeRole("lao_admin"))
	})

	t.Run("Case insensitive", func(t *testing.T) {
		assert.Equal(t, RoleSuperAdmin, NormalizeRole("SUPER_ADMIN"))
		assert.Equal(t, RoleThaiAdmin, NormalizeRole("Thai_Admin"))
		assert.Equal(t, RoleLaoAdmin, NormalizeRole("  lao_admin  "))
	})

	t.Run("Nested role object", func(t *testing.T) {
		assert.Equal(t, RoleLaoAdmin, NormalizeRole(map[string]interface{}{"name": "lao_admin"}))
		assert.Equal(t, RoleThaiAdmin, NormalizeRole(namedRole{name: "thai_admin"}))
	})

	t.Run("Unrecognized input", func(t *testing.T) {
		assert.Equal(t, RoleUnknown, NormalizeRole(nil))
		assert.Equal(t, RoleUnknown, NormalizeRole(""))
		assert.Equal(t, RoleUnknown, NormalizeRole("manager"))
		assert.Equal(t, RoleUnknown, NormalizeRole(42))
		assert.Equal(t, RoleUnknown, NormalizeRole(map[string]interface{}{"name": 1}))
	})
}

func TestGetPermissions(t *testing.T) {
	t.Run("Super admin has full capabilities", func(t *testing.T) {
		rec := GetPermissions(RoleSuperAdmin)

		assert.True(t, rec.CanCreate)
		assert.True(t, rec.CanEdit)
		assert.True(t, rec.CanDelete)
		assert.True(t, rec.CanViewAll)
		assert.Equal(t, allColumns, rec.VisibleColumns)
		assert.Contains(t, rec.EditableFields, FieldIsPaid)
		// 创建字段不含 is_paid，由服务端默认 false
		assert.NotContains(t, rec.CreateFields, FieldIsPaid)
	})

	t.Run("Thai admin cannot see pricing", func(t *testing.T) {
		rec := GetPermissions(RoleThaiAdmin)

		assert.True(t, rec.CanCreate)
		assert.True(t, rec.CanEdit)
		assert.False(t, rec.CanDelete)
		assert.False(t, rec.CanViewAll)
		assert.NotContains(t, rec.VisibleColumns, ColumnAmount)
		assert.NotContains(t, rec.VisibleColumns, ColumnCurrency)
		assert.NotContains(t, rec.VisibleColumns, ColumnIsPaid)
		assert.NotContains(t, rec.EditableFields, FieldAmount)
		assert.NotContains(t, rec.CreateFields, FieldStatus)
	})

	t.Run("Lao admin sees pricing but cannot delete", func(t *testing.T) {
		rec := GetPermissions(RoleLaoAdmin)

		assert.True(t, rec.CanCreate)
		assert.True(t, rec.CanEdit)
		assert.False(t, rec.CanDelete)
		assert.False(t, rec.CanViewAll)
		assert.Equal(t, allColumns, rec.VisibleColumns)
		assert.Contains(t, rec.EditableFields, FieldAmount)
		assert.Contains(t, rec.CreateFields, FieldStatus)
	})

	t.Run("Unknown role gets the most restrictive record", func(t *testing.T) {
		rec := GetPermissions(RoleUnknown)

		assert.False(t, rec.CanCreate)
		assert.False(t, rec.CanEdit)
		assert.False(t, rec.CanDelete)
		assert.False(t, rec.CanViewAll)
		assert.Equal(t, restrictedColumns, rec.VisibleColumns)
		assert.Empty(t, rec.EditableFields)
		assert.Empty(t, rec.CreateFields)
	})

	t.Run("Deterministic for repeated calls", func(t *testing.T) {
		for _, role := range []Role{RoleSuperAdmin, RoleThaiAdmin, RoleLaoAdmin, RoleUnknown, Role("weird")} {
			first := GetPermissions(role)
			second := GetPermissions(role)
			assert.Equal(t, first, second)
		}
	})

	t.Run("Returned slices are copies", func(t *testing.T) {
		rec := GetPermissions(RoleSuperAdmin)
		rec.VisibleColumns[0] = "tampered"

		fresh := GetPermissions(RoleSuperAdmin)
		assert.Equal(t, ColumnCheckbox, fresh.VisibleColumns[0])
	})
}

func TestColumnAndFieldPredicates(t *testing.T) {
	t.Run("Amount column visibility per role", func(t *testing.T) {
		assert.False(t, CanAccessColumn(ColumnAmount, "thai_admin"))
		assert.True(t, CanAccessColumn(ColumnAmount, "lao_admin"))
		assert.True(t, CanAccessColumn(ColumnAmount, "super_admin"))
		assert.False(t, CanAccessColumn(ColumnAmount, nil))
	})

	t.Run("Edit field checks", func(t *testing.T) {
		assert.True(t, CanEditField(FieldStatus, "thai_admin"))
		assert.False(t, CanEditField(FieldIsPaid, "thai_admin"))
		assert.True(t, CanEditField(FieldIsPaid, "lao_admin"))
		assert.False(t, CanEditField(FieldStatus, "stranger"))
	})

	t.Run("Create field checks", func(t *testing.T) {
		assert.True(t, CanCreateField(FieldRemark, "thai_admin"))
		assert.False(t, CanCreateField(FieldAmount, "thai_admin"))
		assert.True(t, CanCreateField(FieldAmount, "lao_admin"))
		assert.False(t, CanCreateField(FieldTrackingNumber, nil))
	})

	t.Run("Role objects accepted", func(t *testing.T) {
		role := map[string]interface{}{"name": "thai_admin"}
		assert.False(t, CanAccessColumn(ColumnAmount, role))
		assert.True(t, CanAccessColumn(ColumnStatus, role))
	})
}
