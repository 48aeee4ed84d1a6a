package policy

import "go-stocktrack/internal/model"

// Action identifies an operation gated by the role policy
type Action string

const (
	ActionProductView    Action = "product:view"
	ActionProductCreate  Action = "product:create"
	ActionProductUpdate  Action = "product:update"
	ActionProductDelete  Action = "product:delete"
	ActionCategoryManage Action = "category:manage"
	ActionSupplierManage Action = "supplier:manage"
	ActionUserManage     Action = "user:manage"
	ActionDashboardView  Action = "dashboard:view"
)

// staffActions is the subset of actions the Staff role may perform.
// Admin is not listed here: it is allowed everything.
var staffActions = map[Action]bool{
	ActionProductView:   true,
	ActionProductCreate: true,
	ActionProductUpdate: true,
	ActionDashboardView: true,
}

// Allow is the single authorization gate consulted before every operation
func Allow(role model.Role, action Action) bool {
	switch role {
	case model.RoleAdmin:
		return true
	case model.RoleStaff:
		return staffActions[action]
	default:
		return false
	}
}
