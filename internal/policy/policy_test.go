package policy

import (
	"testing"

	"go-stocktrack/internal/model"

	"github.com/stretchr/testify/assert"
)

func TestAllow(t *testing.T) {
	allActions := []Action{
		ActionProductView,
		ActionProductCreate,
		ActionProductUpdate,
		ActionProductDelete,
		ActionCategoryManage,
		ActionSupplierManage,
		ActionUserManage,
		ActionDashboardView,
	}

	t.Run("admin may do everything", func(t *testing.T) {
		for _, action := range allActions {
			assert.True(t, Allow(model.RoleAdmin, action), string(action))
		}
	})

	t.Run("staff permissions", func(t *testing.T) {
		allowed := map[Action]bool{
			ActionProductView:   true,
			ActionProductCreate: true,
			ActionProductUpdate: true,
			ActionDashboardView: true,
		}
		for _, action := range allActions {
			assert.Equal(t, allowed[action], Allow(model.RoleStaff, action), string(action))
		}
	})

	t.Run("unknown role denied everywhere", func(t *testing.T) {
		for _, action := range allActions {
			assert.False(t, Allow(model.Role("Superuser"), action), string(action))
			assert.False(t, Allow(model.Role(""), action), string(action))
		}
	})
}
