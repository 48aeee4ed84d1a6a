package service

import (
	"testing"

	"go-stocktrack/internal/apperror"
	"go-stocktrack/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestUserService(t *testing.T) (*testEnv, UserService) {
	t.Helper()
	env := newTestEnv(t)
	return env, NewUserService(env.users)
}

func createUser(t *testing.T, svc UserService, email string, role model.Role) *model.User {
	t.Helper()
	user, err := svc.CreateUser(&CreateUserRequest{
		Email:    email,
		Password: "secret123",
		FullName: "Test User",
		Role:     role,
	}, uuid.New())
	require.NoError(t, err)
	return user
}

func TestUpdateUserRole(t *testing.T) {
	_, svc := newTestUserService(t)

	admin := createUser(t, svc, "admin@shop.test", model.RoleAdmin)
	staff := createUser(t, svc, "staff@shop.test", model.RoleStaff)

	promoted, err := svc.UpdateUserRole(staff.ID, model.RoleAdmin, admin.ID)
	require.NoError(t, err)
	assert.Equal(t, model.RoleAdmin, promoted.Role)
}

func TestUpdateUserRole_SelfDemotionForbidden(t *testing.T) {
	_, svc := newTestUserService(t)

	admin := createUser(t, svc, "admin@shop.test", model.RoleAdmin)

	_, err := svc.UpdateUserRole(admin.ID, model.RoleStaff, admin.ID)
	require.Error(t, err)
	assert.Equal(t, apperror.KindAuthorization, apperror.KindOf(err))

	// Role unchanged
	fetched, err := svc.GetUserByID(admin.ID)
	require.NoError(t, err)
	assert.Equal(t, model.RoleAdmin, fetched.Role)
}

func TestUpdateUserRole_InvalidRole(t *testing.T) {
	_, svc := newTestUserService(t)

	admin := createUser(t, svc, "admin@shop.test", model.RoleAdmin)
	staff := createUser(t, svc, "staff@shop.test", model.RoleStaff)

	_, err := svc.UpdateUserRole(staff.ID, model.Role("Superuser"), admin.ID)
	require.Error(t, err)
	assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))
}

func TestDeleteUser(t *testing.T) {
	_, svc := newTestUserService(t)

	admin := createUser(t, svc, "admin@shop.test", model.RoleAdmin)
	staff := createUser(t, svc, "staff@shop.test", model.RoleStaff)

	require.NoError(t, svc.DeleteUser(staff.ID, admin.ID))

	_, err := svc.GetUserByID(staff.ID)
	require.Error(t, err)
	assert.True(t, apperror.IsNotFound(err))
}

func TestDeleteUser_SelfDeletionForbidden(t *testing.T) {
	_, svc := newTestUserService(t)

	admin := createUser(t, svc, "admin@shop.test", model.RoleAdmin)

	err := svc.DeleteUser(admin.ID, admin.ID)
	require.Error(t, err)
	assert.Equal(t, apperror.KindAuthorization, apperror.KindOf(err))

	// Account still present
	_, err = svc.GetUserByID(admin.ID)
	require.NoError(t, err)
}

func TestDeleteUser_NotFound(t *testing.T) {
	_, svc := newTestUserService(t)

	admin := createUser(t, svc, "admin@shop.test", model.RoleAdmin)

	err := svc.DeleteUser(uuid.New(), admin.ID)
	require.Error(t, err)
	assert.True(t, apperror.IsNotFound(err))
}

func TestCreateUser_DuplicateEmail(t *testing.T) {
	_, svc := newTestUserService(t)

	createUser(t, svc, "admin@shop.test", model.RoleAdmin)

	_, err := svc.CreateUser(&CreateUserRequest{
		Email:    "admin@shop.test",
		Password: "secret123",
		FullName: "Impostor",
		Role:     model.RoleStaff,
	}, uuid.New())
	require.Error(t, err)
	assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))
}
