package main

import (
	"errors"
	"testing"

	"go-stocktrack/internal/model"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type stubUserRepo struct {
	findByEmailUser *model.User
	findByEmailErr  error
	created         *model.User
}

func (s *stubUserRepo) FindByEmail(string) (*model.User, error) {
	return s.findByEmailUser, s.findByEmailErr
}
func (s *stubUserRepo) FindByID(uuid.UUID) (*model.User, error) { return nil, gorm.ErrRecordNotFound }
func (s *stubUserRepo) FindAll() ([]model.User, error)          { return nil, nil }
func (s *stubUserRepo) Create(user *model.User) error {
	s.created = user
	return nil
}
func (s *stubUserRepo) Update(*model.User) error               { return nil }
func (s *stubUserRepo) Delete(uuid.UUID) error                 { return nil }
func (s *stubUserRepo) UpdatePassword(uuid.UUID, string) error { return nil }

func TestSeedAdmin_CreatesWhenAbsent(t *testing.T) {
	t.Setenv("ADMIN_EMAIL", "admin@shop.test")
	t.Setenv("ADMIN_PASSWORD", "seed-secret")

	repo := &stubUserRepo{findByEmailErr: gorm.ErrRecordNotFound}
	seedAdmin(repo, zerolog.Nop())

	require.NotNil(t, repo.created)
	assert.Equal(t, "admin@shop.test", repo.created.Email)
	assert.Equal(t, model.RoleAdmin, repo.created.Role)
	assert.True(t, repo.created.CheckPassword("seed-secret"))
}

func TestSeedAdmin_SkipsWhenPresent(t *testing.T) {
	t.Setenv("ADMIN_EMAIL", "admin@shop.test")

	repo := &stubUserRepo{findByEmailUser: &model.User{Email: "admin@shop.test"}}
	seedAdmin(repo, zerolog.Nop())

	assert.Nil(t, repo.created)
}

func TestSeedAdmin_SkipsOnStoreFailure(t *testing.T) {
	t.Setenv("ADMIN_EMAIL", "admin@shop.test")

	// A transient lookup failure must not be mistaken for "admin absent"
	repo := &stubUserRepo{findByEmailErr: errors.New("connection refused")}
	seedAdmin(repo, zerolog.Nop())

	assert.Nil(t, repo.created)
}
