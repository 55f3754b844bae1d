package services_test

import (
	"testing"

	"catalog/internal/models"
	"catalog/internal/repositories"
	"catalog/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
)

func TestCreateUserHashesPasswordAndDefaults(t *testing.T) {
	repo := new(MockUserRepository)
	svc := services.NewUserService(repo, nil)

	repo.On("GetByUsername", "alice").Return(nil, repositories.ErrNotFound)
	repo.On("GetByEmail", "alice@example.com").Return(nil, repositories.ErrNotFound)
	repo.On("Create", mock.AnythingOfType("*models.User")).Return(nil)

	user, err := svc.Create(services.CreateUserInput{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "Sup3rSecret!",
	})
	assert.NoError(t, err)
	assert.Equal(t, models.RoleUser, user.Role)
	assert.True(t, user.Active)
	assert.NotEqual(t, "Sup3rSecret!", user.Password)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("Sup3rSecret!")))
}

func TestCreateUserDuplicateEmailCheckedAfterUsername(t *testing.T) {
	repo := new(MockUserRepository)
	svc := services.NewUserService(repo, nil)

	repo.On("GetByUsername", "alice").Return(nil, repositories.ErrNotFound)
	repo.On("GetByEmail", "alice@example.com").
		Return(&models.User{ID: "user-9", Email: "alice@example.com"}, nil)

	_, err := svc.Create(services.CreateUserInput{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "Sup3rSecret!",
	})
	ce, ok := repositories.AsConflict(err)
	assert.True(t, ok)
	assert.Equal(t, "email", ce.Field)
	repo.AssertNotCalled(t, "Create", mock.Anything)
}

func TestUpdateUserKeepsUnsuppliedFields(t *testing.T) {
	repo := new(MockUserRepository)
	svc := services.NewUserService(repo, nil)

	existing := &models.User{
		ID:       "user-1",
		Username: "alice",
		Email:    "alice@example.com",
		Password: "hash",
		Phone:    "555-0101",
		Role:     models.RoleAdmin,
		Active:   true,
		City:     "Prague",
	}
	repo.On("GetByUsername", "alice").Return(existing, nil)
	repo.On("Update", mock.AnythingOfType("*models.User")).Return(nil)

	city := "Brno"
	updated, err := svc.Update("alice", services.UpdateUserInput{City: &city})
	assert.NoError(t, err)
	assert.Equal(t, "Brno", updated.City)
	assert.Equal(t, "alice", updated.Username)
	assert.Equal(t, "alice@example.com", updated.Email)
	assert.Equal(t, "555-0101", updated.Phone)
	assert.Equal(t, models.RoleAdmin, updated.Role)
	assert.Equal(t, "hash", updated.Password)
}

func TestUpdateUserCanDeactivate(t *testing.T) {
	repo := new(MockUserRepository)
	svc := services.NewUserService(repo, nil)

	existing := &models.User{ID: "user-1", Username: "alice", Active: true}
	repo.On("GetByUsername", "alice").Return(existing, nil)
	repo.On("Update", mock.Anything).Return(nil)

	active := false
	updated, err := svc.Update("alice", services.UpdateUserInput{Active: &active})
	assert.NoError(t, err)
	assert.False(t, updated.Active)
}

func TestDeleteUserDestroysAsset(t *testing.T) {
	repo := new(MockUserRepository)
	mediaStore := new(MockMediaStore)
	svc := services.NewUserService(repo, mediaStore)

	existing := &models.User{ID: "user-1", Username: "alice", CloudinaryID: "asset-7"}
	repo.On("GetByUsername", "alice").Return(existing, nil)
	mediaStore.On("Destroy", "asset-7").Return(nil)
	repo.On("Delete", "user-1").Return(nil)

	assert.NoError(t, svc.Delete("alice"))
	mediaStore.AssertNumberOfCalls(t, "Destroy", 1)
}
