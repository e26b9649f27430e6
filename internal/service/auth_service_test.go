package service

import (
	"context"
	"testing"
	"time"

	"foodcourt/internal/auth"
	"foodcourt/internal/model"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newAuthService(userRepo *MockUserRepository) AuthService {
	tokens := auth.NewManager("test-secret", time.Hour)
	return NewAuthService(userRepo, tokens, zerolog.Nop())
}

func TestAuthService_Register_Success(t *testing.T) {
	ctx := context.Background()

	mockUserRepo := new(MockUserRepository)
	mockUserRepo.On("GetByEmail", ctx, "jane@example.com").Return(nil, nil)
	mockUserRepo.On("Create", ctx, mock.MatchedBy(func(u *model.User) bool {
		return u.Email == "jane@example.com" && u.Role == model.RoleUser && u.PasswordHash != "secret123"
	})).Return(nil)

	service := newAuthService(mockUserRepo)

	resp, err := service.Register(ctx, &model.RegisterRequest{
		Email:    "  Jane@Example.com ",
		Password: "secret123",
		FullName: "Jane",
	})

	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, "jane@example.com", resp.User.Email)
	assert.Empty(t, resp.User.PasswordHash)
	mockUserRepo.AssertExpectations(t)
}

func TestAuthService_Register_EmailTaken(t *testing.T) {
	ctx := context.Background()

	mockUserRepo := new(MockUserRepository)
	mockUserRepo.On("GetByEmail", ctx, "jane@example.com").Return(&model.User{ID: "u1"}, nil)

	service := newAuthService(mockUserRepo)

	resp, err := service.Register(ctx, &model.RegisterRequest{Email: "jane@example.com", Password: "pw"})

	assert.Equal(t, model.ErrEmailTaken, err)
	assert.Nil(t, resp)
	mockUserRepo.AssertNotCalled(t, "Create")
}

func TestAuthService_Register_MissingFields(t *testing.T) {
	ctx := context.Background()

	service := newAuthService(new(MockUserRepository))

	tests := []struct {
		name string
		req  *model.RegisterRequest
	}{
		{name: "Missing email", req: &model.RegisterRequest{Password: "pw"}},
		{name: "Missing password", req: &model.RegisterRequest{Email: "jane@example.com"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := service.Register(ctx, tt.req)
			require.Error(t, err)
			assert.Nil(t, resp)
		})
	}
}

func TestAuthService_Login_Success(t *testing.T) {
	ctx := context.Background()

	hash, err := auth.HashPassword("secret123")
	require.NoError(t, err)

	user := &model.User{ID: "u1", Email: "jane@example.com", PasswordHash: hash, Role: model.RoleUser}

	mockUserRepo := new(MockUserRepository)
	mockUserRepo.On("GetByEmail", ctx, "jane@example.com").Return(user, nil)

	service := newAuthService(mockUserRepo)

	resp, err := service.Login(ctx, &model.LoginRequest{Email: "jane@example.com", Password: "secret123"})

	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	assert.Empty(t, resp.User.PasswordHash)
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	ctx := context.Background()

	hash, err := auth.HashPassword("secret123")
	require.NoError(t, err)

	user := &model.User{ID: "u1", Email: "jane@example.com", PasswordHash: hash}

	mockUserRepo := new(MockUserRepository)
	mockUserRepo.On("GetByEmail", ctx, "jane@example.com").Return(user, nil)

	service := newAuthService(mockUserRepo)

	resp, err := service.Login(ctx, &model.LoginRequest{Email: "jane@example.com", Password: "wrong"})

	assert.Equal(t, model.ErrInvalidLogin, err)
	assert.Nil(t, resp)
}

func TestAuthService_Login_UnknownEmail(t *testing.T) {
	ctx := context.Background()

	mockUserRepo := new(MockUserRepository)
	mockUserRepo.On("GetByEmail", ctx, "nobody@example.com").Return(nil, nil)

	service := newAuthService(mockUserRepo)

	resp, err := service.Login(ctx, &model.LoginRequest{Email: "nobody@example.com", Password: "pw"})

	assert.Equal(t, model.ErrInvalidLogin, err)
	assert.Nil(t, resp)
}

func TestAuthService_UpdateProfile_KeepsUnsetFields(t *testing.T) {
	ctx := context.Background()

	user := &model.User{ID: "u1", Email: "jane@example.com", FullName: "Jane", Phone: "555-0100", Address: "1 Main St"}

	mockUserRepo := new(MockUserRepository)
	mockUserRepo.On("GetByID", ctx, "u1").Return(user, nil)
	mockUserRepo.On("UpdateProfile", ctx, mock.MatchedBy(func(u *model.User) bool {
		return u.FullName == "Jane Doe" && u.Phone == "555-0100" && u.Address == "1 Main St"
	})).Return(nil)

	service := newAuthService(mockUserRepo)

	updated, err := service.UpdateProfile(ctx, "u1", &model.UpdateProfileRequest{FullName: "Jane Doe"})

	require.NoError(t, err)
	assert.Equal(t, "Jane Doe", updated.FullName)
	mockUserRepo.AssertExpectations(t)
}
