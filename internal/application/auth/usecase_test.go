package auth

import (
	"context"
	"testing"

	"github.com/jhoicas/stock-analytics/internal/application/dto"
	"github.com/jhoicas/stock-analytics/internal/domain"
	"github.com/jhoicas/stock-analytics/internal/domain/entity"
	"github.com/jhoicas/stock-analytics/internal/infrastructure/memory"
	"github.com/jhoicas/stock-analytics/pkg/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const secret = "test-secret"

func newAuth() *AuthUseCase {
	return NewAuthUseCase(memory.NewStore().Users(), JWTConfig{Secret: secret, ExpMinutes: 5, Issuer: "test"})
}

func TestRegisterUser_RolPorDefecto(t *testing.T) {
	uc := newAuth()

	out, err := uc.RegisterUser(context.Background(), dto.RegisterRequest{Email: " Ana@Example.com ", Password: "12345678"})
	require.NoError(t, err)
	assert.Equal(t, "ana@example.com", out.Email)
	assert.Equal(t, "ana@example.com", out.Name)
	assert.Equal(t, entity.RoleUser, out.Role)
	assert.Equal(t, entity.UserStatusActive, out.Status)
}

func TestRegisterUser_EmailDuplicado(t *testing.T) {
	uc := newAuth()
	ctx := context.Background()
	_, err := uc.RegisterUser(ctx, dto.RegisterRequest{Email: "ana@example.com", Password: "12345678"})
	require.NoError(t, err)

	_, err = uc.RegisterUser(ctx, dto.RegisterRequest{Email: "ANA@example.com", Password: "otra-clave"})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
}

func TestLogin(t *testing.T) {
	uc := newAuth()
	ctx := context.Background()
	reg, err := uc.RegisterUser(ctx, dto.RegisterRequest{Email: "ana@example.com", Password: "12345678", Name: "Ana"})
	require.NoError(t, err)

	out, err := uc.Login(ctx, dto.LoginRequest{Email: "ana@example.com", Password: "12345678"})
	require.NoError(t, err)
	assert.Equal(t, reg.ID, out.User.ID)

	userID, role, err := jwt.Parse(secret, out.Token)
	require.NoError(t, err)
	assert.Equal(t, reg.ID, userID)
	assert.Equal(t, entity.RoleUser, role)
}

func TestLogin_CredencialesInvalidas(t *testing.T) {
	uc := newAuth()
	ctx := context.Background()
	_, err := uc.RegisterUser(ctx, dto.RegisterRequest{Email: "ana@example.com", Password: "12345678"})
	require.NoError(t, err)

	_, err = uc.Login(ctx, dto.LoginRequest{Email: "ana@example.com", Password: "mala"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = uc.Login(ctx, dto.LoginRequest{Email: "nadie@example.com", Password: "12345678"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}
