package auth_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stockorder-sync/internal/application/auth"
	"github.com/jhoicas/stockorder-sync/internal/application/dto"
	"github.com/jhoicas/stockorder-sync/internal/domain"
	"github.com/jhoicas/stockorder-sync/internal/domain/entity"
	"github.com/jhoicas/stockorder-sync/pkg/jwt"
)

const secret = "test-secret"

type memUsers struct {
	byEmail map[string]*entity.User
}

func (m *memUsers) Create(_ context.Context, u *entity.User) error {
	if _, ok := m.byEmail[u.Email]; ok {
		return domain.ErrEmailAlreadyExists
	}
	m.byEmail[u.Email] = u
	return nil
}

func (m *memUsers) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	return m.byEmail[email], nil
}

func newUC() (*auth.AuthUseCase, *memUsers) {
	repo := &memUsers{byEmail: map[string]*entity.User{}}
	return auth.NewAuthUseCase(repo, auth.JWTConfig{Secret: secret, ExpMinutes: 5, Issuer: "test"}), repo
}

func TestRegisterYLogin(t *testing.T) {
	uc, repo := newUC()
	ctx := context.Background()

	user, err := uc.RegisterUser(ctx, dto.RegisterRequest{Email: "Buyer@Acme.test", Password: "supersecret", Role: entity.RolePurchase})
	require.NoError(t, err)
	assert.Equal(t, "buyer@acme.test", user.Email)
	assert.Equal(t, "buyer@acme.test", user.Name, "sin nombre se usa el email")
	assert.NotEqual(t, "supersecret", repo.byEmail["buyer@acme.test"].PasswordHash)

	out, err := uc.Login(ctx, dto.LoginRequest{Email: "buyer@acme.test", Password: "supersecret"})
	require.NoError(t, err)
	op, err := jwt.Verify(secret, "test", out.Token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, op.ID)
	assert.Equal(t, entity.RolePurchase, op.Role)
}

func TestRegister_EmailDuplicado(t *testing.T) {
	uc, _ := newUC()
	ctx := context.Background()
	in := dto.RegisterRequest{Email: "a@b.test", Password: "supersecret", Role: entity.RoleSales}

	_, err := uc.RegisterUser(ctx, in)
	require.NoError(t, err)
	_, err = uc.RegisterUser(ctx, in)
	assert.True(t, errors.Is(err, domain.ErrEmailAlreadyExists))
}

func TestRegister_RolInvalido(t *testing.T) {
	uc, _ := newUC()
	_, err := uc.RegisterUser(context.Background(), dto.RegisterRequest{Email: "a@b.test", Password: "supersecret", Role: "bodeguero"})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}

func TestLogin_CredencialesInvalidas(t *testing.T) {
	uc, _ := newUC()
	ctx := context.Background()
	_, err := uc.RegisterUser(ctx, dto.RegisterRequest{Email: "a@b.test", Password: "supersecret", Role: entity.RoleAdmin})
	require.NoError(t, err)

	_, err = uc.Login(ctx, dto.LoginRequest{Email: "a@b.test", Password: "otra-cosa"})
	assert.True(t, errors.Is(err, domain.ErrUnauthorized))

	_, err = uc.Login(ctx, dto.LoginRequest{Email: "nadie@b.test", Password: "supersecret"})
	assert.True(t, errors.Is(err, domain.ErrUnauthorized))
}

func TestLogin_CuentaInactiva(t *testing.T) {
	uc, repo := newUC()
	ctx := context.Background()
	_, err := uc.RegisterUser(ctx, dto.RegisterRequest{Email: "a@b.test", Password: "supersecret", Role: entity.RolePOS})
	require.NoError(t, err)
	repo.byEmail["a@b.test"].Status = entity.UserStatusInactive

	_, err = uc.Login(ctx, dto.LoginRequest{Email: "a@b.test", Password: "supersecret"})
	assert.True(t, errors.Is(err, domain.ErrForbidden))
}
