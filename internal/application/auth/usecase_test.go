package auth_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/tu-usuario/rastreo-envios/internal/application/auth"
	"github.com/tu-usuario/rastreo-envios/internal/application/dto"
	"github.com/tu-usuario/rastreo-envios/internal/domain"
	"github.com/tu-usuario/rastreo-envios/internal/domain/entity"
	"github.com/tu-usuario/rastreo-envios/pkg/jwt"
)

type fakeUserRepo struct {
	users map[string]*entity.User // por email
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*entity.User)}
}

func (r *fakeUserRepo) Create(_ context.Context, user *entity.User) error {
	if _, ok := r.users[user.Email]; ok {
		return domain.ErrEmailAlreadyExists
	}
	cp := *user
	r.users[user.Email] = &cp
	return nil
}

func (r *fakeUserRepo) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	u, ok := r.users[email]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (r *fakeUserRepo) FindByID(_ context.Context, id string) (*entity.User, error) {
	for _, u := range r.users {
		if u.ID == id {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

var testJWTConfig = auth.JWTConfig{
	Secret:     "secreto-de-test",
	ExpMinutes: 60,
	Issuer:     "rastreo-envios-test",
}

func signupRequest() dto.SignupRequest {
	return dto.SignupRequest{
		Email:       "ana@example.com",
		Password:    "s3cret0!",
		Name:        "Ana Gómez",
		AccountType: entity.AccountTypeBuyer,
	}
}

func TestSignup_CreaUsuarioConRolPorDefecto(t *testing.T) {
	repo := newFakeUserRepo()
	uc := auth.NewAuthUseCase(repo, testJWTConfig)

	resp, err := uc.Signup(context.Background(), signupRequest())
	require.NoError(t, err)

	assert.Equal(t, "User created successfully", resp.Message)
	assert.Equal(t, entity.RoleUser, resp.Role, "sin rol explícito se asigna user")
	assert.Equal(t, entity.AccountTypeBuyer, resp.AccountType)

	stored, err := repo.FindByEmail(context.Background(), "ana@example.com")
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.NotEqual(t, "s3cret0!", stored.PasswordHash, "el password nunca se guarda en claro")
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("s3cret0!")))
}

func TestSignup_EmailExistenteNoAlteraElRegistro(t *testing.T) {
	repo := newFakeUserRepo()
	uc := auth.NewAuthUseCase(repo, testJWTConfig)

	_, err := uc.Signup(context.Background(), signupRequest())
	require.NoError(t, err)
	before, _ := repo.FindByEmail(context.Background(), "ana@example.com")

	req := signupRequest()
	req.Password = "otro-password"
	_, err = uc.Signup(context.Background(), req)
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)

	after, _ := repo.FindByEmail(context.Background(), "ana@example.com")
	assert.Equal(t, before.PasswordHash, after.PasswordHash, "el hash existente queda intacto")
}

func TestSignup_RolExplicitoSeRespeta(t *testing.T) {
	repo := newFakeUserRepo()
	uc := auth.NewAuthUseCase(repo, testJWTConfig)

	req := signupRequest()
	req.Role = entity.RoleAdmin
	resp, err := uc.Signup(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, entity.RoleAdmin, resp.Role)
}

func TestSignin_GeneraTokenConClaims(t *testing.T) {
	repo := newFakeUserRepo()
	uc := auth.NewAuthUseCase(repo, testJWTConfig)

	req := signupRequest()
	req.Role = entity.RoleAdmin
	_, err := uc.Signup(context.Background(), req)
	require.NoError(t, err)

	token, resp, err := uc.Signin(context.Background(), dto.SigninRequest{
		Email:    "ana@example.com",
		Password: "s3cret0!",
	})
	require.NoError(t, err)
	require.NotEmpty(t, token)
	assert.Equal(t, "Login successful", resp.Message)

	userID, role, accountType, err := jwt.Parse(testJWTConfig.Secret, token)
	require.NoError(t, err)
	assert.NotEmpty(t, userID)
	assert.Equal(t, entity.RoleAdmin, role)
	assert.Equal(t, entity.AccountTypeBuyer, accountType)
}

func TestSignin_CredencialesInvalidasIndistinguibles(t *testing.T) {
	repo := newFakeUserRepo()
	uc := auth.NewAuthUseCase(repo, testJWTConfig)

	_, err := uc.Signup(context.Background(), signupRequest())
	require.NoError(t, err)

	// Password incorrecto
	_, _, errBadPass := uc.Signin(context.Background(), dto.SigninRequest{
		Email:    "ana@example.com",
		Password: "incorrecto",
	})
	// Email desconocido
	_, _, errNoUser := uc.Signin(context.Background(), dto.SigninRequest{
		Email:    "nadie@example.com",
		Password: "s3cret0!",
	})

	assert.ErrorIs(t, errBadPass, domain.ErrInvalidCredentials)
	assert.ErrorIs(t, errNoUser, domain.ErrInvalidCredentials)
	assert.Equal(t, errBadPass, errNoUser, "ambos casos devuelven exactamente el mismo error")
}
