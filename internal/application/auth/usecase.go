package auth

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/tu-usuario/rastreo-envios/internal/application/dto"
	"github.com/tu-usuario/rastreo-envios/internal/domain"
	"github.com/tu-usuario/rastreo-envios/internal/domain/entity"
	"github.com/tu-usuario/rastreo-envios/internal/domain/repository"
	"github.com/tu-usuario/rastreo-envios/pkg/jwt"
	"golang.org/x/crypto/bcrypt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase casos de uso de autenticación: registro e inicio de sesión.
type AuthUseCase struct {
	userRepo repository.UserRepository
	jwtCfg   JWTConfig
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(userRepo repository.UserRepository, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{userRepo: userRepo, jwtCfg: jwtCfg}
}

// Signup crea un usuario: hashea el password con bcrypt y persiste.
// Devuelve ErrEmailAlreadyExists si el email ya está registrado; el registro
// existente (incluido su hash) no se modifica.
func (uc *AuthUseCase) Signup(ctx context.Context, in dto.SignupRequest) (*dto.AuthResponse, error) {
	existing, err := uc.userRepo.FindByEmail(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	role := in.Role
	if role == "" {
		role = entity.RoleUser
	}

	now := time.Now()
	user := &entity.User{
		ID:           uuid.New().String(),
		Email:        in.Email,
		PasswordHash: string(hash),
		Name:         in.Name,
		Role:         role,
		AccountType:  in.AccountType,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	return &dto.AuthResponse{
		Message:     "User created successfully",
		Role:        user.Role,
		AccountType: user.AccountType,
	}, nil
}

// Signin verifica email/password y genera el token de sesión. Devuelve el
// mismo ErrInvalidCredentials tanto para email desconocido como para
// password incorrecto: el llamador no puede distinguir los casos.
func (uc *AuthUseCase) Signin(ctx context.Context, in dto.SigninRequest) (string, *dto.AuthResponse, error) {
	user, err := uc.userRepo.FindByEmail(ctx, in.Email)
	if err != nil {
		return "", nil, err
	}
	if user == nil {
		return "", nil, domain.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return "", nil, domain.ErrInvalidCredentials
	}

	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, user.Role, user.AccountType, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return "", nil, err
	}

	return token, &dto.AuthResponse{
		Message:     "Login successful",
		Role:        user.Role,
		AccountType: user.AccountType,
	}, nil
}
