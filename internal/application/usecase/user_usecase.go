package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/Almacen-api/internal/application/auth"
	"github.com/jhoicas/Almacen-api/internal/application/dto"
	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
	"golang.org/x/crypto/bcrypt"
)

// UserUseCase administración de usuarios dentro de una empresa.
// Reglas de jerarquía: Admin puede tocar cualquier rol (incluidos otros
// Admin, sin guard especial); Manager solo Staff; Staff nada.
type UserUseCase struct {
	repo repository.UserRepository
}

// NewUserUseCase construye el caso de uso con el puerto de persistencia.
func NewUserUseCase(repo repository.UserRepository) *UserUseCase {
	return &UserUseCase{repo: repo}
}

// List lista los usuarios de la empresa del caller.
func (uc *UserUseCase) List(ctx context.Context, authCtx domain.AuthContext) ([]*dto.UserResponse, error) {
	if err := authCtx.CanManageUsers(); err != nil {
		return nil, err
	}
	users, err := uc.repo.ListByCompany(ctx, authCtx.CompanyID)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, auth.ToUserResponse(u))
	}
	return out, nil
}

// GetByID obtiene un usuario de la empresa del caller; de otra empresa -> ErrNotFound.
func (uc *UserUseCase) GetByID(ctx context.Context, authCtx domain.AuthContext, id string) (*dto.UserResponse, error) {
	if err := authCtx.CanManageUsers(); err != nil {
		return nil, err
	}
	user, err := uc.repo.GetByIDAndCompany(ctx, id, authCtx.CompanyID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrNotFound
	}
	return auth.ToUserResponse(user), nil
}

// Create crea un usuario en la empresa del caller. Manager solo puede crear
// Staff; intentar Admin o Manager -> ErrForbidden. Username es único global:
// el pre-chequeo es fast-path, el constraint de la tabla es el árbitro final.
func (uc *UserUseCase) Create(ctx context.Context, authCtx domain.AuthContext, in dto.CreateUserRequest) (*dto.UserResponse, error) {
	if err := authCtx.CanManageUsers(); err != nil {
		return nil, err
	}
	role, ok := entity.ParseRole(in.Role)
	if !ok {
		return nil, domain.ErrInvalidInput
	}
	if !authCtx.Role.CanAssign(role) {
		return nil, domain.ErrForbidden
	}
	existing, err := uc.repo.GetByUsername(ctx, in.Username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	user := &entity.User{
		ID:           uuid.New().String(),
		CompanyID:    authCtx.CompanyID, // siempre la empresa del caller, inmutable
		Username:     in.Username,
		PasswordHash: string(hash),
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.repo.Create(ctx, user); err != nil {
		return nil, err
	}
	return auth.ToUserResponse(user), nil
}

// Update aplica una actualización parcial (username, password, role).
// Manager no puede tocar usuarios Admin/Manager ni asignar esos roles.
func (uc *UserUseCase) Update(ctx context.Context, authCtx domain.AuthContext, id string, in dto.UpdateUserRequest) (*dto.UserResponse, error) {
	if err := authCtx.CanManageUsers(); err != nil {
		return nil, err
	}
	user, err := uc.repo.GetByIDAndCompany(ctx, id, authCtx.CompanyID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrNotFound
	}
	if !authCtx.Role.CanAssign(user.Role) {
		return nil, domain.ErrForbidden
	}
	if in.Role != nil {
		role, ok := entity.ParseRole(*in.Role)
		if !ok {
			return nil, domain.ErrInvalidInput
		}
		if !authCtx.Role.CanAssign(role) {
			return nil, domain.ErrForbidden
		}
		user.Role = role
	}
	if in.Username != nil && *in.Username != user.Username {
		existing, err := uc.repo.GetByUsername(ctx, *in.Username)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, domain.ErrDuplicate
		}
		user.Username = *in.Username
	}
	if in.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*in.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = string(hash)
	}
	user.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, user); err != nil {
		return nil, err
	}
	return auth.ToUserResponse(user), nil
}

// Delete elimina un usuario de la empresa del caller. Nadie puede borrarse a
// sí mismo; Manager solo puede borrar Staff. Las transacciones históricas del
// usuario conservan su id.
func (uc *UserUseCase) Delete(ctx context.Context, authCtx domain.AuthContext, id string) error {
	if err := authCtx.CanManageUsers(); err != nil {
		return err
	}
	user, err := uc.repo.GetByIDAndCompany(ctx, id, authCtx.CompanyID)
	if err != nil {
		return err
	}
	if user == nil {
		return domain.ErrNotFound
	}
	if user.ID == authCtx.UserID {
		return domain.ErrInvalidOperation
	}
	if !authCtx.Role.CanAssign(user.Role) {
		return domain.ErrForbidden
	}
	return uc.repo.Delete(ctx, id)
}
