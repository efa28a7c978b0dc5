package application

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	userDomain "github.com/roomfinder/service-rooms/internal/domain/user"
	"github.com/roomfinder/service-rooms/internal/platform/auth"
	"github.com/roomfinder/service-rooms/internal/platform/domain"
)

var (
	errBadCredentials = domain.NewUnauthorizedError("invalid username or password")
	errRoleMismatch   = domain.NewUnauthorizedError("selected role does not match your account")
)

// RegisterRequest is the request DTO for creating an account.
type RegisterRequest struct {
	Username        string `json:"username" binding:"required,max=150"`
	Password        string `json:"password" binding:"required"`
	PasswordConfirm string `json:"password_confirm" binding:"required"`
}

// LoginRequest is the request DTO for signing in with a selected role.
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
	Role     string `json:"role" binding:"required,oneof=admin customer"`
}

// SetPrivilegesRequest replaces an account's staff and superuser flags.
type SetPrivilegesRequest struct {
	IsStaff     bool `json:"is_staff"`
	IsSuperuser bool `json:"is_superuser"`
}

// UserDTO is the API response representation of an account.
type UserDTO struct {
	ID          uuid.UUID `json:"id"`
	Username    string    `json:"username"`
	IsStaff     bool      `json:"is_staff"`
	IsSuperuser bool      `json:"is_superuser"`
	CreatedAt   time.Time `json:"created_at"`
}

// TokenDTO is returned by a successful login.
type TokenDTO struct {
	AccessToken string  `json:"access_token"`
	TokenType   string  `json:"token_type"`
	ExpiresIn   int64   `json:"expires_in"`
	User        UserDTO `json:"user"`
}

// AccountService implements registration, login and account administration.
type AccountService struct {
	repo       userDomain.UserRepository
	jwtManager *auth.JWTManager
	logger     *zap.Logger
}

// NewAccountService creates a new AccountService.
func NewAccountService(repo userDomain.UserRepository, jwtManager *auth.JWTManager, logger *zap.Logger) *AccountService {
	return &AccountService{repo: repo, jwtManager: jwtManager, logger: logger}
}

// Register creates a non-privileged account.
func (s *AccountService) Register(ctx context.Context, req RegisterRequest) (*UserDTO, error) {
	if err := userDomain.ValidatePassword(req.Password, req.PasswordConfirm); err != nil {
		return nil, err
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	u, err := userDomain.NewUser(req.Username, hash)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Save(ctx, u); err != nil {
		return nil, err
	}

	s.logger.Info("account registered",
		zap.String("user_id", u.ID().String()),
		zap.String("username", u.Username()),
	)

	dto := toUserDTO(u)
	return &dto, nil
}

// Login verifies credentials and the selected role and issues an access token.
// The admin role is only available to privileged accounts and the customer role
// only to ordinary ones.
func (s *AccountService) Login(ctx context.Context, req LoginRequest) (*TokenDTO, error) {
	u, err := s.repo.FindByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, errBadCredentials
		}
		return nil, err
	}
	if !auth.CheckPassword(u.PasswordHash(), req.Password) {
		return nil, errBadCredentials
	}

	switch req.Role {
	case auth.RoleAdmin:
		if !u.Privileged() {
			return nil, errRoleMismatch
		}
	case auth.RoleCustomer:
		if u.Privileged() {
			return nil, errRoleMismatch
		}
	default:
		return nil, domain.NewValidationError(fmt.Sprintf("invalid role: %s", req.Role))
	}

	token, err := s.jwtManager.GenerateAccessToken(u.ID(), u.Username(), u.Privileged())
	if err != nil {
		return nil, fmt.Errorf("failed to issue access token: %w", err)
	}

	return &TokenDTO{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresIn:   int64(s.jwtManager.AccessTTL().Seconds()),
		User:        toUserDTO(u),
	}, nil
}

// Me returns the account of the authenticated user.
func (s *AccountService) Me(ctx context.Context, userID uuid.UUID) (*UserDTO, error) {
	u, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	dto := toUserDTO(u)
	return &dto, nil
}

// CloseAccount purges the account with its rooms, their images and every
// booking made by or for it.
func (s *AccountService) CloseAccount(ctx context.Context, userID uuid.UUID) error {
	if err := s.repo.DeleteCascade(ctx, userID); err != nil {
		return err
	}
	s.logger.Info("account closed", zap.String("user_id", userID.String()))
	return nil
}

// RemoveUser closes another user's account on behalf of staff.
func (s *AccountService) RemoveUser(ctx context.Context, actor userDomain.Actor, userID uuid.UUID) error {
	if !actor.Privileged {
		return domain.NewForbiddenError("only staff may remove accounts")
	}
	if actor.Is(userID) {
		return domain.NewValidationError("you cannot remove your own account")
	}
	return s.CloseAccount(ctx, userID)
}

// SetPrivileges replaces the privilege flags of an account. Staff may not
// revoke their own privileges.
func (s *AccountService) SetPrivileges(ctx context.Context, actor userDomain.Actor, userID uuid.UUID, req SetPrivilegesRequest) (*UserDTO, error) {
	if !actor.Privileged {
		return nil, domain.NewForbiddenError("only staff may change privileges")
	}
	if actor.Is(userID) && !req.IsStaff && !req.IsSuperuser {
		return nil, domain.NewValidationError("you cannot revoke your own privileges")
	}
	return s.setPrivileges(ctx, userID, req.IsStaff, req.IsSuperuser)
}

// Promote grants staff, and optionally superuser, to the named account. It is the
// bootstrap path for the first administrator.
func (s *AccountService) Promote(ctx context.Context, username string, superuser bool) (*UserDTO, error) {
	u, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	return s.setPrivileges(ctx, u.ID(), true, superuser || u.IsSuperuser())
}

func (s *AccountService) setPrivileges(ctx context.Context, userID uuid.UUID, staff, superuser bool) (*UserDTO, error) {
	u, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	u.SetPrivileges(staff, superuser)
	if err := s.repo.UpdatePrivileges(ctx, u); err != nil {
		return nil, err
	}

	s.logger.Info("account privileges changed",
		zap.String("user_id", u.ID().String()),
		zap.Bool("is_staff", staff),
		zap.Bool("is_superuser", superuser),
	)

	dto := toUserDTO(u)
	return &dto, nil
}

func toUserDTO(u *userDomain.User) UserDTO {
	return UserDTO{
		ID:          u.ID(),
		Username:    u.Username(),
		IsStaff:     u.IsStaff(),
		IsSuperuser: u.IsSuperuser(),
		CreatedAt:   u.CreatedAt(),
	}
}
