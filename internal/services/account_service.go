package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"guidelk/internal/models/db_models"
	"guidelk/internal/models/response_models"
	"guidelk/internal/repositories"
	"guidelk/pkg/utils"
)

type AccountServiceInterface interface {
	// Authenticate verifies token and returns the matching user, creating it
	// on first sight.
	Authenticate(ctx context.Context, token string) (*db_models.User, error)
	VerifyToken(ctx context.Context, token string) (response_models.VerifyTokenResponse, error)
	GetAccount(ctx context.Context, userID uuid.UUID) (response_models.AccountResponse, error)
	DeleteAccount(ctx context.Context, userID uuid.UUID) error
}

type AccountService struct {
	accountRepo repositories.AccountRepository
	identity    IdentityProvider
	log         *zap.Logger
}

func NewAccountService(accountRepo repositories.AccountRepository, identity IdentityProvider, log *zap.Logger) AccountServiceInterface {
	return &AccountService{
		accountRepo: accountRepo,
		identity:    identity,
		log:         log.Named("account"),
	}
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func (a *AccountService) Authenticate(ctx context.Context, token string) (*db_models.User, error) {
	id, err := a.identity.Verify(ctx, token)
	if err != nil {
		return nil, utils.ErrUnauthorized
	}

	now := time.Now().UTC()
	user, err := a.accountRepo.FindOrCreate(ctx, &db_models.User{
		FirebaseUID: id.UID,
		Email:       optional(id.Email),
		FullName:    optional(id.Name),
		LastLoginAt: &now,
	})
	if err != nil {
		a.log.Error("find or create user", zap.String("uid", id.UID), zap.Error(err))
		return nil, utils.ErrDatabaseError
	}
	return user, nil
}

func (a *AccountService) VerifyToken(ctx context.Context, token string) (response_models.VerifyTokenResponse, error) {
	id, err := a.identity.Verify(ctx, token)
	if err != nil {
		a.log.Debug("token rejected", zap.Error(err))
		return response_models.VerifyTokenResponse{}, utils.ErrUnauthorized
	}
	return response_models.VerifyTokenResponse{
		UID:   id.UID,
		Email: optional(id.Email),
		Name:  optional(id.Name),
	}, nil
}

func (a *AccountService) find(ctx context.Context, userID uuid.UUID) (*db_models.User, error) {
	user, err := a.accountRepo.FindById(ctx, userID)
	if err != nil {
		a.log.Error("get user", zap.Stringer("user_id", userID), zap.Error(err))
		return nil, utils.ErrDatabaseError
	}
	if user == nil {
		return nil, utils.ErrUserNotFound
	}
	return user, nil
}

func (a *AccountService) GetAccount(ctx context.Context, userID uuid.UUID) (response_models.AccountResponse, error) {
	user, err := a.find(ctx, userID)
	if err != nil {
		return response_models.AccountResponse{}, err
	}
	return toAccountResponse(user), nil
}

// DeleteAccount removes the user together with every trip it owns.
func (a *AccountService) DeleteAccount(ctx context.Context, userID uuid.UUID) error {
	user, err := a.find(ctx, userID)
	if err != nil {
		return err
	}
	if err := a.accountRepo.Delete(ctx, user); err != nil {
		a.log.Error("delete user", zap.Stringer("user_id", userID), zap.Error(err))
		return utils.ErrDatabaseError
	}
	a.log.Info("user deleted", zap.Stringer("user_id", userID))
	return nil
}
