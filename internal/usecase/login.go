package usecase

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"github.com/xavierca1/nhfg-leads/internal/entity"
)

type LoginUseCase struct {
	UserRepo entity.UserRepositoryInterface
	Issuer   TokenIssuer
	Hasher   PasswordComparer
	// EnforcePassword turns on the bcrypt check. When false, any active
	// user's email is enough to obtain a token.
	EnforcePassword bool
	Logger          *zap.Logger
}

func NewLoginUseCase(
	userRepo entity.UserRepositoryInterface,
	issuer TokenIssuer,
	hasher PasswordComparer,
	enforcePassword bool,
	logger *zap.Logger,
) *LoginUseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LoginUseCase{
		UserRepo:        userRepo,
		Issuer:          issuer,
		Hasher:          hasher,
		EnforcePassword: enforcePassword,
		Logger:          logger,
	}
}

func (uc *LoginUseCase) Execute(ctx context.Context, input LoginInput) (*LoginOutput, error) {
	email := strings.TrimSpace(input.Email)
	if email == "" {
		return nil, validationFailed("email is required")
	}

	user, err := uc.UserRepo.FindActiveByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, entity.ErrUserNotFound) {
			return nil, unauthorized("User not found")
		}
		return nil, storeFailure(err)
	}

	if uc.EnforcePassword {
		if user.PasswordHash == nil || uc.Hasher == nil ||
			uc.Hasher.Compare(*user.PasswordHash, input.Password) != nil {
			uc.Logger.Info("login rejected: bad credentials", zap.String("user_id", user.ID))
			return nil, unauthorized("Invalid credentials")
		}
	}

	token, expiresAt, err := uc.Issuer.Issue(user)
	if err != nil {
		uc.Logger.Error("token signing failed", zap.Error(err))
		return nil, &TechnicalError{Code: "SIGNING_ERROR", Message: "could not issue token", Err: err}
	}

	products := user.ProductsSold
	if products == nil {
		products = []string{}
	}

	return &LoginOutput{
		AccessToken: token,
		TokenType:   "bearer",
		ExpiresAt:   expiresAt,
		User: UserOutput{
			ID:           user.ID,
			Name:         user.Name,
			Email:        user.Email,
			Role:         user.Role,
			Category:     user.Category,
			Avatar:       user.Avatar,
			ProductsSold: products,
		},
	}, nil
}
