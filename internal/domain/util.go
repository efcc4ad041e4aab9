package domain

import (
	"context"
	"errors"
	"net/mail"
	"regexp"
	"strings"

	"github.com/alumnet-lab/backend/internal/entity"
	"github.com/alumnet-lab/backend/internal/model"
	"github.com/alumnet-lab/backend/internal/repository"
	"github.com/alumnet-lab/backend/pkg/crypto"
	"github.com/alumnet-lab/backend/pkg/errorx"
	"github.com/alumnet-lab/backend/pkg/xcontext"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// allRows disables the limit of a list query.
const allRows = -1

func checkTenantHandle(ctx context.Context, handle string) error {
	if len(handle) < 3 {
		return errorx.New(errorx.BadRequest, "Handle too short (at least 3 characters)")
	}

	if len(handle) > 32 {
		return errorx.New(errorx.BadRequest, "Handle too long (at most 32 characters)")
	}

	ok, err := regexp.MatchString("^[a-z0-9_-]*$", handle)
	if err != nil {
		xcontext.Logger(ctx).Debugf("Cannot execute regex pattern: %v", err)
		return errorx.Unknown
	}

	if !ok {
		return errorx.New(errorx.BadRequest, "Invalid handle")
	}

	return nil
}

func normalizeEmail(email string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if _, err := mail.ParseAddress(email); err != nil {
		return "", errorx.New(errorx.BadRequest, "Invalid email")
	}

	return email, nil
}

// createUserWithMember stores the user and its member ledger. Callers run it
// inside a transaction.
func createUserWithMember(
	ctx context.Context,
	userRepo repository.UserRepository,
	memberRepo repository.MemberRepository,
	user *entity.User,
	password string,
) (*entity.User, error) {
	_, err := userRepo.GetByEmail(ctx, user.Email)
	if err == nil {
		return nil, errorx.New(errorx.AlreadyExists, "Email is already registered")
	}

	if !errors.Is(err, gorm.ErrRecordNotFound) {
		xcontext.Logger(ctx).Errorf("Cannot get user by email: %v", err)
		return nil, errorx.Unknown
	}

	hashed, err := crypto.HashPassword(password)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot hash password: %v", err)
		return nil, errorx.Unknown
	}

	user.ID = uuid.NewString()
	user.Password = hashed

	if err := userRepo.Create(ctx, user); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create user: %v", err)
		return nil, errorx.Unknown
	}

	if err := memberRepo.Upsert(ctx, &entity.Member{UserID: user.ID, TenantID: user.TenantID}); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create member: %v", err)
		return nil, errorx.Unknown
	}

	return user, nil
}

func generateAccessToken(ctx context.Context, user *entity.User) (string, error) {
	cfg := xcontext.Configs(ctx).Auth
	token, err := xcontext.TokenEngine(ctx).Generate(cfg.AccessToken.Expiration, model.AccessToken{
		ID:       user.ID,
		TenantID: user.TenantID,
		Role:     string(user.Role),
	})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot generate access token: %v", err)
		return "", errorx.Unknown
	}

	return token, nil
}
