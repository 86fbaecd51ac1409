package models

import (
	"context"
	stderrors "errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/shopsquad/shopsquad-backend/errors"
	"github.com/shopsquad/shopsquad-backend/internal/store"
	"github.com/shopsquad/shopsquad-backend/logger"
	"github.com/shopsquad/shopsquad-backend/types"
)

// UserModel handles registration and login, issuing HMAC-signed JWTs.
type UserModel struct {
	store     store.UserStore
	jwtSecret []byte
	tokenTTL  time.Duration
}

func NewUserModel(store store.UserStore, jwtSecret string, tokenTTL time.Duration) *UserModel {
	return &UserModel{
		store:     store,
		jwtSecret: []byte(jwtSecret),
		tokenTTL:  tokenTTL,
	}
}

func (um *UserModel) Register(ctx context.Context, req *types.UserRegister) (*types.AuthResponse, error) {
	log := logger.GetLogger()

	if _, err := um.store.GetUserByEmail(ctx, req.Email); err == nil {
		return nil, errors.NewConflictError("Email already registered", req.Email)
	} else if !stderrors.Is(err, store.ErrNotFound) {
		return nil, errors.NewDatabaseError(err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		log.Errorw("Failed to hash password", "error", err)
		return nil, errors.InternalServerError("Failed to process password")
	}

	user := &types.User{
		Email:        req.Email,
		Username:     req.Username,
		PasswordHash: string(hash),
	}
	if _, err := um.store.CreateUser(ctx, user); err != nil {
		return nil, errors.NewDatabaseError(err)
	}

	token, err := um.issueToken(user)
	if err != nil {
		return nil, err
	}

	log.Infow("User registered", "userId", user.ID, "email", logger.MaskEmail(user.Email))
	return &types.AuthResponse{Token: token, User: *user}, nil
}

func (um *UserModel) Login(ctx context.Context, req *types.UserLogin) (*types.AuthResponse, error) {
	user, err := um.store.GetUserByEmail(ctx, req.Email)
	if err != nil {
		if stderrors.Is(err, store.ErrNotFound) {
			return nil, errors.AuthenticationFailed("Invalid email or password")
		}
		return nil, errors.NewDatabaseError(err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, errors.AuthenticationFailed("Invalid email or password")
	}

	token, err := um.issueToken(user)
	if err != nil {
		return nil, err
	}
	return &types.AuthResponse{Token: token, User: *user}, nil
}

func (um *UserModel) GetUserByID(ctx context.Context, id string) (*types.User, error) {
	user, err := um.store.GetUserByID(ctx, id)
	if err != nil {
		if stderrors.Is(err, store.ErrNotFound) {
			return nil, errors.NotFound("User", id)
		}
		return nil, errors.NewDatabaseError(err)
	}
	return user, nil
}

func (um *UserModel) issueToken(user *types.User) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   user.ID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(um.tokenTTL)),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(um.jwtSecret)
	if err != nil {
		logger.GetLogger().Errorw("Failed to sign token", "error", err)
		return "", errors.InternalServerError("Failed to issue token")
	}
	return signed, nil
}
