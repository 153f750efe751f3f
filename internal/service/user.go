package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/shopnet/marketplace/internal/hash"
	"github.com/shopnet/marketplace/internal/models"
	"github.com/shopnet/marketplace/internal/repo"
	"github.com/shopnet/marketplace/internal/tokens"
	"github.com/shopnet/marketplace/internal/transport"
)

const minPasswordLen = 5

type UserService struct {
	Repo          *repo.GormRepo
	JWTSecret     []byte
	RefreshSecret []byte
}

func (s *UserService) Register(ctx context.Context, req transport.RegisterRequest) (*models.User, error) {
	if req.Email == "" {
		return nil, fmt.Errorf("%w: email required", ErrValidation)
	}
	if len(req.Password) < minPasswordLen {
		return nil, fmt.Errorf("%w: password must be at least %d characters", ErrValidation, minPasswordLen)
	}

	if _, err := s.Repo.UserByEmail(ctx, req.Email); err == nil {
		return nil, fmt.Errorf("%w: user with this email already exists", ErrValidation)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	pwHash, err := hash.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Email:        req.Email,
		Name:         req.Name,
		PasswordHash: pwHash,
		IsActive:     true,
	}
	if err := s.Repo.CreateUser(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) Login(ctx context.Context, req transport.LoginRequest) (*models.User, *transport.TokenResponse, error) {
	user, err := s.Repo.UserByEmail(ctx, req.Email)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: invalid credentials", ErrUnauthorized)
	}
	if !user.IsActive || !hash.CheckPassword(user.PasswordHash, req.Password) {
		return nil, nil, fmt.Errorf("%w: invalid credentials", ErrUnauthorized)
	}

	pair, err := s.issueTokens(ctx, user)
	if err != nil {
		return nil, nil, err
	}
	return user, pair, nil
}

// Refresh validates and rotates a refresh token: the presented token
// is revoked, a fresh pair is issued.
func (s *UserService) Refresh(ctx context.Context, raw string) (*transport.TokenResponse, error) {
	claims, err := tokens.RefreshClaimsFromToken(raw, s.RefreshSecret)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid refresh token", ErrUnauthorized)
	}

	stored, err := s.Repo.RefreshTokenByToken(ctx, raw)
	if err != nil {
		return nil, fmt.Errorf("%w: refresh token not found", ErrUnauthorized)
	}
	if stored.Revoked {
		return nil, fmt.Errorf("%w: refresh token revoked", ErrUnauthorized)
	}
	if time.Now().Unix() > stored.ExpiresAt {
		return nil, fmt.Errorf("%w: refresh token expired", ErrUnauthorized)
	}

	userUID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid refresh token", ErrUnauthorized)
	}
	user, err := s.Repo.UserByUID(ctx, userUID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid refresh token", ErrUnauthorized)
	}

	if err := s.Repo.RevokeRefreshToken(ctx, raw); err != nil {
		return nil, err
	}
	return s.issueTokens(ctx, user)
}

func (s *UserService) Me(ctx context.Context, userUID uuid.UUID) (*models.User, error) {
	user, err := s.Repo.UserByUID(ctx, userUID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return user, nil
}

func (s *UserService) UpdateMe(ctx context.Context, userUID uuid.UUID, req transport.UpdateUserRequest) (*models.User, error) {
	user, err := s.Me(ctx, userUID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.Password != nil {
		if len(*req.Password) < minPasswordLen {
			return nil, fmt.Errorf("%w: password must be at least %d characters", ErrValidation, minPasswordLen)
		}
		pwHash, err := hash.HashPassword(*req.Password)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = pwHash
	}
	if req.Category != nil {
		if _, err := s.Repo.CategoryByUID(ctx, *req.Category); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, fmt.Errorf("%w: unknown category", ErrValidation)
			}
			return nil, err
		}
		user.CategoryUID = req.Category
	}

	if err := s.Repo.SaveUser(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) issueTokens(ctx context.Context, user *models.User) (*transport.TokenResponse, error) {
	role := "user"
	if user.IsStaff {
		role = "admin"
	}

	access, _, err := tokens.SignAccessToken(user.UID, role, s.JWTSecret)
	if err != nil {
		return nil, err
	}
	refresh, refreshExp, err := tokens.SignRefreshToken(user.UID, role, s.RefreshSecret)
	if err != nil {
		return nil, err
	}

	row := &models.RefreshToken{
		Token:     refresh,
		UserID:    user.ID,
		ExpiresAt: refreshExp.Unix(),
	}
	if err := s.Repo.SaveRefreshToken(ctx, row); err != nil {
		return nil, err
	}

	return &transport.TokenResponse{Access: access, Refresh: refresh}, nil
}
