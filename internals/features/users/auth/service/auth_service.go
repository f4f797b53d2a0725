package service

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"gorm.io/gorm"

	"laporbug_backend/internals/features/users/auth/dto"
	authHelper "laporbug_backend/internals/features/users/auth/helper"
	authRepo "laporbug_backend/internals/features/users/auth/repository"
	helper "laporbug_backend/internals/helpers"
	helperAuth "laporbug_backend/internals/helpers/auth"
)

type AuthService struct {
	DB     *gorm.DB
	Secret string
	TTL    time.Duration
}

func NewAuthService(db *gorm.DB, secret string, ttl time.Duration) *AuthService {
	return &AuthService{DB: db, Secret: secret, TTL: ttl}
}

// ========================== LOGIN ==========================
func (s *AuthService) Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := authRepo.FindUserByUsername(ctx, s.DB, strings.TrimSpace(req.Username))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, helper.ErrUnauthorized("Username atau password salah")
		}
		return nil, helper.ErrUpstream(err, "Gagal mengambil data user")
	}
	if err := authHelper.CheckPasswordHash(user.Password, req.Password); err != nil {
		return nil, helper.ErrUnauthorized("Username atau password salah")
	}
	if !user.IsActive {
		return nil, helper.ErrForbidden("Akun Anda telah dinonaktifkan")
	}

	token, exp, err := helperAuth.IssueToken(s.Secret, helperAuth.Principal{
		AccountID:   user.ID,
		Role:        user.Role,
		Key:         user.NaturalKey,
		DisplayName: user.DisplayName,
	}, s.TTL)
	if err != nil {
		return nil, helper.ErrUpstream(err, "Gagal membuat token")
	}

	log.Printf("[INFO] login ok user_id=%d role=%s", user.ID, user.Role)
	return &dto.LoginResponse{
		AccessToken: token,
		ExpiresAt:   exp,
		User:        dto.FromUserModel(user),
	}, nil
}

// ========================== LOGOUT ==========================
func (s *AuthService) Logout(ctx context.Context, rawToken string) error {
	if strings.TrimSpace(rawToken) == "" {
		return helper.ErrUnauthorized("Token tidak ditemukan")
	}
	_, exp, err := helperAuth.ParseToken(s.Secret, rawToken)
	if err != nil {
		return helper.ErrUnauthorized("Token tidak valid")
	}
	if exp.IsZero() {
		exp = time.Now().UTC().Add(s.TTL)
	}
	if err := helperAuth.AddToBlacklist(ctx, s.DB, rawToken, s.Secret, exp); err != nil {
		return helper.ErrUpstream(err, "Gagal logout")
	}
	return nil
}

// ========================== ME ==========================
func (s *AuthService) Me(ctx context.Context, userID uint) (*dto.UserResponse, error) {
	user, err := authRepo.FindUserByID(ctx, s.DB, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, helper.ErrNotFound("User tidak ditemukan")
		}
		return nil, helper.ErrUpstream(err, "Gagal mengambil data user")
	}
	out := dto.FromUserModel(user)
	return &out, nil
}

// ========================== CHANGE PASSWORD ==========================
func (s *AuthService) ChangePassword(ctx context.Context, userID uint, req dto.ChangePasswordRequest) error {
	user, err := authRepo.FindUserByID(ctx, s.DB, userID)
	if err != nil {
		return helper.ErrUnauthorized("User tidak ditemukan")
	}
	if err := authHelper.CheckPasswordHash(user.Password, req.CurrentPassword); err != nil {
		return helper.ErrUnauthorized("Password saat ini salah")
	}
	hashed, err := authHelper.HashPassword(req.NewPassword)
	if err != nil {
		return helper.ErrUpstream(err, "Gagal hash password")
	}
	if err := s.DB.WithContext(ctx).Model(user).Update("password", hashed).Error; err != nil {
		return helper.ErrUpstream(err, "Gagal update password")
	}
	return nil
}
