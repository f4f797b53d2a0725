package service

import (
	"context"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"

	"laporbug_backend/internals/constants"
	"laporbug_backend/internals/databases/dbtest"
	"laporbug_backend/internals/features/users/auth/dto"
	authHelper "laporbug_backend/internals/features/users/auth/helper"
	"laporbug_backend/internals/features/users/auth/model"
	helper "laporbug_backend/internals/helpers"
	helperAuth "laporbug_backend/internals/helpers/auth"
)

const secret = "rahasia-test"

func setupAuthService(t *testing.T) (*AuthService, *model.UserModel) {
	t.Helper()
	db := dbtest.Open(t)
	hashed, err := authHelper.HashPassword("rahasia123")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	u := &model.UserModel{
		Username:    "rina",
		Password:    hashed,
		Role:        constants.RoleValidator,
		NaturalKey:  "198701012010011001",
		DisplayName: "Rina Validator",
		IsActive:    true,
	}
	if err := db.Create(u).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}
	return NewAuthService(db, secret, time.Hour), u
}

func TestLoginIssuesPrincipalToken(t *testing.T) {
	s, u := setupAuthService(t)
	ctx := context.Background()

	out, err := s.Login(ctx, dto.LoginRequest{Username: " rina ", Password: "rahasia123"})
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	p, exp, err := helperAuth.ParseToken(secret, out.AccessToken)
	if err != nil {
		t.Fatalf("ParseToken() error = %v", err)
	}
	if p.AccountID != u.ID || p.Role != constants.RoleValidator || p.Key != u.NaturalKey {
		t.Fatalf("principal = %+v", p)
	}
	if exp.Before(time.Now()) || out.User.Username != "rina" {
		t.Fatalf("exp = %v user = %+v", exp, out.User)
	}

	_, err = s.Login(ctx, dto.LoginRequest{Username: "rina", Password: "salah"})
	if helper.StatusOf(err) != fiber.StatusUnauthorized {
		t.Fatalf("wrong password err = %v", err)
	}
	_, err = s.Login(ctx, dto.LoginRequest{Username: "tidak-ada", Password: "rahasia123"})
	if helper.StatusOf(err) != fiber.StatusUnauthorized {
		t.Fatalf("unknown user err = %v", err)
	}

	if err := s.DB.Model(u).Update("is_active", false).Error; err != nil {
		t.Fatalf("deactivate: %v", err)
	}
	_, err = s.Login(ctx, dto.LoginRequest{Username: "rina", Password: "rahasia123"})
	if helper.StatusOf(err) != fiber.StatusForbidden {
		t.Fatalf("inactive user err = %v", err)
	}
}

func TestLogoutBlacklistsToken(t *testing.T) {
	s, _ := setupAuthService(t)
	ctx := context.Background()

	out, err := s.Login(ctx, dto.LoginRequest{Username: "rina", Password: "rahasia123"})
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	if err := s.Logout(ctx, out.AccessToken); err != nil {
		t.Fatalf("Logout() error = %v", err)
	}
	listed, err := helperAuth.IsBlacklisted(ctx, s.DB, out.AccessToken, secret)
	if err != nil || !listed {
		t.Fatalf("IsBlacklisted() = %v, %v", listed, err)
	}
	// logout kedua tidak boleh gagal
	if err := s.Logout(ctx, out.AccessToken); err != nil {
		t.Fatalf("second Logout() error = %v", err)
	}

	if helper.StatusOf(s.Logout(ctx, "")) != fiber.StatusUnauthorized {
		t.Fatal("empty token must be unauthorized")
	}
	if helper.StatusOf(s.Logout(ctx, "abc.def.ghi")) != fiber.StatusUnauthorized {
		t.Fatal("invalid token must be unauthorized")
	}

	n, err := helperAuth.PurgeExpiredBlacklist(ctx, s.DB, 0)
	if err != nil || n != 0 {
		t.Fatalf("purge of unexpired rows = %d, %v", n, err)
	}
}

func TestChangePassword(t *testing.T) {
	s, u := setupAuthService(t)
	ctx := context.Background()

	err := s.ChangePassword(ctx, u.ID, dto.ChangePasswordRequest{CurrentPassword: "salah", NewPassword: "baru12345"})
	if helper.StatusOf(err) != fiber.StatusUnauthorized {
		t.Fatalf("wrong current password err = %v", err)
	}
	if err := s.ChangePassword(ctx, u.ID, dto.ChangePasswordRequest{CurrentPassword: "rahasia123", NewPassword: "baru12345"}); err != nil {
		t.Fatalf("ChangePassword() error = %v", err)
	}
	if _, err := s.Login(ctx, dto.LoginRequest{Username: "rina", Password: "baru12345"}); err != nil {
		t.Fatalf("login with new password error = %v", err)
	}
}
