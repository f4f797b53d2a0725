// internals/middlewares/auth/auth_middleware.go
package auth

import (
	"errors"
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	authRepo "laporbug_backend/internals/features/users/auth/repository"
	helper "laporbug_backend/internals/helpers"
	helperAuth "laporbug_backend/internals/helpers/auth"
)

// AuthMiddleware memverifikasi bearer token, cek blacklist, cek user aktif,
// lalu menyimpan Principal ke Locals.
func AuthMiddleware(db *gorm.DB, secret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		// 1) Ambil Authorization (atau cookie)
		raw := helper.GetRawAccessToken(c)
		if raw == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "Unauthorized - Token tidak ditemukan")
		}

		if strings.TrimSpace(secret) == "" {
			log.Println("[ERROR] JWT_SECRET kosong")
			return fiber.NewError(fiber.StatusInternalServerError, "Missing JWT Secret")
		}

		// 2) Parse & verifikasi (exp ikut divalidasi)
		p, _, err := helperAuth.ParseToken(secret, raw)
		if err != nil {
			log.Println("[WARN] Gagal parse token:", err)
			return fiber.NewError(fiber.StatusUnauthorized, "Unauthorized - Token tidak valid")
		}

		// 3) Cek blacklist
		listed, err := helperAuth.IsBlacklisted(c.UserContext(), db, raw, secret)
		if err != nil {
			log.Println("[ERROR] DB error saat cek blacklist:", err)
			return fiber.NewError(fiber.StatusInternalServerError, "Internal Server Error")
		}
		if listed {
			return fiber.NewError(fiber.StatusUnauthorized, "Unauthorized - Token is blacklisted")
		}

		// 4) User masih aktif?
		active, err := authRepo.IsUserActive(c.UserContext(), db, p.AccountID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusUnauthorized, "Unauthorized - User not found")
			}
			log.Println("[ERROR] cek user aktif:", err)
			return fiber.NewError(fiber.StatusInternalServerError, "Internal Server Error")
		}
		if !active {
			return fiber.NewError(fiber.StatusForbidden, "Akun Anda telah dinonaktifkan")
		}

		helperAuth.SetPrincipal(c, p)
		helper.SetRawAccessToken(c, raw)
		return c.Next()
	}
}
