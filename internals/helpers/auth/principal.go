package helper

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

// Nama locals yang diisi middleware AuthJWT
const (
	LocPrincipal = "principal"
	LocUserID    = "user_id"
	LocRole      = "userRole"
)

// Principal adalah identitas pemanggil hasil verifikasi bearer token.
// Key adalah natural key per role: NIK (warga), NIP (pencatat/validator/teknisi),
// username (super_admin/admin_kategori).
type Principal struct {
	AccountID   uint   `json:"account_id"`
	Role        string `json:"role"`
	Key         string `json:"key"`
	DisplayName string `json:"display_name"`
}

func (p Principal) Is(roles ...string) bool {
	for _, r := range roles {
		if p.Role == r {
			return true
		}
	}
	return false
}

func (p Principal) Valid() bool {
	return p.AccountID != 0 && strings.TrimSpace(p.Role) != ""
}

func SetPrincipal(c *fiber.Ctx, p Principal) {
	c.Locals(LocPrincipal, p)
	c.Locals(LocUserID, p.AccountID)
	c.Locals(LocRole, p.Role)
}

// GetPrincipal mengambil Principal dari Locals; 401 kalau middleware belum jalan.
func GetPrincipal(c *fiber.Ctx) (Principal, error) {
	p, ok := c.Locals(LocPrincipal).(Principal)
	if !ok || !p.Valid() {
		return Principal{}, fiber.NewError(fiber.StatusUnauthorized, "Unauthorized - principal tidak ditemukan")
	}
	return p, nil
}
