package helper

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
)

// FromFiberError mengubah error hasil service (biasanya *fiber.Error)
// menjadi response JSON konsisten via JsonError.
// Jika bukan *fiber.Error, fallback ke 500 dengan pesan generik.
func FromFiberError(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		if fe.Code >= fiber.StatusInternalServerError {
			// penyebab asli (DB/blob) hanya ke log, tidak ke client
			var ue *UpstreamError
			if errors.As(err, &ue) && ue.Cause != nil {
				log.Printf("[ERROR] reqid=%v %s %s → %d: %s: %v", c.Locals("reqid"), c.Method(), c.OriginalURL(), fe.Code, fe.Message, ue.Cause)
			} else {
				log.Printf("[ERROR] reqid=%v %s %s → %d: %s", c.Locals("reqid"), c.Method(), c.OriginalURL(), fe.Code, fe.Message)
			}
		}
		return JsonError(c, fe.Code, fe.Message)
	}
	log.Printf("[ERROR] reqid=%v %s %s → 500: %v", c.Locals("reqid"), c.Method(), c.OriginalURL(), err)
	return JsonError(c, fiber.StatusInternalServerError, "Terjadi kesalahan pada server")
}

// ErrorHandler dipasang di fiber.Config agar error dari middleware ikut format JSON standar.
func ErrorHandler(c *fiber.Ctx, err error) error {
	return FromFiberError(c, err)
}
