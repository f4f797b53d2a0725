package scheduler

import (
	"context"
	"log"
	"time"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"

	"laporbug_backend/internals/configs"
	helperAuth "laporbug_backend/internals/helpers/auth"
)

// StartBlacklistCleanupScheduler menjadwalkan pembersihan token_blacklist.
// Jadwal dari BLACKLIST_CLEANUP_CRON (default tiap hari 02:15), retensi dari TOKEN_BLACKLIST_TTL_DAYS.
func StartBlacklistCleanupScheduler(db *gorm.DB) *cron.Cron {
	schedule := configs.GetEnv("BLACKLIST_CLEANUP_CRON", "15 2 * * *")
	ttlDays := configs.GetEnvInt("TOKEN_BLACKLIST_TTL_DAYS", 7)

	c := cron.New()
	_, err := c.AddFunc(schedule, func() {
		RunBlacklistCleanup(db, time.Duration(ttlDays)*24*time.Hour)
	})
	if err != nil {
		log.Printf("[CLEANUP ERROR] jadwal cron tidak valid (%q): %v", schedule, err)
		return nil
	}
	c.Start()
	log.Printf("[CLEANUP] scheduler aktif schedule=%q retensi=%d hari", schedule, ttlDays)
	return c
}

func RunBlacklistCleanup(db *gorm.DB, retention time.Duration) {
	log.Println("[CLEANUP] Menjalankan pembersihan token_blacklist...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	n, err := helperAuth.PurgeExpiredBlacklist(ctx, db, retention)
	switch {
	case err != nil:
		log.Printf("[CLEANUP ERROR] Gagal hapus token: %v", err)
	case n > 0:
		log.Printf("[CLEANUP] %d token kadaluarsa dihapus", n)
	default:
		log.Println("[CLEANUP] Tidak ada token yang memenuhi syarat dihapus")
	}
}
