package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/etag"
	"github.com/gofiber/utils"

	"laporbug_backend/internals/configs"
	database "laporbug_backend/internals/databases"
	scheduler "laporbug_backend/internals/features/users/auth/scheduler"
	helper "laporbug_backend/internals/helpers"
	helperOSS "laporbug_backend/internals/helpers/oss"
	middlewares "laporbug_backend/internals/middlewares"
	routes "laporbug_backend/internals/route"
	"laporbug_backend/internals/seeds"
)

func main() {
	configs.LoadEnv()

	app := fiber.New(fiber.Config{
		// 🚀 JSON super cepat
		JSONEncoder:             sonic.Marshal,
		JSONDecoder:             sonic.Unmarshal,
		DisableStartupMessage:   true,
		ErrorHandler:            helper.ErrorHandler,
		BodyLimit:               configs.GetEnvInt("HTTP_BODY_LIMIT_MB", 30) * 1024 * 1024, // 5 foto x 5MB + overhead multipart
		ProxyHeader:             fiber.HeaderXForwardedFor,
		EnableTrustedProxyCheck: true,
		TrustedProxies:          []string{"0.0.0.0/0"},
	})

	// ⚙️ middleware dasar + performa
	app.Use(compress.New(compress.Config{Level: compress.LevelDefault}))
	app.Use(etag.New())

	// 🔎 Request-ID + timing
	app.Use(func(c *fiber.Ctx) error {
		id := c.Get("X-Request-ID")
		if id == "" {
			id = utils.UUID()
		}
		c.Set("X-Request-ID", id)
		c.Locals("reqid", id)
		start := time.Now()
		// upload foto butuh waktu lebih lama dari query biasa
		ctx, cancel := context.WithTimeout(c.Context(), time.Duration(configs.GetEnvInt("HTTP_REQUEST_TIMEOUT_SEC", 30))*time.Second)
		defer cancel()
		c.SetUserContext(ctx)
		err := c.Next()
		log.Printf("[REQ] id=%s %s %s status=%d dur=%s", id, c.Method(), c.OriginalURL(), c.Response().StatusCode(), time.Since(start))
		return err
	})

	middlewares.SetupMiddlewares(app)

	// 🔌 DB connect + pool + warm-up
	database.ConnectDB()
	database.TunePool()
	database.WarmUpQueries()

	if configs.GetEnvBool("DB_AUTO_MIGRATE", false) {
		if err := database.Migrate(database.DB); err != nil {
			log.Fatalf("❌ Migrasi gagal: %v", err)
		}
	}
	if configs.GetEnvBool("RUN_SEEDS", false) {
		seeds.RunAllSeeds(database.DB, configs.GetEnv("SEED_FILE", "internals/seeds/data_seed.json"))
	}

	// ⏱ scheduler setelah DB siap
	cron := scheduler.StartBlacklistCleanupScheduler(database.DB)

	// 🗂 penyimpanan foto
	var blob helperOSS.BlobService
	if ossBlob, err := helperOSS.NewOSSBlobServiceFromEnv(configs.BugPhotoPrefix); err != nil {
		log.Printf("⚠️ OSS tidak aktif (%v), foto disimpan di memori", err)
		blob = helperOSS.NewMemoryBlobService(configs.GetEnv("BLOB_MEMORY_BASE_URL", "http://localhost/blob"))
	} else {
		blob = ossBlob
	}

	// ✅ Routes
	routes.SetupRoutes(app, database.DB, blob)

	// 🔒 Keep-Alive & timeout koneksi server
	app.Server().ReadTimeout = 30 * time.Second
	app.Server().WriteTimeout = 30 * time.Second
	app.Server().IdleTimeout = 90 * time.Second

	port := os.Getenv("PORT")
	if port == "" {
		port = "3000"
	}

	go func() {
		log.Printf("✅ Listening on :%s", port)
		if err := app.Listen("0.0.0.0:" + port); err != nil {
			log.Fatalf("server error: %v", err)
		}
	}()

	// graceful shutdown + tutup pool DB
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = app.ShutdownWithContext(ctx)

	if cron != nil {
		<-cron.Stop().Done()
	}
	database.Close()
}
