package main

import (
	"context"
	"flag"
	"log"

	"perfume-boutique-ws/config"
	"perfume-boutique-ws/internal/model"
	"perfume-boutique-ws/internal/repository"
	"perfume-boutique-ws/internal/seed"
	"perfume-boutique-ws/pkg/database"
	"perfume-boutique-ws/pkg/logger"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

// seed migrates a postgres database and loads the demo data.
// With -reset-admin it only restores the admin password.
func main() {
	resetAdmin := flag.Bool("reset-admin", false, "reset the admin password instead of seeding")
	password := flag.String("password", "admin123", "password used with -reset-admin")
	flag.Parse()

	// 1. Load Env
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, relying on system env")
	}
	cfg := config.LoadEnv()
	zapLogger := logger.NewZapLogger(&logger.ZapLoggerConfig{
		IsDevelopment: cfg.Server.IsDevelopment(),
		Encoding:      cfg.Logger.Encoding,
		Level:         cfg.Logger.Level,
	})
	defer zapLogger.Sync()

	// 2. Setup Database
	db, err := database.ConnectDB(cfg.Database, zapLogger)
	if err != nil {
		zapLogger.Fatal("failed to connect database", zap.Error(err))
	}
	if err := repository.AutoMigrate(db); err != nil {
		zapLogger.Fatal("failed to migrate", zap.Error(err))
	}

	if !*resetAdmin {
		seeded, err := seed.Run(context.Background(), repository.NewGormStore(db), zapLogger)
		if err != nil {
			zapLogger.Fatal("failed to seed", zap.Error(err))
		}
		if !seeded {
			zapLogger.Info("database already seeded", zap.String("admin", seed.AdminEmail))
		}
		return
	}

	// 3. Find Admin
	var user model.User
	if err := db.Where("email = ?", seed.AdminEmail).First(&user).Error; err != nil {
		zapLogger.Fatal("admin not found", zap.String("email", seed.AdminEmail), zap.Error(err))
	}

	// 4. Hash new password
	if err := user.SetPassword(*password); err != nil {
		zapLogger.Fatal("failed to hash password", zap.Error(err))
	}

	// 5. Update
	if err := db.Model(&user).Update("password", user.Password).Error; err != nil {
		zapLogger.Fatal("failed to update password", zap.Error(err))
	}

	zapLogger.Info("admin password reset", zap.String("email", seed.AdminEmail))
}
