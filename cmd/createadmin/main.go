// Command createadmin seeds the administrator account. It is idempotent:
// running it against a database that already has the admin user is a no-op.
package main

import (
	"context"
	"errors"
	"os"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"petspa-backend/config"
	"petspa-backend/internal/auth"
	"petspa-backend/internal/db"
	"petspa-backend/internal/model"
	"petspa-backend/internal/store"
)

const adminEmail = "admin@petspa.com"

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	godotenv.Load()

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "./config/config.yaml"
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		logger.Fatal("failed to load configuration", zap.Error(err))
	}

	gormDB, err := db.Init(&cfg.Database, logger)
	if err != nil {
		logger.Fatal("failed to initialize database", zap.Error(err))
	}
	defer db.Close(gormDB)

	s := store.NewGormStore(gormDB)
	ctx := context.Background()

	if _, err := s.UserByEmail(ctx, adminEmail); err == nil {
		logger.Info("admin user already exists", zap.String("email", adminEmail))
		return
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		logger.Fatal("failed to look up admin user", zap.Error(err))
	}

	password := os.Getenv("ADMIN_PASSWORD")
	if password == "" {
		password = "admin123"
		logger.Warn("ADMIN_PASSWORD not set, using the default; change it after first login")
	}

	hash, err := auth.HashPassword(password, cfg.Auth.BcryptCost)
	if err != nil {
		logger.Fatal("failed to hash password", zap.Error(err))
	}

	now := time.Now()
	admin := &model.User{
		Name:              "Administrador",
		Email:             adminEmail,
		Password:          hash,
		Phone:             "3001234567",
		PetName:           "Admin Pet",
		PetType:           model.PetTypeDog,
		PetBreed:          "N/A",
		IsAdmin:           true,
		TermsAccepted:     true,
		TermsAcceptedDate: &now,
	}
	if err := s.CreateUser(ctx, admin); err != nil {
		logger.Fatal("failed to create admin user", zap.Error(err))
	}

	logger.Info("admin user created", zap.String("email", adminEmail))
}
