package main

import (
	"context"
	"log"
	"os"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"authportal/internal/config"
	"authportal/internal/db"
	"authportal/internal/model"
	"authportal/internal/repository"
	"authportal/internal/service"
)

// Seeds a demo user for local development. Email and password come from
// SEED_EMAIL / SEED_PASSWORD, with throwaway defaults.
func main() {
	log.Println("Starting seed script...")

	cfg := config.Load()

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Connected to database")

	if err := gormDB.AutoMigrate(&model.User{}); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database migrations completed")

	email := service.NormalizeEmail(envOr("SEED_EMAIL", "demo@example.com"))
	password := envOr("SEED_PASSWORD", "Demo1234")
	fullName := envOr("SEED_FULL_NAME", "Demo User")

	userRepo := repository.NewUserRepository(gormDB)
	ctx := context.Background()

	if existing, err := userRepo.FindByEmail(ctx, email); err == nil && existing != nil {
		log.Printf("Seed user already exists: %s (id=%d)", email, existing.ID)
		return
	} else if err != nil && err != gorm.ErrRecordNotFound {
		log.Fatalf("Failed to check seed user: %v", err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("Failed to hash password: %v", err)
	}

	user := &model.User{
		Email:        email,
		PasswordHash: string(hashed),
		FullName:     fullName,
		IsActive:     true,
	}
	if err := userRepo.Create(ctx, user); err != nil {
		log.Fatalf("Failed to create seed user: %v", err)
	}

	log.Printf("Seed completed successfully!")
	log.Printf("  - User: %s (id=%d)", email, user.ID)
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
