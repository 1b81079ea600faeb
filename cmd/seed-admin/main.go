package main

import (
	"flag"

	"stocktrack-backend/internal/model"
	"stocktrack-backend/pkg/database"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

func main() {
	email := flag.String("email", "admin@example.com", "admin email")
	password := flag.String("password", "admin123", "admin password")
	name := flag.String("name", "Administrator", "admin full name")
	flag.Parse()

	// 1. Load Env
	if err := godotenv.Load(); err != nil {
		log.Warn().Msg(".env file not found, relying on system env")
	}

	// 2. Setup Database
	db := database.ConnectDB()

	// 3. Upsert admin
	var user model.User
	err := db.Where("email = ?", *email).First(&user).Error
	if err == nil {
		if err := user.SetPassword(*password); err != nil {
			log.Fatal().Err(err).Msg("failed to hash password")
		}
		if err := db.Model(&user).Update("password", user.Password).Error; err != nil {
			log.Fatal().Err(err).Msg("failed to update password")
		}
		log.Info().Str("email", *email).Msg("admin password reset")
		return
	}

	user = model.User{
		Email:    *email,
		FullName: *name,
		Role:     model.RoleAdmin,
	}
	if err := user.SetPassword(*password); err != nil {
		log.Fatal().Err(err).Msg("failed to hash password")
	}
	if err := db.Create(&user).Error; err != nil {
		log.Fatal().Err(err).Msg("failed to create admin user")
	}
	log.Info().Str("email", *email).Msg("admin user created")
}
