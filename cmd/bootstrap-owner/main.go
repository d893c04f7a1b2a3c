package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/urmedia/masala-api/internal/config"
	"github.com/urmedia/masala-api/internal/database"
	"github.com/urmedia/masala-api/internal/services"
)

func main() {
	if len(os.Args) != 4 {
		fmt.Println("Usage: bootstrap-owner <email> <password> <name>")
		os.Exit(1)
	}

	email, password, name := os.Args[1], os.Args[2], os.Args[3]

	if len(password) < 8 {
		log.Fatal("Password must be at least 8 characters")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	ctx := context.Background()

	db, err := database.New(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := db.Migrate(ctx); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	userService := services.NewUserService(db)
	roleService := services.NewRoleService(db)
	adminUserService := services.NewAdminUserService(db)
	provisionService := services.NewProvisionService(userService, roleService, adminUserService)

	user, err := provisionService.SetupOwner(ctx, email, password, name)
	if err != nil {
		if errors.Is(err, services.ErrOwnerExists) {
			log.Fatal("An owner account already exists")
		}
		log.Fatalf("Failed to create owner: %v", err)
	}

	fmt.Printf("Owner account created: %s (%s)\n", user.Email, user.ID)
}
