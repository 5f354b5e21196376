package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/lumehq/lume-api/internal/config"
	"github.com/lumehq/lume-api/internal/database"
	"github.com/lumehq/lume-api/internal/models"
	"github.com/lumehq/lume-api/internal/services"
)

func main() {
	if len(os.Args) < 3 || len(os.Args) > 4 {
		fmt.Println("Usage: invite-user <email> <name> [role]")
		os.Exit(1)
	}

	email := os.Args[1]
	name := os.Args[2]
	role := models.RoleMember
	if len(os.Args) == 4 {
		role = os.Args[3]
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

	emailService := services.NewEmailService(cfg.SMTP)
	if !emailService.IsConfigured() {
		log.Println("SMTP is not configured, the one-time password will not be delivered")
	}

	profileService := services.NewProfileService(db, emailService, nil, nil, cfg.Paginate)

	user, err := profileService.Invite(ctx, services.InviteInput{
		Email: email,
		Name:  name,
		Role:  role,
	})
	if err != nil {
		log.Fatalf("Failed to invite user: %v", err)
	}

	fmt.Printf("Successfully invited %s (%s) as %s\n", user.Name, user.Email, role)
}
