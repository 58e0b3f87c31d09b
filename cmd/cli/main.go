package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"invoicely-backend/config"
	"invoicely-backend/internal/auth"
	"invoicely-backend/internal/database"
	"invoicely-backend/internal/models"
	"invoicely-backend/internal/repository"
	"invoicely-backend/internal/scheduler"
)

var (
	// Command flags
	createUser     = flag.Bool("create", false, "Create a new user")
	activateUser   = flag.Bool("activate", false, "Activate a user account")
	deactivateUser = flag.Bool("deactivate", false, "Deactivate a user account")
	sweepTokens    = flag.Bool("sweep", false, "Delete expired refresh tokens and blacklist entries")

	// User data flags
	email    = flag.String("email", "", "User's email")
	password = flag.String("password", "", "User's password")
	name     = flag.String("name", "", "User's name")
)

func main() {
	flag.Parse()

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config.yaml"
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if err := database.Initialize(&cfg.Database); err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer database.Close()

	db := database.GetDB()
	userRepo := repository.NewUserRepository(db)

	switch {
	case *createUser:
		return handleCreateUser(userRepo)
	case *activateUser:
		return handleSetActive(userRepo, true)
	case *deactivateUser:
		return handleSetActive(userRepo, false)
	case *sweepTokens:
		return handleSweep(db)
	default:
		flag.Usage()
		return errors.New("no command specified")
	}
}

func handleCreateUser(userRepo *repository.UserRepository) error {
	if *email == "" || *password == "" || *name == "" {
		return errors.New("email, password and name are required")
	}

	ctx := context.Background()
	existing, err := userRepo.FindByEmail(ctx, *email)
	if err != nil {
		return err
	}
	if existing != nil {
		return fmt.Errorf("user with email %s already exists", *email)
	}

	hashed, err := auth.NewPasswordHasher().Hash(*password)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now()
	user := &models.User{
		ID:        uuid.New().String(),
		Email:     *email,
		Name:      *name,
		Password:  hashed,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := userRepo.Create(ctx, user); err != nil {
		return err
	}

	fmt.Printf("Created user %s (%s)\n", user.Email, user.ID)
	return nil
}

func handleSetActive(userRepo *repository.UserRepository, active bool) error {
	if *email == "" {
		return errors.New("email is required")
	}

	ctx := context.Background()
	user, err := userRepo.FindByEmail(ctx, *email)
	if err != nil {
		return err
	}
	if user == nil {
		return fmt.Errorf("user with email %s not found", *email)
	}

	if err := userRepo.SetActive(ctx, user.ID, active); err != nil {
		return err
	}

	state := "deactivated"
	if active {
		state = "activated"
	}
	fmt.Printf("User %s %s\n", user.Email, state)
	return nil
}

func handleSweep(db *gorm.DB) error {
	scheduler.SweepExpired(
		context.Background(),
		repository.NewRefreshTokenRepository(db),
		repository.NewTokenBlacklistRepository(db),
	)
	fmt.Println("Sweep completed")
	return nil
}
